package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kart-io/version"

	mwopts "github.com/kart-io/wizora/pkg/options/middleware"
)

// ReadinessCheck reports whether a dependency is usable.
type ReadinessCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// RegisterHealthRoutes registers liveness, readiness and version endpoints.
// Readiness runs every check with a short deadline and reports the failures.
func RegisterHealthRoutes(r gin.IRoutes, opts mwopts.HealthOptions, checks ...ReadinessCheck) {
	if opts.LivenessPath != "" {
		r.GET(opts.LivenessPath, func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})
	}

	if opts.ReadinessPath != "" {
		r.GET(opts.ReadinessPath, func(c *gin.Context) {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			failed := map[string]string{}
			for _, chk := range checks {
				if err := chk.Check(ctx); err != nil {
					failed[chk.Name] = err.Error()
				}
			}
			if len(failed) > 0 {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "checks": failed})
				return
			}
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})
	}

	if opts.VersionPath != "" {
		r.GET(opts.VersionPath, func(c *gin.Context) {
			c.JSON(http.StatusOK, version.Get())
		})
	}
}
