package middleware

import (
	"context"
	"slices"

	"github.com/gin-gonic/gin"

	mwopts "github.com/kart-io/wizora/pkg/options/middleware"
)

// Timeout attaches a deadline to the request context. Handlers and the model
// calls they make observe the deadline through ctx; the middleware never
// writes to the response itself.
func Timeout(opts mwopts.TimeoutOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		if opts.Timeout <= 0 || slices.Contains(opts.SkipPaths, c.Request.URL.Path) {
			c.Next()
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), opts.Timeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
