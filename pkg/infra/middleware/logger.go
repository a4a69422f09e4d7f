package middleware

import (
	"slices"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kart-io/logger"

	"github.com/kart-io/wizora/pkg/infra/middleware/common"
	mwopts "github.com/kart-io/wizora/pkg/options/middleware"
)

// Logger returns a middleware that writes one structured entry per request.
func Logger(opts mwopts.LoggerOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if slices.Contains(opts.SkipPaths, path) {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		logger.Infow("HTTP Request",
			"method", c.Request.Method,
			"path", path,
			"status", c.Writer.Status(),
			"size", c.Writer.Size(),
			"remote_addr", c.ClientIP(),
			"latency", latency.String(),
			"latency_ms", latency.Milliseconds(),
			"request_id", common.GetRequestID(c.Request.Context()),
		)
	}
}
