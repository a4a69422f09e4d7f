package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/kart-io/logger"

	"github.com/kart-io/wizora/pkg/infra/middleware/common"
	mwopts "github.com/kart-io/wizora/pkg/options/middleware"
	"github.com/kart-io/wizora/pkg/utils/errors"
	"github.com/kart-io/wizora/pkg/utils/response"
)

// Recovery returns a middleware that turns panics into 500 responses.
func Recovery(opts mwopts.RecoveryOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			fields := []any{
				"panic", fmt.Sprint(r),
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"request_id", common.GetRequestID(c.Request.Context()),
			}
			if opts.EnableStackTrace {
				fields = append(fields, "stack", string(debug.Stack()))
			}
			logger.Errorw("Panic recovered", fields...)

			response.Fail(c, errors.ErrPanic)
		}()
		c.Next()
	}
}
