package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/kart-io/wizora/pkg/infra/middleware/common"
	mwopts "github.com/kart-io/wizora/pkg/options/middleware"
)

// GetRequestID returns the request ID from the context.
var GetRequestID = common.GetRequestID

// RequestID returns a middleware that propagates or assigns a request ID.
// An incoming header value is kept; otherwise a new ID is generated.
// The ID is echoed in the response header and stored in the request context.
func RequestID(opts mwopts.RequestIDOptions) gin.HandlerFunc {
	header := opts.Header
	if header == "" {
		header = common.HeaderXRequestID
	}
	generate := common.GenerateULID
	if opts.Generator == mwopts.GeneratorHex {
		generate = common.GenerateRequestID
	}

	return func(c *gin.Context) {
		requestID := c.GetHeader(header)
		if requestID == "" {
			requestID = generate()
		}
		c.Header(header, requestID)
		c.Request = c.Request.WithContext(common.WithRequestID(c.Request.Context(), requestID))
		c.Next()
	}
}
