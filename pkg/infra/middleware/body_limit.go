package middleware

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kart-io/logger"

	mwopts "github.com/kart-io/wizora/pkg/options/middleware"
	"github.com/kart-io/wizora/pkg/utils/errors"
	"github.com/kart-io/wizora/pkg/utils/response"
)

// BodyLimit 返回一个请求体大小限制中间件。
// Content-Length 超限时直接拒绝；否则用 http.MaxBytesReader 限制实际读取的字节数，
// 读取超限时由 handler 通过 IsBodyTooLarge 识别。
func BodyLimit(opts mwopts.BodyLimitOptions) gin.HandlerFunc {
	maxSize := opts.MaxSize
	if maxSize <= 0 {
		maxSize = mwopts.NewBodyLimitOptions().MaxSize
	}

	return func(c *gin.Context) {
		req := c.Request
		if req.ContentLength > maxSize {
			logger.Warnw("request body too large",
				"path", req.URL.Path,
				"content_length", req.ContentLength,
				"max_size", maxSize,
			)
			response.Fail(c, errors.ErrRequestTooLarge)
			return
		}

		req.Body = http.MaxBytesReader(c.Writer, req.Body, maxSize)
		c.Next()
	}
}

// IsBodyTooLarge reports whether err was caused by the body limit.
func IsBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return stderrors.As(err, &maxErr)
}
