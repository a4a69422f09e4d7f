// Package response writes JSON responses for the HTTP handlers.
//
// Success bodies are whatever the handler passes. Error bodies carry a single
// message field whose name is chosen per engine ("error" by default, "detail"
// for services that speak that dialect). The numeric error code travels in
// the X-Error-Code header so the body keeps its original shape.
package response

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kart-io/logger"

	"github.com/kart-io/wizora/pkg/infra/middleware/common"
	"github.com/kart-io/wizora/pkg/utils/errors"
)

const (
	// HeaderErrorCode carries the Errno code of a failed request.
	HeaderErrorCode = "X-Error-Code"

	// FieldError is the default error message field.
	FieldError = "error"
	// FieldDetail is the alternative error message field.
	FieldDetail = "detail"

	errorFieldKey = "wizora.response.error_field"
)

// UseField returns a middleware that selects the error message field for
// every response written on the engine.
func UseField(field string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(errorFieldKey, field)
		c.Next()
	}
}

// errorField returns the field selected by UseField, or FieldError.
func errorField(c *gin.Context) string {
	if v, ok := c.Get(errorFieldKey); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return FieldError
}

// OK writes data with status 200.
func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// Fail converts err to an Errno, logs it by kind and writes the error body.
func Fail(c *gin.Context, err error) {
	e := errors.FromError(err)
	if e == nil {
		e = errors.ErrInternal
	}

	status := e.HTTPStatus()
	kind := e.Kind()
	fields := []any{
		"code", e.Code,
		"kind", kind.String(),
		"status", status,
		"path", c.Request.URL.Path,
		"request_id", common.GetRequestID(c.Request.Context()),
	}
	if cause := e.Cause(); cause != nil {
		fields = append(fields, "cause", cause.Error())
	}

	switch kind {
	case errors.KindClient:
		logger.Warnw(e.MessageEN, fields...)
	default:
		logger.Errorw(e.MessageEN, fields...)
	}

	c.Header(HeaderErrorCode, strconv.Itoa(e.Code))
	c.AbortWithStatusJSON(status, gin.H{errorField(c): e.MessageEN})
}

// Message writes a message body with the given status without treating it as a failure.
// Used where a miss is part of the normal answer.
func Message(c *gin.Context, status int, e *errors.Errno) {
	c.Header(HeaderErrorCode, strconv.Itoa(e.Code))
	c.JSON(status, gin.H{errorField(c): e.MessageEN})
}
