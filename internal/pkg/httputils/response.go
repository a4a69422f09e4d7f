// Package httputils provides HTTP helpers shared by the service handlers.
package httputils

import (
	"github.com/gin-gonic/gin"

	"github.com/kart-io/wizora/pkg/utils/response"
)

// WriteResponse writes data on success or the error body on failure.
func WriteResponse(c *gin.Context, err error, data interface{}) {
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, data)
}
