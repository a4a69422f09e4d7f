// Package handler provides HTTP handlers for the image proxy.
package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/kart-io/wizora/internal/imageproxy/biz"
	"github.com/kart-io/wizora/internal/pkg/httputils"
)

// ImageHandler handles image generation requests.
type ImageHandler struct {
	svc *biz.Service
}

// NewImageHandler creates a new ImageHandler.
func NewImageHandler(svc *biz.Service) *ImageHandler {
	return &ImageHandler{svc: svc}
}

// GenerateRequest is the body of POST /generate-image.
type GenerateRequest struct {
	Prompt string `json:"prompt"`
}

// GenerateResponse carries the stored image address.
type GenerateResponse struct {
	ImageURL string `json:"image_url"`
}

// Generate handles POST /generate-image.
func (h *ImageHandler) Generate(c *gin.Context) {
	var req GenerateRequest
	if err := httputils.BindJSON(c, &req); err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}

	url, err := h.svc.Generate(c.Request.Context(), req.Prompt)
	if err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}
	httputils.WriteResponse(c, nil, GenerateResponse{ImageURL: url})
}
