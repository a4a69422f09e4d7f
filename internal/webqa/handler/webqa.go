// Package handler provides HTTP handlers for web QA.
package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/kart-io/wizora/internal/pkg/httputils"
	"github.com/kart-io/wizora/internal/webqa/biz"
)

// WebQAHandler handles questions about web pages.
type WebQAHandler struct {
	svc *biz.Service
}

// NewWebQAHandler creates a new WebQAHandler.
func NewWebQAHandler(svc *biz.Service) *WebQAHandler {
	return &WebQAHandler{svc: svc}
}

// AskRequest is the body of POST /ask.
type AskRequest struct {
	URL      string `json:"url"`
	Question string `json:"question"`
}

// AskResponse carries the answer.
type AskResponse struct {
	Answer string `json:"answer"`
}

// Ask handles POST /ask.
func (h *WebQAHandler) Ask(c *gin.Context) {
	var req AskRequest
	if err := httputils.BindJSON(c, &req); err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}

	answer, err := h.svc.Ask(c.Request.Context(), req.URL, req.Question)
	if err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}
	httputils.WriteResponse(c, nil, AskResponse{Answer: answer})
}
