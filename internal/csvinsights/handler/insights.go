// Package handler provides HTTP handlers for the CSV insights service.
package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/kart-io/logger"

	"github.com/kart-io/wizora/internal/csvinsights/biz"
	"github.com/kart-io/wizora/internal/pkg/httputils"
	"github.com/kart-io/wizora/pkg/utils/errors"
)

// InsightsHandler handles table uploads.
type InsightsHandler struct {
	svc *biz.Service
}

// NewInsightsHandler creates a new InsightsHandler.
func NewInsightsHandler(svc *biz.Service) *InsightsHandler {
	return &InsightsHandler{svc: svc}
}

// InsightsResponse is the body of a successful analysis.
type InsightsResponse struct {
	Insights string `json:"insights"`
}

// Analyze parses the uploaded table and returns a single overall insight.
func (h *InsightsHandler) Analyze(c *gin.Context) {
	file, err := httputils.ReadFormFile(c, "file", errors.ErrCSVMissingFile)
	if err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}

	table, err := biz.ParseTable(file.Filename, file.ContentType, file.Data)
	if err != nil {
		httputils.WriteResponse(c, errors.ErrCSVParse.WithCause(err), nil)
		return
	}
	logger.Infow("table received",
		"filename", file.Filename,
		"columns", len(table.Header),
		"rows", len(table.Rows),
	)

	insights, err := h.svc.Analyze(c.Request.Context(), table)
	if err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}
	httputils.WriteResponse(c, nil, InsightsResponse{Insights: insights})
}
