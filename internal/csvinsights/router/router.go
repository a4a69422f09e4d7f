// Package router registers the CSV insights routes.
package router

import (
	"github.com/kart-io/logger"

	"github.com/kart-io/wizora/internal/csvinsights/handler"
	"github.com/kart-io/wizora/pkg/infra/server"
)

// Register registers the CSV insights routes.
func Register(mgr *server.Manager, h *handler.InsightsHandler) {
	engine := mgr.HTTPServer().Engine()
	engine.POST("/analyze-csv/", h.Analyze)
	logger.Info("HTTP routes registered")
}
