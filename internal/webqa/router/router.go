// Package router registers the web QA routes.
package router

import (
	"github.com/kart-io/logger"

	"github.com/kart-io/wizora/internal/webqa/handler"
	"github.com/kart-io/wizora/pkg/infra/server"
	"github.com/kart-io/wizora/pkg/utils/response"
)

// Register registers the web QA routes. Errors are reported in a "detail" field.
func Register(mgr *server.Manager, h *handler.WebQAHandler) {
	engine := mgr.HTTPServer().Engine()
	engine.Use(response.UseField(response.FieldDetail))
	engine.POST("/ask", h.Ask)
	logger.Info("HTTP routes registered")
}
