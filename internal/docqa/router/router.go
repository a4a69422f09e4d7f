// Package router registers the document QA routes.
package router

import (
	"github.com/kart-io/logger"

	"github.com/kart-io/wizora/internal/docqa/handler"
	"github.com/kart-io/wizora/pkg/infra/server"
)

// Register registers the document QA routes.
func Register(mgr *server.Manager, h *handler.DocQAHandler) {
	engine := mgr.HTTPServer().Engine()
	engine.POST("/upload", h.Upload)
	engine.POST("/question", h.Question)
	logger.Info("HTTP routes registered")
}
