// Package router registers the image proxy routes.
package router

import (
	"github.com/kart-io/logger"

	"github.com/kart-io/wizora/internal/imageproxy/handler"
	"github.com/kart-io/wizora/internal/imageproxy/store"
	"github.com/kart-io/wizora/pkg/infra/server"
)

// Register registers the generation endpoint and, for a local store, the
// static image mount.
func Register(mgr *server.Manager, h *handler.ImageHandler, st store.ImageStore) {
	engine := mgr.HTTPServer().Engine()
	engine.POST("/generate-image", h.Generate)

	if local, ok := st.(*store.LocalStore); ok {
		engine.Static(store.MountPath, local.Dir())
		logger.Infow("image directory mounted", "path", store.MountPath, "dir", local.Dir())
	}
	logger.Info("HTTP routes registered")
}
