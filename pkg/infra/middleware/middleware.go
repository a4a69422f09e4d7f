// Package middleware provides the gin middleware shared by every service.
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/kart-io/logger"

	mwopts "github.com/kart-io/wizora/pkg/options/middleware"
)

// Apply installs the enabled middleware on the engine in the configured
// order and registers the routes some of them own.
func Apply(engine *gin.Engine, opts *mwopts.Options, checks ...ReadinessCheck) {
	if opts == nil {
		return
	}
	for _, name := range opts.Middleware {
		switch name {
		case mwopts.MiddlewareRecovery:
			engine.Use(Recovery(*opts.Recovery))
		case mwopts.MiddlewareRequestID:
			engine.Use(RequestID(*opts.RequestID))
		case mwopts.MiddlewareLogger:
			engine.Use(Logger(*opts.Logger))
		case mwopts.MiddlewareCORS:
			engine.Use(CORS(*opts.CORS))
		case mwopts.MiddlewareBodyLimit:
			engine.Use(BodyLimit(*opts.BodyLimit))
		case mwopts.MiddlewareTimeout:
			engine.Use(Timeout(*opts.Timeout))
		case mwopts.MiddlewareMetrics:
			collector := NewMetricsCollector(*opts.Metrics)
			engine.Use(collector.Middleware(*opts.Metrics))
			engine.GET(opts.Metrics.Path, collector.Handler())
		case mwopts.MiddlewareHealth:
			RegisterHealthRoutes(engine, *opts.Health, checks...)
		default:
			logger.Warnw("Unknown middleware skipped", "name", name)
			continue
		}
		logger.Debugw("Middleware applied", "name", name)
	}
}
