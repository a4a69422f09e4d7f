// Package imageproxy provides the image proxy server implementation.
package imageproxy

import (
	"context"

	"github.com/kart-io/logger"

	"github.com/kart-io/wizora/internal/bootstrap"
	"github.com/kart-io/wizora/internal/imageproxy/biz"
	"github.com/kart-io/wizora/internal/imageproxy/handler"
	"github.com/kart-io/wizora/internal/imageproxy/router"
	"github.com/kart-io/wizora/internal/imageproxy/store"
	"github.com/kart-io/wizora/internal/imageproxy/upstream"
	"github.com/kart-io/wizora/pkg/infra/app"
	"github.com/kart-io/wizora/pkg/infra/server"
	imageopts "github.com/kart-io/wizora/pkg/options/imageproxy"
	logopts "github.com/kart-io/wizora/pkg/options/logger"
	mwopts "github.com/kart-io/wizora/pkg/options/middleware"
	httpopts "github.com/kart-io/wizora/pkg/options/server/http"
)

// Name is the name of the application.
const Name = "wizora-image-proxy"

// Config contains application-related configurations.
type Config struct {
	HTTPOptions       *httpopts.Options
	LogOptions        *logopts.Options
	ImageOptions      *imageopts.Options
	MiddlewareOptions *mwopts.Options
}

// Server represents the image proxy server.
type Server struct {
	srv *server.Manager
}

// NewServer initializes and returns a new Server instance.
func (cfg *Config) NewServer(ctx context.Context) (*Server, error) {
	if err := bootstrap.NewLoggingInitializer(cfg.LogOptions, Name, app.GetVersion()).Initialize(ctx); err != nil {
		return nil, err
	}

	st, err := store.New(ctx, cfg.ImageOptions)
	if err != nil {
		return nil, err
	}
	logger.Infow("image store initialized", "store", st.Name())

	client := upstream.NewClient(cfg.ImageOptions.UpstreamURL, cfg.ImageOptions.UpstreamTimeout)
	h := handler.NewImageHandler(biz.NewService(client, st))

	mgr := server.NewManager(server.Options{
		HTTP:       cfg.HTTPOptions,
		Middleware: cfg.MiddlewareOptions,
	})
	router.Register(mgr, h, st)

	logger.Infow("image proxy initialized",
		"upstream", cfg.ImageOptions.UpstreamURL,
		"timeout", cfg.ImageOptions.UpstreamTimeout.String(),
		"public_base_url", cfg.ImageOptions.PublicBaseURL,
	)
	return &Server{srv: mgr}, nil
}

// Run starts the server and blocks until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	defer func() { _ = logger.Flush() }()
	return s.srv.Run(ctx)
}
