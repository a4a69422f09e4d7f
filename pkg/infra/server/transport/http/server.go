// Package http provides the gin based HTTP transport.
package http

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/kart-io/wizora/pkg/infra/middleware"
	mwopts "github.com/kart-io/wizora/pkg/options/middleware"
	options "github.com/kart-io/wizora/pkg/options/server/http"
	apierrors "github.com/kart-io/wizora/pkg/utils/errors"
	"github.com/kart-io/wizora/pkg/utils/response"
)

// Server is the HTTP server implementation.
type Server struct {
	opts     *options.Options
	engine   *gin.Engine
	server   *http.Server
	listener net.Listener
	mu       sync.RWMutex
	errCh    chan error
}

// NewServer creates a new HTTP server and applies the configured middleware.
// Routes registered on Engine() afterwards inherit the middleware chain.
func NewServer(serverOpts *options.Options, middlewareOpts *mwopts.Options, checks ...middleware.ReadinessCheck) *Server {
	if serverOpts == nil {
		serverOpts = options.NewOptions()
	}
	if middlewareOpts == nil {
		middlewareOpts = mwopts.NewOptions()
	}
	_ = middlewareOpts.Complete()

	if gin.Mode() == gin.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}

	// 不使用 gin 默认中间件
	engine := gin.New()
	engine.NoRoute(func(c *gin.Context) {
		response.Fail(c, apierrors.ErrRouteNotFound)
	})
	middleware.Apply(engine, middlewareOpts, checks...)

	return &Server{
		opts:   serverOpts,
		engine: engine,
		errCh:  make(chan error, 1),
	}
}

// Name returns the server name.
func (s *Server) Name() string {
	return "http[gin]"
}

// Engine returns the underlying gin.Engine.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Addr returns the bound address once started, otherwise the configured one.
func (s *Server) Addr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.opts.Addr
}

// Errors delivers the error that ended Serve, if any.
func (s *Server) Errors() <-chan error {
	return s.errCh
}

// Start binds the listener and serves in the background.
func (s *Server) Start(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return err
	}
	srv := &http.Server{
		Handler:      s.engine,
		ReadTimeout:  s.opts.ReadTimeout,
		WriteTimeout: s.opts.WriteTimeout,
		IdleTimeout:  s.opts.IdleTimeout,
	}

	s.mu.Lock()
	s.listener = ln
	s.server = srv
	s.mu.Unlock()

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.errCh <- err
		}
	}()
	return nil
}

// Stop stops the HTTP server gracefully.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.RLock()
	srv := s.server
	s.mu.RUnlock()
	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}
