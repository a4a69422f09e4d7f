package server

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/kart-io/logger"
	utilerrors "k8s.io/apimachinery/pkg/util/errors"

	"github.com/kart-io/wizora/pkg/infra/middleware"
	"github.com/kart-io/wizora/pkg/infra/server/transport/http"
	mwopts "github.com/kart-io/wizora/pkg/options/middleware"
	httpopts "github.com/kart-io/wizora/pkg/options/server/http"
)

// Options configures a Manager.
type Options struct {
	HTTP       *httpopts.Options
	Middleware *mwopts.Options
	// Checks back the readiness endpoint.
	Checks []middleware.ReadinessCheck
}

// Manager owns the HTTP server, extra runnables and the resources that must be
// released once they have stopped.
type Manager struct {
	opts       Options
	httpServer *http.Server
	servers    []Runnable
	closers    []Closer
	mu         sync.Mutex
	started    bool
}

// NewManager creates a new server manager with the given options.
func NewManager(opts Options) *Manager {
	if opts.HTTP == nil {
		opts.HTTP = httpopts.NewOptions()
	}
	return &Manager{
		opts:       opts,
		httpServer: http.NewServer(opts.HTTP, opts.Middleware, opts.Checks...),
	}
}

// HTTPServer returns the HTTP server.
func (m *Manager) HTTPServer() *http.Server {
	return m.httpServer
}

// AddServer adds a custom server to the manager.
func (m *Manager) AddServer(server Runnable) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.servers = append(m.servers, server)
}

// AddCloser registers a cleanup step. Closers run in reverse order of registration.
func (m *Manager) AddCloser(name string, fn func(ctx context.Context) error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closers = append(m.closers, Closer{Name: name, Close: fn})
}

// Start starts all servers.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	if m.started {
		m.mu.Unlock()
		return fmt.Errorf("server manager already started")
	}
	m.started = true
	m.mu.Unlock()

	if err := m.httpServer.Start(ctx); err != nil {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}
	logger.Infow("HTTP server started", "addr", m.httpServer.Addr())

	for _, server := range m.servers {
		if err := server.Start(ctx); err != nil {
			_ = m.httpServer.Stop(ctx)
			return fmt.Errorf("failed to start server %s: %w", server.Name(), err)
		}
		logger.Infow("Custom server started", "name", server.Name())
	}

	return nil
}

// Stop stops all servers gracefully, then runs the closers.
func (m *Manager) Stop(ctx context.Context) error {
	m.mu.Lock()
	if !m.started {
		m.mu.Unlock()
		return nil
	}
	m.started = false
	m.mu.Unlock()

	var errs []error

	for _, server := range m.servers {
		if err := server.Stop(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to stop server %s: %w", server.Name(), err))
		}
	}

	if err := m.httpServer.Stop(ctx); err != nil {
		errs = append(errs, fmt.Errorf("failed to stop HTTP server: %w", err))
	}
	logger.Info("HTTP server stopped")

	for i := len(m.closers) - 1; i >= 0; i-- {
		c := m.closers[i]
		if err := c.Close(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to close %s: %w", c.Name, err))
			continue
		}
		logger.Debugw("Resource closed", "name", c.Name)
	}

	return utilerrors.NewAggregate(errs)
}

// Run starts the servers and blocks until ctx is cancelled or the HTTP server
// fails, then shuts everything down within the configured timeout.
func (m *Manager) Run(ctx context.Context) error {
	if err := m.Start(ctx); err != nil {
		return err
	}

	var serveErr error
	select {
	case <-ctx.Done():
		logger.Info("Server shutting down...")
	case serveErr = <-m.httpServer.Errors():
		logger.Errorw("HTTP server failed", "error", serveErr)
	}

	timeout := m.opts.HTTP.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	return utilerrors.NewAggregate([]error{serveErr, m.Stop(shutdownCtx)})
}
