// Package server runs the HTTP transport of a service with a unified
// start/stop lifecycle and ordered cleanup on shutdown.
package server

import "context"

// Lifecycle defines the lifecycle interface for servers.
type Lifecycle interface {
	// Start starts the server. It returns once the server accepts connections.
	Start(ctx context.Context) error
	// Stop stops the server gracefully.
	Stop(ctx context.Context) error
}

// Runnable represents a component that can be started and stopped.
type Runnable interface {
	Lifecycle
	// Name returns the server name for identification.
	Name() string
}

// Closer releases a resource after every server has stopped.
type Closer struct {
	Name  string
	Close func(ctx context.Context) error
}
