// Package bootstrap provides the initialization steps shared by every service binary.
package bootstrap

import "context"

// Initializer sets up one subsystem of a service.
type Initializer interface {
	// Name returns the name of the initializer for logging purposes.
	Name() string

	// Initialize performs the initialization logic.
	Initialize(ctx context.Context) error
}

// Shutdowner defines the interface for components that need graceful shutdown.
type Shutdowner interface {
	// Shutdown releases the component. ctx may carry the shutdown deadline.
	Shutdown(ctx context.Context) error
}

// InitializeAll runs the initializers in order and stops at the first failure.
func InitializeAll(ctx context.Context, inits ...Initializer) error {
	for _, i := range inits {
		if err := i.Initialize(ctx); err != nil {
			return err
		}
	}
	return nil
}
