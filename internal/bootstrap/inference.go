package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/kart-io/logger"

	"github.com/kart-io/wizora/internal/pkg/inference"
	"github.com/kart-io/wizora/pkg/infra/middleware"
	"github.com/kart-io/wizora/pkg/infra/pool"
	llmopts "github.com/kart-io/wizora/pkg/options/llm"
	poolopts "github.com/kart-io/wizora/pkg/options/pool"
)

// InferenceInitializer owns the worker pool every model of a service runs on.
type InferenceInitializer struct {
	name     string
	poolOpts *poolopts.Options
	pool     *pool.Pool
	checks   []middleware.ReadinessCheck
}

var (
	_ Initializer = (*InferenceInitializer)(nil)
	_ Shutdowner  = (*InferenceInitializer)(nil)
)

// NewInferenceInitializer creates a new InferenceInitializer.
func NewInferenceInitializer(name string, opts *poolopts.Options) *InferenceInitializer {
	return &InferenceInitializer{name: name, poolOpts: opts}
}

// Name returns the name of the initializer.
func (ii *InferenceInitializer) Name() string {
	return "inference"
}

// Initialize creates the worker pool.
func (ii *InferenceInitializer) Initialize(_ context.Context) error {
	p, err := pool.NewPool(ii.name, pool.ConfigFromOptions(ii.poolOpts))
	if err != nil {
		return fmt.Errorf("failed to create worker pool: %w", err)
	}
	ii.pool = p
	return nil
}

// Runner builds the provider described by opts and binds it to the pool.
// check names the readiness check that pings the provider; empty skips it.
func (ii *InferenceInitializer) Runner(opts *llmopts.ProviderOptions, check string) (*inference.Runner, error) {
	if ii.pool == nil {
		return nil, fmt.Errorf("inference initializer not initialized")
	}
	provider, err := inference.NewProvider(opts)
	if err != nil {
		return nil, err
	}
	r := inference.NewRunner(ii.pool, provider)
	if check != "" {
		ii.checks = append(ii.checks, middleware.ReadinessCheck{Name: check, Check: r.Ping})
	}
	return r, nil
}

// Checks returns the readiness checks registered by Runner.
func (ii *InferenceInitializer) Checks() []middleware.ReadinessCheck {
	return ii.checks
}

// Shutdown waits for in-flight model calls until ctx expires, then releases the pool.
func (ii *InferenceInitializer) Shutdown(ctx context.Context) error {
	if ii.pool == nil {
		return nil
	}
	timeout := 5 * time.Second
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
	}
	if err := ii.pool.ReleaseTimeout(timeout); err != nil {
		logger.Warnw("worker pool did not drain in time", "pool", ii.name, "error", err)
		return err
	}
	return nil
}
