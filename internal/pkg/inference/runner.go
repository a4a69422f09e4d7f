// Package inference runs model calls on the shared worker pool so that slow
// generation never runs on the request goroutine.
package inference

import (
	"context"
	stderrors "errors"

	"github.com/kart-io/wizora/pkg/infra/pool"
	"github.com/kart-io/wizora/pkg/llm"
	"github.com/kart-io/wizora/pkg/utils/errors"
)

// Generator is the model capability the services depend on.
type Generator interface {
	Generate(ctx context.Context, prompt string, opts ...llm.GenerateOption) (string, error)
}

// Runner offloads Generate calls onto a bounded pool.
type Runner struct {
	pool     *pool.Pool
	provider llm.Provider
}

var _ Generator = (*Runner)(nil)

// NewRunner creates a Runner.
func NewRunner(p *pool.Pool, provider llm.Provider) *Runner {
	return &Runner{pool: p, provider: provider}
}

type result struct {
	text string
	err  error
}

// Generate submits the call and waits for it or for ctx. The wait covers
// the time spent queued in a blocking pool as well as the call itself; a
// task abandoned while queued is skipped once a worker picks it up.
// A saturated or closed pool returns ErrServiceBusy.
func (r *Runner) Generate(ctx context.Context, prompt string, opts ...llm.GenerateOption) (string, error) {
	done := make(chan result, 1)
	submitted := make(chan error, 1)
	go func() {
		submitted <- r.pool.SubmitWithContext(ctx, func() {
			text, err := r.provider.Generate(ctx, prompt, opts...)
			done <- result{text: text, err: err}
		})
	}()

	select {
	case err := <-submitted:
		if err != nil {
			if stderrors.Is(err, pool.ErrPoolOverload) || stderrors.Is(err, pool.ErrPoolClosed) {
				return "", errors.ErrServiceBusy.WithCause(err)
			}
			return "", err
		}
	case <-ctx.Done():
		return "", ctx.Err()
	}

	select {
	case res := <-done:
		return res.text, res.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Name returns the provider name.
func (r *Runner) Name() string {
	return r.provider.Name()
}

// Ping checks the provider when it supports it.
func (r *Runner) Ping(ctx context.Context) error {
	if p, ok := r.provider.(llm.Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

// Classify maps a model failure to an Errno. Errnos pass through, deadlines
// become ErrTimeout and everything else is wrapped in fallback.
func Classify(err error, fallback *errors.Errno) error {
	if err == nil {
		return nil
	}
	var e *errors.Errno
	if stderrors.As(err, &e) {
		return e
	}
	if stderrors.Is(err, context.DeadlineExceeded) {
		return errors.ErrTimeout.WithCause(err)
	}
	return fallback.WithCause(err)
}
