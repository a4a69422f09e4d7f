package middleware

import (
	"errors"
	"time"

	"github.com/spf13/pflag"
)

// TimeoutOptions defines timeout middleware options.
type TimeoutOptions struct {
	Timeout   time.Duration `json:"timeout" mapstructure:"timeout"`
	SkipPaths []string      `json:"skip-paths" mapstructure:"skip-paths"`
}

// NewTimeoutOptions creates default timeout options.
func NewTimeoutOptions() *TimeoutOptions {
	return &TimeoutOptions{
		Timeout:   120 * time.Second,
		SkipPaths: []string{"/healthz", "/readyz", "/metrics"},
	}
}

// WithTimeout configures and enables the timeout middleware.
func WithTimeout(timeout time.Duration) Option {
	return func(o *Options) {
		Enable(MiddlewareTimeout)(o)
		o.Timeout.Timeout = timeout
	}
}

// AddFlags adds flags for timeout options to the specified FlagSet.
func (o *TimeoutOptions) AddFlags(fs *pflag.FlagSet, prefixes ...string) {
	fs.DurationVar(&o.Timeout, joinFlag(prefixes, MiddlewareTimeout, "timeout"), o.Timeout, "Deadline attached to every request context.")
	fs.StringSliceVar(&o.SkipPaths, joinFlag(prefixes, MiddlewareTimeout, "skip-paths"), o.SkipPaths, "Paths without a deadline.")
}

// Validate validates the timeout options.
func (o *TimeoutOptions) Validate() []error {
	if o == nil {
		return nil
	}
	if o.Timeout <= 0 {
		return []error{errors.New("timeout must be positive")}
	}
	return nil
}

// Complete completes the timeout options with defaults.
func (o *TimeoutOptions) Complete() error {
	return nil
}
