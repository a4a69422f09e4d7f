package middleware

import "github.com/spf13/pflag"

// RecoveryOptions defines recovery middleware options.
type RecoveryOptions struct {
	EnableStackTrace bool `json:"enable-stack-trace" mapstructure:"enable-stack-trace"`
}

// NewRecoveryOptions creates default recovery options.
func NewRecoveryOptions() *RecoveryOptions {
	return &RecoveryOptions{EnableStackTrace: true}
}

// AddFlags adds flags for recovery options to the specified FlagSet.
func (o *RecoveryOptions) AddFlags(fs *pflag.FlagSet, prefixes ...string) {
	fs.BoolVar(&o.EnableStackTrace, joinFlag(prefixes, MiddlewareRecovery, "enable-stack-trace"), o.EnableStackTrace,
		"Log the stack trace of recovered panics.")
}

// Validate validates the recovery options.
func (o *RecoveryOptions) Validate() []error { return nil }

// Complete completes the recovery options with defaults.
func (o *RecoveryOptions) Complete() error { return nil }
