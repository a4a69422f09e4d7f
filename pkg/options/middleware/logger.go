package middleware

import "github.com/spf13/pflag"

// LoggerOptions defines request logging options.
type LoggerOptions struct {
	SkipPaths []string `json:"skip-paths" mapstructure:"skip-paths"`
}

// NewLoggerOptions creates default logger options.
func NewLoggerOptions() *LoggerOptions {
	return &LoggerOptions{
		SkipPaths: []string{"/healthz", "/readyz", "/metrics"},
	}
}

// AddFlags adds flags for logger options to the specified FlagSet.
func (o *LoggerOptions) AddFlags(fs *pflag.FlagSet, prefixes ...string) {
	fs.StringSliceVar(&o.SkipPaths, joinFlag(prefixes, MiddlewareLogger, "skip-paths"), o.SkipPaths, "Paths that are not logged.")
}

// Validate validates the logger options.
func (o *LoggerOptions) Validate() []error { return nil }

// Complete completes the logger options with defaults.
func (o *LoggerOptions) Complete() error { return nil }
