package middleware

import (
	"errors"

	"github.com/spf13/pflag"
)

// BodyLimitOptions defines request body size limit options.
type BodyLimitOptions struct {
	// MaxSize 最大请求体字节数。
	MaxSize int64 `json:"max-size" mapstructure:"max-size"`
}

// NewBodyLimitOptions creates default body limit options (32 MiB).
func NewBodyLimitOptions() *BodyLimitOptions {
	return &BodyLimitOptions{MaxSize: 32 << 20}
}

// AddFlags adds flags for body limit options to the specified FlagSet.
func (o *BodyLimitOptions) AddFlags(fs *pflag.FlagSet, prefixes ...string) {
	fs.Int64Var(&o.MaxSize, joinFlag(prefixes, MiddlewareBodyLimit, "max-size"), o.MaxSize, "Maximum request body size in bytes.")
}

// Validate validates the body limit options.
func (o *BodyLimitOptions) Validate() []error {
	if o == nil {
		return nil
	}
	if o.MaxSize <= 0 {
		return []error{errors.New("body-limit max-size must be positive")}
	}
	return nil
}

// Complete completes the body limit options with defaults.
func (o *BodyLimitOptions) Complete() error {
	return nil
}
