package middleware

import (
	"fmt"

	"github.com/spf13/pflag"
)

// 请求 ID 生成器类型。
const (
	GeneratorHex  = "hex"
	GeneratorULID = "ulid"
)

// RequestIDOptions defines request ID middleware options.
type RequestIDOptions struct {
	Header string `json:"header" mapstructure:"header"`
	// Generator is "hex" (16 random bytes) or "ulid".
	Generator string `json:"generator" mapstructure:"generator"`
}

// NewRequestIDOptions creates default request ID options.
func NewRequestIDOptions() *RequestIDOptions {
	return &RequestIDOptions{
		Header:    "X-Request-ID",
		Generator: GeneratorULID,
	}
}

// AddFlags adds flags for request ID options to the specified FlagSet.
func (o *RequestIDOptions) AddFlags(fs *pflag.FlagSet, prefixes ...string) {
	fs.StringVar(&o.Header, joinFlag(prefixes, MiddlewareRequestID, "header"), o.Header, "Request ID header name.")
	fs.StringVar(&o.Generator, joinFlag(prefixes, MiddlewareRequestID, "generator"), o.Generator, "Request ID generator (hex, ulid).")
}

// Validate validates the request ID options.
func (o *RequestIDOptions) Validate() []error {
	if o == nil {
		return nil
	}
	var errs []error
	if o.Header == "" {
		errs = append(errs, fmt.Errorf("request-id header is required"))
	}
	if o.Generator != GeneratorHex && o.Generator != GeneratorULID {
		errs = append(errs, fmt.Errorf("unknown request-id generator %q", o.Generator))
	}
	return errs
}

// Complete completes the request ID options with defaults.
func (o *RequestIDOptions) Complete() error {
	if o.Header == "" {
		o.Header = "X-Request-ID"
	}
	if o.Generator == "" {
		o.Generator = GeneratorULID
	}
	return nil
}
