// Package middleware provides middleware configuration options.
package middleware

import (
	"fmt"
	"slices"

	"github.com/spf13/pflag"

	"github.com/kart-io/wizora/pkg/options"
)

// 中间件名称常量。
const (
	MiddlewareRecovery  = "recovery"
	MiddlewareRequestID = "request-id"
	MiddlewareLogger    = "logger"
	MiddlewareCORS      = "cors"
	MiddlewareBodyLimit = "body-limit"
	MiddlewareTimeout   = "timeout"
	MiddlewareMetrics   = "metrics"
	MiddlewareHealth    = "health"
)

// Config 定义单个中间件配置的统一接口。
type Config interface {
	Validate() []error
	Complete() error
	AddFlags(fs *pflag.FlagSet, prefixes ...string)
}

var _ options.IOptions = (*Options)(nil)

// Options 中间件配置集合。
// Middleware 同时决定启用哪些中间件以及它们的应用顺序。
type Options struct {
	Middleware []string `json:"enabled" mapstructure:"enabled"`

	Recovery  *RecoveryOptions  `json:"recovery" mapstructure:"recovery"`
	RequestID *RequestIDOptions `json:"request-id" mapstructure:"request-id"`
	Logger    *LoggerOptions    `json:"logger" mapstructure:"logger"`
	CORS      *CORSOptions      `json:"cors" mapstructure:"cors"`
	BodyLimit *BodyLimitOptions `json:"body-limit" mapstructure:"body-limit"`
	Timeout   *TimeoutOptions   `json:"timeout" mapstructure:"timeout"`
	Metrics   *MetricsOptions   `json:"metrics" mapstructure:"metrics"`
	Health    *HealthOptions    `json:"health" mapstructure:"health"`
}

// Option is a function that configures Options.
type Option func(*Options)

// DefaultOrder 默认启用的中间件及顺序。
var DefaultOrder = []string{
	MiddlewareRecovery,
	MiddlewareRequestID,
	MiddlewareLogger,
	MiddlewareMetrics,
	MiddlewareHealth,
}

// knownOrder 固定的应用顺序，启用列表按此排序。
var knownOrder = []string{
	MiddlewareRecovery,
	MiddlewareRequestID,
	MiddlewareLogger,
	MiddlewareCORS,
	MiddlewareBodyLimit,
	MiddlewareTimeout,
	MiddlewareMetrics,
	MiddlewareHealth,
}

// NewOptions 创建默认中间件选项。
func NewOptions(opts ...Option) *Options {
	o := &Options{
		Middleware: slices.Clone(DefaultOrder),
		Recovery:   NewRecoveryOptions(),
		RequestID:  NewRequestIDOptions(),
		Logger:     NewLoggerOptions(),
		CORS:       NewCORSOptions(),
		BodyLimit:  NewBodyLimitOptions(),
		Timeout:    NewTimeoutOptions(),
		Metrics:    NewMetricsOptions(),
		Health:     NewHealthOptions(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Enable 追加启用的中间件。
func Enable(names ...string) Option {
	return func(o *Options) {
		for _, n := range names {
			if !slices.Contains(o.Middleware, n) {
				o.Middleware = append(o.Middleware, n)
			}
		}
	}
}

// WithBodyLimit enables the body-limit middleware with the given maximum.
func WithBodyLimit(maxSize int64) Option {
	return func(o *Options) {
		Enable(MiddlewareBodyLimit)(o)
		o.BodyLimit.MaxSize = maxSize
	}
}

// IsEnabled reports whether the named middleware is enabled.
func (o *Options) IsEnabled(name string) bool {
	return slices.Contains(o.Middleware, name)
}

// configs 返回名称到配置的映射。
func (o *Options) configs() map[string]Config {
	return map[string]Config{
		MiddlewareRecovery:  o.Recovery,
		MiddlewareRequestID: o.RequestID,
		MiddlewareLogger:    o.Logger,
		MiddlewareCORS:      o.CORS,
		MiddlewareBodyLimit: o.BodyLimit,
		MiddlewareTimeout:   o.Timeout,
		MiddlewareMetrics:   o.Metrics,
		MiddlewareHealth:    o.Health,
	}
}

// AddFlags adds flags for every middleware to the specified FlagSet.
func (o *Options) AddFlags(fs *pflag.FlagSet, prefixes ...string) {
	fs.StringSliceVar(&o.Middleware, options.Join(prefixes...)+"middleware.enabled", o.Middleware,
		fmt.Sprintf("Enabled middleware, any of %v.", knownOrder))
	for _, name := range knownOrder {
		o.configs()[name].AddFlags(fs, prefixes...)
	}
}

// Validate validates the enabled middleware configurations.
func (o *Options) Validate() []error {
	if o == nil {
		return nil
	}
	var errs []error
	cfgs := o.configs()
	for _, name := range o.Middleware {
		cfg, ok := cfgs[name]
		if !ok {
			errs = append(errs, fmt.Errorf("unknown middleware %q", name))
			continue
		}
		errs = append(errs, cfg.Validate()...)
	}
	return errs
}

// Complete fills defaults and normalizes the enabled list into the fixed order.
func (o *Options) Complete() error {
	defaults := NewOptions()
	if o.Recovery == nil {
		o.Recovery = defaults.Recovery
	}
	if o.RequestID == nil {
		o.RequestID = defaults.RequestID
	}
	if o.Logger == nil {
		o.Logger = defaults.Logger
	}
	if o.CORS == nil {
		o.CORS = defaults.CORS
	}
	if o.BodyLimit == nil {
		o.BodyLimit = defaults.BodyLimit
	}
	if o.Timeout == nil {
		o.Timeout = defaults.Timeout
	}
	if o.Metrics == nil {
		o.Metrics = defaults.Metrics
	}
	if o.Health == nil {
		o.Health = defaults.Health
	}

	for _, cfg := range o.configs() {
		if err := cfg.Complete(); err != nil {
			return err
		}
	}

	ordered := make([]string, 0, len(o.Middleware))
	for _, name := range knownOrder {
		if slices.Contains(o.Middleware, name) {
			ordered = append(ordered, name)
		}
	}
	for _, name := range o.Middleware {
		if !slices.Contains(knownOrder, name) {
			ordered = append(ordered, name) // Validate reports it
		}
	}
	o.Middleware = ordered
	return nil
}
