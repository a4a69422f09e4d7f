// Package options contains flags and options for initializing the CSV insights server.
package options

import (
	"fmt"

	utilerrors "k8s.io/apimachinery/pkg/util/errors"

	"github.com/kart-io/wizora/internal/csvinsights"
	"github.com/kart-io/wizora/pkg/app/cliflag"
	insightsopts "github.com/kart-io/wizora/pkg/options/insights"
	llmopts "github.com/kart-io/wizora/pkg/options/llm"
	logopts "github.com/kart-io/wizora/pkg/options/logger"
	mwopts "github.com/kart-io/wizora/pkg/options/middleware"
	poolopts "github.com/kart-io/wizora/pkg/options/pool"
	httpopts "github.com/kart-io/wizora/pkg/options/server/http"
)

// ServerOptions contains the configuration options for the server.
type ServerOptions struct {
	// HTTPOptions contains HTTP server configuration.
	HTTPOptions *httpopts.Options `json:"http" mapstructure:"http"`

	// LogOptions contains logger configuration.
	LogOptions *logopts.Options `json:"log" mapstructure:"log"`

	// PoolOptions bounds concurrent model calls.
	PoolOptions *poolopts.Options `json:"pool" mapstructure:"pool"`

	// LLMOptions selects the text generation model.
	LLMOptions *llmopts.ProviderOptions `json:"llm" mapstructure:"llm"`

	// InsightsOptions contains chunking and generation parameters.
	InsightsOptions *insightsopts.Options `json:"insights" mapstructure:"insights"`

	// MiddlewareOptions contains middleware configuration.
	MiddlewareOptions *mwopts.Options `json:"middleware" mapstructure:"middleware"`
}

// NewServerOptions creates a ServerOptions instance with default values.
func NewServerOptions() *ServerOptions {
	return &ServerOptions{
		HTTPOptions:       httpopts.NewOptions(httpopts.WithAddr(":8001")),
		LogOptions:        logopts.NewOptions(),
		PoolOptions:       poolopts.NewOptions(),
		LLMOptions:        llmopts.NewProviderOptions("llm", "google/flan-t5-large"),
		InsightsOptions:   insightsopts.NewOptions(),
		MiddlewareOptions: mwopts.NewOptions(mwopts.WithBodyLimit(32 << 20)),
	}
}

// Flags returns flags for a specific server by section name.
func (o *ServerOptions) Flags() (fss cliflag.NamedFlagSets) {
	o.HTTPOptions.AddFlags(fss.FlagSet("http"))
	o.LogOptions.AddFlags(fss.FlagSet("log"))
	o.PoolOptions.AddFlags(fss.FlagSet("pool"))
	o.LLMOptions.AddFlags(fss.FlagSet("llm"))
	o.InsightsOptions.AddFlags(fss.FlagSet("insights"))
	o.MiddlewareOptions.AddFlags(fss.FlagSet("middleware"))
	return fss
}

// Complete completes all the required options.
func (o *ServerOptions) Complete() error {
	if err := o.HTTPOptions.Complete(); err != nil {
		return err
	}
	if err := o.LogOptions.Complete(); err != nil {
		return err
	}
	if err := o.PoolOptions.Complete(); err != nil {
		return err
	}
	if err := o.LLMOptions.Complete(); err != nil {
		return fmt.Errorf("llm: %w", err)
	}
	return o.MiddlewareOptions.Complete()
}

// Validate checks whether the options in ServerOptions are valid.
func (o *ServerOptions) Validate() error {
	errs := []error{}

	errs = append(errs, o.HTTPOptions.Validate()...)
	errs = append(errs, o.LogOptions.Validate()...)
	errs = append(errs, o.PoolOptions.Validate()...)
	errs = append(errs, o.LLMOptions.Validate()...)
	errs = append(errs, o.InsightsOptions.Validate()...)
	errs = append(errs, o.MiddlewareOptions.Validate()...)

	return utilerrors.NewAggregate(errs)
}

// Config builds a csvinsights.Config based on ServerOptions.
func (o *ServerOptions) Config() (*csvinsights.Config, error) {
	return &csvinsights.Config{
		HTTPOptions:       o.HTTPOptions,
		LogOptions:        o.LogOptions,
		PoolOptions:       o.PoolOptions,
		LLMOptions:        o.LLMOptions,
		InsightsOptions:   o.InsightsOptions,
		MiddlewareOptions: o.MiddlewareOptions,
	}, nil
}
