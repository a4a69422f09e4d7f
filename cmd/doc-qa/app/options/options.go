// Package options contains flags and options for initializing the document QA server.
package options

import (
	"fmt"

	utilerrors "k8s.io/apimachinery/pkg/util/errors"

	"github.com/kart-io/wizora/internal/docqa"
	"github.com/kart-io/wizora/pkg/app/cliflag"
	docqaopts "github.com/kart-io/wizora/pkg/options/docqa"
	llmopts "github.com/kart-io/wizora/pkg/options/llm"
	logopts "github.com/kart-io/wizora/pkg/options/logger"
	mwopts "github.com/kart-io/wizora/pkg/options/middleware"
	poolopts "github.com/kart-io/wizora/pkg/options/pool"
	redisopts "github.com/kart-io/wizora/pkg/options/redis"
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

	// LLMOptions selects the answering model.
	LLMOptions *llmopts.ProviderOptions `json:"llm" mapstructure:"llm"`

	// DocQAOptions contains chunking, storage and answer configuration.
	DocQAOptions *docqaopts.Options `json:"docqa" mapstructure:"docqa"`

	// RedisOptions is used when docqa.store is redis.
	RedisOptions *redisopts.Options `json:"redis" mapstructure:"redis"`

	// MiddlewareOptions contains middleware configuration.
	MiddlewareOptions *mwopts.Options `json:"middleware" mapstructure:"middleware"`
}

// NewServerOptions creates a ServerOptions instance with default values.
func NewServerOptions() *ServerOptions {
	return &ServerOptions{
		HTTPOptions:  httpopts.NewOptions(httpopts.WithAddr(":8002")),
		LogOptions:   logopts.NewOptions(),
		PoolOptions:  poolopts.NewOptions(),
		LLMOptions:   llmopts.NewProviderOptions("llm", "google/flan-t5-base"),
		DocQAOptions: docqaopts.NewOptions(),
		RedisOptions: redisopts.NewOptions(),
		MiddlewareOptions: mwopts.NewOptions(
			mwopts.Enable(mwopts.MiddlewareCORS),
			mwopts.WithBodyLimit(32<<20),
		),
	}
}

// Flags returns flags for a specific server by section name.
func (o *ServerOptions) Flags() (fss cliflag.NamedFlagSets) {
	o.HTTPOptions.AddFlags(fss.FlagSet("http"))
	o.LogOptions.AddFlags(fss.FlagSet("log"))
	o.PoolOptions.AddFlags(fss.FlagSet("pool"))
	o.LLMOptions.AddFlags(fss.FlagSet("llm"))
	o.DocQAOptions.AddFlags(fss.FlagSet("docqa"))
	o.RedisOptions.AddFlags(fss.FlagSet("redis"))
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
	if err := o.RedisOptions.Complete(); err != nil {
		return fmt.Errorf("redis: %w", err)
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
	errs = append(errs, o.DocQAOptions.Validate()...)
	if o.DocQAOptions.Store == docqaopts.StoreRedis {
		errs = append(errs, o.RedisOptions.Validate()...)
	}
	errs = append(errs, o.MiddlewareOptions.Validate()...)

	return utilerrors.NewAggregate(errs)
}

// Config builds a docqa.Config based on ServerOptions.
func (o *ServerOptions) Config() (*docqa.Config, error) {
	return &docqa.Config{
		HTTPOptions:       o.HTTPOptions,
		LogOptions:        o.LogOptions,
		PoolOptions:       o.PoolOptions,
		LLMOptions:        o.LLMOptions,
		DocQAOptions:      o.DocQAOptions,
		RedisOptions:      o.RedisOptions,
		MiddlewareOptions: o.MiddlewareOptions,
	}, nil
}
