// Package options contains flags and options for initializing the web QA server.
package options

import (
	"fmt"

	utilerrors "k8s.io/apimachinery/pkg/util/errors"

	"github.com/kart-io/wizora/internal/webqa"
	"github.com/kart-io/wizora/pkg/app/cliflag"
	llmopts "github.com/kart-io/wizora/pkg/options/llm"
	logopts "github.com/kart-io/wizora/pkg/options/logger"
	mwopts "github.com/kart-io/wizora/pkg/options/middleware"
	poolopts "github.com/kart-io/wizora/pkg/options/pool"
	httpopts "github.com/kart-io/wizora/pkg/options/server/http"
	webqaopts "github.com/kart-io/wizora/pkg/options/webqa"
)

// ServerOptions contains the configuration options for the server.
type ServerOptions struct {
	// HTTPOptions contains HTTP server configuration.
	HTTPOptions *httpopts.Options `json:"http" mapstructure:"http"`

	// LogOptions contains logger configuration.
	LogOptions *logopts.Options `json:"log" mapstructure:"log"`

	// PoolOptions bounds concurrent model calls.
	PoolOptions *poolopts.Options `json:"pool" mapstructure:"pool"`

	// SummarizerOptions selects the summarization model.
	SummarizerOptions *llmopts.ProviderOptions `json:"summarizer" mapstructure:"summarizer"`

	// LLMOptions selects the answering model.
	LLMOptions *llmopts.ProviderOptions `json:"llm" mapstructure:"llm"`

	// WebQAOptions contains fetch and generation limits.
	WebQAOptions *webqaopts.Options `json:"webqa" mapstructure:"webqa"`

	// MiddlewareOptions contains middleware configuration.
	MiddlewareOptions *mwopts.Options `json:"middleware" mapstructure:"middleware"`
}

// NewServerOptions creates a ServerOptions instance with default values.
func NewServerOptions() *ServerOptions {
	summarizer := llmopts.NewProviderOptions("summarizer", "facebook/bart-large-cnn")
	summarizer.Task = "summarization"

	return &ServerOptions{
		HTTPOptions:       httpopts.NewOptions(httpopts.WithAddr(":8003")),
		LogOptions:        logopts.NewOptions(),
		PoolOptions:       poolopts.NewOptions(),
		SummarizerOptions: summarizer,
		LLMOptions:        llmopts.NewProviderOptions("llm", "google/flan-t5-small"),
		WebQAOptions:      webqaopts.NewOptions(),
		MiddlewareOptions: mwopts.NewOptions(mwopts.WithBodyLimit(1 << 20)),
	}
}

// Flags returns flags for a specific server by section name.
func (o *ServerOptions) Flags() (fss cliflag.NamedFlagSets) {
	o.HTTPOptions.AddFlags(fss.FlagSet("http"))
	o.LogOptions.AddFlags(fss.FlagSet("log"))
	o.PoolOptions.AddFlags(fss.FlagSet("pool"))
	o.SummarizerOptions.AddFlags(fss.FlagSet("summarizer"))
	o.LLMOptions.AddFlags(fss.FlagSet("llm"))
	o.WebQAOptions.AddFlags(fss.FlagSet("webqa"))
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
	if err := o.SummarizerOptions.Complete(); err != nil {
		return fmt.Errorf("summarizer: %w", err)
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
	errs = append(errs, o.SummarizerOptions.Validate()...)
	errs = append(errs, o.LLMOptions.Validate()...)
	errs = append(errs, o.WebQAOptions.Validate()...)
	errs = append(errs, o.MiddlewareOptions.Validate()...)

	return utilerrors.NewAggregate(errs)
}

// Config builds a webqa.Config based on ServerOptions.
func (o *ServerOptions) Config() (*webqa.Config, error) {
	return &webqa.Config{
		HTTPOptions:       o.HTTPOptions,
		LogOptions:        o.LogOptions,
		PoolOptions:       o.PoolOptions,
		SummarizerOptions: o.SummarizerOptions,
		LLMOptions:        o.LLMOptions,
		WebQAOptions:      o.WebQAOptions,
		MiddlewareOptions: o.MiddlewareOptions,
	}, nil
}
