// Package options contains flags and options for initializing the image proxy.
package options

import (
	utilerrors "k8s.io/apimachinery/pkg/util/errors"

	"github.com/kart-io/wizora/internal/imageproxy"
	"github.com/kart-io/wizora/pkg/app/cliflag"
	imageopts "github.com/kart-io/wizora/pkg/options/imageproxy"
	logopts "github.com/kart-io/wizora/pkg/options/logger"
	mwopts "github.com/kart-io/wizora/pkg/options/middleware"
	httpopts "github.com/kart-io/wizora/pkg/options/server/http"
)

// ServerOptions contains the configuration options for the server.
type ServerOptions struct {
	// HTTPOptions contains HTTP server configuration.
	HTTPOptions *httpopts.Options `json:"http" mapstructure:"http"`

	// LogOptions contains logger configuration.
	LogOptions *logopts.Options `json:"log" mapstructure:"log"`

	// ImageOptions contains upstream and storage configuration.
	ImageOptions *imageopts.Options `json:"image" mapstructure:"image"`

	// MiddlewareOptions contains middleware configuration.
	MiddlewareOptions *mwopts.Options `json:"middleware" mapstructure:"middleware"`
}

// NewServerOptions creates a ServerOptions instance with default values.
// CORS is open to every origin by default.
func NewServerOptions() *ServerOptions {
	return &ServerOptions{
		HTTPOptions:       httpopts.NewOptions(httpopts.WithAddr(":8000")),
		LogOptions:        logopts.NewOptions(),
		ImageOptions:      imageopts.NewOptions(),
		MiddlewareOptions: mwopts.NewOptions(mwopts.Enable(mwopts.MiddlewareCORS), mwopts.WithBodyLimit(1<<20)),
	}
}

// Flags returns flags for a specific server by section name.
func (o *ServerOptions) Flags() (fss cliflag.NamedFlagSets) {
	o.HTTPOptions.AddFlags(fss.FlagSet("http"))
	o.LogOptions.AddFlags(fss.FlagSet("log"))
	o.ImageOptions.AddFlags(fss.FlagSet("image"))
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
	return o.MiddlewareOptions.Complete()
}

// Validate checks whether the options in ServerOptions are valid.
func (o *ServerOptions) Validate() error {
	errs := []error{}

	errs = append(errs, o.HTTPOptions.Validate()...)
	errs = append(errs, o.LogOptions.Validate()...)
	errs = append(errs, o.ImageOptions.Validate()...)
	errs = append(errs, o.MiddlewareOptions.Validate()...)

	return utilerrors.NewAggregate(errs)
}

// Config builds an imageproxy.Config based on ServerOptions.
func (o *ServerOptions) Config() (*imageproxy.Config, error) {
	return &imageproxy.Config{
		HTTPOptions:       o.HTTPOptions,
		LogOptions:        o.LogOptions,
		ImageOptions:      o.ImageOptions,
		MiddlewareOptions: o.MiddlewareOptions,
	}, nil
}
