package middleware

import (
	"errors"

	"github.com/spf13/pflag"
)

// CORSOptions defines CORS middleware options.
type CORSOptions struct {
	AllowOrigins     []string `json:"allow-origins" mapstructure:"allow-origins"`
	AllowMethods     []string `json:"allow-methods" mapstructure:"allow-methods"`
	AllowHeaders     []string `json:"allow-headers" mapstructure:"allow-headers"`
	ExposeHeaders    []string `json:"expose-headers" mapstructure:"expose-headers"`
	AllowCredentials bool     `json:"allow-credentials" mapstructure:"allow-credentials"`
	MaxAge           int      `json:"max-age" mapstructure:"max-age"`
}

// NewCORSOptions creates default CORS options.
func NewCORSOptions() *CORSOptions {
	return &CORSOptions{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "X-Request-ID", "X-Session-ID"},
		ExposeHeaders: []string{"X-Request-ID", "X-Error-Code", "X-Session-ID"},
		MaxAge:        86400,
	}
}

// AddFlags adds flags for CORS options to the specified FlagSet.
func (o *CORSOptions) AddFlags(fs *pflag.FlagSet, prefixes ...string) {
	fs.StringSliceVar(&o.AllowOrigins, joinFlag(prefixes, MiddlewareCORS, "allow-origins"), o.AllowOrigins, "CORS allowed origins.")
	fs.StringSliceVar(&o.AllowMethods, joinFlag(prefixes, MiddlewareCORS, "allow-methods"), o.AllowMethods, "CORS allowed methods.")
	fs.StringSliceVar(&o.AllowHeaders, joinFlag(prefixes, MiddlewareCORS, "allow-headers"), o.AllowHeaders, "CORS allowed headers.")
	fs.StringSliceVar(&o.ExposeHeaders, joinFlag(prefixes, MiddlewareCORS, "expose-headers"), o.ExposeHeaders, "CORS exposed headers.")
	fs.BoolVar(&o.AllowCredentials, joinFlag(prefixes, MiddlewareCORS, "allow-credentials"), o.AllowCredentials, "CORS allow credentials.")
	fs.IntVar(&o.MaxAge, joinFlag(prefixes, MiddlewareCORS, "max-age"), o.MaxAge, "CORS preflight max age.")
}

// Validate validates the CORS options.
func (o *CORSOptions) Validate() []error {
	if o == nil {
		return nil
	}
	var errs []error
	if len(o.AllowOrigins) == 0 {
		errs = append(errs, errors.New("CORS: AllowOrigins must be explicitly configured, empty list not allowed"))
	}
	if o.AllowCredentials && len(o.AllowOrigins) == 1 && o.AllowOrigins[0] == "*" {
		errs = append(errs, errors.New("CORS: credentials cannot be combined with a wildcard origin"))
	}
	return errs
}

// Complete completes the CORS options with defaults.
func (o *CORSOptions) Complete() error {
	return nil
}
