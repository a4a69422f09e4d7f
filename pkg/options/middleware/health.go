package middleware

import (
	"errors"

	"github.com/spf13/pflag"
)

// HealthOptions defines health check and version route options.
type HealthOptions struct {
	LivenessPath  string `json:"liveness-path" mapstructure:"liveness-path"`
	ReadinessPath string `json:"readiness-path" mapstructure:"readiness-path"`
	VersionPath   string `json:"version-path" mapstructure:"version-path"`
}

// NewHealthOptions creates default health options.
func NewHealthOptions() *HealthOptions {
	return &HealthOptions{
		LivenessPath:  "/healthz",
		ReadinessPath: "/readyz",
		VersionPath:   "/version",
	}
}

// AddFlags adds flags for health options to the specified FlagSet.
func (o *HealthOptions) AddFlags(fs *pflag.FlagSet, prefixes ...string) {
	fs.StringVar(&o.LivenessPath, joinFlag(prefixes, MiddlewareHealth, "liveness-path"), o.LivenessPath, "Liveness probe path")
	fs.StringVar(&o.ReadinessPath, joinFlag(prefixes, MiddlewareHealth, "readiness-path"), o.ReadinessPath, "Readiness probe path")
	fs.StringVar(&o.VersionPath, joinFlag(prefixes, MiddlewareHealth, "version-path"), o.VersionPath, "Version endpoint path")
}

// Validate validates the health options.
func (o *HealthOptions) Validate() []error {
	if o == nil {
		return nil
	}
	if o.LivenessPath == "" && o.ReadinessPath == "" {
		return []error{errors.New("health check path is required")}
	}
	return nil
}

// Complete completes the health options with defaults.
func (o *HealthOptions) Complete() error {
	return nil
}
