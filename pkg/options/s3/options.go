// Package s3 provides object storage configuration options.
package s3

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/kart-io/wizora/pkg/options"
)

var _ options.IOptions = (*Options)(nil)

// Options defines the S3 bucket images are written to.
type Options struct {
	Bucket   string `json:"bucket" mapstructure:"bucket"`
	Region   string `json:"region" mapstructure:"region"`
	Prefix   string `json:"prefix" mapstructure:"prefix"`
	Endpoint string `json:"endpoint" mapstructure:"endpoint"`
	// UsePathStyle is needed by most S3-compatible stores (MinIO).
	UsePathStyle bool `json:"use-path-style" mapstructure:"use-path-style"`
}

// NewOptions creates a new Options object with default values.
func NewOptions() *Options {
	return &Options{
		Region: "us-east-1",
		Prefix: "images",
	}
}

// AddFlags adds flags for S3 options to the specified FlagSet.
func (o *Options) AddFlags(fs *pflag.FlagSet, prefixes ...string) {
	p := options.Join(prefixes...)
	fs.StringVar(&o.Bucket, p+"s3.bucket", o.Bucket, "S3 bucket name.")
	fs.StringVar(&o.Region, p+"s3.region", o.Region, "S3 region.")
	fs.StringVar(&o.Prefix, p+"s3.prefix", o.Prefix, "Key prefix for stored objects.")
	fs.StringVar(&o.Endpoint, p+"s3.endpoint", o.Endpoint, "Custom endpoint for S3-compatible stores.")
	fs.BoolVar(&o.UsePathStyle, p+"s3.use-path-style", o.UsePathStyle, "Use path-style addressing.")
}

// Validate checks the options. An empty bucket is only an error when S3 is selected,
// which the caller decides.
func (o *Options) Validate() []error {
	if o == nil {
		return nil
	}
	if o.Bucket != "" && o.Region == "" {
		return []error{fmt.Errorf("s3.region is required")}
	}
	return nil
}
