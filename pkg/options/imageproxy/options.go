// Package imageproxy provides image proxy service options.
package imageproxy

import (
	"fmt"
	"net/url"
	"time"

	"github.com/spf13/pflag"

	"github.com/kart-io/wizora/pkg/options"
	s3opts "github.com/kart-io/wizora/pkg/options/s3"
)

var _ options.IOptions = (*Options)(nil)

// 图片存储类型。
const (
	StorageLocal = "local"
	StorageS3    = "s3"
)

// Options 定义图片代理配置。
type Options struct {
	// UpstreamURL 图片生成服务地址。
	UpstreamURL string `json:"upstream-url" mapstructure:"upstream-url"`
	// UpstreamTimeout 上游调用超时。
	UpstreamTimeout time.Duration `json:"upstream-timeout" mapstructure:"upstream-timeout"`
	// PublicBaseURL 返回给客户端的图片地址前缀。
	PublicBaseURL string `json:"public-base-url" mapstructure:"public-base-url"`
	// Storage 存储类型（local、s3）。
	Storage string `json:"storage" mapstructure:"storage"`
	// Dir 本地存储目录。
	Dir string `json:"dir" mapstructure:"dir"`
	// S3 对象存储配置。
	S3 *s3opts.Options `json:"s3" mapstructure:"s3"`
}

// NewOptions 创建默认配置。
func NewOptions() *Options {
	return &Options{
		UpstreamURL:     "https://apiimagestrax.vercel.app/api/genimage",
		UpstreamTimeout: 60 * time.Second,
		PublicBaseURL:   "http://127.0.0.1:8000",
		Storage:         StorageLocal,
		Dir:             "images",
		S3:              s3opts.NewOptions(),
	}
}

// AddFlags adds flags for image proxy options to the specified FlagSet.
func (o *Options) AddFlags(fs *pflag.FlagSet, prefixes ...string) {
	p := options.Join(prefixes...)
	fs.StringVar(&o.UpstreamURL, p+"image.upstream-url", o.UpstreamURL, "Image generation API URL.")
	fs.DurationVar(&o.UpstreamTimeout, p+"image.upstream-timeout", o.UpstreamTimeout, "Image generation API timeout.")
	fs.StringVar(&o.PublicBaseURL, p+"image.public-base-url", o.PublicBaseURL, "Base URL used to build returned image links.")
	fs.StringVar(&o.Storage, p+"image.storage", o.Storage, "Image storage backend (local, s3).")
	fs.StringVar(&o.Dir, p+"image.dir", o.Dir, "Directory for the local image store.")
	o.S3.AddFlags(fs, p+"image")
}

// Validate validates the image proxy options.
func (o *Options) Validate() []error {
	var errs []error
	if u, err := url.Parse(o.UpstreamURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("image.upstream-url must be an absolute URL"))
	}
	if o.UpstreamTimeout <= 0 {
		errs = append(errs, fmt.Errorf("image.upstream-timeout must be positive"))
	}
	if u, err := url.Parse(o.PublicBaseURL); err != nil || u.Scheme == "" {
		errs = append(errs, fmt.Errorf("image.public-base-url must be an absolute URL"))
	}
	switch o.Storage {
	case StorageLocal:
		if o.Dir == "" {
			errs = append(errs, fmt.Errorf("image.dir is required for local storage"))
		}
	case StorageS3:
		if o.S3 == nil || o.S3.Bucket == "" {
			errs = append(errs, fmt.Errorf("image.s3.bucket is required for s3 storage"))
		}
		errs = append(errs, o.S3.Validate()...)
	default:
		errs = append(errs, fmt.Errorf("image.storage must be %q or %q", StorageLocal, StorageS3))
	}
	return errs
}
