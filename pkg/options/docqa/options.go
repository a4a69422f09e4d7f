// Package docqa provides document QA service options.
package docqa

import (
	"fmt"
	"net/http"

	"github.com/spf13/pflag"

	"github.com/kart-io/wizora/pkg/options"
)

var _ options.IOptions = (*Options)(nil)

// 语料存储类型。
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// Options 定义文档问答配置。
type Options struct {
	// ChunkSize 每个分块的单词数。
	ChunkSize int `json:"chunk-size" mapstructure:"chunk-size"`
	// MaxTokens 答案的最大生成长度。
	MaxTokens int `json:"max-tokens" mapstructure:"max-tokens"`
	// Store 语料存储类型（memory、redis）。
	Store string `json:"store" mapstructure:"store"`
	// NoContextStatus 没有可用上下文时返回的状态码（200 或 404）。
	NoContextStatus int `json:"no-context-status" mapstructure:"no-context-status"`
	// DefaultSession 请求未携带会话头时使用的会话。
	DefaultSession string `json:"default-session" mapstructure:"default-session"`
}

// NewOptions 创建默认配置。
func NewOptions() *Options {
	return &Options{
		ChunkSize:       500,
		MaxTokens:       100,
		Store:           StoreMemory,
		NoContextStatus: http.StatusOK,
		DefaultSession:  "default",
	}
}

// AddFlags adds flags for document QA options to the specified FlagSet.
func (o *Options) AddFlags(fs *pflag.FlagSet, prefixes ...string) {
	p := options.Join(prefixes...)
	fs.IntVar(&o.ChunkSize, p+"docqa.chunk-size", o.ChunkSize, "Number of words per chunk.")
	fs.IntVar(&o.MaxTokens, p+"docqa.max-tokens", o.MaxTokens, "Maximum answer length.")
	fs.StringVar(&o.Store, p+"docqa.store", o.Store, "Corpus store (memory, redis).")
	fs.IntVar(&o.NoContextStatus, p+"docqa.no-context-status", o.NoContextStatus, "Status returned when no context is available (200 or 404).")
	fs.StringVar(&o.DefaultSession, p+"docqa.default-session", o.DefaultSession, "Session used when the X-Session-ID header is absent.")
}

// Validate validates the document QA options.
func (o *Options) Validate() []error {
	var errs []error
	if o.ChunkSize <= 0 {
		errs = append(errs, fmt.Errorf("docqa.chunk-size must be positive"))
	}
	if o.MaxTokens <= 0 {
		errs = append(errs, fmt.Errorf("docqa.max-tokens must be positive"))
	}
	if o.Store != StoreMemory && o.Store != StoreRedis {
		errs = append(errs, fmt.Errorf("docqa.store must be %q or %q", StoreMemory, StoreRedis))
	}
	if o.NoContextStatus != http.StatusOK && o.NoContextStatus != http.StatusNotFound {
		errs = append(errs, fmt.Errorf("docqa.no-context-status must be 200 or 404"))
	}
	if o.DefaultSession == "" {
		errs = append(errs, fmt.Errorf("docqa.default-session must not be empty"))
	}
	return errs
}
