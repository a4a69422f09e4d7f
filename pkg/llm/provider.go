// Package llm 提供统一的文本生成供应商抽象层。
// 各供应商在 init 中注册工厂函数，服务按配置名称创建实例。
package llm

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

// Provider 定义文本生成供应商接口。
type Provider interface {
	// Generate 根据提示生成文本（单轮）。
	Generate(ctx context.Context, prompt string, opts ...GenerateOption) (string, error)

	// Name 返回供应商名称。
	Name() string
}

// GenerateOptions 单次生成调用的参数。
type GenerateOptions struct {
	// MaxTokens 最多生成的 token 数，0 表示使用供应商默认值。
	MaxTokens int
	// SystemPrompt 系统提示词。
	SystemPrompt string
	// Temperature 采样温度，nil 表示使用供应商默认值。
	Temperature *float64
}

// GenerateOption 修改 GenerateOptions。
type GenerateOption func(*GenerateOptions)

// WithMaxTokens 限制生成长度。
func WithMaxTokens(n int) GenerateOption {
	return func(o *GenerateOptions) {
		if n > 0 {
			o.MaxTokens = n
		}
	}
}

// WithSystemPrompt 设置系统提示词。
func WithSystemPrompt(s string) GenerateOption {
	return func(o *GenerateOptions) {
		o.SystemPrompt = s
	}
}

// WithTemperature 设置采样温度。
func WithTemperature(t float64) GenerateOption {
	return func(o *GenerateOptions) {
		o.Temperature = &t
	}
}

// ApplyGenerateOptions 合并调用参数。
func ApplyGenerateOptions(opts ...GenerateOption) GenerateOptions {
	var o GenerateOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// ProviderFactory 供应商工厂函数类型。
type ProviderFactory func(config map[string]any) (Provider, error)

// registry 供应商注册表。
var registry = &providerRegistry{
	providers: make(map[string]ProviderFactory),
}

type providerRegistry struct {
	mu        sync.RWMutex
	providers map[string]ProviderFactory
}

// RegisterProvider 注册供应商工厂。
func RegisterProvider(name string, factory ProviderFactory) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.providers[name] = factory
}

// NewProvider 根据名称创建供应商实例。
func NewProvider(name string, config map[string]any) (Provider, error) {
	registry.mu.RLock()
	factory, ok := registry.providers[name]
	registry.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("unknown provider: %s", name)
	}
	return factory(config)
}

// ListProviders 列出所有已注册的供应商名称（有序）。
func ListProviders() []string {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	names := make([]string, 0, len(registry.providers))
	for name := range registry.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// BaseConfig 是所有供应商共享的配置字段。
type BaseConfig struct {
	BaseURL    string        `json:"base_url" mapstructure:"base_url"`
	APIKey     string        `json:"api_key" mapstructure:"api_key"`
	Model      string        `json:"model" mapstructure:"model"`
	Timeout    time.Duration `json:"timeout" mapstructure:"timeout"`
	MaxRetries int           `json:"max_retries" mapstructure:"max_retries"`
}

// Merge 用配置 map 中的非零值覆盖 c。
// 兼容旧配置键 chat_model。
func (c *BaseConfig) Merge(m map[string]any) {
	if v, ok := m["base_url"].(string); ok && v != "" {
		c.BaseURL = v
	}
	if v, ok := m["api_key"].(string); ok && v != "" {
		c.APIKey = v
	}
	if v, ok := m["chat_model"].(string); ok && v != "" {
		c.Model = v
	}
	if v, ok := m["model"].(string); ok && v != "" {
		c.Model = v
	}
	if v, ok := m["timeout"].(time.Duration); ok && v > 0 {
		c.Timeout = v
	}
	if v, ok := m["max_retries"].(int); ok && v >= 0 {
		c.MaxRetries = v
	}
}

// Pinger 由可以探测连通性的供应商实现，用于就绪检查。
type Pinger interface {
	Ping(ctx context.Context) error
}
