// Package openai 提供 OpenAI Chat Completions 供应商实现。
// 兼容 OpenAI API 的服务（Azure OpenAI、LocalAI、DeepSeek 等）也可以直接使用。
//
// 基本用法示例：
//
//	import _ "github.com/kart-io/wizora/pkg/llm/openai"
//
//	provider, err := llm.NewProvider("openai", map[string]any{
//	    "api_key": "your-api-key",
//	    "model":   "gpt-4o-mini",
//	})
//	answer, err := provider.Generate(ctx, prompt, llm.WithMaxTokens(150))
package openai

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/kart-io/wizora/pkg/llm"
	"github.com/kart-io/wizora/pkg/utils/httpclient"
)

// ProviderName 是 OpenAI 供应商的名称标识符
const ProviderName = "openai"

func init() {
	llm.RegisterProvider(ProviderName, NewProvider)
}

// Config OpenAI 供应商配置。
type Config struct {
	llm.BaseConfig `mapstructure:",squash"`

	// Organization 组织 ID（可选）。
	Organization string `json:"organization" mapstructure:"organization"`

	// TopP 核采样参数，0 表示不设置。
	TopP float64 `json:"top_p" mapstructure:"top_p"`

	// Stop 停止序列列表。
	Stop []string `json:"stop" mapstructure:"stop"`
}

// DefaultConfig 返回默认配置。
func DefaultConfig() *Config {
	return &Config{
		BaseConfig: llm.BaseConfig{
			BaseURL:    "https://api.openai.com/v1",
			Model:      "gpt-4o-mini",
			Timeout:    120 * time.Second,
			MaxRetries: 2,
		},
	}
}

// Provider OpenAI 供应商实现。
type Provider struct {
	name   string
	config *Config
	client *httpclient.Client
}

// NewProvider 从配置 map 创建 OpenAI 供应商。
func NewProvider(configMap map[string]any) (llm.Provider, error) {
	cfg := DefaultConfig()
	cfg.Merge(configMap)
	if v, ok := configMap["organization"].(string); ok {
		cfg.Organization = v
	}
	if v, ok := configMap["top_p"].(float64); ok {
		cfg.TopP = v
	}
	if v, ok := configMap["stop"].([]string); ok {
		cfg.Stop = v
	}

	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai: api_key 是必需的")
	}
	return NewProviderWithConfig(cfg), nil
}

// NewProviderWithConfig 使用结构化配置创建 OpenAI 供应商。
func NewProviderWithConfig(cfg *Config) *Provider {
	return NewNamedProvider(ProviderName, cfg)
}

// NewNamedProvider 创建以 name 标识的 OpenAI 兼容供应商。
func NewNamedProvider(name string, cfg *Config) *Provider {
	return &Provider{
		name:   name,
		config: cfg,
		client: httpclient.NewClient(cfg.Timeout, cfg.MaxRetries),
	}
}

// Name 返回供应商名称。
func (p *Provider) Name() string {
	return p.name
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature *float64      `json:"temperature,omitempty"`
	TopP        float64       `json:"top_p,omitempty"`
	Stop        []string      `json:"stop,omitempty"`
	Stream      bool          `json:"stream"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

// Generate 调用 /chat/completions 生成文本。
func (p *Provider) Generate(ctx context.Context, prompt string, opts ...llm.GenerateOption) (string, error) {
	o := llm.ApplyGenerateOptions(opts...)

	messages := make([]chatMessage, 0, 2)
	if o.SystemPrompt != "" {
		messages = append(messages, chatMessage{Role: "system", Content: o.SystemPrompt})
	}
	messages = append(messages, chatMessage{Role: "user", Content: prompt})

	req := chatRequest{
		Model:       p.config.Model,
		Messages:    messages,
		MaxTokens:   o.MaxTokens,
		Temperature: o.Temperature,
		TopP:        p.config.TopP,
		Stop:        p.config.Stop,
	}

	var resp chatResponse
	url := strings.TrimRight(p.config.BaseURL, "/") + "/chat/completions"
	if err := p.client.PostJSON(ctx, url, p.headers(), req, &resp); err != nil {
		return "", fmt.Errorf("%s: %w", p.name, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%s: 未返回任何选项", p.name)
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func (p *Provider) headers() http.Header {
	h := http.Header{}
	h.Set("Authorization", "Bearer "+p.config.APIKey)
	if p.config.Organization != "" {
		h.Set("OpenAI-Organization", p.config.Organization)
	}
	return h
}
