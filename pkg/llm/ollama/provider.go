// Package ollama 提供本地 Ollama 供应商实现。
package ollama

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/kart-io/wizora/pkg/llm"
	"github.com/kart-io/wizora/pkg/utils/httpclient"
)

// ProviderName 是 Ollama 供应商的名称标识符。
const ProviderName = "ollama"

func init() {
	llm.RegisterProvider(ProviderName, NewProvider)
}

// Config Ollama 供应商配置。
type Config = llm.BaseConfig

// DefaultConfig 返回默认配置。
func DefaultConfig() *Config {
	return &Config{
		BaseURL:    "http://localhost:11434",
		Model:      "llama3.2",
		Timeout:    120 * time.Second,
		MaxRetries: 2,
	}
}

// Provider Ollama 供应商实现。
type Provider struct {
	config *Config
	client *httpclient.Client
}

var _ llm.Pinger = (*Provider)(nil)

// NewProvider 从配置 map 创建 Ollama 供应商。
func NewProvider(configMap map[string]any) (llm.Provider, error) {
	cfg := DefaultConfig()
	cfg.Merge(configMap)
	return NewProviderWithConfig(cfg), nil
}

// NewProviderWithConfig 使用结构化配置创建 Ollama 供应商。
func NewProviderWithConfig(cfg *Config) *Provider {
	return &Provider{
		config: cfg,
		client: httpclient.NewClient(cfg.Timeout, cfg.MaxRetries),
	}
}

// Name 返回供应商名称。
func (p *Provider) Name() string {
	return ProviderName
}

type generateRequest struct {
	Model   string         `json:"model"`
	Prompt  string         `json:"prompt"`
	System  string         `json:"system,omitempty"`
	Stream  bool           `json:"stream"`
	Options map[string]any `json:"options,omitempty"`
}

type generateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// Generate 调用 /api/generate（非流式）。
func (p *Provider) Generate(ctx context.Context, prompt string, opts ...llm.GenerateOption) (string, error) {
	o := llm.ApplyGenerateOptions(opts...)

	req := generateRequest{
		Model:  p.config.Model,
		Prompt: prompt,
		System: o.SystemPrompt,
	}
	if o.MaxTokens > 0 || o.Temperature != nil {
		req.Options = make(map[string]any)
		if o.MaxTokens > 0 {
			req.Options["num_predict"] = o.MaxTokens
		}
		if o.Temperature != nil {
			req.Options["temperature"] = *o.Temperature
		}
	}

	var resp generateResponse
	if err := p.client.PostJSON(ctx, p.url("/api/generate"), nil, req, &resp); err != nil {
		return "", fmt.Errorf("ollama: %w", err)
	}
	return strings.TrimSpace(resp.Response), nil
}

// Ping 检查 Ollama 服务是否可用。
func (p *Provider) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url("/api/tags"), nil)
	if err != nil {
		return fmt.Errorf("创建请求失败: %w", err)
	}
	if err := p.client.DoJSON(req, nil); err != nil {
		return fmt.Errorf("ollama: 服务不可用: %w", err)
	}
	return nil
}

func (p *Provider) url(path string) string {
	return strings.TrimRight(p.config.BaseURL, "/") + path
}
