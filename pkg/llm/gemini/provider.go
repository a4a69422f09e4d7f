// Package gemini 提供 Google Gemini 供应商实现。
package gemini

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/kart-io/wizora/pkg/llm"
	"github.com/kart-io/wizora/pkg/utils/httpclient"
)

const ProviderName = "gemini"

func init() {
	llm.RegisterProvider(ProviderName, NewProvider)
}

// Config Gemini 供应商配置。
type Config = llm.BaseConfig

// DefaultConfig 返回默认配置。
func DefaultConfig() *Config {
	return &Config{
		BaseURL:    "https://generativelanguage.googleapis.com/v1beta",
		Model:      "gemini-1.5-flash",
		Timeout:    120 * time.Second,
		MaxRetries: 2,
	}
}

// Provider Gemini 供应商实现。
type Provider struct {
	config *Config
	client *httpclient.Client
}

// NewProvider 从配置 map 创建 Gemini 供应商。
func NewProvider(configMap map[string]any) (llm.Provider, error) {
	cfg := DefaultConfig()
	cfg.Merge(configMap)

	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini: api_key 是必需的")
	}
	return NewProviderWithConfig(cfg), nil
}

// NewProviderWithConfig 使用结构化配置创建 Gemini 供应商。
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

// generateRequest Gemini generateContent API 请求体。
type generateRequest struct {
	Contents          []content         `json:"contents"`
	SystemInstruction *content          `json:"systemInstruction,omitempty"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     *float64 `json:"temperature,omitempty"`
	MaxOutputTokens int      `json:"maxOutputTokens,omitempty"`
}

// generateResponse Gemini generateContent API 响应体。
type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
}

// Generate 调用 models/{model}:generateContent。
func (p *Provider) Generate(ctx context.Context, prompt string, opts ...llm.GenerateOption) (string, error) {
	o := llm.ApplyGenerateOptions(opts...)

	req := generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: prompt}}}},
	}
	if o.SystemPrompt != "" {
		req.SystemInstruction = &content{Parts: []part{{Text: o.SystemPrompt}}}
	}
	if o.MaxTokens > 0 || o.Temperature != nil {
		req.GenerationConfig = &generationConfig{
			Temperature:     o.Temperature,
			MaxOutputTokens: o.MaxTokens,
		}
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", strings.TrimRight(p.config.BaseURL, "/"), p.config.Model)
	h := http.Header{}
	h.Set("x-goog-api-key", p.config.APIKey)

	var resp generateResponse
	if err := p.client.PostJSON(ctx, url, h, req, &resp); err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini: 未返回响应内容")
	}

	var sb strings.Builder
	for _, pt := range resp.Candidates[0].Content.Parts {
		sb.WriteString(pt.Text)
	}
	return strings.TrimSpace(sb.String()), nil
}
