// Package huggingface 提供 HuggingFace Inference API 供应商实现。
package huggingface

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/kart-io/wizora/pkg/llm"
	"github.com/kart-io/wizora/pkg/utils/httpclient"
)

// ProviderName 是 HuggingFace 供应商的名称标识符。
const ProviderName = "huggingface"

// 支持的推理任务。
const (
	TaskText2Text     = "text2text-generation"
	TaskSummarization = "summarization"
)

func init() {
	llm.RegisterProvider(ProviderName, NewProvider)
}

// Config HuggingFace 供应商配置。
type Config struct {
	llm.BaseConfig `mapstructure:",squash"`

	// Task 决定长度参数的名称：summarization 使用 max_length，其余使用 max_new_tokens。
	Task string `json:"task" mapstructure:"task"`

	// WaitForModel 如果模型正在加载，是否等待。
	WaitForModel bool `json:"wait_for_model" mapstructure:"wait_for_model"`
}

// DefaultConfig 返回默认配置。
func DefaultConfig() *Config {
	return &Config{
		BaseConfig: llm.BaseConfig{
			BaseURL:    "https://api-inference.huggingface.co",
			Model:      "google/flan-t5-base",
			Timeout:    120 * time.Second,
			MaxRetries: 2,
		},
		Task:         TaskText2Text,
		WaitForModel: true,
	}
}

// Provider HuggingFace 供应商实现。
type Provider struct {
	config *Config
	client *httpclient.Client
}

// NewProvider 从配置 map 创建 HuggingFace 供应商。API key 可选。
func NewProvider(configMap map[string]any) (llm.Provider, error) {
	cfg := DefaultConfig()
	cfg.Merge(configMap)
	if v, ok := configMap["task"].(string); ok && v != "" {
		cfg.Task = v
	}
	if v, ok := configMap["wait_for_model"].(bool); ok {
		cfg.WaitForModel = v
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("huggingface: model 是必需的")
	}
	return NewProviderWithConfig(cfg), nil
}

// NewProviderWithConfig 使用结构化配置创建 HuggingFace 供应商。
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
	Inputs     string         `json:"inputs"`
	Parameters map[string]any `json:"parameters,omitempty"`
	Options    *requestOpts   `json:"options,omitempty"`
}

type requestOpts struct {
	WaitForModel bool `json:"wait_for_model,omitempty"`
}

// generateResult 兼容 text2text 与 summarization 两种输出字段。
type generateResult struct {
	GeneratedText string `json:"generated_text"`
	SummaryText   string `json:"summary_text"`
}

func (r generateResult) text() string {
	if r.GeneratedText != "" {
		return r.GeneratedText
	}
	return r.SummaryText
}

// Generate 调用 /models/{model} 生成文本。
func (p *Provider) Generate(ctx context.Context, prompt string, opts ...llm.GenerateOption) (string, error) {
	o := llm.ApplyGenerateOptions(opts...)

	inputs := prompt
	if o.SystemPrompt != "" {
		inputs = o.SystemPrompt + "\n\n" + prompt
	}

	params := make(map[string]any)
	if o.MaxTokens > 0 {
		if p.config.Task == TaskSummarization {
			params["max_length"] = o.MaxTokens
		} else {
			params["max_new_tokens"] = o.MaxTokens
		}
	}
	if o.Temperature != nil {
		params["temperature"] = *o.Temperature
		params["do_sample"] = *o.Temperature > 0
	}

	req := generateRequest{Inputs: inputs, Parameters: params}
	if p.config.WaitForModel {
		req.Options = &requestOpts{WaitForModel: true}
	}

	url := fmt.Sprintf("%s/models/%s", strings.TrimRight(p.config.BaseURL, "/"), p.config.Model)

	var results []generateResult
	if err := p.client.PostJSON(ctx, url, p.headers(), req, &results); err != nil {
		return "", fmt.Errorf("huggingface: %w", err)
	}
	if len(results) == 0 {
		return "", fmt.Errorf("huggingface: 未返回生成结果")
	}
	return strings.TrimSpace(results[0].text()), nil
}

func (p *Provider) headers() http.Header {
	h := http.Header{}
	if p.config.APIKey != "" {
		h.Set("Authorization", "Bearer "+p.config.APIKey)
	}
	return h
}
