// Package llm provides LLM provider configuration options.
package llm

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"

	"github.com/kart-io/wizora/pkg/options"
)

var _ options.IOptions = (*ProviderOptions)(nil)

// ProviderOptions 定义 LLM 供应商配置。
type ProviderOptions struct {
	// Provider 供应商名称（huggingface, ollama, openai, deepseek, gemini）。
	Provider string `json:"provider" mapstructure:"provider"`

	// BaseURL API 基础地址。
	BaseURL string `json:"base-url" mapstructure:"base-url"`

	// APIKey API 密钥。
	APIKey string `json:"api-key" mapstructure:"api-key"`

	// Model 使用的模型名称。
	Model string `json:"model" mapstructure:"model"`

	// Task 推理任务类型（text2text-generation、summarization），只对 huggingface 生效。
	Task string `json:"task" mapstructure:"task"`

	// Timeout 请求超时时间。
	Timeout time.Duration `json:"timeout" mapstructure:"timeout"`

	// MaxRetries 最大重试次数，默认 0 即每次生成只调用一次上游。
	MaxRetries int `json:"max-retries" mapstructure:"max-retries"`

	// CircuitBreaker 是否启用熔断，默认关闭。
	CircuitBreaker bool `json:"circuit-breaker" mapstructure:"circuit-breaker"`

	// name 是 flag 与配置中的分组名（llm、summarizer 等）。
	name string
}

// NewProviderOptions 创建默认 LLM 供应商配置，默认使用 HuggingFace 推理 API。
func NewProviderOptions(name, model string) *ProviderOptions {
	if name == "" {
		name = "llm"
	}
	return &ProviderOptions{
		Provider:       "huggingface",
		BaseURL:        defaultBaseURLs["huggingface"],
		Model:          model,
		Task:           "text2text-generation",
		Timeout:        120 * time.Second,
		MaxRetries:     0,
		CircuitBreaker: false,
		name:           name,
	}
}

// ToConfigMap 转换为配置 map，用于供应商工厂。
func (o *ProviderOptions) ToConfigMap() map[string]any {
	return map[string]any{
		"base_url":    o.BaseURL,
		"api_key":     o.APIKey,
		"model":       o.Model,
		"task":        o.Task,
		"timeout":     o.Timeout,
		"max_retries": o.MaxRetries,
	}
}

// AddFlags adds flags for LLM provider options to the specified FlagSet.
func (o *ProviderOptions) AddFlags(fs *pflag.FlagSet, prefixes ...string) {
	p := options.Join(append(prefixes, o.name)...)
	fs.StringVar(&o.Provider, p+"provider", o.Provider, "Model provider (huggingface, ollama, openai, deepseek, gemini).")
	fs.StringVar(&o.BaseURL, p+"base-url", o.BaseURL, "Model API base URL.")
	fs.StringVar(&o.APIKey, p+"api-key", o.APIKey, "Model API key.")
	fs.StringVar(&o.Model, p+"model", o.Model, "Model name.")
	fs.StringVar(&o.Task, p+"task", o.Task, "Inference task for huggingface models (text2text-generation, summarization).")
	fs.DurationVar(&o.Timeout, p+"timeout", o.Timeout, "Model request timeout.")
	fs.IntVar(&o.MaxRetries, p+"max-retries", o.MaxRetries, "Maximum number of retries.")
	fs.BoolVar(&o.CircuitBreaker, p+"circuit-breaker", o.CircuitBreaker, "Trip a circuit breaker after repeated failures.")
}

// Validate validates the LLM provider options.
func (o *ProviderOptions) Validate() []error {
	if o == nil {
		return nil
	}

	var errs []error
	if o.Provider == "" {
		errs = append(errs, fmt.Errorf("%s.provider is required", o.name))
	}
	if o.BaseURL == "" {
		errs = append(errs, fmt.Errorf("%s.base-url is required", o.name))
	}
	if o.Model == "" {
		errs = append(errs, fmt.Errorf("%s.model is required", o.name))
	}
	if (o.Provider == "openai" || o.Provider == "deepseek" || o.Provider == "gemini") && o.APIKey == "" {
		errs = append(errs, fmt.Errorf("%s.api-key is required for %s provider", o.name, o.Provider))
	}
	if o.Task != "" && o.Task != "text2text-generation" && o.Task != "summarization" {
		errs = append(errs, fmt.Errorf("%s.task must be text2text-generation or summarization", o.name))
	}
	if o.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("%s.timeout must be positive", o.name))
	}
	return errs
}

// defaultBaseURLs 切换供应商但未指定地址时使用的默认地址。
var defaultBaseURLs = map[string]string{
	"huggingface": "https://api-inference.huggingface.co",
	"ollama":      "http://localhost:11434",
	"openai":      "https://api.openai.com/v1",
	"deepseek":    "https://api.deepseek.com",
	"gemini":      "https://generativelanguage.googleapis.com/v1beta",
}

// Complete completes the LLM provider options with defaults.
func (o *ProviderOptions) Complete() error {
	if o.MaxRetries < 0 {
		o.MaxRetries = 0
	}
	if o.Provider != "huggingface" && (o.BaseURL == "" || o.BaseURL == defaultBaseURLs["huggingface"]) {
		o.BaseURL = defaultBaseURLs[o.Provider]
	}
	return nil
}
