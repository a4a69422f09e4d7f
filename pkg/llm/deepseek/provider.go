// Package deepseek 提供 DeepSeek 供应商实现。
// DeepSeek API 兼容 OpenAI 格式，复用 openai 包的请求逻辑。
package deepseek

import (
	"fmt"
	"time"

	"github.com/kart-io/wizora/pkg/llm"
	"github.com/kart-io/wizora/pkg/llm/openai"
)

// ProviderName 是 DeepSeek 供应商的名称标识符
const ProviderName = "deepseek"

func init() {
	llm.RegisterProvider(ProviderName, NewProvider)
}

// DefaultConfig 返回默认配置。
func DefaultConfig() *openai.Config {
	return &openai.Config{
		BaseConfig: llm.BaseConfig{
			BaseURL:    "https://api.deepseek.com",
			Model:      "deepseek-chat",
			Timeout:    120 * time.Second,
			MaxRetries: 2,
		},
	}
}

// NewProvider 从配置 map 创建 DeepSeek 供应商。
func NewProvider(configMap map[string]any) (llm.Provider, error) {
	cfg := DefaultConfig()
	cfg.Merge(configMap)

	if cfg.APIKey == "" {
		return nil, fmt.Errorf("deepseek: api_key 是必需的")
	}
	return openai.NewNamedProvider(ProviderName, cfg), nil
}
