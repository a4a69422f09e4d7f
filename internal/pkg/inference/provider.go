package inference

import (
	"fmt"

	"github.com/kart-io/logger"

	"github.com/kart-io/wizora/pkg/llm"
	"github.com/kart-io/wizora/pkg/llm/resilience"
	llmopts "github.com/kart-io/wizora/pkg/options/llm"

	// 注册所有供应商
	_ "github.com/kart-io/wizora/pkg/llm/deepseek"
	_ "github.com/kart-io/wizora/pkg/llm/gemini"
	_ "github.com/kart-io/wizora/pkg/llm/huggingface"
	_ "github.com/kart-io/wizora/pkg/llm/ollama"
	_ "github.com/kart-io/wizora/pkg/llm/openai"
)

// NewProvider builds the provider named by opts, wrapped in a circuit
// breaker when enabled.
func NewProvider(opts *llmopts.ProviderOptions) (llm.Provider, error) {
	p, err := llm.NewProvider(opts.Provider, opts.ToConfigMap())
	if err != nil {
		return nil, fmt.Errorf("create %s provider: %w", opts.Provider, err)
	}

	logger.Infow("model provider created",
		"provider", p.Name(),
		"model", opts.Model,
		"base_url", opts.BaseURL,
		"circuit_breaker", opts.CircuitBreaker,
	)

	if opts.CircuitBreaker {
		return resilience.Wrap(p, nil), nil
	}
	return p, nil
}
