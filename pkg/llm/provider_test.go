package llm

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoProvider struct{ prefix string }

func (p *echoProvider) Name() string { return "echo" }

func (p *echoProvider) Generate(_ context.Context, prompt string, _ ...GenerateOption) (string, error) {
	return p.prefix + prompt, nil
}

func TestRegistry(t *testing.T) {
	RegisterProvider("echo-test", func(config map[string]any) (Provider, error) {
		prefix, _ := config["prefix"].(string)
		return &echoProvider{prefix: prefix}, nil
	})

	p, err := NewProvider("echo-test", map[string]any{"prefix": "> "})
	require.NoError(t, err)
	out, err := p.Generate(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, "> hi", out)
	assert.Contains(t, ListProviders(), "echo-test")

	_, err = NewProvider("missing", nil)
	assert.EqualError(t, err, "unknown provider: missing")
}

func TestApplyGenerateOptions(t *testing.T) {
	o := ApplyGenerateOptions(WithMaxTokens(150), WithSystemPrompt("sys"), WithTemperature(0.2), WithMaxTokens(0))

	assert.Equal(t, 150, o.MaxTokens)
	assert.Equal(t, "sys", o.SystemPrompt)
	require.NotNil(t, o.Temperature)
	assert.InDelta(t, 0.2, *o.Temperature, 1e-9)

	assert.Nil(t, ApplyGenerateOptions().Temperature)
}

func TestBaseConfigMerge(t *testing.T) {
	tests := []struct {
		name  string
		input map[string]any
		want  BaseConfig
	}{
		{
			name:  "空配置保留默认值",
			input: map[string]any{},
			want:  BaseConfig{BaseURL: "http://d", Model: "m0", Timeout: time.Second, MaxRetries: 2},
		},
		{
			name: "全部覆盖",
			input: map[string]any{
				"base_url": "http://x", "api_key": "k", "model": "m1",
				"timeout": 5 * time.Second, "max_retries": 0,
			},
			want: BaseConfig{BaseURL: "http://x", APIKey: "k", Model: "m1", Timeout: 5 * time.Second},
		},
		{
			name:  "兼容 chat_model",
			input: map[string]any{"chat_model": "legacy"},
			want:  BaseConfig{BaseURL: "http://d", Model: "legacy", Timeout: time.Second, MaxRetries: 2},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := BaseConfig{BaseURL: "http://d", Model: "m0", Timeout: time.Second, MaxRetries: 2}
			c.Merge(tt.input)
			assert.Equal(t, tt.want, c)
		})
	}
}
