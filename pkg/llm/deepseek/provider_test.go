package deepseek

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kart-io/wizora/pkg/llm"
)

func TestNewProviderRequiresKey(t *testing.T) {
	_, err := llm.NewProvider(ProviderName, map[string]any{})
	assert.EqualError(t, err, "deepseek: api_key 是必需的")
}

func TestGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"深度求索"}}]}`))
	}))
	defer srv.Close()

	p, err := NewProvider(map[string]any{"api_key": "sk", "base_url": srv.URL})
	require.NoError(t, err)
	assert.Equal(t, ProviderName, p.Name())

	out, err := p.Generate(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, "深度求索", out)
}
