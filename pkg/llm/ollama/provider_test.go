package ollama

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kart-io/wizora/pkg/llm"
	"github.com/kart-io/wizora/pkg/utils/json"
)

func TestGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "qwen", body["model"])
		assert.Equal(t, "sys", body["system"])
		assert.Equal(t, false, body["stream"])
		opts := body["options"].(map[string]any)
		assert.EqualValues(t, 100, opts["num_predict"])

		_, _ = w.Write([]byte(`{"response":"\nanswer ","done":true}`))
	}))
	defer srv.Close()

	p, err := NewProvider(map[string]any{"base_url": srv.URL, "model": "qwen", "max_retries": 0})
	require.NoError(t, err)

	out, err := p.Generate(context.Background(), "q", llm.WithMaxTokens(100), llm.WithSystemPrompt("sys"))
	require.NoError(t, err)
	assert.Equal(t, "answer", out)
}

func TestPing(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr bool
	}{
		{"服务正常", http.StatusOK, false},
		{"服务异常", http.StatusNotFound, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/tags", r.URL.Path)
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(`{"models":[]}`))
			}))
			defer srv.Close()

			cfg := DefaultConfig()
			cfg.BaseURL = srv.URL
			cfg.MaxRetries = 0
			err := NewProviderWithConfig(cfg).Ping(context.Background())
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
