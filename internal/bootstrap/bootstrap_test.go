package bootstrap

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	llmopts "github.com/kart-io/wizora/pkg/options/llm"
	poolopts "github.com/kart-io/wizora/pkg/options/pool"
)

type recordingInit struct {
	name  string
	err   error
	calls *[]string
}

func (r recordingInit) Name() string { return r.name }

func (r recordingInit) Initialize(context.Context) error {
	*r.calls = append(*r.calls, r.name)
	return r.err
}

func TestInitializeAll(t *testing.T) {
	t.Run("按顺序执行", func(t *testing.T) {
		var calls []string
		err := InitializeAll(context.Background(),
			recordingInit{name: "a", calls: &calls},
			recordingInit{name: "b", calls: &calls},
		)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, calls)
	})

	t.Run("失败即停止", func(t *testing.T) {
		var calls []string
		boom := errors.New("boom")
		err := InitializeAll(context.Background(),
			recordingInit{name: "a", err: boom, calls: &calls},
			recordingInit{name: "b", calls: &calls},
		)
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, []string{"a"}, calls)
	})
}

func TestInferenceInitializer(t *testing.T) {
	t.Run("未初始化", func(t *testing.T) {
		ii := NewInferenceInitializer("test", poolopts.NewOptions())
		_, err := ii.Runner(llmopts.NewProviderOptions("llm", "m"), "")
		assert.Error(t, err)
		assert.NoError(t, ii.Shutdown(context.Background()))
	})

	t.Run("生成并注册就绪检查", func(t *testing.T) {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/models/m", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[{"generated_text":" hello "}]`))
		}))
		defer upstream.Close()

		ii := NewInferenceInitializer("test", poolopts.NewOptions())
		require.NoError(t, ii.Initialize(context.Background()))

		opts := llmopts.NewProviderOptions("llm", "m")
		opts.BaseURL = upstream.URL
		opts.CircuitBreaker = false
		r, err := ii.Runner(opts, "model")
		require.NoError(t, err)

		out, err := r.Generate(context.Background(), "hi")
		require.NoError(t, err)
		assert.Equal(t, "hello", out)

		require.Len(t, ii.Checks(), 1)
		assert.Equal(t, "model", ii.Checks()[0].Name)

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		assert.NoError(t, ii.Shutdown(ctx))
	})

	t.Run("未知供应商", func(t *testing.T) {
		ii := NewInferenceInitializer("test", poolopts.NewOptions())
		require.NoError(t, ii.Initialize(context.Background()))
		defer func() { _ = ii.Shutdown(context.Background()) }()

		opts := llmopts.NewProviderOptions("llm", "m")
		opts.Provider = "nope"
		_, err := ii.Runner(opts, "")
		assert.Error(t, err)
	})
}
