package options

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	docqaopts "github.com/kart-io/wizora/pkg/options/docqa"
)

func TestValidateRedisOnlyWhenSelected(t *testing.T) {
	tests := []struct {
		name    string
		store   string
		wantErr bool
	}{
		{"内存存储忽略 redis 配置", docqaopts.StoreMemory, false},
		{"redis 存储校验 redis 配置", docqaopts.StoreRedis, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := NewServerOptions()
			o.DocQAOptions.Store = tt.store
			o.RedisOptions.Host = ""
			if tt.wantErr {
				assert.Error(t, o.Validate())
			} else {
				assert.NoError(t, o.Validate())
			}
		})
	}
}

func TestFlagsAndConfig(t *testing.T) {
	o := NewServerOptions()
	fss := o.Flags()
	for _, name := range []string{"http", "llm", "docqa", "redis", "middleware"} {
		assert.Contains(t, fss.FlagSets, name)
	}
	require.NoError(t, fss.FlagSet("docqa").Parse([]string{"--docqa.no-context-status=404"}))

	require.NoError(t, o.Complete())
	cfg, err := o.Config()
	require.NoError(t, err)
	assert.Equal(t, 404, cfg.DocQAOptions.NoContextStatus)
	assert.Equal(t, "google/flan-t5-base", cfg.LLMOptions.Model)
	assert.Equal(t, ":8002", cfg.HTTPOptions.Addr)
}
