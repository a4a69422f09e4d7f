package app

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kart-io/wizora/pkg/app/cliflag"
)

type testOptions struct {
	HTTP struct {
		Addr string `mapstructure:"addr"`
	} `mapstructure:"http"`
	Model     string `mapstructure:"model"`
	Token     string `mapstructure:"token"`
	completed bool
	invalid   bool
}

func (o *testOptions) Flags() (fss cliflag.NamedFlagSets) {
	fss.FlagSet("http").StringVar(&o.HTTP.Addr, "http.addr", ":8000", "listen address")
	fs := fss.FlagSet("misc")
	fs.StringVar(&o.Model, "model", "gpt2", "model name")
	fs.StringVar(&o.Token, "token", "", "api token")
	return fss
}

func (o *testOptions) Complete() error {
	o.completed = true
	return nil
}

func (o *testOptions) Validate() error {
	if o.invalid {
		return errors.New("invalid")
	}
	return nil
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "svc.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestConfigPrecedence(t *testing.T) {
	t.Setenv("WIZORA_TEST_SVC_MODEL", "from-env")
	t.Setenv("HF_TOKEN", "secret")
	cfg := writeConfig(t, "http:\n  addr: \":9000\"\nmodel: from-file\ntoken: ${HF_TOKEN}\n")

	opts := &testOptions{}
	var ran bool
	a := NewApp(
		WithName("test-svc"),
		WithNoVersion(),
		WithOptions(opts),
		WithRunFunc(func() error {
			ran = true
			return nil
		}),
	)
	a.Command().SetArgs([]string{"--config", cfg, "--http.addr", ":7000"})

	require.NoError(t, a.Command().Execute())
	assert.True(t, ran)
	assert.True(t, opts.completed)
	assert.Equal(t, ":7000", opts.HTTP.Addr, "显式 flag 优先")
	assert.Equal(t, "from-env", opts.Model, "环境变量优先于配置文件")
	assert.Equal(t, "secret", opts.Token, "配置值中的 ${VAR} 被展开")
}

func TestValidationStopsRun(t *testing.T) {
	opts := &testOptions{invalid: true}
	a := NewApp(
		WithName("test-svc"),
		WithNoVersion(),
		WithNoConfig(),
		WithOptions(opts),
		WithRunFunc(func() error {
			t.Fatal("run must not be called")
			return nil
		}),
	)
	a.Command().SetArgs(nil)
	assert.Error(t, a.Command().Execute())
}
