package inference

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kart-io/wizora/pkg/infra/pool"
	"github.com/kart-io/wizora/pkg/llm"
	llmopts "github.com/kart-io/wizora/pkg/options/llm"
	apierrors "github.com/kart-io/wizora/pkg/utils/errors"
)

type fakeProvider struct {
	block chan struct{}
	err   error
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Generate(ctx context.Context, prompt string, opts ...llm.GenerateOption) (string, error) {
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if f.err != nil {
		return "", f.err
	}
	o := llm.ApplyGenerateOptions(opts...)
	if o.MaxTokens > 0 {
		return prompt + "!", nil
	}
	return prompt, nil
}

func newPool(t *testing.T, capacity int, nonblocking bool) *pool.Pool {
	t.Helper()
	p, err := pool.NewPool("test", &pool.Config{
		Capacity:       capacity,
		ExpiryDuration: time.Second,
		Nonblocking:    nonblocking,
	})
	require.NoError(t, err)
	t.Cleanup(p.Release)
	return p
}

func TestRunnerGenerate(t *testing.T) {
	r := NewRunner(newPool(t, 2, false), &fakeProvider{})

	out, err := r.Generate(context.Background(), "hello", llm.WithMaxTokens(10))
	require.NoError(t, err)
	assert.Equal(t, "hello!", out)
	assert.Equal(t, "fake", r.Name())
	assert.NoError(t, r.Ping(context.Background()))
}

func TestRunnerBusy(t *testing.T) {
	block := make(chan struct{})
	r := NewRunner(newPool(t, 1, true), &fakeProvider{block: block})

	var wg sync.WaitGroup
	wg.Add(1)
	started := make(chan struct{})
	go func() {
		defer wg.Done()
		close(started)
		_, _ = r.Generate(context.Background(), "first")
	}()
	<-started
	require.Eventually(t, func() bool { return r.pool.Running() == 1 }, time.Second, 5*time.Millisecond)

	_, err := r.Generate(context.Background(), "second")
	assert.ErrorIs(t, err, apierrors.ErrServiceBusy)

	close(block)
	wg.Wait()
}

func TestRunnerContextCanceled(t *testing.T) {
	block := make(chan struct{})
	defer close(block)
	r := NewRunner(newPool(t, 1, false), &fakeProvider{block: block})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := r.Generate(ctx, "slow")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRunnerContextCanceledWhileQueued(t *testing.T) {
	block := make(chan struct{})
	p := newPool(t, 1, false)
	provider := &countingProvider{fakeProvider: fakeProvider{block: block}}
	r := NewRunner(p, provider)

	// 占满唯一的 worker
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _ = r.Generate(context.Background(), "first")
	}()
	require.Eventually(t, func() bool { return p.Running() == 1 }, time.Second, 5*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	start := time.Now()
	_, err := r.Generate(ctx, "queued")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 500*time.Millisecond)

	close(block)
	wg.Wait()
	// 排队期间放弃的任务不会再调用模型
	require.Eventually(t, func() bool { return p.Waiting() == 0 }, time.Second, 5*time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int64(1), provider.calls.Load())
}

type countingProvider struct {
	fakeProvider
	calls atomic.Int64
}

func (c *countingProvider) Generate(ctx context.Context, prompt string, opts ...llm.GenerateOption) (string, error) {
	c.calls.Add(1)
	return c.fakeProvider.Generate(ctx, prompt, opts...)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want *apierrors.Errno
	}{
		{"Errno 原样返回", apierrors.ErrServiceBusy, apierrors.ErrServiceBusy},
		{"超时", context.DeadlineExceeded, apierrors.ErrTimeout},
		{"其他错误使用回退", errors.New("boom"), apierrors.ErrDocAnswer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Classify(tt.err, apierrors.ErrDocAnswer)
			assert.ErrorIs(t, err, tt.want)
		})
	}
	assert.NoError(t, Classify(nil, apierrors.ErrDocAnswer))
}

func TestDefaultProviderCallsUpstreamOnce(t *testing.T) {
	var calls atomic.Int64
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer upstream.Close()

	opts := llmopts.NewProviderOptions("llm", "m")
	opts.BaseURL = upstream.URL
	require.NoError(t, opts.Complete())

	p, err := NewProvider(opts)
	require.NoError(t, err)
	r := NewRunner(newPool(t, 1, false), p)

	for i := 0; i < 3; i++ {
		_, err = r.Generate(context.Background(), "hi")
		require.Error(t, err)
	}
	// 不重试、不熔断：三次请求恰好三次上游调用
	assert.Equal(t, int64(3), calls.Load())
}

func TestNewProvider(t *testing.T) {
	opts := llmopts.NewProviderOptions("llm", "google/flan-t5-base")
	p, err := NewProvider(opts)
	require.NoError(t, err)
	assert.Equal(t, "huggingface", p.Name())

	opts.Provider = "nope"
	_, err = NewProvider(opts)
	assert.Error(t, err)
}
