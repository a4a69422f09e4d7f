package pool

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	poolopts "github.com/kart-io/wizora/pkg/options/pool"
)

func TestPoolSubmit(t *testing.T) {
	p, err := NewPool("test", &Config{Capacity: 10, ExpiryDuration: 5 * time.Second})
	require.NoError(t, err, "创建池失败")
	defer p.Release()

	var counter atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		if err := p.Submit(func() {
			defer wg.Done()
			counter.Add(1)
		}); err != nil {
			t.Errorf("提交任务失败: %v", err)
			wg.Done()
		}
	}
	wg.Wait()

	assert.EqualValues(t, 100, counter.Load())
	require.Eventually(t, func() bool { return p.Stats().CompletedTasks == 100 }, time.Second, 5*time.Millisecond)
}

func TestPoolOverload(t *testing.T) {
	p, err := NewPool("busy", &Config{Capacity: 1, ExpiryDuration: time.Second, Nonblocking: true})
	require.NoError(t, err)
	defer p.Release()

	block := make(chan struct{})
	require.NoError(t, p.Submit(func() { <-block }))

	assert.ErrorIs(t, p.Submit(func() {}), ErrPoolOverload)
	assert.EqualValues(t, 1, p.Stats().RejectedTasks)
	close(block)
}

func TestSubmitWithContext(t *testing.T) {
	p, err := NewPool("ctx", &Config{Capacity: 2, ExpiryDuration: time.Second})
	require.NoError(t, err)
	defer p.Release()

	t.Run("已取消的上下文", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		assert.ErrorIs(t, p.SubmitWithContext(ctx, func() { t.Error("不应执行") }), context.Canceled)
	})

	t.Run("正常执行", func(t *testing.T) {
		done := make(chan struct{})
		require.NoError(t, p.SubmitWithContext(context.Background(), func() { close(done) }))
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("任务未执行")
		}
	})
}

func TestReleasedPool(t *testing.T) {
	p, err := NewPool("closed", ConfigFromOptions(poolopts.NewOptions()))
	require.NoError(t, err)
	p.Release()
	p.Release()

	assert.ErrorIs(t, p.Submit(func() {}), ErrPoolClosed)
}
