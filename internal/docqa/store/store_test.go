package store

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client, "test:", time.Hour), mr
}

func TestCorpusStores(t *testing.T) {
	redisStore, _ := newRedisStore(t)
	stores := []CorpusStore{NewMemoryStore(), redisStore}

	for _, st := range stores {
		t.Run(st.Name(), func(t *testing.T) {
			ctx := context.Background()

			got, err := st.Get(ctx, "s1")
			require.NoError(t, err)
			assert.Empty(t, got, "首次上传前语料为空")

			require.NoError(t, st.Replace(ctx, "s1", []string{"a b", "c"}))
			require.NoError(t, st.Replace(ctx, "s2", []string{"other"}))

			got, err = st.Get(ctx, "s1")
			require.NoError(t, err)
			assert.Equal(t, []string{"a b", "c"}, got)

			// 再次上传整体替换
			require.NoError(t, st.Replace(ctx, "s1", []string{"d"}))
			got, err = st.Get(ctx, "s1")
			require.NoError(t, err)
			assert.Equal(t, []string{"d"}, got)

			got, err = st.Get(ctx, "s2")
			require.NoError(t, err)
			assert.Equal(t, []string{"other"}, got)
		})
	}
}

func TestRedisStoreTTLAndPrefix(t *testing.T) {
	st, mr := newRedisStore(t)
	require.NoError(t, st.Replace(context.Background(), "s1", []string{"x"}))

	assert.True(t, mr.Exists("test:docqa:corpus:s1"))
	assert.Equal(t, time.Hour, mr.TTL("test:docqa:corpus:s1"))

	mr.FastForward(2 * time.Hour)
	got, err := st.Get(context.Background(), "s1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisStoreCorruptValue(t *testing.T) {
	st, mr := newRedisStore(t)
	require.NoError(t, mr.Set("test:docqa:corpus:s1", "not json"))
	_, err := st.Get(context.Background(), "s1")
	assert.Error(t, err)
}

func TestMemoryStoreConcurrentReplace(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			chunks := []string{fmt.Sprint(i), fmt.Sprint(i)}
			assert.NoError(t, st.Replace(ctx, "s", chunks))
		}()
		go func() {
			defer wg.Done()
			got, err := st.Get(ctx, "s")
			assert.NoError(t, err)
			if len(got) == 2 {
				assert.Equal(t, got[0], got[1], "不应读到混合语料")
			}
		}()
	}
	wg.Wait()
}
