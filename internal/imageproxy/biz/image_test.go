package biz

import (
	"context"
	stderrors "errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kart-io/wizora/pkg/utils/errors"
)

type stubUpstream struct {
	data  []byte
	err   error
	calls int
}

func (s *stubUpstream) Generate(context.Context, string) ([]byte, error) {
	s.calls++
	return s.data, s.err
}

type memStore struct {
	saved map[string][]byte
	err   error
}

func (m *memStore) Save(_ context.Context, name string, data []byte) error {
	if m.err != nil {
		return m.err
	}
	if m.saved == nil {
		m.saved = map[string][]byte{}
	}
	m.saved[name] = data
	return nil
}

func (m *memStore) URL(name string) string { return "http://img/" + name }
func (m *memStore) Name() string           { return "mem" }

func TestGenerate(t *testing.T) {
	t.Run("保存并返回地址", func(t *testing.T) {
		up := &stubUpstream{data: []byte("PNG")}
		st := &memStore{}
		url, err := NewService(up, st).Generate(context.Background(), "a cat")
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(url, "http://img/"))
		require.True(t, strings.HasSuffix(url, ".png"))
		require.Len(t, st.saved, 1)
		assert.Equal(t, []byte("PNG"), st.saved[strings.TrimPrefix(url, "http://img/")])
	})

	t.Run("每次生成新文件名", func(t *testing.T) {
		svc := NewService(&stubUpstream{data: []byte("PNG")}, &memStore{})
		a, err := svc.Generate(context.Background(), "x")
		require.NoError(t, err)
		b, err := svc.Generate(context.Background(), "x")
		require.NoError(t, err)
		assert.NotEqual(t, a, b)
	})

	t.Run("空 prompt 不调用上游", func(t *testing.T) {
		up := &stubUpstream{}
		_, err := NewService(up, &memStore{}).Generate(context.Background(), "")
		assert.True(t, errors.IsCode(err, errors.ErrPromptRequired.Code))
		assert.Zero(t, up.calls)
	})

	t.Run("上游错误原样返回", func(t *testing.T) {
		upErr := errors.ErrImageUpstream.WithMessagef("Failed to generate image: %d", 500)
		_, err := NewService(&stubUpstream{err: upErr}, &memStore{}).Generate(context.Background(), "x")
		assert.Equal(t, "Failed to generate image: 500", errors.FromError(err).MessageEN)
	})

	t.Run("保存失败", func(t *testing.T) {
		st := &memStore{err: stderrors.New("disk full")}
		_, err := NewService(&stubUpstream{data: []byte("PNG")}, st).Generate(context.Background(), "x")
		e := errors.FromError(err)
		assert.True(t, errors.IsCode(err, errors.ErrImageStore.Code))
		assert.Equal(t, "disk full", e.MessageEN)
	})
}
