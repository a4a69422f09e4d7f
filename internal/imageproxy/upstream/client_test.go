package upstream

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kart-io/wizora/pkg/utils/errors"
)

func TestGenerate(t *testing.T) {
	t.Run("成功返回图片字节", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			body, _ := io.ReadAll(r.Body)
			assert.JSONEq(t, `{"prompt":"a cat"}`, string(body))
			_, _ = w.Write([]byte("PNGDATA"))
		}))
		defer srv.Close()

		data, err := NewClient(srv.URL, time.Second).Generate(context.Background(), "a cat")
		require.NoError(t, err)
		assert.Equal(t, []byte("PNGDATA"), data)
	})

	t.Run("非 200 不重试", func(t *testing.T) {
		calls := 0
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		_, err := NewClient(srv.URL, time.Second).Generate(context.Background(), "a cat")
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrImageUpstream.Code))
		assert.Equal(t, "Failed to generate image: 503", errors.FromError(err).MessageEN)
		assert.Equal(t, http.StatusBadGateway, errors.FromError(err).HTTPStatus())
		assert.Equal(t, 1, calls)
	})

	t.Run("超时", func(t *testing.T) {
		release := make(chan struct{})
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-r.Context().Done():
			}
		}))
		defer srv.Close()
		defer close(release)

		_, err := NewClient(srv.URL, 50*time.Millisecond).Generate(context.Background(), "a cat")
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrImageTimeout.Code))
	})

	t.Run("连接失败返回 500", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		_, err := NewClient(url, time.Second).Generate(context.Background(), "a cat")
		require.Error(t, err)
		e := errors.FromError(err)
		assert.Equal(t, http.StatusInternalServerError, e.HTTPStatus())
		assert.NotEqual(t, errors.ErrInternal.MessageEN, e.MessageEN)
	})
}
