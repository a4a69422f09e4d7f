package store

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	imageopts "github.com/kart-io/wizora/pkg/options/imageproxy"
)

func TestLocalStore(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "images")
	st, err := NewLocalStore(dir, "http://127.0.0.1:8000/")
	require.NoError(t, err)

	require.NoError(t, st.Save(context.Background(), "abc.png", []byte("PNG")))

	data, err := os.ReadFile(filepath.Join(dir, "abc.png"))
	require.NoError(t, err)
	assert.Equal(t, []byte("PNG"), data)
	assert.Equal(t, "http://127.0.0.1:8000/images/abc.png", st.URL("abc.png"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "临时文件应被清理")
}

type fakeS3 struct {
	in   *s3.PutObjectInput
	body []byte
	err  error
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.in = in
	f.body, _ = io.ReadAll(in.Body)
	return &s3.PutObjectOutput{}, f.err
}

func TestS3Store(t *testing.T) {
	t.Run("上传并生成地址", func(t *testing.T) {
		client := &fakeS3{}
		st := NewS3StoreWithClient(client, "bucket", "images", "https://cdn.example.com")

		require.NoError(t, st.Save(context.Background(), "abc.png", []byte("PNG")))
		assert.Equal(t, "bucket", aws.ToString(client.in.Bucket))
		assert.Equal(t, "images/abc.png", aws.ToString(client.in.Key))
		assert.Equal(t, "image/png", aws.ToString(client.in.ContentType))
		assert.Equal(t, []byte("PNG"), client.body)
		assert.Equal(t, "https://cdn.example.com/images/abc.png", st.URL("abc.png"))
	})

	t.Run("上传失败", func(t *testing.T) {
		st := NewS3StoreWithClient(&fakeS3{err: errors.New("denied")}, "bucket", "", "https://cdn")
		err := st.Save(context.Background(), "abc.png", []byte("PNG"))
		assert.ErrorContains(t, err, "denied")
		assert.Equal(t, "https://cdn/abc.png", st.URL("abc.png"))
	})
}

func TestNew(t *testing.T) {
	opts := imageopts.NewOptions()
	opts.Dir = t.TempDir()
	st, err := New(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, "local", st.Name())

	opts.Storage = imageopts.StorageS3
	opts.S3.Bucket = ""
	_, err = New(context.Background(), opts)
	assert.Error(t, err)

	opts.Storage = "ftp"
	_, err = New(context.Background(), opts)
	assert.Error(t, err)
}
