package imageproxy

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Options)
		wantErr bool
	}{
		{"默认本地存储", func(*Options) {}, false},
		{"相对上游地址", func(o *Options) { o.UpstreamURL = "/api/genimage" }, true},
		{"零超时", func(o *Options) { o.UpstreamTimeout = 0 }, true},
		{"本地存储缺少目录", func(o *Options) { o.Dir = "" }, true},
		{"s3 缺少 bucket", func(o *Options) { o.Storage = StorageS3 }, true},
		{"s3 完整配置", func(o *Options) {
			o.Storage = StorageS3
			o.S3.Bucket = "images"
			o.S3.Region = "us-east-1"
		}, false},
		{"未知存储", func(o *Options) { o.Storage = "ftp" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := NewOptions()
			tt.mutate(o)
			if tt.wantErr {
				assert.NotEmpty(t, o.Validate())
			} else {
				assert.Empty(t, o.Validate())
			}
		})
	}
}

func TestAddFlags(t *testing.T) {
	o := NewOptions()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	o.AddFlags(fs)

	require.NoError(t, fs.Parse([]string{"--image.storage=s3", "--image.public-base-url=https://cdn.example.com"}))
	assert.Equal(t, StorageS3, o.Storage)
	assert.Equal(t, "https://cdn.example.com", o.PublicBaseURL)
}
