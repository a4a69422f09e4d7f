package errors

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMakeCode(t *testing.T) {
	tests := []struct {
		name     string
		service  int
		category int
		sequence int
		want     int
	}{
		{"通用请求错误", ServiceCommon, CategoryRequest, 1, 1001},
		{"图片上游错误", ServiceImage, CategoryNetwork, 1, 2110001},
		{"文档资源错误", ServiceDocQA, CategoryResource, 1, 2204001},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code := MakeCode(tt.service, tt.category, tt.sequence)
			assert.Equal(t, tt.want, code)

			s, c, q := ParseCode(code)
			assert.Equal(t, tt.service, s)
			assert.Equal(t, tt.category, c)
			assert.Equal(t, tt.sequence, q)
		})
	}
}

func TestKind(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"缺少提示词", ErrPromptRequired, KindClient},
		{"不支持类型", ErrDocUnsupportedType, KindClient},
		{"上游失败", ErrImageUpstream, KindUpstream},
		{"上游超时", ErrFetchTimeout, KindUpstream},
		{"服务繁忙", ErrServiceBusy, KindInternal},
		{"普通错误", fmt.Errorf("boom"), KindInternal},
		{"包装的 Errno", fmt.Errorf("wrap: %w", ErrInvalidURL), KindClient},
		{"上下文超时", context.DeadlineExceeded, KindUpstream},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestWithMessageKeepsCode(t *testing.T) {
	err := ErrImageUpstream.WithMessagef("Failed to generate image: %d", 503)

	assert.Equal(t, ErrImageUpstream.Code, err.Code)
	assert.Equal(t, http.StatusBadGateway, err.HTTPStatus())
	assert.Equal(t, "Failed to generate image: 503", err.MessageEN)
	assert.Equal(t, "Failed to generate image", ErrImageUpstream.MessageEN)
	assert.ErrorIs(t, err, ErrImageUpstream)
}

func TestFromError(t *testing.T) {
	assert.Nil(t, FromError(nil))

	cause := fmt.Errorf("disk full")
	e := FromError(cause)
	assert.Equal(t, ErrInternal.Code, e.Code)
	assert.Equal(t, "disk full", e.MessageEN)
	assert.ErrorIs(t, e, cause)

	wrapped := ErrCorpusStore.WithCause(cause)
	assert.Same(t, wrapped, FromError(fmt.Errorf("ctx: %w", wrapped)))
}

func TestRegisterDuplicatePanics(t *testing.T) {
	assert.Panics(t, func() {
		Register(New(ErrInternal.Code, 500, 0, "dup", ""))
	})
}
