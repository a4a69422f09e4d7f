package response

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/kart-io/wizora/pkg/utils/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(handlers ...gin.HandlerFunc) *httptest.ResponseRecorder {
	r := gin.New()
	r.GET("/", handlers...)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	return w
}

func TestFail(t *testing.T) {
	tests := []struct {
		name       string
		handlers   []gin.HandlerFunc
		wantStatus int
		wantBody   string
		wantCode   int
	}{
		{
			name:       "默认 error 字段",
			handlers:   []gin.HandlerFunc{func(c *gin.Context) { Fail(c, errors.ErrPromptRequired) }},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"Prompt is required"}`,
			wantCode:   errors.ErrPromptRequired.Code,
		},
		{
			name: "detail 字段",
			handlers: []gin.HandlerFunc{UseField(FieldDetail), func(c *gin.Context) {
				Fail(c, errors.ErrNoReadableContent)
			}},
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   `{"detail":"No readable content found at URL"}`,
			wantCode:   errors.ErrNoReadableContent.Code,
		},
		{
			name:       "普通错误按内部错误处理",
			handlers:   []gin.HandlerFunc{func(c *gin.Context) { Fail(c, fmt.Errorf("disk full")) }},
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"disk full"}`,
			wantCode:   errors.ErrInternal.Code,
		},
		{
			name: "自定义消息保留状态码",
			handlers: []gin.HandlerFunc{func(c *gin.Context) {
				Fail(c, errors.ErrImageUpstream.WithMessagef("Failed to generate image: %d", 500))
			}},
			wantStatus: http.StatusBadGateway,
			wantBody:   `{"error":"Failed to generate image: 500"}`,
			wantCode:   errors.ErrImageUpstream.Code,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(tt.handlers...)
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
			assert.Equal(t, strconv.Itoa(tt.wantCode), w.Header().Get(HeaderErrorCode))
		})
	}
}

func TestOK(t *testing.T) {
	w := serve(func(c *gin.Context) { OK(c, gin.H{"answer": "42"}) })
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"answer":"42"}`, w.Body.String())
	assert.Empty(t, w.Header().Get(HeaderErrorCode))
}

func TestMessage(t *testing.T) {
	w := serve(func(c *gin.Context) { Message(c, http.StatusOK, errors.ErrNoContext) })
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"error":"No relevant context found."}`, w.Body.String())
}
