package handler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kart-io/wizora/internal/csvinsights/biz"
	"github.com/kart-io/wizora/pkg/llm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubGenerator struct {
	calls atomic.Int32
	err   error
}

func (s *stubGenerator) Generate(_ context.Context, prompt string, _ ...llm.GenerateOption) (string, error) {
	s.calls.Add(1)
	if s.err != nil {
		return "", s.err
	}
	if strings.HasPrefix(prompt, "You are a data analyst.") {
		return "overall insight", nil
	}
	return "chunk insight", nil
}

func newEngine(gen *stubGenerator) *gin.Engine {
	svc := biz.NewService(gen, biz.Config{ChunkSize: 20, ChunkMaxTokens: 150, FinalMaxTokens: 200})
	h := NewInsightsHandler(svc)
	r := gin.New()
	r.POST("/analyze-csv/", h.Analyze)
	return r
}

func upload(t *testing.T, r *gin.Engine, field, filename, body string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if field != "" {
		part, err := mw.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = part.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/analyze-csv/", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func csvRows(n int) string {
	var sb strings.Builder
	sb.WriteString("id,value\n")
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&sb, "%d,%d\n", i, i*10)
	}
	return sb.String()
}

func TestAnalyze(t *testing.T) {
	tests := []struct {
		name       string
		field      string
		body       string
		genErr     error
		wantStatus int
		wantBody   string
		wantCalls  int32
	}{
		{
			name:       "45 行生成 3 个分块摘要和 1 个最终摘要",
			field:      "file",
			body:       csvRows(45),
			wantStatus: http.StatusOK,
			wantBody:   `{"insights":"overall insight"}`,
			wantCalls:  4,
		},
		{
			name:       "缺少文件",
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"File is required"}`,
		},
		{
			name:       "只有表头",
			field:      "file",
			body:       "id,value\n",
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"Dataset is empty"}`,
		},
		{
			name:       "模型失败",
			field:      "file",
			body:       csvRows(3),
			genErr:     errors.New("model down"),
			wantStatus: http.StatusBadGateway,
			wantBody:   `{"error":"Failed to generate insights"}`,
			wantCalls:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &stubGenerator{err: tt.genErr}
			w := upload(t, newEngine(gen), tt.field, "data.csv", tt.body)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
			assert.Equal(t, tt.wantCalls, gen.calls.Load())
			if tt.wantStatus != http.StatusOK {
				assert.NotEmpty(t, w.Header().Get("X-Error-Code"))
			}
		})
	}
}
