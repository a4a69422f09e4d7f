package handler

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kart-io/wizora/internal/docqa/biz"
	"github.com/kart-io/wizora/internal/docqa/store"
	"github.com/kart-io/wizora/pkg/llm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// echoGenerator answers with the context line of the prompt.
type echoGenerator struct{}

func (echoGenerator) Generate(_ context.Context, prompt string, _ ...llm.GenerateOption) (string, error) {
	_, rest, _ := strings.Cut(prompt, "Context: ")
	chunk, _, _ := strings.Cut(rest, "\n")
	return chunk, nil
}

func newEngine(chunkSize, noContextStatus int) *gin.Engine {
	svc := biz.NewService(store.NewMemoryStore(), echoGenerator{}, biz.Config{ChunkSize: chunkSize, MaxTokens: 100})
	h := NewDocQAHandler(svc, "default", noContextStatus)
	r := gin.New()
	r.POST("/upload", h.Upload)
	r.POST("/question", h.Question)
	return r
}

func upload(t *testing.T, r *gin.Engine, session, filename, contentType, body string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	if contentType != "" {
		hdr.Set("Content-Type", contentType)
	}
	part, err := mw.CreatePart(hdr)
	require.NoError(t, err)
	_, err = part.Write([]byte(body))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if session != "" {
		req.Header.Set(HeaderSessionID, session)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func ask(r *gin.Engine, session, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/question", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if session != "" {
		req.Header.Set(HeaderSessionID, session)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAppleBanana(t *testing.T) {
	r := newEngine(2, http.StatusOK)

	w := upload(t, r, "", "fruit.txt", "text/plain", "apple banana cherry date")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t,
		`{"message":"File uploaded and text chunked successfully.","session_id":"default","chunks":2}`,
		w.Body.String())
	assert.Equal(t, "default", w.Header().Get(HeaderSessionID))

	w = ask(r, "", `{"question":"What about cherry?"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"answer":"cherry date"}`, w.Body.String())
}

func TestSessions(t *testing.T) {
	r := newEngine(500, http.StatusOK)

	require.Equal(t, http.StatusOK, upload(t, r, "alice", "a.txt", "", "alpha document").Code)
	require.Equal(t, http.StatusOK, upload(t, r, "bob", "b.md", "application/octet-stream", "beta document").Code)

	assert.JSONEq(t, `{"answer":"alpha document"}`, ask(r, "alice", `{"question":"document?"}`).Body.String())
	assert.JSONEq(t, `{"answer":"beta document"}`, ask(r, "bob", `{"question":"document?"}`).Body.String())

	w := ask(r, "carol", `{"question":"document?"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"error":"No relevant context found."}`, w.Body.String())

	w = ask(r, strings.Repeat("x", 200), `{"question":"document?"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandlerErrors(t *testing.T) {
	t.Run("无上下文返回 404", func(t *testing.T) {
		w := ask(newEngine(500, http.StatusNotFound), "", `{"question":"anything?"}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"No relevant context found."}`, w.Body.String())
	})

	t.Run("空问题", func(t *testing.T) {
		w := ask(newEngine(500, http.StatusOK), "", `{"question":""}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"Question is required"}`, w.Body.String())
	})

	t.Run("不支持的文件类型", func(t *testing.T) {
		w := upload(t, newEngine(500, http.StatusOK), "", "photo.png", "image/png", "PNG")
		assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
	})

	t.Run("缺少文件", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader(""))
		req.Header.Set("Content-Type", "multipart/form-data; boundary=x")
		w := httptest.NewRecorder()
		newEngine(500, http.StatusOK).ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"File is required"}`, w.Body.String())
	})
}
