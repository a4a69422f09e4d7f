// Package handler provides HTTP handlers for document QA.
package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kart-io/wizora/internal/docqa/biz"
	"github.com/kart-io/wizora/internal/pkg/httputils"
	"github.com/kart-io/wizora/pkg/utils/errors"
	"github.com/kart-io/wizora/pkg/utils/response"
)

// HeaderSessionID selects the corpus a request works on.
const HeaderSessionID = "X-Session-ID"

const maxSessionLen = 128

// DocQAHandler handles uploads and questions.
type DocQAHandler struct {
	svc             *biz.Service
	defaultSession  string
	noContextStatus int
}

// NewDocQAHandler creates a new DocQAHandler. noContextStatus is the status
// written when a session has nothing to answer from.
func NewDocQAHandler(svc *biz.Service, defaultSession string, noContextStatus int) *DocQAHandler {
	return &DocQAHandler{
		svc:             svc,
		defaultSession:  defaultSession,
		noContextStatus: noContextStatus,
	}
}

// UploadResponse is the body of a successful upload.
type UploadResponse struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
	Chunks    int    `json:"chunks"`
}

// QuestionRequest is the body of POST /question.
type QuestionRequest struct {
	Question string `json:"question"`
}

// AnswerResponse carries a generated answer.
type AnswerResponse struct {
	Answer string `json:"answer"`
}

func (h *DocQAHandler) session(c *gin.Context) (string, error) {
	s := strings.TrimSpace(c.GetHeader(HeaderSessionID))
	if s == "" {
		return h.defaultSession, nil
	}
	if len(s) > maxSessionLen {
		return "", errors.ErrInvalidParam.WithMessagef("%s must be at most %d bytes", HeaderSessionID, maxSessionLen)
	}
	return s, nil
}

// Upload handles POST /upload.
func (h *DocQAHandler) Upload(c *gin.Context) {
	session, err := h.session(c)
	if err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}

	file, err := httputils.ReadFormFile(c, "file", errors.ErrDocMissingFile)
	if err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}

	n, err := h.svc.Upload(c.Request.Context(), session, file.Filename, file.ContentType, file.Data)
	if err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}

	c.Header(HeaderSessionID, session)
	httputils.WriteResponse(c, nil, UploadResponse{
		Message:   "File uploaded and text chunked successfully.",
		SessionID: session,
		Chunks:    n,
	})
}

// Question handles POST /question.
func (h *DocQAHandler) Question(c *gin.Context) {
	session, err := h.session(c)
	if err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}

	var req QuestionRequest
	if err := httputils.BindJSON(c, &req); err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}

	answer, err := h.svc.Ask(c.Request.Context(), session, req.Question)
	if errors.IsCode(err, errors.ErrNoContext.Code) {
		response.Message(c, h.noContextStatus, errors.ErrNoContext)
		return
	}
	if err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}
	httputils.WriteResponse(c, nil, AnswerResponse{Answer: answer})
}
