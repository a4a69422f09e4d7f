// Package biz implements document question answering.
package biz

import (
	"context"
	stderrors "errors"

	"github.com/kart-io/logger"

	"github.com/kart-io/wizora/internal/docqa/store"
	"github.com/kart-io/wizora/internal/pkg/docutil"
	"github.com/kart-io/wizora/internal/pkg/inference"
	"github.com/kart-io/wizora/internal/pkg/textutil"
	"github.com/kart-io/wizora/pkg/llm"
	"github.com/kart-io/wizora/pkg/utils/errors"
)

// Config holds chunking and generation parameters.
type Config struct {
	ChunkSize int
	MaxTokens int
}

// Service answers questions about the last document uploaded to a session.
type Service struct {
	store store.CorpusStore
	gen   inference.Generator
	cfg   Config
}

// NewService creates a Service.
func NewService(st store.CorpusStore, gen inference.Generator, cfg Config) *Service {
	return &Service{store: st, gen: gen, cfg: cfg}
}

// Prompt builds the answering prompt.
func Prompt(chunk, question string) string {
	return "Answer the question based on the context below.\n\nContext: " + chunk +
		"\n\nQuestion: " + question + "\nAnswer:"
}

// Upload extracts the text of a document, chunks it and replaces the session
// corpus. It returns the number of chunks stored.
func (s *Service) Upload(ctx context.Context, session, filename, contentType string, data []byte) (int, error) {
	mediaType := docutil.DetectType(filename, contentType)
	text, err := docutil.Extract(mediaType, data)
	if err != nil {
		if stderrors.Is(err, docutil.ErrUnsupportedType) {
			return 0, errors.ErrDocUnsupportedType.WithMessagef("Unsupported file type: %s", mediaType).WithCause(err)
		}
		return 0, errors.ErrDocExtract.WithCause(err)
	}

	chunks := textutil.SplitWords(text, s.cfg.ChunkSize)
	if err := s.store.Replace(ctx, session, chunks); err != nil {
		return 0, errors.ErrCorpusStore.WithCause(err)
	}

	logger.Infow("document indexed",
		"session", session,
		"filename", filename,
		"type", mediaType,
		"chunks", len(chunks),
	)
	return len(chunks), nil
}

// Ask answers question from the most relevant chunk of the session corpus.
// It returns ErrNoContext when nothing relevant was uploaded.
func (s *Service) Ask(ctx context.Context, session, question string) (string, error) {
	if question == "" {
		return "", errors.ErrQuestionRequired
	}

	corpus, err := s.store.Get(ctx, session)
	if err != nil {
		return "", errors.ErrCorpusStore.WithCause(err)
	}

	best, score := textutil.Rank(question, corpus)
	if best == "" {
		return "", errors.ErrNoContext
	}
	logger.Debugw("context selected", "session", session, "score", score, "chunks", len(corpus))

	answer, err := s.gen.Generate(ctx, Prompt(best, question), llm.WithMaxTokens(s.cfg.MaxTokens))
	if err != nil {
		return "", inference.Classify(err, errors.ErrDocAnswer)
	}
	return answer, nil
}
