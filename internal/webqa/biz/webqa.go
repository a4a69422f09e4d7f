// Package biz answers questions about web pages.
package biz

import (
	"context"
	"net/url"
	"strings"

	"github.com/kart-io/logger"

	"github.com/kart-io/wizora/internal/pkg/inference"
	"github.com/kart-io/wizora/internal/pkg/textutil"
	"github.com/kart-io/wizora/pkg/llm"
	"github.com/kart-io/wizora/pkg/utils/errors"
)

// PageFetcher returns the readable text of a page.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Config holds the generation limits.
type Config struct {
	SummaryInputChars int
	SummaryMaxTokens  int
	AnswerMaxTokens   int
}

// Service summarizes a page and answers from the summary.
type Service struct {
	fetcher    PageFetcher
	summarizer inference.Generator
	answerer   inference.Generator
	cfg        Config
}

// NewService creates a Service.
func NewService(f PageFetcher, summarizer, answerer inference.Generator, cfg Config) *Service {
	return &Service{fetcher: f, summarizer: summarizer, answerer: answerer, cfg: cfg}
}

// AnswerPrompt builds the question prompt over a summary.
func AnswerPrompt(summary, question string) string {
	return "Based on the following summarized content, answer the question clearly and concisely.\n\nSummary:\n" +
		summary + "\n\nQuestion: " + question + "\nAnswer:"
}

// ValidateURL accepts absolute http and https URLs only.
func ValidateURL(raw string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, errors.ErrInvalidURL.WithCause(err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, errors.ErrInvalidURL
	}
	return u, nil
}

// Ask fetches rawURL, summarizes its text and answers question.
func (s *Service) Ask(ctx context.Context, rawURL, question string) (string, error) {
	u, err := ValidateURL(rawURL)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(question) == "" {
		return "", errors.ErrWebQuestion
	}

	text, err := s.fetcher.Fetch(ctx, u.String())
	if err != nil {
		return "", err
	}
	if text == "" {
		return "", errors.ErrNoReadableContent
	}

	input := textutil.TruncateRunes(text, s.cfg.SummaryInputChars)
	summary, err := s.summarizer.Generate(ctx, input, llm.WithMaxTokens(s.cfg.SummaryMaxTokens))
	if err != nil {
		return "", inference.Classify(err, errors.ErrSummarize)
	}
	logger.Debugw("page summarized", "url", u.String(), "text_runes", len([]rune(input)), "summary", summary)

	answer, err := s.answerer.Generate(ctx, AnswerPrompt(summary, question), llm.WithMaxTokens(s.cfg.AnswerMaxTokens))
	if err != nil {
		return "", inference.Classify(err, errors.ErrWebAnswer)
	}
	return answer, nil
}
