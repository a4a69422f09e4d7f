// Package biz implements table insight generation.
package biz

import (
	"context"
	"strings"

	"github.com/kart-io/logger"
	"golang.org/x/sync/errgroup"

	"github.com/kart-io/wizora/internal/pkg/inference"
	"github.com/kart-io/wizora/internal/pkg/textutil"
	"github.com/kart-io/wizora/pkg/llm"
	"github.com/kart-io/wizora/pkg/utils/errors"
)

const (
	chunkPromptHead = "You are a skilled data analyst. Examine the following dataset chunk to find meaningful insights, " +
		"draw conclusions, and suggest data-driven decisions. Focus on trends, patterns, and possible predictions:\n\n"
	chunkPromptTail = "\n\nProvide a concise insight summary."

	finalPromptHead = "You are a data analyst. Based on the following summaries from multiple parts of a dataset, " +
		"generate a final overall insight:\n\n"
	finalPromptTail = "\n\nProvide a comprehensive final summary."
)

// Config holds the generation parameters.
type Config struct {
	ChunkSize      int
	ChunkMaxTokens int
	FinalMaxTokens int
	Temperature    float64
	MaxRows        int
	// Concurrency caps the chunk summaries in flight for one table. It should
	// not exceed the worker pool capacity.
	Concurrency int
}

const defaultConcurrency = 4

// Service produces insights for a table.
type Service struct {
	gen inference.Generator
	cfg Config
}

// NewService creates a Service.
func NewService(gen inference.Generator, cfg Config) *Service {
	return &Service{gen: gen, cfg: cfg}
}

// ChunkPrompt builds the prompt for one rendered chunk.
func ChunkPrompt(chunk string) string {
	return chunkPromptHead + chunk + chunkPromptTail
}

// FinalPrompt builds the prompt that merges the chunk summaries.
func FinalPrompt(summaries []string) string {
	return finalPromptHead + strings.Join(summaries, "\n\n") + finalPromptTail
}

// Analyze summarizes every chunk of t concurrently and merges the summaries
// in chunk order into one final insight.
func (s *Service) Analyze(ctx context.Context, t *Table) (string, error) {
	if t == nil || len(t.Rows) == 0 {
		return "", errors.ErrCSVEmpty
	}
	if s.cfg.MaxRows > 0 && len(t.Rows) > s.cfg.MaxRows {
		return "", errors.ErrCSVParse.WithMessagef("Table has %d rows, the limit is %d", len(t.Rows), s.cfg.MaxRows)
	}

	chunks := textutil.Chunk(t.Rows, s.cfg.ChunkSize)
	summaries := make([]string, len(chunks))

	limit := s.cfg.Concurrency
	if limit <= 0 {
		limit = defaultConcurrency
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, rows := range chunks {
		g.Go(func() error {
			out, err := s.gen.Generate(gctx, ChunkPrompt(Render(t.Header, rows)), s.options(s.cfg.ChunkMaxTokens)...)
			if err != nil {
				return err
			}
			summaries[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", inference.Classify(err, errors.ErrCSVInsight)
	}

	logger.Debugw("chunk summaries generated", "rows", len(t.Rows), "chunks", len(chunks))

	final, err := s.gen.Generate(ctx, FinalPrompt(summaries), s.options(s.cfg.FinalMaxTokens)...)
	if err != nil {
		return "", inference.Classify(err, errors.ErrCSVInsight)
	}
	return final, nil
}

func (s *Service) options(maxTokens int) []llm.GenerateOption {
	opts := []llm.GenerateOption{llm.WithMaxTokens(maxTokens)}
	if s.cfg.Temperature > 0 {
		opts = append(opts, llm.WithTemperature(s.cfg.Temperature))
	}
	return opts
}
