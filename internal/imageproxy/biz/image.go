// Package biz generates images and stores them.
package biz

import (
	"context"

	"github.com/google/uuid"
	"github.com/kart-io/logger"

	"github.com/kart-io/wizora/internal/imageproxy/store"
	"github.com/kart-io/wizora/pkg/utils/errors"
)

// Upstream produces image bytes for a prompt.
type Upstream interface {
	Generate(ctx context.Context, prompt string) ([]byte, error)
}

// Service forwards prompts and persists the result.
type Service struct {
	upstream Upstream
	store    store.ImageStore
}

// NewService creates a Service.
func NewService(upstream Upstream, st store.ImageStore) *Service {
	return &Service{upstream: upstream, store: st}
}

// Generate returns the public URL of a freshly generated image.
func (s *Service) Generate(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		return "", errors.ErrPromptRequired
	}

	data, err := s.upstream.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}

	name := uuid.NewString() + ".png"
	if err := s.store.Save(ctx, name, data); err != nil {
		return "", errors.ErrImageStore.WithMessage(err.Error()).WithCause(err)
	}

	url := s.store.URL(name)
	logger.Infow("image stored", "store", s.store.Name(), "name", name, "bytes", len(data))
	return url, nil
}
