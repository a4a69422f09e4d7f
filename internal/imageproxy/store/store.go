// Package store persists generated images and builds their public URLs.
package store

import (
	"context"
	"fmt"
	"strings"

	imageopts "github.com/kart-io/wizora/pkg/options/imageproxy"
)

// ImageStore saves image bytes under a name.
type ImageStore interface {
	// Save writes data under name, replacing any previous object.
	Save(ctx context.Context, name string, data []byte) error
	// URL returns the address clients fetch name from.
	URL(name string) string
	// Name identifies the backend in logs.
	Name() string
}

// New builds the store selected by opts.
func New(ctx context.Context, opts *imageopts.Options) (ImageStore, error) {
	switch opts.Storage {
	case imageopts.StorageLocal, "":
		return NewLocalStore(opts.Dir, opts.PublicBaseURL)
	case imageopts.StorageS3:
		return NewS3Store(ctx, opts.S3, opts.PublicBaseURL)
	default:
		return nil, fmt.Errorf("unknown image storage %q", opts.Storage)
	}
}

func joinURL(base string, parts ...string) string {
	u := strings.TrimRight(base, "/")
	for _, p := range parts {
		if p = strings.Trim(p, "/"); p != "" {
			u += "/" + p
		}
	}
	return u
}
