package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// MountPath is where the HTTP server serves the local image directory.
const MountPath = "/images"

// LocalStore writes images to a directory served statically under MountPath.
type LocalStore struct {
	dir     string
	baseURL string
}

var _ ImageStore = (*LocalStore)(nil)

// NewLocalStore creates dir if needed.
func NewLocalStore(dir, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create image dir %s: %w", dir, err)
	}
	return &LocalStore{dir: dir, baseURL: baseURL}, nil
}

// Dir returns the directory images are written to.
func (s *LocalStore) Dir() string {
	return s.dir
}

// Name returns the backend name.
func (s *LocalStore) Name() string {
	return "local"
}

// Save writes to a temporary file first so readers never see a partial image.
func (s *LocalStore) Save(_ context.Context, name string, data []byte) error {
	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write image: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close image: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod image: %w", err)
	}
	return os.Rename(tmp.Name(), filepath.Join(s.dir, filepath.Base(name)))
}

// URL returns <base>/images/<name>.
func (s *LocalStore) URL(name string) string {
	return joinURL(s.baseURL, MountPath, name)
}
