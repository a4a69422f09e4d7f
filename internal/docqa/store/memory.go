package store

import (
	"context"
	"slices"
	"sync"
)

// MemoryStore keeps corpora in process memory.
type MemoryStore struct {
	mu      sync.RWMutex
	corpora map[string][]string
}

var _ CorpusStore = (*MemoryStore)(nil)

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{corpora: make(map[string][]string)}
}

// Name returns the backend name.
func (s *MemoryStore) Name() string {
	return "memory"
}

// Replace stores a copy of chunks for session.
func (s *MemoryStore) Replace(_ context.Context, session string, chunks []string) error {
	c := slices.Clone(chunks)
	s.mu.Lock()
	s.corpora[session] = c
	s.mu.Unlock()
	return nil
}

// Get returns the corpus of session. The slice must not be modified.
func (s *MemoryStore) Get(_ context.Context, session string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.corpora[session], nil
}
