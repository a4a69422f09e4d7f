// Package store keeps the chunked corpus of each document QA session.
package store

import "context"

// CorpusStore holds one corpus per session.
//
// Replace swaps the whole corpus at once: a concurrent Get returns either the
// previous corpus or the new one, never a mix.
type CorpusStore interface {
	Replace(ctx context.Context, session string, chunks []string) error
	// Get returns nil when the session has no corpus yet.
	Get(ctx context.Context, session string) ([]string, error)
	Name() string
}
