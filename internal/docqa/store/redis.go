package store

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/kart-io/wizora/pkg/utils/json"
)

const corpusKey = "docqa:corpus:"

// RedisStore keeps each corpus as one JSON value so a replace is a single SET.
type RedisStore struct {
	client    goredis.UniversalClient
	keyPrefix string
	ttl       time.Duration
}

var _ CorpusStore = (*RedisStore)(nil)

// NewRedisStore creates a RedisStore. A zero ttl keeps corpora forever.
func NewRedisStore(client goredis.UniversalClient, keyPrefix string, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, keyPrefix: keyPrefix, ttl: ttl}
}

// Name returns the backend name.
func (s *RedisStore) Name() string {
	return "redis"
}

func (s *RedisStore) key(session string) string {
	return s.keyPrefix + corpusKey + session
}

// Replace overwrites the corpus of session and refreshes its expiry.
func (s *RedisStore) Replace(ctx context.Context, session string, chunks []string) error {
	if chunks == nil {
		chunks = []string{}
	}
	data, err := json.Marshal(chunks)
	if err != nil {
		return fmt.Errorf("encode corpus: %w", err)
	}
	if err := s.client.Set(ctx, s.key(session), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("store corpus: %w", err)
	}
	return nil
}

// Get loads the corpus of session.
func (s *RedisStore) Get(ctx context.Context, session string) ([]string, error) {
	data, err := s.client.Get(ctx, s.key(session)).Bytes()
	if err != nil {
		if stderrors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("load corpus: %w", err)
	}
	var chunks []string
	if err := json.Unmarshal(data, &chunks); err != nil {
		return nil, fmt.Errorf("decode corpus: %w", err)
	}
	return chunks, nil
}
