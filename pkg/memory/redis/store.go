// Package redis provides a Redis-backed memory store.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/dukex/superagente/pkg/models"
	redis "github.com/redis/go-redis/v9"
)

const (
	DefaultKey = "superagente:memories"

	// DefaultMaxEntries bounds the list so ranking stays brute-force friendly.
	DefaultMaxEntries = 10000
)

// Store keeps memories as JSON documents in a Redis list, newest last.
type Store struct {
	client     redis.UniversalClient
	key        string
	maxEntries int64
	logger     *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

func WithKey(key string) Option {
	return func(s *Store) {
		s.key = key
	}
}

func WithMaxEntries(n int64) Option {
	return func(s *Store) {
		s.maxEntries = n
	}
}

// New connects to the Redis server at url (redis://[:password@]host:port/db).
func New(ctx context.Context, logger *slog.Logger, url string, opts ...Option) (*Store, error) {
	options, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	client := redis.NewClient(options)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()

		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	store := NewWithClient(client, logger, opts...)
	store.logger.InfoContext(ctx, "Connected to Redis", "addr", options.Addr, "db", options.DB)

	return store, nil
}

// NewWithClient wraps an existing client.
func NewWithClient(client redis.UniversalClient, logger *slog.Logger, opts ...Option) *Store {
	store := &Store{
		client:     client,
		key:        DefaultKey,
		maxEntries: DefaultMaxEntries,
		logger:     logger.With("module", "redis_memory_store"),
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

// SaveMemory appends memory to the list, dropping the oldest entries past the size bound.
func (s *Store) SaveMemory(ctx context.Context, memory *models.Memory) error {
	data, err := json.Marshal(memory)
	if err != nil {
		return fmt.Errorf("failed to marshal memory: %w", err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, s.key, data)

		if s.maxEntries > 0 {
			pipe.LTrim(ctx, s.key, -s.maxEntries, -1)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save memory %s: %w", memory.ID, err)
	}

	return nil
}

// Memories returns every stored memory. Entries that fail to decode are skipped.
func (s *Store) Memories(ctx context.Context) ([]*models.Memory, error) {
	entries, err := s.client.LRange(ctx, s.key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load memories: %w", err)
	}

	memories := make([]*models.Memory, 0, len(entries))

	for _, entry := range entries {
		var memory models.Memory
		if err := json.Unmarshal([]byte(entry), &memory); err != nil {
			s.logger.WarnContext(ctx, "Skipping malformed memory entry", "error", err)

			continue
		}

		memories = append(memories, &memory)
	}

	return memories, nil
}

// HealthCheck pings the server.
func (s *Store) HealthCheck(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis health check failed: %w", err)
	}

	return nil
}

func (s *Store) Close() error {
	return s.client.Close()
}
