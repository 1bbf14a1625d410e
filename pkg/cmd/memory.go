package cmd

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/dukex/superagente/pkg/memory"
	"github.com/dukex/superagente/pkg/memory/redis"
	"github.com/dukex/superagente/pkg/persistence"
)

var ErrNoMemoryStore = errors.New("memory store requires a redis memory url or a database url")

// IsRedisURL reports whether url selects the Redis memory store.
func IsRedisURL(url string) bool {
	return strings.HasPrefix(url, "redis://") || strings.HasPrefix(url, "rediss://")
}

// NewMemoryStore returns a Redis store for redis:// and rediss:// URLs and the
// persistence memory repository otherwise. p may be nil only for Redis URLs.
func NewMemoryStore(ctx context.Context, logger *slog.Logger, memoryURL string, p persistence.Persistence) (memory.Store, error) {
	if IsRedisURL(memoryURL) {
		return redis.New(ctx, logger, memoryURL)
	}

	if p == nil {
		return nil, ErrNoMemoryStore
	}

	return p.MemoryRepository(), nil
}
