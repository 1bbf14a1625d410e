// Package memory stores past interactions with their embeddings and retrieves
// the most relevant ones as context for new generations.
package memory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dukex/superagente/pkg/models"
	"github.com/google/uuid"
)

const (
	// DefaultSearchLimit is used when a search asks for a non-positive number of matches.
	DefaultSearchLimit = 5

	// InteractionType tags memories recorded from generation nodes.
	InteractionType = "gemini_interaction"
)

var (
	ErrEmptyContent = errors.New("memory content cannot be empty")
	ErrEmptyQuery   = errors.New("memory query cannot be empty")
)

// Store persists memories.
type Store interface {
	SaveMemory(ctx context.Context, memory *models.Memory) error
	Memories(ctx context.Context) ([]*models.Memory, error)
}

// Embedder turns text into an embedding vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// Service implements the context provider used by generation nodes.
type Service struct {
	store    Store
	embedder Embedder
	logger   *slog.Logger
	now      func() time.Time
}

func NewService(store Store, embedder Embedder, logger *slog.Logger) *Service {
	return &Service{
		store:    store,
		embedder: embedder,
		logger:   logger.With("module", "memory"),
		now:      time.Now,
	}
}

// StoreMemory embeds content and persists it with metadata.
func (s *Service) StoreMemory(ctx context.Context, content string, metadata map[string]any) (*models.Memory, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}

	embedding, err := s.embedder.Embed(ctx, content)
	if err != nil {
		return nil, fmt.Errorf("failed to embed memory: %w", err)
	}

	if metadata == nil {
		metadata = map[string]any{}
	}

	memory := &models.Memory{
		ID:        uuid.NewString(),
		Content:   content,
		Embedding: embedding,
		Metadata:  metadata,
		CreatedAt: s.now().UTC(),
	}

	if err := s.store.SaveMemory(ctx, memory); err != nil {
		return nil, fmt.Errorf("failed to save memory: %w", err)
	}

	s.logger.DebugContext(ctx, "Stored memory", "memory_id", memory.ID, "content_length", len(content))

	return memory, nil
}

// Search returns up to limit memories ranked by cosine similarity to query.
func (s *Service) Search(ctx context.Context, query string, limit int) ([]models.MemoryMatch, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}

	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	embedding, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	memories, err := s.store.Memories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load memories: %w", err)
	}

	return rank(memories, embedding, limit), nil
}

// RelevantContext joins the contents of the best matches for query with blank lines.
// Any failure degrades to an empty context.
func (s *Service) RelevantContext(ctx context.Context, query string, limit int) string {
	matches, err := s.Search(ctx, query, limit)
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to retrieve relevant context", "error", err)

		return ""
	}

	contents := make([]string, len(matches))
	for i, match := range matches {
		contents[i] = match.Content
	}

	return strings.Join(contents, "\n\n")
}

// RecordInteraction stores a generation exchange as a memory.
func (s *Service) RecordInteraction(ctx context.Context, content string, metadata map[string]string) error {
	meta := make(map[string]any, len(metadata))
	for k, v := range metadata {
		meta[k] = v
	}

	_, err := s.StoreMemory(ctx, content, meta)

	return err
}
