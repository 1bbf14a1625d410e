package postgresql

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/dukex/superagente/pkg/models"
	"github.com/lib/pq"
)

// MemoryRepository stores memories with their embedding as a DOUBLE PRECISION array.
type MemoryRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewMemoryRepository(db *sql.DB, logger *slog.Logger) *MemoryRepository {
	return &MemoryRepository{db: db, logger: logger}
}

func (r *MemoryRepository) SaveMemory(ctx context.Context, memory *models.Memory) error {
	metadata := memory.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}

	metadataJSON, err := json.Marshal(metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal memory metadata: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO memories (id, content, embedding, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, memory.ID, memory.Content, pq.Array(memory.Embedding), metadataJSON, memory.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save memory %s: %w", memory.ID, err)
	}

	return nil
}

func (r *MemoryRepository) Memories(ctx context.Context) ([]*models.Memory, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, content, embedding, metadata, created_at
		FROM memories
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query memories: %w", err)
	}
	defer closeRows(ctx, r.logger, rows)

	memories := make([]*models.Memory, 0)

	for rows.Next() {
		var (
			memory       models.Memory
			embedding    pq.Float64Array
			metadataJSON []byte
		)

		err := rows.Scan(&memory.ID, &memory.Content, &embedding, &metadataJSON, &memory.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan memory: %w", err)
		}

		memory.Embedding = embedding

		if len(metadataJSON) > 0 {
			err = json.Unmarshal(metadataJSON, &memory.Metadata)
			if err != nil {
				return nil, fmt.Errorf("failed to unmarshal memory metadata %s: %w", memory.ID, err)
			}
		}

		memories = append(memories, &memory)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("error iterating memories: %w", err)
	}

	return memories, nil
}
