package file

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/dukex/superagente/pkg/models"
)

// MemoryRepository stores one JSON file per memory.
type MemoryRepository struct {
	mu   sync.RWMutex
	root string
}

func NewMemoryRepository(root string) *MemoryRepository {
	return &MemoryRepository{root: root}
}

func (mr *MemoryRepository) dir() string {
	return filepath.Join(mr.root, "memories")
}

func (mr *MemoryRepository) SaveMemory(_ context.Context, memory *models.Memory) error {
	if err := validateID(memory.ID); err != nil {
		return fmt.Errorf("failed to save memory: %w", err)
	}

	mr.mu.Lock()
	defer mr.mu.Unlock()

	err := os.MkdirAll(mr.dir(), 0750)
	if err != nil {
		return fmt.Errorf("failed to create memories directory: %w", err)
	}

	data, err := json.Marshal(memory)
	if err != nil {
		return fmt.Errorf("failed to marshal memory %s: %w", memory.ID, err)
	}

	err = os.WriteFile(filepath.Join(mr.dir(), memory.ID+".json"), data, 0600)
	if err != nil {
		return fmt.Errorf("failed to write memory %s: %w", memory.ID, err)
	}

	return nil
}

func (mr *MemoryRepository) Memories(_ context.Context) ([]*models.Memory, error) {
	mr.mu.RLock()
	defer mr.mu.RUnlock()

	jsonFiles, err := fs.Glob(os.DirFS(mr.dir()), "*.json")
	if err != nil {
		return nil, fmt.Errorf("failed to list memory files: %w", err)
	}

	memories := make([]*models.Memory, 0, len(jsonFiles))

	for _, file := range jsonFiles {
		data, err := os.ReadFile(filepath.Join(mr.dir(), file)) // #nosec G304 -- glob match inside the memories dir
		if err != nil {
			return nil, fmt.Errorf("failed to read memory %s: %w", file, err)
		}

		var memory models.Memory
		if err := json.Unmarshal(data, &memory); err != nil {
			return nil, fmt.Errorf("failed to unmarshal memory %s: %w", file, err)
		}

		memories = append(memories, &memory)
	}

	return memories, nil
}
