package models

import "time"

// Workflow is a persisted workflow definition with its metadata.
type Workflow struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"                  validate:"required,min=1"`
	Description string     `json:"description,omitempty"`
	Definition  Definition `json:"definition"`
	Schedule    string     `json:"schedule,omitempty"` // Optional cron expression for periodic runs
	Owner       string     `json:"user_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Memory is a stored piece of prior interaction used as generation context.
type Memory struct {
	ID        string         `json:"id"`
	Content   string         `json:"content"`
	Embedding []float64      `json:"embedding,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// MemoryMatch is a memory ranked against a query.
type MemoryMatch struct {
	*Memory

	Similarity float64 `json:"similarity"`
}
