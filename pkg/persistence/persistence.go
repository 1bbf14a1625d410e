// Package persistence provides data storage abstraction layer for workflows, execution logs and memories.
package persistence

import (
	"context"

	"github.com/dukex/superagente/pkg/models"
)

type Persistence interface {
	WorkflowRepository() WorkflowRepository
	ExecutionLogRepository() ExecutionLogRepository
	MemoryRepository() MemoryRepository

	HealthCheck(ctx context.Context) error
	Close(ctx context.Context) error
}

// WorkflowRepository stores workflow definitions.
type WorkflowRepository interface {
	GetAll(ctx context.Context) ([]*models.Workflow, error)
	// GetByID returns ErrWorkflowNotFound when no workflow has the id.
	GetByID(ctx context.Context, id string) (*models.Workflow, error)
	Save(ctx context.Context, workflow *models.Workflow) error
	Delete(ctx context.Context, id string) error
}

// ExecutionLogRepository records the outcome of workflow runs.
type ExecutionLogRepository interface {
	Append(ctx context.Context, log *models.ExecutionLog) error
	// ListByWorkflow returns the logs of a workflow, newest first.
	ListByWorkflow(ctx context.Context, workflowID string) ([]*models.ExecutionLog, error)
}

// MemoryRepository stores interaction memories with their embeddings.
type MemoryRepository interface {
	SaveMemory(ctx context.Context, memory *models.Memory) error
	Memories(ctx context.Context) ([]*models.Memory, error)
}
