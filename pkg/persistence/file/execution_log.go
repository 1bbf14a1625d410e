package file

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/dukex/superagente/pkg/models"
	"github.com/dukex/superagente/pkg/persistence"
)

// ExecutionLogRepository stores one JSON file per run under execution_logs/<workflow id>/.
type ExecutionLogRepository struct {
	mu   sync.RWMutex
	root string
}

func NewExecutionLogRepository(root string) *ExecutionLogRepository {
	return &ExecutionLogRepository{root: root}
}

func (er *ExecutionLogRepository) dir(workflowID string) string {
	return filepath.Join(er.root, "execution_logs", workflowID)
}

// Append writes log to disk.
func (er *ExecutionLogRepository) Append(_ context.Context, log *models.ExecutionLog) error {
	if err := validateID(log.WorkflowID); err != nil {
		return &persistence.ExecutionLogError{Op: "Append", WorkflowID: log.WorkflowID, Err: err}
	}

	if err := validateID(log.ID); err != nil {
		return &persistence.ExecutionLogError{Op: "Append", WorkflowID: log.WorkflowID, Err: err}
	}

	er.mu.Lock()
	defer er.mu.Unlock()

	dir := er.dir(log.WorkflowID)

	err := os.MkdirAll(dir, 0750)
	if err != nil {
		return fmt.Errorf("failed to create execution log directory: %w", err)
	}

	data, err := json.Marshal(log)
	if err != nil {
		return fmt.Errorf("failed to marshal execution log %s: %w", log.ID, err)
	}

	err = os.WriteFile(filepath.Join(dir, log.ID+".json"), data, 0600)
	if err != nil {
		return &persistence.ExecutionLogError{Op: "Append", WorkflowID: log.WorkflowID, Err: err}
	}

	return nil
}

// ListByWorkflow returns the logs of workflowID, newest first.
func (er *ExecutionLogRepository) ListByWorkflow(_ context.Context, workflowID string) ([]*models.ExecutionLog, error) {
	if err := validateID(workflowID); err != nil {
		return nil, &persistence.ExecutionLogError{Op: "ListByWorkflow", WorkflowID: workflowID, Err: err}
	}

	er.mu.RLock()
	defer er.mu.RUnlock()

	dir := er.dir(workflowID)

	jsonFiles, err := fs.Glob(os.DirFS(dir), "*.json")
	if err != nil {
		return nil, fmt.Errorf("failed to list execution logs: %w", err)
	}

	logs := make([]*models.ExecutionLog, 0, len(jsonFiles))

	for _, file := range jsonFiles {
		data, err := os.ReadFile(filepath.Join(dir, file)) // #nosec G304 -- path built from validated id and glob match
		if err != nil {
			return nil, fmt.Errorf("failed to read execution log %s: %w", file, err)
		}

		var log models.ExecutionLog
		if err := json.Unmarshal(data, &log); err != nil {
			return nil, fmt.Errorf("failed to unmarshal execution log %s: %w", file, err)
		}

		logs = append(logs, &log)
	}

	sort.SliceStable(logs, func(i, j int) bool {
		return logs[i].ExecutedAt.After(logs[j].ExecutedAt)
	})

	return logs, nil
}
