package postgresql

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/dukex/superagente/pkg/models"
	"github.com/dukex/superagente/pkg/persistence"
)

// ExecutionLogRepository handles execution log database operations.
type ExecutionLogRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewExecutionLogRepository(db *sql.DB, logger *slog.Logger) *ExecutionLogRepository {
	return &ExecutionLogRepository{db: db, logger: logger}
}

func (r *ExecutionLogRepository) Append(ctx context.Context, log *models.ExecutionLog) error {
	outputJSON, err := json.Marshal(log.Output)
	if err != nil {
		return fmt.Errorf("failed to marshal execution report: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO execution_logs (id, workflow_id, status, output, executed_at)
		VALUES ($1, $2, $3, $4, $5)
	`, log.ID, log.WorkflowID, log.Status, outputJSON, log.ExecutedAt)
	if err != nil {
		return &persistence.ExecutionLogError{Op: "Append", WorkflowID: log.WorkflowID, Err: err}
	}

	return nil
}

func (r *ExecutionLogRepository) ListByWorkflow(ctx context.Context, workflowID string) ([]*models.ExecutionLog, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, workflow_id, status, output, executed_at
		FROM execution_logs
		WHERE workflow_id = $1
		ORDER BY executed_at DESC
	`, workflowID)
	if err != nil {
		return nil, &persistence.ExecutionLogError{Op: "ListByWorkflow", WorkflowID: workflowID, Err: err}
	}
	defer closeRows(ctx, r.logger, rows)

	logs := make([]*models.ExecutionLog, 0)

	for rows.Next() {
		var (
			log        models.ExecutionLog
			outputJSON []byte
		)

		err := rows.Scan(&log.ID, &log.WorkflowID, &log.Status, &outputJSON, &log.ExecutedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan execution log: %w", err)
		}

		if len(outputJSON) > 0 {
			err = json.Unmarshal(outputJSON, &log.Output)
			if err != nil {
				return nil, fmt.Errorf("failed to unmarshal execution report %s: %w", log.ID, err)
			}
		}

		logs = append(logs, &log)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("error iterating execution logs: %w", err)
	}

	return logs, nil
}
