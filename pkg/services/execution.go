package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dukex/superagente/pkg/eventbus"
	"github.com/dukex/superagente/pkg/events"
	"github.com/dukex/superagente/pkg/models"
	"github.com/dukex/superagente/pkg/otelhelper"
	"github.com/dukex/superagente/pkg/persistence"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// WorkflowExecutor runs a definition to completion.
type WorkflowExecutor interface {
	Execute(ctx context.Context, def models.Definition) *models.ExecutionReport
}

// Execution runs stored workflows and keeps their execution log.
type Execution struct {
	workflows   *Workflow
	persistence persistence.Persistence
	executor    WorkflowExecutor
	publisher   eventbus.EventPublisher
	logger      *slog.Logger
	tracer      trace.Tracer
}

// NewExecution creates an execution service. publisher may be nil.
func NewExecution(
	workflows *Workflow,
	persistence persistence.Persistence,
	executor WorkflowExecutor,
	publisher eventbus.EventPublisher,
	logger *slog.Logger,
) *Execution {
	return &Execution{
		workflows:   workflows,
		persistence: persistence,
		executor:    executor,
		publisher:   publisher,
		logger:      logger.With("module", "execution_service"),
		tracer:      otel.Tracer("superagente/services"),
	}
}

// Execute runs the stored workflow and appends the report to its execution log.
// The returned error is only set when the workflow cannot be loaded; a report
// with status error is a normal return.
func (e *Execution) Execute(ctx context.Context, workflowID string, trigger events.Trigger) (*models.ExecutionReport, error) {
	executionID := uuid.New().String()

	ctx, span := otelhelper.StartSpan(ctx, e.tracer, "workflow.run",
		attribute.String(otelhelper.WorkflowIDKey, workflowID),
		attribute.String(otelhelper.ExecutionIDKey, executionID),
	)
	defer span.End()

	workflow, err := e.workflows.FetchByID(ctx, workflowID)
	if err != nil {
		otelhelper.SetError(span, err)

		return nil, err
	}

	span.SetAttributes(attribute.String(otelhelper.WorkflowNameKey, workflow.Name))

	logger := e.logger.With("workflow_id", workflowID, "execution_id", executionID, "trigger", trigger)

	e.publish(ctx, workflowID, events.WorkflowExecutionStarted{
		BaseEvent:   events.NewBaseEvent(events.WorkflowExecutionStartedEvent, workflowID),
		ExecutionID: executionID,
		Trigger:     trigger,
		NodeCount:   len(workflow.Definition.Nodes),
	})

	start := time.Now()
	report := e.executor.Execute(ctx, workflow.Definition)
	duration := time.Since(start)

	span.SetAttributes(attribute.String(otelhelper.ExecutionStatusKey, string(report.Status)))

	err = e.persistence.ExecutionLogRepository().Append(ctx, &models.ExecutionLog{
		ID:         executionID,
		WorkflowID: workflowID,
		Status:     report.Status,
		Output:     report,
		ExecutedAt: report.ExecutedAt,
	})
	if err != nil {
		logger.ErrorContext(ctx, "Failed to record execution log", "error", err)
	}

	if !report.Succeeded() {
		logger.WarnContext(ctx, "Workflow execution failed", "error", report.Error)

		e.publish(ctx, workflowID, events.WorkflowExecutionFailed{
			BaseEvent:   events.NewBaseEvent(events.WorkflowExecutionFailedEvent, workflowID),
			ExecutionID: executionID,
			Trigger:     trigger,
			Error:       report.Error,
			Duration:    duration,
		})

		return report, nil
	}

	statuses := make(map[string]models.ResultStatus, len(report.Results))
	failed := 0

	for nodeID, result := range report.Results {
		statuses[nodeID] = result.Status
		if result.Failed() {
			failed++
		}
	}

	logger.InfoContext(ctx, "Workflow executed", "node_count", len(statuses), "failed_nodes", failed, "duration", duration)

	e.publish(ctx, workflowID, events.WorkflowExecutionCompleted{
		BaseEvent:    events.NewBaseEvent(events.WorkflowExecutionCompletedEvent, workflowID),
		ExecutionID:  executionID,
		Trigger:      trigger,
		NodeStatuses: statuses,
		FailedNodes:  failed,
		Duration:     duration,
	})

	return report, nil
}

// Logs returns the execution log of a workflow, newest first.
func (e *Execution) Logs(ctx context.Context, workflowID string) ([]*models.ExecutionLog, error) {
	logs, err := e.persistence.ExecutionLogRepository().ListByWorkflow(ctx, workflowID)
	if err != nil {
		return nil, fmt.Errorf("failed to list execution logs: %w", err)
	}

	return logs, nil
}

func (e *Execution) publish(ctx context.Context, workflowID string, event eventbus.Event) {
	if e.publisher == nil {
		return
	}

	err := e.publisher.Publish(ctx, workflowID, event)
	if err != nil {
		e.logger.ErrorContext(ctx, "Failed to publish event", "event_type", event.GetType(), "workflow_id", workflowID, "error", err)
	}
}
