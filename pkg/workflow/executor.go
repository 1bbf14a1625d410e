// Package workflow runs workflow definitions node by node in dependency order.
package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"time"

	"github.com/dukex/superagente/pkg/graph"
	"github.com/dukex/superagente/pkg/models"
	"github.com/dukex/superagente/pkg/otelhelper"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// NodeEvaluator computes the result of one node from the results produced before it.
type NodeEvaluator interface {
	Evaluate(ctx context.Context, node models.Node, prior map[string]models.ExecutionResult, edges []models.Edge) models.ExecutionResult
}

// Executor orders a definition and evaluates its nodes sequentially.
// It holds no per-run state, so one Executor may serve concurrent runs.
type Executor struct {
	evaluator   NodeEvaluator
	logger      *slog.Logger
	tracer      trace.Tracer
	nodeTimeout time.Duration
	now         func() time.Time
}

func NewExecutor(evaluator NodeEvaluator, opts ...Option) *Executor {
	e := &Executor{
		evaluator: evaluator,
		logger:    slog.Default(),
		tracer:    otel.Tracer("superagente/workflow"),
		now:       time.Now,
	}

	for _, opt := range opts {
		opt(e)
	}

	e.logger = e.logger.With("module", "workflow_executor")

	return e
}

// Execute runs def and reports the outcome. It never returns a nil report.
//
// A definition that cannot be ordered yields an error report without results.
// Otherwise every node gets an entry in Results, including nodes that failed.
func (e *Executor) Execute(ctx context.Context, def models.Definition) *models.ExecutionReport {
	ctx, span := otelhelper.StartSpan(ctx, e.tracer, "workflow.execute",
		attribute.Int(otelhelper.NodeCountKey, len(def.Nodes)),
		attribute.Int(otelhelper.EdgeCountKey, len(def.Edges)),
	)
	defer span.End()

	ordered, err := graph.Order(def.Nodes, def.Edges)
	if err != nil {
		e.logger.ErrorContext(ctx, "Failed to schedule workflow", "error", err)
		otelhelper.SetError(span, err)

		return &models.ExecutionReport{
			Status:     models.ExecutionStatusError,
			Error:      err.Error(),
			ExecutedAt: e.now().UTC(),
		}
	}

	e.logger.DebugContext(ctx, "Executing workflow", "node_count", len(ordered))

	results := make(map[string]models.ExecutionResult, len(ordered))

	for _, node := range ordered {
		results[node.ID] = e.evaluate(ctx, node, results, def.Edges)
	}

	span.SetAttributes(attribute.String(otelhelper.ExecutionStatusKey, string(models.ExecutionStatusSuccess)))

	return &models.ExecutionReport{
		Status:     models.ExecutionStatusSuccess,
		Results:    results,
		ExecutedAt: e.now().UTC(),
	}
}

func (e *Executor) evaluate(
	ctx context.Context,
	node models.Node,
	results map[string]models.ExecutionResult,
	edges []models.Edge,
) models.ExecutionResult {
	ctx, span := otelhelper.StartSpan(ctx, e.tracer, "workflow.node",
		attribute.String(otelhelper.NodeIDKey, node.ID),
		attribute.String(otelhelper.NodeTypeKey, string(node.Type)),
	)
	defer span.End()

	logger := e.logger.With("node_id", node.ID, "node_type", node.Type)

	var result models.ExecutionResult
	if e.nodeTimeout > 0 {
		result = e.evaluateWithTimeout(ctx, node, results, edges)
	} else {
		result = e.evaluator.Evaluate(ctx, node, results, edges)
	}

	span.SetAttributes(attribute.String(otelhelper.NodeStatusKey, string(result.Status)))

	if result.Failed() {
		logger.WarnContext(ctx, "Node failed", "error", result.Error)
		otelhelper.SetError(span, fmt.Errorf("node %s: %s", node.ID, result.Error))
	} else {
		logger.DebugContext(ctx, "Node completed")
	}

	return result
}

// evaluateWithTimeout bounds a single evaluation. An evaluation that outlives
// the deadline keeps running against its own snapshot of prior results.
func (e *Executor) evaluateWithTimeout(
	ctx context.Context,
	node models.Node,
	results map[string]models.ExecutionResult,
	edges []models.Edge,
) models.ExecutionResult {
	runCtx, cancel := context.WithTimeout(ctx, e.nodeTimeout)
	defer cancel()

	prior := maps.Clone(results)
	done := make(chan models.ExecutionResult, 1)

	go func() {
		done <- e.evaluator.Evaluate(runCtx, node, prior, edges)
	}()

	select {
	case result := <-done:
		return result
	case <-runCtx.Done():
		return models.ExecutionResult{
			Type:   models.ResultTypeFor(node.Type),
			Status: models.ResultStatusError,
			Error:  fmt.Sprintf("node %s did not finish within %s: %v", node.ID, e.nodeTimeout, runCtx.Err()),
		}
	}
}
