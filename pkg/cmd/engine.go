package cmd

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/dukex/superagente/pkg/nodes"
	"github.com/dukex/superagente/pkg/workflow"
	"go.opentelemetry.io/otel/trace"
)

// EngineConfig tunes the workflow executor.
type EngineConfig struct {
	NodeTimeout time.Duration
	FanInPolicy string
	Tracer      trace.Tracer // nil keeps the global tracer
}

// NewEngine wires an evaluator and executor. contextProvider may be nil.
func NewEngine(
	logger *slog.Logger,
	generator nodes.Generator,
	contextProvider nodes.ContextProvider,
	cfg EngineConfig,
) (*workflow.Executor, error) {
	policy, err := nodes.ParseFanInPolicy(cfg.FanInPolicy)
	if err != nil {
		return nil, fmt.Errorf("invalid fan-in policy: %w", err)
	}

	evaluator := nodes.NewEvaluator(generator, contextProvider,
		nodes.WithFanInPolicy(policy),
		nodes.WithLogger(logger),
	)

	opts := []workflow.Option{
		workflow.WithLogger(logger),
		workflow.WithNodeTimeout(cfg.NodeTimeout),
	}

	if cfg.Tracer != nil {
		opts = append(opts, workflow.WithTracer(cfg.Tracer))
	}

	return workflow.NewExecutor(evaluator, opts...), nil
}
