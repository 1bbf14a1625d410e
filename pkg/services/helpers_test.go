package services

import (
	"io"
	"log/slog"

	"github.com/dukex/superagente/pkg/generation"
	"github.com/dukex/superagente/pkg/nodes"
	"github.com/dukex/superagente/pkg/workflow"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func simulatedExecutor() *workflow.Executor {
	return workflow.NewExecutor(nodes.NewEvaluator(generation.NewSimulated(), nil), workflow.WithLogger(testLogger()))
}
