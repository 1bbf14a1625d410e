package workflow

import (
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/trace"
)

// Option configures an Executor.
type Option func(*Executor)

func WithLogger(logger *slog.Logger) Option {
	return func(e *Executor) {
		e.logger = logger
	}
}

// WithNodeTimeout bounds each node evaluation. A node exceeding it gets an error result.
// Zero disables the bound.
func WithNodeTimeout(timeout time.Duration) Option {
	return func(e *Executor) {
		e.nodeTimeout = timeout
	}
}

// WithClock replaces the clock used for ExecutedAt.
func WithClock(now func() time.Time) Option {
	return func(e *Executor) {
		e.now = now
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(e *Executor) {
		e.tracer = tracer
	}
}
