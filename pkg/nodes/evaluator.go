// Package nodes evaluates individual workflow nodes against the results of their predecessors.
package nodes

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dukex/superagente/pkg/models"
)

// DefaultContextLimit is the number of memories requested for each generation.
const DefaultContextLimit = 3

var (
	ErrUnsupportedNodeType = errors.New("unsupported node type")
	ErrMissingInstruction  = errors.New("generate node requires an instruction")
	ErrMultipleInputs      = errors.New("node has more than one incoming edge")
)

// Generator produces text for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt, contextText string) (string, error)
}

// ContextProvider supplies prior knowledge for a generation and records new interactions.
// RelevantContext must degrade to an empty string instead of failing.
type ContextProvider interface {
	RelevantContext(ctx context.Context, query string, limit int) string
	RecordInteraction(ctx context.Context, content string, metadata map[string]string) error
}

// Evaluator computes the ExecutionResult of a single node.
// It is safe for concurrent use when its collaborators are.
type Evaluator struct {
	generator       Generator
	contextProvider ContextProvider
	fanIn           FanInPolicy
	contextLimit    int
	logger          *slog.Logger
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithFanInPolicy sets how nodes with several incoming edges resolve their input.
func WithFanInPolicy(policy FanInPolicy) Option {
	return func(e *Evaluator) {
		e.fanIn = policy
	}
}

// WithContextLimit sets how many memories are requested per generation.
func WithContextLimit(limit int) Option {
	return func(e *Evaluator) {
		e.contextLimit = limit
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(e *Evaluator) {
		e.logger = logger
	}
}

// NewEvaluator creates an Evaluator. contextProvider may be nil, in which case
// generations run without context and interactions are not recorded.
func NewEvaluator(generator Generator, contextProvider ContextProvider, opts ...Option) *Evaluator {
	e := &Evaluator{
		generator:       generator,
		contextProvider: contextProvider,
		fanIn:           FanInFirst,
		contextLimit:    DefaultContextLimit,
		logger:          slog.Default(),
	}

	for _, opt := range opts {
		opt(e)
	}

	e.logger = e.logger.With("module", "node_evaluator")

	return e
}

// Evaluate runs node using the results already produced in this pass.
// Failures never escape: they are returned as error-tagged results.
func (e *Evaluator) Evaluate(
	ctx context.Context,
	node models.Node,
	prior map[string]models.ExecutionResult,
	edges []models.Edge,
) models.ExecutionResult {
	switch node.Type {
	case models.NodeKindInput:
		return models.ExecutionResult{
			Type:   models.ResultTypeInput,
			Value:  node.Data.Value,
			Status: models.ResultStatusCompleted,
		}
	case models.NodeKindGenerate:
		return e.evaluateGenerate(ctx, node, prior, edges)
	case models.NodeKindOutput:
		input, err := e.resolveInput(node.ID, prior, edges)
		if err != nil {
			return failure(models.ResultTypeOutput, err)
		}

		return models.ExecutionResult{
			Type:   models.ResultTypeOutput,
			Value:  input,
			Status: models.ResultStatusCompleted,
		}
	default:
		return failure(models.ResultType(node.Type), fmt.Errorf("%w: %s", ErrUnsupportedNodeType, node.Type))
	}
}

func failure(resultType models.ResultType, err error) models.ExecutionResult {
	return models.ExecutionResult{
		Type:   resultType,
		Status: models.ResultStatusError,
		Error:  err.Error(),
	}
}
