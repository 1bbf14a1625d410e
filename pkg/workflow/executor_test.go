package workflow_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dukex/superagente/pkg/generation"
	"github.com/dukex/superagente/pkg/graph"
	"github.com/dukex/superagente/pkg/mocks"
	"github.com/dukex/superagente/pkg/models"
	"github.com/dukex/superagente/pkg/nodes"
	"github.com/dukex/superagente/pkg/testutil"
	"github.com/dukex/superagente/pkg/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

var fixedTime = time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC)

func fixedClock() time.Time {
	return fixedTime
}

// recordingEvaluator remembers the order nodes were evaluated in.
type recordingEvaluator struct {
	mu    sync.Mutex
	order []string
	inner workflow.NodeEvaluator
}

func (r *recordingEvaluator) Evaluate(
	ctx context.Context,
	node models.Node,
	prior map[string]models.ExecutionResult,
	edges []models.Edge,
) models.ExecutionResult {
	r.mu.Lock()
	r.order = append(r.order, node.ID)
	r.mu.Unlock()

	return r.inner.Evaluate(ctx, node, prior, edges)
}

// blockingEvaluator never finishes a generate node until its context ends.
type blockingEvaluator struct {
	inner workflow.NodeEvaluator
}

func (b blockingEvaluator) Evaluate(
	ctx context.Context,
	node models.Node,
	prior map[string]models.ExecutionResult,
	edges []models.Edge,
) models.ExecutionResult {
	if node.Type == models.NodeKindGenerate {
		<-ctx.Done()
		time.Sleep(10 * time.Millisecond)

		return models.ExecutionResult{Type: models.ResultTypeGemini, Output: "late", Status: models.ResultStatusCompleted}
	}

	return b.inner.Evaluate(ctx, node, prior, edges)
}

func simulatedEvaluator() *nodes.Evaluator {
	return nodes.NewEvaluator(generation.NewSimulated(), nil)
}

func TestExecute_TranslationChain(t *testing.T) {
	t.Parallel()

	evaluator := &recordingEvaluator{inner: simulatedEvaluator()}
	executor := workflow.NewExecutor(evaluator, workflow.WithClock(fixedClock))

	report := executor.Execute(context.Background(), testutil.TranslationDefinition())

	require.True(t, report.Succeeded())
	assert.Empty(t, report.Error)
	assert.Equal(t, fixedTime, report.ExecutedAt)
	assert.Equal(t, []string{"1", "2", "3"}, evaluator.order)

	require.Len(t, report.Results, 3)
	assert.Equal(t, models.ExecutionResult{
		Type:   models.ResultTypeInput,
		Value:  "Olá",
		Status: models.ResultStatusCompleted,
	}, report.Results["1"])

	generated := report.Results["2"]
	assert.Equal(t, models.ResultTypeGemini, generated.Type)
	assert.Equal(t, "Traduza para inglês", generated.Instruction)
	assert.Equal(t, "Olá", generated.Input)
	assert.Equal(t, "Hello, world!", generated.Output)

	assert.Equal(t, generated.Output, report.Results["3"].Value)
}

func TestExecute_ReversedNodeArray(t *testing.T) {
	t.Parallel()

	def := testutil.TranslationDefinition()
	def.Nodes[0], def.Nodes[2] = def.Nodes[2], def.Nodes[0]

	evaluator := &recordingEvaluator{inner: simulatedEvaluator()}
	report := workflow.NewExecutor(evaluator).Execute(context.Background(), def)

	require.True(t, report.Succeeded())
	assert.Equal(t, []string{"1", "2", "3"}, evaluator.order)
	assert.Equal(t, "Hello, world!", report.Results["3"].Value)
}

func TestExecute_Cycle(t *testing.T) {
	t.Parallel()

	def := models.Definition{
		Nodes: []models.Node{testutil.InputNode("1", "a"), testutil.OutputNode("2")},
		Edges: []models.Edge{testutil.Edge("1", "2"), testutil.Edge("2", "1")},
	}

	evaluator := &recordingEvaluator{inner: simulatedEvaluator()}
	report := workflow.NewExecutor(evaluator, workflow.WithClock(fixedClock)).Execute(context.Background(), def)

	assert.Equal(t, models.ExecutionStatusError, report.Status)
	assert.Nil(t, report.Results)
	assert.Contains(t, report.Error, graph.ErrCycle.Error())
	assert.Equal(t, fixedTime, report.ExecutedAt)
	assert.Empty(t, evaluator.order)
}

func TestExecute_DanglingEdge(t *testing.T) {
	t.Parallel()

	def := models.Definition{
		Nodes: []models.Node{testutil.InputNode("1", "a")},
		Edges: []models.Edge{testutil.Edge("1", "missing")},
	}

	report := workflow.NewExecutor(simulatedEvaluator()).Execute(context.Background(), def)

	assert.Equal(t, models.ExecutionStatusError, report.Status)
	assert.Nil(t, report.Results)
	assert.Contains(t, report.Error, "missing")
}

func TestExecute_UnsupportedKindIsContained(t *testing.T) {
	t.Parallel()

	def := models.Definition{
		Nodes: []models.Node{
			testutil.InputNode("1", "a"),
			{ID: "2", Type: "unknownType"},
			testutil.OutputNode("3"),
		},
		Edges: []models.Edge{testutil.Edge("1", "3")},
	}

	report := workflow.NewExecutor(simulatedEvaluator()).Execute(context.Background(), def)

	require.True(t, report.Succeeded())
	require.Len(t, report.Results, 3)

	unknown := report.Results["2"]
	assert.True(t, unknown.Failed())
	assert.Equal(t, models.ResultType("unknownType"), unknown.Type)
	assert.Contains(t, unknown.Error, "unknownType")

	assert.Equal(t, models.ResultStatusCompleted, report.Results["1"].Status)
	assert.Equal(t, "a", report.Results["3"].Value)
}

func TestExecute_FailureContainment(t *testing.T) {
	t.Parallel()

	generator := &mocks.MockGenerator{}
	generator.On("Generate", mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("service unavailable"))

	def := models.Definition{
		Nodes: []models.Node{
			testutil.InputNode("A", "x"),
			testutil.GenerateNode("B", "Resuma"),
			testutil.OutputNode("C"),
		},
		Edges: []models.Edge{testutil.Edge("A", "B"), testutil.Edge("B", "C")},
	}

	report := workflow.NewExecutor(nodes.NewEvaluator(generator, nil)).Execute(context.Background(), def)

	require.True(t, report.Succeeded())
	assert.True(t, report.Results["B"].Failed())
	assert.Contains(t, report.Results["B"].Error, "service unavailable")

	assert.Equal(t, models.ResultStatusCompleted, report.Results["C"].Status)
	assert.Empty(t, report.Results["C"].Value)
}

func TestExecute_OutputReadsFirstIncomingEdge(t *testing.T) {
	t.Parallel()

	def := models.Definition{
		Nodes: []models.Node{
			testutil.InputNode("a", "hello"),
			testutil.InputNode("b", "ignored"),
			testutil.OutputNode("out"),
		},
		Edges: []models.Edge{testutil.Edge("a", "out"), testutil.Edge("b", "out")},
	}

	report := workflow.NewExecutor(simulatedEvaluator()).Execute(context.Background(), def)

	require.True(t, report.Succeeded())
	assert.Equal(t, "hello", report.Results["out"].Value)
}

func TestExecute_Idempotent(t *testing.T) {
	t.Parallel()

	executor := workflow.NewExecutor(simulatedEvaluator(), workflow.WithClock(fixedClock))
	def := testutil.TranslationDefinition()

	first := executor.Execute(context.Background(), def)
	second := executor.Execute(context.Background(), def)

	assert.Equal(t, first, second)
	assert.Equal(t, testutil.TranslationDefinition(), def)
}

func TestExecute_EmptyDefinition(t *testing.T) {
	t.Parallel()

	report := workflow.NewExecutor(simulatedEvaluator()).Execute(context.Background(), models.Definition{})

	require.True(t, report.Succeeded())
	assert.Empty(t, report.Results)
}

func TestExecute_NodeTimeout(t *testing.T) {
	t.Parallel()

	executor := workflow.NewExecutor(
		blockingEvaluator{inner: simulatedEvaluator()},
		workflow.WithNodeTimeout(20*time.Millisecond),
	)

	report := executor.Execute(context.Background(), testutil.TranslationDefinition())

	require.True(t, report.Succeeded())

	timedOut := report.Results["2"]
	assert.True(t, timedOut.Failed())
	assert.Equal(t, models.ResultTypeGemini, timedOut.Type)
	assert.Contains(t, timedOut.Error, "did not finish")

	assert.Equal(t, models.ResultStatusCompleted, report.Results["3"].Status)
	assert.Empty(t, report.Results["3"].Value)
}

func TestExecute_NodeTimeoutSkipsLateInteraction(t *testing.T) {
	t.Parallel()

	generator := &mocks.MockGenerator{}
	provider := &mocks.MockContextProvider{}

	provider.On("RelevantContext", mock.Anything, mock.Anything, mock.Anything).Return("")
	generator.On("Generate", mock.Anything, mock.Anything, mock.Anything).
		After(60*time.Millisecond).
		Return("late answer", nil)

	executor := workflow.NewExecutor(
		nodes.NewEvaluator(generator, provider),
		workflow.WithNodeTimeout(10*time.Millisecond),
	)

	report := executor.Execute(context.Background(), testutil.TranslationDefinition())

	require.True(t, report.Succeeded())
	assert.True(t, report.Results["2"].Failed())

	// Let the abandoned evaluation finish.
	time.Sleep(150 * time.Millisecond)

	generator.AssertNumberOfCalls(t, "Generate", 1)
	provider.AssertNotCalled(t, "RecordInteraction", mock.Anything, mock.Anything, mock.Anything)
}

func TestExecute_NodeTimeoutNotReached(t *testing.T) {
	t.Parallel()

	executor := workflow.NewExecutor(simulatedEvaluator(), workflow.WithNodeTimeout(time.Second))

	report := executor.Execute(context.Background(), testutil.TranslationDefinition())

	require.True(t, report.Succeeded())
	assert.Equal(t, "Hello, world!", report.Results["3"].Value)
}

func TestExecute_Spans(t *testing.T) {
	t.Parallel()

	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	executor := workflow.NewExecutor(simulatedEvaluator(), workflow.WithTracer(provider.Tracer("test")))
	executor.Execute(context.Background(), testutil.TranslationDefinition())

	spans := recorder.Ended()
	require.Len(t, spans, 4)

	names := make([]string, len(spans))
	for i, span := range spans {
		names[i] = span.Name()
	}

	assert.Equal(t, []string{"workflow.node", "workflow.node", "workflow.node", "workflow.execute"}, names)
}
