package nodes_test

import (
	"context"
	"errors"
	"testing"

	"github.com/dukex/superagente/pkg/generation"
	"github.com/dukex/superagente/pkg/mocks"
	"github.com/dukex/superagente/pkg/models"
	"github.com/dukex/superagente/pkg/nodes"
	"github.com/dukex/superagente/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestEvaluate_InputNode(t *testing.T) {
	t.Parallel()

	evaluator := nodes.NewEvaluator(&mocks.MockGenerator{}, nil)

	result := evaluator.Evaluate(context.Background(), testutil.InputNode("1", "Olá"), nil, nil)

	assert.Equal(t, models.ExecutionResult{
		Type:   models.ResultTypeInput,
		Value:  "Olá",
		Status: models.ResultStatusCompleted,
	}, result)
}

func TestEvaluate_InputNode_EmptyValue(t *testing.T) {
	t.Parallel()

	result := nodes.NewEvaluator(&mocks.MockGenerator{}, nil).
		Evaluate(context.Background(), testutil.InputNode("1", ""), nil, nil)

	assert.Equal(t, models.ResultStatusCompleted, result.Status)
	assert.Empty(t, result.Value)
}

func TestEvaluate_GenerateNode(t *testing.T) {
	t.Parallel()

	generator := &mocks.MockGenerator{}
	provider := &mocks.MockContextProvider{}

	provider.On("RelevantContext", mock.Anything, "Traduza para inglês", nodes.DefaultContextLimit).
		Return("Instrução: antiga")
	generator.On("Generate", mock.Anything, "Traduza para inglês\n\nEntrada: Olá", "Instrução: antiga").
		Return("Hello", nil)
	provider.On("RecordInteraction", mock.Anything,
		"Instrução: Traduza para inglês\nEntrada: Olá\nResposta: Hello",
		map[string]string{
			"type":        "gemini_interaction",
			"node_id":     "2",
			"instruction": "Traduza para inglês",
			"input":       "Olá",
		}).Return(nil)

	prior := map[string]models.ExecutionResult{
		"1": {Type: models.ResultTypeInput, Value: "Olá", Status: models.ResultStatusCompleted},
	}

	result := nodes.NewEvaluator(generator, provider).Evaluate(
		context.Background(),
		testutil.GenerateNode("2", "Traduza para inglês"),
		prior,
		[]models.Edge{testutil.Edge("1", "2")},
	)

	assert.Equal(t, models.ExecutionResult{
		Type:        models.ResultTypeGemini,
		Instruction: "Traduza para inglês",
		Input:       "Olá",
		Output:      "Hello",
		Status:      models.ResultStatusCompleted,
	}, result)

	generator.AssertExpectations(t)
	provider.AssertExpectations(t)
}

func TestEvaluate_GenerateNode_GenerationFailure(t *testing.T) {
	t.Parallel()

	generator := &mocks.MockGenerator{}
	provider := &mocks.MockContextProvider{}

	provider.On("RelevantContext", mock.Anything, mock.Anything, mock.Anything).Return("")
	generator.On("Generate", mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("quota exceeded"))

	result := nodes.NewEvaluator(generator, provider).
		Evaluate(context.Background(), testutil.GenerateNode("2", "Resuma"), nil, nil)

	assert.Equal(t, models.ResultTypeGemini, result.Type)
	assert.Equal(t, models.ResultStatusError, result.Status)
	assert.Contains(t, result.Error, "quota exceeded")
	assert.Empty(t, result.Output)

	provider.AssertNotCalled(t, "RecordInteraction", mock.Anything, mock.Anything, mock.Anything)
}

func TestEvaluate_GenerateNode_RecordFailureIsIgnored(t *testing.T) {
	t.Parallel()

	generator := &mocks.MockGenerator{}
	provider := &mocks.MockContextProvider{}

	provider.On("RelevantContext", mock.Anything, mock.Anything, mock.Anything).Return("")
	provider.On("RecordInteraction", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("store down"))
	generator.On("Generate", mock.Anything, "Resuma\n\nEntrada: ", "").Return("ok", nil)

	result := nodes.NewEvaluator(generator, provider).
		Evaluate(context.Background(), testutil.GenerateNode("2", "Resuma"), nil, nil)

	assert.Equal(t, models.ResultStatusCompleted, result.Status)
	assert.Equal(t, "ok", result.Output)
}

func TestEvaluate_GenerateNode_CancelledBeforeRecording(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())

	generator := &mocks.MockGenerator{}
	provider := &mocks.MockContextProvider{}

	provider.On("RelevantContext", mock.Anything, mock.Anything, mock.Anything).Return("")
	generator.On("Generate", mock.Anything, mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { cancel() }).
		Return("late answer", nil)

	result := nodes.NewEvaluator(generator, provider).
		Evaluate(ctx, testutil.GenerateNode("2", "Resuma"), nil, nil)

	assert.Equal(t, models.ResultTypeGemini, result.Type)
	assert.Equal(t, models.ResultStatusError, result.Status)
	assert.Contains(t, result.Error, context.Canceled.Error())
	assert.Empty(t, result.Output)

	provider.AssertNotCalled(t, "RecordInteraction", mock.Anything, mock.Anything, mock.Anything)
}

func TestEvaluate_GenerateNode_WithoutContextProvider(t *testing.T) {
	t.Parallel()

	result := nodes.NewEvaluator(generation.NewSimulated(), nil).Evaluate(
		context.Background(),
		testutil.GenerateNode("2", "Traduza para inglês"),
		map[string]models.ExecutionResult{"1": {Type: models.ResultTypeInput, Value: "Olá", Status: models.ResultStatusCompleted}},
		[]models.Edge{testutil.Edge("1", "2")},
	)

	assert.Equal(t, models.ResultStatusCompleted, result.Status)
	assert.Equal(t, "Hello, world!", result.Output)
	assert.Equal(t, "Olá", result.Input)
}

func TestEvaluate_GenerateNode_MissingInstruction(t *testing.T) {
	t.Parallel()

	generator := &mocks.MockGenerator{}

	result := nodes.NewEvaluator(generator, nil).
		Evaluate(context.Background(), testutil.GenerateNode("2", "   "), nil, nil)

	assert.Equal(t, models.ResultTypeGemini, result.Type)
	assert.Equal(t, models.ResultStatusError, result.Status)
	assert.Contains(t, result.Error, nodes.ErrMissingInstruction.Error())

	generator.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything)
}

func TestEvaluate_OutputNode(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		upstream models.ExecutionResult
		expected string
	}{
		{"from input", models.ExecutionResult{Type: models.ResultTypeInput, Value: "v", Status: models.ResultStatusCompleted}, "v"},
		{"from generate", models.ExecutionResult{Type: models.ResultTypeGemini, Output: "o", Status: models.ResultStatusCompleted}, "o"},
		{"from output", models.ExecutionResult{Type: models.ResultTypeOutput, Value: "w", Status: models.ResultStatusCompleted}, "w"},
		{"from failure", models.ExecutionResult{Type: models.ResultTypeGemini, Status: models.ResultStatusError, Error: "x"}, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			result := nodes.NewEvaluator(&mocks.MockGenerator{}, nil).Evaluate(
				context.Background(),
				testutil.OutputNode("3"),
				map[string]models.ExecutionResult{"up": tc.upstream},
				[]models.Edge{testutil.Edge("up", "3")},
			)

			assert.Equal(t, models.ResultTypeOutput, result.Type)
			assert.Equal(t, models.ResultStatusCompleted, result.Status)
			assert.Equal(t, tc.expected, result.Value)
		})
	}
}

func TestEvaluate_OutputNode_NoPredecessor(t *testing.T) {
	t.Parallel()

	result := nodes.NewEvaluator(&mocks.MockGenerator{}, nil).
		Evaluate(context.Background(), testutil.OutputNode("3"), map[string]models.ExecutionResult{}, nil)

	assert.Equal(t, models.ResultStatusCompleted, result.Status)
	assert.Empty(t, result.Value)
}

func TestEvaluate_UnsupportedKind(t *testing.T) {
	t.Parallel()

	node := models.Node{ID: "x", Type: "unknownType"}

	result := nodes.NewEvaluator(&mocks.MockGenerator{}, nil).Evaluate(context.Background(), node, nil, nil)

	assert.Equal(t, models.ResultType("unknownType"), result.Type)
	assert.Equal(t, models.ResultStatusError, result.Status)
	assert.Equal(t, "unsupported node type: unknownType", result.Error)
}

func TestEvaluate_DoesNotMutatePrior(t *testing.T) {
	t.Parallel()

	prior := map[string]models.ExecutionResult{
		"1": {Type: models.ResultTypeInput, Value: "a", Status: models.ResultStatusCompleted},
	}

	nodes.NewEvaluator(&mocks.MockGenerator{}, nil).
		Evaluate(context.Background(), testutil.OutputNode("2"), prior, []models.Edge{testutil.Edge("1", "2")})

	assert.Len(t, prior, 1)
	assert.Equal(t, "a", prior["1"].Value)
}

func TestEvaluate_FanIn(t *testing.T) {
	t.Parallel()

	prior := map[string]models.ExecutionResult{
		"a": {Type: models.ResultTypeInput, Value: "first", Status: models.ResultStatusCompleted},
		"b": {Type: models.ResultTypeInput, Value: "second", Status: models.ResultStatusCompleted},
	}
	edges := []models.Edge{testutil.Edge("b", "out"), testutil.Edge("a", "out")}

	t.Run("first edge wins by default", func(t *testing.T) {
		t.Parallel()

		result := nodes.NewEvaluator(&mocks.MockGenerator{}, nil).
			Evaluate(context.Background(), testutil.OutputNode("out"), prior, edges)

		assert.Equal(t, "second", result.Value)
	})

	t.Run("concatenate in edge order", func(t *testing.T) {
		t.Parallel()

		result := nodes.NewEvaluator(&mocks.MockGenerator{}, nil, nodes.WithFanInPolicy(nodes.FanInConcatenate)).
			Evaluate(context.Background(), testutil.OutputNode("out"), prior, edges)

		assert.Equal(t, "second\n\nfirst", result.Value)
	})

	t.Run("reject multiple inputs", func(t *testing.T) {
		t.Parallel()

		result := nodes.NewEvaluator(&mocks.MockGenerator{}, nil, nodes.WithFanInPolicy(nodes.FanInReject)).
			Evaluate(context.Background(), testutil.OutputNode("out"), prior, edges)

		assert.Equal(t, models.ResultStatusError, result.Status)
		assert.Contains(t, result.Error, nodes.ErrMultipleInputs.Error())
	})

	t.Run("reject allows a single input", func(t *testing.T) {
		t.Parallel()

		result := nodes.NewEvaluator(&mocks.MockGenerator{}, nil, nodes.WithFanInPolicy(nodes.FanInReject)).
			Evaluate(context.Background(), testutil.OutputNode("out"), prior, edges[:1])

		assert.Equal(t, models.ResultStatusCompleted, result.Status)
		assert.Equal(t, "second", result.Value)
	})
}

func TestParseFanInPolicy(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		value    string
		expected nodes.FanInPolicy
	}{
		{"", nodes.FanInFirst},
		{"first", nodes.FanInFirst},
		{"Concatenate", nodes.FanInConcatenate},
		{" reject ", nodes.FanInReject},
	}

	for _, tc := range testCases {
		policy, err := nodes.ParseFanInPolicy(tc.value)
		require.NoError(t, err)
		assert.Equal(t, tc.expected, policy)
	}

	_, err := nodes.ParseFanInPolicy("merge")
	assert.Error(t, err)
}

func TestBuildPrompt(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Traduza\n\nEntrada: Olá", nodes.BuildPrompt("Traduza", "Olá"))
}
