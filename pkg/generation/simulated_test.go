package generation_test

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/dukex/superagente/pkg/generation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulated_Generate(t *testing.T) {
	t.Parallel()

	sim := generation.NewSimulated()

	testCases := []struct {
		prompt   string
		expected string
	}{
		{"Traduza para inglês\n\nEntrada: Olá", "Hello, world!"},
		{"Faça um RESUMO do texto", "Este é um resumo gerado pelo Gemini AI sobre o conteúdo fornecido."},
		{"Faça uma análise", "Análise: O conteúdo apresenta características positivas e pode ser melhorado em alguns aspectos."},
		{"Conte uma piada", `Resposta do Gemini AI para: "Conte uma piada"`},
	}

	for _, tc := range testCases {
		t.Run(tc.prompt, func(t *testing.T) {
			t.Parallel()

			out, err := sim.Generate(context.Background(), tc.prompt, "")
			require.NoError(t, err)
			assert.Equal(t, tc.expected, out)
		})
	}
}

func TestSimulated_Generate_EmptyPrompt(t *testing.T) {
	t.Parallel()

	_, err := generation.NewSimulated().Generate(context.Background(), "", "")
	require.Error(t, err)
	assert.True(t, generation.IsGenerationError(err))
	assert.ErrorIs(t, err, generation.ErrEmptyPrompt)
}

func TestSimulated_Generate_RespectsCancellation(t *testing.T) {
	t.Parallel()

	sim := generation.NewSimulated(generation.WithDelay(time.Minute))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := sim.Generate(ctx, "Traduza", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.True(t, generation.IsGenerationError(err))
}

func TestSimulated_Embed(t *testing.T) {
	t.Parallel()

	sim := generation.NewSimulated()

	first, err := sim.Embed(context.Background(), "olá")
	require.NoError(t, err)
	assert.Len(t, first, generation.DefaultDimensions)

	second, err := sim.Embed(context.Background(), "olá")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	other, err := sim.Embed(context.Background(), "adeus")
	require.NoError(t, err)
	assert.NotEqual(t, first, other)

	var norm float64
	for _, v := range first {
		norm += v * v
	}

	assert.InDelta(t, 1.0, math.Sqrt(norm), 1e-9)
}

func TestSimulated_Embed_CustomDimensions(t *testing.T) {
	t.Parallel()

	embedding, err := generation.NewSimulated(generation.WithDimensions(8)).Embed(context.Background(), "x")
	require.NoError(t, err)
	assert.Len(t, embedding, 8)
}

func TestSimulated_Embed_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := generation.NewSimulated().Embed(ctx, "x")
	require.Error(t, err)
	assert.True(t, generation.IsEmbeddingError(err))
}

func TestNewGemini_RequiresAPIKey(t *testing.T) {
	t.Parallel()

	_, err := generation.NewGemini(context.Background(), nil, generation.GeminiConfig{})
	assert.ErrorIs(t, err, generation.ErrMissingAPIKey)
}
