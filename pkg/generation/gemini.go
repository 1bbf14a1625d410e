package generation

import (
	"context"
	"errors"
	"log/slog"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
)

const (
	GeminiProvider = "gemini"

	DefaultGeminiModel          = "gemini-1.5-flash"
	DefaultGeminiEmbeddingModel = "text-embedding-004"
)

// ErrMissingAPIKey indicates no API key was configured for the Gemini provider.
var ErrMissingAPIKey = errors.New("gemini api key is required")

// GeminiConfig configures the Gemini provider.
type GeminiConfig struct {
	APIKey         string
	Model          string
	EmbeddingModel string
}

// Gemini implements Capability on top of Google's Gemini models.
type Gemini struct {
	client *googleai.GoogleAI
	model  string
	logger *slog.Logger
}

// NewGemini creates a Gemini capability.
func NewGemini(ctx context.Context, logger *slog.Logger, cfg GeminiConfig) (*Gemini, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	if cfg.Model == "" {
		cfg.Model = DefaultGeminiModel
	}

	if cfg.EmbeddingModel == "" {
		cfg.EmbeddingModel = DefaultGeminiEmbeddingModel
	}

	client, err := googleai.New(ctx,
		googleai.WithAPIKey(cfg.APIKey),
		googleai.WithDefaultModel(cfg.Model),
		googleai.WithDefaultEmbeddingModel(cfg.EmbeddingModel),
	)
	if err != nil {
		return nil, generationError(GeminiProvider, err)
	}

	return &Gemini{
		client: client,
		model:  cfg.Model,
		logger: logger.With("provider", GeminiProvider, "model", cfg.Model),
	}, nil
}

// Name returns the provider name.
func (g *Gemini) Name() string {
	return GeminiProvider
}

// Generate sends the prompt, prefixed by context, to the configured Gemini model.
func (g *Gemini) Generate(ctx context.Context, prompt, contextText string) (string, error) {
	if prompt == "" {
		return "", generationError(g.Name(), ErrEmptyPrompt)
	}

	g.logger.DebugContext(ctx, "Sending prompt to Gemini", "prompt_length", len(prompt), "context_length", len(contextText))

	response, err := llms.GenerateFromSinglePrompt(ctx, g.client, withContext(prompt, contextText))
	if err != nil {
		return "", generationError(g.Name(), err)
	}

	return response, nil
}

// Embed creates an embedding for text using the configured embedding model.
func (g *Gemini) Embed(ctx context.Context, text string) ([]float64, error) {
	vectors, err := g.client.CreateEmbedding(ctx, []string{text})
	if err != nil {
		return nil, embeddingError(g.Name(), err)
	}

	if len(vectors) == 0 {
		return nil, embeddingError(g.Name(), errors.New("provider returned no vectors"))
	}

	embedding := make([]float64, len(vectors[0]))
	for i, v := range vectors[0] {
		embedding[i] = float64(v)
	}

	return embedding, nil
}
