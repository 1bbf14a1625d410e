// Package generation provides text generation and embedding capabilities backed by an LLM provider.
package generation

import (
	"context"
	"errors"
	"fmt"
)

// DefaultDimensions is the embedding size produced by the Gemini embedding models.
const DefaultDimensions = 768

var (
	// ErrGeneration indicates the provider failed to produce a completion.
	ErrGeneration = errors.New("generation failed")

	// ErrEmbedding indicates the provider failed to produce an embedding.
	ErrEmbedding = errors.New("embedding failed")

	// ErrEmptyPrompt indicates an empty prompt was submitted.
	ErrEmptyPrompt = errors.New("prompt cannot be empty")
)

// Capability is the text generation and embedding service used by workflows and memory.
// Implementations must be safe for concurrent use.
type Capability interface {
	// Generate returns a completion for prompt, using contextText as prior knowledge when not empty.
	Generate(ctx context.Context, prompt, contextText string) (string, error)

	// Embed returns the embedding vector for text.
	Embed(ctx context.Context, text string) ([]float64, error)

	// Name returns the provider name.
	Name() string
}

func generationError(provider string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrGeneration, provider, err)
}

func embeddingError(provider string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrEmbedding, provider, err)
}

// IsGenerationError checks if an error came from a failed completion.
func IsGenerationError(err error) bool {
	return errors.Is(err, ErrGeneration)
}

// IsEmbeddingError checks if an error came from a failed embedding.
func IsEmbeddingError(err error) bool {
	return errors.Is(err, ErrEmbedding)
}

// withContext prepends retrieved context to the prompt.
func withContext(prompt, contextText string) string {
	if contextText == "" {
		return prompt
	}

	return contextText + "\n\n" + prompt
}
