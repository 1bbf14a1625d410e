package generation

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"math"
	"math/rand"
	"strings"
	"time"
)

// Simulated is an offline Capability used when no provider key is configured.
// Replies are canned and keyed on words found in the prompt; embeddings are
// derived from a hash of the text so equal texts always embed identically.
type Simulated struct {
	delay      time.Duration
	dimensions int
}

// SimulatedOption configures a Simulated capability.
type SimulatedOption func(*Simulated)

// WithDelay makes every Generate call wait d before answering.
func WithDelay(d time.Duration) SimulatedOption {
	return func(s *Simulated) {
		s.delay = d
	}
}

// WithDimensions sets the embedding size.
func WithDimensions(dimensions int) SimulatedOption {
	return func(s *Simulated) {
		s.dimensions = dimensions
	}
}

// NewSimulated creates a Simulated capability.
func NewSimulated(opts ...SimulatedOption) *Simulated {
	s := &Simulated{dimensions: DefaultDimensions}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the provider name.
func (s *Simulated) Name() string {
	return "simulated"
}

// Generate returns a canned reply for prompt. contextText is ignored.
func (s *Simulated) Generate(ctx context.Context, prompt, _ string) (string, error) {
	if prompt == "" {
		return "", generationError(s.Name(), ErrEmptyPrompt)
	}

	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return "", generationError(s.Name(), ctx.Err())
		case <-timer.C:
		}
	}

	lower := strings.ToLower(prompt)

	switch {
	case strings.Contains(lower, "traduz"):
		return "Hello, world!", nil
	case strings.Contains(lower, "resumo"):
		return "Este é um resumo gerado pelo Gemini AI sobre o conteúdo fornecido.", nil
	case strings.Contains(lower, "análise"):
		return "Análise: O conteúdo apresenta características positivas e pode ser melhorado em alguns aspectos.", nil
	default:
		return `Resposta do Gemini AI para: "` + prompt + `"`, nil
	}
}

// Embed returns a unit-length vector seeded from the SHA-256 of text.
func (s *Simulated) Embed(ctx context.Context, text string) ([]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, embeddingError(s.Name(), err)
	}

	hash := sha256.Sum256([]byte(text))
	seed := int64(binary.BigEndian.Uint64(hash[:8])) // #nosec G115 bit reinterpretation
	rng := rand.New(rand.NewSource(seed))            // #nosec G404 non-crypto

	embedding := make([]float64, s.dimensions)

	var norm float64

	for i := range embedding {
		embedding[i] = rng.Float64()*2 - 1
		norm += embedding[i] * embedding[i]
	}

	if norm == 0 {
		return embedding, nil
	}

	norm = math.Sqrt(norm)
	for i := range embedding {
		embedding[i] /= norm
	}

	return embedding, nil
}
