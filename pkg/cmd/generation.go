package cmd

import (
	"context"
	"log/slog"

	"github.com/dukex/superagente/pkg/generation"
)

// NewGeneration returns the Gemini provider when an API key is configured and
// the simulated provider otherwise.
func NewGeneration(ctx context.Context, logger *slog.Logger, cfg generation.GeminiConfig) (generation.Capability, error) {
	if cfg.APIKey == "" {
		logger.WarnContext(ctx, "GEMINI_API_KEY not set, using simulated generation")

		return generation.NewSimulated(), nil
	}

	return generation.NewGemini(ctx, logger, cfg)
}
