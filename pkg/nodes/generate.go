package nodes

import (
	"context"
	"fmt"
	"strings"

	"github.com/dukex/superagente/pkg/models"
)

const interactionType = "gemini_interaction"

// BuildPrompt joins a generate node's instruction and its upstream input.
func BuildPrompt(instruction, input string) string {
	return instruction + "\n\nEntrada: " + input
}

func interactionContent(instruction, input, output string) string {
	return "Instrução: " + instruction + "\nEntrada: " + input + "\nResposta: " + output
}

func (e *Evaluator) evaluateGenerate(
	ctx context.Context,
	node models.Node,
	prior map[string]models.ExecutionResult,
	edges []models.Edge,
) models.ExecutionResult {
	instruction := node.Data.Instruction
	if strings.TrimSpace(instruction) == "" {
		return failure(models.ResultTypeGemini, fmt.Errorf("node %s: %w", node.ID, ErrMissingInstruction))
	}

	input, err := e.resolveInput(node.ID, prior, edges)
	if err != nil {
		return failure(models.ResultTypeGemini, err)
	}

	var contextText string
	if e.contextProvider != nil {
		contextText = e.contextProvider.RelevantContext(ctx, instruction, e.contextLimit)
	}

	output, err := e.generator.Generate(ctx, BuildPrompt(instruction, input), contextText)
	if err != nil {
		e.logger.WarnContext(ctx, "Generation failed", "node_id", node.ID, "error", err)

		return failure(models.ResultTypeGemini, fmt.Errorf("generate node %s: %w", node.ID, err))
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		e.logger.WarnContext(ctx, "Generation finished after cancellation", "node_id", node.ID, "error", ctxErr)

		return failure(models.ResultTypeGemini, fmt.Errorf("generate node %s: %w", node.ID, ctxErr))
	}

	if e.contextProvider != nil {
		err = e.contextProvider.RecordInteraction(ctx, interactionContent(instruction, input, output), map[string]string{
			"type":        interactionType,
			"node_id":     node.ID,
			"instruction": instruction,
			"input":       input,
		})
		if err != nil {
			e.logger.WarnContext(ctx, "Failed to record interaction", "node_id", node.ID, "error", err)
		}
	}

	return models.ExecutionResult{
		Type:        models.ResultTypeGemini,
		Instruction: instruction,
		Input:       input,
		Output:      output,
		Status:      models.ResultStatusCompleted,
	}
}
