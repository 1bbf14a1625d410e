package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ErrInvalidDefinition indicates a workflow definition document is structurally malformed.
var ErrInvalidDefinition = errors.New("invalid workflow definition")

// DefinitionSchema is the JSON schema every stored workflow definition must satisfy.
// Node kinds are not restricted here: unknown kinds are reported per node at run time.
func DefinitionSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"nodes": map[string]any{
				"type": []string{"array", "null"},
				"items": map[string]any{
					"type":     "object",
					"required": []string{"id", "type"},
					"properties": map[string]any{
						"id":   map[string]any{"type": "string", "minLength": 1},
						"type": map[string]any{"type": "string", "minLength": 1},
						"data": map[string]any{
							"type": "object",
							"properties": map[string]any{
								"value":       map[string]any{"type": "string"},
								"instruction": map[string]any{"type": "string"},
								"result":      map[string]any{"type": "string"},
							},
						},
					},
				},
			},
			"edges": map[string]any{
				"type": []string{"array", "null"},
				"items": map[string]any{
					"type":     "object",
					"required": []string{"source", "target"},
					"properties": map[string]any{
						"id":     map[string]any{"type": "string"},
						"source": map[string]any{"type": "string", "minLength": 1},
						"target": map[string]any{"type": "string", "minLength": 1},
					},
				},
			},
		},
	}
}

// ValidateDefinition checks a definition against DefinitionSchema.
func ValidateDefinition(definition Definition) error {
	schemaLoader := gojsonschema.NewGoLoader(DefinitionSchema())
	dataLoader := gojsonschema.NewGoLoader(definition)

	result, err := gojsonschema.Validate(schemaLoader, dataLoader)
	if err != nil {
		return fmt.Errorf("failed to validate workflow definition: %w", err)
	}

	if !result.Valid() {
		messages := make([]string, 0, len(result.Errors()))
		for _, resultErr := range result.Errors() {
			messages = append(messages, resultErr.String())
		}

		return fmt.Errorf("%w: %s", ErrInvalidDefinition, strings.Join(messages, "; "))
	}

	return nil
}
