// Package testutil provides test data builders and utilities for testing.
package testutil

import (
	"time"

	"github.com/dukex/superagente/pkg/models"
	"github.com/google/uuid"
)

// InputNode creates an input node emitting value.
func InputNode(id, value string) models.Node {
	return models.Node{ID: id, Type: models.NodeKindInput, Data: models.NodeData{Value: value}}
}

// GenerateNode creates a generate node with instruction.
func GenerateNode(id, instruction string) models.Node {
	return models.Node{ID: id, Type: models.NodeKindGenerate, Data: models.NodeData{Instruction: instruction}}
}

// OutputNode creates an output node.
func OutputNode(id string) models.Node {
	return models.Node{ID: id, Type: models.NodeKindOutput}
}

// Edge creates an edge from source to target.
func Edge(source, target string) models.Edge {
	return models.Edge{ID: "e" + source + "-" + target, Source: source, Target: target}
}

// TranslationDefinition is the three node input, generate, output chain used across tests.
func TranslationDefinition() models.Definition {
	return models.Definition{
		Nodes: []models.Node{
			InputNode("1", "Olá"),
			GenerateNode("2", "Traduza para inglês"),
			OutputNode("3"),
		},
		Edges: []models.Edge{Edge("1", "2"), Edge("2", "3")},
	}
}

// CreateTestWorkflow creates a test Workflow with default values that can be overridden.
func CreateTestWorkflow(overrides ...func(*models.Workflow)) *models.Workflow {
	now := time.Now().UTC()

	workflow := &models.Workflow{
		ID:          uuid.New().String(),
		Name:        "Test Workflow",
		Description: "Translates a greeting",
		Definition:  TranslationDefinition(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	for _, override := range overrides {
		override(workflow)
	}

	return workflow
}

// WithDefinition sets the workflow definition.
func WithDefinition(definition models.Definition) func(*models.Workflow) {
	return func(w *models.Workflow) {
		w.Definition = definition
	}
}

// WithSchedule sets the workflow cron schedule.
func WithSchedule(schedule string) func(*models.Workflow) {
	return func(w *models.Workflow) {
		w.Schedule = schedule
	}
}

// WithName sets the workflow name.
func WithName(name string) func(*models.Workflow) {
	return func(w *models.Workflow) {
		w.Name = name
	}
}
