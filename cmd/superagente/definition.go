package main

import (
	"fmt"
	"os"

	"github.com/dukex/superagente/pkg/models"
	"gopkg.in/yaml.v3"
)

// definitionFile accepts either a bare definition or a workflow document
// with the graph under "definition". JSON files parse as YAML.
type definitionFile struct {
	Name       string             `yaml:"name"`
	Definition *models.Definition `yaml:"definition"`
	Nodes      []models.Node      `yaml:"nodes"`
	Edges      []models.Edge      `yaml:"edges"`
}

func loadDefinition(path string) (models.Definition, error) {
	data, err := os.ReadFile(path) // #nosec G304 path comes from the operator
	if err != nil {
		return models.Definition{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var doc definitionFile

	err = yaml.Unmarshal(data, &doc)
	if err != nil {
		return models.Definition{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if doc.Definition != nil {
		return *doc.Definition, nil
	}

	return models.Definition{Nodes: doc.Nodes, Edges: doc.Edges}, nil
}
