// Package web provides HTTP request and response types for the workflow API.
package web

import (
	"time"

	"github.com/dukex/superagente/pkg/models"
)

// WorkflowRequest is the body of workflow create and update requests.
type WorkflowRequest struct {
	Name        string            `json:"name"                  validate:"required,min=1"`
	Description string            `json:"description,omitempty"`
	Definition  models.Definition `json:"definition"`
	Schedule    string            `json:"schedule,omitempty"`
	UserID      string            `json:"user_id,omitempty"`
}

// ToWorkflow converts the request into a workflow model.
func (r WorkflowRequest) ToWorkflow() *models.Workflow {
	return &models.Workflow{
		Name:        r.Name,
		Description: r.Description,
		Definition:  r.Definition,
		Schedule:    r.Schedule,
		Owner:       r.UserID,
	}
}

// StoreMemoryRequest is the body of POST /api/memory.
type StoreMemoryRequest struct {
	Content  string         `json:"content"            validate:"required"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// GenerateRequest is the body of the generation endpoints.
type GenerateRequest struct {
	Prompt string `json:"prompt"          validate:"required"`
	Input  string `json:"input,omitempty"`
}

// FullPrompt appends the optional input text to the prompt.
func (r GenerateRequest) FullPrompt() string {
	if r.Input == "" {
		return r.Prompt
	}

	return r.Prompt + "\n\nTexto de entrada: " + r.Input
}

type GenerateResponse struct {
	Prompt    string    `json:"prompt"`
	Response  string    `json:"response"`
	Input     string    `json:"input,omitempty"`
	Provider  string    `json:"provider"`
	Timestamp time.Time `json:"timestamp"`
}

type TestGenerationResponse struct {
	Prompt   string `json:"prompt"`
	Response string `json:"response"`
}
