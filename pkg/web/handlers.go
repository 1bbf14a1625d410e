// Package web provides HTTP handlers and REST API endpoints for workflows, memory and generation.
package web

import (
	"net/http"
	"strconv"
	"time"

	"github.com/dukex/superagente/pkg/events"
	"github.com/dukex/superagente/pkg/generation"
	"github.com/dukex/superagente/pkg/memory"
	"github.com/dukex/superagente/pkg/services"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

type APIHandlers struct {
	workflowService  *services.Workflow
	executionService *services.Execution
	memoryService    *memory.Service
	generator        generation.Capability
	validator        *validator.Validate
}

func NewAPIHandlers(
	workflowService *services.Workflow,
	executionService *services.Execution,
	memoryService *memory.Service,
	generator generation.Capability,
	validator *validator.Validate,
) *APIHandlers {
	return &APIHandlers{
		workflowService:  workflowService,
		executionService: executionService,
		memoryService:    memoryService,
		generator:        generator,
		validator:        validator,
	}
}

// Register mounts every API route under /api.
func (h *APIHandlers) Register(app *fiber.App) {
	api := app.Group("/api")

	w := api.Group("/workflows")
	w.Get("/", h.GetWorkflows)
	w.Post("/", h.CreateWorkflow)
	w.Get("/:id", h.GetWorkflow)
	w.Put("/:id", h.UpdateWorkflow)
	w.Delete("/:id", h.DeleteWorkflow)
	w.Post("/:id/execute", h.ExecuteWorkflow)
	w.Get("/:id/logs", h.GetExecutionLogs)

	api.Post("/memory", h.StoreMemory)
	api.Get("/memory/search", h.SearchMemory)

	api.Post("/gemini/generate", h.Generate)
	api.Post("/gemini/test", h.TestGeneration)

	api.Get("/health", h.HealthCheck)
}

func (h *APIHandlers) GetWorkflows(c fiber.Ctx) error {
	workflows, err := h.workflowService.List(c.Context())
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(workflows)
}

func (h *APIHandlers) GetWorkflow(c fiber.Ctx) error {
	workflow, err := h.workflowService.FetchByID(c.Context(), c.Params("id"))
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(workflow)
}

func (h *APIHandlers) CreateWorkflow(c fiber.Ctx) error {
	var req WorkflowRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	created, err := h.workflowService.Create(c.Context(), req.ToWorkflow())
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *APIHandlers) UpdateWorkflow(c fiber.Ctx) error {
	var req WorkflowRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	updated, err := h.workflowService.Update(c.Context(), c.Params("id"), req.ToWorkflow())
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(updated)
}

func (h *APIHandlers) DeleteWorkflow(c fiber.Ctx) error {
	err := h.workflowService.Delete(c.Context(), c.Params("id"))
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// ExecuteWorkflow runs a stored workflow. A run that could not be scheduled
// answers 422 with the report; node failures stay inside a 200 report.
func (h *APIHandlers) ExecuteWorkflow(c fiber.Ctx) error {
	report, err := h.executionService.Execute(c.Context(), c.Params("id"), events.TriggerAPI)
	if err != nil {
		return handleServiceError(c, err)
	}

	if !report.Succeeded() {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(report)
	}

	return c.JSON(report)
}

func (h *APIHandlers) GetExecutionLogs(c fiber.Ctx) error {
	logs, err := h.executionService.Logs(c.Context(), c.Params("id"))
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(logs)
}

func (h *APIHandlers) StoreMemory(c fiber.Ctx) error {
	var req StoreMemoryRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	stored, err := h.memoryService.StoreMemory(c.Context(), req.Content, req.Metadata)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(stored)
}

func (h *APIHandlers) SearchMemory(c fiber.Ctx) error {
	query := c.Query("query")
	if query == "" {
		return badRequest(c, "query is required")
	}

	limit := memory.DefaultSearchLimit

	if limitStr := c.Query("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 {
			return badRequest(c, "limit must be a positive integer")
		}

		limit = parsed
	}

	matches, err := h.memoryService.Search(c.Context(), query, limit)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(matches)
}

func (h *APIHandlers) Generate(c fiber.Ctx) error {
	var req GenerateRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	prompt := req.FullPrompt()

	response, err := h.generator.Generate(c.Context(), prompt, "")
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(GenerateResponse{
		Prompt:    prompt,
		Response:  response,
		Input:     req.Input,
		Provider:  h.generator.Name(),
		Timestamp: time.Now().UTC(),
	})
}

func (h *APIHandlers) TestGeneration(c fiber.Ctx) error {
	var req GenerateRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	response, err := h.generator.Generate(c.Context(), req.Prompt, "")
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(TestGenerationResponse{Prompt: req.Prompt, Response: response})
}

func (h *APIHandlers) HealthCheck(c fiber.Ctx) error {
	repositoryCheck, repOk := h.workflowService.HealthCheck(c.Context())

	status := "unhealthy"
	message := "Super Agente API is unhealthy"
	httpStatus := http.StatusInternalServerError

	if repOk {
		status = "healthy"
		message = "Super Agente API is healthy"
		httpStatus = http.StatusOK
	}

	return c.Status(httpStatus).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"services": fiber.Map{
			"persistence": repOk,
			"gemini":      h.generator.Name() == generation.GeminiProvider,
			"memory":      h.memoryService != nil,
		},
		"checkers": fiber.Map{
			"repository": repositoryCheck,
			"generation": h.generator.Name(),
		},
		"timestamp": time.Now().UTC(),
	})
}
