package main

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dukex/superagente/pkg/cmd"
	"github.com/dukex/superagente/pkg/generation"
	"github.com/dukex/superagente/pkg/memory"
	"github.com/dukex/superagente/pkg/models"
	"github.com/dukex/superagente/pkg/persistence/file"
	"github.com/dukex/superagente/pkg/testutil"
	"github.com/dukex/superagente/pkg/web"
	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	persistence := file.NewPersistence(t.TempDir())
	generator := generation.NewSimulated()
	memoryService := memory.NewService(persistence.MemoryRepository(), generator, logger)

	executor, err := cmd.NewEngine(logger, generator, memoryService, cmd.EngineConfig{})
	require.NoError(t, err)

	return NewAPI(logger, persistence, generator, memoryService, executor, nil).App()
}

func send(t *testing.T, app *fiber.App, req *http.Request) (*http.Response, []byte) {
	t.Helper()

	resp, err := app.Test(req)
	require.NoError(t, err)

	defer func() {
		err := resp.Body.Close()
		if err != nil {
			t.Logf("Failed to close response body: %v", err)
		}
	}()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp, body
}

func TestAPI_RootEndpoint(t *testing.T) {
	app := setupTestApp(t)

	resp, body := send(t, app, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(body, &payload))
	assert.Equal(t, "Super Agente API", payload["message"])
	assert.Equal(t, "online", payload["status"])
}

func TestAPI_HealthCheck(t *testing.T) {
	app := setupTestApp(t)

	resp, body := send(t, app, httptest.NewRequest(http.MethodGet, "/livez", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK", string(body))

	resp, _ = send(t, app, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAPI_CreateAndExecuteWorkflow(t *testing.T) {
	app := setupTestApp(t)

	payload, err := json.Marshal(web.WorkflowRequest{Name: "Tradutor", Definition: testutil.TranslationDefinition()})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/workflows", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, body := send(t, app, req)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created models.Workflow
	require.NoError(t, json.Unmarshal(body, &created))

	resp, body = send(t, app, httptest.NewRequest(http.MethodPost, "/api/workflows/"+created.ID+"/execute", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var report models.ExecutionReport
	require.NoError(t, json.Unmarshal(body, &report))
	assert.Equal(t, "Hello, world!", report.Results["3"].Value)

	// the generation was recorded and is now searchable
	resp, body = send(t, app, httptest.NewRequest(http.MethodGet, "/api/memory/search?query=Traduza", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var matches []models.MemoryMatch
	require.NoError(t, json.Unmarshal(body, &matches))
	require.Len(t, matches, 1)
	assert.Contains(t, matches[0].Content, "Resposta: Hello, world!")
}

func TestNewCommand_Flags(t *testing.T) {
	command := newCommand()

	names := make([]string, 0, len(command.Flags))
	for _, flag := range command.Flags {
		names = append(names, flag.Names()[0])
	}

	assert.Subset(t, names, []string{
		"port", "database-url", "event-bus", "gemini-api-key", "memory-url",
		"node-timeout", "fan-in-policy", "enable-scheduler", "log-level", "log-format",
	})
}
