package main

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/dukex/superagente/pkg/eventbus"
	"github.com/dukex/superagente/pkg/generation"
	"github.com/dukex/superagente/pkg/memory"
	"github.com/dukex/superagente/pkg/persistence"
	"github.com/dukex/superagente/pkg/services"
	"github.com/dukex/superagente/pkg/web"
	"github.com/dukex/superagente/pkg/workflow"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/gofiber/fiber/v3/middleware/logger"
)

type API struct {
	logger     *slog.Logger
	workflows  *services.Workflow
	executions *services.Execution
	handlers   *web.APIHandlers
}

// NewAPI wires the services behind the HTTP handlers. eventBus may be nil.
func NewAPI(
	logger *slog.Logger,
	persistence persistence.Persistence,
	generator generation.Capability,
	memoryService *memory.Service,
	executor *workflow.Executor,
	eventBus eventbus.EventBus,
) *API {
	var publisher eventbus.EventPublisher
	if eventBus != nil {
		publisher = eventBus
	}

	workflowService := services.NewWorkflow(persistence, logger)
	executionService := services.NewExecution(workflowService, persistence, executor, publisher, logger)

	return &API{
		logger:     logger,
		workflows:  workflowService,
		executions: executionService,
		handlers: web.NewAPIHandlers(
			workflowService,
			executionService,
			memoryService,
			generator,
			validator.New(validator.WithRequiredStructEnabled()),
		),
	}
}

func (a *API) Workflows() *services.Workflow {
	return a.workflows
}

func (a *API) Executions() *services.Execution {
	return a.executions
}

func (a *API) App() *fiber.App {
	app := fiber.New()

	app.Use(cors.New())
	app.Use(logger.New(logger.Config{
		DisableColors: true,
	}))

	app.Get(healthcheck.DefaultLivenessEndpoint, healthcheck.NewHealthChecker())
	app.Get(healthcheck.DefaultReadinessEndpoint, healthcheck.NewHealthChecker())

	app.Get("/", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message":   "Super Agente API",
			"status":    "online",
			"timestamp": time.Now().UTC(),
		})
	})

	a.handlers.Register(app)

	return app
}

func (a *API) Start(port int) error {
	a.logger.Info("Starting Super Agente API", "port", port)

	return a.App().Listen(":" + strconv.Itoa(port))
}
