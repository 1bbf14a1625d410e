package main

import (
	"context"
	"fmt"

	"github.com/dukex/superagente/pkg/cmd"
	"github.com/dukex/superagente/pkg/generation"
	"github.com/dukex/superagente/pkg/log"
	"github.com/dukex/superagente/pkg/memory"
	"github.com/dukex/superagente/pkg/otelhelper"
	"github.com/dukex/superagente/pkg/scheduler"
	cli "github.com/urfave/cli/v3"
)

func run(ctx context.Context, command *cli.Command) error {
	log.Setup(command.String("log-level"), command.String("log-format"))

	logger := log.WithModule("api")
	logger.InfoContext(ctx, "Initializing Super Agente API")

	engineConfig := cmd.EngineConfig{
		NodeTimeout: command.Duration("node-timeout"),
		FanInPolicy: command.String("fan-in-policy"),
	}

	if command.Bool("tracing") {
		tracer, err := otelhelper.NewTracer(ctx, "superagente-api")
		if err != nil {
			return fmt.Errorf("failed to initialize tracer: %w", err)
		}

		engineConfig.Tracer = tracer
	}

	persistence, err := cmd.NewPersistence(ctx, logger, command.String("database-url"))
	if err != nil {
		return err
	}

	defer func() {
		err := persistence.Close(ctx)
		if err != nil {
			logger.ErrorContext(ctx, "Failed to close persistence", "error", err)
		}
	}()

	eventBus, err := cmd.NewEventBus(command.String("event-bus"), command.String("kafka-brokers"), "superagente-api", logger)
	if err != nil {
		return err
	}

	if eventBus != nil {
		defer func() {
			err := eventBus.Close()
			if err != nil {
				logger.ErrorContext(ctx, "Failed to close event bus", "error", err)
			}
		}()
	}

	generator, err := cmd.NewGeneration(ctx, logger, generation.GeminiConfig{
		APIKey: command.String("gemini-api-key"),
		Model:  command.String("gemini-model"),
	})
	if err != nil {
		return err
	}

	memoryStore, err := cmd.NewMemoryStore(ctx, logger, command.String("memory-url"), persistence)
	if err != nil {
		return err
	}

	memoryService := memory.NewService(memoryStore, generator, logger)

	executor, err := cmd.NewEngine(logger, generator, memoryService, engineConfig)
	if err != nil {
		return err
	}

	api := NewAPI(logger, persistence, generator, memoryService, executor, eventBus)

	if command.Bool("enable-scheduler") {
		workflowScheduler := scheduler.New(api.Workflows(), api.Executions(), logger)

		err = workflowScheduler.Start(ctx)
		if err != nil {
			return fmt.Errorf("failed to start scheduler: %w", err)
		}

		defer func() {
			err := workflowScheduler.Stop(ctx)
			if err != nil {
				logger.ErrorContext(ctx, "Failed to stop scheduler", "error", err)
			}
		}()
	}

	return api.Start(command.Int("port"))
}
