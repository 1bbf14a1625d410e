package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/dukex/superagente/pkg/cmd"
	"github.com/dukex/superagente/pkg/generation"
	"github.com/dukex/superagente/pkg/graph"
	"github.com/dukex/superagente/pkg/log"
	"github.com/dukex/superagente/pkg/memory"
	"github.com/dukex/superagente/pkg/models"
	"github.com/dukex/superagente/pkg/nodes"
	"github.com/dukex/superagente/pkg/persistence"
	"github.com/urfave/cli/v3"
)

func fileFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "file",
		Aliases:  []string{"f"},
		Usage:    "Workflow definition file (YAML or JSON)",
		Required: true,
	}
}

func runCommand() *cli.Command {
	return &cli.Command{
		Name:    "run",
		Aliases: []string{"r"},
		Usage:   "Execute a workflow definition once and print the report",
		Flags: []cli.Flag{
			fileFlag(),
			&cli.StringFlag{
				Name:    "gemini-api-key",
				Usage:   "Gemini API key; simulated generation is used when empty",
				Sources: cli.EnvVars("GEMINI_API_KEY"),
			},
			&cli.StringFlag{
				Name:    "gemini-model",
				Usage:   "Gemini model name",
				Sources: cli.EnvVars("GEMINI_MODEL"),
			},
			&cli.StringFlag{
				Name:    "database-url",
				Usage:   "Persistence used as memory; empty runs without memory",
				Sources: cli.EnvVars("DATABASE_URL"),
			},
			&cli.StringFlag{
				Name:    "memory-url",
				Usage:   "Memory store URL (redis://...); without it memories go to --database-url",
				Sources: cli.EnvVars("MEMORY_URL"),
			},
			&cli.DurationFlag{
				Name:    "node-timeout",
				Usage:   "Maximum time a single node may run (0 disables)",
				Sources: cli.EnvVars("NODE_TIMEOUT"),
			},
			&cli.StringFlag{
				Name:    "fan-in-policy",
				Usage:   "How nodes with several incoming edges read input (first, concatenate, reject)",
				Value:   "first",
				Sources: cli.EnvVars("FAN_IN_POLICY"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "warn",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
		},
		Action: runDefinition,
	}
}

func runDefinition(ctx context.Context, command *cli.Command) error {
	log.Setup(command.String("log-level"))

	logger := log.WithModule("cli")

	def, err := loadDefinition(command.String("file"))
	if err != nil {
		return err
	}

	generator, err := cmd.NewGeneration(ctx, logger, generation.GeminiConfig{
		APIKey: command.String("gemini-api-key"),
		Model:  command.String("gemini-model"),
	})
	if err != nil {
		return err
	}

	var contextProvider nodes.ContextProvider

	databaseURL := command.String("database-url")
	memoryURL := command.String("memory-url")

	if databaseURL != "" || memoryURL != "" {
		var p persistence.Persistence

		if databaseURL != "" {
			p, err = cmd.NewPersistence(ctx, logger, databaseURL)
			if err != nil {
				return err
			}

			defer func() { _ = p.Close(ctx) }()
		}

		store, err := cmd.NewMemoryStore(ctx, logger, memoryURL, p)
		if err != nil {
			return err
		}

		if closer, ok := store.(io.Closer); ok {
			defer func() { _ = closer.Close() }()
		}

		contextProvider = memory.NewService(store, generator, logger)
	}

	executor, err := cmd.NewEngine(logger, generator, contextProvider, cmd.EngineConfig{
		NodeTimeout: command.Duration("node-timeout"),
		FanInPolicy: command.String("fan-in-policy"),
	})
	if err != nil {
		return err
	}

	report := executor.Execute(ctx, def)

	err = printJSON(command, report)
	if err != nil {
		return err
	}

	if !report.Succeeded() {
		return cli.Exit("workflow could not be scheduled: "+report.Error, 2)
	}

	return nil
}

func validateCommand() *cli.Command {
	return &cli.Command{
		Name:  "validate",
		Usage: "Check a workflow definition without running it",
		Flags: []cli.Flag{fileFlag()},
		Action: func(_ context.Context, command *cli.Command) error {
			def, err := loadDefinition(command.String("file"))
			if err != nil {
				return err
			}

			err = models.ValidateDefinition(def)
			if err != nil {
				return err
			}

			ids, err := graph.OrderIDs(def.Nodes, def.Edges)
			if err != nil {
				return err
			}

			return printJSON(command, map[string]any{"valid": true, "order": ids})
		},
	}
}

func printJSON(command *cli.Command, value any) error {
	encoder := json.NewEncoder(command.Root().Writer)
	encoder.SetIndent("", "  ")

	err := encoder.Encode(value)
	if err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	return nil
}
