// Package main provides the Super Agente API server.
package main

import (
	"context"
	"os"

	"github.com/dukex/superagente/pkg/log"
	cli "github.com/urfave/cli/v3"
)

const defaultPort = 3001

func main() {
	logger := log.WithModule("api")

	err := newCommand().Run(context.Background(), os.Args)
	if err != nil {
		logger.Error("Super Agente API stopped", "error", err)
		os.Exit(1)
	}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:                  "superagente-api",
		Usage:                 "Serve the workflow, memory and generation API",
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to run the API server on",
				Value:   defaultPort,
				Sources: cli.EnvVars("PORT"),
			},
			&cli.StringFlag{
				Name:    "database-url",
				Usage:   "Persistence URL (postgres://... or a directory for JSON files)",
				Value:   "file://./data",
				Sources: cli.EnvVars("DATABASE_URL"),
			},
			&cli.StringFlag{
				Name:    "event-bus",
				Usage:   "Event bus type (gochannel, kafka); empty disables events",
				Sources: cli.EnvVars("EVENT_BUS_TYPE"),
			},
			&cli.StringFlag{
				Name:    "kafka-brokers",
				Usage:   "Comma separated Kafka brokers",
				Value:   "localhost:9092",
				Sources: cli.EnvVars("KAFKA_BROKERS"),
			},
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
				Name:    "memory-url",
				Usage:   "Memory store URL (redis://...); defaults to the persistence backend",
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
			&cli.BoolFlag{
				Name:    "enable-scheduler",
				Usage:   "Run workflows that carry a cron schedule",
				Sources: cli.EnvVars("ENABLE_SCHEDULER"),
			},
			&cli.BoolFlag{
				Name:    "tracing",
				Usage:   "Export OpenTelemetry traces over OTLP/HTTP",
				Sources: cli.EnvVars("OTEL_ENABLED"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "info",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
			&cli.StringFlag{
				Name:    "log-format",
				Usage:   "Log format (text, json)",
				Value:   "text",
				Sources: cli.EnvVars("LOG_FORMAT"),
			},
		},
		Action: run,
	}
}
