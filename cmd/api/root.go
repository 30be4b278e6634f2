package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"article-inventory/internal/config"
	"article-inventory/internal/observability/logging"
)

// Version is set at build time via -ldflags "-X main.Version=1.0.0".
var Version = "dev"

const serviceName = "article-inventory"

var envFiles []string

var rootCmd = &cobra.Command{
	Use:           serviceName,
	Short:         "Article inventory API",
	Long:          "Serves the article inventory REST API. Runs the server when no subcommand is given.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

func init() {
	rootCmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil,
		"dotenv file(s) to load before reading the environment (default .env)")
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

// setup loads and validates the configuration and installs the process logger.
func setup() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(envFiles...)
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat).
		With(slog.String("service", serviceName), slog.String("version", Version))
	slog.SetDefault(logger)
	return cfg, logger, nil
}
