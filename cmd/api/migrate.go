package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"article-inventory/internal/infra/db"
	"article-inventory/internal/resilience/retry"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the database schema",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Create the articles table if it does not exist",
	Args:  cobra.NoArgs,
	RunE:  migrateStep("up", db.MigrateUp),
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Drop the articles table",
	Args:  cobra.NoArgs,
	RunE:  migrateStep("down", db.MigrateDown),
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd)
}

func migrateStep(name string, step func(context.Context, *db.Pool) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		cfg, logger, err := setup()
		if err != nil {
			return err
		}

		pool, err := db.Open(ctx, cfg.DB(), logger)
		if err != nil {
			return err
		}
		defer func() { _ = pool.Shutdown(context.Background()) }()

		if err := retry.WithBackoff(ctx, retry.StartupConfig(), func() error { return pool.Ping(ctx) }); err != nil {
			return fmt.Errorf("wait for database: %w", err)
		}
		if err := step(ctx, pool); err != nil {
			return fmt.Errorf("migrate %s: %w", name, err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "migrate %s: ok (%s)\n", name, pool.DriverName())
		return nil
	}
}
