package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/centavo-app/centavo/internal/cli"
)

func setupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Provision the database schema and default categories",
		Long: `Create or migrate the database schema and seed the system default
category catalog. Safe to run repeatedly: both steps are idempotent.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.SeedDefaults(ctx); err != nil {
				return fmt.Errorf("failed to seed defaults: %w", err)
			}

			fmt.Println(cli.Success("Database ready"))
			return nil
		},
	}
}
