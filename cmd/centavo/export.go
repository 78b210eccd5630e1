package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/centavo-app/centavo/internal/cli"
	"github.com/centavo-app/centavo/internal/export"
)

func exportCmd() *cobra.Command {
	var (
		username string
		output   string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a user's full ledger as CSV",
		Long: `Project the user's transaction history (most recent first, joined with
category and subcategory names) and write it as CSV to a file or stdout.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			user, err := resolveUser(ctx, store, username)
			if err != nil {
				return err
			}

			rows, err := store.ProjectLedger(ctx, user.ID)
			if err != nil {
				return fmt.Errorf("failed to project ledger: %w", err)
			}

			out := os.Stdout
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", output, err)
				}
				defer func() { _ = f.Close() }()
				out = f
			}

			if err := export.NewCSVWriter(out).Write(ctx, rows); err != nil {
				return fmt.Errorf("failed to write export: %w", err)
			}

			if output != "" {
				fmt.Println(cli.Success(fmt.Sprintf("Exported %d rows to %s", len(rows), output)))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "user", "", "account username")
	cmd.Flags().StringVar(&output, "output", "", "output file (default: stdout)")
	return cmd
}
