package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/centavo-app/centavo/internal/cli"
)

func registerCmd() *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "register <username>",
		Short: "Create a new user account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			username := args[0]

			if password == "" {
				return fmt.Errorf("--password is required")
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			id, err := store.CreateUser(ctx, username, password)
			if err != nil {
				return err
			}

			fmt.Println(cli.Success(fmt.Sprintf("Registered %s (id %d)", username, id)))
			return nil
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "password for the new account")
	return cmd
}

func loginCmd() *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "login <username>",
		Short: "Verify account credentials",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			user, err := store.VerifyUser(ctx, args[0], password)
			if err != nil {
				return err
			}

			fmt.Println(cli.Success(fmt.Sprintf("Welcome back, %s (member since %s)",
				user.Username, user.CreatedAt.Format("2006-01-02"))))
			return nil
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "password to verify")
	return cmd
}

func usersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage user accounts",
	}

	cmd.AddCommand(deleteUserCmd())
	return cmd
}

func deleteUserCmd() *cobra.Command {
	var confirmed bool

	cmd := &cobra.Command{
		Use:   "delete <username>",
		Short: "Delete an account and everything it owns",
		Long: `Delete a user account. All of the user's categories, subcategories,
recurring rules, and transactions are removed with it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if !confirmed {
				return fmt.Errorf("refusing to delete without --yes")
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			user, err := resolveUser(ctx, store, args[0])
			if err != nil {
				return err
			}

			if err := store.DeleteUser(ctx, user.ID); err != nil {
				return err
			}

			fmt.Println(cli.Success(fmt.Sprintf("Deleted %s and all owned data", user.Username)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&confirmed, "yes", false, "confirm the deletion")
	return cmd
}
