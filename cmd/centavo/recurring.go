package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/centavo-app/centavo/internal/cli"
	"github.com/centavo-app/centavo/internal/model"
)

func recurringCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recurring",
		Short: "Manage recurring transaction rules",
		Long: `Recurring rules are templates an external scheduler turns into
transactions. Removing a rule keeps the transactions it generated.`,
	}

	cmd.AddCommand(addRecurringCmd())
	cmd.AddCommand(listRecurringCmd())
	cmd.AddCommand(removeRecurringCmd())

	return cmd
}

func addRecurringCmd() *cobra.Command {
	var (
		username     string
		categoryType string
		category     string
		amount       float64
		frequency    string
		firstDate    string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a recurring rule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			t, err := parseCategoryType(categoryType)
			if err != nil {
				return err
			}
			if category == "" {
				return fmt.Errorf("--category is required")
			}

			next, err := time.Parse("2006-01-02", firstDate)
			if err != nil {
				return fmt.Errorf("invalid --first %q (want YYYY-MM-DD): %w", firstDate, err)
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			user, err := resolveUser(ctx, store, username)
			if err != nil {
				return err
			}

			categoryID, err := store.ResolveCategoryID(ctx, user.ID, t, category)
			if err != nil {
				return fmt.Errorf("category %q: %w", category, err)
			}

			rule := &model.RecurringRule{
				Name:       args[0],
				Amount:     amount,
				Frequency:  model.Frequency(frequency),
				NextDate:   next,
				CategoryID: categoryID,
				OwnerID:    user.ID,
			}

			id, err := store.CreateRecurringRule(ctx, rule)
			if err != nil {
				return err
			}

			fmt.Println(cli.Success(fmt.Sprintf("Created recurring rule %s (id %d)", rule.Name, id)))
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "user", "", "account username")
	cmd.Flags().StringVar(&categoryType, "type", "expense", "category type (income, expense)")
	cmd.Flags().StringVar(&category, "category", "", "category name")
	cmd.Flags().Float64Var(&amount, "amount", 0, "amount per occurrence")
	cmd.Flags().StringVar(&frequency, "frequency", "monthly", "daily, weekly, monthly, or yearly")
	cmd.Flags().StringVar(&firstDate, "first", "", "first occurrence date, YYYY-MM-DD")
	return cmd
}

func listRecurringCmd() *cobra.Command {
	var username string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a user's recurring rules",
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

			rules, err := store.ListRecurringRules(ctx, user.ID)
			if err != nil {
				return fmt.Errorf("failed to list recurring rules: %w", err)
			}

			if len(rules) == 0 {
				fmt.Println(cli.InfoStyle.Render("No recurring rules."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				cli.HeaderStyle.Render("ID"),
				cli.HeaderStyle.Render("Name"),
				cli.HeaderStyle.Render("Amount"),
				cli.HeaderStyle.Render("Frequency"),
				cli.HeaderStyle.Render("Next"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				strings.Repeat("-", 4),
				strings.Repeat("-", 20),
				strings.Repeat("-", 8),
				strings.Repeat("-", 9),
				strings.Repeat("-", 10))

			for _, rule := range rules {
				fmt.Fprintf(w, "%d\t%s\t%.2f\t%s\t%s\n",
					rule.ID, rule.Name, rule.Amount, rule.Frequency,
					rule.NextDate.Format("2006-01-02"))
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&username, "user", "", "account username")
	return cmd
}

func removeRecurringCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a recurring rule, keeping its past transactions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid rule id %q", args[0])
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.DeleteRecurringRule(ctx, id); err != nil {
				return err
			}

			fmt.Println(cli.Success(fmt.Sprintf("Removed recurring rule %d", id)))
			return nil
		},
	}
}
