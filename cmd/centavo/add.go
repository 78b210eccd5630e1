package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/centavo-app/centavo/internal/cli"
	"github.com/centavo-app/centavo/internal/model"
)

func addCmd() *cobra.Command {
	var (
		username      string
		categoryType  string
		category      string
		subcategory   string
		amount        float64
		date          string
		note          string
		paymentMethod string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a transaction",
		Long: `Append one transaction to the ledger. The category is resolved by name
against the categories visible to the user; an optional subcategory must
belong to that category.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			t, err := parseCategoryType(categoryType)
			if err != nil {
				return err
			}
			if category == "" {
				return fmt.Errorf("--category is required")
			}

			when := time.Now()
			if date != "" {
				when, err = time.Parse("2006-01-02", date)
				if err != nil {
					return fmt.Errorf("invalid --date %q (want YYYY-MM-DD): %w", date, err)
				}
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

			entry := model.NewTransaction{
				OwnerID:       user.ID,
				CategoryID:    categoryID,
				Amount:        amount,
				Date:          when,
				Note:          note,
				PaymentMethod: paymentMethod,
			}

			if subcategory != "" {
				subID, err := store.ResolveSubcategoryID(ctx, user.ID, categoryID, subcategory)
				if err != nil {
					return fmt.Errorf("subcategory %q: %w", subcategory, err)
				}
				entry.SubcategoryID = &subID
			}

			id, err := store.RecordTransaction(ctx, entry)
			if err != nil {
				return err
			}

			fmt.Println(cli.Success(fmt.Sprintf("Recorded transaction %d: %s %.2f", id, category, amount)))
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "user", "", "account username")
	cmd.Flags().StringVar(&categoryType, "type", "expense", "category type (income, expense)")
	cmd.Flags().StringVar(&category, "category", "", "category name")
	cmd.Flags().StringVar(&subcategory, "subcategory", "", "optional subcategory name")
	cmd.Flags().Float64Var(&amount, "amount", 0, "transaction amount (must be positive)")
	cmd.Flags().StringVar(&date, "date", "", "transaction date, YYYY-MM-DD (default: today)")
	cmd.Flags().StringVar(&note, "note", "", "optional note")
	cmd.Flags().StringVar(&paymentMethod, "method", "", "optional payment method")
	return cmd
}
