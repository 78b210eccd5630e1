package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/centavo-app/centavo/internal/cli"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage the category catalog",
		Long:  `List and create the income/expense categories visible to a user.`,
	}

	cmd.AddCommand(listCategoriesCmd())
	cmd.AddCommand(addCategoryCmd())
	cmd.AddCommand(subcategoriesCmd())

	return cmd
}

func listCategoriesCmd() *cobra.Command {
	var (
		username     string
		categoryType string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List categories visible to a user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			t, err := parseCategoryType(categoryType)
			if err != nil {
				return err
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

			categories, err := store.ListVisibleCategories(ctx, user.ID, t)
			if err != nil {
				return fmt.Errorf("failed to list categories: %w", err)
			}

			if len(categories) == 0 {
				fmt.Println(cli.InfoStyle.Render("No categories found. Run 'centavo setup' to seed the defaults."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				cli.HeaderStyle.Render("ID"),
				cli.HeaderStyle.Render("Name"),
				cli.HeaderStyle.Render("Icon"),
				cli.HeaderStyle.Render("Scope"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				strings.Repeat("-", 4),
				strings.Repeat("-", 20),
				strings.Repeat("-", 4),
				strings.Repeat("-", 8))

			for _, cat := range categories {
				scope := "default"
				if !cat.IsDefault() {
					scope = "yours"
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", cat.ID, cat.Name, cat.Icon, cli.SubtleStyle.Render(scope))
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&username, "user", "", "account username")
	cmd.Flags().StringVar(&categoryType, "type", "expense", "category type (income, expense)")
	return cmd
}

func addCategoryCmd() *cobra.Command {
	var (
		username     string
		categoryType string
		icon         string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a category owned by a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			t, err := parseCategoryType(categoryType)
			if err != nil {
				return err
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

			cat, err := store.CreateCategory(ctx, user.ID, args[0], t, icon)
			if err != nil {
				return err
			}

			fmt.Println(cli.Success(fmt.Sprintf("Created category %s (id %d)", cat.Name, cat.ID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "user", "", "account username")
	cmd.Flags().StringVar(&categoryType, "type", "expense", "category type (income, expense)")
	cmd.Flags().StringVar(&icon, "icon", "", "optional glyph shown next to the name")
	return cmd
}

func subcategoriesCmd() *cobra.Command {
	var (
		username     string
		categoryType string
		category     string
		add          string
	)

	cmd := &cobra.Command{
		Use:   "subcategories",
		Short: "List or add subcategories under a category",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			t, err := parseCategoryType(categoryType)
			if err != nil {
				return err
			}
			if category == "" {
				return fmt.Errorf("--category is required")
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

			if add != "" {
				sub, err := store.CreateSubcategory(ctx, user.ID, categoryID, add)
				if err != nil {
					return err
				}
				fmt.Println(cli.Success(fmt.Sprintf("Created subcategory %s (id %d)", sub.Name, sub.ID)))
				return nil
			}

			subs, err := store.ListSubcategories(ctx, user.ID, categoryID)
			if err != nil {
				return fmt.Errorf("failed to list subcategories: %w", err)
			}

			if len(subs) == 0 {
				fmt.Println(cli.InfoStyle.Render(fmt.Sprintf("No subcategories under %s.", category)))
				return nil
			}

			fmt.Println(cli.TitleStyle.Render(category))
			for _, sub := range subs {
				fmt.Printf("  %d\t%s\n", sub.ID, sub.Name)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&username, "user", "", "account username")
	cmd.Flags().StringVar(&categoryType, "type", "expense", "category type (income, expense)")
	cmd.Flags().StringVar(&category, "category", "", "parent category name")
	cmd.Flags().StringVar(&add, "add", "", "create a subcategory with this name instead of listing")
	return cmd
}
