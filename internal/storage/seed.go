package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/centavo-app/centavo/internal/model"
)

type defaultCategory struct {
	name string
	typ  model.CategoryType
	icon string
}

// The canonical system category list. Seeded with a nil owner so every
// user sees them.
var defaultCategories = []defaultCategory{
	{"Salary", model.CategoryTypeIncome, "💰"},
	{"Freelance", model.CategoryTypeIncome, "💼"},
	{"Investment", model.CategoryTypeIncome, "📈"},
	{"Gifts", model.CategoryTypeIncome, "🎁"},
	{"Refunds", model.CategoryTypeIncome, "🔙"},
	{"Rent/Mortgage", model.CategoryTypeExpense, "🏠"},
	{"Groceries", model.CategoryTypeExpense, "🛒"},
	{"Transport", model.CategoryTypeExpense, "🚗"},
	{"Utilities", model.CategoryTypeExpense, "💡"},
	{"Entertainment", model.CategoryTypeExpense, "🎬"},
	{"Dining Out", model.CategoryTypeExpense, "🍔"},
	{"Health", model.CategoryTypeExpense, "❤️"},
	{"Insurance", model.CategoryTypeExpense, "🛡️"},
	{"Shopping", model.CategoryTypeExpense, "🛍️"},
	{"Education", model.CategoryTypeExpense, "🎓"},
	{"Kids", model.CategoryTypeExpense, "👶"},
	{"Pets", model.CategoryTypeExpense, "🐾"},
	{"Travel", model.CategoryTypeExpense, "✈️"},
	{"Savings", model.CategoryTypeExpense, "🏦"},
	{"Donations", model.CategoryTypeExpense, "🤝"},
	{"Other", model.CategoryTypeExpense, "❓"},
}

// Subcategories seeded under the default "Shopping" category.
var defaultShoppingSubcategories = []string{
	"Electronics",
	"Clothing",
	"Beauty & Self-care",
	"Home & Decor",
	"Tools & DIY",
	"Gifts",
}

// SeedDefaults inserts the system default categories and the "Shopping"
// subcategory set. It uses insert-if-absent semantics, so repeated runs
// never duplicate or error; the partial unique indexes on default names
// back the OR IGNORE.
func (s *SQLiteStorage) SeedDefaults(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO categories (name, type, icon, owner_id)
		VALUES (?, ?, ?, NULL)`)
	if err != nil {
		return fmt.Errorf("failed to prepare category seed: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, cat := range defaultCategories {
		if _, err := stmt.ExecContext(ctx, cat.name, string(cat.typ), cat.icon); err != nil {
			return fmt.Errorf("failed to seed category %q: %w", cat.name, err)
		}
	}

	var shoppingID int64
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM categories WHERE name = ? AND owner_id IS NULL`,
		"Shopping").Scan(&shoppingID)
	if err != nil && err != sql.ErrNoRows {
		return fmt.Errorf("failed to look up Shopping category: %w", err)
	}

	if err == nil {
		subStmt, prepErr := tx.PrepareContext(ctx, `
			INSERT OR IGNORE INTO subcategories (name, category_id, owner_id)
			VALUES (?, ?, NULL)`)
		if prepErr != nil {
			return fmt.Errorf("failed to prepare subcategory seed: %w", prepErr)
		}
		defer func() { _ = subStmt.Close() }()

		for _, name := range defaultShoppingSubcategories {
			if _, err := subStmt.ExecContext(ctx, name, shoppingID); err != nil {
				return fmt.Errorf("failed to seed subcategory %q: %w", name, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed: %w", err)
	}

	slog.Info("seeded default categories",
		"categories", len(defaultCategories),
		"shopping_subcategories", len(defaultShoppingSubcategories))
	return nil
}
