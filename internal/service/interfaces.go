// Package service defines the interfaces the application is built against.
package service

import (
	"context"
	"time"

	"github.com/centavo-app/centavo/internal/model"
)

// Storage is the contract for the persistence layer. All write operations
// are self-contained transactions: no caller ever observes a partial
// write, and any failure leaves the store unchanged.
type Storage interface {
	// Identity operations
	CreateUser(ctx context.Context, username, password string) (int64, error)
	VerifyUser(ctx context.Context, username, password string) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	DeleteUser(ctx context.Context, id int64) error

	// Category catalog operations
	ListVisibleCategories(ctx context.Context, userID int64, categoryType model.CategoryType) ([]model.Category, error)
	ResolveCategoryID(ctx context.Context, userID int64, categoryType model.CategoryType, name string) (int64, error)
	CreateCategory(ctx context.Context, userID int64, name string, categoryType model.CategoryType, icon string) (*model.Category, error)
	DeleteCategory(ctx context.Context, id int64) error
	CreateSubcategory(ctx context.Context, userID, categoryID int64, name string) (*model.Subcategory, error)
	ListSubcategories(ctx context.Context, userID, categoryID int64) ([]model.Subcategory, error)
	ResolveSubcategoryID(ctx context.Context, userID, categoryID int64, name string) (int64, error)

	// Recurring rule operations
	CreateRecurringRule(ctx context.Context, rule *model.RecurringRule) (int64, error)
	ListRecurringRules(ctx context.Context, userID int64) ([]model.RecurringRule, error)
	DeleteRecurringRule(ctx context.Context, id int64) error
	AdvanceRecurringRule(ctx context.Context, id int64, next time.Time) error

	// Ledger operations
	RecordTransaction(ctx context.Context, entry model.NewTransaction) (int64, error)
	CountTransactions(ctx context.Context, userID int64) (int, error)

	// Export projection
	ProjectLedger(ctx context.Context, userID int64) ([]model.LedgerRow, error)

	// Database management
	Migrate(ctx context.Context) error
	SeedDefaults(ctx context.Context) error
	Close() error
}

// LedgerWriter serializes a projected ledger to some external sink. The
// core guarantees column identity and row order; the sink's encoding is
// the writer's business.
type LedgerWriter interface {
	Write(ctx context.Context, rows []model.LedgerRow) error
}
