package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/centavo-app/centavo/internal/model"
)

// RecordTransaction appends one entry to the ledger. It is the single
// write path for transactions; there is no update or delete, so a
// correction is a new compensating entry.
//
// The amount is validated before any storage work, a supplied subcategory
// must belong to the entry's category, and the insert runs inside one SQL
// transaction so any failure leaves no partial row.
func (s *SQLiteStorage) RecordTransaction(ctx context.Context, entry model.NewTransaction) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateEntry(entry); err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, storageErr("record transaction", err)
	}
	defer func() { _ = tx.Rollback() }()

	if entry.SubcategoryID != nil {
		var parentID int64
		err := tx.QueryRowContext(ctx, `
			SELECT category_id FROM subcategories
			WHERE id = ? AND (owner_id = ? OR owner_id IS NULL)`,
			*entry.SubcategoryID, entry.OwnerID).Scan(&parentID)
		if err == sql.ErrNoRows {
			return 0, fmt.Errorf("%w: subcategory %d", ErrNotFound, *entry.SubcategoryID)
		}
		if err != nil {
			return 0, storageErr("record transaction", err)
		}
		if parentID != entry.CategoryID {
			return 0, ErrSubcategoryMismatch
		}
	}

	result, err := tx.ExecContext(ctx, `
		INSERT INTO transactions (amount, date, note, payment_method, owner_id, category_id, subcategory_id, recurring_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.Amount,
		entry.Date,
		nullIfEmpty(entry.Note),
		nullIfEmpty(entry.PaymentMethod),
		entry.OwnerID,
		entry.CategoryID,
		entry.SubcategoryID,
		entry.RecurringID,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, fmt.Errorf("%w: transaction references missing row", ErrNotFound)
		}
		return 0, storageErr("record transaction", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, storageErr("record transaction", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, storageErr("record transaction", err)
	}

	slog.Info("recorded transaction",
		"id", id, "user", entry.OwnerID, "category", entry.CategoryID, "amount", entry.Amount)
	return id, nil
}

// CountTransactions returns the number of ledger entries a user owns.
func (s *SQLiteStorage) CountTransactions(ctx context.Context, userID int64) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateUserID(userID); err != nil {
		return 0, err
	}

	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM transactions WHERE owner_id = ?`, userID).Scan(&count)
	if err != nil {
		return 0, storageErr("count transactions", err)
	}
	return count, nil
}

// nullIfEmpty maps an empty string to SQL NULL so optional text columns
// stay NULL rather than "".
func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
