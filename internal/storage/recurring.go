package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/centavo-app/centavo/internal/model"
)

// CreateRecurringRule persists a rule template. The rule must reference a
// category visible to its owner.
func (s *SQLiteStorage) CreateRecurringRule(ctx context.Context, rule *model.RecurringRule) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateRule(rule); err != nil {
		return 0, err
	}

	if err := s.checkCategoryVisible(ctx, rule.OwnerID, rule.CategoryID); err != nil {
		return 0, err
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO recurring_transactions (name, amount, frequency, next_date, category_id, owner_id)
		VALUES (?, ?, ?, ?, ?, ?)`,
		rule.Name, rule.Amount, string(rule.Frequency), rule.NextDate, rule.CategoryID, rule.OwnerID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, fmt.Errorf("%w: rule references missing row", ErrNotFound)
		}
		return 0, storageErr("create recurring rule", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, storageErr("create recurring rule", err)
	}

	slog.Info("created recurring rule", "id", id, "name", rule.Name, "frequency", rule.Frequency)
	return id, nil
}

// ListRecurringRules returns a user's rules ordered by next occurrence.
func (s *SQLiteStorage) ListRecurringRules(ctx context.Context, userID int64) ([]model.RecurringRule, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateUserID(userID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, amount, frequency, next_date, category_id, owner_id
		FROM recurring_transactions
		WHERE owner_id = ?
		ORDER BY next_date, id`, userID)
	if err != nil {
		return nil, storageErr("list recurring rules", err)
	}
	defer func() { _ = rows.Close() }()

	var rules []model.RecurringRule
	for rows.Next() {
		var rule model.RecurringRule
		if err := rows.Scan(&rule.ID, &rule.Name, &rule.Amount, &rule.Frequency,
			&rule.NextDate, &rule.CategoryID, &rule.OwnerID); err != nil {
			return nil, storageErr("list recurring rules", err)
		}
		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list recurring rules", err)
	}

	return rules, nil
}

// DeleteRecurringRule removes a rule. Transactions the rule originated
// survive with their recurring_id nullified by the schema, not deleted.
func (s *SQLiteStorage) DeleteRecurringRule(ctx context.Context, id int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM recurring_transactions WHERE id = ?`, id)
	if err != nil {
		return storageErr("delete recurring rule", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return storageErr("delete recurring rule", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	slog.Info("deleted recurring rule", "id", id)
	return nil
}

// AdvanceRecurringRule moves a rule's next occurrence date forward. This
// is the only field a rule mutates after creation; the external scheduler
// calls it when a rule materializes.
func (s *SQLiteStorage) AdvanceRecurringRule(ctx context.Context, id int64, next time.Time) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if next.IsZero() {
		return ErrMissingDate
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE recurring_transactions SET next_date = ? WHERE id = ?`, next, id)
	if err != nil {
		return storageErr("advance recurring rule", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return storageErr("advance recurring rule", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}
