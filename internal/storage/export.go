package storage

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/centavo-app/centavo/internal/model"
)

// ProjectLedger returns a user's full transaction history denormalized
// for presentation: each row joins the transaction with its category and
// optional subcategory names. Rows are ordered by date descending, with
// ties broken by id ascending so the projection is deterministic.
func (s *SQLiteStorage) ProjectLedger(ctx context.Context, userID int64) ([]model.LedgerRow, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateUserID(userID); err != nil {
		return nil, err
	}

	query := `
		SELECT t.date, c.name, c.type, s.name, t.amount, t.payment_method, t.note
		FROM transactions t
		JOIN categories c ON c.id = t.category_id
		LEFT JOIN subcategories s ON s.id = t.subcategory_id
		WHERE t.owner_id = ?
		ORDER BY t.date DESC, t.id ASC`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, storageErr("project ledger", err)
	}
	defer func() { _ = rows.Close() }()

	var ledger []model.LedgerRow
	for rows.Next() {
		var row model.LedgerRow
		var subcategory, paymentMethod, note sql.NullString
		var amount float64
		if err := rows.Scan(&row.Date, &row.Category, &row.CategoryType,
			&subcategory, &amount, &paymentMethod, &note); err != nil {
			return nil, storageErr("project ledger", err)
		}
		row.Subcategory = subcategory.String
		row.PaymentMethod = paymentMethod.String
		row.Note = note.String
		row.Amount = decimal.NewFromFloat(amount)
		ledger = append(ledger, row)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("project ledger", err)
	}

	slog.Debug("projected ledger", "user", userID, "rows", len(ledger))
	return ledger, nil
}
