// Package export serializes projected ledger rows to tabular sinks. The
// storage layer guarantees column identity and row order; this package
// only encodes.
package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"

	"github.com/centavo-app/centavo/internal/model"
)

// csvHeader is the column set of an exported ledger, in order.
var csvHeader = []string{"Date", "Type", "Category", "Subcategory", "Amount", "Payment Method", "Note"}

// dateLayout is how transaction dates render in exports.
const dateLayout = "2006-01-02"

// CSVWriter writes a projected ledger as CSV.
type CSVWriter struct {
	w io.Writer
}

// NewCSVWriter creates a CSV ledger writer targeting w.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{w: w}
}

// Write encodes the rows, preserving their order. The header row is
// always written, so an empty ledger still produces a well-formed file.
func (c *CSVWriter) Write(ctx context.Context, rows []model.LedgerRow) error {
	if ctx == nil {
		return fmt.Errorf("context cannot be nil")
	}

	cw := csv.NewWriter(c.w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, row := range rows {
		record := []string{
			row.Date.Format(dateLayout),
			string(row.CategoryType),
			row.Category,
			row.Subcategory,
			row.Amount.StringFixed(2),
			row.PaymentMethod,
			row.Note,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}

	slog.Debug("wrote ledger export", "rows", len(rows))
	return nil
}
