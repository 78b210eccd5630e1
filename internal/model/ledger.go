package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerRow is one denormalized line of a user's exported ledger: the
// transaction joined with its category and, when present, subcategory
// names. This is the row shape handed to external tabular formatters.
type LedgerRow struct {
	Date          time.Time
	Category      string
	Subcategory   string // empty when the transaction has none
	PaymentMethod string
	Note          string
	CategoryType  CategoryType
	Amount        decimal.Decimal
}
