package model

import "time"

// Transaction is a single ledger entry. Entries are write-once: the store
// exposes no update or delete, so a correction is a new compensating entry.
type Transaction struct {
	Date          time.Time
	Note          string
	PaymentMethod string
	SubcategoryID *int64
	RecurringID   *int64
	Amount        float64
	OwnerID       int64
	CategoryID    int64
	ID            int64
}

// NewTransaction carries the fields for one RecordTransaction call.
// SubcategoryID and RecurringID are optional; Note and PaymentMethod are
// stored as given and may be empty.
type NewTransaction struct {
	Date          time.Time
	Note          string
	PaymentMethod string
	SubcategoryID *int64
	RecurringID   *int64
	Amount        float64
	OwnerID       int64
	CategoryID    int64
}
