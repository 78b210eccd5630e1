package model

import "time"

// Frequency is how often a recurring rule materializes a transaction.
type Frequency string

const (
	// FrequencyDaily materializes a transaction every day.
	FrequencyDaily Frequency = "daily"
	// FrequencyWeekly materializes a transaction every week.
	FrequencyWeekly Frequency = "weekly"
	// FrequencyMonthly materializes a transaction every month.
	FrequencyMonthly Frequency = "monthly"
	// FrequencyYearly materializes a transaction every year.
	FrequencyYearly Frequency = "yearly"
)

// Valid reports whether f is one of the known frequencies.
func (f Frequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyYearly:
		return true
	}
	return false
}

// RecurringRule is a template that an external scheduler periodically
// turns into a transaction. Only NextDate mutates after creation; the
// store advances it when a rule materializes.
type RecurringRule struct {
	NextDate   time.Time
	Name       string
	Frequency  Frequency
	Amount     float64
	CategoryID int64
	OwnerID    int64
	ID         int64
}
