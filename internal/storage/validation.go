package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/centavo-app/centavo/internal/model"
)

// Validation errors.
var (
	ErrNilContext      = errors.New("context cannot be nil")
	ErrEmptyString     = errors.New("string parameter cannot be empty")
	ErrNilParameter    = errors.New("parameter cannot be nil")
	ErrInvalidType     = errors.New("invalid category type")
	ErrInvalidFreq     = errors.New("invalid recurrence frequency")
	ErrInvalidUserID   = errors.New("user id must be positive")
	ErrMissingDate     = errors.New("date cannot be zero")
	ErrInvalidCategory = errors.New("category id must be positive")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateUserID ensures a user id is plausible.
func validateUserID(id int64) error {
	if id <= 0 {
		return ErrInvalidUserID
	}
	return nil
}

// validateCategoryType ensures the type is income or expense.
func validateCategoryType(t model.CategoryType) error {
	if !t.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidType, t)
	}
	return nil
}

// validateEntry checks a transaction entry before any storage write.
// Amount is checked first: a non-positive amount must fail with
// ErrInvalidAmount regardless of what else is wrong.
func validateEntry(entry model.NewTransaction) error {
	if entry.Amount <= 0 {
		return ErrInvalidAmount
	}
	if err := validateUserID(entry.OwnerID); err != nil {
		return err
	}
	if entry.CategoryID <= 0 {
		return ErrInvalidCategory
	}
	if entry.Date.IsZero() {
		return ErrMissingDate
	}
	return nil
}

// validateRule checks a recurring rule before persistence.
func validateRule(rule *model.RecurringRule) error {
	if rule == nil {
		return fmt.Errorf("%w: rule", ErrNilParameter)
	}
	if err := validateString(rule.Name, "name"); err != nil {
		return err
	}
	if rule.Amount <= 0 {
		return ErrInvalidAmount
	}
	if !rule.Frequency.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidFreq, rule.Frequency)
	}
	if rule.NextDate.IsZero() {
		return ErrMissingDate
	}
	if err := validateUserID(rule.OwnerID); err != nil {
		return err
	}
	if rule.CategoryID <= 0 {
		return ErrInvalidCategory
	}
	return nil
}
