package storage

import (
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
)

// Domain errors. Raw engine errors never cross the package boundary:
// constraint violations are classified into one of these sentinels and
// everything else wraps ErrStorage with the failing operation's name.
var (
	// ErrDuplicateUsername is returned when a username is already taken.
	ErrDuplicateUsername = errors.New("username already exists")
	// ErrAuthFailure is returned for any failed credential check. It is
	// deliberately uniform: callers cannot tell a missing user from a
	// wrong password.
	ErrAuthFailure = errors.New("invalid username or password")
	// ErrNotFound is returned when a name or id resolves to nothing
	// visible to the caller.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateName is returned when a category or subcategory name
	// collides within its uniqueness scope.
	ErrDuplicateName = errors.New("name already exists")
	// ErrInvalidAmount is returned for zero or negative amounts.
	ErrInvalidAmount = errors.New("amount must be greater than zero")
	// ErrSubcategoryMismatch is returned when a subcategory does not
	// belong to the transaction's category.
	ErrSubcategoryMismatch = errors.New("subcategory does not belong to category")
	// ErrStorage wraps unclassified storage engine faults.
	ErrStorage = errors.New("storage error")
)

// storageErr wraps an engine fault with the failing operation so logs can
// locate it without leaking query text to callers.
func storageErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStorage, op, err)
}

// isUniqueViolation reports whether err is a SQLite UNIQUE constraint
// violation.
func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}

// isForeignKeyViolation reports whether err is a SQLite FOREIGN KEY
// constraint violation.
func isForeignKeyViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey
	}
	return false
}
