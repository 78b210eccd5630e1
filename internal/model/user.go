// Package model defines the core domain types for the centavo ledger.
package model

import "time"

// User is an account holder. Every user-scoped row in the store references
// a user; deleting the user removes everything it owns.
type User struct {
	CreatedAt    time.Time
	Username     string
	PasswordHash string
	ID           int64
}
