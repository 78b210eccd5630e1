package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/centavo-app/centavo/internal/model"
)

// bcryptCost is the work factor for password hashing.
const bcryptCost = 12

// CreateUser registers a new account. The password is bcrypt-hashed before
// storage; the plaintext is never persisted or logged. A taken username
// fails with ErrDuplicateUsername.
func (s *SQLiteStorage) CreateUser(ctx context.Context, username, password string) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateString(username, "username"); err != nil {
		return 0, err
	}
	if err := validateString(password, "password"); err != nil {
		return 0, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return 0, fmt.Errorf("failed to hash password: %w", err)
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO users (username, password_hash, created_at)
		VALUES (?, ?, ?)`,
		username, string(hash), time.Now().UTC())
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicateUsername
		}
		return 0, storageErr("create user", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, storageErr("create user", err)
	}

	slog.Info("created user", "username", username, "id", id)
	return id, nil
}

// VerifyUser checks credentials and returns the full user record on a
// match. Unknown usernames and wrong passwords both fail with the same
// ErrAuthFailure so callers learn nothing about which was wrong.
func (s *SQLiteStorage) VerifyUser(ctx context.Context, username, password string) (*model.User, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(username, "username"); err != nil {
		return nil, err
	}

	user, err := s.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrAuthFailure
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrAuthFailure
	}

	return user, nil
}

// GetUserByUsername looks up a user record by username.
func (s *SQLiteStorage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(username, "username"); err != nil {
		return nil, err
	}

	var user model.User
	err := s.db.QueryRowContext(ctx, `
		SELECT id, username, password_hash, created_at
		FROM users
		WHERE username = ?`,
		username).Scan(&user.ID, &user.Username, &user.PasswordHash, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, storageErr("get user", err)
	}

	return &user, nil
}

// DeleteUser removes an account. Everything the user owns (categories,
// subcategories, recurring rules, transactions) goes with it via the
// schema's cascade rules.
func (s *SQLiteStorage) DeleteUser(ctx context.Context, id int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateUserID(id); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return storageErr("delete user", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return storageErr("delete user", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	slog.Info("deleted user", "id", id)
	return nil
}
