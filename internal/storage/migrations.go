package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the application
// expects. If the database cannot be migrated to this version, it's a
// fatal error: the store is unusable without its schema.
const ExpectedSchemaVersion = 2

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS users (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					username TEXT NOT NULL UNIQUE,
					password_hash TEXT NOT NULL,
					created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
				)`,

				`CREATE TABLE IF NOT EXISTS categories (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					name TEXT NOT NULL,
					type TEXT NOT NULL CHECK(type IN ('income', 'expense')),
					icon TEXT,
					owner_id INTEGER,
					FOREIGN KEY (owner_id) REFERENCES users (id) ON DELETE CASCADE,
					UNIQUE(name, owner_id)
				)`,
				// SQLite treats NULLs as distinct in composite UNIQUE
				// constraints, so system defaults (owner_id IS NULL) need
				// their own uniqueness rule.
				`CREATE UNIQUE INDEX idx_categories_default_name
					ON categories(name) WHERE owner_id IS NULL`,
				`CREATE INDEX idx_categories_owner ON categories(owner_id)`,
				`CREATE INDEX idx_categories_type ON categories(type)`,

				`CREATE TABLE IF NOT EXISTS subcategories (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					name TEXT NOT NULL,
					category_id INTEGER NOT NULL,
					owner_id INTEGER,
					FOREIGN KEY (category_id) REFERENCES categories (id) ON DELETE CASCADE,
					FOREIGN KEY (owner_id) REFERENCES users (id) ON DELETE CASCADE,
					UNIQUE(name, category_id, owner_id)
				)`,
				`CREATE UNIQUE INDEX idx_subcategories_default_name
					ON subcategories(name, category_id) WHERE owner_id IS NULL`,
				`CREATE INDEX idx_subcategories_category ON subcategories(category_id)`,

				`CREATE TABLE IF NOT EXISTS recurring_transactions (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					name TEXT NOT NULL,
					amount REAL NOT NULL,
					frequency TEXT NOT NULL CHECK(frequency IN ('daily', 'weekly', 'monthly', 'yearly')),
					next_date DATETIME NOT NULL,
					category_id INTEGER NOT NULL,
					owner_id INTEGER NOT NULL,
					FOREIGN KEY (category_id) REFERENCES categories (id),
					FOREIGN KEY (owner_id) REFERENCES users (id) ON DELETE CASCADE
				)`,
				`CREATE INDEX idx_recurring_owner ON recurring_transactions(owner_id)`,

				`CREATE TABLE IF NOT EXISTS transactions (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					amount REAL NOT NULL CHECK(amount > 0),
					date DATETIME NOT NULL,
					note TEXT,
					payment_method TEXT,
					owner_id INTEGER NOT NULL,
					category_id INTEGER NOT NULL,
					subcategory_id INTEGER,
					recurring_id INTEGER,
					created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
					FOREIGN KEY (owner_id) REFERENCES users (id) ON DELETE CASCADE,
					FOREIGN KEY (category_id) REFERENCES categories (id),
					FOREIGN KEY (subcategory_id) REFERENCES subcategories (id),
					FOREIGN KEY (recurring_id) REFERENCES recurring_transactions (id) ON DELETE SET NULL
				)`,
				`CREATE INDEX idx_transactions_owner_date ON transactions(owner_id, date)`,
				`CREATE INDEX idx_transactions_category ON transactions(category_id)`,
				`CREATE INDEX idx_transactions_recurring ON transactions(recurring_id)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     2,
		Description: "Lock category type once transactions reference it",
		Up: func(tx *sql.Tx) error {
			// Changing a category's type would silently reclassify its
			// historical transactions, so the schema refuses it.
			_, err := tx.Exec(`
				CREATE TRIGGER categories_type_lock
				BEFORE UPDATE OF type ON categories
				FOR EACH ROW
				WHEN NEW.type <> OLD.type
					AND EXISTS (SELECT 1 FROM transactions WHERE category_id = OLD.id)
				BEGIN
					SELECT RAISE(ABORT, 'category type is locked by existing transactions');
				END
			`)
			if err != nil {
				return fmt.Errorf("failed to create type lock trigger: %w", err)
			}
			return nil
		},
	},
}

// Migrate applies all pending database migrations.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	var currentVersion int
	err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, txErr := s.db.BeginTx(ctx, nil)
		if txErr != nil {
			return fmt.Errorf("failed to begin transaction: %w", txErr)
		}

		if upErr := migration.Up(tx); upErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, upErr)
		}

		if _, execErr := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); execErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to update schema version: %w", execErr)
		}

		if commitErr := tx.Commit(); commitErr != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, commitErr)
		}

		slog.Info("Applied migration",
			"version", migration.Version,
			"description", migration.Description)
	}

	var finalVersion int
	err = s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&finalVersion)
	if err != nil {
		return fmt.Errorf("failed to verify final schema version: %w", err)
	}

	if finalVersion != ExpectedSchemaVersion {
		return fmt.Errorf("database schema version mismatch: expected %d, got %d", ExpectedSchemaVersion, finalVersion)
	}

	return nil
}
