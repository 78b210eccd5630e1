package main

import (
	"context"
	"fmt"

	"github.com/spf13/viper"

	"github.com/centavo-app/centavo/internal/config"
	"github.com/centavo-app/centavo/internal/model"
	"github.com/centavo-app/centavo/internal/service"
	"github.com/centavo-app/centavo/internal/storage"
)

// initStorage opens the configured database and brings its schema up to
// date. A schema that cannot be provisioned is fatal: the store is
// unusable without it.
func initStorage(ctx context.Context) (service.Storage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = "$HOME/.local/share/centavo/centavo.db"
	}

	dbPath = config.ExpandPath(dbPath)

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// resolveUser maps a --user flag value to the stored account.
func resolveUser(ctx context.Context, store service.Storage, username string) (*model.User, error) {
	if username == "" {
		return nil, fmt.Errorf("--user is required")
	}

	user, err := store.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("unknown user %q: %w", username, err)
	}
	return user, nil
}

// parseCategoryType validates a --type flag value.
func parseCategoryType(value string) (model.CategoryType, error) {
	t := model.CategoryType(value)
	if !t.Valid() {
		return "", fmt.Errorf("invalid type %q (want income or expense)", value)
	}
	return t, nil
}
