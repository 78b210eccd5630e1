package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/centavo-app/centavo/internal/model"
)

// createTestStorage opens a migrated scratch database.
func createTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := NewSQLiteStorage(dbPath)
	require.NoError(t, err, "failed to create storage")

	ctx := context.Background()
	require.NoError(t, store.Migrate(ctx), "failed to migrate")

	t.Cleanup(func() { _ = store.Close() })
	return store
}

// createSeededStorage opens a scratch database with the default catalog.
func createSeededStorage(t *testing.T) *SQLiteStorage {
	t.Helper()

	store := createTestStorage(t)
	require.NoError(t, store.SeedDefaults(context.Background()), "failed to seed defaults")
	return store
}

// createTestUser registers a user and returns its id.
func createTestUser(t *testing.T, store *SQLiteStorage, username string) int64 {
	t.Helper()

	id, err := store.CreateUser(context.Background(), username, "hunter2-but-longer")
	require.NoError(t, err, "failed to create test user")
	return id
}

// testDate builds a UTC date for deterministic ordering assertions.
func testDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
}

// mustResolveCategory resolves a category name or fails the test.
func mustResolveCategory(t *testing.T, store *SQLiteStorage, userID int64, categoryType model.CategoryType, name string) int64 {
	t.Helper()

	id, err := store.ResolveCategoryID(context.Background(), userID, categoryType, name)
	require.NoError(t, err, "failed to resolve category %q", name)
	return id
}
