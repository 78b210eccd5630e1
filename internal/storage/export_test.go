package storage

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/centavo-app/centavo/internal/model"
)

func TestProjectLedger(t *testing.T) {
	ctx := context.Background()

	t.Run("single transaction round trip", func(t *testing.T) {
		store := createSeededStorage(t)
		userID := createTestUser(t, store, "exporter")
		groceriesID := mustResolveCategory(t, store, userID, model.CategoryTypeExpense, "Groceries")

		entry := newGroceriesEntry(userID, groceriesID)
		entry.PaymentMethod = "Credit Card"
		_, err := store.RecordTransaction(ctx, entry)
		require.NoError(t, err)

		rows, err := store.ProjectLedger(ctx, userID)
		require.NoError(t, err)
		require.Len(t, rows, 1)

		row := rows[0]
		assert.Equal(t, "Groceries", row.Category)
		assert.Equal(t, model.CategoryTypeExpense, row.CategoryType)
		assert.True(t, row.Amount.Equal(decimal.NewFromFloat(75.50)), "amount was %s", row.Amount)
		assert.Empty(t, row.Subcategory, "absent subcategory renders empty, not as an error")
		assert.Equal(t, "Credit Card", row.PaymentMethod)
		assert.Equal(t, "Weekly groceries", row.Note)
	})

	t.Run("orders by date descending with id tiebreak", func(t *testing.T) {
		store := createSeededStorage(t)
		userID := createTestUser(t, store, "orderer")
		groceriesID := mustResolveCategory(t, store, userID, model.CategoryTypeExpense, "Groceries")

		dates := []time.Time{
			testDate(2025, time.July, 5),
			testDate(2025, time.July, 7),
			testDate(2025, time.July, 5), // same day as the first
			testDate(2025, time.July, 1),
		}
		for i, d := range dates {
			entry := newGroceriesEntry(userID, groceriesID)
			entry.Date = d
			entry.Amount = float64(i + 1)
			_, err := store.RecordTransaction(ctx, entry)
			require.NoError(t, err)
		}

		rows, err := store.ProjectLedger(ctx, userID)
		require.NoError(t, err)
		require.Len(t, rows, 4)

		// Most recent first; within the tied day, insertion order holds.
		assert.True(t, rows[0].Amount.Equal(decimal.NewFromInt(2)))
		assert.True(t, rows[1].Amount.Equal(decimal.NewFromInt(1)))
		assert.True(t, rows[2].Amount.Equal(decimal.NewFromInt(3)))
		assert.True(t, rows[3].Amount.Equal(decimal.NewFromInt(4)))
	})

	t.Run("includes subcategory names when present", func(t *testing.T) {
		store := createSeededStorage(t)
		userID := createTestUser(t, store, "joiner")
		shoppingID := mustResolveCategory(t, store, userID, model.CategoryTypeExpense, "Shopping")

		electronicsID, err := store.ResolveSubcategoryID(ctx, userID, shoppingID, "Electronics")
		require.NoError(t, err)

		entry := newGroceriesEntry(userID, shoppingID)
		entry.SubcategoryID = &electronicsID
		_, err = store.RecordTransaction(ctx, entry)
		require.NoError(t, err)

		rows, err := store.ProjectLedger(ctx, userID)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "Shopping", rows[0].Category)
		assert.Equal(t, "Electronics", rows[0].Subcategory)
	})

	t.Run("only the requested user's rows", func(t *testing.T) {
		store := createSeededStorage(t)
		u1 := createTestUser(t, store, "mine")
		u2 := createTestUser(t, store, "theirs")
		groceriesID := mustResolveCategory(t, store, u1, model.CategoryTypeExpense, "Groceries")

		_, err := store.RecordTransaction(ctx, newGroceriesEntry(u1, groceriesID))
		require.NoError(t, err)

		rows, err := store.ProjectLedger(ctx, u2)
		require.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("empty ledger is empty, not an error", func(t *testing.T) {
		store := createSeededStorage(t)
		userID := createTestUser(t, store, "nothing")

		rows, err := store.ProjectLedger(ctx, userID)
		require.NoError(t, err)
		assert.Empty(t, rows)
	})
}
