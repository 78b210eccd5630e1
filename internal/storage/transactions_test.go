package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/centavo-app/centavo/internal/model"
)

// newGroceriesEntry builds a minimal valid entry against a category id.
func newGroceriesEntry(userID, categoryID int64) model.NewTransaction {
	return model.NewTransaction{
		OwnerID:    userID,
		CategoryID: categoryID,
		Amount:     75.50,
		Date:       testDate(2025, time.July, 5),
		Note:       "Weekly groceries",
	}
}

func TestRecordTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("persists and returns a new id", func(t *testing.T) {
		store := createSeededStorage(t)
		userID := createTestUser(t, store, "spender")
		groceriesID := mustResolveCategory(t, store, userID, model.CategoryTypeExpense, "Groceries")

		entry := newGroceriesEntry(userID, groceriesID)
		entry.PaymentMethod = "Credit Card"

		id, err := store.RecordTransaction(ctx, entry)
		require.NoError(t, err)
		assert.Positive(t, id)

		count, err := store.CountTransactions(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("rejects non-positive amounts before any write", func(t *testing.T) {
		store := createSeededStorage(t)
		userID := createTestUser(t, store, "zero")
		groceriesID := mustResolveCategory(t, store, userID, model.CategoryTypeExpense, "Groceries")

		for _, amount := range []float64{0, -10.25} {
			entry := newGroceriesEntry(userID, groceriesID)
			entry.Amount = amount

			_, err := store.RecordTransaction(ctx, entry)
			assert.ErrorIs(t, err, ErrInvalidAmount)
		}

		count, err := store.CountTransactions(ctx, userID)
		require.NoError(t, err)
		assert.Zero(t, count, "failed writes must leave no row")
	})

	t.Run("rejects a subcategory from a different category", func(t *testing.T) {
		store := createSeededStorage(t)
		userID := createTestUser(t, store, "mismatched")
		groceriesID := mustResolveCategory(t, store, userID, model.CategoryTypeExpense, "Groceries")
		shoppingID := mustResolveCategory(t, store, userID, model.CategoryTypeExpense, "Shopping")

		electronicsID, err := store.ResolveSubcategoryID(ctx, userID, shoppingID, "Electronics")
		require.NoError(t, err)

		entry := newGroceriesEntry(userID, groceriesID)
		entry.SubcategoryID = &electronicsID

		_, err = store.RecordTransaction(ctx, entry)
		assert.ErrorIs(t, err, ErrSubcategoryMismatch)

		count, err := store.CountTransactions(ctx, userID)
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("accepts a matching subcategory", func(t *testing.T) {
		store := createSeededStorage(t)
		userID := createTestUser(t, store, "matched")
		shoppingID := mustResolveCategory(t, store, userID, model.CategoryTypeExpense, "Shopping")

		clothingID, err := store.ResolveSubcategoryID(ctx, userID, shoppingID, "Clothing")
		require.NoError(t, err)

		entry := newGroceriesEntry(userID, shoppingID)
		entry.SubcategoryID = &clothingID

		_, err = store.RecordTransaction(ctx, entry)
		assert.NoError(t, err)
	})

	t.Run("unknown subcategory is not found", func(t *testing.T) {
		store := createSeededStorage(t)
		userID := createTestUser(t, store, "ghost-sub")
		groceriesID := mustResolveCategory(t, store, userID, model.CategoryTypeExpense, "Groceries")

		missing := int64(9999)
		entry := newGroceriesEntry(userID, groceriesID)
		entry.SubcategoryID = &missing

		_, err := store.RecordTransaction(ctx, entry)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("rejects a zero date", func(t *testing.T) {
		store := createSeededStorage(t)
		userID := createTestUser(t, store, "dateless")
		groceriesID := mustResolveCategory(t, store, userID, model.CategoryTypeExpense, "Groceries")

		entry := newGroceriesEntry(userID, groceriesID)
		entry.Date = time.Time{}

		_, err := store.RecordTransaction(ctx, entry)
		assert.ErrorIs(t, err, ErrMissingDate)
	})
}

func TestUserDeletionCascade(t *testing.T) {
	ctx := context.Background()
	store := createSeededStorage(t)
	userID := createTestUser(t, store, "doomed")
	survivorID := createTestUser(t, store, "survivor")

	// Build out everything the user can own.
	cat, err := store.CreateCategory(ctx, userID, "Own Cat", model.CategoryTypeExpense, "")
	require.NoError(t, err)
	_, err = store.CreateSubcategory(ctx, userID, cat.ID, "Own Sub")
	require.NoError(t, err)
	_, err = store.CreateRecurringRule(ctx, &model.RecurringRule{
		Name:       "Gym",
		Amount:     30,
		Frequency:  model.FrequencyMonthly,
		NextDate:   testDate(2025, time.August, 1),
		CategoryID: cat.ID,
		OwnerID:    userID,
	})
	require.NoError(t, err)
	_, err = store.RecordTransaction(ctx, newGroceriesEntry(userID, cat.ID))
	require.NoError(t, err)

	groceriesID := mustResolveCategory(t, store, survivorID, model.CategoryTypeExpense, "Groceries")
	_, err = store.RecordTransaction(ctx, newGroceriesEntry(survivorID, groceriesID))
	require.NoError(t, err)

	require.NoError(t, store.DeleteUser(ctx, userID))

	for _, q := range []string{
		`SELECT COUNT(*) FROM categories WHERE owner_id = ?`,
		`SELECT COUNT(*) FROM subcategories WHERE owner_id = ?`,
		`SELECT COUNT(*) FROM recurring_transactions WHERE owner_id = ?`,
		`SELECT COUNT(*) FROM transactions WHERE owner_id = ?`,
	} {
		var count int
		require.NoError(t, store.db.QueryRowContext(ctx, q, userID).Scan(&count))
		assert.Zero(t, count, "query %s should find nothing after cascade", q)
	}

	// The other user's data is untouched.
	count, err := store.CountTransactions(ctx, survivorID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestRecurringDeletionNullifiesOrigin(t *testing.T) {
	ctx := context.Background()
	store := createSeededStorage(t)
	userID := createTestUser(t, store, "nullify")
	groceriesID := mustResolveCategory(t, store, userID, model.CategoryTypeExpense, "Groceries")

	ruleID, err := store.CreateRecurringRule(ctx, &model.RecurringRule{
		Name:       "Weekly shop",
		Amount:     75.50,
		Frequency:  model.FrequencyWeekly,
		NextDate:   testDate(2025, time.July, 12),
		CategoryID: groceriesID,
		OwnerID:    userID,
	})
	require.NoError(t, err)

	entry := newGroceriesEntry(userID, groceriesID)
	entry.RecurringID = &ruleID
	txnID, err := store.RecordTransaction(ctx, entry)
	require.NoError(t, err)

	require.NoError(t, store.DeleteRecurringRule(ctx, ruleID))

	// The transaction survives with its origin cleared, not deleted.
	var recurring any
	err = store.db.QueryRowContext(ctx,
		`SELECT recurring_id FROM transactions WHERE id = ?`, txnID).Scan(&recurring)
	require.NoError(t, err)
	assert.Nil(t, recurring)

	count, err := store.CountTransactions(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
