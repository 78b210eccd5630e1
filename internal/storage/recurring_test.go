package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/centavo-app/centavo/internal/model"
)

func testRule(userID, categoryID int64) *model.RecurringRule {
	return &model.RecurringRule{
		Name:       "Rent",
		Amount:     1200,
		Frequency:  model.FrequencyMonthly,
		NextDate:   testDate(2025, time.September, 1),
		CategoryID: categoryID,
		OwnerID:    userID,
	}
}

func TestCreateRecurringRule(t *testing.T) {
	ctx := context.Background()

	t.Run("persists a valid rule", func(t *testing.T) {
		store := createSeededStorage(t)
		userID := createTestUser(t, store, "renter")
		rentID := mustResolveCategory(t, store, userID, model.CategoryTypeExpense, "Rent/Mortgage")

		id, err := store.CreateRecurringRule(ctx, testRule(userID, rentID))
		require.NoError(t, err)
		assert.Positive(t, id)
	})

	t.Run("rejects invalid frequency and amount", func(t *testing.T) {
		store := createSeededStorage(t)
		userID := createTestUser(t, store, "invalid")
		rentID := mustResolveCategory(t, store, userID, model.CategoryTypeExpense, "Rent/Mortgage")

		rule := testRule(userID, rentID)
		rule.Frequency = "fortnightly"
		_, err := store.CreateRecurringRule(ctx, rule)
		assert.ErrorIs(t, err, ErrInvalidFreq)

		rule = testRule(userID, rentID)
		rule.Amount = 0
		_, err = store.CreateRecurringRule(ctx, rule)
		assert.ErrorIs(t, err, ErrInvalidAmount)
	})

	t.Run("rejects a category invisible to the owner", func(t *testing.T) {
		store := createTestStorage(t)
		u1 := createTestUser(t, store, "r1")
		u2 := createTestUser(t, store, "r2")

		private, err := store.CreateCategory(ctx, u1, "Private", model.CategoryTypeExpense, "")
		require.NoError(t, err)

		_, err = store.CreateRecurringRule(ctx, testRule(u2, private.ID))
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestListRecurringRules(t *testing.T) {
	ctx := context.Background()
	store := createSeededStorage(t)
	userID := createTestUser(t, store, "lister")
	rentID := mustResolveCategory(t, store, userID, model.CategoryTypeExpense, "Rent/Mortgage")

	later := testRule(userID, rentID)
	later.Name = "Insurance"
	later.NextDate = testDate(2025, time.October, 1)
	_, err := store.CreateRecurringRule(ctx, later)
	require.NoError(t, err)

	sooner := testRule(userID, rentID)
	sooner.NextDate = testDate(2025, time.September, 1)
	_, err = store.CreateRecurringRule(ctx, sooner)
	require.NoError(t, err)

	rules, err := store.ListRecurringRules(ctx, userID)
	require.NoError(t, err)
	require.Len(t, rules, 2)
	assert.Equal(t, "Rent", rules[0].Name, "rules sort by next occurrence")
	assert.Equal(t, "Insurance", rules[1].Name)
}

func TestAdvanceRecurringRule(t *testing.T) {
	ctx := context.Background()
	store := createSeededStorage(t)
	userID := createTestUser(t, store, "advancer")
	rentID := mustResolveCategory(t, store, userID, model.CategoryTypeExpense, "Rent/Mortgage")

	id, err := store.CreateRecurringRule(ctx, testRule(userID, rentID))
	require.NoError(t, err)

	next := testDate(2025, time.October, 1)
	require.NoError(t, store.AdvanceRecurringRule(ctx, id, next))

	rules, err := store.ListRecurringRules(ctx, userID)
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.True(t, rules[0].NextDate.Equal(next))

	assert.ErrorIs(t, store.AdvanceRecurringRule(ctx, 9999, next), ErrNotFound)
	assert.ErrorIs(t, store.AdvanceRecurringRule(ctx, id, time.Time{}), ErrMissingDate)
}
