package ledger

import (
	"context"
	"math/rand"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/pennypool/internal/models"
	"github.com/mmynk/pennypool/internal/storage/sqlite"
)

func newTestService(t *testing.T) (*Service, *sqlite.SQLiteStore) {
	t.Helper()
	store, err := sqlite.New(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return NewService(store), store
}

func newUser(t *testing.T, store *sqlite.SQLiteStore, name string) string {
	t.Helper()
	user := &models.User{DisplayName: name}
	require.NoError(t, store.CreateUser(context.Background(), user))
	return user.ID
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestAddRejectsInvalidAmounts(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	user := newUser(t, store, "Alice")

	for _, amount := range []string{"0", "-1", "0.001"} {
		_, err := svc.AddSaving(ctx, user, d(amount), "x", time.Time{})
		assert.ErrorIs(t, err, models.ErrValidation, "saving amount %s", amount)

		_, err = svc.AddExpense(ctx, user, d(amount), "x", time.Time{})
		assert.ErrorIs(t, err, models.ErrValidation, "expense amount %s", amount)
	}

	stats, err := svc.Stats(ctx, user)
	require.NoError(t, err)
	assert.Zero(t, stats.SavingsCount+stats.ExpensesCount)
}

func TestAddExpenseRejectsReservedCategory(t *testing.T) {
	svc, store := newTestService(t)
	user := newUser(t, store, "Alice")

	_, err := svc.AddExpense(context.Background(), user, d("10"), models.ChallengeContributionCategory, time.Time{})
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestEditAndDelete(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	alice := newUser(t, store, "Alice")
	bob := newUser(t, store, "Bob")

	id, err := svc.AddSaving(ctx, alice, d("100"), "emergency fund", time.Time{})
	require.NoError(t, err)

	ok, err := svc.Edit(ctx, models.KindSaving, alice, id, d("120"), "emergency fund", time.Time{})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.Delete(ctx, models.KindSaving, bob, id)
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.False(t, ok)

	ok, err = svc.Delete(ctx, models.KindSaving, alice, uuid.New().String())
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.False(t, ok)

	_, err = svc.Delete(ctx, models.KindSaving, alice, "not-a-uuid")
	assert.ErrorIs(t, err, models.ErrValidation)

	_, err = svc.Delete(ctx, "bonus", alice, id)
	assert.ErrorIs(t, err, models.ErrValidation)

	net, err := svc.NetWorth(ctx, alice)
	require.NoError(t, err)
	assert.True(t, net.Equal(d("120")), "net worth %s", net)

	ok, err = svc.Delete(ctx, models.KindSaving, alice, id)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestListDefaults(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	user := newUser(t, store, "Alice")

	day := func(n int) time.Time { return time.Date(2024, 5, n, 0, 0, 0, 0, time.UTC) }
	_, err := svc.AddExpense(ctx, user, d("3"), "coffee", day(2))
	require.NoError(t, err)
	_, err = svc.AddSaving(ctx, user, d("50"), "salary", day(1))
	require.NoError(t, err)

	entries, err := svc.List(ctx, models.ListQuery{UserID: user})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, models.KindSaving, entries[0].Kind)
	assert.Equal(t, models.KindExpense, entries[1].Kind)
}

// TestTotalsMatchRecords drives a random sequence of mutations and checks that the
// reported totals always equal the sum of the surviving records.
func TestTotalsMatchRecords(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	user := newUser(t, store, "Fuzz")
	rng := rand.New(rand.NewSource(42))

	var savingIDs, expenseIDs []string
	for i := 0; i < 60; i++ {
		amount := decimal.New(int64(rng.Intn(100000)+1), -2)
		switch op := rng.Intn(5); {
		case op == 0:
			id, err := svc.AddSaving(ctx, user, amount, "s", time.Time{})
			require.NoError(t, err)
			savingIDs = append(savingIDs, id)
		case op == 1:
			id, err := svc.AddExpense(ctx, user, amount, "e", time.Time{})
			require.NoError(t, err)
			expenseIDs = append(expenseIDs, id)
		case op == 2 && len(savingIDs) > 0:
			_, err := svc.EditSaving(ctx, user, savingIDs[rng.Intn(len(savingIDs))], amount, "s2", time.Time{})
			require.NoError(t, err)
		case op == 3 && len(savingIDs) > 0:
			j := rng.Intn(len(savingIDs))
			_, err := svc.DeleteSaving(ctx, user, savingIDs[j])
			require.NoError(t, err)
			savingIDs = append(savingIDs[:j], savingIDs[j+1:]...)
		case op == 4 && len(expenseIDs) > 0:
			j := rng.Intn(len(expenseIDs))
			_, err := svc.DeleteExpense(ctx, user, expenseIDs[j])
			require.NoError(t, err)
			expenseIDs = append(expenseIDs[:j], expenseIDs[j+1:]...)
		}

		entries, err := svc.List(ctx, models.ListQuery{UserID: user})
		require.NoError(t, err)
		var wantSavings, wantExpenses decimal.Decimal
		for _, e := range entries {
			if e.Kind == models.KindSaving {
				wantSavings = wantSavings.Add(e.Amount)
			} else {
				wantExpenses = wantExpenses.Add(e.Amount)
			}
		}

		stats, err := svc.Stats(ctx, user)
		require.NoError(t, err)
		require.True(t, stats.TotalSavings.Equal(wantSavings), "step %d: savings %s != %s", i, stats.TotalSavings, wantSavings)
		require.True(t, stats.TotalExpenses.Equal(wantExpenses), "step %d: expenses %s != %s", i, stats.TotalExpenses, wantExpenses)
		require.Equal(t, len(savingIDs), stats.SavingsCount)
		require.Equal(t, len(expenseIDs), stats.ExpensesCount)
	}
}
