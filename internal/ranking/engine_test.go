package ranking

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/pennypool/internal/ledger"
	"github.com/mmynk/pennypool/internal/models"
	"github.com/mmynk/pennypool/internal/storage/sqlite"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type population struct {
	store  *sqlite.SQLiteStore
	ledger *ledger.Service
}

func newPopulation(t *testing.T) *population {
	t.Helper()
	store, err := sqlite.New(filepath.Join(t.TempDir(), "ranking.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return &population{store: store, ledger: ledger.NewService(store)}
}

func (p *population) add(t *testing.T, id, name, savings, expenses string) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, p.store.CreateUser(ctx, &models.User{ID: id, DisplayName: name}))
	if savings != "0" {
		_, err := p.ledger.AddSaving(ctx, id, d(savings), "income", time.Time{})
		require.NoError(t, err)
	}
	if expenses != "0" {
		_, err := p.ledger.AddExpense(ctx, id, d(expenses), "rent", time.Time{})
		require.NoError(t, err)
	}
}

func TestLeaderboard_NetWorth(t *testing.T) {
	p := newPopulation(t)
	p.add(t, "user-a", "A", "500", "350")
	p.add(t, "user-b", "B", "300", "50")

	entries, err := NewEngine(p.store).Leaderboard(context.Background(), models.MetricNetWorth, models.LimitTop10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, "user-b", entries[0].UserID)
	assert.Equal(t, "B", entries[0].DisplayName)
	assert.True(t, entries[0].Value.Equal(d("250")))

	assert.Equal(t, 2, entries[1].Rank)
	assert.Equal(t, "user-a", entries[1].UserID)
	assert.True(t, entries[1].Value.Equal(d("150")))
}

func TestLeaderboard_TruncationKeepsRanks(t *testing.T) {
	p := newPopulation(t)
	for i := 0; i < 15; i++ {
		p.add(t, fmt.Sprintf("user-%02d", i), fmt.Sprintf("U%d", i), fmt.Sprintf("%d", (i%5+1)*10), "0")
	}
	engine := NewEngine(p.store)
	ctx := context.Background()

	all, err := engine.Leaderboard(ctx, models.MetricSavings, models.LimitAll)
	require.NoError(t, err)
	require.Len(t, all, 15)

	top, err := engine.Leaderboard(ctx, models.MetricSavings, models.LimitTop10)
	require.NoError(t, err)
	require.Len(t, top, 10)
	assert.Equal(t, all[:10], top)

	// Equal savings are ordered by user ID.
	assert.Equal(t, "user-04", all[0].UserID)
	assert.Equal(t, "user-09", all[1].UserID)
	assert.Equal(t, "user-14", all[2].UserID)
}

func TestLeaderboard_RejectsBadInput(t *testing.T) {
	engine := NewEngine(newPopulation(t).store)
	ctx := context.Background()

	_, err := engine.Leaderboard(ctx, models.MetricSavings, 25)
	assert.ErrorIs(t, err, models.ErrValidation)

	_, err = engine.Leaderboard(ctx, "karma", models.LimitTop10)
	assert.ErrorIs(t, err, models.ErrValidation)

	_, err = engine.Placement(ctx, "", models.MetricSavings)
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestPlacement(t *testing.T) {
	p := newPopulation(t)
	engine := NewEngine(p.store)
	ctx := context.Background()

	p.add(t, "solo", "Solo", "10", "0")
	placement, err := engine.Placement(ctx, "solo", models.MetricNetWorth)
	require.NoError(t, err)
	assert.Equal(t, models.Placement{Ranked: true, Rank: 1, TotalUsers: 1, Percentile: 100}, placement)

	p.add(t, "second", "Second", "5", "0")
	p.add(t, "third", "Third", "1", "0")

	placement, err = engine.Placement(ctx, "second", models.MetricSavings)
	require.NoError(t, err)
	assert.Equal(t, 2, placement.Rank)
	assert.Equal(t, 3, placement.TotalUsers)
	assert.InDelta(t, 50.0, placement.Percentile, 1e-9)

	placement, err = engine.Placement(ctx, "nobody", models.MetricSavings)
	require.NoError(t, err)
	assert.False(t, placement.Ranked)
	assert.Equal(t, 3, placement.TotalUsers)
}
