package transfer

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/pennypool/internal/ledger"
	"github.com/mmynk/pennypool/internal/models"
	"github.com/mmynk/pennypool/internal/storage"
	"github.com/mmynk/pennypool/internal/storage/sqlite"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fixture struct {
	store  *sqlite.SQLiteStore
	ledger *ledger.Service
	engine *Engine
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store, err := sqlite.New(filepath.Join(t.TempDir(), "transfer.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return &fixture{store: store, ledger: ledger.NewService(store), engine: NewEngine(store)}
}

func (f *fixture) user(t *testing.T, name, savings, expenses string) string {
	t.Helper()
	ctx := context.Background()
	u := &models.User{DisplayName: name}
	require.NoError(t, f.store.CreateUser(ctx, u))
	if savings != "0" {
		_, err := f.ledger.AddSaving(ctx, u.ID, d(savings), "seed", time.Time{})
		require.NoError(t, err)
	}
	if expenses != "0" {
		_, err := f.ledger.AddExpense(ctx, u.ID, d(expenses), "seed", time.Time{})
		require.NoError(t, err)
	}
	return u.ID
}

func TestContribute_WorkedExample(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a := f.user(t, "A", "500", "100")
	f.user(t, "B", "300", "50")

	net, err := f.ledger.NetWorth(ctx, a)
	require.NoError(t, err)
	assert.True(t, net.Equal(d("400")))

	challenge := &models.Challenge{Name: "C", Target: d("1000"), OwnerID: a, EndDate: time.Now().AddDate(0, 1, 0)}
	require.NoError(t, f.store.CreateChallenge(ctx, challenge))

	rec, err := f.engine.Contribute(ctx, a, challenge.ID, models.TargetChallenge, d("150"))
	require.NoError(t, err)
	assert.Equal(t, models.ChallengeContributionCategory, rec.Category)

	got, err := f.store.GetChallenge(ctx, challenge.ID)
	require.NoError(t, err)
	assert.True(t, got.CurrentAmount.Equal(d("150")), "challenge amount %s", got.CurrentAmount)

	stats, err := f.ledger.Stats(ctx, a)
	require.NoError(t, err)
	assert.True(t, stats.TotalExpenses.Equal(d("250")), "expenses %s", stats.TotalExpenses)
	// 500 saved minus 250 spent.
	assert.True(t, stats.NetWorth.Equal(d("250")), "net worth %s", stats.NetWorth)

	_, err = f.engine.Contribute(ctx, a, challenge.ID, models.TargetChallenge, d("300"))
	assert.ErrorIs(t, err, models.ErrInsufficientFunds)

	got, err = f.store.GetChallenge(ctx, challenge.ID)
	require.NoError(t, err)
	assert.True(t, got.CurrentAmount.Equal(d("150")))
}

func TestContribute_Preconditions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	owner := f.user(t, "Owner", "100", "0")
	outsider := f.user(t, "Outsider", "100", "0")
	group := &models.Group{Name: "G", Goal: d("500"), OwnerID: owner}
	require.NoError(t, f.store.CreateGroup(ctx, group))

	tests := []struct {
		name    string
		user    string
		target  string
		kind    models.TargetKind
		amount  string
		wantErr error
	}{
		{"zero amount", owner, group.ID, models.TargetGroup, "0", models.ErrValidation},
		{"negative amount", owner, group.ID, models.TargetGroup, "-5", models.ErrValidation},
		{"unknown kind", owner, group.ID, "pot", "5", models.ErrValidation},
		{"missing target", owner, "nope", models.TargetGroup, "5", models.ErrNotFound},
		{"wrong kind for target", owner, group.ID, models.TargetChallenge, "5", models.ErrNotFound},
		{"not a member", outsider, group.ID, models.TargetGroup, "5", models.ErrNotMember},
		{"more than net worth", owner, group.ID, models.TargetGroup, "100.01", models.ErrInsufficientFunds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.engine.Contribute(ctx, tt.user, tt.target, tt.kind, d(tt.amount))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	// None of the failures above may have changed anything.
	got, err := f.store.GetGroup(ctx, group.ID)
	require.NoError(t, err)
	assert.True(t, got.CurrentSavings.IsZero())
	for _, u := range []string{owner, outsider} {
		stats, err := f.ledger.Stats(ctx, u)
		require.NoError(t, err)
		assert.True(t, stats.TotalExpenses.IsZero())
		assert.Zero(t, stats.ExpensesCount)
	}

	// Exactly the whole balance is affordable.
	_, err = f.engine.Contribute(ctx, owner, group.ID, models.TargetGroup, d("100"))
	require.NoError(t, err)
	net, err := f.ledger.NetWorth(ctx, owner)
	require.NoError(t, err)
	assert.True(t, net.IsZero())
}

func TestContribute_ConcurrentSameUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user := f.user(t, "Racer", "100", "0")
	challenge := &models.Challenge{Name: "Race", Target: d("1000"), OwnerID: user, EndDate: time.Now().AddDate(0, 1, 0)}
	require.NoError(t, f.store.CreateChallenge(ctx, challenge))

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.engine.Contribute(ctx, user, challenge.ID, models.TargetChallenge, d("70"))
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
			continue
		}
		assert.True(t, isRejection(err), "unexpected error %v", err)
	}
	assert.Equal(t, 1, successes)

	got, err := f.store.GetChallenge(ctx, challenge.ID)
	require.NoError(t, err)
	assert.True(t, got.CurrentAmount.Equal(d("70")))

	net, err := f.ledger.NetWorth(ctx, user)
	require.NoError(t, err)
	assert.True(t, net.Equal(d("30")))
}

func isRejection(err error) bool {
	return errors.Is(err, models.ErrInsufficientFunds) || errors.Is(err, models.ErrConflict)
}

// conflictingStore fails the first Contribute call with ErrConflict.
type conflictingStore struct {
	storage.Store
	calls int
}

func (s *conflictingStore) Contribute(ctx context.Context, c models.Contribution) (*models.ExpenseRecord, error) {
	s.calls++
	if s.calls == 1 {
		return nil, models.ErrConflict
	}
	return &models.ExpenseRecord{ID: "rec", UserID: c.UserID, Amount: c.Amount, TargetID: c.TargetID, TargetKind: c.TargetKind}, nil
}

func TestContribute_RetriesConflictOnce(t *testing.T) {
	store := &conflictingStore{}
	engine := NewEngine(store)

	rec, err := engine.Contribute(context.Background(), "u", "g", models.TargetGroup, d("1"))
	require.NoError(t, err)
	assert.Equal(t, "rec", rec.ID)
	assert.Equal(t, 2, store.calls)
}

// alwaysConflictingStore never succeeds.
type alwaysConflictingStore struct {
	storage.Store
	calls int
}

func (s *alwaysConflictingStore) Contribute(context.Context, models.Contribution) (*models.ExpenseRecord, error) {
	s.calls++
	return nil, models.ErrConflict
}

func TestContribute_SurfacesPersistentConflict(t *testing.T) {
	store := &alwaysConflictingStore{}
	engine := NewEngine(store)

	_, err := engine.Contribute(context.Background(), "u", "g", models.TargetGroup, d("1"))
	assert.ErrorIs(t, err, models.ErrConflict)
	assert.Equal(t, 2, store.calls)
}
