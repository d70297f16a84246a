// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mmynk/pennypool/internal/models"
)

// Store defines the interface for ledger, target and membership persistence.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
//
// Every mutating method runs as one isolated transaction and either applies all of its
// effects or none. Failures are reported with the sentinel errors of the models package.
type Store interface {
	// CreateUser persists a new user. The ID and CreatedAt fields are populated if unset.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUser retrieves a user by ID, including the cached totals.
	GetUser(ctx context.Context, userID string) (*models.User, error)

	// ListUserTotals returns the cached totals of every user ordered by user ID.
	// It runs outside a transaction and may observe slightly stale data.
	ListUserTotals(ctx context.Context) ([]models.UserTotals, error)

	// Reconcile recomputes the cached totals of every user from the ledger records
	// and returns how many users were out of date.
	Reconcile(ctx context.Context) (int, error)

	// CreateSaving appends a saving record. ID and Date are populated if unset.
	CreateSaving(ctx context.Context, rec *models.SavingRecord) error

	// CreateExpense appends a plain expense record. ID and Date are populated if unset.
	CreateExpense(ctx context.Context, rec *models.ExpenseRecord) error

	// UpdateSaving changes the amount, purpose and date of a saving owned by rec.UserID.
	UpdateSaving(ctx context.Context, rec *models.SavingRecord) error

	// UpdateExpense changes the amount, category and date of an expense owned by rec.UserID.
	// Contribution expenses cannot be updated.
	UpdateExpense(ctx context.Context, rec *models.ExpenseRecord) error

	// DeleteSaving removes a saving owned by userID.
	DeleteSaving(ctx context.Context, userID, recordID string) error

	// DeleteExpense removes a plain expense owned by userID.
	DeleteExpense(ctx context.Context, userID, recordID string) error

	// ListLedger returns the user's records in the requested order.
	ListLedger(ctx context.Context, q models.ListQuery) ([]models.LedgerEntry, error)

	// GetAggregates returns sum, min, max and count of the user's savings and expenses.
	GetAggregates(ctx context.Context, userID string) (*models.Aggregates, error)

	// GetTimeSeries returns per-date totals over the union of saving and expense dates.
	GetTimeSeries(ctx context.Context, userID string) ([]models.TimeSeriesPoint, error)

	// CreateGroup persists a group together with the owner's membership.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group by ID.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)

	// UpdateGroup changes name, description and goal. Only the owner may do so.
	UpdateGroup(ctx context.Context, callerID string, group *models.Group) error

	// DeleteGroup removes a group and its memberships. Only the owner may do so.
	DeleteGroup(ctx context.Context, callerID, groupID string) error

	// CreateChallenge persists a challenge together with the owner's membership.
	CreateChallenge(ctx context.Context, challenge *models.Challenge) error

	// GetChallenge retrieves a challenge by ID.
	GetChallenge(ctx context.Context, challengeID string) (*models.Challenge, error)

	// UpdateChallenge changes name, description, end date and target. Owner only.
	UpdateChallenge(ctx context.Context, callerID string, challenge *models.Challenge) error

	// DeleteChallenge removes a challenge and its memberships. Owner only.
	DeleteChallenge(ctx context.Context, callerID, challengeID string) error

	// AddMember joins userID to a target. It reports false if the user was already a member.
	AddMember(ctx context.Context, kind models.TargetKind, targetID, userID string) (bool, error)

	// RemoveMember removes userID from a target. It reports false if the user was not a member.
	RemoveMember(ctx context.Context, kind models.TargetKind, targetID, userID string) (bool, error)

	// ListMembers returns the IDs of a target's members in ascending order.
	ListMembers(ctx context.Context, kind models.TargetKind, targetID string) ([]string, error)

	// ListTargets returns the targets of the given kind that userID has joined.
	ListTargets(ctx context.Context, userID string, kind models.TargetKind) ([]models.TargetRef, error)

	// Contribute checks membership and affordability and moves the amount into the target,
	// recording a contribution expense, all in one transaction.
	Contribute(ctx context.Context, c models.Contribution) (*models.ExpenseRecord, error)

	// Close releases any resources held by the store.
	Close() error
}

// RetryOnConflict runs op and, if it fails with models.ErrConflict, runs it once more.
// op must re-read everything it depends on.
func RetryOnConflict(ctx context.Context, name string, op func() error) error {
	err := op()
	if !errors.Is(err, models.ErrConflict) {
		return err
	}
	if ctx.Err() != nil {
		return err
	}
	slog.Warn("Retrying after conflict", "operation", name, "error", err)
	return op()
}
