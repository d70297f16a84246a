// Package transfer moves money from a user's available balance into a group or
// challenge.
package transfer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/pennypool/internal/metrics"
	"github.com/mmynk/pennypool/internal/models"
	"github.com/mmynk/pennypool/internal/storage"
)

// Engine performs contributions. It holds no state of its own: membership, the
// affordability check and all three effects are evaluated by the store inside a single
// transaction at commit time.
type Engine struct {
	store storage.Store
}

// NewEngine creates a transfer Engine.
func NewEngine(store storage.Store) *Engine {
	return &Engine{store: store}
}

// Contribute moves amount from userID's net worth into the target.
//
// On success the target's collected amount and the user's total expenses both grow by
// exactly amount, and the returned expense is tagged with the contribution category.
// On failure nothing changes. Failures are ErrValidation, ErrNotFound, ErrNotMember,
// ErrInsufficientFunds, ErrConflict (after one internal retry) or ErrStoreUnavailable.
func (e *Engine) Contribute(ctx context.Context, userID, targetID string, kind models.TargetKind, amount decimal.Decimal) (*models.ExpenseRecord, error) {
	c := models.Contribution{UserID: userID, TargetKind: kind, TargetID: targetID, Amount: amount}
	if err := validate(c); err != nil {
		metrics.ObserveContribution(kind, err)
		return nil, err
	}

	var rec *models.ExpenseRecord
	err := storage.RetryOnConflict(ctx, "Contribute", func() error {
		var err error
		rec, err = e.store.Contribute(ctx, c)
		return err
	})
	metrics.ObserveContribution(kind, err)
	if err != nil {
		slog.Debug("Contribution rejected",
			"user_id", userID,
			"target_kind", kind,
			"target_id", targetID,
			"amount", amount.String(),
			"error", err,
		)
		return nil, err
	}

	slog.Debug("Contribution committed",
		"user_id", userID,
		"target_kind", kind,
		"target_id", targetID,
		"amount", amount.String(),
		"expense_id", rec.ID,
	)
	return rec, nil
}

func validate(c models.Contribution) error {
	if !c.TargetKind.Valid() {
		return fmt.Errorf("%w: unknown target kind %q", models.ErrValidation, c.TargetKind)
	}
	if strings.TrimSpace(c.UserID) == "" || strings.TrimSpace(c.TargetID) == "" {
		return fmt.Errorf("%w: user id and target id required", models.ErrValidation)
	}
	return models.ValidateAmount(c.Amount)
}
