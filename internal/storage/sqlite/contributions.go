package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/mmynk/pennypool/internal/models"
)

// Contribute moves c.Amount from the user's net worth into a group or challenge.
//
// The check and the three effects (target amount, contribution expense, reconciled
// totals) share one BEGIN IMMEDIATE transaction: the write lock is held before the
// balance is read, so two contributions from the same user cannot both pass the
// affordability check against the same pre-transfer balance.
func (s *SQLiteStore) Contribute(ctx context.Context, c models.Contribution) (*models.ExpenseRecord, error) {
	t, err := tablesFor(c.TargetKind)
	if err != nil {
		return nil, err
	}
	cents := models.ToCents(c.Amount)

	rec := &models.ExpenseRecord{
		ID:         uuid.New().String(),
		UserID:     c.UserID,
		Amount:     c.Amount,
		Category:   c.TargetKind.ContributionCategory(),
		Date:       s.today(),
		TargetKind: c.TargetKind,
		TargetID:   c.TargetID,
	}

	err = s.withTx(ctx, func(tx *sql.Tx) error {
		if err := requireTarget(ctx, tx, t, c.TargetID); err != nil {
			return err
		}

		var savings, expenses int64
		err := tx.QueryRowContext(ctx,
			"SELECT total_savings, total_expenses FROM users WHERE id = ?", c.UserID,
		).Scan(&savings, &expenses)
		if err == sql.ErrNoRows {
			return fmt.Errorf("%w: user %s", models.ErrNotFound, c.UserID)
		}
		if err != nil {
			return fmt.Errorf("failed to read user totals: %w", err)
		}

		member, err := isMember(ctx, tx, t, c.TargetID, c.UserID)
		if err != nil {
			return err
		}
		if !member {
			return fmt.Errorf("%w: user %s, %s %s", models.ErrNotMember, c.UserID, c.TargetKind, c.TargetID)
		}

		if available := savings - expenses; available < cents {
			return fmt.Errorf("%w: available %s, requested %s",
				models.ErrInsufficientFunds, models.FromCents(available), c.Amount)
		}

		_, err = tx.ExecContext(ctx,
			"UPDATE "+t.table+" SET "+t.amountColumn+" = "+t.amountColumn+" + ? WHERE id = ?",
			cents, c.TargetID,
		)
		if err != nil {
			return fmt.Errorf("failed to credit %s: %w", t.table, err)
		}

		if err := insertExpense(ctx, tx, rec, s.now().Unix()); err != nil {
			return err
		}

		return reconcileUser(ctx, tx, c.UserID)
	})
	if err != nil {
		return nil, err
	}

	return rec, nil
}
