package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/mmynk/pennypool/internal/models"
)

// CreateSaving persists a new saving record and reconciles the owner's totals.
func (s *SQLiteStore) CreateSaving(ctx context.Context, rec *models.SavingRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.Date.IsZero() {
		rec.Date = s.today()
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		if err := requireUser(ctx, tx, rec.UserID); err != nil {
			return err
		}

		_, err := tx.ExecContext(ctx,
			"INSERT INTO savings (id, user_id, amount, purpose, date, created_at) VALUES (?, ?, ?, ?, ?, ?)",
			rec.ID, rec.UserID, models.ToCents(rec.Amount), rec.Purpose, models.FormatDate(rec.Date), s.now().Unix(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert saving: %w", err)
		}

		return reconcileUser(ctx, tx, rec.UserID)
	})
}

// CreateExpense persists a new plain expense record and reconciles the owner's totals.
func (s *SQLiteStore) CreateExpense(ctx context.Context, rec *models.ExpenseRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.Date.IsZero() {
		rec.Date = s.today()
	}
	// Contribution expenses are only written by Contribute.
	rec.TargetKind = ""
	rec.TargetID = ""

	return s.withTx(ctx, func(tx *sql.Tx) error {
		if err := requireUser(ctx, tx, rec.UserID); err != nil {
			return err
		}
		if err := insertExpense(ctx, tx, rec, s.now().Unix()); err != nil {
			return err
		}
		return reconcileUser(ctx, tx, rec.UserID)
	})
}

func insertExpense(ctx context.Context, tx *sql.Tx, rec *models.ExpenseRecord, createdAt int64) error {
	var targetKind, targetID any
	if rec.TargetID != "" {
		targetKind = string(rec.TargetKind)
		targetID = rec.TargetID
	}

	_, err := tx.ExecContext(ctx,
		`INSERT INTO expenses (id, user_id, amount, category, date, target_kind, target_id, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.UserID, models.ToCents(rec.Amount), rec.Category, models.FormatDate(rec.Date),
		targetKind, targetID, createdAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}
	return nil
}

// UpdateSaving edits a saving owned by rec.UserID. A zero Date keeps the stored date.
func (s *SQLiteStore) UpdateSaving(ctx context.Context, rec *models.SavingRecord) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		var date string
		err := tx.QueryRowContext(ctx,
			"SELECT date FROM savings WHERE id = ? AND user_id = ?", rec.ID, rec.UserID,
		).Scan(&date)
		if err == sql.ErrNoRows {
			return fmt.Errorf("%w: saving %s", models.ErrNotFound, rec.ID)
		}
		if err != nil {
			return fmt.Errorf("failed to get saving: %w", err)
		}
		if !rec.Date.IsZero() {
			date = models.FormatDate(rec.Date)
		}

		_, err = tx.ExecContext(ctx,
			"UPDATE savings SET amount = ?, purpose = ?, date = ? WHERE id = ? AND user_id = ?",
			models.ToCents(rec.Amount), rec.Purpose, date, rec.ID, rec.UserID,
		)
		if err != nil {
			return fmt.Errorf("failed to update saving: %w", err)
		}
		if rec.Date, err = parseDate(date); err != nil {
			return err
		}

		return reconcileUser(ctx, tx, rec.UserID)
	})
}

// UpdateExpense edits a plain expense owned by rec.UserID. A zero Date keeps the stored date.
func (s *SQLiteStore) UpdateExpense(ctx context.Context, rec *models.ExpenseRecord) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		var date string
		var targetID sql.NullString
		err := tx.QueryRowContext(ctx,
			"SELECT date, target_id FROM expenses WHERE id = ? AND user_id = ?", rec.ID, rec.UserID,
		).Scan(&date, &targetID)
		if err == sql.ErrNoRows {
			return fmt.Errorf("%w: expense %s", models.ErrNotFound, rec.ID)
		}
		if err != nil {
			return fmt.Errorf("failed to get expense: %w", err)
		}
		if targetID.Valid {
			return fmt.Errorf("%w: contribution %s cannot be edited", models.ErrValidation, rec.ID)
		}
		if !rec.Date.IsZero() {
			date = models.FormatDate(rec.Date)
		}

		_, err = tx.ExecContext(ctx,
			"UPDATE expenses SET amount = ?, category = ?, date = ? WHERE id = ? AND user_id = ?",
			models.ToCents(rec.Amount), rec.Category, date, rec.ID, rec.UserID,
		)
		if err != nil {
			return fmt.Errorf("failed to update expense: %w", err)
		}
		if rec.Date, err = parseDate(date); err != nil {
			return err
		}

		return reconcileUser(ctx, tx, rec.UserID)
	})
}

// DeleteSaving removes a saving owned by userID.
func (s *SQLiteStore) DeleteSaving(ctx context.Context, userID, recordID string) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, "DELETE FROM savings WHERE id = ? AND user_id = ?", recordID, userID)
		if err != nil {
			return fmt.Errorf("failed to delete saving: %w", err)
		}
		if n, err := res.RowsAffected(); err != nil {
			return fmt.Errorf("failed to count deleted savings: %w", err)
		} else if n == 0 {
			return fmt.Errorf("%w: saving %s", models.ErrNotFound, recordID)
		}

		return reconcileUser(ctx, tx, userID)
	})
}

// DeleteExpense removes a plain expense owned by userID.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, userID, recordID string) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		var targetID sql.NullString
		err := tx.QueryRowContext(ctx,
			"SELECT target_id FROM expenses WHERE id = ? AND user_id = ?", recordID, userID,
		).Scan(&targetID)
		if err == sql.ErrNoRows {
			return fmt.Errorf("%w: expense %s", models.ErrNotFound, recordID)
		}
		if err != nil {
			return fmt.Errorf("failed to get expense: %w", err)
		}
		if targetID.Valid {
			return fmt.Errorf("%w: contribution %s cannot be deleted", models.ErrValidation, recordID)
		}

		if _, err := tx.ExecContext(ctx, "DELETE FROM expenses WHERE id = ? AND user_id = ?", recordID, userID); err != nil {
			return fmt.Errorf("failed to delete expense: %w", err)
		}

		return reconcileUser(ctx, tx, userID)
	})
}
