package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/mmynk/pennypool/internal/models"
)

// CreateUser inserts a new user into the database.
// Totals start at zero; they are only ever changed by reconcileUser.
func (s *SQLiteStore) CreateUser(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.CreatedAt == 0 {
		user.CreatedAt = s.now().Unix()
	}

	var email any
	if user.Email != "" {
		email = user.Email
	}

	query := `
		INSERT INTO users (id, display_name, email, total_savings, total_expenses, created_at)
		VALUES (?, ?, ?, 0, 0, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		user.ID,
		user.DisplayName,
		email,
		user.CreatedAt,
	)
	if err != nil {
		return classify(fmt.Errorf("failed to create user: %w", err))
	}

	user.TotalSavings = models.FromCents(0)
	user.TotalExpenses = models.FromCents(0)
	return nil
}

// GetUser retrieves a user by their ID.
func (s *SQLiteStore) GetUser(ctx context.Context, userID string) (*models.User, error) {
	query := `
		SELECT id, display_name, email, total_savings, total_expenses, created_at
		FROM users
		WHERE id = ?
	`

	user := &models.User{}
	var email sql.NullString
	var savings, expenses int64
	err := s.db.QueryRowContext(ctx, query, userID).Scan(
		&user.ID,
		&user.DisplayName,
		&email,
		&savings,
		&expenses,
		&user.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: user %s", models.ErrNotFound, userID)
	}
	if err != nil {
		return nil, classify(fmt.Errorf("failed to get user: %w", err))
	}

	if email.Valid {
		user.Email = email.String
	}
	user.TotalSavings = models.FromCents(savings)
	user.TotalExpenses = models.FromCents(expenses)
	return user, nil
}

// ListUserTotals returns every user's cached totals ordered by ID.
func (s *SQLiteStore) ListUserTotals(ctx context.Context) ([]models.UserTotals, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, display_name, total_savings, total_expenses FROM users ORDER BY id",
	)
	if err != nil {
		return nil, classify(fmt.Errorf("failed to list users: %w", err))
	}
	defer rows.Close()

	var totals []models.UserTotals
	for rows.Next() {
		var t models.UserTotals
		var savings, expenses int64
		if err := rows.Scan(&t.UserID, &t.DisplayName, &savings, &expenses); err != nil {
			return nil, fmt.Errorf("failed to scan user totals: %w", err)
		}
		t.TotalSavings = models.FromCents(savings)
		t.TotalExpenses = models.FromCents(expenses)
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(fmt.Errorf("failed to iterate users: %w", err))
	}

	return totals, nil
}

// reconcileSet recomputes the cached totals from the ledger records.
const reconcileSet = `
	UPDATE users SET
		total_savings = (SELECT COALESCE(SUM(amount), 0) FROM savings WHERE savings.user_id = users.id),
		total_expenses = (SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE expenses.user_id = users.id)
`

// reconcileUser is the only write path of users.total_savings and users.total_expenses.
// It must run inside the transaction of the ledger mutation it follows.
func reconcileUser(ctx context.Context, tx *sql.Tx, userID string) error {
	if _, err := tx.ExecContext(ctx, reconcileSet+" WHERE id = ?", userID); err != nil {
		return fmt.Errorf("failed to reconcile user totals: %w", err)
	}
	return nil
}

// Reconcile repairs the cached totals of every user.
func (s *SQLiteStore) Reconcile(ctx context.Context) (int, error) {
	var stale int
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, `
			SELECT COUNT(*) FROM users
			WHERE total_savings != (SELECT COALESCE(SUM(amount), 0) FROM savings WHERE savings.user_id = users.id)
			   OR total_expenses != (SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE expenses.user_id = users.id)
		`).Scan(&stale)
		if err != nil {
			return fmt.Errorf("failed to count stale users: %w", err)
		}
		if stale == 0 {
			return nil
		}
		if _, err := tx.ExecContext(ctx, reconcileSet); err != nil {
			return fmt.Errorf("failed to reconcile users: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return stale, nil
}
