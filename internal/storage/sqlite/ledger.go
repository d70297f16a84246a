package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mmynk/pennypool/internal/models"
)

const (
	selectSavingEntries  = "SELECT id, 'saving' AS kind, amount, purpose AS label, date, 0 AS contribution FROM savings WHERE user_id = ?"
	selectExpenseEntries = "SELECT id, 'expense' AS kind, amount, category AS label, date, target_id IS NOT NULL AS contribution FROM expenses WHERE user_id = ?"
)

// orderClause builds the ORDER BY clause from validated enums only.
func orderClause(sortBy models.SortKey, order models.SortOrder) (string, error) {
	var column string
	switch sortBy {
	case models.SortByDate, "":
		column = "date"
	case models.SortByAmount:
		column = "amount"
	default:
		return "", fmt.Errorf("%w: unknown sort key %q", models.ErrValidation, sortBy)
	}

	var direction string
	switch order {
	case models.Ascending, "":
		direction = "ASC"
	case models.Descending:
		direction = "DESC"
	default:
		return "", fmt.Errorf("%w: unknown sort order %q", models.ErrValidation, order)
	}

	// id breaks ties so listings are deterministic.
	return fmt.Sprintf(" ORDER BY %s %s, id ASC", column, direction), nil
}

// ListLedger returns the user's savings, expenses, or both, in the requested order.
func (s *SQLiteStore) ListLedger(ctx context.Context, q models.ListQuery) ([]models.LedgerEntry, error) {
	orderBy, err := orderClause(q.SortBy, q.Order)
	if err != nil {
		return nil, err
	}

	var query string
	var args []any
	switch q.Filter {
	case models.FilterSavings:
		query, args = selectSavingEntries, []any{q.UserID}
	case models.FilterExpenses:
		query, args = selectExpenseEntries, []any{q.UserID}
	case models.FilterBoth, "":
		query, args = selectSavingEntries+" UNION ALL "+selectExpenseEntries, []any{q.UserID, q.UserID}
	default:
		return nil, fmt.Errorf("%w: unknown filter %q", models.ErrValidation, q.Filter)
	}

	if err := requireUser(ctx, s.db, q.UserID); err != nil {
		return nil, classify(err)
	}

	rows, err := s.db.QueryContext(ctx, query+orderBy, args...)
	if err != nil {
		return nil, classify(fmt.Errorf("failed to list ledger: %w", err))
	}
	defer rows.Close()

	var entries []models.LedgerEntry
	for rows.Next() {
		var e models.LedgerEntry
		var kind, date string
		var cents int64
		if err := rows.Scan(&e.ID, &kind, &cents, &e.Label, &date, &e.Contribution); err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry: %w", err)
		}
		e.Kind = models.RecordKind(kind)
		e.Amount = models.FromCents(cents)
		if e.Date, err = parseDate(date); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(fmt.Errorf("failed to iterate ledger: %w", err))
	}

	return entries, nil
}

// GetAggregates summarizes the user's records. Sums come from the reconciled totals.
// A single statement reads one snapshot, so sums, extremes and counts always agree.
func (s *SQLiteStore) GetAggregates(ctx context.Context, userID string) (*models.Aggregates, error) {
	var savingsSum, expensesSum int64
	var minSaving, maxSaving, minExpense, maxExpense sql.NullInt64
	agg := &models.Aggregates{}

	err := s.db.QueryRowContext(ctx, `
		SELECT u.total_savings, u.total_expenses,
		       (SELECT MIN(amount) FROM savings WHERE user_id = u.id),
		       (SELECT MAX(amount) FROM savings WHERE user_id = u.id),
		       (SELECT COUNT(*) FROM savings WHERE user_id = u.id),
		       (SELECT MIN(amount) FROM expenses WHERE user_id = u.id),
		       (SELECT MAX(amount) FROM expenses WHERE user_id = u.id),
		       (SELECT COUNT(*) FROM expenses WHERE user_id = u.id)
		FROM users u WHERE u.id = ?
	`, userID).Scan(
		&savingsSum, &expensesSum,
		&minSaving, &maxSaving, &agg.Savings.Count,
		&minExpense, &maxExpense, &agg.Expenses.Count,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: user %s", models.ErrNotFound, userID)
	}
	if err != nil {
		return nil, classify(fmt.Errorf("failed to aggregate records: %w", err))
	}

	agg.Savings.Sum = models.FromCents(savingsSum)
	agg.Savings.Min = nullCents(minSaving)
	agg.Savings.Max = nullCents(maxSaving)
	agg.Expenses.Sum = models.FromCents(expensesSum)
	agg.Expenses.Min = nullCents(minExpense)
	agg.Expenses.Max = nullCents(maxExpense)
	return agg, nil
}

func nullCents(n sql.NullInt64) decimal.NullDecimal {
	if !n.Valid {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(models.FromCents(n.Int64))
}

// GetTimeSeries returns one point per date on which the user saved or spent,
// with the missing side zero-filled.
func (s *SQLiteStore) GetTimeSeries(ctx context.Context, userID string) ([]models.TimeSeriesPoint, error) {
	if err := requireUser(ctx, s.db, userID); err != nil {
		return nil, classify(err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT date, SUM(saved), SUM(spent) FROM (
			SELECT date, amount AS saved, 0 AS spent FROM savings WHERE user_id = ?
			UNION ALL
			SELECT date, 0 AS saved, amount AS spent FROM expenses WHERE user_id = ?
		)
		GROUP BY date
		ORDER BY date
	`, userID, userID)
	if err != nil {
		return nil, classify(fmt.Errorf("failed to query time series: %w", err))
	}
	defer rows.Close()

	var points []models.TimeSeriesPoint
	for rows.Next() {
		var date string
		var saved, spent int64
		if err := rows.Scan(&date, &saved, &spent); err != nil {
			return nil, fmt.Errorf("failed to scan time series point: %w", err)
		}
		d, err := parseDate(date)
		if err != nil {
			return nil, err
		}
		points = append(points, models.TimeSeriesPoint{
			Date:     d,
			Savings:  models.FromCents(saved),
			Expenses: models.FromCents(spent),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, classify(fmt.Errorf("failed to iterate time series: %w", err))
	}

	return points, nil
}
