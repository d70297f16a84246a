// Package ledger implements the per-user savings and expense ledger on top of a
// storage.Store: input validation, conflict retry and derived balances.
package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mmynk/pennypool/internal/calculator"
	"github.com/mmynk/pennypool/internal/metrics"
	"github.com/mmynk/pennypool/internal/models"
	"github.com/mmynk/pennypool/internal/storage"
)

// MaxLabelLength bounds purposes and categories, in runes.
const MaxLabelLength = 200

// Service provides business logic for ledger records.
type Service struct {
	store storage.Store
}

// NewService creates a ledger Service.
func NewService(store storage.Store) *Service {
	return &Service{store: store}
}

// AddSaving records a saving and returns its ID. A zero date means today.
func (s *Service) AddSaving(ctx context.Context, userID string, amount decimal.Decimal, purpose string, date time.Time) (string, error) {
	rec := &models.SavingRecord{UserID: userID, Amount: amount, Purpose: strings.TrimSpace(purpose), Date: date}
	err := validateRecord(userID, amount, rec.Purpose)
	if err == nil {
		err = storage.RetryOnConflict(ctx, "AddSaving", func() error {
			return s.store.CreateSaving(ctx, rec)
		})
	}
	metrics.ObserveLedgerMutation(models.KindSaving, "add", err)
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

// AddExpense records a plain expense and returns its ID. A zero date means today.
// Contribution categories are reserved for transfers.
func (s *Service) AddExpense(ctx context.Context, userID string, amount decimal.Decimal, category string, date time.Time) (string, error) {
	rec := &models.ExpenseRecord{UserID: userID, Amount: amount, Category: strings.TrimSpace(category), Date: date}
	err := validateExpense(userID, amount, rec.Category)
	if err == nil {
		err = storage.RetryOnConflict(ctx, "AddExpense", func() error {
			return s.store.CreateExpense(ctx, rec)
		})
	}
	metrics.ObserveLedgerMutation(models.KindExpense, "add", err)
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

// EditSaving changes a saving owned by userID. A zero date keeps the stored date.
func (s *Service) EditSaving(ctx context.Context, userID, recordID string, amount decimal.Decimal, purpose string, date time.Time) (bool, error) {
	rec := &models.SavingRecord{ID: recordID, UserID: userID, Amount: amount, Purpose: strings.TrimSpace(purpose), Date: date}
	err := validateRecordID(recordID)
	if err == nil {
		err = validateRecord(userID, amount, rec.Purpose)
	}
	if err == nil {
		err = storage.RetryOnConflict(ctx, "EditSaving", func() error {
			return s.store.UpdateSaving(ctx, rec)
		})
	}
	metrics.ObserveLedgerMutation(models.KindSaving, "edit", err)
	return err == nil, err
}

// EditExpense changes a plain expense owned by userID. A zero date keeps the stored date.
func (s *Service) EditExpense(ctx context.Context, userID, recordID string, amount decimal.Decimal, category string, date time.Time) (bool, error) {
	rec := &models.ExpenseRecord{ID: recordID, UserID: userID, Amount: amount, Category: strings.TrimSpace(category), Date: date}
	err := validateRecordID(recordID)
	if err == nil {
		err = validateExpense(userID, amount, rec.Category)
	}
	if err == nil {
		err = storage.RetryOnConflict(ctx, "EditExpense", func() error {
			return s.store.UpdateExpense(ctx, rec)
		})
	}
	metrics.ObserveLedgerMutation(models.KindExpense, "edit", err)
	return err == nil, err
}

// Edit dispatches to EditSaving or EditExpense.
func (s *Service) Edit(ctx context.Context, kind models.RecordKind, userID, recordID string, amount decimal.Decimal, label string, date time.Time) (bool, error) {
	switch kind {
	case models.KindSaving:
		return s.EditSaving(ctx, userID, recordID, amount, label, date)
	case models.KindExpense:
		return s.EditExpense(ctx, userID, recordID, amount, label, date)
	}
	return false, fmt.Errorf("%w: unknown record kind %q", models.ErrValidation, kind)
}

// DeleteSaving removes a saving owned by userID.
func (s *Service) DeleteSaving(ctx context.Context, userID, recordID string) (bool, error) {
	err := validateIDs(userID, recordID)
	if err == nil {
		err = storage.RetryOnConflict(ctx, "DeleteSaving", func() error {
			return s.store.DeleteSaving(ctx, userID, recordID)
		})
	}
	metrics.ObserveLedgerMutation(models.KindSaving, "delete", err)
	return err == nil, err
}

// DeleteExpense removes a plain expense owned by userID.
func (s *Service) DeleteExpense(ctx context.Context, userID, recordID string) (bool, error) {
	err := validateIDs(userID, recordID)
	if err == nil {
		err = storage.RetryOnConflict(ctx, "DeleteExpense", func() error {
			return s.store.DeleteExpense(ctx, userID, recordID)
		})
	}
	metrics.ObserveLedgerMutation(models.KindExpense, "delete", err)
	return err == nil, err
}

// Delete dispatches to DeleteSaving or DeleteExpense.
func (s *Service) Delete(ctx context.Context, kind models.RecordKind, userID, recordID string) (bool, error) {
	switch kind {
	case models.KindSaving:
		return s.DeleteSaving(ctx, userID, recordID)
	case models.KindExpense:
		return s.DeleteExpense(ctx, userID, recordID)
	}
	return false, fmt.Errorf("%w: unknown record kind %q", models.ErrValidation, kind)
}

// List returns the user's records ordered by sortBy and order. Empty fields take the
// defaults: by date, ascending, both kinds.
func (s *Service) List(ctx context.Context, q models.ListQuery) ([]models.LedgerEntry, error) {
	if err := validateUserID(q.UserID); err != nil {
		return nil, err
	}
	if q.SortBy == "" {
		q.SortBy = models.SortByDate
	}
	if q.Order == "" {
		q.Order = models.Ascending
	}
	if q.Filter == "" {
		q.Filter = models.FilterBoth
	}
	return s.store.ListLedger(ctx, q)
}

// Aggregates returns sum, min, max and count of the user's savings and expenses.
func (s *Service) Aggregates(ctx context.Context, userID string) (*models.Aggregates, error) {
	if err := validateUserID(userID); err != nil {
		return nil, err
	}
	return s.store.GetAggregates(ctx, userID)
}

// Stats returns the dashboard summary of the user's ledger.
func (s *Service) Stats(ctx context.Context, userID string) (models.Stats, error) {
	agg, err := s.Aggregates(ctx, userID)
	if err != nil {
		return models.Stats{}, err
	}
	return calculator.Stats(*agg), nil
}

// TimeSeries returns per-date totals over every date the user saved or spent.
func (s *Service) TimeSeries(ctx context.Context, userID string) ([]models.TimeSeriesPoint, error) {
	if err := validateUserID(userID); err != nil {
		return nil, err
	}
	return s.store.GetTimeSeries(ctx, userID)
}

// NetWorth returns the user's total savings minus total expenses.
func (s *Service) NetWorth(ctx context.Context, userID string) (decimal.Decimal, error) {
	agg, err := s.Aggregates(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}
	return calculator.NetWorth(*agg), nil
}

// AvailableBalance returns what the user can contribute, which equals NetWorth.
func (s *Service) AvailableBalance(ctx context.Context, userID string) (decimal.Decimal, error) {
	agg, err := s.Aggregates(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}
	return calculator.AvailableBalance(*agg), nil
}

func validateUserID(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("%w: user id required", models.ErrValidation)
	}
	return nil
}

func validateRecordID(recordID string) error {
	if _, err := uuid.Parse(recordID); err != nil {
		return fmt.Errorf("%w: malformed record id %q", models.ErrValidation, recordID)
	}
	return nil
}

func validateIDs(userID, recordID string) error {
	if err := validateUserID(userID); err != nil {
		return err
	}
	return validateRecordID(recordID)
}

func validateLabel(label string) error {
	if utf8.RuneCountInString(label) > MaxLabelLength {
		return fmt.Errorf("%w: label longer than %d characters", models.ErrValidation, MaxLabelLength)
	}
	return nil
}

func validateRecord(userID string, amount decimal.Decimal, label string) error {
	if err := validateUserID(userID); err != nil {
		return err
	}
	if err := models.ValidateAmount(amount); err != nil {
		return err
	}
	return validateLabel(label)
}

func validateExpense(userID string, amount decimal.Decimal, category string) error {
	if err := validateRecord(userID, amount, category); err != nil {
		return err
	}
	if models.IsReservedCategory(category) {
		return fmt.Errorf("%w: category %q is reserved for contributions", models.ErrValidation, category)
	}
	return nil
}
