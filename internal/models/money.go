package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// CentsExponent is the number of fractional digits an amount may carry.
const CentsExponent = 2

// maxAmount bounds single amounts so that sums of cents stay well inside int64.
var maxAmount = decimal.New(1, 12)

// DateLayout is the calendar date format used for records and challenges.
const DateLayout = "2006-01-02"

// ValidateAmount checks that amount is strictly positive with at most two fractional digits.
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive, got %s", ErrValidation, amount)
	}
	if amount.GreaterThan(maxAmount) {
		return fmt.Errorf("%w: amount %s exceeds %s", ErrValidation, amount, maxAmount)
	}
	if !amount.Equal(amount.Round(CentsExponent)) {
		return fmt.Errorf("%w: amount %s has more than %d decimal places", ErrValidation, amount, CentsExponent)
	}
	return nil
}

// ParseAmount parses a decimal string and validates it with ValidateAmount.
func ParseAmount(s string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: malformed amount %q", ErrValidation, s)
	}
	if err := ValidateAmount(amount); err != nil {
		return decimal.Zero, err
	}
	return amount, nil
}

// ToCents converts an amount to integer minor units.
// The amount must already be rounded to CentsExponent digits.
func ToCents(amount decimal.Decimal) int64 {
	return amount.Shift(CentsExponent).IntPart()
}

// FromCents converts integer minor units back to a decimal amount.
func FromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -CentsExponent)
}

// ParseDate parses a YYYY-MM-DD calendar date. The empty string yields the zero time.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: malformed date %q", ErrValidation, s)
	}
	return d, nil
}

// Day truncates t to its calendar date at UTC midnight.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FormatDate renders a calendar date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
