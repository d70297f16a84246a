package models

import "github.com/shopspring/decimal"

// User represents a participant of the ledger.
//
// Authentication is not handled here: the ID is an opaque identifier that callers have
// already validated.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string

	// DisplayName is shown on leaderboards.
	DisplayName string

	// Email is optional contact information.
	Email string

	// TotalSavings mirrors the sum of the user's saving records.
	// It is maintained by the store's reconciliation path and never written directly.
	TotalSavings decimal.Decimal

	// TotalExpenses mirrors the sum of the user's expense records, contributions included.
	TotalExpenses decimal.Decimal

	// CreatedAt is the Unix timestamp when the user was created.
	CreatedAt int64
}

// NetWorth returns the cached savings minus the cached expenses.
func (u *User) NetWorth() decimal.Decimal {
	return u.TotalSavings.Sub(u.TotalExpenses)
}
