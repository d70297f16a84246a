package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordKind distinguishes the two ledger record types.
type RecordKind string

const (
	KindSaving  RecordKind = "saving"
	KindExpense RecordKind = "expense"
)

// Valid reports whether k is a known record kind.
func (k RecordKind) Valid() bool {
	return k == KindSaving || k == KindExpense
}

// SavingRecord is money a user put aside.
type SavingRecord struct {
	ID      string
	UserID  string
	Amount  decimal.Decimal
	Purpose string
	Date    time.Time
}

// ExpenseRecord is money a user spent, or moved into a group or challenge.
type ExpenseRecord struct {
	ID       string
	UserID   string
	Amount   decimal.Decimal
	Category string
	Date     time.Time

	// TargetKind and TargetID are set only on contribution expenses.
	TargetKind TargetKind
	TargetID   string
}

// IsContribution reports whether the expense records a transfer into a target.
func (e *ExpenseRecord) IsContribution() bool {
	return e.TargetID != ""
}

// LedgerEntry is one row of a combined savings/expenses listing.
type LedgerEntry struct {
	ID     string
	Kind   RecordKind
	Amount decimal.Decimal
	// Label is the purpose of a saving or the category of an expense.
	Label        string
	Date         time.Time
	Contribution bool
}

// SortKey selects the ordering column of a ledger listing.
type SortKey string

const (
	SortByDate   SortKey = "date"
	SortByAmount SortKey = "amount"
)

// SortOrder is the direction of a ledger listing.
type SortOrder string

const (
	Ascending  SortOrder = "asc"
	Descending SortOrder = "desc"
)

// LedgerFilter selects which record kinds a listing includes.
type LedgerFilter string

const (
	FilterSavings  LedgerFilter = "savings"
	FilterExpenses LedgerFilter = "expenses"
	FilterBoth     LedgerFilter = "both"
)

// ListQuery describes a ledger listing request.
type ListQuery struct {
	UserID string
	SortBy SortKey
	Order  SortOrder
	Filter LedgerFilter
}

// Aggregate summarizes one kind of record for one user.
// Min and Max are invalid when Count is zero.
type Aggregate struct {
	Sum   decimal.Decimal
	Min   decimal.NullDecimal
	Max   decimal.NullDecimal
	Count int
}

// Aggregates holds the savings and expense summaries of one user.
type Aggregates struct {
	Savings  Aggregate
	Expenses Aggregate
}

// Stats is the dashboard summary of a user's ledger.
type Stats struct {
	TotalSavings   decimal.Decimal
	TotalExpenses  decimal.Decimal
	NetWorth       decimal.Decimal
	HighestSaving  decimal.NullDecimal
	LowestSaving   decimal.NullDecimal
	HighestExpense decimal.NullDecimal
	LowestExpense  decimal.NullDecimal
	SavingsCount   int
	ExpensesCount  int
}

// TimeSeriesPoint holds the totals recorded on one calendar date.
type TimeSeriesPoint struct {
	Date     time.Time
	Savings  decimal.Decimal
	Expenses decimal.Decimal
}
