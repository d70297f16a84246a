package models

import "github.com/shopspring/decimal"

// Metric selects the per-user value a leaderboard ranks by.
type Metric string

const (
	MetricSavings  Metric = "savings"
	MetricExpenses Metric = "expenses"
	MetricNetWorth Metric = "net_worth"
)

// Valid reports whether m is a known metric.
func (m Metric) Valid() bool {
	switch m {
	case MetricSavings, MetricExpenses, MetricNetWorth:
		return true
	}
	return false
}

// Supported leaderboard sizes. LimitAll returns every user.
const (
	LimitAll    = 0
	LimitTop10  = 10
	LimitTop50  = 50
	LimitTop100 = 100
)

// ValidLimit reports whether limit is one of the supported leaderboard sizes.
func ValidLimit(limit int) bool {
	switch limit {
	case LimitAll, LimitTop10, LimitTop50, LimitTop100:
		return true
	}
	return false
}

// UserTotals is the per-user input of a ranking.
type UserTotals struct {
	UserID        string
	DisplayName   string
	TotalSavings  decimal.Decimal
	TotalExpenses decimal.Decimal
}

// LeaderboardEntry is one ranked row.
type LeaderboardEntry struct {
	// Rank is the 1-based position in the full ordering, independent of any limit.
	Rank        int
	UserID      string
	DisplayName string
	Value       decimal.Decimal
}

// Placement locates one user within a leaderboard.
// Ranked is false when the user does not appear; Rank and Percentile are then meaningless.
type Placement struct {
	Ranked     bool
	Rank       int
	TotalUsers int
	Percentile float64
}
