// Package calculator holds the pure arithmetic of the ledger: net worth and rankings.
// Nothing here touches storage.
package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/pennypool/internal/models"
)

// NetWorth returns total savings minus total expenses. Absent sums count as zero,
// which the zero value of decimal.Decimal already provides.
func NetWorth(agg models.Aggregates) decimal.Decimal {
	return agg.Savings.Sum.Sub(agg.Expenses.Sum)
}

// AvailableBalance is the amount a user may contribute.
// There is no escrow, so it equals NetWorth.
func AvailableBalance(agg models.Aggregates) decimal.Decimal {
	return NetWorth(agg)
}

// CanAfford reports whether amount fits in the available balance.
func CanAfford(agg models.Aggregates, amount decimal.Decimal) bool {
	return AvailableBalance(agg).GreaterThanOrEqual(amount)
}

// Stats builds the dashboard summary from a user's aggregates.
func Stats(agg models.Aggregates) models.Stats {
	return models.Stats{
		TotalSavings:   agg.Savings.Sum,
		TotalExpenses:  agg.Expenses.Sum,
		NetWorth:       NetWorth(agg),
		HighestSaving:  agg.Savings.Max,
		LowestSaving:   agg.Savings.Min,
		HighestExpense: agg.Expenses.Max,
		LowestExpense:  agg.Expenses.Min,
		SavingsCount:   agg.Savings.Count,
		ExpensesCount:  agg.Expenses.Count,
	}
}
