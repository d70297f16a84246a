package calculator

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/mmynk/pennypool/internal/models"
)

// MetricValue extracts the value a user is ranked by.
func MetricValue(metric models.Metric, t models.UserTotals) (decimal.Decimal, error) {
	switch metric {
	case models.MetricSavings:
		return t.TotalSavings, nil
	case models.MetricExpenses:
		return t.TotalExpenses, nil
	case models.MetricNetWorth:
		return t.TotalSavings.Sub(t.TotalExpenses), nil
	}
	return decimal.Zero, fmt.Errorf("%w: unknown metric %q", models.ErrValidation, metric)
}

// Rank orders every user by metric and assigns ranks.
//
// Algorithm:
//   - value per user from MetricValue
//   - sort by value descending, ties by user ID ascending, giving a total order
//   - rank is the 1-based position in that order
//
// Ranks are assigned over the whole population, so truncating the result with Top
// never changes a user's rank.
func Rank(metric models.Metric, totals []models.UserTotals) ([]models.LeaderboardEntry, error) {
	entries := make([]models.LeaderboardEntry, len(totals))
	for i, t := range totals {
		value, err := MetricValue(metric, t)
		if err != nil {
			return nil, err
		}
		entries[i] = models.LeaderboardEntry{
			UserID:      t.UserID,
			DisplayName: t.DisplayName,
			Value:       value,
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		if c := entries[i].Value.Cmp(entries[j].Value); c != 0 {
			return c > 0
		}
		return entries[i].UserID < entries[j].UserID
	})

	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries, nil
}

// Top truncates a ranked leaderboard. A limit of models.LimitAll keeps every entry.
func Top(entries []models.LeaderboardEntry, limit int) []models.LeaderboardEntry {
	if limit == models.LimitAll || limit >= len(entries) {
		return entries
	}
	return entries[:limit]
}

// Percentile returns the share of the other users that rank is ahead of.
// With a single user the percentile is 100.
func Percentile(rank, totalUsers int) float64 {
	if totalUsers <= 1 {
		return 100
	}
	return float64(totalUsers-rank) / float64(totalUsers-1) * 100
}

// PlacementOf finds userID in a ranked leaderboard.
// A user that does not appear yields a Placement with Ranked false.
func PlacementOf(entries []models.LeaderboardEntry, userID string) models.Placement {
	p := models.Placement{TotalUsers: len(entries)}
	for _, e := range entries {
		if e.UserID == userID {
			p.Ranked = true
			p.Rank = e.Rank
			p.Percentile = Percentile(e.Rank, p.TotalUsers)
			break
		}
	}
	return p
}
