// Package ranking builds leaderboards over the whole user population.
package ranking

import (
	"context"
	"fmt"
	"strings"

	"github.com/mmynk/pennypool/internal/calculator"
	"github.com/mmynk/pennypool/internal/models"
	"github.com/mmynk/pennypool/internal/storage"
)

// Engine computes leaderboards and placements from the cached user totals.
// Reads run outside a transaction; results may be slightly stale.
type Engine struct {
	store storage.Store
}

// NewEngine creates a ranking Engine.
func NewEngine(store storage.Store) *Engine {
	return &Engine{store: store}
}

// Leaderboard ranks every user by metric and returns the first limit entries.
// limit is one of models.LimitTop10, LimitTop50, LimitTop100 or LimitAll.
func (e *Engine) Leaderboard(ctx context.Context, metric models.Metric, limit int) ([]models.LeaderboardEntry, error) {
	if !models.ValidLimit(limit) {
		return nil, fmt.Errorf("%w: unsupported leaderboard limit %d", models.ErrValidation, limit)
	}
	entries, err := e.rank(ctx, metric)
	if err != nil {
		return nil, err
	}
	return calculator.Top(entries, limit), nil
}

// Placement locates userID in the full leaderboard for metric.
// A user who does not appear yields Ranked false rather than an error.
func (e *Engine) Placement(ctx context.Context, userID string, metric models.Metric) (models.Placement, error) {
	if strings.TrimSpace(userID) == "" {
		return models.Placement{}, fmt.Errorf("%w: user id required", models.ErrValidation)
	}
	entries, err := e.rank(ctx, metric)
	if err != nil {
		return models.Placement{}, err
	}
	return calculator.PlacementOf(entries, userID), nil
}

func (e *Engine) rank(ctx context.Context, metric models.Metric) ([]models.LeaderboardEntry, error) {
	if !metric.Valid() {
		return nil, fmt.Errorf("%w: unknown metric %q", models.ErrValidation, metric)
	}
	totals, err := e.store.ListUserTotals(ctx)
	if err != nil {
		return nil, err
	}
	return calculator.Rank(metric, totals)
}
