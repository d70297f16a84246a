package service

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/pennypool/internal/models"
	"github.com/mmynk/pennypool/pkg/api"
)

func userToAPI(u *models.User) *api.User {
	return &api.User{
		ID:            u.ID,
		DisplayName:   u.DisplayName,
		Email:         u.Email,
		TotalSavings:  u.TotalSavings,
		TotalExpenses: u.TotalExpenses,
		NetWorth:      u.NetWorth(),
		CreatedAt:     u.CreatedAt,
	}
}

func groupToAPI(g *models.Group) *api.Group {
	return &api.Group{
		ID:             g.ID,
		Name:           g.Name,
		Description:    g.Description,
		Goal:           g.Goal,
		CurrentSavings: g.CurrentSavings,
		OwnerID:        g.OwnerID,
		CreatedAt:      g.CreatedAt,
	}
}

func challengeToAPI(c *models.Challenge) *api.Challenge {
	return &api.Challenge{
		ID:            c.ID,
		Name:          c.Name,
		Description:   c.Description,
		StartDate:     models.FormatDate(c.StartDate),
		EndDate:       models.FormatDate(c.EndDate),
		Target:        c.Target,
		CurrentAmount: c.CurrentAmount,
		OwnerID:       c.OwnerID,
		CreatedAt:     c.CreatedAt,
	}
}

func entriesToAPI(entries []models.LedgerEntry) []api.LedgerEntry {
	out := make([]api.LedgerEntry, len(entries))
	for i, e := range entries {
		out[i] = api.LedgerEntry{
			ID:           e.ID,
			Kind:         string(e.Kind),
			Amount:       e.Amount,
			Label:        e.Label,
			Date:         models.FormatDate(e.Date),
			Contribution: e.Contribution,
		}
	}
	return out
}

func statsToAPI(s models.Stats) api.Stats {
	return api.Stats{
		TotalSavings:   s.TotalSavings,
		TotalExpenses:  s.TotalExpenses,
		NetWorth:       s.NetWorth,
		HighestSaving:  optional(s.HighestSaving),
		LowestSaving:   optional(s.LowestSaving),
		HighestExpense: optional(s.HighestExpense),
		LowestExpense:  optional(s.LowestExpense),
		SavingsCount:   s.SavingsCount,
		ExpensesCount:  s.ExpensesCount,
	}
}

func optional(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}
	v := d.Decimal
	return &v
}

func pointsToAPI(points []models.TimeSeriesPoint) []api.TimeSeriesPoint {
	out := make([]api.TimeSeriesPoint, len(points))
	for i, p := range points {
		out[i] = api.TimeSeriesPoint{
			Date:     models.FormatDate(p.Date),
			Savings:  p.Savings,
			Expenses: p.Expenses,
		}
	}
	return out
}

func targetsToAPI(refs []models.TargetRef) []api.TargetRef {
	out := make([]api.TargetRef, len(refs))
	for i, r := range refs {
		out[i] = api.TargetRef{Kind: string(r.Kind), ID: r.ID, Name: r.Name}
	}
	return out
}

func leaderboardToAPI(entries []models.LeaderboardEntry) []api.LeaderboardEntry {
	out := make([]api.LeaderboardEntry, len(entries))
	for i, e := range entries {
		out[i] = api.LeaderboardEntry{
			Rank:        e.Rank,
			UserID:      e.UserID,
			DisplayName: e.DisplayName,
			Value:       e.Value,
		}
	}
	return out
}

func placementToAPI(p models.Placement) *api.PlacementResponse {
	resp := &api.PlacementResponse{TotalUsers: p.TotalUsers}
	if p.Ranked {
		rank, percentile := p.Rank, p.Percentile
		resp.Rank = &rank
		resp.Percentile = &percentile
	}
	return resp
}
