package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/pennypool/internal/models"
	"github.com/mmynk/pennypool/internal/ranking"
	"github.com/mmynk/pennypool/pkg/api"
)

// LeaderboardService implements the Connect LeaderboardService.
type LeaderboardService struct {
	ranking *ranking.Engine
}

// NewLeaderboardService creates a new LeaderboardService.
func NewLeaderboardService(engine *ranking.Engine) *LeaderboardService {
	return &LeaderboardService{ranking: engine}
}

// Leaderboard ranks all users by a metric.
func (s *LeaderboardService) Leaderboard(ctx context.Context, req *connect.Request[api.LeaderboardRequest]) (*connect.Response[api.LeaderboardResponse], error) {
	slog.Info("Leaderboard request received", "metric", req.Msg.Metric, "limit", req.Msg.Limit)

	entries, err := s.ranking.Leaderboard(ctx, models.Metric(req.Msg.Metric), req.Msg.Limit)
	if err != nil {
		slog.Error("Leaderboard failed", "metric", req.Msg.Metric, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Leaderboard successful", "metric", req.Msg.Metric, "count", len(entries))

	return connect.NewResponse(&api.LeaderboardResponse{Entries: leaderboardToAPI(entries)}), nil
}

// Placement locates a user, the caller by default, in a leaderboard.
func (s *LeaderboardService) Placement(ctx context.Context, req *connect.Request[api.PlacementRequest]) (*connect.Response[api.PlacementResponse], error) {
	userID := req.Msg.UserID
	if userID == "" {
		var err error
		if userID, err = callerID(ctx); err != nil {
			return nil, err
		}
	}
	slog.Info("Placement request received", "user_id", userID, "metric", req.Msg.Metric)

	placement, err := s.ranking.Placement(ctx, userID, models.Metric(req.Msg.Metric))
	if err != nil {
		slog.Error("Placement failed", "user_id", userID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(placementToAPI(placement)), nil
}
