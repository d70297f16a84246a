package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/pennypool/internal/membership"
	"github.com/mmynk/pennypool/internal/models"
	"github.com/mmynk/pennypool/internal/transfer"
	"github.com/mmynk/pennypool/pkg/api"
)

// TargetService implements the Connect TargetService: groups, challenges, their
// members, and contributions into them.
type TargetService struct {
	registry *membership.Registry
	transfer *transfer.Engine
}

// NewTargetService creates a new TargetService.
func NewTargetService(registry *membership.Registry, engine *transfer.Engine) *TargetService {
	return &TargetService{registry: registry, transfer: engine}
}

// CreateGroup creates a group owned by the caller.
func (s *TargetService) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.GroupResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("CreateGroup request received", "user_id", userID, "name", req.Msg.Name, "goal", req.Msg.Goal.String())

	group, err := s.registry.CreateGroup(ctx, userID, req.Msg.Name, req.Msg.Description, req.Msg.Goal)
	if err != nil {
		slog.Error("CreateGroup failed", "user_id", userID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.GroupResponse{Group: groupToAPI(group), NextView: api.ViewTarget}), nil
}

// EditGroup changes a group the caller owns.
func (s *TargetService) EditGroup(ctx context.Context, req *connect.Request[api.EditGroupRequest]) (*connect.Response[api.GroupResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("EditGroup request received", "user_id", userID, "group_id", req.Msg.GroupID)

	group, err := s.registry.EditGroup(ctx, userID, req.Msg.GroupID, req.Msg.Name, req.Msg.Description, req.Msg.Goal)
	if err != nil {
		slog.Error("EditGroup failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.GroupResponse{Group: groupToAPI(group), NextView: api.ViewTarget}), nil
}

// DeleteGroup removes a group the caller owns.
func (s *TargetService) DeleteGroup(ctx context.Context, req *connect.Request[api.DeleteGroupRequest]) (*connect.Response[api.MutationResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("DeleteGroup request received", "user_id", userID, "group_id", req.Msg.GroupID)

	if err := s.registry.DeleteGroup(ctx, userID, req.Msg.GroupID); err != nil {
		slog.Error("DeleteGroup failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.MutationResponse{OK: true, NextView: api.ViewTargets}), nil
}

// GetGroup retrieves a group by ID.
func (s *TargetService) GetGroup(ctx context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GroupResponse], error) {
	slog.Info("GetGroup request received", "group_id", req.Msg.GroupID)

	group, err := s.registry.GetGroup(ctx, req.Msg.GroupID)
	if err != nil {
		slog.Error("GetGroup failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.GroupResponse{Group: groupToAPI(group)}), nil
}

// CreateChallenge creates a challenge owned by the caller, starting today.
func (s *TargetService) CreateChallenge(ctx context.Context, req *connect.Request[api.CreateChallengeRequest]) (*connect.Response[api.ChallengeResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("CreateChallenge request received",
		"user_id", userID,
		"name", req.Msg.Name,
		"end_date", req.Msg.EndDate,
		"target", req.Msg.Target.String(),
	)

	end, err := models.ParseDate(req.Msg.EndDate)
	if err != nil {
		return nil, toConnectError(err)
	}

	challenge, err := s.registry.CreateChallenge(ctx, userID, req.Msg.Name, req.Msg.Description, end, req.Msg.Target)
	if err != nil {
		slog.Error("CreateChallenge failed", "user_id", userID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.ChallengeResponse{Challenge: challengeToAPI(challenge), NextView: api.ViewTarget}), nil
}

// EditChallenge changes a challenge the caller owns.
func (s *TargetService) EditChallenge(ctx context.Context, req *connect.Request[api.EditChallengeRequest]) (*connect.Response[api.ChallengeResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("EditChallenge request received", "user_id", userID, "challenge_id", req.Msg.ChallengeID)

	end, err := models.ParseDate(req.Msg.EndDate)
	if err != nil {
		return nil, toConnectError(err)
	}

	challenge, err := s.registry.EditChallenge(ctx, userID, req.Msg.ChallengeID, req.Msg.Name, req.Msg.Description, end, req.Msg.Target)
	if err != nil {
		slog.Error("EditChallenge failed", "challenge_id", req.Msg.ChallengeID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.ChallengeResponse{Challenge: challengeToAPI(challenge), NextView: api.ViewTarget}), nil
}

// DeleteChallenge removes a challenge the caller owns.
func (s *TargetService) DeleteChallenge(ctx context.Context, req *connect.Request[api.DeleteChallengeRequest]) (*connect.Response[api.MutationResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("DeleteChallenge request received", "user_id", userID, "challenge_id", req.Msg.ChallengeID)

	if err := s.registry.DeleteChallenge(ctx, userID, req.Msg.ChallengeID); err != nil {
		slog.Error("DeleteChallenge failed", "challenge_id", req.Msg.ChallengeID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.MutationResponse{OK: true, NextView: api.ViewTargets}), nil
}

// GetChallenge retrieves a challenge by ID.
func (s *TargetService) GetChallenge(ctx context.Context, req *connect.Request[api.GetChallengeRequest]) (*connect.Response[api.ChallengeResponse], error) {
	slog.Info("GetChallenge request received", "challenge_id", req.Msg.ChallengeID)

	challenge, err := s.registry.GetChallenge(ctx, req.Msg.ChallengeID)
	if err != nil {
		slog.Error("GetChallenge failed", "challenge_id", req.Msg.ChallengeID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.ChallengeResponse{Challenge: challengeToAPI(challenge)}), nil
}

// Join adds the caller to a target. OK is false if the caller was already a member.
func (s *TargetService) Join(ctx context.Context, req *connect.Request[api.MembershipRequest]) (*connect.Response[api.MutationResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("Join request received", "user_id", userID, "kind", req.Msg.Kind, "target_id", req.Msg.TargetID)

	joined, err := s.registry.Join(ctx, userID, models.TargetKind(req.Msg.Kind), req.Msg.TargetID)
	if err != nil {
		slog.Error("Join failed", "user_id", userID, "target_id", req.Msg.TargetID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.MutationResponse{OK: joined, NextView: api.ViewTarget}), nil
}

// Leave removes the caller from a target. OK is false if the caller was not a member.
func (s *TargetService) Leave(ctx context.Context, req *connect.Request[api.MembershipRequest]) (*connect.Response[api.MutationResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("Leave request received", "user_id", userID, "kind", req.Msg.Kind, "target_id", req.Msg.TargetID)

	left, err := s.registry.Leave(ctx, userID, models.TargetKind(req.Msg.Kind), req.Msg.TargetID)
	if err != nil {
		slog.Error("Leave failed", "user_id", userID, "target_id", req.Msg.TargetID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.MutationResponse{OK: left, NextView: api.ViewTargets}), nil
}

// ListMembers returns the members of a target.
func (s *TargetService) ListMembers(ctx context.Context, req *connect.Request[api.ListMembersRequest]) (*connect.Response[api.ListMembersResponse], error) {
	slog.Info("ListMembers request received", "kind", req.Msg.Kind, "target_id", req.Msg.TargetID)

	members, err := s.registry.ListMembers(ctx, models.TargetKind(req.Msg.Kind), req.Msg.TargetID)
	if err != nil {
		slog.Error("ListMembers failed", "target_id", req.Msg.TargetID, "error", err)
		return nil, toConnectError(err)
	}
	if members == nil {
		members = []string{}
	}

	return connect.NewResponse(&api.ListMembersResponse{UserIDs: members}), nil
}

// ListTargets returns the targets of one kind the caller has joined.
func (s *TargetService) ListTargets(ctx context.Context, req *connect.Request[api.ListTargetsRequest]) (*connect.Response[api.ListTargetsResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("ListTargets request received", "user_id", userID, "kind", req.Msg.Kind)

	targets, err := s.registry.ListTargets(ctx, userID, models.TargetKind(req.Msg.Kind))
	if err != nil {
		slog.Error("ListTargets failed", "user_id", userID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.ListTargetsResponse{Targets: targetsToAPI(targets)}), nil
}

// Contribute moves money from the caller's net worth into a target.
func (s *TargetService) Contribute(ctx context.Context, req *connect.Request[api.ContributeRequest]) (*connect.Response[api.ContributeResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("Contribute request received",
		"user_id", userID,
		"kind", req.Msg.Kind,
		"target_id", req.Msg.TargetID,
		"amount", req.Msg.Amount.String(),
	)

	rec, err := s.transfer.Contribute(ctx, userID, req.Msg.TargetID, models.TargetKind(req.Msg.Kind), req.Msg.Amount)
	if err != nil {
		slog.Warn("Contribute rejected", "user_id", userID, "target_id", req.Msg.TargetID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Contribution recorded", "user_id", userID, "target_id", req.Msg.TargetID, "expense_id", rec.ID)

	return connect.NewResponse(&api.ContributeResponse{ExpenseID: rec.ID, NextView: api.ViewTarget}), nil
}
