package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"connectrpc.com/connect"

	"github.com/mmynk/pennypool/internal/auth"
	"github.com/mmynk/pennypool/internal/models"
	"github.com/mmynk/pennypool/internal/storage"
	"github.com/mmynk/pennypool/pkg/api"
)

const maxDisplayNameLength = 100

// UserService implements the Connect UserService.
type UserService struct {
	store      storage.Store
	jwtManager *auth.JWTManager
}

// NewUserService creates a new UserService.
func NewUserService(store storage.Store, jwtManager *auth.JWTManager) *UserService {
	return &UserService{store: store, jwtManager: jwtManager}
}

// CreateUser registers a profile and returns a session token for it.
func (s *UserService) CreateUser(ctx context.Context, req *connect.Request[api.CreateUserRequest]) (*connect.Response[api.CreateUserResponse], error) {
	name := strings.TrimSpace(req.Msg.DisplayName)
	slog.Info("CreateUser request received", "display_name", name)

	if name == "" || utf8.RuneCountInString(name) > maxDisplayNameLength {
		return nil, toConnectError(fmt.Errorf("%w: display name must be 1-%d characters", models.ErrValidation, maxDisplayNameLength))
	}

	user := &models.User{DisplayName: name, Email: strings.TrimSpace(req.Msg.Email)}
	if err := s.store.CreateUser(ctx, user); err != nil {
		slog.Error("CreateUser failed", "error", err)
		return nil, toConnectError(err)
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		slog.Error("Token generation failed", "user_id", user.ID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("User created", "user_id", user.ID)

	return connect.NewResponse(&api.CreateUserResponse{
		User:     userToAPI(user),
		Token:    token,
		NextView: api.ViewDashboard,
	}), nil
}

// GetUser returns a profile with its totals.
func (s *UserService) GetUser(ctx context.Context, req *connect.Request[api.GetUserRequest]) (*connect.Response[api.GetUserResponse], error) {
	slog.Info("GetUser request received", "user_id", req.Msg.UserID)

	if req.Msg.UserID == "" {
		return nil, toConnectError(fmt.Errorf("%w: user_id required", models.ErrValidation))
	}

	user, err := s.store.GetUser(ctx, req.Msg.UserID)
	if err != nil {
		slog.Error("GetUser failed", "user_id", req.Msg.UserID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.GetUserResponse{User: userToAPI(user)}), nil
}
