// Package membership manages groups and challenges and who belongs to them.
package membership

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/mmynk/pennypool/internal/models"
	"github.com/mmynk/pennypool/internal/storage"
)

const (
	maxNameLength        = 100
	maxDescriptionLength = 500
)

// Registry provides business logic for targets and their members.
type Registry struct {
	store storage.Store
}

// NewRegistry creates a membership Registry.
func NewRegistry(store storage.Store) *Registry {
	return &Registry{store: store}
}

// CreateGroup creates a group owned by ownerID, who becomes its first member.
func (r *Registry) CreateGroup(ctx context.Context, ownerID, name, description string, goal decimal.Decimal) (*models.Group, error) {
	group := &models.Group{
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
		Goal:        goal,
		OwnerID:     ownerID,
	}
	if err := validateTarget(ownerID, group.Name, group.Description, goal); err != nil {
		return nil, err
	}

	err := storage.RetryOnConflict(ctx, "CreateGroup", func() error {
		return r.store.CreateGroup(ctx, group)
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Group created", "group_id", group.ID, "owner_id", ownerID)
	return group, nil
}

// GetGroup returns a group by ID.
func (r *Registry) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	if err := requireID("group", groupID); err != nil {
		return nil, err
	}
	return r.store.GetGroup(ctx, groupID)
}

// EditGroup changes name, description and goal. Only the owner may edit.
func (r *Registry) EditGroup(ctx context.Context, callerID, groupID, name, description string, goal decimal.Decimal) (*models.Group, error) {
	group := &models.Group{
		ID:          groupID,
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
		Goal:        goal,
	}
	if err := requireID("group", groupID); err != nil {
		return nil, err
	}
	if err := validateTarget(callerID, group.Name, group.Description, goal); err != nil {
		return nil, err
	}

	err := storage.RetryOnConflict(ctx, "EditGroup", func() error {
		return r.store.UpdateGroup(ctx, callerID, group)
	})
	if err != nil {
		return nil, err
	}
	return r.store.GetGroup(ctx, groupID)
}

// DeleteGroup removes a group. Only the owner may delete.
func (r *Registry) DeleteGroup(ctx context.Context, callerID, groupID string) error {
	if err := requireID("group", groupID); err != nil {
		return err
	}
	if err := requireID("user", callerID); err != nil {
		return err
	}

	err := storage.RetryOnConflict(ctx, "DeleteGroup", func() error {
		return r.store.DeleteGroup(ctx, callerID, groupID)
	})
	if err != nil {
		return err
	}

	slog.Info("Group deleted", "group_id", groupID, "owner_id", callerID)
	return nil
}

// CreateChallenge creates a challenge owned by ownerID, starting today and ending on
// endDate. The owner becomes its first member.
func (r *Registry) CreateChallenge(ctx context.Context, ownerID, name, description string, endDate time.Time, target decimal.Decimal) (*models.Challenge, error) {
	challenge := &models.Challenge{
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
		EndDate:     models.Day(endDate),
		Target:      target,
		OwnerID:     ownerID,
	}
	if err := validateTarget(ownerID, challenge.Name, challenge.Description, target); err != nil {
		return nil, err
	}
	if endDate.IsZero() {
		return nil, fmt.Errorf("%w: challenge end date required", models.ErrValidation)
	}

	err := storage.RetryOnConflict(ctx, "CreateChallenge", func() error {
		return r.store.CreateChallenge(ctx, challenge)
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Challenge created",
		"challenge_id", challenge.ID,
		"owner_id", ownerID,
		"end_date", models.FormatDate(challenge.EndDate),
	)
	return challenge, nil
}

// GetChallenge returns a challenge by ID.
func (r *Registry) GetChallenge(ctx context.Context, challengeID string) (*models.Challenge, error) {
	if err := requireID("challenge", challengeID); err != nil {
		return nil, err
	}
	return r.store.GetChallenge(ctx, challengeID)
}

// EditChallenge changes name, description, end date and target. Only the owner may edit.
// A zero endDate keeps the current end date.
func (r *Registry) EditChallenge(ctx context.Context, callerID, challengeID, name, description string, endDate time.Time, target decimal.Decimal) (*models.Challenge, error) {
	if err := requireID("challenge", challengeID); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)
	if err := validateTarget(callerID, name, description, target); err != nil {
		return nil, err
	}

	err := storage.RetryOnConflict(ctx, "EditChallenge", func() error {
		challenge := &models.Challenge{
			ID:          challengeID,
			Name:        name,
			Description: description,
			EndDate:     models.Day(endDate),
			Target:      target,
		}
		if endDate.IsZero() {
			current, err := r.store.GetChallenge(ctx, challengeID)
			if err != nil {
				return err
			}
			challenge.EndDate = current.EndDate
		}
		return r.store.UpdateChallenge(ctx, callerID, challenge)
	})
	if err != nil {
		return nil, err
	}
	return r.store.GetChallenge(ctx, challengeID)
}

// DeleteChallenge removes a challenge. Only the owner may delete.
func (r *Registry) DeleteChallenge(ctx context.Context, callerID, challengeID string) error {
	if err := requireID("challenge", challengeID); err != nil {
		return err
	}
	if err := requireID("user", callerID); err != nil {
		return err
	}

	err := storage.RetryOnConflict(ctx, "DeleteChallenge", func() error {
		return r.store.DeleteChallenge(ctx, callerID, challengeID)
	})
	if err != nil {
		return err
	}

	slog.Info("Challenge deleted", "challenge_id", challengeID, "owner_id", callerID)
	return nil
}

// Join adds userID to a target. It reports false if the user already belonged to it.
func (r *Registry) Join(ctx context.Context, userID string, kind models.TargetKind, targetID string) (bool, error) {
	if err := validateMembership(userID, kind, targetID); err != nil {
		return false, err
	}

	var joined bool
	err := storage.RetryOnConflict(ctx, "Join", func() error {
		var err error
		joined, err = r.store.AddMember(ctx, kind, targetID, userID)
		return err
	})
	if err != nil {
		return false, err
	}

	slog.Debug("Join processed", "user_id", userID, "target_kind", kind, "target_id", targetID, "joined", joined)
	return joined, nil
}

// Leave removes userID from a target. It reports false if the user was not a member.
// Past contributions stay in the target.
func (r *Registry) Leave(ctx context.Context, userID string, kind models.TargetKind, targetID string) (bool, error) {
	if err := validateMembership(userID, kind, targetID); err != nil {
		return false, err
	}

	var left bool
	err := storage.RetryOnConflict(ctx, "Leave", func() error {
		var err error
		left, err = r.store.RemoveMember(ctx, kind, targetID, userID)
		return err
	})
	if err != nil {
		return false, err
	}

	slog.Debug("Leave processed", "user_id", userID, "target_kind", kind, "target_id", targetID, "left", left)
	return left, nil
}

// ListMembers returns the member IDs of a target in ascending order.
func (r *Registry) ListMembers(ctx context.Context, kind models.TargetKind, targetID string) ([]string, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: unknown target kind %q", models.ErrValidation, kind)
	}
	if err := requireID(string(kind), targetID); err != nil {
		return nil, err
	}
	return r.store.ListMembers(ctx, kind, targetID)
}

// ListTargets returns the targets of one kind that userID has joined.
func (r *Registry) ListTargets(ctx context.Context, userID string, kind models.TargetKind) ([]models.TargetRef, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: unknown target kind %q", models.ErrValidation, kind)
	}
	if err := requireID("user", userID); err != nil {
		return nil, err
	}
	return r.store.ListTargets(ctx, userID, kind)
}

func requireID(what, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: %s id required", models.ErrValidation, what)
	}
	return nil
}

func validateMembership(userID string, kind models.TargetKind, targetID string) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: unknown target kind %q", models.ErrValidation, kind)
	}
	if err := requireID("user", userID); err != nil {
		return err
	}
	return requireID(string(kind), targetID)
}

func validateTarget(ownerID, name, description string, amount decimal.Decimal) error {
	if err := requireID("user", ownerID); err != nil {
		return err
	}
	if name == "" {
		return fmt.Errorf("%w: name required", models.ErrValidation)
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return fmt.Errorf("%w: name longer than %d characters", models.ErrValidation, maxNameLength)
	}
	if utf8.RuneCountInString(description) > maxDescriptionLength {
		return fmt.Errorf("%w: description longer than %d characters", models.ErrValidation, maxDescriptionLength)
	}
	return models.ValidateAmount(amount)
}
