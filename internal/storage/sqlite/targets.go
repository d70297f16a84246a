package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/mmynk/pennypool/internal/models"
)

// CreateGroup persists a new group and the owner's membership in one transaction.
func (s *SQLiteStore) CreateGroup(ctx context.Context, group *models.Group) error {
	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	if group.CreatedAt == 0 {
		group.CreatedAt = s.now().Unix()
	}
	group.CurrentSavings = models.FromCents(0)

	return s.withTx(ctx, func(tx *sql.Tx) error {
		if err := requireUser(ctx, tx, group.OwnerID); err != nil {
			return err
		}

		_, err := tx.ExecContext(ctx,
			`INSERT INTO groups (id, name, description, goal, current_savings, owner_id, created_at)
			 VALUES (?, ?, ?, ?, 0, ?, ?)`,
			group.ID, group.Name, group.Description, models.ToCents(group.Goal), group.OwnerID, group.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert group: %w", err)
		}

		_, err = tx.ExecContext(ctx,
			"INSERT INTO group_members (group_id, user_id, joined_at) VALUES (?, ?, ?)",
			group.ID, group.OwnerID, group.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert owner membership: %w", err)
		}
		return nil
	})
}

// GetGroup retrieves a group by ID.
func (s *SQLiteStore) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	group := &models.Group{}
	var goal, current int64
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, description, goal, current_savings, owner_id, created_at FROM groups WHERE id = ?",
		groupID,
	).Scan(&group.ID, &group.Name, &group.Description, &goal, &current, &group.OwnerID, &group.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: group %s", models.ErrNotFound, groupID)
	}
	if err != nil {
		return nil, classify(fmt.Errorf("failed to get group: %w", err))
	}

	group.Goal = models.FromCents(goal)
	group.CurrentSavings = models.FromCents(current)
	return group, nil
}

// UpdateGroup changes a group's name, description and goal.
// CurrentSavings is never touched here: it only grows through Contribute.
func (s *SQLiteStore) UpdateGroup(ctx context.Context, callerID string, group *models.Group) error {
	t, _ := tablesFor(models.TargetGroup)
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if err := requireOwner(ctx, tx, t, group.ID, callerID); err != nil {
			return err
		}

		_, err := tx.ExecContext(ctx,
			"UPDATE groups SET name = ?, description = ?, goal = ? WHERE id = ?",
			group.Name, group.Description, models.ToCents(group.Goal), group.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to update group: %w", err)
		}
		return nil
	})
}

// DeleteGroup removes a group; memberships cascade. Contribution expenses are kept.
func (s *SQLiteStore) DeleteGroup(ctx context.Context, callerID, groupID string) error {
	t, _ := tablesFor(models.TargetGroup)
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if err := requireOwner(ctx, tx, t, groupID, callerID); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM groups WHERE id = ?", groupID); err != nil {
			return fmt.Errorf("failed to delete group: %w", err)
		}
		return nil
	})
}

// CreateChallenge persists a new challenge and the owner's membership in one transaction.
// A zero StartDate defaults to today.
func (s *SQLiteStore) CreateChallenge(ctx context.Context, challenge *models.Challenge) error {
	if challenge.ID == "" {
		challenge.ID = uuid.New().String()
	}
	if challenge.CreatedAt == 0 {
		challenge.CreatedAt = s.now().Unix()
	}
	if challenge.StartDate.IsZero() {
		challenge.StartDate = s.today()
	}
	if challenge.EndDate.Before(challenge.StartDate) {
		return fmt.Errorf("%w: challenge ends before it starts", models.ErrValidation)
	}
	challenge.CurrentAmount = models.FromCents(0)

	return s.withTx(ctx, func(tx *sql.Tx) error {
		if err := requireUser(ctx, tx, challenge.OwnerID); err != nil {
			return err
		}

		_, err := tx.ExecContext(ctx,
			`INSERT INTO challenges (id, name, description, start_date, end_date, target, current_amount, owner_id, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, 0, ?, ?)`,
			challenge.ID, challenge.Name, challenge.Description,
			models.FormatDate(challenge.StartDate), models.FormatDate(challenge.EndDate),
			models.ToCents(challenge.Target), challenge.OwnerID, challenge.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert challenge: %w", err)
		}

		_, err = tx.ExecContext(ctx,
			"INSERT INTO challenge_members (challenge_id, user_id, joined_at) VALUES (?, ?, ?)",
			challenge.ID, challenge.OwnerID, challenge.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert owner membership: %w", err)
		}
		return nil
	})
}

// GetChallenge retrieves a challenge by ID.
func (s *SQLiteStore) GetChallenge(ctx context.Context, challengeID string) (*models.Challenge, error) {
	c := &models.Challenge{}
	var start, end string
	var target, current int64
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, description, start_date, end_date, target, current_amount, owner_id, created_at
		 FROM challenges WHERE id = ?`,
		challengeID,
	).Scan(&c.ID, &c.Name, &c.Description, &start, &end, &target, &current, &c.OwnerID, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: challenge %s", models.ErrNotFound, challengeID)
	}
	if err != nil {
		return nil, classify(fmt.Errorf("failed to get challenge: %w", err))
	}

	if c.StartDate, err = parseDate(start); err != nil {
		return nil, err
	}
	if c.EndDate, err = parseDate(end); err != nil {
		return nil, err
	}
	c.Target = models.FromCents(target)
	c.CurrentAmount = models.FromCents(current)
	return c, nil
}

// UpdateChallenge changes a challenge's name, description, end date and target.
func (s *SQLiteStore) UpdateChallenge(ctx context.Context, callerID string, challenge *models.Challenge) error {
	t, _ := tablesFor(models.TargetChallenge)
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if err := requireOwner(ctx, tx, t, challenge.ID, callerID); err != nil {
			return err
		}

		var start string
		if err := tx.QueryRowContext(ctx, "SELECT start_date FROM challenges WHERE id = ?", challenge.ID).Scan(&start); err != nil {
			return fmt.Errorf("failed to get challenge start date: %w", err)
		}
		if models.FormatDate(challenge.EndDate) < start {
			return fmt.Errorf("%w: challenge ends before it starts", models.ErrValidation)
		}

		_, err := tx.ExecContext(ctx,
			"UPDATE challenges SET name = ?, description = ?, end_date = ?, target = ? WHERE id = ?",
			challenge.Name, challenge.Description, models.FormatDate(challenge.EndDate),
			models.ToCents(challenge.Target), challenge.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to update challenge: %w", err)
		}
		return nil
	})
}

// DeleteChallenge removes a challenge; memberships cascade. Contribution expenses are kept.
func (s *SQLiteStore) DeleteChallenge(ctx context.Context, callerID, challengeID string) error {
	t, _ := tablesFor(models.TargetChallenge)
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if err := requireOwner(ctx, tx, t, challengeID, callerID); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM challenges WHERE id = ?", challengeID); err != nil {
			return fmt.Errorf("failed to delete challenge: %w", err)
		}
		return nil
	})
}

// requireOwner returns models.ErrNotFound for a missing target and
// models.ErrUnauthorized when callerID does not own it.
func requireOwner(ctx context.Context, tx *sql.Tx, t targetTables, targetID, callerID string) error {
	var ownerID string
	err := tx.QueryRowContext(ctx, "SELECT owner_id FROM "+t.table+" WHERE id = ?", targetID).Scan(&ownerID)
	if err == sql.ErrNoRows {
		return fmt.Errorf("%w: %s %s", models.ErrNotFound, t.table, targetID)
	}
	if err != nil {
		return fmt.Errorf("failed to get %s owner: %w", t.table, err)
	}
	if ownerID != callerID {
		return fmt.Errorf("%w: %s %s", models.ErrUnauthorized, t.table, targetID)
	}
	return nil
}
