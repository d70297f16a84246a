package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mmynk/pennypool/internal/models"
)

// AddMember joins userID to a target. Joining twice is not an error.
func (s *SQLiteStore) AddMember(ctx context.Context, kind models.TargetKind, targetID, userID string) (bool, error) {
	t, err := tablesFor(kind)
	if err != nil {
		return false, err
	}

	var added bool
	err = s.withTx(ctx, func(tx *sql.Tx) error {
		if err := requireTarget(ctx, tx, t, targetID); err != nil {
			return err
		}
		if err := requireUser(ctx, tx, userID); err != nil {
			return err
		}

		res, err := tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO "+t.members+" ("+t.memberKey+", user_id, joined_at) VALUES (?, ?, ?)",
			targetID, userID, s.now().Unix(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert membership: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to count inserted memberships: %w", err)
		}
		added = n == 1
		return nil
	})
	return added, err
}

// RemoveMember removes userID from a target.
func (s *SQLiteStore) RemoveMember(ctx context.Context, kind models.TargetKind, targetID, userID string) (bool, error) {
	t, err := tablesFor(kind)
	if err != nil {
		return false, err
	}

	var removed bool
	err = s.withTx(ctx, func(tx *sql.Tx) error {
		if err := requireTarget(ctx, tx, t, targetID); err != nil {
			return err
		}

		res, err := tx.ExecContext(ctx,
			"DELETE FROM "+t.members+" WHERE "+t.memberKey+" = ? AND user_id = ?",
			targetID, userID,
		)
		if err != nil {
			return fmt.Errorf("failed to delete membership: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to count deleted memberships: %w", err)
		}
		removed = n == 1
		return nil
	})
	return removed, err
}

// ListMembers returns the member IDs of a target in ascending order.
func (s *SQLiteStore) ListMembers(ctx context.Context, kind models.TargetKind, targetID string) ([]string, error) {
	t, err := tablesFor(kind)
	if err != nil {
		return nil, err
	}
	if err := requireTarget(ctx, s.db, t, targetID); err != nil {
		return nil, classify(err)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT user_id FROM "+t.members+" WHERE "+t.memberKey+" = ? ORDER BY user_id",
		targetID,
	)
	if err != nil {
		return nil, classify(fmt.Errorf("failed to list members: %w", err))
	}
	defer rows.Close()

	var members []string
	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, userID)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(fmt.Errorf("failed to iterate members: %w", err))
	}

	return members, nil
}

// ListTargets returns the groups or challenges userID has joined, ordered by name.
func (s *SQLiteStore) ListTargets(ctx context.Context, userID string, kind models.TargetKind) ([]models.TargetRef, error) {
	t, err := tablesFor(kind)
	if err != nil {
		return nil, err
	}
	if err := requireUser(ctx, s.db, userID); err != nil {
		return nil, classify(err)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT t.id, t.name FROM "+t.table+" t JOIN "+t.members+" m ON m."+t.memberKey+" = t.id"+
			" WHERE m.user_id = ? ORDER BY t.name, t.id",
		userID,
	)
	if err != nil {
		return nil, classify(fmt.Errorf("failed to list targets: %w", err))
	}
	defer rows.Close()

	var targets []models.TargetRef
	for rows.Next() {
		ref := models.TargetRef{Kind: kind}
		if err := rows.Scan(&ref.ID, &ref.Name); err != nil {
			return nil, fmt.Errorf("failed to scan target: %w", err)
		}
		targets = append(targets, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(fmt.Errorf("failed to iterate targets: %w", err))
	}

	return targets, nil
}

func isMember(ctx context.Context, tx *sql.Tx, t targetTables, targetID, userID string) (bool, error) {
	var exists int
	err := tx.QueryRowContext(ctx,
		"SELECT 1 FROM "+t.members+" WHERE "+t.memberKey+" = ? AND user_id = ?",
		targetID, userID,
	).Scan(&exists)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check membership: %w", err)
	}
	return true, nil
}
