package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Badge is one entry of a user's badge collection. The collection mirrors
// the fixed catalog: every user owns a row per catalog entry, earned or not.
type Badge struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	Icon        string     `json:"icon"`
	Description string     `json:"description"`
	Earned      bool       `json:"earned"`
	EarnedAt    *time.Time `json:"earned_at,omitempty"`
}

type BadgesStore struct {
	db *pgxpool.Pool
}

func (s *BadgesStore) ListByUser(ctx context.Context, userID int64) ([]Badge, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `
		SELECT badge_id, name, icon, description, earned, earned_at
		FROM user_badges
		WHERE user_id = $1
		ORDER BY badge_id ASC
	`

	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var badges []Badge
	for rows.Next() {
		var b Badge
		if err := rows.Scan(&b.ID, &b.Name, &b.Icon, &b.Description, &b.Earned, &b.EarnedAt); err != nil {
			return nil, err
		}
		badges = append(badges, b)
	}
	return badges, rows.Err()
}

// MarkEarned flips the given badges to earned with a shared timestamp.
// Rows already earned are left untouched so earned_at is never overwritten.
func (s *BadgesStore) MarkEarned(ctx context.Context, userID int64, badgeIDs []int, earnedAt time.Time) error {
	if len(badgeIDs) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `
		UPDATE user_badges
		SET earned = true, earned_at = $3
		WHERE user_id = $1 AND badge_id = ANY($2) AND earned = false
	`

	_, err := s.db.Exec(ctx, query, userID, badgeIDs, earnedAt)
	return err
}
