package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// VoteKind names which table a votable id points into.
type VoteKind string

const (
	VoteKindThread VoteKind = "thread"
	VoteKindReply  VoteKind = "reply"
)

type VoteDirection string

const (
	VoteUp   VoteDirection = "up"
	VoteDown VoteDirection = "down"
)

// votableTables maps a vote kind to the table holding the votable itself,
// used only for existence checks.
var votableTables = map[VoteKind]string{
	VoteKindThread: "forum_threads",
	VoteKindReply:  "thread_replies",
}

type VotesStore struct {
	db *pgxpool.Pool
}

// Current returns the user's active vote on the item, if any.
func (s *VotesStore) Current(ctx context.Context, kind VoteKind, itemID, userID int64) (VoteDirection, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var direction VoteDirection
	err := s.db.QueryRow(ctx, `
		SELECT direction FROM forum_votes
		WHERE kind = $1 AND item_id = $2 AND user_id = $3
	`, kind, itemID, userID).Scan(&direction)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return direction, true, nil
}

// Cast records the vote, replacing any prior vote by the same user on the
// same item. The unique key on (kind, item_id, user_id) is what keeps a
// user out of both sets at once.
func (s *VotesStore) Cast(ctx context.Context, kind VoteKind, itemID, userID int64, direction VoteDirection) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	_, err := s.db.Exec(ctx, `
		INSERT INTO forum_votes (kind, item_id, user_id, direction)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (kind, item_id, user_id) DO UPDATE SET direction = EXCLUDED.direction
	`, kind, itemID, userID, direction)
	return err
}

func (s *VotesStore) Clear(ctx context.Context, kind VoteKind, itemID, userID int64) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	_, err := s.db.Exec(ctx, `
		DELETE FROM forum_votes
		WHERE kind = $1 AND item_id = $2 AND user_id = $3
	`, kind, itemID, userID)
	return err
}

// Sets reads back both vote sets for an item.
func (s *VotesStore) Sets(ctx context.Context, kind VoteKind, itemID int64) (up, down []int64, err error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `
		SELECT
			COALESCE(array_agg(user_id) FILTER (WHERE direction = 'up'), '{}'),
			COALESCE(array_agg(user_id) FILTER (WHERE direction = 'down'), '{}')
		FROM forum_votes
		WHERE kind = $1 AND item_id = $2
	`
	err = s.db.QueryRow(ctx, query, kind, itemID).Scan(&up, &down)
	return up, down, err
}

func (s *VotesStore) ItemExists(ctx context.Context, kind VoteKind, itemID int64) (bool, error) {
	table, ok := votableTables[kind]
	if !ok {
		return false, fmt.Errorf("unknown vote kind %q", kind)
	}

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var exists bool
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE id = $1)`, table)
	err := s.db.QueryRow(ctx, query, itemID).Scan(&exists)
	return exists, err
}
