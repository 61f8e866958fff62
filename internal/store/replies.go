package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ThreadReply struct {
	ID        int64     `json:"id"`
	ThreadID  int64     `json:"thread_id"`
	UserID    int64     `json:"user_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`

	// Joined fields
	UserName   string  `json:"user_name,omitempty"`
	UserAvatar *string `json:"user_avatar,omitempty"`

	Upvotes   []int64 `json:"upvotes"`
	Downvotes []int64 `json:"downvotes"`
	Score     int     `json:"score"`
}

type RepliesStore struct {
	db *pgxpool.Pool
}

const replyColumns = `
	r.id, r.thread_id, r.user_id, r.content, r.created_at,
	u.name, u.profile_picture_url,
	COALESCE((SELECT array_agg(v.user_id) FROM forum_votes v
		WHERE v.kind = 'reply' AND v.item_id = r.id AND v.direction = 'up'), '{}'),
	COALESCE((SELECT array_agg(v.user_id) FROM forum_votes v
		WHERE v.kind = 'reply' AND v.item_id = r.id AND v.direction = 'down'), '{}')
`

func scanReply(row pgx.Row, reply *ThreadReply) error {
	err := row.Scan(
		&reply.ID,
		&reply.ThreadID,
		&reply.UserID,
		&reply.Content,
		&reply.CreatedAt,
		&reply.UserName,
		&reply.UserAvatar,
		&reply.Upvotes,
		&reply.Downvotes,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	reply.Score = len(reply.Upvotes) - len(reply.Downvotes)
	return nil
}

func (s *RepliesStore) Create(ctx context.Context, reply *ThreadReply) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO thread_replies (thread_id, user_id, content)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err = tx.QueryRow(ctx, query, reply.ThreadID, reply.UserID, reply.Content).
		Scan(&reply.ID, &reply.CreatedAt)
	if err != nil {
		return err
	}

	// A new reply counts as thread activity for the listing order.
	_, err = tx.Exec(ctx,
		`UPDATE forum_threads SET updated_at = now() WHERE id = $1`, reply.ThreadID)
	if err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	reply.Upvotes = []int64{}
	reply.Downvotes = []int64{}
	return nil
}

func (s *RepliesStore) GetByID(ctx context.Context, replyID int64) (*ThreadReply, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var reply ThreadReply
	query := `
		SELECT ` + replyColumns + `
		FROM thread_replies r
		JOIN users u ON u.id = r.user_id
		WHERE r.id = $1
	`
	if err := scanReply(s.db.QueryRow(ctx, query, replyID), &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

func (s *RepliesStore) ListByThread(ctx context.Context, threadID int64) ([]ThreadReply, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `
		SELECT ` + replyColumns + `
		FROM thread_replies r
		JOIN users u ON u.id = r.user_id
		WHERE r.thread_id = $1
		ORDER BY r.created_at ASC
	`

	rows, err := s.db.Query(ctx, query, threadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var replies []ThreadReply
	for rows.Next() {
		var reply ThreadReply
		if err := scanReply(rows, &reply); err != nil {
			return nil, err
		}
		replies = append(replies, reply)
	}
	return replies, rows.Err()
}
