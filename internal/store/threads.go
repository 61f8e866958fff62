package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ForumThread struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	Category   string    `json:"category"`
	Content    string    `json:"content"`
	AuthorID   int64     `json:"author_id"`
	Views      int       `json:"views"`
	IsPinned   bool      `json:"is_pinned"`
	IsLocked   bool      `json:"is_locked"`
	IsApproved bool      `json:"is_approved"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Joined fields
	AuthorName   string  `json:"author_name,omitempty"`
	AuthorAvatar *string `json:"author_avatar,omitempty"`

	// Vote sets, read fresh on every fetch. Score is derived, never stored.
	Upvotes   []int64 `json:"upvotes"`
	Downvotes []int64 `json:"downvotes"`
	Score     int     `json:"score"`
}

type ThreadsStore struct {
	db *pgxpool.Pool
}

const threadColumns = `
	t.id, t.title, t.category, t.content, t.author_id, t.views,
	t.is_pinned, t.is_locked, t.is_approved, t.created_at, t.updated_at,
	u.name, u.profile_picture_url,
	COALESCE((SELECT array_agg(v.user_id) FROM forum_votes v
		WHERE v.kind = 'thread' AND v.item_id = t.id AND v.direction = 'up'), '{}'),
	COALESCE((SELECT array_agg(v.user_id) FROM forum_votes v
		WHERE v.kind = 'thread' AND v.item_id = t.id AND v.direction = 'down'), '{}')
`

func scanThread(row pgx.Row, t *ForumThread) error {
	err := row.Scan(
		&t.ID,
		&t.Title,
		&t.Category,
		&t.Content,
		&t.AuthorID,
		&t.Views,
		&t.IsPinned,
		&t.IsLocked,
		&t.IsApproved,
		&t.CreatedAt,
		&t.UpdatedAt,
		&t.AuthorName,
		&t.AuthorAvatar,
		&t.Upvotes,
		&t.Downvotes,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	t.Score = len(t.Upvotes) - len(t.Downvotes)
	return nil
}

func (s *ThreadsStore) Create(ctx context.Context, thread *ForumThread) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `
		INSERT INTO forum_threads (title, category, content, author_id, is_approved)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, views, is_pinned, is_locked, created_at, updated_at
	`

	err := s.db.QueryRow(ctx, query,
		thread.Title,
		thread.Category,
		thread.Content,
		thread.AuthorID,
		thread.IsApproved,
	).Scan(
		&thread.ID,
		&thread.Views,
		&thread.IsPinned,
		&thread.IsLocked,
		&thread.CreatedAt,
		&thread.UpdatedAt,
	)
	if err != nil {
		return err
	}

	thread.Upvotes = []int64{}
	thread.Downvotes = []int64{}
	return nil
}

func (s *ThreadsStore) GetByID(ctx context.Context, threadID int64) (*ForumThread, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var thread ForumThread
	query := `
		SELECT ` + threadColumns + `
		FROM forum_threads t
		JOIN users u ON u.id = t.author_id
		WHERE t.id = $1
	`
	if err := scanThread(s.db.QueryRow(ctx, query, threadID), &thread); err != nil {
		return nil, err
	}
	return &thread, nil
}

// ListApproved returns approved threads, pinned first, then most recently
// active.
func (s *ThreadsStore) ListApproved(ctx context.Context, category string) ([]ForumThread, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `
		SELECT ` + threadColumns + `
		FROM forum_threads t
		JOIN users u ON u.id = t.author_id
		WHERE t.is_approved = true AND ($1 = '' OR t.category = $1)
		ORDER BY t.is_pinned DESC, t.updated_at DESC
	`

	rows, err := s.db.Query(ctx, query, category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var threads []ForumThread
	for rows.Next() {
		var thread ForumThread
		if err := scanThread(rows, &thread); err != nil {
			return nil, err
		}
		threads = append(threads, thread)
	}
	return threads, rows.Err()
}

func (s *ThreadsStore) IncrementViews(ctx context.Context, threadID int64) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tag, err := s.db.Exec(ctx,
		`UPDATE forum_threads SET views = views + 1 WHERE id = $1`, threadID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *ThreadsStore) TogglePinned(ctx context.Context, threadID int64) (*ForumThread, error) {
	return s.toggleFlag(ctx, threadID, "is_pinned")
}

func (s *ThreadsStore) ToggleLocked(ctx context.Context, threadID int64) (*ForumThread, error) {
	return s.toggleFlag(ctx, threadID, "is_locked")
}

func (s *ThreadsStore) toggleFlag(ctx context.Context, threadID int64, column string) (*ForumThread, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	// column is one of two fixed identifiers, never user input
	query := `UPDATE forum_threads SET ` + column + ` = NOT ` + column + `, updated_at = now() WHERE id = $1`
	tag, err := s.db.Exec(ctx, query, threadID)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrNotFound
	}

	return s.GetByID(ctx, threadID)
}
