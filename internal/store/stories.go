package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Story struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	AuthorID   int64     `json:"author_id"`
	PlaceName  string    `json:"place_name"`
	Tags       []string  `json:"tags"`
	ImageURL   *string   `json:"image_url,omitempty"`
	IsApproved bool      `json:"is_approved"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Joined fields
	AuthorName   string  `json:"author_name,omitempty"`
	AuthorAvatar *string `json:"author_avatar,omitempty"`
}

type StoriesStore struct {
	db *pgxpool.Pool
}

func (s *StoriesStore) Create(ctx context.Context, story *Story) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `
		INSERT INTO stories (title, content, author_id, place_name, tags, image_url, is_approved)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	return s.db.QueryRow(ctx, query,
		story.Title,
		story.Content,
		story.AuthorID,
		story.PlaceName,
		story.Tags,
		story.ImageURL,
		story.IsApproved,
	).Scan(&story.ID, &story.CreatedAt, &story.UpdatedAt)
}

func (s *StoriesStore) GetByID(ctx context.Context, storyID int64) (*Story, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `
		SELECT st.id, st.title, st.content, st.author_id, st.place_name, st.tags,
			st.image_url, st.is_approved, st.created_at, st.updated_at,
			u.name, u.profile_picture_url
		FROM stories st
		JOIN users u ON u.id = st.author_id
		WHERE st.id = $1
	`

	var story Story
	err := s.db.QueryRow(ctx, query, storyID).Scan(
		&story.ID,
		&story.Title,
		&story.Content,
		&story.AuthorID,
		&story.PlaceName,
		&story.Tags,
		&story.ImageURL,
		&story.IsApproved,
		&story.CreatedAt,
		&story.UpdatedAt,
		&story.AuthorName,
		&story.AuthorAvatar,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &story, nil
}

func (s *StoriesStore) ListApproved(ctx context.Context, tag string, limit, offset int) ([]Story, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `
		SELECT st.id, st.title, st.content, st.author_id, st.place_name, st.tags,
			st.image_url, st.is_approved, st.created_at, st.updated_at,
			u.name, u.profile_picture_url
		FROM stories st
		JOIN users u ON u.id = st.author_id
		WHERE st.is_approved = true AND ($1 = '' OR $1 = ANY(st.tags))
		ORDER BY st.created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := s.db.Query(ctx, query, tag, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stories []Story
	for rows.Next() {
		var story Story
		err := rows.Scan(
			&story.ID,
			&story.Title,
			&story.Content,
			&story.AuthorID,
			&story.PlaceName,
			&story.Tags,
			&story.ImageURL,
			&story.IsApproved,
			&story.CreatedAt,
			&story.UpdatedAt,
			&story.AuthorName,
			&story.AuthorAvatar,
		)
		if err != nil {
			return nil, err
		}
		stories = append(stories, story)
	}
	return stories, rows.Err()
}

func (s *StoriesStore) CountApproved(ctx context.Context, tag string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var n int
	err := s.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM stories
		WHERE is_approved = true AND ($1 = '' OR $1 = ANY(tags))
	`, tag).Scan(&n)
	return n, err
}

func (s *StoriesStore) Delete(ctx context.Context, storyID int64) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tag, err := s.db.Exec(ctx, `DELETE FROM stories WHERE id = $1`, storyID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *StoriesStore) CountByAuthor(ctx context.Context, userID int64) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var n int
	err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM stories WHERE author_id = $1`, userID).Scan(&n)
	return n, err
}
