package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Review struct {
	ID        int64     `json:"id"`
	PlaceID   int64     `json:"place_id"`
	UserID    int64     `json:"user_id"`
	Rating    int       `json:"rating"` // 1-5
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Joined fields
	UserName  string  `json:"user_name,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

type ReviewsStore struct {
	db *pgxpool.Pool
}

// Create inserts the review. One review per (place, user): the unique
// constraint surfaces as ErrConflict.
func (s *ReviewsStore) Create(ctx context.Context, review *Review) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `
		INSERT INTO reviews (place_id, user_id, rating, comment)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRow(ctx, query,
		review.PlaceID,
		review.UserID,
		review.Rating,
		review.Comment,
	).Scan(&review.ID, &review.CreatedAt, &review.UpdatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrConflict
	}
	return err
}

func (s *ReviewsStore) GetByID(ctx context.Context, reviewID int64) (*Review, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `
		SELECT id, place_id, user_id, rating, comment, created_at, updated_at
		FROM reviews
		WHERE id = $1
	`

	var review Review
	err := s.db.QueryRow(ctx, query, reviewID).Scan(
		&review.ID,
		&review.PlaceID,
		&review.UserID,
		&review.Rating,
		&review.Comment,
		&review.CreatedAt,
		&review.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (s *ReviewsStore) ListByPlace(ctx context.Context, placeID int64) ([]Review, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `
		SELECT r.id, r.place_id, r.user_id, r.rating, r.comment,
			r.created_at, r.updated_at, u.name, u.profile_picture_url
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		WHERE r.place_id = $1
		ORDER BY r.created_at DESC
	`

	rows, err := s.db.Query(ctx, query, placeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []Review
	for rows.Next() {
		var review Review
		err := rows.Scan(
			&review.ID,
			&review.PlaceID,
			&review.UserID,
			&review.Rating,
			&review.Comment,
			&review.CreatedAt,
			&review.UpdatedAt,
			&review.UserName,
			&review.AvatarURL,
		)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, review)
	}
	return reviews, rows.Err()
}

func (s *ReviewsStore) Update(ctx context.Context, review *Review) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `
		UPDATE reviews
		SET rating = $1, comment = $2, updated_at = now()
		WHERE id = $3
		RETURNING updated_at
	`

	err := s.db.QueryRow(ctx, query, review.Rating, review.Comment, review.ID).
		Scan(&review.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func (s *ReviewsStore) Delete(ctx context.Context, reviewID int64) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tag, err := s.db.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, reviewID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Stats returns the review count and mean rating for a place. With no
// reviews the mean is 0.
func (s *ReviewsStore) Stats(ctx context.Context, placeID int64) (total int, average float64, err error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `
		SELECT COUNT(id), COALESCE(AVG(rating), 0)
		FROM reviews
		WHERE place_id = $1
	`
	err = s.db.QueryRow(ctx, query, placeID).Scan(&total, &average)
	return total, average, err
}

func (s *ReviewsStore) CountByUser(ctx context.Context, userID int64) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var n int
	err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM reviews WHERE user_id = $1`, userID).Scan(&n)
	return n, err
}
