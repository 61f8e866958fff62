package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Place categories the badge counters filter on. These must match the
// values creation accepts; places are stored lowercase.
const (
	PlaceCategoryFood       = "food"
	PlaceCategoryHistorical = "historical"
)

type Place struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Lat         float64   `json:"lat"`
	Lng         float64   `json:"lng"`
	Address     string    `json:"address"`
	ImageURL    *string   `json:"image_url,omitempty"`
	Rating      float64   `json:"rating"`
	VisitCount  int       `json:"visit_count"`
	CreatedBy   int64     `json:"created_by"`
	IsApproved  bool      `json:"is_approved"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type PlacesStore struct {
	db *pgxpool.Pool
}

func (s *PlacesStore) Create(ctx context.Context, place *Place) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `
		INSERT INTO places (name, category, description, lat, lng, address, image_url, created_by, is_approved)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, rating, visit_count, created_at, updated_at
	`

	return s.db.QueryRow(ctx, query,
		place.Name,
		place.Category,
		place.Description,
		place.Lat,
		place.Lng,
		place.Address,
		place.ImageURL,
		place.CreatedBy,
		place.IsApproved,
	).Scan(&place.ID, &place.Rating, &place.VisitCount, &place.CreatedAt, &place.UpdatedAt)
}

func (s *PlacesStore) GetByID(ctx context.Context, placeID int64) (*Place, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `
		SELECT id, name, category, description, lat, lng, address, image_url,
			rating, visit_count, created_by, is_approved, created_at, updated_at
		FROM places
		WHERE id = $1
	`

	var place Place
	err := s.db.QueryRow(ctx, query, placeID).Scan(
		&place.ID,
		&place.Name,
		&place.Category,
		&place.Description,
		&place.Lat,
		&place.Lng,
		&place.Address,
		&place.ImageURL,
		&place.Rating,
		&place.VisitCount,
		&place.CreatedBy,
		&place.IsApproved,
		&place.CreatedAt,
		&place.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &place, nil
}

func (s *PlacesStore) ListApproved(ctx context.Context, category string) ([]Place, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `
		SELECT id, name, category, description, lat, lng, address, image_url,
			rating, visit_count, created_by, is_approved, created_at, updated_at
		FROM places
		WHERE is_approved = true AND ($1 = '' OR category = $1)
		ORDER BY rating DESC, name ASC
	`

	rows, err := s.db.Query(ctx, query, category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var places []Place
	for rows.Next() {
		var place Place
		err := rows.Scan(
			&place.ID,
			&place.Name,
			&place.Category,
			&place.Description,
			&place.Lat,
			&place.Lng,
			&place.Address,
			&place.ImageURL,
			&place.Rating,
			&place.VisitCount,
			&place.CreatedBy,
			&place.IsApproved,
			&place.CreatedAt,
			&place.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		places = append(places, place)
	}
	return places, rows.Err()
}

// SetRating stores the recomputed aggregate; the mean itself is derived by
// the caller from review stats so the two reads stay in one code path.
func (s *PlacesStore) SetRating(ctx context.Context, placeID int64, rating float64) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tag, err := s.db.Exec(ctx,
		`UPDATE places SET rating = $1, updated_at = now() WHERE id = $2`, rating, placeID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// RecordVisit logs a visit and bumps the place's visit counter. A repeat
// visit by the same user updates the row timestamp but counts once for
// badge purposes (the counter query is DISTINCT on place).
func (s *PlacesStore) RecordVisit(ctx context.Context, placeID, userID int64) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO place_visits (place_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (place_id, user_id) DO UPDATE SET visited_at = now()
	`, placeID, userID)
	if err != nil {
		return err
	}

	tag, err := tx.Exec(ctx,
		`UPDATE places SET visit_count = visit_count + 1 WHERE id = $1`, placeID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return tx.Commit(ctx)
}

// SaveForUser toggles the place on the user's saved list and reports
// whether it is saved afterwards.
func (s *PlacesStore) SaveForUser(ctx context.Context, placeID, userID int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tag, err := s.db.Exec(ctx,
		`DELETE FROM saved_places WHERE place_id = $1 AND user_id = $2`, placeID, userID)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() > 0 {
		return false, nil
	}

	_, err = s.db.Exec(ctx,
		`INSERT INTO saved_places (place_id, user_id) VALUES ($1, $2)`, placeID, userID)
	if err != nil {
		return false, err
	}
	return true, nil
}
