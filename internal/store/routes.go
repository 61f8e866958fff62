package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// HeritageRoute is a curated walking route through a set of places.
type HeritageRoute struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	PlaceIDs    []int64   `json:"place_ids"`
	Duration    string    `json:"duration"`
	DistanceKm  float64   `json:"distance_km"`
	Kind        string    `json:"kind"` // heritage, food, historical, cultural, custom
	ShareCode   string    `json:"share_code"`
	CreatedBy   int64     `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type RoutesStore struct {
	db *pgxpool.Pool
}

func (s *RoutesStore) Create(ctx context.Context, route *HeritageRoute) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `
		INSERT INTO heritage_routes (name, description, place_ids, duration, distance_km, kind, share_code, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`

	return s.db.QueryRow(ctx, query,
		route.Name,
		route.Description,
		route.PlaceIDs,
		route.Duration,
		route.DistanceKm,
		route.Kind,
		route.ShareCode,
		route.CreatedBy,
	).Scan(&route.ID, &route.CreatedAt, &route.UpdatedAt)
}

const routeColumns = `
	id, name, description, place_ids, duration, distance_km, kind, share_code,
	created_by, created_at, updated_at
`

func scanRoute(row pgx.Row, route *HeritageRoute) error {
	err := row.Scan(
		&route.ID,
		&route.Name,
		&route.Description,
		&route.PlaceIDs,
		&route.Duration,
		&route.DistanceKm,
		&route.Kind,
		&route.ShareCode,
		&route.CreatedBy,
		&route.CreatedAt,
		&route.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func (s *RoutesStore) GetByID(ctx context.Context, routeID int64) (*HeritageRoute, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var route HeritageRoute
	query := `SELECT ` + routeColumns + ` FROM heritage_routes WHERE id = $1`
	if err := scanRoute(s.db.QueryRow(ctx, query, routeID), &route); err != nil {
		return nil, err
	}
	return &route, nil
}

func (s *RoutesStore) List(ctx context.Context) ([]HeritageRoute, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `SELECT ` + routeColumns + ` FROM heritage_routes ORDER BY name ASC`
	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var routes []HeritageRoute
	for rows.Next() {
		var route HeritageRoute
		if err := scanRoute(rows, &route); err != nil {
			return nil, err
		}
		routes = append(routes, route)
	}
	return routes, rows.Err()
}

// SetShareCode backfills the share code once the route id is known.
func (s *RoutesStore) SetShareCode(ctx context.Context, routeID int64, code string) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tag, err := s.db.Exec(ctx,
		`UPDATE heritage_routes SET share_code = $2, updated_at = now() WHERE id = $1`, routeID, code)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// RecordCompletion marks the route finished for the user. Returns false if
// the user had already completed it, so callers can avoid double XP grants.
func (s *RoutesStore) RecordCompletion(ctx context.Context, routeID, userID int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tag, err := s.db.Exec(ctx, `
		INSERT INTO route_completions (route_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (route_id, user_id) DO NOTHING
	`, routeID, userID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *RoutesStore) SaveForUser(ctx context.Context, routeID, userID int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tag, err := s.db.Exec(ctx,
		`DELETE FROM saved_routes WHERE route_id = $1 AND user_id = $2`, routeID, userID)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() > 0 {
		return false, nil
	}

	_, err = s.db.Exec(ctx,
		`INSERT INTO saved_routes (route_id, user_id) VALUES ($1, $2)`, routeID, userID)
	if err != nil {
		return false, err
	}
	return true, nil
}
