package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Event struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Venue       string    `json:"venue"`
	Lat         *float64  `json:"lat,omitempty"`
	Lng         *float64  `json:"lng,omitempty"`
	ImageURL    *string   `json:"image_url,omitempty"`
	TicketLink  *string   `json:"ticket_link,omitempty"`
	CreatedBy   int64     `json:"created_by"`
	IsApproved  bool      `json:"is_approved"`
	Attendees   int       `json:"attendees"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type EventsStore struct {
	db *pgxpool.Pool
}

func (s *EventsStore) Create(ctx context.Context, event *Event) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `
		INSERT INTO events (name, category, description, date, venue, lat, lng, image_url, ticket_link, created_by, is_approved)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at
	`

	return s.db.QueryRow(ctx, query,
		event.Name,
		event.Category,
		event.Description,
		event.Date,
		event.Venue,
		event.Lat,
		event.Lng,
		event.ImageURL,
		event.TicketLink,
		event.CreatedBy,
		event.IsApproved,
	).Scan(&event.ID, &event.CreatedAt, &event.UpdatedAt)
}

const eventColumns = `
	e.id, e.name, e.category, e.description, e.date, e.venue, e.lat, e.lng,
	e.image_url, e.ticket_link, e.created_by, e.is_approved,
	(SELECT COUNT(*) FROM event_attendees a WHERE a.event_id = e.id),
	e.created_at, e.updated_at
`

func scanEvent(row pgx.Row, event *Event) error {
	err := row.Scan(
		&event.ID,
		&event.Name,
		&event.Category,
		&event.Description,
		&event.Date,
		&event.Venue,
		&event.Lat,
		&event.Lng,
		&event.ImageURL,
		&event.TicketLink,
		&event.CreatedBy,
		&event.IsApproved,
		&event.Attendees,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func (s *EventsStore) GetByID(ctx context.Context, eventID int64) (*Event, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var event Event
	query := `SELECT ` + eventColumns + ` FROM events e WHERE e.id = $1`
	if err := scanEvent(s.db.QueryRow(ctx, query, eventID), &event); err != nil {
		return nil, err
	}
	return &event, nil
}

// ListUpcoming returns approved events on or after today, soonest first.
func (s *EventsStore) ListUpcoming(ctx context.Context, category string) ([]Event, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `
		SELECT ` + eventColumns + `
		FROM events e
		WHERE e.is_approved = true AND e.date >= now() AND ($1 = '' OR e.category = $1)
		ORDER BY e.date ASC
	`

	rows, err := s.db.Query(ctx, query, category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var event Event
		if err := scanEvent(rows, &event); err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

func (s *EventsStore) IsAttending(ctx context.Context, eventID, userID int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var attending bool
	query := `
		SELECT EXISTS (
			SELECT 1 FROM event_attendees WHERE event_id = $1 AND user_id = $2
		)
	`
	err := s.db.QueryRow(ctx, query, eventID, userID).Scan(&attending)
	return attending, err
}

func (s *EventsStore) AddAttendee(ctx context.Context, eventID, userID int64) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	_, err := s.db.Exec(ctx, `
		INSERT INTO event_attendees (event_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (event_id, user_id) DO NOTHING
	`, eventID, userID)
	return err
}

func (s *EventsStore) RemoveAttendee(ctx context.Context, eventID, userID int64) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	_, err := s.db.Exec(ctx,
		`DELETE FROM event_attendees WHERE event_id = $1 AND user_id = $2`, eventID, userID)
	return err
}
