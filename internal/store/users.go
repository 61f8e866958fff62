package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

var ErrDuplicateEmail = errors.New("a user with that email already exists")

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID                int64     `json:"id"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	Password          password  `json:"-"`
	ProfilePictureURL *string   `json:"profile_picture_url,omitempty"`
	Bio               string    `json:"bio"`
	XP                int       `json:"xp"`
	Level             int       `json:"level"`
	Role              string    `json:"role"`
	IsPublic          bool      `json:"is_public"`
	IsActive          bool      `json:"is_active"`
	RefreshToken      string    `json:"-"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Progress is the xp/level pair the score ledger reads and writes.
type Progress struct {
	XP    int `json:"xp"`
	Level int `json:"level"`
}

// ActivityCounters are the inputs badge predicates are evaluated against.
type ActivityCounters struct {
	Reviews        int `json:"reviews"`
	Stories        int `json:"stories"`
	FoodVisits     int `json:"food_visits"`
	HistoricVisits int `json:"historic_visits"`
	RouteFinishes  int `json:"route_finishes"`
}

type password struct {
	text *string
	hash []byte
}

func (p *password) Set(text string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(text), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	p.text = &text
	p.hash = hash

	return nil
}

func (p *password) Compare(text string) error {
	return bcrypt.CompareHashAndPassword(p.hash, []byte(text))
}

type UsersStore struct {
	db *pgxpool.Pool
}

// Create inserts the user and seeds their badge collection in one transaction.
func (s *UsersStore) Create(ctx context.Context, user *User, catalog []Badge) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO users (name, email, password)
		VALUES ($1, $2, $3)
		RETURNING id, xp, level, role, is_public, is_active, created_at, updated_at
	`

	user.Email = NormalizeEmail(user.Email)

	err = tx.QueryRow(ctx, query, user.Name, user.Email, user.Password.hash).Scan(
		&user.ID,
		&user.XP,
		&user.Level,
		&user.Role,
		&user.IsPublic,
		&user.IsActive,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateEmail
		}
		return err
	}

	for i := range catalog {
		b := &catalog[i]
		_, err := tx.Exec(ctx, `
			INSERT INTO user_badges (user_id, badge_id, name, icon, description, earned, earned_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, user.ID, b.ID, b.Name, b.Icon, b.Description, b.Earned, b.EarnedAt)
		if err != nil {
			return fmt.Errorf("seed badge %q: %w", b.Name, err)
		}
	}

	return tx.Commit(ctx)
}

const userColumns = `
	id, name, email, password, profile_picture_url, bio,
	xp, level, role, is_public, is_active, created_at, updated_at
`

func scanUser(row pgx.Row, user *User) error {
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Password.hash,
		&user.ProfilePictureURL,
		&user.Bio,
		&user.XP,
		&user.Level,
		&user.Role,
		&user.IsPublic,
		&user.IsActive,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func (s *UsersStore) GetByID(ctx context.Context, userID int64) (*User, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var user User
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 AND is_active = true`
	if err := scanUser(s.db.QueryRow(ctx, query, userID), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// NormalizeEmail lowercases the address. Both the insert and the lookup
// go through it, so a mixed-case registration can still sign in.
func NormalizeEmail(email string) string {
	return strings.ToLower(email)
}

func (s *UsersStore) GetByEmail(ctx context.Context, email string) (*User, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var user User
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 AND is_active = true`
	if err := scanUser(s.db.QueryRow(ctx, query, NormalizeEmail(email)), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UsersStore) List(ctx context.Context) ([]User, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC`
	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var user User
		if err := scanUser(rows, &user); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// UpdateProfile patches a whitelisted set of profile columns.
func (s *UsersStore) UpdateProfile(ctx context.Context, userID int64, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return fmt.Errorf("no fields to update")
	}

	allowed := map[string]bool{
		"name":                true,
		"bio":                 true,
		"profile_picture_url": true,
		"is_public":           true,
	}

	setClauses := make([]string, 0, len(updates))
	args := make([]interface{}, 0, len(updates)+1)
	i := 1
	for col, val := range updates {
		if !allowed[col] {
			return fmt.Errorf("field %q cannot be updated", col)
		}
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", col, i))
		args = append(args, val)
		i++
	}
	args = append(args, userID)

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := fmt.Sprintf(
		"UPDATE users SET %s, updated_at = now() WHERE id = $%d",
		strings.Join(setClauses, ", "), i,
	)

	tag, err := s.db.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *UsersStore) SetRole(ctx context.Context, userID int64, role string) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tag, err := s.db.Exec(ctx,
		`UPDATE users SET role = $1, updated_at = now() WHERE id = $2`, role, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *UsersStore) Delete(ctx context.Context, userID int64) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tag, err := s.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *UsersStore) Progress(ctx context.Context, userID int64) (Progress, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var p Progress
	err := s.db.QueryRow(ctx, `SELECT xp, level FROM users WHERE id = $1`, userID).
		Scan(&p.XP, &p.Level)
	if errors.Is(err, pgx.ErrNoRows) {
		return Progress{}, ErrNotFound
	}
	return p, err
}

func (s *UsersStore) SetProgress(ctx context.Context, userID int64, xp, level int) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tag, err := s.db.Exec(ctx,
		`UPDATE users SET xp = $1, level = $2, updated_at = now() WHERE id = $3`,
		xp, level, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// activityCountersQuery joins visits against the categories places are
// actually stored with, so the badge counters see every qualifying visit.
var activityCountersQuery = `
	SELECT
		(SELECT COUNT(*) FROM reviews WHERE user_id = $1),
		(SELECT COUNT(*) FROM stories WHERE author_id = $1),
		(SELECT COUNT(DISTINCT pv.place_id) FROM place_visits pv
			JOIN places p ON p.id = pv.place_id
			WHERE pv.user_id = $1 AND p.category = '` + PlaceCategoryFood + `'),
		(SELECT COUNT(DISTINCT pv.place_id) FROM place_visits pv
			JOIN places p ON p.id = pv.place_id
			WHERE pv.user_id = $1 AND p.category = '` + PlaceCategoryHistorical + `'),
		(SELECT COUNT(*) FROM route_completions WHERE user_id = $1)
`

// Counters gathers the per-user activity counts in one round trip.
func (s *UsersStore) Counters(ctx context.Context, userID int64) (ActivityCounters, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var c ActivityCounters
	err := s.db.QueryRow(ctx, activityCountersQuery, userID).Scan(
		&c.Reviews,
		&c.Stories,
		&c.FoodVisits,
		&c.HistoricVisits,
		&c.RouteFinishes,
	)
	return c, err
}

func (s *UsersStore) SetRefreshToken(ctx context.Context, userID int64, token string) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tag, err := s.db.Exec(ctx,
		`UPDATE users SET refresh_token = $1 WHERE id = $2`, token, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *UsersStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}

func (s *UsersStore) Recent(ctx context.Context, limit int) ([]User, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC LIMIT $1`
	rows, err := s.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var user User
		if err := scanUser(rows, &user); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}
