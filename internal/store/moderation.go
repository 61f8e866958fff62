package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ContentKind discriminates the moderatable content variants. Every kind
// shares the same lifecycle: created unapproved, approved by an admin, or
// rejected (deleted).
type ContentKind string

const (
	KindEvent  ContentKind = "event"
	KindPlace  ContentKind = "place"
	KindStory  ContentKind = "story"
	KindThread ContentKind = "thread"
)

// contentTables is the single dispatch point from kind to table; adding a
// moderatable kind means adding a row here, not a new code path.
var contentTables = map[ContentKind]struct {
	table    string
	titleCol string
	ownerCol string
}{
	KindEvent:  {"events", "name", "created_by"},
	KindPlace:  {"places", "name", "created_by"},
	KindStory:  {"stories", "title", "author_id"},
	KindThread: {"forum_threads", "title", "author_id"},
}

func contentTable(kind ContentKind) (struct {
	table    string
	titleCol string
	ownerCol string
}, error) {
	t, ok := contentTables[kind]
	if !ok {
		return t, fmt.Errorf("unknown content kind %q", kind)
	}
	return t, nil
}

// PendingItem is the kind-agnostic view of an unapproved submission.
type PendingItem struct {
	Kind      ContentKind `json:"kind"`
	ID        int64       `json:"id"`
	Title     string      `json:"title"`
	CreatedBy int64       `json:"created_by"`
	CreatedAt time.Time   `json:"created_at"`
}

type ModerationStore struct {
	db *pgxpool.Pool
}

// SetApproved flips the approval flag on. Re-approving an approved item
// matches a row and changes nothing, so the operation is idempotent.
func (s *ModerationStore) SetApproved(ctx context.Context, kind ContentKind, id int64) error {
	t, err := contentTable(kind)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := fmt.Sprintf(
		`UPDATE %s SET is_approved = true, updated_at = now() WHERE id = $1`, t.table)
	tag, err := s.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *ModerationStore) DeleteContent(ctx context.Context, kind ContentKind, id int64) error {
	t, err := contentTable(kind)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, t.table)
	tag, err := s.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *ModerationStore) ListPending(ctx context.Context, kind ContentKind) ([]PendingItem, error) {
	t, err := contentTable(kind)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := fmt.Sprintf(`
		SELECT id, %s, %s, created_at
		FROM %s
		WHERE is_approved = false
		ORDER BY created_at DESC
	`, t.titleCol, t.ownerCol, t.table)

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []PendingItem
	for rows.Next() {
		item := PendingItem{Kind: kind}
		if err := rows.Scan(&item.ID, &item.Title, &item.CreatedBy, &item.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *ModerationStore) PendingCounts(ctx context.Context) (map[ContentKind]int, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	counts := make(map[ContentKind]int, len(contentTables))
	for kind, t := range contentTables {
		var n int
		query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE is_approved = false`, t.table)
		if err := s.db.QueryRow(ctx, query).Scan(&n); err != nil {
			return nil, err
		}
		counts[kind] = n
	}
	return counts, nil
}
