// Package moderation implements the pending/approved workflow shared by all
// user-submitted content kinds.
package moderation

import (
	"context"
	"fmt"

	"dhaka/internal/store"
)

type ContentStore interface {
	SetApproved(ctx context.Context, kind store.ContentKind, id int64) error
	DeleteContent(ctx context.Context, kind store.ContentKind, id int64) error
	ListPending(ctx context.Context, kind store.ContentKind) ([]store.PendingItem, error)
	PendingCounts(ctx context.Context) (map[store.ContentKind]int, error)
}

var validKinds = map[store.ContentKind]bool{
	store.KindEvent:  true,
	store.KindPlace:  true,
	store.KindStory:  true,
	store.KindThread: true,
}

// ParseKind validates a kind coming off the wire.
func ParseKind(s string) (store.ContentKind, error) {
	kind := store.ContentKind(s)
	if !validKinds[kind] {
		return "", fmt.Errorf("invalid content kind %q", s)
	}
	return kind, nil
}

// SubmissionApproved decides the initial approval flag at creation time:
// admin submissions skip the queue.
func SubmissionApproved(role string) bool {
	return role == store.RoleAdmin
}

// Queue exposes the approve/reject transitions over one kind-agnostic
// contract.
type Queue struct {
	contents ContentStore
}

func NewQueue(contents ContentStore) *Queue {
	return &Queue{contents: contents}
}

// Approve marks the content approved. Approving twice yields the same
// state with no error.
func (q *Queue) Approve(ctx context.Context, kind store.ContentKind, id int64) error {
	if !validKinds[kind] {
		return fmt.Errorf("invalid content kind %q", kind)
	}
	return q.contents.SetApproved(ctx, kind, id)
}

// Reject deletes the content outright. There is no rejected state and no
// way back; callers confirm before invoking.
func (q *Queue) Reject(ctx context.Context, kind store.ContentKind, id int64) error {
	if !validKinds[kind] {
		return fmt.Errorf("invalid content kind %q", kind)
	}
	return q.contents.DeleteContent(ctx, kind, id)
}

// Pending lists unapproved content of one kind, newest first.
func (q *Queue) Pending(ctx context.Context, kind store.ContentKind) ([]store.PendingItem, error) {
	if !validKinds[kind] {
		return nil, fmt.Errorf("invalid content kind %q", kind)
	}
	return q.contents.ListPending(ctx, kind)
}

// PendingCounts reports the queue depth per kind for the admin dashboard.
func (q *Queue) PendingCounts(ctx context.Context) (map[store.ContentKind]int, error) {
	return q.contents.PendingCounts(ctx)
}
