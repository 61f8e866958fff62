package forum

import (
	"context"
	"errors"
	"fmt"

	"dhaka/internal/store"
)

// ErrThreadLocked is returned when a reply is posted to a locked thread.
// Locked threads still accept votes.
var ErrThreadLocked = errors.New("thread is locked")

type ThreadStore interface {
	GetByID(ctx context.Context, threadID int64) (*store.ForumThread, error)
	ListApproved(ctx context.Context, category string) ([]store.ForumThread, error)
	IncrementViews(ctx context.Context, threadID int64) error
	TogglePinned(ctx context.Context, threadID int64) (*store.ForumThread, error)
	ToggleLocked(ctx context.Context, threadID int64) (*store.ForumThread, error)
}

type ReplyStore interface {
	Create(ctx context.Context, reply *store.ThreadReply) error
	ListByThread(ctx context.Context, threadID int64) ([]store.ThreadReply, error)
}

// Threads composes the thread lifecycle: moderation flags, the view
// counter, and reply posting against the lock flag.
type Threads struct {
	threads ThreadStore
	replies ReplyStore
}

func NewThreads(threads ThreadStore, replies ReplyStore) *Threads {
	return &Threads{threads: threads, replies: replies}
}

func (t *Threads) Get(ctx context.Context, threadID int64) (*store.ForumThread, error) {
	return t.threads.GetByID(ctx, threadID)
}

func (t *Threads) List(ctx context.Context, category string) ([]store.ForumThread, error) {
	return t.threads.ListApproved(ctx, category)
}

func (t *Threads) Replies(ctx context.Context, threadID int64) ([]store.ThreadReply, error) {
	return t.replies.ListByThread(ctx, threadID)
}

// IncrementView bumps the view counter. Views are not deduplicated per
// viewer and not gated by auth; callers treat the write as best-effort.
func (t *Threads) IncrementView(ctx context.Context, threadID int64) error {
	return t.threads.IncrementViews(ctx, threadID)
}

// TogglePin flips the pinned flag. The admin gate lives in the route layer.
func (t *Threads) TogglePin(ctx context.Context, threadID int64) (*store.ForumThread, error) {
	return t.threads.TogglePinned(ctx, threadID)
}

// ToggleLock flips the locked flag. The admin gate lives in the route layer.
func (t *Threads) ToggleLock(ctx context.Context, threadID int64) (*store.ForumThread, error) {
	return t.threads.ToggleLocked(ctx, threadID)
}

// PostReply creates a reply unless the thread is locked.
func (t *Threads) PostReply(ctx context.Context, threadID, userID int64, content string) (*store.ThreadReply, error) {
	thread, err := t.threads.GetByID(ctx, threadID)
	if err != nil {
		return nil, err
	}
	if thread.IsLocked {
		return nil, ErrThreadLocked
	}

	reply := &store.ThreadReply{
		ThreadID: threadID,
		UserID:   userID,
		Content:  content,
	}
	if err := t.replies.Create(ctx, reply); err != nil {
		return nil, fmt.Errorf("create reply on thread %d: %w", threadID, err)
	}
	return reply, nil
}
