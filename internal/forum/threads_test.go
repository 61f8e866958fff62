package forum

import (
	"context"
	"testing"
	"time"

	"dhaka/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeThreadStore struct {
	threads map[int64]*store.ForumThread
}

func newFakeThreadStore() *fakeThreadStore {
	return &fakeThreadStore{threads: make(map[int64]*store.ForumThread)}
}

func (f *fakeThreadStore) GetByID(_ context.Context, threadID int64) (*store.ForumThread, error) {
	t, ok := f.threads[threadID]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := *t
	return &copied, nil
}

func (f *fakeThreadStore) ListApproved(_ context.Context, category string) ([]store.ForumThread, error) {
	var out []store.ForumThread
	for _, t := range f.threads {
		if t.IsApproved && (category == "" || t.Category == category) {
			out = append(out, *t)
		}
	}
	// pinned first, then most recently active
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			swap := false
			if out[j].IsPinned != out[i].IsPinned {
				swap = out[j].IsPinned
			} else {
				swap = out[j].UpdatedAt.After(out[i].UpdatedAt)
			}
			if swap {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out, nil
}

func (f *fakeThreadStore) IncrementViews(_ context.Context, threadID int64) error {
	t, ok := f.threads[threadID]
	if !ok {
		return store.ErrNotFound
	}
	t.Views++
	return nil
}

func (f *fakeThreadStore) TogglePinned(_ context.Context, threadID int64) (*store.ForumThread, error) {
	t, ok := f.threads[threadID]
	if !ok {
		return nil, store.ErrNotFound
	}
	t.IsPinned = !t.IsPinned
	copied := *t
	return &copied, nil
}

func (f *fakeThreadStore) ToggleLocked(_ context.Context, threadID int64) (*store.ForumThread, error) {
	t, ok := f.threads[threadID]
	if !ok {
		return nil, store.ErrNotFound
	}
	t.IsLocked = !t.IsLocked
	copied := *t
	return &copied, nil
}

type fakeReplyStore struct {
	replies []store.ThreadReply
	nextID  int64
}

func (f *fakeReplyStore) Create(_ context.Context, reply *store.ThreadReply) error {
	f.nextID++
	reply.ID = f.nextID
	reply.CreatedAt = time.Now()
	f.replies = append(f.replies, *reply)
	return nil
}

func (f *fakeReplyStore) ListByThread(_ context.Context, threadID int64) ([]store.ThreadReply, error) {
	var out []store.ThreadReply
	for _, r := range f.replies {
		if r.ThreadID == threadID {
			out = append(out, r)
		}
	}
	return out, nil
}

func newThreadsFixture() (*Threads, *fakeThreadStore, *fakeReplyStore) {
	threads := newFakeThreadStore()
	replies := &fakeReplyStore{}
	return NewThreads(threads, replies), threads, replies
}

func TestPostReply(t *testing.T) {
	svc, threads, replies := newThreadsFixture()
	threads.threads[1] = &store.ForumThread{ID: 1, IsApproved: true}

	reply, err := svc.PostReply(context.Background(), 1, 10, "great spot for kacchi")
	require.NoError(t, err)

	assert.Equal(t, int64(10), reply.UserID)
	assert.Len(t, replies.replies, 1)
}

func TestPostReplyLockedThread(t *testing.T) {
	svc, threads, replies := newThreadsFixture()
	threads.threads[1] = &store.ForumThread{ID: 1, IsApproved: true, IsLocked: true}

	_, err := svc.PostReply(context.Background(), 1, 10, "too late")
	require.ErrorIs(t, err, ErrThreadLocked)
	assert.Empty(t, replies.replies)
}

func TestLockedThreadStillAcceptsVotes(t *testing.T) {
	svc, threads, _ := newThreadsFixture()
	threads.threads[1] = &store.ForumThread{ID: 1, IsApproved: true}

	locked, err := svc.ToggleLock(context.Background(), 1)
	require.NoError(t, err)
	require.True(t, locked.IsLocked)

	votes := newFakeVoteStore()
	votes.addItem(store.VoteKindThread, 1)
	board := NewVoteBoard(votes)

	tally, err := board.Vote(context.Background(), store.VoteKindThread, 1, 10, store.VoteUp)
	require.NoError(t, err)
	assert.Equal(t, 1, tally.Score)
}

func TestPostReplyMissingThread(t *testing.T) {
	svc, _, _ := newThreadsFixture()

	_, err := svc.PostReply(context.Background(), 404, 10, "hello")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestToggleFlagsFlip(t *testing.T) {
	svc, threads, _ := newThreadsFixture()
	threads.threads[1] = &store.ForumThread{ID: 1, IsApproved: true}

	pinned, err := svc.TogglePin(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, pinned.IsPinned)

	unpinned, err := svc.TogglePin(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, unpinned.IsPinned)

	locked, err := svc.ToggleLock(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, locked.IsLocked)
}

func TestIncrementViewCountsEveryCall(t *testing.T) {
	svc, threads, _ := newThreadsFixture()
	threads.threads[1] = &store.ForumThread{ID: 1, IsApproved: true}

	for i := 0; i < 3; i++ {
		require.NoError(t, svc.IncrementView(context.Background(), 1))
	}

	got, err := svc.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Views)
}

func TestListPinnedFloatToTop(t *testing.T) {
	svc, threads, _ := newThreadsFixture()
	base := time.Now()
	threads.threads[1] = &store.ForumThread{ID: 1, IsApproved: true, UpdatedAt: base}
	threads.threads[2] = &store.ForumThread{ID: 2, IsApproved: true, IsPinned: true, UpdatedAt: base.Add(-24 * time.Hour)}
	threads.threads[3] = &store.ForumThread{ID: 3, IsApproved: false, UpdatedAt: base}

	list, err := svc.List(context.Background(), "")
	require.NoError(t, err)

	require.Len(t, list, 2, "pending threads are not listed")
	assert.Equal(t, int64(2), list[0].ID, "pinned floats above more recent activity")
}
