package moderation

import (
	"context"
	"testing"
	"time"

	"dhaka/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type contentKey struct {
	kind store.ContentKind
	id   int64
}

type fakeContentStore struct {
	items map[contentKey]*store.PendingItem
	flags map[contentKey]bool // approved
}

func newFakeContentStore() *fakeContentStore {
	return &fakeContentStore{
		items: make(map[contentKey]*store.PendingItem),
		flags: make(map[contentKey]bool),
	}
}

func (f *fakeContentStore) add(kind store.ContentKind, id int64, title string, createdAt time.Time) {
	key := contentKey{kind, id}
	f.items[key] = &store.PendingItem{Kind: kind, ID: id, Title: title, CreatedAt: createdAt}
	f.flags[key] = false
}

func (f *fakeContentStore) SetApproved(_ context.Context, kind store.ContentKind, id int64) error {
	key := contentKey{kind, id}
	if _, ok := f.items[key]; !ok {
		return store.ErrNotFound
	}
	f.flags[key] = true
	return nil
}

func (f *fakeContentStore) DeleteContent(_ context.Context, kind store.ContentKind, id int64) error {
	key := contentKey{kind, id}
	if _, ok := f.items[key]; !ok {
		return store.ErrNotFound
	}
	delete(f.items, key)
	delete(f.flags, key)
	return nil
}

func (f *fakeContentStore) ListPending(_ context.Context, kind store.ContentKind) ([]store.PendingItem, error) {
	var pending []store.PendingItem
	for key, item := range f.items {
		if key.kind == kind && !f.flags[key] {
			pending = append(pending, *item)
		}
	}
	// newest first
	for i := 0; i < len(pending); i++ {
		for j := i + 1; j < len(pending); j++ {
			if pending[j].CreatedAt.After(pending[i].CreatedAt) {
				pending[i], pending[j] = pending[j], pending[i]
			}
		}
	}
	return pending, nil
}

func (f *fakeContentStore) PendingCounts(_ context.Context) (map[store.ContentKind]int, error) {
	counts := map[store.ContentKind]int{
		store.KindEvent: 0, store.KindPlace: 0, store.KindStory: 0, store.KindThread: 0,
	}
	for key := range f.items {
		if !f.flags[key] {
			counts[key.kind]++
		}
	}
	return counts, nil
}

func TestSubmissionApproved(t *testing.T) {
	assert.True(t, SubmissionApproved(store.RoleAdmin))
	assert.False(t, SubmissionApproved(store.RoleUser))
	assert.False(t, SubmissionApproved(""))
}

func TestApproveIsIdempotent(t *testing.T) {
	contents := newFakeContentStore()
	contents.add(store.KindStory, 1, "Old Dhaka at dawn", time.Now())
	queue := NewQueue(contents)

	require.NoError(t, queue.Approve(context.Background(), store.KindStory, 1))
	assert.True(t, contents.flags[contentKey{store.KindStory, 1}])

	// second approve: same state, no error
	require.NoError(t, queue.Approve(context.Background(), store.KindStory, 1))
	assert.True(t, contents.flags[contentKey{store.KindStory, 1}])
}

func TestApproveMissingContent(t *testing.T) {
	queue := NewQueue(newFakeContentStore())
	err := queue.Approve(context.Background(), store.KindEvent, 99)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestRejectDeletes(t *testing.T) {
	contents := newFakeContentStore()
	contents.add(store.KindThread, 5, "spam thread", time.Now())
	queue := NewQueue(contents)

	require.NoError(t, queue.Reject(context.Background(), store.KindThread, 5))

	_, exists := contents.items[contentKey{store.KindThread, 5}]
	assert.False(t, exists, "rejected content is gone")

	err := queue.Reject(context.Background(), store.KindThread, 5)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestPendingOrderAndFiltering(t *testing.T) {
	contents := newFakeContentStore()
	base := time.Now()
	contents.add(store.KindStory, 1, "first", base.Add(-2*time.Hour))
	contents.add(store.KindStory, 2, "second", base.Add(-1*time.Hour))
	contents.add(store.KindStory, 3, "third", base)
	contents.add(store.KindEvent, 4, "unrelated kind", base)
	queue := NewQueue(contents)

	require.NoError(t, queue.Approve(context.Background(), store.KindStory, 2))

	pending, err := queue.Pending(context.Background(), store.KindStory)
	require.NoError(t, err)

	require.Len(t, pending, 2)
	assert.Equal(t, "third", pending[0].Title)
	assert.Equal(t, "first", pending[1].Title)
}

func TestInvalidKind(t *testing.T) {
	queue := NewQueue(newFakeContentStore())

	assert.Error(t, queue.Approve(context.Background(), "podcast", 1))
	assert.Error(t, queue.Reject(context.Background(), "podcast", 1))

	_, err := queue.Pending(context.Background(), "podcast")
	assert.Error(t, err)

	_, err = ParseKind("podcast")
	assert.Error(t, err)

	kind, err := ParseKind("story")
	require.NoError(t, err)
	assert.Equal(t, store.KindStory, kind)
}

func TestPendingCounts(t *testing.T) {
	contents := newFakeContentStore()
	now := time.Now()
	contents.add(store.KindStory, 1, "a", now)
	contents.add(store.KindStory, 2, "b", now)
	contents.add(store.KindPlace, 3, "c", now)
	queue := NewQueue(contents)

	counts, err := queue.PendingCounts(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, counts[store.KindStory])
	assert.Equal(t, 1, counts[store.KindPlace])
	assert.Equal(t, 0, counts[store.KindEvent])
}
