package forum

import (
	"context"
	"sort"
	"testing"

	"dhaka/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type voteKey struct {
	kind   store.VoteKind
	itemID int64
	userID int64
}

type fakeVoteStore struct {
	votes map[voteKey]store.VoteDirection
	items map[store.VoteKind]map[int64]bool
}

func newFakeVoteStore() *fakeVoteStore {
	return &fakeVoteStore{
		votes: make(map[voteKey]store.VoteDirection),
		items: map[store.VoteKind]map[int64]bool{
			store.VoteKindThread: {},
			store.VoteKindReply:  {},
		},
	}
}

func (f *fakeVoteStore) addItem(kind store.VoteKind, id int64) {
	f.items[kind][id] = true
}

func (f *fakeVoteStore) Current(_ context.Context, kind store.VoteKind, itemID, userID int64) (store.VoteDirection, bool, error) {
	d, ok := f.votes[voteKey{kind, itemID, userID}]
	return d, ok, nil
}

func (f *fakeVoteStore) Cast(_ context.Context, kind store.VoteKind, itemID, userID int64, direction store.VoteDirection) error {
	f.votes[voteKey{kind, itemID, userID}] = direction
	return nil
}

func (f *fakeVoteStore) Clear(_ context.Context, kind store.VoteKind, itemID, userID int64) error {
	delete(f.votes, voteKey{kind, itemID, userID})
	return nil
}

func (f *fakeVoteStore) Sets(_ context.Context, kind store.VoteKind, itemID int64) ([]int64, []int64, error) {
	up, down := []int64{}, []int64{}
	for key, d := range f.votes {
		if key.kind != kind || key.itemID != itemID {
			continue
		}
		if d == store.VoteUp {
			up = append(up, key.userID)
		} else {
			down = append(down, key.userID)
		}
	}
	sort.Slice(up, func(i, j int) bool { return up[i] < up[j] })
	sort.Slice(down, func(i, j int) bool { return down[i] < down[j] })
	return up, down, nil
}

func (f *fakeVoteStore) ItemExists(_ context.Context, kind store.VoteKind, itemID int64) (bool, error) {
	return f.items[kind][itemID], nil
}

func TestVoteToggleIsItsOwnInverse(t *testing.T) {
	votes := newFakeVoteStore()
	votes.addItem(store.VoteKindThread, 1)
	board := NewVoteBoard(votes)
	ctx := context.Background()

	tally, err := board.Vote(ctx, store.VoteKindThread, 1, 10, store.VoteUp)
	require.NoError(t, err)
	assert.Equal(t, []int64{10}, tally.Upvotes)
	assert.Equal(t, 1, tally.Score)

	// same direction again cancels the vote
	tally, err = board.Vote(ctx, store.VoteKindThread, 1, 10, store.VoteUp)
	require.NoError(t, err)
	assert.Empty(t, tally.Upvotes)
	assert.Empty(t, tally.Downvotes)
	assert.Equal(t, 0, tally.Score)
}

func TestVoteSwapsExclusively(t *testing.T) {
	votes := newFakeVoteStore()
	votes.addItem(store.VoteKindThread, 1)
	board := NewVoteBoard(votes)
	ctx := context.Background()

	_, err := board.Vote(ctx, store.VoteKindThread, 1, 10, store.VoteUp)
	require.NoError(t, err)

	tally, err := board.Vote(ctx, store.VoteKindThread, 1, 10, store.VoteDown)
	require.NoError(t, err)

	assert.Empty(t, tally.Upvotes, "swapping must clear the opposite set")
	assert.Equal(t, []int64{10}, tally.Downvotes)
	assert.Equal(t, -1, tally.Score)
}

func TestVoteScenarioUpUnvoteDown(t *testing.T) {
	votes := newFakeVoteStore()
	votes.addItem(store.VoteKindThread, 1)
	board := NewVoteBoard(votes)
	ctx := context.Background()

	tally, err := board.Vote(ctx, store.VoteKindThread, 1, 10, store.VoteUp)
	require.NoError(t, err)
	assert.Equal(t, 1, tally.Score)

	tally, err = board.Vote(ctx, store.VoteKindThread, 1, 10, store.VoteUp)
	require.NoError(t, err)
	assert.Equal(t, 0, tally.Score)

	tally, err = board.Vote(ctx, store.VoteKindThread, 1, 10, store.VoteDown)
	require.NoError(t, err)
	assert.Equal(t, -1, tally.Score)
}

func TestVoteMutualExclusionHoldsAfterEveryCall(t *testing.T) {
	votes := newFakeVoteStore()
	votes.addItem(store.VoteKindReply, 3)
	board := NewVoteBoard(votes)
	ctx := context.Background()

	sequence := []store.VoteDirection{
		store.VoteUp, store.VoteDown, store.VoteDown, store.VoteUp, store.VoteDown,
	}

	for _, direction := range sequence {
		tally, err := board.Vote(ctx, store.VoteKindReply, 3, 10, direction)
		require.NoError(t, err)

		for _, u := range tally.Upvotes {
			assert.NotContains(t, tally.Downvotes, u, "user in both sets")
		}
		assert.Equal(t, len(tally.Upvotes)-len(tally.Downvotes), tally.Score)
	}
}

func TestVoteScoreAggregatesUsers(t *testing.T) {
	votes := newFakeVoteStore()
	votes.addItem(store.VoteKindThread, 1)
	board := NewVoteBoard(votes)
	ctx := context.Background()

	_, err := board.Vote(ctx, store.VoteKindThread, 1, 10, store.VoteUp)
	require.NoError(t, err)
	_, err = board.Vote(ctx, store.VoteKindThread, 1, 11, store.VoteUp)
	require.NoError(t, err)
	tally, err := board.Vote(ctx, store.VoteKindThread, 1, 12, store.VoteDown)
	require.NoError(t, err)

	assert.Equal(t, []int64{10, 11}, tally.Upvotes)
	assert.Equal(t, []int64{12}, tally.Downvotes)
	assert.Equal(t, 1, tally.Score)
}

func TestVoteMissingVotable(t *testing.T) {
	board := NewVoteBoard(newFakeVoteStore())

	_, err := board.Vote(context.Background(), store.VoteKindThread, 404, 10, store.VoteUp)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestVoteInvalidDirection(t *testing.T) {
	votes := newFakeVoteStore()
	votes.addItem(store.VoteKindThread, 1)
	board := NewVoteBoard(votes)

	_, err := board.Vote(context.Background(), store.VoteKindThread, 1, 10, "sideways")
	require.Error(t, err)
}
