package reputation

import (
	"context"
	"testing"
	"time"

	"dhaka/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBadgeStore struct {
	badges     map[int64][]store.Badge
	markedIDs  []int
	markatTime time.Time
}

func newFakeBadgeStore() *fakeBadgeStore {
	return &fakeBadgeStore{badges: make(map[int64][]store.Badge)}
}

func (f *fakeBadgeStore) seed(userID int64, catalog []BadgeSpec) {
	f.badges[userID] = SeedBadges(catalog, time.Now())
}

func (f *fakeBadgeStore) ListByUser(_ context.Context, userID int64) ([]store.Badge, error) {
	return f.badges[userID], nil
}

func (f *fakeBadgeStore) MarkEarned(_ context.Context, userID int64, badgeIDs []int, earnedAt time.Time) error {
	f.markedIDs = append(f.markedIDs, badgeIDs...)
	f.markatTime = earnedAt
	owned := f.badges[userID]
	for _, id := range badgeIDs {
		for i := range owned {
			if owned[i].ID == id && !owned[i].Earned {
				owned[i].Earned = true
				t := earnedAt
				owned[i].EarnedAt = &t
			}
		}
	}
	return nil
}

type fakeCounterSource struct {
	counters store.ActivityCounters
}

func (f *fakeCounterSource) Counters(context.Context, int64) (store.ActivityCounters, error) {
	return f.counters, nil
}

func TestSeedBadges(t *testing.T) {
	joined := time.Now()
	badges := SeedBadges(DefaultCatalog(), joined)

	require.Len(t, badges, 6)

	explorer := badges[0]
	assert.Equal(t, "Explorer", explorer.Name)
	assert.True(t, explorer.Earned)
	require.NotNil(t, explorer.EarnedAt)
	assert.Equal(t, joined, *explorer.EarnedAt)

	for _, b := range badges[1:] {
		assert.False(t, b.Earned, "badge %q must start unearned", b.Name)
		assert.Nil(t, b.EarnedAt)
	}
}

func TestEvaluateFirstStoryUnlocksStoryteller(t *testing.T) {
	badges := newFakeBadgeStore()
	badges.seed(1, DefaultCatalog())
	users := &fakeCounterSource{counters: store.ActivityCounters{Stories: 1}}

	engine := NewEngine(DefaultCatalog(), badges, users)
	unlocked, err := engine.Evaluate(context.Background(), 1, TriggerStoryPublished)
	require.NoError(t, err)

	require.Len(t, unlocked, 1)
	assert.Equal(t, "Storyteller", unlocked[0].Name)
	assert.True(t, unlocked[0].Earned)
	assert.NotNil(t, unlocked[0].EarnedAt)
}

func TestEvaluateAlreadyEarnedIsNoOp(t *testing.T) {
	badges := newFakeBadgeStore()
	badges.seed(1, DefaultCatalog())
	users := &fakeCounterSource{counters: store.ActivityCounters{Stories: 3}}
	engine := NewEngine(DefaultCatalog(), badges, users)

	first, err := engine.Evaluate(context.Background(), 1, TriggerStoryPublished)
	require.NoError(t, err)
	require.Len(t, first, 1)
	firstEarnedAt := *first[0].EarnedAt

	// Evaluating again with the predicate still satisfied must not rewrite.
	second, err := engine.Evaluate(context.Background(), 1, TriggerStoryPublished)
	require.NoError(t, err)
	assert.Empty(t, second)

	owned, _ := badges.ListByUser(context.Background(), 1)
	for _, b := range owned {
		if b.Name == "Storyteller" {
			assert.Equal(t, firstEarnedAt, *b.EarnedAt, "earnedAt must be stamped exactly once")
		}
	}
}

func TestEvaluateMultipleUnlocksFromOneTrigger(t *testing.T) {
	badges := newFakeBadgeStore()
	badges.seed(1, DefaultCatalog())
	users := &fakeCounterSource{counters: store.ActivityCounters{FoodVisits: 5, HistoricVisits: 7}}

	engine := NewEngine(DefaultCatalog(), badges, users)
	unlocked, err := engine.Evaluate(context.Background(), 1, TriggerPlaceVisited)
	require.NoError(t, err)

	require.Len(t, unlocked, 2)
	names := []string{unlocked[0].Name, unlocked[1].Name}
	assert.ElementsMatch(t, []string{"Foodie", "History Buff"}, names)
	assert.Len(t, badges.markedIDs, 2, "both unlocks persisted in one call")
}

func TestEvaluateUnsatisfiedPredicateDoesNotWrite(t *testing.T) {
	badges := newFakeBadgeStore()
	badges.seed(1, DefaultCatalog())
	users := &fakeCounterSource{counters: store.ActivityCounters{Reviews: 4}}

	engine := NewEngine(DefaultCatalog(), badges, users)
	unlocked, err := engine.Evaluate(context.Background(), 1, TriggerReviewWritten)
	require.NoError(t, err)

	assert.Empty(t, unlocked)
	assert.Empty(t, badges.markedIDs)
}

func TestEvaluateIgnoresOtherTriggers(t *testing.T) {
	badges := newFakeBadgeStore()
	badges.seed(1, DefaultCatalog())
	// Counters satisfy Reviewer, but the trigger is unrelated.
	users := &fakeCounterSource{counters: store.ActivityCounters{Reviews: 10}}

	engine := NewEngine(DefaultCatalog(), badges, users)
	unlocked, err := engine.Evaluate(context.Background(), 1, TriggerRouteCompleted)
	require.NoError(t, err)

	assert.Empty(t, unlocked)
}
