package reputation

import (
	"context"
	"fmt"
	"time"

	"dhaka/internal/store"
)

type BadgeStore interface {
	ListByUser(ctx context.Context, userID int64) ([]store.Badge, error)
	MarkEarned(ctx context.Context, userID int64, badgeIDs []int, earnedAt time.Time) error
}

type CounterSource interface {
	Counters(ctx context.Context, userID int64) (store.ActivityCounters, error)
}

// Engine evaluates badge unlock conditions. Evaluation itself never writes;
// only predicates that newly pass are persisted, together, at the end.
type Engine struct {
	catalog []BadgeSpec
	badges  BadgeStore
	users   CounterSource
}

func NewEngine(catalog []BadgeSpec, badges BadgeStore, users CounterSource) *Engine {
	return &Engine{catalog: catalog, badges: badges, users: users}
}

// Evaluate checks every catalog entry listening for the trigger against the
// user's current counters and unlocks the ones newly satisfied. Badges
// already earned are skipped, so re-evaluating a satisfied predicate is a
// no-op. Returns the badges unlocked by this call.
func (e *Engine) Evaluate(ctx context.Context, userID int64, trigger Trigger) ([]store.Badge, error) {
	counters, err := e.users.Counters(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load counters for user %d: %w", userID, err)
	}

	owned, err := e.badges.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load badges for user %d: %w", userID, err)
	}

	earned := make(map[int]bool, len(owned))
	for _, b := range owned {
		earned[b.ID] = b.Earned
	}

	now := time.Now()

	var unlocked []store.Badge
	var unlockedIDs []int
	for _, spec := range e.catalog {
		if spec.Trigger != trigger || spec.Unlocks == nil {
			continue
		}
		if earned[spec.ID] {
			continue
		}
		if !spec.Unlocks(counters) {
			continue
		}

		t := now
		unlocked = append(unlocked, store.Badge{
			ID:          spec.ID,
			Name:        spec.Name,
			Icon:        spec.Icon,
			Description: spec.Description,
			Earned:      true,
			EarnedAt:    &t,
		})
		unlockedIDs = append(unlockedIDs, spec.ID)
	}

	if len(unlockedIDs) == 0 {
		return nil, nil
	}

	if err := e.badges.MarkEarned(ctx, userID, unlockedIDs, now); err != nil {
		return nil, fmt.Errorf("persist badge unlocks for user %d: %w", userID, err)
	}

	return unlocked, nil
}
