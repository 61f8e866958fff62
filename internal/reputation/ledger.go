// Package reputation holds the community scoring rules: experience points,
// levels, and the badge catalog with its unlock conditions.
package reputation

import (
	"context"
	"fmt"

	"dhaka/internal/store"
)

// Action is a user activity that awards experience points.
type Action string

const (
	ActionStoryPublished Action = "story_published"
	ActionRouteCompleted Action = "route_completed"
	ActionEventJoined    Action = "event_joined"
	ActionReviewWritten  Action = "review_written"
	ActionReplyPosted    Action = "reply_posted"
)

// xpAwards is policy, not structure: the values can change without touching
// the granting logic.
var xpAwards = map[Action]int{
	ActionStoryPublished: 50,
	ActionRouteCompleted: 25,
	ActionEventJoined:    15,
	ActionReviewWritten:  10,
	ActionReplyPosted:    5,
}

// XPForAction returns the award for an action, 0 for an unknown one.
func XPForAction(action Action) int {
	return xpAwards[action]
}

// LevelForXP derives the level from cumulative XP: 100 XP per level,
// starting at level 1.
func LevelForXP(xp int) int {
	return xp/100 + 1
}

// ProgressStore is the slice of user storage the ledger needs.
type ProgressStore interface {
	Progress(ctx context.Context, userID int64) (store.Progress, error)
	SetProgress(ctx context.Context, userID int64, xp, level int) error
}

// Ledger applies XP grants and keeps the derived level consistent.
//
// GrantXP is not idempotent; callers invoke it once per triggering action
// and guard their own one-time bonuses.
type Ledger struct {
	users ProgressStore
}

func NewLedger(users ProgressStore) *Ledger {
	return &Ledger{users: users}
}

// GrantXP adds the action's award to the user's XP, recomputes the level,
// and persists both. Returns the updated progress.
func (l *Ledger) GrantXP(ctx context.Context, userID int64, action Action) (store.Progress, error) {
	amount := XPForAction(action)
	if amount <= 0 {
		return store.Progress{}, fmt.Errorf("unknown xp action %q", action)
	}

	current, err := l.users.Progress(ctx, userID)
	if err != nil {
		return store.Progress{}, fmt.Errorf("load progress for user %d: %w", userID, err)
	}

	updated := store.Progress{
		XP:    current.XP + amount,
		Level: LevelForXP(current.XP + amount),
	}

	if err := l.users.SetProgress(ctx, userID, updated.XP, updated.Level); err != nil {
		return store.Progress{}, fmt.Errorf("persist progress for user %d: %w", userID, err)
	}

	return updated, nil
}
