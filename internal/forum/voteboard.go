// Package forum implements thread and reply voting plus the thread
// moderation flags (pin, lock, view counting).
package forum

import (
	"context"
	"fmt"

	"dhaka/internal/store"
)

type VoteStore interface {
	Current(ctx context.Context, kind store.VoteKind, itemID, userID int64) (store.VoteDirection, bool, error)
	Cast(ctx context.Context, kind store.VoteKind, itemID, userID int64, direction store.VoteDirection) error
	Clear(ctx context.Context, kind store.VoteKind, itemID, userID int64) error
	Sets(ctx context.Context, kind store.VoteKind, itemID int64) (up, down []int64, err error)
	ItemExists(ctx context.Context, kind store.VoteKind, itemID int64) (bool, error)
}

// Tally is the vote state of an item after a call. Score is always derived
// from the two sets, never stored.
type Tally struct {
	Upvotes   []int64 `json:"upvotes"`
	Downvotes []int64 `json:"downvotes"`
	Score     int     `json:"score"`
}

// VoteBoard applies toggle-vote semantics uniformly to threads and replies.
type VoteBoard struct {
	votes VoteStore
}

func NewVoteBoard(votes VoteStore) *VoteBoard {
	return &VoteBoard{votes: votes}
}

// Vote applies one vote action:
//   - an existing opposite vote is replaced,
//   - a repeat of the current vote cancels it,
//   - otherwise the vote is recorded.
//
// A user is in at most one of the two sets after every call.
func (b *VoteBoard) Vote(ctx context.Context, kind store.VoteKind, itemID, userID int64, direction store.VoteDirection) (Tally, error) {
	if direction != store.VoteUp && direction != store.VoteDown {
		return Tally{}, fmt.Errorf("invalid vote direction %q", direction)
	}

	exists, err := b.votes.ItemExists(ctx, kind, itemID)
	if err != nil {
		return Tally{}, fmt.Errorf("check %s %d: %w", kind, itemID, err)
	}
	if !exists {
		return Tally{}, store.ErrNotFound
	}

	current, voted, err := b.votes.Current(ctx, kind, itemID, userID)
	if err != nil {
		return Tally{}, fmt.Errorf("read current vote: %w", err)
	}

	if voted && current == direction {
		err = b.votes.Clear(ctx, kind, itemID, userID)
	} else {
		err = b.votes.Cast(ctx, kind, itemID, userID, direction)
	}
	if err != nil {
		return Tally{}, fmt.Errorf("apply vote: %w", err)
	}

	return b.Tally(ctx, kind, itemID)
}

// Tally reads the current vote sets and computes the score.
func (b *VoteBoard) Tally(ctx context.Context, kind store.VoteKind, itemID int64) (Tally, error) {
	up, down, err := b.votes.Sets(ctx, kind, itemID)
	if err != nil {
		return Tally{}, fmt.Errorf("read vote sets: %w", err)
	}
	return Tally{
		Upvotes:   up,
		Downvotes: down,
		Score:     len(up) - len(down),
	}, nil
}
