package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound          = errors.New("resource not found")
	ErrConflict          = errors.New("resource already exists")
	QueryTimeoutDuration = time.Second * 5
)

type Storage struct {
	Users interface {
		Create(context.Context, *User, []Badge) error
		GetByID(context.Context, int64) (*User, error)
		GetByEmail(context.Context, string) (*User, error)
		List(context.Context) ([]User, error)
		UpdateProfile(context.Context, int64, map[string]interface{}) error
		SetRole(context.Context, int64, string) error
		Delete(context.Context, int64) error
		Progress(context.Context, int64) (Progress, error)
		SetProgress(context.Context, int64, int, int) error
		Counters(context.Context, int64) (ActivityCounters, error)
		SetRefreshToken(context.Context, int64, string) error
		Count(context.Context) (int, error)
		Recent(context.Context, int) ([]User, error)
	}
	Badges interface {
		ListByUser(context.Context, int64) ([]Badge, error)
		MarkEarned(context.Context, int64, []int, time.Time) error
	}
	Places interface {
		Create(context.Context, *Place) error
		GetByID(context.Context, int64) (*Place, error)
		ListApproved(context.Context, string) ([]Place, error)
		SetRating(context.Context, int64, float64) error
		RecordVisit(context.Context, int64, int64) error
		SaveForUser(context.Context, int64, int64) (bool, error)
	}
	Reviews interface {
		Create(context.Context, *Review) error
		GetByID(context.Context, int64) (*Review, error)
		ListByPlace(context.Context, int64) ([]Review, error)
		Update(context.Context, *Review) error
		Delete(context.Context, int64) error
		Stats(context.Context, int64) (int, float64, error)
		CountByUser(context.Context, int64) (int, error)
	}
	Stories interface {
		Create(context.Context, *Story) error
		GetByID(context.Context, int64) (*Story, error)
		ListApproved(ctx context.Context, tag string, limit, offset int) ([]Story, error)
		CountApproved(ctx context.Context, tag string) (int, error)
		Delete(context.Context, int64) error
		CountByAuthor(context.Context, int64) (int, error)
	}
	Events interface {
		Create(context.Context, *Event) error
		GetByID(context.Context, int64) (*Event, error)
		ListUpcoming(context.Context, string) ([]Event, error)
		IsAttending(context.Context, int64, int64) (bool, error)
		AddAttendee(context.Context, int64, int64) error
		RemoveAttendee(context.Context, int64, int64) error
	}
	Routes interface {
		Create(context.Context, *HeritageRoute) error
		GetByID(context.Context, int64) (*HeritageRoute, error)
		List(context.Context) ([]HeritageRoute, error)
		SetShareCode(context.Context, int64, string) error
		RecordCompletion(context.Context, int64, int64) (bool, error)
		SaveForUser(context.Context, int64, int64) (bool, error)
	}
	Threads interface {
		Create(context.Context, *ForumThread) error
		GetByID(context.Context, int64) (*ForumThread, error)
		ListApproved(context.Context, string) ([]ForumThread, error)
		IncrementViews(context.Context, int64) error
		TogglePinned(context.Context, int64) (*ForumThread, error)
		ToggleLocked(context.Context, int64) (*ForumThread, error)
	}
	Replies interface {
		Create(context.Context, *ThreadReply) error
		GetByID(context.Context, int64) (*ThreadReply, error)
		ListByThread(context.Context, int64) ([]ThreadReply, error)
	}
	Votes interface {
		Current(context.Context, VoteKind, int64, int64) (VoteDirection, bool, error)
		Cast(context.Context, VoteKind, int64, int64, VoteDirection) error
		Clear(context.Context, VoteKind, int64, int64) error
		Sets(context.Context, VoteKind, int64) ([]int64, []int64, error)
		ItemExists(context.Context, VoteKind, int64) (bool, error)
	}
	Moderation interface {
		SetApproved(context.Context, ContentKind, int64) error
		DeleteContent(context.Context, ContentKind, int64) error
		ListPending(context.Context, ContentKind) ([]PendingItem, error)
		PendingCounts(context.Context) (map[ContentKind]int, error)
	}
}

func NewStorage(db *pgxpool.Pool) Storage {
	return Storage{
		Users:      &UsersStore{db},
		Badges:     &BadgesStore{db},
		Places:     &PlacesStore{db},
		Reviews:    &ReviewsStore{db},
		Stories:    &StoriesStore{db},
		Events:     &EventsStore{db},
		Routes:     &RoutesStore{db},
		Threads:    &ThreadsStore{db},
		Replies:    &RepliesStore{db},
		Votes:      &VotesStore{db},
		Moderation: &ModerationStore{db},
	}
}
