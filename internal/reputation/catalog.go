package reputation

import (
	"time"

	"dhaka/internal/store"
)

// Trigger names which activity counter changed, so evaluation only looks at
// the badges listening for it.
type Trigger string

const (
	TriggerStoryPublished Trigger = "story_published"
	TriggerReviewWritten  Trigger = "review_written"
	TriggerPlaceVisited   Trigger = "place_visited"
	TriggerRouteCompleted Trigger = "route_completed"
)

// BadgeSpec is one catalog entry. Unlocks must be a pure function of the
// counters; it runs on every matching trigger until the badge is earned.
type BadgeSpec struct {
	ID          int
	Name        string
	Icon        string
	Description string
	Trigger     Trigger
	PreEarned   bool
	Unlocks     func(store.ActivityCounters) bool
}

// DefaultCatalog is the fixed badge list, built once at startup and
// injected wherever badges are seeded or evaluated.
func DefaultCatalog() []BadgeSpec {
	return []BadgeSpec{
		{
			ID:          1,
			Name:        "Explorer",
			Icon:        "🗺️",
			Description: "Joined Discover Dhaka",
			PreEarned:   true,
		},
		{
			ID:          2,
			Name:        "Storyteller",
			Icon:        "📖",
			Description: "Share your first story",
			Trigger:     TriggerStoryPublished,
			Unlocks:     func(c store.ActivityCounters) bool { return c.Stories >= 1 },
		},
		{
			ID:          3,
			Name:        "Reviewer",
			Icon:        "📝",
			Description: "Write 5 reviews",
			Trigger:     TriggerReviewWritten,
			Unlocks:     func(c store.ActivityCounters) bool { return c.Reviews >= 5 },
		},
		{
			ID:          4,
			Name:        "Foodie",
			Icon:        "🍜",
			Description: "Visit 5 food places",
			Trigger:     TriggerPlaceVisited,
			Unlocks:     func(c store.ActivityCounters) bool { return c.FoodVisits >= 5 },
		},
		{
			ID:          5,
			Name:        "History Buff",
			Icon:        "🏛️",
			Description: "Visit 5 historical sites",
			Trigger:     TriggerPlaceVisited,
			Unlocks:     func(c store.ActivityCounters) bool { return c.HistoricVisits >= 5 },
		},
		{
			ID:          6,
			Name:        "Old Town Explorer",
			Icon:        "🚶",
			Description: "Complete a heritage route",
			Trigger:     TriggerRouteCompleted,
			Unlocks:     func(c store.ActivityCounters) bool { return c.RouteFinishes >= 1 },
		},
	}
}

// SeedBadges materializes the catalog as a new user's badge collection:
// everything unearned except the pre-earned entries, stamped at join time.
func SeedBadges(catalog []BadgeSpec, joinedAt time.Time) []store.Badge {
	badges := make([]store.Badge, 0, len(catalog))
	for _, spec := range catalog {
		badge := store.Badge{
			ID:          spec.ID,
			Name:        spec.Name,
			Icon:        spec.Icon,
			Description: spec.Description,
		}
		if spec.PreEarned {
			badge.Earned = true
			t := joinedAt
			badge.EarnedAt = &t
		}
		badges = append(badges, badge)
	}
	return badges
}
