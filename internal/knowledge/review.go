package knowledge

import (
	"slices"
	"strings"
	"time"
)

// reviewIntervals are the days between reviews, indexed by strength band.
// Struggling concepts always use the first interval.
var reviewIntervals = []int{1, 3, 7, 14, 30, 60}

// NextReview returns when the concept should be revisited. A concept that
// was never answered has no review date.
func (it Item) NextReview() time.Time {
	if it.LastReviewed.IsZero() {
		return time.Time{}
	}
	stage := min(it.Strength/strengthStep, len(reviewIntervals)-1)
	if it.Status == StatusStruggling {
		stage = 0
	}
	return it.LastReviewed.AddDate(0, 0, reviewIntervals[stage])
}

// IsDue reports whether the concept should be reviewed at now.
func (it Item) IsDue(now time.Time) bool {
	next := it.NextReview()
	return !next.IsZero() && !now.Before(next)
}

// Due lists the concepts due for review, most overdue first.
func (t *Tracker) Due() []Item {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	var due []Item
	for _, item := range t.graph {
		if item.IsDue(now) {
			due = append(due, item)
		}
	}
	slices.SortFunc(due, func(a, b Item) int {
		if c := a.NextReview().Compare(b.NextReview()); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return due
}
