package knowledge

import "time"

// Status is a concept's position in the mastery lifecycle.
type Status string

const (
	StatusNew        Status = "new"
	StatusReviewing  Status = "reviewing"
	StatusStruggling Status = "struggling"
	StatusMastered   Status = "mastered"
)

const (
	strengthStep       = 20
	maxStrength        = 100
	masteredStrength   = 80
	strugglingFailures = 2
)

// Item is the mastery state of one concept. The concept ID is a slide or
// section title.
type Item struct {
	ID           string    `json:"id"`
	Status       Status    `json:"status"`
	Strength     int       `json:"strength"`
	FailureCount int       `json:"failureCount"`
	LastReviewed time.Time `json:"lastReviewed"`
}

// Graph maps concept IDs to their mastery state.
type Graph map[string]Item

// apply returns item updated for one answer.
func apply(item Item, correct bool, now time.Time) Item {
	if correct {
		item.Strength = min(maxStrength, item.Strength+strengthStep)
		item.FailureCount = max(0, item.FailureCount-1)
		switch {
		case item.Strength >= masteredStrength:
			item.Status = StatusMastered
		case item.Status == StatusStruggling, item.Status == StatusNew:
			item.Status = StatusReviewing
		}
	} else {
		item.Strength = max(0, item.Strength-strengthStep)
		item.FailureCount++
		switch {
		case item.FailureCount >= strugglingFailures:
			item.Status = StatusStruggling
		case item.Status == StatusMastered:
			item.Status = StatusReviewing
		}
	}
	item.LastReviewed = now
	return item
}
