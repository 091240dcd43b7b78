package domain

import (
	"time"

	"github.com/google/uuid"
)

// TripActivity is a scheduled placement of an activity on a trip's calendar.
// It references either a catalog Activity (ActivityID set) or carries an
// inline custom definition (CustomName set), exactly one of the two and never
// both. PlannedDate is a civil date inside the trip's span; StartTime and
// DurationMinutes define the local interval, interpreted in Timezone.
// The interval may cross midnight (e.g. 23:00 + 120min ends 01:00 next day).
type TripActivity struct {
	ID     uuid.UUID `json:"id"`
	TripID uuid.UUID `json:"trip_id"`

	// Catalog reference. Nil for custom placements.
	ActivityID *uuid.UUID `json:"activity_id,omitempty"`
	// ActivityName is the referenced catalog activity's name, resolved by
	// the repository on read. Empty for custom placements.
	ActivityName string `json:"activity_name,omitempty"`

	// Inline custom definition. CustomName is empty for catalog placements.
	CustomName          string   `json:"custom_name,omitempty"`
	CustomCategory      string   `json:"custom_category,omitempty"`
	CustomDescription   string   `json:"custom_description,omitempty"`
	CustomEstimatedCost *float64 `json:"custom_estimated_cost,omitempty"`

	PlannedDate     time.Time `json:"planned_date"`
	StartTime       TimeOfDay `json:"start_time"`
	DurationMinutes int       `json:"duration_minutes"`
	Timezone        string    `json:"timezone"`

	ActualCost *float64 `json:"actual_cost,omitempty"`
	Notes      string   `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// IsCustom reports whether the placement carries an inline custom definition
// rather than a catalog activity reference.
func (a TripActivity) IsCustom() bool { return a.ActivityID == nil }

// DisplayName returns the name shown to users: the catalog activity's name
// for catalog placements, the inline name for custom ones.
func (a TripActivity) DisplayName() string {
	if a.IsCustom() {
		return a.CustomName
	}
	return a.ActivityName
}
