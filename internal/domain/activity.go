package domain

import (
	"time"

	"github.com/google/uuid"
)

// Activity is a catalog entry: something that can be done at a destination.
// DurationMinutes is the default length used when a scheduled placement does
// not specify its own; it is always positive.
type Activity struct {
	ID              uuid.UUID `json:"id"`
	DestinationID   uuid.UUID `json:"destination_id"`
	Name            string    `json:"name"`
	Category        string    `json:"category"`
	Description     string    `json:"description,omitempty"`
	DurationMinutes int       `json:"duration_minutes"`
	EstimatedCost   *float64  `json:"estimated_cost,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}
