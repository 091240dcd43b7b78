// Package domain contains the core data types for the TripWeaver API.
// This package has zero external dependencies beyond uuid and is imported by
// every other internal package (schedule, repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// TripStatus is the lifecycle state of a trip.
type TripStatus string

const (
	TripStatusDraft     TripStatus = "draft"
	TripStatusPlanned   TripStatus = "planned"
	TripStatusActive    TripStatus = "active"
	TripStatusCompleted TripStatus = "completed"
)

// Valid reports whether s is one of the known trip statuses.
func (s TripStatus) Valid() bool {
	switch s {
	case TripStatusDraft, TripStatusPlanned, TripStatusActive, TripStatusCompleted:
		return true
	}
	return false
}

// Trip represents a planned multi-day trip.
// A trip is the top-level aggregate; destinations are attached to it and
// scheduled activities belong to it (and are deleted with it).
// StartDate and EndDate are inclusive civil dates with StartDate <= EndDate.
type Trip struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	StartDate time.Time  `json:"start_date"`
	EndDate   time.Time  `json:"end_date"`
	Status    TripStatus `json:"status"`
	Notes     string     `json:"notes,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
