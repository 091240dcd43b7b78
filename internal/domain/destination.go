package domain

import (
	"time"

	"github.com/google/uuid"
)

// Destination is a place visited during trips. Destinations are global;
// many trips can reference the same destination through an ordered join.
// Timezone is the IANA identifier used as the default zone for activities
// at this destination; ingestion substitutes "UTC" when the zone is unknown,
// so a persisted destination always carries a non-empty identifier.
type Destination struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Country   string    `json:"country"`
	Timezone  string    `json:"timezone"`
	CreatedAt time.Time `json:"created_at"`
}
