package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. non-positive duration, date outside the trip span).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrConflict is returned when a proposed placement overlaps one or more
// existing placements on the same trip. The concrete error is always a
// *ConflictError carrying the full conflicting set.
// Handlers should map this to HTTP 409 Conflict.
var ErrConflict = errors.New("scheduling conflict")

// ErrInvalidTimezone is returned when an IANA timezone identifier cannot be
// resolved. It is also a validation error, so errors.Is(err, ErrValidation)
// holds and handlers fall into the 422 path without special-casing.
var ErrInvalidTimezone = fmt.Errorf("invalid timezone: %w", ErrValidation)

// Entity-specific not-found variants. Each wraps ErrNotFound so the handler
// keeps a single errors.Is(err, ErrNotFound) → 404 mapping while service
// errors stay precise about which lookup missed.
var (
	ErrTripNotFound        = fmt.Errorf("trip %w", ErrNotFound)
	ErrActivityNotFound    = fmt.Errorf("activity %w", ErrNotFound)
	ErrDestinationNotFound = fmt.Errorf("destination %w", ErrNotFound)
	ErrPlacementNotFound   = fmt.Errorf("scheduled activity %w", ErrNotFound)
)

// DateOutOfRangeError reports a planned date falling outside the trip's
// inclusive [TripStart, TripEnd] span. It carries both bounds and the
// offending date so handlers can render a precise message.
type DateOutOfRangeError struct {
	Date      time.Time
	TripStart time.Time
	TripEnd   time.Time
}

func (e *DateOutOfRangeError) Error() string {
	const d = "2006-01-02"
	return fmt.Sprintf("planned date %s is outside the trip span %s to %s",
		e.Date.Format(d), e.TripStart.Format(d), e.TripEnd.Format(d))
}

// Unwrap makes errors.Is(err, ErrValidation) hold for out-of-range dates.
func (e *DateOutOfRangeError) Unwrap() error { return ErrValidation }
