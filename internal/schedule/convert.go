package schedule

import (
	"fmt"
	"time"

	"github.com/tripweaver/backend/internal/domain"
)

// AbsoluteInterval combines a civil date, a time of day, and a duration in
// the given IANA zone into an absolute [start, end) interval.
//
// The start instant is built with time.Date in the zone's location, so the
// zone's offset rules for that specific wall-clock moment apply, including
// DST transitions. The end instant is start plus the duration, which can
// land on the next civil date (23:00 + 120min ends at 01:00).
//
// Unknown zone identifiers fail with domain.ErrInvalidTimezone; the engine
// never substitutes a default. Callers wanting UTC fallback must pass "UTC".
func AbsoluteInterval(date time.Time, start domain.TimeOfDay, durationMinutes int, timezone string) (Interval, error) {
	if durationMinutes <= 0 {
		return Interval{}, fmt.Errorf("%w: duration must be positive, got %d", domain.ErrValidation, durationMinutes)
	}
	loc, err := loadZone(timezone)
	if err != nil {
		return Interval{}, err
	}
	s := time.Date(date.Year(), date.Month(), date.Day(), start.Hour(), start.Minute(), 0, 0, loc)
	return Interval{
		Start: s,
		End:   s.Add(time.Duration(durationMinutes) * time.Minute),
	}, nil
}

// loadZone resolves an IANA timezone identifier.
// The empty string is rejected explicitly: time.LoadLocation("") means UTC,
// which would silently mask a missing zone upstream.
func loadZone(name string) (*time.Location, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty identifier", domain.ErrInvalidTimezone)
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidTimezone, name)
	}
	return loc, nil
}
