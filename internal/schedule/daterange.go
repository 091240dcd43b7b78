package schedule

import (
	"time"

	"github.com/tripweaver/backend/internal/domain"
)

// ValidateDate confirms that planned falls inside the trip's inclusive
// [tripStart, tripEnd] span. All three values are civil dates; any time or
// location component is discarded before comparing, so a date loaded from a
// DATE column and a date parsed from JSON compare correctly.
// Failure is a *domain.DateOutOfRangeError carrying the date and both bounds.
func ValidateDate(planned, tripStart, tripEnd time.Time) error {
	p, s, e := civilDate(planned), civilDate(tripStart), civilDate(tripEnd)
	if p.Before(s) || p.After(e) {
		return &domain.DateOutOfRangeError{Date: planned, TripStart: tripStart, TripEnd: tripEnd}
	}
	return nil
}

// civilDate truncates t to its year/month/day in UTC for date-only comparison.
func civilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
