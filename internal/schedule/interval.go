// Package schedule implements the trip scheduling engine: it converts
// locally-expressed activity times (civil date + time of day + duration +
// IANA timezone) into absolute intervals and detects overlaps between
// placements on the same trip. The package is pure, no I/O and no state,
// so the service layer can compose it with persistence freely.
package schedule

import "time"

// Interval is an absolute half-open time span [Start, End).
// Both instants carry their own locations but compare on the absolute
// timeline, so intervals from different timezones are directly comparable.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether two half-open intervals intersect:
// a.Start < b.End && b.Start < a.End. The strict inequalities make
// back-to-back placements (one ending exactly when the next begins) legal.
// Symmetric: a.Overlaps(b) == b.Overlaps(a).
func (a Interval) Overlaps(b Interval) bool {
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}
