package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// TimeOfDay is a civil time with no date component, stored as minutes since
// midnight (0 .. 1439). It is only ever given meaning by combining it with a
// date and an IANA timezone; the type itself does no zone arithmetic.
type TimeOfDay int

// ParseTimeOfDay parses an "HH:MM" string (24-hour clock) into a TimeOfDay.
// Returns an error wrapping ErrValidation for anything else.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parsed, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("%w: time must be HH:MM, got %q", ErrValidation, s)
	}
	return TimeOfDay(parsed.Hour()*60 + parsed.Minute()), nil
}

// MinutesOfDay constructs a TimeOfDay from minutes since midnight.
// Values outside 0..1439 are rejected with an error wrapping ErrValidation.
func MinutesOfDay(m int) (TimeOfDay, error) {
	if m < 0 || m >= 24*60 {
		return 0, fmt.Errorf("%w: minutes of day out of range: %d", ErrValidation, m)
	}
	return TimeOfDay(m), nil
}

// Hour returns the hour component (0..23).
func (t TimeOfDay) Hour() int { return int(t) / 60 }

// Minute returns the minute component (0..59).
func (t TimeOfDay) Minute() int { return int(t) % 60 }

// String formats the time as "HH:MM".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// MarshalJSON encodes the time as an "HH:MM" JSON string.
func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON decodes an "HH:MM" JSON string.
func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
