package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Conflict describes one existing placement that overlaps a proposed one.
// Start and End are the existing placement's absolute instants, computed in
// its own timezone, so callers can render "conflicts with X (date start–end)".
type Conflict struct {
	PlacementID uuid.UUID `json:"placement_id"`
	Name        string    `json:"name"`
	PlannedDate time.Time `json:"planned_date"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
}

func (c Conflict) String() string {
	return fmt.Sprintf("%q on %s (%s to %s)",
		c.Name,
		c.PlannedDate.Format("2006-01-02"),
		c.Start.UTC().Format("15:04"),
		c.End.UTC().Format("15:04 MST"))
}

// ConflictError rejects a schedule or update because the proposed interval
// overlaps existing placements. Conflicts holds the full conflicting set in
// the calendar's retrieval order, never just the first match.
type ConflictError struct {
	Conflicts []Conflict
}

func (e *ConflictError) Error() string {
	parts := make([]string, len(e.Conflicts))
	for i, c := range e.Conflicts {
		parts[i] = c.String()
	}
	return "scheduling conflict with " + strings.Join(parts, ", ")
}

// Unwrap makes errors.Is(err, ErrConflict) hold so handlers can map every
// conflict rejection to HTTP 409 without inspecting the concrete type.
func (e *ConflictError) Unwrap() error { return ErrConflict }
