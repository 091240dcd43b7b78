package schedule

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tripweaver/backend/internal/domain"
)

// Candidate is a proposed placement that has not been persisted yet.
// Timezone must already be resolved; the detector applies no defaults.
type Candidate struct {
	PlannedDate     time.Time
	StartTime       domain.TimeOfDay
	DurationMinutes int
	Timezone        string
}

// FindConflicts returns every existing placement whose absolute interval
// overlaps the candidate's. Each placement is converted using its own
// timezone, so activities at destinations in different zones compare on the
// same absolute timeline, and intervals crossing midnight are handled by the
// conversion itself.
//
// The placement whose id equals excludeID is skipped: updates pass their own
// id so a placement never conflicts with its prior self. Pass uuid.Nil when
// scheduling a new placement.
//
// The result preserves the input order of existing (the calendar's
// chronological retrieval order) and contains the full conflicting set.
func FindConflicts(candidate Candidate, existing []domain.TripActivity, excludeID uuid.UUID) ([]domain.Conflict, error) {
	proposed, err := AbsoluteInterval(candidate.PlannedDate, candidate.StartTime, candidate.DurationMinutes, candidate.Timezone)
	if err != nil {
		return nil, err
	}

	var conflicts []domain.Conflict
	for _, ta := range existing {
		if excludeID != uuid.Nil && ta.ID == excludeID {
			continue
		}
		ivl, err := AbsoluteInterval(ta.PlannedDate, ta.StartTime, ta.DurationMinutes, ta.Timezone)
		if err != nil {
			// A persisted placement with a bad zone or duration means the
			// stored calendar is corrupt; surface it rather than guessing.
			return nil, fmt.Errorf("schedule.FindConflicts: placement %s: %w", ta.ID, err)
		}
		if proposed.Overlaps(ivl) {
			conflicts = append(conflicts, domain.Conflict{
				PlacementID: ta.ID,
				Name:        ta.DisplayName(),
				PlannedDate: ta.PlannedDate,
				Start:       ivl.Start,
				End:         ivl.End,
			})
		}
	}
	return conflicts, nil
}
