// Package service contains the business logic for the TripWeaver API.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here; services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tripweaver/backend/internal/domain"
	"github.com/tripweaver/backend/internal/repo"
	"github.com/tripweaver/backend/internal/schedule"
)

// defaultCustomDurationMinutes is the fallback length for a custom placement
// that does not specify one. Catalog placements default to their activity's
// duration instead.
const defaultCustomDurationMinutes = 60

// fallbackTimezone is used for custom placements on trips with no
// destinations. It never reaches the engine implicitly; the service
// resolves it explicitly before conversion.
const fallbackTimezone = "UTC"

// SchedulingService places activities on a trip's calendar, guaranteeing
// that no two placements on the same trip overlap in absolute time. All
// default resolution (duration, timezone) happens here so that catalog and
// custom scheduling apply identical rules.
//
// Every mutating operation runs its load-validate-persist sequence under the
// repo's per-trip advisory lock, so concurrent schedulers of one trip
// serialize instead of racing the conflict check.
type SchedulingService struct {
	trips        repo.TripRepo
	destinations repo.DestinationRepo
	activities   repo.ActivityRepo
	placements   repo.TripActivityRepo
}

// NewSchedulingService constructs a SchedulingService backed by the provided repos.
func NewSchedulingService(trips repo.TripRepo, destinations repo.DestinationRepo, activities repo.ActivityRepo, placements repo.TripActivityRepo) *SchedulingService {
	return &SchedulingService{
		trips:        trips,
		destinations: destinations,
		activities:   activities,
		placements:   placements,
	}
}

// ScheduleInput carries a request to place a catalog activity on a trip.
// DurationMinutes nil means "use the activity's default". The timezone is
// always the activity's destination's zone; catalog placements carry no
// zone of their own.
type ScheduleInput struct {
	TripID          uuid.UUID
	ActivityID      uuid.UUID
	PlannedDate     time.Time
	StartTime       domain.TimeOfDay
	DurationMinutes *int
	Notes           string
}

// Schedule places a catalog activity on the trip calendar.
//
// Pipeline: load trip (ErrTripNotFound) and activity (ErrActivityNotFound);
// resolve duration and timezone defaults; validate the date against the trip
// span; then, under the trip lock, detect conflicts against all existing
// placements and persist. A conflict rejection is a *domain.ConflictError
// carrying the full conflicting set.
func (s *SchedulingService) Schedule(ctx context.Context, in ScheduleInput) (domain.TripActivity, error) {
	trip, err := s.loadTrip(ctx, in.TripID, "Schedule")
	if err != nil {
		return domain.TripActivity{}, err
	}

	activity, err := s.activities.GetByID(ctx, in.ActivityID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.TripActivity{}, fmt.Errorf("service.SchedulingService.Schedule: %w", domain.ErrActivityNotFound)
		}
		return domain.TripActivity{}, fmt.Errorf("service.SchedulingService.Schedule: %w", err)
	}

	destination, err := s.destinations.GetByID(ctx, activity.DestinationID)
	if err != nil {
		return domain.TripActivity{}, fmt.Errorf("service.SchedulingService.Schedule: destination: %w", err)
	}

	duration := activity.DurationMinutes
	if in.DurationMinutes != nil {
		duration = *in.DurationMinutes
	}

	placement := domain.TripActivity{
		TripID:          in.TripID,
		ActivityID:      &in.ActivityID,
		ActivityName:    activity.Name,
		PlannedDate:     in.PlannedDate,
		StartTime:       in.StartTime,
		DurationMinutes: duration,
		Timezone:        destination.Timezone,
		Notes:           in.Notes,
	}

	return s.place(ctx, trip, placement, "Schedule")
}

// ScheduleCustomInput carries a request to place an inline custom activity.
// DurationMinutes nil defaults to 60; Timezone nil defaults to the trip's
// first destination's zone, or UTC when the trip has no destinations.
type ScheduleCustomInput struct {
	TripID          uuid.UUID
	Name            string
	Category        string
	Description     string
	EstimatedCost   *float64
	PlannedDate     time.Time
	StartTime       domain.TimeOfDay
	DurationMinutes *int
	Timezone        *string
	Notes           string
}

// ScheduleCustom places an inline custom activity on the trip calendar.
// It runs the same validate-then-place pipeline as Schedule.
func (s *SchedulingService) ScheduleCustom(ctx context.Context, in ScheduleCustomInput) (domain.TripActivity, error) {
	trip, err := s.loadTrip(ctx, in.TripID, "ScheduleCustom")
	if err != nil {
		return domain.TripActivity{}, err
	}

	if strings.TrimSpace(in.Name) == "" {
		return domain.TripActivity{}, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}

	duration := defaultCustomDurationMinutes
	if in.DurationMinutes != nil {
		duration = *in.DurationMinutes
	}

	timezone := ""
	if in.Timezone != nil {
		timezone = *in.Timezone
	} else {
		timezone, err = s.defaultTripTimezone(ctx, in.TripID)
		if err != nil {
			return domain.TripActivity{}, fmt.Errorf("service.SchedulingService.ScheduleCustom: %w", err)
		}
	}

	placement := domain.TripActivity{
		TripID:              in.TripID,
		CustomName:          strings.TrimSpace(in.Name),
		CustomCategory:      in.Category,
		CustomDescription:   in.Description,
		CustomEstimatedCost: in.EstimatedCost,
		PlannedDate:         in.PlannedDate,
		StartTime:           in.StartTime,
		DurationMinutes:     duration,
		Timezone:            timezone,
		Notes:               in.Notes,
	}

	return s.place(ctx, trip, placement, "ScheduleCustom")
}

// place runs the shared tail of both scheduling pipelines: range check, then
// conflict detection and insert under the per-trip lock.
func (s *SchedulingService) place(ctx context.Context, trip domain.Trip, placement domain.TripActivity, op string) (domain.TripActivity, error) {
	if placement.DurationMinutes <= 0 {
		return domain.TripActivity{}, fmt.Errorf("%w: duration must be positive, got %d", domain.ErrValidation, placement.DurationMinutes)
	}
	if err := schedule.ValidateDate(placement.PlannedDate, trip.StartDate, trip.EndDate); err != nil {
		return domain.TripActivity{}, err
	}

	var created domain.TripActivity
	err := s.placements.WithTripLock(ctx, trip.ID, func(r repo.TripActivityRepo) error {
		existing, err := r.ListByTrip(ctx, trip.ID)
		if err != nil {
			return err
		}

		conflicts, err := schedule.FindConflicts(candidateOf(placement), existing, uuid.Nil)
		if err != nil {
			return err
		}
		if len(conflicts) > 0 {
			return &domain.ConflictError{Conflicts: conflicts}
		}

		created, err = r.Create(ctx, placement)
		return err
	})
	if err != nil {
		// Typed rejections pass through untouched so callers can unwrap them.
		if errors.Is(err, domain.ErrConflict) || errors.Is(err, domain.ErrValidation) {
			return domain.TripActivity{}, err
		}
		return domain.TripActivity{}, fmt.Errorf("service.SchedulingService.%s: %w", op, err)
	}
	return created, nil
}

// UpdateInput carries a partial update of a scheduled placement. Nil fields
// are left unchanged. Changing any of the three timing fields re-runs the
// date-range and conflict checks; notes and custom fields never do.
type UpdateInput struct {
	PlannedDate     *time.Time
	StartTime       *domain.TimeOfDay
	DurationMinutes *int
	Notes           *string

	CustomName          *string
	CustomDescription   *string
	CustomEstimatedCost *float64
}

// UpdateScheduledActivity applies a partial update to a placement.
// When the proposed interval differs from the current one, the conflict
// check runs with the placement's own id excluded, so an unchanged or
// shifted placement never collides with its prior self.
func (s *SchedulingService) UpdateScheduledActivity(ctx context.Context, id uuid.UUID, in UpdateInput) (domain.TripActivity, error) {
	existing, err := s.loadPlacement(ctx, id, "UpdateScheduledActivity")
	if err != nil {
		return domain.TripActivity{}, err
	}

	updated := existing
	timingChanged := false

	if in.PlannedDate != nil && !sameDate(*in.PlannedDate, existing.PlannedDate) {
		updated.PlannedDate = *in.PlannedDate
		timingChanged = true
	}
	if in.StartTime != nil && *in.StartTime != existing.StartTime {
		updated.StartTime = *in.StartTime
		timingChanged = true
	}
	if in.DurationMinutes != nil {
		if *in.DurationMinutes <= 0 {
			return domain.TripActivity{}, fmt.Errorf("%w: duration must be positive, got %d", domain.ErrValidation, *in.DurationMinutes)
		}
		if *in.DurationMinutes != existing.DurationMinutes {
			updated.DurationMinutes = *in.DurationMinutes
			timingChanged = true
		}
	}

	if in.Notes != nil {
		updated.Notes = *in.Notes
	}
	if in.CustomName != nil || in.CustomDescription != nil || in.CustomEstimatedCost != nil {
		if !existing.IsCustom() {
			return domain.TripActivity{}, fmt.Errorf("%w: catalog placements have no custom fields", domain.ErrValidation)
		}
		if in.CustomName != nil {
			if strings.TrimSpace(*in.CustomName) == "" {
				return domain.TripActivity{}, fmt.Errorf("%w: name is required", domain.ErrValidation)
			}
			updated.CustomName = strings.TrimSpace(*in.CustomName)
		}
		if in.CustomDescription != nil {
			updated.CustomDescription = *in.CustomDescription
		}
		if in.CustomEstimatedCost != nil {
			updated.CustomEstimatedCost = in.CustomEstimatedCost
		}
	}

	if !timingChanged {
		result, err := s.placements.Update(ctx, updated)
		if err != nil {
			return domain.TripActivity{}, fmt.Errorf("service.SchedulingService.UpdateScheduledActivity: %w", err)
		}
		return result, nil
	}

	trip, err := s.loadTrip(ctx, existing.TripID, "UpdateScheduledActivity")
	if err != nil {
		return domain.TripActivity{}, err
	}
	if err := schedule.ValidateDate(updated.PlannedDate, trip.StartDate, trip.EndDate); err != nil {
		return domain.TripActivity{}, err
	}

	var result domain.TripActivity
	err = s.placements.WithTripLock(ctx, trip.ID, func(r repo.TripActivityRepo) error {
		current, err := r.ListByTrip(ctx, trip.ID)
		if err != nil {
			return err
		}

		conflicts, err := schedule.FindConflicts(candidateOf(updated), current, existing.ID)
		if err != nil {
			return err
		}
		if len(conflicts) > 0 {
			return &domain.ConflictError{Conflicts: conflicts}
		}

		result, err = r.Update(ctx, updated)
		return err
	})
	if err != nil {
		if errors.Is(err, domain.ErrConflict) || errors.Is(err, domain.ErrValidation) {
			return domain.TripActivity{}, err
		}
		return domain.TripActivity{}, fmt.Errorf("service.SchedulingService.UpdateScheduledActivity: %w", err)
	}
	return result, nil
}

// UpdateActualCost records what a placement actually cost. No conflict logic.
func (s *SchedulingService) UpdateActualCost(ctx context.Context, id uuid.UUID, cost float64) (domain.TripActivity, error) {
	if cost < 0 {
		return domain.TripActivity{}, fmt.Errorf("%w: actual cost must not be negative", domain.ErrValidation)
	}

	existing, err := s.loadPlacement(ctx, id, "UpdateActualCost")
	if err != nil {
		return domain.TripActivity{}, err
	}

	existing.ActualCost = &cost
	result, err := s.placements.Update(ctx, existing)
	if err != nil {
		return domain.TripActivity{}, fmt.Errorf("service.SchedulingService.UpdateActualCost: %w", err)
	}
	return result, nil
}

// RemoveActivityFromTrip deletes a placement.
// Returns ErrPlacementNotFound (without deleting anything) for unknown ids.
func (s *SchedulingService) RemoveActivityFromTrip(ctx context.Context, id uuid.UUID) error {
	if err := s.placements.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("service.SchedulingService.RemoveActivityFromTrip: %w", domain.ErrPlacementNotFound)
		}
		return fmt.Errorf("service.SchedulingService.RemoveActivityFromTrip: %w", err)
	}
	return nil
}

// GetScheduledActivities returns a trip's full calendar, ordered by
// (planned date, start time) ascending.
// Always returns a non-nil slice so callers can safely range over it.
func (s *SchedulingService) GetScheduledActivities(ctx context.Context, tripID uuid.UUID) ([]domain.TripActivity, error) {
	if _, err := s.loadTrip(ctx, tripID, "GetScheduledActivities"); err != nil {
		return nil, err
	}
	list, err := s.placements.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.SchedulingService.GetScheduledActivities: %w", err)
	}
	if list == nil {
		return []domain.TripActivity{}, nil
	}
	return list, nil
}

// GetActivitiesForDate returns the trip's placements planned for one date.
func (s *SchedulingService) GetActivitiesForDate(ctx context.Context, tripID uuid.UUID, date time.Time) ([]domain.TripActivity, error) {
	return s.GetActivitiesInDateRange(ctx, tripID, date, date)
}

// GetActivitiesInDateRange returns the trip's placements whose planned date
// falls in the inclusive [from, to] range.
func (s *SchedulingService) GetActivitiesInDateRange(ctx context.Context, tripID uuid.UUID, from, to time.Time) ([]domain.TripActivity, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: range end is before range start", domain.ErrValidation)
	}
	if _, err := s.loadTrip(ctx, tripID, "GetActivitiesInDateRange"); err != nil {
		return nil, err
	}
	list, err := s.placements.ListByTripBetween(ctx, tripID, from, to)
	if err != nil {
		return nil, fmt.Errorf("service.SchedulingService.GetActivitiesInDateRange: %w", err)
	}
	if list == nil {
		return []domain.TripActivity{}, nil
	}
	return list, nil
}

// GetTripDates returns the distinct dates that have at least one placement,
// ascending.
func (s *SchedulingService) GetTripDates(ctx context.Context, tripID uuid.UUID) ([]time.Time, error) {
	if _, err := s.loadTrip(ctx, tripID, "GetTripDates"); err != nil {
		return nil, err
	}
	dates, err := s.placements.ListDates(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.SchedulingService.GetTripDates: %w", err)
	}
	if dates == nil {
		return []time.Time{}, nil
	}
	return dates, nil
}

// CalculateTotalEstimatedCost sums the trip's estimated costs, treating
// missing values as 0. A trip with no placements totals 0.
func (s *SchedulingService) CalculateTotalEstimatedCost(ctx context.Context, tripID uuid.UUID) (float64, error) {
	if _, err := s.loadTrip(ctx, tripID, "CalculateTotalEstimatedCost"); err != nil {
		return 0, err
	}
	total, err := s.placements.SumEstimatedCost(ctx, tripID)
	if err != nil {
		return 0, fmt.Errorf("service.SchedulingService.CalculateTotalEstimatedCost: %w", err)
	}
	return total, nil
}

// CalculateTotalActualCost sums the trip's actual costs, treating missing
// values as 0. A trip with no placements totals 0.
func (s *SchedulingService) CalculateTotalActualCost(ctx context.Context, tripID uuid.UUID) (float64, error) {
	if _, err := s.loadTrip(ctx, tripID, "CalculateTotalActualCost"); err != nil {
		return 0, err
	}
	total, err := s.placements.SumActualCost(ctx, tripID)
	if err != nil {
		return 0, fmt.Errorf("service.SchedulingService.CalculateTotalActualCost: %w", err)
	}
	return total, nil
}

// --- helpers ----------------------------------------------------------------

func (s *SchedulingService) loadTrip(ctx context.Context, id uuid.UUID, op string) (domain.Trip, error) {
	trip, err := s.trips.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Trip{}, fmt.Errorf("service.SchedulingService.%s: %w", op, domain.ErrTripNotFound)
		}
		return domain.Trip{}, fmt.Errorf("service.SchedulingService.%s: %w", op, err)
	}
	return trip, nil
}

func (s *SchedulingService) loadPlacement(ctx context.Context, id uuid.UUID, op string) (domain.TripActivity, error) {
	placement, err := s.placements.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.TripActivity{}, fmt.Errorf("service.SchedulingService.%s: %w", op, domain.ErrPlacementNotFound)
		}
		return domain.TripActivity{}, fmt.Errorf("service.SchedulingService.%s: %w", op, err)
	}
	return placement, nil
}

// defaultTripTimezone resolves the zone for custom placements that omit one:
// the trip's first destination, falling back to UTC for destinationless trips.
func (s *SchedulingService) defaultTripTimezone(ctx context.Context, tripID uuid.UUID) (string, error) {
	destinations, err := s.destinations.ListByTrip(ctx, tripID)
	if err != nil {
		return "", err
	}
	if len(destinations) == 0 {
		return fallbackTimezone, nil
	}
	return destinations[0].Timezone, nil
}

func candidateOf(a domain.TripActivity) schedule.Candidate {
	return schedule.Candidate{
		PlannedDate:     a.PlannedDate,
		StartTime:       a.StartTime,
		DurationMinutes: a.DurationMinutes,
		Timezone:        a.Timezone,
	}
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
