package service

import (
	"context"
	"errors"
	"fmt"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"github.com/tripweaver/backend/internal/domain"
	"github.com/tripweaver/backend/internal/repo"
	"github.com/tripweaver/backend/internal/schedule"
)

// ExportService renders a trip's calendar as an iCalendar document, one
// VEVENT per scheduled placement at its absolute UTC interval. Calendar
// clients re-localize on display, so cross-timezone trips come out right.
type ExportService struct {
	trips      repo.TripRepo
	placements repo.TripActivityRepo
}

// NewExportService constructs an ExportService backed by the provided repos.
func NewExportService(trips repo.TripRepo, placements repo.TripActivityRepo) *ExportService {
	return &ExportService{trips: trips, placements: placements}
}

// BuildTripCalendar serializes the trip's placements as an ICS document.
// Returns domain.ErrTripNotFound when the trip does not exist.
func (s *ExportService) BuildTripCalendar(ctx context.Context, tripID uuid.UUID) (string, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", fmt.Errorf("service.ExportService.BuildTripCalendar: %w", domain.ErrTripNotFound)
		}
		return "", fmt.Errorf("service.ExportService.BuildTripCalendar: %w", err)
	}

	placements, err := s.placements.ListByTrip(ctx, tripID)
	if err != nil {
		return "", fmt.Errorf("service.ExportService.BuildTripCalendar: %w", err)
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//TripWeaver//Trip Calendar//EN")

	for _, p := range placements {
		ivl, err := schedule.AbsoluteInterval(p.PlannedDate, p.StartTime, p.DurationMinutes, p.Timezone)
		if err != nil {
			return "", fmt.Errorf("service.ExportService.BuildTripCalendar: placement %s: %w", p.ID, err)
		}

		event := cal.AddEvent(p.ID.String())
		event.SetDtStampTime(p.CreatedAt)
		event.SetStartAt(ivl.Start.UTC())
		event.SetEndAt(ivl.End.UTC())
		event.SetSummary(fmt.Sprintf("%s: %s", trip.Name, p.DisplayName()))
		if p.Notes != "" {
			event.SetDescription(p.Notes)
		}
	}

	return cal.Serialize(), nil
}
