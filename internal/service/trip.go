package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/tripweaver/backend/internal/domain"
	"github.com/tripweaver/backend/internal/repo"
)

// TripService implements business logic for Trip operations, including the
// ordered attachment of destinations.
type TripService struct {
	trips        repo.TripRepo
	destinations repo.DestinationRepo
}

// NewTripService constructs a TripService backed by the provided repos.
func NewTripService(trips repo.TripRepo, destinations repo.DestinationRepo) *TripService {
	return &TripService{trips: trips, destinations: destinations}
}

// Create validates and persists a new trip.
// An empty status defaults to draft.
func (s *TripService) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	if trip.Status == "" {
		trip.Status = domain.TripStatusDraft
	}
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, err
	}
	result, err := s.trips.Create(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single trip by ID.
func (s *TripService) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	result, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return result, nil
}

// ListPaged returns one page of trips plus the total count.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) ListPaged(ctx context.Context, params domain.PaginationParams) ([]domain.Trip, int64, error) {
	trips, total, err := s.trips.ListPaged(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("service.TripService.ListPaged: %w", err)
	}
	if trips == nil {
		trips = []domain.Trip{}
	}
	return trips, total, nil
}

// Update validates and updates an existing trip.
func (s *TripService) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, err
	}
	result, err := s.trips.Update(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a trip by ID, cascading to its scheduled activities.
func (s *TripService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.trips.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

// AttachDestination links an existing destination to the trip, appended to
// the trip's ordered destination set. The first attached destination becomes
// the trip's default timezone source for custom placements.
func (s *TripService) AttachDestination(ctx context.Context, tripID, destinationID uuid.UUID) error {
	if _, err := s.trips.GetByID(ctx, tripID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("service.TripService.AttachDestination: %w", domain.ErrTripNotFound)
		}
		return fmt.Errorf("service.TripService.AttachDestination: %w", err)
	}
	if _, err := s.destinations.GetByID(ctx, destinationID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("service.TripService.AttachDestination: %w", domain.ErrDestinationNotFound)
		}
		return fmt.Errorf("service.TripService.AttachDestination: %w", err)
	}
	if err := s.destinations.AttachToTrip(ctx, tripID, destinationID); err != nil {
		return fmt.Errorf("service.TripService.AttachDestination: %w", err)
	}
	return nil
}

// ListDestinations returns the trip's destinations in attachment order.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) ListDestinations(ctx context.Context, tripID uuid.UUID) ([]domain.Destination, error) {
	if _, err := s.trips.GetByID(ctx, tripID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("service.TripService.ListDestinations: %w", domain.ErrTripNotFound)
		}
		return nil, fmt.Errorf("service.TripService.ListDestinations: %w", err)
	}
	destinations, err := s.destinations.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.ListDestinations: %w", err)
	}
	if destinations == nil {
		return []domain.Destination{}, nil
	}
	return destinations, nil
}

// validateTrip enforces business rules common to both Create and Update.
//   - Name must be non-empty (whitespace-only names are rejected).
//   - EndDate must not be before StartDate (same-day trips are valid).
//   - Status must be one of the known lifecycle states.
func validateTrip(trip domain.Trip) error {
	if strings.TrimSpace(trip.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if trip.StartDate.IsZero() || trip.EndDate.IsZero() {
		return fmt.Errorf("%w: start_date and end_date are required", domain.ErrValidation)
	}
	if trip.EndDate.Before(trip.StartDate) {
		return fmt.Errorf("%w: end_date must not be before start_date", domain.ErrValidation)
	}
	if !trip.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", domain.ErrValidation, trip.Status)
	}
	return nil
}
