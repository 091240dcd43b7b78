package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tripweaver/backend/internal/domain"
	"github.com/tripweaver/backend/internal/repo"
)

// DestinationService implements business logic for Destination operations.
type DestinationService struct {
	destinations repo.DestinationRepo
}

// NewDestinationService constructs a DestinationService backed by the provided repo.
func NewDestinationService(destinations repo.DestinationRepo) *DestinationService {
	return &DestinationService{destinations: destinations}
}

// Create validates and persists a new destination.
// A blank timezone is substituted with "UTC" here, at the ingestion boundary,
// so the scheduling engine only ever sees resolvable identifiers. A non-blank
// timezone must be a recognized IANA zone.
func (s *DestinationService) Create(ctx context.Context, d domain.Destination) (domain.Destination, error) {
	if strings.TrimSpace(d.Name) == "" {
		return domain.Destination{}, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if strings.TrimSpace(d.Timezone) == "" {
		d.Timezone = fallbackTimezone
	} else if _, err := time.LoadLocation(d.Timezone); err != nil {
		return domain.Destination{}, fmt.Errorf("%w: %q", domain.ErrInvalidTimezone, d.Timezone)
	}

	result, err := s.destinations.Create(ctx, d)
	if err != nil {
		return domain.Destination{}, fmt.Errorf("service.DestinationService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single destination by ID.
func (s *DestinationService) GetByID(ctx context.Context, id uuid.UUID) (domain.Destination, error) {
	result, err := s.destinations.GetByID(ctx, id)
	if err != nil {
		return domain.Destination{}, fmt.Errorf("service.DestinationService.GetByID: %w", err)
	}
	return result, nil
}

// List returns all destinations ordered by name.
// Always returns a non-nil slice so callers can safely range over it.
func (s *DestinationService) List(ctx context.Context) ([]domain.Destination, error) {
	destinations, err := s.destinations.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.DestinationService.List: %w", err)
	}
	if destinations == nil {
		return []domain.Destination{}, nil
	}
	return destinations, nil
}
