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

// categoryDurations supplies the default length for catalog activities
// created without one. Unknown categories fall back to 60 minutes.
var categoryDurations = map[string]int{
	"sightseeing": 120,
	"museum":      120,
	"dining":      90,
	"outdoor":     180,
	"transport":   60,
	"shopping":    60,
}

// defaultCategoryDuration applies when the category has no entry above.
const defaultCategoryDuration = 60

// ActivityService implements business logic for catalog Activity operations.
// It holds the destination repo because every activity belongs to a
// destination that must exist.
type ActivityService struct {
	destinations repo.DestinationRepo
	activities   repo.ActivityRepo
}

// NewActivityService constructs an ActivityService backed by the provided repos.
func NewActivityService(destinations repo.DestinationRepo, activities repo.ActivityRepo) *ActivityService {
	return &ActivityService{destinations: destinations, activities: activities}
}

// Create validates the activity, verifies the parent destination exists, then
// persists. A zero duration is resolved from the category defaults; an
// explicit non-positive duration is rejected, never clamped.
func (s *ActivityService) Create(ctx context.Context, a domain.Activity) (domain.Activity, error) {
	if strings.TrimSpace(a.Name) == "" {
		return domain.Activity{}, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if a.DurationMinutes < 0 {
		return domain.Activity{}, fmt.Errorf("%w: duration must be positive, got %d", domain.ErrValidation, a.DurationMinutes)
	}
	if a.DurationMinutes == 0 {
		a.DurationMinutes = categoryDuration(a.Category)
	}

	if _, err := s.destinations.GetByID(ctx, a.DestinationID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Activity{}, fmt.Errorf("service.ActivityService.Create: %w", domain.ErrDestinationNotFound)
		}
		return domain.Activity{}, fmt.Errorf("service.ActivityService.Create: %w", err)
	}

	result, err := s.activities.Create(ctx, a)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single activity by ID.
func (s *ActivityService) GetByID(ctx context.Context, id uuid.UUID) (domain.Activity, error) {
	result, err := s.activities.GetByID(ctx, id)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.GetByID: %w", err)
	}
	return result, nil
}

// ListByDestination returns all activities at a destination ordered by name.
// Always returns a non-nil slice so callers can safely range over it.
func (s *ActivityService) ListByDestination(ctx context.Context, destinationID uuid.UUID) ([]domain.Activity, error) {
	activities, err := s.activities.ListByDestination(ctx, destinationID)
	if err != nil {
		return nil, fmt.Errorf("service.ActivityService.ListByDestination: %w", err)
	}
	if activities == nil {
		return []domain.Activity{}, nil
	}
	return activities, nil
}

// categoryDuration resolves the default duration for a category,
// case-insensitively.
func categoryDuration(category string) int {
	if d, ok := categoryDurations[strings.ToLower(strings.TrimSpace(category))]; ok {
		return d
	}
	return defaultCategoryDuration
}
