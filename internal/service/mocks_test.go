package service_test

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tripweaver/backend/internal/domain"
	"github.com/tripweaver/backend/internal/repo"
)

// Hand-written test doubles for the repo interfaces.
// Each method is a function field; set only the ones your test needs.
// This is idiomatic Go: no mock generation library required for simple cases.

type mockTripRepo struct {
	create    func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID   func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	listPaged func(ctx context.Context, params domain.PaginationParams) ([]domain.Trip, int64, error)
	update    func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	delete    func(ctx context.Context, id uuid.UUID) error
}

func (m *mockTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.create(ctx, trip)
}
func (m *mockTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripRepo) ListPaged(ctx context.Context, params domain.PaginationParams) ([]domain.Trip, int64, error) {
	return m.listPaged(ctx, params)
}
func (m *mockTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.update(ctx, trip)
}
func (m *mockTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ repo.TripRepo = (*mockTripRepo)(nil)

type mockDestinationRepo struct {
	create       func(ctx context.Context, d domain.Destination) (domain.Destination, error)
	getByID      func(ctx context.Context, id uuid.UUID) (domain.Destination, error)
	list         func(ctx context.Context) ([]domain.Destination, error)
	attachToTrip func(ctx context.Context, tripID, destinationID uuid.UUID) error
	listByTrip   func(ctx context.Context, tripID uuid.UUID) ([]domain.Destination, error)
}

func (m *mockDestinationRepo) Create(ctx context.Context, d domain.Destination) (domain.Destination, error) {
	return m.create(ctx, d)
}
func (m *mockDestinationRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Destination, error) {
	return m.getByID(ctx, id)
}
func (m *mockDestinationRepo) List(ctx context.Context) ([]domain.Destination, error) {
	return m.list(ctx)
}
func (m *mockDestinationRepo) AttachToTrip(ctx context.Context, tripID, destinationID uuid.UUID) error {
	return m.attachToTrip(ctx, tripID, destinationID)
}
func (m *mockDestinationRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Destination, error) {
	return m.listByTrip(ctx, tripID)
}

var _ repo.DestinationRepo = (*mockDestinationRepo)(nil)

type mockActivityRepo struct {
	create            func(ctx context.Context, a domain.Activity) (domain.Activity, error)
	getByID           func(ctx context.Context, id uuid.UUID) (domain.Activity, error)
	listByDestination func(ctx context.Context, destinationID uuid.UUID) ([]domain.Activity, error)
}

func (m *mockActivityRepo) Create(ctx context.Context, a domain.Activity) (domain.Activity, error) {
	return m.create(ctx, a)
}
func (m *mockActivityRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Activity, error) {
	return m.getByID(ctx, id)
}
func (m *mockActivityRepo) ListByDestination(ctx context.Context, destinationID uuid.UUID) ([]domain.Activity, error) {
	return m.listByDestination(ctx, destinationID)
}

var _ repo.ActivityRepo = (*mockActivityRepo)(nil)

// mockTripActivityRepo doubles the placement repo. WithTripLock simply runs
// fn against the mock itself; lock semantics are the real repo's concern.
type mockTripActivityRepo struct {
	create            func(ctx context.Context, a domain.TripActivity) (domain.TripActivity, error)
	getByID           func(ctx context.Context, id uuid.UUID) (domain.TripActivity, error)
	listByTrip        func(ctx context.Context, tripID uuid.UUID) ([]domain.TripActivity, error)
	listByTripBetween func(ctx context.Context, tripID uuid.UUID, from, to time.Time) ([]domain.TripActivity, error)
	listDates         func(ctx context.Context, tripID uuid.UUID) ([]time.Time, error)
	update            func(ctx context.Context, a domain.TripActivity) (domain.TripActivity, error)
	delete            func(ctx context.Context, id uuid.UUID) error
	sumEstimatedCost  func(ctx context.Context, tripID uuid.UUID) (float64, error)
	sumActualCost     func(ctx context.Context, tripID uuid.UUID) (float64, error)
}

func (m *mockTripActivityRepo) Create(ctx context.Context, a domain.TripActivity) (domain.TripActivity, error) {
	return m.create(ctx, a)
}
func (m *mockTripActivityRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.TripActivity, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripActivityRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.TripActivity, error) {
	return m.listByTrip(ctx, tripID)
}
func (m *mockTripActivityRepo) ListByTripBetween(ctx context.Context, tripID uuid.UUID, from, to time.Time) ([]domain.TripActivity, error) {
	return m.listByTripBetween(ctx, tripID, from, to)
}
func (m *mockTripActivityRepo) ListDates(ctx context.Context, tripID uuid.UUID) ([]time.Time, error) {
	return m.listDates(ctx, tripID)
}
func (m *mockTripActivityRepo) Update(ctx context.Context, a domain.TripActivity) (domain.TripActivity, error) {
	return m.update(ctx, a)
}
func (m *mockTripActivityRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}
func (m *mockTripActivityRepo) SumEstimatedCost(ctx context.Context, tripID uuid.UUID) (float64, error) {
	return m.sumEstimatedCost(ctx, tripID)
}
func (m *mockTripActivityRepo) SumActualCost(ctx context.Context, tripID uuid.UUID) (float64, error) {
	return m.sumActualCost(ctx, tripID)
}
func (m *mockTripActivityRepo) WithTripLock(ctx context.Context, tripID uuid.UUID, fn func(repo.TripActivityRepo) error) error {
	return fn(m)
}

var _ repo.TripActivityRepo = (*mockTripActivityRepo)(nil)
