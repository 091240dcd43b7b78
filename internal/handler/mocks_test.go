package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/tripweaver/backend/internal/domain"
	"github.com/tripweaver/backend/internal/handler"
	"github.com/tripweaver/backend/internal/service"
)

// Test doubles for the handler's consumer interfaces. Each method is a
// function field; set only the ones a test needs.

type mockTripServicer struct {
	create            func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID           func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	listPaged         func(ctx context.Context, params domain.PaginationParams) ([]domain.Trip, int64, error)
	update            func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	delete            func(ctx context.Context, id uuid.UUID) error
	attachDestination func(ctx context.Context, tripID, destinationID uuid.UUID) error
	listDestinations  func(ctx context.Context, tripID uuid.UUID) ([]domain.Destination, error)
}

func (m *mockTripServicer) Create(ctx context.Context, t domain.Trip) (domain.Trip, error) {
	return m.create(ctx, t)
}
func (m *mockTripServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripServicer) ListPaged(ctx context.Context, params domain.PaginationParams) ([]domain.Trip, int64, error) {
	return m.listPaged(ctx, params)
}
func (m *mockTripServicer) Update(ctx context.Context, t domain.Trip) (domain.Trip, error) {
	return m.update(ctx, t)
}
func (m *mockTripServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}
func (m *mockTripServicer) AttachDestination(ctx context.Context, tripID, destinationID uuid.UUID) error {
	return m.attachDestination(ctx, tripID, destinationID)
}
func (m *mockTripServicer) ListDestinations(ctx context.Context, tripID uuid.UUID) ([]domain.Destination, error) {
	return m.listDestinations(ctx, tripID)
}

var _ handler.TripServicer = (*mockTripServicer)(nil)

type mockDestinationServicer struct {
	create  func(ctx context.Context, d domain.Destination) (domain.Destination, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.Destination, error)
	list    func(ctx context.Context) ([]domain.Destination, error)
}

func (m *mockDestinationServicer) Create(ctx context.Context, d domain.Destination) (domain.Destination, error) {
	return m.create(ctx, d)
}
func (m *mockDestinationServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.Destination, error) {
	return m.getByID(ctx, id)
}
func (m *mockDestinationServicer) List(ctx context.Context) ([]domain.Destination, error) {
	return m.list(ctx)
}

var _ handler.DestinationServicer = (*mockDestinationServicer)(nil)

type mockActivityServicer struct {
	create            func(ctx context.Context, a domain.Activity) (domain.Activity, error)
	getByID           func(ctx context.Context, id uuid.UUID) (domain.Activity, error)
	listByDestination func(ctx context.Context, destinationID uuid.UUID) ([]domain.Activity, error)
}

func (m *mockActivityServicer) Create(ctx context.Context, a domain.Activity) (domain.Activity, error) {
	return m.create(ctx, a)
}
func (m *mockActivityServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.Activity, error) {
	return m.getByID(ctx, id)
}
func (m *mockActivityServicer) ListByDestination(ctx context.Context, destinationID uuid.UUID) ([]domain.Activity, error) {
	return m.listByDestination(ctx, destinationID)
}

var _ handler.ActivityServicer = (*mockActivityServicer)(nil)

type mockSchedulingServicer struct {
	schedule                 func(ctx context.Context, in service.ScheduleInput) (domain.TripActivity, error)
	scheduleCustom           func(ctx context.Context, in service.ScheduleCustomInput) (domain.TripActivity, error)
	updateScheduledActivity  func(ctx context.Context, id uuid.UUID, in service.UpdateInput) (domain.TripActivity, error)
	updateActualCost         func(ctx context.Context, id uuid.UUID, cost float64) (domain.TripActivity, error)
	removeActivityFromTrip   func(ctx context.Context, id uuid.UUID) error
	getScheduledActivities   func(ctx context.Context, tripID uuid.UUID) ([]domain.TripActivity, error)
	getActivitiesForDate     func(ctx context.Context, tripID uuid.UUID, date time.Time) ([]domain.TripActivity, error)
	getActivitiesInDateRange func(ctx context.Context, tripID uuid.UUID, from, to time.Time) ([]domain.TripActivity, error)
	getTripDates             func(ctx context.Context, tripID uuid.UUID) ([]time.Time, error)
	totalEstimatedCost       func(ctx context.Context, tripID uuid.UUID) (float64, error)
	totalActualCost          func(ctx context.Context, tripID uuid.UUID) (float64, error)
}

func (m *mockSchedulingServicer) Schedule(ctx context.Context, in service.ScheduleInput) (domain.TripActivity, error) {
	return m.schedule(ctx, in)
}
func (m *mockSchedulingServicer) ScheduleCustom(ctx context.Context, in service.ScheduleCustomInput) (domain.TripActivity, error) {
	return m.scheduleCustom(ctx, in)
}
func (m *mockSchedulingServicer) UpdateScheduledActivity(ctx context.Context, id uuid.UUID, in service.UpdateInput) (domain.TripActivity, error) {
	return m.updateScheduledActivity(ctx, id, in)
}
func (m *mockSchedulingServicer) UpdateActualCost(ctx context.Context, id uuid.UUID, cost float64) (domain.TripActivity, error) {
	return m.updateActualCost(ctx, id, cost)
}
func (m *mockSchedulingServicer) RemoveActivityFromTrip(ctx context.Context, id uuid.UUID) error {
	return m.removeActivityFromTrip(ctx, id)
}
func (m *mockSchedulingServicer) GetScheduledActivities(ctx context.Context, tripID uuid.UUID) ([]domain.TripActivity, error) {
	return m.getScheduledActivities(ctx, tripID)
}
func (m *mockSchedulingServicer) GetActivitiesForDate(ctx context.Context, tripID uuid.UUID, date time.Time) ([]domain.TripActivity, error) {
	return m.getActivitiesForDate(ctx, tripID, date)
}
func (m *mockSchedulingServicer) GetActivitiesInDateRange(ctx context.Context, tripID uuid.UUID, from, to time.Time) ([]domain.TripActivity, error) {
	return m.getActivitiesInDateRange(ctx, tripID, from, to)
}
func (m *mockSchedulingServicer) GetTripDates(ctx context.Context, tripID uuid.UUID) ([]time.Time, error) {
	return m.getTripDates(ctx, tripID)
}
func (m *mockSchedulingServicer) CalculateTotalEstimatedCost(ctx context.Context, tripID uuid.UUID) (float64, error) {
	return m.totalEstimatedCost(ctx, tripID)
}
func (m *mockSchedulingServicer) CalculateTotalActualCost(ctx context.Context, tripID uuid.UUID) (float64, error) {
	return m.totalActualCost(ctx, tripID)
}

var _ handler.SchedulingServicer = (*mockSchedulingServicer)(nil)

type mockExporter struct {
	build func(ctx context.Context, tripID uuid.UUID) (string, error)
}

func (m *mockExporter) BuildTripCalendar(ctx context.Context, tripID uuid.UUID) (string, error) {
	return m.build(ctx, tripID)
}

var _ handler.CalendarExporter = (*mockExporter)(nil)

// ---- helpers ---------------------------------------------------------------

// serverDeps collects everything NewServer needs; zero values are usable for
// routes a test never hits.
type serverDeps struct {
	trips        *mockTripServicer
	destinations *mockDestinationServicer
	activities   *mockActivityServicer
	scheduling   *mockSchedulingServicer
	exporter     *mockExporter
}

// newTestRouter wires the Server exactly the way main.go does.
func newTestRouter(d serverDeps) http.Handler {
	if d.trips == nil {
		d.trips = &mockTripServicer{}
	}
	if d.destinations == nil {
		d.destinations = &mockDestinationServicer{}
	}
	if d.activities == nil {
		d.activities = &mockActivityServicer{}
	}
	if d.scheduling == nil {
		d.scheduling = &mockSchedulingServicer{}
	}
	if d.exporter == nil {
		d.exporter = &mockExporter{}
	}
	return handler.NewServer(d.trips, d.destinations, d.activities, d.scheduling, d.exporter).Routes()
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func decodeJSON(t *testing.T, body []byte, into any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(body, into))
}
