// Package handler implements the HTTP handlers for the TripWeaver API.
// All handlers are methods on Server, split into resource-specific files
// (trip.go, schedule.go, etc.) that share the same struct so they can access
// its dependencies. Routes wires them into a chi router.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tripweaver/backend/internal/domain"
	"github.com/tripweaver/backend/internal/service"
	"github.com/tripweaver/backend/spec"
)

// TripServicer defines the business operations the trip handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type TripServicer interface {
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	ListPaged(ctx context.Context, params domain.PaginationParams) ([]domain.Trip, int64, error)
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	Delete(ctx context.Context, id uuid.UUID) error
	AttachDestination(ctx context.Context, tripID, destinationID uuid.UUID) error
	ListDestinations(ctx context.Context, tripID uuid.UUID) ([]domain.Destination, error)
}

// DestinationServicer defines the operations the destination handlers depend on.
type DestinationServicer interface {
	Create(ctx context.Context, d domain.Destination) (domain.Destination, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Destination, error)
	List(ctx context.Context) ([]domain.Destination, error)
}

// ActivityServicer defines the operations the activity-catalog handlers depend on.
type ActivityServicer interface {
	Create(ctx context.Context, a domain.Activity) (domain.Activity, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Activity, error)
	ListByDestination(ctx context.Context, destinationID uuid.UUID) ([]domain.Activity, error)
}

// SchedulingServicer defines the scheduling operations the schedule handlers
// depend on. This is the conflict-checked core of the API.
type SchedulingServicer interface {
	Schedule(ctx context.Context, in service.ScheduleInput) (domain.TripActivity, error)
	ScheduleCustom(ctx context.Context, in service.ScheduleCustomInput) (domain.TripActivity, error)
	UpdateScheduledActivity(ctx context.Context, id uuid.UUID, in service.UpdateInput) (domain.TripActivity, error)
	UpdateActualCost(ctx context.Context, id uuid.UUID, cost float64) (domain.TripActivity, error)
	RemoveActivityFromTrip(ctx context.Context, id uuid.UUID) error
	GetScheduledActivities(ctx context.Context, tripID uuid.UUID) ([]domain.TripActivity, error)
	GetActivitiesForDate(ctx context.Context, tripID uuid.UUID, date time.Time) ([]domain.TripActivity, error)
	GetActivitiesInDateRange(ctx context.Context, tripID uuid.UUID, from, to time.Time) ([]domain.TripActivity, error)
	GetTripDates(ctx context.Context, tripID uuid.UUID) ([]time.Time, error)
	CalculateTotalEstimatedCost(ctx context.Context, tripID uuid.UUID) (float64, error)
	CalculateTotalActualCost(ctx context.Context, tripID uuid.UUID) (float64, error)
}

// CalendarExporter renders a trip's schedule as an iCalendar document.
type CalendarExporter interface {
	BuildTripCalendar(ctx context.Context, tripID uuid.UUID) (string, error)
}

// Server holds the service dependencies for all API endpoints.
type Server struct {
	trips        TripServicer
	destinations DestinationServicer
	activities   ActivityServicer
	scheduling   SchedulingServicer
	exporter     CalendarExporter
}

// NewServer constructs the Server with all its dependencies.
func NewServer(trips TripServicer, destinations DestinationServicer, activities ActivityServicer, scheduling SchedulingServicer, exporter CalendarExporter) *Server {
	return &Server{
		trips:        trips,
		destinations: destinations,
		activities:   activities,
		scheduling:   scheduling,
		exporter:     exporter,
	}
}

// Routes mounts every endpoint on a fresh chi router. Middleware is wired by
// the caller (main.go) around the returned handler.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.getHealth)
	r.Get("/openapi.yaml", serveOpenAPI)

	r.Route("/trips", func(r chi.Router) {
		r.Post("/", s.createTrip)
		r.Get("/", s.listTrips)
		r.Route("/{tripID}", func(r chi.Router) {
			r.Get("/", s.getTrip)
			r.Put("/", s.updateTrip)
			r.Delete("/", s.deleteTrip)

			r.Get("/destinations", s.listTripDestinations)
			r.Post("/destinations/{destinationID}", s.attachDestination)

			r.Post("/schedule", s.scheduleActivity)
			r.Post("/schedule/custom", s.scheduleCustomActivity)
			r.Get("/schedule", s.listSchedule)
			r.Get("/schedule/dates", s.listScheduleDates)
			r.Get("/costs", s.getTripCosts)
			r.Get("/calendar.ics", s.exportCalendar)
		})
	})

	r.Route("/destinations", func(r chi.Router) {
		r.Post("/", s.createDestination)
		r.Get("/", s.listDestinations)
		r.Get("/{destinationID}", s.getDestination)
		r.Post("/{destinationID}/activities", s.createActivity)
		r.Get("/{destinationID}/activities", s.listActivities)
	})

	r.Get("/activities/{activityID}", s.getActivity)

	r.Route("/schedule/{placementID}", func(r chi.Router) {
		r.Patch("/", s.updatePlacement)
		r.Patch("/actual-cost", s.updateActualCost)
		r.Delete("/", s.deletePlacement)
	})

	return r
}

// getHealth handles GET /healthz. It returns 200 with {"status":"ok"}
// whenever the server is running.
func (s *Server) getHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// serveOpenAPI serves the OpenAPI document embedded in the binary, so the
// published API description always matches the running code.
func serveOpenAPI(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(spec.OpenAPI)
}

// pathUUID parses the named chi URL parameter as a UUID.
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, name))
}
