package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/tripweaver/backend/internal/domain"
)

// tripRequest is the body for POST /trips and PUT /trips/{tripID}.
// Dates are civil YYYY-MM-DD values; both bounds are inclusive.
type tripRequest struct {
	Name      string             `json:"name"`
	StartDate openapi_types.Date `json:"start_date"`
	EndDate   openapi_types.Date `json:"end_date"`
	Status    string             `json:"status,omitempty"`
	Notes     string             `json:"notes,omitempty"`
}

type tripResponse struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	StartDate openapi_types.Date `json:"start_date"`
	EndDate   openapi_types.Date `json:"end_date"`
	Status    string             `json:"status"`
	Notes     string             `json:"notes,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// tripListResponse wraps a page of trips with the total row count so
// clients can render pagination controls.
type tripListResponse struct {
	Trips []tripResponse `json:"trips"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

func toTripResponse(t domain.Trip) tripResponse {
	return tripResponse{
		ID:        t.ID.String(),
		Name:      t.Name,
		StartDate: openapi_types.Date{Time: t.StartDate},
		EndDate:   openapi_types.Date{Time: t.EndDate},
		Status:    string(t.Status),
		Notes:     t.Notes,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func (req tripRequest) toDomain() domain.Trip {
	return domain.Trip{
		Name:      req.Name,
		StartDate: req.StartDate.Time,
		EndDate:   req.EndDate.Time,
		Status:    domain.TripStatus(req.Status),
		Notes:     req.Notes,
	}
}

// createTrip handles POST /trips.
func (s *Server) createTrip(w http.ResponseWriter, r *http.Request) {
	var req tripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	created, err := s.trips.Create(r.Context(), req.toDomain())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTripResponse(created))
}

// listTrips handles GET /trips with optional ?page= and ?limit= params.
func (s *Server) listTrips(w http.ResponseWriter, r *http.Request) {
	params := domain.NewPaginationParams(queryInt(r, "page"), queryInt(r, "limit"))

	trips, total, err := s.trips.ListPaged(r.Context(), params)
	if err != nil {
		writeError(w, err)
		return
	}

	out := tripListResponse{
		Trips: make([]tripResponse, 0, len(trips)),
		Total: total,
		Page:  params.Page,
		Limit: params.Limit,
	}
	for _, t := range trips {
		out.Trips = append(out.Trips, toTripResponse(t))
	}
	writeJSON(w, http.StatusOK, out)
}

// getTrip handles GET /trips/{tripID}.
func (s *Server) getTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "tripID")
	if err != nil {
		badRequest(w, "invalid trip id")
		return
	}

	trip, err := s.trips.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTripResponse(trip))
}

// updateTrip handles PUT /trips/{tripID}. The body carries the full trip;
// the id comes from the path.
func (s *Server) updateTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "tripID")
	if err != nil {
		badRequest(w, "invalid trip id")
		return
	}

	var req tripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	trip := req.toDomain()
	trip.ID = id

	updated, err := s.trips.Update(r.Context(), trip)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTripResponse(updated))
}

// deleteTrip handles DELETE /trips/{tripID}. Scheduled activities and
// destination links are removed by the database cascade.
func (s *Server) deleteTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "tripID")
	if err != nil {
		badRequest(w, "invalid trip id")
		return
	}

	if err := s.trips.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// attachDestination handles POST /trips/{tripID}/destinations/{destinationID}.
func (s *Server) attachDestination(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathUUID(r, "tripID")
	if err != nil {
		badRequest(w, "invalid trip id")
		return
	}
	destinationID, err := pathUUID(r, "destinationID")
	if err != nil {
		badRequest(w, "invalid destination id")
		return
	}

	if err := s.trips.AttachDestination(r.Context(), tripID, destinationID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// listTripDestinations handles GET /trips/{tripID}/destinations.
// Destinations come back in attachment order.
func (s *Server) listTripDestinations(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathUUID(r, "tripID")
	if err != nil {
		badRequest(w, "invalid trip id")
		return
	}

	destinations, err := s.trips.ListDestinations(r.Context(), tripID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, destinations)
}

// queryInt parses an optional integer query parameter, returning nil when
// absent or malformed so the caller's defaults apply.
func queryInt(r *http.Request, name string) *int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &v
}
