package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/tripweaver/backend/internal/domain"
	"github.com/tripweaver/backend/internal/service"
)

// scheduleRequest is the body for POST /trips/{tripID}/schedule. It places a
// catalog activity on the calendar. Duration defaults to the activity's own;
// the timezone is always the activity's destination's zone.
type scheduleRequest struct {
	ActivityID      uuid.UUID          `json:"activity_id"`
	PlannedDate     openapi_types.Date `json:"planned_date"`
	StartTime       domain.TimeOfDay   `json:"start_time"`
	DurationMinutes *int               `json:"duration_minutes,omitempty"`
	Notes           string             `json:"notes,omitempty"`
}

// scheduleCustomRequest is the body for POST /trips/{tripID}/schedule/custom.
// Custom placements carry their own name and optional metadata instead of a
// catalog reference. Duration defaults to 60 minutes; timezone defaults to
// the trip's first destination, or UTC for a destination-less trip.
type scheduleCustomRequest struct {
	Name            string             `json:"name"`
	Category        string             `json:"category,omitempty"`
	Description     string             `json:"description,omitempty"`
	EstimatedCost   *float64           `json:"estimated_cost,omitempty"`
	PlannedDate     openapi_types.Date `json:"planned_date"`
	StartTime       domain.TimeOfDay   `json:"start_time"`
	DurationMinutes *int               `json:"duration_minutes,omitempty"`
	Timezone        *string            `json:"timezone,omitempty"`
	Notes           string             `json:"notes,omitempty"`
}

// updatePlacementRequest is the body for PATCH /schedule/{placementID}.
// Every field is optional; only provided fields are applied. Timing changes
// re-run the conflict check with the placement itself excluded.
type updatePlacementRequest struct {
	PlannedDate         *openapi_types.Date `json:"planned_date,omitempty"`
	StartTime           *domain.TimeOfDay   `json:"start_time,omitempty"`
	DurationMinutes     *int                `json:"duration_minutes,omitempty"`
	Notes               *string             `json:"notes,omitempty"`
	CustomName          *string             `json:"custom_name,omitempty"`
	CustomDescription   *string             `json:"custom_description,omitempty"`
	CustomEstimatedCost *float64            `json:"custom_estimated_cost,omitempty"`
}

// actualCostRequest is the body for PATCH /schedule/{placementID}/actual-cost.
type actualCostRequest struct {
	ActualCost float64 `json:"actual_cost"`
}

// placementResponse is the wire form of a scheduled placement.
type placementResponse struct {
	ID              string             `json:"id"`
	TripID          string             `json:"trip_id"`
	ActivityID      *uuid.UUID         `json:"activity_id,omitempty"`
	Name            string             `json:"name"`
	Category        string             `json:"category,omitempty"`
	Description     string             `json:"description,omitempty"`
	PlannedDate     openapi_types.Date `json:"planned_date"`
	StartTime       domain.TimeOfDay   `json:"start_time"`
	DurationMinutes int                `json:"duration_minutes"`
	Timezone        string             `json:"timezone"`
	EstimatedCost   *float64           `json:"estimated_cost,omitempty"`
	ActualCost      *float64           `json:"actual_cost,omitempty"`
	Notes           string             `json:"notes,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
}

// tripCostsResponse aggregates the trip's money columns. Estimated prefers a
// placement's own override before the catalog figure; both totals are 0 for
// an empty trip.
type tripCostsResponse struct {
	EstimatedTotal float64 `json:"estimated_total"`
	ActualTotal    float64 `json:"actual_total"`
}

func toPlacementResponse(p domain.TripActivity) placementResponse {
	return placementResponse{
		ID:              p.ID.String(),
		TripID:          p.TripID.String(),
		ActivityID:      p.ActivityID,
		Name:            p.DisplayName(),
		Category:        p.CustomCategory,
		Description:     p.CustomDescription,
		PlannedDate:     openapi_types.Date{Time: p.PlannedDate},
		StartTime:       p.StartTime,
		DurationMinutes: p.DurationMinutes,
		Timezone:        p.Timezone,
		EstimatedCost:   p.CustomEstimatedCost,
		ActualCost:      p.ActualCost,
		Notes:           p.Notes,
		CreatedAt:       p.CreatedAt,
	}
}

func toPlacementList(placements []domain.TripActivity) []placementResponse {
	out := make([]placementResponse, 0, len(placements))
	for _, p := range placements {
		out = append(out, toPlacementResponse(p))
	}
	return out
}

// scheduleActivity handles POST /trips/{tripID}/schedule.
func (s *Server) scheduleActivity(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathUUID(r, "tripID")
	if err != nil {
		badRequest(w, "invalid trip id")
		return
	}

	var req scheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	placed, err := s.scheduling.Schedule(r.Context(), service.ScheduleInput{
		TripID:          tripID,
		ActivityID:      req.ActivityID,
		PlannedDate:     req.PlannedDate.Time,
		StartTime:       req.StartTime,
		DurationMinutes: req.DurationMinutes,
		Notes:           req.Notes,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toPlacementResponse(placed))
}

// scheduleCustomActivity handles POST /trips/{tripID}/schedule/custom.
func (s *Server) scheduleCustomActivity(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathUUID(r, "tripID")
	if err != nil {
		badRequest(w, "invalid trip id")
		return
	}

	var req scheduleCustomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	placed, err := s.scheduling.ScheduleCustom(r.Context(), service.ScheduleCustomInput{
		TripID:          tripID,
		Name:            req.Name,
		Category:        req.Category,
		Description:     req.Description,
		EstimatedCost:   req.EstimatedCost,
		PlannedDate:     req.PlannedDate.Time,
		StartTime:       req.StartTime,
		DurationMinutes: req.DurationMinutes,
		Timezone:        req.Timezone,
		Notes:           req.Notes,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toPlacementResponse(placed))
}

// listSchedule handles GET /trips/{tripID}/schedule. With no query params it
// returns the whole calendar; ?date= narrows to one day; ?from=&to= to an
// inclusive range. All three orderings are (planned_date, start_time) asc.
func (s *Server) listSchedule(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathUUID(r, "tripID")
	if err != nil {
		badRequest(w, "invalid trip id")
		return
	}

	q := r.URL.Query()
	switch {
	case q.Get("date") != "":
		day, err := parseDateParam(q.Get("date"))
		if err != nil {
			badRequest(w, "invalid date, want YYYY-MM-DD")
			return
		}
		placements, err := s.scheduling.GetActivitiesForDate(r.Context(), tripID, day)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toPlacementList(placements))

	case q.Get("from") != "" || q.Get("to") != "":
		from, err := parseDateParam(q.Get("from"))
		if err != nil {
			badRequest(w, "invalid from date, want YYYY-MM-DD")
			return
		}
		to, err := parseDateParam(q.Get("to"))
		if err != nil {
			badRequest(w, "invalid to date, want YYYY-MM-DD")
			return
		}
		placements, err := s.scheduling.GetActivitiesInDateRange(r.Context(), tripID, from, to)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toPlacementList(placements))

	default:
		placements, err := s.scheduling.GetScheduledActivities(r.Context(), tripID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toPlacementList(placements))
	}
}

// listScheduleDates handles GET /trips/{tripID}/schedule/dates. It returns
// the distinct planned dates that have at least one placement, ascending.
func (s *Server) listScheduleDates(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathUUID(r, "tripID")
	if err != nil {
		badRequest(w, "invalid trip id")
		return
	}

	dates, err := s.scheduling.GetTripDates(r.Context(), tripID)
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]openapi_types.Date, 0, len(dates))
	for _, d := range dates {
		out = append(out, openapi_types.Date{Time: d})
	}
	writeJSON(w, http.StatusOK, map[string][]openapi_types.Date{"dates": out})
}

// getTripCosts handles GET /trips/{tripID}/costs.
func (s *Server) getTripCosts(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathUUID(r, "tripID")
	if err != nil {
		badRequest(w, "invalid trip id")
		return
	}

	estimated, err := s.scheduling.CalculateTotalEstimatedCost(r.Context(), tripID)
	if err != nil {
		writeError(w, err)
		return
	}
	actual, err := s.scheduling.CalculateTotalActualCost(r.Context(), tripID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tripCostsResponse{EstimatedTotal: estimated, ActualTotal: actual})
}

// updatePlacement handles PATCH /schedule/{placementID}.
func (s *Server) updatePlacement(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "placementID")
	if err != nil {
		badRequest(w, "invalid placement id")
		return
	}

	var req updatePlacementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	in := service.UpdateInput{
		StartTime:           req.StartTime,
		DurationMinutes:     req.DurationMinutes,
		Notes:               req.Notes,
		CustomName:          req.CustomName,
		CustomDescription:   req.CustomDescription,
		CustomEstimatedCost: req.CustomEstimatedCost,
	}
	if req.PlannedDate != nil {
		in.PlannedDate = &req.PlannedDate.Time
	}

	updated, err := s.scheduling.UpdateScheduledActivity(r.Context(), id, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPlacementResponse(updated))
}

// updateActualCost handles PATCH /schedule/{placementID}/actual-cost.
func (s *Server) updateActualCost(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "placementID")
	if err != nil {
		badRequest(w, "invalid placement id")
		return
	}

	var req actualCostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	updated, err := s.scheduling.UpdateActualCost(r.Context(), id, req.ActualCost)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPlacementResponse(updated))
}

// deletePlacement handles DELETE /schedule/{placementID}.
func (s *Server) deletePlacement(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "placementID")
	if err != nil {
		badRequest(w, "invalid placement id")
		return
	}

	if err := s.scheduling.RemoveActivityFromTrip(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// parseDateParam parses a YYYY-MM-DD query value as a UTC civil date.
func parseDateParam(raw string) (time.Time, error) {
	return time.Parse("2006-01-02", raw)
}
