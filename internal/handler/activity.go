package handler

import (
	"encoding/json"
	"net/http"

	"github.com/tripweaver/backend/internal/domain"
)

// activityRequest is the body for POST /destinations/{destinationID}/activities.
// A zero duration picks up the category default (museums 120, dining 90, and
// so on); an explicit duration must be positive.
type activityRequest struct {
	Name            string   `json:"name"`
	Category        string   `json:"category,omitempty"`
	Description     string   `json:"description,omitempty"`
	DurationMinutes int      `json:"duration_minutes,omitempty"`
	EstimatedCost   *float64 `json:"estimated_cost,omitempty"`
}

// createActivity handles POST /destinations/{destinationID}/activities.
func (s *Server) createActivity(w http.ResponseWriter, r *http.Request) {
	destinationID, err := pathUUID(r, "destinationID")
	if err != nil {
		badRequest(w, "invalid destination id")
		return
	}

	var req activityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	created, err := s.activities.Create(r.Context(), domain.Activity{
		DestinationID:   destinationID,
		Name:            req.Name,
		Category:        req.Category,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		EstimatedCost:   req.EstimatedCost,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// listActivities handles GET /destinations/{destinationID}/activities.
func (s *Server) listActivities(w http.ResponseWriter, r *http.Request) {
	destinationID, err := pathUUID(r, "destinationID")
	if err != nil {
		badRequest(w, "invalid destination id")
		return
	}

	activities, err := s.activities.ListByDestination(r.Context(), destinationID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, activities)
}

// getActivity handles GET /activities/{activityID}.
func (s *Server) getActivity(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "activityID")
	if err != nil {
		badRequest(w, "invalid activity id")
		return
	}

	activity, err := s.activities.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, activity)
}
