package handler

import (
	"encoding/json"
	"net/http"

	"github.com/tripweaver/backend/internal/domain"
)

// destinationRequest is the body for POST /destinations. A blank timezone
// is stored as "UTC"; a non-blank one must be a recognized IANA identifier.
type destinationRequest struct {
	Name     string `json:"name"`
	Country  string `json:"country,omitempty"`
	Timezone string `json:"timezone,omitempty"`
}

// createDestination handles POST /destinations.
func (s *Server) createDestination(w http.ResponseWriter, r *http.Request) {
	var req destinationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	created, err := s.destinations.Create(r.Context(), domain.Destination{
		Name:     req.Name,
		Country:  req.Country,
		Timezone: req.Timezone,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// listDestinations handles GET /destinations.
func (s *Server) listDestinations(w http.ResponseWriter, r *http.Request) {
	destinations, err := s.destinations.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, destinations)
}

// getDestination handles GET /destinations/{destinationID}.
func (s *Server) getDestination(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "destinationID")
	if err != nil {
		badRequest(w, "invalid destination id")
		return
	}

	destination, err := s.destinations.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, destination)
}
