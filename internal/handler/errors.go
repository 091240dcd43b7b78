package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/tripweaver/backend/internal/domain"
)

// errorDetail is the machine-readable part of every error body.
type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// errorResponse is the JSON envelope returned for every non-2xx status.
// Conflicts carry the full conflicting set so clients can render
// "conflicts with X (start–end)" without a second round trip.
type errorResponse struct {
	Error     errorDetail        `json:"error"`
	Conflicts []conflictResponse `json:"conflicts,omitempty"`
}

type conflictResponse struct {
	PlacementID string             `json:"placement_id"`
	Name        string             `json:"name"`
	PlannedDate openapi_types.Date `json:"planned_date"`
	Start       string             `json:"start"`
	End         string             `json:"end"`
}

// writeJSON writes v as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps a service-layer error onto the HTTP surface:
// not-found sentinels become 404, conflicts 409 with the conflict list,
// validation failures (including bad timezones and out-of-range dates) 422,
// and anything else 500 with a generic body.
func writeError(w http.ResponseWriter, err error) {
	var conflict *domain.ConflictError
	if errors.As(err, &conflict) {
		body := errorResponse{
			Error: errorDetail{Code: "scheduling_conflict", Message: conflict.Error()},
		}
		for _, c := range conflict.Conflicts {
			body.Conflicts = append(body.Conflicts, conflictResponse{
				PlacementID: c.PlacementID.String(),
				Name:        c.Name,
				PlannedDate: openapi_types.Date{Time: c.PlannedDate},
				Start:       c.Start.UTC().Format("2006-01-02T15:04:05Z"),
				End:         c.End.UTC().Format("2006-01-02T15:04:05Z"),
			})
		}
		writeJSON(w, http.StatusConflict, body)
		return
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{
			Error: errorDetail{Code: "not_found", Message: unwrapMessage(err)},
		})
	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error: errorDetail{Code: "validation_error", Message: unwrapMessage(err)},
		})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error: errorDetail{Code: "internal_error", Message: "internal server error"},
		})
	}
}

// badRequest rejects a request before it reaches the service layer
// (malformed JSON, unparseable path or query parameter).
func badRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{
		Error: errorDetail{Code: "bad_request", Message: message},
	})
}

// unwrapMessage strips the "layer.Type.Method:" wrapping prefixes so the
// client sees only the human-readable tail.
// e.g. "service.TripService.Create: validation error: name is required"
// → "validation error: name is required".
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	for strings.HasPrefix(msg, "service.") {
		i := strings.Index(msg, ": ")
		if i < 0 {
			break
		}
		msg = msg[i+2:]
	}
	return msg
}
