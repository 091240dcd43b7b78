package handler

import "net/http"

// exportCalendar handles GET /trips/{tripID}/calendar.ics. It streams the
// trip's schedule as an iCalendar document, one VEVENT per placement at its
// absolute UTC interval. Calendar clients re-localize on display, so a
// cross-timezone trip renders correctly everywhere.
func (s *Server) exportCalendar(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathUUID(r, "tripID")
	if err != nil {
		badRequest(w, "invalid trip id")
		return
	}

	doc, err := s.exporter.BuildTripCalendar(r.Context(), tripID)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="trip.ics"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(doc))
}
