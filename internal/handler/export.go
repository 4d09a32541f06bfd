package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// ExportTrip handles GET /trips/{tripId}/calendar.ics.
// The body is an iCalendar document served as an attachment.
func (s *Server) ExportTrip(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "tripId")
	body, err := s.export.ExportICS(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, "trip not found")
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+id+`.ics"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck
	w.Write(body)
}
