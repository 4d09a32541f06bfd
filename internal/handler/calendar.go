package handler

import (
	"net/http"

	"github.com/pkordes/trip-planner/internal/calendar"
)

// NavigateRequest is the body of POST /calendar/navigate.
type NavigateRequest struct {
	Direction string `json:"direction"`
}

// GetCalendar handles GET /calendar.
// ?month=YYYY-MM renders that month without moving the displayed one.
func (s *Server) GetCalendar(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("month")
	if raw == "" {
		writeJSON(w, http.StatusOK, s.calendar.Grid(r.Context()))
		return
	}
	m, err := calendar.ParseMonth(raw)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody("month must be YYYY-MM"))
		return
	}
	writeJSON(w, http.StatusOK, s.calendar.GridFor(r.Context(), m))
}

// NavigateCalendar handles POST /calendar/navigate.
func (s *Server) NavigateCalendar(w http.ResponseWriter, r *http.Request) {
	var body NavigateRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	g, err := s.calendar.Navigate(r.Context(), body.Direction)
	if err != nil {
		writeServiceError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, g)
}
