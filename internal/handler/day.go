package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/service"
)

// RenameDayRequest is the body of PUT .../days/{date}/name.
type RenameDayRequest struct {
	Name string `json:"name"`
}

// SetDayBudgetRequest is the body of PUT .../days/{date}/budget. Budget may
// be a number or a string.
type SetDayBudgetRequest struct {
	Budget json.RawMessage `json:"budget"`
}

// AddActivityRequest is the body of POST .../days/{date}/activities. Time is
// "HH:MM" and defaults to 12:00; Price may be a number or a string.
type AddActivityRequest struct {
	Time        string          `json:"time"`
	Description string          `json:"description"`
	Price       json.RawMessage `json:"price,omitempty"`
}

// GetDay handles GET /trips/{tripId}/days/{date}.
func (s *Server) GetDay(w http.ResponseWriter, r *http.Request) {
	d, ok := pathDate(w, r)
	if !ok {
		return
	}
	view, err := s.days.DayDetail(r.Context(), chi.URLParam(r, "tripId"), d)
	if err != nil {
		writeServiceError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// GetDayForDate handles GET /days/{date}: the day view of whichever trip owns
// the date, preferring the selected trip.
func (s *Server) GetDayForDate(w http.ResponseWriter, r *http.Request) {
	d, ok := pathDate(w, r)
	if !ok {
		return
	}
	view, err := s.days.DayDetailForDate(r.Context(), d)
	if err != nil {
		writeServiceError(w, r, err, "no trip on "+d.String())
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// RenameDay handles PUT /trips/{tripId}/days/{date}/name.
func (s *Server) RenameDay(w http.ResponseWriter, r *http.Request) {
	d, ok := pathDate(w, r)
	if !ok {
		return
	}
	var body RenameDayRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	view, err := s.days.RenameDay(r.Context(), chi.URLParam(r, "tripId"), d, body.Name)
	s.writeDay(w, r, view, err, http.StatusOK)
}

// SetDayBudget handles PUT /trips/{tripId}/days/{date}/budget.
func (s *Server) SetDayBudget(w http.ResponseWriter, r *http.Request) {
	d, ok := pathDate(w, r)
	if !ok {
		return
	}
	var body SetDayBudgetRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	view, err := s.days.SetDayBudget(r.Context(), chi.URLParam(r, "tripId"), d, moneyText(body.Budget))
	s.writeDay(w, r, view, err, http.StatusOK)
}

// AddActivity handles POST /trips/{tripId}/days/{date}/activities.
func (s *Server) AddActivity(w http.ResponseWriter, r *http.Request) {
	d, ok := pathDate(w, r)
	if !ok {
		return
	}
	var body AddActivityRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	view, err := s.days.AddActivity(r.Context(), chi.URLParam(r, "tripId"), d, service.ActivityRequest{
		Time:        body.Time,
		Description: body.Description,
		Price:       moneyText(body.Price),
	})
	s.writeDay(w, r, view, err, http.StatusCreated)
}

// DeleteActivity handles DELETE /trips/{tripId}/days/{date}/activities/{activityId}.
// An unknown activity id is not an error.
func (s *Server) DeleteActivity(w http.ResponseWriter, r *http.Request) {
	d, ok := pathDate(w, r)
	if !ok {
		return
	}
	_, err := s.days.DeleteActivity(r.Context(), chi.URLParam(r, "tripId"), d, chi.URLParam(r, "activityId"))
	if err != nil {
		writeServiceError(w, r, err, "trip not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) writeDay(w http.ResponseWriter, r *http.Request, view domain.DayView, err error, status int) {
	if err != nil {
		writeServiceError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, status, view)
}
