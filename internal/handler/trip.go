package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/service"
)

// CreateTripRequest is the body of POST /trips. The dates come from the
// finalized selection, not the body. DailyBudget may be a number or a string.
type CreateTripRequest struct {
	Name        string          `json:"name"`
	Color       string          `json:"color"`
	DailyBudget json.RawMessage `json:"daily_budget,omitempty"`
	Currency    string          `json:"currency"`
}

// TripResponse is a trip plus its number of days.
type TripResponse struct {
	domain.Trip
	DayCount int `json:"day_count"`
}

// Pagination describes one page of a list response.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// ListTripsResponse is the body of GET /trips.
type ListTripsResponse struct {
	Data       []TripResponse `json:"data"`
	Pagination Pagination     `json:"pagination"`
}

// SelectTripResponse is the body of POST /trips/{tripId}/select. The id is
// empty when the toggle cleared the selection.
type SelectTripResponse struct {
	SelectedTripID string `json:"selected_trip_id"`
}

// CreateTrip handles POST /trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var body CreateTripRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	req, err := requestToTrip(body)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
			Error: ErrorDetail{Code: "validation_error", Message: err.Error()},
		})
		return
	}

	created, err := s.trips.SubmitNewTrip(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusCreated, tripToResponse(created))
}

// ListTrips handles GET /trips.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20, max=100).
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params := domain.NewPaginationParams(queryInt(q.Get("page")), queryInt(q.Get("limit")))
	trips, total := s.trips.ListTrips(r.Context(), params)

	data := make([]TripResponse, len(trips))
	for i, t := range trips {
		data[i] = tripToResponse(t)
	}
	writeJSON(w, http.StatusOK, ListTripsResponse{
		Data:       data,
		Pagination: Pagination{Page: params.Page, Limit: params.Limit, Total: total},
	})
}

// GetTrip handles GET /trips/{tripId}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	trip, err := s.trips.GetTrip(r.Context(), chi.URLParam(r, "tripId"))
	if err != nil {
		writeServiceError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(trip))
}

// SelectTrip handles POST /trips/{tripId}/select. Selecting the selected
// trip clears the selection.
func (s *Server) SelectTrip(w http.ResponseWriter, r *http.Request) {
	id, err := s.trips.SelectTrip(r.Context(), chi.URLParam(r, "tripId"))
	if err != nil {
		writeServiceError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusOK, SelectTripResponse{SelectedTripID: id})
}

// --- mapping helpers --------------------------------------------------------

// requestToTrip converts a CreateTripRequest body into a service request.
// Returns an error if daily_budget is present but not a number of bounded
// size.
func requestToTrip(body CreateTripRequest) (service.NewTripRequest, error) {
	req := service.NewTripRequest{
		Name:     body.Name,
		Color:    body.Color,
		Currency: body.Currency,
	}
	if raw := moneyText(body.DailyBudget); raw != "" {
		b, ok := domain.ParseMoney(raw)
		if !ok {
			return service.NewTripRequest{}, errDailyBudget
		}
		req.DailyBudget = &b
	}
	return req, nil
}

var errDailyBudget = errors.New("daily_budget must be a number")

func tripToResponse(t domain.Trip) TripResponse {
	return TripResponse{Trip: t, DayCount: len(t.Dates)}
}

// queryInt returns nil for an absent or non-numeric query value.
func queryInt(s string) *int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}
