// Package handler implements the HTTP handlers for the trip planner API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (calendar.go, selection.go, trip.go, day.go, ...) but all share the
// same Server struct so they can access its dependencies.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/trip-planner/internal/calendar"
	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/service"
)

// CalendarServicer drives the month grid.
type CalendarServicer interface {
	Grid(ctx context.Context) calendar.Grid
	GridFor(ctx context.Context, m calendar.Month) calendar.Grid
	Navigate(ctx context.Context, direction string) (calendar.Grid, error)
}

// SelectionServicer receives pointer and document events for the drag
// selection and the context menu.
type SelectionServicer interface {
	PointerDown(ctx context.Context, date domain.Date, primary bool) service.SelectionSnapshot
	PointerEnter(ctx context.Context, date domain.Date) service.SelectionSnapshot
	PointerUp(ctx context.Context) service.SelectionSnapshot
	Selection(ctx context.Context) service.SelectionSnapshot
	OpenMenu(ctx context.Context, x, y int) (service.MenuSnapshot, error)
	DocumentClick(ctx context.Context) service.MenuSnapshot
	Menu(ctx context.Context) service.MenuSnapshot
}

// TripServicer defines the trip operations the trip handlers depend on.
// Defining the interface here (in the consumer package) lets handler tests
// inject a mock without touching the service layer.
type TripServicer interface {
	SubmitNewTrip(ctx context.Context, req service.NewTripRequest) (domain.Trip, error)
	ListTrips(ctx context.Context, params domain.PaginationParams) ([]domain.Trip, int)
	GetTrip(ctx context.Context, id string) (domain.Trip, error)
	SelectTrip(ctx context.Context, id string) (string, error)
}

// DayServicer defines the day-detail operations.
type DayServicer interface {
	DayDetail(ctx context.Context, tripID string, d domain.Date) (domain.DayView, error)
	DayDetailForDate(ctx context.Context, d domain.Date) (domain.DayView, error)
	RenameDay(ctx context.Context, tripID string, d domain.Date, name string) (domain.DayView, error)
	SetDayBudget(ctx context.Context, tripID string, d domain.Date, raw string) (domain.DayView, error)
	AddActivity(ctx context.Context, tripID string, d domain.Date, req service.ActivityRequest) (domain.DayView, error)
	DeleteActivity(ctx context.Context, tripID string, d domain.Date, activityID string) (domain.DayView, error)
}

// Exporter renders a trip as an iCalendar document.
type Exporter interface {
	ExportICS(ctx context.Context, tripID string) ([]byte, error)
}

// Server holds the handler dependencies. Wire it in main.go via Routes.
type Server struct {
	calendar  CalendarServicer
	selection SelectionServicer
	trips     TripServicer
	days      DayServicer
	export    Exporter
}

// NewServer constructs the Server with all its dependencies. In production a
// single *service.Planner serves the first four.
func NewServer(cal CalendarServicer, sel SelectionServicer, trips TripServicer, days DayServicer, export Exporter) *Server {
	return &Server{calendar: cal, selection: sel, trips: trips, days: days, export: export}
}

// NewHealthHandler returns a Server for health-check-only use.
func NewHealthHandler() *Server {
	return &Server{}
}

// Routes returns a chi router serving every endpoint.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)

	r.Route("/calendar", func(r chi.Router) {
		r.Get("/", s.GetCalendar)
		r.Post("/navigate", s.NavigateCalendar)
	})

	r.Route("/selection", func(r chi.Router) {
		r.Get("/", s.GetSelection)
		r.Post("/pointer-down", s.PointerDown)
		r.Post("/pointer-enter", s.PointerEnter)
		r.Post("/pointer-up", s.PointerUp)
	})

	r.Route("/menu", func(r chi.Router) {
		r.Get("/", s.GetMenu)
		r.Post("/open", s.OpenMenu)
		r.Post("/click", s.DocumentClick)
	})

	r.Route("/trips", func(r chi.Router) {
		r.Post("/", s.CreateTrip)
		r.Get("/", s.ListTrips)
		r.Route("/{tripId}", func(r chi.Router) {
			r.Get("/", s.GetTrip)
			r.Post("/select", s.SelectTrip)
			r.Get("/calendar.ics", s.ExportTrip)
			r.Route("/days/{date}", func(r chi.Router) {
				r.Get("/", s.GetDay)
				r.Put("/name", s.RenameDay)
				r.Put("/budget", s.SetDayBudget)
				r.Post("/activities", s.AddActivity)
				r.Delete("/activities/{activityId}", s.DeleteActivity)
			})
		})
	})

	r.Get("/days/{date}", s.GetDayForDate)

	return r
}

// Handler is Routes as a plain http.Handler.
func (s *Server) Handler() http.Handler {
	return s.Routes()
}
