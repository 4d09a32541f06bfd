package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/internal/calendar"
	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/handler"
	"github.com/pkordes/trip-planner/internal/repo"
	"github.com/pkordes/trip-planner/internal/service"
)

// These tests drive the real planner through the router, the way the UI does.

func clock() time.Time { return time.Date(2024, time.June, 15, 10, 0, 0, 0, time.Local) }

func newPlannerHandler(t *testing.T) http.Handler {
	t.Helper()
	p := service.NewPlanner(repo.NewTripRepo(clock), service.Options{Now: clock})
	t.Cleanup(p.Close)
	return handler.NewServer(p, p, p, p, service.NewExportService(p, time.UTC)).Handler()
}

// do sends body (nil, a string, or anything JSON-encodable) and returns the
// recorder.
func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = strings.NewReader(b)
	default:
		r = jsonBody(t, b)
	}
	req := httptest.NewRequest(method, path, r)
	if r != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

// selectRange drags from..to and releases.
func selectRange(t *testing.T, h http.Handler, from, to string) {
	t.Helper()
	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/selection/pointer-down", map[string]any{"date": from, "primary": true}).Code)
	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/selection/pointer-enter", map[string]any{"date": to}).Code)
	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/selection/pointer-up", nil).Code)
}

func createTrip(t *testing.T, h http.Handler, name, from, to string) handler.TripResponse {
	t.Helper()
	selectRange(t, h, from, to)
	rec := do(t, h, http.MethodPost, "/trips", map[string]any{"name": name, "color": "#ff0000"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[handler.TripResponse](t, rec)
}

// ---- calendar --------------------------------------------------------------

func TestCalendar_GridAndNavigation(t *testing.T) {
	h := newPlannerHandler(t)

	rec := do(t, h, http.MethodGet, "/calendar", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	g := decode[calendar.Grid](t, rec)
	assert.Equal(t, "2024-06", g.Month)
	assert.Equal(t, "June", g.MonthName)
	assert.Equal(t, []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}, g.Weekdays)
	assert.Len(t, g.Rows, 6)

	rec = do(t, h, http.MethodPost, "/calendar/navigate", map[string]any{"direction": "next"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2024-07", decode[calendar.Grid](t, rec).Month)

	rec = do(t, h, http.MethodGet, "/calendar?month=2024-02", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2024-02", decode[calendar.Grid](t, rec).Month)

	rec = do(t, h, http.MethodGet, "/calendar", nil)
	assert.Equal(t, "2024-07", decode[calendar.Grid](t, rec).Month, "?month does not move the displayed month")
}

func TestCalendar_BadInput(t *testing.T) {
	h := newPlannerHandler(t)

	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodGet, "/calendar?month=June", nil).Code)
	assert.Equal(t, http.StatusUnprocessableEntity,
		do(t, h, http.MethodPost, "/calendar/navigate", map[string]any{"direction": "up"}).Code)
}

// ---- selection and menu ----------------------------------------------------

func TestSelection_Flow(t *testing.T) {
	h := newPlannerHandler(t)

	selectRange(t, h, "2024-06-12", "2024-06-10")

	s := decode[service.SelectionSnapshot](t, do(t, h, http.MethodGet, "/selection", nil))
	assert.Equal(t, "idle", s.State)
	require.NotNil(t, s.Anchor)
	assert.Equal(t, "2024-06-12", s.Anchor.String())
	assert.Equal(t, domain.Range(domain.NewDate(2024, time.June, 10), domain.NewDate(2024, time.June, 12)), s.Dates)
}

func TestSelection_MissingDate(t *testing.T) {
	h := newPlannerHandler(t)

	rec := do(t, h, http.MethodPost, "/selection/pointer-down", map[string]any{"primary": true})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMenu_Flow(t *testing.T) {
	h := newPlannerHandler(t)

	assert.Equal(t, http.StatusUnprocessableEntity, do(t, h, http.MethodPost, "/menu/open", map[string]any{"x": 1, "y": 2}).Code)

	selectRange(t, h, "2024-06-01", "2024-06-02")
	rec := do(t, h, http.MethodPost, "/menu/open", map[string]any{"x": 10, "y": 20})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, service.MenuSnapshot{Open: true, X: 10, Y: 20}, decode[service.MenuSnapshot](t, rec))

	rec = do(t, h, http.MethodPost, "/menu/click", nil)
	assert.False(t, decode[service.MenuSnapshot](t, rec).Open)
	assert.False(t, decode[service.MenuSnapshot](t, do(t, h, http.MethodGet, "/menu", nil)).Open)
}

// ---- trips and days --------------------------------------------------------

func TestTrips_CreateWithoutSelection_422(t *testing.T) {
	h := newPlannerHandler(t)

	rec := do(t, h, http.MethodPost, "/trips", map[string]any{"name": "Paris"})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "no dates selected", decodeError(t, rec).Error.Message)
}

func TestDays_ParisScenario(t *testing.T) {
	h := newPlannerHandler(t)
	trip := createTrip(t, h, "Paris", "2024-06-01", "2024-06-03")
	assert.Equal(t, 3, trip.DayCount)
	base := fmt.Sprintf("/trips/%s/days/2024-06-02", trip.ID)

	rec := do(t, h, http.MethodPost, base+"/activities", map[string]any{"time": "13:00", "description": "Lunch", "price": 15})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	rec = do(t, h, http.MethodPost, base+"/activities", map[string]any{"time": "09:00", "description": "Louvre", "price": "20"})
	require.Equal(t, http.StatusCreated, rec.Code)

	view := decode[domain.DayView](t, do(t, h, http.MethodGet, base, nil))
	require.Len(t, view.Activities, 2)
	assert.Equal(t, "Louvre", view.Activities[0].Description)
	assert.True(t, view.Spent.Equal(decimal.NewFromInt(35)))
	assert.True(t, view.Remaining.Equal(decimal.NewFromInt(65)))
	assert.Equal(t, "Sunday, June 2, 2024", view.Label)
	assert.Equal(t, "Paris", view.TripName)

	rec = do(t, h, http.MethodDelete, base+"/activities/"+view.Activities[0].ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = do(t, h, http.MethodDelete, base+"/activities/unknown", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code, "unknown id is a no-op")

	view = decode[domain.DayView](t, do(t, h, http.MethodGet, base, nil))
	assert.True(t, view.Spent.Equal(decimal.NewFromInt(15)))
}

func TestDays_RenameAndBudget(t *testing.T) {
	h := newPlannerHandler(t)
	trip := createTrip(t, h, "Paris", "2024-06-01", "2024-06-03")
	base := fmt.Sprintf("/trips/%s/days/2024-06-01", trip.ID)

	rec := do(t, h, http.MethodPut, base+"/name", map[string]any{"name": "Arrival"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Arrival", decode[domain.DayView](t, rec).Name)

	rec = do(t, h, http.MethodPut, base+"/budget", map[string]any{"budget": 60})
	require.Equal(t, http.StatusOK, rec.Code)
	view := decode[domain.DayView](t, rec)
	assert.True(t, view.Budget.Equal(decimal.NewFromInt(60)))
	assert.Equal(t, "Arrival", view.Name)

	rec = do(t, h, http.MethodPut, base+"/budget", map[string]any{"budget": -1})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	rec = do(t, h, http.MethodPut, base+"/budget", map[string]any{"budget": "abc"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestDays_ActivityRejected(t *testing.T) {
	h := newPlannerHandler(t)
	trip := createTrip(t, h, "Paris", "2024-06-01", "2024-06-03")
	base := fmt.Sprintf("/trips/%s/days/2024-06-01", trip.ID)

	rec := do(t, h, http.MethodPost, base+"/activities", map[string]any{"time": "09:00", "description": ""})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "description is required", decodeError(t, rec).Error.Message)

	rec = do(t, h, http.MethodPost, "/trips/trip-missing/days/2024-06-01/activities", map[string]any{"description": "x"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodGet, fmt.Sprintf("/trips/%s/days/June-1", trip.ID), nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDays_ForDate(t *testing.T) {
	h := newPlannerHandler(t)
	a := createTrip(t, h, "A", "2024-07-08", "2024-07-10")
	b := createTrip(t, h, "B", "2024-07-10", "2024-07-12")

	view := decode[domain.DayView](t, do(t, h, http.MethodGet, "/days/2024-07-10", nil))
	assert.Equal(t, a.ID, view.TripID)

	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/trips/"+b.ID+"/select", nil).Code)
	view = decode[domain.DayView](t, do(t, h, http.MethodGet, "/days/2024-07-10", nil))
	assert.Equal(t, b.ID, view.TripID)

	rec := do(t, h, http.MethodGet, "/days/2024-08-01", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTrips_List(t *testing.T) {
	h := newPlannerHandler(t)
	createTrip(t, h, "A", "2024-07-01", "2024-07-02")
	createTrip(t, h, "B", "2024-07-05", "2024-07-05")

	resp := decode[handler.ListTripsResponse](t, do(t, h, http.MethodGet, "/trips", nil))

	require.Len(t, resp.Data, 2)
	assert.Equal(t, "A", resp.Data[0].Name)
	assert.Equal(t, 2, resp.Data[0].DayCount)
	assert.Equal(t, 1, resp.Data[1].DayCount)
	assert.Equal(t, 2, resp.Pagination.Total)
}

// ---- export ----------------------------------------------------------------

func TestExport_ICS(t *testing.T) {
	h := newPlannerHandler(t)
	trip := createTrip(t, h, "Rome", "2024-06-20", "2024-06-21")

	rec := do(t, h, http.MethodGet, "/trips/"+trip.ID+"/calendar.ics", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/calendar; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "SUMMARY:Rome")
}

func TestExport_404(t *testing.T) {
	h := newPlannerHandler(t)

	rec := do(t, h, http.MethodGet, "/trips/trip-missing/calendar.ics", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// ---- error surface ---------------------------------------------------------

type failingExporter struct{}

func (failingExporter) ExportICS(context.Context, string) ([]byte, error) {
	return nil, fmt.Errorf("render: %w", io.ErrUnexpectedEOF)
}

func TestExport_500(t *testing.T) {
	h := handler.NewServer(nil, nil, nil, nil, failingExporter{}).Handler()

	rec := do(t, h, http.MethodGet, "/trips/trip-1/calendar.ics", nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
