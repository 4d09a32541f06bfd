package middleware_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/internal/handler"
	"github.com/pkordes/trip-planner/internal/middleware"
	"github.com/pkordes/trip-planner/internal/repo"
	"github.com/pkordes/trip-planner/internal/service"
)

const testOrigin = "http://localhost:5173"

func clock() time.Time { return time.Date(2024, time.June, 15, 10, 0, 0, 0, time.UTC) }

// newPlannerRouter wires CORS and the body limit in front of the real planner
// routes, in the order the server uses.
func newPlannerRouter(t *testing.T, maxBodyBytes int64) http.Handler {
	t.Helper()
	p := service.NewPlanner(repo.NewTripRepo(clock), service.Options{Now: clock})
	t.Cleanup(p.Close)

	r := chi.NewRouter()
	r.Use(middleware.NewCORSHandler([]string{testOrigin}))
	r.Use(middleware.NewMaxBodySizeHandler(maxBodyBytes))
	r.Mount("/", handler.NewServer(p, p, p, p, service.NewExportService(p, time.UTC)).Routes())
	return r
}

func send(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// selectJune drags across 2024-06-01..03 so that POST /trips has dates.
func selectJune(t *testing.T, h http.Handler) {
	t.Helper()
	require.Equal(t, http.StatusOK, send(t, h, http.MethodPost, "/selection/pointer-down", `{"date":"2024-06-01","primary":true}`).Code)
	require.Equal(t, http.StatusOK, send(t, h, http.MethodPost, "/selection/pointer-enter", `{"date":"2024-06-03"}`).Code)
	require.Equal(t, http.StatusOK, send(t, h, http.MethodPost, "/selection/pointer-up", "").Code)
}

func tripCount(t *testing.T, h http.Handler) int {
	t.Helper()
	rec := send(t, h, http.MethodGet, "/trips", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp handler.ListTripsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp.Pagination.Total
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) handler.ErrorResponse {
	t.Helper()
	var resp handler.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}
