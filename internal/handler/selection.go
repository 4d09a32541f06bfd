package handler

import (
	"net/http"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/trip-planner/internal/domain"
)

// PointerDownRequest is the body of POST /selection/pointer-down.
// Primary is false for any button other than the main one.
type PointerDownRequest struct {
	Date    openapi_types.Date `json:"date"`
	Primary bool               `json:"primary"`
}

// PointerEnterRequest is the body of POST /selection/pointer-enter.
type PointerEnterRequest struct {
	Date openapi_types.Date `json:"date"`
}

// OpenMenuRequest is the body of POST /menu/open.
type OpenMenuRequest struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// PointerDown handles POST /selection/pointer-down.
func (s *Server) PointerDown(w http.ResponseWriter, r *http.Request) {
	var body PointerDownRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	d, ok := bodyDate(w, body.Date)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.selection.PointerDown(r.Context(), d, body.Primary))
}

// PointerEnter handles POST /selection/pointer-enter.
func (s *Server) PointerEnter(w http.ResponseWriter, r *http.Request) {
	var body PointerEnterRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	d, ok := bodyDate(w, body.Date)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.selection.PointerEnter(r.Context(), d))
}

// PointerUp handles POST /selection/pointer-up, a release anywhere in the
// document.
func (s *Server) PointerUp(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.selection.PointerUp(r.Context()))
}

// GetSelection handles GET /selection.
func (s *Server) GetSelection(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.selection.Selection(r.Context()))
}

// OpenMenu handles POST /menu/open. 422 when nothing is selected.
func (s *Server) OpenMenu(w http.ResponseWriter, r *http.Request) {
	var body OpenMenuRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	m, err := s.selection.OpenMenu(r.Context(), body.X, body.Y)
	if err != nil {
		writeServiceError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// DocumentClick handles POST /menu/click, a click anywhere in the document.
func (s *Server) DocumentClick(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.selection.DocumentClick(r.Context()))
}

// GetMenu handles GET /menu.
func (s *Server) GetMenu(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.selection.Menu(r.Context()))
}

// bodyDate converts a required body date, writing a 400 when it is absent.
func bodyDate(w http.ResponseWriter, d openapi_types.Date) (domain.Date, bool) {
	if d.IsZero() {
		writeJSON(w, http.StatusBadRequest, requestBody("date is required"))
		return domain.Date{}, false
	}
	return domain.DateOf(d.Time), true
}
