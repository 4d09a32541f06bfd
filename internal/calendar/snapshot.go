package calendar

import (
	"github.com/pkordes/trip-planner/internal/domain"
)

// State is everything a grid is classified against.
type State struct {
	Today          domain.Date
	Selection      []domain.Date
	Trips          []domain.Trip
	SelectedTripID string
}

// TripMarker is a trip shown on a cell (a coloured dot in the UI).
type TripMarker struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Color    string `json:"color"`
	Selected bool   `json:"selected"`
}

// Cell is one classified date of the grid.
type Cell struct {
	Date           domain.Date  `json:"date"`
	Day            int          `json:"day"`
	IsToday        bool         `json:"is_today"`
	InMonth        bool         `json:"in_month"`
	Selected       bool         `json:"selected"`
	InSelectedTrip bool         `json:"in_selected_trip"`
	Trips          []TripMarker `json:"trips"`
}

// Grid is a read-only snapshot of one month.
type Grid struct {
	Month     string   `json:"month"`
	MonthName string   `json:"month_name"`
	Year      int      `json:"year"`
	Weekdays  []string `json:"weekdays"`
	Rows      [][]Cell `json:"rows"`

	// SelectedTrip is set when a trip is selected; cells with InSelectedTrip
	// carry its name and color as a banner.
	SelectedTrip *TripMarker `json:"selected_trip,omitempty"`
}

// Cells flattens the rows in display order.
func (g Grid) Cells() []Cell {
	var out []Cell
	for _, row := range g.Rows {
		out = append(out, row...)
	}
	return out
}

// Build generates and classifies the grid for m.
func Build(m Month, st State) Grid {
	g := Grid{
		Month:     m.String(),
		MonthName: m.Month.String(),
		Year:      m.Year,
		Weekdays:  append([]string(nil), Weekdays...),
	}

	for _, t := range st.Trips {
		if st.SelectedTripID != "" && t.ID == st.SelectedTripID {
			g.SelectedTrip = &TripMarker{ID: t.ID, Name: t.Name, Color: t.Color, Selected: true}
			break
		}
	}

	dates := Dates(m)
	for i := 0; i < len(dates); i += 7 {
		row := make([]Cell, 0, 7)
		for _, d := range dates[i : i+7] {
			row = append(row, classify(d, m, st))
		}
		g.Rows = append(g.Rows, row)
	}
	return g
}

func classify(d domain.Date, m Month, st State) Cell {
	c := Cell{
		Date:           d,
		Day:            d.Day,
		IsToday:        IsToday(d, st.Today),
		InMonth:        InMonth(d, m),
		Selected:       IsSelected(d, st.Selection),
		InSelectedTrip: OwnedBySelectedTrip(d, st.Trips, st.SelectedTripID),
		Trips:          []TripMarker{},
	}
	for _, t := range st.Trips {
		if OwnedByTrip(d, t) {
			c.Trips = append(c.Trips, TripMarker{
				ID:       t.ID,
				Name:     t.Name,
				Color:    t.Color,
				Selected: t.ID == st.SelectedTripID,
			})
		}
	}
	return c
}
