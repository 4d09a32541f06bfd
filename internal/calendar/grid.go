// Package calendar builds the Sunday-first month grid and classifies every
// cell against the current selection and trip collection. Everything here is
// pure: the same inputs always produce the same grid.
package calendar

import (
	"fmt"
	"time"

	"github.com/pkordes/trip-planner/internal/domain"
)

// Weekdays are the column headers, Sunday first.
var Weekdays = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// Month is the reference month a grid is drawn for.
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf returns the month containing d.
func MonthOf(d domain.Date) Month {
	return Month{Year: d.Year, Month: d.Month}
}

// ParseMonth parses a "2006-01" string.
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Month{}, fmt.Errorf("%w: invalid month %q", domain.ErrValidation, s)
	}
	return Month{Year: t.Year(), Month: t.Month()}, nil
}

// First returns day 1 of m.
func (m Month) First() domain.Date {
	return domain.NewDate(m.Year, m.Month, 1)
}

// Prev re-anchors to day 1 of the previous month.
func (m Month) Prev() Month { return MonthOf(domain.NewDate(m.Year, m.Month-1, 1)) }

// Next re-anchors to day 1 of the following month.
func (m Month) Next() Month { return MonthOf(domain.NewDate(m.Year, m.Month+1, 1)) }

// Contains reports whether d falls in m.
func (m Month) Contains(d domain.Date) bool {
	return d.Year == m.Year && d.Month == m.Month
}

// String formats m as "2006-01".
func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// RowCount returns how many week rows the grid for m has. The natural count
// is used when it is 5 or 6; anything else (a 28-day February starting on a
// Sunday fits in 4) is drawn as 6 rows so the grid height stays stable.
func RowCount(m Month) int {
	lead := int(m.First().Weekday())
	cells := lead + domain.DaysIn(m.Year, m.Month)
	rows := (cells + 6) / 7
	if rows == 5 || rows == 6 {
		return rows
	}
	return 6
}

// Dates returns the 35 or 42 dates of m's grid: the tail of the previous
// month back to the last Sunday, every day of m, then the head of the next
// month to fill the last row.
func Dates(m Month) []domain.Date {
	first := m.First()
	start := first.AddDays(-int(first.Weekday()))

	n := RowCount(m) * 7
	out := make([]domain.Date, n)
	for i := range out {
		out[i] = start.AddDays(i)
	}
	return out
}

// ---- classification --------------------------------------------------------

// IsToday reports whether d is today's date.
func IsToday(d, today domain.Date) bool { return d == today }

// InMonth reports whether d belongs to the displayed month rather than the
// neighbouring months padding the grid.
func InMonth(d domain.Date, m Month) bool { return m.Contains(d) }

// IsSelected reports whether d is in the selection.
func IsSelected(d domain.Date, selection []domain.Date) bool {
	return domain.ContainsDate(selection, d)
}

// OwnedByTrip reports whether trip spans d.
func OwnedByTrip(d domain.Date, trip domain.Trip) bool { return trip.HasDate(d) }

// OwnedBySelectedTrip reports whether the trip named by selectedTripID spans d.
// An empty or unknown id owns nothing.
func OwnedBySelectedTrip(d domain.Date, trips []domain.Trip, selectedTripID string) bool {
	if selectedTripID == "" {
		return false
	}
	for _, t := range trips {
		if t.ID == selectedTripID {
			return t.HasDate(d)
		}
	}
	return false
}
