// Package domain contains the core data types for the trip planner.
// It has no dependencies on other internal packages and is imported by every
// layer above it (calendar, selection, repo, service, handler).
package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Defaults filled in exactly once, by NewTrip.
const (
	DefaultCurrency     = "$"
	DefaultTripColor    = "#1890ff"
	DefaultActivityTime = "12:00"
)

// DefaultDailyBudget is the per-day budget a trip gets when none is supplied.
var DefaultDailyBudget = decimal.NewFromInt(100)

// Trip is a named, colored span of calendar dates with a default daily budget.
// Dates is fixed at creation time; day and activity edits never touch it.
type Trip struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Color       string          `json:"color"`
	Dates       []Date          `json:"dates"`
	DailyBudget decimal.Decimal `json:"daily_budget"`
	Currency    string          `json:"currency"`

	// Days is sparse and kept in insertion order: only dates that were named,
	// given a budget, or given an activity have an entry.
	Days []TripDay `json:"days"`
}

// TripDay annotates one date of a trip. At most one TripDay exists per date
// within a trip.
type TripDay struct {
	Date        Date            `json:"date"`
	Name        string          `json:"name,omitempty"`
	DailyBudget decimal.Decimal `json:"daily_budget"`
	Activities  []Activity      `json:"activities"`
}

// Activity is a priced, timed line item within a TripDay.
// Time is a zero-padded "HH:MM" string, so lexical order is chronological.
type Activity struct {
	ID          string          `json:"id"`
	Time        string          `json:"time"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
}

// NewTripInput carries the user-supplied fields for a new trip.
// Nil DailyBudget and empty Currency fall back to the defaults.
type NewTripInput struct {
	Name        string
	Color       string
	Dates       []Date
	DailyBudget *decimal.Decimal
	Currency    string
}

// NewTrip is the single place a Trip is constructed. It returns false, and no
// trip, when the name is blank or there are no dates. Duplicate dates are
// dropped, keeping the first occurrence.
func NewTrip(id string, in NewTripInput) (Trip, bool) {
	if strings.TrimSpace(in.Name) == "" || len(in.Dates) == 0 {
		return Trip{}, false
	}

	dates := make([]Date, 0, len(in.Dates))
	for _, d := range in.Dates {
		if !ContainsDate(dates, d) {
			dates = append(dates, d)
		}
	}

	t := Trip{
		ID:          id,
		Name:        in.Name,
		Color:       in.Color,
		Dates:       dates,
		DailyBudget: DefaultDailyBudget,
		Currency:    DefaultCurrency,
		Days:        []TripDay{},
	}
	if in.DailyBudget != nil {
		t.DailyBudget = *in.DailyBudget
	}
	if in.Currency != "" {
		t.Currency = in.Currency
	}
	return t, true
}

// HasDate reports whether d is one of the trip's dates.
func (t Trip) HasDate(d Date) bool {
	return ContainsDate(t.Dates, d)
}

// DayIndex returns the position of the TripDay for d in t.Days, or -1.
func (t Trip) DayIndex(d Date) int {
	for i, day := range t.Days {
		if day.Date == d {
			return i
		}
	}
	return -1
}

// Day returns the TripDay for d, if one has been written.
func (t Trip) Day(d Date) (TripDay, bool) {
	if i := t.DayIndex(d); i >= 0 {
		return t.Days[i], true
	}
	return TripDay{}, false
}

// NewDay synthesizes the empty TripDay used the first time a date is written:
// no activities and the trip's default budget.
func (t Trip) NewDay(d Date) TripDay {
	return TripDay{
		Date:        d,
		DailyBudget: t.DailyBudget,
		Activities:  []Activity{},
	}
}

// Clone returns a deep copy of t so callers can't alias stored slices.
func (t Trip) Clone() Trip {
	out := t
	out.Dates = append([]Date(nil), t.Dates...)
	out.Days = make([]TripDay, len(t.Days))
	for i, day := range t.Days {
		out.Days[i] = day.Clone()
	}
	return out
}

// Clone returns a deep copy of d.
func (d TripDay) Clone() TripDay {
	out := d
	out.Activities = append([]Activity{}, d.Activities...)
	return out
}
