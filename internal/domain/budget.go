package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// DayView is the read model for one trip day: what a detail panel shows.
// Spent and Remaining are derived on every read and never stored.
// Remaining goes negative when a day is over budget.
type DayView struct {
	TripID     string          `json:"trip_id"`
	TripName   string          `json:"trip_name"`
	TripColor  string          `json:"trip_color"`
	Date       Date            `json:"date"`
	Label      string          `json:"label"`
	Name       string          `json:"name"`
	Budget     decimal.Decimal `json:"budget"`
	Spent      decimal.Decimal `json:"spent"`
	Remaining  decimal.Decimal `json:"remaining"`
	Currency   string          `json:"currency"`
	Activities []Activity      `json:"activities"`
}

// Spent sums the prices of activities.
func Spent(activities []Activity) decimal.Decimal {
	total := decimal.Zero
	for _, a := range activities {
		total = total.Add(a.Price)
	}
	return total
}

// SortedActivities returns a copy of activities in ascending Time order.
// Activities sharing a time keep their insertion order.
func SortedActivities(activities []Activity) []Activity {
	out := append([]Activity{}, activities...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Time < out[j].Time })
	return out
}

// ViewDay resolves the day view for d within t. A date with no TripDay uses
// the trip's default budget and has no activities.
func ViewDay(t Trip, d Date) DayView {
	day, ok := t.Day(d)
	if !ok {
		day = t.NewDay(d)
	}

	spent := Spent(day.Activities)
	return DayView{
		TripID:     t.ID,
		TripName:   t.Name,
		TripColor:  t.Color,
		Date:       d,
		Label:      d.Label(),
		Name:       day.Name,
		Budget:     day.DailyBudget,
		Spent:      spent,
		Remaining:  day.DailyBudget.Sub(spent),
		Currency:   t.Currency,
		Activities: SortedActivities(day.Activities),
	}
}
