package service

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/pkordes/trip-planner/internal/domain"
)

// ProductID identifies this application in exported calendars.
const ProductID = "-//trip-planner//EN"

// TripGetter is the read side ExportService needs. *Planner satisfies it.
type TripGetter interface {
	GetTrip(ctx context.Context, id string) (domain.Trip, error)
}

// ExportService renders trips as iCalendar documents.
type ExportService struct {
	trips TripGetter
	loc   *time.Location
	now   func() time.Time
}

// NewExportService constructs an ExportService. Activity times are read as
// wall-clock times in loc; nil means time.Local.
func NewExportService(trips TripGetter, loc *time.Location) *ExportService {
	if loc == nil {
		loc = time.Local
	}
	return &ExportService{trips: trips, loc: loc, now: time.Now}
}

// ExportICS returns the trip as a VCALENDAR: one all-day event per run of
// consecutive trip dates, and one event per activity.
// Returns domain.ErrNotFound if the trip does not exist.
func (s *ExportService) ExportICS(ctx context.Context, tripID string) ([]byte, error) {
	trip, err := s.trips.GetTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.ExportICS: %w", err)
	}

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(ProductID)
	cal.SetName(trip.Name)

	stamp := s.now().UTC()

	for i, run := range Runs(trip.Dates) {
		ev := cal.AddEvent(fmt.Sprintf("%s-span-%d", trip.ID, i))
		ev.SetDtStampTime(stamp)
		ev.SetSummary(trip.Name)
		ev.SetAllDayStartAt(run[0].Time(s.loc))
		ev.SetAllDayEndAt(run[len(run)-1].AddDays(1).Time(s.loc))
	}

	for _, day := range trip.Days {
		for _, a := range domain.SortedActivities(day.Activities) {
			start, err := s.activityStart(day.Date, a.Time)
			if err != nil {
				return nil, fmt.Errorf("service.ExportService.ExportICS: activity %s: %w", a.ID, err)
			}
			ev := cal.AddEvent(a.ID)
			ev.SetDtStampTime(stamp)
			ev.SetSummary(a.Description)
			ev.SetStartAt(start)
			ev.SetDescription(activityNote(trip, day, a))
		}
	}

	return []byte(cal.Serialize()), nil
}

func (s *ExportService) activityStart(d domain.Date, hhmm string) (time.Time, error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(d.Year, d.Month, d.Day, t.Hour(), t.Minute(), 0, 0, s.loc), nil
}

func activityNote(trip domain.Trip, day domain.TripDay, a domain.Activity) string {
	parts := []string{fmt.Sprintf("Price: %s%s", trip.Currency, a.Price.StringFixed(2))}
	if day.Name != "" {
		parts = append(parts, "Day: "+day.Name)
	}
	return strings.Join(parts, "\n")
}

// Runs splits dates into runs of consecutive days, each in chronological
// order. Runs are ordered by their first date.
func Runs(dates []domain.Date) [][]domain.Date {
	if len(dates) == 0 {
		return nil
	}
	sorted := slices.Clone(dates)
	slices.SortFunc(sorted, domain.Date.Compare)

	var out [][]domain.Date
	run := []domain.Date{sorted[0]}
	for _, d := range sorted[1:] {
		last := run[len(run)-1]
		switch {
		case d == last:
			continue
		case d == last.AddDays(1):
			run = append(run, d)
		default:
			out = append(out, run)
			run = []domain.Date{d}
		}
	}
	return append(out, run)
}
