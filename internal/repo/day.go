package repo

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/pkordes/trip-planner/internal/domain"
)

// UpsertDayName sets the day's label, creating the day if needed.
func (r *memTripRepo) UpsertDayName(_ context.Context, tripID string, d domain.Date, name string) (domain.TripDay, error) {
	day, _, err := r.upsertDay(tripID, d, func(day *domain.TripDay) bool {
		day.Name = name
		return true
	})
	if err != nil {
		return domain.TripDay{}, fmt.Errorf("repo.TripRepo.UpsertDayName: %w", err)
	}
	return day, nil
}

// UpsertDayBudget sets the day's budget override, creating the day if needed.
func (r *memTripRepo) UpsertDayBudget(_ context.Context, tripID string, d domain.Date, budget decimal.Decimal) (domain.TripDay, error) {
	day, _, err := r.upsertDay(tripID, d, func(day *domain.TripDay) bool {
		day.DailyBudget = budget
		return true
	})
	if err != nil {
		return domain.TripDay{}, fmt.Errorf("repo.TripRepo.UpsertDayBudget: %w", err)
	}
	return day, nil
}

// AddActivity appends a to the day, creating the day if needed. An activity
// without a description is dropped and no day is created for it.
func (r *memTripRepo) AddActivity(_ context.Context, tripID string, d domain.Date, a domain.Activity) (domain.TripDay, bool, error) {
	day, ok, err := r.upsertDay(tripID, d, func(day *domain.TripDay) bool {
		if a.Description == "" {
			return false
		}
		day.Activities = append(day.Activities, a)
		return true
	})
	if err != nil {
		return domain.TripDay{}, false, fmt.Errorf("repo.TripRepo.AddActivity: %w", err)
	}
	return day, ok, nil
}

// RemoveActivity deletes an activity by id. Removing from a date that has no
// day record does not create one, and an unknown id leaves the day as it was.
// A day whose last activity is removed stays in place, empty.
func (r *memTripRepo) RemoveActivity(_ context.Context, tripID string, d domain.Date, activityID string) (domain.TripDay, bool, error) {
	i := r.index(tripID)
	if i < 0 {
		return domain.TripDay{}, false, fmt.Errorf("repo.TripRepo.RemoveActivity: %w", domain.ErrNotFound)
	}
	trip := &r.trips[i]

	j := trip.DayIndex(d)
	if j < 0 {
		return trip.NewDay(d), false, nil
	}

	day := trip.Days[j].Clone()
	kept := day.Activities[:0]
	for _, a := range day.Activities {
		if a.ID != activityID {
			kept = append(kept, a)
		}
	}
	if len(kept) == len(day.Activities) {
		return day, false, nil
	}
	day.Activities = kept
	trip.Days[j] = day
	return day.Clone(), true, nil
}

// upsertDay is the lookup-or-create rule shared by every day write. It finds
// the trip's day for d (or synthesizes an empty one with the trip's default
// budget), applies mutate to a copy, and, if mutate reports true, stores the
// copy in place of the old day or appends it.
func (r *memTripRepo) upsertDay(tripID string, d domain.Date, mutate func(*domain.TripDay) bool) (domain.TripDay, bool, error) {
	i := r.index(tripID)
	if i < 0 {
		return domain.TripDay{}, false, domain.ErrNotFound
	}
	trip := &r.trips[i]

	j := trip.DayIndex(d)
	var day domain.TripDay
	if j >= 0 {
		day = trip.Days[j].Clone()
	} else {
		day = trip.NewDay(d)
	}

	if !mutate(&day) {
		if j >= 0 {
			return trip.Days[j].Clone(), false, nil
		}
		return day, false, nil
	}

	if j >= 0 {
		trip.Days[j] = day
	} else {
		trip.Days = append(trip.Days, day)
	}
	return day.Clone(), true, nil
}
