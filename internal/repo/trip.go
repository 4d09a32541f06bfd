// Package repo holds the trip collection: trip creation and date lookups
// (trip.go) and the per-day annotations of each trip (day.go).
//
// The collection lives in process memory and is lost on restart. It is not
// safe for concurrent use; the service layer serializes access.
package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pkordes/trip-planner/internal/domain"
)

// TripRepo defines the operations on the trip collection.
// The service layer depends on this interface, not the in-memory
// implementation, which lets the service be unit-tested with a mock.
//
// Every returned Trip or TripDay is a copy; mutating it does not change the
// collection.
type TripRepo interface {
	// Create appends a new trip built by domain.NewTrip with a fresh id.
	// It returns false, leaving the collection unchanged, when the name is
	// blank or there are no dates.
	Create(ctx context.Context, in domain.NewTripInput) (domain.Trip, bool)

	// GetByID returns domain.ErrNotFound if no trip has that id.
	GetByID(ctx context.Context, id string) (domain.Trip, error)

	// List returns every trip in creation order.
	List(ctx context.Context) []domain.Trip

	// FindTripsForDate returns every trip spanning d, in collection order.
	FindTripsForDate(ctx context.Context, d domain.Date) []domain.Trip

	// FindTripForDate returns the trip named by preferredID when it spans d,
	// else the first trip in collection order that spans d.
	FindTripForDate(ctx context.Context, d domain.Date, preferredID string) (domain.Trip, bool)

	// UpsertDayName sets the label of the day at d.
	UpsertDayName(ctx context.Context, tripID string, d domain.Date, name string) (domain.TripDay, error)

	// UpsertDayBudget overrides the trip's default budget for d.
	UpsertDayBudget(ctx context.Context, tripID string, d domain.Date, budget decimal.Decimal) (domain.TripDay, error)

	// AddActivity appends an activity to the day at d. It reports false and
	// changes nothing when the description is empty.
	AddActivity(ctx context.Context, tripID string, d domain.Date, a domain.Activity) (domain.TripDay, bool, error)

	// RemoveActivity deletes the activity with activityID from the day at d.
	// It reports false when there was nothing to remove.
	RemoveActivity(ctx context.Context, tripID string, d domain.Date, activityID string) (domain.TripDay, bool, error)
}

// memTripRepo is the in-memory implementation of TripRepo.
type memTripRepo struct {
	trips []domain.Trip
	now   func() time.Time

	// lastID is the millisecond stamp of the most recently issued trip id.
	lastID int64
}

// NewTripRepo constructs an empty TripRepo. now stamps trip ids; nil means
// time.Now.
func NewTripRepo(now func() time.Time) TripRepo {
	if now == nil {
		now = time.Now
	}
	return &memTripRepo{now: now}
}

// Create builds and appends a new trip.
func (r *memTripRepo) Create(_ context.Context, in domain.NewTripInput) (domain.Trip, bool) {
	t, ok := domain.NewTrip("", in)
	if !ok {
		return domain.Trip{}, false
	}
	t.ID = r.nextID()
	r.trips = append(r.trips, t)
	return t.Clone(), true
}

// nextID returns "trip-" + the creation time in unix milliseconds. Two trips
// created in the same millisecond get consecutive stamps.
func (r *memTripRepo) nextID() string {
	ms := r.now().UnixMilli()
	if ms <= r.lastID {
		ms = r.lastID + 1
	}
	r.lastID = ms
	return fmt.Sprintf("trip-%d", ms)
}

// GetByID retrieves a trip by id.
func (r *memTripRepo) GetByID(_ context.Context, id string) (domain.Trip, error) {
	i := r.index(id)
	if i < 0 {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", domain.ErrNotFound)
	}
	return r.trips[i].Clone(), nil
}

// List returns all trips in the order they were created.
func (r *memTripRepo) List(_ context.Context) []domain.Trip {
	out := make([]domain.Trip, len(r.trips))
	for i, t := range r.trips {
		out[i] = t.Clone()
	}
	return out
}

// FindTripsForDate returns every trip whose dates include d.
func (r *memTripRepo) FindTripsForDate(_ context.Context, d domain.Date) []domain.Trip {
	out := []domain.Trip{}
	for _, t := range r.trips {
		if t.HasDate(d) {
			out = append(out, t.Clone())
		}
	}
	return out
}

// FindTripForDate prefers preferredID so the selected trip wins where trips
// overlap.
func (r *memTripRepo) FindTripForDate(_ context.Context, d domain.Date, preferredID string) (domain.Trip, bool) {
	if preferredID != "" {
		if i := r.index(preferredID); i >= 0 && r.trips[i].HasDate(d) {
			return r.trips[i].Clone(), true
		}
	}
	for _, t := range r.trips {
		if t.HasDate(d) {
			return t.Clone(), true
		}
	}
	return domain.Trip{}, false
}

func (r *memTripRepo) index(id string) int {
	for i, t := range r.trips {
		if t.ID == id {
			return i
		}
	}
	return -1
}
