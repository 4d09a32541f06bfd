package service_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/repo"
	"github.com/pkordes/trip-planner/internal/service"
)

// mockTripRepo is a hand-written test double for repo.TripRepo.
// Each method is a function field; set only the ones your test needs.
type mockTripRepo struct {
	create           func(ctx context.Context, in domain.NewTripInput) (domain.Trip, bool)
	getByID          func(ctx context.Context, id string) (domain.Trip, error)
	list             func(ctx context.Context) []domain.Trip
	findTripsForDate func(ctx context.Context, d domain.Date) []domain.Trip
	findTripForDate  func(ctx context.Context, d domain.Date, preferredID string) (domain.Trip, bool)
	upsertDayName    func(ctx context.Context, tripID string, d domain.Date, name string) (domain.TripDay, error)
	upsertDayBudget  func(ctx context.Context, tripID string, d domain.Date, budget decimal.Decimal) (domain.TripDay, error)
	addActivity      func(ctx context.Context, tripID string, d domain.Date, a domain.Activity) (domain.TripDay, bool, error)
	removeActivity   func(ctx context.Context, tripID string, d domain.Date, activityID string) (domain.TripDay, bool, error)
}

func (m *mockTripRepo) Create(ctx context.Context, in domain.NewTripInput) (domain.Trip, bool) {
	return m.create(ctx, in)
}
func (m *mockTripRepo) GetByID(ctx context.Context, id string) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripRepo) List(ctx context.Context) []domain.Trip { return m.list(ctx) }
func (m *mockTripRepo) FindTripsForDate(ctx context.Context, d domain.Date) []domain.Trip {
	return m.findTripsForDate(ctx, d)
}
func (m *mockTripRepo) FindTripForDate(ctx context.Context, d domain.Date, preferredID string) (domain.Trip, bool) {
	return m.findTripForDate(ctx, d, preferredID)
}
func (m *mockTripRepo) UpsertDayName(ctx context.Context, tripID string, d domain.Date, name string) (domain.TripDay, error) {
	return m.upsertDayName(ctx, tripID, d, name)
}
func (m *mockTripRepo) UpsertDayBudget(ctx context.Context, tripID string, d domain.Date, budget decimal.Decimal) (domain.TripDay, error) {
	return m.upsertDayBudget(ctx, tripID, d, budget)
}
func (m *mockTripRepo) AddActivity(ctx context.Context, tripID string, d domain.Date, a domain.Activity) (domain.TripDay, bool, error) {
	return m.addActivity(ctx, tripID, d, a)
}
func (m *mockTripRepo) RemoveActivity(ctx context.Context, tripID string, d domain.Date, activityID string) (domain.TripDay, bool, error) {
	return m.removeActivity(ctx, tripID, d, activityID)
}

// compile-time check: mockTripRepo must satisfy repo.TripRepo.
var _ repo.TripRepo = (*mockTripRepo)(nil)

func paris(t *testing.T, p *service.Planner) domain.Trip {
	t.Helper()
	return createTrip(t, p, "Paris", day(time.June, 1), day(time.June, 3))
}

// ---- day detail ------------------------------------------------------------

func TestPlanner_ParisScenario(t *testing.T) {
	p, m := newPlanner(t)
	ctx := context.Background()
	trip := paris(t, p)

	_, err := p.AddActivity(ctx, trip.ID, day(time.June, 2), service.ActivityRequest{Time: "13:00", Description: "Lunch", Price: "15"})
	require.NoError(t, err)
	view, err := p.AddActivity(ctx, trip.ID, day(time.June, 2), service.ActivityRequest{Time: "09:00", Description: "Louvre", Price: "20"})
	require.NoError(t, err)

	require.Len(t, view.Activities, 2)
	assert.Equal(t, "Louvre", view.Activities[0].Description)
	assert.Equal(t, "Lunch", view.Activities[1].Description)
	assert.True(t, view.Spent.Equal(decimal.NewFromInt(35)))
	assert.True(t, view.Remaining.Equal(decimal.NewFromInt(65)))
	assert.Equal(t, "$", view.Currency)
	assert.Equal(t, 2.0, testutil.ToFloat64(m.ActivitiesAdded))
}

func TestPlanner_OverBudgetIsShown(t *testing.T) {
	p, _ := newPlanner(t)
	ctx := context.Background()
	trip := paris(t, p)
	d := day(time.June, 1)

	for _, price := range []string{"30", "45", "40"} {
		_, err := p.AddActivity(ctx, trip.ID, d, service.ActivityRequest{Time: "10:00", Description: "x", Price: price})
		require.NoError(t, err)
	}

	view, err := p.DayDetail(ctx, trip.ID, d)
	require.NoError(t, err)
	assert.True(t, view.Remaining.Equal(decimal.NewFromInt(-15)), "remaining = %s", view.Remaining)
}

func TestPlanner_AddActivity_rejected(t *testing.T) {
	p, m := newPlanner(t)
	ctx := context.Background()
	trip := paris(t, p)

	_, err := p.AddActivity(ctx, trip.ID, day(time.June, 1), service.ActivityRequest{Time: "10:00", Price: "5"})
	assert.ErrorIs(t, err, domain.ErrValidation, "empty description")

	_, err = p.AddActivity(ctx, trip.ID, day(time.June, 1), service.ActivityRequest{Time: "10am", Description: "x"})
	assert.ErrorIs(t, err, domain.ErrValidation, "bad time")

	_, err = p.AddActivity(ctx, "trip-missing", day(time.June, 1), service.ActivityRequest{Description: "x"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	stored, _ := p.GetTrip(ctx, trip.ID)
	assert.Empty(t, stored.Days)
	assert.Equal(t, 2.0, testutil.ToFloat64(m.RejectedInputs.WithLabelValues("add_activity")))
}

func TestPlanner_AddActivity_badPriceBecomesZero(t *testing.T) {
	p, _ := newPlanner(t)
	ctx := context.Background()
	trip := paris(t, p)

	view, err := p.AddActivity(ctx, trip.ID, day(time.June, 1), service.ActivityRequest{Description: "Walk", Price: "free"})

	require.NoError(t, err)
	require.Len(t, view.Activities, 1)
	assert.True(t, view.Activities[0].Price.IsZero())
	assert.Equal(t, "12:00", view.Activities[0].Time)
}

func TestPlanner_oversizedAmounts(t *testing.T) {
	p, m := newPlanner(t)
	ctx := context.Background()
	trip := paris(t, p)
	d := day(time.June, 1)

	view, err := p.AddActivity(ctx, trip.ID, d, service.ActivityRequest{Time: "10:00", Description: "Yacht", Price: "1e50000000"})
	require.NoError(t, err)
	require.Len(t, view.Activities, 1)
	assert.True(t, view.Activities[0].Price.IsZero(), "an oversized price is stored as 0")
	assert.True(t, view.Spent.IsZero())

	_, err = p.SetDayBudget(ctx, trip.ID, d, "1e50000000")
	assert.ErrorIs(t, err, domain.ErrValidation)
	view, _ = p.DayDetail(ctx, trip.ID, d)
	assert.True(t, view.Budget.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RejectedInputs.WithLabelValues("set_day_budget")))
}

func TestPlanner_rejectionsLoggedAtDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	p := service.NewPlanner(repo.NewTripRepo(clock), service.Options{Now: clock, Logger: logger})
	t.Cleanup(p.Close)
	ctx := context.Background()
	trip := paris(t, p)
	d := day(time.June, 1)
	buf.Reset()

	_, err := p.AddActivity(ctx, trip.ID, d, service.ActivityRequest{Time: "10am", Description: "x"})
	require.ErrorIs(t, err, domain.ErrValidation)
	_, err = p.AddActivity(ctx, trip.ID, d, service.ActivityRequest{Time: "10:00"})
	require.ErrorIs(t, err, domain.ErrValidation)
	_, err = p.SetDayBudget(ctx, trip.ID, d, "abc")
	require.ErrorIs(t, err, domain.ErrValidation)

	type entry struct {
		Level string `json:"level"`
		Msg   string `json:"msg"`
	}
	var got []entry
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var e entry
		require.NoError(t, json.Unmarshal([]byte(line), &e))
		got = append(got, e)
	}
	assert.Equal(t, []entry{
		{Level: "DEBUG", Msg: "activity rejected"},
		{Level: "DEBUG", Msg: "activity rejected"},
		{Level: "DEBUG", Msg: "day budget rejected"},
	}, got)
}

func TestPlanner_RenameDayThenAddActivity_sameRecord(t *testing.T) {
	p, _ := newPlanner(t)
	ctx := context.Background()
	trip := paris(t, p)
	d := day(time.June, 2)

	view, err := p.RenameDay(ctx, trip.ID, d, "Museums")
	require.NoError(t, err)
	assert.Equal(t, "Museums", view.Name)
	assert.True(t, view.Budget.Equal(decimal.NewFromInt(100)))

	_, err = p.AddActivity(ctx, trip.ID, d, service.ActivityRequest{Time: "09:00", Description: "Louvre", Price: "20"})
	require.NoError(t, err)

	stored, _ := p.GetTrip(ctx, trip.ID)
	require.Len(t, stored.Days, 1)
	assert.Equal(t, "Museums", stored.Days[0].Name)
	assert.Len(t, stored.Days[0].Activities, 1)
}

func TestPlanner_SetDayBudget(t *testing.T) {
	p, m := newPlanner(t)
	ctx := context.Background()
	trip := paris(t, p)
	d := day(time.June, 2)

	view, err := p.SetDayBudget(ctx, trip.ID, d, "60")
	require.NoError(t, err)
	assert.True(t, view.Budget.Equal(decimal.NewFromInt(60)))

	for _, bad := range []string{"-5", "abc", ""} {
		_, err = p.SetDayBudget(ctx, trip.ID, d, bad)
		assert.ErrorIs(t, err, domain.ErrValidation, "%q", bad)
	}

	view, _ = p.DayDetail(ctx, trip.ID, d)
	assert.True(t, view.Budget.Equal(decimal.NewFromInt(60)), "rejected edits leave the budget alone")
	assert.Equal(t, 3.0, testutil.ToFloat64(m.RejectedInputs.WithLabelValues("set_day_budget")))
}

func TestPlanner_DeleteActivity(t *testing.T) {
	p, m := newPlanner(t)
	ctx := context.Background()
	trip := paris(t, p)
	d := day(time.June, 2)
	view, _ := p.AddActivity(ctx, trip.ID, d, service.ActivityRequest{Time: "09:00", Description: "Louvre", Price: "20"})
	id := view.Activities[0].ID

	view, err := p.DeleteActivity(ctx, trip.ID, d, "unknown")
	require.NoError(t, err)
	assert.Len(t, view.Activities, 1, "unknown id is a no-op")

	view, err = p.DeleteActivity(ctx, trip.ID, d, id)
	require.NoError(t, err)
	assert.Empty(t, view.Activities)
	assert.True(t, view.Spent.IsZero())
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ActivitiesRemoved))

	_, err = p.DeleteActivity(ctx, "trip-missing", d, id)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPlanner_DayDetailForDate_prefersSelectedTrip(t *testing.T) {
	p, _ := newPlanner(t)
	ctx := context.Background()
	a := createTrip(t, p, "A", day(time.July, 8), day(time.July, 10))
	b := createTrip(t, p, "B", day(time.July, 10), day(time.July, 12))

	view, err := p.DayDetailForDate(ctx, day(time.July, 10))
	require.NoError(t, err)
	assert.Equal(t, a.ID, view.TripID)

	_, _ = p.SelectTrip(ctx, b.ID)
	view, err = p.DayDetailForDate(ctx, day(time.July, 10))
	require.NoError(t, err)
	assert.Equal(t, b.ID, view.TripID)

	_, err = p.DayDetailForDate(ctx, day(time.August, 1))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPlanner_DayDetail_outsideTripDates(t *testing.T) {
	p, _ := newPlanner(t)
	ctx := context.Background()
	trip := paris(t, p)

	view, err := p.RenameDay(ctx, trip.ID, day(time.December, 25), "Not part of the trip")

	require.NoError(t, err)
	assert.Equal(t, "Not part of the trip", view.Name)
}

// ---- repo error propagation ------------------------------------------------

func TestPlanner_RenameDay_RepoError(t *testing.T) {
	repoErr := errors.New("store exploded")
	r := &mockTripRepo{
		upsertDayName: func(context.Context, string, domain.Date, string) (domain.TripDay, error) {
			return domain.TripDay{}, repoErr
		},
	}
	p := service.NewPlanner(r, service.Options{Now: clock})
	t.Cleanup(p.Close)

	_, err := p.RenameDay(context.Background(), "trip-1", day(time.June, 1), "x")

	// The service should propagate repo errors unchanged.
	assert.ErrorIs(t, err, repoErr)
}

func TestPlanner_SubmitNewTrip_passesSelectionToRepo(t *testing.T) {
	var got domain.NewTripInput
	r := &mockTripRepo{
		create: func(_ context.Context, in domain.NewTripInput) (domain.Trip, bool) {
			got = in
			trip, _ := domain.NewTrip("trip-1", in)
			return trip, true
		},
	}
	p := service.NewPlanner(r, service.Options{Now: clock, DefaultColor: "#abcdef"})
	t.Cleanup(p.Close)
	drag(p, day(time.June, 3), day(time.June, 1))

	_, err := p.SubmitNewTrip(context.Background(), service.NewTripRequest{Name: "Paris", Currency: "€"})

	require.NoError(t, err)
	assert.Equal(t, domain.Range(day(time.June, 1), day(time.June, 3)), got.Dates)
	assert.Equal(t, "#abcdef", got.Color)
	assert.Equal(t, "€", got.Currency)
	assert.Nil(t, got.DailyBudget)
}
