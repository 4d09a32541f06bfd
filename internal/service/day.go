package service

import (
	"context"
	"fmt"

	"github.com/pkordes/trip-planner/internal/domain"
)

// ActivityRequest carries the raw fields of the add-activity form.
type ActivityRequest struct {
	Time        string
	Description string
	Price       string
}

// DayDetail returns the day view for d within the trip. The date need not be
// one of the trip's dates.
func (p *Planner) DayDetail(ctx context.Context, tripID string, d domain.Date) (domain.DayView, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	trip, err := p.trips.GetByID(ctx, tripID)
	if err != nil {
		return domain.DayView{}, fmt.Errorf("service.Planner.DayDetail: %w", err)
	}
	return domain.ViewDay(trip, d), nil
}

// DayDetailForDate resolves the trip owning d, preferring the selected trip
// where trips overlap, and returns its day view. Returns domain.ErrNotFound
// when no trip spans d.
func (p *Planner) DayDetailForDate(ctx context.Context, d domain.Date) (domain.DayView, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	trip, ok := p.trips.FindTripForDate(ctx, d, p.selectedTripID)
	if !ok {
		return domain.DayView{}, fmt.Errorf("service.Planner.DayDetailForDate: no trip on %s: %w", d, domain.ErrNotFound)
	}
	return domain.ViewDay(trip, d), nil
}

// RenameDay sets the label of a trip day.
func (p *Planner) RenameDay(ctx context.Context, tripID string, d domain.Date, name string) (domain.DayView, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, err := p.trips.UpsertDayName(ctx, tripID, d, name); err != nil {
		return domain.DayView{}, fmt.Errorf("service.Planner.RenameDay: %w", err)
	}
	p.log.InfoContext(ctx, "day renamed", "trip_id", tripID, "date", d, "name", name)
	return p.view(ctx, tripID, d)
}

// SetDayBudget overrides the budget of a trip day. raw must be a non-negative
// number; anything else fails with ErrValidation and changes nothing.
func (p *Planner) SetDayBudget(ctx context.Context, tripID string, d domain.Date, raw string) (domain.DayView, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	budget, ok := domain.ParseBudget(raw)
	if !ok {
		p.metrics.Rejected("set_day_budget")
		p.log.DebugContext(ctx, "day budget rejected", "trip_id", tripID, "date", d, "budget", raw)
		return domain.DayView{}, fmt.Errorf("service.Planner.SetDayBudget: %w: budget must be a non-negative number", domain.ErrValidation)
	}
	if _, err := p.trips.UpsertDayBudget(ctx, tripID, d, budget); err != nil {
		return domain.DayView{}, fmt.Errorf("service.Planner.SetDayBudget: %w", err)
	}
	p.log.InfoContext(ctx, "day budget set", "trip_id", tripID, "date", d, "budget", budget)
	return p.view(ctx, tripID, d)
}

// AddActivity adds an activity to a trip day. An empty description fails with
// ErrValidation and changes nothing; an unparsable price is stored as 0.
func (p *Planner) AddActivity(ctx context.Context, tripID string, d domain.Date, req ActivityRequest) (domain.DayView, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, err := p.trips.GetByID(ctx, tripID); err != nil {
		return domain.DayView{}, fmt.Errorf("service.Planner.AddActivity: %w", err)
	}
	if err := domain.CheckTime(req.Time); err != nil {
		p.metrics.Rejected("add_activity")
		p.log.DebugContext(ctx, "activity rejected", "trip_id", tripID, "date", d, "reason", "invalid time", "time", req.Time)
		return domain.DayView{}, fmt.Errorf("service.Planner.AddActivity: %w", err)
	}

	a, ok := domain.NewActivity(req.Time, req.Description, req.Price)
	if ok {
		var err error
		if _, ok, err = p.trips.AddActivity(ctx, tripID, d, a); err != nil {
			return domain.DayView{}, fmt.Errorf("service.Planner.AddActivity: %w", err)
		}
	}
	if !ok {
		p.metrics.Rejected("add_activity")
		p.log.DebugContext(ctx, "activity rejected", "trip_id", tripID, "date", d, "reason", "empty description")
		return domain.DayView{}, fmt.Errorf("service.Planner.AddActivity: %w: description is required", domain.ErrValidation)
	}

	p.metrics.ActivityAdded()
	p.log.InfoContext(ctx, "activity added", "trip_id", tripID, "date", d, "activity_id", a.ID, "price", a.Price)
	return p.view(ctx, tripID, d)
}

// DeleteActivity removes an activity by id. An unknown id is a no-op.
func (p *Planner) DeleteActivity(ctx context.Context, tripID string, d domain.Date, activityID string) (domain.DayView, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	_, removed, err := p.trips.RemoveActivity(ctx, tripID, d, activityID)
	if err != nil {
		return domain.DayView{}, fmt.Errorf("service.Planner.DeleteActivity: %w", err)
	}
	if removed {
		p.metrics.ActivityRemoved()
		p.log.InfoContext(ctx, "activity removed", "trip_id", tripID, "date", d, "activity_id", activityID)
	}
	return p.view(ctx, tripID, d)
}

func (p *Planner) view(ctx context.Context, tripID string, d domain.Date) (domain.DayView, error) {
	trip, err := p.trips.GetByID(ctx, tripID)
	if err != nil {
		return domain.DayView{}, err
	}
	return domain.ViewDay(trip, d), nil
}
