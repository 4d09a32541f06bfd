// Package service contains the interaction logic of the trip planner.
// Services validate inputs, enforce business rules, and orchestrate the
// calendar, selection and repo packages. No HTTP lives here.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pkordes/trip-planner/internal/calendar"
	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/metrics"
	"github.com/pkordes/trip-planner/internal/repo"
	"github.com/pkordes/trip-planner/internal/selection"
)

// Options configures a Planner. Every field is optional.
type Options struct {
	// Now is the clock used for "today" and trip ids. Defaults to time.Now.
	Now func() time.Time
	// Metrics records domain events. Nil records nothing.
	Metrics *metrics.Metrics
	// Logger defaults to slog.Default().
	Logger *slog.Logger
	// DefaultColor is given to trips submitted without a color.
	DefaultColor string
}

// Planner is the interaction layer for a single planning session. It owns the
// transient UI state (drag selection, context menu, displayed month, selected
// trip) and routes every inbound event to the core.
//
// Events are handled one at a time: every method takes the same lock, so the
// core sees the same run-to-completion ordering a UI thread gives it.
type Planner struct {
	mu sync.Mutex

	trips  repo.TripRepo
	doc    *selection.Document
	engine *selection.Engine
	menu   *selection.Menu

	month          calendar.Month
	selectedTripID string

	now          func() time.Time
	metrics      *metrics.Metrics
	log          *slog.Logger
	defaultColor string
}

// NewPlanner constructs a Planner backed by the provided TripRepo, showing
// the current month.
func NewPlanner(trips repo.TripRepo, opts Options) *Planner {
	p := &Planner{
		trips:        trips,
		doc:          selection.NewDocument(),
		now:          opts.Now,
		metrics:      opts.Metrics,
		log:          opts.Logger,
		defaultColor: opts.DefaultColor,
	}
	if p.now == nil {
		p.now = time.Now
	}
	if p.log == nil {
		p.log = slog.Default()
	}
	if p.defaultColor == "" {
		p.defaultColor = domain.DefaultTripColor
	}
	p.engine = selection.NewEngine(p.doc, func(dates []domain.Date) {
		p.log.Debug("selection finalized", "from", dates[0], "to", dates[len(dates)-1], "days", len(dates))
	})
	p.menu = selection.NewMenu(p.doc)
	p.month = calendar.MonthOf(p.today())
	return p
}

// Close releases any document listener still held by a drag or an open menu.
func (p *Planner) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.engine.Close()
	p.menu.Close()
}

func (p *Planner) today() domain.Date {
	return domain.DateOf(p.now())
}

// ---- calendar --------------------------------------------------------------

// Grid returns the classified grid of the displayed month.
func (p *Planner) Grid(ctx context.Context) calendar.Grid {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.buildGrid(ctx, p.month)
}

// GridFor returns the classified grid of m without changing the displayed
// month.
func (p *Planner) GridFor(ctx context.Context, m calendar.Month) calendar.Grid {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.buildGrid(ctx, m)
}

// Navigation directions accepted by Navigate.
const (
	NavigatePrev  = "prev"
	NavigateNext  = "next"
	NavigateToday = "today"
)

// Navigate moves the displayed month and returns its grid.
func (p *Planner) Navigate(ctx context.Context, direction string) (calendar.Grid, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch direction {
	case NavigatePrev:
		p.month = p.month.Prev()
	case NavigateNext:
		p.month = p.month.Next()
	case NavigateToday:
		p.month = calendar.MonthOf(p.today())
	default:
		return calendar.Grid{}, fmt.Errorf("service.Planner.Navigate: %w: direction must be prev, next or today", domain.ErrValidation)
	}
	return p.buildGrid(ctx, p.month), nil
}

func (p *Planner) buildGrid(ctx context.Context, m calendar.Month) calendar.Grid {
	return calendar.Build(m, calendar.State{
		Today:          p.today(),
		Selection:      p.engine.Selection(),
		Trips:          p.trips.List(ctx),
		SelectedTripID: p.selectedTripID,
	})
}

// ---- selection -------------------------------------------------------------

// SelectionSnapshot is the read model of the drag selection.
type SelectionSnapshot struct {
	State  string        `json:"state"`
	Anchor *domain.Date  `json:"anchor,omitempty"`
	Dates  []domain.Date `json:"dates"`
}

// PointerDown starts a drag on date. A non-primary button is ignored. A
// primary press also closes the context menu.
func (p *Planner) PointerDown(_ context.Context, date domain.Date, primary bool) SelectionSnapshot {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.engine.Begin(date, primary) {
		p.menu.Close()
	}
	return p.selectionSnapshot()
}

// PointerEnter extends a drag in progress to date.
func (p *Planner) PointerEnter(_ context.Context, date domain.Date) SelectionSnapshot {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.engine.Extend(date)
	return p.selectionSnapshot()
}

// PointerUp is a pointer release anywhere in the document. It finalizes a
// drag in progress and does nothing otherwise.
func (p *Planner) PointerUp(_ context.Context) SelectionSnapshot {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.doc.Dispatch(selection.EventPointerUp)
	return p.selectionSnapshot()
}

// Selection returns the current selection.
func (p *Planner) Selection(_ context.Context) SelectionSnapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.selectionSnapshot()
}

func (p *Planner) selectionSnapshot() SelectionSnapshot {
	s := SelectionSnapshot{
		State: p.engine.State().String(),
		Dates: p.engine.Selection(),
	}
	if len(s.Dates) > 0 {
		anchor := p.engine.Anchor()
		s.Anchor = &anchor
	}
	return s
}

// ---- context menu ----------------------------------------------------------

// MenuSnapshot is the read model of the context menu.
type MenuSnapshot struct {
	Open bool `json:"open"`
	X    int  `json:"x"`
	Y    int  `json:"y"`
}

// OpenMenu opens the context menu at (x, y). It fails with ErrValidation when
// there is no selection to act on.
func (p *Planner) OpenMenu(_ context.Context, x, y int) (MenuSnapshot, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.menu.Open(x, y, len(p.engine.Selection()) > 0) {
		return p.menuSnapshot(), fmt.Errorf("service.Planner.OpenMenu: %w: nothing selected", domain.ErrValidation)
	}
	return p.menuSnapshot(), nil
}

// DocumentClick is a click anywhere in the document; it dismisses an open
// menu.
func (p *Planner) DocumentClick(_ context.Context) MenuSnapshot {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.doc.Dispatch(selection.EventClick)
	return p.menuSnapshot()
}

// Menu returns the menu state.
func (p *Planner) Menu(_ context.Context) MenuSnapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.menuSnapshot()
}

func (p *Planner) menuSnapshot() MenuSnapshot {
	x, y := p.menu.Position()
	return MenuSnapshot{Open: p.menu.State() == selection.MenuOpen, X: x, Y: y}
}

// ---- trips -----------------------------------------------------------------

// NewTripRequest carries the fields of the new-trip form. Dates come from the
// finalized selection.
type NewTripRequest struct {
	Name        string
	Color       string
	DailyBudget *decimal.Decimal
	Currency    string
}

// SubmitNewTrip creates a trip spanning the current selection. It fails with
// ErrValidation, changing nothing, when the name is blank or nothing is
// selected. A drag still in progress is finalized before its dates are used;
// the context menu closes once the trip exists.
func (p *Planner) SubmitNewTrip(ctx context.Context, req NewTripRequest) (domain.Trip, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if req.DailyBudget != nil && req.DailyBudget.IsNegative() {
		p.metrics.Rejected("create_trip")
		return domain.Trip{}, fmt.Errorf("service.Planner.SubmitNewTrip: %w: daily_budget must not be negative", domain.ErrValidation)
	}
	in := domain.NewTripInput{
		Name:        req.Name,
		Color:       req.Color,
		Dates:       p.engine.Selection(),
		DailyBudget: req.DailyBudget,
		Currency:    req.Currency,
	}
	if in.Color == "" {
		in.Color = p.defaultColor
	}
	if _, ok := domain.NewTrip("", in); !ok {
		return domain.Trip{}, p.rejectTrip(ctx, in)
	}

	if dates, ok := p.engine.End(); ok {
		in.Dates = dates
	}
	trip, ok := p.trips.Create(ctx, in)
	if !ok {
		return domain.Trip{}, p.rejectTrip(ctx, in)
	}
	p.menu.Close()

	p.metrics.TripCreated()
	p.log.InfoContext(ctx, "trip created", "trip_id", trip.ID, "name", trip.Name, "days", len(trip.Dates))
	return trip, nil
}

func (p *Planner) rejectTrip(ctx context.Context, in domain.NewTripInput) error {
	p.metrics.Rejected("create_trip")
	p.log.DebugContext(ctx, "trip creation skipped", "name", in.Name, "selected_days", len(in.Dates))
	if len(in.Dates) == 0 {
		return fmt.Errorf("service.Planner.SubmitNewTrip: %w: no dates selected", domain.ErrValidation)
	}
	return fmt.Errorf("service.Planner.SubmitNewTrip: %w: name is required", domain.ErrValidation)
}

// ListTrips returns one page of trips in creation order and the total count.
func (p *Planner) ListTrips(ctx context.Context, params domain.PaginationParams) ([]domain.Trip, int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	all := p.trips.List(ctx)
	start, end := params.Window(len(all))
	return all[start:end], len(all)
}

// GetTrip returns a single trip. Returns domain.ErrNotFound if it does not
// exist.
func (p *Planner) GetTrip(ctx context.Context, id string) (domain.Trip, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	trip, err := p.trips.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.Planner.GetTrip: %w", err)
	}
	return trip, nil
}

// SelectTrip toggles the selected trip: selecting the trip that is already
// selected clears the selection. It returns the selected id afterwards, empty
// when none.
func (p *Planner) SelectTrip(ctx context.Context, id string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, err := p.trips.GetByID(ctx, id); err != nil {
		return p.selectedTripID, fmt.Errorf("service.Planner.SelectTrip: %w", err)
	}
	if p.selectedTripID == id {
		p.selectedTripID = ""
	} else {
		p.selectedTripID = id
	}
	return p.selectedTripID, nil
}

// SelectedTripID returns the selected trip id, empty when none.
func (p *Planner) SelectedTripID(_ context.Context) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.selectedTripID
}
