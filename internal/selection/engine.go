package selection

import (
	"github.com/pkordes/trip-planner/internal/domain"
)

// State is the drag state of an Engine.
type State int

const (
	Idle State = iota
	Dragging
)

func (s State) String() string {
	if s == Dragging {
		return "dragging"
	}
	return "idle"
}

// Engine tracks a drag gesture over the grid and the contiguous, inclusive
// range of dates it covers.
//
// While Dragging it holds a document pointer-up listener, so a release that
// happens outside the grid still finalizes the drag. The listener is released
// on every way out of Dragging: End, Cancel and Close.
type Engine struct {
	doc      *Document
	onFinish func([]domain.Date)

	state   State
	anchor  domain.Date
	working []domain.Date
	release func()
}

// NewEngine returns an idle Engine bound to doc. onFinish, if non-nil, gets
// every finalized selection.
func NewEngine(doc *Document, onFinish func([]domain.Date)) *Engine {
	return &Engine{doc: doc, onFinish: onFinish}
}

// State reports whether a drag is in progress.
func (e *Engine) State() State { return e.state }

// Anchor returns the date the current or last drag started on.
func (e *Engine) Anchor() domain.Date { return e.anchor }

// Selection returns a copy of the working selection in chronological order.
// It survives End, so a finalized selection can still be acted on, and is
// only replaced by the next Begin.
func (e *Engine) Selection() []domain.Date {
	return append([]domain.Date{}, e.working...)
}

// Begin starts a drag on date. Only the primary button starts one; any other
// button is ignored and Begin returns false. Beginning while already dragging
// restarts from the new anchor.
func (e *Engine) Begin(date domain.Date, primary bool) bool {
	if !primary {
		return false
	}
	e.anchor = date
	e.working = []domain.Date{date}
	e.state = Dragging
	if e.release == nil {
		e.release = e.doc.Listen(EventPointerUp, func() { e.End() })
	}
	return true
}

// Extend recomputes the selection as every date between the anchor and date,
// inclusive, whichever way the pointer moved. The result depends only on the
// anchor and date, never on cells visited before. Extend returns false when no
// drag is in progress.
func (e *Engine) Extend(date domain.Date) bool {
	if e.state != Dragging {
		return false
	}
	e.working = domain.Range(e.anchor, date)
	return true
}

// End finalizes the drag and returns the selection. An empty selection ends
// the drag without emitting anything. End while Idle is a no-op.
func (e *Engine) End() ([]domain.Date, bool) {
	if e.state != Dragging {
		return nil, false
	}
	e.stop()
	if len(e.working) == 0 {
		return nil, false
	}
	out := e.Selection()
	if e.onFinish != nil {
		e.onFinish(out)
	}
	return out, true
}

// Cancel abandons a drag without emitting a selection.
func (e *Engine) Cancel() {
	if e.state != Dragging {
		return
	}
	e.stop()
	e.working = nil
}

// Close tears the engine down, releasing any listener it holds.
func (e *Engine) Close() {
	e.stop()
}

func (e *Engine) stop() {
	e.state = Idle
	if e.release != nil {
		e.release()
		e.release = nil
	}
}
