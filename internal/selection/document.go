// Package selection holds the transient interaction state of the calendar:
// the drag-selection engine, the context menu, and the document-level
// listeners they hold while active.
//
// None of it is safe for concurrent use. Callers deliver one event at a time.
package selection

// Event names a document-level input event.
type Event string

const (
	// EventPointerUp is a pointer release anywhere in the document.
	EventPointerUp Event = "pointerup"
	// EventClick is a click anywhere in the document.
	EventClick Event = "click"
)

// Document dispatches document-level events to whoever currently listens.
// Listeners are held only while some transient state needs them and are
// removed with the release func returned by Listen.
type Document struct {
	next      int
	listeners map[Event]map[int]func()
}

// NewDocument returns a Document with no listeners.
func NewDocument() *Document {
	return &Document{listeners: make(map[Event]map[int]func())}
}

// Listen registers fn for ev. The returned release func deregisters it and
// is safe to call more than once.
func (d *Document) Listen(ev Event, fn func()) (release func()) {
	id := d.next
	d.next++
	if d.listeners[ev] == nil {
		d.listeners[ev] = make(map[int]func())
	}
	d.listeners[ev][id] = fn

	return func() {
		delete(d.listeners[ev], id)
	}
}

// Dispatch calls every listener registered for ev and reports how many ran.
// Listeners may release themselves while being dispatched.
func (d *Document) Dispatch(ev Event) int {
	ids := make([]int, 0, len(d.listeners[ev]))
	for id := range d.listeners[ev] {
		ids = append(ids, id)
	}
	ran := 0
	for _, id := range ids {
		if fn, ok := d.listeners[ev][id]; ok {
			fn()
			ran++
		}
	}
	return ran
}

// Listening returns the number of listeners registered for ev.
func (d *Document) Listening(ev Event) int {
	return len(d.listeners[ev])
}
