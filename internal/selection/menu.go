package selection

// MenuState is the visibility of the context menu.
type MenuState int

const (
	MenuClosed MenuState = iota
	MenuOpen
)

func (s MenuState) String() string {
	if s == MenuOpen {
		return "open"
	}
	return "closed"
}

// Menu is the context menu offered over a selection. While open it holds a
// document click listener that dismisses it.
type Menu struct {
	doc *Document

	state   MenuState
	x, y    int
	release func()
}

// NewMenu returns a closed Menu bound to doc.
func NewMenu(doc *Document) *Menu {
	return &Menu{doc: doc}
}

// State reports whether the menu is open.
func (m *Menu) State() MenuState { return m.state }

// Position returns where the menu was last opened.
func (m *Menu) Position() (x, y int) { return m.x, m.y }

// Open shows the menu at (x, y). There is nothing to offer without a
// selection, so Open returns false and stays closed when hasSelection is false.
func (m *Menu) Open(x, y int, hasSelection bool) bool {
	if !hasSelection {
		return false
	}
	m.x, m.y = x, y
	m.state = MenuOpen
	if m.release == nil {
		m.release = m.doc.Listen(EventClick, m.Close)
	}
	return true
}

// Close hides the menu and releases its click listener.
func (m *Menu) Close() {
	m.state = MenuClosed
	if m.release != nil {
		m.release()
		m.release = nil
	}
}
