package gallery

import "errors"

// ErrNoCurrent is returned when an operation needs a current slide but the
// catalog is empty.
var ErrNoCurrent = errors.New("no artwork under the cursor")

// ErrNoPending is returned by ResolvePending outside replacement mode.
var ErrNoPending = errors.New("no replacement pending")

// State is the whole application state. Its owner is the only place that
// persists Favorites, once for every call that reports a change.
type State struct {
	Catalog   Catalog
	Favorites Favorites
	Window    *Window
	// Selected is the record shown enlarged, if any.
	Selected *Artwork
	// Pending is the record waiting for a replacement target slot.
	Pending *Artwork
}

// NewState builds an empty-catalog state around favorites.
func NewState(favorites Favorites, opts WindowOptions) *State {
	return &State{
		Favorites: favorites,
		Window:    NewWindow(Catalog{}, opts),
	}
}

// ReplaceCatalog swaps in a freshly fetched catalog and resets the window.
// It returns how many records were dropped for a missing or repeated id.
func (s *State) ReplaceCatalog(records []Artwork) int {
	c, dropped := NewCatalog(records)
	s.Catalog = c
	s.Window.Reset(c)
	return dropped
}

// AddCurrent adds the current slide to the favorites. When the list is full
// the record becomes Pending and the request is returned.
func (s *State) AddCurrent() (bool, *ReplacementRequest, error) {
	rec, ok := s.Window.Current()
	if !ok {
		return false, nil, ErrNoCurrent
	}
	next, req := AddOrReplace(s.Favorites, rec)
	if req != nil {
		pending := req.Pending
		s.Pending = &pending
		return false, req, nil
	}
	return s.commit(next), nil, nil
}

// ResolvePending writes the pending record into slot and leaves replacement
// mode.
func (s *State) ResolvePending(slot int) (bool, error) {
	if s.Pending == nil {
		return false, ErrNoPending
	}
	next, err := ResolveReplacement(s.Favorites, *s.Pending, slot)
	if err != nil {
		return false, err
	}
	s.Pending = nil
	return s.commit(next), nil
}

// CancelPending leaves replacement mode without changing the favorites.
func (s *State) CancelPending() { s.Pending = nil }

// DropCurrent drops the current slide onto slot.
func (s *State) DropCurrent(slot int) (bool, error) {
	rec, ok := s.Window.Current()
	if !ok {
		return false, ErrNoCurrent
	}
	next, err := DropFromCarouselDrag(s.Favorites, rec, slot)
	if err != nil {
		return false, err
	}
	return s.commit(next), nil
}

// Select shows rec enlarged.
func (s *State) Select(rec Artwork) { s.Selected = &rec }

// ClearSelection closes the enlarged view.
func (s *State) ClearSelection() { s.Selected = nil }

func (s *State) commit(next Favorites) bool {
	changed := !sameSlots(s.Favorites, next)
	s.Favorites = next
	return changed
}

func sameSlots(a, b Favorites) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		switch {
		case a[i] == nil && b[i] == nil:
		case a[i] == nil || b[i] == nil:
			return false
		case *a[i] != *b[i]:
			return false
		}
	}
	return true
}
