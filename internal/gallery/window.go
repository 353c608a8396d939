package gallery

import "sort"

// Default window sizing.
const (
	DefaultProximity   = 4
	DefaultInitialSpan = 5
)

// WindowOptions controls how much of the catalog a Window materializes.
type WindowOptions struct {
	// Proximity is the half-width of the window around the cursor.
	Proximity int
	// InitialSpan is the last index seeded before any navigation.
	InitialSpan int
	// Evict drops entries outside the current proximity window on every
	// cursor change. When false the loaded set only grows.
	Evict bool
}

// DefaultWindowOptions returns the never-evicting 4/5 window.
func DefaultWindowOptions() WindowOptions {
	return WindowOptions{Proximity: DefaultProximity, InitialSpan: DefaultInitialSpan}
}

// Window tracks the carousel cursor and which catalog indices are loaded for
// rendering. Navigation loops modulo the catalog length.
type Window struct {
	catalog Catalog
	opts    WindowOptions
	cursor  int
	loaded  map[int]Artwork
}

// NewWindow returns a window initialized over catalog.
func NewWindow(catalog Catalog, opts WindowOptions) *Window {
	if opts.Proximity < 0 {
		opts.Proximity = 0
	}
	if opts.InitialSpan < 0 {
		opts.InitialSpan = 0
	}
	w := &Window{opts: opts}
	w.Reset(catalog)
	return w
}

// Reset replaces the catalog, moves the cursor to 0 and seeds the loaded set
// with indices 0..min(InitialSpan, len-1).
func (w *Window) Reset(catalog Catalog) {
	w.catalog = catalog
	w.cursor = 0
	w.loaded = make(map[int]Artwork)
	last := min(w.opts.InitialSpan, catalog.Len()-1)
	for i := 0; i <= last; i++ {
		rec, _ := catalog.At(i)
		w.loaded[i] = rec
	}
}

// Len returns the catalog length.
func (w *Window) Len() int { return w.catalog.Len() }

// Cursor returns the zero-based index of the current slide.
func (w *Window) Cursor() int { return w.cursor }

// Current returns the record under the cursor.
func (w *Window) Current() (Artwork, bool) { return w.catalog.At(w.cursor) }

// Loaded returns the record at i if it is materialized.
func (w *Window) Loaded(i int) (Artwork, bool) {
	rec, ok := w.loaded[i]
	return rec, ok
}

// LoadedIndices returns the materialized indices in ascending order.
func (w *Window) LoadedIndices() []int {
	out := make([]int, 0, len(w.loaded))
	for i := range w.loaded {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// OnCursorChange moves the cursor to newCursor (looped into range) and loads
// every index within Proximity of it. It reports whether the loaded set
// changed.
func (w *Window) OnCursorChange(newCursor int) bool {
	n := w.catalog.Len()
	if n == 0 {
		return false
	}
	w.cursor = loop(newCursor, n)
	changed := false
	for i := newCursor - w.opts.Proximity; i <= newCursor+w.opts.Proximity; i++ {
		idx := loop(i, n)
		if _, ok := w.loaded[idx]; ok {
			continue
		}
		rec, ok := w.catalog.At(idx)
		if !ok {
			continue
		}
		w.loaded[idx] = rec
		changed = true
	}
	if w.opts.Evict {
		for idx := range w.loaded {
			if ringDistance(idx, w.cursor, n) > w.opts.Proximity {
				delete(w.loaded, idx)
				changed = true
			}
		}
	}
	return changed
}

// Next advances the cursor by one slide, wrapping at the end.
func (w *Window) Next() bool { return w.OnCursorChange(w.cursor + 1) }

// Prev moves the cursor back one slide, wrapping at the start.
func (w *Window) Prev() bool { return w.OnCursorChange(w.cursor - 1) }

// JumpTo moves to the one-based slide number. Numbers outside [1, Len] are
// ignored. It reports whether the jump was applied.
func (w *Window) JumpTo(oneBased int) bool {
	if oneBased < 1 || oneBased > w.catalog.Len() {
		return false
	}
	w.OnCursorChange(oneBased - 1)
	return true
}

func loop(i, n int) int {
	return ((i % n) + n) % n
}

func ringDistance(a, b, n int) int {
	d := a - b
	if d < 0 {
		d = -d
	}
	return min(d, n-d)
}
