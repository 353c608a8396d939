package gallery

import (
	"errors"
	"fmt"
)

// ErrIndexOutOfRange is returned when a slot index falls outside [0, N).
var ErrIndexOutOfRange = errors.New("slot index out of range")

// Favorites is the fixed-length favorites shortlist. A nil entry is an empty
// slot. No artwork id occupies more than one slot.
//
// The functions below never modify their input; each returns a fresh list.
type Favorites []*Artwork

// ReplacementRequest is returned by AddOrReplace when every slot is taken.
// The caller must obtain a target slot and call ResolveReplacement.
type ReplacementRequest struct {
	Pending Artwork
}

// InitFavorites sizes persisted state to n slots. Missing slots are empty and
// entries past n-1 are dropped. Only the first occurrence of an id is kept.
func InitFavorites(persisted []*Artwork, n int) Favorites {
	if n < 0 {
		n = 0
	}
	out := make(Favorites, n)
	seen := make(map[string]struct{}, n)
	for i := 0; i < n && i < len(persisted); i++ {
		rec := persisted[i]
		if rec == nil || rec.ID == "" {
			continue
		}
		if _, dup := seen[rec.ID]; dup {
			continue
		}
		seen[rec.ID] = struct{}{}
		cp := *rec
		out[i] = &cp
	}
	return out
}

// Len returns the number of slots.
func (f Favorites) Len() int { return len(f) }

// Contains reports whether the id occupies a slot.
func (f Favorites) Contains(id string) bool {
	return f.SlotOf(id) >= 0
}

// SlotOf returns the slot holding id, or -1.
func (f Favorites) SlotOf(id string) int {
	for i, rec := range f {
		if rec != nil && rec.ID == id {
			return i
		}
	}
	return -1
}

// FirstEmpty returns the lowest empty slot index, or -1 when full.
func (f Favorites) FirstEmpty() int {
	for i, rec := range f {
		if rec == nil {
			return i
		}
	}
	return -1
}

// Full reports whether every slot is occupied.
func (f Favorites) Full() bool { return f.FirstEmpty() < 0 }

// Count returns the number of occupied slots.
func (f Favorites) Count() int {
	n := 0
	for _, rec := range f {
		if rec != nil {
			n++
		}
	}
	return n
}

// Clone returns a copy of the slot sequence.
func (f Favorites) Clone() Favorites {
	out := make(Favorites, len(f))
	copy(out, f)
	return out
}

// AddOrReplace adds rec to the first empty slot. A record already present is
// a no-op. When the list is full it is returned unchanged together with a
// ReplacementRequest for rec.
func AddOrReplace(cur Favorites, rec Artwork) (Favorites, *ReplacementRequest) {
	if cur.Contains(rec.ID) {
		return cur, nil
	}
	slot := cur.FirstEmpty()
	if slot < 0 {
		return cur, &ReplacementRequest{Pending: rec}
	}
	return cur.set(slot, rec), nil
}

// ResolveReplacement overwrites target with pending whatever it held before.
func ResolveReplacement(cur Favorites, pending Artwork, target int) (Favorites, error) {
	if err := cur.checkSlot(target); err != nil {
		return cur, err
	}
	return cur.set(target, pending), nil
}

// DropFromCarouselDrag places a record dragged from the carousel. The drop
// target is only honored when the list is full; otherwise the record fills
// the first empty slot like AddOrReplace.
func DropFromCarouselDrag(cur Favorites, rec Artwork, target int) (Favorites, error) {
	if cur.Contains(rec.ID) {
		return cur, nil
	}
	if slot := cur.FirstEmpty(); slot >= 0 {
		return cur.set(slot, rec), nil
	}
	if err := cur.checkSlot(target); err != nil {
		return cur, err
	}
	return cur.set(target, rec), nil
}

func (f Favorites) checkSlot(i int) error {
	if i < 0 || i >= len(f) {
		return fmt.Errorf("%w: slot %d, size %d", ErrIndexOutOfRange, i, len(f))
	}
	return nil
}

func (f Favorites) set(i int, rec Artwork) Favorites {
	out := f.Clone()
	out[i] = &rec
	return out
}
