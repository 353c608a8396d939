package gallery

// Catalog is the ordered list of artworks loaded for the session. It is
// replaced wholesale on refetch and never mutated in place.
type Catalog struct {
	items []Artwork
	index map[string]int
}

// NewCatalog builds a catalog from fetched records. Records without an id and
// later records repeating an earlier id are dropped; dropped is their count.
func NewCatalog(records []Artwork) (c Catalog, dropped int) {
	c.items = make([]Artwork, 0, len(records))
	c.index = make(map[string]int, len(records))
	for _, r := range records {
		if r.ID == "" {
			dropped++
			continue
		}
		if _, dup := c.index[r.ID]; dup {
			dropped++
			continue
		}
		c.index[r.ID] = len(c.items)
		c.items = append(c.items, r)
	}
	return c, dropped
}

// Len returns the number of records.
func (c Catalog) Len() int { return len(c.items) }

// At returns the record at i.
func (c Catalog) At(i int) (Artwork, bool) {
	if i < 0 || i >= len(c.items) {
		return Artwork{}, false
	}
	return c.items[i], true
}

// IndexOf returns the position of the record with the given id, or -1.
func (c Catalog) IndexOf(id string) int {
	if i, ok := c.index[id]; ok {
		return i
	}
	return -1
}

// Items returns a copy of the records in catalog order.
func (c Catalog) Items() []Artwork {
	out := make([]Artwork, len(c.items))
	copy(out, c.items)
	return out
}
