package gallery

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// Search returns the catalog index that best matches query. A field that
// contains the query wins outright (earliest record first); otherwise the
// record with the smallest edit distance over id, theme, artist and tag is
// chosen.
func Search(c Catalog, query string) (int, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" || c.Len() == 0 {
		return -1, false
	}
	best, bestDist := -1, 0
	for i, rec := range c.items {
		for _, field := range searchFields(rec) {
			if field == "" {
				continue
			}
			if strings.Contains(field, q) {
				return i, true
			}
			d := levenshtein.ComputeDistance(q, field)
			if best < 0 || d < bestDist {
				best, bestDist = i, d
			}
		}
	}
	return best, best >= 0
}

func searchFields(rec Artwork) []string {
	return []string{
		strings.ToLower(rec.ID),
		strings.ToLower(rec.Theme),
		strings.ToLower(rec.Artist),
		strings.ToLower(rec.Tag),
	}
}
