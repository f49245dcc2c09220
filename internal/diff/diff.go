// Package diff computes which fetched listings are new relative to the
// persisted seen set. It is pure: no I/O, no mutation of inputs.
package diff

import "github.com/amishk599/jobwatch/internal/model"

// Diff splits current into the listings whose identifier is absent from seen,
// preserving fetch order, and returns the union of seen with every identifier
// in current. The input seen set is not modified.
func Diff(current []model.Listing, seen model.SeenSet) (fresh []model.Listing, updated model.SeenSet) {
	updated = make(model.SeenSet, len(seen)+len(current))
	for id := range seen {
		updated.Add(id)
	}

	for _, l := range current {
		if !seen.Contains(l.ID) {
			fresh = append(fresh, l)
		}
		updated.Add(l.ID)
	}

	return fresh, updated
}
