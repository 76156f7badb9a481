package build

import (
	"sort"

	"github.com/cockroachdb/swiss"

	"github.com/geodb-project/geodb/internal/normalize"
)

// postingMap accumulates, for each normalized key seen during phases 3 and
// 4, the set of record ids that key resolves to.
//
// Pre-sizing the underlying swiss.Map from the admitted-record count avoids
// the resize storms a built-in Go map suffers once entry counts run into the
// tens of millions, which is the normal scale of a GeoNames build.
type postingMap struct {
	m *swiss.Map[string, *postingList]
}

func newPostingMap(sizeHint int) *postingMap {
	return &postingMap{m: swiss.New[string, *postingList](sizeHint)}
}

// add normalizes raw and, if it yields a non-empty key, appends id to that
// key's posting list. A raw value that is empty after trimming is silently
// ignored, matching the "empty-after-trim keys are rejected" rule.
func (pm *postingMap) add(raw string, id uint32) {
	key, ok := normalize.Key(raw)
	if !ok {
		return
	}
	pl, ok := pm.m.Get(key)
	if !ok {
		pl = &postingList{}
		pm.m.Put(key, pl)
	}
	pl.append(id)
}

// finalizedEntry is one (key, sorted-unique-ids) pair ready for FST
// insertion.
type finalizedEntry struct {
	key string
	ids []uint32
}

// finalize sorts each key's ids ascending, deduplicates adjacent equals, and
// returns all entries sorted lexicographically by raw UTF-8 bytes of the
// key — the ordering blevesearch/vellum requires for strictly-increasing
// key insertion.
func (pm *postingMap) finalize() []finalizedEntry {
	entries := make([]finalizedEntry, 0, pm.m.Len())
	pm.m.All(func(key string, pl *postingList) bool {
		ids := pl.ids()
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		ids = dedupAscending(ids)
		entries = append(entries, finalizedEntry{key: key, ids: ids})
		return true
	})
	sort.Slice(entries, func(i, j int) bool { return entries[i].key < entries[j].key })
	return entries
}

// dedupAscending removes adjacent equal values from an already-sorted
// slice, in place.
func dedupAscending(ids []uint32) []uint32 {
	if len(ids) < 2 {
		return ids
	}
	out := ids[:1]
	for _, id := range ids[1:] {
		if id != out[len(out)-1] {
			out = append(out, id)
		}
	}
	return out
}
