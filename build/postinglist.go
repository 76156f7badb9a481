package build

// postingList accumulates ids for one key during the build's seed/merge
// phases, inlining up to two ids before spilling to a heap slice.
//
// The overwhelming majority of GeoNames keys resolve to exactly one place,
// so a bare []uint32 per key would put tens of millions of 24-byte slice
// headers (plus a separate one-element backing array each) on the heap for
// no benefit. No small-vector library appears anywhere in the retrieved
// corpus, so this type is hand-written rather than borrowed — see
// DESIGN.md.
type postingList struct {
	inline [2]uint32
	n      int8 // number of ids held in inline; -1 once spilled to overflow
	spill  []uint32
}

// append adds id to the list.
func (p *postingList) append(id uint32) {
	if p.n < 0 {
		p.spill = append(p.spill, id)
		return
	}
	if int(p.n) < len(p.inline) {
		p.inline[p.n] = id
		p.n++
		return
	}
	// Spill: move the inline ids into an overflow slice and mark spilled.
	p.spill = append(p.spill, p.inline[:p.n]...)
	p.spill = append(p.spill, id)
	p.n = -1
}

// ids returns the accumulated ids in insertion order. The caller owns the
// returned slice; for the inline case it is freshly allocated so later
// mutation (sort/dedup) cannot alias p.inline.
func (p *postingList) ids() []uint32 {
	if p.n < 0 {
		return p.spill
	}
	out := make([]uint32, p.n)
	copy(out, p.inline[:p.n])
	return out
}
