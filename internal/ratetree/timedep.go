package ratetree

import "kmcsim/internal/rng"

// ElementChecker implements the lazy-rebinning protocol: a
// TimeDepRateTree consults it only when a weighted draw actually
// surfaces a candidate whose freshness needs validating, so work
// happens only on elements that are touched.
type ElementChecker interface {
	// NextRebinTime returns the absolute time at which element must next
	// be checked for promotion out of its current age bin.
	NextRebinTime(state any, element int32) float64

	// Rebin is called once now has passed element's NextRebinTime. It
	// must update whatever bookkeeping the element carries (e.g. an
	// Entity or Tweet's stored age-bin field and next-rebin time) so
	// that a subsequent Classify call places it correctly, and it
	// reports the element's new bin along with whether the element
	// should be evicted outright instead of reinserted (an element
	// leaving the last age bin has no bin to move to, i.e. newBin >=
	// NBins() evicts).
	Rebin(state any, element int32, now float64) (newBin int, evict bool)

	// NBins reports the number of legal age bins.
	NBins() int
}

// TimeDepRateTree wraps a CategoryTree keyed by age bin, rebinning
// elements lazily as PickWeighted draws touch them.
type TimeDepRateTree struct {
	tree *CategoryTree
	cls  *Classifier
}

// NewTimeDep builds a TimeDepRateTree whose top-level classifier
// partitions elements into age bins.
func NewTimeDep(state any, cls *Classifier) *TimeDepRateTree {
	return &TimeDepRateTree{tree: New(state, cls), cls: cls}
}

// Add inserts element per its current age-bin classification.
func (t *TimeDepRateTree) Add(state any, element int32) bool {
	return t.tree.Add(state, element)
}

// Remove deletes element from its current age bin.
func (t *TimeDepRateTree) Remove(state any, element int32) bool {
	return t.tree.Remove(state, element)
}

// Size returns the total number of elements across all age bins.
func (t *TimeDepRateTree) Size() int {
	return t.tree.Size()
}

// TotalRate returns the tree's cached total rate.
func (t *TimeDepRateTree) TotalRate() float64 {
	return t.tree.TotalRate()
}

// PickUniform selects an element uniformly at random without consulting
// the checker: uniform draws don't need freshness, only weighted draws
// do, since that's the only place the checker fires.
func (t *TimeDepRateTree) PickUniform(r *rng.RNG) (int32, bool) {
	return t.tree.PickUniform(r)
}

// PickWeighted draws a candidate and validates it against check. An
// expired candidate is removed from its current bin, rebinned or
// evicted via check.Rebin, and the draw retries — the lazy-rebinning
// protocol this type exists for. Total rate stays consistent with the
// sum of leaf rates on entry and exit.
func (t *TimeDepRateTree) PickWeighted(state any, r *rng.RNG, now float64, check ElementChecker) (int32, bool) {
	for {
		cand, ok := t.tree.PickWeighted(r)
		if !ok {
			return 0, false
		}
		if now <= check.NextRebinTime(state, cand) {
			return cand, true
		}
		t.tree.Remove(state, cand)
		newBin, evict := check.Rebin(state, cand, now)
		if !evict && newBin < check.NBins() {
			t.tree.Add(state, cand)
		}
		// Either evicted or reinserted; the candidate itself is stale
		// either way, so retry the draw.
	}
}

// RecalcRates recomputes every cached total bottom-up, used when the
// classifier's rate schedule changes independent of membership.
func (t *TimeDepRateTree) RecalcRates(state any) {
	t.tree.RecalcRates(state)
}

// ShiftAndRecalcRates inserts a new empty first bin, shifts every
// existing bin's index up by one, collapses any bins beyond cls's
// current NumBins into the last legal bin, and recomputes rates. It
// requires the wrapped tree to be a single flat leaf level, which is
// how the tweet-observation age bins in this engine are modeled.
func (t *TimeDepRateTree) ShiftAndRecalcRates(state any, cls *Classifier) {
	root, ok := t.tree.root.(*innerLayer)
	if !ok {
		panic("ratetree: ShiftAndRecalcRates requires a flat leaf-level tree")
	}
	n := cls.NumBins(state)

	shifted := make([]Layer, 0, len(root.children)+1)
	shifted = append(shifted, newLeafLayer(state, cls, 0))
	for _, child := range root.children {
		leaf, ok := child.(*leafLayer)
		if !ok {
			panic("ratetree: ShiftAndRecalcRates requires a flat leaf-level tree")
		}
		leaf.bin++
		leaf.cls = cls
		shifted = append(shifted, leaf)
	}

	if len(shifted) > n {
		merged := newLeafLayer(state, cls, n-1)
		for _, extra := range shifted[n-1:] {
			leaf := extra.(*leafLayer)
			for _, e := range leaf.set.Elements() {
				merged.set.Add(e)
			}
		}
		shifted = append(shifted[:n-1], merged)
	}

	root.cls = cls
	root.children = shifted
	root.Recalc(state)
}
