package ratetree

import (
	"kmcsim/internal/ratetree/idset"
	"kmcsim/internal/rng"
)

// epsilon is the fixed tie-break used by weighted draws that reach the
// end of their cumulative bins due to floating-point round-off.
const epsilon = 1e-16

// Layer is either an inner node (an ordered array of children plus
// cached aggregates) or a leaf (a set of elements with a uniform
// per-element rate). Both variants satisfy the same interface so a
// CategoryTree can be built to whatever depth its classifier chain
// describes without a class hierarchy.
type Layer interface {
	Add(state any, element int32) bool
	Remove(state any, element int32) bool
	Size() int
	TotalRate() float64
	PickUniform(r *rng.RNG) (int32, bool)
	PickWeighted(r *rng.RNG) (int32, bool)
	Recalc(state any)
}

// buildLayer constructs the Layer for the subtree governed by cls.
func buildLayer(state any, cls *Classifier) Layer {
	n := cls.NumBins(state)
	if cls.IsLeafLevel() {
		children := make([]Layer, n)
		for i := 0; i < n; i++ {
			children[i] = newLeafLayer(state, cls, i)
		}
		return &innerLayer{cls: cls, children: children}
	}
	children := make([]Layer, n)
	for i := 0; i < n; i++ {
		children[i] = buildLayer(state, cls.ChildClassifier(state, i))
	}
	return &innerLayer{cls: cls, children: children}
}

// innerLayer partitions elements into children by a classifier and
// caches the aggregate invariant every ancestor maintains:
// total_rate = Σ child.total_rate, n_elems = Σ child.n_elems.
type innerLayer struct {
	cls       *Classifier
	children  []Layer
	totalRate float64
	nElems    int
}

func (n *innerLayer) Add(state any, element int32) bool {
	bin := n.cls.Classify(state, element)
	child := n.children[bin]
	before := child.TotalRate()
	if !child.Add(state, element) {
		return false
	}
	n.totalRate += child.TotalRate() - before
	n.nElems++
	return true
}

func (n *innerLayer) Remove(state any, element int32) bool {
	bin := n.cls.Classify(state, element)
	child := n.children[bin]
	before := child.TotalRate()
	if !child.Remove(state, element) {
		return false
	}
	n.totalRate += child.TotalRate() - before
	n.nElems--
	return true
}

func (n *innerLayer) Size() int {
	return n.nElems
}

func (n *innerLayer) TotalRate() float64 {
	return n.totalRate
}

// PickUniform chooses a child weighted by its element count, then
// recurses, subtracting each candidate's own population as it walks
// rather than a fixed per-bin count.
func (n *innerLayer) PickUniform(r *rng.RNG) (int32, bool) {
	if n.nElems == 0 {
		return 0, false
	}
	target := r.Intn(n.nElems)
	lastNonEmpty := -1
	for i, child := range n.children {
		sz := child.Size()
		if sz == 0 {
			continue
		}
		lastNonEmpty = i
		if target < sz {
			return child.PickUniform(r)
		}
		target -= sz
	}
	if lastNonEmpty == -1 {
		return 0, false
	}
	return n.children[lastNonEmpty].PickUniform(r)
}

// PickWeighted draws u in (0, total_rate), walks children left to right
// accumulating total_rate until the running sum exceeds u, and descends.
// On round-off it falls through to the last non-empty child.
func (n *innerLayer) PickWeighted(r *rng.RNG) (int32, bool) {
	if n.totalRate <= 0 || n.nElems == 0 {
		return 0, false
	}
	u := r.Float64() * n.totalRate
	running := 0.0
	lastNonEmpty := -1
	for i, child := range n.children {
		if child.Size() == 0 {
			continue
		}
		lastNonEmpty = i
		running += child.TotalRate()
		if u < running+epsilon {
			return child.PickWeighted(r)
		}
	}
	if lastNonEmpty == -1 {
		return 0, false
	}
	return n.children[lastNonEmpty].PickWeighted(r)
}

func (n *innerLayer) Recalc(state any) {
	total := 0.0
	elems := 0
	for _, child := range n.children {
		child.Recalc(state)
		total += child.TotalRate()
		elems += child.Size()
	}
	n.totalRate = total
	n.nElems = elems
}

// leafLayer holds the actual element membership for one bin at the
// deepest classifier level. bin is kept as a mutable field, rather than
// closed over at construction time, so TimeDepRateTree's
// ShiftAndRecalcRates can renumber a leaf in place when bins shift.
type leafLayer struct {
	cls       *Classifier
	bin       int
	set       *idset.Set
	rate      float64
	totalRate float64
}

func newLeafLayer(state any, cls *Classifier, bin int) *leafLayer {
	l := &leafLayer{cls: cls, bin: bin, set: idset.New()}
	l.rate = cls.Rate(state, bin)
	return l
}

func (l *leafLayer) Add(state any, element int32) bool {
	if !l.set.Add(element) {
		return false
	}
	l.totalRate = l.rate * float64(l.set.Size())
	return true
}

func (l *leafLayer) Remove(state any, element int32) bool {
	if !l.set.Remove(element) {
		return false
	}
	l.totalRate = l.rate * float64(l.set.Size())
	return true
}

func (l *leafLayer) Size() int {
	return l.set.Size()
}

func (l *leafLayer) TotalRate() float64 {
	return l.totalRate
}

func (l *leafLayer) PickUniform(r *rng.RNG) (int32, bool) {
	if l.set.Size() == 0 {
		return 0, false
	}
	return l.set.PickUniform(r.Intn(l.set.Size())), true
}

// PickWeighted is identical to PickUniform at the leaf level: every
// element in a leaf shares the same rate, so weighting by rate
// degenerates to weighting uniformly.
func (l *leafLayer) PickWeighted(r *rng.RNG) (int32, bool) {
	return l.PickUniform(r)
}

func (l *leafLayer) Recalc(state any) {
	l.rate = l.cls.Rate(state, l.bin)
	l.totalRate = l.rate * float64(l.set.Size())
}
