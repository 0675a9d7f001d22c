// Package ratetree implements the recursive rate-categorization tree
// and its time-dependent variant. Inner nodes
// partition elements by a Classifier; leaves hold a set of elements
// sharing one rate. Both uniform and rate-weighted random selection run
// in O(tree depth).
package ratetree

import "kmcsim/internal/rng"

// CategoryTree is a depth-parametric classification tree over int32
// element ids.
type CategoryTree struct {
	root Layer
	cls  *Classifier
}

// New builds a CategoryTree governed by the given root classifier,
// evaluated against state at construction time.
func New(state any, cls *Classifier) *CategoryTree {
	return &CategoryTree{root: buildLayer(state, cls), cls: cls}
}

// Add descends the tree, classifying element at each level, and inserts
// it at the leaf. Returns true iff element was not already present, in
// which case every ancestor's cached total_rate and n_elems are updated.
func (t *CategoryTree) Add(state any, element int32) bool {
	return t.root.Add(state, element)
}

// Remove is the dual of Add: it classifies element under the state as
// given, so callers that reclassify an entity after an attribute change
// must call Remove before mutating the attribute that drives
// classification, then Add again with the updated state.
func (t *CategoryTree) Remove(state any, element int32) bool {
	return t.root.Remove(state, element)
}

// Size returns the total number of elements in the tree.
func (t *CategoryTree) Size() int {
	return t.root.Size()
}

// TotalRate returns the tree's cached total rate.
func (t *CategoryTree) TotalRate() float64 {
	return t.root.TotalRate()
}

// PickUniform selects an element uniformly at random over the whole
// population. Returns false iff the tree is empty.
func (t *CategoryTree) PickUniform(r *rng.RNG) (int32, bool) {
	return t.root.PickUniform(r)
}

// PickWeighted selects an element with probability proportional to its
// leaf's rate. Returns false iff the total rate is zero.
func (t *CategoryTree) PickWeighted(r *rng.RNG) (int32, bool) {
	return t.root.PickWeighted(r)
}

// PickUniformInBin draws uniformly from a single named bin of a flat,
// single-level tree, bypassing the normal bin-selection step. It exists
// for callers that must reproduce a bin-selection policy of their own
// (see internal/sim's faithfully-preserved PREFERENTIAL_FOLLOW quirk)
// while still delegating "uniform within the chosen bin" to the tree.
// It panics if the tree is not a flat leaf-level tree.
func (t *CategoryTree) PickUniformInBin(bin int, r *rng.RNG) (int32, bool) {
	root, ok := t.root.(*innerLayer)
	if !ok || !root.cls.IsLeafLevel() {
		panic("ratetree: PickUniformInBin requires a flat leaf-level tree")
	}
	return root.children[bin].PickUniform(r)
}

// RecalcRates recomputes every cached total bottom-up. Used whenever a
// classifier's Rate function depends on external state that has changed
// without any Add/Remove (e.g. a time-dependent rate schedule).
func (t *CategoryTree) RecalcRates(state any) {
	t.root.Recalc(state)
}
