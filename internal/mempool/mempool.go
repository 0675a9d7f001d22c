// Package mempool implements a single contiguous, growable buffer that
// backs every entity's follow_set and follower_set. It is allocated once
// by New and never reallocated afterward, so the positions of values
// appended by AddIfPossible stay stable for the life of the engine.
package mempool

// Pool is a slab of fixed-length "grower slots," one per entity, sharing
// one backing buffer. Elements can be appended to a slot until it is
// full; there is no per-element deletion.
type Pool struct {
	buf      []int32
	lens     []int32
	slotSize int
}

// New preallocates totalSlots slots of maxSlotLen elements each.
func New(totalSlots, maxSlotLen int) *Pool {
	if totalSlots < 0 || maxSlotLen < 0 {
		panic("mempool: negative size")
	}
	return &Pool{
		buf:      make([]int32, totalSlots*maxSlotLen),
		lens:     make([]int32, totalSlots),
		slotSize: maxSlotLen,
	}
}

// AddIfPossible appends value to slot's list, returning false without
// modifying anything if the slot is already at capacity.
func (p *Pool) AddIfPossible(slot int, value int32) bool {
	n := p.lens[slot]
	if int(n) >= p.slotSize {
		return false
	}
	base := slot * p.slotSize
	p.buf[base+int(n)] = value
	p.lens[slot] = n + 1
	return true
}

// Len reports how many elements are currently stored in slot.
func (p *Pool) Len(slot int) int {
	return int(p.lens[slot])
}

// Slot returns a read-only view of slot's occupied prefix. The returned
// slice aliases the pool's backing buffer and must not be mutated by the
// caller or retained past the next call that could grow the slot.
func (p *Pool) Slot(slot int) []int32 {
	base := slot * p.slotSize
	return p.buf[base : base+int(p.lens[slot])]
}

// At returns the k-th element added to slot.
func (p *Pool) At(slot, k int) int32 {
	return p.buf[slot*p.slotSize+k]
}

// Cap returns the maximum number of elements a slot can hold.
func (p *Pool) Cap() int {
	return p.slotSize
}
