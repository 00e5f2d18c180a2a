package aecs

import "slices"

// Query is an iterator over the entities whose archetype carries every kind
// of a mask. It reads a single column per matching archetype: the column of
// the mask's lowest kind.
type Query struct {
	world   *World
	current *column
	mask    Mask
	archIdx int
	index   int
	anchor  Kind
	empty   bool
}

// NewQuery creates a query for mask. A query over the empty mask has no
// anchor kind and yields nothing.
func NewQuery(w *World, mask Mask) *Query {
	anchor, ok := mask.LowestBit()
	return &Query{
		world:  w,
		mask:   mask,
		anchor: anchor,
		empty:  !ok,
		index:  -1,
	}
}

// Reset rewinds the query so it can be iterated again. Archetypes created
// since the last pass are picked up.
func (self *Query) Reset() {
	self.archIdx = 0
	self.index = -1
	self.current = nil
}

// Next advances to the next entity. Returns false if no more entities.
func (self *Query) Next() bool {
	if self.empty {
		return false
	}
	self.index++
	if self.current != nil && self.index < self.current.len() {
		return true
	}
	archetypes := self.world.archetypes.archetypes
	for self.archIdx < len(archetypes) {
		a := archetypes[self.archIdx]
		self.archIdx++
		if !a.mask.Contains(self.mask) {
			continue
		}
		c := a.columns[self.anchor]
		if c == nil || c.len() == 0 {
			continue
		}
		self.current = c
		self.index = 0
		return true
	}
	self.current = nil
	return false
}

// Entity returns the current entity.
func (self *Query) Entity() Entity {
	return self.current.entities[self.index]
}

// Mask returns the kinds the query requires.
func (self *Query) Mask() Mask {
	return self.mask
}

// Query returns every entity whose archetype mask is a superset of mask, in
// ascending order. The empty mask matches nothing.
func (w *World) Query(mask Mask) []Entity {
	var out []Entity
	q := NewQuery(w, mask)
	for q.Next() {
		out = append(out, q.Entity())
	}
	slices.Sort(out)
	return out
}

// Each calls fn for every entity matching mask, archetype by archetype,
// without collecting a result slice. Iteration stops when fn returns false. fn must not add
// components while iterating.
func (w *World) Each(mask Mask, fn func(Entity) bool) {
	q := NewQuery(w, mask)
	for q.Next() {
		if !fn(q.Entity()) {
			return
		}
	}
}
