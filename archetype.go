package aecs

import "github.com/kamstrup/intmap"

// ArchetypeID is the stable index of an archetype in its world's arena.
type ArchetypeID uint32

// NoArchetype marks an unset side of an Edge.
const NoArchetype ArchetypeID = ^ArchetypeID(0)

// emptyArchetype is the id of the empty-mask archetype every world starts with.
const emptyArchetype ArchetypeID = 0

// Edge is the cached transition of an archetype for one kind. Add is the
// archetype reached by adding the kind; Remove is the archetype reached by
// removing it. Edges reference archetypes by id, never by pointer.
type Edge struct {
	Add    ArchetypeID
	Remove ArchetypeID
}

func newEdge() Edge {
	return Edge{Add: NoArchetype, Remove: NoArchetype}
}

// column is the storage of one kind inside one archetype: a sparse index from
// entity to a dense row, plus the dense entity and payload slices.
type column struct {
	index    *intmap.Map[Entity, int]
	entities []Entity
	data     []Component
}

func newColumn(capacity int) *column {
	return &column{
		index:    intmap.New[Entity, int](capacity),
		entities: make([]Entity, 0, capacity),
		data:     make([]Component, 0, capacity),
	}
}

// put inserts or replaces the instance stored for e.
func (c *column) put(e Entity, v Component) {
	if row, ok := c.index.Get(e); ok {
		c.data[row] = v
		return
	}
	c.index.Put(e, len(c.entities))
	c.entities = append(c.entities, e)
	c.data = append(c.data, v)
}

func (c *column) get(e Entity) (Component, bool) {
	row, ok := c.index.Get(e)
	if !ok {
		return nil, false
	}
	return c.data[row], true
}

// remove swaps the last row into e's slot to keep the dense slices packed.
func (c *column) remove(e Entity) bool {
	row, ok := c.index.Get(e)
	if !ok {
		return false
	}
	last := len(c.entities) - 1
	if row < last {
		moved := c.entities[last]
		c.entities[row] = moved
		c.data[row] = c.data[last]
		c.index.Put(moved, row)
	}
	c.data[last] = nil
	c.entities = c.entities[:last]
	c.data = c.data[:last]
	c.index.Del(e)
	return true
}

func (c *column) len() int {
	return len(c.entities)
}

// Archetype holds the storage of every entity whose component set is exactly
// its mask.
type Archetype struct {
	columns [MaxComponentKinds]*column // Per-kind storage; nil if the kind is absent.
	edges   map[Kind]Edge              // Cached transitions keyed by kind.
	mask    Mask                       // The component kinds of this archetype.
	id      ArchetypeID                // Position in World.archetypes.
}

func newArchetype(id ArchetypeID, mask Mask) *Archetype {
	return &Archetype{
		id:    id,
		mask:  mask,
		edges: make(map[Kind]Edge),
	}
}

// ID returns the archetype's id.
func (a *Archetype) ID() ArchetypeID {
	return a.id
}

// Mask returns the archetype's component kinds.
func (a *Archetype) Mask() Mask {
	return a.mask
}

// Edge returns the cached transition for k.
func (a *Archetype) Edge(k Kind) (Edge, bool) {
	e, ok := a.edges[k]
	return e, ok
}

// Len returns the number of entities stored in the archetype. The empty
// archetype stores nothing.
func (a *Archetype) Len() int {
	k, ok := a.mask.LowestBit()
	if !ok || a.columns[k] == nil {
		return 0
	}
	return a.columns[k].len()
}

// column returns the column for k, creating it when missing.
func (a *Archetype) column(k Kind, capacity int) *column {
	c := a.columns[k]
	if c == nil {
		c = newColumn(capacity)
		a.columns[k] = c
	}
	return c
}

// setAdd records the archetype reached from a by adding k.
func (a *Archetype) setAdd(k Kind, to ArchetypeID) {
	e, ok := a.edges[k]
	if !ok {
		e = newEdge()
	}
	e.Add = to
	a.edges[k] = e
}

// setBack records, on the destination of an add transition, the archetype
// the transition came from.
func (a *Archetype) setBack(k Kind, from ArchetypeID) {
	e, ok := a.edges[k]
	if !ok {
		e = newEdge()
	}
	e.Remove = from
	a.edges[k] = e
}

// evict drops every row e holds in the archetype.
func (a *Archetype) evict(e Entity) {
	a.mask.ForEach(func(k Kind) bool {
		if c := a.columns[k]; c != nil {
			c.remove(e)
		}
		return true
	})
}
