// Package aecs provides an archetype based Entity-Component-System runtime.
package aecs

// Entity is an opaque identifier for one game object. It carries no payload
// itself; ids are issued in increasing order and never reused.
type Entity uint64

// entityRecord locates an entity's current component storage.
type entityRecord struct {
	archetype ArchetypeID // The archetype holding the entity's components.
	row       Entity      // Lookup key inside the archetype's columns.
}

// entityAllocator issues monotonically increasing entity ids.
type entityAllocator struct {
	next Entity
}

func (a *entityAllocator) create() Entity {
	e := a.next
	a.next++
	return e
}

// CreateEntity issues a new entity id. The entity has no record until its
// first AddComponent.
func (w *World) CreateEntity() Entity {
	return w.entities.create()
}

// CreateEntities issues count consecutive entity ids.
func (w *World) CreateEntities(count int) []Entity {
	if count <= 0 {
		return nil
	}
	ents := make([]Entity, count)
	for i := range ents {
		ents[i] = w.entities.create()
	}
	return ents
}

// EntityCount returns the number of entity ids issued so far.
func (w *World) EntityCount() int {
	return int(w.entities.next)
}
