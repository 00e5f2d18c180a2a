package aecs

import (
	"cmp"
	"slices"

	"github.com/goccy/go-json"
	"github.com/rotisserie/eris"
)

// EntitySnapshot is the state of one entity: its archetype and its
// component payloads keyed by kind name.
type EntitySnapshot struct {
	Components map[string]Component `json:"components"`
	Entity     Entity               `json:"entity"`
	Archetype  ArchetypeID          `json:"archetype"`
}

// Snapshot is a point-in-time copy of every entity with a record.
type Snapshot struct {
	World      string           `json:"world"`
	Entities   []EntitySnapshot `json:"entities"`
	Archetypes int              `json:"archetypes"`
}

// Snapshot copies the current state of the world, entities in ascending
// order. Payloads are shared, not deep-copied.
func (w *World) Snapshot() Snapshot {
	s := Snapshot{
		World:      w.id.String(),
		Archetypes: w.ArchetypeCount(),
		Entities:   make([]EntitySnapshot, 0, w.index.Len()),
	}
	for _, a := range w.archetypes.archetypes {
		anchor, ok := a.mask.LowestBit()
		if !ok || a.columns[anchor] == nil {
			continue
		}
		for _, e := range a.columns[anchor].entities {
			es := EntitySnapshot{
				Entity:     e,
				Archetype:  a.id,
				Components: make(map[string]Component, a.mask.Count()),
			}
			a.mask.ForEach(func(k Kind) bool {
				if v, ok := a.columns[k].get(e); ok {
					es.Components[w.registry.Name(k)] = v
				}
				return true
			})
			s.Entities = append(s.Entities, es)
		}
	}
	slices.SortFunc(s.Entities, func(x, y EntitySnapshot) int {
		return cmp.Compare(x.Entity, y.Entity)
	})
	return s
}

// SnapshotJSON encodes Snapshot as JSON.
func (w *World) SnapshotJSON() ([]byte, error) {
	buf, err := json.Marshal(w.Snapshot())
	if err != nil {
		return nil, eris.Wrap(err, "encode world snapshot")
	}
	return buf, nil
}
