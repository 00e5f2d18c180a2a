package aecs

import "github.com/rotisserie/eris"

// AddComponent adds kind k to e, moving e to the archetype for its new mask.
//
// The destination archetype receives a fresh default instance for every kind
// of the new mask, not only k: data set earlier on e's other kinds is reset
// to defaults by each AddComponent. Callers populate payloads with
// UpdateComponent once all kinds are added.
//
// Parameters:
//   - e: The entity to extend. An entity without a record starts from the
//     empty archetype.
//   - k: The kind to add.
//
// Returns:
//   - An error wrapping ErrInvalidComponentKind when k is not registered. The
//     world is left untouched in that case.
func (w *World) AddComponent(e Entity, k Kind) error {
	if !w.registry.Valid(k) {
		return eris.Wrapf(ErrInvalidComponentKind, "add kind %d to entity %d", k, e)
	}
	src := w.archetype(emptyArchetype)
	if rec, ok := w.index.Get(e); ok {
		src = w.archetype(rec.archetype)
	}
	dst := w.nextArchetype(src, k)

	if dst.id != src.id {
		src.evict(e)
	}
	w.index.Put(e, entityRecord{archetype: dst.id, row: e})

	// every kind of the destination gets a default instance, not only k
	m := dst.mask
	for bit, ok := m.NextBit(); ok; bit, ok = m.NextBit() {
		dst.column(bit, w.initialCapacity).put(e, w.registry.kinds[bit].new())
	}
	logComponentAdded(&w.logger, e, k, dst.id)
	return nil
}

// nextArchetype walks the add edge of src for k, growing the graph when the
// transition has not been taken before.
func (w *World) nextArchetype(src *Archetype, k Kind) *Archetype {
	if edge, ok := src.edges[k]; ok && edge.Add != NoArchetype {
		return w.archetype(edge.Add)
	}
	dst := w.getOrCreateArchetype(src.mask.With(k))
	if dst.id == src.id {
		return dst
	}
	src.setAdd(k, dst.id)
	dst.setBack(k, src.id)
	return dst
}

// GetComponent returns the instance of kind k stored for e.
//
// A missing record, a missing column and a missing instance are all reported
// as ErrComponentNotFound.
func (w *World) GetComponent(e Entity, k Kind) (Component, error) {
	rec, ok := w.index.Get(e)
	if !ok {
		return nil, eris.Wrapf(ErrComponentNotFound, "entity %d has no components", e)
	}
	c := w.archetype(rec.archetype).columns[k]
	if c == nil {
		return nil, eris.Wrapf(ErrComponentNotFound, "entity %d kind %d", e, k)
	}
	v, ok := c.get(rec.row)
	if !ok {
		return nil, eris.Wrapf(ErrComponentNotFound, "entity %d kind %d", e, k)
	}
	return v, nil
}

// UpdateComponent replaces the instance of kind k stored for e with data.
// This is a replace, not a merge: nothing of the previous instance survives,
// so data must carry the whole payload. A nil data resets the instance to the
// kind's default.
//
// Errors wrap ErrUnknownEntity when e has no record, ErrInvalidComponentKind
// or ErrKindMismatch for a bad kind or payload, and ErrComponentNotFound when
// e's archetype does not carry k.
func (w *World) UpdateComponent(e Entity, k Kind, data Component) error {
	rec, ok := w.index.Get(e)
	if !ok {
		return eris.Wrapf(ErrUnknownEntity, "update kind %d of entity %d", k, e)
	}
	v, err := w.registry.DefaultInstance(k, data)
	if err != nil {
		return err
	}
	return w.replace(rec, e, k, v)
}

// UpdateComponentJSON replaces the instance of kind k stored for e with the
// kind's default overlaid by the JSON object raw.
func (w *World) UpdateComponentJSON(e Entity, k Kind, raw []byte) error {
	rec, ok := w.index.Get(e)
	if !ok {
		return eris.Wrapf(ErrUnknownEntity, "update kind %d of entity %d", k, e)
	}
	v, err := w.registry.DecodeInstance(k, raw)
	if err != nil {
		return err
	}
	return w.replace(rec, e, k, v)
}

func (w *World) replace(rec entityRecord, e Entity, k Kind, v Component) error {
	a := w.archetype(rec.archetype)
	if !a.mask.Has(k) {
		return eris.Wrapf(ErrComponentNotFound, "entity %d has no kind %d", e, k)
	}
	a.columns[k].put(rec.row, v)
	return nil
}

// HasComponent reports whether e's archetype carries k.
func (w *World) HasComponent(e Entity, k Kind) bool {
	rec, ok := w.index.Get(e)
	if !ok {
		return false
	}
	return w.archetype(rec.archetype).mask.Has(k)
}

// MaskOf returns the component kinds of e.
func (w *World) MaskOf(e Entity) (Mask, error) {
	rec, ok := w.index.Get(e)
	if !ok {
		return Mask{}, eris.Wrapf(ErrUnknownEntity, "entity %d", e)
	}
	return w.archetype(rec.archetype).mask, nil
}

// ArchetypeOf returns the id of the archetype currently holding e.
func (w *World) ArchetypeOf(e Entity) (ArchetypeID, error) {
	rec, ok := w.index.Get(e)
	if !ok {
		return NoArchetype, eris.Wrapf(ErrUnknownEntity, "entity %d", e)
	}
	return rec.archetype, nil
}

// Get returns e's component of type T.
func Get[T Component](w *World, e Entity) (T, error) {
	var zero T
	v, err := w.GetComponent(e, zero.Kind())
	if err != nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, eris.Wrapf(ErrKindMismatch, "stored %T, want %T", v, zero)
	}
	return t, nil
}

// Update replaces e's component of type T with v.
func Update[T Component](w *World, e Entity, v T) error {
	return w.UpdateComponent(e, v.Kind(), v)
}
