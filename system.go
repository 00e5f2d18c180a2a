package aecs

import "github.com/rotisserie/eris"

// System is a per-frame behaviour driven by the caller's frame loop. Init is
// called once, before the first Update; Update is called every frame.
type System interface {
	Init(w *World) error
	Update(w *World) error
}

// Base is the entity-set cache a System embeds. Bind moves it from
// unbound to bound by running one query; the cached set is a snapshot, so
// entities that start matching the mask afterwards are not seen until the
// owner opts in to Refresh.
type Base struct {
	entities []Entity
	mask     Mask
	bound    bool
}

// Bind runs the query for mask once and caches the result.
func (b *Base) Bind(w *World, mask Mask) error {
	if b.bound {
		return eris.Wrapf(ErrAlreadyBound, "mask %s", b.mask)
	}
	b.mask = mask
	b.entities = w.Query(mask)
	b.bound = true
	return nil
}

// Refresh re-runs the bound query, picking up entities that started matching
// since Bind.
func (b *Base) Refresh(w *World) error {
	if !b.bound {
		return ErrNotBound
	}
	b.entities = w.Query(b.mask)
	return nil
}

// Entities returns the cached entity set. It must not be modified.
func (b *Base) Entities() []Entity {
	return b.entities
}

// Bound reports whether Bind has run.
func (b *Base) Bound() bool {
	return b.bound
}

// Mask returns the mask the cache was bound with.
func (b *Base) Mask() Mask {
	return b.mask
}
