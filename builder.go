package aecs

import "github.com/rotisserie/eris"

// Builder creates entities that carry a fixed set of kinds. Kinds are added
// in ascending order, so every entity walks the same cached edges to the
// same archetype.
type Builder struct {
	world *World
	mask  Mask
}

// NewBuilder returns a builder for the given kinds.
//
// Parameters:
//   - w: The world entities are created in.
//   - kinds: The kinds every built entity carries. Duplicates are ignored.
//
// Returns:
//   - The builder, or an error wrapping ErrInvalidComponentKind when a kind
//     is not registered.
func NewBuilder(w *World, kinds ...Kind) (*Builder, error) {
	for _, k := range kinds {
		if !w.registry.Valid(k) {
			return nil, eris.Wrapf(ErrInvalidComponentKind, "kind %d (registry holds %d)", k, w.registry.Len())
		}
	}
	return &Builder{world: w, mask: NewMask(kinds...)}, nil
}

// Mask returns the kinds the builder adds.
func (b *Builder) Mask() Mask {
	return b.mask
}

// NewEntity creates one entity with every kind at its default payload.
func (b *Builder) NewEntity() (Entity, error) {
	e := b.world.CreateEntity()
	m := b.mask
	for k, ok := m.NextBit(); ok; k, ok = m.NextBit() {
		if err := b.world.AddComponent(e, k); err != nil {
			return e, err
		}
	}
	return e, nil
}

// NewEntityWith creates one entity and then writes payloads over the
// defaults. Each payload's kind must be part of the builder's mask.
func (b *Builder) NewEntityWith(payloads ...Component) (Entity, error) {
	e, err := b.NewEntity()
	if err != nil {
		return e, err
	}
	for _, p := range payloads {
		if err := b.world.UpdateComponent(e, p.Kind(), p); err != nil {
			return e, err
		}
	}
	return e, nil
}

// NewEntities creates count entities, stopping at the first error.
func (b *Builder) NewEntities(count int) ([]Entity, error) {
	out := make([]Entity, 0, count)
	for range count {
		e, err := b.NewEntity()
		if err != nil {
			return out, err
		}
		out = append(out, e)
	}
	return out, nil
}
