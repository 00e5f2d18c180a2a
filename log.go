package aecs

import "github.com/rs/zerolog"

func componentsArray(reg *Registry, mask Mask) *zerolog.Array {
	arr := zerolog.Arr()
	mask.ForEach(func(k Kind) bool {
		arr = arr.Dict(zerolog.Dict().
			Int("component_id", int(k)).
			Str("component_name", reg.Name(k)))
		return true
	})
	return arr
}

func logArchetypeCreated(logger *zerolog.Logger, reg *Registry, a *Archetype) {
	if logger.GetLevel() > zerolog.DebugLevel {
		return
	}
	logger.Debug().
		Uint32("archetype_id", uint32(a.id)).
		Array("components", componentsArray(reg, a.mask)).
		Msg("archetype created")
}

func logComponentAdded(logger *zerolog.Logger, e Entity, k Kind, arch ArchetypeID) {
	logger.Debug().
		Uint64("entity_id", uint64(e)).
		Int("component_id", int(k)).
		Uint32("archetype_id", uint32(arch)).
		Msg("component added")
}

// LogState logs the registered kinds and the size of the world at level.
func (w *World) LogState(level zerolog.Level) {
	w.logger.WithLevel(level).
		Int("total_components", w.registry.Len()).
		Array("components", componentsArray(w.registry, w.registry.Mask())).
		Int("total_archetypes", w.ArchetypeCount()).
		Int("total_entities", w.index.Len()).
		Send()
}

// LogEntity logs the archetype and kinds of e at level.
func (w *World) LogEntity(level zerolog.Level, e Entity) {
	rec, ok := w.index.Get(e)
	if !ok {
		w.logger.WithLevel(level).Uint64("entity_id", uint64(e)).Msg("unknown entity")
		return
	}
	a := w.archetype(rec.archetype)
	w.logger.WithLevel(level).
		Array("components", componentsArray(w.registry, a.mask)).
		Uint64("entity_id", uint64(e)).
		Uint32("archetype_id", uint32(a.id)).
		Send()
}
