package aecs

import (
	"os"

	"github.com/google/uuid"
	"github.com/kamstrup/intmap"
	"github.com/rs/zerolog"
)

const defaultInitialCapacity = 1024

// archetypeRegistry is the arena of archetypes plus the mask lookup that
// keeps exactly one archetype per distinct mask.
type archetypeRegistry struct {
	maskToID   map[Mask]ArchetypeID // lookup mask→archetype id
	archetypes []*Archetype         // all archetypes, indexed by id
}

// World owns every entity, archetype and component instance of one
// simulation. A World is not safe for concurrent use; independent worlds can
// run on separate goroutines.
type World struct {
	registry        *Registry
	resources       *Resources
	events          *EventBus
	index           *intmap.Map[Entity, entityRecord]
	archetypes      archetypeRegistry
	logger          zerolog.Logger
	entities        entityAllocator
	id              uuid.UUID
	initialCapacity int
}

// WorldOption configures a World at construction.
type WorldOption func(*World)

// WithInitialCapacity sizes the entity index and new columns.
func WithInitialCapacity(n int) WorldOption {
	return func(w *World) {
		if n > 0 {
			w.initialCapacity = n
		}
	}
}

// WithLogger sets the logger used for archetype and transition events.
func WithLogger(l zerolog.Logger) WorldOption {
	return func(w *World) {
		w.logger = l
	}
}

// WithPrettyLog logs human readable output to stderr.
func WithPrettyLog() WorldOption {
	return func(w *World) {
		w.logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	}
}

// NewWorld creates a World for the kinds of reg. The empty-mask archetype is
// created up front with id 0, so every entity record always points at some
// archetype.
//
// Parameters:
//   - reg: The component registry shared by all operations on the world.
//   - opts: Optional settings such as the logger or initial capacity.
//
// Returns:
//   - The newly created World.
func NewWorld(reg *Registry, opts ...WorldOption) *World {
	w := &World{
		registry:        reg,
		resources:       &Resources{},
		events:          &EventBus{},
		logger:          zerolog.Nop(),
		id:              uuid.New(),
		initialCapacity: defaultInitialCapacity,
	}
	for _, opt := range opts {
		opt(w)
	}
	w.logger = w.logger.With().Str("world_id", w.id.String()).Logger()
	w.index = intmap.New[Entity, entityRecord](w.initialCapacity)
	w.archetypes = archetypeRegistry{
		maskToID:   make(map[Mask]ArchetypeID),
		archetypes: make([]*Archetype, 0, 16),
	}
	w.getOrCreateArchetype(Mask{})
	return w
}

// ID returns the world's unique id.
func (w *World) ID() uuid.UUID {
	return w.id
}

// Registry returns the component registry of the world.
func (w *World) Registry() *Registry {
	return w.registry
}

// Logger returns the world's logger.
func (w *World) Logger() *zerolog.Logger {
	return &w.logger
}

// Resources returns the world's resource store. It holds world-scoped
// singletons such as a frame clock owned by the caller's driver.
func (w *World) Resources() *Resources {
	return w.resources
}

// Events returns the world's event bus.
func (w *World) Events() *EventBus {
	return w.events
}

// getOrCreateArchetype returns the archetype for mask, creating and
// memoizing it when the mask is seen for the first time.
func (w *World) getOrCreateArchetype(mask Mask) *Archetype {
	if id, ok := w.archetypes.maskToID[mask]; ok {
		return w.archetypes.archetypes[id]
	}
	a := newArchetype(ArchetypeID(len(w.archetypes.archetypes)), mask)
	w.archetypes.archetypes = append(w.archetypes.archetypes, a)
	w.archetypes.maskToID[mask] = a.id
	logArchetypeCreated(&w.logger, w.registry, a)
	return a
}

// archetype returns the archetype with the given id.
func (w *World) archetype(id ArchetypeID) *Archetype {
	return w.archetypes.archetypes[id]
}

// ArchetypeByMask returns the archetype memoized for mask, if any.
func (w *World) ArchetypeByMask(mask Mask) (*Archetype, bool) {
	id, ok := w.archetypes.maskToID[mask]
	if !ok {
		return nil, false
	}
	return w.archetypes.archetypes[id], true
}

// ArchetypeCount returns the number of archetypes created so far, including
// the empty one.
func (w *World) ArchetypeCount() int {
	return len(w.archetypes.archetypes)
}

// Archetypes returns the archetypes in id order. The slice must not be
// modified.
func (w *World) Archetypes() []*Archetype {
	return w.archetypes.archetypes
}
