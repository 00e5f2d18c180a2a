package aecs

import "github.com/rotisserie/eris"

var (
	// ErrComponentNotFound is returned when an entity has no record, its
	// archetype has no column for the kind, or the column holds no instance
	// for the entity.
	ErrComponentNotFound = eris.New("component not found")
	// ErrUnknownEntity is returned when an entity was never given a component.
	ErrUnknownEntity = eris.New("unknown entity")
	// ErrInvalidComponentKind is returned for kinds outside the registry.
	ErrInvalidComponentKind = eris.New("invalid component kind")

	ErrKindMismatch  = eris.New("component payload does not match kind")
	ErrRegistryFull  = eris.New("too many component kinds")
	ErrDuplicateKind = eris.New("component kind already registered")
	ErrInvalidSpec   = eris.New("invalid component kind spec")

	ErrAlreadyBound = eris.New("system already bound")
	ErrNotBound     = eris.New("system not bound")
)
