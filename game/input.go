package game

import (
	"github.com/edwinsyarief/aecs"
	"github.com/rotisserie/eris"
)

// InputSystem turns KeyEvents published on the world's EventBus into
// PlayerInput updates. Events are queued as they arrive and applied on the
// next Update, so every system in a frame sees the same key state.
type InputSystem struct {
	aecs.Base
	keys    Keys
	pending []KeyEvent
}

var _ aecs.System = (*InputSystem)(nil)

func (s *InputSystem) Init(w *aecs.World) error {
	if err := s.Bind(w, InputMask); err != nil {
		return err
	}
	if err := aecs.Subscribe(w.Events(), s.enqueue); err != nil {
		return eris.Wrap(err, "subscribe to key events")
	}
	return nil
}

func (s *InputSystem) enqueue(ev KeyEvent) {
	s.pending = append(s.pending, ev)
}

// Keys returns the key state applied by the last Update.
func (s *InputSystem) Keys() Keys {
	return s.keys
}

func (s *InputSystem) Update(w *aecs.World) error {
	if len(s.pending) == 0 {
		return nil
	}
	changed := false
	for _, ev := range s.pending {
		if s.keys.apply(ev) {
			changed = true
		}
	}
	s.pending = s.pending[:0]
	if !changed {
		return nil
	}

	for _, e := range s.Entities() {
		in, err := aecs.Get[PlayerInput](w, e)
		if err != nil {
			return err
		}
		// the whole payload is written back; bindings must be carried over
		in.Keys = s.keys
		if err := aecs.Update(w, e, in); err != nil {
			return err
		}
	}
	return nil
}
