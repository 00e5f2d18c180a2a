package aecs

import (
	"reflect"

	"github.com/rotisserie/eris"
)

// MaxEventTypes defines the maximum number of unique event types an EventBus
// can route.
const MaxEventTypes = 256

// ErrTooManyEventTypes is returned when subscribing to more event types than
// MaxEventTypes.
var ErrTooManyEventTypes = eris.New("too many event types")

// EventBus is a synchronous, typed publish/subscribe channel between
// collaborators of a world, for example a device reader publishing key
// presses that an input system turns into component updates.
type EventBus struct {
	eventTypeMap map[reflect.Type]int
	handlers     [][]any
}

// Subscribe registers handler for events of type T. Handlers run in the
// order they subscribed.
func Subscribe[T any](bus *EventBus, handler func(T)) error {
	t := reflect.TypeFor[T]()
	id, err := bus.eventTypeID(t)
	if err != nil {
		return err
	}
	bus.handlers[id] = append(bus.handlers[id], handler)
	return nil
}

// Publish delivers event to every handler of type T, synchronously, in
// subscription order. Publishing a type nobody subscribed to is a no-op.
func Publish[T any](bus *EventBus, event T) {
	id, ok := bus.eventTypeMap[reflect.TypeFor[T]()]
	if !ok {
		return
	}
	for _, h := range bus.handlers[id] {
		h.(func(T))(event)
	}
}

// Subscribers returns the number of handlers registered for T.
func Subscribers[T any](bus *EventBus) int {
	id, ok := bus.eventTypeMap[reflect.TypeFor[T]()]
	if !ok {
		return 0
	}
	return len(bus.handlers[id])
}

// eventTypeID retrieves or assigns the slot of an event type.
func (bus *EventBus) eventTypeID(t reflect.Type) (int, error) {
	if bus.eventTypeMap == nil {
		bus.eventTypeMap = make(map[reflect.Type]int)
	}
	if id, ok := bus.eventTypeMap[t]; ok {
		return id, nil
	}
	if len(bus.handlers) >= MaxEventTypes {
		return -1, eris.Wrapf(ErrTooManyEventTypes, "%s", t)
	}
	id := len(bus.handlers)
	bus.handlers = append(bus.handlers, make([]any, 0, 4))
	bus.eventTypeMap[t] = id
	return id, nil
}
