package aecs

import (
	"reflect"

	"github.com/rotisserie/eris"
)

// ErrResourceExists is returned when a resource of the same type is added twice.
var ErrResourceExists = eris.New("resource of the same type already exists")

// Resources holds world-scoped singletons keyed by type, such as the frame
// clock a driver publishes before running systems. It uses a slice for
// storage, a map for type to slot lookup, and a free list for slot reuse.
type Resources struct {
	items   []any
	types   map[reflect.Type]int
	freeIds []int
}

// add stores res and returns its slot.
func (r *Resources) add(res any) (int, error) {
	t := reflect.TypeOf(res)
	if r.types == nil {
		r.types = make(map[reflect.Type]int)
	}
	if _, ok := r.types[t]; ok {
		return -1, eris.Wrapf(ErrResourceExists, "%s", t)
	}
	var id int
	if len(r.freeIds) > 0 {
		id = r.freeIds[len(r.freeIds)-1]
		r.freeIds = r.freeIds[:len(r.freeIds)-1]
		r.items[id] = res
	} else {
		r.items = append(r.items, res)
		id = len(r.items) - 1
	}
	r.types[t] = id
	return id, nil
}

// Len returns the number of stored resources.
func (r *Resources) Len() int {
	return len(r.types)
}

// Clear removes all resources, resetting the free list.
func (r *Resources) Clear() {
	for i := range r.items {
		r.items[i] = nil
	}
	r.items = r.items[:0]
	clear(r.types)
	r.freeIds = r.freeIds[:0]
}

// AddResource stores res as the resource of type T. It fails with
// ErrResourceExists when one is already present.
func AddResource[T any](r *Resources, res *T) error {
	if res == nil {
		return eris.New("cannot add nil resource")
	}
	_, err := r.add(res)
	return err
}

// SetResource stores res as the resource of type T, replacing any previous one.
func SetResource[T any](r *Resources, res *T) {
	if res == nil {
		return
	}
	t := reflect.TypeOf(res)
	if id, ok := r.types[t]; ok {
		r.items[id] = res
		return
	}
	_, _ = r.add(res)
}

// GetResource retrieves the resource of type T.
func GetResource[T any](r *Resources) (*T, bool) {
	t := reflect.TypeOf((*T)(nil))
	if id, ok := r.types[t]; ok {
		return r.items[id].(*T), true
	}
	return nil, false
}

// HasResource reports whether a resource of type T exists.
func HasResource[T any](r *Resources) bool {
	_, ok := r.types[reflect.TypeOf((*T)(nil))]
	return ok
}

// RemoveResource removes the resource of type T, marking its slot as free
// for reuse.
func RemoveResource[T any](r *Resources) bool {
	t := reflect.TypeOf((*T)(nil))
	id, ok := r.types[t]
	if !ok {
		return false
	}
	delete(r.types, t)
	r.items[id] = nil
	r.freeIds = append(r.freeIds, id)
	return true
}
