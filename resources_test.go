package aecs

import (
	"testing"

	"github.com/rotisserie/eris"
	"gotest.tools/v3/assert"
)

func TestResources(t *testing.T) {
	type clock struct{ Delta float64 }
	type settings struct{ Gravity float64 }

	t.Run("Add and Get", func(t *testing.T) {
		r := &Resources{}
		c := &clock{Delta: 0.5}
		assert.NilError(t, AddResource(r, c))
		got, ok := GetResource[clock](r)
		assert.Assert(t, ok)
		assert.Equal(t, got, c)
	})

	t.Run("Add same type fails", func(t *testing.T) {
		r := &Resources{}
		assert.NilError(t, AddResource(r, &clock{}))
		err := AddResource(r, &clock{})
		assert.Assert(t, eris.Is(err, ErrResourceExists))
		assert.Equal(t, r.Len(), 1)
	})

	t.Run("Add nil fails", func(t *testing.T) {
		r := &Resources{}
		assert.Assert(t, AddResource[clock](r, nil) != nil)
		assert.Equal(t, r.Len(), 0)
	})

	t.Run("Set replaces", func(t *testing.T) {
		r := &Resources{}
		SetResource(r, &clock{Delta: 1})
		SetResource(r, &clock{Delta: 2})
		got, ok := GetResource[clock](r)
		assert.Assert(t, ok)
		assert.Equal(t, got.Delta, 2.0)
		assert.Equal(t, r.Len(), 1)
	})

	t.Run("Remove frees the slot", func(t *testing.T) {
		r := &Resources{}
		assert.NilError(t, AddResource(r, &clock{}))
		assert.NilError(t, AddResource(r, &settings{}))
		assert.Assert(t, RemoveResource[clock](r))
		assert.Assert(t, !HasResource[clock](r))
		assert.Assert(t, !RemoveResource[clock](r))
		assert.NilError(t, AddResource(r, &clock{Delta: 3}))
		assert.Equal(t, len(r.items), 2)
		got, ok := GetResource[clock](r)
		assert.Assert(t, ok)
		assert.Equal(t, got.Delta, 3.0)
	})

	t.Run("Clear", func(t *testing.T) {
		r := &Resources{}
		assert.NilError(t, AddResource(r, &clock{}))
		assert.NilError(t, AddResource(r, &settings{}))
		r.Clear()
		assert.Equal(t, len(r.items), 0)
		assert.Equal(t, len(r.types), 0)
		assert.Equal(t, len(r.freeIds), 0)
		assert.Assert(t, !HasResource[settings](r))
	})

	t.Run("Get non-existent", func(t *testing.T) {
		r := &Resources{}
		got, ok := GetResource[clock](r)
		assert.Assert(t, !ok)
		assert.Assert(t, got == nil)
	})
}
