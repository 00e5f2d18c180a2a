package aecs

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"gotest.tools/v3/assert"
)

// Kinds of the test registry, in registration order.
const (
	kindPosition Kind = iota
	kindVelocity
	kindRotation
	kindPlayerInput
	kindPlayer
	kindCollider
	kindMesh
)

type position struct{ X, Y, Z float64 }
type velocity struct {
	VX, VY, VZ float64
	Terminal   float64 `json:"terminal"`
}
type rotation struct{ Yaw, Multiplier float64 }
type playerInput struct{ Forward, Backward bool }
type player struct {
	Name     string  `json:"name"`
	Speed    float64 `json:"speed"`
	Height   float64 `json:"height"`
	Grounded bool    `json:"grounded"`
}
type collider struct{ IsPlayer bool }
type mesh struct {
	Name   string
	Loaded bool
}

func (position) Kind() Kind    { return kindPosition }
func (velocity) Kind() Kind    { return kindVelocity }
func (rotation) Kind() Kind    { return kindRotation }
func (playerInput) Kind() Kind { return kindPlayerInput }
func (player) Kind() Kind      { return kindPlayer }
func (collider) Kind() Kind    { return kindCollider }
func (mesh) Kind() Kind        { return kindMesh }

func testRegistry(t testing.TB) *Registry {
	t.Helper()
	reg, err := NewRegistry(
		KindSpec{Name: "Position", New: func() Component { return position{} }},
		KindSpec{Name: "Velocity", New: func() Component { return velocity{Terminal: 53} }},
		KindSpec{Name: "Rotation", New: func() Component { return rotation{Multiplier: 1} }},
		KindSpec{Name: "PlayerInput", New: func() Component { return playerInput{} }},
		KindSpec{Name: "Player", New: func() Component { return player{} }},
		KindSpec{Name: "Collider", New: func() Component { return collider{} }},
		KindSpec{Name: "Mesh", New: func() Component { return mesh{} }},
	)
	assert.NilError(t, err)
	return reg
}

func newTestWorld(t testing.TB, opts ...WorldOption) *World {
	t.Helper()
	return NewWorld(testRegistry(t), opts...)
}

// newLoggedWorld returns a world logging JSON at debug level into the buffer.
func newLoggedWorld(t testing.TB) (*World, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	w := newTestWorld(t, WithLogger(logger))
	buf.Reset()
	return w, &buf
}

// spawn creates an entity and adds the given kinds in order.
func spawn(t testing.TB, w *World, kinds ...Kind) Entity {
	t.Helper()
	e := w.CreateEntity()
	for _, k := range kinds {
		assert.NilError(t, w.AddComponent(e, k))
	}
	return e
}
