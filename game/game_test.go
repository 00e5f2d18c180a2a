package game

import (
	"bytes"
	"context"
	"math"
	"testing"

	"github.com/edwinsyarief/aecs"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gotest.tools/v3/assert"
)

const frameDelta = 1.0 / 60

func newWorld(t testing.TB) *aecs.World {
	t.Helper()
	reg, err := NewRegistry()
	assert.NilError(t, err)
	return aecs.NewWorld(reg, aecs.WithLogger(zerolog.Nop()))
}

func loadScene(t testing.TB) (*aecs.World, Scene, *Loop) {
	t.Helper()
	w := newWorld(t)
	s, err := LoadScene(w, "p1")
	assert.NilError(t, err)
	l := NewSceneLoop(w)
	assert.NilError(t, l.Init())
	return w, s, l
}

// go test -run ^TestRegistryOrder$ ./game -count 1
func TestRegistryOrder(t *testing.T) {
	reg, err := NewRegistry()
	assert.NilError(t, err)
	assert.Equal(t, reg.Len(), 7)
	for k, name := range []string{"Position", "Velocity", "Rotation", "PlayerInput", "Player", "Collider", "Mesh"} {
		got, ok := reg.KindByName(name)
		assert.Assert(t, ok, name)
		assert.Equal(t, got, aecs.Kind(k))
	}
	assert.Equal(t, PlayerMask.Bits(), uint64(127))
	assert.Equal(t, SolidMask.Bits(), uint64(96))
	assert.Equal(t, InputMask.Bits(), uint64(8))
}

// go test -run ^TestLoadScene$ ./game -count 1
func TestLoadScene(t *testing.T) {
	w := newWorld(t)
	s, err := LoadScene(w, "p1")
	assert.NilError(t, err)

	assert.DeepEqual(t, w.Query(SolidMask), []aecs.Entity{s.Cube, s.Plane, s.Player})
	assert.DeepEqual(t, w.Query(InputMask), []aecs.Entity{s.InputManager, s.Player})
	assert.DeepEqual(t, w.Query(PlayerMask), []aecs.Entity{s.Player})

	p, err := aecs.Get[Player](w, s.Player)
	assert.NilError(t, err)
	assert.Equal(t, p.Speed, 3.0)
	assert.Equal(t, p.Height, 1.73)
	assert.Equal(t, p.SprintSpeedMultiplier, 2.0)

	v, err := aecs.Get[Velocity](w, s.Player)
	assert.NilError(t, err)
	assert.Equal(t, v.TerminalVelocity, 53.0)

	in, err := aecs.Get[PlayerInput](w, s.Player)
	assert.NilError(t, err)
	assert.DeepEqual(t, in.Bindings, map[string]bool{"forward": true})
}

// go test -run ^TestLoopRequiresInit$ ./game -count 1
func TestLoopRequiresInit(t *testing.T) {
	l := NewSceneLoop(newWorld(t))
	assert.Assert(t, eris.Is(l.Step(frameDelta), ErrLoopNotInitialized))
}

// go test -run ^TestLoopClock$ ./game -count 1
func TestLoopClock(t *testing.T) {
	w, _, l := loadScene(t)
	var frames []uint64
	err := l.Run(context.Background(), 3, 0.5, func(f uint64) { frames = append(frames, f) })
	assert.NilError(t, err)
	assert.DeepEqual(t, frames, []uint64{1, 2, 3})

	c, ok := aecs.GetResource[Clock](w.Resources())
	assert.Assert(t, ok)
	assert.Equal(t, c.Frame, uint64(3))
	assert.Equal(t, c.Elapsed, 1.5)
	assert.Equal(t, c.Delta, 0.5)
}

// go test -run ^TestLoopRunCancelled$ ./game -count 1
func TestLoopRunCancelled(t *testing.T) {
	_, _, l := loadScene(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := l.Run(ctx, 10, frameDelta, nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, l.Clock().Frame, uint64(0))
}

type failingSystem struct{ aecs.Base }

func (*failingSystem) Init(*aecs.World) error   { return nil }
func (*failingSystem) Update(*aecs.World) error { return aecs.ErrComponentNotFound }

// go test -run ^TestLoopStopsOnError$ ./game -count 1
func TestLoopStopsOnError(t *testing.T) {
	var buf bytes.Buffer
	reg, err := NewRegistry()
	assert.NilError(t, err)
	w := aecs.NewWorld(reg, aecs.WithLogger(zerolog.New(&buf)))

	mv := &MovementSystem{}
	l := NewLoop(w).Add("broken", &failingSystem{}).Add("movement", mv)
	assert.NilError(t, l.Init())
	err = l.Step(frameDelta)
	assert.Assert(t, eris.Is(err, aecs.ErrComponentNotFound))
	require.Contains(t, buf.String(), `"system":"broken"`)
	require.Contains(t, buf.String(), `"message":"update failed"`)
}

// go test -run ^TestCollisionGroundsPlayer$ ./game -count 1
func TestCollisionGroundsPlayer(t *testing.T) {
	w, s, l := loadScene(t)
	assert.NilError(t, l.Step(frameDelta))

	p, err := aecs.Get[Player](w, s.Player)
	assert.NilError(t, err)
	assert.Assert(t, p.IsGrounded)
	assert.Equal(t, p.Name, "p1", "the whole player payload is kept")
	assert.Equal(t, p.Speed, 3.0)

	c, err := aecs.Get[Collider](w, s.Cube)
	assert.NilError(t, err)
	assert.DeepEqual(t, c.Bounds, Box3{Min: Vec3{X: 1.6, Y: 0, Z: -0.4}, Max: Vec3{X: 2.4, Y: 0.8, Z: 0.4}})
	assert.Assert(t, !c.IsPlayer)

	c, err = aecs.Get[Collider](w, s.Player)
	assert.NilError(t, err)
	assert.Assert(t, c.IsPlayer)
}

// go test -run ^TestCollisionAirborne$ ./game -count 1
func TestCollisionAirborne(t *testing.T) {
	w, s, _ := loadScene(t)
	m, err := aecs.Get[Mesh](w, s.Player)
	assert.NilError(t, err)
	m.Position.Y = 5
	assert.NilError(t, aecs.Update(w, s.Player, m))

	sys := &CollisionSystem{}
	assert.NilError(t, sys.Init(w))
	assert.NilError(t, sys.Update(w))
	p, err := aecs.Get[Player](w, s.Player)
	assert.NilError(t, err)
	assert.Assert(t, !p.IsGrounded)
}

// go test -run ^TestInputAppliedOnUpdate$ ./game -count 1
func TestInputAppliedOnUpdate(t *testing.T) {
	w, s, l := loadScene(t)
	aecs.Publish(w.Events(), KeyEvent{Key: "w", Pressed: true})
	aecs.Publish(w.Events(), KeyEvent{Key: "Shift", Pressed: true})
	aecs.Publish(w.Events(), KeyEvent{Key: "F1", Pressed: true})

	in, err := aecs.Get[PlayerInput](w, s.Player)
	assert.NilError(t, err)
	assert.Assert(t, !in.Keys.Forward, "events wait for the next frame")

	assert.NilError(t, l.Step(frameDelta))
	for _, e := range []aecs.Entity{s.Player, s.InputManager} {
		in, err = aecs.Get[PlayerInput](w, e)
		assert.NilError(t, err)
		assert.DeepEqual(t, in.Keys, Keys{Forward: true, Shift: true})
	}
	in, err = aecs.Get[PlayerInput](w, s.Player)
	assert.NilError(t, err)
	assert.DeepEqual(t, in.Bindings, map[string]bool{"forward": true})

	aecs.Publish(w.Events(), KeyEvent{Key: "w", Pressed: false})
	assert.NilError(t, l.Step(frameDelta))
	in, err = aecs.Get[PlayerInput](w, s.Player)
	assert.NilError(t, err)
	assert.DeepEqual(t, in.Keys, Keys{Shift: true})
}

// go test -run ^TestMovementForward$ ./game -count 1
func TestMovementForward(t *testing.T) {
	w, s, l := loadScene(t)
	aecs.Publish(w.Events(), KeyEvent{Key: "w", Pressed: true})
	assert.NilError(t, l.Run(context.Background(), 15, frameDelta, nil))

	pos, err := aecs.Get[Position](w, s.Player)
	assert.NilError(t, err)
	m, err := aecs.Get[Mesh](w, s.Player)
	assert.NilError(t, err)
	assert.Equal(t, pos.Position, m.Position)
	assert.Assert(t, pos.Position.Z > 0.1, "moved %v", pos.Position)
	assert.Assert(t, math.Abs(pos.Position.X) < 1e-9)
	assert.Assert(t, pos.Position.Y <= 0 && pos.Position.Y > -0.01, "held by the ground: %v", pos.Position.Y)

	v, err := aecs.Get[Velocity](w, s.Player)
	assert.NilError(t, err)
	assert.Assert(t, v.Velocity.Z > 0)
	assert.Equal(t, v.Acceleration, Vec3{X: 1, Y: 0.125, Z: 50}, "rates are carried over")
}

// go test -run ^TestMovementDecelerates$ ./game -count 1
func TestMovementDecelerates(t *testing.T) {
	w, s, l := loadScene(t)
	v, err := aecs.Get[Velocity](w, s.Player)
	assert.NilError(t, err)
	v.Velocity.Z = 10
	assert.NilError(t, aecs.Update(w, s.Player, v))

	assert.NilError(t, l.Run(context.Background(), 60, frameDelta, nil))
	v, err = aecs.Get[Velocity](w, s.Player)
	assert.NilError(t, err)
	assert.Assert(t, v.Velocity.Z > 0 && v.Velocity.Z < 10, "got %v", v.Velocity.Z)
}

// go test -run ^TestMovementTurn$ ./game -count 1
func TestMovementTurn(t *testing.T) {
	w, s, l := loadScene(t)
	aecs.Publish(w.Events(), KeyEvent{Key: "a", Pressed: true})
	assert.NilError(t, l.Step(frameDelta))

	m, err := aecs.Get[Mesh](w, s.Player)
	assert.NilError(t, err)
	want := QuatFromAxisAngle(up, 10*math.Pi*frameDelta*0.125)
	assert.Assert(t, math.Abs(m.Rotation.Y-want.Y) < 1e-12)
	assert.Assert(t, math.Abs(m.Rotation.W-want.W) < 1e-12)

	r, err := aecs.Get[Rotation](w, s.Player)
	assert.NilError(t, err)
	assert.Equal(t, r.Rotation, m.Rotation)
	assert.Equal(t, r.RotationMultiplier, 10.0)
}

// go test -run ^TestMovementFallsToTerminalVelocity$ ./game -count 1
func TestMovementFallsToTerminalVelocity(t *testing.T) {
	w := newWorld(t)
	e, err := SpawnPlayer(w, "falling")
	assert.NilError(t, err)
	v, err := aecs.Get[Velocity](w, e)
	assert.NilError(t, err)
	v.TerminalVelocity = 2
	assert.NilError(t, aecs.Update(w, e, v))

	l := NewLoop(w).Add("movement", &MovementSystem{})
	assert.NilError(t, l.Init())
	assert.NilError(t, l.Run(context.Background(), 120, frameDelta, nil))

	v, err = aecs.Get[Velocity](w, e)
	assert.NilError(t, err)
	assert.Equal(t, v.Velocity.Y, -2.0)
	pos, err := aecs.Get[Position](w, e)
	assert.NilError(t, err)
	assert.Assert(t, pos.Position.Y < -1)
}

// go test -run ^TestMovementSkipsUnloadedPlayer$ ./game -count 1
func TestMovementSkipsUnloadedPlayer(t *testing.T) {
	w, s, l := loadScene(t)
	m, err := aecs.Get[Mesh](w, s.Player)
	assert.NilError(t, err)
	m.IsLoaded = false
	assert.NilError(t, aecs.Update(w, s.Player, m))

	aecs.Publish(w.Events(), KeyEvent{Key: "w", Pressed: true})
	assert.NilError(t, l.Run(context.Background(), 10, frameDelta, nil))
	pos, err := aecs.Get[Position](w, s.Player)
	assert.NilError(t, err)
	assert.Equal(t, pos.Position, Vec3{})
}

// go test -run ^TestSystemsIgnoreLateEntities$ ./game -count 1
func TestSystemsIgnoreLateEntities(t *testing.T) {
	w, _, l := loadScene(t)
	late, err := SpawnPlayer(w, "late")
	assert.NilError(t, err)

	aecs.Publish(w.Events(), KeyEvent{Key: "w", Pressed: true})
	assert.NilError(t, l.Run(context.Background(), 10, frameDelta, nil))
	pos, err := aecs.Get[Position](w, late)
	assert.NilError(t, err)
	assert.Equal(t, pos.Position, Vec3{})
}
