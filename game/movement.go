package game

import (
	"math"

	"github.com/edwinsyarief/aecs"
)

// Gravity is the vertical acceleration applied to every moving entity, in
// units per second squared.
const Gravity = -9.8

var (
	up      = Vec3{Y: 1}
	forward = Vec3{Z: 1}
	side    = Vec3{X: 1}
)

// MovementSystem integrates velocity from the pressed keys, steers the mesh
// and applies gravity. It needs every scene kind, so only players match.
type MovementSystem struct {
	aecs.Base
}

var _ aecs.System = (*MovementSystem)(nil)

func (s *MovementSystem) Init(w *aecs.World) error {
	return s.Bind(w, PlayerMask)
}

func (s *MovementSystem) Update(w *aecs.World) error {
	dt := 0.0
	if c, ok := aecs.GetResource[Clock](w.Resources()); ok {
		dt = c.Delta
	}
	if dt == 0 {
		return nil
	}
	for _, e := range s.Entities() {
		if err := s.move(w, e, dt); err != nil {
			return err
		}
	}
	return nil
}

func (s *MovementSystem) move(w *aecs.World, e aecs.Entity, dt float64) error {
	m, err := aecs.Get[Mesh](w, e)
	if err != nil {
		return err
	}
	if m.IsPlayer && !m.IsLoaded {
		return nil
	}
	v, err := aecs.Get[Velocity](w, e)
	if err != nil {
		return err
	}
	rot, err := aecs.Get[Rotation](w, e)
	if err != nil {
		return err
	}
	in, err := aecs.Get[PlayerInput](w, e)
	if err != nil {
		return err
	}
	p, err := aecs.Get[Player](w, e)
	if err != nil {
		return err
	}

	decel := v.Velocity.Mul(v.Deceleration).Scale(dt)
	decel.Y = clampTowards(decel.Y, v.Velocity.Y)
	decel.Z = clampTowards(decel.Z, v.Velocity.Z)
	v.Velocity = v.Velocity.Add(decel)

	accel := v.Acceleration
	if in.Keys.Shift && p.SprintSpeedMultiplier > 0 {
		accel = accel.Scale(p.SprintSpeedMultiplier)
	}
	if in.Keys.Forward {
		v.Velocity.Z += accel.Z * dt
	}
	if in.Keys.Backward {
		v.Velocity.Z -= accel.Z * dt
	}

	mult := rot.RotationMultiplier
	if mult == 0 {
		mult = 1
	}
	turn := mult * math.Pi * dt * v.Acceleration.Y
	if in.Keys.Left {
		m.Rotation = m.Rotation.Mul(QuatFromAxisAngle(up, turn))
	}
	if in.Keys.Right {
		m.Rotation = m.Rotation.Mul(QuatFromAxisAngle(up, -turn))
	}
	rot.Rotation = m.Rotation

	step := m.Rotation.Rotate(forward).Normalize().Scale(v.Velocity.Z * dt).
		Add(m.Rotation.Rotate(side).Normalize().Scale(v.Velocity.X * dt)).
		Add(up.Scale(v.Velocity.Y * dt))
	m.Position = m.Position.Add(step)

	if p.IsGrounded && v.Velocity.Y < 0 {
		v.Velocity.Y = 0
		m.Position.Y = 0
	} else {
		v.Velocity.Y += Gravity * dt
		if v.TerminalVelocity > 0 && v.Velocity.Y < -v.TerminalVelocity {
			v.Velocity.Y = -v.TerminalVelocity
		}
	}

	if err := aecs.Update(w, e, v); err != nil {
		return err
	}
	if err := aecs.Update(w, e, rot); err != nil {
		return err
	}
	if err := aecs.Update(w, e, m); err != nil {
		return err
	}
	return aecs.Update(w, e, Position{Position: m.Position})
}

// clampTowards limits a deceleration step so it never overshoots zero
// velocity.
func clampTowards(step, velocity float64) float64 {
	return math.Copysign(math.Min(math.Abs(step), math.Abs(velocity)), step)
}
