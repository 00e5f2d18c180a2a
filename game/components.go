// Package game holds the reference collaborators of an aecs world: the seven
// component shapes of a small first-person scene and the input, collision
// and movement systems that drive them.
package game

import (
	"github.com/edwinsyarief/aecs"
)

// Component kinds, in registry order.
const (
	KindPosition aecs.Kind = iota
	KindVelocity
	KindRotation
	KindPlayerInput
	KindPlayer
	KindCollider
	KindMesh
)

var (
	// PlayerMask is every kind, the mask a controllable player carries.
	PlayerMask = aecs.NewMask(KindPosition, KindVelocity, KindRotation, KindPlayerInput, KindPlayer, KindCollider, KindMesh)
	// SolidMask is the mask of a static collidable object.
	SolidMask = aecs.NewMask(KindCollider, KindMesh)
	// InputMask is the mask of an entity that only receives device input.
	InputMask = aecs.NewMask(KindPlayerInput)
)

// Position is an entity's location in world space.
type Position struct {
	Position Vec3 `json:"position"`
}

func (Position) Kind() aecs.Kind { return KindPosition }

// Velocity holds the movement state of an entity. Acceleration and
// Deceleration are per-axis rates; TerminalVelocity caps the fall speed.
type Velocity struct {
	Velocity         Vec3    `json:"velocity"`
	Acceleration     Vec3    `json:"acceleration"`
	Deceleration     Vec3    `json:"deceleration"`
	RotationVelocity Vec3    `json:"rotationVelocity"`
	TerminalVelocity float64 `json:"terminalVelocity"`
}

func (Velocity) Kind() aecs.Kind { return KindVelocity }

// Rotation is an entity's orientation and the turn rate multiplier applied
// when steering.
type Rotation struct {
	Rotation           Quat    `json:"rotation"`
	RotationMultiplier float64 `json:"rotationMultiplier"`
}

func (Rotation) Kind() aecs.Kind { return KindRotation }

// Keys is the pressed state of the movement keys.
type Keys struct {
	Forward  bool `json:"forward"`
	Backward bool `json:"backward"`
	Left     bool `json:"left"`
	Right    bool `json:"right"`
	Shift    bool `json:"shift"`
}

// PlayerInput is the device state an input system writes.
type PlayerInput struct {
	Bindings map[string]bool `json:"bindings,omitempty"`
	Keys     Keys            `json:"keys"`
}

func (PlayerInput) Kind() aecs.Kind { return KindPlayerInput }

// Player holds the character stats of a controllable entity.
type Player struct {
	Name                  string  `json:"name"`
	Speed                 float64 `json:"speed"`
	Height                float64 `json:"height"`
	CrouchHeight          float64 `json:"crouchHeight"`
	JumpHeight            float64 `json:"jumpHeight"`
	SprintSpeedMultiplier float64 `json:"sprintSpeedMultiplier"`
	IsGrounded            bool    `json:"isGrounded"`
	IsAttacking           bool    `json:"isAttacking"`
}

func (Player) Kind() aecs.Kind { return KindPlayer }

// Collider is the world space bounding box computed from an entity's mesh.
type Collider struct {
	Bounds   Box3 `json:"bounds"`
	IsPlayer bool `json:"isPlayer"`
}

func (Collider) Kind() aecs.Kind { return KindCollider }

// Mesh is the transform and local extent of an entity's geometry. A Scale of
// zero is read as one.
type Mesh struct {
	Name        string  `json:"name"`
	Position    Vec3    `json:"position"`
	Rotation    Quat    `json:"rotation"`
	Scale       float64 `json:"scale"`
	HalfExtents Vec3    `json:"halfExtents"`
	IsPlayer    bool    `json:"isPlayer"`
	IsLoaded    bool    `json:"isLoaded"`
}

func (Mesh) Kind() aecs.Kind { return KindMesh }

// Bounds returns the world space box of the mesh.
func (m Mesh) Bounds() Box3 {
	scale := m.Scale
	if scale == 0 {
		scale = 1
	}
	return BoxAround(m.Position, m.HalfExtents.Scale(scale))
}

// NewRegistry returns the registry of the seven scene kinds. Every default
// payload is the shape's zero value.
func NewRegistry() (*aecs.Registry, error) {
	return aecs.NewRegistry(
		aecs.KindSpec{Name: "Position", New: func() aecs.Component { return Position{} }},
		aecs.KindSpec{Name: "Velocity", New: func() aecs.Component { return Velocity{} }},
		aecs.KindSpec{Name: "Rotation", New: func() aecs.Component { return Rotation{} }},
		aecs.KindSpec{Name: "PlayerInput", New: func() aecs.Component { return PlayerInput{} }},
		aecs.KindSpec{Name: "Player", New: func() aecs.Component { return Player{} }},
		aecs.KindSpec{Name: "Collider", New: func() aecs.Component { return Collider{} }},
		aecs.KindSpec{Name: "Mesh", New: func() aecs.Component { return Mesh{} }},
	)
}

// MustRegistry is NewRegistry for callers with no way to recover.
func MustRegistry() *aecs.Registry {
	reg, err := NewRegistry()
	if err != nil {
		panic(err)
	}
	return reg
}
