package game

import (
	"github.com/edwinsyarief/aecs"
	"github.com/rotisserie/eris"
)

// Scene holds the entities LoadScene creates.
type Scene struct {
	Player       aecs.Entity
	Cube         aecs.Entity
	Plane        aecs.Entity
	InputManager aecs.Entity
}

// spawn creates an entity carrying every kind in mask, then writes the given
// payloads. Payloads are written after all kinds are added because adding a
// kind resets the others.
func spawn(w *aecs.World, mask aecs.Mask, payloads ...aecs.Component) (aecs.Entity, error) {
	b, err := aecs.NewBuilder(w, mask.Kinds()...)
	if err != nil {
		return 0, err
	}
	return b.NewEntityWith(payloads...)
}

// SpawnPlayer creates a controllable player standing at the origin.
func SpawnPlayer(w *aecs.World, name string) (aecs.Entity, error) {
	return spawn(w, PlayerMask,
		Velocity{
			Acceleration:     Vec3{X: 1, Y: 0.125, Z: 50},
			Deceleration:     Vec3{X: -0.0005, Y: -1, Z: -5},
			TerminalVelocity: 53,
		},
		Rotation{Rotation: Identity, RotationMultiplier: 10},
		PlayerInput{Bindings: map[string]bool{"forward": true}},
		Player{
			Name:                  name,
			Speed:                 3,
			Height:                1.73,
			CrouchHeight:          1,
			JumpHeight:            1.5,
			SprintSpeedMultiplier: 2,
		},
		Mesh{
			Name:        name,
			Rotation:    Identity,
			Scale:       0.3,
			HalfExtents: Vec3{X: 0.5, Y: 0.5, Z: 0.5},
			IsPlayer:    true,
			IsLoaded:    true,
		},
	)
}

// SpawnCube creates a solid cube resting on the ground at x.
func SpawnCube(w *aecs.World, x, z float64) (aecs.Entity, error) {
	return spawn(w, SolidMask, Mesh{
		Name:        "exampleCube",
		Position:    Vec3{X: x, Y: 0.4, Z: z},
		Rotation:    Identity,
		Scale:       1,
		HalfExtents: Vec3{X: 0.4, Y: 0.4, Z: 0.4},
		IsLoaded:    true,
	})
}

// SpawnPlane creates the flat ground of the given half size.
func SpawnPlane(w *aecs.World, half float64) (aecs.Entity, error) {
	return spawn(w, SolidMask, Mesh{
		Name:        "World",
		Rotation:    Identity,
		Scale:       1,
		HalfExtents: Vec3{X: half, Y: 0.01, Z: half},
		IsLoaded:    true,
	})
}

// SpawnInputManager creates the entity that only carries device input.
func SpawnInputManager(w *aecs.World) (aecs.Entity, error) {
	return spawn(w, InputMask)
}

// LoadScene populates w with a cube, a ground plane, an input manager and one
// player, in that order.
func LoadScene(w *aecs.World, playerName string) (Scene, error) {
	var (
		s   Scene
		err error
	)
	if s.Cube, err = SpawnCube(w, 2, 0); err != nil {
		return s, eris.Wrap(err, "spawn cube")
	}
	if s.Plane, err = SpawnPlane(w, 2.5); err != nil {
		return s, eris.Wrap(err, "spawn plane")
	}
	if s.InputManager, err = SpawnInputManager(w); err != nil {
		return s, eris.Wrap(err, "spawn input manager")
	}
	if s.Player, err = SpawnPlayer(w, playerName); err != nil {
		return s, eris.Wrap(err, "spawn player")
	}
	return s, nil
}

// NewSceneLoop returns a loop running input, collision and movement, the
// order a frame needs them in.
func NewSceneLoop(w *aecs.World) *Loop {
	return NewLoop(w).
		Add("input", &InputSystem{}).
		Add("collision", &CollisionSystem{}).
		Add("movement", &MovementSystem{})
}
