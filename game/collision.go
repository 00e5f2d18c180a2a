package game

import (
	"github.com/edwinsyarief/aecs"
)

// CollisionSystem recomputes every collider from its mesh and marks a player
// grounded while its box touches any solid box.
type CollisionSystem struct {
	aecs.Base
	boxes []Box3
}

var _ aecs.System = (*CollisionSystem)(nil)

func (s *CollisionSystem) Init(w *aecs.World) error {
	return s.Bind(w, SolidMask)
}

func (s *CollisionSystem) Update(w *aecs.World) error {
	ents := s.Entities()
	s.boxes = s.boxes[:0]
	players := make([]int, 0, 1)

	for i, e := range ents {
		m, err := aecs.Get[Mesh](w, e)
		if err != nil {
			return err
		}
		if m.IsPlayer && !m.IsLoaded {
			s.boxes = append(s.boxes, Box3{})
			continue
		}
		c := Collider{Bounds: m.Bounds(), IsPlayer: m.IsPlayer}
		if err := aecs.Update(w, e, c); err != nil {
			return err
		}
		s.boxes = append(s.boxes, c.Bounds)
		if m.IsPlayer && w.HasComponent(e, KindPlayer) {
			players = append(players, i)
		}
	}

	for _, i := range players {
		grounded := false
		for j, other := range s.boxes {
			if j == i || other.IsEmpty() {
				continue
			}
			if s.isSolid(w, ents[j]) && s.boxes[i].Intersects(other) {
				grounded = true
				break
			}
		}
		p, err := aecs.Get[Player](w, ents[i])
		if err != nil {
			return err
		}
		if p.IsGrounded == grounded {
			continue
		}
		p.IsGrounded = grounded
		if err := aecs.Update(w, ents[i], p); err != nil {
			return err
		}
	}
	return nil
}

// isSolid reports whether e is an obstacle, that is any collider that is not
// itself a player.
func (s *CollisionSystem) isSolid(w *aecs.World, e aecs.Entity) bool {
	c, err := aecs.Get[Collider](w, e)
	return err == nil && !c.IsPlayer
}
