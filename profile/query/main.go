// Profiling:
// go build ./profile/query
// go tool pprof -http=":8000" -nodefraction=0.001 ./query cpu.pprof

package main

import (
	"github.com/edwinsyarief/aecs"
	"github.com/edwinsyarief/aecs/game"
	"github.com/pkg/profile"
	"github.com/rs/zerolog"
)

func main() {
	count := 50
	iters := 1000
	entities := 10000
	p := profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook)
	run(count, iters, entities)
	p.Stop()
}

// run spreads entities over the archetypes below the solid mask and then
// rewrites every collider a query finds.
func run(rounds, iters, numEntities int) {
	reg := game.MustRegistry()
	for range rounds {
		w := aecs.NewWorld(reg, aecs.WithInitialCapacity(numEntities), aecs.WithLogger(zerolog.Nop()))
		for i, e := range w.CreateEntities(numEntities) {
			_ = w.AddComponent(e, game.KindCollider)
			_ = w.AddComponent(e, game.KindMesh)
			_ = w.AddComponent(e, aecs.Kind(i%5))
		}

		query := aecs.NewQuery(w, game.SolidMask)
		for range iters {
			query.Reset()
			for query.Next() {
				e := query.Entity()
				m, _ := aecs.Get[game.Mesh](w, e)
				_ = aecs.Update(w, e, game.Collider{Bounds: m.Bounds()})
			}
		}
	}
}
