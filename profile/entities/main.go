// Profiling:
// go build ./profile/entities
// go tool pprof -http=":8000" -nodefraction=0.001 ./entities mem.pprof

package main

import (
	"github.com/edwinsyarief/aecs"
	"github.com/edwinsyarief/aecs/game"
	"github.com/pkg/profile"
	"github.com/rs/zerolog"
)

func main() {
	count := 50
	iters := 100
	entities := 1000
	p := profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook)
	run(count, iters, entities)
	p.Stop()
}

// run measures archetype migration: every entity walks from the empty
// archetype through the full player mask one kind at a time.
func run(rounds, iters, numEntities int) {
	reg := game.MustRegistry()
	for range rounds {
		for range iters {
			w := aecs.NewWorld(reg, aecs.WithInitialCapacity(numEntities), aecs.WithLogger(zerolog.Nop()))
			for _, e := range w.CreateEntities(numEntities) {
				game.PlayerMask.ForEach(func(k aecs.Kind) bool {
					_ = w.AddComponent(e, k)
					return true
				})
			}
		}
	}
}
