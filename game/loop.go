package game

import (
	"context"

	"github.com/edwinsyarief/aecs"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

var ErrLoopNotInitialized = eris.New("loop not initialized")

type namedSystem struct {
	name   string
	system aecs.System
	logger zerolog.Logger
}

// Loop drives a world's systems frame by frame. Systems run in the order
// they were added, for both Init and Update.
type Loop struct {
	world       *aecs.World
	systems     []namedSystem
	clock       Clock
	initialized bool
}

func NewLoop(w *aecs.World) *Loop {
	return &Loop{world: w}
}

// Add appends a system under name. Systems added after Init are not
// initialized.
func (l *Loop) Add(name string, s aecs.System) *Loop {
	logger := l.world.Logger().With().Str("system", name).Logger()
	l.systems = append(l.systems, namedSystem{name: name, system: s, logger: logger})
	return l
}

// Init publishes the Clock resource and initializes every system.
func (l *Loop) Init() error {
	if l.initialized {
		return nil
	}
	aecs.SetResource(l.world.Resources(), &l.clock)
	for _, s := range l.systems {
		if err := s.system.Init(l.world); err != nil {
			return eris.Wrapf(err, "init system %q", s.name)
		}
		if b, ok := s.system.(interface{ Entities() []aecs.Entity }); ok {
			s.logger.Debug().Int("entities", len(b.Entities())).Msg("system initialized")
		}
	}
	l.initialized = true
	return nil
}

// Step advances the clock by dt seconds and runs one Update pass. The first
// failing system aborts the frame.
func (l *Loop) Step(dt float64) error {
	if !l.initialized {
		return ErrLoopNotInitialized
	}
	l.clock.Delta = dt
	l.clock.Elapsed += dt
	l.clock.Frame++
	for _, s := range l.systems {
		if err := s.system.Update(l.world); err != nil {
			s.logger.Error().Err(err).Uint64("frame", l.clock.Frame).Msg("update failed")
			return eris.Wrapf(err, "update system %q at frame %d", s.name, l.clock.Frame)
		}
	}
	return nil
}

// Run steps the loop frames times, stopping early when ctx is done. The
// before hook, if set, runs ahead of every frame with the frame number about
// to run.
func (l *Loop) Run(ctx context.Context, frames int, dt float64, before func(frame uint64)) error {
	for range frames {
		if err := ctx.Err(); err != nil {
			return err
		}
		if before != nil {
			before(l.clock.Frame + 1)
		}
		if err := l.Step(dt); err != nil {
			return err
		}
	}
	return nil
}

// Clock returns the current frame timing.
func (l *Loop) Clock() Clock {
	return l.clock
}
