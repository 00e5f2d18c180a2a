// Command aecsdemo steps one or more independent scene worlds headlessly and
// reports where each player ended up.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/edwinsyarief/aecs"
	"github.com/edwinsyarief/aecs/game"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := LoadConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logger := newLogger(cfg, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger, os.Stdout); err != nil {
		logger.Error().Err(err).Msg("demo failed")
		os.Exit(1)
	}
}

func newLogger(cfg Config, out io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	w := zerolog.SyncWriter(out)
	if cfg.Pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// run steps cfg.Worlds worlds concurrently. Worlds share the registry and
// nothing else. Snapshots are written to out in world order once every world
// has finished.
func run(ctx context.Context, cfg Config, logger zerolog.Logger, out io.Writer) error {
	reg, err := game.NewRegistry()
	if err != nil {
		return err
	}

	dumps := make([][]byte, cfg.Worlds)
	eg, ctx := errgroup.WithContext(ctx)
	for i := range cfg.Worlds {
		eg.Go(func() error {
			w := aecs.NewWorld(reg, aecs.WithLogger(logger.With().Int("world", i).Logger()))
			if err := runWorld(ctx, cfg, w); err != nil {
				return eris.Wrapf(err, "world %d", i)
			}
			if !cfg.Dump {
				return nil
			}
			raw, err := w.SnapshotJSON()
			if err != nil {
				return eris.Wrapf(err, "snapshot world %d", i)
			}
			dumps[i] = raw
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	for _, raw := range dumps {
		if raw == nil {
			continue
		}
		if _, err := fmt.Fprintf(out, "%s\n", raw); err != nil {
			return eris.Wrap(err, "write snapshot")
		}
	}
	return nil
}

func runWorld(ctx context.Context, cfg Config, w *aecs.World) error {
	scene, err := game.LoadScene(w, cfg.Player)
	if err != nil {
		return err
	}
	loop := game.NewSceneLoop(w)
	if err := loop.Init(); err != nil {
		return err
	}
	w.LogState(zerolog.DebugLevel)

	press := func(frame uint64) {
		switch frame {
		case 1:
			aecs.Publish(w.Events(), game.KeyEvent{Key: "w", Pressed: true})
		case uint64(cfg.HoldForward) + 1:
			aecs.Publish(w.Events(), game.KeyEvent{Key: "w", Pressed: false})
		}
	}
	if err := loop.Run(ctx, cfg.Frames, cfg.Delta, press); err != nil {
		return err
	}

	pos, err := aecs.Get[game.Position](w, scene.Player)
	if err != nil {
		return err
	}
	p, err := aecs.Get[game.Player](w, scene.Player)
	if err != nil {
		return err
	}
	w.Logger().Info().
		Uint64("frames", loop.Clock().Frame).
		Float64("x", pos.Position.X).
		Float64("y", pos.Position.Y).
		Float64("z", pos.Position.Z).
		Bool("grounded", p.IsGrounded).
		Msg("world finished")
	return nil
}
