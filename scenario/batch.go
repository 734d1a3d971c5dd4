package scenario

import (
	"context"
	"runtime"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Observer is called after every tick of one world, an error stops that world and cancels the batch
type Observer func(w *World) error

// Run steps w for ticks ticks of dt seconds, checking ctx between ticks
func Run(ctx context.Context, w *World, ticks int, dt float64, observe Observer) error {
	for range ticks {
		if err := ctx.Err(); err != nil {
			return err
		}
		w.Step(dt)
		if observe != nil {
			if err := observe(w); err != nil {
				return err
			}
		}
	}
	return nil
}

// RunBatch runs independent worlds concurrently, one goroutine per world up to GOMAXPROCS
// Worlds share no state; observe is invoked from the goroutine owning each world
// The first error cancels the remaining worlds and is returned
func RunBatch(ctx context.Context, worlds []*World, ticks int, dt float64, observe Observer) error {
	g, groupCtx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for _, w := range worlds {
		g.Go(func() error {
			start := time.Now()
			w.Logger().Info("world started", zap.Int("agents", len(w.Entities)), zap.Int("ticks", ticks))

			err := Run(groupCtx, w, ticks, dt, observe)
			if err != nil {
				w.Logger().Warn("world stopped", zap.Uint64("tick", w.Tick()), zap.Error(err))
				return err
			}

			w.Logger().Info("world finished",
				zap.Uint64("tick", w.Tick()),
				zap.Float64("sim_seconds", w.Time()),
				zap.Duration("elapsed", time.Since(start)))
			return nil
		})
	}
	return g.Wait()
}
