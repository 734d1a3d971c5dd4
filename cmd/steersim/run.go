package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lixenwraith/vi-steer/parameter"
	"github.com/lixenwraith/vi-steer/scenario"
)

func newRunCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Step one or more scenarios and optionally record a trace",
		Example: `  steersim run -s scenarios/arena.yaml --ticks 600
  steersim run -s a.yaml -s b.yaml --profile damped --trace out.jsonl`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.run(ctx, cmd.OutOrStdout())
		},
	}

	f := cmd.Flags()
	f.StringSliceP("scenario", "s", nil, "scenario file, repeat to run a batch")
	f.Int("ticks", 600, "number of ticks to simulate")
	f.Float64("dt", parameter.DefaultTickSeconds, "seconds per tick")
	f.String("profile", "", "override integration profile: standard or damped")
	f.String("trace", "", "write JSON-lines trace to this file, - for stdout")
	f.Int("trace-every", 1, "record one trace line every N ticks")
	_ = cmd.MarkFlagRequired("scenario")

	_ = a.v.BindPFlag("run.scenarios", f.Lookup("scenario"))
	_ = a.v.BindPFlag("run.ticks", f.Lookup("ticks"))
	_ = a.v.BindPFlag("run.dt", f.Lookup("dt"))
	_ = a.v.BindPFlag("run.profile", f.Lookup("profile"))
	_ = a.v.BindPFlag("run.trace", f.Lookup("trace"))
	_ = a.v.BindPFlag("run.trace_every", f.Lookup("trace-every"))
	return cmd
}

func (a *app) run(ctx context.Context, stdout io.Writer) error {
	ticks := a.v.GetInt("run.ticks")
	dt := a.v.GetFloat64("run.dt")
	if ticks < 0 {
		return fmt.Errorf("ticks must be >= 0, got %d", ticks)
	}
	if !(dt > 0) {
		return fmt.Errorf("dt must be > 0, got %v", dt)
	}

	worlds, err := a.loadWorlds(a.v.GetStringSlice("run.scenarios"), a.v.GetString("run.profile"))
	if err != nil {
		return err
	}

	var observe scenario.Observer
	if path := a.v.GetString("run.trace"); path != "" {
		out, closeFn, err := openTrace(path, stdout)
		if err != nil {
			return err
		}
		defer closeFn()

		rec := scenario.NewRecorder(out, a.v.GetInt("run.trace_every"))
		defer func() {
			if err := rec.Flush(); err != nil {
				a.logger.Error("flush trace", zap.Error(err))
			}
		}()

		// Worlds step concurrently but share one trace stream
		var mu sync.Mutex
		observe = func(w *scenario.World) error {
			mu.Lock()
			defer mu.Unlock()
			return rec.Record(w)
		}
	}

	a.logger.Info("batch started", zap.Int("worlds", len(worlds)), zap.Int("ticks", ticks), zap.Float64("dt", dt))
	if err := scenario.RunBatch(ctx, worlds, ticks, dt, observe); err != nil {
		return fmt.Errorf("run batch: %w", err)
	}

	for _, w := range worlds {
		contacts := 0
		for _, e := range w.Entities {
			if e.InContact() {
				contacts++
			}
		}
		a.logger.Info("world summary",
			zap.String("world", w.Name),
			zap.Uint64("ticks", w.Tick()),
			zap.Int("agents", len(w.Entities)),
			zap.Int("in_contact", contacts))
	}
	return nil
}

func (a *app) loadWorlds(paths []string, profile string) ([]*scenario.World, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no scenario given")
	}
	worlds := make([]*scenario.World, 0, len(paths))
	for _, p := range paths {
		s, err := scenario.LoadFile(p)
		if err != nil {
			return nil, err
		}
		if profile != "" {
			s.Profile = profile
		}
		w, err := s.Build(a.logger)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p, err)
		}
		worlds = append(worlds, w)
	}
	return worlds, nil
}

func openTrace(path string, stdout io.Writer) (io.Writer, func(), error) {
	if path == "-" {
		return stdout, func() {}, nil
	}
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, nil, fmt.Errorf("expand trace path: %w", err)
	}
	f, err := os.Create(expanded)
	if err != nil {
		return nil, nil, fmt.Errorf("create trace: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}
