package scenario

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func buildWorlds(t *testing.T, n int) []*World {
	t.Helper()
	worlds := make([]*World, n)
	for i := range worlds {
		worlds[i] = buildYAML(t, arenaYAML)
	}
	return worlds
}

func TestRunBatch(t *testing.T) {
	defer goleak.VerifyNone(t)

	worlds := buildWorlds(t, 4)
	var observed atomic.Int64

	err := RunBatch(context.Background(), worlds, 30, dt, func(*World) error {
		observed.Add(1)
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, int64(4*30), observed.Load())
	for _, w := range worlds {
		assert.Equal(t, uint64(30), w.Tick())
	}

	// Independent worlds built from the same file stay identical
	assert.Equal(t, worlds[0].Snapshot(), worlds[3].Snapshot())
}

func TestRunBatchCancelled(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	worlds := buildWorlds(t, 2)
	err := RunBatch(ctx, worlds, 100, dt, nil)

	assert.ErrorIs(t, err, context.Canceled)
	for _, w := range worlds {
		assert.Equal(t, uint64(0), w.Tick())
	}
}

func TestRunBatchObserverError(t *testing.T) {
	defer goleak.VerifyNone(t)

	errBoom := errors.New("boom")
	worlds := buildWorlds(t, 3)

	err := RunBatch(context.Background(), worlds, 100, dt, func(w *World) error {
		if w.Tick() == 5 {
			return errBoom
		}
		return nil
	})

	assert.ErrorIs(t, err, errBoom)
	for _, w := range worlds {
		assert.Less(t, w.Tick(), uint64(100))
	}
}

func TestRunStopsOnContext(t *testing.T) {
	w := buildYAML(t, strings.Replace(arenaYAML, "count: 3", "count: 1", 1))
	ctx, cancel := context.WithCancel(context.Background())

	err := Run(ctx, w, 50, dt, func(w *World) error {
		if w.Tick() == 10 {
			cancel()
		}
		return nil
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, uint64(10), w.Tick())
}
