package scenario

import (
	"math"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lixenwraith/vi-steer/geom"
	"github.com/lixenwraith/vi-steer/physics"
	"github.com/lixenwraith/vi-steer/steer"
	"github.com/lixenwraith/vi-steer/vmath"
)

// Entity is one simulated agent with the behavior instances it owns
type Entity struct {
	ID        uuid.UUID
	Name      string
	Agent     *steer.Agent
	Behaviors []steer.Behavior

	wanderers   []steer.Resetter
	contactTime float64
}

// InContact reports whether the last tick produced a boundary contact force
func (e *Entity) InContact() bool { return e.Agent.HasBoundsForce }

// ContactTime returns seconds of uninterrupted boundary contact
func (e *Entity) ContactTime() float64 { return e.contactTime }

// World owns the entities and the shared state their behaviors read
// It is the target, neighbor and obstacle source for every entity; not safe for concurrent use
type World struct {
	Name             string
	Profile          physics.IntegrationProfile
	Bounds           geom.Rect
	Boundaries       []physics.Boundary
	Path             geom.Poly
	Entities         []*Entity
	WanderResetAfter float64

	obstacles []steer.Obstacle
	cursor    vmath.Vec2
	hasCursor bool
	positions []vmath.Vec2

	tick uint64
	time float64

	logger *zap.Logger
}

// StepStats summarizes contact transitions of one tick
type StepStats struct {
	NewContacts  int // entities that entered contact this tick
	WanderResets int // entities whose wander state was re-seeded
}

// Step advances every entity by dt seconds
// Neighbor positions are snapshotted first so entity order does not affect the result
func (w *World) Step(dt float64) StepStats {
	var stats StepStats
	if !(dt > 0) || math.IsInf(dt, 0) {
		return stats
	}

	w.snapshotPositions()

	for _, e := range w.Entities {
		wasInContact := e.Agent.HasBoundsForce
		physics.Step(e.Agent, e.Behaviors, w.Boundaries, dt, w.Profile)

		if !e.Agent.HasBoundsForce {
			e.contactTime = 0
			continue
		}
		if !wasInContact {
			stats.NewContacts++
		}

		e.contactTime += dt
		if w.WanderResetAfter > 0 && e.contactTime >= w.WanderResetAfter && len(e.wanderers) > 0 {
			// Contact force points back into the arena
			for _, r := range e.wanderers {
				r.Reset(e.Agent.BoundsForce)
			}
			w.Logger().Debug("wander reset after sustained contact",
				zap.String("agent", e.Name),
				zap.Float64("contact_seconds", e.contactTime),
				zap.Uint64("tick", w.tick+1))
			e.contactTime = 0
			stats.WanderResets++
		}
	}

	w.tick++
	w.time += dt
	return stats
}

// Tick returns the number of completed steps
func (w *World) Tick() uint64 { return w.tick }

// Time returns simulated seconds
func (w *World) Time() float64 { return w.time }

// Logger returns the world-scoped logger, a no-op logger if none was set
func (w *World) Logger() *zap.Logger {
	if w.logger == nil {
		return zap.NewNop()
	}
	return w.logger
}

// SetCursor sets the live target followed by seek/arrive behaviors without a fixed target
func (w *World) SetCursor(p vmath.Vec2) {
	if !vmath.V2IsFinite(p) {
		return
	}
	w.cursor = p
	w.hasCursor = true
}

// ClearCursor removes the live target, cursor-driven behaviors go idle
func (w *World) ClearCursor() {
	w.hasCursor = false
}

// Target implements steer.TargetSource with the cursor
func (w *World) Target() (vmath.Vec2, bool) {
	return w.cursor, w.hasCursor
}

// Neighbors implements steer.NeighborSource with positions as of the start of the tick
func (w *World) Neighbors() []vmath.Vec2 {
	return w.positions
}

// Obstacles implements steer.ObstacleSource
func (w *World) Obstacles() []steer.Obstacle {
	return w.obstacles
}

// AddObstacle places a new circular obstacle
func (w *World) AddObstacle(o steer.Obstacle) {
	if !vmath.V2IsFinite(o.Position) || !(o.Radius >= 0) {
		return
	}
	w.obstacles = append(w.obstacles, o)
}

func (w *World) snapshotPositions() {
	w.positions = w.positions[:0]
	for _, e := range w.Entities {
		w.positions = append(w.positions, e.Agent.Position)
	}
}
