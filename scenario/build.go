package scenario

import (
	"fmt"
	"math"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lixenwraith/vi-steer/geom"
	"github.com/lixenwraith/vi-steer/parameter"
	"github.com/lixenwraith/vi-steer/physics"
	"github.com/lixenwraith/vi-steer/steer"
	"github.com/lixenwraith/vi-steer/vmath"
)

// entityNamespace scopes deterministic entity IDs
var entityNamespace = uuid.MustParse("6f1c2a5e-3b7d-4c1e-9a0f-5d2e8b7c4a31")

// behaviorFactory builds one behavior instance for one entity
type behaviorFactory func(w *World, bc BehaviorConfig, rng *vmath.FastRand) (steer.Behavior, error)

var behaviorTypes = map[string]behaviorFactory{
	"seek": func(w *World, bc BehaviorConfig, _ *vmath.FastRand) (steer.Behavior, error) {
		return steer.NewSeek(bc.weight(), orDefaultPtr(bc.SpeedFactor, 1), w.targetFor(bc)), nil
	},
	"arrive": func(w *World, bc BehaviorConfig, _ *vmath.FastRand) (steer.Behavior, error) {
		return steer.NewArrive(bc.weight(), orDefaultPtr(bc.SpeedFactor, 1), orDefault(bc.SlowRadius, parameter.ArriveDefaultSlowRadius), w.targetFor(bc))
	},
	"separation": func(w *World, bc BehaviorConfig, _ *vmath.FastRand) (steer.Behavior, error) {
		if bc.DesiredSeparation <= 0 {
			return nil, fmt.Errorf("desired_separation must be > 0")
		}
		return steer.NewSeparation(w, bc.DesiredSeparation, bc.weight()), nil
	},
	"boundary_avoidance": func(w *World, bc BehaviorConfig, _ *vmath.FastRand) (steer.Behavior, error) {
		if w.Bounds.W <= 0 || w.Bounds.H <= 0 {
			return nil, fmt.Errorf("boundary_avoidance needs scenario bounds")
		}
		return steer.NewBoundaryAvoidance(bc.weight(), w.Bounds, bc.Margin, bc.Strength), nil
	},
	"wander_jitter": func(_ *World, bc BehaviorConfig, rng *vmath.FastRand) (steer.Behavior, error) {
		wj := steer.NewWanderJitter(bc.weight(), orDefault(bc.Interval, parameter.WanderJitterInterval), rng)
		if bc.Jitter > 0 {
			wj.Range = bc.Jitter
		}
		return wj, nil
	},
	"wander": func(_ *World, bc BehaviorConfig, rng *vmath.FastRand) (steer.Behavior, error) {
		return steer.NewWander(bc.weight(),
			orDefault(bc.CircleDistance, parameter.WanderCircleDistance),
			orDefault(bc.CircleRadius, parameter.WanderCircleRadius),
			orDefault(bc.Jitter, parameter.WanderJitter),
			rng), nil
	},
	"flight_avoidance": func(w *World, bc BehaviorConfig, _ *vmath.FastRand) (steer.Behavior, error) {
		fa := steer.NewFlightAvoidance(bc.weight(), w)
		fa.Radius = orDefault(bc.Radius, fa.Radius)
		fa.Falloff = orDefault(bc.Falloff, fa.Falloff)
		if bc.ForwardBias != nil {
			fa.ForwardBias = vmath.Clamp(*bc.ForwardBias, 0, 1)
		}
		return fa, nil
	},
	"obstacle_avoidance": func(w *World, bc BehaviorConfig, _ *vmath.FastRand) (steer.Behavior, error) {
		return steer.NewObstacleAvoidance(bc.weight(), w, orDefaultPtr(bc.LookAhead, parameter.ObstacleLookAhead)), nil
	},
	"path_follow": func(w *World, bc BehaviorConfig, _ *vmath.FastRand) (steer.Behavior, error) {
		return steer.NewPathFollow(bc.weight(), orDefaultPtr(bc.SpeedFactor, 1), w.Path, orDefaultPtr(bc.LookAhead, parameter.PathLookAhead))
	},
	"corridor_follow": func(w *World, bc BehaviorConfig, _ *vmath.FastRand) (steer.Behavior, error) {
		return steer.NewCorridorFollow(bc.weight(), w.Path,
			orDefaultPtr(bc.CorridorRadius, parameter.CorridorRadius),
			orDefaultPtr(bc.Stiffness, parameter.CorridorStiffness))
	},
}

// Build instantiates the world; every agent gets fresh behavior instances and its own random stream
// A nil logger is replaced with a no-op logger
func (s *Scenario) Build(logger *zap.Logger) (*World, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	profile, err := physics.ProfileByName(s.Profile)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScenario, err)
	}

	w := &World{
		Name:             s.Name,
		Profile:          profile,
		Bounds:           s.Bounds.Rect(),
		WanderResetAfter: s.WanderResetAfter,
		logger:           logger.With(zap.String("world", s.Name)),
	}

	for i, bc := range s.Boundaries {
		b, err := buildBoundary(bc)
		if err != nil {
			return nil, fmt.Errorf("%w: boundary %d: %v", ErrInvalidScenario, i, err)
		}
		w.Boundaries = append(w.Boundaries, b)
	}

	if s.Path != nil {
		pts := make([]vmath.Vec2, len(s.Path.Points))
		for i, p := range s.Path.Points {
			pts[i] = p.Vec()
		}
		w.Path = geom.NewPoly(pts...)
	}

	for _, o := range s.Obstacles {
		w.obstacles = append(w.obstacles, steer.Obstacle{Position: vmath.V2(o.X, o.Y), Radius: o.Radius})
	}

	if s.Cursor != nil {
		w.SetCursor(s.Cursor.Vec())
	}

	for gi, g := range s.Agents {
		count := g.count()
		groupName := g.Name
		if groupName == "" {
			groupName = fmt.Sprintf("group%d", gi)
		}

		for i := range count {
			name := groupName
			if count > 1 {
				name = fmt.Sprintf("%s-%d", groupName, i)
			}
			e, err := w.buildEntity(s.Seed, name, g)
			if err != nil {
				return nil, fmt.Errorf("%w: agent %q: %v", ErrInvalidScenario, name, err)
			}
			w.Entities = append(w.Entities, e)
		}
	}

	w.snapshotPositions()
	return w, nil
}

func (w *World) buildEntity(seed, name string, g AgentGroup) (*Entity, error) {
	key := seed + "/" + w.Name + "/" + name
	rng := vmath.NewFastRand(vmath.SeedFromString(key))

	pos := g.Position.Vec()
	if g.Spread > 0 {
		// sqrt keeps the scatter uniform over the disc
		r := g.Spread * math.Sqrt(rng.Float64())
		pos = vmath.V2Add(pos, vmath.V2Scale(vmath.V2FromAngle(rng.Angle()), r))
	}

	params := g.Params
	if params.TurnRate == 0 {
		params.TurnRate = parameter.DefaultTurnRate
	}
	agent, err := steer.NewAgent(pos, params)
	if err != nil {
		return nil, err
	}

	e := &Entity{
		ID:    uuid.NewSHA1(entityNamespace, []byte(key)),
		Name:  name,
		Agent: agent,
	}

	for _, bc := range g.Behaviors {
		factory, ok := behaviorTypes[bc.Type]
		if !ok {
			return nil, fmt.Errorf("unknown behavior type %q", bc.Type)
		}
		b, err := factory(w, bc, rng)
		if err != nil {
			return nil, fmt.Errorf("behavior %s: %w", bc.Type, err)
		}
		e.Behaviors = append(e.Behaviors, b)

		// Only wander state is re-seeded on sustained contact, path trackers keep their progress
		switch wb := b.(type) {
		case *steer.Wander:
			e.wanderers = append(e.wanderers, wb)
		case *steer.WanderJitter:
			e.wanderers = append(e.wanderers, wb)
		}
	}
	return e, nil
}

func buildBoundary(bc BoundaryConfig) (physics.Boundary, error) {
	if bc.Rect != nil {
		return physics.NewRectBoundary(bc.Rect.Rect(), bc.Rotation)
	}
	pts := make([]vmath.Vec2, len(bc.Points))
	for i, p := range bc.Points {
		pts[i] = p.Vec()
	}
	return physics.NewConvexPolygonBoundary(geom.NewPoly(pts...))
}

// targetFor returns the fixed target if configured, otherwise the world cursor
func (w *World) targetFor(bc BehaviorConfig) steer.TargetSource {
	if bc.Target != nil {
		return steer.FixedTarget(bc.Target.Vec())
	}
	return w
}
