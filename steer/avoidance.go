package steer

import (
	"math"

	"github.com/lixenwraith/vi-steer/parameter"
	"github.com/lixenwraith/vi-steer/vmath"
)

// FlightAvoidance steers away from nearby obstacles without braking
// The backward component of each away vector is stripped relative to the current heading and
// blended with forward momentum, weighted by (1 - dist/R)^Falloff
type FlightAvoidance struct {
	Weight      float64
	Radius      float64 // agent-side reach, added to each obstacle radius
	Falloff     float64
	ForwardBias float64 // 0 = pure away vector, 1 = pure heading

	Obstacles ObstacleSource
}

func NewFlightAvoidance(weight float64, obstacles ObstacleSource) *FlightAvoidance {
	return &FlightAvoidance{
		Weight:      weight,
		Radius:      parameter.FlightAvoidanceRadius,
		Falloff:     parameter.FlightAvoidanceFalloff,
		ForwardBias: parameter.FlightAvoidanceForwardBias,
		Obstacles:   obstacles,
	}
}

func (f *FlightAvoidance) Compute(a *Agent, _ float64) vmath.Vec2 {
	if f.Obstacles == nil {
		return vmath.Vec2{}
	}
	speed := vmath.V2Len(a.Velocity)
	if speed <= vmath.Epsilon {
		return vmath.Vec2{}
	}
	fwd := vmath.V2Scale(a.Velocity, 1/speed)

	var force vmath.Vec2
	for _, obs := range f.Obstacles.Obstacles() {
		offset := vmath.V2Sub(a.Position, obs.Position)
		dist := vmath.V2Len(offset)
		r := f.Radius + obs.Radius
		if dist >= r || dist <= vmath.Epsilon {
			continue
		}

		away := vmath.V2Scale(offset, 1/dist)

		// Remove the component pointing back against the heading
		if back := -vmath.V2Dot(away, fwd); back > 0 {
			away = vmath.V2Add(away, vmath.V2Scale(fwd, back))
		}
		away = vmath.V2NormalizeSafe(away)
		if vmath.V2IsZero(away) {
			continue
		}

		strength := math.Pow(1-dist/r, f.Falloff)
		biased := vmath.V2Add(
			vmath.V2Scale(away, 1-f.ForwardBias),
			vmath.V2Scale(fwd, f.ForwardBias),
		)
		force = vmath.V2Add(force, vmath.V2Scale(biased, strength))
	}

	dir := vmath.V2NormalizeSafe(force)
	if vmath.V2IsZero(dir) {
		return vmath.Vec2{}
	}
	return vmath.V2Scale(dir, a.MaxForce*f.Weight)
}

// ObstacleAvoidance sweeps a forward capsule and pushes laterally out of the nearest obstacle it hits
// Capsule length scales with speed fraction and is floored at twice the agent radius
type ObstacleAvoidance struct {
	Weight    float64
	LookAhead float64 // capsule length at MaxSpeed

	Obstacles ObstacleSource
}

func NewObstacleAvoidance(weight float64, obstacles ObstacleSource, lookAhead float64) *ObstacleAvoidance {
	return &ObstacleAvoidance{
		Weight:    weight,
		LookAhead: lookAhead,
		Obstacles: obstacles,
	}
}

func (o *ObstacleAvoidance) Compute(a *Agent, _ float64) vmath.Vec2 {
	if o.Obstacles == nil {
		return vmath.Vec2{}
	}
	speed := vmath.V2Len(a.Velocity)
	if speed <= vmath.Epsilon {
		return vmath.Vec2{}
	}
	fwd := vmath.V2Scale(a.Velocity, 1/speed)

	fraction := 1.0
	if a.MaxSpeed > 0 {
		fraction = speed / a.MaxSpeed
	}
	lookAhead := math.Max(o.LookAhead*fraction, a.Radius*2)

	closestT := math.Inf(1)
	var threat *Obstacle
	var hit vmath.Vec2
	penetration := 0.0

	obstacles := o.Obstacles.Obstacles()
	for i := range obstacles {
		obs := &obstacles[i]
		r := a.Radius + obs.Radius
		if r <= 0 {
			continue
		}

		t := vmath.V2Dot(vmath.V2Sub(obs.Position, a.Position), fwd)
		if t < 0 || t > lookAhead {
			continue
		}

		closest := vmath.V2Add(a.Position, vmath.V2Scale(fwd, t))
		distSq := vmath.V2LenSq(vmath.V2Sub(obs.Position, closest))
		if distSq > r*r {
			continue
		}

		if t < closestT {
			closestT = t
			threat = obs
			hit = closest
			penetration = 1 - math.Sqrt(distSq)/r
		}
	}

	if threat == nil {
		return vmath.Vec2{}
	}

	dir := vmath.V2NormalizeSafe(vmath.V2Sub(hit, threat.Position))
	if vmath.V2IsZero(dir) {
		// Dead-center hit: no lateral side is preferred, pick the left of heading
		dir = vmath.V2Perp(fwd)
	}
	return vmath.V2Scale(dir, a.MaxForce*penetration*o.Weight)
}
