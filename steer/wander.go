package steer

import (
	"math"

	"github.com/lixenwraith/vi-steer/parameter"
	"github.com/lixenwraith/vi-steer/vmath"
)

// WanderJitter pushes at full force along a heading that jumps by up to Range every Interval seconds
type WanderJitter struct {
	Weight   float64
	Interval float64 // seconds between heading re-picks
	Range    float64 // max heading change per re-pick (radians)

	rng   *vmath.FastRand
	timer float64
	angle float64
}

// NewWanderJitter uses rng for every random draw; nil rng falls back to a fixed seed
func NewWanderJitter(weight, interval float64, rng *vmath.FastRand) *WanderJitter {
	if rng == nil {
		rng = vmath.NewFastRand(1)
	}
	w := &WanderJitter{
		Weight:   weight,
		Interval: interval,
		Range:    parameter.WanderJitterRange,
		rng:      rng,
	}
	w.angle = rng.Angle()
	return w
}

func (w *WanderJitter) Compute(a *Agent, dt float64) vmath.Vec2 {
	w.timer -= dt
	if w.timer <= 0 {
		w.angle = math.Mod(w.angle+w.rng.Signed()*w.Range, 2*math.Pi)
		w.timer = w.Interval
	}
	return vmath.V2Scale(vmath.V2FromAngle(w.angle), a.MaxForce*w.Weight)
}

// Reset points the heading along hint, or re-randomizes it for a zero hint, and forces a re-pick timer restart
func (w *WanderJitter) Reset(hint vmath.Vec2) {
	w.angle = resetAngle(hint, w.rng)
	w.timer = w.Interval
}

// Angle returns the current wander heading (radians)
func (w *WanderJitter) Angle() float64 { return w.angle }

// Wander seeks a point on a circle projected ahead of the agent, the point drifting smoothly
// by at most Jitter radians per second
type Wander struct {
	Weight         float64
	CircleDistance float64 // distance ahead of agent
	CircleRadius   float64 // radius of the wander circle
	Jitter         float64 // angular change per second (radians)

	rng   *vmath.FastRand
	angle float64
}

// NewWander uses rng for every random draw; nil rng falls back to a fixed seed
func NewWander(weight, circleDistance, circleRadius, jitter float64, rng *vmath.FastRand) *Wander {
	if rng == nil {
		rng = vmath.NewFastRand(1)
	}
	w := &Wander{
		Weight:         weight,
		CircleDistance: circleDistance,
		CircleRadius:   circleRadius,
		Jitter:         jitter,
		rng:            rng,
	}
	w.Reset(vmath.Vec2{})
	return w
}

// NewDefaultWander builds a Wander with the stock circle geometry
func NewDefaultWander(weight float64, rng *vmath.FastRand) *Wander {
	return NewWander(weight, parameter.WanderCircleDistance, parameter.WanderCircleRadius, parameter.WanderJitter, rng)
}

func (w *Wander) Compute(a *Agent, dt float64) vmath.Vec2 {
	// Stationary agents project the circle along +X
	heading := vmath.Vec2{X: 1}
	if vmath.V2Len(a.Velocity) > parameter.WanderMovingEpsilon {
		heading = vmath.V2Normalize(a.Velocity)
	}

	w.angle = math.Mod(w.angle+w.rng.Signed()*w.Jitter*dt, 2*math.Pi)

	center := vmath.V2Add(a.Position, vmath.V2Scale(heading, w.CircleDistance))
	target := vmath.V2Add(center, vmath.V2Scale(vmath.V2FromAngle(w.angle), w.CircleRadius))
	desired := vmath.V2Sub(target, a.Position)

	return vmath.V2Scale(vmath.V2NormalizeSafe(desired), a.MaxForce*w.Weight)
}

// Reset points the wander angle along hint, or re-randomizes it for a zero hint
func (w *Wander) Reset(hint vmath.Vec2) {
	w.angle = resetAngle(hint, w.rng)
}

// Angle returns the current wander angle (radians)
func (w *Wander) Angle() float64 { return w.angle }

func resetAngle(hint vmath.Vec2, rng *vmath.FastRand) float64 {
	if vmath.V2Len(hint) > parameter.WanderHintEpsilon {
		return vmath.V2Angle(hint)
	}
	return rng.Angle()
}
