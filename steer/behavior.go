package steer

import (
	"github.com/lixenwraith/vi-steer/vmath"
)

// Behavior produces a steering force for one agent
// The behavior's weight is applied inside Compute; composition sums results without reweighting
// Internal state (wander angle, path segment index) belongs to the instance, so a stateful
// behavior must not be shared between agents
type Behavior interface {
	Compute(a *Agent, dt float64) vmath.Vec2
}

// Resetter is implemented by behaviors with persistent state the owning simulation may re-seed
// hint is a direction suggestion; the zero vector requests a fresh random state
type Resetter interface {
	Reset(hint vmath.Vec2)
}

// ComputeSteering sums behavior forces and clamps the result to the agent's MaxForce
// Non-finite behavior output is dropped so a single degenerate behavior cannot poison the sum
func ComputeSteering(a *Agent, behaviors []Behavior, dt float64) vmath.Vec2 {
	var force vmath.Vec2
	for _, b := range behaviors {
		if b == nil {
			continue
		}
		f := b.Compute(a, dt)
		if !vmath.V2IsFinite(f) {
			continue
		}
		force = vmath.V2Add(force, f)
	}
	return vmath.V2ClampLength(force, a.MaxForce)
}

// seekVelocity returns (desired - current) toward target at speed, zero when target is closer than deadZone
func seekVelocity(a *Agent, target vmath.Vec2, speed, deadZone float64) vmath.Vec2 {
	toTarget := vmath.V2Sub(target, a.Position)
	dist := vmath.V2Len(toTarget)
	if dist < deadZone || dist <= vmath.Epsilon {
		return vmath.Vec2{}
	}
	desired := vmath.V2Scale(toTarget, speed/dist)
	return vmath.V2Sub(desired, a.Velocity)
}
