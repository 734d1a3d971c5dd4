package physics

import (
	"math"

	"github.com/lixenwraith/vi-steer/steer"
	"github.com/lixenwraith/vi-steer/vmath"
)

// UpdateAgent advances a by one tick with StandardIntegration
func UpdateAgent(a *steer.Agent, behaviors []steer.Behavior, bounds []Boundary, dt float64) {
	Step(a, behaviors, bounds, dt, StandardIntegration)
}

// Step advances a by dt seconds: accumulated + steering + boundary forces, integrate, heading
// Non-positive or non-finite dt is a no-op, accumulated force stays queued
func Step(a *steer.Agent, behaviors []steer.Behavior, bounds []Boundary, dt float64, p IntegrationProfile) {
	if a == nil || !(dt > 0) || math.IsInf(dt, 0) {
		return
	}

	force := a.AccumulatedForce
	a.AccumulatedForce = vmath.Vec2{}

	force = vmath.V2Add(force, steer.ComputeSteering(a, behaviors, dt))

	boundsForce := ResolveBoundaries(bounds, a, p.SpringK, p.SpringDamping)
	if !vmath.V2IsFinite(boundsForce) {
		boundsForce = vmath.Vec2{}
	}
	if vmath.V2LenSq(boundsForce) > p.BoundsForceThresholdSq {
		a.BoundsForce = boundsForce
		a.HasBoundsForce = true
	} else {
		a.BoundsForce = vmath.Vec2{}
		a.HasBoundsForce = false
	}
	force = vmath.V2Add(force, boundsForce)

	if !vmath.V2IsFinite(force) {
		force = vmath.Vec2{}
	}

	Integrate(a, force, dt, p)
	UpdateHeading(a, dt, p.HeadingEpsilonSq)
}

// Integrate performs semi-implicit Euler: v += F/m*dt, damping, rest snap, speed cap, p += v*dt
// Non-positive mass is treated as immovable by force, existing velocity still carries
func Integrate(a *steer.Agent, force vmath.Vec2, dt float64, p IntegrationProfile) {
	if a.Mass > 0 {
		a.Velocity = vmath.V2Add(a.Velocity, vmath.V2Scale(force, dt/a.Mass))
	}

	applyLinearDamping(&a.Velocity, p.LinearDamping, dt)
	snapToRest(&a.Velocity, p.SnapSpeed)
	CapSpeed(&a.Velocity, a.MaxSpeed)

	if !vmath.V2IsFinite(a.Velocity) {
		a.Velocity = vmath.Vec2{}
	}

	a.Position = vmath.V2Add(a.Position, vmath.V2Scale(a.Velocity, dt))
}
