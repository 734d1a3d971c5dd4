package physics

import (
	"math"

	"github.com/lixenwraith/vi-steer/steer"
	"github.com/lixenwraith/vi-steer/vmath"
)

// CapSpeed limits the velocity vector magnitude to maxSpeed
// Returns true if velocity was clamped
func CapSpeed(vel *vmath.Vec2, maxSpeed float64) bool {
	if maxSpeed <= 0 {
		if vmath.V2IsZero(*vel) {
			return false
		}
		*vel = vmath.Vec2{}
		return true
	}

	magSq := vmath.V2LenSq(*vel)
	if magSq <= maxSpeed*maxSpeed {
		return false
	}
	*vel = vmath.V2ClampLength(*vel, maxSpeed)
	return true
}

// UpdateHeading turns Rotation toward the velocity direction by at most TurnRate*dt
// Near-zero speed leaves the heading unchanged
func UpdateHeading(a *steer.Agent, dt, epsilonSq float64) {
	if vmath.V2LenSq(a.Velocity) <= epsilonSq {
		return
	}
	desired := vmath.V2Angle(a.Velocity)
	delta := vmath.WrapAngle(desired - a.Rotation)

	maxTurn := a.TurnRate * dt
	if maxTurn < 0 {
		maxTurn = 0
	}
	delta = vmath.Clamp(delta, -maxTurn, maxTurn)

	a.Rotation = vmath.WrapAngle(a.Rotation + delta)
}

// applyLinearDamping decays velocity by exp(-damping*dt)
func applyLinearDamping(vel *vmath.Vec2, damping, dt float64) {
	if damping <= 0 {
		return
	}
	*vel = vmath.V2Scale(*vel, math.Exp(-damping*dt))
}

// snapToRest zeroes velocity below snapSpeed
// Returns true if velocity was snapped
func snapToRest(vel *vmath.Vec2, snapSpeed float64) bool {
	if vmath.V2IsZero(*vel) {
		return false
	}
	if vmath.V2LenSq(*vel) < snapSpeed*snapSpeed {
		*vel = vmath.Vec2{}
		return true
	}
	return false
}
