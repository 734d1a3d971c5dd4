package steer

import (
	"fmt"
	"math"

	"github.com/lixenwraith/vi-steer/parameter"
	"github.com/lixenwraith/vi-steer/vmath"
)

// Seek drives the agent toward a live target at a fraction of its max speed
type Seek struct {
	Weight      float64
	SpeedFactor float64 // fraction of MaxSpeed used as desired speed
	DeadZone    float64 // no force within this distance of the target

	Target TargetSource
}

func NewSeek(weight, speedFactor float64, target TargetSource) *Seek {
	return &Seek{
		Weight:      weight,
		SpeedFactor: speedFactor,
		DeadZone:    parameter.SeekDeadZone,
		Target:      target,
	}
}

func (s *Seek) Compute(a *Agent, _ float64) vmath.Vec2 {
	if s.Target == nil {
		return vmath.Vec2{}
	}
	target, ok := s.Target.Target()
	if !ok || !vmath.V2IsFinite(target) {
		return vmath.Vec2{}
	}
	f := seekVelocity(a, target, a.MaxSpeed*s.SpeedFactor, s.DeadZone)
	return vmath.V2Scale(f, s.Weight)
}

// Arrive is Seek with linear deceleration inside SlowRadius
type Arrive struct {
	Weight      float64
	SpeedFactor float64
	SlowRadius  float64

	Target TargetSource
}

// NewArrive requires a positive slow radius
func NewArrive(weight, speedFactor, slowRadius float64, target TargetSource) (*Arrive, error) {
	if !(slowRadius > 0) || math.IsInf(slowRadius, 0) {
		return nil, fmt.Errorf("%w: arrive slow radius must be > 0, got %v", ErrInvalidConfig, slowRadius)
	}
	return &Arrive{
		Weight:      weight,
		SpeedFactor: speedFactor,
		SlowRadius:  slowRadius,
		Target:      target,
	}, nil
}

func (r *Arrive) Compute(a *Agent, _ float64) vmath.Vec2 {
	if r.Target == nil {
		return vmath.Vec2{}
	}
	target, ok := r.Target.Target()
	if !ok || !vmath.V2IsFinite(target) {
		return vmath.Vec2{}
	}
	dist := vmath.V2Dist(target, a.Position)
	if dist <= vmath.Epsilon {
		return vmath.Vec2{}
	}
	speed := a.MaxSpeed * r.SpeedFactor * math.Min(dist/r.SlowRadius, 1)
	f := seekVelocity(a, target, speed, 0)
	return vmath.V2Scale(f, r.Weight)
}
