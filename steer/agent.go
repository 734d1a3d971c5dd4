package steer

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/vi-steer/vmath"
)

// ErrInvalidConfig is wrapped by every construction-time validation failure
var ErrInvalidConfig = errors.New("invalid configuration")

// Agent is the mutable per-actor simulation state, advanced once per tick by physics.Step
type Agent struct {
	Position vmath.Vec2
	Velocity vmath.Vec2

	// Rotation is the heading in radians, turned toward Velocity at TurnRate
	Rotation float64
	// AngularVelocity is carried for presentation layers, the heading model does not integrate it
	AngularVelocity float64

	Radius float64
	Mass   float64

	MaxSpeed float64
	MaxForce float64
	TurnRate float64 // radians per second

	// AccumulatedForce holds external forces queued between ticks, consumed and zeroed each tick
	AccumulatedForce vmath.Vec2

	// BoundsForce is the last non-negligible boundary contact force, valid when HasBoundsForce
	BoundsForce    vmath.Vec2
	HasBoundsForce bool
}

// AgentParams are the physical limits fixed at construction
type AgentParams struct {
	Radius   float64 `yaml:"radius"`
	Mass     float64 `yaml:"mass"`
	MaxSpeed float64 `yaml:"max_speed"`
	MaxForce float64 `yaml:"max_force"`
	TurnRate float64 `yaml:"turn_rate"`
}

// Validate checks physical preconditions: positive mass, non-negative finite limits
func (p AgentParams) Validate() error {
	if !vmath.IsFinite(p.Mass) || p.Mass <= 0 {
		return fmt.Errorf("%w: mass must be > 0, got %v", ErrInvalidConfig, p.Mass)
	}
	checks := []struct {
		name string
		val  float64
	}{
		{"radius", p.Radius},
		{"max_speed", p.MaxSpeed},
		{"max_force", p.MaxForce},
		{"turn_rate", p.TurnRate},
	}
	for _, c := range checks {
		if !vmath.IsFinite(c.val) || c.val < 0 {
			return fmt.Errorf("%w: %s must be finite and >= 0, got %v", ErrInvalidConfig, c.name, c.val)
		}
	}
	return nil
}

// NewAgent creates an agent at rest facing +X
func NewAgent(position vmath.Vec2, params AgentParams) (*Agent, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if !vmath.V2IsFinite(position) {
		return nil, fmt.Errorf("%w: position must be finite, got %v", ErrInvalidConfig, position)
	}
	return &Agent{
		Position: position,
		Radius:   params.Radius,
		Mass:     params.Mass,
		MaxSpeed: params.MaxSpeed,
		MaxForce: params.MaxForce,
		TurnRate: params.TurnRate,
	}, nil
}

// AddForce queues an external force for the next tick
func (a *Agent) AddForce(f vmath.Vec2) {
	if !vmath.V2IsFinite(f) {
		return
	}
	a.AccumulatedForce = vmath.V2Add(a.AccumulatedForce, f)
}

// Heading returns the unit vector for Rotation
func (a *Agent) Heading() vmath.Vec2 {
	return vmath.V2FromAngle(a.Rotation)
}

// Speed returns current velocity magnitude
func (a *Agent) Speed() float64 {
	return vmath.V2Len(a.Velocity)
}
