package physics

import (
	"fmt"

	"github.com/lixenwraith/vi-steer/parameter"
	"github.com/lixenwraith/vi-steer/steer"
	"github.com/lixenwraith/vi-steer/vmath"
)

// IntegrationProfile holds the tuning constants of one integration step
type IntegrationProfile struct {
	SpringK       float64 // boundary contact stiffness
	SpringDamping float64 // opposes velocity into a boundary
	LinearDamping float64 // exponential velocity decay per second, 0 disables
	SnapSpeed     float64 // speeds below this are zeroed

	BoundsForceThresholdSq float64 // squared contact force below which BoundsForce is cleared
	HeadingEpsilonSq       float64 // squared speed below which heading is left alone
}

// Integration profiles - pre-defined, passed by value into the hot path

// StandardIntegration is the undamped profile: free-flying agents keep their momentum
var StandardIntegration = IntegrationProfile{
	SpringK:                parameter.BoundarySpringK,
	SpringDamping:          parameter.BoundarySpringDamping,
	LinearDamping:          0,
	SnapSpeed:              parameter.RestSnapSpeed,
	BoundsForceThresholdSq: parameter.BoundaryForceThresholdSq,
	HeadingEpsilonSq:       parameter.HeadingEpsilonSq,
}

// DampedIntegration settles quickly: stiffer contact, friction and an aggressive rest snap
var DampedIntegration = IntegrationProfile{
	SpringK:                parameter.DampedSpringK,
	SpringDamping:          parameter.DampedSpringDamping,
	LinearDamping:          parameter.DampedLinearDamping,
	SnapSpeed:              parameter.DampedSnapSpeed,
	BoundsForceThresholdSq: parameter.BoundaryForceThresholdSq,
	HeadingEpsilonSq:       parameter.HeadingEpsilonSq,
}

// ProfileByName resolves a profile name as used in scenario files and CLI flags
// Empty name selects StandardIntegration
func ProfileByName(name string) (IntegrationProfile, error) {
	switch name {
	case "", "standard":
		return StandardIntegration, nil
	case "damped":
		return DampedIntegration, nil
	default:
		return IntegrationProfile{}, fmt.Errorf("%w: unknown integration profile %q", steer.ErrInvalidConfig, name)
	}
}

// Validate rejects negative or non-finite constants
func (p IntegrationProfile) Validate() error {
	fields := []struct {
		name string
		val  float64
	}{
		{"spring_k", p.SpringK},
		{"spring_damping", p.SpringDamping},
		{"linear_damping", p.LinearDamping},
		{"snap_speed", p.SnapSpeed},
		{"bounds_force_threshold_sq", p.BoundsForceThresholdSq},
		{"heading_epsilon_sq", p.HeadingEpsilonSq},
	}
	for _, f := range fields {
		if !vmath.IsFinite(f.val) || f.val < 0 {
			return fmt.Errorf("%w: %s must be finite and >= 0, got %v", steer.ErrInvalidConfig, f.name, f.val)
		}
	}
	return nil
}
