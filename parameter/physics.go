package parameter

// Boundary contact (spring-damper penalty response)
const (
	// BoundarySpringK is contact stiffness: force per unit of penetration depth
	BoundarySpringK = 500.0

	// BoundarySpringDamping opposes velocity moving further into a boundary
	BoundarySpringDamping = 10.0

	// BoundaryForceThresholdSq is the squared boundary force below which the agent's
	// recorded contact force is cleared
	BoundaryForceThresholdSq = 0.01
)

// Damped variant used by agents that should settle quickly (pointer followers, UI actors)
const (
	DampedSpringK       = 800.0
	DampedSpringDamping = 10.0
	DampedLinearDamping = 6.0
	DampedSnapSpeed     = 80.0
)

// Integration
const (
	// RestSnapSpeed is the speed under which velocity is zeroed to kill residual jitter
	RestSnapSpeed = 0.1

	// HeadingEpsilonSq is the squared speed under which heading is left unchanged
	HeadingEpsilonSq = 1e-6

	// DefaultTurnRate is the heading change limit for agents that do not specify one (rad/sec)
	DefaultTurnRate = 6.0
)

// Scenario shell
const (
	// DefaultTickSeconds is the fixed step used by headless runs when none is given
	DefaultTickSeconds = 1.0 / 60.0
)
