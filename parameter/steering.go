package parameter

import "math"

// Seek / Arrive
const (
	// SeekDeadZone is the distance below which seek stops pushing (world units)
	SeekDeadZone = 8.0

	// ArriveDefaultSlowRadius is where arrive starts decelerating (world units)
	ArriveDefaultSlowRadius = 120.0
)

// Wander
const (
	// WanderCircleDistance is how far ahead of the agent the wander circle is projected
	WanderCircleDistance = 40.0

	// WanderCircleRadius is the radius of the wander circle
	WanderCircleRadius = 20.0

	// WanderJitter is the maximum wander angle drift per second (radians), ~90°
	WanderJitter = math.Pi / 2

	// WanderJitterInterval is seconds between heading re-picks for WanderJitter
	WanderJitterInterval = 0.25

	// WanderJitterRange is the maximum heading change per re-pick (radians)
	WanderJitterRange = math.Pi

	// WanderHintEpsilon is the minimum hint length accepted by Reset
	WanderHintEpsilon = 0.0001

	// WanderMovingEpsilon is the speed below which wander assumes a +X heading
	WanderMovingEpsilon = 0.0001
)

// Avoidance
const (
	// FlightAvoidanceRadius is the agent-side reach of flight avoidance (world units)
	FlightAvoidanceRadius = 120.0

	// FlightAvoidanceFalloff is the exponent applied to (1 - dist/R)
	FlightAvoidanceFalloff = 2.0

	// FlightAvoidanceForwardBias blends the away vector with the current heading (0..1)
	FlightAvoidanceForwardBias = 0.5

	// ObstacleLookAhead is the capsule length at full speed (world units)
	ObstacleLookAhead = 100.0
)

// Path following
const (
	// PathLookAhead is the carrot distance ahead of the closest path point
	PathLookAhead = 40.0

	// PathCarrotEpsilon is the carrot distance below which path follow yields no force
	PathCarrotEpsilon = 0.0001

	// CorridorRadius is the lateral half-width within which no correction is applied
	CorridorRadius = 24.0

	// CorridorStiffness scales the restoring force per unit of corridor penetration
	CorridorStiffness = 1.0
)
