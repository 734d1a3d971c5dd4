package physics

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/vi-steer/steer"
	"github.com/lixenwraith/vi-steer/vmath"
)

const dt60 = 1.0 / 60

// pushBehavior applies a fixed force each tick
type pushBehavior vmath.Vec2

func (p pushBehavior) Compute(*steer.Agent, float64) vmath.Vec2 { return vmath.Vec2(p) }

func TestSpeedNeverExceedsMax(t *testing.T) {
	rng := vmath.NewFastRand(vmath.SeedFromString("speed-cap"))
	b := box(t)

	for trial := 0; trial < 20; trial++ {
		a := newAgent(t, vmath.V2(rng.Range(10, 90), rng.Range(10, 90)))
		a.MaxSpeed = rng.Range(1, 300)
		a.MaxForce = rng.Range(10, 5000)

		for tick := 0; tick < 200; tick++ {
			a.AddForce(vmath.V2(rng.Range(-1e4, 1e4), rng.Range(-1e4, 1e4)))
			push := pushBehavior(vmath.V2(rng.Range(-1e4, 1e4), rng.Range(-1e4, 1e4)))
			UpdateAgent(a, []steer.Behavior{push}, []Boundary{b}, dt60)

			if a.Speed() > a.MaxSpeed+1e-9 {
				t.Fatalf("Trial %d tick %d: expected speed <= %f, got %f", trial, tick, a.MaxSpeed, a.Speed())
			}
		}
	}
}

func TestSeekIntegratesTowardTarget(t *testing.T) {
	a, err := steer.NewAgent(vmath.Vec2{}, steer.AgentParams{Radius: 5, Mass: 1, MaxSpeed: 500, MaxForce: 1000, TurnRate: 6})
	require.NoError(t, err)
	seek := steer.NewSeek(1, 1, steer.FixedTarget(vmath.V2(100, 0)))

	UpdateAgent(a, []steer.Behavior{seek}, nil, dt60)

	assert.InDelta(t, 500*dt60, a.Velocity.X, 1e-9)
	assert.InDelta(t, 0, a.Velocity.Y, 1e-9)
	assert.InDelta(t, 500*dt60*dt60, a.Position.X, 1e-9)
}

func TestHeadingTurnRateLimited(t *testing.T) {
	tests := []struct {
		name     string
		rotation float64
		velocity vmath.Vec2
		turnRate float64
		want     float64
	}{
		{"Limited by turn rate", 0, vmath.V2(0, 1), 1, 1},
		{"Reaches desired heading", 0, vmath.V2(0, 1), 10, math.Pi / 2},
		{"Turns the short way across pi", 3, vmath.V2(-1, -0.1), 1, math.Atan2(-0.1, -1)},
		{"Clockwise", 0, vmath.V2(0, -1), 0.5, -0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newAgent(t, vmath.Vec2{})
			a.Rotation = tt.rotation
			a.Velocity = tt.velocity
			a.TurnRate = tt.turnRate

			UpdateAgent(a, nil, nil, 1)

			if math.Abs(a.Rotation-tt.want) > 1e-9 {
				t.Errorf("Expected rotation %f, got %f", tt.want, a.Rotation)
			}
		})
	}
}

func TestHeadingUnchangedNearZeroSpeed(t *testing.T) {
	a := newAgent(t, vmath.Vec2{})
	a.Rotation = 2
	a.Velocity = vmath.V2(1e-4, 0)

	UpdateHeading(a, 1, StandardIntegration.HeadingEpsilonSq)

	if a.Rotation != 2 {
		t.Errorf("Expected rotation to stay 2, got %f", a.Rotation)
	}
}

func TestRestStaysAtRest(t *testing.T) {
	a := newAgent(t, vmath.V2(40, 40))

	for i := 0; i < 300; i++ {
		UpdateAgent(a, nil, nil, dt60)
	}

	if a.Velocity != (vmath.Vec2{}) {
		t.Errorf("Expected zero velocity, got %v", a.Velocity)
	}
	if a.Position != vmath.V2(40, 40) {
		t.Errorf("Expected position unchanged, got %v", a.Position)
	}
	if a.Rotation != 0 {
		t.Errorf("Expected rotation unchanged, got %f", a.Rotation)
	}
}

func TestRestSnap(t *testing.T) {
	a := newAgent(t, vmath.Vec2{})
	a.Velocity = vmath.V2(0.05, 0)

	UpdateAgent(a, nil, nil, dt60)

	assert.Equal(t, vmath.Vec2{}, a.Velocity)
	assert.Equal(t, vmath.Vec2{}, a.Position)
}

func TestDampedProfile(t *testing.T) {
	t.Run("Decays exponentially", func(t *testing.T) {
		a := newAgent(t, vmath.Vec2{})
		a.Velocity = vmath.V2(100, 0)
		Step(a, nil, nil, 0.01, DampedIntegration)
		assert.InDelta(t, 100*math.Exp(-0.06), a.Velocity.X, 1e-9)
	})

	t.Run("Snaps below 80", func(t *testing.T) {
		a := newAgent(t, vmath.Vec2{})
		a.Velocity = vmath.V2(100, 0)
		Step(a, nil, nil, 0.1, DampedIntegration)
		assert.Equal(t, vmath.Vec2{}, a.Velocity)
	})

	t.Run("Standard keeps momentum", func(t *testing.T) {
		a := newAgent(t, vmath.Vec2{})
		a.Velocity = vmath.V2(50, 0)
		Step(a, nil, nil, 0.1, StandardIntegration)
		assert.Equal(t, vmath.V2(50, 0), a.Velocity)
		assert.InDelta(t, 5, a.Position.X, 1e-9)
	})
}

func TestInvalidDeltaIsNoOp(t *testing.T) {
	for _, dt := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		a := newAgent(t, vmath.V2(10, 10))
		a.Velocity = vmath.V2(5, 5)
		a.AddForce(vmath.V2(1, 0))
		before := *a

		UpdateAgent(a, []steer.Behavior{pushBehavior(vmath.V2(100, 0))}, nil, dt)

		if *a != before {
			t.Errorf("dt=%v: expected agent unchanged, got %+v", dt, *a)
		}
	}
}

func TestAccumulatedForceConsumed(t *testing.T) {
	a := newAgent(t, vmath.Vec2{})
	a.Mass = 2
	a.AddForce(vmath.V2(60, 0))

	UpdateAgent(a, nil, nil, 0.5)

	assert.InDelta(t, 15, a.Velocity.X, 1e-9)
	assert.InDelta(t, 7.5, a.Position.X, 1e-9)
	assert.Equal(t, vmath.Vec2{}, a.AccumulatedForce)

	UpdateAgent(a, nil, nil, 0.5)
	assert.InDelta(t, 15, a.Velocity.X, 1e-9, "force must not be applied twice")
}

func TestBoundaryKeepsAgentInside(t *testing.T) {
	a := newAgent(t, vmath.V2(50, 50))
	b := box(t)
	seek := steer.NewSeek(1, 1, steer.FixedTarget(vmath.V2(300, 50)))

	for i := 0; i < 600; i++ {
		UpdateAgent(a, []steer.Behavior{seek}, []Boundary{b}, dt60)
		if a.Position.X >= 100+a.Radius {
			t.Fatalf("Tick %d: expected no tunneling through the wall, got x=%f", i, a.Position.X)
		}
	}

	assert.True(t, a.HasBoundsForce)
	assert.Less(t, a.BoundsForce.X, 0.0, "contact force should not point outward")
}

func TestBoundsForceRecordedAndCleared(t *testing.T) {
	b := box(t)
	a := newAgent(t, vmath.V2(3, 50))

	UpdateAgent(a, nil, []Boundary{b}, dt60)
	require.True(t, a.HasBoundsForce)
	assert.Greater(t, a.BoundsForce.X, 0.0)

	a.Position = vmath.V2(50, 50)
	a.Velocity = vmath.Vec2{}
	UpdateAgent(a, nil, []Boundary{b}, dt60)
	assert.False(t, a.HasBoundsForce)
	assert.Equal(t, vmath.Vec2{}, a.BoundsForce)
}

func TestCapSpeed(t *testing.T) {
	tests := []struct {
		name        string
		vel         vmath.Vec2
		max         float64
		want        vmath.Vec2
		wantClamped bool
	}{
		{"Under limit", vmath.V2(3, 4), 10, vmath.V2(3, 4), false},
		{"At limit", vmath.V2(3, 4), 5, vmath.V2(3, 4), false},
		{"Over limit", vmath.V2(30, 40), 5, vmath.V2(3, 4), true},
		{"Zero max", vmath.V2(3, 4), 0, vmath.Vec2{}, true},
		{"Zero max at rest", vmath.Vec2{}, 0, vmath.Vec2{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := tt.vel
			clamped := CapSpeed(&v, tt.max)
			if clamped != tt.wantClamped {
				t.Errorf("Expected clamped=%v, got %v", tt.wantClamped, clamped)
			}
			if vmath.V2Dist(v, tt.want) > 1e-9 {
				t.Errorf("Expected %v, got %v", tt.want, v)
			}
		})
	}
}

func TestProfiles(t *testing.T) {
	require.NoError(t, StandardIntegration.Validate())
	require.NoError(t, DampedIntegration.Validate())

	bad := StandardIntegration
	bad.SpringK = -1
	assert.True(t, errors.Is(bad.Validate(), steer.ErrInvalidConfig))

	bad = StandardIntegration
	bad.LinearDamping = math.NaN()
	assert.ErrorIs(t, bad.Validate(), steer.ErrInvalidConfig)

	p, err := ProfileByName("damped")
	require.NoError(t, err)
	assert.Equal(t, DampedIntegration, p)

	p, err = ProfileByName("")
	require.NoError(t, err)
	assert.Equal(t, StandardIntegration, p)

	_, err = ProfileByName("bouncy")
	assert.ErrorIs(t, err, steer.ErrInvalidConfig)
}
