package steer

import (
	"errors"
	"math"
	"testing"

	"github.com/lixenwraith/vi-steer/vmath"
)

func testParams() AgentParams {
	return AgentParams{Radius: 5, Mass: 1, MaxSpeed: 500, MaxForce: 1000, TurnRate: 6}
}

func newTestAgent(t *testing.T, pos vmath.Vec2) *Agent {
	t.Helper()
	a, err := NewAgent(pos, testParams())
	if err != nil {
		t.Fatalf("NewAgent: %v", err)
	}
	return a
}

func TestNewAgentValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *AgentParams)
		wantErr bool
	}{
		{"Valid", func(p *AgentParams) {}, false},
		{"Zero mass", func(p *AgentParams) { p.Mass = 0 }, true},
		{"Negative mass", func(p *AgentParams) { p.Mass = -1 }, true},
		{"Negative max speed", func(p *AgentParams) { p.MaxSpeed = -5 }, true},
		{"NaN max force", func(p *AgentParams) { p.MaxForce = math.NaN() }, true},
		{"Infinite turn rate", func(p *AgentParams) { p.TurnRate = math.Inf(1) }, true},
		{"Zero limits allowed", func(p *AgentParams) { p.MaxSpeed, p.MaxForce, p.TurnRate = 0, 0, 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testParams()
			tt.mutate(&p)
			a, err := NewAgent(vmath.Vec2{}, p)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidConfig) {
					t.Errorf("Expected ErrInvalidConfig, got %v", err)
				}
				if a != nil {
					t.Errorf("Expected nil agent on error")
				}
				return
			}
			if err != nil {
				t.Errorf("Expected no error, got %v", err)
			}
		})
	}
}

func TestNewAgentRejectsNonFinitePosition(t *testing.T) {
	_, err := NewAgent(vmath.V2(math.NaN(), 0), testParams())
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
}

func TestAddForceIgnoresNonFinite(t *testing.T) {
	a := newTestAgent(t, vmath.Vec2{})
	a.AddForce(vmath.V2(3, 4))
	a.AddForce(vmath.V2(math.Inf(1), 0))
	a.AddForce(vmath.V2(1, 1))

	if a.AccumulatedForce != vmath.V2(4, 5) {
		t.Errorf("Expected accumulated (4, 5), got %v", a.AccumulatedForce)
	}
}
