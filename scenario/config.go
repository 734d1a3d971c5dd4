package scenario

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/vi-steer/geom"
	"github.com/lixenwraith/vi-steer/physics"
	"github.com/lixenwraith/vi-steer/steer"
	"github.com/lixenwraith/vi-steer/vmath"
)

// ErrInvalidScenario is wrapped by every load and validation failure
var ErrInvalidScenario = errors.New("invalid scenario")

// Scenario is the YAML description of a world: geometry, shared sources and agent groups
type Scenario struct {
	Name             string           `yaml:"name"`
	Seed             string           `yaml:"seed"`
	Profile          string           `yaml:"profile"`
	Bounds           RectConfig       `yaml:"bounds"`
	Boundaries       []BoundaryConfig `yaml:"boundaries"`
	Path             *PathConfig      `yaml:"path,omitempty"`
	Obstacles        []ObstacleConfig `yaml:"obstacles"`
	Cursor           *PointConfig     `yaml:"cursor,omitempty"`
	Agents           []AgentGroup     `yaml:"agents"`
	WanderResetAfter float64          `yaml:"wander_reset_after"` // seconds of contact, 0 disables
}

type PointConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

func (p PointConfig) Vec() vmath.Vec2 { return vmath.V2(p.X, p.Y) }

type RectConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

func (r RectConfig) Rect() geom.Rect { return geom.NewRect(r.X, r.Y, r.W, r.H) }

// BoundaryConfig is either a (rotated) rect or an explicit convex point list
type BoundaryConfig struct {
	Rect     *RectConfig   `yaml:"rect,omitempty"`
	Rotation float64       `yaml:"rotation"` // radians, rect only
	Points   []PointConfig `yaml:"points,omitempty"`
}

type PathConfig struct {
	Points []PointConfig `yaml:"points"`
}

type ObstacleConfig struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Radius float64 `yaml:"radius"`
}

// AgentGroup spawns Count agents scattered within Spread of Position, each with its own behavior instances
// An omitted count spawns one agent, an explicit 0 spawns none
type AgentGroup struct {
	Name      string            `yaml:"name"`
	Count     *int              `yaml:"count,omitempty"`
	Position  PointConfig       `yaml:"position"`
	Spread    float64           `yaml:"spread"`
	Params    steer.AgentParams `yaml:"params"`
	Behaviors []BehaviorConfig  `yaml:"behaviors"`
}

// BehaviorConfig carries the union of behavior parameters
// Pointer fields distinguish omitted (package default) from an explicit 0;
// for the plain float fields 0 selects the package default
type BehaviorConfig struct {
	Type   string   `yaml:"type"`
	Weight *float64 `yaml:"weight,omitempty"` // nil means 1

	SpeedFactor *float64     `yaml:"speed_factor,omitempty"` // nil means 1
	Target      *PointConfig `yaml:"target,omitempty"` // seek/arrive, nil follows the cursor
	SlowRadius  float64      `yaml:"slow_radius,omitempty"`

	DesiredSeparation float64 `yaml:"desired_separation,omitempty"`

	Margin   float64 `yaml:"margin,omitempty"`
	Strength float64 `yaml:"strength,omitempty"`

	Interval       float64 `yaml:"interval,omitempty"`
	CircleDistance float64 `yaml:"circle_distance,omitempty"`
	CircleRadius   float64 `yaml:"circle_radius,omitempty"`
	Jitter         float64 `yaml:"jitter,omitempty"`

	Radius      float64  `yaml:"radius,omitempty"`
	Falloff     float64  `yaml:"falloff,omitempty"`
	ForwardBias *float64 `yaml:"forward_bias,omitempty"`
	LookAhead   *float64 `yaml:"look_ahead,omitempty"`

	CorridorRadius *float64 `yaml:"corridor_radius,omitempty"`
	Stiffness      *float64 `yaml:"stiffness,omitempty"`
}

// LoadYAML decodes a scenario, unknown keys are rejected
func LoadYAML(r io.Reader) (*Scenario, error) {
	var s Scenario
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidScenario)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidScenario, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadFile reads a scenario from path, expanding a leading ~
func LoadFile(path string) (*Scenario, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("expand scenario path %q: %w", path, err)
	}
	f, err := os.Open(expanded)
	if err != nil {
		return nil, fmt.Errorf("open scenario: %w", err)
	}
	defer f.Close()

	s, err := LoadYAML(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", expanded, err)
	}
	if s.Name == "" {
		s.Name = expanded
	}
	return s, nil
}

// Validate checks structural preconditions that do not require building behaviors
func (s *Scenario) Validate() error {
	if len(s.Agents) == 0 {
		return fmt.Errorf("%w: no agents", ErrInvalidScenario)
	}
	if _, err := physics.ProfileByName(s.Profile); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidScenario, err)
	}
	if s.WanderResetAfter < 0 || !vmath.IsFinite(s.WanderResetAfter) {
		return fmt.Errorf("%w: wander_reset_after must be finite and >= 0", ErrInvalidScenario)
	}
	if s.Bounds.W < 0 || s.Bounds.H < 0 {
		return fmt.Errorf("%w: bounds size must be >= 0", ErrInvalidScenario)
	}
	for i, b := range s.Boundaries {
		if (b.Rect == nil) == (len(b.Points) == 0) {
			return fmt.Errorf("%w: boundary %d needs exactly one of rect or points", ErrInvalidScenario, i)
		}
		if _, err := buildBoundary(b); err != nil {
			return fmt.Errorf("%w: boundary %d: %v", ErrInvalidScenario, i, err)
		}
	}
	for i, o := range s.Obstacles {
		if !vmath.IsFinite(o.X) || !vmath.IsFinite(o.Y) {
			return fmt.Errorf("%w: obstacle %d position must be finite", ErrInvalidScenario, i)
		}
		if !vmath.IsFinite(o.Radius) || o.Radius < 0 {
			return fmt.Errorf("%w: obstacle %d radius must be finite and >= 0", ErrInvalidScenario, i)
		}
	}
	for i, g := range s.Agents {
		if g.Count != nil && *g.Count < 0 {
			return fmt.Errorf("%w: agent group %d count must be >= 0", ErrInvalidScenario, i)
		}
		if g.Spread < 0 {
			return fmt.Errorf("%w: agent group %d spread must be >= 0", ErrInvalidScenario, i)
		}
		if err := g.Params.Validate(); err != nil {
			return fmt.Errorf("%w: agent group %q: %v", ErrInvalidScenario, g.Name, err)
		}
		for j, b := range g.Behaviors {
			if _, ok := behaviorTypes[b.Type]; !ok {
				return fmt.Errorf("%w: agent group %q behavior %d: unknown type %q", ErrInvalidScenario, g.Name, j, b.Type)
			}
			if (b.Type == "path_follow" || b.Type == "corridor_follow") && (s.Path == nil || len(s.Path.Points) < 2) {
				return fmt.Errorf("%w: agent group %q behavior %s needs a path with >= 2 points", ErrInvalidScenario, g.Name, b.Type)
			}
		}
	}
	return nil
}

func (b BehaviorConfig) weight() float64 {
	if b.Weight == nil {
		return 1
	}
	return *b.Weight
}

// count returns the number of agents to spawn, 1 when omitted
func (g AgentGroup) count() int {
	if g.Count == nil {
		return 1
	}
	return *g.Count
}

func orDefault(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}

func orDefaultPtr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}
