package steer

import (
	"fmt"
	"math"

	"github.com/lixenwraith/vi-steer/geom"
	"github.com/lixenwraith/vi-steer/parameter"
	"github.com/lixenwraith/vi-steer/vmath"
)

// PathFollow seeks a carrot point LookAhead units past the agent's projection onto the path
// The nearest segment is recomputed every tick, the path is traversed as a closed loop
type PathFollow struct {
	Weight      float64
	SpeedFactor float64
	LookAhead   float64

	Path geom.Poly

	segmentIndex int
	carrot       vmath.Vec2
}

// NewPathFollow requires at least 2 path points
func NewPathFollow(weight, speedFactor float64, path geom.Poly, lookAhead float64) (*PathFollow, error) {
	if path.Len() < 2 {
		return nil, fmt.Errorf("%w: path follow needs >= 2 points, got %d", ErrInvalidConfig, path.Len())
	}
	if !vmath.IsFinite(lookAhead) || lookAhead < 0 {
		return nil, fmt.Errorf("%w: path look-ahead must be finite and >= 0, got %v", ErrInvalidConfig, lookAhead)
	}
	return &PathFollow{
		Weight:      weight,
		SpeedFactor: speedFactor,
		LookAhead:   lookAhead,
		Path:        path,
	}, nil
}

func (p *PathFollow) Compute(a *Agent, _ float64) vmath.Vec2 {
	if p.Path.Len() < 2 {
		return vmath.Vec2{}
	}

	p.segmentIndex = geom.FindClosestSegmentIndex(a.Position, p.Path)
	seg := p.Path.Edge(p.segmentIndex)
	closest, _ := geom.ClosestPointOnSegment(a.Position, seg.A, seg.B)

	p.carrot, _ = geom.AdvanceAlongPath(p.Path, p.segmentIndex, closest, p.LookAhead)

	f := seekVelocity(a, p.carrot, a.MaxSpeed*p.SpeedFactor, parameter.PathCarrotEpsilon)
	return vmath.V2Scale(f, p.Weight)
}

// Reset forgets the last carrot; the hint is ignored since the path fixes the direction
func (p *PathFollow) Reset(vmath.Vec2) {
	p.segmentIndex = 0
	p.carrot = vmath.Vec2{}
}

// SegmentIndex returns the segment chosen on the last tick
func (p *PathFollow) SegmentIndex() int { return p.segmentIndex }

// Carrot returns the point sought on the last tick
func (p *PathFollow) Carrot() vmath.Vec2 { return p.carrot }

// CorridorFollow keeps the agent within CorridorRadius of the current segment's centerline
// No force is applied inside the corridor; outside, a linear restoring force acts along the segment normal
// The segment index only moves forward, once the agent's projection passes the segment end
type CorridorFollow struct {
	Weight         float64
	CorridorRadius float64
	Stiffness      float64

	Path geom.Poly

	segmentIndex int
}

// NewCorridorFollow requires at least 2 path points and a non-negative radius
func NewCorridorFollow(weight float64, path geom.Poly, corridorRadius, stiffness float64) (*CorridorFollow, error) {
	if path.Len() < 2 {
		return nil, fmt.Errorf("%w: corridor follow needs >= 2 points, got %d", ErrInvalidConfig, path.Len())
	}
	if !vmath.IsFinite(corridorRadius) || corridorRadius < 0 {
		return nil, fmt.Errorf("%w: corridor radius must be finite and >= 0, got %v", ErrInvalidConfig, corridorRadius)
	}
	return &CorridorFollow{
		Weight:         weight,
		CorridorRadius: corridorRadius,
		Stiffness:      stiffness,
		Path:           path,
	}, nil
}

func (c *CorridorFollow) Compute(a *Agent, _ float64) vmath.Vec2 {
	n := c.Path.Len()
	if n < 2 {
		return vmath.Vec2{}
	}
	c.segmentIndex = ((c.segmentIndex % n) + n) % n

	seg := c.Path.Edge(c.segmentIndex)
	dir := vmath.V2Sub(seg.B, seg.A)

	// Zero-length segments carry no direction, skip past them
	if vmath.V2LenSq(dir) == 0 || vmath.V2Dot(vmath.V2Sub(a.Position, seg.B), dir) > 0 {
		c.segmentIndex = (c.segmentIndex + 1) % n
		seg = c.Path.Edge(c.segmentIndex)
	}

	offset, normal := geom.LateralOffset(a.Position, seg.A, seg.B)
	if vmath.V2IsZero(normal) {
		return vmath.Vec2{}
	}

	excess := math.Abs(offset) - c.CorridorRadius
	if excess <= 0 {
		return vmath.Vec2{}
	}

	// Push back toward the centerline: against the side the agent drifted to
	sign := -1.0
	if offset < 0 {
		sign = 1.0
	}
	return vmath.V2Scale(normal, excess*sign*c.Stiffness*c.Weight)
}

// Reset restarts corridor traversal from the first segment
func (c *CorridorFollow) Reset(vmath.Vec2) {
	c.segmentIndex = 0
}

// SegmentIndex returns the segment currently tracked
func (c *CorridorFollow) SegmentIndex() int { return c.segmentIndex }
