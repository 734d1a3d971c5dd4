package physics

import (
	"fmt"

	"github.com/lixenwraith/vi-steer/geom"
	"github.com/lixenwraith/vi-steer/steer"
	"github.com/lixenwraith/vi-steer/vmath"
)

// Penetration is the result of a boundary query
// SignedDistance is positive inside the boundary; Normal points toward the inside
type Penetration struct {
	SignedDistance float64
	Normal         vmath.Vec2
}

// Boundary is anything an agent can be pushed back into
type Boundary interface {
	Penetration(p vmath.Vec2) Penetration
}

// ConvexPolygonBoundary keeps agents inside a convex polygon
type ConvexPolygonBoundary struct {
	Poly geom.Poly
}

// NewConvexPolygonBoundary requires at least 3 finite points forming a convex loop with non-zero area
func NewConvexPolygonBoundary(poly geom.Poly) (*ConvexPolygonBoundary, error) {
	if poly.Len() < 3 {
		return nil, fmt.Errorf("%w: polygon boundary needs >= 3 points, got %d", steer.ErrInvalidConfig, poly.Len())
	}
	for i, p := range poly.Points {
		if !vmath.V2IsFinite(p) {
			return nil, fmt.Errorf("%w: polygon boundary point %d is not finite", steer.ErrInvalidConfig, i)
		}
	}
	if !poly.IsConvex() {
		return nil, fmt.Errorf("%w: polygon boundary must be convex with non-zero area", steer.ErrInvalidConfig)
	}
	return &ConvexPolygonBoundary{Poly: poly}, nil
}

// NewRectBoundary builds a boundary from a rect rotated by theta radians about its center
func NewRectBoundary(r geom.Rect, theta float64) (*ConvexPolygonBoundary, error) {
	if !(r.W > 0) || !(r.H > 0) {
		return nil, fmt.Errorf("%w: rect boundary needs positive size, got %vx%v", steer.ErrInvalidConfig, r.W, r.H)
	}
	return NewConvexPolygonBoundary(geom.PolyFromRect(r, theta))
}

func (b *ConvexPolygonBoundary) Penetration(p vmath.Vec2) Penetration {
	d, n := geom.CollisionSurface(b.Poly, p)
	return Penetration{SignedDistance: d, Normal: n}
}

// ResolveBoundaryWithSpringForce returns the penalty force pushing a back inside b
// depth = radius - signedDistance; no force unless depth > 0
// Damping only opposes velocity moving further into the wall, there is no restitution
func ResolveBoundaryWithSpringForce(b Boundary, a *steer.Agent, k, damping float64) vmath.Vec2 {
	if b == nil {
		return vmath.Vec2{}
	}
	pen := b.Penetration(a.Position)
	depth := a.Radius - pen.SignedDistance
	if !(depth > 0) || !vmath.V2IsFinite(pen.Normal) {
		return vmath.Vec2{}
	}

	force := vmath.V2Scale(pen.Normal, depth*k)

	vn := vmath.V2Dot(a.Velocity, pen.Normal)
	if vn < 0 {
		force = vmath.V2Add(force, vmath.V2Scale(pen.Normal, -vn*damping))
	}
	return force
}

// ResolveBoundaries sums the contact force of every boundary
func ResolveBoundaries(bounds []Boundary, a *steer.Agent, k, damping float64) vmath.Vec2 {
	var force vmath.Vec2
	for _, b := range bounds {
		force = vmath.V2Add(force, ResolveBoundaryWithSpringForce(b, a, k, damping))
	}
	return force
}
