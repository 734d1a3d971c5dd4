package geom

import (
	"github.com/lixenwraith/vi-steer/vmath"
)

// ClosestPointOnSegment projects p onto a→b and clamps to the segment
// Returns the point and its parametric t in [0, 1]; degenerate segments return a, t=0
func ClosestPointOnSegment(p, a, b vmath.Vec2) (vmath.Vec2, float64) {
	ab := vmath.V2Sub(b, a)
	lenSq := vmath.V2LenSq(ab)
	if lenSq == 0 {
		return a, 0
	}
	t := vmath.V2Dot(vmath.V2Sub(p, a), ab) / lenSq
	t = vmath.Clamp(t, 0, 1)
	return vmath.V2Add(a, vmath.V2Scale(ab, t)), t
}

// LateralOffset returns signed perpendicular distance of p from the line through a→b
// normal is the left-hand unit perpendicular (V2Perp of direction), offset > 0 on the normal side
// Zero-length segment returns (0, zero vector)
func LateralOffset(p, a, b vmath.Vec2) (offset float64, normal vmath.Vec2) {
	dir := vmath.V2Normalize(vmath.V2Sub(b, a))
	if vmath.V2IsZero(dir) {
		return 0, vmath.Vec2{}
	}
	normal = vmath.V2Perp(dir)
	return vmath.V2Dot(vmath.V2Sub(p, a), normal), normal
}

// inwardNormal returns the unit normal of a→b oriented toward interior
// ok is false for zero-length edges
func inwardNormal(a, b, interior vmath.Vec2) (vmath.Vec2, bool) {
	n := vmath.V2Normalize(vmath.V2Perp(vmath.V2Sub(b, a)))
	if vmath.V2IsZero(n) {
		return vmath.Vec2{}, false
	}
	if vmath.V2Dot(vmath.V2Sub(interior, a), n) < 0 {
		n = vmath.V2Neg(n)
	}
	return n, true
}
