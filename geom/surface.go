package geom

import (
	"math"

	"github.com/lixenwraith/vi-steer/vmath"
)

// FarInside is the signed distance reported for polygons with no usable edge
// Large and positive so a degenerate boundary never produces contact force
const FarInside = math.MaxFloat64

// PointInPolygon is an even-odd crossing test, fewer than 3 points never contain anything
func PointInPolygon(poly Poly, p vmath.Vec2) bool {
	pts := poly.Points
	n := len(pts)
	if n < 3 {
		return false
	}
	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := pts[i], pts[j]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			xCross := a.X + (p.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
			if p.X < xCross {
				inside = !inside
			}
		}
	}
	return inside
}

// CollisionSurface returns signed distance from p to the polygon boundary and the nearest edge normal
// Distance is positive inside, negative outside; normal points toward the interior
// Points exactly on an edge report distance 0 with that edge's normal
// Polygons with fewer than 3 points or only zero-length edges return (FarInside, +X)
func CollisionSurface(poly Poly, p vmath.Vec2) (signedDistance float64, normal vmath.Vec2) {
	if len(poly.Points) < 3 {
		return FarInside, vmath.Vec2{X: 1}
	}

	centroid := poly.Centroid()
	bestDistSq := math.Inf(1)
	found := false

	for i := range poly.Points {
		e := poly.Edge(i)
		n, ok := inwardNormal(e.A, e.B, centroid)
		if !ok {
			continue
		}
		closest, _ := ClosestPointOnSegment(p, e.A, e.B)
		dSq := vmath.V2LenSq(vmath.V2Sub(p, closest))
		// Strict less keeps the lowest edge index on ties
		if dSq < bestDistSq {
			bestDistSq = dSq
			normal = n
			found = true
		}
	}

	if !found {
		return FarInside, vmath.Vec2{X: 1}
	}

	dist := math.Sqrt(bestDistSq)
	if !PointInPolygon(poly, p) {
		dist = -dist
	}
	return dist, normal
}
