package geom

import (
	"math"

	"github.com/lixenwraith/vi-steer/vmath"
)

// FindClosestSegmentIndex returns the index i of the edge points[i]→points[i+1] nearest to p
// Includes the closing edge; ties resolve to the lowest index; fewer than 2 points returns 0
func FindClosestSegmentIndex(p vmath.Vec2, path Poly) int {
	n := len(path.Points)
	if n < 2 {
		return 0
	}
	best := 0
	bestDistSq := math.Inf(1)
	for i := range n {
		e := path.Edge(i)
		closest, _ := ClosestPointOnSegment(p, e.A, e.B)
		dSq := vmath.V2LenSq(vmath.V2Sub(p, closest))
		if dSq < bestDistSq {
			bestDistSq = dSq
			best = i
		}
	}
	return best
}

// AdvanceAlongPath walks distance forward from `from` on segment segIdx, wrapping past the last point
// Returns the resulting point and the segment it lies on
// distance is reduced modulo the perimeter first so the walk visits each segment at most once;
// non-positive distance, fewer than 2 points or a zero perimeter return `from` unchanged
func AdvanceAlongPath(path Poly, segIdx int, from vmath.Vec2, distance float64) (vmath.Vec2, int) {
	n := len(path.Points)
	if n < 2 || !(distance > 0) || math.IsInf(distance, 0) {
		return from, segIdx
	}
	segIdx = ((segIdx % n) + n) % n

	perimeter := path.Perimeter()
	if perimeter == 0 {
		return from, segIdx
	}
	if distance >= perimeter {
		distance = math.Mod(distance, perimeter)
		if distance == 0 {
			return from, segIdx
		}
	}

	cur := from
	// n+1 steps: the partial first segment plus one full lap of the rest
	for range n + 1 {
		end := path.Points[(segIdx+1)%n]
		remaining := vmath.V2Dist(cur, end)
		if distance <= remaining && remaining > 0 {
			dir := vmath.V2Scale(vmath.V2Sub(end, cur), 1/remaining)
			return vmath.V2Add(cur, vmath.V2Scale(dir, distance)), segIdx
		}
		distance -= remaining
		cur = end
		segIdx = (segIdx + 1) % n
	}
	return cur, segIdx
}
