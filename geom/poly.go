package geom

import (
	"math"

	"github.com/lixenwraith/vi-steer/vmath"
)

// Segment is a directed edge from A to B
type Segment struct {
	A, B vmath.Vec2
}

// Len returns segment length
func (s Segment) Len() float64 {
	return vmath.V2Dist(s.A, s.B)
}

// Poly is an ordered point sequence, treated as a closed loop for edges and traversal
type Poly struct {
	Points []vmath.Vec2
}

// NewPoly copies points so later caller mutation does not alter shared paths
func NewPoly(points ...vmath.Vec2) Poly {
	cp := make([]vmath.Vec2, len(points))
	copy(cp, points)
	return Poly{Points: cp}
}

// Len returns the number of points
func (p Poly) Len() int {
	return len(p.Points)
}

// Edge returns the i-th edge, index taken modulo point count, zero segment for an empty poly
func (p Poly) Edge(i int) Segment {
	n := len(p.Points)
	if n == 0 {
		return Segment{}
	}
	i = ((i % n) + n) % n
	return Segment{A: p.Points[i], B: p.Points[(i+1)%n]}
}

// Edges returns every edge including the closing one, nil for fewer than 2 points
func (p Poly) Edges() []Segment {
	n := len(p.Points)
	if n < 2 {
		return nil
	}
	edges := make([]Segment, n)
	for i := range n {
		edges[i] = p.Edge(i)
	}
	return edges
}

// Perimeter returns the closed-loop length
func (p Poly) Perimeter() float64 {
	if len(p.Points) < 2 {
		return 0
	}
	total := 0.0
	for i := range p.Points {
		total += p.Edge(i).Len()
	}
	return total
}

// Centroid returns the vertex average, zero vector for an empty poly
func (p Poly) Centroid() vmath.Vec2 {
	if len(p.Points) == 0 {
		return vmath.Vec2{}
	}
	var sum vmath.Vec2
	for _, v := range p.Points {
		sum = vmath.V2Add(sum, v)
	}
	return vmath.V2Scale(sum, 1/float64(len(p.Points)))
}

// SignedArea returns the shoelace area, sign follows winding
func (p Poly) SignedArea() float64 {
	n := len(p.Points)
	if n < 3 {
		return 0
	}
	area := 0.0
	for i := range n {
		a, b := p.Points[i], p.Points[(i+1)%n]
		area += vmath.V2Cross(a, b)
	}
	return area / 2
}

// IsConvex reports whether the loop turns one way only and winds exactly once
// Collinear points and zero-length edges are ignored; fewer than 3 points or zero area is not convex
func (p Poly) IsConvex() bool {
	n := len(p.Points)
	if n < 3 || math.Abs(p.SignedArea()) <= vmath.Epsilon {
		return false
	}

	edges := make([]vmath.Vec2, 0, n)
	for i := range n {
		if e := vmath.V2Sub(p.Points[(i+1)%n], p.Points[i]); !vmath.V2IsZero(e) {
			edges = append(edges, e)
		}
	}

	sign := 0.0
	turning := 0.0
	for i, e1 := range edges {
		e2 := edges[(i+1)%len(edges)]
		cross := vmath.V2Cross(e1, e2)
		if math.Abs(cross) <= vmath.Epsilon {
			// Straight on is fine, doubling back is a spike
			if vmath.V2Dot(e1, e2) < 0 {
				return false
			}
			continue
		}
		if sign == 0 {
			sign = math.Copysign(1, cross)
		} else if math.Copysign(1, cross) != sign {
			return false
		}
		turning += math.Atan2(cross, vmath.V2Dot(e1, e2))
	}

	// A pentagram turns one way but winds twice
	return math.Abs(math.Abs(turning)-2*math.Pi) < 1e-6
}

// PolyFromRect returns the rect corners rotated by theta around its center
func PolyFromRect(r Rect, theta float64) Poly {
	c := r.Center()
	corners := []vmath.Vec2{
		{X: r.Left(), Y: r.Top()},
		{X: r.Right(), Y: r.Top()},
		{X: r.Right(), Y: r.Bottom()},
		{X: r.Left(), Y: r.Bottom()},
	}
	if theta != 0 {
		for i, v := range corners {
			corners[i] = vmath.V2Add(c, vmath.V2Rotate(vmath.V2Sub(v, c), theta))
		}
	}
	return Poly{Points: corners}
}

// RegularPoly returns n vertices evenly spaced on a circle, phase offsets the first vertex
func RegularPoly(center vmath.Vec2, radius float64, n int, phase float64) Poly {
	if n < 3 {
		n = 3
	}
	points := make([]vmath.Vec2, n)
	step := 2 * math.Pi / float64(n)
	for i := range n {
		points[i] = vmath.V2Add(center, vmath.V2Scale(vmath.V2FromAngle(phase+step*float64(i)), radius))
	}
	return Poly{Points: points}
}
