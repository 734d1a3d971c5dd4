package geom

import (
	"math"

	"github.com/lixenwraith/vi-steer/vmath"
)

// Rect is an axis-aligned rectangle, y grows downward (screen convention)
type Rect struct {
	X, Y float64 // Top-left corner
	W, H float64 // Dimensions
}

func NewRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

func (r Rect) Left() float64   { return r.X }
func (r Rect) Right() float64  { return r.X + r.W }
func (r Rect) Top() float64    { return r.Y }
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Center returns the midpoint of the rectangle
func (r Rect) Center() vmath.Vec2 {
	return vmath.Vec2{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Contains checks if point is within rect, edges inclusive
func (r Rect) Contains(p vmath.Vec2) bool {
	return p.X >= r.Left() && p.X <= r.Right() && p.Y >= r.Top() && p.Y <= r.Bottom()
}

// IntersectRatio returns overlap area divided by the area of r, 0 for empty r
func (r Rect) IntersectRatio(o Rect) float64 {
	area := r.W * r.H
	if area <= 0 {
		return 0
	}
	w := math.Min(r.Right(), o.Right()) - math.Max(r.Left(), o.Left())
	h := math.Min(r.Bottom(), o.Bottom()) - math.Max(r.Top(), o.Top())
	if w <= 0 || h <= 0 {
		return 0
	}
	return (w * h) / area
}

// RandomPoint returns a uniformly distributed point within rect using provided RNG
func (r Rect) RandomPoint(rng *vmath.FastRand) vmath.Vec2 {
	return vmath.Vec2{
		X: r.X + rng.Float64()*r.W,
		Y: r.Y + rng.Float64()*r.H,
	}
}
