package vmath

import (
	"math"
)

// Vec2 is a float64 2D vector used for positions, velocities and forces
type Vec2 struct {
	X, Y float64
}

// V2 constructs a vector from components
func V2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

func V2Add(a, b Vec2) Vec2 {
	return Vec2{a.X + b.X, a.Y + b.Y}
}

func V2Sub(a, b Vec2) Vec2 {
	return Vec2{a.X - b.X, a.Y - b.Y}
}

func V2Scale(v Vec2, s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// V2Mul multiplies component-wise
func V2Mul(a, b Vec2) Vec2 {
	return Vec2{a.X * b.X, a.Y * b.Y}
}

func V2Neg(v Vec2) Vec2 {
	return Vec2{-v.X, -v.Y}
}

func V2Dot(a, b Vec2) float64 {
	return a.X*b.X + a.Y*b.Y
}

// V2Cross returns the z component of the 3D cross product
// Positive when b is counter-clockwise from a (y-up) or clockwise on screen (y-down)
func V2Cross(a, b Vec2) float64 {
	return a.X*b.Y - a.Y*b.X
}

func V2LenSq(v Vec2) float64 {
	return v.X*v.X + v.Y*v.Y
}

func V2Len(v Vec2) float64 {
	return math.Sqrt(V2LenSq(v))
}

// V2Dist returns Euclidean distance between two points
func V2Dist(a, b Vec2) float64 {
	return V2Len(V2Sub(a, b))
}

// V2IsZero reports exact zero, use V2LenSq against an epsilon for tolerance checks
func V2IsZero(v Vec2) bool {
	return v.X == 0 && v.Y == 0
}

// V2IsFinite reports whether both components are neither NaN nor Inf
func V2IsFinite(v Vec2) bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

// V2Normalize returns unit vector, zero-safe
func V2Normalize(v Vec2) Vec2 {
	mag := V2Len(v)
	if mag == 0 || math.IsNaN(mag) || math.IsInf(mag, 0) {
		return Vec2{}
	}
	inv := 1.0 / mag
	return Vec2{v.X * inv, v.Y * inv}
}

// V2NormalizeSafe returns the zero vector for inputs shorter than Epsilon instead of amplifying noise
func V2NormalizeSafe(v Vec2) Vec2 {
	if V2LenSq(v) < Epsilon*Epsilon {
		return Vec2{}
	}
	return V2Normalize(v)
}

// V2ClampLength limits vector to maxLen while preserving direction
// Returns unchanged vector if length <= maxLen, zero vector if maxLen <= 0
func V2ClampLength(v Vec2, maxLen float64) Vec2 {
	if maxLen <= 0 {
		return Vec2{}
	}
	magSq := V2LenSq(v)
	if magSq <= maxLen*maxLen {
		return v
	}
	mag := math.Sqrt(magSq)
	if mag == 0 || math.IsInf(mag, 0) || math.IsNaN(mag) {
		return Vec2{}
	}
	return V2Scale(v, maxLen/mag)
}

// V2FromAngle returns unit vector at angle radians from +X
func V2FromAngle(angle float64) Vec2 {
	return Vec2{math.Cos(angle), math.Sin(angle)}
}

// V2Angle returns heading of v in radians, 0 for the zero vector
func V2Angle(v Vec2) float64 {
	return math.Atan2(v.Y, v.X)
}

// V2Rotate rotates v by angle radians
func V2Rotate(v Vec2, angle float64) Vec2 {
	sin, cos := math.Sincos(angle)
	return Vec2{v.X*cos - v.Y*sin, v.X*sin + v.Y*cos}
}

// V2Perp returns vector rotated 90° counter-clockwise
func V2Perp(v Vec2) Vec2 {
	return Vec2{-v.Y, v.X}
}

// V2Lerp interpolates from a to b, t unclamped
func V2Lerp(a, b Vec2, t float64) Vec2 {
	return Vec2{a.X + (b.X-a.X)*t, a.Y + (b.Y-a.Y)*t}
}
