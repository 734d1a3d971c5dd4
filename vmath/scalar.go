package vmath

import (
	"math"
)

// Epsilon is the length below which a vector is treated as having no direction
const Epsilon = 1e-9

// Clamp limits x to [lo, hi]
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// WrapAngle normalizes an angle into (-π, π]
func WrapAngle(a float64) float64 {
	if math.IsNaN(a) || math.IsInf(a, 0) {
		return 0
	}
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a <= 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}

func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// ApproxEqual reports |a-b| <= tol
func ApproxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

// IsFinite reports whether x is neither NaN nor Inf
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
