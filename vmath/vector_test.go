package vmath

import (
	"math"
	"testing"
)

const tol = 1e-9

func vecNear(a, b Vec2, eps float64) bool {
	return math.Abs(a.X-b.X) <= eps && math.Abs(a.Y-b.Y) <= eps
}

func TestV2NormalizeZero(t *testing.T) {
	tests := []struct {
		name string
		fn   func(Vec2) Vec2
	}{
		{"Normalize", V2Normalize},
		{"NormalizeSafe", V2NormalizeSafe},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.fn(Vec2{})
			if got != (Vec2{}) {
				t.Errorf("Expected zero vector, got %v", got)
			}
			if !V2IsFinite(got) {
				t.Errorf("Expected finite result, got %v", got)
			}
		})
	}
}

func TestV2NormalizeSafeTiny(t *testing.T) {
	got := V2NormalizeSafe(Vec2{1e-12, -1e-12})
	if got != (Vec2{}) {
		t.Errorf("Expected zero vector for sub-epsilon input, got %v", got)
	}
}

func TestV2Normalize(t *testing.T) {
	tests := []struct {
		name string
		in   Vec2
		want Vec2
	}{
		{"+X", Vec2{5, 0}, Vec2{1, 0}},
		{"-Y", Vec2{0, -3}, Vec2{0, -1}},
		{"3-4-5", Vec2{3, 4}, Vec2{0.6, 0.8}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := V2Normalize(tt.in)
			if !vecNear(got, tt.want, tol) {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestV2ClampLength(t *testing.T) {
	tests := []struct {
		name string
		in   Vec2
		max  float64
		want Vec2
	}{
		{"Under limit unchanged", Vec2{3, 4}, 10, Vec2{3, 4}},
		{"Exactly at limit", Vec2{3, 4}, 5, Vec2{3, 4}},
		{"Over limit scaled", Vec2{30, 40}, 5, Vec2{3, 4}},
		{"Zero vector", Vec2{}, 5, Vec2{}},
		{"Zero limit", Vec2{1, 1}, 0, Vec2{}},
		{"Negative limit", Vec2{1, 1}, -1, Vec2{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := V2ClampLength(tt.in, tt.max)
			if !vecNear(got, tt.want, tol) {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestV2ClampLengthPreservesDirection(t *testing.T) {
	in := Vec2{-7, 2}
	got := V2ClampLength(in, 1)
	if math.Abs(V2Len(got)-1) > tol {
		t.Errorf("Expected length 1, got %f", V2Len(got))
	}
	if V2Cross(in, got) > tol || V2Dot(in, got) <= 0 {
		t.Errorf("Expected direction preserved, got %v from %v", got, in)
	}
}

func TestV2RotatePerp(t *testing.T) {
	v := Vec2{1, 0}
	got := V2Rotate(v, math.Pi/2)
	if !vecNear(got, V2Perp(v), tol) {
		t.Errorf("Expected rotate(π/2) == perp, got %v vs %v", got, V2Perp(v))
	}
}

func TestV2FromAngleRoundTrip(t *testing.T) {
	for _, a := range []float64{0, 0.5, -1.2, math.Pi / 2, 3} {
		got := V2Angle(V2FromAngle(a))
		if math.Abs(WrapAngle(got-a)) > tol {
			t.Errorf("Expected angle %f, got %f", a, got)
		}
	}
}

func TestV2IsFinite(t *testing.T) {
	if V2IsFinite(Vec2{math.NaN(), 0}) {
		t.Error("Expected NaN component to be non-finite")
	}
	if V2IsFinite(Vec2{0, math.Inf(-1)}) {
		t.Error("Expected Inf component to be non-finite")
	}
	if !V2IsFinite(Vec2{1, 2}) {
		t.Error("Expected finite vector")
	}
}
