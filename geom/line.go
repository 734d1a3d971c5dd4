package geom

import (
	"math"

	"github.com/lixenwraith/vi-steer/vmath"
)

// SplitSegment divides s into n equal consecutive segments, n < 1 is treated as 1
func SplitSegment(s Segment, n int) []Segment {
	if n < 1 {
		n = 1
	}
	out := make([]Segment, n)
	prev := s.A
	for i := 1; i <= n; i++ {
		next := vmath.V2Lerp(s.A, s.B, float64(i)/float64(n))
		if i == n {
			next = s.B
		}
		out[i-1] = Segment{A: prev, B: next}
		prev = next
	}
	return out
}

// ShortenSegment trims amount from both ends along the segment direction
// Amounts larger than half the length cross the endpoints over; zero-length segments are returned as-is
func ShortenSegment(s Segment, amount float64) Segment {
	l := s.Len()
	if l == 0 {
		return s
	}
	t := amount / l
	d := vmath.V2Sub(s.B, s.A)
	return Segment{
		A: vmath.V2Add(s.A, vmath.V2Scale(d, t)),
		B: vmath.V2Sub(s.B, vmath.V2Scale(d, t)),
	}
}

// AdvanceSegment translates the whole segment along its own direction
// Zero-length segments move along +X
func AdvanceSegment(s Segment, distance float64) Segment {
	dir := vmath.V2Normalize(vmath.V2Sub(s.B, s.A))
	if vmath.V2IsZero(dir) {
		dir = vmath.Vec2{X: 1}
	}
	off := vmath.V2Scale(dir, distance)
	return Segment{A: vmath.V2Add(s.A, off), B: vmath.V2Add(s.B, off)}
}

// DashSegment returns the visible dashes of a dash/gap pattern laid along s
// offset shifts the pattern start; a non-positive pattern length yields the whole segment
func DashSegment(s Segment, dash, gap, offset float64) []Segment {
	total := s.Len()
	if total == 0 {
		return nil
	}
	pattern := dash + gap
	if pattern <= 0 {
		return []Segment{s}
	}
	dir := vmath.V2Scale(vmath.V2Sub(s.B, s.A), 1/total)

	var out []Segment
	for pos := -math.Mod(offset, pattern); pos < total; pos += pattern {
		start := math.Max(pos, 0)
		end := math.Min(pos+dash, total)
		if end > start {
			out = append(out, Segment{
				A: vmath.V2Add(s.A, vmath.V2Scale(dir, start)),
				B: vmath.V2Add(s.A, vmath.V2Scale(dir, end)),
			})
		}
	}
	return out
}
