package vmath

import (
	"math"

	"github.com/cespare/xxhash/v2"
)

// FastRand is a xorshift64 generator, one instance per consumer so streams stay independent
type FastRand struct {
	state uint64
}

func NewFastRand(seed uint64) *FastRand {
	if seed == 0 {
		seed = 1
	}
	return &FastRand{state: seed}
}

// SeedFromString derives a stable non-zero seed, used to give each named entity its own stream
func SeedFromString(s string) uint64 {
	seed := xxhash.Sum64String(s)
	if seed == 0 {
		seed = 1
	}
	return seed
}

func (r *FastRand) Next() uint64 {
	x := r.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	r.state = x
	return x
}

func (r *FastRand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() % uint64(n))
}

// Float64 returns a value in [0, 1) built from the top 53 bits
func (r *FastRand) Float64() float64 {
	return float64(r.Next()>>11) / (1 << 53)
}

// Signed returns a value in [-1, 1)
func (r *FastRand) Signed() float64 {
	return r.Float64()*2 - 1
}

// Range returns a value in [lo, hi)
func (r *FastRand) Range(lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

// Angle returns a heading in [0, 2π)
func (r *FastRand) Angle() float64 {
	return r.Float64() * 2 * math.Pi
}
