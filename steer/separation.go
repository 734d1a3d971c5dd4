package steer

import (
	"github.com/lixenwraith/vi-steer/vmath"
)

// Separation repels the agent from neighbors closer than DesiredSeparation
// Each neighbor contributes its away direction scaled by 1/distance; the average is turned into
// a full-speed desired velocity and steered toward
type Separation struct {
	Weight            float64
	DesiredSeparation float64

	Neighbors NeighborSource
}

func NewSeparation(neighbors NeighborSource, desiredSeparation, weight float64) *Separation {
	return &Separation{
		Weight:            weight,
		DesiredSeparation: desiredSeparation,
		Neighbors:         neighbors,
	}
}

func (s *Separation) Compute(a *Agent, _ float64) vmath.Vec2 {
	if s.Neighbors == nil {
		return vmath.Vec2{}
	}

	var sum vmath.Vec2
	count := 0
	for _, pos := range s.Neighbors.Neighbors() {
		away := vmath.V2Sub(a.Position, pos)
		d := vmath.V2Len(away)
		// d == 0 is the agent itself or a coincident neighbor with no usable direction
		if d <= vmath.Epsilon || d >= s.DesiredSeparation {
			continue
		}
		sum = vmath.V2Add(sum, vmath.V2Scale(away, 1/(d*d)))
		count++
	}
	if count == 0 {
		return vmath.Vec2{}
	}

	avg := vmath.V2Scale(sum, 1/float64(count))
	dir := vmath.V2NormalizeSafe(avg)
	if vmath.V2IsZero(dir) {
		return vmath.Vec2{}
	}
	f := vmath.V2Sub(vmath.V2Scale(dir, a.MaxSpeed), a.Velocity)
	return vmath.V2Scale(f, s.Weight)
}
