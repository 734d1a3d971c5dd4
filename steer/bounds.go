package steer

import (
	"github.com/lixenwraith/vi-steer/geom"
	"github.com/lixenwraith/vi-steer/vmath"
)

// BoundaryAvoidance pushes back along each axis independently when inside Margin of a rect edge
// Hard threshold, not a potential field
type BoundaryAvoidance struct {
	Weight   float64
	Bounds   geom.Rect
	Margin   float64
	Strength float64
}

func NewBoundaryAvoidance(weight float64, bounds geom.Rect, margin, strength float64) *BoundaryAvoidance {
	return &BoundaryAvoidance{
		Weight:   weight,
		Bounds:   bounds,
		Margin:   margin,
		Strength: strength,
	}
}

func (b *BoundaryAvoidance) Compute(a *Agent, _ float64) vmath.Vec2 {
	var f vmath.Vec2
	p := a.Position

	if p.X < b.Bounds.Left()+b.Margin {
		f.X += b.Strength
	}
	if p.X > b.Bounds.Right()-b.Margin {
		f.X -= b.Strength
	}
	if p.Y < b.Bounds.Top()+b.Margin {
		f.Y += b.Strength
	}
	if p.Y > b.Bounds.Bottom()-b.Margin {
		f.Y -= b.Strength
	}

	return vmath.V2Scale(f, b.Weight)
}
