package main

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/vi-steer/geom"
	"github.com/lixenwraith/vi-steer/physics"
	"github.com/lixenwraith/vi-steer/scenario"
	"github.com/lixenwraith/vi-steer/vmath"
)

const (
	statusRows = 1
	dashLength = 6.0
	dashGap    = 4.0
)

var (
	styleBoundary = tcell.StyleDefault.Foreground(tcell.ColorGray)
	stylePath     = tcell.StyleDefault.Foreground(tcell.ColorDarkCyan)
	styleObstacle = tcell.StyleDefault.Foreground(tcell.ColorOlive)
	styleAgent    = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleContact  = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleCursor   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Reverse(true)
	styleStatus   = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver)
)

// headingGlyphs are indexed by octant, counter-clockwise from +X with screen Y pointing down
var headingGlyphs = [8]rune{'→', '↘', '↓', '↙', '←', '↖', '↑', '↗'}

// viewport maps world units onto the cell grid, axes scaled independently
type viewport struct {
	origin vmath.Vec2
	scale  vmath.Vec2 // cells per world unit
	cols   int
	rows   int
}

func newViewport(world geom.Rect, cols, rows int) viewport {
	rows -= statusRows
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	w, h := world.W, world.H
	if !(w > 0) {
		w = 1
	}
	if !(h > 0) {
		h = 1
	}
	return viewport{
		origin: vmath.V2(world.X, world.Y),
		scale:  vmath.V2(float64(cols)/w, float64(rows)/h),
		cols:   cols,
		rows:   rows,
	}
}

func (v viewport) toCell(p vmath.Vec2) (int, int) {
	c := vmath.V2Mul(vmath.V2Sub(p, v.origin), v.scale)
	return int(math.Floor(c.X)), int(math.Floor(c.Y))
}

// toWorld returns the world point at the center of a cell
func (v viewport) toWorld(x, y int) vmath.Vec2 {
	return vmath.V2(
		v.origin.X+(float64(x)+0.5)/v.scale.X,
		v.origin.Y+(float64(y)+0.5)/v.scale.Y,
	)
}

func (v viewport) inside(x, y int) bool {
	return x >= 0 && x < v.cols && y >= 0 && y < v.rows
}

// cellStep is the world distance covering at most half a cell along either axis
func (v viewport) cellStep() float64 {
	return 0.5 / math.Max(v.scale.X, v.scale.Y)
}

func headingGlyph(rotation float64) rune {
	a := math.Mod(rotation, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	octant := int(math.Floor(a/(math.Pi/4)+0.5)) % 8
	return headingGlyphs[octant]
}

// worldExtent picks the drawn region: explicit bounds, else everything the scenario places
func worldExtent(w *scenario.World) geom.Rect {
	if w.Bounds.W > 0 && w.Bounds.H > 0 {
		return w.Bounds
	}
	minP := vmath.V2(math.Inf(1), math.Inf(1))
	maxP := vmath.V2(math.Inf(-1), math.Inf(-1))
	grow := func(p vmath.Vec2) {
		minP = vmath.V2(math.Min(minP.X, p.X), math.Min(minP.Y, p.Y))
		maxP = vmath.V2(math.Max(maxP.X, p.X), math.Max(maxP.Y, p.Y))
	}
	for _, b := range w.Boundaries {
		if cb, ok := b.(*physics.ConvexPolygonBoundary); ok {
			for _, p := range cb.Poly.Points {
				grow(p)
			}
		}
	}
	for _, p := range w.Path.Points {
		grow(p)
	}
	for _, e := range w.Entities {
		grow(e.Agent.Position)
	}
	if math.IsInf(minP.X, 0) {
		return geom.NewRect(0, 0, 100, 100)
	}
	const pad = 10
	return geom.NewRect(minP.X-pad, minP.Y-pad, maxP.X-minP.X+2*pad, maxP.Y-minP.Y+2*pad)
}

func (s *Sandbox) draw() {
	s.screen.Clear()
	v := s.view

	for _, b := range s.world.Boundaries {
		if cb, ok := b.(*physics.ConvexPolygonBoundary); ok {
			s.drawDashedPoly(cb.Poly, '·', styleBoundary)
		}
	}
	if s.world.Path.Len() >= 2 {
		s.drawDashedPoly(s.world.Path, '∙', stylePath)
	}

	for _, o := range s.world.Obstacles() {
		s.drawCircle(o.Position, o.Radius, 'o', styleObstacle)
	}

	if p, ok := s.world.Target(); ok {
		if x, y := v.toCell(p); v.inside(x, y) {
			s.screen.SetContent(x, y, '+', nil, styleCursor)
		}
	}

	for _, e := range s.world.Entities {
		x, y := v.toCell(e.Agent.Position)
		if !v.inside(x, y) {
			continue
		}
		style := styleAgent
		if e.InContact() {
			style = styleContact
		}
		s.screen.SetContent(x, y, headingGlyph(e.Agent.Rotation), nil, style)
	}

	s.drawStatus()
	s.screen.Show()
}

func (s *Sandbox) drawDashedPoly(poly geom.Poly, r rune, style tcell.Style) {
	// Dash pattern continues across corners
	offset := 0.0
	for _, edge := range poly.Edges() {
		for _, dash := range geom.DashSegment(edge, dashLength, dashGap, offset) {
			s.plotSegment(dash, r, style)
		}
		offset = math.Mod(offset+edge.Len(), dashLength+dashGap)
	}
}

func (s *Sandbox) plotSegment(seg geom.Segment, r rune, style tcell.Style) {
	step := s.view.cellStep()
	n := int(math.Ceil(seg.Len()/step)) + 1
	for i := 0; i <= n; i++ {
		p := vmath.V2Lerp(seg.A, seg.B, float64(i)/float64(n))
		if x, y := s.view.toCell(p); s.view.inside(x, y) {
			s.screen.SetContent(x, y, r, nil, style)
		}
	}
}

func (s *Sandbox) drawCircle(center vmath.Vec2, radius float64, r rune, style tcell.Style) {
	if radius <= 0 {
		if x, y := s.view.toCell(center); s.view.inside(x, y) {
			s.screen.SetContent(x, y, r, nil, style)
		}
		return
	}
	poly := geom.RegularPoly(center, radius, 24, 0)
	for _, edge := range poly.Edges() {
		s.plotSegment(edge, r, style)
	}
}

func (s *Sandbox) drawStatus() {
	state := "running"
	if s.paused {
		state = "paused"
	}
	sound := "off"
	if s.audioInit {
		sound = "on"
	}
	status := []rune(formatStatus(s.world, state, sound))
	y := s.height - 1
	for x := 0; x < s.width; x++ {
		r := ' '
		if x < len(status) {
			r = status[x]
		}
		s.screen.SetContent(x, y, r, nil, styleStatus)
	}
}
