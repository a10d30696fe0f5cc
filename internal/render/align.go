package render

import (
	"math"

	"kbd-designer/pkg/geometry"
)

// snap returns the integer pixel boundary for an edge coordinate. Exact
// halves round down so an already aligned edge (n + 0.5) maps back to n and
// alignment is idempotent.
func snap(v float64) float64 {
	return math.Ceil(geometry.Round(v) - 0.5)
}

// AlignRect snaps a rectangle to half-pixel boundaries: the origin lands on
// a pixel center (n + 0.5) and both far edges land on the same grid, so a
// one-pixel center-aligned stroke covers exactly one pixel column with no
// anti-aliasing blur.
func AlignRect(r geometry.Rect) geometry.Rect {
	x := snap(r.X)
	y := snap(r.Y)
	return geometry.Rect{
		X:      x + 0.5,
		Y:      y + 0.5,
		Width:  snap(r.X+r.Width) - x,
		Height: snap(r.Y+r.Height) - y,
	}
}

// AlignParams pixel-aligns the outer cap rectangles and re-derives every
// other rectangle from its original offset against the outer cap. Inner
// rectangles are never snapped directly: deriving them from the aligned
// outer keeps the bevel margin visually uniform, in particular between the
// two arms of an L-shaped key, each of which aligns independently.
//
// Alignment only applies when the residual angle is a multiple of 90
// degrees. At arbitrary angles sub-pixel rendering is unavoidable, and
// snapping before rotation would misalign after it.
func AlignParams(p Params) Params {
	if !geometry.IsAxisAligned(p.Angle) {
		return p
	}

	aligned := AlignRect(p.Outer)
	p.Cap = rederive(aligned, p.Outer, p.Cap)
	p.Inner = rederive(aligned, p.Outer, p.Inner)
	p.Text = rederive(aligned, p.Outer, p.Text)
	p.Outer = aligned

	if p.LShaped {
		aligned2 := AlignRect(p.Outer2)
		p.Cap2 = rederive(aligned2, p.Outer2, p.Cap2)
		p.Inner2 = rederive(aligned2, p.Outer2, p.Inner2)
		p.Text2 = rederive(aligned2, p.Outer2, p.Text2)
		p.Outer2 = aligned2
	}
	return p
}

// rederive shifts r so its offsets against the aligned outer rectangle match
// its original offsets against the unaligned one.
func rederive(aligned, outer, r geometry.Rect) geometry.Rect {
	return geometry.Rect{
		X:      aligned.X + (r.X - outer.X),
		Y:      aligned.Y + (r.Y - outer.Y),
		Width:  aligned.Width - (outer.Width - r.Width),
		Height: aligned.Height - (outer.Height - r.Height),
	}
}
