package render

import (
	"image/color"

	"kbd-designer/internal/keyboard"
	"kbd-designer/pkg/colorutil"
	"kbd-designer/pkg/geometry"
)

// Painter draws keys onto a Surface. It holds no per-frame state; the shade
// cache is the only thing that persists between draws.
type Painter struct {
	Style  Style
	Shades *colorutil.ShadeCache
}

// NewPainter creates a painter at the given style.
func NewPainter(style Style, shades *colorutil.ShadeCache) *Painter {
	return &Painter{Style: style, Shades: shades}
}

// DrawKey paints one key. Rotation dispatches on the angle: quarter-turn
// multiples rotate the rectangle corners analytically so pixel alignment
// still applies, every other angle rotates the surface itself and draws the
// unrotated geometry inside the transformed frame, skipping alignment.
func (pt *Painter) DrawKey(s Surface, k *keyboard.Key, selected bool) {
	p := ComputeParams(k, pt.Style, pt.Shades)

	s.Save()
	defer s.Restore()
	if p.Ghost {
		s.SetAlpha(GhostAlpha)
	}

	if geometry.IsAxisAligned(p.Angle) {
		p = AlignParams(RotateParams(p))
	} else {
		s.Translate(p.Origin.X, p.Origin.Y)
		s.Rotate(p.Angle)
		s.Translate(-p.Origin.X, -p.Origin.Y)
	}

	if p.Decal {
		return // background suppressed, labels only
	}

	border := color.Color(colorutil.Black)
	if selected {
		border = colorutil.Highlight
	}

	if !p.LShaped {
		roundedRectPath(s, p.Outer, pt.Style.RoundOuter)
		s.Fill(p.Fill)
		roundedRectPath(s, p.Outer, pt.Style.RoundOuter)
		s.Stroke(border, pt.Style.StrokeWidth)

		// The top surface fills without a stroke so no seam shows
		// against the bevel.
		roundedRectPath(s, p.Inner, pt.Style.RoundInner)
		s.Fill(p.Top)
		return
	}

	pt.drawUnioned(s, p.Outer, p.Outer2, pt.Style.RoundOuter, p.Fill, border)
	pt.drawUnioned(s, p.Inner, p.Inner2, pt.Style.RoundInner, p.Top, nil)
}

// drawUnioned draws the two rectangles of an L-shaped key as one seamless
// outline: both become polygon rings and their boolean union fills (and
// optionally strokes) as a single path, so the shared edge produces no
// double stroke or fill gap. When the union cannot be stitched the two
// rounded rectangles draw independently instead; a seam may show but the
// frame survives.
func (pt *Painter) drawUnioned(s Surface, a, b geometry.Rect, radius float64, fill color.Color, border color.Color) {
	ringA := geometry.RoundedRectRing(a, radius, ArcSegments)
	ringB := geometry.RoundedRectRing(b, radius, ArcSegments)

	rings, err := geometry.UnionRings(ringA, ringB)
	if err != nil {
		roundedRectPath(s, a, radius)
		s.Fill(fill)
		roundedRectPath(s, b, radius)
		s.Fill(fill)
		if border != nil {
			roundedRectPath(s, a, radius)
			s.Stroke(border, pt.Style.StrokeWidth)
			roundedRectPath(s, b, radius)
			s.Stroke(border, pt.Style.StrokeWidth)
		}
		return
	}

	ringPath(s, rings)
	s.Fill(fill)
	if border != nil {
		ringPath(s, rings)
		s.Stroke(border, pt.Style.StrokeWidth)
	}
}

// roundedRectPath builds a rounded rectangle on the surface with quadratic
// quarter-circle corners.
func roundedRectPath(s Surface, r geometry.Rect, radius float64) {
	if m := minDim(r) / 2; radius > m {
		radius = m
	}
	if radius <= 0 {
		s.BeginPath()
		s.MoveTo(r.X, r.Y)
		s.LineTo(r.Right(), r.Y)
		s.LineTo(r.Right(), r.Bottom())
		s.LineTo(r.X, r.Bottom())
		s.ClosePath()
		return
	}

	x0, y0, x1, y1 := r.X, r.Y, r.Right(), r.Bottom()
	s.BeginPath()
	s.MoveTo(x0+radius, y0)
	s.LineTo(x1-radius, y0)
	s.QuadTo(x1, y0, x1, y0+radius)
	s.LineTo(x1, y1-radius)
	s.QuadTo(x1, y1, x1-radius, y1)
	s.LineTo(x0+radius, y1)
	s.QuadTo(x0, y1, x0, y1-radius)
	s.LineTo(x0, y0+radius)
	s.QuadTo(x0, y0, x0+radius, y0)
	s.ClosePath()
}

// ringPath replays union rings as surface subpaths.
func ringPath(s Surface, rings [][]geometry.Point2D) {
	s.BeginPath()
	for _, ring := range rings {
		if len(ring) < 3 {
			continue
		}
		s.MoveTo(ring[0].X, ring[0].Y)
		for _, p := range ring[1:] {
			s.LineTo(p.X, p.Y)
		}
		s.ClosePath()
	}
}

func minDim(r geometry.Rect) float64 {
	if r.Width < r.Height {
		return r.Width
	}
	return r.Height
}
