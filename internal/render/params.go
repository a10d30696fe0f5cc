package render

import (
	"image/color"

	"kbd-designer/internal/keyboard"
	"kbd-designer/pkg/colorutil"
	"kbd-designer/pkg/geometry"
)

// Params holds every pixel-space quantity needed to draw one key: the nested
// rectangle chain (raw cap footprint, bordered outer cap, lightened inner
// surface, label-safe text area), duplicated for the second arm of an
// L-shaped key, plus the rotation and fill colors. Params are recomputed
// from the Key on every draw; only the color shades are memoized.
type Params struct {
	Cap   geometry.Rect
	Outer geometry.Rect
	Inner geometry.Rect
	Text  geometry.Rect

	Cap2   geometry.Rect
	Outer2 geometry.Rect
	Inner2 geometry.Rect
	Text2  geometry.Rect

	LShaped bool

	// Rotation in degrees about Origin, which is in pixels.
	Angle  float64
	Origin geometry.Point2D

	Fill color.RGBA
	Top  color.RGBA

	Ghost bool
	Decal bool
}

// ComputeParams derives the render parameters for a key at the given style.
// A nil shade cache skips color resolution, which hit-testing and bounds
// computation use to stay pure geometry.
func ComputeParams(k *keyboard.Key, style Style, shades *colorutil.ShadeCache) Params {
	p := Params{
		LShaped: k.IsLShaped(),
		Angle:   k.RotationAngle,
		Ghost:   k.Ghost,
		Decal:   k.Decal,
	}

	origin := k.RotationOrigin()
	p.Origin = geometry.Point2D{
		X: geometry.Mul(origin.X, style.Unit),
		Y: geometry.Mul(origin.Y, style.Unit),
	}

	p.Cap, p.Outer, p.Inner, p.Text = capChain(k.Rect(), style)
	if p.LShaped {
		p.Cap2, p.Outer2, p.Inner2, p.Text2 = capChain(k.SecondRect(), style)
	}

	if shades != nil {
		p.Fill = shades.Base(k.Color)
		p.Top = shades.Shade(k.Color)
	}
	return p
}

// capChain runs the inset chain for one rectangle of a key: unit scaling,
// key spacing, bevel margin with the vertical bevel offsets, text padding.
func capChain(r geometry.Rect, style Style) (cap, outer, inner, text geometry.Rect) {
	cap = scaleRect(r, style.Unit)
	outer = insetClamped(cap,
		style.KeySpacing, style.KeySpacing, style.KeySpacing, style.KeySpacing)
	inner = insetClamped(outer,
		style.BevelMargin,
		style.BevelMargin-style.BevelOffsetTop,
		style.BevelMargin,
		style.BevelMargin+style.BevelOffsetBottom)
	text = insetClamped(inner,
		style.Padding, style.Padding, style.Padding, style.Padding)
	return cap, outer, inner, text
}

// scaleRect converts a layout-unit rectangle to pixels with decimal
// arithmetic, flooring degenerate sizes.
func scaleRect(r geometry.Rect, unit float64) geometry.Rect {
	w := geometry.Mul(r.Width, unit)
	h := geometry.Mul(r.Height, unit)
	if w < MinCapSize {
		w = MinCapSize
	}
	if h < MinCapSize {
		h = MinCapSize
	}
	return geometry.Rect{
		X:      geometry.Mul(r.X, unit),
		Y:      geometry.Mul(r.Y, unit),
		Width:  w,
		Height: h,
	}
}

// insetClamped shrinks r by the given per-side insets. When a span would
// fall below the size floor the insets scale back proportionally, so the
// result keeps its nominal placement inside r even at floored sizes.
func insetClamped(r geometry.Rect, left, top, right, bottom float64) geometry.Rect {
	x, w := insetSpan(r.X, r.Width, left, right)
	y, h := insetSpan(r.Y, r.Height, top, bottom)
	return geometry.Rect{X: x, Y: y, Width: w, Height: h}
}

func insetSpan(pos, size, lo, hi float64) (float64, float64) {
	total := lo + hi
	if out := size - total; out >= MinCapSize || total <= 0 {
		return pos + lo, out
	}
	avail := size - MinCapSize
	if avail < 0 {
		avail = 0
	}
	scale := avail / total
	return pos + lo*scale, size - total*scale
}

// RotateParams bakes an axis-aligned rotation into the rectangles: every
// rectangle's corners rotate about the origin and the new axis-aligned box
// replaces it (width and height swap at quarter turns). The returned params
// carry no residual angle and go through pixel alignment as usual.
func RotateParams(p Params) Params {
	if p.Angle == 0 {
		return p
	}
	rot := func(r geometry.Rect) geometry.Rect {
		return geometry.OrientedRect{Rect: r, Angle: p.Angle, Origin: p.Origin}.AABB()
	}
	p.Cap = rot(p.Cap)
	p.Outer = rot(p.Outer)
	p.Inner = rot(p.Inner)
	p.Text = rot(p.Text)
	if p.LShaped {
		p.Cap2 = rot(p.Cap2)
		p.Outer2 = rot(p.Outer2)
		p.Inner2 = rot(p.Inner2)
		p.Text2 = rot(p.Text2)
	}
	p.Angle = 0
	return p
}
