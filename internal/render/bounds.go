package render

import (
	"kbd-designer/internal/keyboard"
	"kbd-designer/pkg/geometry"
)

// KeyBounds returns the smallest axis-aligned box covering a key's drawn
// cap, including the stroke margin. Rotated keys rotate every corner (four
// per rectangle, eight for L-shaped keys) about the origin and take the
// min/max over the set. There is no single-rectangle trigonometric shortcut
// because L-shaped keys are not a single rectangle.
func KeyBounds(k *keyboard.Key, style Style) geometry.Rect {
	p := ComputeParams(k, style, nil)

	pts := make([]geometry.Point2D, 0, 8)
	c := p.Outer.Corners()
	pts = append(pts, c[:]...)
	if p.LShaped {
		c2 := p.Outer2.Corners()
		pts = append(pts, c2[:]...)
	}

	if p.Angle != 0 {
		for i, pt := range pts {
			pts[i] = geometry.RotatePoint(pt, p.Origin, p.Angle)
		}
	}

	return geometry.BoundingBox(pts).Expand(style.StrokeWidth)
}

// LayoutBounds returns the box covering every key of the layout, used for
// view fitting and full-layout export. An empty layout yields the zero rect.
func LayoutBounds(l *keyboard.Layout, style Style) geometry.Rect {
	var bounds geometry.Rect
	for i, k := range l.Keys {
		b := KeyBounds(k, style)
		if i == 0 {
			bounds = b
		} else {
			bounds = bounds.Union(b)
		}
	}
	return bounds
}
