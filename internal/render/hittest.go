package render

import (
	"kbd-designer/internal/keyboard"
	"kbd-designer/pkg/geometry"
)

// HitTest returns the topmost key whose cap contains the pixel-space point,
// or nil. Later keys in the slice draw on top, so the walk runs from the
// end. Rotated keys map the query point through the exact inverse of the
// forward transform the painter applies, then test against their unrotated
// rectangles, one or two for L-shaped keys.
func HitTest(pt geometry.Point2D, keys []*keyboard.Key, style Style) *keyboard.Key {
	for i := len(keys) - 1; i >= 0; i-- {
		k := keys[i]
		p := ComputeParams(k, style, nil)

		q := pt
		if p.Angle != 0 {
			q = geometry.RotatePoint(pt, p.Origin, -p.Angle)
		}

		if p.Outer.Contains(q) {
			return k
		}
		if p.LShaped && p.Outer2.Contains(q) {
			return k
		}
	}
	return nil
}

// HitTestLayout is HitTest over a layout's key slice.
func HitTestLayout(pt geometry.Point2D, l *keyboard.Layout, style Style) *keyboard.Key {
	return HitTest(pt, l.Keys, style)
}
