package render

import "image/color"

// Surface is the 2D drawing abstraction the painter issues its output
// against. Implementations own the transform and alpha state as a stack:
// Save pushes the current state, Restore pops it. Translate, Rotate, and
// SetAlpha compose into the current state. Path verbs accumulate a path in
// user coordinates; Fill and Stroke consume it.
type Surface interface {
	Save()
	Restore()

	Translate(dx, dy float64)
	// Rotate composes a clockwise rotation of deg degrees about the
	// current origin.
	Rotate(deg float64)
	// SetAlpha multiplies the current opacity by a (0..1).
	SetAlpha(a float64)

	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	// QuadTo adds a quadratic curve through control point (cx, cy).
	QuadTo(cx, cy, x, y float64)
	ClosePath()

	Fill(c color.Color)
	Stroke(c color.Color, width float64)
}
