// Package render computes pixel-space key geometry from layout units and
// paints it: render parameters, pixel alignment, shape compositing, rotation,
// hit-testing, and bounds.
package render

// Style bundles the unit scale and the fixed spacing constants of the key
// drawing. All values are pixels except Unit, which is pixels per layout
// unit.
type Style struct {
	// Unit is the size of one layout unit in pixels. Required; there is
	// no usable default.
	Unit float64

	// KeySpacing is the gap between the raw footprint and the drawn cap.
	KeySpacing float64

	// BevelMargin is the horizontal thickness of the bevel between the
	// outer cap and the lightened top surface.
	BevelMargin float64

	// BevelOffsetTop and BevelOffsetBottom shift the top surface upward
	// within the cap, producing the thin top and thick bottom bevel of a
	// sculpted keycap.
	BevelOffsetTop    float64
	BevelOffsetBottom float64

	// Padding is the inset from the top surface to the label-safe area.
	Padding float64

	// Corner radii of the outer cap and the top surface.
	RoundOuter float64
	RoundInner float64

	// StrokeWidth is the border line width.
	StrokeWidth float64
}

// DefaultStyle returns the standard style constants at the given unit scale.
func DefaultStyle(unit float64) Style {
	return Style{
		Unit:              unit,
		KeySpacing:        0,
		BevelMargin:       6,
		BevelOffsetTop:    3,
		BevelOffsetBottom: 3,
		Padding:           3,
		RoundOuter:        5,
		RoundInner:        3,
		StrokeWidth:       1,
	}
}

// WithUnit returns a copy of the style at a different unit scale.
func (s Style) WithUnit(unit float64) Style {
	s.Unit = unit
	return s
}

// MinCapSize is the floor for every derived rectangle dimension. Degenerate
// keys clamp here instead of collapsing to zero or negative sizes.
const MinCapSize = 2.0

// GhostAlpha is the opacity ghosted keys render at.
const GhostAlpha = 0.3

// ArcSegments is the number of line segments each quarter-circle corner is
// subdivided into when a rounded rectangle becomes a polygon ring for the
// union step. Eight keeps the radial error at the default radii well under
// half a pixel.
const ArcSegments = 8
