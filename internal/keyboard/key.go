// Package keyboard defines the keyboard layout data model: keys in abstract
// layout units, the ordered layout, and the keyboard-layout-editor file
// format.
package keyboard

import (
	"kbd-designer/pkg/geometry"
)

// LabelSlots is the number of label positions a key carries: a 3x3 grid on
// the top surface plus three front-face slots.
const LabelSlots = 12

// Key is one key of a layout. All positions and sizes are in layout units
// (one unit is one standard keycap). The secondary rectangle fields describe
// the second arm of an L-shaped key as an offset from the primary rectangle;
// zero values inherit from the primary fields. Keys are owned and mutated by
// the application layer; the render engine only reads them.
type Key struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	X2      float64 `json:"x2,omitempty"`
	Y2      float64 `json:"y2,omitempty"`
	Width2  float64 `json:"width2,omitempty"`
	Height2 float64 `json:"height2,omitempty"`

	// Rotation in degrees, clockwise on screen. A nil origin means the
	// key rotates around the center of its own unrotated footprint.
	RotationAngle float64  `json:"rotation_angle,omitempty"`
	RotationX     *float64 `json:"rotation_x,omitempty"`
	RotationY     *float64 `json:"rotation_y,omitempty"`

	Color     string    `json:"color,omitempty"`
	Labels    []string  `json:"labels,omitempty"`
	TextColor []string  `json:"textColor,omitempty"`
	TextSize  []float64 `json:"textSize,omitempty"`
	Align     int       `json:"align,omitempty"`
	FontSize  float64   `json:"fontSize,omitempty"`

	Ghost   bool   `json:"ghost,omitempty"`
	Decal   bool   `json:"decal,omitempty"`
	Stepped bool   `json:"stepped,omitempty"`
	Nub     bool   `json:"nub,omitempty"`
	Profile string `json:"profile,omitempty"`
}

// NewKey creates a 1x1 key at the given position with defaults.
func NewKey(x, y float64) *Key {
	return &Key{X: x, Y: y, Width: 1, Height: 1, Align: 4, FontSize: 3}
}

// Rect returns the primary rectangle in layout units.
func (k *Key) Rect() geometry.Rect {
	return geometry.NewRect(k.X, k.Y, k.Width, k.Height)
}

// SecondRect returns the secondary rectangle in layout units with the
// defaulting rules applied: offsets default to zero, sizes inherit from the
// primary rectangle.
func (k *Key) SecondRect() geometry.Rect {
	w, h := k.Width2, k.Height2
	if w == 0 {
		w = k.Width
	}
	if h == 0 {
		h = k.Height
	}
	return geometry.NewRect(k.X+k.X2, k.Y+k.Y2, w, h)
}

// IsLShaped reports whether the key's footprint is the union of two
// rectangles rather than a single one.
func (k *Key) IsLShaped() bool {
	if k.X2 != 0 || k.Y2 != 0 {
		return true
	}
	if k.Width2 != 0 && k.Width2 != k.Width {
		return true
	}
	if k.Height2 != 0 && k.Height2 != k.Height {
		return true
	}
	return false
}

// Footprint returns the axis-aligned box covering the whole unrotated key in
// layout units.
func (k *Key) Footprint() geometry.Rect {
	r := k.Rect()
	if k.IsLShaped() {
		r = r.Union(k.SecondRect())
	}
	return r
}

// RotationOrigin returns the rotation origin in layout units. When no origin
// is set the key rotates about the center of its unrotated footprint.
func (k *Key) RotationOrigin() geometry.Point2D {
	if k.RotationX != nil && k.RotationY != nil {
		return geometry.Point2D{X: *k.RotationX, Y: *k.RotationY}
	}
	return k.Footprint().Center()
}

// SetRotationOrigin fixes the rotation origin at the given layout-unit point.
func (k *Key) SetRotationOrigin(x, y float64) {
	k.RotationX = &x
	k.RotationY = &y
}

// Clone returns a deep copy of the key.
func (k *Key) Clone() *Key {
	c := *k
	if k.RotationX != nil {
		x := *k.RotationX
		c.RotationX = &x
	}
	if k.RotationY != nil {
		y := *k.RotationY
		c.RotationY = &y
	}
	c.Labels = append([]string(nil), k.Labels...)
	c.TextColor = append([]string(nil), k.TextColor...)
	c.TextSize = append([]float64(nil), k.TextSize...)
	return &c
}

// Label returns the label in the given slot, or "" when unset.
func (k *Key) Label(slot int) string {
	if slot < 0 || slot >= len(k.Labels) {
		return ""
	}
	return k.Labels[slot]
}

// SetLabel stores a label in the given slot, growing the slice as needed.
func (k *Key) SetLabel(slot int, text string) {
	if slot < 0 || slot >= LabelSlots {
		return
	}
	for len(k.Labels) <= slot {
		k.Labels = append(k.Labels, "")
	}
	k.Labels[slot] = text
}
