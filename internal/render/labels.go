package render

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"kbd-designer/internal/keyboard"
	"kbd-designer/pkg/colorutil"
	"kbd-designer/pkg/geometry"
)

// LabelDrawer renders a key's labels into the computed text-area rectangle.
// The geometry engine only hands over the rectangle; wrapping, fonts, and
// overflow are the drawer's problem.
type LabelDrawer interface {
	DrawLabels(dst draw.Image, k *keyboard.Key, text geometry.Rect, alpha float64)
}

// BasicLabelDrawer draws the top-surface label grid with the fixed 7x13
// bitmap face. Slots 0..8 form a 3x3 grid of column (left, center, right)
// by row (top, middle, bottom); the front-face slots 9..11 have no top
// surface to land on and are skipped.
type BasicLabelDrawer struct {
	Face font.Face
}

// NewBasicLabelDrawer returns a drawer using basicfont.Face7x13.
func NewBasicLabelDrawer() *BasicLabelDrawer {
	return &BasicLabelDrawer{Face: basicfont.Face7x13}
}

// DrawLabels implements LabelDrawer.
func (d *BasicLabelDrawer) DrawLabels(dst draw.Image, k *keyboard.Key, text geometry.Rect, alpha float64) {
	face := d.Face
	if face == nil {
		face = basicfont.Face7x13
	}
	ascent := face.Metrics().Ascent.Ceil()
	lineH := face.Metrics().Height.Ceil()

	for slot := 0; slot < 9; slot++ {
		label := k.Label(slot)
		if label == "" {
			continue
		}

		col := slot % 3
		row := slot / 3
		textW := font.MeasureString(face, label).Ceil()

		x := int(text.X)
		switch col {
		case 1:
			x = int(text.X) + (int(text.Width)-textW)/2
		case 2:
			x = int(text.Right()) - textW
		}

		y := int(text.Y) + ascent
		switch row {
		case 1:
			y = int(text.Y) + (int(text.Height)-lineH)/2 + ascent
		case 2:
			y = int(text.Bottom()) - lineH + ascent
		}

		dr := &font.Drawer{
			Dst:  dst,
			Src:  image.NewUniform(labelColor(k, slot, alpha)),
			Face: face,
			Dot:  fixed.P(x, y),
		}
		dr.DrawString(label)
	}
}

// labelColor resolves the per-slot text color, falling back to the first
// slot's color and then to black.
func labelColor(k *keyboard.Key, slot int, alpha float64) color.Color {
	hex := ""
	if slot < len(k.TextColor) {
		hex = k.TextColor[slot]
	}
	if hex == "" && len(k.TextColor) > 0 {
		hex = k.TextColor[0]
	}

	c := colorutil.Black
	if hex != "" {
		if parsed, err := colorutil.ParseHex(hex); err == nil {
			c = parsed
		}
	}
	return applyAlpha(c, alpha)
}
