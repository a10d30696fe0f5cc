package render

import (
	"image"
	"image/color"
	"math"

	"kbd-designer/internal/keyboard"
	"kbd-designer/pkg/colorutil"
	"kbd-designer/pkg/geometry"
)

// ShadeFactor is the L* multiplier for the lightened top surface.
const ShadeFactor = 1.2

// Renderer turns a layout into raster frames: a painter for the cap shapes
// plus a label drawer for the text grid. The shade cache lives here; it must
// be cleared whenever the unit scale changes, which SetUnit does.
type Renderer struct {
	Style      Style
	Shades     *colorutil.ShadeCache
	Labels     LabelDrawer
	Background color.Color
}

// NewRenderer creates a renderer with the default label drawer and a white
// background.
func NewRenderer(style Style) *Renderer {
	return &Renderer{
		Style:      style,
		Shades:     colorutil.NewShadeCache(ShadeFactor),
		Labels:     NewBasicLabelDrawer(),
		Background: colorutil.White,
	}
}

// SetUnit changes the pixels-per-unit scale and invalidates the shade cache,
// which does not track the scale itself.
func (r *Renderer) SetUnit(unit float64) {
	r.Style.Unit = unit
	r.Shades.Clear()
}

// Render draws the whole layout into a tightly sized image.
func (r *Renderer) Render(l *keyboard.Layout, selected map[*keyboard.Key]bool) *image.RGBA {
	b := LayoutBounds(l, r.Style)
	w := int(math.Ceil(b.Width)) + 1
	h := int(math.Ceil(b.Height)) + 1
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return r.renderAt(l, w, h, -b.X, -b.Y, selected)
}

// RenderSized draws the layout into an image of the given size with the
// layout origin at the top-left pixel, which is what the canvas widget's
// raster callback wants.
func (r *Renderer) RenderSized(l *keyboard.Layout, w, h int, selected map[*keyboard.Key]bool) *image.RGBA {
	return r.renderAt(l, w, h, 0, 0, selected)
}

func (r *Renderer) renderAt(l *keyboard.Layout, w, h int, dx, dy float64, selected map[*keyboard.Key]bool) *image.RGBA {
	s := NewImageSurface(w, h, r.Background)
	p := NewPainter(r.Style, r.Shades)

	for _, k := range l.Keys {
		s.Save()
		s.Translate(dx, dy)
		p.DrawKey(s, k, selected[k])
		s.Restore()

		if r.Labels != nil {
			r.drawKeyLabels(s.Image(), k, dx, dy)
		}
	}
	return s.Image()
}

// drawKeyLabels places the label grid in the key's text rectangle. Keys at
// arbitrary angles get their labels in the rotated rectangle's bounding box;
// the bitmap face cannot rotate, and a readable label beats a missing one.
func (r *Renderer) drawKeyLabels(img *image.RGBA, k *keyboard.Key, dx, dy float64) {
	p := ComputeParams(k, r.Style, nil)

	var text geometry.Rect
	if geometry.IsAxisAligned(p.Angle) {
		text = AlignParams(RotateParams(p)).Text
	} else {
		text = geometry.OrientedRect{Rect: p.Text, Angle: p.Angle, Origin: p.Origin}.AABB()
	}

	alpha := 1.0
	if k.Ghost {
		alpha = GhostAlpha
	}
	r.Labels.DrawLabels(img, k, text.Translate(dx, dy), alpha)
}
