package render

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/vector"

	"kbd-designer/pkg/geometry"
)

// quadSegments is how many line segments a quadratic curve flattens into.
// The corner quads span at most a few pixels, so eight segments keep the
// error invisible.
const quadSegments = 8

// surfaceState is one level of the save/restore stack.
type surfaceState struct {
	tf    geometry.AffineTransform
	alpha float64
}

// ImageSurface is a Surface that rasterizes into an RGBA image. Fills go
// through a scanline rasterizer; strokes become annular fills built from
// offset rings, which keeps sub-pixel coverage consistent between the two.
type ImageSurface struct {
	img   *image.RGBA
	state surfaceState
	stack []surfaceState

	// Current path: closed subpaths plus the one being built. Points are
	// already transformed into device space.
	subpaths [][]geometry.Point2D
	current  []geometry.Point2D
}

// NewImageSurface creates a surface of the given pixel size filled with the
// background color.
func NewImageSurface(w, h int, background color.Color) *ImageSurface {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	if background != nil {
		draw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)
	}
	return &ImageSurface{
		img:   img,
		state: surfaceState{tf: geometry.Identity(), alpha: 1},
	}
}

// Image returns the backing image.
func (s *ImageSurface) Image() *image.RGBA {
	return s.img
}

// Save pushes the current transform and alpha.
func (s *ImageSurface) Save() {
	s.stack = append(s.stack, s.state)
}

// Restore pops the transform and alpha pushed by the matching Save.
func (s *ImageSurface) Restore() {
	if n := len(s.stack); n > 0 {
		s.state = s.stack[n-1]
		s.stack = s.stack[:n-1]
	}
}

// Translate composes a translation into the current transform.
func (s *ImageSurface) Translate(dx, dy float64) {
	s.state.tf = s.state.tf.Compose(geometry.Translation(dx, dy))
}

// Rotate composes a clockwise rotation about the current origin.
func (s *ImageSurface) Rotate(deg float64) {
	sin, cos := geometry.SinCosDeg(deg)
	s.state.tf = s.state.tf.Compose(geometry.AffineTransform{A: cos, B: -sin, C: sin, D: cos})
}

// SetAlpha multiplies the current opacity.
func (s *ImageSurface) SetAlpha(a float64) {
	s.state.alpha *= a
}

// BeginPath discards any accumulated path.
func (s *ImageSurface) BeginPath() {
	s.subpaths = nil
	s.current = nil
}

// MoveTo starts a new subpath at the given point.
func (s *ImageSurface) MoveTo(x, y float64) {
	s.flushSubpath()
	s.current = append(s.current, s.state.tf.Apply(geometry.Point2D{X: x, Y: y}))
}

// LineTo extends the current subpath with a straight segment.
func (s *ImageSurface) LineTo(x, y float64) {
	s.current = append(s.current, s.state.tf.Apply(geometry.Point2D{X: x, Y: y}))
}

// QuadTo extends the current subpath with a flattened quadratic curve.
func (s *ImageSurface) QuadTo(cx, cy, x, y float64) {
	if len(s.current) == 0 {
		s.MoveTo(x, y)
		return
	}
	// Affine transforms commute with Bezier evaluation, so transforming
	// the control points and flattening afterwards is exact.
	p0 := s.current[len(s.current)-1]
	p1 := s.state.tf.Apply(geometry.Point2D{X: cx, Y: cy})
	p2 := s.state.tf.Apply(geometry.Point2D{X: x, Y: y})

	for i := 1; i <= quadSegments; i++ {
		t := float64(i) / quadSegments
		u := 1 - t
		s.current = append(s.current, geometry.Point2D{
			X: u*u*p0.X + 2*u*t*p1.X + t*t*p2.X,
			Y: u*u*p0.Y + 2*u*t*p1.Y + t*t*p2.Y,
		})
	}
}

// ClosePath finishes the current subpath.
func (s *ImageSurface) ClosePath() {
	s.flushSubpath()
}

func (s *ImageSurface) flushSubpath() {
	if len(s.current) >= 3 {
		s.subpaths = append(s.subpaths, s.current)
	}
	s.current = nil
}

// Fill fills the accumulated path with the given color and clears it.
func (s *ImageSurface) Fill(c color.Color) {
	s.flushSubpath()
	if len(s.subpaths) == 0 {
		return
	}
	s.rasterize(s.subpaths, c)
	s.subpaths = nil
}

// Stroke outlines the accumulated path and clears it. Each closed subpath
// becomes an annulus of the given width centered on the path line: the ring
// offset outward and the ring offset inward with opposite winding, filled
// together so the rasterizer's signed coverage leaves only the band between
// them.
func (s *ImageSurface) Stroke(c color.Color, width float64) {
	s.flushSubpath()
	if len(s.subpaths) == 0 || width <= 0 {
		return
	}

	var bands [][]geometry.Point2D
	for _, ring := range s.subpaths {
		outer := geometry.OffsetRing(ring, width/2)
		inner := geometry.OffsetRing(ring, -width/2)
		reverseRing(inner)
		bands = append(bands, outer, inner)
	}
	s.rasterize(bands, c)
	s.subpaths = nil
}

func (s *ImageSurface) rasterize(rings [][]geometry.Point2D, c color.Color) {
	b := s.img.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	z.DrawOp = draw.Over

	for _, ring := range rings {
		if len(ring) < 3 {
			continue
		}
		z.MoveTo(float32(ring[0].X), float32(ring[0].Y))
		for _, p := range ring[1:] {
			z.LineTo(float32(p.X), float32(p.Y))
		}
		z.ClosePath()
	}

	z.Draw(s.img, b, image.NewUniform(applyAlpha(c, s.state.alpha)), image.Point{})
}

func applyAlpha(c color.Color, alpha float64) color.Color {
	if alpha >= 1 {
		return c
	}
	if alpha <= 0 {
		return color.Transparent
	}
	r, g, b, a := c.RGBA()
	scale := func(v uint32) uint8 { return uint8(float64(v>>8)*alpha + 0.5) }
	return color.RGBA{R: scale(r), G: scale(g), B: scale(b), A: scale(a)}
}

func reverseRing(ring []geometry.Point2D) {
	for i, j := 0, len(ring)-1; i < j; i, j = i+1, j-1 {
		ring[i], ring[j] = ring[j], ring[i]
	}
}
