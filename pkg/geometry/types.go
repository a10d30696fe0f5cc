// Package geometry provides the 2D primitives used throughout the application:
// points, rectangles, affine transforms, and polygon rings.
package geometry

import (
	"math"
)

// Point2D represents a 2D point with floating-point coordinates.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NewPoint2D creates a new Point2D.
func NewPoint2D(x, y float64) Point2D {
	return Point2D{X: x, Y: y}
}

// Distance returns the Euclidean distance to another point.
func (p Point2D) Distance(other Point2D) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Add returns the sum of two points.
func (p Point2D) Add(other Point2D) Point2D {
	return Point2D{X: p.X + other.X, Y: p.Y + other.Y}
}

// Sub returns the difference of two points.
func (p Point2D) Sub(other Point2D) Point2D {
	return Point2D{X: p.X - other.X, Y: p.Y - other.Y}
}

// Scale returns the point scaled by a factor.
func (p Point2D) Scale(factor float64) Point2D {
	return Point2D{X: p.X * factor, Y: p.Y * factor}
}

// Rect represents an axis-aligned rectangle with floating-point coordinates.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// NewRect creates a new Rect.
func NewRect(x, y, width, height float64) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// Contains returns true if the point is inside the rectangle.
// Points on the boundary count as inside.
func (r Rect) Contains(p Point2D) bool {
	return p.X >= r.X && p.X <= r.X+r.Width &&
		p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Point2D {
	return Point2D{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.X + r.Width
}

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Y + r.Height
}

// Corners returns the four corner points in clockwise screen order,
// starting at the top-left.
func (r Rect) Corners() [4]Point2D {
	return [4]Point2D{
		{X: r.X, Y: r.Y},
		{X: r.X + r.Width, Y: r.Y},
		{X: r.X + r.Width, Y: r.Y + r.Height},
		{X: r.X, Y: r.Y + r.Height},
	}
}

// Translate returns the rectangle shifted by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, Width: r.Width, Height: r.Height}
}

// Inset returns the rectangle shrunk by the given amount on each side.
// Negative amounts grow the rectangle.
func (r Rect) Inset(left, top, right, bottom float64) Rect {
	return Rect{
		X:      r.X + left,
		Y:      r.Y + top,
		Width:  r.Width - left - right,
		Height: r.Height - top - bottom,
	}
}

// Expand returns the rectangle grown by the given margin on all sides.
func (r Rect) Expand(margin float64) Rect {
	return r.Inset(-margin, -margin, -margin, -margin)
}

// Intersects returns true if this rectangle intersects with another.
func (r Rect) Intersects(other Rect) bool {
	return r.X < other.X+other.Width && r.X+r.Width > other.X &&
		r.Y < other.Y+other.Height && r.Y+r.Height > other.Y
}

// Union returns the smallest rectangle containing both rectangles.
func (r Rect) Union(other Rect) Rect {
	x := math.Min(r.X, other.X)
	y := math.Min(r.Y, other.Y)
	x2 := math.Max(r.X+r.Width, other.X+other.Width)
	y2 := math.Max(r.Y+r.Height, other.Y+other.Height)
	return Rect{X: x, Y: y, Width: x2 - x, Height: y2 - y}
}

// OrientedRect is a rectangle rotated by Angle degrees (clockwise on screen)
// around Origin. Angle zero makes it equivalent to the embedded Rect.
type OrientedRect struct {
	Rect   Rect
	Angle  float64
	Origin Point2D
}

// Corners returns the four rotated corner points in the same order as
// Rect.Corners.
func (o OrientedRect) Corners() [4]Point2D {
	c := o.Rect.Corners()
	for i, p := range c {
		c[i] = RotatePoint(p, o.Origin, o.Angle)
	}
	return c
}

// AABB returns the axis-aligned bounding box of the rotated rectangle.
func (o OrientedRect) AABB() Rect {
	c := o.Corners()
	return BoundingBox(c[:])
}

// AffineTransform represents a 2x3 affine transformation matrix.
// [a b tx]
// [c d ty]
type AffineTransform struct {
	A, B, TX float64
	C, D, TY float64
}

// Identity returns the identity transform.
func Identity() AffineTransform {
	return AffineTransform{A: 1, D: 1}
}

// Translation returns a translation transform.
func Translation(tx, ty float64) AffineTransform {
	return AffineTransform{A: 1, D: 1, TX: tx, TY: ty}
}

// Rotation returns a rotation transform around the origin. In screen
// coordinates (y down) a positive angle rotates clockwise.
func Rotation(radians float64) AffineTransform {
	cos := math.Cos(radians)
	sin := math.Sin(radians)
	return AffineTransform{A: cos, B: -sin, C: sin, D: cos}
}

// RotationAbout returns a rotation of deg degrees around the given point.
func RotationAbout(deg float64, origin Point2D) AffineTransform {
	sin, cos := SinCosDeg(deg)
	t := AffineTransform{A: cos, B: -sin, C: sin, D: cos}
	return Translation(origin.X, origin.Y).Compose(t).Compose(Translation(-origin.X, -origin.Y))
}

// Apply applies the transform to a point.
func (t AffineTransform) Apply(p Point2D) Point2D {
	return Point2D{
		X: t.A*p.X + t.B*p.Y + t.TX,
		Y: t.C*p.X + t.D*p.Y + t.TY,
	}
}

// Compose returns this transform composed with another (this * other).
func (t AffineTransform) Compose(other AffineTransform) AffineTransform {
	return AffineTransform{
		A:  t.A*other.A + t.B*other.C,
		B:  t.A*other.B + t.B*other.D,
		TX: t.A*other.TX + t.B*other.TY + t.TX,
		C:  t.C*other.A + t.D*other.C,
		D:  t.C*other.B + t.D*other.D,
		TY: t.C*other.TX + t.D*other.TY + t.TY,
	}
}

// Inverse returns the inverse transform, if it exists.
func (t AffineTransform) Inverse() (AffineTransform, bool) {
	det := t.A*t.D - t.B*t.C
	if math.Abs(det) < 1e-10 {
		return AffineTransform{}, false
	}

	invDet := 1.0 / det
	return AffineTransform{
		A:  t.D * invDet,
		B:  -t.B * invDet,
		TX: (t.B*t.TY - t.D*t.TX) * invDet,
		C:  -t.C * invDet,
		D:  t.A * invDet,
		TY: (t.C*t.TX - t.A*t.TY) * invDet,
	}, true
}

// BoundingBox computes the axis-aligned bounding box of a set of points.
func BoundingBox(points []Point2D) Rect {
	if len(points) == 0 {
		return Rect{}
	}
	minX, minY := points[0].X, points[0].Y
	maxX, maxY := minX, minY
	for _, p := range points[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}
