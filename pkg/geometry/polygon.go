package geometry

import (
	"fmt"
	"math"
	"sort"
)

// RingEps is the tolerance for matching ring vertices and classifying points
// as lying on a ring boundary. Ring coordinates are pixels, so this is far
// below anything visible.
const RingEps = 1e-7

// RoundedRectRing approximates the outline of a rectangle with rounded
// corners as a closed ring in clockwise screen order. Each quarter-circle
// corner becomes arcSegments line segments. A radius of zero or less yields
// the plain four-corner rectangle. The radius is clamped to half the shorter
// side.
func RoundedRectRing(r Rect, radius float64, arcSegments int) []Point2D {
	if radius <= 0 {
		c := r.Corners()
		return c[:]
	}
	if m := math.Min(r.Width, r.Height) / 2; radius > m {
		radius = m
	}
	if arcSegments < 1 {
		arcSegments = 1
	}

	x0, y0 := r.X, r.Y
	x1, y1 := r.X+r.Width, r.Y+r.Height

	ring := make([]Point2D, 0, 4*(arcSegments+1))
	ring = append(ring, Point2D{X: x0 + radius, Y: y0})
	ring = append(ring, Point2D{X: x1 - radius, Y: y0})
	ring = appendArc(ring, Point2D{X: x1 - radius, Y: y0 + radius}, radius, 270, arcSegments)
	ring = append(ring, Point2D{X: x1, Y: y1 - radius})
	ring = appendArc(ring, Point2D{X: x1 - radius, Y: y1 - radius}, radius, 0, arcSegments)
	ring = append(ring, Point2D{X: x0 + radius, Y: y1})
	ring = appendArc(ring, Point2D{X: x0 + radius, Y: y1 - radius}, radius, 90, arcSegments)
	ring = append(ring, Point2D{X: x0, Y: y0 + radius})
	ring = appendArc(ring, Point2D{X: x0 + radius, Y: y0 + radius}, radius, 180, arcSegments)
	return dedupeRing(ring)
}

// appendArc appends the points of a quarter arc around center, sweeping 90
// degrees clockwise (screen coordinates) from startDeg. The arc's first point
// is assumed to be the current last ring point and is skipped.
func appendArc(ring []Point2D, center Point2D, radius, startDeg float64, segments int) []Point2D {
	for i := 1; i <= segments; i++ {
		deg := startDeg + 90*float64(i)/float64(segments)
		rad := deg * math.Pi / 180
		ring = append(ring, Point2D{
			X: Round(center.X + radius*math.Cos(rad)),
			Y: Round(center.Y + radius*math.Sin(rad)),
		})
	}
	return ring
}

// dedupeRing removes consecutive duplicate vertices, including a duplicate
// closing vertex.
func dedupeRing(ring []Point2D) []Point2D {
	out := ring[:0]
	for _, p := range ring {
		if len(out) > 0 && p.Distance(out[len(out)-1]) < RingEps {
			continue
		}
		out = append(out, p)
	}
	for len(out) > 1 && out[0].Distance(out[len(out)-1]) < RingEps {
		out = out[:len(out)-1]
	}
	return out
}

// RingArea returns the signed area of a closed ring. The sign is positive
// for clockwise screen order (y axis pointing down).
func RingArea(ring []Point2D) float64 {
	n := len(ring)
	if n < 3 {
		return 0
	}
	var sum float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += ring[i].X*ring[j].Y - ring[j].X*ring[i].Y
	}
	return sum / 2
}

// PointInPolygon tests if a point is inside a closed ring using ray casting.
// Boundary points may land on either side; use PointOnRing first when the
// distinction matters.
func PointInPolygon(p Point2D, polygon []Point2D) bool {
	if len(polygon) < 3 {
		return false
	}

	inside := false
	n := len(polygon)

	for i := 0; i < n; i++ {
		j := (i + 1) % n
		pi, pj := polygon[i], polygon[j]

		if ((pi.Y > p.Y) != (pj.Y > p.Y)) &&
			(p.X < (pj.X-pi.X)*(p.Y-pi.Y)/(pj.Y-pi.Y)+pi.X) {
			inside = !inside
		}
	}

	return inside
}

// PointOnRing reports whether p lies within eps of the ring's boundary.
func PointOnRing(p Point2D, ring []Point2D, eps float64) bool {
	n := len(ring)
	if n < 2 {
		return false
	}
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		if pointSegDistSq(p, ring[i], ring[j]) <= eps*eps {
			return true
		}
	}
	return false
}

func pointSegDistSq(p, a, b Point2D) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		px, py := p.X-a.X, p.Y-a.Y
		return px*px + py*py
	}
	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	cx, cy := a.X+t*dx-p.X, a.Y+t*dy-p.Y
	return cx*cx + cy*cy
}

// OffsetRing returns the ring displaced outward by delta (inward for
// negative delta) using mitered joins. The ring's winding is detected from
// its signed area, so either orientation offsets in the expected direction.
func OffsetRing(ring []Point2D, delta float64) []Point2D {
	ring = dedupeRing(append([]Point2D(nil), ring...))
	n := len(ring)
	if n < 3 || delta == 0 {
		return ring
	}
	if RingArea(ring) < 0 {
		delta = -delta
	}

	out := make([]Point2D, 0, n)
	for i := 0; i < n; i++ {
		p0 := ring[(i+n-1)%n]
		p1 := ring[i]
		p2 := ring[(i+1)%n]

		n0x, n0y := edgeNormal(p0, p1)
		n1x, n1y := edgeNormal(p1, p2)

		denom := 1 + n0x*n1x + n0y*n1y
		if math.Abs(denom) < RingEps {
			// Edges double back on themselves; fall back to a plain offset.
			out = append(out, Point2D{X: p1.X + delta*n0x, Y: p1.Y + delta*n0y})
			continue
		}
		mx := (n0x + n1x) / denom
		my := (n0y + n1y) / denom
		out = append(out, Point2D{X: p1.X + delta*mx, Y: p1.Y + delta*my})
	}
	return out
}

// edgeNormal returns the unit normal pointing outward for a clockwise
// screen-order ring.
func edgeNormal(a, b Point2D) (nx, ny float64) {
	dx, dy := b.X-a.X, b.Y-a.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		return 0, 0
	}
	return dy / length, -dx / length
}

// fragment is a directed piece of a ring edge produced by splitting at
// crossings with another ring.
type fragment struct {
	a, b Point2D
}

func (f fragment) mid() Point2D {
	return Point2D{X: (f.a.X + f.b.X) / 2, Y: (f.a.Y + f.b.Y) / 2}
}

// UnionRings merges two closed rings into the rings bounding their union.
// Overlapping inputs produce a single merged ring, disjoint inputs come back
// as two independent rings, and identical inputs collapse to one. Both
// inputs must share the same winding. An error means the fragments could not
// be stitched into closed rings; callers are expected to fall back to
// treating the inputs separately.
func UnionRings(a, b []Point2D) ([][]Point2D, error) {
	if len(a) < 3 || len(b) < 3 {
		return nil, fmt.Errorf("union needs two closed rings, got %d and %d points", len(a), len(b))
	}

	var kept []fragment
	for _, f := range splitRingEdges(a, b) {
		mid := f.mid()
		// Shared boundary pieces survive through the first ring only, so a
		// coincident edge is emitted once.
		if PointOnRing(mid, b, RingEps) || !PointInPolygon(mid, b) {
			kept = append(kept, f)
		}
	}
	for _, f := range splitRingEdges(b, a) {
		mid := f.mid()
		if PointOnRing(mid, a, RingEps) {
			continue
		}
		if !PointInPolygon(mid, a) {
			kept = append(kept, f)
		}
	}

	return stitchFragments(kept)
}

// splitRingEdges cuts every edge of subject at its crossings with other,
// including the endpoints of collinear overlaps, and returns the resulting
// directed fragments in ring order.
func splitRingEdges(subject, other []Point2D) []fragment {
	n := len(subject)
	m := len(other)
	frags := make([]fragment, 0, n)

	for i := 0; i < n; i++ {
		p1 := subject[i]
		p2 := subject[(i+1)%n]
		if p1.Distance(p2) < RingEps {
			continue
		}

		ts := []float64{0, 1}
		for j := 0; j < m; j++ {
			q1 := other[j]
			q2 := other[(j+1)%m]
			if t, u, parallel := segIntersect(p1, p2, q1, q2); !parallel {
				if t > 0 && t < 1 && u >= 0 && u <= 1 {
					ts = append(ts, t)
				}
			} else {
				ts = appendCollinearSplits(ts, p1, p2, q1, q2)
			}
		}

		sort.Float64s(ts)
		prev := ts[0]
		for _, t := range ts[1:] {
			if t-prev < 1e-12 {
				continue
			}
			f := fragment{a: lerpPoint(p1, p2, prev), b: lerpPoint(p1, p2, t)}
			if f.a.Distance(f.b) >= RingEps {
				frags = append(frags, f)
			}
			prev = t
		}
	}
	return frags
}

// segIntersect solves p1 + t*(p2-p1) = q1 + u*(q2-q1). parallel is true when
// the segments have no unique crossing.
func segIntersect(p1, p2, q1, q2 Point2D) (t, u float64, parallel bool) {
	rx, ry := p2.X-p1.X, p2.Y-p1.Y
	sx, sy := q2.X-q1.X, q2.Y-q1.Y
	denom := rx*sy - ry*sx
	if math.Abs(denom) < 1e-12 {
		return 0, 0, true
	}
	qx, qy := q1.X-p1.X, q1.Y-p1.Y
	t = (qx*sy - qy*sx) / denom
	u = (qx*ry - qy*rx) / denom
	return t, u, false
}

// appendCollinearSplits adds split parameters where a parallel edge q1-q2
// overlaps the segment p1-p2 along the same line.
func appendCollinearSplits(ts []float64, p1, p2, q1, q2 Point2D) []float64 {
	dx, dy := p2.X-p1.X, p2.Y-p1.Y
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return ts
	}
	if pointSegDistSq(q1, p1, p2) > RingEps*RingEps && pointSegDistSq(q2, p1, p2) > RingEps*RingEps {
		return ts
	}
	for _, q := range []Point2D{q1, q2} {
		if math.Abs((q.X-p1.X)*dy-(q.Y-p1.Y)*dx)/math.Sqrt(lenSq) > RingEps {
			continue
		}
		t := ((q.X-p1.X)*dx + (q.Y-p1.Y)*dy) / lenSq
		if t > 0 && t < 1 {
			ts = append(ts, t)
		}
	}
	return ts
}

func lerpPoint(a, b Point2D, t float64) Point2D {
	return Point2D{X: a.X + t*(b.X-a.X), Y: a.Y + t*(b.Y-a.Y)}
}

// stitchFragments chains fragments end to start into closed rings. Every
// fragment must be consumed; a dead end reports an error naming the stuck
// coordinate.
func stitchFragments(frags []fragment) ([][]Point2D, error) {
	if len(frags) == 0 {
		return nil, fmt.Errorf("no boundary fragments to stitch")
	}

	used := make([]bool, len(frags))
	var rings [][]Point2D

	for i := range frags {
		if used[i] {
			continue
		}
		used[i] = true
		start := frags[i].a
		cur := frags[i].b
		ring := []Point2D{start}

		for cur.Distance(start) >= RingEps {
			ring = append(ring, cur)
			next := -1
			for j := range frags {
				if !used[j] && frags[j].a.Distance(cur) < RingEps {
					next = j
					break
				}
			}
			if next < 0 {
				return nil, fmt.Errorf("open ring at (%.4f, %.4f)", cur.X, cur.Y)
			}
			used[next] = true
			cur = frags[next].b
		}

		ring = dedupeRing(ring)
		if len(ring) >= 3 {
			rings = append(rings, ring)
		}
	}

	if len(rings) == 0 {
		return nil, fmt.Errorf("union produced no closed rings")
	}
	return rings, nil
}
