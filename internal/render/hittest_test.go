package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kbd-designer/internal/keyboard"
	"kbd-designer/pkg/geometry"
)

func TestHitTestTopmostWins(t *testing.T) {
	// Two overlapping 1x1 keys; B is listed after A and draws on top.
	a := keyboard.NewKey(0, 0)
	b := keyboard.NewKey(0.5, 0)
	keys := []*keyboard.Key{a, b}
	style := DefaultStyle(54)

	hit := HitTest(geometry.Point2D{X: 0.75 * 54, Y: 0.5 * 54}, keys, style)
	assert.Same(t, b, hit)

	// Left of the overlap only A remains.
	hit = HitTest(geometry.Point2D{X: 0.25 * 54, Y: 0.5 * 54}, keys, style)
	assert.Same(t, a, hit)

	// Outside both.
	assert.Nil(t, HitTest(geometry.Point2D{X: 200, Y: 200}, keys, style))
}

func TestHitTestISOEnterGap(t *testing.T) {
	iso := &keyboard.Key{X: 1, Y: 0, Width: 1.25, Height: 2, X2: -0.25, Width2: 1.5, Height2: 1}
	keys := []*keyboard.Key{iso}
	style := DefaultStyle(54)

	// Inside the tall primary arm.
	assert.Same(t, iso, HitTest(geometry.Point2D{X: 1.5 * 54, Y: 1.5 * 54}, keys, style))
	// Inside the wide top arm only.
	assert.Same(t, iso, HitTest(geometry.Point2D{X: 0.8 * 54, Y: 0.5 * 54}, keys, style))
	// The notch below the top arm and left of the primary arm is empty.
	assert.Nil(t, HitTest(geometry.Point2D{X: 0.8 * 54, Y: 1.5 * 54}, keys, style))
}

func TestHitTestRotatedKey(t *testing.T) {
	k := keyboard.NewKey(0, 0)
	k.RotationAngle = 45
	keys := []*keyboard.Key{k}
	style := DefaultStyle(54)

	// The rotation origin defaults to the key center and maps to itself,
	// so the visual center always hits.
	center := geometry.Point2D{X: 27, Y: 27}
	assert.Same(t, k, HitTest(center, keys, style))

	// A corner of the unrotated rectangle is no longer covered once the
	// key rotates 45 degrees, even though the raw rectangle contains it.
	corner := geometry.Point2D{X: 2, Y: 2}
	p := ComputeParams(k, style, nil)
	require.True(t, p.Outer.Contains(corner), "raw rect covers the corner")
	assert.Nil(t, HitTest(corner, keys, style), "inverse rotation must exclude it")

	// A point the rotated diamond does cover but the raw rectangle does
	// not: just above the top vertex side.
	above := geometry.Point2D{X: 27, Y: -10}
	require.False(t, p.Outer.Contains(above))
	assert.Same(t, k, HitTest(above, keys, style))
}

func TestHitTestRotationRoundTrip(t *testing.T) {
	// Forward-rotating a point that lies inside the unrotated rectangle
	// must always hit, and clearly-outside points must always miss, for
	// any angle. This is the exact-inverse property selection depends on.
	style := DefaultStyle(54)
	k := &keyboard.Key{X: 3, Y: 2, Width: 2, Height: 1}
	k.SetRotationOrigin(3, 2)

	inside := []geometry.Point2D{
		{X: 3.1 * 54, Y: 2.1 * 54},
		{X: 4 * 54, Y: 2.5 * 54},
		{X: 4.9 * 54, Y: 2.9 * 54},
	}
	outside := []geometry.Point2D{
		{X: 2 * 54, Y: 2.5 * 54},
		{X: 4 * 54, Y: 4 * 54},
	}

	for _, angle := range []float64{0, 30, 45, 90, 137.5, 270, -60} {
		k.RotationAngle = angle
		keys := []*keyboard.Key{k}
		p := ComputeParams(k, style, nil)

		for _, pt := range inside {
			fwd := geometry.RotatePoint(pt, p.Origin, angle)
			assert.Same(t, k, HitTest(fwd, keys, style), "angle %v point %+v", angle, pt)
		}
		for _, pt := range outside {
			fwd := geometry.RotatePoint(pt, p.Origin, angle)
			assert.Nil(t, HitTest(fwd, keys, style), "angle %v point %+v", angle, pt)
		}
	}
}

func TestHitTestLayout(t *testing.T) {
	l := keyboard.NewLayout()
	k := keyboard.NewKey(0, 0)
	l.Add(k)

	assert.Same(t, k, HitTestLayout(geometry.Point2D{X: 27, Y: 27}, l, DefaultStyle(54)))
	assert.Nil(t, HitTestLayout(geometry.Point2D{X: -5, Y: 27}, l, DefaultStyle(54)))
}
