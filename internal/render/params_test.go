package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kbd-designer/internal/keyboard"
	"kbd-designer/pkg/colorutil"
	"kbd-designer/pkg/geometry"
)

// rectWithin asserts that inner lies fully inside outer.
func rectWithin(t *testing.T, inner, outer geometry.Rect, msg string) {
	t.Helper()
	assert.GreaterOrEqual(t, inner.X, outer.X, "%s: left", msg)
	assert.GreaterOrEqual(t, inner.Y, outer.Y, "%s: top", msg)
	assert.LessOrEqual(t, inner.Right(), outer.Right(), "%s: right", msg)
	assert.LessOrEqual(t, inner.Bottom(), outer.Bottom(), "%s: bottom", msg)
}

func TestComputeParamsStandardKey(t *testing.T) {
	k := keyboard.NewKey(0, 0)
	p := ComputeParams(k, DefaultStyle(54), nil)

	assert.Equal(t, geometry.NewRect(0, 0, 54, 54), p.Cap)
	assert.Equal(t, 54.0, p.Outer.Width)
	assert.Equal(t, 54.0, p.Outer.Height)

	// Bevel margin 6 per side.
	assert.Equal(t, 42.0, p.Inner.Width)
	assert.Equal(t, 42.0, p.Inner.Height)
	assert.Equal(t, 6.0, p.Inner.X)
	// Top bevel is thinner than the bottom one by the bevel offsets.
	assert.Equal(t, 3.0, p.Inner.Y)

	// Text padding 3 per side.
	assert.Equal(t, geometry.NewRect(9, 6, 36, 36), p.Text)

	assert.False(t, p.LShaped)
	assert.Equal(t, geometry.Point2D{X: 27, Y: 27}, p.Origin)
}

func TestComputeParamsNesting(t *testing.T) {
	keys := []*keyboard.Key{
		keyboard.NewKey(0, 0),
		{X: 2, Y: 1, Width: 6.25, Height: 1},
		{X: 1, Y: 0, Width: 1.25, Height: 2, X2: -0.25, Width2: 1.5, Height2: 1},
		{X: 0, Y: 0, Width: 0.25, Height: 0.25},
	}
	style := DefaultStyle(54)

	for _, k := range keys {
		p := ComputeParams(k, style, nil)
		rectWithin(t, p.Outer, p.Cap, "outer in cap")
		rectWithin(t, p.Inner, p.Outer, "inner in outer")
		rectWithin(t, p.Text, p.Inner, "text in inner")
		if p.LShaped {
			rectWithin(t, p.Outer2, p.Cap2, "outer2 in cap2")
			rectWithin(t, p.Inner2, p.Outer2, "inner2 in outer2")
			rectWithin(t, p.Text2, p.Inner2, "text2 in inner2")
		}
	}
}

func TestComputeParamsLShaped(t *testing.T) {
	// ISO enter.
	k := &keyboard.Key{X: 1, Y: 0, Width: 1.25, Height: 2, X2: -0.25, Width2: 1.5, Height2: 1}
	p := ComputeParams(k, DefaultStyle(54), nil)

	require.True(t, p.LShaped)
	assert.Equal(t, geometry.NewRect(54, 0, 67.5, 108), p.Cap)
	assert.Equal(t, geometry.NewRect(40.5, 0, 81, 54), p.Cap2)

	// The second arm runs the full inset chain independently.
	assert.Equal(t, 81.0-12, p.Inner2.Width)
	assert.Equal(t, 54.0-12, p.Inner2.Height)
}

func TestComputeParamsDegenerateKeyFloors(t *testing.T) {
	k := &keyboard.Key{X: 0, Y: 0, Width: 0, Height: 1}
	p := ComputeParams(k, DefaultStyle(54), nil)

	assert.GreaterOrEqual(t, p.Outer.Width, MinCapSize)
	assert.GreaterOrEqual(t, p.Inner.Width, MinCapSize)
	assert.GreaterOrEqual(t, p.Text.Width, MinCapSize)
	rectWithin(t, p.Inner, p.Outer, "floored inner still nested")

	// The unaffected axis insets normally.
	assert.Equal(t, 42.0, p.Inner.Height)
}

func TestComputeParamsDecimalScaling(t *testing.T) {
	// 0.1 units at 54 px/unit lands exactly on 5.4, not 5.4000000003.
	k := &keyboard.Key{X: 0.1, Y: 0.3, Width: 3, Height: 1}
	p := ComputeParams(k, DefaultStyle(54), nil)

	assert.Equal(t, 5.4, p.Cap.X)
	assert.Equal(t, 16.2, p.Cap.Y)
	assert.Equal(t, 162.0, p.Cap.Width)
}

func TestComputeParamsColors(t *testing.T) {
	shades := colorutil.NewShadeCache(ShadeFactor)
	k := keyboard.NewKey(0, 0)
	k.Color = "#336699"

	p := ComputeParams(k, DefaultStyle(54), shades)
	assert.Equal(t, shades.Base("#336699"), p.Fill)
	assert.Equal(t, shades.Shade("#336699"), p.Top)

	// Nil cache leaves colors zero for pure-geometry callers.
	pure := ComputeParams(k, DefaultStyle(54), nil)
	assert.Zero(t, pure.Fill)
}

func TestRotateParamsQuarterTurn(t *testing.T) {
	k := &keyboard.Key{X: 0, Y: 0, Width: 2, Height: 1}
	k.SetRotationOrigin(0, 0)
	k.RotationAngle = 90
	p := ComputeParams(k, DefaultStyle(54), nil)

	r := RotateParams(p)
	assert.Equal(t, 0.0, r.Angle)
	// Width and height swap, and the cap lands left of the origin.
	assert.Equal(t, geometry.NewRect(-54, 0, 54, 108), r.Outer)

	// A zero angle is a no-op.
	p0 := ComputeParams(keyboard.NewKey(0, 0), DefaultStyle(54), nil)
	assert.Equal(t, p0, RotateParams(p0))
}

func TestRotateParamsMatchesAffineTransform(t *testing.T) {
	// The analytic corner rotation and a generic affine rotation about the
	// same origin must agree for every quarter turn.
	k := &keyboard.Key{X: 1, Y: 2, Width: 2.25, Height: 1}
	k.SetRotationOrigin(1, 2)
	style := DefaultStyle(54)

	for _, angle := range []float64{0, 90, 180, 270} {
		k.RotationAngle = angle
		p := ComputeParams(k, style, nil)
		baked := RotateParams(p)

		tf := geometry.RotationAbout(angle, p.Origin)
		corners := p.Outer.Corners()
		pts := make([]geometry.Point2D, 4)
		for i, c := range corners {
			pts[i] = tf.Apply(c)
		}
		want := geometry.BoundingBox(pts)

		assert.InDelta(t, want.X, baked.Outer.X, 1e-9, "angle %v", angle)
		assert.InDelta(t, want.Y, baked.Outer.Y, 1e-9, "angle %v", angle)
		assert.InDelta(t, want.Width, baked.Outer.Width, 1e-9, "angle %v", angle)
		assert.InDelta(t, want.Height, baked.Outer.Height, 1e-9, "angle %v", angle)
	}
}
