package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kbd-designer/internal/keyboard"
	"kbd-designer/pkg/geometry"
)

func TestAlignRect(t *testing.T) {
	tests := []struct {
		name string
		in   geometry.Rect
		want geometry.Rect
	}{
		{"integers", geometry.NewRect(10, 20, 54, 30), geometry.NewRect(10.5, 20.5, 54, 30)},
		{"fractions", geometry.NewRect(10.2, 10.6, 53.7, 54.2), geometry.NewRect(10.5, 11.5, 54, 54)},
		{"negative", geometry.NewRect(-3.4, -0.2, 10.8, 5.1), geometry.NewRect(-2.5, 0.5, 10, 5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AlignRect(tt.in))
		})
	}
}

func TestAlignRectIdempotent(t *testing.T) {
	rects := []geometry.Rect{
		geometry.NewRect(0, 0, 54, 54),
		geometry.NewRect(10.2, 10.6, 53.7, 54.2),
		geometry.NewRect(-7.77, 3.14, 12.9, 0.4),
		geometry.NewRect(100.5, 200.5, 42, 17),
	}
	for _, r := range rects {
		once := AlignRect(r)
		assert.Equal(t, once, AlignRect(once), "input %+v", r)
	}
}

func TestAlignRectEdgesLandOnPixelGrid(t *testing.T) {
	a := AlignRect(geometry.NewRect(12.3, 4.9, 33.3, 21.7))

	// Origin sits on a pixel center, far edges on the same half grid.
	assert.Equal(t, 0.5, a.X-float64(int(a.X)))
	assert.Equal(t, 0.5, a.Y-float64(int(a.Y)))
	assert.Equal(t, float64(int(a.Width)), a.Width)
	assert.Equal(t, float64(int(a.Height)), a.Height)
}

func TestAlignParamsPreservesInnerOffsets(t *testing.T) {
	k := &keyboard.Key{X: 0.37, Y: 1.22, Width: 1.75, Height: 1}
	p := ComputeParams(k, DefaultStyle(54), nil)
	a := AlignParams(p)

	// The outer cap snapped...
	assert.Equal(t, AlignRect(p.Outer), a.Outer)

	// ...and the inner rectangles kept their original offsets against it
	// rather than being snapped on their own.
	assert.InDelta(t, p.Inner.X-p.Outer.X, a.Inner.X-a.Outer.X, 1e-9)
	assert.InDelta(t, p.Inner.Y-p.Outer.Y, a.Inner.Y-a.Outer.Y, 1e-9)
	assert.InDelta(t, p.Outer.Width-p.Inner.Width, a.Outer.Width-a.Inner.Width, 1e-9)
	assert.InDelta(t, p.Text.X-p.Outer.X, a.Text.X-a.Outer.X, 1e-9)
}

func TestAlignParamsLShapedArmsAlignIndependently(t *testing.T) {
	k := &keyboard.Key{X: 1.01, Y: 0, Width: 1.25, Height: 2, X2: -0.25, Width2: 1.5, Height2: 1}
	p := ComputeParams(k, DefaultStyle(54), nil)
	a := AlignParams(p)

	require.True(t, a.LShaped)
	assert.Equal(t, AlignRect(p.Outer), a.Outer)
	assert.Equal(t, AlignRect(p.Outer2), a.Outer2)

	// Bevel stays uniform between the arms: both inner rects keep the
	// same offset against their own aligned outer.
	assert.InDelta(t, p.Inner2.X-p.Outer2.X, a.Inner2.X-a.Outer2.X, 1e-9)
	assert.InDelta(t, p.Inner2.Y-p.Outer2.Y, a.Inner2.Y-a.Outer2.Y, 1e-9)
}

func TestAlignParamsSkipsArbitraryAngles(t *testing.T) {
	k := keyboard.NewKey(0.3, 0.7)
	k.RotationAngle = 45
	p := ComputeParams(k, DefaultStyle(54), nil)

	assert.Equal(t, p, AlignParams(p), "sub-pixel rendering is unavoidable at 45 degrees")

	// Quarter turns do align.
	k.RotationAngle = 180
	p = ComputeParams(k, DefaultStyle(54), nil)
	assert.NotEqual(t, p, AlignParams(p))
}
