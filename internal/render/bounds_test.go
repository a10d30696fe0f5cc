package render

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"kbd-designer/internal/keyboard"
	"kbd-designer/pkg/geometry"
)

func TestKeyBoundsUnrotated(t *testing.T) {
	k := keyboard.NewKey(0, 0)
	b := KeyBounds(k, DefaultStyle(54))

	// The 54x54 cap plus the one-pixel stroke margin on every side.
	assert.Equal(t, geometry.NewRect(-1, -1, 56, 56), b)
}

func TestKeyBoundsQuarterTurn(t *testing.T) {
	k := &keyboard.Key{X: 0, Y: 0, Width: 2, Height: 1}
	k.SetRotationOrigin(0, 0)
	k.RotationAngle = 90
	b := KeyBounds(k, DefaultStyle(54))

	// Width and height swap, landing left of the origin.
	assert.InDelta(t, -55.0, b.X, 1e-9)
	assert.InDelta(t, -1.0, b.Y, 1e-9)
	assert.InDelta(t, 56.0, b.Width, 1e-9)
	assert.InDelta(t, 110.0, b.Height, 1e-9)
}

func TestKeyBoundsArbitraryAngle(t *testing.T) {
	k := keyboard.NewKey(0, 0)
	k.RotationAngle = 45
	b := KeyBounds(k, DefaultStyle(54))

	// Rotating a square 45 degrees about its center grows the box to the
	// diagonal.
	diag := 54 * math.Sqrt2
	assert.InDelta(t, diag+2, b.Width, 1e-9)
	assert.InDelta(t, diag+2, b.Height, 1e-9)
	assert.InDelta(t, 27-diag/2-1, b.X, 1e-9)
}

func TestKeyBoundsLShaped(t *testing.T) {
	// ISO enter: the box must cover both arms, not just the primary one.
	k := &keyboard.Key{X: 1, Y: 0, Width: 1.25, Height: 2, X2: -0.25, Width2: 1.5, Height2: 1}
	b := KeyBounds(k, DefaultStyle(54))

	assert.Equal(t, geometry.NewRect(39.5, -1, 83, 110), b)
}

func TestKeyBoundsLShapedRotated(t *testing.T) {
	// All eight corners rotate; a single-rectangle shortcut would miss the
	// second arm entirely.
	k := &keyboard.Key{X: 1, Y: 0, Width: 1.25, Height: 2, X2: -0.25, Width2: 1.5, Height2: 1}
	k.SetRotationOrigin(0, 0)
	k.RotationAngle = 180
	b := KeyBounds(k, DefaultStyle(54))

	assert.InDelta(t, -121.5-1, b.X, 1e-9)
	assert.InDelta(t, -108-1, b.Y, 1e-9)
	assert.InDelta(t, 83.0, b.Width, 1e-9)
	assert.InDelta(t, 110.0, b.Height, 1e-9)
}

func TestLayoutBounds(t *testing.T) {
	l := keyboard.NewLayout()
	assert.Equal(t, geometry.Rect{}, LayoutBounds(l, DefaultStyle(54)))

	l.Add(keyboard.NewKey(0, 0))
	l.Add(keyboard.NewKey(2, 1))
	b := LayoutBounds(l, DefaultStyle(54))

	assert.Equal(t, geometry.NewRect(-1, -1, 164, 110), b)
}
