package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kbd-designer/internal/keyboard"
	"kbd-designer/pkg/colorutil"
)

func TestRenderAutoSized(t *testing.T) {
	r := NewRenderer(DefaultStyle(54))
	l := keyboard.NewLayout()
	l.Add(keyboard.NewKey(0, 0))

	img := r.Render(l, nil)

	// Bounds run from -1 to 55 including the stroke margin.
	assert.Equal(t, 57, img.Bounds().Dx())
	assert.Equal(t, 57, img.Bounds().Dy())

	// The layout shifts so the bounds origin lands on pixel zero; the key
	// center moves with it.
	assert.Equal(t, r.Shades.Shade(""), img.RGBAAt(28, 28))
}

func TestRenderEmptyLayout(t *testing.T) {
	r := NewRenderer(DefaultStyle(54))
	img := r.Render(keyboard.NewLayout(), nil)

	require.Equal(t, 1, img.Bounds().Dx())
	assert.Equal(t, colorutil.White, img.RGBAAt(0, 0))
}

func TestSetUnitRescales(t *testing.T) {
	r := NewRenderer(DefaultStyle(54))
	l := keyboard.NewLayout()
	l.Add(keyboard.NewKey(0, 0))

	r.SetUnit(27)
	assert.Equal(t, 27.0, r.Style.Unit)

	img := r.RenderSized(l, 60, 60, nil)
	// The cap now ends around x=27; beyond it only background remains.
	assert.NotEqual(t, colorutil.White, img.RGBAAt(13, 13))
	assert.Equal(t, colorutil.White, img.RGBAAt(40, 13))
}

func TestRenderDrawsLabels(t *testing.T) {
	r := NewRenderer(DefaultStyle(54))
	l := keyboard.NewLayout()
	k := keyboard.NewKey(0, 0)
	k.SetLabel(0, "Q")
	l.Add(k)

	img := r.RenderSized(l, 60, 60, nil)

	// The glyph lands somewhere in the text area as near-black pixels on
	// the light top surface.
	found := false
	for y := 6; y < 43 && !found; y++ {
		for x := 9; x < 46; x++ {
			c := img.RGBAAt(x, y)
			if c.R < 64 && c.G < 64 && c.B < 64 {
				found = true
				break
			}
		}
	}
	assert.True(t, found, "no glyph pixels in the text area")
}

func TestRenderDecalLabelsOnly(t *testing.T) {
	r := NewRenderer(DefaultStyle(54))
	l := keyboard.NewLayout()
	k := keyboard.NewKey(0, 0)
	k.Decal = true
	k.SetLabel(4, "fn")
	l.Add(k)

	img := r.RenderSized(l, 60, 60, nil)

	// No cap, but the label still draws.
	assert.Equal(t, colorutil.White, img.RGBAAt(0, 27))
	found := false
	for y := 0; y < 60 && !found; y++ {
		for x := 0; x < 60; x++ {
			if c := img.RGBAAt(x, y); c.R < 64 {
				found = true
				break
			}
		}
	}
	assert.True(t, found, "decal label missing")
}
