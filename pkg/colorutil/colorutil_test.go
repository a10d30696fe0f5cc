package colorutil

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
	}{
		{"#cccccc", color.RGBA{0xCC, 0xCC, 0xCC, 255}},
		{"#FF8000", color.RGBA{0xFF, 0x80, 0x00, 255}},
		{"#f80", color.RGBA{0xFF, 0x88, 0x00, 255}},
		{"  #000000 ", color.RGBA{0, 0, 0, 255}},
	}
	for _, tt := range tests {
		got, err := ParseHex(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestParseHexInvalid(t *testing.T) {
	for _, in := range []string{"", "cccccc", "#cccc", "#zzzzzz"} {
		_, err := ParseHex(in)
		assert.Error(t, err, in)
	}
}

func TestFormatHexRoundTrip(t *testing.T) {
	c := color.RGBA{0x12, 0xAB, 0xEF, 255}
	parsed, err := ParseHex(FormatHex(c))
	require.NoError(t, err)
	assert.Equal(t, c, parsed)
}

func TestLightenBrightens(t *testing.T) {
	base := color.RGBA{0x80, 0x40, 0x20, 255}
	lighter := Lighten(base, 1.2)

	assert.Greater(t, int(lighter.R), int(base.R))
	assert.Greater(t, int(lighter.G), int(base.G))
	assert.Greater(t, int(lighter.B), int(base.B))
}

func TestLightenIdentity(t *testing.T) {
	// Factor 1 round-trips through Lab within a channel step.
	base := color.RGBA{0xCC, 0xCC, 0xCC, 255}
	same := Lighten(base, 1.0)
	assert.InDelta(t, int(base.R), int(same.R), 1)
	assert.InDelta(t, int(base.G), int(same.G), 1)
	assert.InDelta(t, int(base.B), int(same.B), 1)
}

func TestLightenClampsAtWhite(t *testing.T) {
	c := Lighten(White, 2.0)
	assert.Equal(t, White, c)
}

func TestShadeCache(t *testing.T) {
	sc := NewShadeCache(1.2)

	first := sc.Shade("#336699")
	again := sc.Shade("#336699")
	assert.Equal(t, first, again)
	assert.Len(t, sc.shades, 1)

	sc.Clear()
	assert.Empty(t, sc.shades)
	assert.Equal(t, first, sc.Shade("#336699"))
}

func TestShadeCacheFallbacks(t *testing.T) {
	sc := NewShadeCache(1.2)

	assert.Equal(t, KeyGray, sc.Base("not-a-color"))
	assert.Equal(t, sc.Shade(DefaultKeyColor), sc.Shade(""))
}
