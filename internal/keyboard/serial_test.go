package keyboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKLESimpleRows(t *testing.T) {
	data := []byte(`[
		[{"c":"#777777"},"Esc",{"x":1,"w":1.5},"Tab"],
		["A",{"w":2.25},"Enter"]
	]`)

	l, err := ParseKLE(data)
	require.NoError(t, err)
	require.Len(t, l.Keys, 4)

	esc := l.Keys[0]
	assert.Equal(t, 0.0, esc.X)
	assert.Equal(t, 0.0, esc.Y)
	assert.Equal(t, 1.0, esc.Width)
	assert.Equal(t, "#777777", esc.Color)
	assert.Equal(t, []string{"Esc"}, esc.Labels)

	// x advanced past Esc (1u) plus the explicit gap of 1u.
	tab := l.Keys[1]
	assert.Equal(t, 2.0, tab.X)
	assert.Equal(t, 1.5, tab.Width)
	assert.Equal(t, "#777777", tab.Color, "color is sticky")

	// Second row: cursor dropped a unit and returned to x=0.
	a := l.Keys[2]
	assert.Equal(t, 0.0, a.X)
	assert.Equal(t, 1.0, a.Y)
	assert.Equal(t, 1.0, a.Width, "width resets per key")

	enter := l.Keys[3]
	assert.Equal(t, 1.0, enter.X)
	assert.Equal(t, 2.25, enter.Width)
}

func TestParseKLEMetadata(t *testing.T) {
	data := []byte(`[{"name":"Test Board","author":"someone"},["Q"]]`)

	l, err := ParseKLE(data)
	require.NoError(t, err)
	assert.Equal(t, "Test Board", l.Meta.Name)
	assert.Equal(t, "someone", l.Meta.Author)
	require.Len(t, l.Keys, 1)
}

func TestParseKLEISOEnter(t *testing.T) {
	data := []byte(`[[{"x":12.75,"w":1.25,"h":2,"w2":1.5,"h2":1,"x2":-0.25},"Enter"]]`)

	l, err := ParseKLE(data)
	require.NoError(t, err)
	require.Len(t, l.Keys, 1)

	k := l.Keys[0]
	assert.True(t, k.IsLShaped())
	assert.Equal(t, 12.75, k.X)
	assert.Equal(t, 1.25, k.Width)
	assert.Equal(t, 2.0, k.Height)
	assert.Equal(t, -0.25, k.X2)
	assert.Equal(t, 1.5, k.Width2)
	assert.Equal(t, 1.0, k.Height2)
}

func TestParseKLERotationCluster(t *testing.T) {
	data := []byte(`[
		["Q","W"],
		[{"r":15,"rx":1,"ry":2},"R1",{"r":30},"R2"],
		["R3"]
	]`)

	l, err := ParseKLE(data)
	require.NoError(t, err)
	require.Len(t, l.Keys, 5)

	r1 := l.Keys[2]
	assert.Equal(t, 15.0, r1.RotationAngle)
	require.NotNil(t, r1.RotationX)
	assert.Equal(t, 1.0, *r1.RotationX)
	assert.Equal(t, 2.0, *r1.RotationY)
	// rx/ry re-home the cursor.
	assert.Equal(t, 1.0, r1.X)
	assert.Equal(t, 2.0, r1.Y)

	r2 := l.Keys[3]
	assert.Equal(t, 30.0, r2.RotationAngle)
	assert.Equal(t, 2.0, r2.X, "cursor keeps advancing inside the cluster")

	// Next row returns to the cluster x, one unit down.
	r3 := l.Keys[4]
	assert.Equal(t, 1.0, r3.X)
	assert.Equal(t, 3.0, r3.Y)
	assert.Equal(t, 30.0, r3.RotationAngle, "angle is sticky")
}

func TestParseKLEFlagsAndText(t *testing.T) {
	data := []byte(`[[{"g":true,"d":true,"n":true,"l":true,"p":"DSA","t":"#ff0000"},"X","Y"]]`)

	l, err := ParseKLE(data)
	require.NoError(t, err)
	require.Len(t, l.Keys, 2)

	x := l.Keys[0]
	assert.True(t, x.Ghost)
	assert.True(t, x.Decal)
	assert.True(t, x.Nub)
	assert.True(t, x.Stepped)
	assert.Equal(t, "DSA", x.Profile)
	assert.Equal(t, []string{"#ff0000"}, x.TextColor)

	// Ghost and profile are sticky, the per-key flags are not.
	y := l.Keys[1]
	assert.True(t, y.Ghost)
	assert.Equal(t, "DSA", y.Profile)
	assert.False(t, y.Decal)
	assert.False(t, y.Nub)
	assert.False(t, y.Stepped)
}

func TestParseKLEErrors(t *testing.T) {
	cases := []string{
		`{"not":"an array"}`,
		`[["Q"],{"name":"late meta"}]`,
		`[[42]]`,
	}
	for _, c := range cases {
		_, err := ParseKLE([]byte(c))
		assert.Error(t, err, c)
	}
}

func TestMarshalKLERoundTrip(t *testing.T) {
	src := []byte(`[
		{"name":"RT"},
		[{"c":"#333333"},"Esc",{"x":1,"w":1.5},"Tab"],
		["A",{"w":2.25,"g":true},"Caps"],
		[{"x":12.75,"w":1.25,"h":2,"w2":1.5,"h2":1,"x2":-0.25},"Enter"],
		[{"r":45,"rx":2,"ry":3},"Rot"]
	]`)

	first, err := ParseKLE(src)
	require.NoError(t, err)

	out, err := MarshalKLE(first)
	require.NoError(t, err)

	second, err := ParseKLE(out)
	require.NoError(t, err)

	require.Equal(t, len(first.Keys), len(second.Keys))
	assert.Equal(t, first.Meta, second.Meta)
	for i := range first.Keys {
		assert.Equal(t, first.Keys[i], second.Keys[i], "key %d", i)
	}

	// A second marshal is byte-stable.
	again, err := MarshalKLE(second)
	require.NoError(t, err)
	assert.Equal(t, string(out), string(again))
}

func TestMarshalKLERowBreaks(t *testing.T) {
	l := NewLayout()
	l.Add(&Key{X: 0, Y: 0, Width: 1, Height: 1, Align: 4, FontSize: 3, Labels: []string{"Q"}})
	l.Add(&Key{X: 1, Y: 0, Width: 1, Height: 1, Align: 4, FontSize: 3, Labels: []string{"W"}})
	l.Add(&Key{X: 0, Y: 2, Width: 1, Height: 1, Align: 4, FontSize: 3, Labels: []string{"Z"}})

	out, err := MarshalKLE(l)
	require.NoError(t, err)

	back, err := ParseKLE(out)
	require.NoError(t, err)
	require.Len(t, back.Keys, 3)
	assert.Equal(t, 0.0, back.Keys[2].X)
	assert.Equal(t, 2.0, back.Keys[2].Y, "y gap survives via a y property")
}
