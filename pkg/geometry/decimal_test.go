package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMulExact(t *testing.T) {
	// 0.1*3 != 0.3 in plain float64 arithmetic; the decimal path fixes that.
	assert.NotEqual(t, 0.3, 0.1*3.0)
	assert.Equal(t, 0.3, Mul(0.1, 3))

	assert.Equal(t, 67.5, Mul(1.25, 54))
	assert.Equal(t, -13.5, Mul(-0.25, 54))
	assert.Equal(t, 0.0, Mul(0, 54))
}

func TestAddSubExact(t *testing.T) {
	assert.Equal(t, 0.3, Add(0.1, 0.2))
	assert.Equal(t, 0.1, Sub(0.3, 0.2))
	assert.Equal(t, -9.0, Sub(3, 12))
}

func TestDiv(t *testing.T) {
	assert.Equal(t, 0.25, Div(13.5, 54))
	assert.Equal(t, 0.0, Div(1, 0))
}

func TestRound(t *testing.T) {
	assert.Equal(t, 0.123456789, Round(0.1234567894))
	assert.Equal(t, 0.12345679, Round(0.123456790000001))
}

func TestSinCosDegExact(t *testing.T) {
	tests := []struct {
		deg      float64
		sin, cos float64
	}{
		{0, 0, 1},
		{90, 1, 0},
		{180, 0, -1},
		{270, -1, 0},
		{360, 0, 1},
		{450, 1, 0},
		{-90, -1, 0},
		{-180, 0, -1},
		{-270, 1, 0},
	}
	for _, tt := range tests {
		sin, cos := SinCosDeg(tt.deg)
		assert.Equal(t, tt.sin, sin, "sin(%v)", tt.deg)
		assert.Equal(t, tt.cos, cos, "cos(%v)", tt.deg)
	}
}

func TestSinCosDegArbitrary(t *testing.T) {
	sin, cos := SinCosDeg(45)
	assert.InDelta(t, 0.7071067811865476, sin, 1e-15)
	assert.InDelta(t, 0.7071067811865476, cos, 1e-15)
}

func TestRotatePointQuarterTurnsExact(t *testing.T) {
	origin := Point2D{100, 200}
	p := Point2D{137.5, 212.25}

	got := p
	for i := 0; i < 4; i++ {
		got = RotatePoint(got, origin, 90)
	}
	assert.Equal(t, p, got, "four quarter turns must reproduce the input exactly")
}

func TestRotatePointInverse(t *testing.T) {
	origin := Point2D{27, 27}
	p := Point2D{61.5, 13.5}

	for _, deg := range []float64{90, 180, 270, 37.5, -112.25} {
		back := RotatePoint(RotatePoint(p, origin, deg), origin, -deg)
		assert.InDelta(t, p.X, back.X, Epsilon, "angle %v", deg)
		assert.InDelta(t, p.Y, back.Y, Epsilon, "angle %v", deg)
	}
}

func TestRotatePointZeroAngle(t *testing.T) {
	p := Point2D{1.0000000001, 2}
	assert.Equal(t, p, RotatePoint(p, Point2D{5, 5}, 0), "zero angle must not round coordinates")
}

func TestIsAxisAligned(t *testing.T) {
	for _, deg := range []float64{0, 90, 180, 270, 360, -90, -180, 450} {
		assert.True(t, IsAxisAligned(deg), "angle %v", deg)
	}
	for _, deg := range []float64{45, -30, 89.999, 90.001, 15} {
		assert.False(t, IsAxisAligned(deg), "angle %v", deg)
	}
}
