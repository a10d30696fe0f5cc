package geometry

import (
	"math"

	"github.com/shopspring/decimal"
)

// Epsilon is the tolerance used for coordinate comparisons. Coordinates that
// pass through the decimal helpers are stable to well below this.
const Epsilon = 1e-9

// roundPlaces is the number of decimal places kept by the arithmetic helpers.
const roundPlaces = 9

// Mul multiplies two coordinates with fixed-precision decimal arithmetic, so
// products of layout units stay exact (0.1 * 3 yields 0.3, not 0.30000...04).
func Mul(a, b float64) float64 {
	d := decimal.NewFromFloat(a).Mul(decimal.NewFromFloat(b))
	return roundDecimal(d)
}

// Div divides a by b with fixed-precision decimal arithmetic.
// Division by zero returns 0.
func Div(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	d := decimal.NewFromFloat(a).DivRound(decimal.NewFromFloat(b), roundPlaces+1)
	return roundDecimal(d)
}

// Add adds two coordinates with fixed-precision decimal arithmetic.
func Add(a, b float64) float64 {
	d := decimal.NewFromFloat(a).Add(decimal.NewFromFloat(b))
	return roundDecimal(d)
}

// Sub subtracts b from a with fixed-precision decimal arithmetic.
func Sub(a, b float64) float64 {
	d := decimal.NewFromFloat(a).Sub(decimal.NewFromFloat(b))
	return roundDecimal(d)
}

// Round rounds a coordinate to the package precision.
func Round(v float64) float64 {
	return roundDecimal(decimal.NewFromFloat(v))
}

func roundDecimal(d decimal.Decimal) float64 {
	return d.Round(roundPlaces).InexactFloat64()
}

// SinCosDeg returns the sine and cosine of an angle given in degrees.
// At multiples of 90 the results are exactly -1, 0, or 1, so rotating by a
// quarter turn and back reproduces the input coordinates bit for bit.
func SinCosDeg(deg float64) (sin, cos float64) {
	norm := math.Mod(deg, 360)
	if norm < 0 {
		norm += 360
	}
	switch norm {
	case 0:
		return 0, 1
	case 90:
		return 1, 0
	case 180:
		return 0, -1
	case 270:
		return -1, 0
	}
	rad := deg * math.Pi / 180
	return math.Sin(rad), math.Cos(rad)
}

var (
	decOne    = decimal.NewFromInt(1)
	decNegOne = decimal.NewFromInt(-1)
)

// sinCosDecimal mirrors SinCosDeg with decimal results, keeping the quarter
// turn values exact integers.
func sinCosDecimal(deg float64) (sin, cos decimal.Decimal) {
	norm := math.Mod(deg, 360)
	if norm < 0 {
		norm += 360
	}
	switch norm {
	case 0:
		return decimal.Zero, decOne
	case 90:
		return decOne, decimal.Zero
	case 180:
		return decimal.Zero, decNegOne
	case 270:
		return decNegOne, decimal.Zero
	}
	rad := deg * math.Pi / 180
	return decimal.NewFromFloat(math.Sin(rad)), decimal.NewFromFloat(math.Cos(rad))
}

// RotatePoint rotates p around origin by deg degrees. In screen coordinates
// (y down) a positive angle rotates clockwise. The whole computation runs in
// decimal and rounds once, so rotating by -deg around the same origin
// recovers the input within Epsilon, and quarter turns recover it exactly.
func RotatePoint(p, origin Point2D, deg float64) Point2D {
	if deg == 0 {
		return p
	}
	sin, cos := sinCosDecimal(deg)
	ox := decimal.NewFromFloat(origin.X)
	oy := decimal.NewFromFloat(origin.Y)
	dx := decimal.NewFromFloat(p.X).Sub(ox)
	dy := decimal.NewFromFloat(p.Y).Sub(oy)
	return Point2D{
		X: roundDecimal(ox.Add(dx.Mul(cos)).Sub(dy.Mul(sin))),
		Y: roundDecimal(oy.Add(dx.Mul(sin)).Add(dy.Mul(cos))),
	}
}

// IsAxisAligned reports whether an angle in degrees is a multiple of 90.
func IsAxisAligned(deg float64) bool {
	m := math.Mod(deg, 90)
	return math.Abs(m) < Epsilon || math.Abs(math.Abs(m)-90) < Epsilon
}
