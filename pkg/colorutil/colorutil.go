// Package colorutil provides shared color utilities for the keyboard designer.
package colorutil

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Common colors used throughout the application.
var (
	Black     = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White     = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	KeyGray   = color.RGBA{R: 0xCC, G: 0xCC, B: 0xCC, A: 255}
	Highlight = color.RGBA{R: 0xFF, G: 0x33, B: 0x33, A: 255}
)

// DefaultKeyColor is the fill used when a key carries no color of its own.
const DefaultKeyColor = "#cccccc"

// ParseHex parses a "#rgb" or "#rrggbb" color string.
func ParseHex(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		return color.RGBA{}, fmt.Errorf("color %q: missing # prefix", s)
	}
	hex := s[1:]

	var r, g, b uint8
	switch len(hex) {
	case 3:
		n, err := fmt.Sscanf(hex, "%1x%1x%1x", &r, &g, &b)
		if n != 3 || err != nil {
			return color.RGBA{}, fmt.Errorf("color %q: invalid hex digits", s)
		}
		r, g, b = r*17, g*17, b*17
	case 6:
		n, err := fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b)
		if n != 3 || err != nil {
			return color.RGBA{}, fmt.Errorf("color %q: invalid hex digits", s)
		}
	default:
		return color.RGBA{}, fmt.Errorf("color %q: expected 3 or 6 hex digits", s)
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// FormatHex formats a color as "#rrggbb". The alpha channel is dropped.
func FormatHex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// sRGB to XYZ (D65) and its inverse. The inverse is derived once at init so
// the two directions cannot drift apart.
var (
	rgbToXYZ = mat.NewDense(3, 3, []float64{
		0.4124564, 0.3575761, 0.1804375,
		0.2126729, 0.7151522, 0.0721750,
		0.0193339, 0.1191920, 0.9503041,
	})
	xyzToRGB = func() *mat.Dense {
		var inv mat.Dense
		if err := inv.Inverse(rgbToXYZ); err != nil {
			panic(err)
		}
		return &inv
	}()
)

// D65 reference white.
const (
	whiteX = 0.95047
	whiteY = 1.00000
	whiteZ = 1.08883
)

// Lighten returns the color with its CIE L* lightness multiplied by factor.
// Factors above 1 lighten, below 1 darken. Hue and chroma are preserved; the
// result is clamped to the sRGB gamut channel by channel.
func Lighten(c color.RGBA, factor float64) color.RGBA {
	l, a, b := rgbToLab(c)
	l *= factor
	if l > 100 {
		l = 100
	}
	if l < 0 {
		l = 0
	}
	return labToRGB(l, a, b)
}

func rgbToLab(c color.RGBA) (l, a, b float64) {
	lin := mat.NewVecDense(3, []float64{
		srgbToLinear(float64(c.R) / 255),
		srgbToLinear(float64(c.G) / 255),
		srgbToLinear(float64(c.B) / 255),
	})
	var xyz mat.VecDense
	xyz.MulVec(rgbToXYZ, lin)

	fx := labF(xyz.AtVec(0) / whiteX)
	fy := labF(xyz.AtVec(1) / whiteY)
	fz := labF(xyz.AtVec(2) / whiteZ)

	return 116*fy - 16, 500 * (fx - fy), 200 * (fy - fz)
}

func labToRGB(l, a, b float64) color.RGBA {
	fy := (l + 16) / 116
	fx := fy + a/500
	fz := fy - b/200

	xyz := mat.NewVecDense(3, []float64{
		labFInv(fx) * whiteX,
		labFInv(fy) * whiteY,
		labFInv(fz) * whiteZ,
	})
	var lin mat.VecDense
	lin.MulVec(xyzToRGB, xyz)

	return color.RGBA{
		R: clamp8(linearToSRGB(lin.AtVec(0)) * 255),
		G: clamp8(linearToSRGB(lin.AtVec(1)) * 255),
		B: clamp8(linearToSRGB(lin.AtVec(2)) * 255),
		A: 255,
	}
}

func labF(t float64) float64 {
	const delta = 6.0 / 29.0
	if t > delta*delta*delta {
		return math.Cbrt(t)
	}
	return t/(3*delta*delta) + 4.0/29.0
}

func labFInv(t float64) float64 {
	const delta = 6.0 / 29.0
	if t > delta {
		return t * t * t
	}
	return 3 * delta * delta * (t - 4.0/29.0)
}

func srgbToLinear(v float64) float64 {
	if v <= 0.04045 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

func linearToSRGB(v float64) float64 {
	if v <= 0 {
		return 0
	}
	if v <= 0.0031308 {
		return v * 12.92
	}
	return 1.055*math.Pow(v, 1.0/2.4) - 0.055
}

func clamp8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}

// ShadeCache memoizes the lightened shade of each distinct key color. The
// cache is keyed by the raw color string, so the caller must Clear it when
// anything feeding the lightening changes (unit scale, theme).
type ShadeCache struct {
	factor float64
	shades map[string]color.RGBA
}

// NewShadeCache creates a shade cache with the given lightening factor.
func NewShadeCache(factor float64) *ShadeCache {
	return &ShadeCache{
		factor: factor,
		shades: make(map[string]color.RGBA),
	}
}

// Base parses a key color string, falling back to the default key gray on
// malformed input.
func (sc *ShadeCache) Base(hex string) color.RGBA {
	if hex == "" {
		hex = DefaultKeyColor
	}
	c, err := ParseHex(hex)
	if err != nil {
		return KeyGray
	}
	return c
}

// Shade returns the lightened shade for the given key color string,
// computing it on first use.
func (sc *ShadeCache) Shade(hex string) color.RGBA {
	if hex == "" {
		hex = DefaultKeyColor
	}
	if c, ok := sc.shades[hex]; ok {
		return c
	}
	c := Lighten(sc.Base(hex), sc.factor)
	sc.shades[hex] = c
	return c
}

// Clear drops all memoized shades.
func (sc *ShadeCache) Clear() {
	sc.shades = make(map[string]color.RGBA)
}
