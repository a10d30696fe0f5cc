package canvas

import (
	"image"
	"image/color"

	"kbd-designer/pkg/geometry"
)

// drawMarquee draws the rubber-band selection rectangle over a rendered
// frame with a dashed outline.
func drawMarquee(output *image.RGBA, r geometry.Rect) {
	col := color.RGBA{R: 255, G: 255, B: 0, A: 255}

	x1 := int(r.X)
	y1 := int(r.Y)
	x2 := int(r.Right())
	y2 := int(r.Bottom())

	bounds := output.Bounds()

	// Dashed outline, alternating two pixels on and two off
	for x := x1; x <= x2; x++ {
		if (x+y1)%4 < 2 && x >= bounds.Min.X && x < bounds.Max.X && y1 >= bounds.Min.Y && y1 < bounds.Max.Y {
			output.Set(x, y1, col)
		}
		if (x+y2)%4 < 2 && x >= bounds.Min.X && x < bounds.Max.X && y2 >= bounds.Min.Y && y2 < bounds.Max.Y {
			output.Set(x, y2, col)
		}
	}
	for y := y1; y <= y2; y++ {
		if (x1+y)%4 < 2 && x1 >= bounds.Min.X && x1 < bounds.Max.X && y >= bounds.Min.Y && y < bounds.Max.Y {
			output.Set(x1, y, col)
		}
		if (x2+y)%4 < 2 && x2 >= bounds.Min.X && x2 < bounds.Max.X && y >= bounds.Min.Y && y < bounds.Max.Y {
			output.Set(x2, y, col)
		}
	}
}
