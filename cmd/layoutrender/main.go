// Command layoutrender renders a KLE layout file to a PNG image.
package main

import (
	"flag"
	"fmt"
	"image/png"
	"os"

	"kbd-designer/internal/keyboard"
	"kbd-designer/internal/render"
	"kbd-designer/pkg/geometry"
)

func main() {
	inPath := flag.String("in", "", "Path to KLE layout JSON")
	outPath := flag.String("out", "layout.png", "Output PNG path")
	unit := flag.Float64("unit", 54, "Pixels per layout unit")
	showBounds := flag.Bool("bounds", false, "Print per-key bounds instead of rendering")
	probeX := flag.Float64("probe-x", -1, "Hit-test probe X in pixels (with -probe-y)")
	probeY := flag.Float64("probe-y", -1, "Hit-test probe Y in pixels (with -probe-x)")
	flag.Parse()

	if *inPath == "" {
		fmt.Println("Usage: layoutrender -in <layout.json> [-out layout.png] [-unit 54] [-bounds]")
		os.Exit(1)
	}

	layout, err := keyboard.LoadFile(*inPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load layout: %v\n", err)
		os.Exit(1)
	}

	if layout.Meta.Name != "" {
		fmt.Printf("Layout: %s\n", layout.Meta.Name)
	}
	fmt.Printf("Keys: %d\n", len(layout.Keys))

	style := render.DefaultStyle(*unit)

	if *showBounds {
		fmt.Printf("%-4s %10s %10s %10s %10s %8s\n", "#", "X", "Y", "W", "H", "Angle")
		for i, k := range layout.Keys {
			b := render.KeyBounds(k, style)
			fmt.Printf("%-4d %10.1f %10.1f %10.1f %10.1f %8.1f\n",
				i, b.X, b.Y, b.Width, b.Height, k.RotationAngle)
		}
		total := render.LayoutBounds(layout, style)
		fmt.Printf("\nLayout bounds: %.1f x %.1f px\n", total.Width, total.Height)
		return
	}

	if *probeX >= 0 && *probeY >= 0 {
		hit := render.HitTestLayout(
			geometry.Point2D{X: *probeX, Y: *probeY}, layout, style)
		if hit == nil {
			fmt.Printf("Probe (%.1f, %.1f): no key\n", *probeX, *probeY)
		} else {
			fmt.Printf("Probe (%.1f, %.1f): key #%d %q at (%g, %g)\n",
				*probeX, *probeY, layout.IndexOf(hit), hit.Label(0), hit.X, hit.Y)
		}
		return
	}

	r := render.NewRenderer(style)
	img := r.Render(layout, nil)

	f, err := os.Create(*outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create output: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to encode PNG: %v\n", err)
		os.Exit(1)
	}

	b := img.Bounds()
	fmt.Printf("Wrote %s (%dx%d at %.0f px/unit)\n", *outPath, b.Dx(), b.Dy(), *unit)
}
