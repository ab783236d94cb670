package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/slot-compose/pkg/geom"
)

// Overlay renders the rotated canvas with the footprint polygon outline and
// the current pixel-space crop rectangle drawn on top. The editing surface
// uses it to debug crop geometry; the CLI exposes it behind a flag.
//
// colorHex selects the outline color as "#RRGGBB"; an unparseable string
// falls back to red.
func Overlay(src image.Image, rotation float64, pctCrop geom.Rect, colorHex string) *image.NRGBA {
	canvas := imaging.Rotate(src, rotation, color.Transparent)
	bounds := canvas.Bounds()

	out := image.NewNRGBA(bounds)
	draw.Draw(out, bounds, canvas, bounds.Min, draw.Src)

	line := color.NRGBA{R: 255, A: 255}
	if c, err := colorful.Hex(colorHex); err == nil {
		r, g, b := c.RGB255()
		line = color.NRGBA{R: r, G: g, B: b, A: 255}
	}

	b := src.Bounds()
	poly := geom.FootprintPolygon(float64(b.Dx()), float64(b.Dy()), rotation)
	for i := range poly {
		drawLine(out, poly[i], poly[(i+1)%len(poly)], line)
	}

	bbox := geom.Size{Width: float64(bounds.Dx()), Height: float64(bounds.Dy())}
	px := geom.FromPercentage(pctCrop, bbox)
	for _, c := range [][2]geom.Point{
		{{X: px.X, Y: px.Y}, {X: px.X + px.Width, Y: px.Y}},
		{{X: px.X + px.Width, Y: px.Y}, {X: px.X + px.Width, Y: px.Y + px.Height}},
		{{X: px.X + px.Width, Y: px.Y + px.Height}, {X: px.X, Y: px.Y + px.Height}},
		{{X: px.X, Y: px.Y + px.Height}, {X: px.X, Y: px.Y}},
	} {
		drawLine(out, c[0], c[1], line)
	}
	return out
}

// drawLine rasterizes a straight segment by stepping one pixel at a time.
func drawLine(img *image.NRGBA, a, b geom.Point, c color.NRGBA) {
	steps := int(math.Max(math.Abs(b.X-a.X), math.Abs(b.Y-a.Y)))
	if steps == 0 {
		img.SetNRGBA(int(a.X), int(a.Y), c)
		return
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		x := int(a.X + (b.X-a.X)*t)
		y := int(a.Y + (b.Y-a.Y)*t)
		if image.Pt(x, y).In(img.Bounds()) {
			img.SetNRGBA(x, y, c)
		}
	}
}
