// Package render rasterizes the rotate-then-crop transform of a source image
// and memoizes composed frames.
//
// The pipeline is non-destructive: the source raster is never mutated, every
// output is derived from (source, rotation, crop) parameters. Mirroring is
// deliberately not part of the transform; it is a presentation-time flip via
// Mirror, which keeps crop and rotation coordinates mirror-invariant.
package render

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/slot-compose/pkg/geom"
)

// Transform rotates src about its center by rotation degrees onto a
// bounding-box sized canvas, then extracts the percentage crop rect from
// that canvas at native resolution.
func Transform(src image.Image, rotation float64, pctCrop geom.Rect) (*image.NRGBA, error) {
	return TransformSized(src, rotation, pctCrop, 0, 0)
}

// TransformSized is Transform with an explicit output size: when outW and
// outH are positive and differ from the native crop size, the crop is
// resampled with a Lanczos filter. Zero sizes keep the native crop size.
func TransformSized(src image.Image, rotation float64, pctCrop geom.Rect, outW, outH int) (*image.NRGBA, error) {
	b := src.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, fmt.Errorf("empty source image")
	}

	// Rotate expands the canvas to the rotation's bounding box, with the
	// source composited centered. Uncovered corners stay transparent.
	canvas := imaging.Rotate(src, rotation, color.Transparent)

	bbox := geom.Size{
		Width:  float64(canvas.Bounds().Dx()),
		Height: float64(canvas.Bounds().Dy()),
	}
	px := geom.FromPercentage(pctCrop, bbox)
	region := image.Rect(
		int(px.X+0.5),
		int(px.Y+0.5),
		int(px.X+px.Width+0.5),
		int(px.Y+px.Height+0.5),
	).Intersect(canvas.Bounds())
	if region.Empty() {
		return nil, fmt.Errorf("crop %+v outside rotated canvas %v", pctCrop, canvas.Bounds())
	}

	out := imaging.Crop(canvas, region)
	if outW > 0 && outH > 0 && (outW != region.Dx() || outH != region.Dy()) {
		out = imaging.Resize(out, outW, outH, imaging.Lanczos)
	}
	return out, nil
}

// Mirror applies the presentation-time horizontal flip.
func Mirror(img image.Image) *image.NRGBA {
	return imaging.FlipH(img)
}
