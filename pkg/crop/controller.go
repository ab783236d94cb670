// Package crop maintains the interactive crop state for one image slot.
//
// The crop lives in percentage space relative to the rotated image's bounding
// box, so a rotation change automatically re-expresses it against the new box.
// Every gesture converts to pixel space against the current bounding box,
// applies the edit, constrains the result into the footprint polygon, and
// stores it back as percentages.
package crop

import (
	"math"

	"github.com/ironsheep/slot-compose/pkg/geom"
)

// Handle identifies which part of the crop a drag gesture grabs.
type Handle int

const (
	HandleMove Handle = iota
	HandleNW
	HandleNE
	HandleSW
	HandleSE
)

// ZoomStep is the scale factor change applied per wheel event.
const ZoomStep = 0.05

// Controller derives and validates the crop rectangle for a source image
// placed into a slot of fixed aspect ratio.
type Controller struct {
	srcW, srcH float64
	aspect     float64   // slot width / height
	rotation   float64   // degrees
	crop       geom.Rect // percentage space
}

// New creates a controller for a source image of the given pixel size and a
// slot aspect ratio, with rotation 0 and the maximal valid crop.
func New(srcW, srcH, aspect float64) *Controller {
	c := &Controller{srcW: srcW, srcH: srcH, aspect: aspect}
	c.ResetCrop()
	return c
}

// Aspect returns the slot aspect ratio the crop is held to.
func (c *Controller) Aspect() float64 { return c.aspect }

// Rotation returns the current rotation in degrees.
func (c *Controller) Rotation() float64 { return c.rotation }

// BoundingBox returns the bounding box of the rotated source image.
func (c *Controller) BoundingBox() geom.Size {
	return geom.BoundingBox(c.srcW, c.srcH, c.rotation)
}

// Footprint returns the rotated image's footprint polygon.
func (c *Controller) Footprint() geom.Polygon {
	return geom.FootprintPolygon(c.srcW, c.srcH, c.rotation)
}

// Crop returns the crop in percentage space.
func (c *Controller) Crop() geom.Rect { return c.crop }

// PixelCrop returns the crop in pixel space against the current bounding box,
// for drawing interactive handles.
func (c *Controller) PixelCrop() geom.Rect {
	return geom.FromPercentage(c.crop, c.BoundingBox())
}

// SetCrop replaces the percentage crop, constraining it into the current
// footprint. Empty rects are ignored.
func (c *Controller) SetCrop(pct geom.Rect) {
	if pct.Width <= 0 || pct.Height <= 0 {
		return
	}
	px := geom.FromPercentage(pct, c.BoundingBox())
	px = geom.FitToAspectRatio(px, c.aspect, geom.AnchorCenter)
	c.store(geom.ConstrainToValidArea(px, c.Footprint(), c.aspect))
}

// ResetCrop recomputes the maximal valid crop at the slot aspect ratio.
func (c *Controller) ResetCrop() {
	c.store(geom.MaxCropAtAspectRatio(c.Footprint(), c.aspect))
}

// Move translates the crop by a pointer delta in pixels, clamps it into the
// bounding box, and constrains it into the footprint if it left it.
func (c *Controller) Move(dx, dy float64) {
	bbox := c.BoundingBox()
	r := c.PixelCrop()
	r.X += dx
	r.Y += dy
	r = clampIntoBox(r, bbox)
	if poly := c.Footprint(); !geom.CropIsValid(r, poly) {
		r = geom.ConstrainToValidArea(r, poly, c.aspect)
	}
	c.store(r)
}

// Resize drags one corner of the crop to the pointer position (px, py) in
// pixels. The opposite corner stays anchored; the result is re-fit to the
// slot aspect ratio, held to the minimum size, clamped into the bounding box,
// and constrained into the footprint.
func (c *Controller) Resize(h Handle, px, py float64) {
	if h == HandleMove {
		return
	}
	bbox := c.BoundingBox()
	cur := c.PixelCrop()

	var ax, ay float64 // anchored opposite corner
	var anchor geom.Anchor
	switch h {
	case HandleNW:
		ax, ay, anchor = cur.X+cur.Width, cur.Y+cur.Height, geom.AnchorSE
	case HandleNE:
		ax, ay, anchor = cur.X, cur.Y+cur.Height, geom.AnchorSW
	case HandleSW:
		ax, ay, anchor = cur.X+cur.Width, cur.Y, geom.AnchorNE
	case HandleSE:
		ax, ay, anchor = cur.X, cur.Y, geom.AnchorNW
	}

	r := geom.Rect{
		X:      math.Min(px, ax),
		Y:      math.Min(py, ay),
		Width:  math.Abs(px - ax),
		Height: math.Abs(py - ay),
	}
	r = geom.FitToAspectRatio(r, c.aspect, anchor)

	if minW := bbox.Width * geom.MinCropFraction; r.Width < minW {
		r.Width = minW
		r.Height = minW / c.aspect
		// Keep the anchored corner fixed at the minimum size too.
		switch h {
		case HandleNW:
			r.X, r.Y = ax-r.Width, ay-r.Height
		case HandleNE:
			r.X, r.Y = ax, ay-r.Height
		case HandleSW:
			r.X, r.Y = ax-r.Width, ay
		case HandleSE:
			r.X, r.Y = ax, ay
		}
	}

	r = clampIntoBox(r, bbox)
	if poly := c.Footprint(); !geom.CropIsValid(r, poly) {
		r = geom.ConstrainToValidArea(r, poly, c.aspect)
	}
	c.store(r)
}

// Zoom scales the crop from its center by one wheel step. Positive steps grow
// the crop, negative steps shrink it. The resulting width is clamped to
// [minimum, bounding-box width], height re-derived from the aspect ratio.
func (c *Controller) Zoom(steps int) {
	if steps == 0 {
		return
	}
	bbox := c.BoundingBox()
	r := c.PixelCrop()
	center := r.Center()

	factor := math.Pow(1+ZoomStep, float64(steps))
	w := r.Width * factor
	w = math.Max(bbox.Width*geom.MinCropFraction, math.Min(w, bbox.Width))
	h := w / c.aspect

	// Re-center without shrinking: if the derived height overflows the box
	// the constraint pass below shrinks uniformly, keeping the aspect ratio.
	r = geom.Rect{X: center.X - w/2, Y: center.Y - h/2, Width: w, Height: h}
	r.X = math.Max(0, math.Min(r.X, bbox.Width-r.Width))
	r.Y = math.Max(0, r.Y)
	if poly := c.Footprint(); !geom.CropIsValid(r, poly) {
		r = geom.ConstrainToValidArea(r, poly, c.aspect)
	}
	c.store(r)
}

// SetRotation changes the rotation angle, preserving the user's relative crop
// position and size: the existing percentage crop is re-expressed against the
// new bounding box, re-fit to the slot aspect ratio about its own center, and
// constrained into the new footprint.
func (c *Controller) SetRotation(deg float64) {
	c.rotation = deg
	bbox := c.BoundingBox()
	r := geom.FromPercentage(c.crop, bbox)
	r = geom.FitToAspectRatio(r, c.aspect, geom.AnchorCenter)
	r = clampIntoBox(r, bbox)
	c.store(geom.ConstrainToValidArea(r, c.Footprint(), c.aspect))
}

// store converts a pixel rect back to percentage space.
func (c *Controller) store(px geom.Rect) {
	c.crop = geom.ToPercentage(px, c.BoundingBox())
}

// clampIntoBox shifts the rectangle so it lies within the bounding box,
// shrinking it only if it is larger than the box on an axis.
func clampIntoBox(r geom.Rect, bbox geom.Size) geom.Rect {
	if r.Width > bbox.Width {
		r.Width = bbox.Width
	}
	if r.Height > bbox.Height {
		r.Height = bbox.Height
	}
	r.X = math.Max(0, math.Min(r.X, bbox.Width-r.Width))
	r.Y = math.Max(0, math.Min(r.Y, bbox.Height-r.Height))
	return r
}
