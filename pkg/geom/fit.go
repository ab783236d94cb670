package geom

// Anchor identifies the point held fixed while a rectangle is resized to a
// target aspect ratio.
type Anchor int

const (
	AnchorCenter Anchor = iota
	AnchorNW
	AnchorNE
	AnchorSW
	AnchorSE
)

// Tunable constants for the crop constraint solver.
const (
	// MinCropFraction is the smallest crop extent relative to the bounding
	// box; crops never shrink below 5% of the bounding-box width.
	MinCropFraction = 0.05

	// Shrink-search bounds and convergence precision.
	shrinkLo        = 0.01
	shrinkHi        = 1.0
	shrinkPrecision = 0.001
)

// FitToAspectRatio resizes the rectangle to the aspect ratio ar (width over
// height), never shrinking below the original extent: if deriving height from
// the current width would grow the rectangle, width is kept and height grows;
// otherwise height is kept and width grows. The anchor point of the original
// rectangle stays fixed. Non-positive aspect ratios return the rectangle
// unchanged.
func FitToAspectRatio(r Rect, ar float64, anchor Anchor) Rect {
	if ar <= 0 || r.Width <= 0 || r.Height <= 0 {
		return r
	}
	w, h := r.Width, r.Height
	if widthDerivedHeight := r.Width / ar; widthDerivedHeight > r.Height {
		h = widthDerivedHeight
	} else {
		w = r.Height * ar
	}

	out := Rect{Width: w, Height: h}
	switch anchor {
	case AnchorNW:
		out.X, out.Y = r.X, r.Y
	case AnchorNE:
		out.X, out.Y = r.X+r.Width-w, r.Y
	case AnchorSW:
		out.X, out.Y = r.X, r.Y+r.Height-h
	case AnchorSE:
		out.X, out.Y = r.X+r.Width-w, r.Y+r.Height-h
	default: // AnchorCenter
		c := r.Center()
		out.X, out.Y = c.X-w/2, c.Y-h/2
	}
	return out
}

// ConstrainToValidArea returns the rectangle unchanged when it already lies
// inside the polygon. Otherwise it binary-searches the largest uniform shrink
// factor about the rectangle's center that produces a valid crop. If even the
// smallest factor is invalid, it falls back to MinimumCrop.
//
// The search relies on monotonicity: shrinking a centered rectangle whose
// scaled copy is valid keeps it valid, so the largest valid factor is well
// defined.
func ConstrainToValidArea(r Rect, p Polygon, ar float64) Rect {
	if CropIsValid(r, p) {
		return r
	}

	lo, hi := shrinkLo, shrinkHi
	best := 0.0
	if CropIsValid(r.ScaleFromCenter(lo), p) {
		best = lo
		for hi-lo > shrinkPrecision {
			mid := (lo + hi) / 2
			if CropIsValid(r.ScaleFromCenter(mid), p) {
				best = mid
				lo = mid
			} else {
				hi = mid
			}
		}
	}
	if best == 0 {
		return MinimumCrop(p, ar)
	}
	return r.ScaleFromCenter(best)
}

// MinimumCrop returns the fallback crop: MinCropFraction of the polygon's
// bounding extent, sized to the aspect ratio ar and centered at the polygon
// centroid. Thin footprints (strongly rotated, elongated images) may not admit
// even that much around the centroid, so the fallback keeps shrinking with no
// lower cutoff until the crop fits.
func MinimumCrop(p Polygon, ar float64) Rect {
	if ar <= 0 {
		ar = 1
	}
	ext := p.Bounds()
	w := ext.Width * MinCropFraction
	h := w / ar
	c := p.Centroid()
	r := Rect{X: c.X - w/2, Y: c.Y - h/2, Width: w, Height: h}
	if CropIsValid(r, p) {
		return r
	}

	lo, hi := 0.5, 1.0
	for i := 0; i < 64 && !CropIsValid(r.ScaleFromCenter(lo), p); i++ {
		hi = lo
		lo /= 2
	}
	if !CropIsValid(r.ScaleFromCenter(lo), p) {
		// Degenerate polygon; nothing fits anywhere.
		return r.ScaleFromCenter(lo)
	}
	for hi-lo > shrinkPrecision {
		mid := (lo + hi) / 2
		if CropIsValid(r.ScaleFromCenter(mid), p) {
			lo = mid
		} else {
			hi = mid
		}
	}
	return r.ScaleFromCenter(lo)
}

// MaxCropAtAspectRatio returns the largest valid crop of aspect ratio ar
// inside the polygon: it starts from the biggest rectangle at that aspect
// ratio fitting the polygon's bounding extent, centered at the centroid, and
// shrinks it into validity with the same search as ConstrainToValidArea.
func MaxCropAtAspectRatio(p Polygon, ar float64) Rect {
	if ar <= 0 {
		return MinimumCrop(p, 1)
	}
	ext := p.Bounds()
	w := ext.Width
	h := w / ar
	if h > ext.Height {
		h = ext.Height
		w = h * ar
	}
	c := p.Centroid()
	start := Rect{X: c.X - w/2, Y: c.Y - h/2, Width: w, Height: h}
	return ConstrainToValidArea(start, p, ar)
}
