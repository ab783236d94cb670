package geom

import (
	"math"
	"testing"
)

func TestFitToAspectRatio_NeverShrinks(t *testing.T) {
	tests := []struct {
		name string
		r    Rect
		ar   float64
		want Rect
	}{
		// 100x100 at 2:1 keeps the height and grows the width.
		{"grow width", Rect{0, 0, 100, 100}, 2, Rect{-50, 0, 200, 100}},
		// 100x100 at 1:2 keeps the width and grows the height.
		{"grow height", Rect{0, 0, 100, 100}, 0.5, Rect{0, -50, 100, 200}},
		{"already matching", Rect{10, 20, 200, 100}, 2, Rect{10, 20, 200, 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FitToAspectRatio(tt.r, tt.ar, AnchorCenter)
			if !rectApprox(got, tt.want, 1e-9) {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
			if got.Width < tt.r.Width-1e-9 || got.Height < tt.r.Height-1e-9 {
				t.Errorf("fit shrank the rect: %+v -> %+v", tt.r, got)
			}
		})
	}
}

func TestFitToAspectRatio_Anchors(t *testing.T) {
	r := Rect{10, 10, 100, 100}

	tests := []struct {
		name   string
		anchor Anchor
		fixed  Point // point of the original rect that must not move
	}{
		{"nw", AnchorNW, Point{10, 10}},
		{"ne", AnchorNE, Point{110, 10}},
		{"sw", AnchorSW, Point{10, 110}},
		{"se", AnchorSE, Point{110, 110}},
		{"center", AnchorCenter, Point{60, 60}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FitToAspectRatio(r, 2, tt.anchor)
			var gotFixed Point
			switch tt.anchor {
			case AnchorNW:
				gotFixed = Point{got.X, got.Y}
			case AnchorNE:
				gotFixed = Point{got.X + got.Width, got.Y}
			case AnchorSW:
				gotFixed = Point{got.X, got.Y + got.Height}
			case AnchorSE:
				gotFixed = Point{got.X + got.Width, got.Y + got.Height}
			default:
				gotFixed = got.Center()
			}
			if !approx(gotFixed.X, tt.fixed.X, 1e-9) || !approx(gotFixed.Y, tt.fixed.Y, 1e-9) {
				t.Errorf("anchor moved: got %+v, want %+v", gotFixed, tt.fixed)
			}
			if !approx(got.Width/got.Height, 2, 1e-9) {
				t.Errorf("aspect ratio: got %v, want 2", got.Width/got.Height)
			}
		})
	}
}

func TestFitToAspectRatio_DegenerateInputs(t *testing.T) {
	r := Rect{0, 0, 100, 50}
	for _, ar := range []float64{0, -2} {
		if got := FitToAspectRatio(r, ar, AnchorCenter); got != r {
			t.Errorf("ar=%v: got %+v, want unchanged", ar, got)
		}
	}
	empty := Rect{0, 0, 0, 50}
	if got := FitToAspectRatio(empty, 2, AnchorCenter); got != empty {
		t.Errorf("empty rect: got %+v, want unchanged", got)
	}
}

func TestShrinkMonotonicity(t *testing.T) {
	// Any valid rect stays valid when scaled down about its own center.
	poly := FootprintPolygon(400, 300, 33)
	valid := MaxCropAtAspectRatio(poly, 4.0/3.0)

	for _, f := range []float64{0.9, 0.75, 0.5, 0.25, 0.1, 0.01} {
		if !CropIsValid(valid.ScaleFromCenter(f), poly) {
			t.Errorf("factor %v: shrunk copy of a valid rect became invalid", f)
		}
	}
}

func TestConstrainToValidArea(t *testing.T) {
	tests := []struct {
		name string
		w, h float64
		deg  float64
		ar   float64
		rect func(Polygon) Rect
	}{
		{"valid rect untouched", 400, 300, 45, 1, func(p Polygon) Rect {
			return MaxCropAtAspectRatio(p, 1).ScaleFromCenter(0.5)
		}},
		{"oversized centered rect", 400, 300, 45, 1.5, func(p Polygon) Rect {
			ext := p.Bounds()
			return Rect{0, 0, ext.Width, ext.Width / 1.5}
		}},
		{"off-center invalid rect", 500, 500, 30, 1, func(p Polygon) Rect {
			return Rect{0, 0, 200, 200}
		}},
		{"hopeless rect falls back to minimum", 400, 300, 45, 2, func(p Polygon) Rect {
			// Far outside any footprint: even the smallest factor misses.
			return Rect{-10000, -10000, 50, 25}
		}},
		{"thin diagonal footprint", 1000, 10, 45, 1, func(p Polygon) Rect {
			// The footprint is a narrow diagonal band; the 5% fallback
			// square does not fit and must shrink further.
			return Rect{-10000, -10000, 50, 50}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			poly := FootprintPolygon(tt.w, tt.h, tt.deg)
			got := ConstrainToValidArea(tt.rect(poly), poly, tt.ar)
			if !CropIsValid(got, poly) {
				t.Errorf("result %+v not valid under footprint", got)
			}
			if got.Width <= 0 || got.Height <= 0 {
				t.Errorf("result %+v is empty", got)
			}
		})
	}
}

func TestConstrainToValidArea_ValidInputUnchanged(t *testing.T) {
	poly := FootprintPolygon(400, 300, 20)
	r := MaxCropAtAspectRatio(poly, 1).ScaleFromCenter(0.6)
	if got := ConstrainToValidArea(r, poly, 1); got != r {
		t.Errorf("valid rect changed: %+v -> %+v", r, got)
	}
}

func TestMinimumCrop(t *testing.T) {
	poly := FootprintPolygon(1000, 800, 60)
	got := MinimumCrop(poly, 2)

	ext := poly.Bounds()
	if !approx(got.Width, ext.Width*MinCropFraction, 1e-9) {
		t.Errorf("width: got %v, want %v", got.Width, ext.Width*MinCropFraction)
	}
	if !approx(got.Width/got.Height, 2, 1e-9) {
		t.Errorf("aspect: got %v, want 2", got.Width/got.Height)
	}
	c := poly.Centroid()
	gc := got.Center()
	if !approx(gc.X, c.X, 1e-9) || !approx(gc.Y, c.Y, 1e-9) {
		t.Errorf("center: got %+v, want centroid %+v", gc, c)
	}
}

func TestMinimumCrop_ThinFootprintShrinksToFit(t *testing.T) {
	for _, tt := range []struct {
		w, h, deg, ar float64
	}{
		{1000, 10, 45, 1},
		{1000, 10, 30, 16.0 / 9.0},
		{2000, 20, -60, 0.5},
	} {
		poly := FootprintPolygon(tt.w, tt.h, tt.deg)
		got := MinimumCrop(poly, tt.ar)
		if !CropIsValid(got, poly) {
			t.Errorf("%vx%v@%v ar=%v: fallback crop %+v invalid", tt.w, tt.h, tt.deg, tt.ar, got)
		}
		if got.Width <= 0 || got.Height <= 0 {
			t.Errorf("%vx%v@%v ar=%v: fallback crop %+v is empty", tt.w, tt.h, tt.deg, tt.ar, got)
		}
		if !approx(got.Width/got.Height, tt.ar, 1e-9) {
			t.Errorf("%vx%v@%v: aspect got %v, want %v", tt.w, tt.h, tt.deg, got.Width/got.Height, tt.ar)
		}
	}
}

func TestMaxCropAtAspectRatio(t *testing.T) {
	for _, deg := range []float64{0, 15, 45, 90, -70} {
		poly := FootprintPolygon(4000, 3000, deg)
		got := MaxCropAtAspectRatio(poly, 16.0/9.0)
		if !CropIsValid(got, poly) {
			t.Errorf("deg=%v: max crop %+v invalid", deg, got)
		}
		if !approx(got.Width/got.Height, 16.0/9.0, 1e-6) {
			t.Errorf("deg=%v: aspect %v, want %v", deg, got.Width/got.Height, 16.0/9.0)
		}
	}
}

func TestMaxCropAtAspectRatio_DeterministicAcrossStartingGuess(t *testing.T) {
	poly := FootprintPolygon(4000, 3000, 37)
	ar := 3.0 / 2.0

	ref := MaxCropAtAspectRatio(poly, ar)

	// Constraining a deliberately oversized centered start must converge to
	// the same crop regardless of how far off the guess was.
	c := poly.Centroid()
	for _, blowup := range []float64{1.1, 1.5, 3.0} {
		w := poly.Bounds().Width * blowup
		h := w / ar
		start := Rect{X: c.X - w/2, Y: c.Y - h/2, Width: w, Height: h}
		got := ConstrainToValidArea(start, poly, ar)
		if math.Abs(got.Width-ref.Width)/ref.Width > 0.005 {
			t.Errorf("blowup %v: width %v deviates from reference %v", blowup, got.Width, ref.Width)
		}
	}
}
