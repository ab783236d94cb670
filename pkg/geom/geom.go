package geom

import "math"

// Point is a 2D point in bounding-box coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size is a width/height pair.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Rect is an axis-aligned rectangle defined by its top-left corner and size.
// Depending on context the fields are pixels or percentages of a bounding box.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Center returns the rectangle's center point.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Corners returns the four corners in clockwise order starting at top-left.
func (r Rect) Corners() [4]Point {
	return [4]Point{
		{r.X, r.Y},
		{r.X + r.Width, r.Y},
		{r.X + r.Width, r.Y + r.Height},
		{r.X, r.Y + r.Height},
	}
}

// ScaleFromCenter returns the rectangle uniformly scaled about its own center.
// Non-positive factors are degenerate and return the rectangle unchanged.
func (r Rect) ScaleFromCenter(factor float64) Rect {
	if factor <= 0 {
		return r
	}
	w := r.Width * factor
	h := r.Height * factor
	c := r.Center()
	return Rect{X: c.X - w/2, Y: c.Y - h/2, Width: w, Height: h}
}

// Polygon is an ordered list of vertices. Footprint polygons always have four
// vertices in clockwise order starting from the image's original top-left.
type Polygon []Point

// Bounds returns the minimal axis-aligned rectangle enclosing the polygon.
func (p Polygon) Bounds() Rect {
	if len(p) == 0 {
		return Rect{}
	}
	minX, minY := p[0].X, p[0].Y
	maxX, maxY := minX, minY
	for _, v := range p[1:] {
		minX = math.Min(minX, v.X)
		minY = math.Min(minY, v.Y)
		maxX = math.Max(maxX, v.X)
		maxY = math.Max(maxY, v.Y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Centroid returns the vertex average.
func (p Polygon) Centroid() Point {
	if len(p) == 0 {
		return Point{}
	}
	var cx, cy float64
	for _, v := range p {
		cx += v.X
		cy += v.Y
	}
	n := float64(len(p))
	return Point{X: cx / n, Y: cy / n}
}

// boundaryEps is the tolerance within which a point on a polygon edge counts
// as inside. Ray casting alone is unstable exactly on edges, and the maximal
// crop of an unrotated image has all four corners exactly on the footprint
// boundary, so the boundary must be inclusive.
const boundaryEps = 1e-6

// Contains reports whether the point lies inside the polygon, using the
// ray-casting odd-even rule. Points on the boundary count as inside.
func (p Polygon) Contains(pt Point) bool {
	if len(p) < 3 {
		return false
	}
	for i := range p {
		if onSegment(pt, p[i], p[(i+1)%len(p)]) {
			return true
		}
	}
	inside := false
	j := len(p) - 1
	for i := 0; i < len(p); i++ {
		vi, vj := p[i], p[j]
		if (vi.Y > pt.Y) != (vj.Y > pt.Y) {
			x := vi.X + (pt.Y-vi.Y)/(vj.Y-vi.Y)*(vj.X-vi.X)
			if pt.X < x {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

// onSegment reports whether pt lies on segment ab within boundaryEps.
func onSegment(pt, a, b Point) bool {
	cross := (b.X-a.X)*(pt.Y-a.Y) - (b.Y-a.Y)*(pt.X-a.X)
	segLen := math.Hypot(b.X-a.X, b.Y-a.Y)
	if segLen == 0 {
		return math.Hypot(pt.X-a.X, pt.Y-a.Y) <= boundaryEps
	}
	if math.Abs(cross)/segLen > boundaryEps {
		return false
	}
	dot := (pt.X-a.X)*(b.X-a.X) + (pt.Y-a.Y)*(b.Y-a.Y)
	return dot >= -boundaryEps && dot <= segLen*segLen+boundaryEps
}

// BoundingBox returns the size of the axis-aligned box enclosing a w by h
// image rotated by deg degrees.
func BoundingBox(w, h, deg float64) Size {
	rad := deg * math.Pi / 180
	sin, cos := math.Abs(math.Sin(rad)), math.Abs(math.Cos(rad))
	return Size{
		Width:  w*cos + h*sin,
		Height: w*sin + h*cos,
	}
}

// FootprintPolygon returns the quadrilateral of actual image pixels inside
// the bounding box of a w by h image rotated by deg degrees about its center.
// Vertices are clockwise starting from the image's original top-left corner.
func FootprintPolygon(w, h, deg float64) Polygon {
	rad := deg * math.Pi / 180
	sin, cos := math.Sin(rad), math.Cos(rad)
	bbox := BoundingBox(w, h, deg)
	cx, cy := w/2, h/2
	// Offset from image space into bounding-box space: both share a center.
	dx, dy := (bbox.Width-w)/2, (bbox.Height-h)/2

	corners := [4]Point{{0, 0}, {w, 0}, {w, h}, {0, h}}
	poly := make(Polygon, 4)
	for i, c := range corners {
		rx := cx + (c.X-cx)*cos - (c.Y-cy)*sin
		ry := cy + (c.X-cx)*sin + (c.Y-cy)*cos
		poly[i] = Point{X: rx + dx, Y: ry + dy}
	}
	return poly
}

// CropIsValid reports whether all four corners of the rectangle lie inside
// the polygon. This is a corner-only approximation of full containment: for
// a convex footprint polygon and an axis-aligned rectangle it is exact.
func CropIsValid(r Rect, p Polygon) bool {
	for _, c := range r.Corners() {
		if !p.Contains(c) {
			return false
		}
	}
	return true
}

// ToPercentage converts a pixel-space rectangle into percentages of the
// given bounding box. An empty bounding box returns the rectangle unchanged.
func ToPercentage(r Rect, bbox Size) Rect {
	if bbox.Width <= 0 || bbox.Height <= 0 {
		return r
	}
	return Rect{
		X:      r.X / bbox.Width * 100,
		Y:      r.Y / bbox.Height * 100,
		Width:  r.Width / bbox.Width * 100,
		Height: r.Height / bbox.Height * 100,
	}
}

// FromPercentage converts a percentage-space rectangle into pixels of the
// given bounding box. An empty bounding box returns the rectangle unchanged.
func FromPercentage(r Rect, bbox Size) Rect {
	if bbox.Width <= 0 || bbox.Height <= 0 {
		return r
	}
	return Rect{
		X:      r.X / 100 * bbox.Width,
		Y:      r.Y / 100 * bbox.Height,
		Width:  r.Width / 100 * bbox.Width,
		Height: r.Height / 100 * bbox.Height,
	}
}
