// Package geom implements the crop geometry for rotated images.
//
// A source image rotated by some angle occupies a quadrilateral footprint
// inside its axis-aligned bounding box. This package computes that bounding
// box and footprint, tests whether candidate crop rectangles stay within the
// footprint, and solves for the largest valid crop at a required aspect ratio.
//
// # Coordinate System
//
// All coordinates are float64 with (0,0) at the top-left of the bounding box,
// X increasing rightward and Y increasing downward. Angles are degrees.
// Rectangles are expressed either in pixels or as percentages of a bounding
// box (0-100 per axis); ToPercentage and FromPercentage convert between the
// two spaces.
//
// # Error Handling
//
// Geometry routines never return errors. Inputs that would be degenerate
// (zero or negative aspect ratios, non-positive scale factors, empty bounding
// boxes) short-circuit to a no-op, and crop constraint solving falls back to
// a minimal centered rectangle rather than failing.
package geom
