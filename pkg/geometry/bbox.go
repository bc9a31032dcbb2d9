// Package geometry defines the bounding-box primitives shared by every
// block and element in the classification core. Coordinates are PDF
// points; y increases downward, matching the page coordinate system
// the block extractor emits.
package geometry

import (
	"fmt"
	"math"
)

// BBox is an axis-aligned rectangle. Invariant: X0 <= X1 and Y0 <= Y1.
type BBox struct {
	X0 float64 `json:"x0"`
	Y0 float64 `json:"y0"`
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
}

// NewBBox constructs a BBox, normalizing reversed coordinates so the
// invariant always holds for callers that don't control extraction
// order.
func NewBBox(x0, y0, x1, y1 float64) BBox {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	return BBox{X0: x0, Y0: y0, X1: x1, Y1: y1}
}

// Validate reports whether the box's coordinates are well-formed. A
// box failing this check is a data error (spec.md §7): the offending
// block should be dropped, not trusted.
func (b BBox) Validate() error {
	if b.X0 > b.X1 {
		return fmt.Errorf("geometry: x0 (%f) > x1 (%f)", b.X0, b.X1)
	}
	if b.Y0 > b.Y1 {
		return fmt.Errorf("geometry: y0 (%f) > y1 (%f)", b.Y0, b.Y1)
	}
	return nil
}

// Width returns the box's horizontal extent.
func (b BBox) Width() float64 { return b.X1 - b.X0 }

// Height returns the box's vertical extent.
func (b BBox) Height() float64 { return b.Y1 - b.Y0 }

// Area returns the box's area.
func (b BBox) Area() float64 { return b.Width() * b.Height() }

// Center returns the box's center point.
func (b BBox) Center() Point {
	return Point{X: (b.X0 + b.X1) / 2, Y: (b.Y0 + b.Y1) / 2}
}

// FullyInside reports whether b is entirely contained within other,
// inclusive of shared edges.
func (b BBox) FullyInside(other BBox) bool {
	return b.X0 >= other.X0 && b.Y0 >= other.Y0 && b.X1 <= other.X1 && b.Y1 <= other.Y1
}

// Intersects reports whether b and other share any area.
func (b BBox) Intersects(other BBox) bool {
	if b.X1 <= other.X0 || other.X1 <= b.X0 {
		return false
	}
	if b.Y1 <= other.Y0 || other.Y1 <= b.Y0 {
		return false
	}
	return true
}

// OverlapArea returns the area shared between b and other, or 0 if
// they don't intersect.
func (b BBox) OverlapArea(other BBox) float64 {
	x0 := math.Max(b.X0, other.X0)
	y0 := math.Max(b.Y0, other.Y0)
	x1 := math.Min(b.X1, other.X1)
	y1 := math.Min(b.Y1, other.Y1)
	if x1 <= x0 || y1 <= y0 {
		return 0
	}
	return (x1 - x0) * (y1 - y0)
}

// Expand returns a copy of b grown by margin on every side.
func (b BBox) Expand(margin float64) BBox {
	return BBox{X0: b.X0 - margin, Y0: b.Y0 - margin, X1: b.X1 + margin, Y1: b.Y1 + margin}
}

// VerticalDistance returns the gap between b and other along the
// y-axis: 0 if they overlap vertically, otherwise the distance between
// the nearest edges.
func (b BBox) VerticalDistance(other BBox) float64 {
	if b.Y1 < other.Y0 {
		return other.Y0 - b.Y1
	}
	if other.Y1 < b.Y0 {
		return b.Y0 - other.Y1
	}
	return 0
}

// HorizontalDistance returns the gap between b and other along the
// x-axis: 0 if they overlap horizontally, otherwise the distance
// between the nearest edges.
func (b BBox) HorizontalDistance(other BBox) float64 {
	if b.X1 < other.X0 {
		return other.X0 - b.X1
	}
	if other.X1 < b.X0 {
		return b.X0 - other.X1
	}
	return 0
}

// AlignedWithin reports whether b and other are left-aligned (their
// X0 values differ by at most tolerance).
func (b BBox) AlignedWithin(other BBox, tolerance float64) bool {
	return math.Abs(b.X0-other.X0) <= tolerance
}

// String returns a human-readable representation of the box.
func (b BBox) String() string {
	return fmt.Sprintf("BBox[(%.1f,%.1f)-(%.1f,%.1f)]", b.X0, b.Y0, b.X1, b.Y1)
}

// Point is a 2D coordinate in page space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Distance returns the Euclidean distance between p and other.
func (p Point) Distance(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}
