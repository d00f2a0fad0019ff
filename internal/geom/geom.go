// Package geom holds the logical-unit geometry shared by hit-testing and paint.
package geom

import "math"

// Point is a position in logical units.
type Point struct{ X, Y float64 }

// Add returns p translated by (dx, dy).
func (p Point) Add(dx, dy float64) Point { return Point{p.X + dx, p.Y + dy} }

// Size is a width and height in logical units.
type Size struct{ Width, Height float64 }

// ToRect returns the rectangle of this size anchored at the origin.
func (s Size) ToRect() Rect { return Rect{0, 0, s.Width, s.Height} }

// Rect is an axis-aligned rectangle, X0/Y0 inclusive and X1/Y1 exclusive.
type Rect struct{ X0, Y0, X1, Y1 float64 }

// RectFrom builds a rectangle from an origin and a size.
func RectFrom(origin Point, size Size) Rect {
	return Rect{origin.X, origin.Y, origin.X + size.Width, origin.Y + size.Height}
}

// WithOrigin moves r so its top-left corner is at p, keeping its size.
func (r Rect) WithOrigin(p Point) Rect { return RectFrom(p, r.Size()) }

func (r Rect) Origin() Point   { return Point{r.X0, r.Y0} }
func (r Rect) Size() Size      { return Size{r.Width(), r.Height()} }
func (r Rect) Width() float64  { return r.X1 - r.X0 }
func (r Rect) Height() float64 { return r.Y1 - r.Y0 }

// Center returns the midpoint of r.
func (r Rect) Center() Point { return Point{(r.X0 + r.X1) / 2, (r.Y0 + r.Y1) / 2} }

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X0 && p.X < r.X1 && p.Y >= r.Y0 && p.Y < r.Y1
}

// Intersects reports whether r and o overlap.
func (r Rect) Intersects(o Rect) bool {
	return r.X0 < o.X1 && o.X0 < r.X1 && r.Y0 < o.Y1 && o.Y0 < r.Y1
}

// Translate returns r shifted by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{r.X0 + dx, r.Y0 + dy, r.X1 + dx, r.Y1 + dy}
}

// LineRange returns the half-open range of uniform rows of height lineHeight
// that intersect the vertical extent of r, clamped to [0, count].
func (r Rect) LineRange(lineHeight float64, count int) (start, end int) {
	if lineHeight <= 0 {
		return 0, 0
	}
	start = int(math.Floor(r.Y0 / lineHeight))
	end = int(math.Ceil(r.Y1 / lineHeight))
	if start < 0 {
		start = 0
	}
	if end > count {
		end = count
	}
	if start > end {
		start = end
	}
	return start, end
}
