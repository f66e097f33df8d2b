package geom

import (
	"fmt"
	"math"
)

// Eps is the tolerance used for containment and overlap tests so that
// touching shapes and floating-point noise do not count as collisions.
const Eps = 1e-9

// Point is a position in canvas space.
type Point struct {
	X float64 `json:"x" toml:"x"`
	Y float64 `json:"y" toml:"y"`
}

// Pt returns the point (x, y).
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

func (p Point) String() string { return fmt.Sprintf("(%g, %g)", p.X, p.Y) }

// Add returns p translated by (dx, dy).
func (p Point) Add(dx, dy float64) Point { return Point{X: p.X + dx, Y: p.Y + dy} }

// Distance returns the Euclidean distance between p and o.
func (p Point) Distance(o Point) float64 { return math.Hypot(p.X-o.X, p.Y-o.Y) }

// Bounds is the usable canvas size for one layout pass.
type Bounds struct {
	Width  float64 `json:"width" toml:"width"`
	Height float64 `json:"height" toml:"height"`
}

// Area returns the canvas area.
func (b Bounds) Area() float64 { return b.Width * b.Height }

// Empty reports whether the bounds have no usable area.
func (b Bounds) Empty() bool { return !(b.Width > 0) || !(b.Height > 0) }

// Rect returns the bounds as a rectangle anchored at the origin.
func (b Bounds) Rect() Rect { return Rect{X0: 0, Y0: 0, X1: b.Width, Y1: b.Height} }

// Center returns the canvas center.
func (b Bounds) Center() Point { return Point{X: b.Width / 2, Y: b.Height / 2} }

// Rect is an axis-aligned rectangle. X0/Y0 is the top-left corner and
// X1/Y1 the bottom-right corner; constructors keep X0 <= X1 and Y0 <= Y1.
type Rect struct {
	X0 float64 `json:"x0"`
	Y0 float64 `json:"y0"`
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
}

// XYWH returns the rectangle with origin (x, y) and the given size. Negative
// sizes are normalised.
func XYWH(x, y, w, h float64) Rect {
	return Rect{X0: x, Y0: y, X1: x + w, Y1: y + h}.Abs()
}

// Abs returns r with non-negative width and height.
func (r Rect) Abs() Rect {
	return Rect{
		X0: min(r.X0, r.X1),
		Y0: min(r.Y0, r.Y1),
		X1: max(r.X0, r.X1),
		Y1: max(r.Y0, r.Y1),
	}
}

// Width returns the horizontal span of r.
func (r Rect) Width() float64 { return r.X1 - r.X0 }

// Height returns the vertical span of r.
func (r Rect) Height() float64 { return r.Y1 - r.Y0 }

// Center returns the midpoint of r.
func (r Rect) Center() Point { return Point{X: (r.X0 + r.X1) / 2, Y: (r.Y0 + r.Y1) / 2} }

// Area returns the area of r, or 0 for an empty rectangle.
func (r Rect) Area() float64 {
	if r.Empty() {
		return 0
	}
	return r.Width() * r.Height()
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool { return r.X1 <= r.X0 || r.Y1 <= r.Y0 }

// Inset shrinks r by d on every side. A negative d grows it.
func (r Rect) Inset(d float64) Rect {
	return Rect{X0: r.X0 + d, Y0: r.Y0 + d, X1: r.X1 - d, Y1: r.Y1 - d}
}

// ContainsPoint reports whether p lies inside r (edges inclusive).
func (r Rect) ContainsPoint(p Point) bool {
	return p.X >= r.X0-Eps && p.X <= r.X1+Eps && p.Y >= r.Y0-Eps && p.Y <= r.Y1+Eps
}

// StrictlyContainsPoint reports whether p lies in the interior of r.
func (r Rect) StrictlyContainsPoint(p Point) bool {
	return p.X > r.X0+Eps && p.X < r.X1-Eps && p.Y > r.Y0+Eps && p.Y < r.Y1-Eps
}

// Contains reports whether o lies entirely within r.
func (r Rect) Contains(o Rect) bool {
	return o.X0 >= r.X0-Eps && o.Y0 >= r.Y0-Eps && o.X1 <= r.X1+Eps && o.Y1 <= r.Y1+Eps
}

// Intersects reports whether r and o overlap with positive area. Rectangles
// that only share an edge do not intersect.
func (r Rect) Intersects(o Rect) bool {
	return r.X0 < o.X1-Eps && r.X1 > o.X0+Eps && r.Y0 < o.Y1-Eps && r.Y1 > o.Y0+Eps
}

// Intersect returns the overlap of r and o, or the zero Rect if they do not
// overlap.
func (r Rect) Intersect(o Rect) Rect {
	out := Rect{
		X0: max(r.X0, o.X0),
		Y0: max(r.Y0, o.Y0),
		X1: min(r.X1, o.X1),
		Y1: min(r.Y1, o.Y1),
	}
	if out.Empty() {
		return Rect{}
	}
	return out
}

// Union returns the smallest rectangle containing r and o.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		X0: min(r.X0, o.X0),
		Y0: min(r.Y0, o.Y0),
		X1: max(r.X1, o.X1),
		Y1: max(r.Y1, o.Y1),
	}
}

// ClosestPoint returns the point of r nearest to p.
func (r Rect) ClosestPoint(p Point) Point {
	return Point{
		X: math.Max(r.X0, math.Min(p.X, r.X1)),
		Y: math.Max(r.Y0, math.Min(p.Y, r.Y1)),
	}
}

// Circle is a circle given by center and radius.
type Circle struct {
	Center Point
	Radius float64
}

// Area returns πr².
func (c Circle) Area() float64 { return math.Pi * c.Radius * c.Radius }

// BoundingBox returns the smallest rectangle enclosing c.
func (c Circle) BoundingBox() Rect {
	return Rect{
		X0: c.Center.X - c.Radius,
		Y0: c.Center.Y - c.Radius,
		X1: c.Center.X + c.Radius,
		Y1: c.Center.Y + c.Radius,
	}
}

// IntersectsRect reports whether c and r overlap, using the distance from the
// circle center to the closest point of r.
func (c Circle) IntersectsRect(r Rect) bool {
	q := r.ClosestPoint(c.Center)
	return c.Center.Distance(q) < c.Radius-Eps
}

// Intersects reports whether two circles overlap.
func (c Circle) Intersects(o Circle) bool {
	return c.Center.Distance(o.Center) < c.Radius+o.Radius-Eps
}

// Region is a canvas sub-area. Protected regions are excluded from label
// and node placement (for example the header strip holding a chart title).
type Region struct {
	Rect
	Protected bool `json:"protected"`
}

// HeaderRegion returns a protected strip of the given height across the top
// of b.
func HeaderRegion(b Bounds, height float64) Region {
	return Region{Rect: Rect{X0: 0, Y0: 0, X1: b.Width, Y1: max(0, height)}, Protected: height > 0}
}
