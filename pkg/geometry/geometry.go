// Package geometry defines the rectangles and points passed down the element
// tree.
package geometry

import (
	"fmt"
	"math"
)

// epsilon is the tolerance for floating-point comparisons.
const epsilon = 0.0001

// Offset represents a 2D point or vector.
type Offset struct {
	X float64
	Y float64
}

// Add returns o + other.
func (o Offset) Add(other Offset) Offset {
	return Offset{X: o.X + other.X, Y: o.Y + other.Y}
}

// Scale returns o multiplied component-wise by s.
func (o Offset) Scale(s float64) Offset {
	return Offset{X: o.X * s, Y: o.Y * s}
}

// Size represents width and height dimensions.
type Size struct {
	Width  float64
	Height float64
}

// Rect is an axis-aligned rectangle given by its top-left corner and size.
type Rect struct {
	Origin Offset
	Size   Size
}

// RectFromLTWH constructs a Rect from left, top, width, height values.
func RectFromLTWH(left, top, width, height float64) Rect {
	return Rect{Origin: Offset{X: left, Y: top}, Size: Size{Width: width, Height: height}}
}

// Unit is the normalized rectangle covering a whole location.
var Unit = RectFromLTWH(0, 0, 1, 1)

// Left returns the x coordinate of the left edge.
func (r Rect) Left() float64 { return r.Origin.X }

// Top returns the y coordinate of the top edge.
func (r Rect) Top() float64 { return r.Origin.Y }

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.Origin.X + r.Size.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Origin.Y + r.Size.Height }

// Center returns the center point of the rectangle.
func (r Rect) Center() Offset {
	return Offset{
		X: r.Origin.X + r.Size.Width*0.5,
		Y: r.Origin.Y + r.Size.Height*0.5,
	}
}

// IsEmpty returns true if the rectangle has zero or negative area.
func (r Rect) IsEmpty() bool {
	return r.Size.Width <= 0 || r.Size.Height <= 0
}

// Contains reports whether p lies inside r (left/top inclusive).
func (r Rect) Contains(p Offset) bool {
	return p.X >= r.Left() && p.X < r.Right() && p.Y >= r.Top() && p.Y < r.Bottom()
}

// Translate returns a new rect offset by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{Origin: Offset{X: r.Origin.X + dx, Y: r.Origin.Y + dy}, Size: r.Size}
}

// Intersect returns the intersection of two rectangles.
// Returns an empty rect if they don't overlap.
func (r Rect) Intersect(other Rect) Rect {
	left := math.Max(r.Left(), other.Left())
	top := math.Max(r.Top(), other.Top())
	right := math.Min(r.Right(), other.Right())
	bottom := math.Min(r.Bottom(), other.Bottom())
	if left >= right || top >= bottom {
		return Rect{}
	}
	return RectFromLTWH(left, top, right-left, bottom-top)
}

// ApproxEqual reports whether both rectangles match within epsilon.
func (r Rect) ApproxEqual(other Rect) bool {
	return floatEqual(r.Origin.X, other.Origin.X) &&
		floatEqual(r.Origin.Y, other.Origin.Y) &&
		floatEqual(r.Size.Width, other.Size.Width) &&
		floatEqual(r.Size.Height, other.Size.Height)
}

func (r Rect) String() string {
	return fmt.Sprintf("rect{origin:(%g,%g), size:(%g,%g)}", r.Origin.X, r.Origin.Y, r.Size.Width, r.Size.Height)
}

// floatEqual returns true if two float64 values are approximately equal.
func floatEqual(a, b float64) bool {
	return math.Abs(a-b) <= epsilon
}
