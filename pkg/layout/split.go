// Package layout implements the weighted rectangular subdivision used by
// split elements.
//
// A split hands each child a share of its location proportional to the
// child's weight. The computation is a single left-to-right pass in exact
// floating point: no rounding happens here. Backends with a pixel or cell
// grid round at the edge with Snap.
package layout

import (
	"fmt"
	"image"
	"math"
	"strings"

	"github.com/go-drift/strata/pkg/geometry"
)

// Direction selects the axis along which a split stacks its children.
type Direction int

const (
	// Vertical stacks children top to bottom; each gets the full width.
	Vertical Direction = iota
	// Horizontal stacks children left to right; each gets the full height.
	Horizontal
	// Adaptive picks Horizontal when the location is at least as wide as it
	// is tall and Vertical otherwise, re-evaluated on every layout.
	Adaptive
)

func (d Direction) String() string {
	switch d {
	case Vertical:
		return "vertical"
	case Horizontal:
		return "horizontal"
	case Adaptive:
		return "adaptive"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// ParseDirection parses the names produced by String.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "vertical", "column":
		return Vertical, nil
	case "horizontal", "line", "row":
		return Horizontal, nil
	case "adaptive", "", "auto":
		return Adaptive, nil
	}
	return 0, fmt.Errorf("unknown split direction %q", s)
}

// Resolve returns the concrete direction to use for a location of the given
// size. Vertical and Horizontal resolve to themselves.
func (d Direction) Resolve(size geometry.Size) Direction {
	if d != Adaptive {
		return d
	}
	if size.Width >= size.Height {
		return Horizontal
	}
	return Vertical
}

// Weight returns w, or 1 when w is not positive.
func Weight(w int) int {
	if w <= 0 {
		return 1
	}
	return w
}

// Weighted is implemented by split children that carry a weight, and by
// wrappers that forward one.
type Weighted interface {
	FlexWeight() int
}

// WeightOf returns the weight declared by v, or 1.
func WeightOf(v any) int {
	if w, ok := v.(Weighted); ok {
		return Weight(w.FlexWeight())
	}
	return 1
}

// Fractions returns one normalized rectangle per weight for a concrete
// direction. The rectangles tile the unit square without gaps in order.
// Adaptive is treated as Horizontal; resolve it against a size first.
func Fractions(dir Direction, weights []int) []geometry.Rect {
	if len(weights) == 0 {
		return nil
	}
	total := 0
	for _, w := range weights {
		total += Weight(w)
	}
	fraction := 1 / float64(total)

	// step is the unit offset along the split axis; the cross axis always
	// spans the whole parent.
	step := geometry.Offset{X: fraction}
	if dir == Vertical {
		step = geometry.Offset{Y: fraction}
	}

	rects := make([]geometry.Rect, len(weights))
	var topLeft geometry.Offset
	for i, w := range weights {
		advance := step.Scale(float64(Weight(w)))
		size := geometry.Size{Width: advance.X, Height: 1}
		if dir == Vertical {
			size = geometry.Size{Width: 1, Height: advance.Y}
		}
		rects[i] = geometry.Rect{Origin: topLeft, Size: size}
		topLeft = topLeft.Add(advance)
	}
	return rects
}

// Distribute splits loc into one sub-location per weight.
func Distribute(loc geometry.Location, dir Direction, weights []int) []geometry.Location {
	fracs := Fractions(dir.Resolve(loc.Size()), weights)
	out := make([]geometry.Location, len(fracs))
	for i, f := range fracs {
		out[i] = loc.Subrect(f)
	}
	return out
}

// Snap rounds every edge of r to the nearest integer. Edges are rounded
// independently, so rectangles that shared an edge before snapping still
// share it afterwards.
func Snap(r geometry.Rect) geometry.Rect {
	left := math.Round(r.Left())
	top := math.Round(r.Top())
	right := math.Round(r.Right())
	bottom := math.Round(r.Bottom())
	return geometry.RectFromLTWH(left, top, right-left, bottom-top)
}

// Bounds snaps r and converts it to an image.Rectangle.
func Bounds(r geometry.Rect) image.Rectangle {
	s := Snap(r)
	return image.Rect(int(s.Left()), int(s.Top()), int(s.Right()), int(s.Bottom()))
}
