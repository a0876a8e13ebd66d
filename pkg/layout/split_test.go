package layout

import (
	"image"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/go-drift/strata/pkg/geometry"
)

func TestHorizontalEqualSplit(t *testing.T) {
	loc := geometry.At(geometry.RectFromLTWH(0, 0, 200, 100))
	got := Distribute(loc, Horizontal, []int{1, 1})

	want := []geometry.Rect{
		geometry.RectFromLTWH(0, 0, 100, 100),
		geometry.RectFromLTWH(100, 0, 100, 100),
	}
	assertRects(t, got, want)
}

func TestVerticalWeightedSplit(t *testing.T) {
	loc := geometry.At(geometry.RectFromLTWH(0, 0, 100, 400))
	got := Distribute(loc, Vertical, []int{1, 3})

	want := []geometry.Rect{
		geometry.RectFromLTWH(0, 0, 100, 100),
		geometry.RectFromLTWH(0, 100, 100, 300),
	}
	assertRects(t, got, want)
}

func TestSplitHonoursOrigin(t *testing.T) {
	loc := geometry.At(geometry.RectFromLTWH(50, 10, 90, 30))
	got := Distribute(loc, Horizontal, []int{1, 2})

	want := []geometry.Rect{
		geometry.RectFromLTWH(50, 10, 30, 30),
		geometry.RectFromLTWH(80, 10, 60, 30),
	}
	assertRects(t, got, want)
}

func TestNonPositiveWeightsDefaultToOne(t *testing.T) {
	a := Fractions(Vertical, []int{0, -3, 1})
	b := Fractions(Vertical, []int{1, 1, 1})
	for i := range a {
		if !a[i].ApproxEqual(b[i]) {
			t.Errorf("child %d: %v, want %v", i, a[i], b[i])
		}
	}
}

func TestConservationAlongAxis(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for iter := 0; iter < 200; iter++ {
		n := 1 + rng.IntN(8)
		weights := make([]int, n)
		for i := range weights {
			weights[i] = 1 + rng.IntN(9)
		}
		loc := geometry.At(geometry.RectFromLTWH(
			rng.Float64()*100, rng.Float64()*100,
			1+rng.Float64()*1000, 1+rng.Float64()*1000,
		))

		for _, dir := range []Direction{Vertical, Horizontal} {
			subs := Distribute(loc, dir, weights)
			var sum float64
			for i, sub := range subs {
				if dir == Vertical {
					sum += sub.Rect.Size.Height
					assertClose(t, sub.Rect.Size.Width, loc.Rect.Size.Width, "cross-axis width")
				} else {
					sum += sub.Rect.Size.Width
					assertClose(t, sub.Rect.Size.Height, loc.Rect.Size.Height, "cross-axis height")
				}
				if i > 0 {
					prev := subs[i-1].Rect
					if dir == Vertical {
						assertClose(t, sub.Rect.Top(), prev.Bottom(), "vertical adjacency")
					} else {
						assertClose(t, sub.Rect.Left(), prev.Right(), "horizontal adjacency")
					}
				}
			}
			want := loc.Rect.Size.Width
			if dir == Vertical {
				want = loc.Rect.Size.Height
			}
			assertClose(t, sum, want, "sum along split axis")
		}
	}
}

func TestDistributeIsDeterministic(t *testing.T) {
	loc := geometry.At(geometry.RectFromLTWH(3, 7, 333, 77))
	weights := []int{3, 1, 4, 1, 5}
	first := Distribute(loc, Horizontal, weights)
	for i := 0; i < 10; i++ {
		again := Distribute(loc, Horizontal, weights)
		for j := range first {
			if first[j] != again[j] {
				t.Fatalf("run %d child %d: %v != %v", i, j, again[j], first[j])
			}
		}
	}
}

func TestAdaptiveResolvesByAspect(t *testing.T) {
	tests := []struct {
		size geometry.Size
		want Direction
	}{
		{geometry.Size{Width: 200, Height: 100}, Horizontal},
		{geometry.Size{Width: 100, Height: 100}, Horizontal},
		{geometry.Size{Width: 80, Height: 100}, Vertical},
	}
	for _, tt := range tests {
		if got := Adaptive.Resolve(tt.size); got != tt.want {
			t.Errorf("Adaptive.Resolve(%+v) = %v, want %v", tt.size, got, tt.want)
		}
	}
	if Vertical.Resolve(geometry.Size{Width: 500, Height: 1}) != Vertical {
		t.Error("concrete directions must resolve to themselves")
	}

	tall := geometry.At(geometry.RectFromLTWH(0, 0, 100, 200))
	got := Distribute(tall, Adaptive, []int{1, 1})
	assertRects(t, got, []geometry.Rect{
		geometry.RectFromLTWH(0, 0, 100, 100),
		geometry.RectFromLTWH(0, 100, 100, 100),
	})
}

func TestParseDirection(t *testing.T) {
	for in, want := range map[string]Direction{
		"vertical": Vertical, "column": Vertical,
		"Horizontal": Horizontal, "line": Horizontal,
		"adaptive": Adaptive, "": Adaptive,
	} {
		got, err := ParseDirection(in)
		if err != nil || got != want {
			t.Errorf("ParseDirection(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseDirection("diagonal"); err == nil {
		t.Error("expected error for unknown direction")
	}
}

func TestSnapKeepsEdgesShared(t *testing.T) {
	loc := geometry.At(geometry.RectFromLTWH(0, 0, 100, 10))
	subs := Distribute(loc, Horizontal, []int{1, 1, 1})

	var prevRight float64
	for i, sub := range subs {
		s := Snap(sub.Rect)
		if i > 0 && s.Left() != prevRight {
			t.Errorf("child %d snapped left %g, want %g", i, s.Left(), prevRight)
		}
		prevRight = s.Right()
	}
	if prevRight != 100 {
		t.Errorf("last snapped right = %g, want 100", prevRight)
	}
	if got := Bounds(subs[1].Rect); got != image.Rect(33, 0, 67, 10) {
		t.Errorf("Bounds = %v", got)
	}
}

func TestEmptyWeights(t *testing.T) {
	if got := Distribute(geometry.At(geometry.Unit), Vertical, nil); len(got) != 0 {
		t.Errorf("expected no locations, got %v", got)
	}
}

func assertRects(t *testing.T, got []geometry.Location, want []geometry.Rect) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d locations, want %d", len(got), len(want))
	}
	for i := range want {
		if !got[i].Rect.ApproxEqual(want[i]) {
			t.Errorf("child %d = %v, want %v", i, got[i].Rect, want[i])
		}
	}
}

func assertClose(t *testing.T, got, want float64, what string) {
	t.Helper()
	if math.Abs(got-want) > 1e-6*math.Max(1, math.Abs(want)) {
		t.Errorf("%s = %v, want %v", what, got, want)
	}
}
