package geometry

import "testing"

func TestSubrect(t *testing.T) {
	loc := At(RectFromLTWH(10, 20, 200, 100))

	tests := []struct {
		name string
		frac Rect
		want Rect
	}{
		{"whole", Unit, RectFromLTWH(10, 20, 200, 100)},
		{"right half", RectFromLTWH(0.5, 0, 0.5, 1), RectFromLTWH(110, 20, 100, 100)},
		{"bottom quarter", RectFromLTWH(0, 0.75, 1, 0.25), RectFromLTWH(10, 95, 200, 25)},
		{"padded", RectFromLTWH(0.1, 0, 0.8, 1), RectFromLTWH(30, 20, 160, 100)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := loc.Subrect(tt.frac).Rect
			if !got.ApproxEqual(tt.want) {
				t.Errorf("Subrect(%v) = %v, want %v", tt.frac, got, tt.want)
			}
		})
	}
}

func TestNestedSubrectComposes(t *testing.T) {
	loc := At(RectFromLTWH(0, 0, 400, 400))
	half := RectFromLTWH(0.5, 0.5, 0.5, 0.5)

	got := loc.Subrect(half).Subrect(half).Rect
	want := RectFromLTWH(300, 300, 100, 100)
	if !got.ApproxEqual(want) {
		t.Errorf("nested Subrect = %v, want %v", got, want)
	}
}

func TestRectEdges(t *testing.T) {
	r := RectFromLTWH(1, 2, 3, 4)
	if r.Right() != 4 || r.Bottom() != 6 {
		t.Errorf("edges = (%g, %g), want (4, 6)", r.Right(), r.Bottom())
	}
	if c := r.Center(); c != (Offset{X: 2.5, Y: 4}) {
		t.Errorf("Center() = %+v", c)
	}
	if !r.Contains(Offset{X: 1, Y: 2}) || r.Contains(Offset{X: 4, Y: 6}) {
		t.Error("Contains should include top-left and exclude bottom-right")
	}
}

func TestIntersect(t *testing.T) {
	a := RectFromLTWH(0, 0, 10, 10)
	b := RectFromLTWH(5, 5, 10, 10)
	if got := a.Intersect(b); !got.ApproxEqual(RectFromLTWH(5, 5, 5, 5)) {
		t.Errorf("Intersect = %v", got)
	}
	if got := a.Intersect(RectFromLTWH(20, 20, 1, 1)); !got.IsEmpty() {
		t.Errorf("disjoint Intersect = %v, want empty", got)
	}
}
