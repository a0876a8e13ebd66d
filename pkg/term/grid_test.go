package term

import (
	"image/color"
	"strings"
	"testing"

	"github.com/go-drift/strata/pkg/build"
	"github.com/go-drift/strata/pkg/element"
	"github.com/go-drift/strata/pkg/geometry"
)

var (
	black = color.NRGBA{A: 255}
	red   = color.NRGBA{R: 255, A: 255}
	white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

func TestFillRectSetsBackground(t *testing.T) {
	g := NewGrid(4, 2)
	g.FillRect(geometry.RectFromLTWH(0, 0, 2, 2), red)

	if got := g.At(1, 1).Background; got != red {
		t.Errorf("filled cell = %v, want red", got)
	}
	if got := g.At(2, 0).Background; got.A != 0 {
		t.Errorf("unfilled cell = %v, want transparent", got)
	}
}

func TestDrawTextCentersAndTruncates(t *testing.T) {
	g := NewGrid(10, 3)
	g.DrawText(geometry.RectFromLTWH(0, 0, 10, 3), "hi", white)
	g.DrawText(geometry.RectFromLTWH(0, 2, 4, 1), "truncate", white)

	want := "          \n    hi    \ntrun      "
	if got := g.Plain(); got != want {
		t.Errorf("Plain() =\n%q\nwant\n%q", got, want)
	}
	if got := g.At(4, 1); got.Rune != 'h' || got.Foreground != white {
		t.Errorf("cell = %+v, want white h", got)
	}
}

func TestDrawTextBlanksControlRunes(t *testing.T) {
	g := NewGrid(5, 3)
	g.DrawText(geometry.RectFromLTWH(0, 0, 5, 3), "a\nb\tc", white)

	want := "     \na b c\n     "
	if got := g.Plain(); got != want {
		t.Errorf("Plain() =\n%q\nwant\n%q", got, want)
	}
	if n := strings.Count(g.Plain(), "\n"); n != 2 {
		t.Errorf("Plain() has %d line breaks, want 2", n)
	}
}

func TestOpaqueFillHidesText(t *testing.T) {
	g := NewGrid(4, 1)
	g.DrawText(geometry.RectFromLTWH(0, 0, 4, 1), "abcd", white)
	g.FillRect(geometry.RectFromLTWH(0, 0, 2, 1), black)
	g.FillRect(geometry.RectFromLTWH(2, 0, 2, 1), color.NRGBA{R: 255, A: 100})

	if got := g.Plain(); got != "  cd" {
		t.Errorf("Plain() = %q, want %q", got, "  cd")
	}
}

func TestRenderContainsText(t *testing.T) {
	g := NewGrid(20, 3)
	root := build.Build(element.Column(element.FillColor(black), element.Text("strata")))
	g.Clear(black)
	root.Draw(g, element.NoResources, geometry.At(geometry.Rect{Size: g.Size()}))

	out := g.Render()
	if !strings.Contains(out, "strata") {
		t.Errorf("Render() = %q, want it to contain the label", out)
	}
	if n := strings.Count(out, "\n"); n != 2 {
		t.Errorf("Render() has %d newlines, want 2", n)
	}
}

func TestHex(t *testing.T) {
	if got := Hex(color.NRGBA{R: 0x12, G: 0xab, B: 0xff, A: 0x80}); got != "#12abff" {
		t.Errorf("Hex = %q", got)
	}
}

func TestZeroGrid(t *testing.T) {
	g := NewGrid(0, 0)
	g.FillRect(geometry.RectFromLTWH(0, 0, 5, 5), red)
	g.DrawText(geometry.RectFromLTWH(0, 0, 5, 5), "x", white)
	if g.Render() != "" || g.Plain() != "" {
		t.Error("zero grid renders nothing")
	}
}
