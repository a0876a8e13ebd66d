package raster

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/go-drift/strata/pkg/build"
	"github.com/go-drift/strata/pkg/element"
	"github.com/go-drift/strata/pkg/geometry"
)

var (
	black = color.NRGBA{A: 255}
	red   = color.NRGBA{R: 255, A: 255}
	blue  = color.NRGBA{B: 255, A: 255}
	white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

func rgba(c color.Color) color.RGBA {
	return color.RGBAModel.Convert(c).(color.RGBA)
}

func TestFillRectCoversSnappedPixels(t *testing.T) {
	c := NewCanvas(10, 10)
	c.FillRect(geometry.RectFromLTWH(2.4, 2.6, 3.2, 4), red)

	if got := rgba(c.Image().At(2, 3)); got != rgba(red) {
		t.Errorf("inside pixel = %v, want red", got)
	}
	if got := c.Image().At(2, 2); rgba(got).A != 0 {
		t.Errorf("pixel above rect = %v, want transparent", got)
	}
	if got := c.Image().At(6, 3); rgba(got).A != 0 {
		t.Errorf("pixel right of rect = %v, want transparent", got)
	}
}

func TestFillRectClipsToCanvas(t *testing.T) {
	c := NewCanvas(4, 4)
	c.FillRect(geometry.RectFromLTWH(-10, -10, 100, 100), blue)
	c.FillRect(geometry.RectFromLTWH(50, 50, 10, 10), red)

	if got := rgba(c.Image().At(3, 3)); got != rgba(blue) {
		t.Errorf("corner = %v, want blue", got)
	}
}

func TestFillRectComposites(t *testing.T) {
	c := NewCanvas(1, 1)
	c.Clear(black)
	c.FillRect(geometry.RectFromLTWH(0, 0, 1, 1), color.NRGBA{R: 255, G: 255, B: 255, A: 128})

	got := rgba(c.Image().At(0, 0))
	if got.A != 255 || got.R < 120 || got.R > 136 {
		t.Errorf("half white over black = %v, want mid grey", got)
	}
}

func TestDrawTextStaysInRect(t *testing.T) {
	c := NewCanvas(100, 40)
	c.Clear(black)
	rect := geometry.RectFromLTWH(10, 10, 60, 20)
	c.DrawText(rect, "hello strata, this is long", white)

	inside, outside := 0, 0
	bounds := image.Rect(10, 10, 70, 30)
	for y := 0; y < 40; y++ {
		for x := 0; x < 100; x++ {
			if rgba(c.Image().At(x, y)) == rgba(black) {
				continue
			}
			if (image.Point{X: x, Y: y}).In(bounds) {
				inside++
			} else {
				outside++
			}
		}
	}
	if inside == 0 {
		t.Error("expected text pixels inside the rect")
	}
	if outside != 0 {
		t.Errorf("%d text pixels outside the rect", outside)
	}
}

// recordingFace draws like basicfont and records the runes asked for.
type recordingFace struct {
	font.Face
	runes []rune
}

func (f *recordingFace) Glyph(dot fixed.Point26_6, r rune) (image.Rectangle, image.Image, image.Point, fixed.Int26_6, bool) {
	f.runes = append(f.runes, r)
	return f.Face.Glyph(dot, r)
}

func TestWithFaceDrawsThroughFace(t *testing.T) {
	face := &recordingFace{Face: basicfont.Face7x13}
	root := build.Build(element.Text("abc"))
	c := Render(root, element.NoResources, 100, 20, black, WithFace(face))

	if got := string(face.runes); got != "abc" {
		t.Errorf("face drew %q, want %q", got, "abc")
	}
	if c.face != face {
		t.Error("canvas should keep the configured face")
	}
}

func TestRenderLabelTree(t *testing.T) {
	root := build.Build(element.Line(element.FillColor(red), element.Text("ok")))
	c := Render(root, element.NoResources, 40, 20, black)

	if got := rgba(c.Image().At(5, 10)); got != rgba(red) {
		t.Errorf("left half = %v, want red", got)
	}
	if got := rgba(c.Image().At(39, 0)); got != rgba(black) {
		t.Errorf("right edge = %v, want background", got)
	}
}

func TestWritePNGRoundTrips(t *testing.T) {
	c := NewCanvas(3, 2)
	c.Clear(red)

	var buf bytes.Buffer
	if err := c.WritePNG(&buf); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds().Dx() != 3 || img.Bounds().Dy() != 2 {
		t.Errorf("bounds = %v, want 3x2", img.Bounds())
	}
}

func TestScaled(t *testing.T) {
	c := NewCanvas(2, 2)
	c.Clear(blue)
	out := c.Scaled(8, 8)
	if out.Bounds().Dx() != 8 {
		t.Fatalf("width = %d, want 8", out.Bounds().Dx())
	}
	if got := rgba(out.At(4, 4)); got != rgba(blue) {
		t.Errorf("center = %v, want blue", got)
	}
}
