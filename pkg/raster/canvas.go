// Package raster draws element trees into in-memory RGBA images.
package raster

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"unicode/utf8"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/go-drift/strata/pkg/element"
	"github.com/go-drift/strata/pkg/errors"
	"github.com/go-drift/strata/pkg/geometry"
	"github.com/go-drift/strata/pkg/layout"
)

// Canvas is an element.TextTarget backed by an *image.RGBA. Rectangles are
// snapped to whole pixels and composited with the Over operator.
type Canvas struct {
	img  *image.RGBA
	face font.Face
}

var _ element.TextTarget = (*Canvas)(nil)

// Option configures a Canvas.
type Option func(*Canvas)

// WithFace sets the face used for text. The default is basicfont.Face7x13.
func WithFace(face font.Face) Option {
	return func(c *Canvas) { c.face = face }
}

// NewCanvas returns a transparent canvas of the given pixel size.
func NewCanvas(width, height int, opts ...Option) *Canvas {
	c := &Canvas{
		img:  image.NewRGBA(image.Rect(0, 0, width, height)),
		face: basicfont.Face7x13,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Size returns the canvas size as a geometry.Size.
func (c *Canvas) Size() geometry.Size {
	b := c.img.Bounds()
	return geometry.Size{Width: float64(b.Dx()), Height: float64(b.Dy())}
}

// Location returns the location covering the whole canvas.
func (c *Canvas) Location() geometry.Location {
	return geometry.At(geometry.Rect{Size: c.Size()})
}

// Clear replaces every pixel with col.
func (c *Canvas) Clear(col color.NRGBA) {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{}, draw.Src)
}

// FillRect composites col over the pixels covered by rect.
func (c *Canvas) FillRect(rect geometry.Rect, col color.NRGBA) {
	b := layout.Bounds(rect).Intersect(c.img.Bounds())
	if b.Empty() {
		return
	}
	draw.Draw(c.img, b, image.NewUniform(col), image.Point{}, draw.Over)
}

// DrawText centers a single line of text in rect, clipped to rect. Text
// wider than rect is truncated from the end.
func (c *Canvas) DrawText(rect geometry.Rect, text string, col color.NRGBA) {
	b := layout.Bounds(rect).Intersect(c.img.Bounds())
	if b.Empty() || text == "" {
		return
	}
	dst, ok := c.img.SubImage(b).(*image.RGBA)
	if !ok {
		return
	}
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(col), Face: c.face}

	limit := fixed.I(b.Dx())
	for d.MeasureString(text) > limit && text != "" {
		_, size := utf8.DecodeLastRuneInString(text)
		text = text[:len(text)-size]
	}
	width := d.MeasureString(text)

	m := c.face.Metrics()
	x := fixed.I(b.Min.X) + (limit-width)/2
	y := fixed.I(b.Min.Y) + (fixed.I(b.Dy())-m.Ascent-m.Descent)/2 + m.Ascent
	d.Dot = fixed.Point26_6{X: x, Y: y}
	d.DrawString(text)
}

// Image returns the backing image.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// Scaled returns a copy of the canvas resized to width by height with
// bilinear filtering.
func (c *Canvas) Scaled(width, height int) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.ApproxBiLinear.Scale(out, out.Bounds(), c.img, c.img.Bounds(), draw.Src, nil)
	return out
}

// WritePNG encodes the canvas as PNG.
func (c *Canvas) WritePNG(w io.Writer) error {
	return WritePNG(w, c.img)
}

// WritePNG encodes img as PNG, wrapping failures as render errors.
func WritePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return &errors.StrataError{Op: "raster.WritePNG", Kind: errors.KindRender, Err: err}
	}
	return nil
}

// Render draws root over a background into a new canvas of the given size.
func Render(root element.Drawable, res element.Resources, width, height int, background color.NRGBA, opts ...Option) *Canvas {
	c := NewCanvas(width, height, opts...)
	c.Clear(background)
	root.Draw(c, res, c.Location())
	return c
}
