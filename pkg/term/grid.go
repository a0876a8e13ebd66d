// Package term draws element trees onto a grid of terminal cells.
//
// One cell is one unit of the element coordinate space. Background
// colours are composited per cell; text occupies whole cells. Render turns
// the grid into a string styled with lipgloss.
package term

import (
	"fmt"
	"image/color"
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"

	"github.com/go-drift/strata/pkg/element"
	"github.com/go-drift/strata/pkg/geometry"
	"github.com/go-drift/strata/pkg/layout"
	"github.com/go-drift/strata/pkg/raster"
)

// Cell is one character position.
type Cell struct {
	Rune       rune
	Background color.NRGBA
	Foreground color.NRGBA
}

// Grid is an element.TextTarget made of terminal cells.
type Grid struct {
	width, height int
	bg            *raster.Canvas
	runes         []rune
	fg            []color.NRGBA
}

var _ element.TextTarget = (*Grid)(nil)

// NewGrid returns a blank grid of width by height cells.
func NewGrid(width, height int) *Grid {
	g := &Grid{
		width:  max(width, 0),
		height: max(height, 0),
	}
	g.bg = raster.NewCanvas(g.width, g.height)
	g.runes = make([]rune, g.width*g.height)
	g.fg = make([]color.NRGBA, g.width*g.height)
	g.Clear(color.NRGBA{})
	return g
}

// Size returns the grid size in cells.
func (g *Grid) Size() geometry.Size {
	return geometry.Size{Width: float64(g.width), Height: float64(g.height)}
}

// Clear blanks every cell and sets its background.
func (g *Grid) Clear(background color.NRGBA) {
	g.bg.Clear(background)
	for i := range g.runes {
		g.runes[i] = ' '
		g.fg[i] = color.NRGBA{}
	}
}

// FillRect composites col over the covered cells. Opaque fills hide text
// underneath.
func (g *Grid) FillRect(rect geometry.Rect, col color.NRGBA) {
	g.bg.FillRect(rect, col)
	if col.A != 0xff {
		return
	}
	b := layout.Bounds(rect).Intersect(g.bg.Image().Bounds())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			g.runes[y*g.width+x] = ' '
		}
	}
}

// DrawText writes text on the middle row of rect, centered and truncated
// to the rect's width. Control characters occupy a blank cell.
func (g *Grid) DrawText(rect geometry.Rect, text string, col color.NRGBA) {
	b := layout.Bounds(rect).Intersect(g.bg.Image().Bounds())
	if b.Empty() {
		return
	}
	runes := []rune(text)
	if len(runes) > b.Dx() {
		runes = runes[:b.Dx()]
	}
	y := b.Min.Y + (b.Dy()-1)/2
	x := b.Min.X + (b.Dx()-len(runes))/2
	for i, r := range runes {
		if unicode.IsControl(r) {
			r = ' '
		}
		idx := y*g.width + x + i
		g.runes[idx] = r
		g.fg[idx] = col
	}
}

// At returns the cell at column x, row y.
func (g *Grid) At(x, y int) Cell {
	idx := y*g.width + x
	return Cell{
		Rune:       g.runes[idx],
		Background: color.NRGBAModel.Convert(g.bg.Image().At(x, y)).(color.NRGBA),
		Foreground: g.fg[idx],
	}
}

// Plain returns the grid's text without styling, one line per row.
func (g *Grid) Plain() string {
	lines := make([]string, g.height)
	for y := range lines {
		lines[y] = string(g.runes[y*g.width : (y+1)*g.width])
	}
	return strings.Join(lines, "\n")
}

// Render returns the grid as styled text. Runs of cells sharing colours
// are rendered with one lipgloss style.
func (g *Grid) Render() string {
	lines := make([]string, g.height)
	for y := 0; y < g.height; y++ {
		var line strings.Builder
		start := 0
		for x := 1; x <= g.width; x++ {
			if x < g.width && sameStyle(g.At(start, y), g.At(x, y)) {
				continue
			}
			cell := g.At(start, y)
			line.WriteString(style(cell).Render(string(g.runes[y*g.width+start : y*g.width+x])))
			start = x
		}
		lines[y] = line.String()
	}
	return strings.Join(lines, "\n")
}

func sameStyle(a, b Cell) bool {
	return a.Background == b.Background && (a.Foreground == b.Foreground || b.Rune == ' ')
}

func style(c Cell) lipgloss.Style {
	s := lipgloss.NewStyle()
	if c.Background.A != 0 {
		s = s.Background(lipgloss.Color(Hex(c.Background)))
	}
	if c.Foreground.A != 0 {
		s = s.Foreground(lipgloss.Color(Hex(c.Foreground)))
	}
	return s
}

// Hex formats c as #RRGGBB, dropping alpha.
func Hex(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
