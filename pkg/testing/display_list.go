package testing

import (
	"fmt"
	"image/color"
	"math"

	"github.com/go-drift/strata/pkg/element"
	"github.com/go-drift/strata/pkg/geometry"
)

// DisplayOp represents a recorded draw call.
type DisplayOp struct {
	Op     string         `json:"op"`
	Params map[string]any `json:"params,omitempty"`
}

// Recorder is an element.TextTarget that records every call as a
// DisplayOp. It also keeps the raw rectangles for exact assertions.
type Recorder struct {
	ops   []DisplayOp
	rects []geometry.Rect
}

var _ element.TextTarget = (*Recorder)(nil)

// FillRect records a "fillRect" op.
func (r *Recorder) FillRect(rect geometry.Rect, c color.NRGBA) {
	r.ops = append(r.ops, DisplayOp{
		Op:     "fillRect",
		Params: sortedMap("rect", serializeRect(rect), "color", serializeColor(c)),
	})
	r.rects = append(r.rects, rect)
}

// DrawText records a "drawText" op.
func (r *Recorder) DrawText(rect geometry.Rect, text string, c color.NRGBA) {
	r.ops = append(r.ops, DisplayOp{
		Op:     "drawText",
		Params: sortedMap("rect", serializeRect(rect), "text", text, "color", serializeColor(c)),
	})
	r.rects = append(r.rects, rect)
}

// Ops returns the recorded operations in call order.
func (r *Recorder) Ops() []DisplayOp {
	return r.ops
}

// Rects returns the unrounded rectangle of each recorded op.
func (r *Recorder) Rects() []geometry.Rect {
	return r.rects
}

// Reset clears the recording.
func (r *Recorder) Reset() {
	r.ops = nil
	r.rects = nil
}

// --- Serialization helpers ---

func serializeRect(r geometry.Rect) map[string]any {
	return sortedMap(
		"left", round2(r.Left()),
		"top", round2(r.Top()),
		"right", round2(r.Right()),
		"bottom", round2(r.Bottom()),
	)
}

func serializeColor(c color.NRGBA) string {
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}

// round2 rounds a float64 to 2 decimal places.
func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// sortedMap creates a map from alternating key-value pairs. The snapshot
// encoder writes map keys in sorted order.
func sortedMap(kvs ...any) map[string]any {
	m := make(map[string]any, len(kvs)/2)
	for i := 0; i+1 < len(kvs); i += 2 {
		m[kvs[i].(string)] = kvs[i+1]
	}
	return m
}
