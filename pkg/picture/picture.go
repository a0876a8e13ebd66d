// Package picture records the draw calls of one frame so they can be
// replayed onto any target without walking the element tree again.
//
// Hosts keep the last Picture and repaint from it until an event or a
// cache invalidation says the tree's output may have changed.
package picture

import (
	"image/color"

	"github.com/go-drift/strata/pkg/element"
	"github.com/go-drift/strata/pkg/geometry"
)

// Picture is an immutable list of draw operations.
type Picture struct {
	ops  []op
	size geometry.Size
}

// Paint replays the recorded operations onto t. Text operations are
// dropped when t cannot draw text.
func (p *Picture) Paint(t element.Target) {
	tt, text := t.(element.TextTarget)
	for _, o := range p.ops {
		switch o := o.(type) {
		case opFill:
			t.FillRect(o.rect, o.color)
		case opText:
			if text {
				tt.DrawText(o.rect, o.text, o.color)
			}
		}
	}
}

// Size returns the size recorded when the picture was created.
func (p *Picture) Size() geometry.Size {
	return p.size
}

// Len returns the number of recorded operations.
func (p *Picture) Len() int {
	return len(p.ops)
}

// Recorder records draw calls into a Picture.
type Recorder struct {
	ops       []op
	recording bool
	size      geometry.Size
}

// BeginRecording starts a new recording session and returns the target to
// draw into.
func (r *Recorder) BeginRecording(size geometry.Size) element.TextTarget {
	r.ops = r.ops[:0]
	r.recording = true
	r.size = size
	return &recordingTarget{recorder: r}
}

// EndRecording finishes the recording and returns the picture.
func (r *Recorder) EndRecording() *Picture {
	if !r.recording {
		return &Picture{size: r.size}
	}
	r.recording = false
	ops := make([]op, len(r.ops))
	copy(ops, r.ops)
	return &Picture{ops: ops, size: r.size}
}

// Record draws root at a location covering size and returns the picture.
func Record(root element.Drawable, res element.Resources, size geometry.Size) *Picture {
	var r Recorder
	t := r.BeginRecording(size)
	root.Draw(t, res, geometry.At(geometry.Rect{Size: size}))
	return r.EndRecording()
}

func (r *Recorder) append(o op) {
	if !r.recording {
		return
	}
	r.ops = append(r.ops, o)
}

type op interface {
	isOp()
}

type opFill struct {
	rect  geometry.Rect
	color color.NRGBA
}

type opText struct {
	rect  geometry.Rect
	text  string
	color color.NRGBA
}

func (opFill) isOp() {}
func (opText) isOp() {}

type recordingTarget struct {
	recorder *Recorder
}

func (t *recordingTarget) FillRect(rect geometry.Rect, c color.NRGBA) {
	t.recorder.append(opFill{rect: rect, color: c})
}

func (t *recordingTarget) DrawText(rect geometry.Rect, text string, c color.NRGBA) {
	t.recorder.append(opText{rect: rect, text: text, color: c})
}
