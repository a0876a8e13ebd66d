package picture

import (
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/go-drift/strata/pkg/build"
	"github.com/go-drift/strata/pkg/element"
	"github.com/go-drift/strata/pkg/geometry"
	stratatest "github.com/go-drift/strata/pkg/testing"
)

var black = color.NRGBA{A: 255}

func TestReplayMatchesDirectDraw(t *testing.T) {
	root := build.Build(element.Column(element.FillColor(black), element.Text("hi")))
	size := geometry.Size{Width: 40, Height: 20}

	direct := &stratatest.Recorder{}
	root.Draw(direct, element.NoResources, geometry.At(geometry.Rect{Size: size}))

	pic := Record(root, element.NoResources, size)
	replayed := &stratatest.Recorder{}
	pic.Paint(replayed)

	if diff := cmp.Diff(direct.Ops(), replayed.Ops()); diff != "" {
		t.Errorf("replay differs (-direct +replayed):\n%s", diff)
	}
	if pic.Size() != size {
		t.Errorf("Size() = %v, want %v", pic.Size(), size)
	}
}

func TestPaintDropsTextOnPlainTarget(t *testing.T) {
	pic := Record(build.Build(element.Text("hi")), element.NoResources, geometry.Size{Width: 10, Height: 10})
	if pic.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", pic.Len())
	}

	fills := 0
	pic.Paint(countingTarget{&fills})
	if fills != 1 {
		t.Errorf("fills = %d, want 1", fills)
	}
}

func TestEndRecordingIsIndependent(t *testing.T) {
	var r Recorder
	target := r.BeginRecording(geometry.Size{Width: 1, Height: 1})
	target.FillRect(geometry.Rect{}, black)
	first := r.EndRecording()

	r.BeginRecording(geometry.Size{Width: 1, Height: 1})
	second := r.EndRecording()

	if first.Len() != 1 || second.Len() != 0 {
		t.Errorf("lens = %d, %d; want 1, 0", first.Len(), second.Len())
	}

	target.FillRect(geometry.Rect{}, black)
	if r.EndRecording().Len() != 0 {
		t.Error("draws after EndRecording must be ignored")
	}
}

type countingTarget struct{ n *int }

func (c countingTarget) FillRect(geometry.Rect, color.NRGBA) { *c.n++ }
