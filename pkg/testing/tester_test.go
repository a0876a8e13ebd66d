package testing

import (
	"testing"
	"time"

	"github.com/go-drift/strata/pkg/anchor"
	"github.com/go-drift/strata/pkg/build"
	"github.com/go-drift/strata/pkg/element"
	"github.com/go-drift/strata/pkg/geometry"
	"github.com/go-drift/strata/pkg/values"
)

func TestNewTester_Defaults(t *testing.T) {
	tester := NewTester(t)

	if tester.Size().Width != DefaultTestWidth || tester.Size().Height != DefaultTestHeight {
		t.Errorf("expected default size %dx%d, got %vx%v", DefaultTestWidth, DefaultTestHeight, tester.Size().Width, tester.Size().Height)
	}
	if tester.Clock() == nil {
		t.Fatal("expected fake clock to be set")
	}
}

func TestPump_MountsTree(t *testing.T) {
	tester := NewTester(t)
	root := Pump(tester, element.Text("hello"))

	if tester.Root() != element.Drawable(root) {
		t.Fatal("expected pumped element to be the root")
	}
	if tester.Context() == nil {
		t.Fatal("expected build context after Pump")
	}
}

func TestDraw_RecordsLabel(t *testing.T) {
	tester := NewTester(t)
	Pump(tester, element.Text("hello"))

	ops := tester.Draw()
	if len(ops) != 2 || ops[0].Op != "fillRect" || ops[1].Op != "drawText" {
		t.Fatalf("ops = %+v, want fillRect then drawText", ops)
	}
	if ops[1].Params["text"] != "hello" {
		t.Errorf("text = %v, want hello", ops[1].Params["text"])
	}
}

func TestDraw_ResetsBetweenFrames(t *testing.T) {
	tester := NewTester(t)
	Pump(tester, element.FillColor(red))

	tester.Draw()
	if n := len(tester.Draw()); n != 1 {
		t.Errorf("second frame recorded %d ops, want 1", n)
	}
}

func TestPressKey_MutatesAnchor(t *testing.T) {
	count := anchor.New("count", 0)
	tester := NewTester(t)
	Pump(tester, element.Column(
		element.NewLabel(values.Map(values.Anchored(count), func(n int) string {
			return string(rune('0' + n))
		})),
		element.OnKey("+", count, func(n *int) error { *n++; return nil }),
	))

	if err := tester.PressKey("+"); err != nil {
		t.Fatal(err)
	}
	if err := tester.PressKey("-"); err != nil {
		t.Fatal(err)
	}
	ops := tester.Draw()
	if ops[1].Params["text"] != "1" {
		t.Errorf("label = %v, want 1", ops[1].Params["text"])
	}
}

func TestResize_ChangesSurface(t *testing.T) {
	tester := NewTester(t)
	Pump(tester, element.FillColor(red))

	if err := tester.Resize(geometry.Size{Width: 10, Height: 20}); err != nil {
		t.Fatal(err)
	}
	tester.Draw()
	if got := tester.Recorder().Rects()[0]; got != geometry.RectFromLTWH(0, 0, 10, 20) {
		t.Errorf("fill rect = %v, want 10x20", got)
	}
}

func TestTick_AdvancesClock(t *testing.T) {
	var seen time.Time
	tick := anchor.New("tick", time.Time{})
	tester := NewTester(t)
	Pump(tester, element.Layers(
		element.FillColor(red),
		&tickRecorder{lookup: values.Anchored(tick), seen: &seen},
	))

	if err := tester.Tick(500 * time.Millisecond); err != nil {
		t.Fatal(err)
	}
	if want := Epoch.Add(500 * time.Millisecond); !seen.Equal(want) {
		t.Errorf("tick time = %v, want %v", seen, want)
	}
}

func TestInvalidate(t *testing.T) {
	key := anchor.New("title", "a")
	owner := values.Own(key, "a")
	tester := NewTester(t)
	Pump(tester, element.Layers(element.NewLabel(owner), element.Text("fixed")))

	if !tester.Invalidate(owner.Cell().Addr()) {
		t.Error("root should depend on the label's cell")
	}
}

// tickRecorder is a minimal builder and element recording tick times.
type tickRecorder struct {
	lookup *values.AnchoredBuilder[time.Time]
	seen   *time.Time
}

func (r *tickRecorder) Anchors() anchor.Set                  { return r.lookup.Anchors() }
func (r *tickRecorder) GetAnchor(id anchor.ID) (any, bool)   { return r.lookup.GetAnchor(id) }
func (r *tickRecorder) ResolveAnchor(id anchor.ID, cell any) { r.lookup.ResolveAnchor(id, cell) }
func (r *tickRecorder) Build(*build.Context) *tickRecorder   { return r }

func (r *tickRecorder) Draw(element.Target, element.Resources, geometry.Location) {}

func (r *tickRecorder) HandleEvent(ev element.Event) error {
	if ev.Kind == element.Tick {
		*r.seen = ev.Time
		r.lookup.Cell().Set(ev.Time)
	}
	return nil
}
