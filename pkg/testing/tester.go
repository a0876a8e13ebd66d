package testing

import (
	"time"

	"github.com/go-drift/strata/pkg/build"
	"github.com/go-drift/strata/pkg/element"
	"github.com/go-drift/strata/pkg/geometry"
	"github.com/go-drift/strata/pkg/shared"
)

const (
	// DefaultTestWidth is the default width of the test surface.
	DefaultTestWidth = 800
	// DefaultTestHeight is the default height of the test surface.
	DefaultTestHeight = 600
)

// TestingT is the subset of *testing.T used by the tester and MatchesFile,
// allowing test doubles to intercept failures.
type TestingT interface {
	Helper()
	Fatalf(format string, args ...any)
	Errorf(format string, args ...any)
	Name() string
}

// Tester drives a built element tree without a real backend. It draws into
// a Recorder, dispatches events synchronously, and stamps ticks from a
// FakeClock.
type Tester struct {
	t         TestingT
	root      element.Drawable
	ctx       *build.Context
	size      geometry.Size
	resources element.Resources
	clock     *FakeClock
	recorder  *Recorder
}

// NewTester creates a tester with the default surface size.
func NewTester(t TestingT) *Tester {
	return &Tester{
		t:         t,
		size:      geometry.Size{Width: DefaultTestWidth, Height: DefaultTestHeight},
		resources: element.NoResources,
		clock:     NewFakeClock(),
		recorder:  &Recorder{},
	}
}

// Pump builds b, mounts the result, and returns it.
func Pump[E element.Drawable](tester *Tester, b build.Builder[E]) E {
	root, ctx := build.Run(b)
	tester.root = root
	tester.ctx = ctx
	return root
}

// Mount replaces the root with an already built element.
func (t *Tester) Mount(root element.Drawable) {
	t.root = root
	t.ctx = nil
}

// Root returns the mounted element.
func (t *Tester) Root() element.Drawable {
	return t.root
}

// Context returns the build context of the last Pump, or nil.
func (t *Tester) Context() *build.Context {
	return t.ctx
}

// SetSize sets the surface size used by Draw.
func (t *Tester) SetSize(size geometry.Size) {
	t.size = size
}

// Size returns the surface size.
func (t *Tester) Size() geometry.Size {
	return t.size
}

// SetResources sets the bundle passed to Draw.
func (t *Tester) SetResources(res element.Resources) {
	t.resources = res
}

// Clock returns the fake clock stamping tick events.
func (t *Tester) Clock() *FakeClock {
	return t.clock
}

// Recorder returns the recorder holding the last Draw.
func (t *Tester) Recorder() *Recorder {
	return t.recorder
}

// Location returns the location covering the whole surface.
func (t *Tester) Location() geometry.Location {
	return geometry.At(geometry.Rect{Size: t.size})
}

// Draw renders one frame of the mounted tree and returns its operations.
func (t *Tester) Draw() []DisplayOp {
	t.t.Helper()
	t.mustRoot()
	t.recorder.Reset()
	t.root.Draw(t.recorder, t.resources, t.Location())
	return t.recorder.Ops()
}

// Dispatch sends ev to the root.
func (t *Tester) Dispatch(ev element.Event) error {
	t.t.Helper()
	t.mustRoot()
	return element.HandleEvent(t.root, ev)
}

// PressKey dispatches a key press.
func (t *Tester) PressKey(key string) error {
	t.t.Helper()
	return t.Dispatch(element.KeyEvent(key))
}

// Resize changes the surface size and dispatches a resize event.
func (t *Tester) Resize(size geometry.Size) error {
	t.t.Helper()
	t.size = size
	return t.Dispatch(element.ResizeEvent(size))
}

// Tick advances the clock by d and dispatches a tick stamped with the new
// time.
func (t *Tester) Tick(d time.Duration) error {
	t.t.Helper()
	return t.Dispatch(element.TickEvent(t.clock.Advance(d)))
}

// Invalidate asks the root whether it depends on the cell at addr.
func (t *Tester) Invalidate(addr shared.Addr) bool {
	t.t.Helper()
	t.mustRoot()
	return element.InvalidateCache(t.root, addr)
}

func (t *Tester) mustRoot() {
	if t.root == nil {
		t.t.Fatalf("no element mounted; call Pump or Mount first")
	}
}
