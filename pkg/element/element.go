// Package element provides the composable runtime nodes of a strata UI and
// the builder functions that describe them.
//
// There is no common element base type. A built node implements any subset
// of three capabilities:
//
//   - Drawable: draw into a Target at a Location.
//   - EventHandler: react to an Event.
//   - CacheInvalidator: report whether it depends on a shared cell.
//
// Composites are fixed-arity generic structs (Layers2, Layers3, Split2,
// Split3) so each combination is checked by the compiler. Drawing is
// required of every child; events and invalidation are forwarded to the
// children that implement them. LayersN and SplitN hold a slice of
// Drawable for the cases where the child count comes from data.
//
// Trees are described with builders and turned into elements by
// build.Build, which resolves anchors first:
//
//	count := anchor.New("count", 0)
//	root := build.Build(element.Layers(
//	    element.FillColor(color.NRGBA{A: 255}),
//	    element.Column(
//	        element.NewLabel(values.Map(values.Anchored(count), strconv.Itoa)),
//	        element.OnKey("+", count, func(n *int) error { *n++; return nil }),
//	    ),
//	))
package element

import (
	"image/color"
	"time"

	"github.com/go-drift/strata/pkg/errors"
	"github.com/go-drift/strata/pkg/geometry"
	"github.com/go-drift/strata/pkg/shared"
)

// Target receives the primitive draw calls of a frame.
type Target interface {
	FillRect(rect geometry.Rect, c color.NRGBA)
}

// TextTarget is a Target that can also place text.
type TextTarget interface {
	Target
	DrawText(rect geometry.Rect, text string, c color.NRGBA)
}

// Resources is the externally owned bundle passed, read-only, through every
// draw call.
type Resources interface {
	Resource(name string) (any, bool)
}

// ResourceMap is a Resources backed by a map.
type ResourceMap map[string]any

// Resource looks name up in the map.
func (m ResourceMap) Resource(name string) (any, bool) {
	v, ok := m[name]
	return v, ok
}

// NoResources is an empty bundle.
var NoResources Resources = ResourceMap(nil)

// Drawable draws itself into a location.
type Drawable interface {
	Draw(t Target, res Resources, loc geometry.Location)
}

// EventHandler reacts to events. A non-nil error marks the dispatch as
// failed without stopping sibling dispatch.
type EventHandler interface {
	HandleEvent(ev Event) error
}

// CacheInvalidator reports whether a node's output depends on the shared
// cell at addr.
type CacheInvalidator interface {
	InvalidateCache(addr shared.Addr) bool
}

// EventKind identifies the category of an event.
type EventKind int

const (
	// KeyPress is a key press; Key holds its name ("a", "enter", "ctrl+c").
	KeyPress EventKind = iota
	// Resize reports a new host size in Size.
	Resize
	// Tick is a periodic timer event; Time holds the tick time.
	Tick
	// Custom carries an application-defined Payload.
	Custom
)

func (k EventKind) String() string {
	switch k {
	case KeyPress:
		return "key"
	case Resize:
		return "resize"
	case Tick:
		return "tick"
	case Custom:
		return "custom"
	default:
		return "unknown"
	}
}

// Event is dispatched synchronously through the whole tree. Every node sees
// every event; there is no consumption.
type Event struct {
	Kind    EventKind
	Key     string
	Size    geometry.Size
	Time    time.Time
	Payload any
}

// KeyEvent returns a KeyPress event.
func KeyEvent(key string) Event {
	return Event{Kind: KeyPress, Key: key}
}

// ResizeEvent returns a Resize event.
func ResizeEvent(size geometry.Size) Event {
	return Event{Kind: Resize, Size: size}
}

// TickEvent returns a Tick event.
func TickEvent(at time.Time) Event {
	return Event{Kind: Tick, Time: at}
}

// HandleEvent dispatches ev to node if it handles events.
func HandleEvent(node any, ev Event) error {
	if h, ok := node.(EventHandler); ok {
		return h.HandleEvent(ev)
	}
	return nil
}

// InvalidateCache asks node whether it depends on addr. Nodes that do not
// implement CacheInvalidator depend on nothing.
func InvalidateCache(node any, addr shared.Addr) bool {
	if c, ok := node.(CacheInvalidator); ok {
		return c.InvalidateCache(addr)
	}
	return false
}

// broadcast dispatches ev to every child in order and aggregates failures.
func broadcast(op string, ev Event, children ...any) error {
	results := make([]error, len(children))
	for i, child := range children {
		results[i] = HandleEvent(child, ev)
	}
	return errors.JoinEvent(op, results...)
}

// invalidateAny asks every child and reports whether any depends on addr.
// All children are visited so each can drop its own caches.
func invalidateAny(addr shared.Addr, children ...any) bool {
	hit := false
	for _, child := range children {
		if InvalidateCache(child, addr) {
			hit = true
		}
	}
	return hit
}
