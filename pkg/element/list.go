package element

import (
	"github.com/go-drift/strata/pkg/anchor"
	"github.com/go-drift/strata/pkg/build"
	"github.com/go-drift/strata/pkg/geometry"
	"github.com/go-drift/strata/pkg/layout"
	"github.com/go-drift/strata/pkg/shared"
	"github.com/go-drift/strata/pkg/values"
)

// LayersN overlays a data-driven number of children. Prefer Layers2 and
// Layers3 when the shape is known at compile time.
type LayersN struct {
	children []Drawable
}

func (l *LayersN) Draw(t Target, res Resources, loc geometry.Location) {
	for _, child := range l.children {
		child.Draw(t, res, loc)
	}
}

func (l *LayersN) HandleEvent(ev Event) error {
	return broadcast("element.LayersN", ev, drawables(l.children)...)
}

func (l *LayersN) InvalidateCache(addr shared.Addr) bool {
	return invalidateAny(addr, drawables(l.children)...)
}

// SplitN splits its location between a data-driven number of children.
type SplitN struct {
	dir      values.Source[layout.Direction]
	weights  []int
	children []Drawable
}

func (s *SplitN) Draw(t Target, res Resources, loc geometry.Location) {
	if len(s.children) == 0 {
		return
	}
	locs := layout.Distribute(loc, s.dir.Value(), s.weights)
	for i, child := range s.children {
		child.Draw(t, res, locs[i])
	}
}

func (s *SplitN) HandleEvent(ev Event) error {
	return broadcast("element.SplitN", ev, drawables(s.children)...)
}

func (s *SplitN) InvalidateCache(addr shared.Addr) bool {
	dir := values.DependsOn(s.dir, addr)
	return invalidateAny(addr, drawables(s.children)...) || dir
}

func drawables(children []Drawable) []any {
	out := make([]any, len(children))
	for i, c := range children {
		out[i] = c
	}
	return out
}

// Node erases the element type of b so it can sit in a Stack or List. The
// split weight of b, if any, is kept.
func Node[E Drawable](b build.Builder[E]) build.Builder[Drawable] {
	if n, ok := any(b).(build.Builder[Drawable]); ok {
		return n
	}
	return &erased[E]{inner: b}
}

type erased[E Drawable] struct {
	inner build.Builder[E]
}

func (e *erased[E]) Anchors() anchor.Set                  { return e.inner.Anchors() }
func (e *erased[E]) GetAnchor(id anchor.ID) (any, bool)   { return e.inner.GetAnchor(id) }
func (e *erased[E]) ResolveAnchor(id anchor.ID, cell any) { e.inner.ResolveAnchor(id, cell) }
func (e *erased[E]) FlexWeight() int                      { return layout.WeightOf(e.inner) }
func (e *erased[E]) Build(ctx *build.Context) Drawable    { return e.inner.Build(ctx) }

// StackBuilder describes a LayersN.
type StackBuilder struct {
	children []build.Builder[Drawable]
}

// Stack describes children overlaid in order.
func Stack(children ...build.Builder[Drawable]) *StackBuilder {
	return &StackBuilder{children: children}
}

func (s *StackBuilder) Anchors() anchor.Set { return anchor.Union(resolvers(s.children)...) }

func (s *StackBuilder) GetAnchor(id anchor.ID) (any, bool) {
	return anchor.First(id, resolvers(s.children)...)
}

func (s *StackBuilder) ResolveAnchor(id anchor.ID, cell any) {
	anchor.Broadcast(id, cell, resolvers(s.children)...)
}

func (s *StackBuilder) Build(ctx *build.Context) Drawable {
	out := make([]Drawable, len(s.children))
	for i, c := range s.children {
		out[i] = c.Build(ctx)
	}
	return &LayersN{children: out}
}

// ListBuilder describes a SplitN.
type ListBuilder struct {
	dir      build.Builder[values.Source[layout.Direction]]
	children []build.Builder[Drawable]
}

// List describes children split along the direction read from dir.
func List(dir build.Builder[values.Source[layout.Direction]], children ...build.Builder[Drawable]) *ListBuilder {
	return &ListBuilder{dir: dir, children: children}
}

func (l *ListBuilder) resolvers() []anchor.Resolver {
	return append([]anchor.Resolver{l.dir}, resolvers(l.children)...)
}

func (l *ListBuilder) Anchors() anchor.Set { return anchor.Union(l.resolvers()...) }

func (l *ListBuilder) GetAnchor(id anchor.ID) (any, bool) {
	return anchor.First(id, l.resolvers()...)
}

func (l *ListBuilder) ResolveAnchor(id anchor.ID, cell any) {
	anchor.Broadcast(id, cell, l.resolvers()...)
}

func (l *ListBuilder) Build(ctx *build.Context) Drawable {
	weights := make([]int, len(l.children))
	out := make([]Drawable, len(l.children))
	for i, c := range l.children {
		weights[i] = layout.WeightOf(c)
		out[i] = c.Build(ctx)
	}
	return &SplitN{dir: l.dir.Build(ctx), weights: weights, children: out}
}

func resolvers(children []build.Builder[Drawable]) []anchor.Resolver {
	out := make([]anchor.Resolver, len(children))
	for i, c := range children {
		out[i] = c
	}
	return out
}
