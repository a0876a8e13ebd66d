package element

import (
	"github.com/go-drift/strata/pkg/anchor"
	"github.com/go-drift/strata/pkg/build"
	"github.com/go-drift/strata/pkg/geometry"
	"github.com/go-drift/strata/pkg/shared"
)

// Layers2 overlays two elements at the same location, first to last.
type Layers2[A, B Drawable] struct {
	a A
	b B
}

// Draw paints the children in declaration order at loc.
func (l *Layers2[A, B]) Draw(t Target, res Resources, loc geometry.Location) {
	l.a.Draw(t, res, loc)
	l.b.Draw(t, res, loc)
}

// HandleEvent broadcasts ev to both children.
func (l *Layers2[A, B]) HandleEvent(ev Event) error {
	return broadcast("element.Layers2", ev, l.a, l.b)
}

// InvalidateCache reports whether either child depends on addr.
func (l *Layers2[A, B]) InvalidateCache(addr shared.Addr) bool {
	return invalidateAny(addr, l.a, l.b)
}

// Layers3 overlays three elements at the same location, first to last.
type Layers3[A, B, C Drawable] struct {
	a A
	b B
	c C
}

// Draw paints the children in declaration order at loc.
func (l *Layers3[A, B, C]) Draw(t Target, res Resources, loc geometry.Location) {
	l.a.Draw(t, res, loc)
	l.b.Draw(t, res, loc)
	l.c.Draw(t, res, loc)
}

// HandleEvent broadcasts ev to all children.
func (l *Layers3[A, B, C]) HandleEvent(ev Event) error {
	return broadcast("element.Layers3", ev, l.a, l.b, l.c)
}

// InvalidateCache reports whether any child depends on addr.
func (l *Layers3[A, B, C]) InvalidateCache(addr shared.Addr) bool {
	return invalidateAny(addr, l.a, l.b, l.c)
}

// LayersBuilder2 describes a Layers2.
type LayersBuilder2[A, B Drawable] struct {
	a build.Builder[A]
	b build.Builder[B]
}

// Layers describes two overlaid elements.
func Layers[A, B Drawable](a build.Builder[A], b build.Builder[B]) *LayersBuilder2[A, B] {
	return &LayersBuilder2[A, B]{a: a, b: b}
}

func (l *LayersBuilder2[A, B]) Anchors() anchor.Set { return anchor.Union(l.a, l.b) }

func (l *LayersBuilder2[A, B]) GetAnchor(id anchor.ID) (any, bool) {
	return anchor.First(id, l.a, l.b)
}

func (l *LayersBuilder2[A, B]) ResolveAnchor(id anchor.ID, cell any) {
	anchor.Broadcast(id, cell, l.a, l.b)
}

func (l *LayersBuilder2[A, B]) Build(ctx *build.Context) *Layers2[A, B] {
	return &Layers2[A, B]{a: l.a.Build(ctx), b: l.b.Build(ctx)}
}

// LayersBuilder3 describes a Layers3.
type LayersBuilder3[A, B, C Drawable] struct {
	a build.Builder[A]
	b build.Builder[B]
	c build.Builder[C]
}

// Layers3Of describes three overlaid elements.
func Layers3Of[A, B, C Drawable](a build.Builder[A], b build.Builder[B], c build.Builder[C]) *LayersBuilder3[A, B, C] {
	return &LayersBuilder3[A, B, C]{a: a, b: b, c: c}
}

func (l *LayersBuilder3[A, B, C]) Anchors() anchor.Set { return anchor.Union(l.a, l.b, l.c) }

func (l *LayersBuilder3[A, B, C]) GetAnchor(id anchor.ID) (any, bool) {
	return anchor.First(id, l.a, l.b, l.c)
}

func (l *LayersBuilder3[A, B, C]) ResolveAnchor(id anchor.ID, cell any) {
	anchor.Broadcast(id, cell, l.a, l.b, l.c)
}

func (l *LayersBuilder3[A, B, C]) Build(ctx *build.Context) *Layers3[A, B, C] {
	return &Layers3[A, B, C]{a: l.a.Build(ctx), b: l.b.Build(ctx), c: l.c.Build(ctx)}
}
