package element

import (
	"github.com/go-drift/strata/pkg/anchor"
	"github.com/go-drift/strata/pkg/build"
	"github.com/go-drift/strata/pkg/geometry"
	"github.com/go-drift/strata/pkg/layout"
	"github.com/go-drift/strata/pkg/shared"
	"github.com/go-drift/strata/pkg/values"
)

// Split2 divides its location between two children along a direction read
// from a source on every draw.
type Split2[A, B Drawable] struct {
	dir     values.Source[layout.Direction]
	weights [2]int
	a       A
	b       B
}

// Draw lays the children out with layout.Distribute and draws each into its
// share.
func (s *Split2[A, B]) Draw(t Target, res Resources, loc geometry.Location) {
	locs := layout.Distribute(loc, s.dir.Value(), s.weights[:])
	s.a.Draw(t, res, locs[0])
	s.b.Draw(t, res, locs[1])
}

// HandleEvent broadcasts ev to both children.
func (s *Split2[A, B]) HandleEvent(ev Event) error {
	return broadcast("element.Split2", ev, s.a, s.b)
}

// InvalidateCache reports whether the direction or either child depends on
// addr.
func (s *Split2[A, B]) InvalidateCache(addr shared.Addr) bool {
	dir := values.DependsOn(s.dir, addr)
	return invalidateAny(addr, s.a, s.b) || dir
}

// Split3 divides its location between three children.
type Split3[A, B, C Drawable] struct {
	dir     values.Source[layout.Direction]
	weights [3]int
	a       A
	b       B
	c       C
}

func (s *Split3[A, B, C]) Draw(t Target, res Resources, loc geometry.Location) {
	locs := layout.Distribute(loc, s.dir.Value(), s.weights[:])
	s.a.Draw(t, res, locs[0])
	s.b.Draw(t, res, locs[1])
	s.c.Draw(t, res, locs[2])
}

func (s *Split3[A, B, C]) HandleEvent(ev Event) error {
	return broadcast("element.Split3", ev, s.a, s.b, s.c)
}

func (s *Split3[A, B, C]) InvalidateCache(addr shared.Addr) bool {
	dir := values.DependsOn(s.dir, addr)
	return invalidateAny(addr, s.a, s.b, s.c) || dir
}

// SplitBuilder2 describes a Split2.
type SplitBuilder2[A, B Drawable] struct {
	dir build.Builder[values.Source[layout.Direction]]
	a   build.Builder[A]
	b   build.Builder[B]
}

// SplitWith describes two children split along the direction read from dir.
func SplitWith[A, B Drawable](dir build.Builder[values.Source[layout.Direction]], a build.Builder[A], b build.Builder[B]) *SplitBuilder2[A, B] {
	return &SplitBuilder2[A, B]{dir: dir, a: a, b: b}
}

// Split describes two children split along the longer axis.
func Split[A, B Drawable](a build.Builder[A], b build.Builder[B]) *SplitBuilder2[A, B] {
	return SplitWith(values.Const(layout.Adaptive), a, b)
}

// Line describes two children side by side.
func Line[A, B Drawable](a build.Builder[A], b build.Builder[B]) *SplitBuilder2[A, B] {
	return SplitWith(values.Const(layout.Horizontal), a, b)
}

// Column describes two children stacked top to bottom.
func Column[A, B Drawable](a build.Builder[A], b build.Builder[B]) *SplitBuilder2[A, B] {
	return SplitWith(values.Const(layout.Vertical), a, b)
}

func (s *SplitBuilder2[A, B]) Anchors() anchor.Set { return anchor.Union(s.dir, s.a, s.b) }

func (s *SplitBuilder2[A, B]) GetAnchor(id anchor.ID) (any, bool) {
	return anchor.First(id, s.dir, s.a, s.b)
}

func (s *SplitBuilder2[A, B]) ResolveAnchor(id anchor.ID, cell any) {
	anchor.Broadcast(id, cell, s.dir, s.a, s.b)
}

func (s *SplitBuilder2[A, B]) Build(ctx *build.Context) *Split2[A, B] {
	return &Split2[A, B]{
		dir:     s.dir.Build(ctx),
		weights: [2]int{layout.WeightOf(s.a), layout.WeightOf(s.b)},
		a:       s.a.Build(ctx),
		b:       s.b.Build(ctx),
	}
}

// SplitBuilder3 describes a Split3.
type SplitBuilder3[A, B, C Drawable] struct {
	dir build.Builder[values.Source[layout.Direction]]
	a   build.Builder[A]
	b   build.Builder[B]
	c   build.Builder[C]
}

// Split3With describes three children split along the direction read from
// dir.
func Split3With[A, B, C Drawable](dir build.Builder[values.Source[layout.Direction]], a build.Builder[A], b build.Builder[B], c build.Builder[C]) *SplitBuilder3[A, B, C] {
	return &SplitBuilder3[A, B, C]{dir: dir, a: a, b: b, c: c}
}

// Split3Of describes three children split along the longer axis.
func Split3Of[A, B, C Drawable](a build.Builder[A], b build.Builder[B], c build.Builder[C]) *SplitBuilder3[A, B, C] {
	return Split3With(values.Const(layout.Adaptive), a, b, c)
}

// Line3 describes three children side by side.
func Line3[A, B, C Drawable](a build.Builder[A], b build.Builder[B], c build.Builder[C]) *SplitBuilder3[A, B, C] {
	return Split3With(values.Const(layout.Horizontal), a, b, c)
}

// Column3 describes three children stacked top to bottom.
func Column3[A, B, C Drawable](a build.Builder[A], b build.Builder[B], c build.Builder[C]) *SplitBuilder3[A, B, C] {
	return Split3With(values.Const(layout.Vertical), a, b, c)
}

func (s *SplitBuilder3[A, B, C]) Anchors() anchor.Set { return anchor.Union(s.dir, s.a, s.b, s.c) }

func (s *SplitBuilder3[A, B, C]) GetAnchor(id anchor.ID) (any, bool) {
	return anchor.First(id, s.dir, s.a, s.b, s.c)
}

func (s *SplitBuilder3[A, B, C]) ResolveAnchor(id anchor.ID, cell any) {
	anchor.Broadcast(id, cell, s.dir, s.a, s.b, s.c)
}

func (s *SplitBuilder3[A, B, C]) Build(ctx *build.Context) *Split3[A, B, C] {
	return &Split3[A, B, C]{
		dir:     s.dir.Build(ctx),
		weights: [3]int{layout.WeightOf(s.a), layout.WeightOf(s.b), layout.WeightOf(s.c)},
		a:       s.a.Build(ctx),
		b:       s.b.Build(ctx),
		c:       s.c.Build(ctx),
	}
}

// FlexBuilder attaches a split weight to a child builder. It builds the
// child unchanged; the enclosing split reads the weight.
type FlexBuilder[E any] struct {
	weight int
	child  build.Builder[E]
}

// Flex gives b the weight w inside a split. Weights of zero or less count
// as one.
func Flex[E any](w int, b build.Builder[E]) *FlexBuilder[E] {
	return &FlexBuilder[E]{weight: w, child: b}
}

// FlexWeight returns the normalized weight.
func (f *FlexBuilder[E]) FlexWeight() int { return layout.Weight(f.weight) }

func (f *FlexBuilder[E]) Anchors() anchor.Set                  { return f.child.Anchors() }
func (f *FlexBuilder[E]) GetAnchor(id anchor.ID) (any, bool)   { return f.child.GetAnchor(id) }
func (f *FlexBuilder[E]) ResolveAnchor(id anchor.ID, cell any) { f.child.ResolveAnchor(id, cell) }
func (f *FlexBuilder[E]) Build(ctx *build.Context) E           { return f.child.Build(ctx) }
