package element

import (
	"image/color"

	"github.com/cespare/xxhash/v2"

	"github.com/go-drift/strata/pkg/anchor"
	"github.com/go-drift/strata/pkg/build"
	"github.com/go-drift/strata/pkg/geometry"
	"github.com/go-drift/strata/pkg/layout"
	"github.com/go-drift/strata/pkg/shared"
	"github.com/go-drift/strata/pkg/values"
)

// Default label colours: translucent white panel, black text.
var (
	LabelBackground = color.NRGBA{R: 255, G: 255, B: 255, A: 128}
	LabelForeground = color.NRGBA{A: 255}
)

// Label draws a horizontally padded panel and, on targets that support it,
// the text from its source. The padding is derived from a hash of the text,
// so equal texts always get equal panels.
type Label struct {
	text       values.Source[string]
	background color.NRGBA
	foreground color.NRGBA
}

// Draw reads the text once and paints the panel.
func (l *Label) Draw(t Target, _ Resources, loc geometry.Location) {
	text := l.text.Value()
	pad := LabelPadding(text)
	rect := loc.Subrect(geometry.RectFromLTWH(pad, 0, 1-2*pad, 1)).Rect
	t.FillRect(rect, l.background)
	if tt, ok := t.(TextTarget); ok {
		tt.DrawText(rect, text, l.foreground)
	}
}

// InvalidateCache reports whether the text source reads addr.
func (l *Label) InvalidateCache(addr shared.Addr) bool {
	return values.DependsOn(l.text, addr)
}

// LabelPadding returns the horizontal padding fraction, in [1/19, 1/4], a
// label applies on each side for text.
func LabelPadding(text string) float64 {
	bucket := xxhash.Sum64String(text) % 16
	return 1 / float64(bucket+4)
}

// LabelBuilder describes a Label.
type LabelBuilder struct {
	text       build.Builder[values.Source[string]]
	background color.NRGBA
	foreground color.NRGBA
}

// NewLabel describes a label reading its text from src.
func NewLabel(src build.Builder[values.Source[string]]) *LabelBuilder {
	return &LabelBuilder{text: src, background: LabelBackground, foreground: LabelForeground}
}

// Text describes a label with fixed text.
func Text(s string) *LabelBuilder {
	return NewLabel(values.Const(s))
}

// WithColors overrides the panel and text colours.
func (b *LabelBuilder) WithColors(background, foreground color.NRGBA) *LabelBuilder {
	b.background = background
	b.foreground = foreground
	return b
}

func (b *LabelBuilder) Anchors() anchor.Set                  { return b.text.Anchors() }
func (b *LabelBuilder) GetAnchor(id anchor.ID) (any, bool)   { return b.text.GetAnchor(id) }
func (b *LabelBuilder) ResolveAnchor(id anchor.ID, cell any) { b.text.ResolveAnchor(id, cell) }

func (b *LabelBuilder) Build(ctx *build.Context) *Label {
	return &Label{text: b.text.Build(ctx), background: b.background, foreground: b.foreground}
}

// Fill paints its whole location with a colour read from a source.
type Fill struct {
	color values.Source[color.NRGBA]
}

func (f *Fill) Draw(t Target, _ Resources, loc geometry.Location) {
	t.FillRect(loc.Rect, f.color.Value())
}

func (f *Fill) InvalidateCache(addr shared.Addr) bool {
	return values.DependsOn(f.color, addr)
}

// FillBuilder describes a Fill.
type FillBuilder struct {
	color build.Builder[values.Source[color.NRGBA]]
}

// NewFill describes a fill reading its colour from src.
func NewFill(src build.Builder[values.Source[color.NRGBA]]) *FillBuilder {
	return &FillBuilder{color: src}
}

// FillColor describes a fill with a fixed colour.
func FillColor(c color.NRGBA) *FillBuilder {
	return NewFill(values.Const(c))
}

func (b *FillBuilder) Anchors() anchor.Set                  { return b.color.Anchors() }
func (b *FillBuilder) GetAnchor(id anchor.ID) (any, bool)   { return b.color.GetAnchor(id) }
func (b *FillBuilder) ResolveAnchor(id anchor.ID, cell any) { b.color.ResolveAnchor(id, cell) }

func (b *FillBuilder) Build(ctx *build.Context) *Fill {
	return &Fill{color: b.color.Build(ctx)}
}

// KeyBinding mutates a shared value when a key is pressed. It draws
// nothing.
type KeyBinding[V any] struct {
	key  string
	cell shared.Shared[V]
	fn   func(*V) error
}

// Draw is a no-op.
func (k *KeyBinding[V]) Draw(Target, Resources, geometry.Location) {}

// HandleEvent runs the binding under the cell's write lock when ev is a
// press of the bound key.
func (k *KeyBinding[V]) HandleEvent(ev Event) error {
	if ev.Kind != KeyPress || ev.Key != k.key {
		return nil
	}
	var err error
	k.cell.Update(func(v *V) { err = k.fn(v) })
	return err
}

// OnKeyBuilder describes a KeyBinding.
type OnKeyBuilder[V any] struct {
	key    string
	lookup *values.AnchoredBuilder[V]
	fn     func(*V) error
}

// OnKey describes a binding that calls fn with the anchored instance of
// target whenever key is pressed. The binding never owns the instance.
func OnKey[V any](key string, target *anchor.Key[V], fn func(*V) error) *OnKeyBuilder[V] {
	return &OnKeyBuilder[V]{key: key, lookup: values.Anchored(target), fn: fn}
}

func (b *OnKeyBuilder[V]) Anchors() anchor.Set                  { return b.lookup.Anchors() }
func (b *OnKeyBuilder[V]) GetAnchor(id anchor.ID) (any, bool)   { return b.lookup.GetAnchor(id) }
func (b *OnKeyBuilder[V]) ResolveAnchor(id anchor.ID, cell any) { b.lookup.ResolveAnchor(id, cell) }

func (b *OnKeyBuilder[V]) Build(*build.Context) *KeyBinding[V] {
	return &KeyBinding[V]{key: b.key, cell: b.lookup.Cell(), fn: b.fn}
}

// ScopeBuilder resolves a fixed set of anchors inside its child and hides
// them from the rest of the tree.
type ScopeBuilder[E any] struct {
	ids   anchor.Set
	child build.Builder[E]
}

// Scope isolates ids to child: lookups inside child bind to instances
// declared inside child (or freshly allocated ones), and nothing outside
// sees them.
func Scope[E any](child build.Builder[E], ids ...anchor.ID) *ScopeBuilder[E] {
	return &ScopeBuilder[E]{ids: anchor.SetOf(ids...), child: child}
}

func (s *ScopeBuilder[E]) Anchors() anchor.Set {
	return s.child.Anchors().Without(s.ids...)
}

func (s *ScopeBuilder[E]) GetAnchor(id anchor.ID) (any, bool) {
	if s.ids.Contains(id) {
		return nil, false
	}
	return s.child.GetAnchor(id)
}

func (s *ScopeBuilder[E]) ResolveAnchor(id anchor.ID, cell any) {
	if !s.ids.Contains(id) {
		s.child.ResolveAnchor(id, cell)
	}
}

// FlexWeight forwards the child's split weight.
func (s *ScopeBuilder[E]) FlexWeight() int { return layout.WeightOf(s.child) }

// Build resolves the scoped anchors, then builds the child.
func (s *ScopeBuilder[E]) Build(ctx *build.Context) E {
	anchor.ResolveOnly(s.child, s.ids)
	return s.child.Build(ctx)
}
