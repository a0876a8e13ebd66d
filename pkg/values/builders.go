package values

import (
	"github.com/go-drift/strata/pkg/anchor"
	"github.com/go-drift/strata/pkg/build"
	"github.com/go-drift/strata/pkg/shared"
)

// ConstBuilder builds a Constant.
type ConstBuilder[V any] struct {
	anchor.None
	v V
}

// Const returns a builder for a constant source.
func Const[V any](v V) *ConstBuilder[V] {
	return &ConstBuilder[V]{v: v}
}

// Build returns the constant source.
func (b *ConstBuilder[V]) Build(*build.Context) Source[V] {
	return Constant[V]{v: b.v}
}

// ComputedBuilder builds a ComputedSource.
type ComputedBuilder[V any] struct {
	anchor.None
	fn func() V
}

// Computed returns a builder for a source that calls fn on every read.
func Computed[V any](fn func() V) *ComputedBuilder[V] {
	return &ComputedBuilder[V]{fn: fn}
}

// Build returns the computed source.
func (b *ComputedBuilder[V]) Build(*build.Context) Source[V] {
	return ComputedSource[V]{fn: b.fn}
}

// SharedBuilder builds a SharedSource over a cell the caller already holds.
type SharedBuilder[V any] struct {
	anchor.None
	cell shared.Shared[V]
}

// FromShared returns a builder reading s.
func FromShared[V any](s shared.Shared[V]) *SharedBuilder[V] {
	return &SharedBuilder[V]{cell: s}
}

// Build returns the shared-backed source.
func (b *SharedBuilder[V]) Build(*build.Context) Source[V] {
	return SharedSource[V]{cell: b.cell}
}

// AnchoredBuilder asks for the instance of key without owning one.
type AnchoredBuilder[V any] struct {
	key   *anchor.Key[V]
	cell  shared.Shared[V]
	bound bool
}

// Anchored returns a builder bound during resolution to the nearest
// declared instance of key, or to a cell allocated from the key's initial
// value when no node declares one.
func Anchored[V any](key *anchor.Key[V]) *AnchoredBuilder[V] {
	return &AnchoredBuilder[V]{key: key}
}

// Anchors reports key.
func (b *AnchoredBuilder[V]) Anchors() anchor.Set { return anchor.SetOf(b.key) }

// GetAnchor reports false: a lookup never owns an instance.
func (b *AnchoredBuilder[V]) GetAnchor(anchor.ID) (any, bool) { return nil, false }

// ResolveAnchor binds the resolved cell.
func (b *AnchoredBuilder[V]) ResolveAnchor(id anchor.ID, cell any) {
	if s, ok := anchor.Match(b.key, id, cell); ok {
		b.cell = s
		b.bound = true
	}
}

// Build returns a source over the bound cell.
func (b *AnchoredBuilder[V]) Build(*build.Context) Source[V] {
	return SharedSource[V]{cell: b.Cell()}
}

// Cell returns the bound cell. A lookup that no resolution pass reached
// binds a fresh cell from the key's initial value, as if nobody had
// declared the key, and keeps it.
func (b *AnchoredBuilder[V]) Cell() shared.Shared[V] {
	if !b.bound {
		b.cell = b.key.NewCell()
		b.bound = true
	}
	return b.cell
}

// OwnedBuilder declares and owns an instance of key.
type OwnedBuilder[V any] struct {
	key  *anchor.Key[V]
	cell shared.Shared[V]
}

// Own returns a builder declaring a new instance of key holding init.
// Anchored lookups resolved through the same tree bind to it unless an
// earlier declaration is found first.
func Own[V any](key *anchor.Key[V], init V) *OwnedBuilder[V] {
	return &OwnedBuilder[V]{key: key, cell: shared.New(init)}
}

// OwnShared declares s as the instance of key.
func OwnShared[V any](key *anchor.Key[V], s shared.Shared[V]) *OwnedBuilder[V] {
	return &OwnedBuilder[V]{key: key, cell: s}
}

// Anchors reports key.
func (b *OwnedBuilder[V]) Anchors() anchor.Set { return anchor.SetOf(b.key) }

// GetAnchor returns the owned cell for key.
func (b *OwnedBuilder[V]) GetAnchor(id anchor.ID) (any, bool) {
	if id == anchor.ID(b.key) {
		return b.cell, true
	}
	return nil, false
}

// ResolveAnchor keeps the owned instance.
func (b *OwnedBuilder[V]) ResolveAnchor(anchor.ID, any) {}

// Build returns a source over the owned cell.
func (b *OwnedBuilder[V]) Build(*build.Context) Source[V] {
	return SharedSource[V]{cell: b.cell}
}

// Cell returns the owned cell.
func (b *OwnedBuilder[V]) Cell() shared.Shared[V] { return b.cell }

// MapBuilder builds a MappedSource.
type MapBuilder[V, W any] struct {
	src build.Builder[Source[V]]
	fn  func(V) W
}

// Map returns a builder for a source computing fn over src on every read.
func Map[V, W any](src build.Builder[Source[V]], fn func(V) W) *MapBuilder[V, W] {
	return &MapBuilder[V, W]{src: src, fn: fn}
}

// Anchors forwards to the inner builder.
func (b *MapBuilder[V, W]) Anchors() anchor.Set { return b.src.Anchors() }

// GetAnchor forwards to the inner builder.
func (b *MapBuilder[V, W]) GetAnchor(id anchor.ID) (any, bool) { return b.src.GetAnchor(id) }

// ResolveAnchor forwards to the inner builder.
func (b *MapBuilder[V, W]) ResolveAnchor(id anchor.ID, cell any) { b.src.ResolveAnchor(id, cell) }

// Build returns the mapped source.
func (b *MapBuilder[V, W]) Build(ctx *build.Context) Source[W] {
	return MappedSource[V, W]{src: b.src.Build(ctx), fn: b.fn}
}
