// Package values decouples the values elements render from how those values
// are stored.
//
// A Source yields a value on every call to Value. Three storage strategies
// satisfy the same contract:
//
//   - Constant wraps a literal.
//   - ComputedSource reruns a function on every read, without caching.
//   - SharedSource reads a shared.Shared cell under a read lock per access.
//
// Elements are written against Source and never learn which one they got.
// Builders for each strategy live in builders.go; Anchored and Own connect a
// source to the anchor resolution pass.
package values

import (
	"github.com/go-drift/strata/pkg/shared"
)

// Source yields the current value.
type Source[V any] interface {
	Value() V
}

// Dependent is implemented by sources backed by shared cells.
type Dependent interface {
	// DependsOn reports whether the source reads the cell at addr.
	DependsOn(addr shared.Addr) bool
}

// DependsOn reports whether src reads the cell at addr. Sources that do not
// implement Dependent read no cells.
func DependsOn(src any, addr shared.Addr) bool {
	if d, ok := src.(Dependent); ok {
		return d.DependsOn(addr)
	}
	return false
}

// Constant is a Source returning a fixed value.
type Constant[V any] struct {
	v V
}

// Value returns the constant.
func (c Constant[V]) Value() V { return c.v }

// ComputedSource reruns fn on every Value call.
type ComputedSource[V any] struct {
	fn func() V
}

// Value calls the computation.
func (c ComputedSource[V]) Value() V { return c.fn() }

// SharedSource reads a shared cell.
type SharedSource[V any] struct {
	cell shared.Shared[V]
}

// Value returns a copy of the cell's value, taken under a read lock.
func (s SharedSource[V]) Value() V { return s.cell.Get() }

// View runs fn while holding the read lock, for values too large to copy.
func (s SharedSource[V]) View(fn func(V)) { s.cell.View(fn) }

// Cell returns the backing cell.
func (s SharedSource[V]) Cell() shared.Shared[V] { return s.cell }

// DependsOn reports whether addr is the backing cell.
func (s SharedSource[V]) DependsOn(addr shared.Addr) bool {
	return s.cell.Addr() == addr
}

// MappedSource derives its value from another source on every read.
type MappedSource[V, W any] struct {
	src Source[V]
	fn  func(V) W
}

// Value reads the inner source, then applies the mapping. The inner read
// lock, if any, is released before fn runs.
func (m MappedSource[V, W]) Value() W { return m.fn(m.src.Value()) }

// DependsOn forwards to the inner source.
func (m MappedSource[V, W]) DependsOn(addr shared.Addr) bool {
	return DependsOn(m.src, addr)
}
