// Package anchor lets builder-tree nodes share one shared.Shared instance per
// value kind without threading handles through constructors.
//
// A Key names a value kind. A builder node may own an instance for a key,
// merely ask for one, or know nothing about it. Every builder reports the
// keys visible through it as a Set, the union of its children's sets for
// composites. Resolution runs once per build, over the root's set:
//
//  1. Collect: GetAnchor asks the node itself, then its children left to
//     right, and returns the first owned instance found.
//  2. Bind: ResolveAnchor pushes that instance into every child whose set
//     contains the key. Nodes owning their own instance keep it.
//
// When nobody owns an instance but somebody asks for one, a fresh cell is
// created from the key's initial value. A key nobody mentions is never
// allocated.
package anchor

import (
	stderrors "errors"
	"fmt"
	"reflect"

	"github.com/go-drift/strata/pkg/errors"
	"github.com/go-drift/strata/pkg/shared"
)

var errCellType = stderrors.New("cell type does not match key")

// ID is the type-erased form of a Key. Only Key implements it.
type ID interface {
	// Name returns the key's diagnostic name.
	Name() string
	newCell() any
}

// Key identifies the canonical shared instance of a V within a subtree.
// Identity is the pointer: two keys with the same name are distinct.
type Key[V any] struct {
	name string
	init func() V
}

// New creates a key whose cells start at init.
func New[V any](name string, init V) *Key[V] {
	return &Key[V]{name: name, init: func() V { return init }}
}

// NewFunc creates a key whose cells start at init(), called once per cell.
func NewFunc[V any](name string, init func() V) *Key[V] {
	return &Key[V]{name: name, init: init}
}

// Name returns the key's name.
func (k *Key[V]) Name() string {
	return k.name
}

func (k *Key[V]) String() string {
	return fmt.Sprintf("anchor(%s %s)", k.name, reflect.TypeFor[V]())
}

// NewCell allocates a fresh cell holding the key's initial value.
func (k *Key[V]) NewCell() shared.Shared[V] {
	var v V
	if k.init != nil {
		v = k.init()
	}
	return shared.New(v)
}

func (k *Key[V]) newCell() any {
	return k.NewCell()
}

// Match reports whether id is k and, if so, returns cell as a typed handle.
// A matching id with a cell of another type is a build defect and panics.
func Match[V any](k *Key[V], id ID, cell any) (shared.Shared[V], bool) {
	if id != ID(k) {
		return shared.Shared[V]{}, false
	}
	s, ok := cell.(shared.Shared[V])
	if !ok {
		panic(&errors.BuildError{Node: fmt.Sprintf("%T", cell), Anchor: k.name, Err: errCellType})
	}
	return s, true
}

// Resolver is the anchor half of every builder node.
type Resolver interface {
	// Anchors reports the keys visible through this node.
	Anchors() Set
	// GetAnchor returns the first owned instance for id in this subtree.
	GetAnchor(id ID) (any, bool)
	// ResolveAnchor binds cell into every node that asked for id and does
	// not own an instance.
	ResolveAnchor(id ID, cell any)
}

// None implements Resolver for nodes without anchors. Embed it.
type None struct{}

// Anchors returns an empty set.
func (None) Anchors() Set { return nil }

// GetAnchor always reports false.
func (None) GetAnchor(ID) (any, bool) { return nil, false }

// ResolveAnchor does nothing.
func (None) ResolveAnchor(ID, any) {}

// First asks children in order and returns the first owned instance.
// Children whose set does not contain id are skipped.
func First(id ID, children ...Resolver) (any, bool) {
	for _, child := range children {
		if !child.Anchors().Contains(id) {
			continue
		}
		if cell, ok := child.GetAnchor(id); ok {
			return cell, true
		}
	}
	return nil, false
}

// Broadcast binds cell into every child whose set contains id.
func Broadcast(id ID, cell any, children ...Resolver) {
	for _, child := range children {
		if child.Anchors().Contains(id) {
			child.ResolveAnchor(id, cell)
		}
	}
}

// Union returns the union of the children's sets, in child order.
func Union(children ...Resolver) Set {
	var out Set
	for _, child := range children {
		out = out.Union(child.Anchors())
	}
	return out
}

// Get is the typed form of Resolver.GetAnchor.
func Get[V any](r Resolver, k *Key[V]) (shared.Shared[V], bool) {
	cell, ok := r.GetAnchor(k)
	if !ok {
		return shared.Shared[V]{}, false
	}
	return Match(k, k, cell)
}

// Bind is the typed form of Resolver.ResolveAnchor.
func Bind[V any](r Resolver, k *Key[V], s shared.Shared[V]) {
	r.ResolveAnchor(k, s)
}
