// Package build turns declarative builder trees into ready-to-run element
// trees.
//
// Every builder node is an anchor.Resolver plus a Build method. Build runs
// anchor resolution over the whole tree exactly once and then builds the
// root, which builds its children. Built values hold resolved shared cells
// only; there is no way back from a built value to its builder.
package build

import (
	"github.com/go-drift/strata/pkg/anchor"
	"github.com/go-drift/strata/pkg/layout"
)

// Builder describes a node that builds into an E.
type Builder[E any] interface {
	anchor.Resolver
	// Build produces the runtime form. Call it only through Build or from a
	// parent's Build with the same Context.
	Build(ctx *Context) E
}

// Context is threaded through one build pass.
type Context struct {
	bindings []anchor.Binding
}

// Bindings reports how each anchor visible through the root was resolved.
func (c *Context) Bindings() []anchor.Binding {
	if c == nil {
		return nil
	}
	return c.bindings
}

// Build resolves the anchors of root and builds it.
func Build[E any](root Builder[E]) E {
	e, _ := Run(root)
	return e
}

// Run is Build that also returns the pass context, for diagnostics.
func Run[E any](root Builder[E]) (E, *Context) {
	ctx := &Context{bindings: anchor.Resolve(root)}
	return root.Build(ctx), ctx
}

// Map adapts a builder's output with fn. Anchor behaviour and split weight
// are the wrapped builder's.
func Map[E, F any](b Builder[E], fn func(E) F) Builder[F] {
	return &mapped[E, F]{inner: b, fn: fn}
}

type mapped[E, F any] struct {
	inner Builder[E]
	fn    func(E) F
}

func (m *mapped[E, F]) Anchors() anchor.Set { return m.inner.Anchors() }

func (m *mapped[E, F]) GetAnchor(id anchor.ID) (any, bool) { return m.inner.GetAnchor(id) }

func (m *mapped[E, F]) ResolveAnchor(id anchor.ID, cell any) { m.inner.ResolveAnchor(id, cell) }

func (m *mapped[E, F]) FlexWeight() int { return layout.WeightOf(m.inner) }

func (m *mapped[E, F]) Build(ctx *Context) F { return m.fn(m.inner.Build(ctx)) }
