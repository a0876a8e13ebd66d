package anchor

import "github.com/go-drift/strata/pkg/shared"

// Binding records how one key was resolved.
type Binding struct {
	ID ID
	// Declared is true when a node in the tree owned the instance, false
	// when the pass allocated it from the key's initial value.
	Declared bool
	// Addr identifies the bound cell.
	Addr shared.Addr
}

// Resolve runs the collect and bind phases for every key visible through
// root. Each key is visited once; there is no re-resolution.
func Resolve(root Resolver) []Binding {
	return ResolveOnly(root, root.Anchors())
}

// ResolveOnly resolves the members of ids that are visible through root.
func ResolveOnly(root Resolver, ids Set) []Binding {
	visible := root.Anchors()
	var bindings []Binding
	for _, id := range ids {
		if !visible.Contains(id) {
			continue
		}
		cell, declared := root.GetAnchor(id)
		if !declared {
			cell = id.newCell()
		}
		root.ResolveAnchor(id, cell)
		bindings = append(bindings, Binding{ID: id, Declared: declared, Addr: addrOf(cell)})
	}
	return bindings
}

func addrOf(cell any) shared.Addr {
	if a, ok := cell.(interface{ Addr() shared.Addr }); ok {
		return a.Addr()
	}
	return shared.Addr{}
}
