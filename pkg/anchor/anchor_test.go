package anchor

import (
	"testing"

	"github.com/go-drift/strata/pkg/shared"
)

// testOwner declares its own instance for key.
type testOwner struct {
	key  *Key[int]
	cell shared.Shared[int]
}

func (o *testOwner) Anchors() Set { return SetOf(o.key) }

func (o *testOwner) GetAnchor(id ID) (any, bool) {
	if id == ID(o.key) {
		return o.cell, true
	}
	return nil, false
}

func (o *testOwner) ResolveAnchor(ID, any) {}

// testUser asks for key without owning it.
type testUser struct {
	key   *Key[int]
	cell  shared.Shared[int]
	binds int
}

func (u *testUser) Anchors() Set { return SetOf(u.key) }

func (u *testUser) GetAnchor(ID) (any, bool) { return nil, false }

func (u *testUser) ResolveAnchor(id ID, cell any) {
	if s, ok := Match(u.key, id, cell); ok {
		u.cell = s
		u.binds++
	}
}

// testPair composes two resolvers left to right.
type testPair struct {
	left, right Resolver
}

func (p testPair) Anchors() Set { return Union(p.left, p.right) }

func (p testPair) GetAnchor(id ID) (any, bool) { return First(id, p.left, p.right) }

func (p testPair) ResolveAnchor(id ID, cell any) { Broadcast(id, cell, p.left, p.right) }

type testLeaf struct{ None }

func TestSiblingDeclarationIsShared(t *testing.T) {
	key := New("selection", 0)
	owner := &testOwner{key: key, cell: shared.New(5)}
	user := &testUser{key: key}

	bindings := Resolve(testPair{left: owner, right: user})

	if len(bindings) != 1 || !bindings[0].Declared {
		t.Fatalf("expected one declared binding, got %+v", bindings)
	}
	if !user.cell.Same(owner.cell) {
		t.Fatal("user should be bound to the owner's cell")
	}
	owner.cell.Set(9)
	if got := user.cell.Get(); got != 9 {
		t.Errorf("user reads %d after owner write, want 9", got)
	}
}

func TestCousinDeclarationFoundDeeper(t *testing.T) {
	key := New("transform", 1.0)
	deep := &testUser{key: New("other", 0)}
	declared := &testOwnerFloat{key: key, cell: shared.New(2.5)}
	userA := &testUserFloat{key: key}
	userB := &testUserFloat{key: key}

	root := testPair{
		left:  testPair{left: userA, right: testPair{left: testLeaf{}, right: declared}},
		right: testPair{left: deep, right: userB},
	}
	Resolve(root)

	if !userA.cell.Same(declared.cell) || !userB.cell.Same(declared.cell) {
		t.Fatal("both users should bind to the declaration found in a cousin subtree")
	}
	if deep.binds != 1 {
		t.Errorf("unrelated key should be resolved once, got %d binds", deep.binds)
	}
}

func TestLeftDeclarationWins(t *testing.T) {
	key := New("selection", 0)
	left := &testOwner{key: key, cell: shared.New(1)}
	right := &testOwner{key: key, cell: shared.New(2)}
	consumer := &testUser{key: key}

	Resolve(testPair{left: testPair{left: left, right: right}, right: consumer})

	if !consumer.cell.Same(left.cell) {
		t.Fatal("consumer should bind to the left declaration")
	}
	if right.cell.Same(left.cell) {
		t.Fatal("the right owner must keep its own instance")
	}
	if got := right.cell.Get(); got != 2 {
		t.Errorf("right owner value = %d, want 2", got)
	}
}

func TestUndeclaredKeyAllocatesOnce(t *testing.T) {
	key := New("counter", 10)
	a := &testUser{key: key}
	b := &testUser{key: key}

	bindings := Resolve(testPair{left: a, right: b})

	if len(bindings) != 1 || bindings[0].Declared {
		t.Fatalf("expected one allocated binding, got %+v", bindings)
	}
	if !a.cell.Same(b.cell) {
		t.Fatal("users of an undeclared key should share one allocated cell")
	}
	if got := a.cell.Get(); got != 10 {
		t.Errorf("allocated cell starts at %d, want 10", got)
	}
	if bindings[0].Addr != a.cell.Addr() {
		t.Error("binding should report the bound cell address")
	}
}

func TestResolveIsIdempotent(t *testing.T) {
	key := New("selection", 0)
	owner := &testOwner{key: key, cell: shared.New(3)}
	user := &testUser{key: key}
	root := testPair{left: owner, right: user}

	Resolve(root)
	first := user.cell
	Resolve(root)

	if !user.cell.Same(first) {
		t.Fatal("second resolution should bind the same cell")
	}
}

func TestBroadcastSkipsUninterestedChildren(t *testing.T) {
	key := New("a", 0)
	other := &testUser{key: New("b", 0)}
	user := &testUser{key: key}

	Broadcast(key, key.NewCell(), other, user)

	if other.binds != 0 {
		t.Error("child without the key in its set must not be visited")
	}
	if user.binds != 1 {
		t.Errorf("user binds = %d, want 1", user.binds)
	}
}

func TestNoAnchorsNothingAllocated(t *testing.T) {
	if bindings := Resolve(testPair{left: testLeaf{}, right: testLeaf{}}); len(bindings) != 0 {
		t.Fatalf("expected no bindings, got %+v", bindings)
	}
}

func TestSetOperations(t *testing.T) {
	a, b, c := New("a", 0), New("b", ""), New("c", 1.0)

	s := SetOf(a, b, a)
	if len(s) != 2 {
		t.Fatalf("SetOf should drop duplicates, got %v", s)
	}
	u := s.Union(SetOf(b, c))
	if got := u.String(); got != "{a, b, c}" {
		t.Errorf("Union = %s, want {a, b, c}", got)
	}
	if w := u.Without(b); w.Contains(b) || !w.Contains(a) || !w.Contains(c) {
		t.Errorf("Without(b) = %s", w)
	}
	if len(s) != 2 {
		t.Error("Union must not modify the receiver")
	}
}

func TestMatchTypeMismatchPanics(t *testing.T) {
	key := New("n", 0)
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for mismatched cell type")
		}
	}()
	Match(key, key, shared.New("not an int"))
}

func TestTypedGet(t *testing.T) {
	key := New("n", 0)
	owner := &testOwner{key: key, cell: shared.New(4)}
	s, ok := Get(owner, key)
	if !ok || !s.Same(owner.cell) {
		t.Fatal("Get should return the owner's cell")
	}
	if _, ok := Get(testLeaf{}, key); ok {
		t.Fatal("Get on a leaf without anchors should report false")
	}
}

func TestTypedBind(t *testing.T) {
	key := New("n", 0)
	user := &testUser{key: key}
	cell := shared.New(9)

	Bind(user, key, cell)
	if user.binds != 1 || !user.cell.Same(cell) {
		t.Fatalf("Bind did not reach the user: binds=%d", user.binds)
	}
}

func TestNewFuncRunsInitPerCell(t *testing.T) {
	calls := 0
	key := NewFunc("items", func() []string {
		calls++
		return []string{"seed"}
	})

	a, b := key.NewCell(), key.NewCell()
	if calls != 2 {
		t.Fatalf("init ran %d times, want once per cell", calls)
	}
	a.Update(func(v *[]string) { *v = append(*v, "more") })
	if got := b.Get(); len(got) != 1 {
		t.Errorf("second cell = %v, want its own initial value", got)
	}
}

type testOwnerFloat struct {
	key  *Key[float64]
	cell shared.Shared[float64]
}

func (o *testOwnerFloat) Anchors() Set { return SetOf(o.key) }

func (o *testOwnerFloat) GetAnchor(id ID) (any, bool) {
	if id == ID(o.key) {
		return o.cell, true
	}
	return nil, false
}

func (o *testOwnerFloat) ResolveAnchor(ID, any) {}

type testUserFloat struct {
	key  *Key[float64]
	cell shared.Shared[float64]
}

func (u *testUserFloat) Anchors() Set { return SetOf(u.key) }

func (u *testUserFloat) GetAnchor(ID) (any, bool) { return nil, false }

func (u *testUserFloat) ResolveAnchor(id ID, cell any) {
	if s, ok := Match(u.key, id, cell); ok {
		u.cell = s
	}
}
