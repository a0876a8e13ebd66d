// Package shared provides Shared, a lock-protected mutable cell whose handles
// can be copied freely between subtrees and goroutines.
//
// Every copy of a Shared handle (including Clone) refers to the same cell.
// Access goes through scoped guards:
//
//	g := selection.Write()
//	defer g.Release()
//	g.Set(g.Value() + 1)
//
// Readers may coexist; a writer excludes readers and other writers until its
// guard is released. Release must be deferred directly: a write guard
// released while its goroutine is panicking poisons the cell, and every
// later acquisition panics with *errors.PoisonError.
//
// Never hold guards on two different cells at the same time. Nothing in
// strata does, and the package does not detect lock-order inversions.
package shared

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/go-drift/strata/pkg/errors"
)

var errUnbound = stderrors.New("shared handle has no cell")

// Shared is a handle to a single mutable T. The zero value is an unbound
// handle; acquiring it panics. Use New.
type Shared[T any] struct {
	c *cell[T]
}

type cell[T any] struct {
	mu       sync.RWMutex
	poisoned atomic.Bool
	value    T
}

// New allocates a cell holding value.
func New[T any](value T) Shared[T] {
	return Shared[T]{c: &cell[T]{value: value}}
}

// Clone returns another handle to the same cell. It never copies the value.
func (s Shared[T]) Clone() Shared[T] {
	return Shared[T]{c: s.c}
}

// Valid reports whether the handle refers to a cell.
func (s Shared[T]) Valid() bool {
	return s.c != nil
}

// Same reports whether both handles refer to the same cell.
func (s Shared[T]) Same(other Shared[T]) bool {
	return s.c != nil && s.c == other.c
}

// Addr returns the identity of the underlying cell.
func (s Shared[T]) Addr() Addr {
	return Addr{p: unsafe.Pointer(s.c)}
}

// IsPoisoned reports whether a writer panicked while holding the cell.
func (s Shared[T]) IsPoisoned() bool {
	return s.c != nil && s.c.poisoned.Load()
}

// Read acquires the cell for shared access.
func (s Shared[T]) Read() *ReadGuard[T] {
	c := s.mustCell()
	c.mu.RLock()
	if c.poisoned.Load() {
		c.mu.RUnlock()
		panic(&errors.PoisonError{Cell: s.String(), Access: "read"})
	}
	return &ReadGuard[T]{c: c}
}

// Write acquires the cell for exclusive access.
func (s Shared[T]) Write() *WriteGuard[T] {
	c := s.mustCell()
	c.mu.Lock()
	if c.poisoned.Load() {
		c.mu.Unlock()
		panic(&errors.PoisonError{Cell: s.String(), Access: "write"})
	}
	return &WriteGuard[T]{c: c}
}

// Get returns a copy of the current value under a read lock.
func (s Shared[T]) Get() T {
	g := s.Read()
	defer g.Release()
	return g.Value()
}

// Set replaces the value under a write lock.
func (s Shared[T]) Set(value T) {
	g := s.Write()
	defer g.Release()
	g.Set(value)
}

// Update runs fn with exclusive access to the value. If fn panics the cell
// is poisoned and the panic continues.
func (s Shared[T]) Update(fn func(*T)) {
	g := s.Write()
	defer g.Release()
	fn(g.Ptr())
}

// View runs fn with shared access to the value.
func (s Shared[T]) View(fn func(T)) {
	g := s.Read()
	defer g.Release()
	fn(g.Value())
}

func (s Shared[T]) String() string {
	return fmt.Sprintf("shared[%s]@%p", reflect.TypeFor[T](), s.c)
}

func (s Shared[T]) mustCell() *cell[T] {
	if s.c == nil {
		panic(&errors.BuildError{Node: s.String(), Err: errUnbound})
	}
	return s.c
}

// ReadGuard grants shared access until Release.
type ReadGuard[T any] struct {
	c        *cell[T]
	released bool
}

// Value returns the guarded value.
func (g *ReadGuard[T]) Value() T {
	g.check()
	return g.c.value
}

// Release drops the read lock. Calling it again is a no-op.
func (g *ReadGuard[T]) Release() {
	if g.released {
		return
	}
	g.released = true
	g.c.mu.RUnlock()
}

func (g *ReadGuard[T]) check() {
	if g.released {
		panic("shared: read guard used after Release")
	}
}

// WriteGuard grants exclusive access until Release.
type WriteGuard[T any] struct {
	c        *cell[T]
	released bool
}

// Value returns the guarded value.
func (g *WriteGuard[T]) Value() T {
	g.check()
	return g.c.value
}

// Ptr returns a pointer to the guarded value. It must not outlive the guard.
func (g *WriteGuard[T]) Ptr() *T {
	g.check()
	return &g.c.value
}

// Set replaces the guarded value.
func (g *WriteGuard[T]) Set(value T) {
	g.check()
	g.c.value = value
}

// Release drops the write lock. Calling it again is a no-op.
//
// When Release runs as a deferred call during a panic it poisons the cell
// before unlocking, then resumes the panic.
func (g *WriteGuard[T]) Release() {
	if g.released {
		return
	}
	g.released = true
	if r := recover(); r != nil {
		g.c.poisoned.Store(true)
		g.c.mu.Unlock()
		panic(r)
	}
	g.c.mu.Unlock()
}

func (g *WriteGuard[T]) check() {
	if g.released {
		panic("shared: write guard used after Release")
	}
}

// Addr identifies a cell independent of its value type. The zero Addr
// matches no cell.
type Addr struct {
	p unsafe.Pointer
}

// IsZero reports whether a is the zero Addr.
func (a Addr) IsZero() bool {
	return a.p == nil
}

func (a Addr) String() string {
	return fmt.Sprintf("%p", a.p)
}
