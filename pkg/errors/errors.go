// Package errors provides structured error handling for strata.
//
// Recoverable failures (event dispatch) travel as values. Programmer errors
// (a poisoned shared cell, an anchor bound to a cell of the wrong type) are
// raised as panics carrying one of the typed values below so hosts can
// recognise them in a recover.
package errors

import (
	"fmt"
	"strings"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindEvent indicates an event handler failure.
	KindEvent
	// KindBuild indicates a build-pass defect.
	KindBuild
	// KindPoison indicates a shared cell poisoned by a failed writer.
	KindPoison
	// KindLayout indicates a layout failure.
	KindLayout
	// KindRender indicates a rendering backend error.
	KindRender
	// KindConfig indicates a configuration error.
	KindConfig
	// KindDocument indicates a malformed layout document.
	KindDocument
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindEvent:
		return "event"
	case KindBuild:
		return "build"
	case KindPoison:
		return "poison"
	case KindLayout:
		return "layout"
	case KindRender:
		return "render"
	case KindConfig:
		return "config"
	case KindDocument:
		return "document"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// StrataError represents a structured error reported by the framework.
type StrataError struct {
	// Op is the operation that failed (e.g., "host.Update").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *StrataError) Error() string {
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *StrataError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "host.View").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// PoisonError is the panic value raised when a shared cell is acquired after
// a previous writer panicked while holding it. The cell contents may be
// half-updated, so the condition is never reported as a returned error.
type PoisonError struct {
	// Cell describes the poisoned cell (type and address).
	Cell string
	// Access is "read" or "write".
	Access string
}

func (e *PoisonError) Error() string {
	return fmt.Sprintf("shared %s poisoned: %s access after a writer panicked", e.Cell, e.Access)
}

// BuildError is the panic value raised for build-pass defects, such as a
// resolved cell whose type does not match its key, or a zero shared handle.
type BuildError struct {
	// Node is the type name of the builder that failed.
	Node string
	// Anchor names the anchor involved, if any.
	Anchor string
	// Err is the underlying error.
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *BuildError) Error() string {
	if e.Anchor != "" {
		return fmt.Sprintf("build %s: anchor %q: %v", e.Node, e.Anchor, e.Err)
	}
	return fmt.Sprintf("build %s: %v", e.Node, e.Err)
}

func (e *BuildError) Unwrap() error {
	return e.Err
}

// EventError aggregates the failures of a broadcast event dispatch. Every
// child is dispatched before the composite reports failure.
type EventError struct {
	// Op is the composite that dispatched the event (e.g., "element.Layers2").
	Op string
	// Errs holds one entry per failing child, in dispatch order.
	Errs []error
}

func (e *EventError) Error() string {
	msgs := make([]string, len(e.Errs))
	for i, err := range e.Errs {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("%s: %d handler(s) failed: %s", e.Op, len(e.Errs), strings.Join(msgs, "; "))
}

func (e *EventError) Unwrap() []error {
	return e.Errs
}

// JoinEvent collects child dispatch results. It returns nil when every
// result is nil, the single failure unchanged when exactly one child failed,
// and an *EventError otherwise.
func JoinEvent(op string, results ...error) error {
	var errs []error
	for _, err := range results {
		if err != nil {
			errs = append(errs, err)
		}
	}
	switch len(errs) {
	case 0:
		return nil
	case 1:
		return errs[0]
	default:
		return &EventError{Op: op, Errs: errs}
	}
}

// ErrorHandler receives errors reported by the framework.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *StrataError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
