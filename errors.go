package glcache

import (
	"errors"
	"fmt"
)

var (
	// ErrNotTracked is raised by Pop on a context that was never tracked.
	ErrNotTracked = errors.New("glcache: context is not tracked")
	// ErrScopeUnderflow is raised by Pop on an empty scope stack.
	ErrScopeUnderflow = errors.New("glcache: scope stack underflow")
	// ErrNilContext is raised by Track and Push on a nil context.
	ErrNilContext = errors.New("glcache: nil context")
)

// AssertionError is the panic value of a precondition violation. These are
// programmer errors; callers are not expected to recover from them.
type AssertionError struct {
	Op  string
	Err error
}

func (e *AssertionError) Error() string {
	return fmt.Sprintf("glcache: %s: %v", e.Op, e.Err)
}

func (e *AssertionError) Unwrap() error { return e.Err }

func assert(ok bool, op string, err error) {
	if !ok {
		panic(&AssertionError{Op: op, Err: err})
	}
}
