package shapetracker

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind identifies which of spec.md's §7 error kinds a failed operation hit.
type Kind int

const (
	// ShapeMismatch is returned by Reshape when the product of the requested
	// dimensions differs from the current shape's size.
	ShapeMismatch Kind = iota + 1

	// BadAxes is returned by Permute when its argument is not a permutation
	// of 0..n-1, and by Flip when its argument is not a duplicate-free
	// subset of 0..n-1 -- both are axis-set validity failures of the same
	// family, so they share one Kind.
	BadAxes

	// BadExpand is returned by Expand when the argument's arity doesn't
	// match the current rank, or an axis grows from something other than 1.
	BadExpand

	// BadSlice is returned by Slice when a range falls outside [0, s_k] or
	// has lo > hi.
	BadSlice

	// BadStride is returned by Stride when a factor is zero or the argument
	// count doesn't match the current rank.
	BadStride

	// BadIndex is returned by At when k is outside [0, prod(shape)).
	BadIndex
)

// String implements fmt.Stringer by hand, matching the repo's convention of
// hand-rolled switches for small internal enums (see internal/ekind.Kind).
func (k Kind) String() string {
	switch k {
	case ShapeMismatch:
		return "ShapeMismatch"
	case BadAxes:
		return "BadAxes"
	case BadExpand:
		return "BadExpand"
	case BadSlice:
		return "BadSlice"
	case BadStride:
		return "BadStride"
	case BadIndex:
		return "BadIndex"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// trackerError attaches a Kind to an underlying errors.Errorf error so callers can
// recover it with KindOf, while still formatting and unwrapping like any
// other error produced with github.com/pkg/errors.
type trackerError struct {
	kind Kind
	err  error
}

func (e *trackerError) Error() string { return e.err.Error() }
func (e *trackerError) Unwrap() error { return e.err }

func newError(kind Kind, format string, args ...any) error {
	return &trackerError{kind: kind, err: errors.Errorf(format, args...)}
}

// KindOf reports the Kind attached to err, if any, and whether one was
// found. Use with errors.Is/As-compatible chains: KindOf unwraps through
// github.com/pkg/errors wrapping via errors.As.
func KindOf(err error) (Kind, bool) {
	var te *trackerError
	if errors.As(err, &te) {
		return te.kind, true
	}
	return 0, false
}
