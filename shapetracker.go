// Package shapetracker tracks how a logically N-dimensional tensor view
// maps onto a flat, contiguous backing buffer, without ever moving data.
//
// A ShapeTracker is an ordered, non-empty stack of view.View values. The
// current logical shape is the top View's shape; every mutator
// (Reshape, Permute, Expand, Flip, Slice, Stride) either rewrites the top
// View in place when the result stays expressible as a single affine form,
// or pushes a fresh contiguous View on top when it cannot (only Reshape can
// take this second path -- every other transform is always affine-
// preserving). Expr composes the whole stack, bottom-up, into a single
// indexexpr.Expr over the top View's axis variables.
package shapetracker

import (
	"fmt"
	"slices"

	"github.com/gomlx/shapetracker/indexexpr"
	"github.com/gomlx/shapetracker/internal/utils"
	"github.com/gomlx/shapetracker/types/shape"
	"github.com/gomlx/shapetracker/view"
	"github.com/pkg/errors"
)

// ShapeTracker is a mutable, single-owner value: see spec.md §5. It is not
// safe for concurrent use without external synchronization.
type ShapeTracker struct {
	views []view.View
}

// New creates a ShapeTracker over a contiguous tensor of the given
// dimensions, all of which must be positive.
//
// This precondition isn't one of spec.md §7's typed mutator errors (it's a
// constructor-time check), so the returned error carries no Kind; use
// KindOf only on errors returned by the mutators and At.
func New(dims ...int) (*ShapeTracker, error) {
	for _, d := range dims {
		if d < 1 {
			return nil, errors.Errorf("shapetracker.New: dimensions must all be positive, got %v", dims)
		}
	}
	return &ShapeTracker{views: []view.View{view.Contiguous(shape.Make(dims...))}}, nil
}

func (t *ShapeTracker) top() view.View {
	return t.views[len(t.views)-1]
}

// Shape returns the current logical shape: the top View's shape.
func (t *ShapeTracker) Shape() shape.Shape {
	return t.top().Shape.Clone()
}

// Reshape changes the logical shape to newDims, which must describe the
// same number of elements as the current shape.
//
// Takes the collapse path (rewriting the top View) whenever newDims can be
// reached by splitting and merging only the top View's existing contiguous
// stride groups; otherwise pushes a fresh contiguous View, introducing a
// reinterpretation layer in Expr.
func (t *ShapeTracker) Reshape(newDims ...int) error {
	top := t.top()
	newShape := shape.Make(newDims...)
	if newShape.Size() != top.Shape.Size() {
		return newError(ShapeMismatch, "Reshape: product of %v (%d) does not match current shape %s (%d)",
			newDims, newShape.Size(), top.Shape, top.Shape.Size())
	}
	if collapsed, ok := tryCollapseReshape(top, newShape); ok {
		t.views[len(t.views)-1] = collapsed
		return nil
	}
	t.views = append(t.views, view.Contiguous(newShape))
	return nil
}

// Permute reorders the axes according to axes, which must be a permutation
// of 0..n-1 where n is the current rank. Always takes the collapse path.
func (t *ShapeTracker) Permute(axes ...int) error {
	top := t.top()
	n := len(top.Shape.Dimensions)
	if err := validatePermutation(axes, n); err != nil {
		return err
	}
	newDims := make([]int, n)
	newStride := make([]int, n)
	for k, axis := range axes {
		newDims[k] = top.Shape.Dimensions[axis]
		newStride[k] = top.Stride[axis]
	}
	t.views[len(t.views)-1] = view.View{
		Shape:  shape.Shape{Dimensions: newDims},
		Stride: newStride,
		Offset: top.Offset,
	}
	return nil
}

func validatePermutation(axes []int, n int) error {
	if len(axes) != n {
		return newError(BadAxes, "Permute: expected %d axes, got %d (%v)", n, len(axes), axes)
	}
	seen := utils.MakeSet[int](n)
	for _, axis := range axes {
		if axis < 0 || axis >= n {
			return newError(BadAxes, "Permute: axis %d out of range for rank %d", axis, n)
		}
		if seen.Has(axis) {
			return newError(BadAxes, "Permute: axis %d appears more than once in %v", axis, axes)
		}
		seen.Insert(axis)
	}
	return nil
}

// Expand grows axes whose current length is 1 to the corresponding length in
// newDims; every other axis must repeat its current length unchanged.
// Always takes the collapse path: broadcast axes get stride 0.
func (t *ShapeTracker) Expand(newDims ...int) error {
	top := t.top()
	n := len(top.Shape.Dimensions)
	if len(newDims) != n {
		return newError(BadExpand, "Expand: expected %d dimensions, got %d (%v)", n, len(newDims), newDims)
	}
	newStride := make([]int, n)
	for k, d := range newDims {
		cur := top.Shape.Dimensions[k]
		if d == cur {
			newStride[k] = top.Stride[k]
			continue
		}
		if cur != 1 {
			return newError(BadExpand, "Expand: axis %d has length %d, cannot grow to %d (only length-1 axes may be expanded)", k, cur, d)
		}
		newStride[k] = 0
	}
	t.views[len(t.views)-1] = view.View{
		Shape:  shape.Make(newDims...),
		Stride: newStride,
		Offset: top.Offset,
	}
	return nil
}

// Flip reverses the given axes: logical coordinate 0 on a flipped axis
// addresses what was previously the last coordinate. Always takes the
// collapse path.
func (t *ShapeTracker) Flip(axes ...int) error {
	top := t.top()
	n := len(top.Shape.Dimensions)
	seen := utils.MakeSet[int](len(axes))
	for _, axis := range axes {
		if axis < 0 || axis >= n {
			return newError(BadAxes, "Flip: axis %d out of range for rank %d", axis, n)
		}
		if seen.Has(axis) {
			return newError(BadAxes, "Flip: axis %d appears more than once in %v", axis, axes)
		}
		seen.Insert(axis)
	}
	newStride := slices.Clone(top.Stride)
	newOffset := top.Offset
	for _, axis := range axes {
		newStride[axis] = -top.Stride[axis]
		newOffset += (top.Shape.Dimensions[axis] - 1) * top.Stride[axis]
	}
	t.views[len(t.views)-1] = view.View{Shape: top.Shape.Clone(), Stride: newStride, Offset: newOffset}
	return nil
}

// Range is a half-open [Lo, Hi) bound for one axis of a Slice.
type Range struct {
	Lo, Hi int
}

// Slice restricts each axis to [ranges[k].Lo, ranges[k].Hi). An axis may
// become length 0; downstream consumers must accept empty views. Always
// takes the collapse path.
func (t *ShapeTracker) Slice(ranges ...Range) error {
	top := t.top()
	n := len(top.Shape.Dimensions)
	if len(ranges) != n {
		return newError(BadSlice, "Slice: expected %d ranges, got %d", n, len(ranges))
	}
	newDims := make([]int, n)
	newOffset := top.Offset
	for k, r := range ranges {
		s := top.Shape.Dimensions[k]
		if r.Lo < 0 || r.Hi > s || r.Lo > r.Hi {
			return newError(BadSlice, "Slice: range [%d, %d) out of bounds [0, %d] for axis %d", r.Lo, r.Hi, s, k)
		}
		newDims[k] = r.Hi - r.Lo
		newOffset += r.Lo * top.Stride[k]
	}
	t.views[len(t.views)-1] = view.View{
		Shape:  shape.Shape{Dimensions: newDims},
		Stride: slices.Clone(top.Stride),
		Offset: newOffset,
	}
	return nil
}

// Stride subsamples each axis by factors[k], one non-zero integer per axis.
// A positive factor keeps every factors[k]-th element starting from the
// first; a negative factor reverses the axis first, then keeps every
// |factors[k]|-th element starting from the last -- "flip then
// positive-stride". Always takes the collapse path.
func (t *ShapeTracker) Stride(factors ...int) error {
	top := t.top()
	n := len(top.Shape.Dimensions)
	if len(factors) != n {
		return newError(BadStride, "Stride: expected %d factors, got %d", n, len(factors))
	}
	for _, f := range factors {
		if f == 0 {
			return newError(BadStride, "Stride: factor must be non-zero, got %v", factors)
		}
	}
	newDims := make([]int, n)
	newStride := make([]int, n)
	newOffset := top.Offset
	for k, f := range factors {
		s := top.Shape.Dimensions[k]
		mag := f
		if mag < 0 {
			mag = -mag
		}
		if s == 0 {
			newDims[k] = 0
		} else {
			newDims[k] = (s + mag - 1) / mag
		}
		newStride[k] = top.Stride[k] * f
		if f < 0 {
			newOffset += (s - 1) * top.Stride[k]
		}
	}
	t.views[len(t.views)-1] = view.View{
		Shape:  shape.Shape{Dimensions: newDims},
		Stride: newStride,
		Offset: newOffset,
	}
	return nil
}

func axisName(i int) string {
	return fmt.Sprintf("idx%d", i)
}

// Expr synthesizes the backing-index IndexExpr as a function of the top
// View's axis variables, composing every View in the stack bottom-up (see
// spec.md §4.3). If vars is empty, fresh variables idx0..idx{n-1} are
// auto-named; otherwise len(vars) must equal the current rank, and each
// name is normalized to a valid identifier.
func (t *ShapeTracker) Expr(vars ...string) (indexexpr.Expr, error) {
	top := t.top()
	n := len(top.Shape.Dimensions)
	names := make([]string, n)
	if len(vars) == 0 {
		for k := 0; k < n; k++ {
			names[k] = axisName(k)
		}
	} else {
		if len(vars) != n {
			return indexexpr.Expr{}, errors.Errorf("Expr: expected %d variable names, got %d", n, len(vars))
		}
		for k, v := range vars {
			names[k] = utils.NormalizeIdentifier(v)
		}
	}
	varExprs := make([]indexexpr.Expr, n)
	for k, name := range names {
		varExprs[k] = indexexpr.Var(name)
	}
	e := top.IndexExpr(varExprs)

	for j := len(t.views) - 2; j >= 0; j-- {
		vj := t.views[j]
		e = unravelInto(e, vj)
	}
	return e, nil
}

// unravelInto reinterprets the flat index e (a valid flat index into vj's
// logical space) as per-axis coordinates of vj, using vj's row-major
// strides, and returns vj's own IndexExpr evaluated at those coordinates.
//
// y_k = (e / r_k) % vj.Shape[k], where r_k is the product of vj's
// dimensions to the right of k -- except on the leading axis, where the
// modulo is a no-op given e's range and is omitted (spec.md §4.3).
func unravelInto(e indexexpr.Expr, vj view.View) indexexpr.Expr {
	dims := vj.Shape.Dimensions
	n := len(dims)
	rowStrides := vj.Shape.RowMajorStrides()
	y := make([]indexexpr.Expr, n)
	for k := 0; k < n; k++ {
		if dims[k] <= 1 {
			y[k] = indexexpr.Const(0)
			continue
		}
		r := rowStrides[k]
		var divided indexexpr.Expr
		switch {
		case r <= 1:
			divided = e
		default:
			divided = indexexpr.DivC(e, r)
		}
		if k == 0 {
			y[k] = divided
		} else {
			y[k] = indexexpr.ModC(divided, dims[k])
		}
	}
	return vj.IndexExpr(y)
}

// At unravels the logical flat index k against Shape() and evaluates Expr()
// under that binding, returning the backing index.
func (t *ShapeTracker) At(k int) (int, error) {
	s := t.Shape()
	size := s.Size()
	if k < 0 || k >= size {
		return 0, newError(BadIndex, "At: index %d out of range [0, %d)", k, size)
	}
	n := len(s.Dimensions)
	rowStrides := s.RowMajorStrides()
	coords := make([]int, n)
	rem := k
	for i := 0; i < n; i++ {
		if rowStrides[i] == 0 {
			continue
		}
		coords[i] = rem / rowStrides[i]
		rem = rem % rowStrides[i]
	}
	e, err := t.Expr()
	if err != nil {
		return 0, err
	}
	bindings := make(map[string]int, n)
	for i, c := range coords {
		bindings[axisName(i)] = c
	}
	val, err := e.Eval(bindings)
	if err != nil {
		return 0, err
	}
	return val, nil
}
