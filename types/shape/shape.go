// Package shape defines Shape, the tuple of per-axis dimensions shared by the
// view and shapetracker packages.
package shape

import (
	"fmt"
	"strings"
)

// Shape is an ordered tuple of non-negative per-axis dimensions.
//
// A Shape with Rank() == 0 represents a scalar, of Size() == 1.
type Shape struct {
	Dimensions []int
}

// Make creates a Shape from the given dimensions.
func Make(dims ...int) Shape {
	if len(dims) == 0 {
		return Shape{}
	}
	d := make([]int, len(dims))
	copy(d, dims)
	return Shape{Dimensions: d}
}

// Ok reports whether all dimensions are valid (non-negative).
//
// Zero-length axes are allowed -- spec.md explicitly allows a slice to
// produce a length-0 axis, and downstream consumers must accept it.
func (s Shape) Ok() bool {
	for _, d := range s.Dimensions {
		if d < 0 {
			return false
		}
	}
	return true
}

// Rank returns the number of axes.
func (s Shape) Rank() int {
	return len(s.Dimensions)
}

// Size returns the total number of elements the shape addresses, the
// product of all dimensions. A rank-0 shape has Size() == 1.
func (s Shape) Size() int {
	size := 1
	for _, d := range s.Dimensions {
		size *= d
	}
	return size
}

// Clone returns an independent copy of s.
func (s Shape) Clone() Shape {
	if s.Dimensions == nil {
		return Shape{}
	}
	d := make([]int, len(s.Dimensions))
	copy(d, s.Dimensions)
	return Shape{Dimensions: d}
}

// Equal reports whether s and other have the same rank and dimensions.
func (s Shape) Equal(other Shape) bool {
	if len(s.Dimensions) != len(other.Dimensions) {
		return false
	}
	for i, d := range s.Dimensions {
		if d != other.Dimensions[i] {
			return false
		}
	}
	return true
}

// RowMajorStrides returns the contiguous (row-major) strides for s: the
// trailing axis has stride 1, and each preceding axis's stride is the
// product of all dimensions to its right.
func (s Shape) RowMajorStrides() []int {
	n := len(s.Dimensions)
	strides := make([]int, n)
	acc := 1
	for k := n - 1; k >= 0; k-- {
		strides[k] = acc
		acc *= s.Dimensions[k]
	}
	return strides
}

// String implements fmt.Stringer, rendering e.g. "(2, 4)" or "()" for a scalar.
func (s Shape) String() string {
	parts := make([]string, len(s.Dimensions))
	for i, d := range s.Dimensions {
		parts[i] = fmt.Sprintf("%d", d)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
