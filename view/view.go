// Package view implements View, the single affine descriptor
// (shape, stride, offset) that addresses a flat backing buffer.
package view

import (
	"github.com/gomlx/shapetracker/indexexpr"
	"github.com/gomlx/shapetracker/types/shape"
)

// View is an affine descriptor: given logical coordinates (i_0,...,i_{n-1})
// with 0 <= i_k < Shape.Dimensions[k], it denotes backing index
//
//	Offset + sum_k i_k * Stride[k]
//
// Stride entries may be zero (a broadcast axis) or negative (a flipped
// axis). A View is a value type: Shape, Stride and Offset are set once at
// construction and never mutated afterward -- every transform produces a new
// View.
type View struct {
	Shape  shape.Shape
	Stride []int
	Offset int
}

// Contiguous builds the row-major View over s: Stride[k] is the product of
// all dimensions to the right of k, and Offset is 0.
func Contiguous(s shape.Shape) View {
	return View{
		Shape:  s.Clone(),
		Stride: s.RowMajorStrides(),
		Offset: 0,
	}
}

// IndexExpr returns the affine IndexExpr addressing the View's backing
// index, as a function of the given per-axis variables. Terms for axes with
// Stride[k] == 0 or Shape.Dimensions[k] == 1 are omitted -- they carry no
// information regardless of the (possibly nonzero) stride recorded for them.
func (v View) IndexExpr(vars []indexexpr.Expr) indexexpr.Expr {
	terms := make([]indexexpr.Expr, 0, len(v.Shape.Dimensions)+1)
	terms = append(terms, indexexpr.Const(v.Offset))
	for k, stride := range v.Stride {
		if stride == 0 || v.Shape.Dimensions[k] == 1 {
			continue
		}
		terms = append(terms, indexexpr.MulC(stride, vars[k]))
	}
	return indexexpr.Sum(terms...)
}

// IsContiguous reports whether v equals Contiguous(v.Shape): row-major
// strides and a zero offset.
func (v View) IsContiguous() bool {
	if v.Offset != 0 {
		return false
	}
	want := v.Shape.RowMajorStrides()
	for k, s := range want {
		if v.Stride[k] != s {
			return false
		}
	}
	return true
}
