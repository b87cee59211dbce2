package view

import (
	"testing"

	"github.com/gomlx/shapetracker/indexexpr"
	"github.com/gomlx/shapetracker/types/shape"
	"github.com/stretchr/testify/require"
)

func vars(n int) []indexexpr.Expr {
	names := []string{"idx0", "idx1", "idx2"}
	out := make([]indexexpr.Expr, n)
	for i := 0; i < n; i++ {
		out[i] = indexexpr.Var(names[i])
	}
	return out
}

func TestContiguousStrides(t *testing.T) {
	v := Contiguous(shape.Make(2, 4))
	require.Equal(t, []int{4, 1}, v.Stride)
	require.Equal(t, 0, v.Offset)
	require.True(t, v.IsContiguous())
}

func TestIndexExprOmitsUnitAndZeroStrideAxes(t *testing.T) {
	v := Contiguous(shape.Make(2, 4))
	e := v.IndexExpr(vars(2))
	require.Equal(t, "4*idx0 + idx1", e.String())

	v2 := View{Shape: shape.Make(2, 1, 4), Stride: []int{4, 4, 1}, Offset: 0}
	e2 := v2.IndexExpr(vars(3))
	require.Equal(t, "4*idx0 + idx2", e2.String())

	v3 := View{Shape: shape.Make(2, 2, 4), Stride: []int{4, 0, 1}, Offset: 0}
	e3 := v3.IndexExpr(vars(3))
	require.Equal(t, "4*idx0 + idx2", e3.String())
}

func TestNonContiguousView(t *testing.T) {
	v := View{Shape: shape.Make(2, 4), Stride: []int{1, 2}, Offset: 0}
	require.False(t, v.IsContiguous())
}

func TestOffsetMakesNonContiguous(t *testing.T) {
	v := Contiguous(shape.Make(2, 4))
	v.Offset = 1
	require.False(t, v.IsContiguous())
}
