package indexexpr

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConstFolding(t *testing.T) {
	e := Sum(Const(2), Const(3))
	require.Equal(t, "5", e.String())
}

func TestDropZeroTerms(t *testing.T) {
	e := Sum(Const(0), Var("x"))
	require.Equal(t, "x", e.String())
}

func TestDropOneFactor(t *testing.T) {
	e := MulC(1, Var("x"))
	require.Equal(t, "x", e.String())
}

func TestZeroFactorCollapses(t *testing.T) {
	e := MulC(0, Var("x"))
	require.Equal(t, "0", e.String())
}

func TestDivOfMulSimplifies(t *testing.T) {
	// (6*x)/3 -> 2*x
	e := DivC(MulC(6, Var("x")), 3)
	require.Equal(t, "2*x", e.String())
}

func TestModOfMulSimplifiesToZero(t *testing.T) {
	// (6*x)%3 -> 0
	e := ModC(MulC(6, Var("x")), 3)
	require.Equal(t, "0", e.String())
}

func TestDivOfConstFolds(t *testing.T) {
	e := DivC(Const(17), 4)
	require.Equal(t, "4", e.String())
}

func TestModOfConstFolds(t *testing.T) {
	e := ModC(Const(17), 4)
	require.Equal(t, "1", e.String())
}

func TestSumRendering(t *testing.T) {
	e := Sum(MulC(4, Var("i")), Var("k"))
	require.Equal(t, "4*i + k", e.String())
}

func TestParenthesizedOperand(t *testing.T) {
	sum := Sum(Var("i"), Var("j"))
	e := ModC(sum, 4)
	require.Equal(t, "(i + j)%4", e.String())
}

func TestEval(t *testing.T) {
	e := Sum(MulC(4, Var("i")), Var("k"))
	v, err := e.Eval(map[string]int{"i": 2, "k": 3})
	require.NoError(t, err)
	require.Equal(t, 11, v)
}

func TestEvalMissingBinding(t *testing.T) {
	e := Var("x")
	_, err := e.Eval(map[string]int{})
	require.Error(t, err)
}

func TestEvalDivMod(t *testing.T) {
	e := Sum(DivC(Var("x"), 4), ModC(Var("x"), 4))
	v, err := e.Eval(map[string]int{"x": 13})
	require.NoError(t, err)
	require.Equal(t, 3+1, v)
}

func TestVariables(t *testing.T) {
	e := Sum(MulC(4, Var("i")), Var("k"), Var("i"))
	require.Equal(t, []string{"i", "k"}, e.Variables())
}

func TestDivPanicsOnNonPositive(t *testing.T) {
	require.Panics(t, func() { DivC(Var("x"), 0) })
}

func TestModPanicsOnNonPositive(t *testing.T) {
	require.Panics(t, func() { ModC(Var("x"), -1) })
}
