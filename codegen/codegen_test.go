package codegen

import (
	"testing"

	"github.com/gomlx/shapetracker/indexexpr"
	"github.com/stretchr/testify/require"
)

func TestGo(t *testing.T) {
	e := indexexpr.Sum(indexexpr.MulC(4, indexexpr.Var("idx0")), indexexpr.Var("idx1"))
	require.Equal(t, "4*idx0 + idx1", Go(e))
}
