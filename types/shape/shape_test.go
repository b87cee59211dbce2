package shape

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMakeAndBasics(t *testing.T) {
	s := Make(2, 4)
	require.True(t, s.Ok())
	require.Equal(t, 2, s.Rank())
	require.Equal(t, 8, s.Size())
	require.Equal(t, "(2, 4)", s.String())
}

func TestScalar(t *testing.T) {
	s := Make()
	require.Equal(t, 0, s.Rank())
	require.Equal(t, 1, s.Size())
	require.Equal(t, "()", s.String())
}

func TestZeroAxis(t *testing.T) {
	s := Make(0, 4)
	require.True(t, s.Ok())
	require.Equal(t, 0, s.Size())
}

func TestCloneIsIndependent(t *testing.T) {
	s := Make(2, 4)
	c := s.Clone()
	c.Dimensions[0] = 99
	require.Equal(t, 2, s.Dimensions[0])
}

func TestEqual(t *testing.T) {
	require.True(t, Make(2, 4).Equal(Make(2, 4)))
	require.False(t, Make(2, 4).Equal(Make(4, 2)))
	require.False(t, Make(2, 4).Equal(Make(2, 4, 1)))
}

func TestRowMajorStrides(t *testing.T) {
	require.Equal(t, []int{4, 1}, Make(2, 4).RowMajorStrides())
	require.Equal(t, []int{8, 4, 1}, Make(3, 2, 4).RowMajorStrides())
	require.Equal(t, []int{}, Make().RowMajorStrides())
}
