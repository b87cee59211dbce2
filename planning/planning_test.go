package planning

import (
	"testing"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/gomlx/shapetracker"
	"github.com/stretchr/testify/require"
)

func TestFootprint(t *testing.T) {
	st, err := shapetracker.New(2, 4)
	require.NoError(t, err)
	require.Equal(t, 8*4, Footprint(st, dtypes.Float32))
	require.Equal(t, 8*8, Footprint(st, dtypes.Float64))
}

func TestFootprintFollowsSlice(t *testing.T) {
	st, err := shapetracker.New(2, 4)
	require.NoError(t, err)
	require.NoError(t, st.Slice(shapetracker.Range{Lo: 0, Hi: 1}, shapetracker.Range{Lo: 0, Hi: 4}))
	require.Equal(t, 4*4, Footprint(st, dtypes.Float32))
}
