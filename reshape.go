package shapetracker

import (
	"sort"

	"github.com/gomlx/shapetracker/types/shape"
	"github.com/gomlx/shapetracker/view"
)

// group is a maximal contiguous run of axes in a View, collapsed to the
// range of "elements to the right" suffix values it spans plus the stride of
// its innermost (rightmost, non-unit) axis -- see spec.md §4.2's
// "contiguous stride group".
type group struct {
	startSuffix int // suffix-product value just before the group (larger)
	endSuffix   int // suffix-product value just after the group (smaller)
	unitStride  int // stride of the group's innermost non-size-1 axis
}

// tryCollapseReshape attempts the collapse path for Reshape: rewriting v's
// shape and stride in place by only splitting and merging v's existing
// contiguous stride groups. It reports ok=false when newShape's axis
// boundaries cross a non-contiguous join in v, in which case the caller must
// take the general path (push a fresh contiguous View).
//
// newShape must already be known to have the same Size() as v.Shape.
func tryCollapseReshape(v view.View, newShape shape.Shape) (result view.View, ok bool) {
	oldDims := v.Shape.Dimensions
	oldStride := v.Stride
	n := len(oldDims)

	oldSuffix := make([]int, n+1)
	oldSuffix[n] = 1
	for k := n - 1; k >= 0; k-- {
		oldSuffix[k] = oldDims[k] * oldSuffix[k+1]
	}

	// joined[k] tells whether axes k and k+1 belong to the same contiguous
	// group. Size-1 axes carry no stride information, so contiguity is
	// checked between consecutive non-size-1 axes; a run of size-1 axes
	// joins the group to its left.
	joined := make([]bool, maxInt(n-1, 0))
	for k := 0; k < n-1; k++ {
		joined[k] = true
	}
	prev := -1
	for k := 0; k < n; k++ {
		if oldDims[k] == 1 {
			continue
		}
		if prev >= 0 && oldStride[prev] != oldDims[k]*oldStride[k] {
			joined[k-1] = false
		}
		prev = k
	}

	boundarySet := map[int]bool{0: true, n: true}
	for k := 1; k < n; k++ {
		if !joined[k-1] {
			boundarySet[k] = true
		}
	}

	newDims := newShape.Dimensions
	m := len(newDims)
	newSuffix := make([]int, m+1)
	newSuffix[m] = 1
	for k := m - 1; k >= 0; k-- {
		newSuffix[k] = newDims[k] * newSuffix[k+1]
	}
	newSuffixSet := make(map[int]bool, len(newSuffix))
	for _, val := range newSuffix {
		newSuffixSet[val] = true
	}

	for k := range boundarySet {
		if !newSuffixSet[oldSuffix[k]] {
			return view.View{}, false
		}
	}

	var boundaries []int
	for k := range boundarySet {
		boundaries = append(boundaries, k)
	}
	sort.Ints(boundaries)

	groups := make([]group, 0, len(boundaries)-1)
	for i := 0; i < len(boundaries)-1; i++ {
		startPos, endPos := boundaries[i], boundaries[i+1]
		unit := 0
		for idx := endPos - 1; idx >= startPos; idx-- {
			if oldDims[idx] != 1 {
				unit = oldStride[idx]
				break
			}
		}
		groups = append(groups, group{
			startSuffix: oldSuffix[startPos],
			endSuffix:   oldSuffix[endPos],
			unitStride:  unit,
		})
	}

	newStride := make([]int, m)
	for j := 0; j < m; j++ {
		right := newSuffix[j+1]
		g, found := enclosingGroup(groups, right)
		if !found {
			return view.View{}, false
		}
		if g.endSuffix == 0 {
			newStride[j] = 0
			continue
		}
		newStride[j] = g.unitStride * (right / g.endSuffix)
	}

	return view.View{Shape: newShape.Clone(), Stride: newStride, Offset: v.Offset}, true
}

func enclosingGroup(groups []group, suffixValue int) (group, bool) {
	for _, g := range groups {
		if suffixValue <= g.startSuffix && suffixValue >= g.endSuffix {
			return g, true
		}
	}
	return group{}, false
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
