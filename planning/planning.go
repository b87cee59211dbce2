// Package planning estimates the backing-buffer footprint of a
// ShapeTracker's current logical shape under a concrete element type.
//
// This is new functionality beyond spec.md's algebra: spec.md explicitly
// scopes the tensor object and memory planning as "external collaborators",
// but a ShapeTracker rarely travels alone in a real lazy-tensor stack -- it
// is paired with an element type the moment a caller wants to size a
// buffer, exactly the way the teacher repo's types/shapes.Shape always
// carries a dtypes.DType alongside its Dimensions.
package planning

import (
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/gomlx/shapetracker"
)

// Footprint returns the number of bytes needed to hold every element
// addressed by t's current logical shape under dtype -- Size() elements of
// dtype.Size() bytes each.
func Footprint(t *shapetracker.ShapeTracker, dtype dtypes.DType) int {
	return t.Shape().Size() * dtype.Size()
}
