// Package ekind defines Kind, the node-type enum for the indexexpr package's
// expression tree.
package ekind

import "fmt"

// Kind identifies the shape of an indexexpr.Expr node.
type Kind int

const (
	Invalid Kind = iota
	Const
	Var
	Add
	Mul
	Div
	Mod
)

// String implements fmt.Stringer by hand, following the teacher's own
// dtype-to-string switch rather than a generated one (see DESIGN.md).
func (k Kind) String() string {
	switch k {
	case Const:
		return "Const"
	case Var:
		return "Var"
	case Add:
		return "Add"
	case Mul:
		return "Mul"
	case Div:
		return "Div"
	case Mod:
		return "Mod"
	default:
		return fmt.Sprintf("Invalid(%d)", int(k))
	}
}
