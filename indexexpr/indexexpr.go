// Package indexexpr implements the small closed arithmetic algebra used to
// describe a backing-buffer index as a function of logical axis variables:
//
//	E ::= c | x_k | E+E | c·E | E/c | E%c
//
// Expr values are immutable and built exclusively through the constructors
// below, which fold constants and apply the canonicalizations the algebra
// requires: dropped zero/one identity terms, literal arithmetic collapsed at
// construction time, and the two affine-preserving rewrites
// (c1·x)/c2 == (c1/c2)·x and (c1·x)%c2 == 0 whenever c1%c2==0.
package indexexpr

import (
	"fmt"
	"io"
	"strings"

	"github.com/gomlx/shapetracker/internal/ekind"
	"github.com/pkg/errors"
)

// Expr is a node in the index-expression tree. The zero value is not a valid
// Expr; always construct one with Const, Var, Sum, MulC, DivC or ModC.
type Expr struct {
	kind ekind.Kind

	// value holds the literal for Const, and the constant multiplier/divisor
	// for Mul, Div and Mod.
	value int

	// name holds the variable name for Var.
	name string

	// terms holds the addends for Add (n-ary, already flattened).
	terms []Expr

	// operand holds the sub-expression for Mul, Div and Mod.
	operand *Expr
}

// Kind reports the node's shape in the algebra.
func (e Expr) Kind() ekind.Kind {
	return e.kind
}

// Const builds a literal integer node.
func Const(c int) Expr {
	return Expr{kind: ekind.Const, value: c}
}

// Var builds a named axis-variable node.
func Var(name string) Expr {
	return Expr{kind: ekind.Var, name: name}
}

// Sum builds the sum of the given terms, folding all literal terms into one,
// flattening any nested sums, and dropping additive-zero terms.
//
// An empty sum is Const(0); a sum of a single non-zero term is that term
// unchanged.
func Sum(terms ...Expr) Expr {
	var flat []Expr
	literal := 0
	var flatten func(e Expr)
	flatten = func(e Expr) {
		if e.kind == ekind.Add {
			for _, t := range e.terms {
				flatten(t)
			}
			return
		}
		if e.kind == ekind.Const {
			literal += e.value
			return
		}
		flat = append(flat, e)
	}
	for _, t := range terms {
		flatten(t)
	}
	if literal != 0 || len(flat) == 0 {
		flat = append(flat, Const(literal))
	}
	if len(flat) == 1 {
		return flat[0]
	}
	return Expr{kind: ekind.Add, terms: flat}
}

// MulC builds c·e, folding literal operands, dropping the multiplicative-one
// identity, collapsing c==0 to Const(0), and combining a constant multiplied
// by an already-scaled term ((c1·x) scaled again by c) into a single Mul node.
func MulC(c int, e Expr) Expr {
	if c == 0 {
		return Const(0)
	}
	if c == 1 {
		return e
	}
	if e.kind == ekind.Const {
		return Const(c * e.value)
	}
	if e.kind == ekind.Mul {
		return MulC(c*e.value, *e.operand)
	}
	return Expr{kind: ekind.Mul, value: c, operand: &e}
}

// DivC builds e/c (integer division, truncating toward zero -- operands in
// this algebra are always non-negative flat indices, so this coincides with
// floor division). Panics if c <= 0, matching the algebra's requirement that
// c be a positive literal.
//
// Applies the simplification (c1·x)/c2 == (c1/c2)·x whenever c1%c2==0.
func DivC(e Expr, c int) Expr {
	if c <= 0 {
		panic("indexexpr.DivC: divisor must be a positive literal")
	}
	if c == 1 {
		return e
	}
	if e.kind == ekind.Const {
		return Const(e.value / c)
	}
	if e.kind == ekind.Mul && e.value%c == 0 {
		return MulC(e.value/c, *e.operand)
	}
	return Expr{kind: ekind.Div, value: c, operand: &e}
}

// ModC builds e%c, panicking if c <= 0.
//
// Applies the simplification (c1·x)%c2 == 0 whenever c1%c2==0.
func ModC(e Expr, c int) Expr {
	if c <= 0 {
		panic("indexexpr.ModC: modulus must be a positive literal")
	}
	if c == 1 {
		return Const(0)
	}
	if e.kind == ekind.Const {
		return Const(((e.value % c) + c) % c)
	}
	if e.kind == ekind.Mul && e.value%c == 0 {
		return Const(0)
	}
	return Expr{kind: ekind.Mod, value: c, operand: &e}
}

// Eval substitutes bindings for every free variable and evaluates the
// expression to a single integer. Returns an error if a Var node's name is
// not present in bindings.
func (e Expr) Eval(bindings map[string]int) (int, error) {
	switch e.kind {
	case ekind.Const:
		return e.value, nil
	case ekind.Var:
		v, ok := bindings[e.name]
		if !ok {
			return 0, errors.Errorf("indexexpr: no binding for variable %q", e.name)
		}
		return v, nil
	case ekind.Add:
		sum := 0
		for _, t := range e.terms {
			v, err := t.Eval(bindings)
			if err != nil {
				return 0, err
			}
			sum += v
		}
		return sum, nil
	case ekind.Mul:
		v, err := e.operand.Eval(bindings)
		if err != nil {
			return 0, err
		}
		return e.value * v, nil
	case ekind.Div:
		v, err := e.operand.Eval(bindings)
		if err != nil {
			return 0, err
		}
		return v / e.value, nil
	case ekind.Mod:
		v, err := e.operand.Eval(bindings)
		if err != nil {
			return 0, err
		}
		return v % e.value, nil
	default:
		return 0, errors.Errorf("indexexpr: invalid expression node %s", e.kind)
	}
}

// Variables returns the distinct free variable names appearing in e, in
// first-occurrence order.
func (e Expr) Variables() []string {
	seen := map[string]bool{}
	var names []string
	var walk func(Expr)
	walk = func(e Expr) {
		switch e.kind {
		case ekind.Var:
			if !seen[e.name] {
				seen[e.name] = true
				names = append(names, e.name)
			}
		case ekind.Add:
			for _, t := range e.terms {
				walk(t)
			}
		case ekind.Mul, ekind.Div, ekind.Mod:
			walk(*e.operand)
		}
	}
	walk(e)
	return names
}

// String renders e as a human-readable arithmetic expression, e.g.
// "4*idx0 + idx1" or "(idx0/4)%2".
func (e Expr) String() string {
	var b strings.Builder
	_ = e.Write(&b, "")
	return b.String()
}

// Write renders e to w. indentation is accepted for symmetry with the rest
// of the repo's Write(io.Writer, indentation string) error convention but is
// unused: an IndexExpr always renders as a single line.
func (e Expr) Write(w io.Writer, indentation string) error {
	_ = indentation
	_, err := io.WriteString(w, e.render())
	return err
}

func (e Expr) render() string {
	switch e.kind {
	case ekind.Const:
		return fmt.Sprintf("%d", e.value)
	case ekind.Var:
		return e.name
	case ekind.Add:
		parts := make([]string, len(e.terms))
		for i, t := range e.terms {
			parts[i] = t.render()
		}
		return strings.Join(parts, " + ")
	case ekind.Mul:
		return fmt.Sprintf("%d*%s", e.value, e.operand.renderAtom())
	case ekind.Div:
		return fmt.Sprintf("%s/%d", e.operand.renderAtom(), e.value)
	case ekind.Mod:
		return fmt.Sprintf("%s%%%d", e.operand.renderAtom(), e.value)
	default:
		return fmt.Sprintf("<invalid:%s>", e.kind)
	}
}

// renderAtom wraps an expression in parentheses when it appears as the
// operand of Mul, Div or Mod and its own precedence would otherwise change
// the meaning (Add always needs it; Div/Mod are parenthesized too since Go's
// left-to-right multiplicative precedence would otherwise reassociate a Mul
// wrapping a Div/Mod operand incorrectly).
func (e Expr) renderAtom() string {
	switch e.kind {
	case ekind.Add, ekind.Div, ekind.Mod:
		return "(" + e.render() + ")"
	default:
		return e.render()
	}
}
