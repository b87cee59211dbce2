// Package codegen renders an indexexpr.Expr as source text for a target
// language, following the io.Writer-based rendering convention used
// throughout the teacher repo's Value.Write and Statement.Write (a
// Write(w io.Writer, indentation string) error per renderable element).
//
// spec.md §6 describes Expr's result as "an opaque IndexExpr that
// downstream code can either pretty-print (for code generation into a
// target language) or evaluate by substitution" -- this package is the
// pretty-print half.
package codegen

import (
	"bytes"
	"io"

	"github.com/gomlx/shapetracker/indexexpr"
)

// WriteGo renders e as a Go arithmetic expression, e.g. "4*idx0 + idx1", to
// w. It is a thin wrapper over Expr.Write: the algebra's own String form
// already is valid Go expression syntax (+, *, /, % on ints), so no
// additional per-language translation is needed for Go specifically.
func WriteGo(w io.Writer, e indexexpr.Expr) error {
	return e.Write(w, "")
}

// Go renders e as a Go arithmetic expression string.
func Go(e indexexpr.Expr) string {
	var buf bytes.Buffer
	_ = WriteGo(&buf, e)
	return buf.String()
}
