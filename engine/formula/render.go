package formula

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Scope maps symbols to the WGSL identifiers they are rendered as. Symbols missing from a scope render as their
// String() name.
type Scope map[Symbol]string

// DefaultScope renders every symbol under its own name.
func DefaultScope() Scope {
	return Scope{
		SymR:        SymR.String(),
		SymPhi:      SymPhi.String(),
		SymCosTheta: SymCosTheta.String(),
		SymSinTheta: SymSinTheta.String(),
		SymRho:      SymRho.String(),
	}
}

// FormatFloat renders v as a WGSL float literal. Negative values are parenthesized, WGSL has no unary plus and a
// leading minus after another operator would read as a binary operation.
//
// Parameters:
//   - v: the value
//
// Returns:
//   - string: the literal, e.g. "1.5e+00" or "(-2e-01)"
func FormatFloat(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	s := strconv.FormatFloat(float64(float32(v)), 'e', -1, 32)
	if v < 0 {
		return "(" + s + ")"
	}
	return s
}

// Render renders e as a WGSL expression.
//
// Parameters:
//   - e: the expression tree
//   - scope: identifier names for the free variables
//
// Returns:
//   - string: the WGSL source text
func Render(e Expr, scope Scope) string {
	var b strings.Builder
	render(&b, e, scope)
	return b.String()
}

func render(b *strings.Builder, e Expr, scope Scope) {
	switch n := e.(type) {
	case Const:
		b.WriteString(FormatFloat(float64(n)))
	case Var:
		name, ok := scope[Symbol(n)]
		if !ok {
			name = Symbol(n).String()
		}
		b.WriteString(name)
	case Sum:
		if len(n) == 0 {
			b.WriteString("0.0")
			return
		}
		b.WriteByte('(')
		for i, t := range n {
			if i > 0 {
				b.WriteString(" + ")
			}
			render(b, t, scope)
		}
		b.WriteByte(')')
	case Product:
		if len(n) == 0 {
			b.WriteString("1.0")
			return
		}
		for i, f := range n {
			if i > 0 {
				b.WriteString(" * ")
			}
			render(b, f, scope)
		}
	case Pow:
		b.WriteString("pow(")
		render(b, n.Base, scope)
		fmt.Fprintf(b, ", %d.0)", n.Exponent)
	case Sign:
		renderCall(b, "sign", n.Arg, scope)
	case Abs:
		renderCall(b, "abs", n.Arg, scope)
	case Exp:
		renderCall(b, "exp", n.Arg, scope)
	default:
		panic(fmt.Sprintf("formula: unknown expression node %T", e))
	}
}

func renderCall(b *strings.Builder, fn string, arg Expr, scope Scope) {
	b.WriteString(fn)
	b.WriteByte('(')
	render(b, arg, scope)
	b.WriteByte(')')
}
