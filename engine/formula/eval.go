package formula

import (
	"fmt"
	"math"
)

// Env holds the values of free variables during evaluation.
type Env map[Symbol]float64

// Eval evaluates e numerically. Unbound symbols evaluate to zero.
func Eval(e Expr, env Env) float64 {
	switch n := e.(type) {
	case Const:
		return float64(n)
	case Var:
		return env[Symbol(n)]
	case Sum:
		s := 0.0
		for _, t := range n {
			s += Eval(t, env)
		}
		return s
	case Product:
		p := 1.0
		for _, f := range n {
			p *= Eval(f, env)
		}
		return p
	case Pow:
		return math.Pow(Eval(n.Base, env), float64(n.Exponent))
	case Sign:
		v := Eval(n.Arg, env)
		switch {
		case v > 0:
			return 1
		case v < 0:
			return -1
		default:
			return 0
		}
	case Abs:
		return math.Abs(Eval(n.Arg, env))
	case Exp:
		return math.Exp(Eval(n.Arg, env))
	default:
		panic(fmt.Sprintf("formula: unknown expression node %T", e))
	}
}
