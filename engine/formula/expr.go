// Package formula turns hydrogen wavefunctions into expression trees that can be rendered as WGSL source or
// evaluated numerically. The tree is the single source of truth for both, so the generated shader text and the
// CPU evaluation cannot drift apart.
package formula

// Symbol names a free variable of an expression.
type Symbol int

const (
	// SymR is the distance from the wave origin.
	SymR Symbol = iota
	// SymPhi is the azimuthal angle.
	SymPhi
	// SymCosTheta is the cosine of the polar angle.
	SymCosTheta
	// SymSinTheta is the sine of the polar angle.
	SymSinTheta
	// SymRho is the scaled radius 2r/(n·a₀), bound once per wave.
	SymRho
)

func (s Symbol) String() string {
	switch s {
	case SymR:
		return "r"
	case SymPhi:
		return "phi"
	case SymCosTheta:
		return "cos_theta"
	case SymSinTheta:
		return "sin_theta"
	case SymRho:
		return "rho"
	default:
		return "unknown"
	}
}

// Expr is a node of an expression tree. The concrete node types are Const, Var, Sum, Product, Pow, Sign, Abs and
// Exp.
type Expr interface {
	isExpr()
}

// Const is a literal value.
type Const float64

// Var references a free variable.
type Var Symbol

// Sum adds its terms. An empty sum is zero.
type Sum []Expr

// Product multiplies its factors. An empty product is one.
type Product []Expr

// Pow raises Base to a non-negative integer exponent.
type Pow struct {
	Base     Expr
	Exponent int
}

// Sign is the sign of its argument: −1, 0 or 1.
type Sign struct{ Arg Expr }

// Abs is the absolute value of its argument.
type Abs struct{ Arg Expr }

// Exp is the natural exponential of its argument.
type Exp struct{ Arg Expr }

func (Const) isExpr()   {}
func (Var) isExpr()     {}
func (Sum) isExpr()     {}
func (Product) isExpr() {}
func (Pow) isExpr()     {}
func (Sign) isExpr()    {}
func (Abs) isExpr()     {}
func (Exp) isExpr()     {}

// Binding assigns an expression to a symbol. Bindings are evaluated in order, before the expressions that
// reference them.
type Binding struct {
	Symbol Symbol
	Expr   Expr
}

// SignedPow returns x^k for a base whose sign must be preserved: sign(x)·|x|^k for odd k and |x|^k for even k.
// WGSL pow is undefined for negative bases, so the magnitude and the sign are taken apart.
func SignedPow(x Expr, k int) Expr {
	p := Pow{Base: Abs{Arg: x}, Exponent: k}
	if k%2 == 1 {
		return Product{Sign{Arg: x}, p}
	}
	return p
}
