package formula

import (
	"fmt"
	"math"

	"github.com/Carmen-Shannon/qm-go/common"
	"github.com/Carmen-Shannon/qm-go/engine/orbital"
)

// BohrRadius is the radial unit the visualizer works in.
const BohrRadius = 1.0

// Fragment is the compiled form of one wave: bindings to evaluate first, then the amplitude and phase
// expressions. N, L and M are the quantum numbers after clamping.
type Fragment struct {
	N, L, M   int
	Bindings  []Binding
	Amplitude Expr
	Phase     Expr
}

// Brightness is the display gain applied to a wave with principal quantum number n so that larger, more diffuse
// orbitals remain visible: 1 + 2·n^2.5.
func Brightness(n int) float64 {
	return 1 + 2*math.Pow(float64(n), 2.5)
}

// Compile builds the expression trees of ψ_nlm for a shader. l is clamped into [0, n−1] and m into [−l, l], so
// any slider combination compiles; only n < 1 or a polynomial that exceeds the term capacity is rejected.
//
// Parameters:
//   - n: principal quantum number, at least 1
//   - l: azimuthal quantum number, clamped
//   - m: magnetic quantum number, clamped
//   - phase: global phase of the wave
//
// Returns:
//   - Fragment: the compiled wave
//   - error: an orbital construction error
func Compile(n, l, m int, phase float64) (Fragment, error) {
	if n < 1 {
		return Fragment{}, fmt.Errorf("compile n=%d: %w", n, orbital.ErrInvalidQuantumNumbers)
	}
	l = common.Clamp(l, 0, n-1)
	m = common.Clamp(m, -l, l)

	w, err := orbital.New(n, l, m, phase, BohrRadius)
	if err != nil {
		return Fragment{}, fmt.Errorf("compile: %w", err)
	}

	rho := Var(SymRho)
	amplitude := Product{
		Const(w.Normalization * Brightness(n)),
		Exp{Arg: Product{Const(-0.5), rho}},
	}
	if l > 0 {
		amplitude = append(amplitude, Pow{Base: rho, Exponent: l})
	}
	amplitude = append(amplitude, polynomialExpr(w.Laguerre[:], rho, false))

	am := m
	if am < 0 {
		am = -am
	}
	if am > 0 {
		amplitude = append(amplitude, SignedPow(Var(SymSinTheta), am))
	}
	amplitude = append(amplitude, polynomialExpr(w.Angular[:], Var(SymCosTheta), true))

	return Fragment{
		N: n,
		L: l,
		M: m,
		Bindings: []Binding{{
			Symbol: SymRho,
			Expr:   Product{Const(2 / (float64(n) * BohrRadius)), Var(SymR)},
		}},
		Amplitude: amplitude,
		Phase:     Sum{Product{Const(float64(m)), Var(SymPhi)}, Const(phase)},
	}, nil
}

// polynomialExpr builds Σ c_i x^i, skipping zero coefficients. signed selects sign-preserving powers for bases
// that can be negative.
func polynomialExpr(coefficients []float64, x Expr, signed bool) Sum {
	var terms Sum
	for i, c := range coefficients {
		if c == 0 {
			continue
		}
		if i == 0 {
			terms = append(terms, Const(c))
			continue
		}
		var p Expr = Pow{Base: x, Exponent: i}
		if signed {
			p = SignedPow(x, i)
		}
		terms = append(terms, Product{Const(c), p})
	}
	return terms
}

// EvalFragment evaluates a compiled wave at spherical coordinates relative to its origin.
//
// Parameters:
//   - f: the compiled wave
//   - r: distance from the origin
//   - theta: polar angle in [0, π]
//   - phi: azimuthal angle
//
// Returns:
//   - amplitude: the real amplitude including the brightness gain
//   - phase: the phase angle m·φ + phase
func EvalFragment(f Fragment, r, theta, phi float64) (amplitude, phase float64) {
	env := Env{
		SymR:        r,
		SymPhi:      phi,
		SymCosTheta: math.Cos(theta),
		SymSinTheta: math.Sin(theta),
	}
	for _, b := range f.Bindings {
		env[b.Symbol] = Eval(b.Expr, env)
	}
	return Eval(f.Amplitude, env), Eval(f.Phase, env)
}
