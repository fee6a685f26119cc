// Package orbital derives the closed-form polynomial representation of hydrogen-atom wavefunctions.
//
// A wavefunction is normalization · e^(−ρ/2) · ρ^l · L(ρ) · sin^|m|(θ) · A(cos θ) · e^(i(mφ+phase)),
// where L is a generalized Laguerre polynomial in ρ = 2r/(n·a₀) and A is a polynomial in cos θ that carries the
// spherical harmonic normalization. Both polynomials are stored as fixed-capacity coefficient arrays.
package orbital

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/Carmen-Shannon/qm-go/common"
	"gonum.org/v1/gonum/stat/combin"
)

// MaxTerms is the fixed capacity of every coefficient array.
const MaxTerms = 30

var (
	// ErrInvalidQuantumNumbers is returned when n, l, m or the Bohr radius violate 1 ≤ n, 0 ≤ l < n, |m| ≤ l, a₀ > 0.
	ErrInvalidQuantumNumbers = errors.New("invalid quantum numbers")
	// ErrDegreeOverflow is returned when a polynomial would need more than MaxTerms coefficients.
	ErrDegreeOverflow = errors.New("polynomial degree exceeds term capacity")
)

// HWaveFunc is an immutable hydrogen wavefunction ψ_nlm with an extra global phase.
type HWaveFunc struct {
	// N, L, M are the principal, azimuthal and magnetic quantum numbers.
	N, L, M int
	// Phase is added to m·φ in the complex exponential.
	Phase float64
	// BohrRadius scales the radial coordinate, 1 for atomic units.
	BohrRadius float64
	// Normalization is the radial normalization constant.
	Normalization float64
	// Laguerre holds the coefficients of L^(2l+1)_(n−l−1)(ρ) by ascending power of ρ.
	Laguerre [MaxTerms]float64
	// Angular holds the coefficients of the angular polynomial by ascending power of cos θ.
	Angular [MaxTerms]float64
}

// New builds the wavefunction for the given quantum numbers.
//
// Parameters:
//   - n: principal quantum number, at least 1
//   - l: azimuthal quantum number in [0, n)
//   - m: magnetic quantum number in [−l, l]
//   - phase: global phase added to m·φ
//   - bohrRadius: the Bohr radius a₀, positive
//
// Returns:
//   - *HWaveFunc: the wavefunction
//   - error: ErrInvalidQuantumNumbers or ErrDegreeOverflow
func New(n, l, m int, phase, bohrRadius float64) (*HWaveFunc, error) {
	if n < 1 || l < 0 || l >= n || m < -l || m > l || bohrRadius <= 0 {
		return nil, fmt.Errorf("n=%d l=%d m=%d a0=%g: %w", n, l, m, bohrRadius, ErrInvalidQuantumNumbers)
	}

	laguerre, err := Laguerre(n-l-1, 2*l+1)
	if err != nil {
		return nil, fmt.Errorf("radial polynomial for n=%d l=%d: %w", n, l, err)
	}
	angular, err := Angular(l, m)
	if err != nil {
		return nil, fmt.Errorf("angular polynomial for l=%d m=%d: %w", l, m, err)
	}

	k := 2 / (float64(n) * bohrRadius)
	norm := math.Sqrt(k * k * k * common.Factorial(n-l-1) / (2 * float64(n) * common.Factorial(n+l)))

	return &HWaveFunc{
		N:             n,
		L:             l,
		M:             m,
		Phase:         phase,
		BohrRadius:    bohrRadius,
		Normalization: norm,
		Laguerre:      laguerre,
		Angular:       angular,
	}, nil
}

// Laguerre returns the coefficients of the generalized Laguerre polynomial L^(alpha)_(n)(x):
// c_i = (−1)^i · C(n+alpha, n−i) / i!.
//
// Parameters:
//   - n: polynomial degree, non-negative
//   - alpha: generalization parameter, non-negative
//
// Returns:
//   - [MaxTerms]float64: coefficients by ascending power
//   - error: ErrDegreeOverflow if n+1 coefficients do not fit
func Laguerre(n, alpha int) ([MaxTerms]float64, error) {
	var c [MaxTerms]float64
	if n < 0 || alpha < 0 {
		return c, fmt.Errorf("laguerre n=%d alpha=%d: %w", n, alpha, ErrInvalidQuantumNumbers)
	}
	if n >= MaxTerms {
		return c, fmt.Errorf("laguerre degree %d: %w", n, ErrDegreeOverflow)
	}
	for i := 0; i <= n; i++ {
		v := float64(combin.Binomial(n+alpha, n-i)) / common.Factorial(i)
		if i%2 == 1 {
			v = -v
		}
		c[i] = v
	}
	return c, nil
}

// legendre returns the coefficients of the Legendre polynomial P_l(x).
func legendre(l int) []float64 {
	c := make([]float64, l+1)
	scale := math.Pow(2, -float64(l))
	for k := 0; k <= l/2; k++ {
		v := scale * float64(combin.Binomial(l, k)) * float64(combin.Binomial(2*l-2*k, l))
		if k%2 == 1 {
			v = -v
		}
		c[l-2*k] = v
	}
	return c
}

// Angular returns the coefficients, by ascending power of cos θ, of the angular polynomial of Y_l^m with the
// sin^|m| θ factor and the azimuthal exponential factored out. The polynomial is the |m|-th derivative of P_l,
// scaled by the spherical harmonic normalization and, for positive m, the Condon–Shortley sign.
//
// Parameters:
//   - l: azimuthal quantum number, non-negative
//   - m: magnetic quantum number in [−l, l]
//
// Returns:
//   - [MaxTerms]float64: coefficients by ascending power of cos θ
//   - error: ErrInvalidQuantumNumbers or ErrDegreeOverflow
func Angular(l, m int) ([MaxTerms]float64, error) {
	var c [MaxTerms]float64
	am := m
	if am < 0 {
		am = -am
	}
	if l < 0 || am > l {
		return c, fmt.Errorf("angular l=%d m=%d: %w", l, m, ErrInvalidQuantumNumbers)
	}
	if l >= MaxTerms {
		return c, fmt.Errorf("angular degree %d: %w", l, ErrDegreeOverflow)
	}

	p := legendre(l)
	norm := math.Sqrt(float64(2*l+1) / (4 * math.Pi) * common.Factorial(l-am) / common.Factorial(l+am))
	if m > 0 && m%2 == 1 {
		norm = -norm
	}
	for j := 0; j+am <= l; j++ {
		// d^am/dx^am x^(j+am) = (j+am)!/j! x^j
		c[j] = norm * p[j+am] * common.Factorial(j+am) / common.Factorial(j)
	}
	return c, nil
}

func polynomial(c *[MaxTerms]float64, x float64) float64 {
	sum := 0.0
	pow := 1.0
	for _, v := range c {
		if v != 0 {
			sum += v * pow
		}
		pow *= x
	}
	return sum
}

// Rho returns the scaled radial coordinate ρ = 2r/(n·a₀).
func (w *HWaveFunc) Rho(r float64) float64 {
	return 2 * r / (float64(w.N) * w.BohrRadius)
}

// Value evaluates ψ at the spherical coordinates (r, θ, φ).
//
// Parameters:
//   - r: radial distance from the nucleus
//   - theta: polar angle in [0, π]
//   - phi: azimuthal angle
//
// Returns:
//   - complex128: the complex amplitude
func (w *HWaveFunc) Value(r, theta, phi float64) complex128 {
	rho := w.Rho(r)
	radial := w.Normalization * math.Exp(-rho/2) * math.Pow(rho, float64(w.L)) * polynomial(&w.Laguerre, rho)

	am := w.M
	if am < 0 {
		am = -am
	}
	angular := math.Pow(math.Sin(theta), float64(am)) * polynomial(&w.Angular, math.Cos(theta))

	return complex(radial*angular, 0) * cmplx.Exp(complex(0, float64(w.M)*phi+w.Phase))
}
