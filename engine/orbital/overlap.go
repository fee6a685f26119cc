package orbital

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/integrate/quad"
)

const (
	overlapRadialNodes  = 64
	overlapPolarNodes   = 32
	overlapAzimuthNodes = 32
)

// Overlap integrates ψ_a · conj(ψ_b) over the ball of radius maxR centered on the nucleus, using Gauss–Legendre
// rules in r, θ and φ. Overlap(w, w, R) approaches 1 as R grows and distinct states are orthogonal.
//
// Parameters:
//   - a: the first wavefunction
//   - b: the second wavefunction, conjugated
//   - maxR: the integration radius
//
// Returns:
//   - complex128: the interference integral
func Overlap(a, b *HWaveFunc, maxR float64) complex128 {
	integrate := func(part func(complex128) float64) float64 {
		return quad.Fixed(func(r float64) float64 {
			return r * r * quad.Fixed(func(theta float64) float64 {
				sinTheta := math.Sin(theta)
				return sinTheta * quad.Fixed(func(phi float64) float64 {
					return part(a.Value(r, theta, phi) * cmplx.Conj(b.Value(r, theta, phi)))
				}, 0, 2*math.Pi, overlapAzimuthNodes, nil, 0)
			}, 0, math.Pi, overlapPolarNodes, nil, 0)
		}, 0, maxR, overlapRadialNodes, nil, 0)
	}
	re := integrate(func(c complex128) float64 { return real(c) })
	im := integrate(func(c complex128) float64 { return imag(c) })
	return complex(re, im)
}
