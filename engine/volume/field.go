package volume

import (
	"math"

	"github.com/Carmen-Shannon/qm-go/engine/formula"
	"github.com/go-gl/mathgl/mgl64"
)

// Field evaluates an Assembly on the CPU with the same expression trees, accumulation order, cutoff and
// absorption model as the generated fragment stage, without the dither term.
type Field struct {
	terms  []Term
	params Params
}

// NewField creates the CPU evaluator of an assembly.
func NewField(a *Assembly) *Field {
	return &Field{terms: a.Terms, params: a.Params}
}

// Sample sums the active waves at a point.
//
// Parameters:
//   - p: the sample position before per-wave translation
//   - phase: the phase uniform, used only with time evolution
//
// Returns:
//   - re: the real part, each wave weighted by its amplitude
//   - im: the imaginary part, unweighted
func (f *Field) Sample(p mgl64.Vec3, phase float64) (re, im float64) {
	for _, t := range f.terms {
		c := p.Add(mgl64.Vec3{0, 0, float64(t.Wave.Translation)})
		r := c.Len()
		phi := math.Atan2(c.Y(), c.X())
		theta := math.Acos(c.Z() / r)
		a, ph := formula.EvalFragment(t.Fragment, r, theta, phi)
		if f.params.TimeEvolution {
			ph += EnergyRate(t.Fragment.N) * phase
		}
		re += a * math.Cos(ph) * float64(t.Wave.Amplitude)
		im += a * math.Sin(ph)
	}
	return re, im
}

// Density returns the probability value P at a point after the cutoff, together with the phase of the sum.
func (f *Field) Density(p mgl64.Vec3, phase float64) (density, complexPhase float64) {
	re, im := f.Sample(p, phase)
	amplitude := re*re + im*im
	density = amplitude * amplitude
	if density < f.params.Cutoff {
		density = 0
	}
	return density, math.Atan2(im, re)
}

// March integrates one ray front to back exactly as the fragment stage does, sampling from the far end of the
// ray towards its origin.
//
// Parameters:
//   - origin: the ray origin
//   - dir: the normalized ray direction
//   - rayLength: the ray length
//   - color: the emission color used when complex coloring is off
//   - phase: the phase uniform
//
// Returns:
//   - mgl64.Vec3: the accumulated intensity
func (f *Field) March(origin, dir mgl64.Vec3, rayLength float64, color mgl64.Vec3, phase float64) mgl64.Vec3 {
	samples := max(f.params.SampleCount, 1)
	dl := rayLength / float64(samples)
	var intensity mgl64.Vec3
	for i := 0; i < samples; i++ {
		dist := rayLength * float64(samples-i-1) / float64(samples)
		density, complexPhase := f.Density(origin.Add(dir.Mul(dist)), phase)

		emission := color.Mul(density)
		if f.params.ComplexColor {
			emission = PhaseColor(complexPhase).Mul(density)
		}
		absorption := density * f.params.Absorption
		intensity = intensity.Add(emission.Sub(intensity.Mul(absorption)).Mul(dl))
		for k := range intensity {
			intensity[k] = math.Max(intensity[k], 0)
		}
	}
	return intensity
}

// PhaseColor maps a complex phase to the normalized emission color used by complex coloring.
func PhaseColor(phase float64) mgl64.Vec3 {
	return mgl64.Vec3{0.5 - 0.5*math.Cos(phase), 0.2, 0.5 + 0.5*math.Sin(phase)}.Normalize()
}

// Ray returns the ray the vertex stage builds for a clip-space position of the fullscreen quad.
//
// Parameters:
//   - transform: the camera transform
//   - x: clip-space x in [-1, 1]
//   - y: clip-space y in [-1, 1]
//
// Returns:
//   - origin: the transform's translation
//   - dir: the normalized direction of the rotated vector (x, y, −1)
func Ray(transform mgl64.Mat4, x, y float64) (origin, dir mgl64.Vec3) {
	origin = transform.Col(3).Vec3()
	dir = transform.Mat3().Mul3x1(mgl64.Vec3{x, y, -1}).Normalize()
	return origin, dir
}
