// Package volume assembles hydrogen wavefunctions into a raymarching shader program and owns the offscreen
// target the program renders into.
package volume

import (
	"github.com/Carmen-Shannon/qm-go/common"
)

// MaxWaves is the number of waves a scene can hold.
const MaxWaves = 3

// SkipAmplitude is the amplitude at or below which a wave is compiled out of the program.
const SkipAmplitude = 0.001

// Wave is one orbital contribution to the rendered superposition. N, L and M are stored as floats so sliders
// can bind them directly; they are rounded when compiled.
type Wave struct {
	Amplitude   float32
	Phase       float32
	N           float32
	L           float32
	M           float32
	Translation float32
	// Particle tags which particle the wave belongs to. Every active wave is summed into one total regardless of
	// its tag.
	Particle int
}

// QuantumNumbers returns the rounded n, l and m of the wave.
func (w Wave) QuantumNumbers() (n, l, m int) {
	return common.RoundInt(w.N), common.RoundInt(w.L), common.RoundInt(w.M)
}

// Active reports whether the wave contributes to the assembled program.
func (w Wave) Active() bool {
	return w.Amplitude > SkipAmplitude
}

// Params are the global settings compiled into the volume program as constants.
type Params struct {
	// SampleCount is the number of raymarch samples per pixel.
	SampleCount int
	// ComplexColor colors emission by the phase of the summed wavefunction instead of the uniform color.
	ComplexColor bool
	// Absorption is the absorption multiplier applied to the probability density.
	Absorption float64
	// Cutoff zeroes probability densities below it.
	Cutoff float64
	// TimeEvolution advances every wave's phase by its stationary-state energy times the phase uniform.
	TimeEvolution bool
}

// DefaultParams returns 40 samples with no absorption, no cutoff and uniform coloring.
func DefaultParams() Params {
	return Params{
		SampleCount: 40,
	}
}
