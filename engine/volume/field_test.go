package volume_test

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/qm-go/engine/formula"
	"github.com/Carmen-Shannon/qm-go/engine/volume"
)

func field(t *testing.T, params volume.Params, waves ...volume.Wave) *volume.Field {
	t.Helper()
	a, err := volume.Assemble(waves, params)
	require.NoError(t, err)
	return volume.NewField(a)
}

func TestSingleWaveDensity(t *testing.T) {
	f := field(t, volume.DefaultParams(), groundState(1))
	p := mgl64.Vec3{0.3, -0.2, 0.4}

	c, err := formula.Compile(1, 0, 0, 0)
	require.NoError(t, err)
	amp, _ := formula.EvalFragment(c, p.Len(), math.Acos(p.Z()/p.Len()), math.Atan2(p.Y(), p.X()))

	density, phase := f.Density(p, 0)
	assert.InEpsilon(t, math.Pow(amp, 4), density, 1e-12)
	assert.InDelta(t, 0, phase, 1e-12)
}

func TestConstructiveInterference(t *testing.T) {
	single := field(t, volume.DefaultParams(), groundState(1))
	double := field(t, volume.DefaultParams(), groundState(1), groundState(1))
	p := mgl64.Vec3{0.1, 0.5, -0.3}

	one, _ := single.Density(p, 0)
	two, _ := double.Density(p, 0)
	// amplitudes add, so the squared modulus quadruples and P grows sixteenfold
	assert.InEpsilon(t, 16*one, two, 1e-12)
}

func TestDestructiveInterference(t *testing.T) {
	opposite := groundState(1)
	opposite.Phase = math.Pi
	f := field(t, volume.DefaultParams(), groundState(1), opposite)

	for _, p := range []mgl64.Vec3{{0.1, 0.5, -0.3}, {1, 0, 0}, {0, 0, 2}} {
		density, _ := f.Density(p, 0)
		assert.InDelta(t, 0, density, 1e-20)
	}
}

func TestAmplitudeWeightsRealPartOnly(t *testing.T) {
	w := volume.Wave{Amplitude: 0.5, N: 2, L: 1, M: 1}
	unit := w
	unit.Amplitude = 1
	weighted := field(t, volume.DefaultParams(), w)
	plain := field(t, volume.DefaultParams(), unit)

	p := mgl64.Vec3{0.7, 0.7, 0.2}
	re, im := weighted.Sample(p, 0)
	re1, im1 := plain.Sample(p, 0)
	assert.InDelta(t, 0.5*re1, re, 1e-12)
	assert.InDelta(t, im1, im, 1e-12)
}

func TestTranslationShiftsTheOrbital(t *testing.T) {
	shifted := groundState(1)
	shifted.Translation = 1.5
	centred := field(t, volume.DefaultParams(), groundState(1))
	moved := field(t, volume.DefaultParams(), shifted)

	p := mgl64.Vec3{0.2, 0.1, 0.3}
	want, _ := centred.Density(p.Add(mgl64.Vec3{0, 0, 1.5}), 0)
	got, _ := moved.Density(p, 0)
	assert.InEpsilon(t, want, got, 1e-12)
}

func TestCutoffZeroesLowDensity(t *testing.T) {
	params := volume.DefaultParams()
	far := mgl64.Vec3{0, 0, 6}
	near := mgl64.Vec3{0, 0, 0.2}

	ref := field(t, params, groundState(1))
	low, _ := ref.Density(far, 0)
	high, _ := ref.Density(near, 0)
	require.Greater(t, low, 0.0)
	require.Greater(t, high, low)

	params.Cutoff = (low + high) / 2
	cut := field(t, params, groundState(1))
	gotLow, _ := cut.Density(far, 0)
	gotHigh, _ := cut.Density(near, 0)
	assert.Zero(t, gotLow)
	assert.Equal(t, high, gotHigh)
}

func TestComplexColorLeavesDensityUnchanged(t *testing.T) {
	plain := volume.DefaultParams()
	colored := plain
	colored.ComplexColor = true

	origin, dir := mgl64.Vec3{0, 0, 2}, mgl64.Vec3{0, 0, -1}
	white := mgl64.Vec3{1, 1, 1}
	a := field(t, plain, groundState(1)).March(origin, dir, 4, white, 0)
	b := field(t, colored, groundState(1)).March(origin, dir, 4, white, 0)

	// the ground state has zero phase everywhere, so the complex color is the constant PhaseColor(0)
	require.Greater(t, a.X(), 0.0)
	assert.InEpsilon(t, a.X(), b.Len(), 1e-12)
	assert.True(t, b.ApproxEqualThreshold(volume.PhaseColor(0).Mul(a.X()), 1e-12))
}

func TestAbsorptionAttenuates(t *testing.T) {
	plain := volume.DefaultParams()
	absorbing := plain
	absorbing.Absorption = 1

	origin, dir := mgl64.Vec3{0, 0, 2}, mgl64.Vec3{0, 0, -1}
	color := mgl64.Vec3{1, 0.6, 0.4}
	a := field(t, plain, groundState(1)).March(origin, dir, 4, color, 0)
	b := field(t, absorbing, groundState(1)).March(origin, dir, 4, color, 0)
	for k := 0; k < 3; k++ {
		assert.GreaterOrEqual(t, b[k], 0.0)
		assert.LessOrEqual(t, b[k], a[k])
	}
	assert.Less(t, b.X(), a.X())
}

func TestMarchWithoutWavesIsBlack(t *testing.T) {
	f := field(t, volume.DefaultParams(), groundState(0))
	got := f.March(mgl64.Vec3{0, 0, 2}, mgl64.Vec3{0, 0, -1}, 4, mgl64.Vec3{1, 1, 1}, 0)
	assert.Equal(t, mgl64.Vec3{}, got)
}

func TestTimeEvolutionRotatesPhase(t *testing.T) {
	params := volume.DefaultParams()
	params.TimeEvolution = true
	f := field(t, params, volume.Wave{Amplitude: 1, N: 2})
	p := mgl64.Vec3{0.5, 0.5, 0.5}

	_, before := f.Density(p, 0)
	_, after := f.Density(p, 4)
	// 1/(2n²) per unit of phase, 0.5 radians after 4 units
	assert.InDelta(t, 0.5, math.Remainder(after-before, 2*math.Pi), 1e-9)
}

func TestRay(t *testing.T) {
	origin, dir := volume.Ray(mgl64.Ident4(), 0, 0)
	assert.Equal(t, mgl64.Vec3{}, origin)
	assert.True(t, dir.ApproxEqual(mgl64.Vec3{0, 0, -1}))

	m := mgl64.Translate3D(0, 0, 2)
	origin, dir = volume.Ray(m, 1, 0)
	assert.True(t, origin.ApproxEqual(mgl64.Vec3{0, 0, 2}))
	assert.InDelta(t, 1, dir.Len(), 1e-12)
	assert.InDelta(t, math.Sqrt(0.5), dir.X(), 1e-12)
}
