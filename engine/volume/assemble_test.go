package volume_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/qm-go/engine/orbital"
	"github.com/Carmen-Shannon/qm-go/engine/volume"
)

func groundState(amplitude float32) volume.Wave {
	return volume.Wave{Amplitude: amplitude, N: 1}
}

func TestAssembleRejectsEmptyWaveList(t *testing.T) {
	_, err := volume.Assemble(nil, volume.DefaultParams())
	assert.ErrorIs(t, err, volume.ErrNoWaves)
}

func TestAssembleSkipsQuietWaves(t *testing.T) {
	waves := []volume.Wave{
		groundState(1),
		{Amplitude: 0.001, N: 2, L: 1},
		{Amplitude: 0.0011, N: 2, L: 1, M: 1},
	}
	a, err := volume.Assemble(waves, volume.DefaultParams())
	require.NoError(t, err)

	require.Len(t, a.Terms, 2)
	assert.Equal(t, 0, a.Terms[0].Index)
	assert.Equal(t, 2, a.Terms[1].Index)
	assert.Contains(t, a.Block, "let a_0 = ")
	assert.NotContains(t, a.Block, "a_1")
	assert.Contains(t, a.Block, "let a_2 = ")
	assert.Contains(t, a.Block, "let rho_2 = ")
}

func TestAssembleAllQuietWavesStillCompiles(t *testing.T) {
	a, err := volume.Assemble([]volume.Wave{groundState(0)}, volume.DefaultParams())
	require.NoError(t, err)
	assert.Empty(t, a.Terms)
	assert.Empty(t, a.Block)
	assert.NotContains(t, a.Fragment.Source(), "@qm:")
}

func TestAssembleInjectsConstants(t *testing.T) {
	params := volume.Params{SampleCount: 64, ComplexColor: true, Absorption: 0.25, Cutoff: 0.01}
	a, err := volume.Assemble([]volume.Wave{groundState(1)}, params)
	require.NoError(t, err)

	src := a.Fragment.Source()
	assert.Contains(t, src, "const SAMPLE_COUNT: i32 = 64;")
	assert.Contains(t, src, "const COMPLEX_COLOR: bool = true;")
	assert.Contains(t, src, "const ABSORPTION_MUL: f32 = 2.5e-01;")
	assert.Contains(t, src, "const CUTOFF: f32 = 1e-02;")
	assert.Contains(t, src, "struct VolumeUniforms")
	assert.NotContains(t, src, "@qm:")
	assert.Equal(t, "fs_main", a.Fragment.EntryPoint())
	assert.Equal(t, "vs_main", a.Vertex.EntryPoint())
}

func TestDefaultParams(t *testing.T) {
	d := volume.Defines(volume.DefaultParams())
	assert.Equal(t, "40", d["SAMPLE_COUNT"])
	assert.Equal(t, "false", d["COMPLEX_COLOR"])
	assert.Equal(t, "0e+00", d["ABSORPTION_MUL"])
	assert.Equal(t, "0e+00", d["CUTOFF"])
}

func TestAssembleIsDeterministic(t *testing.T) {
	waves := []volume.Wave{groundState(1), {Amplitude: 0.5, N: 3, L: 2, M: -1, Phase: 1.2, Translation: -0.75}}
	a, err := volume.Assemble(waves, volume.DefaultParams())
	require.NoError(t, err)
	b, err := volume.Assemble(waves, volume.DefaultParams())
	require.NoError(t, err)
	assert.Equal(t, a.Fragment.Source(), b.Fragment.Source())
	assert.Equal(t, a.Vertex.Source(), b.Vertex.Source())
}

func TestAmplitudeWeightsOnlyTheRealPart(t *testing.T) {
	a, err := volume.Assemble([]volume.Wave{groundState(0.5)}, volume.DefaultParams())
	require.NoError(t, err)
	assert.Contains(t, a.Block, "total_real = total_real + a_0 * cos(p_0) * 5e-01;")
	assert.Contains(t, a.Block, "total_imag = total_imag + a_0 * sin(p_0);")
}

func TestTranslationAndPhaseAreCompiledIn(t *testing.T) {
	w := volume.Wave{Amplitude: 1, N: 2, L: 1, M: 1, Phase: 0.5, Translation: -1.5}
	a, err := volume.Assemble([]volume.Wave{w}, volume.DefaultParams())
	require.NoError(t, err)
	assert.Contains(t, a.Block, "vec3<f32>(0.0, 0.0, (-1.5e+00))")
	assert.Contains(t, a.Block, "let p_0 = (1e+00 * phi + 5e-01);")
	assert.NotContains(t, a.Block, "u.phase")
}

func TestTimeEvolutionAdvancesPhase(t *testing.T) {
	params := volume.DefaultParams()
	params.TimeEvolution = true
	a, err := volume.Assemble([]volume.Wave{{Amplitude: 1, N: 2}}, params)
	require.NoError(t, err)
	assert.Contains(t, a.Block, "+ 1.25e-01 * u.phase;")
	assert.InDelta(t, 0.125, volume.EnergyRate(2), 1e-15)
}

func TestAssembleClampsSliderValues(t *testing.T) {
	// l and m past their bounds are clamped rather than rejected
	a, err := volume.Assemble([]volume.Wave{{Amplitude: 1, N: 2, L: 7, M: -9}}, volume.DefaultParams())
	require.NoError(t, err)
	require.Len(t, a.Terms, 1)
	assert.Equal(t, 1, a.Terms[0].Fragment.L)
	assert.Equal(t, -1, a.Terms[0].Fragment.M)
}

func TestAssembleReportsInvalidWave(t *testing.T) {
	_, err := volume.Assemble([]volume.Wave{{Amplitude: 1, N: 0}}, volume.DefaultParams())
	assert.ErrorIs(t, err, orbital.ErrInvalidQuantumNumbers)
}

func TestWaveBlockOrder(t *testing.T) {
	a, err := volume.Assemble([]volume.Wave{groundState(1)}, volume.DefaultParams())
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(a.Block), "\n")
	require.Len(t, lines, 11)
	assert.True(t, strings.HasPrefix(lines[0], "cart_p = frag.pos + n * dist"))
	assert.True(t, strings.HasPrefix(lines[6], "let rho_0 = "))
	assert.True(t, strings.HasPrefix(lines[7], "let a_0 = "))
	assert.True(t, strings.HasPrefix(lines[8], "let p_0 = "))
}
