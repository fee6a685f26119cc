package volume

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Carmen-Shannon/qm-go/engine/formula"
	"github.com/Carmen-Shannon/qm-go/engine/renderer/shader"
)

// ErrNoWaves is returned when a program is assembled from an empty wave list.
var ErrNoWaves = errors.New("volume: no waves to assemble")

// Term is an active wave together with its compiled formula. Index is the wave's position in the assembled
// list and names its WGSL locals.
type Term struct {
	Index    int
	Wave     Wave
	Fragment formula.Fragment
}

// Assembly is the CPU side of a volume program: the compiled waves, the constants and wave block injected into
// the fragment template, and both processed shader stages. Assemble touches no GPU state, so an Assembly can be
// built off the render thread.
type Assembly struct {
	Params   Params
	Terms    []Term
	Defines  map[string]string
	Block    string
	Vertex   shader.Shader
	Fragment shader.Shader
}

// Assemble compiles every active wave and processes the volume shader templates.
//
// Parameters:
//   - waves: the waves of the scene; waves with Amplitude <= SkipAmplitude are compiled out
//   - params: the global constants
//
// Returns:
//   - *Assembly: the assembled program source
//   - error: ErrNoWaves for an empty list, or a wave compile or shader processing error
func Assemble(waves []Wave, params Params) (*Assembly, error) {
	if len(waves) == 0 {
		return nil, ErrNoWaves
	}

	a := &Assembly{
		Params:  params,
		Defines: Defines(params),
	}
	var block strings.Builder
	for i, w := range waves {
		if !w.Active() {
			continue
		}
		n, l, m := w.QuantumNumbers()
		f, err := formula.Compile(n, l, m, float64(w.Phase))
		if err != nil {
			return nil, fmt.Errorf("wave %d: %w", i, err)
		}
		a.Terms = append(a.Terms, Term{Index: i, Wave: w, Fragment: f})
		writeWaveBlock(&block, i, w, f, params.TimeEvolution)
	}
	a.Block = block.String()

	var err error
	a.Vertex, err = shader.NewShader("volume_vs", shader.ShaderTypeVertex, VolumeVertexSource,
		shader.WithInclude(UniformsInclude, VolumeUniformsSource),
	)
	if err != nil {
		return nil, fmt.Errorf("volume vertex stage: %w", err)
	}
	a.Fragment, err = shader.NewShader("volume_fs", shader.ShaderTypeFragment, VolumeFragmentSource,
		shader.WithInclude(UniformsInclude, VolumeUniformsSource),
		shader.WithDefines(a.Defines),
		shader.WithBlock(WaveBlock, a.Block),
	)
	if err != nil {
		return nil, fmt.Errorf("volume fragment stage: %w", err)
	}
	return a, nil
}

// Defines returns the WGSL literal of every constant the fragment template declares.
//
// Parameters:
//   - params: the global settings
//
// Returns:
//   - map[string]string: constant name to WGSL literal
func Defines(params Params) map[string]string {
	return map[string]string{
		"SAMPLE_COUNT":   strconv.Itoa(max(params.SampleCount, 1)),
		"COMPLEX_COLOR":  strconv.FormatBool(params.ComplexColor),
		"ABSORPTION_MUL": formula.FormatFloat(params.Absorption),
		"CUTOFF":         formula.FormatFloat(params.Cutoff),
	}
}

// EnergyRate is the phase advance per unit of time of a stationary state with principal quantum number n,
// −E_n = 1/(2n²) in atomic units.
func EnergyRate(n int) float64 {
	return 1 / (2 * float64(n) * float64(n))
}

// writeWaveBlock appends the statements that add wave i to total_real and total_imag. The statements run
// inside the sample loop of the fragment template, where frag, n, dist and the spherical coordinate
// variables are declared.
func writeWaveBlock(b *strings.Builder, i int, w Wave, f formula.Fragment, timeEvolution bool) {
	scope := formula.DefaultScope()
	for _, bind := range f.Bindings {
		scope[bind.Symbol] = fmt.Sprintf("%s_%d", bind.Symbol, i)
	}

	fmt.Fprintf(b, "cart_p = frag.pos + n * dist + vec3<f32>(0.0, 0.0, %s);\n", formula.FormatFloat(float64(w.Translation)))
	b.WriteString("r = sqrt(dot(cart_p, cart_p));\n")
	b.WriteString("phi = atan2_safe(cart_p.y, cart_p.x);\n")
	b.WriteString("cos_theta = cart_p.z / r;\n")
	b.WriteString("theta = acos(cos_theta);\n")
	b.WriteString("sin_theta = sin(theta);\n")
	for _, bind := range f.Bindings {
		fmt.Fprintf(b, "let %s = %s;\n", scope[bind.Symbol], formula.Render(bind.Expr, scope))
	}
	fmt.Fprintf(b, "let a_%d = %s;\n", i, formula.Render(f.Amplitude, scope))
	phase := formula.Render(f.Phase, scope)
	if timeEvolution {
		phase += " + " + formula.FormatFloat(EnergyRate(f.N)) + " * u.phase"
	}
	fmt.Fprintf(b, "let p_%d = %s;\n", i, phase)
	fmt.Fprintf(b, "total_real = total_real + a_%d * cos(p_%d) * %s;\n", i, i, formula.FormatFloat(float64(w.Amplitude)))
	fmt.Fprintf(b, "total_imag = total_imag + a_%d * sin(p_%d);\n", i, i)
}
