package formula_test

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/qm-go/engine/formula"
	"github.com/Carmen-Shannon/qm-go/engine/orbital"
)

func TestRender(t *testing.T) {
	scope := formula.DefaultScope()
	cases := []struct {
		name string
		expr formula.Expr
		want string
	}{
		{"product", formula.Product{formula.Const(2), formula.Var(formula.SymR)}, "2e+00 * r"},
		{"negative constant", formula.Const(-0.5), "(-5e-01)"},
		{"odd signed power", formula.SignedPow(formula.Var(formula.SymCosTheta), 3), "sign(cos_theta) * pow(abs(cos_theta), 3.0)"},
		{"even signed power", formula.SignedPow(formula.Var(formula.SymSinTheta), 2), "pow(abs(sin_theta), 2.0)"},
		{"sum", formula.Sum{formula.Const(1), formula.Const(-3)}, "(1e+00 + (-3e+00))"},
		{"empty sum", formula.Sum{}, "0.0"},
		{"exp", formula.Exp{Arg: formula.Product{formula.Const(-0.5), formula.Var(formula.SymRho)}}, "exp((-5e-01) * rho)"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, formula.Render(tc.expr, scope))
		})
	}
}

func TestRenderScope(t *testing.T) {
	scope := formula.DefaultScope()
	scope[formula.SymRho] = "rho_1"
	assert.Equal(t, "pow(rho_1, 2.0)", formula.Render(formula.Pow{Base: formula.Var(formula.SymRho), Exponent: 2}, scope))
	assert.Equal(t, "phi", formula.Render(formula.Var(formula.SymPhi), formula.Scope{}))
}

func TestEval(t *testing.T) {
	env := formula.Env{formula.SymCosTheta: -0.5}
	assert.InDelta(t, -0.125, formula.Eval(formula.SignedPow(formula.Var(formula.SymCosTheta), 3), env), 1e-15)
	assert.InDelta(t, 0.25, formula.Eval(formula.SignedPow(formula.Var(formula.SymCosTheta), 2), env), 1e-15)
	assert.Equal(t, 0.0, formula.Eval(formula.Sum{}, env))
	assert.Equal(t, 1.0, formula.Eval(formula.Product{}, env))
	assert.Equal(t, 0.0, formula.Eval(formula.Sign{Arg: formula.Const(0)}, env))
}

func TestBrightness(t *testing.T) {
	assert.InDelta(t, 3.0, formula.Brightness(1), 1e-12)
	assert.InDelta(t, 65.0, formula.Brightness(4), 1e-12)
}

func TestCompileClampsQuantumNumbers(t *testing.T) {
	f, err := formula.Compile(3, 7, -9, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, f.L)
	assert.Equal(t, -2, f.M)

	f, err = formula.Compile(1, -4, 3, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, f.L)
	assert.Equal(t, 0, f.M)

	_, err = formula.Compile(0, 0, 0, 0)
	require.ErrorIs(t, err, orbital.ErrInvalidQuantumNumbers)
}

func TestCompiledSourceShape(t *testing.T) {
	scope := formula.DefaultScope()

	s, err := formula.Compile(1, 0, 0, 0)
	require.NoError(t, err)
	src := formula.Render(s.Amplitude, scope)
	assert.NotContains(t, src, "pow(rho, 0.0)")
	assert.NotContains(t, src, "sin_theta")

	p, err := formula.Compile(2, 1, 1, 0)
	require.NoError(t, err)
	src = formula.Render(p.Amplitude, scope)
	assert.Contains(t, src, "sign(sin_theta) * pow(abs(sin_theta), 1.0)")
	assert.Contains(t, src, "pow(rho, 1.0)")

	d, err := formula.Compile(3, 2, -2, 0)
	require.NoError(t, err)
	src = formula.Render(d.Amplitude, scope)
	assert.Contains(t, src, "pow(abs(sin_theta), 2.0)")
	assert.NotContains(t, src, "sign(sin_theta)")

	// P_2' = 3x has no constant term, so the angular sum has a single term.
	d1, err := formula.Compile(3, 2, 1, 0.25)
	require.NoError(t, err)
	src = formula.Render(d1.Amplitude, scope)
	assert.NotContains(t, src, "0e+00 *")
	assert.Equal(t, "(1e+00 * phi + 2.5e-01)", formula.Render(d1.Phase, scope))

	assert.Equal(t, "1e+00 * r", formula.Render(p.Bindings[0].Expr, scope))
}

func TestCompiledFormulaMatchesWaveFunction(t *testing.T) {
	points := [][3]float64{{0.4, 0.3, 0.2}, {2.5, 1.1, -2}, {6, 2.2, 3}, {15, 0.9, 1.3}, {30, 2.9, 0.7}}
	for n := 1; n <= 12; n++ {
		for l := 0; l < n; l++ {
			for m := -l; m <= l; m++ {
				f, err := formula.Compile(n, l, m, 0.3)
				require.NoError(t, err)
				w, err := orbital.New(n, l, m, 0.3, formula.BohrRadius)
				require.NoError(t, err)

				b := formula.Brightness(n)
				for _, p := range points {
					amp, phase := formula.EvalFragment(f, p[0], p[1], p[2])
					want := w.Value(p[0], p[1], p[2])
					tol := 1e-9*math.Abs(amp/b) + 1e-200
					assert.InDelta(t, real(want), amp/b*math.Cos(phase), tol, "n=%d l=%d m=%d", n, l, m)
					assert.InDelta(t, imag(want), amp/b*math.Sin(phase), tol, "n=%d l=%d m=%d", n, l, m)
				}
			}
		}
	}
}

func TestFormatFloat(t *testing.T) {
	assert.Equal(t, "2e+00", formula.FormatFloat(2))
	assert.Equal(t, "(-1.25e-01)", formula.FormatFloat(-0.125))
	assert.True(t, strings.HasPrefix(formula.FormatFloat(0.1), "1e-01"))
	assert.Equal(t, "0e+00", formula.FormatFloat(math.NaN()))
}
