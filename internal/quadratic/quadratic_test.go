package quadratic

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/goworkbook/internal/poly"
	"github.com/njchilds90/goworkbook/internal/problem"
)

func solve(t *testing.T, input string) (problem.Problem, problem.Solution) {
	t.Helper()
	p, err := Registry().Classify(input, "", "", nil)
	require.NoError(t, err, input)
	return p, Registry().Solve(p)
}

func solveParams(t *testing.T, typ problem.TypeID, params problem.Params) (problem.Problem, problem.Solution) {
	t.Helper()
	p, err := Registry().Classify("", "", typ, params)
	require.NoError(t, err)
	return p, Registry().Solve(p)
}

func requireVerified(t *testing.T, p problem.Problem, s problem.Solution) {
	t.Helper()
	v := Registry().Verify(p, s)
	require.True(t, v.Valid, v.Summary())
}

func stepNames(steps []problem.Step) []string {
	out := make([]string, len(steps))
	for i, s := range steps {
		out[i] = s.Name
	}
	return out
}

func TestRegistrationOrder(t *testing.T) {
	assert.Equal(t, []problem.TypeID{
		TypeCompletingSquare, TypeFactoring, TypeVertexForm, TypeFunctionAnalysis, TypeDiscriminant,
		TypeFormula, TypeProjectile, TypeInverse, TypeInequality, TypeBiquadratic, TypeStandard,
	}, Registry().IDs())
}

func TestClassify(t *testing.T) {
	tests := []struct {
		input string
		want  problem.TypeID
	}{
		{"complete the square for x² + 6x + 5 = 0", TypeCompletingSquare},
		{"factor x² + 7x + 12", TypeFactoring},
		{"y = 2(x - 1)² - 8", TypeVertexForm},
		{"find the vertex of x² - 4x + 3", TypeVertexForm},
		{"analyze the function f(x) = -x² + 4x - 1", TypeFunctionAnalysis},
		{"find the discriminant of 4x² - 4x + 1 = 0", TypeDiscriminant},
		{"use the quadratic formula on 2x² + 3x - 5 = 0", TypeFormula},
		{"h(t) = -16t² + 64t + 80", TypeProjectile},
		{"a ball is thrown upward at 64 ft/s from 80 ft", TypeProjectile},
		{"find the quadratic equation with roots 2 and -5", TypeInverse},
		{"solve x² - x - 6 > 0", TypeInequality},
		{"x⁴ - 5x² + 4 = 0", TypeBiquadratic},
		{"x^2 - 5x + 6 = 0", TypeStandard},
		{"x**2 - 5x + 6 = 0", TypeStandard},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p, err := Registry().Classify(tt.input, "", "", nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Type)
		})
	}
}

func TestClassify_FallbackOnCoefficients(t *testing.T) {
	p, err := Registry().Classify("solve it", "", "", problem.Params{"a": 1, "b": -2, "c": 1})
	require.NoError(t, err)
	assert.Equal(t, TypeStandard, p.Type)

	_, err = Registry().Classify("what is the capital of France", "", "", nil)
	assert.True(t, errors.Is(err, problem.ErrUnrecognizedProblem))
}

func TestClean(t *testing.T) {
	assert.Equal(t, "x² - 5x + 6 = 0", Clean("  x^2   - 5x + 6 = 0 "))
	assert.Equal(t, "(x - 3)² + 1", Clean("(x - 3)**2 + 1"))
	assert.Equal(t, "x² <= 4", Clean("x^2 ≤ 4"))
}

func TestExtract_Assignments(t *testing.T) {
	p, err := Registry().Classify("standard form with a = 2, b = -3, c = 1/2", "", "", nil)
	require.NoError(t, err)
	assert.Equal(t, 2.0, p.Params.Float("a", 0))
	assert.Equal(t, -3.0, p.Params.Float("b", 0))
	assert.Equal(t, 0.5, p.Params.Float("c", 0))
}

// ============================================================
// Standard form and the formula
// ============================================================

func TestSolveStandard_TwoRoots(t *testing.T) {
	p, s := solve(t, "x² - 5x + 6 = 0")
	require.Nil(t, s.Error)
	assert.Equal(t, []float64{2, 3}, s.Reals())
	assert.Equal(t, TwoRealRoots, s.Kind)
	assert.Equal(t, "x = 2 or x = 3", s.Summary)

	an := s.Detail.(Analysis)
	assert.Equal(t, 1.0, an.Discriminant)
	assert.Equal(t, Point{X: 2.5, Y: -0.25}, an.Vertex)
	assert.Equal(t, 5.0, an.Sum)
	assert.Equal(t, 6.0, an.Product)
	assert.Equal(t, "[-0.25, ∞)", an.Parabola.Range)
	requireVerified(t, p, s)
}

func TestSolveStandard_RepeatedRoot(t *testing.T) {
	p, s := solveParams(t, TypeStandard, problem.Params{"a": 1, "b": -2, "c": 1})
	require.Nil(t, s.Error)
	require.Len(t, s.Answers, 1)
	assert.Equal(t, "x", s.Answers[0].Label)
	assert.Equal(t, []float64{1}, s.Reals())
	assert.Equal(t, RepeatedRoot, s.Kind)
	assert.Equal(t, 0.0, s.Detail.(Analysis).Discriminant)
	requireVerified(t, p, s)
}

func TestSolveStandard_ComplexRoots(t *testing.T) {
	p, s := solve(t, "x² + 2x + 5 = 0")
	require.Nil(t, s.Error)
	assert.Equal(t, ComplexRoots, s.Kind)
	require.Len(t, s.Answers, 2)
	assert.Equal(t, "-1 - 2i", s.Answers[0].Text)
	assert.Equal(t, "-1 + 2i", s.Answers[1].Text)
	assert.Empty(t, s.Reals())
	requireVerified(t, p, s)
}

func TestSolveStandard_Transformations(t *testing.T) {
	an := Analyze(-2, 8, -3)
	assert.Equal(t, []string{
		"vertical stretch by a factor of 2",
		"reflection over the x-axis",
		"horizontal shift right by 2",
		"vertical shift up by 5",
	}, an.Parabola.Transformations)
	assert.False(t, an.Parabola.OpensUpward)
	assert.Equal(t, "(-∞, 5]", an.Parabola.Range)
}

func TestSolveStandard_TinyLeadingCoefficient(t *testing.T) {
	an := Analyze(1e-10, 1, 1)
	require.Len(t, an.Roots, 2)
	assert.InDelta(t, -1e10, an.Roots[0], 2)
	assert.InDelta(t, -1.0000000001, an.Roots[1], 1e-15)

	p, s := solveParams(t, TypeStandard, problem.Params{"a": 1e-10, "b": 1.0, "c": 1.0})
	require.Nil(t, s.Error)
	requireVerified(t, p, s)
}

func TestSolveStandard_Degenerate(t *testing.T) {
	p, s := solveParams(t, TypeStandard, problem.Params{"a": 0, "b": 2, "c": 1})
	require.NotNil(t, s.Error)
	assert.True(t, errors.Is(s.Error, problem.ErrDegenerateEquation))
	assert.True(t, s.Failed())
	assert.False(t, Registry().Verify(p, s).Valid)
}

func TestSolveStandard_HigherDegreeRejected(t *testing.T) {
	_, s := solve(t, "write x³ - 1 = 0 in standard form")
	require.NotNil(t, s.Error)
	assert.True(t, errors.Is(s.Error, problem.ErrInvalidParameters))
}

func TestVerify_CatchesCorruptedRoot(t *testing.T) {
	p, s := solve(t, "x² - 5x + 6 = 0")
	s.Answers[0] = problem.RealAnswer("x1", 2.5)
	v := Registry().Verify(p, s)
	assert.False(t, v.Valid)
	assert.Equal(t, problem.ConfidenceLow, v.Confidence)
}

func TestVerify_CatchesMissingRoot(t *testing.T) {
	p, s := solve(t, "x² - 5x + 6 = 0")
	s.Answers = s.Answers[:1]
	assert.False(t, Registry().Verify(p, s).Valid)
}

func TestSteps_StandardAndFormula(t *testing.T) {
	p, s := solve(t, "x² - 5x + 6 = 0")
	steps, ok := Registry().BaseSteps(p, s)
	require.True(t, ok)
	assert.Equal(t, []string{
		"Given equation", "Identify coefficients", "Calculate discriminant",
		"Apply quadratic formula", "Calculate both solutions", "Find vertex",
	}, stepNames(steps))
	assert.Equal(t, "x1 = 2, x2 = 3", steps[4].FinalAnswer)

	p, s = solve(t, "use the quadratic formula on x² + 2x + 5 = 0")
	steps, _ = Registry().BaseSteps(p, s)
	assert.Equal(t, "Complex solutions", steps[len(steps)-1].Name)
}

// ============================================================
// Completing the square
// ============================================================

func TestCompletingSquare(t *testing.T) {
	p, s := solve(t, "complete the square for x² + 6x + 5 = 0")
	require.Nil(t, s.Error)
	d := s.Detail.(CompletedSquare)
	assert.Equal(t, -3.0, d.H)
	assert.Equal(t, -4.0, d.K)
	assert.Equal(t, "(x + 3)² - 4", d.VertexForm)
	assert.Equal(t, []float64{-5, -1}, s.Reals())
	requireVerified(t, p, s)

	steps, _ := Registry().BaseSteps(p, s)
	assert.Equal(t, []string{
		"Original equation", "Factor out coefficient of x²", "Complete the square",
		"Simplify to vertex form", "Solve for x",
	}, stepNames(steps))
}

func TestVertexFormString(t *testing.T) {
	assert.Equal(t, "2(x - 1)² + 3", VertexForm(2, 1, 3))
	assert.Equal(t, "-x²", VertexForm(-1, 0, 0))
	assert.Equal(t, "0.5(x + 2)² - 1", VertexForm(0.5, -2, -1))
}

// ============================================================
// Factoring
// ============================================================

func TestFactoring(t *testing.T) {
	tests := []struct {
		input    string
		factored string
		roots    []float64
	}{
		{"factor x² + 7x + 12", "(x + 3)(x + 4)", []float64{-4, -3}},
		{"factor 2x² + 5x + 3", "(x + 1)(2x + 3)", []float64{-1.5, -1}},
		{"factor x² - 9", "(x - 3)(x + 3)", []float64{-3, 3}},
		{"factor x² + 3x", "x(x + 3)", []float64{-3, 0}},
		{"factor 6x² + 12x + 6", "6(x + 1)²", []float64{-1}},
		{"factor -x² + x + 6", "-(x - 3)(x + 2)", []float64{-2, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p, s := solve(t, tt.input)
			require.Nil(t, s.Error)
			ans, ok := s.Answer("factored")
			require.True(t, ok)
			assert.Equal(t, tt.factored, ans.Text)
			assert.Equal(t, tt.roots, s.Reals())
			requireVerified(t, p, s)

			d := s.Detail.(Factorization)
			a, b, c := p.Params.Float("a", 1), p.Params.Float("b", 0), p.Params.Float("c", 0)
			if diff := cmp.Diff(poly.Of(a, b, c), d.Poly()); diff != "" {
				t.Errorf("expansion mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFactoring_Steps(t *testing.T) {
	p, s := solve(t, "factor x² + 7x + 12")
	steps, _ := Registry().BaseSteps(p, s)
	assert.Equal(t, []string{
		"Check for factoring possibility", "Split middle term",
		"Factor the expression", "Apply zero product property",
	}, stepNames(steps))
}

func TestFactoring_NotFactorableIsTerminal(t *testing.T) {
	for _, input := range []string{"factor x² + 3x + 1", "factor x² + x + 1", "factor 0.5x² + x"} {
		t.Run(input, func(t *testing.T) {
			p, s := solve(t, input)
			require.NotNil(t, s.Error)
			assert.True(t, errors.Is(s.Error, problem.ErrNotFactorable))
			assert.False(t, s.Failed())
			requireVerified(t, p, s)

			steps, _ := Registry().BaseSteps(p, s)
			assert.Equal(t, "Factoring not possible", steps[len(steps)-1].Name)
		})
	}
}

func TestFactoring_ComplexFactorization(t *testing.T) {
	_, s := solve(t, "factor x² + x + 1")
	assert.Contains(t, s.Detail.(Factorization).Complex, "i)")
}

func TestVerify_CatchesWrongFactors(t *testing.T) {
	p, s := solve(t, "factor x² + 7x + 12")
	s.Answers[0] = problem.TextAnswer("factored", "(x + 2)(x + 6)")
	assert.False(t, Registry().Verify(p, s).Valid)
}

func TestExpandFactored(t *testing.T) {
	got, err := expandFactored("-2x(x - 1)²")
	require.NoError(t, err)
	assert.Equal(t, poly.Of(-2, 4, -2, 0), got)

	_, err = expandFactored("seven")
	assert.Error(t, err)
}

// ============================================================
// Parabola features
// ============================================================

func TestVertexForm(t *testing.T) {
	p, s := solve(t, "y = 2(x - 1)² - 8")
	require.Nil(t, s.Error)
	assert.Equal(t, 2.0, p.Params.Float("a", 0))
	assert.Equal(t, 1.0, p.Params.Float("h", 0))
	assert.Equal(t, -8.0, p.Params.Float("k", 0))

	vertex, _ := s.Answer("vertex")
	assert.Equal(t, "(1, -8)", vertex.Text)
	b, _ := s.Answer("b")
	c, _ := s.Answer("c")
	assert.Equal(t, -4.0, *b.Real)
	assert.Equal(t, -6.0, *c.Real)
	assert.Equal(t, "2x² - 4x - 6", s.Detail.(VertexAnalysis).Standard)
	requireVerified(t, p, s)

	steps, _ := Registry().BaseSteps(p, s)
	assert.Equal(t, []string{
		"Given vertex form", "Expand to standard form", "Find intercepts", "Describe the parabola",
	}, stepNames(steps))
}

func TestVertexForm_FromStandard(t *testing.T) {
	p, s := solve(t, "find the vertex of x² - 4x + 3")
	require.Nil(t, s.Error)
	vertex, _ := s.Answer("vertex")
	assert.Equal(t, "(2, -1)", vertex.Text)
	requireVerified(t, p, s)
}

func TestFunctionAnalysis(t *testing.T) {
	p, s := solve(t, "analyze the function f(x) = -x² + 4x - 1")
	require.Nil(t, s.Error)
	d := s.Detail.(FunctionAnalysis)
	assert.Equal(t, "maximum", d.Extremum.Kind)
	assert.Equal(t, Point{X: 2, Y: 3}, d.Vertex)
	assert.Equal(t, "(-∞, 3]", d.Range)
	assert.Equal(t, "(-∞, 2)", d.Increasing)
	assert.Equal(t, "(2, ∞)", d.Decreasing)
	requireVerified(t, p, s)

	s.Answers[1] = problem.TextAnswer("range", "[3, ∞)")
	assert.False(t, Registry().Verify(p, s).Valid)
}

func TestDiscriminant(t *testing.T) {
	tests := []struct {
		input  string
		disc   float64
		kind   string
		nature string
	}{
		{"find the discriminant of 4x² - 4x + 1 = 0", 0, RepeatedRoot, "a single rational number"},
		{"discriminant of x² - 5x + 6", 1, TwoRealRoots, "rational numbers (perfect square discriminant)"},
		{"discriminant of x² + 4x + 1", 12, TwoRealRoots, "irrational real numbers"},
		{"discriminant of x² + x + 1", -3, ComplexRoots, "complex conjugates p ± qi"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p, s := solve(t, tt.input)
			require.Nil(t, s.Error)
			d := s.Detail.(DiscriminantAnalysis)
			assert.Equal(t, tt.disc, d.Discriminant)
			assert.Equal(t, tt.kind, s.Kind)
			assert.Equal(t, tt.nature, d.Nature)
			requireVerified(t, p, s)
		})
	}
}

// ============================================================
// Applications
// ============================================================

func TestProjectile(t *testing.T) {
	for _, input := range []string{"h(t) = -16t² + 64t + 80", "a ball is thrown upward at 64 ft/s from 80 ft"} {
		t.Run(input, func(t *testing.T) {
			p, s := solve(t, input)
			require.Nil(t, s.Error)
			d := s.Detail.(Projectile)
			assert.Equal(t, 2.0, d.PeakTime)
			assert.Equal(t, 144.0, d.PeakHeight)
			assert.Equal(t, 5.0, d.Landing)
			assert.Equal(t, "feet", d.Units)
			requireVerified(t, p, s)

			steps, _ := Registry().BaseSteps(p, s)
			assert.Equal(t, []string{
				"Given height function", "Time of maximum height", "Maximum height", "Landing time",
			}, stepNames(steps))
		})
	}
}

func TestProjectile_Metric(t *testing.T) {
	p, s := solve(t, "a ball is thrown upward at 20 m/s from a height of 5 meters")
	require.Nil(t, s.Error)
	assert.Equal(t, -4.9, p.Params.Float("a", 0))
	d := s.Detail.(Projectile)
	assert.Equal(t, "meters", d.Units)
	assert.InDelta(t, 20/9.8, d.PeakTime, 1e-9)
	assert.InDelta(t, 4.318, d.Landing, 1e-3)
	requireVerified(t, p, s)
}

func TestProjectile_NeverLands(t *testing.T) {
	p, s := solveParams(t, TypeProjectile, problem.Params{"a": -16, "b": -10, "c": -5})
	require.NotNil(t, s.Error)
	assert.True(t, errors.Is(s.Error, problem.ErrNoRealSolution))
	requireVerified(t, p, s)
}

func TestProjectile_UpwardParabolaRejected(t *testing.T) {
	_, s := solveParams(t, TypeProjectile, problem.Params{"a": 16, "b": 10})
	require.NotNil(t, s.Error)
	assert.True(t, errors.Is(s.Error, problem.ErrInvalidParameters))
}

func TestInverse(t *testing.T) {
	p, s := solve(t, "find the quadratic equation with roots 2 and -5")
	require.Nil(t, s.Error)
	d := s.Detail.(Construction)
	assert.Equal(t, "x² + 3x - 10 = 0", d.Equation)
	assert.Equal(t, "(x - 2)(x + 5)", d.FactorForm)
	requireVerified(t, p, s)

	steps, _ := Registry().BaseSteps(p, s)
	assert.Equal(t, []string{
		"Given information", "Factor form construction", "Apply Vieta's formulas", "Standard form",
	}, stepNames(steps))
}

func TestInverse_DoubleRootWithLeadingCoefficient(t *testing.T) {
	p, s := solve(t, "construct a quadratic with a double root at 3 and leading coefficient 2")
	require.Nil(t, s.Error)
	d := s.Detail.(Construction)
	assert.Equal(t, "2x² - 12x + 18 = 0", d.Equation)
	assert.Equal(t, "2(x - 3)²", d.FactorForm)
	requireVerified(t, p, s)
}

func TestInverse_NoRoots(t *testing.T) {
	_, s := solveParams(t, TypeInverse, problem.Params{})
	assert.True(t, errors.Is(s.Error, problem.ErrInvalidParameters))
}

// ============================================================
// Inequalities
// ============================================================

func TestInequality(t *testing.T) {
	tests := []struct {
		input    string
		notation string
		set      string
	}{
		{"solve x² - x - 6 > 0", "(-∞, -2) ∪ (3, ∞)", "x < -2 or x > 3"},
		{"solve x² - x - 6 <= 0", "[-2, 3]", "-2 ≤ x ≤ 3"},
		{"solve -x² + x + 6 >= 0", "[-2, 3]", "-2 ≤ x ≤ 3"},
		{"solve x² + 1 < 0", "∅", "no real solution"},
		{"solve x² + 1 > 0", "(-∞, ∞)", "all real numbers"},
		{"solve x² - 2x + 1 > 0", "(-∞, 1) ∪ (1, ∞)", "all real numbers except x = 1"},
		{"solve x² - 2x + 1 <= 0", "{1}", "x = 1"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p, s := solve(t, tt.input)
			require.Equal(t, TypeInequality, p.Type)
			require.Nil(t, s.Error)
			sol, _ := s.Answer("solution")
			set, _ := s.Answer("set")
			assert.Equal(t, tt.notation, sol.Text)
			assert.Equal(t, tt.set, set.Text)
			requireVerified(t, p, s)
		})
	}
}

func TestInequality_VerifierRejectsWrongSet(t *testing.T) {
	p, s := solve(t, "solve x² - x - 6 > 0")
	s.Answers[0] = problem.TextAnswer("solution", "[-2, 3]")
	assert.False(t, Registry().Verify(p, s).Valid)

	s.Answers[0] = problem.TextAnswer("solution", "(-∞, -2] ∪ [3, ∞)")
	assert.False(t, Registry().Verify(p, s).Valid, "closed ends on a strict inequality")
}

func TestInequality_EqualsRejected(t *testing.T) {
	_, s := solveParams(t, TypeInequality, problem.Params{"a": 1, "c": -1, "operator": "="})
	assert.True(t, errors.Is(s.Error, problem.ErrInvalidParameters))
}

func TestParseNotation(t *testing.T) {
	ivs, err := ParseNotation("(-∞, -2) ∪ [3.5, ∞)")
	require.NoError(t, err)
	assert.Equal(t, []Interval{
		{Lo: math.Inf(-1), Hi: -2},
		{Lo: 3.5, Hi: math.Inf(1), LoClosed: true},
	}, ivs)
	assert.Equal(t, "(-∞, -2) ∪ [3.5, ∞)", Notation(ivs))

	ivs, err = ParseNotation("∅")
	require.NoError(t, err)
	assert.Empty(t, ivs)

	_, err = ParseNotation("between two and three")
	assert.Error(t, err)
}

func TestInterval_Contains(t *testing.T) {
	iv := Interval{Lo: -2, Hi: 3, LoClosed: true}
	assert.True(t, iv.Contains(-2))
	assert.True(t, iv.Contains(0))
	assert.False(t, iv.Contains(3))
	assert.False(t, iv.Contains(3+1e-12))
	assert.False(t, iv.Contains(4))
}

// ============================================================
// Biquadratic
// ============================================================

func TestBiquadratic(t *testing.T) {
	tests := []struct {
		input   string
		reals   []float64
		complex int
	}{
		{"x⁴ - 5x² + 4 = 0", []float64{-2, -1, 1, 2}, 0},
		{"x⁴ - 4x² = 0", []float64{-2, 0, 2}, 0},
		{"x⁴ + 5x² + 4 = 0", nil, 4},
		{"x⁴ - 3x² - 4 = 0", []float64{-2, 2}, 2},
		{"x⁴ + x² + 1 = 0", nil, 4},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p, s := solve(t, tt.input)
			require.Equal(t, TypeBiquadratic, p.Type)
			require.Nil(t, s.Error)
			d := s.Detail.(Biquadratic)
			if diff := cmp.Diff(tt.reals, d.Real); diff != "" {
				t.Errorf("real roots (-want +got):\n%s", diff)
			}
			assert.Len(t, d.Complex, tt.complex)
			requireVerified(t, p, s)
		})
	}
}

func TestBiquadratic_Steps(t *testing.T) {
	p, s := solve(t, "x⁴ - 5x² + 4 = 0")
	steps, _ := Registry().BaseSteps(p, s)
	assert.Equal(t, []string{
		"Identify biquadratic form", "Make substitution", "Solve for u", "Convert back to x",
	}, stepNames(steps))
}

func TestBiquadratic_OddPowersRejected(t *testing.T) {
	_, s := solve(t, "biquadratic x⁴ + x³ - 2 = 0")
	require.NotNil(t, s.Error)
	assert.True(t, errors.Is(s.Error, problem.ErrInvalidParameters))
}
