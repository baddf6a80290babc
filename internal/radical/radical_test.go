package radical

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/goworkbook/internal/numeric"
	"github.com/njchilds90/goworkbook/internal/problem"
)

func solve(t *testing.T, input string) (problem.Problem, problem.Solution) {
	t.Helper()
	p, err := Registry().Classify(input, "", "", nil)
	require.NoError(t, err, input)
	return p, Registry().Solve(p)
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
		TypeAddSubtract, TypeMultiply, TypeDivide, TypeRationalize, TypeHigherIndex,
		TypeRationalExponent, TypePythagorean, TypeDistance, TypeQuadraticFormula, TypeSimplify,
	}, Registry().IDs())
}

func TestClassify(t *testing.T) {
	tests := []struct {
		input string
		want  problem.TypeID
	}{
		{"3√8 + 2√2", TypeAddSubtract},
		{"sqrt(8) - sqrt(2)", TypeAddSubtract},
		{"2√3 × 4√6", TypeMultiply},
		{"6√2 / 2√3", TypeDivide},
		{"6/√3", TypeRationalize},
		{"rationalize 5/2√7", TypeRationalize},
		{"∛54", TypeHigherIndex},
		{"⁵√64", TypeHigherIndex},
		{"cube root of 40", TypeHigherIndex},
		{"8^(2/3)", TypeRationalExponent},
		{"(-8)^(1/3)", TypeRationalExponent},
		{"right triangle with legs 3 and 4", TypePythagorean},
		{"distance between (1, 2) and (4, 6)", TypeDistance},
		{"x² + 4x + 1 = 0", TypeQuadraticFormula},
		{"√72", TypeSimplify},
		{"simplify the radical 50", TypeSimplify},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p, err := Registry().Classify(tt.input, "", "", nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Type)
		})
	}
}

func TestClassify_Unrecognized(t *testing.T) {
	_, err := Registry().Classify("what is the capital of France", "", "", nil)
	assert.True(t, errors.Is(err, problem.ErrUnrecognizedProblem))
}

func TestClean(t *testing.T) {
	assert.Equal(t, "√8 + √2", Clean("  sqrt(8)  +  \\sqrt{2} "))
	assert.Equal(t, "∛27", Clean("cbrt(27)"))
	assert.Equal(t, "3√5", Clean("3√(5)"))
}

// ============================================================
// Simplification
// ============================================================

func TestSimplify(t *testing.T) {
	tests := []struct {
		n, index        int64
		outside, inside int64
	}{
		{72, 2, 6, 2},
		{50, 2, 5, 2},
		{49, 2, 7, 1},
		{7, 2, 1, 7},
		{1, 2, 1, 1},
		{54, 3, 3, 2},
		{-27, 3, -3, 1},
		{64, 5, 2, 2},
		{162, 4, 3, 2},
	}
	for _, tt := range tests {
		s, err := Simplify(tt.n, tt.index)
		require.Nil(t, err)
		assert.Equal(t, tt.outside, s.Outside, "outside of %d-th root of %d", tt.index, tt.n)
		assert.Equal(t, tt.inside, s.Inside, "inside of %d-th root of %d", tt.index, tt.n)
	}
}

func TestSimplify_PowerProductAndIdempotence(t *testing.T) {
	for _, index := range []int64{2, 3, 4} {
		for n := int64(1); n <= 600; n++ {
			s, err := Simplify(n, index)
			require.Nil(t, err)
			pow, _ := numeric.CheckedPow(s.Outside, index)
			require.Equal(t, n, pow*s.Inside, "n=%d index=%d", n, index)
			require.True(t, numeric.IsFullySimplified(s.Inside, index))

			again, err := Simplify(s.Inside, index)
			require.Nil(t, err)
			require.Equal(t, int64(1), again.Outside)
			require.Equal(t, s.Inside, again.Inside)
		}
	}
}

func TestSimplify_EdgeCases(t *testing.T) {
	s, err := Simplify(0, 2)
	require.Nil(t, err)
	assert.Equal(t, int64(0), s.Outside)
	assert.Equal(t, int64(1), s.Inside)
	assert.Equal(t, "0", s.Radical(1).String())

	_, err = Simplify(-16, 2)
	require.NotNil(t, err)
	assert.True(t, errors.Is(err, problem.ErrNoRealSolution))
	assert.True(t, err.Terminal())

	_, err = Simplify(8, 1)
	require.NotNil(t, err)
	assert.Equal(t, problem.KindInvalidParameters, err.Kind)
}

func TestSolve_Simplify(t *testing.T) {
	p, s := solve(t, "√72")
	require.Nil(t, s.Error)
	assert.Equal(t, "6√2", s.Answers[0].String())
	assert.Equal(t, "simplified radical", s.Kind)
	assert.True(t, Registry().Verify(p, s).Valid)

	steps, ok := Registry().BaseSteps(p, s)
	require.True(t, ok)
	assert.Equal(t, []string{
		"Given radical", "Find prime factorization", "Identify perfect power factors",
		"Extract perfect powers", "Simplified form",
	}, stepNames(steps))
	assert.Equal(t, "72 = 2^3 × 3^2", steps[1].Expression)
	assert.Equal(t, "6√2", steps[len(steps)-1].FinalAnswer)
}

func TestSolve_HigherIndex(t *testing.T) {
	tests := map[string]string{
		"∛54":              "3∛2",
		"∛-27":             "-3",
		"⁵√64":             "2·⁵√2",
		"∜162":             "3∜2",
		"cube root of 40":  "2∛5",
		"4th root of 32":   "2∜2",
		"2∛16":             "4∛2",
		"fifth root of 96": "2·⁵√3",
	}
	for input, want := range tests {
		t.Run(input, func(t *testing.T) {
			p, s := solve(t, input)
			require.Nil(t, s.Error)
			assert.Equal(t, want, s.Answers[0].String())
			assert.True(t, Registry().Verify(p, s).Valid)
		})
	}
}

func TestSolve_NegativeEvenRootIsTerminal(t *testing.T) {
	p, s := solve(t, "sqrt(-16)")
	require.NotNil(t, s.Error)
	assert.True(t, errors.Is(s.Error, problem.ErrNoRealSolution))
	assert.False(t, s.Failed())
	assert.Equal(t, "no real solution", s.Kind)

	v := Registry().Verify(p, s)
	assert.True(t, v.Valid)
	assert.Equal(t, "terminal-outcome", v.Method)

	steps, _ := Registry().BaseSteps(p, s)
	assert.Equal(t, []string{"Given radical", "No real solution"}, stepNames(steps))
}

func TestSolve_OperandBounds(t *testing.T) {
	for _, input := range []string{
		"√9007199254740993",
		"√9223372036854775783",
		"√99999999999999999999",
		"3√8 + 2√9007199254740993",
		"√1000000000001",
	} {
		t.Run(input, func(t *testing.T) {
			p, s := solve(t, input)
			require.True(t, s.Failed())
			assert.Equal(t, problem.KindInvalidParameters, s.Error.Kind)
			assert.False(t, Registry().Verify(p, s).Valid)
		})
	}

	p, s := solve(t, "√1000000000000")
	require.Nil(t, s.Error)
	assert.Equal(t, "1000000", s.Answers[0].String())
	assert.True(t, Registry().Verify(p, s).Valid)

	p, s = solve(t, "√999999999989")
	require.Nil(t, s.Error)
	assert.Equal(t, "√999999999989", s.Answers[0].String())
	assert.True(t, Registry().Verify(p, s).Valid)

	_, err := Simplify(-MaxOperand-1, 3)
	require.NotNil(t, err)
	assert.Equal(t, problem.KindInvalidParameters, err.Kind)
}

func TestSolve_ExactIntegerParameters(t *testing.T) {
	p, err := Registry().Classify("", "", TypeSimplify, problem.Params{"radicand": int64(999_999_999_999)})
	require.NoError(t, err)
	s := Registry().Solve(p)
	require.Nil(t, s.Error)
	assert.True(t, Registry().Verify(p, s).Valid)

	p, err = Registry().Classify("", "", TypeSimplify, problem.Params{"radicand": 1e17})
	require.NoError(t, err)
	s = Registry().Solve(p)
	require.True(t, s.Failed())
	assert.Equal(t, problem.KindInvalidParameters, s.Error.Kind)
}

func TestSolve_QuadraticFormulaTinyLeadingCoefficient(t *testing.T) {
	p, err := Registry().Classify("", "", TypeQuadraticFormula, problem.Params{"a": 1e-10, "b": 1.0, "c": 1.0})
	require.NoError(t, err)
	s := Registry().Solve(p)
	require.Nil(t, s.Error)
	require.Len(t, s.Answers, 2)
	assert.InDelta(t, -1.0000000001, *s.Answers[1].Real, 1e-15)
	assert.True(t, Registry().Verify(p, s).Valid)
}

func TestSolve_MissingRadicandFails(t *testing.T) {
	p, err := Registry().Classify("", "", TypeSimplify, problem.Params{})
	require.NoError(t, err)
	s := Registry().Solve(p)
	require.True(t, s.Failed())
	assert.True(t, errors.Is(s.Error, problem.ErrInvalidParameters))
	assert.False(t, Registry().Verify(p, s).Valid)
}

func TestVerify_CatchesCorruptedAnswer(t *testing.T) {
	p, s := solve(t, "√72")
	bad := problem.Radical{Coefficient: 3, Radicand: 8, Index: 2}
	s.Answers = []problem.Answer{problem.RadicalAnswer("", bad)}
	v := Registry().Verify(p, s)
	assert.False(t, v.Valid)
	assert.Equal(t, problem.ConfidenceLow, v.Confidence)
}

// ============================================================
// Arithmetic
// ============================================================

func TestSolve_AddLikeRadicals(t *testing.T) {
	p, s := solve(t, "3√8 + 2√2")
	require.Nil(t, s.Error)
	require.Len(t, s.Answers, 1)
	assert.Equal(t, "8√2", s.Answers[0].String())
	assert.Equal(t, "combined like radicals", s.Kind)
	assert.True(t, Registry().Verify(p, s).Valid)

	steps, _ := Registry().BaseSteps(p, s)
	assert.Equal(t, "Combine like radicals", steps[len(steps)-1].Name)
	assert.Equal(t, "8√2", steps[len(steps)-1].FinalAnswer)
}

func TestSolve_SubtractLikeRadicals(t *testing.T) {
	p, s := solve(t, "√50 - √18")
	require.Nil(t, s.Error)
	assert.Equal(t, "2√2", s.Answers[0].String())
	assert.True(t, Registry().Verify(p, s).Valid)
}

func TestSolve_UnlikeRadicalsStaySeparate(t *testing.T) {
	p, s := solve(t, "√2 + √3")
	require.Nil(t, s.Error)
	require.Len(t, s.Answers, 2)
	assert.Equal(t, "unlike radicals", s.Kind)
	assert.Equal(t, "√2 + √3", s.Summary)
	assert.True(t, Registry().Verify(p, s).Valid)

	steps, _ := Registry().BaseSteps(p, s)
	assert.Equal(t, "Identify unlike radicals", steps[len(steps)-1].Name)
}

func TestSolve_Multiply(t *testing.T) {
	p, s := solve(t, "2√3 × 4√6")
	require.Nil(t, s.Error)
	assert.Equal(t, "24√2", s.Answers[0].String())
	assert.True(t, Registry().Verify(p, s).Valid)
}

func TestSolve_Divide(t *testing.T) {
	tests := map[string]string{
		"6√2 / 2√3": "√6",
		"√50 / √2":  "5",
		"4√3 ÷ √2":  "2√6",
		"√5 / 3√2":  "(√10)/6",
	}
	for input, want := range tests {
		t.Run(input, func(t *testing.T) {
			p, s := solve(t, input)
			require.Nil(t, s.Error)
			assert.Equal(t, want, s.Answers[0].String())
			assert.True(t, Registry().Verify(p, s).Valid)
		})
	}
}

func TestSolve_DivideByZero(t *testing.T) {
	p, err := Registry().Classify("", "", TypeDivide, problem.Params{"radicand1": 2, "radicand2": 0})
	require.NoError(t, err)
	s := Registry().Solve(p)
	assert.True(t, s.Failed())
	assert.Equal(t, problem.KindInvalidParameters, s.Error.Kind)
}

func TestSolve_Rationalize(t *testing.T) {
	tests := map[string]string{
		"6/√3":             "2√3",
		"rationalize 5/√2": "(5√2)/2",
		"1/√8":             "(√2)/4",
		"10/2√5":           "√5",
	}
	for input, want := range tests {
		t.Run(input, func(t *testing.T) {
			p, s := solve(t, input)
			require.Nil(t, s.Error)
			assert.Equal(t, want, s.Answers[0].String())
			assert.True(t, Registry().Verify(p, s).Valid)

			steps, _ := Registry().BaseSteps(p, s)
			assert.Equal(t, "Reduce the fraction", steps[len(steps)-1].Name)
		})
	}
}

// ============================================================
// Rational exponents
// ============================================================

func TestSolve_RationalExponent(t *testing.T) {
	tests := map[string]string{
		"8^(2/3)":    "4",
		"16^(3/4)":   "8",
		"2^(3/2)":    "2√2",
		"32^(1/5)":   "2",
		"5^(4/2)":    "25",
		"-8^(1/3)":   "-2",
		"(-8)^(1/3)": "-2",
		"(-8)^(2/3)": "4",
	}
	for input, want := range tests {
		t.Run(input, func(t *testing.T) {
			p, s := solve(t, input)
			require.Nil(t, s.Error)
			assert.Equal(t, want, s.Answers[0].String())
			assert.True(t, Registry().Verify(p, s).Valid)
		})
	}
}

func TestSolve_RationalExponentEdgeCases(t *testing.T) {
	_, s := solve(t, "-4^(1/2)")
	require.NotNil(t, s.Error)
	assert.True(t, errors.Is(s.Error, problem.ErrNoRealSolution))

	p, err := Registry().Classify("", "", TypeRationalExponent,
		problem.Params{"base": 4, "numerator": -1, "denominator": 2})
	require.NoError(t, err)
	s = Registry().Solve(p)
	assert.True(t, s.Failed())
	assert.Equal(t, problem.KindInvalidParameters, s.Error.Kind)
}

// ============================================================
// Applications
// ============================================================

func TestSolve_Pythagorean(t *testing.T) {
	p, s := solve(t, "right triangle with legs 3 and 4")
	require.Nil(t, s.Error)
	assert.Equal(t, "5", s.Answers[0].String())
	assert.Equal(t, "c", s.Answers[0].Label)
	assert.True(t, Registry().Verify(p, s).Valid)

	steps, _ := Registry().BaseSteps(p, s)
	assert.Equal(t, []string{
		"Pythagorean Theorem", "Substitute known values", "Calculate squares",
		"Add the squares", "Take square root",
	}, stepNames(steps))

	p, s = solve(t, "right triangle with a = 3 and c = 5")
	require.Nil(t, s.Error)
	assert.Equal(t, "b", s.Answers[0].Label)
	assert.Equal(t, "4", s.Answers[0].String())
	assert.True(t, Registry().Verify(p, s).Valid)

	_, s = solve(t, "right triangle with legs 2 and 4")
	assert.Equal(t, "2√5", s.Answers[0].String())
}

func TestSolve_PythagoreanInvalidTriangle(t *testing.T) {
	p, s := solve(t, "right triangle with a = 5 and c = 3")
	require.NotNil(t, s.Error)
	assert.True(t, errors.Is(s.Error, problem.ErrNoRealSolution))
	assert.True(t, Registry().Verify(p, s).Valid)

	steps, _ := Registry().BaseSteps(p, s)
	assert.Equal(t, "Subtract the squares", steps[3].Name)
	assert.Equal(t, "No real solution", steps[len(steps)-1].Name)

	_, s = solve(t, "right triangle with a = 5 and c = 5")
	assert.True(t, s.Failed())
}

func TestSolve_Distance(t *testing.T) {
	p, s := solve(t, "distance between (1, 2) and (4, 6)")
	require.Nil(t, s.Error)
	assert.Equal(t, "5", s.Answers[0].String())
	assert.True(t, Registry().Verify(p, s).Valid)

	p, s = solve(t, "distance from (0, 0) to (2, -2)")
	require.Nil(t, s.Error)
	assert.Equal(t, "2√2", s.Answers[0].String())
	assert.True(t, Registry().Verify(p, s).Valid)

	steps, _ := Registry().BaseSteps(p, s)
	assert.Len(t, steps, 5)
	assert.Equal(t, "d = 2√2", steps[4].FinalAnswer)
}

func TestSolve_QuadraticFormula(t *testing.T) {
	p, s := solve(t, "x² + 4x + 1 = 0")
	require.Nil(t, s.Error)
	require.Len(t, s.Answers, 2)
	assert.Equal(t, "-2 - √3", s.Answers[0].Text)
	assert.Equal(t, "-2 + √3", s.Answers[1].Text)
	assert.Equal(t, "x = -2 ± √3", s.Summary)
	assert.InDelta(t, -3.7320508, *s.Answers[0].Real, 1e-6)
	assert.True(t, Registry().Verify(p, s).Valid)

	steps, _ := Registry().BaseSteps(p, s)
	assert.Equal(t, []string{
		"Identify coefficients", "Calculate discriminant", "Simplify the discriminant radical",
		"Apply quadratic formula", "Reduce the solutions",
	}, stepNames(steps))
}

func TestSolve_QuadraticFormulaVariants(t *testing.T) {
	_, s := solve(t, "x^2 - 5x + 6 = 0")
	require.Nil(t, s.Error)
	assert.Equal(t, "2", s.Answers[0].Text)
	assert.Equal(t, "3", s.Answers[1].Text)

	_, s = solve(t, "x^2 - 2x + 1 = 0")
	require.Nil(t, s.Error)
	assert.Equal(t, "repeated root", s.Kind)
	assert.Equal(t, "1", s.Answers[0].Text)

	_, s = solve(t, "2x² - 4x - 1 = 0")
	require.Nil(t, s.Error)
	assert.Equal(t, "(2 - √6)/2", s.Answers[0].Text)

	_, s = solve(t, "-x² + 2 = 0")
	require.Nil(t, s.Error)
	assert.Equal(t, "-√2", s.Answers[0].Text)
	assert.Equal(t, "√2", s.Answers[1].Text)
}

func TestSolve_QuadraticFormulaNoRealRoots(t *testing.T) {
	p, s := solve(t, "x² + x + 1 = 0")
	require.NotNil(t, s.Error)
	assert.True(t, errors.Is(s.Error, problem.ErrNoRealSolution))
	assert.False(t, s.Failed())
	assert.True(t, Registry().Verify(p, s).Valid)

	steps, _ := Registry().BaseSteps(p, s)
	assert.Equal(t, "No real solution", steps[len(steps)-1].Name)
}

func TestSolve_QuadraticFormulaDegenerate(t *testing.T) {
	p, err := Registry().Classify("", "", TypeQuadraticFormula, problem.Params{"a": 0, "b": 2, "c": 1})
	require.NoError(t, err)
	s := Registry().Solve(p)
	assert.True(t, errors.Is(s.Error, problem.ErrDegenerateEquation))
}
