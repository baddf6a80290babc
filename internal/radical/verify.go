package radical

import (
	"fmt"
	"math"

	"github.com/njchilds90/goworkbook/internal/numeric"
	"github.com/njchilds90/goworkbook/internal/problem"
)

// The verifiers below recompute each answer from the problem's parameters
// with floating-point arithmetic, independently of the integer paths the
// solvers take.

// realRoot is the real index-th root of n; odd roots keep the sign.
func realRoot(n float64, index int64) float64 {
	v := math.Pow(math.Abs(n), 1/float64(index))
	if n < 0 {
		return -v
	}
	return v
}

func terminal(name string, holds bool) problem.Verification {
	return problem.Verify("terminal-outcome", 0, problem.Holds(name, holds, ""))
}

// answerSum adds the decimal values of every answer.
func answerSum(s problem.Solution) (float64, bool) {
	if len(s.Answers) == 0 {
		return 0, false
	}
	var sum float64
	for _, a := range s.Answers {
		if a.Real == nil {
			return 0, false
		}
		sum += *a.Real
	}
	return sum, true
}

func radicalAnswer(s problem.Solution) (problem.Radical, bool) {
	if len(s.Answers) != 1 || s.Answers[0].Radical == nil {
		return problem.Radical{}, false
	}
	return *s.Answers[0].Radical, true
}

func missing(what string) problem.Verification {
	return problem.Verify("recompute", numeric.ValueTolerance, problem.Holds(what, false, "answer missing"))
}

func simplest(r problem.Radical) problem.Check {
	idx := r.Index
	if idx == 0 {
		idx = 2
	}
	return problem.Holds("no perfect power left under the radical", numeric.IsFullySimplified(r.Radicand, idx), r.String())
}

func reduced(r problem.Radical) problem.Check {
	ok := r.Denominator <= 1 || numeric.GCD(r.Coefficient, r.Denominator) == 1
	return problem.Holds("fraction in lowest terms", ok, r.String())
}

func verifySimplify(p problem.Problem, s problem.Solution) problem.Verification {
	index := int64(2)
	if p.Type == TypeHigherIndex {
		index = 3
	}
	n := p.Params.Int("radicand", 0)
	index = p.Params.Int("index", index)
	coeff := p.Params.Int("coefficient", 1)
	if s.Error != nil {
		return terminal("even root of a negative radicand", n < 0 && index%2 == 0)
	}
	r, ok := radicalAnswer(s)
	if !ok {
		return missing("simplified radical")
	}

	checks := []problem.Check{
		problem.Compare("decimal value", float64(coeff)*realRoot(float64(n), index), r.Float(), numeric.ValueTolerance),
		simplest(r),
	}
	if coeff != 0 && r.Coefficient%coeff == 0 {
		outside := r.Coefficient / coeff
		pow, ok := numeric.CheckedPow(outside, index)
		product, ok2 := numeric.CheckedMul(pow, r.Radicand)
		checks = append(checks, problem.Holds(
			fmt.Sprintf("outside^%d × inside = radicand", index),
			ok && ok2 && product == n,
			fmt.Sprintf("%d^%d × %d = %d", outside, index, r.Radicand, product)))
	}
	return problem.Verify("power product", numeric.ValueTolerance, checks...)
}

func verifyAddSubtract(p problem.Problem, s problem.Solution) problem.Verification {
	c1, r1 := float64(p.Params.Int("coefficient1", 1)), float64(p.Params.Int("radicand1", 0))
	c2, r2 := float64(p.Params.Int("coefficient2", 1)), float64(p.Params.Int("radicand2", 0))
	if s.Error != nil {
		return terminal("negative radicand under a square root", r1 < 0 || r2 < 0)
	}
	if p.Params.String("operator", "+") == "-" {
		c2 = -c2
	}
	got, ok := answerSum(s)
	if !ok {
		return missing("sum")
	}
	checks := []problem.Check{
		problem.Compare("decimal value", c1*math.Sqrt(r1)+c2*math.Sqrt(r2), got, numeric.ValueTolerance),
	}
	for _, a := range s.Answers {
		if a.Radical != nil {
			checks = append(checks, simplest(*a.Radical))
		}
	}
	if len(s.Answers) == 2 && s.Answers[0].Radical != nil && s.Answers[1].Radical != nil {
		checks = append(checks, problem.Holds("terms are unlike radicals",
			s.Answers[0].Radical.Radicand != s.Answers[1].Radical.Radicand, ""))
	}
	return problem.Verify("decimal recomputation", numeric.ValueTolerance, checks...)
}

func verifyMultiply(p problem.Problem, s problem.Solution) problem.Verification {
	c1, r1 := float64(p.Params.Int("coefficient1", 1)), float64(p.Params.Int("radicand1", 0))
	c2, r2 := float64(p.Params.Int("coefficient2", 1)), float64(p.Params.Int("radicand2", 0))
	if s.Error != nil {
		return terminal("negative radicand under a square root", r1 < 0 || r2 < 0)
	}
	r, ok := radicalAnswer(s)
	if !ok {
		return missing("product")
	}
	c := float64(r.Coefficient)
	return problem.Verify("decimal recomputation", numeric.ValueTolerance,
		problem.Compare("decimal value", c1*math.Sqrt(r1)*c2*math.Sqrt(r2), r.Float(), numeric.ValueTolerance),
		problem.Compare("squared value", c1*c1*r1*c2*c2*r2, c*c*float64(r.Radicand), numeric.ValueTolerance),
		simplest(r),
	)
}

func verifyDivide(p problem.Problem, s problem.Solution) problem.Verification {
	c1, r1 := float64(p.Params.Int("coefficient1", 1)), float64(p.Params.Int("radicand1", 0))
	c2, r2 := float64(p.Params.Int("coefficient2", 1)), float64(p.Params.Int("radicand2", 0))
	if s.Error != nil {
		return terminal("negative radicand under a square root", r1 < 0 || r2 < 0)
	}
	r, ok := radicalAnswer(s)
	if !ok {
		return missing("quotient")
	}
	return problem.Verify("decimal recomputation", numeric.ValueTolerance,
		problem.Compare("decimal value", c1*math.Sqrt(r1)/(c2*math.Sqrt(r2)), r.Float(), numeric.ValueTolerance),
		simplest(r),
		reduced(r),
	)
}

func verifyRationalize(p problem.Problem, s problem.Solution) problem.Verification {
	n := float64(p.Params.Int("numerator", 0))
	c := float64(p.Params.Int("coefficient", 1))
	rad := float64(p.Params.Int("radicand", 0))
	if s.Error != nil {
		return terminal("negative radicand under a square root", rad < 0)
	}
	r, ok := radicalAnswer(s)
	if !ok {
		return missing("rationalized quotient")
	}
	return problem.Verify("decimal recomputation", numeric.ValueTolerance,
		problem.Compare("decimal value", n/(c*math.Sqrt(rad)), r.Float(), numeric.ValueTolerance),
		simplest(r),
		reduced(r),
	)
}

func verifyRationalExponent(p problem.Problem, s problem.Solution) problem.Verification {
	b := p.Params.Int("base", 0)
	num, den := reduce(p.Params.Int("numerator", 0), p.Params.Int("denominator", 1))
	if s.Error != nil {
		return terminal("even root of a negative power", b < 0 && num%2 != 0 && den%2 == 0)
	}
	r, ok := radicalAnswer(s)
	if !ok {
		return missing("radical form")
	}
	want := math.Pow(math.Abs(float64(b)), float64(num)/float64(den))
	if b < 0 && num%2 != 0 {
		want = -want
	}
	checks := []problem.Check{problem.Compare("decimal value", want, r.Float(), numeric.ValueTolerance)}
	if den > 1 {
		checks = append(checks, simplest(r))
	}
	return problem.Verify("decimal recomputation", numeric.ValueTolerance, checks...)
}

func verifyPythagorean(p problem.Problem, s problem.Solution) problem.Verification {
	a, b, c := p.Params.Float("a", 0), p.Params.Float("b", 0), p.Params.Float("c", 0)
	hyp := p.Params.Has("a") && p.Params.Has("b")
	if s.Error != nil {
		leg := a
		if !p.Params.Has("a") {
			leg = b
		}
		return terminal("leg longer than the hypotenuse", !hyp && leg > c)
	}
	x, ok := answerSum(s)
	if !ok {
		return missing("side")
	}
	var check problem.Check
	switch {
	case hyp:
		check = problem.Compare("a² + b² = c²", a*a+b*b, x*x, numeric.ValueTolerance)
	case p.Params.Has("a"):
		check = problem.Compare("a² + b² = c²", a*a+x*x, c*c, numeric.ValueTolerance)
	default:
		check = problem.Compare("a² + b² = c²", x*x+b*b, c*c, numeric.ValueTolerance)
	}
	return problem.Verify("substitution", numeric.ValueTolerance, check, problem.Holds("positive length", x > 0, ""))
}

func verifyDistance(p problem.Problem, s problem.Solution) problem.Verification {
	dx := p.Params.Float("x2", 0) - p.Params.Float("x1", 0)
	dy := p.Params.Float("y2", 0) - p.Params.Float("y1", 0)
	d, ok := answerSum(s)
	if !ok {
		return missing("distance")
	}
	return problem.Verify("substitution", numeric.ValueTolerance,
		problem.Compare("d² = Δx² + Δy²", dx*dx+dy*dy, d*d, numeric.ValueTolerance),
		problem.Holds("non-negative length", d >= 0, ""))
}

func verifyQuadraticFormula(p problem.Problem, s problem.Solution) problem.Verification {
	a, b, c := p.Params.Float("a", 0), p.Params.Float("b", 0), p.Params.Float("c", 0)
	disc := b*b - 4*a*c
	if s.Error != nil {
		return terminal("negative discriminant", disc < 0 && !numeric.IsZero(disc))
	}
	roots := s.Reals()
	if len(roots) == 0 {
		return missing("roots")
	}
	var checks []problem.Check
	for i, x := range roots {
		scale := math.Max(1, math.Abs(a*x*x)+math.Abs(b*x)+math.Abs(c))
		checks = append(checks, problem.Residual(fmt.Sprintf("f(x%d) = 0", i+1), (a*x*x+b*x+c)/scale, numeric.RootTolerance))
	}
	want := 2
	if numeric.IsZero(disc) {
		want = 1
	}
	checks = append(checks, problem.Holds("root count matches the discriminant", len(roots) == want,
		fmt.Sprintf("Δ = %s", numeric.Format(disc))))
	return problem.Verify("substitution", numeric.RootTolerance, checks...)
}
