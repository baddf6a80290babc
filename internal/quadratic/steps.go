package quadratic

import (
	"fmt"
	"strings"

	"github.com/njchilds90/goworkbook/internal/numeric"
	"github.com/njchilds90/goworkbook/internal/poly"
	"github.com/njchilds90/goworkbook/internal/problem"
)

var num = numeric.Format

// paren wraps negatives for substitution into a formula.
func paren(x float64) string {
	if x < 0 {
		return "(" + num(x) + ")"
	}
	return num(x)
}

func finalAnswer(s problem.Solution) string {
	parts := make([]string, 0, len(s.Answers))
	for _, a := range s.Answers {
		parts = append(parts, a.Label+" = "+a.String())
	}
	return strings.Join(parts, ", ")
}

// ============================================================
// Formula and standard form
// ============================================================

func formulaSteps(an Analysis, s problem.Solution) []problem.Step {
	out := []problem.Step{{
		Name:        "Given equation",
		Description: "Write the equation in standard form",
		Expression:  equation(an.A, an.B, an.C, "= 0"),
		Reasoning:   "Every term is on one side, ordered by decreasing power",
	}, {
		Name:        "Identify coefficients",
		Description: "Read a, b and c from ax² + bx + c = 0",
		Expression:  fmt.Sprintf("a = %s, b = %s, c = %s", num(an.A), num(an.B), num(an.C)),
	}, {
		Name:        "Calculate discriminant",
		Description: "Compute b² - 4ac",
		Expression: fmt.Sprintf("Δ = %s² - 4·%s·%s = %s",
			paren(an.B), paren(an.A), paren(an.C), num(an.Discriminant)),
		After:     num(an.Discriminant),
		Reasoning: "The sign of Δ decides how many real roots there are: " + an.RootType,
		Rule:      "Δ = b² - 4ac",
	}, {
		Name:        "Apply quadratic formula",
		Description: "Substitute into x = (-b ± √Δ)/2a",
		Expression:  fmt.Sprintf("x = (%s ± √%s)/%s", num(-an.B), paren(an.Discriminant), num(2*an.A)),
		Rule:        "x = (-b ± √(b² - 4ac))/2a",
	}}
	last := problem.Step{FinalAnswer: finalAnswer(s)}
	switch an.RootType {
	case TwoRealRoots:
		last.Name = "Calculate both solutions"
		last.Description = "Evaluate the + and - branches separately"
		last.Expression = fmt.Sprintf("x₁ = %s, x₂ = %s", num(an.Roots[0]), num(an.Roots[1]))
	case RepeatedRoot:
		last.Name = "Calculate solution"
		last.Description = "With Δ = 0 both branches give the same root"
		last.Expression = fmt.Sprintf("x = %s/%s = %s", num(-an.B), num(2*an.A), num(an.Roots[0]))
	default:
		last.Name = "Complex solutions"
		last.Description = "Write √Δ with i = √-1"
		last.Expression = "x = " + strings.Join(an.Complex, ", x = ")
		last.Reasoning = "A negative discriminant gives a conjugate pair p ± qi"
	}
	return append(out, last)
}

func stepsFormula(_ problem.Problem, s problem.Solution) []problem.Step {
	an, _ := s.Detail.(Analysis)
	return formulaSteps(an, s)
}

func stepsStandard(_ problem.Problem, s problem.Solution) []problem.Step {
	an, _ := s.Detail.(Analysis)
	out := formulaSteps(an, s)
	// The vertex follows the roots, so the answer stays on the root step.
	vertex := problem.Step{
		Name:        "Find vertex",
		Description: "The vertex lies on the axis of symmetry x = -b/2a",
		Expression:  fmt.Sprintf("x = %s/%s = %s, y = %s", num(-an.B), num(2*an.A), num(an.Vertex.X), num(an.Vertex.Y)),
		After:       an.Vertex.String(),
		Reasoning:   fmt.Sprintf("The parabola opens %s, so the vertex is its %s", opening(an.A), extremum(an.A)),
	}
	return append(out, vertex)
}

func opening(a float64) string {
	if a > 0 {
		return "upward"
	}
	return "downward"
}

func extremum(a float64) string {
	if a > 0 {
		return "minimum"
	}
	return "maximum"
}

// ============================================================
// Completing the square
// ============================================================

func stepsCompletingSquare(_ problem.Problem, s problem.Solution) []problem.Step {
	d, _ := s.Detail.(CompletedSquare)
	monic := poly.Of(1, d.B/d.A, 0).String()
	shift := d.Half * d.Half
	out := []problem.Step{{
		Name:        "Original equation",
		Description: "Start from standard form",
		Expression:  equation(d.A, d.B, d.C, "= 0"),
	}, {
		Name:        "Factor out coefficient of x²",
		Description: "Make the x² coefficient 1 inside the bracket",
		Expression:  fmt.Sprintf("%s(%s) %s = 0", leadString(d.A), monic, numeric.Signed(d.C)),
		Reasoning:   "Completing the square needs a leading coefficient of 1",
	}, {
		Name:        "Complete the square",
		Description: fmt.Sprintf("Add and subtract (b/2a)² = %s inside the bracket", num(shift)),
		Expression:  fmt.Sprintf("%s(%s %s %s) %s = 0", leadString(d.A), monic, numeric.Signed(shift), numeric.Signed(-shift), numeric.Signed(d.C)),
		Rule:        "x² + px + (p/2)² = (x + p/2)²",
	}, {
		Name:        "Simplify to vertex form",
		Description: "Collect the perfect square and the constants",
		Expression:  d.VertexForm + " = 0",
		After:       d.VertexForm,
		Reasoning:   fmt.Sprintf("The vertex is (h, k) = %s", Point{d.H, d.K}),
	}}
	solve := problem.Step{
		Name:        "Solve for x",
		Description: "Isolate the square and take square roots",
		FinalAnswer: finalAnswer(s),
	}
	switch d.RootType {
	case ComplexRoots:
		solve.Expression = fmt.Sprintf("(x - %s)² = %s < 0, so x = %s", paren(d.H), num(d.RHS), strings.Join(d.Complex, " or "))
		solve.Reasoning = "A square equal to a negative number needs imaginary roots"
	default:
		solve.Expression = fmt.Sprintf("(x - %s)² = %s, so x = %s ± √%s", paren(d.H), num(d.RHS), num(d.H), num(d.RHS))
	}
	return append(out, solve)
}

// ============================================================
// Factoring
// ============================================================

func stepsFactoring(p problem.Problem, s problem.Solution) []problem.Step {
	d, _ := s.Detail.(Factorization)
	check := problem.Step{
		Name:        "Check for factoring possibility",
		Description: "Look for integers with product ac and sum b",
		Expression: fmt.Sprintf("a = %s, b = %s, c = %s",
			num(p.Params.Float("a", 1)), num(p.Params.Float("b", 0)), num(p.Params.Float("c", 0))),
	}
	if s.Error != nil {
		none := problem.Step{
			Name:        "Factoring not possible",
			Description: s.Error.Message,
			FinalAnswer: "not factorable over the integers",
			Reasoning:   "Use the quadratic formula or complete the square instead",
		}
		if d.Complex != "" {
			none.Expression = d.Complex
		}
		return []problem.Step{check, none}
	}
	out := []problem.Step{check}
	if d.Content != 1 {
		out[0].Expression += fmt.Sprintf("; common factor %d", d.Content)
	}
	a, b, c := d.A/d.Content, d.B/d.Content, d.C/d.Content
	if d.Method == "simple" {
		out = append(out, problem.Step{
			Name:        "Split middle term",
			Description: fmt.Sprintf("Find two numbers that multiply to %d and add to %d", c, b),
			Expression:  fmt.Sprintf("%d × %d = %d, %d + %d = %d", d.Split[0], d.Split[1], c, d.Split[0], d.Split[1], b),
		})
	} else {
		out = append(out, problem.Step{
			Name:        "Split middle term",
			Description: fmt.Sprintf("AC method: find two numbers that multiply to ac = %d and add to %d", a*c, b),
			Expression: fmt.Sprintf("%dx² %s %s %s", a,
				numeric.Signed(float64(d.Split[0]))+"x", numeric.Signed(float64(d.Split[1]))+"x", numeric.Signed(float64(c))),
			Rule: "ax² + bx + c = ax² + ix + jx + c with ij = ac and i + j = b",
		})
	}
	out = append(out, problem.Step{
		Name:        "Factor the expression",
		Description: "Group the terms and take out the common binomial",
		Expression:  d.Factored,
		After:       d.Factored,
	})
	zeros := make([]string, 0, 2)
	for _, l := range d.Factors {
		zeros = append(zeros, fmt.Sprintf("%s = 0 → x = %s", l, num(l.Root())))
	}
	if d.Factors[0] == d.Factors[1] {
		zeros = zeros[:1]
	}
	return append(out, problem.Step{
		Name:        "Apply zero product property",
		Description: "A product is zero only if a factor is zero",
		Expression:  strings.Join(zeros, "; "),
		Rule:        "pq = 0 ⇒ p = 0 or q = 0",
		FinalAnswer: finalAnswer(s),
	})
}

// ============================================================
// Parabola features
// ============================================================

func stepsVertexForm(_ problem.Problem, s problem.Solution) []problem.Step {
	d, _ := s.Detail.(VertexAnalysis)
	an := d.Analysis
	intercepts := "none"
	if len(an.Roots) > 0 {
		xs := make([]string, len(an.Roots))
		for i, r := range an.Roots {
			xs[i] = num(r)
		}
		intercepts = "x = " + strings.Join(xs, ", ")
	}
	return []problem.Step{{
		Name:        "Given vertex form",
		Description: "Read a, h and k from a(x - h)² + k",
		Expression:  "y = " + d.VertexForm,
		After:       fmt.Sprintf("a = %s, h = %s, k = %s", num(d.A), num(d.H), num(d.K)),
	}, {
		Name:        "Expand to standard form",
		Description: "Square the binomial and distribute a",
		Expression:  "y = " + d.Standard,
		Rule:        "a(x - h)² + k = ax² - 2ahx + ah² + k",
	}, {
		Name:        "Find intercepts",
		Description: "Set y = 0 for x-intercepts and x = 0 for the y-intercept",
		Expression:  fmt.Sprintf("x-intercepts: %s; y-intercept: %s", intercepts, num(an.C)),
	}, {
		Name:        "Describe the parabola",
		Description: "Direction, axis of symmetry and transformations of y = x²",
		Expression:  fmt.Sprintf("opens %s, axis x = %s, range %s", opening(d.A), num(d.H), an.Parabola.Range),
		Reasoning:   strings.Join(an.Parabola.Transformations, "; "),
		FinalAnswer: finalAnswer(s),
	}}
}

func stepsFunctionAnalysis(_ problem.Problem, s problem.Solution) []problem.Step {
	d, _ := s.Detail.(FunctionAnalysis)
	return []problem.Step{{
		Name:        "Given function",
		Description: "A polynomial function is defined for every real x",
		Expression:  "f(x) = " + poly.Of(d.A, d.B, d.C).String(),
		After:       "domain " + d.Domain,
	}, {
		Name:        "Find vertex",
		Description: "The vertex lies on the axis of symmetry x = -b/2a",
		Expression:  fmt.Sprintf("x = %s, f(x) = %s", num(d.Vertex.X), num(d.Vertex.Y)),
		After:       d.Vertex.String(),
		Reasoning:   fmt.Sprintf("The parabola opens %s, so the vertex is a %s", opening(d.A), d.Extremum.Kind),
	}, {
		Name:        "Determine range",
		Description: "The range starts or ends at the vertex height",
		Expression:  "range " + d.Range,
	}, {
		Name:        "Monotonic intervals",
		Description: "The function changes direction at the vertex",
		Expression:  fmt.Sprintf("increasing on %s, decreasing on %s", d.Increasing, d.Decreasing),
	}, {
		Name:        "End behavior",
		Description: "The leading term dominates for large |x|",
		Expression:  strings.Join(d.EndBehavior[:], "; "),
		FinalAnswer: finalAnswer(s),
	}}
}

func stepsDiscriminant(_ problem.Problem, s problem.Solution) []problem.Step {
	d, _ := s.Detail.(DiscriminantAnalysis)
	return []problem.Step{{
		Name:        "Discriminant formula",
		Description: "The discriminant is the expression under the square root of the quadratic formula",
		Expression:  fmt.Sprintf("a = %s, b = %s, c = %s", num(d.A), num(d.B), num(d.C)),
		Rule:        "Δ = b² - 4ac",
	}, {
		Name:        "Discriminant value",
		Description: "Substitute and evaluate",
		Expression:  fmt.Sprintf("Δ = %s² - 4·%s·%s = %s", paren(d.B), paren(d.A), paren(d.C), num(d.Discriminant)),
		After:       num(d.Discriminant),
	}, {
		Name:        "Interpretation",
		Description: "Read the number and kind of roots from the sign of Δ",
		Expression:  d.RootType + ": " + d.Nature,
		Reasoning:   d.Graph,
		FinalAnswer: finalAnswer(s),
	}}
}

// ============================================================
// Applications
// ============================================================

func stepsProjectile(_ problem.Problem, s problem.Solution) []problem.Step {
	d, _ := s.Detail.(Projectile)
	out := []problem.Step{{
		Name:        "Given height function",
		Description: fmt.Sprintf("Height in %s after t seconds", d.Units),
		Expression:  d.Function(),
		Reasoning:   "The t² coefficient is half the gravitational acceleration, so the parabola opens downward",
	}, {
		Name:        "Time of maximum height",
		Description: "The peak is at the vertex t = -b/2a",
		Expression:  fmt.Sprintf("t = %s/%s = %s s", num(-d.B), num(2*d.A), num(d.PeakTime)),
	}, {
		Name:        "Maximum height",
		Description: "Evaluate h at the peak time",
		Expression:  fmt.Sprintf("h(%s) = %s %s", num(d.PeakTime), num(d.PeakHeight), d.Units),
	}}
	if s.Error != nil {
		return append(out, problem.Step{
			Name:        "No real solution",
			Description: s.Error.Message,
			FinalAnswer: "No real solution",
		})
	}
	return append(out, problem.Step{
		Name:        "Landing time",
		Description: "Solve h(t) = 0 and keep the non-negative root",
		Expression:  fmt.Sprintf("%s = 0 → t = %s s", poly.Of(d.A, d.B, d.C).Format("t"), num(d.Landing)),
		Reasoning:   "Negative times lie before the launch",
		FinalAnswer: finalAnswer(s),
	})
}

func stepsInverse(_ problem.Problem, s problem.Solution) []problem.Step {
	d, _ := s.Detail.(Construction)
	return []problem.Step{{
		Name:        "Given information",
		Description: "The roots and the leading coefficient fix the quadratic",
		Expression:  fmt.Sprintf("r₁ = %s, r₂ = %s, a = %s", num(d.Roots[0]), num(d.Roots[1]), num(d.A)),
	}, {
		Name:        "Factor form construction",
		Description: "Each root r contributes a factor (x - r)",
		Expression:  d.FactorForm + " = 0",
		Rule:        "a(x - r₁)(x - r₂) = 0",
	}, {
		Name:        "Apply Vieta's formulas",
		Description: "Sum and product of the roots give b and c",
		Expression: fmt.Sprintf("r₁ + r₂ = %s, r₁r₂ = %s; b = -a(r₁ + r₂) = %s, c = a·r₁r₂ = %s",
			num(d.Sum), num(d.Product), num(d.B), num(d.C)),
		Rule: "r₁ + r₂ = -b/a, r₁r₂ = c/a",
	}, {
		Name:        "Standard form",
		Description: "Write the expanded equation",
		Expression:  d.Equation,
		FinalAnswer: finalAnswer(s),
	}}
}

func stepsInequality(_ problem.Problem, s problem.Solution) []problem.Step {
	d, _ := s.Detail.(InequalitySolution)
	given := problem.Step{
		Name:        "Given inequality",
		Description: "Compare the quadratic with zero",
		Expression:  d.Inequality(),
	}
	if d.Normalized {
		given.Reasoning = "Multiplying by -1 made the leading coefficient positive and reversed the inequality"
	}
	critical := "none: the parabola does not meet the x-axis"
	if len(d.Roots) > 0 {
		xs := make([]string, len(d.Roots))
		for i, r := range d.Roots {
			xs[i] = "x = " + num(r)
		}
		critical = strings.Join(xs, ", ")
	}
	return []problem.Step{given, {
		Name:        "Find critical points",
		Description: "Solve the related equation",
		Expression:  critical,
	}, {
		Name:        "Test intervals",
		Description: "The parabola opens upward: it is negative between the roots and positive outside them",
		Expression:  fmt.Sprintf("f(x) %s 0 on the solution set", d.Relation.Symbol()),
		Reasoning:   boundaryNote(d.Relation),
	}, {
		Name:        "Solution set",
		Description: d.Set,
		Expression:  d.Notation,
		FinalAnswer: d.Notation,
	}}
}

func boundaryNote(rel poly.Relation) string {
	if rel.Strict() {
		return "The inequality is strict, so the critical points are excluded"
	}
	return "Equality is allowed, so the critical points are included"
}

func stepsBiquadratic(_ problem.Problem, s problem.Solution) []problem.Step {
	d, _ := s.Detail.(Biquadratic)
	us := d.U.Complex
	if len(d.U.Roots) > 0 {
		us = make([]string, len(d.U.Roots))
		for i, u := range d.U.Roots {
			us[i] = num(u)
		}
	}
	return []problem.Step{{
		Name:        "Identify biquadratic form",
		Description: "Only even powers of x appear",
		Expression:  poly.Of(d.A, 0, d.B, 0, d.C).String() + " = 0",
	}, {
		Name:        "Make substitution",
		Description: "Let u = x² to get a quadratic in u",
		Expression:  poly.Of(d.A, d.B, d.C).Format("u") + " = 0",
		Rule:        "x⁴ = (x²)² = u²",
	}, {
		Name:        "Solve for u",
		Description: "Apply the quadratic formula in u",
		Expression:  "u = " + strings.Join(us, ", u = "),
		Reasoning:   d.U.RootType,
	}, {
		Name:        "Convert back to x",
		Description: "Each u gives x = ±√u",
		Expression:  s.Summary,
		Reasoning:   "A negative or complex u gives complex values of x",
		FinalAnswer: finalAnswer(s),
	}}
}
