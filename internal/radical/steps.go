package radical

import (
	"fmt"
	"strings"

	"github.com/njchilds90/goworkbook/internal/numeric"
	"github.com/njchilds90/goworkbook/internal/problem"
)

func noRealStep(s problem.Solution, reasoning string) problem.Step {
	return problem.Step{
		Name:        "No real solution",
		Description: s.Error.Message,
		Reasoning:   reasoning,
		FinalAnswer: "No real solution",
	}
}

func extractionRule(index int64) string {
	if index == 2 {
		return "√(a²b) = a√b"
	}
	sym := problem.RootSymbol(index)
	return fmt.Sprintf("%s(a^%d·b) = a·%sb", sym, index, sym)
}

// extractionSteps explains factoring and extracting for one simplification.
func extractionSteps(s Simplified, coeff int64) []problem.Step {
	r := s.Radical(coeff)
	groups := perfectPowers(s)
	found := "none"
	if len(groups) > 0 {
		found = strings.Join(groups, " × ")
	}
	word := map[int64]string{2: "pairs", 3: "triples"}[s.Index]
	if word == "" {
		word = fmt.Sprintf("groups of %d", s.Index)
	}
	abs := s.Radicand
	if abs < 0 {
		abs = -abs
	}
	return []problem.Step{{
		Name:        "Find prime factorization",
		Description: "Break the radicand into prime factors",
		Expression:  fmt.Sprintf("%d = %s", abs, s.Factors),
		Before:      fmt.Sprint(abs),
		After:       s.Factors.String(),
		Reasoning:   "Prime factors show exactly which perfect powers the radicand contains",
	}, {
		Name:        "Identify perfect power factors",
		Description: fmt.Sprintf("Look for %s of equal prime factors", word),
		Expression:  found,
		Before:      s.Factors.Expanded(),
		Reasoning:   fmt.Sprintf("Each complete set of %d equal factors is a perfect %s power", s.Index, ordinal(s.Index)),
	}, {
		Name:        "Extract perfect powers",
		Description: "Move one factor from each complete set outside the radical",
		Before:      show(coeff, s.Radicand, s.Index),
		After:       r.String(),
		Expression:  fmt.Sprintf("outside %d, inside %d", s.Outside, s.Inside),
		Rule:        extractionRule(s.Index),
	}, {
		Name:        "Simplified form",
		Description: "State the radical in simplest form",
		Expression:  r.String(),
		Reasoning:   fmt.Sprintf("No prime appears %d or more times under the radical", s.Index),
		FinalAnswer: r.String(),
	}}
}

func ordinal(n int64) string {
	switch n {
	case 2:
		return "square"
	case 3:
		return "cube"
	}
	return fmt.Sprintf("%d-th", n)
}

func stepsSimplify(p problem.Problem, s problem.Solution) []problem.Step {
	d, _ := s.Detail.(SimplifyResult)
	given := problem.Step{
		Name:        "Given radical",
		Description: fmt.Sprintf("Simplify the index-%d radical", d.Index),
		Expression:  show(d.Coefficient, d.Radicand, d.Index),
		Reasoning:   "Read off the index and the radicand",
	}
	if s.Error != nil {
		return []problem.Step{given, noRealStep(s,
			fmt.Sprintf("The index %d is even and the radicand %d is negative", d.Index, d.Radicand))}
	}
	return append([]problem.Step{given}, extractionSteps(d.Simplified, d.Coefficient)...)
}

func stepsAddSubtract(p problem.Problem, s problem.Solution) []problem.Step {
	d, _ := s.Detail.(AddResult)
	c1, c2 := d.Coefficients[0], d.Coefficients[1]
	r1, r2 := p.Params.Int("radicand1", 0), p.Params.Int("radicand2", 0)
	out := []problem.Step{{
		Name:        "Given expression",
		Description: "Simplify each radical, then combine like terms",
		Expression:  fmt.Sprintf("%s %s %s", show(c1, r1, 2), d.Operator, show(c2, r2, 2)),
	}}
	if s.Error != nil {
		return append(out, noRealStep(s, "A square root of a negative number is not real"))
	}

	a, b := d.Terms[0].Radical(c1), d.Terms[1].Radical(c2)
	out = append(out, problem.Step{
		Name:        "Simplify first radical",
		Description: "Extract perfect squares from the first term",
		Before:      show(c1, r1, 2),
		After:       a.String(),
		Expression:  fmt.Sprintf("%s = %s", show(c1, r1, 2), a),
		Rule:        extractionRule(2),
	}, problem.Step{
		Name:        "Simplify second radical",
		Description: "Extract perfect squares from the second term",
		Before:      show(c2, r2, 2),
		After:       b.String(),
		Expression:  fmt.Sprintf("%s = %s", show(c2, r2, 2), b),
		Rule:        extractionRule(2),
	})
	if d.Operator == "-" {
		b.Coefficient = -b.Coefficient
	}
	sum := joinTerms(a, b)
	if d.Like {
		total := problem.Radical{Coefficient: a.Coefficient + b.Coefficient, Radicand: a.Radicand, Index: 2}
		return append(out, problem.Step{
			Name:        "Combine like radicals",
			Description: "Add the coefficients of terms with the same radicand",
			Before:      sum,
			After:       total.String(),
			Expression:  fmt.Sprintf("%s = %s", sum, total),
			Rule:        "a√n + b√n = (a + b)√n",
			FinalAnswer: total.String(),
		})
	}
	return append(out, problem.Step{
		Name:        "Identify unlike radicals",
		Description: "The simplified radicands differ, so the terms cannot be combined",
		Expression:  sum,
		Reasoning:   fmt.Sprintf("√%d and √%d are unlike radicals", a.Radicand, b.Radicand),
		FinalAnswer: sum,
	})
}

func stepsMultiply(p problem.Problem, s problem.Solution) []problem.Step {
	c1, r1 := p.Params.Int("coefficient1", 1), p.Params.Int("radicand1", 0)
	c2, r2 := p.Params.Int("coefficient2", 1), p.Params.Int("radicand2", 0)
	out := []problem.Step{{
		Name:        "Given product",
		Description: "Multiply coefficients with coefficients and radicands with radicands",
		Expression:  fmt.Sprintf("%s × %s", show(c1, r1, 2), show(c2, r2, 2)),
	}}
	if s.Error != nil {
		return append(out, noRealStep(s, "A square root of a negative number is not real"))
	}
	d, _ := s.Detail.(ProductResult)
	r := d.Simplified.Radical(d.Coefficient)
	return append(out, problem.Step{
		Name:        "Multiply coefficients",
		Description: "Multiply the numbers outside the radicals",
		Expression:  fmt.Sprintf("%d × %d = %d", c1, c2, d.Coefficient),
		After:       fmt.Sprint(d.Coefficient),
	}, problem.Step{
		Name:        "Multiply radicands",
		Description: "Multiply the numbers inside the radicals",
		Expression:  fmt.Sprintf("√%d × √%d = √%d", r1, r2, d.Radicand),
		Before:      fmt.Sprint(d.Coefficient),
		After:       show(d.Coefficient, d.Radicand, 2),
		Rule:        "√a × √b = √(ab)",
	}, problem.Step{
		Name:        "Simplify the result",
		Description: "Extract any perfect squares created by the product",
		Before:      show(d.Coefficient, d.Radicand, 2),
		After:       r.String(),
		Expression:  fmt.Sprintf("%s = %s", show(d.Coefficient, d.Radicand, 2), r),
		Rule:        extractionRule(2),
		FinalAnswer: r.String(),
	})
}

func stepsDivide(p problem.Problem, s problem.Solution) []problem.Step {
	c1, r1 := p.Params.Int("coefficient1", 1), p.Params.Int("radicand1", 0)
	c2, r2 := p.Params.Int("coefficient2", 1), p.Params.Int("radicand2", 0)
	out := []problem.Step{{
		Name:        "Given quotient",
		Description: "Divide coefficients and radicands separately",
		Expression:  fmt.Sprintf("%s ÷ %s", show(c1, r1, 2), show(c2, r2, 2)),
	}}
	if s.Error != nil {
		return append(out, noRealStep(s, "A square root of a negative number is not real"))
	}
	d, _ := s.Detail.(QuotientResult)
	cn, cd := d.Coefficients[0], d.Coefficients[1]
	rn, rd := d.Radicands[0], d.Radicands[1]
	out = append(out, problem.Step{
		Name:        "Divide coefficients",
		Description: "Reduce the fraction of the outside numbers",
		Expression:  fmt.Sprintf("%d/%d = %s", c1, c2, numeric.Frac(cn, cd)),
		After:       numeric.Frac(cn, cd).String(),
	}, problem.Step{
		Name:        "Apply quotient property",
		Description: "Write the quotient of roots as the root of a quotient and reduce it",
		Expression:  fmt.Sprintf("√%d / √%d = √(%d/%d)", r1, r2, rn, rd),
		After:       fmt.Sprintf("√(%d/%d)", rn, rd),
		Rule:        "√a / √b = √(a/b)",
	})
	if d.Rationalized {
		out = append(out, problem.Step{
			Name:        "Rationalize denominator",
			Description: fmt.Sprintf("Multiply numerator and denominator by √%d", d.Multiplier),
			Before:      fmt.Sprintf("√(%d/%d)", rn, rd),
			Expression:  fmt.Sprintf("(√%d × √%d) / (√%d × √%d)", d.Parts[0].Inside, d.Multiplier, d.Multiplier, d.Multiplier),
			Rule:        "a/√b = a√b/b",
			Reasoning:   "A simplified answer has no radical in the denominator",
		})
	}
	return append(out, problem.Step{
		Name:        "Simplify the result",
		Description: "Combine the pieces and reduce the fraction",
		After:       d.Result.String(),
		Expression:  d.Result.String(),
		FinalAnswer: d.Result.String(),
	})
}

func stepsRationalize(p problem.Problem, s problem.Solution) []problem.Step {
	n := p.Params.Int("numerator", 0)
	c, r := p.Params.Int("coefficient", 1), p.Params.Int("radicand", 0)
	out := []problem.Step{{
		Name:        "Given quotient",
		Description: "Remove the radical from the denominator",
		Expression:  fmt.Sprintf("%d/%s", n, show(c, r, 2)),
	}}
	if s.Error != nil {
		return append(out, noRealStep(s, "A square root of a negative number is not real"))
	}
	d, _ := s.Detail.(RationalizeResult)
	step := problem.Step{
		Name:        "Rationalize denominator",
		Description: fmt.Sprintf("Multiply numerator and denominator by √%d", d.Multiplier),
		Before:      fmt.Sprintf("%d/%s", n, show(c, r, 2)),
		After:       fmt.Sprintf("%s/%d", show(n, d.Multiplier, 2), d.Unreduced[1]),
		Rule:        "a/√b = a√b/b",
	}
	if d.Multiplier == 1 {
		step.Description = "The denominator is already rational once its radical is simplified"
		step.After = fmt.Sprintf("%d/%d", n, d.Unreduced[1])
	}
	if d.Denominator.Changed() {
		step.Reasoning = fmt.Sprintf("Simplify the denominator first: √%d = %s", r, d.Denominator.Radical(1))
	}
	step.Expression = step.Before + " = " + step.After
	return append(out, step, problem.Step{
		Name:        "Reduce the fraction",
		Description: "Divide numerator and denominator by their greatest common factor",
		Before:      step.After,
		After:       d.Result.String(),
		FinalAnswer: d.Result.String(),
	})
}

func stepsRationalExponent(p problem.Problem, s problem.Solution) []problem.Step {
	d, _ := s.Detail.(ExponentResult)
	b := p.Params.Int("base", 0)
	out := []problem.Step{{
		Name:        "Given power",
		Description: "Rewrite the rational exponent as a root",
		Expression:  fmt.Sprintf("%d^(%d/%d)", b, p.Params.Int("numerator", 0), p.Params.Int("denominator", 1)),
	}}
	if d.Denominator > 1 {
		sym := problem.RootSymbol(d.Denominator)
		out = append(out, problem.Step{
			Name:        "Convert to radical form",
			Description: "The denominator of the exponent is the index; the numerator is the power",
			Expression:  fmt.Sprintf("%d^(%d/%d) = %s(%d^%d)", b, d.Numerator, d.Denominator, sym, b, d.Numerator),
			Rule:        "b^(p/q) = ᵠ√(b^p)",
		})
	}
	out = append(out, problem.Step{
		Name:        "Evaluate the power",
		Description: "Raise the base to the numerator",
		Expression:  fmt.Sprintf("%d^%d = %d", b, d.Numerator, d.Power),
		After:       fmt.Sprint(d.Power),
	})
	if s.Error != nil {
		return append(out, noRealStep(s,
			fmt.Sprintf("The index %d is even and %d is negative", d.Denominator, d.Power)))
	}
	if d.Denominator == 1 {
		return append(out, problem.Step{
			Name:        "Simplified form",
			Description: "The exponent is a whole number, so no root remains",
			FinalAnswer: fmt.Sprint(d.Power),
		})
	}
	return append(out, extractionSteps(d.Simplified, 1)...)
}

func stepsPythagorean(p problem.Problem, s problem.Solution) []problem.Step {
	d, _ := s.Detail.(PythagoreanResult)
	f := numeric.Format
	out := []problem.Step{{
		Name:        "Pythagorean Theorem",
		Description: "In a right triangle the squares of the legs add up to the square of the hypotenuse",
		Expression:  "a² + b² = c²",
		Rule:        "a² + b² = c²",
	}}
	var sub, squares, combine problem.Step
	if d.Unknown == "c" {
		sub.Expression = fmt.Sprintf("%s² + %s² = c²", f(d.Known[0]), f(d.Known[1]))
		squares.Expression = fmt.Sprintf("%s + %s = c²", f(d.Squares[0]), f(d.Squares[1]))
		combine = problem.Step{
			Name:        "Add the squares",
			Description: "Add the squared legs",
			Expression:  fmt.Sprintf("c² = %s", f(d.Square)),
			After:       f(d.Square),
		}
	} else {
		sub.Expression = fmt.Sprintf("%s² + %s² = %s²", f(d.Known[0]), d.Unknown, f(d.Known[1]))
		squares.Expression = fmt.Sprintf("%s + %s² = %s", f(d.Squares[0]), d.Unknown, f(d.Squares[1]))
		combine = problem.Step{
			Name:        "Subtract the squares",
			Description: "Subtract the squared leg from the squared hypotenuse",
			Expression:  fmt.Sprintf("%s² = %s - %s = %s", d.Unknown, f(d.Squares[1]), f(d.Squares[0]), f(d.Square)),
			After:       f(d.Square),
		}
	}
	sub.Name, sub.Description = "Substitute known values", "Put the known side lengths into the theorem"
	squares.Name, squares.Description = "Calculate squares", "Square each known side"
	out = append(out, sub, squares, combine)
	if s.Error != nil {
		return append(out, noRealStep(s, "The square of the missing side would be negative"))
	}
	ans := s.Answers[0].String()
	return append(out, problem.Step{
		Name:        "Take square root",
		Description: "Take the positive square root, since a length is positive",
		Before:      f(d.Square),
		Expression:  fmt.Sprintf("%s = √%s = %s", d.Unknown, f(d.Square), ans),
		Rule:        extractionRule(2),
		FinalAnswer: fmt.Sprintf("%s = %s", d.Unknown, ans),
	})
}

func stepsDistance(p problem.Problem, s problem.Solution) []problem.Step {
	d, _ := s.Detail.(DistanceResult)
	f := numeric.Format
	ans := s.Answers[0].String()
	return []problem.Step{{
		Name:        "Distance Formula",
		Description: "The distance is the hypotenuse of the right triangle formed by the horizontal and vertical changes",
		Expression:  "d = √((x₂ - x₁)² + (y₂ - y₁)²)",
		Rule:        "d = √((x₂ - x₁)² + (y₂ - y₁)²)",
	}, {
		Name:        "Substitute coordinates",
		Description: fmt.Sprintf("Use (%s, %s) and (%s, %s)", f(d.From[0]), f(d.From[1]), f(d.To[0]), f(d.To[1])),
		Expression: fmt.Sprintf("d = √((%s - %s)² + (%s - %s)²)",
			f(d.To[0]), paren(d.From[0]), f(d.To[1]), paren(d.From[1])),
	}, {
		Name:        "Calculate differences",
		Description: "Subtract the coordinates",
		Expression:  fmt.Sprintf("Δx = %s, Δy = %s", f(d.DX), f(d.DY)),
	}, {
		Name:        "Square the differences",
		Description: "Square each difference",
		Expression:  fmt.Sprintf("%s² = %s, %s² = %s", paren(d.DX), f(d.DX*d.DX), paren(d.DY), f(d.DY*d.DY)),
		After:       f(d.Square),
	}, {
		Name:        "Add and simplify",
		Description: "Add the squares and simplify the square root",
		Before:      f(d.Square),
		Expression:  fmt.Sprintf("d = √%s = %s", f(d.Square), ans),
		Rule:        extractionRule(2),
		FinalAnswer: "d = " + ans,
	}}
}

// paren wraps negative numbers for substitution into a formula.
func paren(x float64) string {
	if x < 0 {
		return "(" + numeric.Format(x) + ")"
	}
	return numeric.Format(x)
}

func stepsQuadraticFormula(p problem.Problem, s problem.Solution) []problem.Step {
	d, _ := s.Detail.(FormulaResult)
	f := numeric.Format
	out := []problem.Step{{
		Name:        "Identify coefficients",
		Description: "Read a, b and c from ax² + bx + c = 0",
		Expression:  fmt.Sprintf("a = %s, b = %s, c = %s", f(d.A), f(d.B), f(d.C)),
	}, {
		Name:        "Calculate discriminant",
		Description: "Compute b² - 4ac",
		Expression:  fmt.Sprintf("Δ = %s² - 4·%s·%s = %s", paren(d.B), paren(d.A), paren(d.C), f(d.Discriminant)),
		After:       f(d.Discriminant),
		Rule:        "Δ = b² - 4ac",
	}}
	if s.Error != nil {
		return append(out, noRealStep(s, "The square root of a negative discriminant is not a real number"))
	}
	root := "√" + f(d.Discriminant)
	if d.Exact != nil {
		root = d.Exact.Radical(1).String()
	}
	out = append(out, problem.Step{
		Name:        "Simplify the discriminant radical",
		Description: "Extract perfect squares from √Δ",
		Before:      "√" + f(d.Discriminant),
		After:       root,
		Expression:  fmt.Sprintf("√%s = %s", f(d.Discriminant), root),
		Rule:        extractionRule(2),
	}, problem.Step{
		Name:        "Apply quadratic formula",
		Description: "Substitute into x = (-b ± √Δ)/2a",
		Expression:  fmt.Sprintf("x = (%s ± %s)/%s", f(-d.B), root, f(2*d.A)),
		Rule:        "x = (-b ± √(b² - 4ac))/2a",
	})
	answers := make([]string, len(s.Answers))
	for i, a := range s.Answers {
		answers[i] = a.Label + " = " + a.String()
	}
	return append(out, problem.Step{
		Name:        "Reduce the solutions",
		Description: "Divide out the common factor of every term",
		Expression:  "x = " + d.Form,
		FinalAnswer: strings.Join(answers, ", "),
	})
}
