package radical

import (
	"fmt"
	"math"
	"sort"

	"github.com/njchilds90/goworkbook/internal/numeric"
	"github.com/njchilds90/goworkbook/internal/problem"
	"github.com/njchilds90/goworkbook/internal/registry"
)

// ============================================================
// Shared helpers
// ============================================================

// requireInts checks that every key is present, integral and within
// ±MaxOperand.
func requireInts(op string, p problem.Params, keys ...string) *problem.Error {
	for _, k := range keys {
		if !p.Has(k) {
			return problem.NewError(problem.KindInvalidParameters, op, "missing parameter "+k)
		}
		n, ok := p.Integer(k)
		if !ok {
			return problem.NewError(problem.KindInvalidParameters, op,
				fmt.Sprintf("parameter %s must be an integer", k), k, p[k])
		}
		if n > MaxOperand || n < -MaxOperand {
			return problem.NewError(problem.KindInvalidParameters, op,
				fmt.Sprintf("parameter %s is outside ±10¹²", k), k, n)
		}
	}
	return nil
}

// optionalInts checks that keys, when present, are integral.
func optionalInts(op string, p problem.Params, keys ...string) *problem.Error {
	for _, k := range keys {
		if p.Has(k) {
			if err := requireInts(op, p, k); err != nil {
				return err
			}
		}
	}
	return nil
}

func requireFloats(op string, p problem.Params, keys ...string) *problem.Error {
	for _, k := range keys {
		if !p.Has(k) {
			return problem.NewError(problem.KindInvalidParameters, op, "missing parameter "+k)
		}
		if math.IsNaN(p.Float(k, math.NaN())) {
			return problem.NewError(problem.KindInvalidParameters, op,
				fmt.Sprintf("parameter %s must be a number", k), k, p[k])
		}
	}
	return nil
}

// fail wraps err. Terminal outcomes keep the detail gathered so far so the
// explanation can show how the outcome was reached.
func fail(typ problem.TypeID, err *problem.Error, detail any) problem.Solution {
	if !err.Terminal() {
		return problem.Failure(typ, err)
	}
	return problem.Solution{
		Category: typ,
		Kind:     "no real solution",
		Summary:  err.Message,
		Detail:   detail,
		Error:    err,
	}
}

// show renders c·ⁿ√n as written by the user, without simplifying.
func show(c, n, index int64) string {
	root := problem.RootSymbol(index) + fmt.Sprint(n)
	switch {
	case c == 1:
		return root
	case c == -1:
		return "-" + root
	case index > 4:
		return fmt.Sprintf("%d·%s", c, root)
	}
	return fmt.Sprintf("%d%s", c, root)
}

// joinTerms renders a ± b for two radicals.
func joinTerms(a, b problem.Radical) string {
	if b.Coefficient < 0 {
		b.Coefficient = -b.Coefficient
		return a.String() + " - " + b.String()
	}
	return a.String() + " + " + b.String()
}

// ============================================================
// Simplification
// ============================================================

// SimplifyResult is the detail of a simplify_radical or
// higher_index_radical solution.
type SimplifyResult struct {
	Coefficient int64 `json:"coefficient"`
	Simplified
}

func solveSimplify(defaultIndex int64) registry.Solver {
	return func(p problem.Problem) problem.Solution {
		const op = "simplify"
		if err := requireInts(op, p.Params, "radicand"); err != nil {
			return problem.Failure(p.Type, err)
		}
		if err := optionalInts(op, p.Params, "index", "coefficient"); err != nil {
			return problem.Failure(p.Type, err)
		}
		n := p.Params.Int("radicand", 0)
		index := p.Params.Int("index", defaultIndex)
		coeff := p.Params.Int("coefficient", 1)

		s, err := Simplify(n, index)
		detail := SimplifyResult{Coefficient: coeff, Simplified: s}
		if err != nil {
			detail.Radicand, detail.Index = n, index
			return fail(p.Type, err, detail)
		}
		outside, err := mul(op, coeff, s.Outside)
		if err != nil {
			return problem.Failure(p.Type, err)
		}
		r := problem.Radical{Coefficient: outside, Radicand: s.Inside, Index: index}
		return problem.Solution{
			Category: p.Type,
			Kind:     "simplified radical",
			Answers:  []problem.Answer{problem.RadicalAnswer("", r)},
			Summary:  show(coeff, n, index) + " = " + r.String(),
			Detail:   detail,
		}
	}
}

// ============================================================
// Arithmetic
// ============================================================

// AddResult is the detail of an add_subtract_radicals solution.
type AddResult struct {
	Coefficients [2]int64      `json:"coefficients"`
	Operator     string        `json:"operator"`
	Terms        [2]Simplified `json:"terms"`
	Like         bool          `json:"like"`
}

func solveAddSubtract(p problem.Problem) problem.Solution {
	const op = "add_subtract"
	if err := requireInts(op, p.Params, "radicand1", "radicand2"); err != nil {
		return problem.Failure(p.Type, err)
	}
	if err := optionalInts(op, p.Params, "coefficient1", "coefficient2"); err != nil {
		return problem.Failure(p.Type, err)
	}
	operator := p.Params.String("operator", "+")
	if operator != "+" && operator != "-" {
		return problem.Failure(p.Type, problem.NewError(problem.KindInvalidParameters, op,
			"operator must be + or -", "operator", operator))
	}
	c1, c2 := p.Params.Int("coefficient1", 1), p.Params.Int("coefficient2", 1)
	d := AddResult{Coefficients: [2]int64{c1, c2}, Operator: operator}

	var err *problem.Error
	if d.Terms[0], err = Simplify(p.Params.Int("radicand1", 0), 2); err != nil {
		return fail(p.Type, err, d)
	}
	if d.Terms[1], err = Simplify(p.Params.Int("radicand2", 0), 2); err != nil {
		return fail(p.Type, err, d)
	}
	t1, err := mul(op, c1, d.Terms[0].Outside)
	if err != nil {
		return problem.Failure(p.Type, err)
	}
	t2, err := mul(op, c2, d.Terms[1].Outside)
	if err != nil {
		return problem.Failure(p.Type, err)
	}
	if operator == "-" {
		t2 = -t2
	}

	a := problem.Radical{Coefficient: t1, Radicand: d.Terms[0].Inside, Index: 2}
	b := problem.Radical{Coefficient: t2, Radicand: d.Terms[1].Inside, Index: 2}
	d.Like = a.Radicand == b.Radicand
	if d.Like {
		sum := problem.Radical{Coefficient: t1 + t2, Radicand: a.Radicand, Index: 2}
		return problem.Solution{
			Category: p.Type,
			Kind:     "combined like radicals",
			Answers:  []problem.Answer{problem.RadicalAnswer("", sum)},
			Summary:  sum.String(),
			Detail:   d,
		}
	}
	return problem.Solution{
		Category: p.Type,
		Kind:     "unlike radicals",
		Answers:  []problem.Answer{problem.RadicalAnswer("term 1", a), problem.RadicalAnswer("term 2", b)},
		Summary:  joinTerms(a, b),
		Detail:   d,
	}
}

// ProductResult is the detail of a multiply_radicals solution.
type ProductResult struct {
	Coefficient int64      `json:"coefficient"`
	Radicand    int64      `json:"radicand"`
	Simplified  Simplified `json:"simplified"`
}

func solveMultiply(p problem.Problem) problem.Solution {
	const op = "multiply"
	if err := requireInts(op, p.Params, "radicand1", "radicand2"); err != nil {
		return problem.Failure(p.Type, err)
	}
	if err := optionalInts(op, p.Params, "coefficient1", "coefficient2"); err != nil {
		return problem.Failure(p.Type, err)
	}
	c1, r1 := p.Params.Int("coefficient1", 1), p.Params.Int("radicand1", 0)
	c2, r2 := p.Params.Int("coefficient2", 1), p.Params.Int("radicand2", 0)
	for _, r := range []int64{r1, r2} {
		if _, err := Simplify(r, 2); err != nil {
			return fail(p.Type, err, nil)
		}
	}

	var d ProductResult
	var err *problem.Error
	if d.Coefficient, err = mul(op, c1, c2); err != nil {
		return problem.Failure(p.Type, err)
	}
	if d.Radicand, err = mul(op, r1, r2); err != nil {
		return problem.Failure(p.Type, err)
	}
	if d.Simplified, err = Simplify(d.Radicand, 2); err != nil {
		return fail(p.Type, err, d)
	}
	coeff, err := mul(op, d.Coefficient, d.Simplified.Outside)
	if err != nil {
		return problem.Failure(p.Type, err)
	}
	r := problem.Radical{Coefficient: coeff, Radicand: d.Simplified.Inside, Index: 2}
	return problem.Solution{
		Category: p.Type,
		Kind:     "product",
		Answers:  []problem.Answer{problem.RadicalAnswer("", r)},
		Summary:  fmt.Sprintf("%s × %s = %s", show(c1, r1, 2), show(c2, r2, 2), r),
		Detail:   d,
	}
}

// QuotientResult is the detail of a divide_radicals solution.
type QuotientResult struct {
	// Coefficients and Radicands are the numerator/denominator pairs after
	// reducing each by its GCD.
	Coefficients [2]int64        `json:"coefficients"`
	Radicands    [2]int64        `json:"radicands"`
	Parts        [2]Simplified   `json:"parts"`
	Rationalized bool            `json:"rationalized"`
	Multiplier   int64           `json:"multiplier,omitempty"`
	Result       problem.Radical `json:"result"`
}

func solveDivide(p problem.Problem) problem.Solution {
	const op = "divide"
	if err := requireInts(op, p.Params, "radicand1", "radicand2"); err != nil {
		return problem.Failure(p.Type, err)
	}
	if err := optionalInts(op, p.Params, "coefficient1", "coefficient2"); err != nil {
		return problem.Failure(p.Type, err)
	}
	c1, r1 := p.Params.Int("coefficient1", 1), p.Params.Int("radicand1", 0)
	c2, r2 := p.Params.Int("coefficient2", 1), p.Params.Int("radicand2", 0)
	if c2 == 0 || r2 == 0 {
		return problem.Failure(p.Type, problem.NewError(problem.KindInvalidParameters, op,
			"the divisor is zero", "coefficient2", c2, "radicand2", r2))
	}
	for _, r := range []int64{r1, r2} {
		if _, err := Simplify(r, 2); err != nil {
			return fail(p.Type, err, nil)
		}
	}

	var d QuotientResult
	cn, cd := reduce(c1, c2)
	rn, rd := r1, r2
	if g := numeric.GCD(rn, rd); g > 1 {
		rn, rd = rn/g, rd/g
	}
	d.Coefficients = [2]int64{cn, cd}
	d.Radicands = [2]int64{rn, rd}

	var err *problem.Error
	if d.Parts[0], err = Simplify(rn, 2); err != nil {
		return fail(p.Type, err, d)
	}
	if d.Parts[1], err = Simplify(rd, 2); err != nil {
		return fail(p.Type, err, d)
	}
	num, err := mul(op, cn, d.Parts[0].Outside)
	if err != nil {
		return problem.Failure(p.Type, err)
	}
	den, err := mul(op, cd, d.Parts[1].Outside)
	if err != nil {
		return problem.Failure(p.Type, err)
	}
	inside := d.Parts[0].Inside
	if k := d.Parts[1].Inside; k != 1 {
		// a/√k = a√k/k
		d.Rationalized, d.Multiplier = true, k
		if inside, err = mul(op, inside, k); err != nil {
			return problem.Failure(p.Type, err)
		}
		s, err := Simplify(inside, 2)
		if err != nil {
			return problem.Failure(p.Type, err)
		}
		inside = s.Inside
		if num, err = mul(op, num, s.Outside); err != nil {
			return problem.Failure(p.Type, err)
		}
		if den, err = mul(op, den, k); err != nil {
			return problem.Failure(p.Type, err)
		}
	}
	num, den = reduce(num, den)
	if num == 0 {
		inside = 1
	}
	d.Result = problem.Radical{Coefficient: num, Radicand: inside, Index: 2, Denominator: den}
	if den == 1 {
		d.Result.Denominator = 0
	}
	return problem.Solution{
		Category: p.Type,
		Kind:     "quotient",
		Answers:  []problem.Answer{problem.RadicalAnswer("", d.Result)},
		Summary:  fmt.Sprintf("%s ÷ %s = %s", show(c1, r1, 2), show(c2, r2, 2), d.Result),
		Detail:   d,
	}
}

// RationalizeResult is the detail of a rationalize_denominator solution.
type RationalizeResult struct {
	Numerator   int64           `json:"numerator"`
	Coefficient int64           `json:"coefficient"`
	Denominator Simplified      `json:"denominator"`
	Multiplier  int64           `json:"multiplier"`
	Unreduced   [2]int64        `json:"unreduced"`
	Result      problem.Radical `json:"result"`
}

func solveRationalize(p problem.Problem) problem.Solution {
	const op = "rationalize"
	if err := requireInts(op, p.Params, "numerator", "radicand"); err != nil {
		return problem.Failure(p.Type, err)
	}
	if err := optionalInts(op, p.Params, "coefficient"); err != nil {
		return problem.Failure(p.Type, err)
	}
	n := p.Params.Int("numerator", 0)
	c := p.Params.Int("coefficient", 1)
	r := p.Params.Int("radicand", 0)
	if c == 0 || r == 0 {
		return problem.Failure(p.Type, problem.NewError(problem.KindInvalidParameters, op,
			"the denominator is zero", "coefficient", c, "radicand", r))
	}

	d := RationalizeResult{Numerator: n, Coefficient: c}
	var err *problem.Error
	if d.Denominator, err = Simplify(r, 2); err != nil {
		return fail(p.Type, err, d)
	}
	den, err := mul(op, c, d.Denominator.Outside)
	if err != nil {
		return problem.Failure(p.Type, err)
	}
	inside := d.Denominator.Inside
	d.Multiplier = inside
	if den, err = mul(op, den, inside); err != nil {
		return problem.Failure(p.Type, err)
	}
	d.Unreduced = [2]int64{n, den}
	num, den := reduce(n, den)
	if num == 0 {
		inside = 1
	}
	d.Result = problem.Radical{Coefficient: num, Radicand: inside, Index: 2, Denominator: den}
	if den == 1 {
		d.Result.Denominator = 0
	}
	return problem.Solution{
		Category: p.Type,
		Kind:     "rationalized",
		Answers:  []problem.Answer{problem.RadicalAnswer("", d.Result)},
		Summary:  fmt.Sprintf("%d/%s = %s", n, show(c, r, 2), d.Result),
		Detail:   d,
	}
}

// ============================================================
// Rational exponents
// ============================================================

// ExponentResult is the detail of a rational_exponent solution.
type ExponentResult struct {
	Base        int64      `json:"base"`
	Numerator   int64      `json:"numerator"`
	Denominator int64      `json:"denominator"`
	Power       int64      `json:"power"`
	Simplified  Simplified `json:"simplified"`
}

func solveRationalExponent(p problem.Problem) problem.Solution {
	const op = "rational_exponent"
	if err := requireInts(op, p.Params, "base", "numerator", "denominator"); err != nil {
		return problem.Failure(p.Type, err)
	}
	b := p.Params.Int("base", 0)
	num, den := p.Params.Int("numerator", 0), p.Params.Int("denominator", 0)
	switch {
	case den == 0:
		return problem.Failure(p.Type, problem.NewError(problem.KindInvalidParameters, op,
			"the exponent's denominator is zero"))
	case num != 0 && (num < 0) != (den < 0):
		return problem.Failure(p.Type, problem.NewError(problem.KindInvalidParameters, op,
			"negative exponents are not supported", "numerator", num, "denominator", den))
	case num == 0 && b == 0:
		return problem.Failure(p.Type, problem.NewError(problem.KindInvalidParameters, op,
			"0 raised to the power 0 is undefined"))
	}
	num, den = reduce(num, den)
	if num == 0 {
		den = 1
	}

	d := ExponentResult{Base: b, Numerator: num, Denominator: den}
	power, ok := numeric.CheckedPow(b, num)
	if !ok {
		return problem.Failure(p.Type, overflow(op, b, num))
	}
	d.Power = power

	var r problem.Radical
	if den == 1 {
		d.Simplified = Simplified{Radicand: power, Index: 1, Outside: power, Inside: 1}
		r = problem.Radical{Coefficient: power, Radicand: 1, Index: 2}
	} else {
		var err *problem.Error
		if d.Simplified, err = Simplify(power, den); err != nil {
			return fail(p.Type, err, d)
		}
		r = d.Simplified.Radical(1)
	}
	return problem.Solution{
		Category: p.Type,
		Kind:     "radical form",
		Answers:  []problem.Answer{problem.RadicalAnswer("", r)},
		Summary:  fmt.Sprintf("%d^(%d/%d) = %s", b, num, den, r),
		Detail:   d,
	}
}

// ============================================================
// Applications
// ============================================================

// PythagoreanResult is the detail of a pythagorean solution.
type PythagoreanResult struct {
	Unknown string      `json:"unknown"`
	Known   [2]float64  `json:"known"`
	Squares [2]float64  `json:"squares"`
	Square  float64     `json:"square"`
	Exact   *Simplified `json:"exact,omitempty"`
}

func solvePythagorean(p problem.Problem) problem.Solution {
	const op = "pythagorean"
	var d PythagoreanResult
	switch {
	case p.Params.Has("a") && p.Params.Has("b"):
		d.Unknown = "c"
		if err := requireFloats(op, p.Params, "a", "b"); err != nil {
			return problem.Failure(p.Type, err)
		}
		d.Known = [2]float64{p.Params.Float("a", 0), p.Params.Float("b", 0)}
	case p.Params.Has("c") && (p.Params.Has("a") || p.Params.Has("b")):
		leg := "a"
		d.Unknown = "b"
		if !p.Params.Has("a") {
			leg, d.Unknown = "b", "a"
		}
		if err := requireFloats(op, p.Params, leg, "c"); err != nil {
			return problem.Failure(p.Type, err)
		}
		d.Known = [2]float64{p.Params.Float(leg, 0), p.Params.Float("c", 0)}
	default:
		return problem.Failure(p.Type, problem.NewError(problem.KindInvalidParameters, op,
			"two of the sides a, b and c are required"))
	}
	if d.Known[0] <= 0 || d.Known[1] <= 0 {
		return problem.Failure(p.Type, problem.NewError(problem.KindInvalidParameters, op,
			"side lengths must be positive", "known", d.Known))
	}

	d.Squares = [2]float64{d.Known[0] * d.Known[0], d.Known[1] * d.Known[1]}
	if d.Unknown == "c" {
		d.Square = d.Squares[0] + d.Squares[1]
	} else {
		d.Square = d.Squares[1] - d.Squares[0]
	}
	switch {
	case d.Square < 0:
		return fail(p.Type, problem.NewError(problem.KindNoRealSolution, op,
			"invalid triangle: the hypotenuse must be longer than the leg",
			"leg", d.Known[0], "hypotenuse", d.Known[1]), d)
	case d.Square == 0:
		return problem.Failure(p.Type, problem.NewError(problem.KindInvalidParameters, op,
			"the hypotenuse equals the leg, so the triangle is degenerate",
			"leg", d.Known[0], "hypotenuse", d.Known[1]))
	}
	ans := exactRoot(d.Unknown, d.Square, &d.Exact)
	return problem.Solution{
		Category: p.Type,
		Kind:     "side length",
		Answers:  []problem.Answer{ans},
		Summary:  d.Unknown + " = " + ans.String(),
		Detail:   d,
	}
}

// exactRoot is √square as a simplified radical when square is an integer
// and as a decimal otherwise.
func exactRoot(label string, square float64, exact **Simplified) problem.Answer {
	if numeric.IsInteger(square) && math.Abs(square) < 1<<53 {
		s, err := Simplify(int64(math.Round(square)), 2)
		if err == nil {
			*exact = &s
			return problem.RadicalAnswer(label, s.Radical(1))
		}
	}
	return problem.RealAnswer(label, math.Sqrt(square))
}

// DistanceResult is the detail of a distance_formula solution.
type DistanceResult struct {
	From   [2]float64  `json:"from"`
	To     [2]float64  `json:"to"`
	DX     float64     `json:"dx"`
	DY     float64     `json:"dy"`
	Square float64     `json:"square"`
	Exact  *Simplified `json:"exact,omitempty"`
}

func solveDistance(p problem.Problem) problem.Solution {
	if err := requireFloats("distance", p.Params, "x1", "y1", "x2", "y2"); err != nil {
		return problem.Failure(p.Type, err)
	}
	d := DistanceResult{
		From: [2]float64{p.Params.Float("x1", 0), p.Params.Float("y1", 0)},
		To:   [2]float64{p.Params.Float("x2", 0), p.Params.Float("y2", 0)},
	}
	d.DX, d.DY = d.To[0]-d.From[0], d.To[1]-d.From[1]
	d.Square = d.DX*d.DX + d.DY*d.DY
	ans := exactRoot("d", d.Square, &d.Exact)
	return problem.Solution{
		Category: p.Type,
		Kind:     "distance",
		Answers:  []problem.Answer{ans},
		Summary:  "d = " + ans.String(),
		Detail:   d,
	}
}

// FormulaResult is the detail of a quadratic_formula_radical solution.
type FormulaResult struct {
	A            float64     `json:"a"`
	B            float64     `json:"b"`
	C            float64     `json:"c"`
	Discriminant float64     `json:"discriminant"`
	Exact        *Simplified `json:"exact,omitempty"`
	// Reduced is (-b, k, 2a) divided by their common factor, for
	// (-b ± k√m)/2a.
	Reduced [3]int64 `json:"reduced,omitempty"`
	Form    string   `json:"form"`
}

type root struct {
	value float64
	text  string
}

func solveQuadraticFormula(p problem.Problem) problem.Solution {
	const op = "quadratic_formula"
	if err := requireFloats(op, p.Params, "a", "b", "c"); err != nil {
		return problem.Failure(p.Type, err)
	}
	d := FormulaResult{A: p.Params.Float("a", 0), B: p.Params.Float("b", 0), C: p.Params.Float("c", 0)}
	if numeric.IsZero(d.A) {
		return problem.Failure(p.Type, problem.NewError(problem.KindDegenerateEquation, op,
			"a = 0, so the equation is linear rather than quadratic", "a", d.A))
	}
	d.Discriminant = d.B*d.B - 4*d.A*d.C
	if numeric.IsZero(d.Discriminant) {
		d.Discriminant = 0
	}
	if d.Discriminant < 0 {
		return fail(p.Type, problem.NewError(problem.KindNoRealSolution, op,
			fmt.Sprintf("the discriminant %s is negative, so there are no real solutions", numeric.Format(d.Discriminant)),
			"discriminant", d.Discriminant), d)
	}

	minus, plus := numeric.QuadraticRoots(d.A, d.B, d.C, math.Sqrt(d.Discriminant))
	roots := []root{{value: minus}, {value: plus}}
	if d.Discriminant == 0 {
		roots = roots[:1]
	}
	integral := numeric.IsInteger(d.A) && numeric.IsInteger(d.B) && numeric.IsInteger(d.C) &&
		math.Abs(d.A) <= float64(MaxOperand) && math.Abs(d.B) <= float64(MaxOperand) &&
		d.Discriminant <= float64(MaxOperand)
	if integral {
		exactRoots(&d, roots)
	} else {
		for i := range roots {
			roots[i].text = numeric.Format(roots[i].value)
		}
		d.Form = "(-b ± √Δ)/2a"
	}
	sort.Slice(roots, func(i, j int) bool { return roots[i].value < roots[j].value })

	sol := problem.Solution{Category: p.Type, Detail: d}
	for i, r := range roots {
		a := problem.RealAnswer(fmt.Sprintf("x%d", i+1), r.value)
		a.Text = r.text
		sol.Answers = append(sol.Answers, a)
	}
	if len(roots) == 1 {
		sol.Kind = "repeated root"
		sol.Summary = "x = " + roots[0].text
	} else {
		sol.Kind = "two real roots"
		sol.Summary = "x = " + d.Form
	}
	return sol
}

// exactRoots fills the exact forms of roots (minus root first) for integer
// coefficients.
func exactRoots(d *FormulaResult, roots []root) {
	a, b := int64(math.Round(d.A)), int64(math.Round(d.B))
	s, _ := Simplify(int64(math.Round(d.Discriminant)), 2)
	d.Exact = &s
	k, m := s.Outside, s.Inside

	if m == 1 {
		for i, sign := range []int64{-1, 1}[:len(roots)] {
			roots[i].text = numeric.Frac(-b+sign*k, 2*a).String()
		}
		if len(roots) == 2 {
			d.Form = roots[0].text + " or " + roots[1].text
		} else {
			d.Form = roots[0].text
		}
		return
	}

	g := numeric.GCD(numeric.GCD(b, k), 2*a)
	nb, nk, den := -b/g, k/g, 2*a/g
	if den < 0 {
		nb, den = -nb, -den
	}
	d.Reduced = [3]int64{nb, nk, den}
	rad := problem.Radical{Coefficient: nk, Radicand: m, Index: 2}.String()

	form := func(sign string) string {
		var num string
		switch {
		case nb == 0 && sign == "-":
			num = "-" + rad
		case nb == 0 && sign == "+":
			num = rad
		case nb == 0:
			num = "±" + rad
		default:
			num = fmt.Sprintf("%d %s %s", nb, sign, rad)
		}
		if den == 1 {
			return num
		}
		return "(" + num + ")/" + fmt.Sprint(den)
	}
	// With 2a > 0 the minus branch is the smaller root; sorting later puts
	// the texts in value order either way.
	minus, plus := form("-"), form("+")
	if a < 0 {
		minus, plus = plus, minus
	}
	roots[0].text, roots[1].text = minus, plus
	d.Form = form("±")
}
