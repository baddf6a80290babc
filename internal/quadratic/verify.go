package quadratic

import (
	"fmt"
	"math"
	"math/cmplx"
	"regexp"
	"strings"

	"github.com/njchilds90/goworkbook/internal/numeric"
	"github.com/njchilds90/goworkbook/internal/poly"
	"github.com/njchilds90/goworkbook/internal/problem"
)

// The verifiers substitute answers back into the original polynomial and
// scale each residual by the size of the terms being cancelled, so large
// coefficients do not fail on rounding alone.

func termScale(f poly.Poly, x float64) float64 {
	s := 1.0
	for d, c := range f {
		s += math.Abs(c * math.Pow(x, float64(d)))
	}
	return s
}

func cTermScale(f poly.Poly, z complex128) float64 {
	s := 1.0
	for d, c := range f {
		s += math.Abs(c) * math.Pow(cmplx.Abs(z), float64(d))
	}
	return s
}

// rootCheck substitutes one answer, real or complex, into f.
func rootCheck(f poly.Poly, ans problem.Answer) problem.Check {
	name := fmt.Sprintf("f(%s) = 0", ans.Label)
	if ans.Real != nil {
		x := *ans.Real
		return problem.Residual(name, f.Eval(x)/termScale(f, x), numeric.RootTolerance)
	}
	z, err := poly.ParseComplex(ans.Text)
	if err != nil {
		return problem.Holds(name, false, err.Error())
	}
	return problem.Residual(name, cmplx.Abs(f.EvalComplex(z))/cTermScale(f, z), numeric.RootTolerance)
}

func invalid(err *problem.Error) problem.Verification {
	return problem.Verify("recompute", numeric.RootTolerance, problem.Holds("coefficients", false, err.Error()))
}

func answerValue(s problem.Solution, label string) (float64, bool) {
	a, ok := s.Answer(label)
	if !ok || a.Real == nil {
		return 0, false
	}
	return *a.Real, true
}

func answerText(s problem.Solution, label string) string {
	a, _ := s.Answer(label)
	return a.Text
}

// expectedRoots counts real roots from the sign of the vertex height,
// without the discriminant.
func expectedRoots(a, b, c float64) (nReal, nComplex int) {
	f := poly.Of(a, b, c)
	h := -b / (2 * a)
	y := f.Eval(h)
	switch {
	case math.Abs(y) <= numeric.RootTolerance*termScale(f, h):
		return 1, 0
	case (a > 0) == (y < 0):
		return 2, 0
	}
	return 0, 2
}

func countRoots(s problem.Solution) (nReal, nComplex int) {
	for _, a := range s.Answers {
		if !strings.HasPrefix(a.Label, "x") {
			continue
		}
		if a.Real != nil {
			nReal++
		} else {
			nComplex++
		}
	}
	return nReal, nComplex
}

func verifyRoots(p problem.Problem, s problem.Solution) problem.Verification {
	a, b, c, err := coefficients("verify", p.Params)
	if err != nil {
		return invalid(err)
	}
	f := poly.Of(a, b, c)
	var checks []problem.Check
	for _, ans := range s.Answers {
		checks = append(checks, rootCheck(f, ans))
	}
	wantReal, wantComplex := expectedRoots(a, b, c)
	gotReal, gotComplex := countRoots(s)
	checks = append(checks, problem.Holds("root count matches the vertex test",
		wantReal == gotReal && wantComplex == gotComplex,
		fmt.Sprintf("expected %d real and %d complex, got %d and %d", wantReal, wantComplex, gotReal, gotComplex)))

	if d, ok := s.Detail.(CompletedSquare); ok {
		for _, x := range []float64{d.H - 1, d.H, d.H + 2} {
			checks = append(checks, problem.Compare(fmt.Sprintf("vertex form at x = %s", numeric.Format(x)),
				f.Eval(x), a*(x-d.H)*(x-d.H)+d.K, numeric.ValueTolerance))
		}
	}
	return problem.Verify("substitution", numeric.RootTolerance, checks...)
}

// ============================================================
// Factoring
// ============================================================

var factorRe = regexp.MustCompile(`^(?:\(([^()]+)\)|x)`)

// expandFactored multiplies out text such as "2(x + 1)(2x - 3)" or
// "-x(x + 4)" or "(x - 1)²".
func expandFactored(s string) (poly.Poly, error) {
	s = strings.TrimSpace(s)
	i := strings.IndexAny(s, "(x")
	if i < 0 {
		return nil, fmt.Errorf("quadratic: no factors in %q", s)
	}
	lead := 1.0
	switch prefix := s[:i]; prefix {
	case "":
	case "-":
		lead = -1
	default:
		v, err := poly.ParseCoefficient(prefix)
		if err != nil {
			return nil, err
		}
		lead = v
	}
	out := poly.Of(lead)
	for rest := s[i:]; rest != ""; {
		m := factorRe.FindStringSubmatchIndex(rest)
		if m == nil {
			return nil, fmt.Errorf("quadratic: malformed factor %q", rest)
		}
		f := poly.Of(1, 0)
		if m[2] >= 0 {
			var err error
			if f, err = poly.Parse(rest[m[2]:m[3]], "x"); err != nil {
				return nil, err
			}
		}
		rest = rest[m[1]:]
		if strings.HasPrefix(rest, "²") {
			f = f.Mul(f)
			rest = strings.TrimPrefix(rest, "²")
		}
		out = out.Mul(f)
	}
	return out, nil
}

func verifyFactoring(p problem.Problem, s problem.Solution) problem.Verification {
	a, b, c, err := coefficients("verify", p.Params)
	if err != nil {
		return invalid(err)
	}
	f := poly.Of(a, b, c)
	if s.Error != nil {
		disc := b*b - 4*a*c
		factorable := f.IsIntegral() && disc >= 0 && numeric.IsInteger(disc) &&
			numeric.IsPerfectSquare(int64(math.Round(disc)))
		return problem.Verify("terminal-outcome", 0, problem.Holds(
			"discriminant is not a perfect square of an integer", !factorable,
			"Δ = "+numeric.Format(disc)))
	}
	expanded, perr := expandFactored(answerText(s, "factored"))
	if perr != nil {
		return problem.Verify("expansion", numeric.ValueTolerance, problem.Holds("factored form parses", false, perr.Error()))
	}
	checks := []problem.Check{
		problem.Compare("x² coefficient", a, expanded.Coeff(2), numeric.ValueTolerance),
		problem.Compare("x coefficient", b, expanded.Coeff(1), numeric.ValueTolerance),
		problem.Compare("constant", c, expanded.Coeff(0), numeric.ValueTolerance),
	}
	for _, ans := range s.Answers {
		if ans.Real != nil {
			checks = append(checks, rootCheck(f, ans))
		}
	}
	return problem.Verify("expansion", numeric.ValueTolerance, checks...)
}

// ============================================================
// Parabola features
// ============================================================

func parsePoint(s string) (Point, bool) {
	m := pointRe.FindStringSubmatch(s)
	if m == nil {
		return Point{}, false
	}
	x, err1 := poly.ParseCoefficient(m[1])
	y, err2 := poly.ParseCoefficient(m[2])
	return Point{x, y}, err1 == nil && err2 == nil
}

func verifyVertexForm(p problem.Problem, s problem.Solution) problem.Verification {
	var a, h, k float64
	var checks []problem.Check
	b, okB := answerValue(s, "b")
	c, okC := answerValue(s, "c")
	if !okB || !okC {
		return problem.Verify("recompute", numeric.ValueTolerance, problem.Holds("standard form", false, "answer missing"))
	}
	if p.Params.Has("h") || p.Params.Has("k") {
		a, h, k = p.Params.Float("a", 1), p.Params.Float("h", 0), p.Params.Float("k", 0)
		for _, x := range []float64{h - 2, h, h + 1, h + 3} {
			checks = append(checks, problem.Compare(fmt.Sprintf("forms agree at x = %s", numeric.Format(x)),
				a*(x-h)*(x-h)+k, a*x*x+b*x+c, numeric.ValueTolerance))
		}
	} else {
		var err *problem.Error
		var pb, pc float64
		if a, pb, pc, err = coefficients("verify", p.Params); err != nil {
			return invalid(err)
		}
		checks = append(checks,
			problem.Compare("b", pb, b, numeric.ValueTolerance),
			problem.Compare("c", pc, c, numeric.ValueTolerance))
		h = -pb / (2 * a)
		k = poly.Of(a, pb, pc).Eval(h)
	}
	if v, ok := parsePoint(answerText(s, "vertex")); ok {
		checks = append(checks,
			problem.Compare("vertex x", h, v.X, numeric.ValueTolerance),
			problem.Compare("vertex y", k, v.Y, numeric.ValueTolerance))
	} else {
		checks = append(checks, problem.Holds("vertex", false, "answer missing"))
	}
	f := poly.Of(a, b, c)
	for _, ans := range s.Answers {
		if strings.HasPrefix(ans.Label, "x") {
			checks = append(checks, rootCheck(f, ans))
		}
	}
	if y, ok := answerValue(s, "y-intercept"); ok {
		checks = append(checks, problem.Compare("y-intercept", f.Eval(0), y, numeric.ValueTolerance))
	}
	return problem.Verify("expansion", numeric.ValueTolerance, checks...)
}

func verifyFunctionAnalysis(p problem.Problem, s problem.Solution) problem.Verification {
	a, b, c, err := coefficients("verify", p.Params)
	if err != nil {
		return invalid(err)
	}
	f := poly.Of(a, b, c)
	vx, okX := answerValue(s, "vertex x")
	vy, okY := answerValue(s, "vertex y")
	if !okX || !okY {
		return problem.Verify("recompute", numeric.ValueTolerance, problem.Holds("vertex", false, "answer missing"))
	}
	extremum := f.Eval(vx-1) > vy && f.Eval(vx+1) > vy
	if a < 0 {
		extremum = f.Eval(vx-1) < vy && f.Eval(vx+1) < vy
	}
	inc, dec := monotonic(a, vx)
	return problem.Verify("derivative", numeric.ValueTolerance,
		problem.Residual("f'(vertex) = 0", (2*a*vx+b)/termScale(f, vx), numeric.ValueTolerance),
		problem.Compare("f(vertex)", f.Eval(vx), vy, numeric.ValueTolerance),
		problem.Holds("vertex is the extremum", extremum, ""),
		problem.Holds("domain", answerText(s, "domain") == "(-∞, ∞)", answerText(s, "domain")),
		problem.Holds("range", answerText(s, "range") == rangeOf(a, f.Eval(vx)), answerText(s, "range")),
		problem.Holds("increasing interval", answerText(s, "increasing") == inc, answerText(s, "increasing")),
		problem.Holds("decreasing interval", answerText(s, "decreasing") == dec, answerText(s, "decreasing")),
	)
}

func verifyDiscriminant(p problem.Problem, s problem.Solution) problem.Verification {
	a, b, c, err := coefficients("verify", p.Params)
	if err != nil {
		return invalid(err)
	}
	disc, ok := answerValue(s, "Δ")
	if !ok {
		return problem.Verify("recompute", numeric.ValueTolerance, problem.Holds("Δ", false, "answer missing"))
	}
	n, _ := expectedRoots(a, b, c)
	want := map[int]string{2: TwoRealRoots, 1: RepeatedRoot, 0: ComplexRoots}[n]
	got := answerText(s, "root type")
	return problem.Verify("recompute", numeric.ValueTolerance,
		problem.Compare("b² - 4ac", b*b-4*a*c, disc, numeric.ValueTolerance),
		problem.Holds("root type agrees with the vertex test", got == want, got),
	)
}

// ============================================================
// Applications
// ============================================================

func verifyProjectile(p problem.Problem, s problem.Solution) problem.Verification {
	a, b, c := p.Params.Float("a", -16), p.Params.Float("b", 0), p.Params.Float("c", 0)
	h := poly.Of(a, b, c)
	if s.Error != nil {
		// Beyond the peak h only falls, so the object lands iff h(peak) ≥ 0.
		peak := math.Max(0, -b/(2*a))
		return problem.Verify("terminal-outcome", 0,
			problem.Holds("height stays below ground after launch", h.Eval(peak) < 0, "h(peak) = "+numeric.Format(h.Eval(peak))))
	}
	tPeak, ok1 := answerValue(s, "t_peak")
	hMax, ok2 := answerValue(s, "h_max")
	tLand, ok3 := answerValue(s, "t_land")
	if !ok1 || !ok2 || !ok3 {
		return problem.Verify("recompute", numeric.ValueTolerance, problem.Holds("answers", false, "answer missing"))
	}
	const dt = 1e-3
	return problem.Verify("substitution", numeric.RootTolerance,
		problem.Compare("h(t_peak)", h.Eval(tPeak), hMax, numeric.RootTolerance),
		problem.Holds("no higher point nearby", h.Eval(tPeak+dt) <= hMax && (tPeak < dt || h.Eval(tPeak-dt) <= hMax), ""),
		problem.Residual("h(t_land) = 0", h.Eval(tLand)/termScale(h, tLand), numeric.RootTolerance),
		problem.Holds("lands after launch", tLand >= 0, numeric.Format(tLand)),
		problem.Holds("below ground after landing", h.Eval(tLand+dt) < 0, ""),
	)
}

func verifyInverse(p problem.Problem, s problem.Solution) problem.Verification {
	roots := givenRoots(p.Params)
	a, okA := answerValue(s, "a")
	b, okB := answerValue(s, "b")
	c, okC := answerValue(s, "c")
	if !okA || !okB || !okC {
		return problem.Verify("recompute", numeric.RootTolerance, problem.Holds("coefficients", false, "answer missing"))
	}
	f := poly.Of(a, b, c)
	checks := []problem.Check{
		problem.Compare("leading coefficient", p.Params.Float("a", 1), a, numeric.ValueTolerance),
	}
	for i, r := range roots {
		checks = append(checks, problem.Residual(fmt.Sprintf("f(r%d) = 0", i+1), f.Eval(r)/termScale(f, r), numeric.RootTolerance))
	}
	if len(roots) == 1 {
		// A double root also zeroes the derivative.
		checks = append(checks, problem.Residual("f'(r1) = 0", (2*a*roots[0]+b)/termScale(f, roots[0]), numeric.RootTolerance))
	}
	if eq, _, err := poly.ParseStatement(answerText(s, "equation"), "x"); err == nil {
		checks = append(checks, problem.Compare("equation matches coefficients", 0,
			math.Abs(eq.Coeff(2)-a)+math.Abs(eq.Coeff(1)-b)+math.Abs(eq.Coeff(0)-c), numeric.ValueTolerance))
	} else {
		checks = append(checks, problem.Holds("equation parses", false, err.Error()))
	}
	return problem.Verify("substitution", numeric.RootTolerance, checks...)
}

// verifyInequality tests the claimed solution set against the inequality
// itself at every critical point, between them and beyond them.
func verifyInequality(p problem.Problem, s problem.Solution) problem.Verification {
	a, b, c, err := coefficients("verify", p.Params)
	if err != nil {
		return invalid(err)
	}
	rel, _ := poly.ParseRelation(p.Params.String("operator", string(poly.Greater)))
	ivs, perr := ParseNotation(answerText(s, "solution"))
	if perr != nil {
		return problem.Verify("interval-test", numeric.RootTolerance, problem.Holds("solution parses", false, perr.Error()))
	}
	f := poly.Of(a, b, c)
	points := []float64{-b / (2 * a)}
	if disc := b*b - 4*a*c; disc >= -numeric.Epsilon {
		sq := math.Sqrt(math.Max(disc, 0))
		r1, r2 := (-b-sq)/(2*a), (-b+sq)/(2*a)
		if r1 > r2 {
			r1, r2 = r2, r1
		}
		points = append(points, r1, r2, (r1+r2)/2, r1-1, r2+1, r1-100, r2+100)
	} else {
		points = append(points, points[0]-1, points[0]+1, points[0]-100, points[0]+100)
	}
	var checks []problem.Check
	for _, x := range points {
		v := f.Eval(x)
		if math.Abs(v) <= numeric.RootTolerance*termScale(f, x) {
			v = 0
		}
		want := rel.Holds(v)
		got := false
		for _, iv := range ivs {
			if iv.Contains(x) {
				got = true
				break
			}
		}
		checks = append(checks, problem.Holds(fmt.Sprintf("x = %s", numeric.Format(x)), got == want,
			fmt.Sprintf("f(x) = %s, in set: %t", numeric.Format(v), got)))
	}
	return problem.Verify("interval-test", numeric.RootTolerance, checks...)
}

func verifyBiquadratic(p problem.Problem, s problem.Solution) problem.Verification {
	a, b, c, err := coefficients("verify", p.Params)
	if err != nil {
		return invalid(err)
	}
	f := poly.Of(a, 0, b, 0, c)
	var checks []problem.Check
	for _, ans := range s.Answers {
		checks = append(checks, rootCheck(f, ans))
	}
	want := 4
	disc := b*b - 4*a*c
	switch {
	case numeric.IsZero(disc):
		want = 2
		if numeric.IsZero(b) {
			want = 1
		}
	case disc > 0 && numeric.IsZero(c):
		want = 3
	}
	checks = append(checks, problem.Holds("distinct root count", len(s.Answers) == want,
		fmt.Sprintf("expected %d, got %d", want, len(s.Answers))))
	return problem.Verify("substitution", numeric.RootTolerance, checks...)
}
