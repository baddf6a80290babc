package quadratic

import (
	"fmt"
	"math"
	"sort"

	"github.com/njchilds90/goworkbook/internal/numeric"
	"github.com/njchilds90/goworkbook/internal/poly"
	"github.com/njchilds90/goworkbook/internal/problem"
)

// Factorization is the detail of a factoring solution:
// ax² + bx + c = g(px + q)(rx + s).
type Factorization struct {
	A       int64 `json:"a"`
	B       int64 `json:"b"`
	C       int64 `json:"c"`
	Content int64 `json:"content"`
	// Method is "simple" for a monic trinomial and "ac" otherwise.
	Method string `json:"method"`
	// Split is the pair with product ac and sum b.
	Split    [2]int64 `json:"split"`
	Factors  [2]Linear `json:"factors"`
	Factored string    `json:"factored"`
	Roots    []float64 `json:"roots"`
	// Complex holds the factorization over ℂ when no real one exists.
	Complex string `json:"complex_factorization,omitempty"`
}

// Linear is px + q.
type Linear struct {
	P int64 `json:"p"`
	Q int64 `json:"q"`
}

// Root is -q/p.
func (l Linear) Root() float64 { return -float64(l.Q) / float64(l.P) }

func (l Linear) String() string {
	lead := "x"
	if l.P != 1 {
		lead = fmt.Sprintf("%dx", l.P)
	}
	switch {
	case l.Q > 0:
		return fmt.Sprintf("%s + %d", lead, l.Q)
	case l.Q < 0:
		return fmt.Sprintf("%s - %d", lead, -l.Q)
	}
	return lead
}

// Render writes g(px + q)(rx + s), collapsing a repeated factor to a
// square and leaving a bare x unbracketed.
func (f Factorization) Render() string {
	lead := ""
	switch f.Content {
	case 1:
	case -1:
		lead = "-"
	default:
		lead = fmt.Sprint(f.Content)
	}
	wrap := func(l Linear) string {
		if l.P == 1 && l.Q == 0 {
			return "x"
		}
		return "(" + l.String() + ")"
	}
	if f.Factors[0] == f.Factors[1] {
		return lead + wrap(f.Factors[0]) + "²"
	}
	first, second := wrap(f.Factors[0]), wrap(f.Factors[1])
	// A bare x reads better in front: x(x + 3).
	if second == "x" {
		first, second = second, first
	}
	return lead + first + second
}

// Poly expands the factorization.
func (f Factorization) Poly() poly.Poly {
	l := func(x Linear) poly.Poly { return poly.Of(float64(x.P), float64(x.Q)) }
	return l(f.Factors[0]).Mul(l(f.Factors[1])).Scale(float64(f.Content))
}

// signedDivisors lists ± the divisors of n in ascending order: negatives
// by decreasing magnitude, then positives by increasing magnitude.
func signedDivisors(n int64) []int64 {
	pos := numeric.Divisors(n)
	out := make([]int64, 0, 2*len(pos))
	for i := len(pos) - 1; i >= 0; i-- {
		out = append(out, -pos[i])
	}
	return append(out, pos...)
}

// splitPair finds i, j with i·j = product and i + j = sum, searching the
// divisors of product in ascending order.
func splitPair(product, sum int64) (int64, int64, bool) {
	if product == 0 {
		return 0, sum, true
	}
	for _, i := range signedDivisors(product) {
		j := product / i
		if i+j == sum {
			return i, j, true
		}
	}
	return 0, 0, false
}

// group factors ax² + ix + jx + c by grouping. It requires i·j = a·c and
// content(a, b, c) = 1.
func group(a, i, j int64) [2]Linear {
	g1 := numeric.GCD(a, i)
	if g1 == 0 {
		g1 = 1
	}
	if a < 0 {
		g1 = -g1
	}
	p, q := a/g1, i/g1
	s := j / p
	f := [2]Linear{{P: g1, Q: s}, {P: p, Q: q}}
	sort.SliceStable(f[:], func(x, y int) bool { return f[x].Root() > f[y].Root() })
	return f
}

func solveFactoring(p problem.Problem) problem.Solution {
	const op = "factor"
	af, bf, cf, err := coefficients(op, p.Params)
	if err != nil {
		return problem.Failure(p.Type, err)
	}
	if !poly.Of(af, bf, cf).IsIntegral() {
		return problem.Solution{
			Category: p.Type,
			Kind:     "not factorable",
			Summary:  "coefficients are not integers; use the quadratic formula",
			Detail:   Factorization{Roots: Analyze(af, bf, cf).Roots},
			Error: problem.NewError(problem.KindNotFactorable, op,
				"factoring over the integers needs integer coefficients; use the quadratic formula",
				"a", af, "b", bf, "c", cf),
		}
	}
	a, b, c := int64(math.Round(af)), int64(math.Round(bf)), int64(math.Round(cf))
	d := Factorization{A: a, B: b, C: c, Method: "simple"}

	g := numeric.GCD(numeric.GCD(a, b), c)
	if a < 0 {
		g = -g
	}
	d.Content = g
	a, b, c = a/g, b/g, c/g
	if a != 1 {
		d.Method = "ac"
	}

	an := Analyze(af, bf, cf)
	i, j, ok := int64(0), int64(0), false
	if an.RootType != ComplexRoots {
		if prod, okMul := numeric.CheckedMul(a, c); okMul {
			i, j, ok = splitPair(prod, b)
		}
	}
	if !ok {
		d.Roots = an.Roots
		msg := "no integer pair has product ac and sum b; use the quadratic formula"
		if an.RootType == ComplexRoots {
			d.Complex = fmt.Sprintf("%s(x - (%s))(x - (%s))", leadString(af), an.Complex[0], an.Complex[1])
			msg = "the discriminant is negative, so there are no real factors"
		}
		return problem.Solution{
			Category: p.Type,
			Kind:     "not factorable",
			Summary:  "not factorable over the integers",
			Detail:   d,
			Error: problem.NewError(problem.KindNotFactorable, op, msg,
				"a", af, "b", bf, "c", cf, "discriminant", an.Discriminant),
		}
	}
	d.Split = [2]int64{i, j}
	d.Factors = group(a, i, j)
	d.Factored = d.Render()
	for _, f := range d.Factors {
		d.Roots = append(d.Roots, f.Root())
	}
	sort.Float64s(d.Roots)
	if d.Factors[0] == d.Factors[1] {
		d.Roots = d.Roots[:1]
	}

	answers := []problem.Answer{problem.TextAnswer("factored", d.Factored)}
	roots := Analysis{Roots: d.Roots}
	answers = append(answers, rootAnswers(roots)...)
	return problem.Solution{
		Category: p.Type,
		Kind:     "factored",
		Answers:  answers,
		Summary:  d.Factored + " = 0, so " + rootSummary(roots),
		Detail:   d,
	}
}

func leadString(a float64) string {
	switch {
	case numeric.ApproxEqual(a, 1, numeric.Epsilon):
		return ""
	case numeric.ApproxEqual(a, -1, numeric.Epsilon):
		return "-"
	}
	return numeric.Format(a)
}
