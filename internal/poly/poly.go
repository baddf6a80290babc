// Package poly reads single-variable polynomials written in the usual
// textbook notation ("2x² - 5x + 3 = 0", "x^4 - 5x^2 + 4") into a map of
// degree to coefficient, and evaluates and prints them.
package poly

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/njchilds90/goworkbook/internal/numeric"
)

// ============================================================
// Poly: coefficients by degree
// ============================================================

// Poly maps degree to coefficient. Missing degrees are zero.
type Poly map[int]float64

// Of builds a polynomial from coefficients in descending degree order:
// Of(1, -5, 6) is x² - 5x + 6.
func Of(coeffs ...float64) Poly {
	p := Poly{}
	n := len(coeffs) - 1
	for i, c := range coeffs {
		if c != 0 {
			p[n-i] = c
		}
	}
	return p
}

func (p Poly) Coeff(deg int) float64 { return p[deg] }

// Degree is the highest degree with a nonzero coefficient; the zero
// polynomial has degree 0.
func (p Poly) Degree() int {
	d := 0
	for k, c := range p {
		if k > d && !numeric.IsZero(c) {
			d = k
		}
	}
	return d
}

// Sub returns p - o.
func (p Poly) Sub(o Poly) Poly {
	out := Poly{}
	for k, c := range p {
		out[k] += c
	}
	for k, c := range o {
		out[k] -= c
	}
	return out.prune()
}

// Scale returns k·p.
func (p Poly) Scale(k float64) Poly {
	out := Poly{}
	for d, c := range p {
		out[d] = c * k
	}
	return out.prune()
}

// Mul returns p·o.
func (p Poly) Mul(o Poly) Poly {
	out := Poly{}
	for d1, c1 := range p {
		for d2, c2 := range o {
			out[d1+d2] += c1 * c2
		}
	}
	return out.prune()
}

func (p Poly) prune() Poly {
	for k, c := range p {
		if c == 0 {
			delete(p, k)
		}
	}
	return p
}

// Eval evaluates p at x by Horner's rule.
func (p Poly) Eval(x float64) float64 {
	var acc float64
	for d := p.Degree(); d >= 0; d-- {
		acc = acc*x + p[d]
	}
	return acc
}

// EvalComplex evaluates p at z.
func (p Poly) EvalComplex(z complex128) complex128 {
	var acc complex128
	for d := p.Degree(); d >= 0; d-- {
		acc = acc*z + complex(p[d], 0)
	}
	return acc
}

// HasOnlyEvenPowers reports whether every nonzero term has even degree.
func (p Poly) HasOnlyEvenPowers() bool {
	for d, c := range p {
		if d%2 != 0 && !numeric.IsZero(c) {
			return false
		}
	}
	return true
}

// IsIntegral reports whether every coefficient is an integer.
func (p Poly) IsIntegral() bool {
	for _, c := range p {
		if !numeric.IsInteger(c) {
			return false
		}
	}
	return true
}

// String renders p in descending order, e.g. "2x² - 5x + 3".
func (p Poly) String() string { return p.Format("x") }

// Format renders p with the given variable name.
func (p Poly) Format(variable string) string {
	degs := make([]int, 0, len(p))
	for d, c := range p {
		if !numeric.IsZero(c) {
			degs = append(degs, d)
		}
	}
	if len(degs) == 0 {
		return "0"
	}
	sort.Sort(sort.Reverse(sort.IntSlice(degs)))

	var sb strings.Builder
	for i, d := range degs {
		c := p[d]
		switch {
		case i == 0 && c < 0:
			sb.WriteString("-")
		case i > 0 && c < 0:
			sb.WriteString(" - ")
		case i > 0:
			sb.WriteString(" + ")
		}
		abs := c
		if abs < 0 {
			abs = -abs
		}
		if d == 0 || !numeric.ApproxEqual(abs, 1, numeric.Epsilon) {
			sb.WriteString(numeric.Format(abs))
		}
		if d > 0 {
			sb.WriteString(variable)
			sb.WriteString(Power(d))
		}
	}
	return sb.String()
}

// Power renders an exponent as a superscript suffix; degree 1 is empty.
func Power(d int) string {
	switch d {
	case 1:
		return ""
	case 2:
		return "²"
	case 3:
		return "³"
	case 4:
		return "⁴"
	}
	return "^" + strconv.Itoa(d)
}

// ============================================================
// Parsing
// ============================================================

// Relation is the comparison between the two sides of a parsed statement.
type Relation string

const (
	Equal     Relation = "="
	Less      Relation = "<"
	Greater   Relation = ">"
	LessEq    Relation = "<="
	GreaterEq Relation = ">="
)

var (
	complexRe  = regexp.MustCompile(`^\s*(-?[\d.]+)\s*([+-])\s*([\d.]+)i\s*$`)
	relationRe = regexp.MustCompile(`<=|>=|≤|≥|<|>|=`)
	termRe     = regexp.MustCompile(`^(\d*\.?\d*(?:/\d*\.?\d+)?)\*?(?:([a-z])(?:\^\(?(\d+)\)?)?)?$`)
	normalizer = strings.NewReplacer(
		" ", "", "**", "^", "²", "^2", "³", "^3", "⁴", "^4",
		"−", "-", "·", "*", "≤", "<=", "≥", ">=",
	)
)

// Parse reads a polynomial in variable. Terms are numbers, the variable or
// its powers, optionally with a leading coefficient such as 3, 0.5 or 3/2.
func Parse(expr, variable string) (Poly, error) {
	s := strings.ToLower(normalizer.Replace(expr))
	if s == "" {
		return nil, fmt.Errorf("poly: empty expression")
	}
	if s[0] != '+' && s[0] != '-' {
		s = "+" + s
	}
	out := Poly{}
	for len(s) > 0 {
		sign := 1.0
		if s[0] == '-' {
			sign = -1
		}
		s = s[1:]
		end := strings.IndexAny(s, "+-")
		term := s
		if end >= 0 {
			term, s = s[:end], s[end:]
		} else {
			s = ""
		}
		deg, coeff, err := parseTerm(term, variable)
		if err != nil {
			return nil, err
		}
		out[deg] += sign * coeff
	}
	return out.prune(), nil
}

func parseTerm(term, variable string) (int, float64, error) {
	m := termRe.FindStringSubmatch(term)
	if m == nil || (m[1] == "" && m[2] == "") {
		return 0, 0, fmt.Errorf("poly: cannot read term %q", term)
	}
	if m[2] != "" && m[2] != variable {
		return 0, 0, fmt.Errorf("poly: unexpected variable %q in term %q", m[2], term)
	}
	coeff, err := ParseCoefficient(m[1])
	if err != nil {
		return 0, 0, err
	}
	deg := 0
	if m[2] != "" {
		deg = 1
		if m[3] != "" {
			deg, _ = strconv.Atoi(m[3])
		}
	}
	return deg, coeff, nil
}

// ParseCoefficient reads a numeric coefficient: "" means 1, fractions such
// as "3/2" are divided out.
func ParseCoefficient(s string) (float64, error) {
	s = strings.TrimSpace(s)
	switch s {
	case "", "+":
		return 1, nil
	case "-":
		return -1, nil
	}
	if num, den, ok := strings.Cut(s, "/"); ok {
		n, err := ParseCoefficient(num)
		if err != nil {
			return 0, err
		}
		d, err := strconv.ParseFloat(den, 64)
		if err != nil || d == 0 {
			return 0, fmt.Errorf("poly: bad fraction %q", s)
		}
		return n / d, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("poly: bad coefficient %q", s)
	}
	return f, nil
}

// ParseStatement reads "lhs REL rhs" and returns lhs - rhs with the
// relation. A bare expression is treated as "expr = 0".
func ParseStatement(stmt, variable string) (Poly, Relation, error) {
	s := normalizer.Replace(stmt)
	locs := relationRe.FindAllStringIndex(s, -1)
	switch len(locs) {
	case 0:
		p, err := Parse(s, variable)
		return p, Equal, err
	case 1:
	default:
		return nil, "", fmt.Errorf("poly: more than one relation in %q", stmt)
	}
	rel := Relation(s[locs[0][0]:locs[0][1]])
	lhs, err := Parse(s[:locs[0][0]], variable)
	if err != nil {
		return nil, "", err
	}
	rhs, err := Parse(s[locs[0][1]:], variable)
	if err != nil {
		return nil, "", err
	}
	return lhs.Sub(rhs), rel, nil
}

// Flip mirrors a relation, as when both sides are multiplied by -1.
func (r Relation) Flip() Relation {
	switch r {
	case Less:
		return Greater
	case Greater:
		return Less
	case LessEq:
		return GreaterEq
	case GreaterEq:
		return LessEq
	}
	return r
}

// Strict reports whether boundary points are excluded.
func (r Relation) Strict() bool { return r == Less || r == Greater }

// Holds evaluates "v REL 0".
func (r Relation) Holds(v float64) bool {
	switch r {
	case Less:
		return v < 0
	case Greater:
		return v > 0
	case LessEq:
		return v <= 0
	case GreaterEq:
		return v >= 0
	}
	return v == 0
}

// Symbol renders the relation with typographic operators.
func (r Relation) Symbol() string {
	switch r {
	case LessEq:
		return "≤"
	case GreaterEq:
		return "≥"
	}
	return string(r)
}

// ParseRelation accepts ASCII or typographic operators.
func ParseRelation(s string) (Relation, error) {
	r := Relation(normalizer.Replace(strings.TrimSpace(s)))
	switch r {
	case Equal, Less, Greater, LessEq, GreaterEq:
		return r, nil
	}
	return "", fmt.Errorf("poly: unknown relation %q", s)
}

// ComplexRootString formats re ± im·i for display.
func ComplexRootString(z complex128) string {
	re, im := real(z), imag(z)
	sign := "+"
	if im < 0 {
		sign, im = "-", -im
	}
	return fmt.Sprintf("%s %s %si", numeric.Format(re), sign, numeric.Format(im))
}

// ParseComplex reads the output of ComplexRootString back.
func ParseComplex(s string) (complex128, error) {
	m := complexRe.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("poly: not a complex number %q", s)
	}
	r, _ := strconv.ParseFloat(m[1], 64)
	i, _ := strconv.ParseFloat(m[3], 64)
	if m[2] == "-" {
		i = -i
	}
	return complex(r, i), nil
}
