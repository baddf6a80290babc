package quadratic

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/njchilds90/goworkbook/internal/numeric"
	"github.com/njchilds90/goworkbook/internal/poly"
	"github.com/njchilds90/goworkbook/internal/problem"
)

// Interval is a real interval; infinite ends are ±Inf and always open.
type Interval struct {
	Lo       float64 `json:"lo"`
	Hi       float64 `json:"hi"`
	LoClosed bool    `json:"lo_closed"`
	HiClosed bool    `json:"hi_closed"`
}

// Contains reports whether x lies in the interval. A point within
// RootTolerance of a finite end is in the interval iff that end is closed.
func (iv Interval) Contains(x float64) bool {
	return side(x, iv.Lo, iv.LoClosed, x > iv.Lo) && side(x, iv.Hi, iv.HiClosed, x < iv.Hi)
}

func side(x, end float64, closed, inside bool) bool {
	if !math.IsInf(end, 0) && numeric.ApproxEqual(x, end, numeric.RootTolerance) {
		return closed
	}
	return inside
}

func (iv Interval) String() string {
	if iv.LoClosed && iv.HiClosed && iv.Lo == iv.Hi {
		return "{" + numeric.Format(iv.Lo) + "}"
	}
	var sb strings.Builder
	if iv.LoClosed {
		sb.WriteString("[")
	} else {
		sb.WriteString("(")
	}
	sb.WriteString(endpoint(iv.Lo) + ", " + endpoint(iv.Hi))
	if iv.HiClosed {
		sb.WriteString("]")
	} else {
		sb.WriteString(")")
	}
	return sb.String()
}

// MarshalJSON writes infinite ends as null.
func (iv Interval) MarshalJSON() ([]byte, error) {
	end := func(x float64) *float64 {
		if math.IsInf(x, 0) {
			return nil
		}
		return &x
	}
	return json.Marshal(struct {
		Lo       *float64 `json:"lo"`
		Hi       *float64 `json:"hi"`
		LoClosed bool     `json:"lo_closed"`
		HiClosed bool     `json:"hi_closed"`
		Notation string   `json:"notation"`
	}{end(iv.Lo), end(iv.Hi), iv.LoClosed, iv.HiClosed, iv.String()})
}

func endpoint(x float64) string {
	switch {
	case math.IsInf(x, -1):
		return "-∞"
	case math.IsInf(x, 1):
		return "∞"
	}
	return numeric.Format(x)
}

// Notation joins intervals with ∪; the empty set is ∅.
func Notation(ivs []Interval) string {
	if len(ivs) == 0 {
		return "∅"
	}
	parts := make([]string, len(ivs))
	for i, iv := range ivs {
		parts[i] = iv.String()
	}
	return strings.Join(parts, " ∪ ")
}

var (
	intervalRe = regexp.MustCompile(`([\[(])\s*(-?∞|-?[\d.e+]+)\s*,\s*(-?∞|-?[\d.e+]+)\s*([\])])`)
	pointSetRe = regexp.MustCompile(`\{\s*(-?[\d.e+]+)\s*\}`)
)

// ParseNotation reads intervals written by Notation.
func ParseNotation(s string) ([]Interval, error) {
	s = strings.TrimSpace(s)
	if s == "∅" {
		return nil, nil
	}
	var out []Interval
	for _, part := range strings.Split(s, "∪") {
		part = strings.TrimSpace(part)
		if m := pointSetRe.FindStringSubmatch(part); m != nil {
			x, err := parseEndpoint(m[1])
			if err != nil {
				return nil, err
			}
			out = append(out, Interval{Lo: x, Hi: x, LoClosed: true, HiClosed: true})
			continue
		}
		m := intervalRe.FindStringSubmatch(part)
		if m == nil {
			return nil, fmt.Errorf("quadratic: malformed interval %q", part)
		}
		lo, err := parseEndpoint(m[2])
		if err != nil {
			return nil, err
		}
		hi, err := parseEndpoint(m[3])
		if err != nil {
			return nil, err
		}
		out = append(out, Interval{Lo: lo, Hi: hi, LoClosed: m[1] == "[", HiClosed: m[4] == "]"})
	}
	return out, nil
}

func parseEndpoint(s string) (float64, error) {
	switch s {
	case "-∞":
		return math.Inf(-1), nil
	case "∞":
		return math.Inf(1), nil
	}
	return poly.ParseCoefficient(s)
}

// InequalitySolution is the detail of an inequality solution. The
// inequality is normalised to a positive leading coefficient before the
// intervals are read off.
type InequalitySolution struct {
	Analysis
	Relation   poly.Relation `json:"relation"`
	Normalized bool          `json:"normalized"`
	Intervals  []Interval    `json:"intervals"`
	Notation   string        `json:"notation"`
	Set        string        `json:"set"`
}

// Inequality renders the normalised inequality.
func (d InequalitySolution) Inequality() string {
	return equation(d.A, d.B, d.C, d.Relation.Symbol()+" 0")
}

// solveIntervals finds where an upward parabola with the given real roots
// satisfies rel against zero.
func solveIntervals(roots []float64, rel poly.Relation) []Interval {
	inf := math.Inf(1)
	closed := !rel.Strict()
	above := rel == poly.Greater || rel == poly.GreaterEq
	all := []Interval{{Lo: -inf, Hi: inf}}
	switch len(roots) {
	case 0:
		if above {
			return all
		}
		return nil
	case 1:
		r := roots[0]
		switch rel {
		case poly.Greater:
			return []Interval{{Lo: -inf, Hi: r}, {Lo: r, Hi: inf}}
		case poly.GreaterEq:
			return all
		case poly.LessEq:
			return []Interval{{Lo: r, Hi: r, LoClosed: true, HiClosed: true}}
		}
		return nil
	}
	r1, r2 := roots[0], roots[1]
	if above {
		return []Interval{{Lo: -inf, Hi: r1, HiClosed: closed}, {Lo: r2, Hi: inf, LoClosed: closed}}
	}
	return []Interval{{Lo: r1, Hi: r2, LoClosed: closed, HiClosed: closed}}
}

// describe writes the solution set in words.
func describe(ivs []Interval) string {
	if len(ivs) == 0 {
		return "no real solution"
	}
	var parts []string
	for _, iv := range ivs {
		lo, hi := math.IsInf(iv.Lo, -1), math.IsInf(iv.Hi, 1)
		le := func(closed bool) string {
			if closed {
				return "≤"
			}
			return "<"
		}
		ge := func(closed bool) string {
			if closed {
				return "≥"
			}
			return ">"
		}
		switch {
		case lo && hi:
			return "all real numbers"
		case iv.Lo == iv.Hi:
			parts = append(parts, "x = "+numeric.Format(iv.Lo))
		case lo:
			parts = append(parts, fmt.Sprintf("x %s %s", le(iv.HiClosed), numeric.Format(iv.Hi)))
		case hi:
			parts = append(parts, fmt.Sprintf("x %s %s", ge(iv.LoClosed), numeric.Format(iv.Lo)))
		default:
			parts = append(parts, fmt.Sprintf("%s %s x %s %s",
				numeric.Format(iv.Lo), le(iv.LoClosed), le(iv.HiClosed), numeric.Format(iv.Hi)))
		}
	}
	if len(ivs) == 2 && !ivs[0].HiClosed && !ivs[1].LoClosed && ivs[0].Hi == ivs[1].Lo {
		return "all real numbers except x = " + numeric.Format(ivs[0].Hi)
	}
	return strings.Join(parts, " or ")
}

func solveInequality(p problem.Problem) problem.Solution {
	const op = "inequality"
	a, b, c, err := coefficients(op, p.Params)
	if err != nil {
		return problem.Failure(p.Type, err)
	}
	rel, perr := poly.ParseRelation(p.Params.String("operator", string(poly.Greater)))
	if perr != nil || rel == poly.Equal {
		return problem.Failure(p.Type, problem.NewError(problem.KindInvalidParameters, op,
			"the operator must be one of <, <=, >, >=", "operator", p.Params["operator"]))
	}
	d := InequalitySolution{Relation: rel}
	if a < 0 {
		a, b, c, rel = -a, -b, -c, rel.Flip()
		d.Relation, d.Normalized = rel, true
	}
	d.Analysis = Analyze(a, b, c)
	d.Intervals = solveIntervals(d.Roots, rel)
	d.Notation = Notation(d.Intervals)
	d.Set = describe(d.Intervals)
	return problem.Solution{
		Category: p.Type,
		Kind:     "inequality",
		Answers: []problem.Answer{
			problem.TextAnswer("solution", d.Notation),
			problem.TextAnswer("set", d.Set),
		},
		Summary: d.Inequality() + ": " + d.Set,
		Detail:  d,
	}
}
