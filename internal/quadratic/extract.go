package quadratic

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/njchilds90/goworkbook/internal/poly"
	"github.com/njchilds90/goworkbook/internal/problem"
)

var (
	cleaners = []struct {
		re   *regexp.Regexp
		repl string
	}{
		{regexp.MustCompile(`\s+`), " "},
		{regexp.MustCompile(`\*\*`), "^"},
		{regexp.MustCompile(`([a-z)])\^2\b`), "$1²"},
		{regexp.MustCompile(`\\?sqrt`), "√"},
		{regexp.MustCompile(`\\pm`), "±"},
		{regexp.MustCompile(`≤`), "<="},
		{regexp.MustCompile(`≥`), ">="},
	}

	coeffRe    = regexp.MustCompile(`(?i)\b([abc])\s*=\s*(-?[\d./]+)`)
	vertexRe   = regexp.MustCompile(`(-?[\d./]*)\s*\(\s*x\s*([-+])\s*([\d./]+)\s*\)\s*²\s*(?:([-+])\s*([\d./]+))?`)
	pointRe    = regexp.MustCompile(`\(\s*(-?[\d./]+)\s*,\s*(-?[\d./]+)\s*\)`)
	rootsRe    = regexp.MustCompile(`(?i)roots?\s*(?:are|of|at|:|=)?\s*(-?[\d./]+)\s*(?:,|and|&)\s*(-?[\d./]+)`)
	doubleRe   = regexp.MustCompile(`(?i)(?:double|repeated)\s+root\s*(?:of|at|is|:|=)?\s*(-?[\d./]+)`)
	leadingRe  = regexp.MustCompile(`(?i)leading\s+coefficient\s*(?:of|is|:|=)?\s*(-?[\d./]+)`)
	velocityRe = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(ft|feet|m|meters|metres)?\s*(?:/|per)\s*(?:s|sec|second)`)
	heightRe   = regexp.MustCompile(`(?i)(?:from|height\s+of|at)\s+(\d+(?:\.\d+)?)\s*(ft|feet|m|meters|metres)\b(?:[^/]|$)`)
	metricRe   = regexp.MustCompile(`(?i)\b(?:m/s|meters?|metres?|9\.8|4\.9)\b`)

	formulaRuns = map[string]*regexp.Regexp{"x": formulaRun("x"), "t": formulaRun("t")}
)

// formulaRun matches a stretch of characters that can belong to a
// polynomial statement in variable.
func formulaRun(variable string) *regexp.Regexp {
	return regexp.MustCompile(fmt.Sprintf(`[\d%s²³⁴^+\-*/.\s=<>]+`, variable))
}

// Clean normalises notation: whitespace runs collapse, ** becomes ^,
// squares of a variable or a bracket are written with ², sqrt becomes √
// and ≤ ≥ become <= >=.
func Clean(input string) string {
	s := strings.TrimSpace(input)
	for _, c := range cleaners {
		s = c.re.ReplaceAllString(s, c.repl)
	}
	return s
}

// statement finds the polynomial statement in variable with the highest
// degree among the runs of formula characters in text. Prose around the
// statement ("solve", "f(x) =") is ignored.
func statement(text, variable string) (poly.Poly, poly.Relation, bool) {
	run, ok := formulaRuns[variable]
	if !ok {
		run = formulaRun(variable)
	}
	var best poly.Poly
	var rel poly.Relation
	bestLen := 0
	for _, cand := range run.FindAllString(text, -1) {
		cand = strings.TrimSpace(cand)
		cand = strings.TrimLeft(cand, "=<> ")
		if !strings.Contains(cand, variable) {
			continue
		}
		p, r, err := poly.ParseStatement(cand, variable)
		if err != nil {
			continue
		}
		if best == nil || p.Degree() > best.Degree() || (p.Degree() == best.Degree() && len(cand) > bestLen) {
			best, rel, bestLen = p, r, len(cand)
		}
	}
	return best, rel, best != nil
}

// assignments reads "a = 2, b = -3, c = 1".
func assignments(clean string) problem.Params {
	params := problem.Params{}
	for _, m := range coeffRe.FindAllStringSubmatch(clean, -1) {
		if v, err := poly.ParseCoefficient(m[2]); err == nil {
			params[strings.ToLower(m[1])] = v
		}
	}
	return params
}

func number(s string) float64 {
	v, _ := poly.ParseCoefficient(s)
	return v
}

// extractEquation reads a, b and c from explicit assignments or from a
// quadratic statement in x. A statement of higher degree is recorded as
// such so the solver can reject it.
func extractEquation(_ []string, clean string) problem.Params {
	if params := assignments(clean); len(params) > 0 {
		return params
	}
	params := problem.Params{}
	p, _, ok := statement(clean, "x")
	if !ok {
		return params
	}
	if d := p.Degree(); d > 2 {
		params["degree"] = d
		return params
	}
	params["a"], params["b"], params["c"] = p.Coeff(2), p.Coeff(1), p.Coeff(0)
	return params
}

func extractInequality(groups []string, clean string) problem.Params {
	params := extractEquation(groups, clean)
	params["operator"] = string(poly.Greater)
	if _, rel, ok := statement(clean, "x"); ok && rel != poly.Equal {
		params["operator"] = string(rel)
	}
	return params
}

func extractBiquadratic(_ []string, clean string) problem.Params {
	if params := assignments(clean); len(params) > 0 {
		return params
	}
	params := problem.Params{}
	p, _, ok := statement(clean, "x")
	if !ok {
		return params
	}
	if p.Degree() != 4 || !p.HasOnlyEvenPowers() {
		params["degree"] = p.Degree()
		return params
	}
	params["a"], params["b"], params["c"] = p.Coeff(4), p.Coeff(2), p.Coeff(0)
	return params
}

// extractVertexForm reads a(x - h)² + k, a vertex point with an optional
// "a = ..." or, failing both, a standard-form equation.
func extractVertexForm(groups []string, clean string) problem.Params {
	if m := vertexRe.FindStringSubmatch(clean); m != nil {
		a, err := poly.ParseCoefficient(m[1])
		if err != nil {
			a = 1
		}
		h := number(m[3])
		if m[2] == "+" {
			h = -h
		}
		var k float64
		if m[5] != "" {
			k = number(m[5])
			if m[4] == "-" {
				k = -k
			}
		}
		return problem.Params{"a": a, "h": h, "k": k}
	}
	if m := pointRe.FindStringSubmatch(clean); m != nil {
		params := problem.Params{"h": number(m[1]), "k": number(m[2])}
		if a, ok := assignments(clean)["a"]; ok {
			params["a"] = a
		}
		return params
	}
	return extractEquation(groups, clean)
}

func extractInverse(_ []string, clean string) problem.Params {
	params := problem.Params{}
	if m := rootsRe.FindStringSubmatch(clean); m != nil {
		params["r1"], params["r2"] = number(m[1]), number(m[2])
	} else if m := doubleRe.FindStringSubmatch(clean); m != nil {
		params["r1"] = number(m[1])
	}
	if m := leadingRe.FindStringSubmatch(clean); m != nil {
		params["a"] = number(m[1])
	}
	return params
}

// extractProjectile reads h(t) = at² + bt + c, or a launch velocity and
// height from prose. Metric units switch gravity to -4.9 m/s².
func extractProjectile(_ []string, clean string) problem.Params {
	if p, _, ok := statement(clean, "t"); ok && p.Degree() == 2 {
		return problem.Params{"a": p.Coeff(2), "b": p.Coeff(1), "c": p.Coeff(0)}
	}
	params := problem.Params{}
	if metricRe.MatchString(clean) {
		params["a"] = -4.9
		params["units"] = "meters"
	}
	if m := velocityRe.FindStringSubmatch(clean); m != nil {
		params["b"] = number(m[1])
	}
	if m := heightRe.FindStringSubmatch(clean); m != nil {
		params["c"] = number(m[1])
	}
	return params
}
