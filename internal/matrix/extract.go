package matrix

import (
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/njchilds90/goworkbook/internal/poly"
	"github.com/njchilds90/goworkbook/internal/problem"
)

var (
	cleaners = []struct {
		re   *regexp.Regexp
		repl string
	}{
		{regexp.MustCompile(`\s+`), " "},
		{regexp.MustCompile(`−`), "-"},
		{regexp.MustCompile(`\^\{?-1\}?`), "^-1"},
		{regexp.MustCompile(`\^\{?T\}?`), "^T"},
	}

	// A literal is a flow sequence of flow sequences; rows close with "],"
	// so the first "]]" ends it.
	namedMatrixRe = regexp.MustCompile(`\b([A-Z])\s*=\s*(\[\s*\[.*?\]\s*\])`)
	namedVectorRe = regexp.MustCompile(`\b([a-z])\s*=\s*(\[[^\[\]]*\])`)
	bareMatrixRe  = regexp.MustCompile(`\[\s*\[.*?\]\s*\]`)
	scalarRe      = regexp.MustCompile(`(?i)(?:\bscalar(?:\s+of)?|\bby|\bk\s*=|\btimes)\s*(-?\d+(?:\.\d+)?(?:/\d+)?)\b`)
	subtractRe    = regexp.MustCompile(`(?i)\bsubtract|\bminus\b|\bdifference\b|\bA\s*-\s*B\b`)
)

// Clean collapses whitespace and normalises minus signs and the ^-1 and
// ^T superscripts. Case is kept: operand names are case sensitive.
func Clean(input string) string {
	s := strings.TrimSpace(input)
	for _, c := range cleaners {
		s = c.re.ReplaceAllString(s, c.repl)
	}
	return s
}

// extractOperands reads matrix literals, vectors, a scalar and the
// add/subtract choice from the text. Named literals (A=[[1,2],[3,4]])
// keep their names; otherwise bare literals are A then B.
func extractOperands(_ []string, clean string) problem.Params {
	params := problem.Params{}
	for _, m := range namedMatrixRe.FindAllStringSubmatch(clean, -1) {
		if g, ok := parseGrid(m[2]); ok {
			params[m[1]] = g
		}
	}
	if !params.Has("A") {
		names := []string{"A", "B"}
		for i, lit := range bareMatrixRe.FindAllString(clean, 2) {
			if g, ok := parseGrid(lit); ok {
				params[names[i]] = g
			}
		}
	}
	for _, m := range namedVectorRe.FindAllStringSubmatch(clean, -1) {
		if v, ok := parseVector(m[2]); ok {
			params[m[1]] = v
		}
	}
	if m := scalarRe.FindStringSubmatch(clean); m != nil {
		if k, err := poly.ParseCoefficient(m[1]); err == nil {
			params["scalar"] = k
		}
	}
	if subtractRe.MatchString(clean) {
		params["operation"] = "subtract"
	}
	return params
}

// parseGrid decodes a literal as a YAML flow sequence. Entries are read as
// strings first so that fractions such as 1/2 are accepted.
func parseGrid(lit string) ([][]float64, bool) {
	var raw [][]string
	if err := yaml.Unmarshal([]byte(lit), &raw); err != nil || len(raw) == 0 {
		return nil, false
	}
	out := make([][]float64, len(raw))
	for i, row := range raw {
		if len(row) == 0 || len(row) != len(raw[0]) {
			return nil, false
		}
		out[i] = make([]float64, len(row))
		for j, s := range row {
			x, ok := entry(s)
			if !ok {
				return nil, false
			}
			out[i][j] = x
		}
	}
	return out, true
}

func parseVector(lit string) ([]float64, bool) {
	var raw []string
	if err := yaml.Unmarshal([]byte(lit), &raw); err != nil || len(raw) == 0 {
		return nil, false
	}
	out := make([]float64, len(raw))
	for i, s := range raw {
		x, ok := entry(s)
		if !ok {
			return nil, false
		}
		out[i] = x
	}
	return out, true
}

// entry parses one literal entry; unlike a coefficient, an empty entry or
// a bare sign is not 1.
func entry(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" || s == "+" || s == "-" {
		return 0, false
	}
	x, err := poly.ParseCoefficient(s)
	return x, err == nil
}
