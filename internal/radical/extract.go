package radical

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/njchilds90/goworkbook/internal/poly"
	"github.com/njchilds90/goworkbook/internal/problem"
)

var (
	cleaners = []struct {
		re   *regexp.Regexp
		repl string
	}{
		{regexp.MustCompile(`(?i)\\?sqrt\s*[({]\s*(-?\d+)\s*[)}]`), "√$1"},
		{regexp.MustCompile(`(?i)cbrt\s*\(\s*(-?\d+)\s*\)`), "∛$1"},
		{regexp.MustCompile(`([√∛∜])\s*\(\s*(-?\d+)\s*\)`), "$1$2"},
		{regexp.MustCompile(`\s+`), " "},
	}

	termRe      = regexp.MustCompile(`(-?\d*)\s*√\s*(-?\d+)`)
	numberRe    = regexp.MustCompile(`-?\d+(?:\.\d+)?`)
	pointRe     = regexp.MustCompile(`\(\s*(-?\d+(?:\.\d+)?)\s*,\s*(-?\d+(?:\.\d+)?)\s*\)`)
	sideRe      = regexp.MustCompile(`(?i)\b([abc])\s*=\s*(\d+(?:\.\d+)?)`)
	hypotenuse  = regexp.MustCompile(`(?i)hypotenuse\D*?(\d+(?:\.\d+)?)`)
	exponentRe  = regexp.MustCompile(`\(?\s*(-?\d+)\s*\)?\s*\^\s*\(?\s*(-?\d+)\s*/\s*(\d+)\s*\)?`)
	fractionRe  = regexp.MustCompile(`(-?\d+)\s*/\s*(\d*)\s*√\s*(\d+)`)
	superRoot   = regexp.MustCompile(`([⁰¹²³⁴⁵⁶⁷⁸⁹]+)√\s*(-?\d+)`)
	ordinalRoot = regexp.MustCompile(`(?i)(\d+)(?:st|nd|rd|th)\s+root\s+of\s+(-?\d+)`)
	namedRoot   = regexp.MustCompile(`(?i)(cube|fourth|fifth)\s+root\s+of\s+(-?\d+)`)
	symbolRoot  = regexp.MustCompile(`(-?\d*)\s*([∛∜])\s*(-?\d+)`)
	equationRe  = regexp.MustCompile(`[-+]?\s*[\d./]*\s*x\s*(?:\^2|²)[\dx²^+\-*/.\s]*=\s*-?[\d.]+`)
	coeffRe     = regexp.MustCompile(`(?i)\ba\s*=\s*(-?[\d./]+)|\bb\s*=\s*(-?[\d./]+)|\bc\s*=\s*(-?[\d./]+)`)
)

// Clean normalises radical notation: sqrt(n), \sqrt{n} and √(n) become √n,
// cbrt(n) becomes ∛n, and whitespace runs collapse to one space.
func Clean(input string) string {
	s := strings.TrimSpace(input)
	for _, c := range cleaners {
		s = c.re.ReplaceAllString(s, c.repl)
	}
	return s
}

// coefficient reads an optional leading coefficient: "" is 1, "-" is -1.
func coefficient(s string) int64 {
	switch s {
	case "":
		return 1
	case "-":
		return -1
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 1
	}
	return n
}

func atoi(s string) int64 {
	n, _ := strconv.ParseInt(s, 10, 64)
	return n
}

func atof(s string) float64 {
	f, _ := strconv.ParseFloat(s, 64)
	return f
}

// termParams reads the first two c√r terms found in text, for keyword and
// scenario matches where the shape pattern supplied no groups.
func termParams(clean string) problem.Params {
	params := problem.Params{}
	for i, t := range termRe.FindAllStringSubmatch(clean, 2) {
		suffix := strconv.Itoa(i + 1)
		params["coefficient"+suffix] = coefficient(t[1])
		params["radicand"+suffix] = atoi(t[2])
	}
	return params
}

func extractAddSubtract(groups []string, clean string) problem.Params {
	if len(groups) == 6 {
		return problem.Params{
			"coefficient1": coefficient(groups[1]),
			"radicand1":    atoi(groups[2]),
			"operator":     groups[3],
			"coefficient2": coefficient(groups[4]),
			"radicand2":    atoi(groups[5]),
		}
	}
	params := termParams(clean)
	params["operator"] = "+"
	if strings.Contains(strings.ToLower(clean), "subtract") {
		params["operator"] = "-"
	}
	return params
}

func extractPair(groups []string, clean string) problem.Params {
	if len(groups) == 5 {
		return problem.Params{
			"coefficient1": coefficient(groups[1]),
			"radicand1":    atoi(groups[2]),
			"coefficient2": coefficient(groups[3]),
			"radicand2":    atoi(groups[4]),
		}
	}
	return termParams(clean)
}

func extractRationalize(_ []string, clean string) problem.Params {
	params := problem.Params{}
	if m := fractionRe.FindStringSubmatch(clean); m != nil {
		params["numerator"] = atoi(m[1])
		params["coefficient"] = coefficient(m[2])
		params["radicand"] = atoi(m[3])
	}
	return params
}

func extractHigherIndex(_ []string, clean string) problem.Params {
	params := problem.Params{}
	if m := superRoot.FindStringSubmatch(clean); m != nil {
		params["index"] = superscriptValue(m[1])
		params["radicand"] = atoi(m[2])
		return params
	}
	if m := symbolRoot.FindStringSubmatch(clean); m != nil {
		params["coefficient"] = coefficient(m[1])
		params["index"] = int64(3)
		if m[2] == "∜" {
			params["index"] = int64(4)
		}
		params["radicand"] = atoi(m[3])
		return params
	}
	if m := ordinalRoot.FindStringSubmatch(clean); m != nil {
		params["index"] = atoi(m[1])
		params["radicand"] = atoi(m[2])
		return params
	}
	if m := namedRoot.FindStringSubmatch(clean); m != nil {
		params["index"] = map[string]int64{"cube": 3, "fourth": 4, "fifth": 5}[strings.ToLower(m[1])]
		params["radicand"] = atoi(m[2])
	}
	return params
}

var superDigits = []rune("⁰¹²³⁴⁵⁶⁷⁸⁹")

func superscriptValue(s string) int64 {
	var n int64
	for _, r := range s {
		for d, sd := range superDigits {
			if r == sd {
				n = n*10 + int64(d)
			}
		}
	}
	return n
}

func extractRationalExponent(_ []string, clean string) problem.Params {
	params := problem.Params{}
	if m := exponentRe.FindStringSubmatch(clean); m != nil {
		params["base"] = atoi(m[1])
		params["numerator"] = atoi(m[2])
		params["denominator"] = atoi(m[3])
	}
	return params
}

func extractPythagorean(_ []string, clean string) problem.Params {
	params := problem.Params{}
	for _, m := range sideRe.FindAllStringSubmatch(clean, -1) {
		params[strings.ToLower(m[1])] = atof(m[2])
	}
	if len(params) >= 2 {
		return params
	}
	params = problem.Params{}
	nums := numberRe.FindAllString(clean, -1)
	if h := hypotenuse.FindStringSubmatch(clean); h != nil && len(nums) >= 2 {
		params["c"] = atof(h[1])
		for _, n := range nums {
			if n != h[1] {
				params["a"] = atof(n)
				break
			}
		}
		return params
	}
	if len(nums) >= 2 {
		params["a"], params["b"] = atof(nums[0]), atof(nums[1])
	}
	return params
}

func extractDistance(_ []string, clean string) problem.Params {
	params := problem.Params{}
	pts := pointRe.FindAllStringSubmatch(clean, 2)
	if len(pts) == 2 {
		params["x1"], params["y1"] = atof(pts[0][1]), atof(pts[0][2])
		params["x2"], params["y2"] = atof(pts[1][1]), atof(pts[1][2])
	}
	return params
}

// extractQuadratic reads a, b and c from "a=1, b=4, c=1" or from an
// equation in x.
func extractQuadratic(_ []string, clean string) problem.Params {
	params := problem.Params{}
	for _, m := range coeffRe.FindAllStringSubmatch(clean, -1) {
		for i, key := range []string{"a", "b", "c"} {
			if m[i+1] != "" {
				if v, err := poly.ParseCoefficient(m[i+1]); err == nil {
					params[key] = v
				}
			}
		}
	}
	if len(params) == 3 {
		return params
	}
	eq := equationRe.FindString(clean)
	if eq == "" {
		return params
	}
	p, _, err := poly.ParseStatement(eq, "x")
	if err != nil || p.Degree() > 2 {
		return params
	}
	return problem.Params{"a": p.Coeff(2), "b": p.Coeff(1), "c": p.Coeff(0)}
}

func extractSimplify(_ []string, clean string) problem.Params {
	if p := extractHigherIndex(nil, clean); len(p) > 0 {
		return p
	}
	params := problem.Params{}
	if m := termRe.FindStringSubmatch(clean); m != nil {
		params["coefficient"] = coefficient(m[1])
		params["radicand"] = atoi(m[2])
		params["index"] = int64(2)
		return params
	}
	if nums := numberRe.FindAllString(clean, 1); len(nums) == 1 && !strings.Contains(nums[0], ".") {
		params["radicand"] = atoi(nums[0])
	}
	return params
}
