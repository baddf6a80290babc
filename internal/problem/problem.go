// Package problem defines the values that flow through the classify, solve,
// verify and explain pipeline.
package problem

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/njchilds90/goworkbook/internal/numeric"
)

// Domain selects a solver registry.
type Domain string

const (
	DomainRadical   Domain = "radical"
	DomainQuadratic Domain = "quadratic"
	DomainMatrix    Domain = "matrix"
)

// Domains lists every supported domain in a stable order.
var Domains = []Domain{DomainRadical, DomainQuadratic, DomainMatrix}

// ParseDomain accepts a domain name case-insensitively.
func ParseDomain(s string) (Domain, error) {
	d := Domain(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Domains {
		if d == known {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown domain %q (want radical, quadratic or matrix)", s)
}

// TypeID is a problem type tag from a domain's closed set.
type TypeID string

// Problem is a classified problem. It is built once and treated as
// read-only afterwards; Params is a private copy.
type Problem struct {
	OriginalInput string `json:"original_input"`
	CleanInput    string `json:"clean_input,omitempty"`
	Domain        Domain `json:"domain"`
	Type          TypeID `json:"type"`
	Scenario      string `json:"scenario,omitempty"`
	Params        Params `json:"parameters"`
}

// New builds a Problem, copying params.
func New(domain Domain, typ TypeID, original, clean, scenario string, params Params) Problem {
	return Problem{
		OriginalInput: original,
		CleanInput:    clean,
		Domain:        domain,
		Type:          typ,
		Scenario:      scenario,
		Params:        params.Clone(),
	}
}

// Params holds extracted or supplied parameters. Values are float64, int,
// string, []float64 or [][]float64; values decoded from JSON or YAML
// ([]any, json.Number) are accepted by the getters too.
type Params map[string]any

func (p Params) Has(key string) bool {
	_, ok := p[key]
	return ok
}

func (p Params) Clone() Params {
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Merge returns a new map with over's entries taking precedence.
func (p Params) Merge(over Params) Params {
	out := p.Clone()
	for k, v := range over {
		out[k] = v
	}
	return out
}

// Float returns the numeric value at key, or def when absent or not numeric.
func (p Params) Float(key string, def float64) float64 {
	v, ok := p[key]
	if !ok {
		return def
	}
	if f, ok := toFloat(v); ok {
		return f
	}
	return def
}

// Int returns the integer value at key, or def when absent or not an
// integer. Integer types are read exactly.
func (p Params) Int(key string, def int64) int64 {
	if n, ok := p.Integer(key); ok {
		return n
	}
	return def
}

// Integer returns the value at key when it is an integer that int64 holds
// exactly. A float is accepted only within ±2^53, where every integer is
// representable.
func (p Params) Integer(key string) (int64, bool) {
	v, ok := p[key]
	if !ok {
		return 0, false
	}
	return toInt(v)
}

// maxExactFloat is 2^53.
const maxExactFloat = 1 << 53

func toInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case int32:
		return int64(n), true
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
	case string:
		if i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64); err == nil {
			return i, true
		}
	}
	f, ok := toFloat(v)
	if !ok || math.IsNaN(f) || math.Abs(f) > maxExactFloat || !numeric.IsInteger(f) {
		return 0, false
	}
	return int64(math.Round(f)), true
}

func (p Params) String(key, def string) string {
	v, ok := p[key]
	if !ok {
		return def
	}
	switch s := v.(type) {
	case string:
		return s
	case fmt.Stringer:
		return s.String()
	default:
		return fmt.Sprint(v)
	}
}

// Matrix returns a rectangular [][]float64 operand.
func (p Params) Matrix(key string) ([][]float64, bool) {
	v, ok := p[key]
	if !ok {
		return nil, false
	}
	switch m := v.(type) {
	case [][]float64:
		return m, isRect(m)
	case [][]int:
		out := make([][]float64, len(m))
		for i, row := range m {
			out[i] = make([]float64, len(row))
			for j, x := range row {
				out[i][j] = float64(x)
			}
		}
		return out, isRect(out)
	case []any:
		out := make([][]float64, len(m))
		for i, row := range m {
			vec, ok := anyVector(row)
			if !ok {
				return nil, false
			}
			out[i] = vec
		}
		return out, isRect(out)
	}
	return nil, false
}

// Vector returns a []float64 operand.
func (p Params) Vector(key string) ([]float64, bool) {
	v, ok := p[key]
	if !ok {
		return nil, false
	}
	return anyVector(v)
}

func anyVector(v any) ([]float64, bool) {
	switch vec := v.(type) {
	case []float64:
		return vec, true
	case []int:
		out := make([]float64, len(vec))
		for i, x := range vec {
			out[i] = float64(x)
		}
		return out, true
	case []any:
		out := make([]float64, len(vec))
		for i, x := range vec {
			f, ok := toFloat(x)
			if !ok {
				return nil, false
			}
			out[i] = f
		}
		return out, true
	}
	return nil, false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	}
	return 0, false
}

func isRect(m [][]float64) bool {
	if len(m) == 0 || len(m[0]) == 0 {
		return false
	}
	for _, row := range m {
		if len(row) != len(m[0]) {
			return false
		}
	}
	return true
}

// Radical is c·ᵏ√r / d in simplest form. Radicand 1 means no radical part.
type Radical struct {
	Coefficient int64 `json:"coefficient"`
	Radicand    int64 `json:"radicand"`
	Index       int64 `json:"index"`
	Denominator int64 `json:"denominator,omitempty"`
}

// RootSymbol renders the radical sign for an index.
func RootSymbol(index int64) string {
	switch index {
	case 0, 2:
		return "√"
	case 3:
		return "∛"
	case 4:
		return "∜"
	}
	var sb strings.Builder
	for _, d := range strconv.FormatInt(index, 10) {
		sb.WriteRune(superscripts[d-'0'])
	}
	sb.WriteString("√")
	return sb.String()
}

var superscripts = []rune("⁰¹²³⁴⁵⁶⁷⁸⁹")

func (r Radical) String() string {
	den := r.Denominator
	if den == 0 {
		den = 1
	}
	var num string
	switch {
	case r.Coefficient == 0:
		return "0"
	case r.Radicand == 1:
		num = strconv.FormatInt(r.Coefficient, 10)
	case r.Coefficient == 1:
		num = RootSymbol(r.Index) + strconv.FormatInt(r.Radicand, 10)
	case r.Coefficient == -1:
		num = "-" + RootSymbol(r.Index) + strconv.FormatInt(r.Radicand, 10)
	case r.Index > 4:
		num = strconv.FormatInt(r.Coefficient, 10) + "·" + RootSymbol(r.Index) + strconv.FormatInt(r.Radicand, 10)
	default:
		num = strconv.FormatInt(r.Coefficient, 10) + RootSymbol(r.Index) + strconv.FormatInt(r.Radicand, 10)
	}
	if den == 1 {
		return num
	}
	if r.Radicand == 1 {
		return num + "/" + strconv.FormatInt(den, 10)
	}
	return "(" + num + ")/" + strconv.FormatInt(den, 10)
}

// Float evaluates the radical numerically.
func (r Radical) Float() float64 {
	den := r.Denominator
	if den == 0 {
		den = 1
	}
	idx := r.Index
	if idx == 0 {
		idx = 2
	}
	return float64(r.Coefficient) * math.Pow(float64(r.Radicand), 1/float64(idx)) / float64(den)
}

// Answer is one entry in a solution: a real number, a formatted symbolic
// value (complex roots, interval notation), a radical or a matrix.
type Answer struct {
	Label   string      `json:"label,omitempty"`
	Real    *float64    `json:"real,omitempty"`
	Text    string      `json:"text,omitempty"`
	Radical *Radical    `json:"radical,omitempty"`
	Matrix  [][]float64 `json:"matrix,omitempty"`
	Vector  []float64   `json:"vector,omitempty"`
}

func RealAnswer(label string, x float64) Answer {
	return Answer{Label: label, Real: &x, Text: numeric.Format(x)}
}

func TextAnswer(label, text string) Answer { return Answer{Label: label, Text: text} }

func RadicalAnswer(label string, r Radical) Answer {
	x := r.Float()
	return Answer{Label: label, Real: &x, Text: r.String(), Radical: &r}
}

func MatrixAnswer(label string, m [][]float64) Answer { return Answer{Label: label, Matrix: m} }

func VectorAnswer(label string, v []float64) Answer { return Answer{Label: label, Vector: v} }

// String renders an answer for display.
func (a Answer) String() string {
	switch {
	case a.Matrix != nil:
		return FormatMatrix(a.Matrix)
	case a.Vector != nil:
		return FormatVector(a.Vector)
	case a.Text != "":
		return a.Text
	case a.Real != nil:
		return numeric.Format(*a.Real)
	}
	return ""
}

// Solution is what a domain solver returns: either fully computed answers,
// or an Error. Terminal outcomes (no real solution, not factorable) carry
// an Error whose Terminal() is true together with any context answers.
type Solution struct {
	Category TypeID   `json:"category"`
	Kind     string   `json:"solution_type"`
	Answers  []Answer `json:"solutions"`
	Summary  string   `json:"summary,omitempty"`
	Detail   any      `json:"detail,omitempty"`
	Error    *Error   `json:"error,omitempty"`
}

// Failure builds a solution that only carries an error.
func Failure(category TypeID, err *Error) Solution {
	return Solution{Category: category, Kind: string(err.Kind), Error: err}
}

// Failed reports a violated precondition (not a terminal outcome).
func (s Solution) Failed() bool { return s.Error != nil && !s.Error.Terminal() }

// Reals collects the real-valued answers.
func (s Solution) Reals() []float64 {
	var out []float64
	for _, a := range s.Answers {
		if a.Real != nil {
			out = append(out, *a.Real)
		}
	}
	return out
}

// Answer finds an answer by label.
func (s Solution) Answer(label string) (Answer, bool) {
	for _, a := range s.Answers {
		if a.Label == label {
			return a, true
		}
	}
	return Answer{}, false
}

// FormatMatrix renders rows as "[[1, 2], [3, 4]]".
func FormatMatrix(m [][]float64) string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, row := range m {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(FormatVector(row))
	}
	sb.WriteString("]")
	return sb.String()
}

func FormatVector(v []float64) string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = numeric.Format(x)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
