package problem

import (
	"encoding/json"
	"fmt"
	"math"
)

// Confidence grades a verification.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Check is one recomputed relation.
type Check struct {
	Name     string  `json:"name"`
	Expected float64 `json:"expected"`
	Actual   float64 `json:"actual"`
	Residual float64 `json:"residual"`
	Passed   bool    `json:"passed"`
	Note     string  `json:"note,omitempty"`
}

// MarshalJSON writes non-finite values as null; a failed structural
// check has an infinite residual.
func (c Check) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Name     string   `json:"name"`
		Expected *float64 `json:"expected"`
		Actual   *float64 `json:"actual"`
		Residual *float64 `json:"residual"`
		Passed   bool     `json:"passed"`
		Note     string   `json:"note,omitempty"`
	}{c.Name, finite(c.Expected), finite(c.Actual), finite(c.Residual), c.Passed, c.Note})
}

func finite(x float64) *float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return nil
	}
	return &x
}

// Verification is the independent re-check of a solution.
type Verification struct {
	Valid      bool       `json:"is_valid"`
	Tolerance  float64    `json:"tolerance"`
	Method     string     `json:"method"`
	Confidence Confidence `json:"confidence"`
	Checks     []Check    `json:"checks,omitempty"`
}

// Compare builds a check of |expected-actual| against tol.
func Compare(name string, expected, actual, tol float64) Check {
	res := math.Abs(expected - actual)
	passed := res <= tol
	if !passed {
		scale := math.Max(math.Abs(expected), math.Abs(actual))
		passed = scale > 1 && res <= tol*scale
	}
	if math.IsNaN(res) {
		passed = false
	}
	return Check{Name: name, Expected: expected, Actual: actual, Residual: res, Passed: passed}
}

// Residual builds a check that a quantity expected to vanish is within tol.
func Residual(name string, value, tol float64) Check {
	res := math.Abs(value)
	return Check{Name: name, Expected: 0, Actual: value, Residual: res, Passed: res <= tol && !math.IsNaN(res)}
}

// Holds builds a pass/fail check for a structural property.
func Holds(name string, ok bool, note string) Check {
	c := Check{Name: name, Passed: ok, Note: note}
	if !ok {
		c.Residual = math.Inf(1)
	}
	return c
}

// Verify grades checks: valid iff every check passed; high confidence when
// every residual is at least 100x inside tol.
func Verify(method string, tol float64, checks ...Check) Verification {
	v := Verification{Method: method, Tolerance: tol, Checks: checks}
	if len(checks) == 0 {
		v.Confidence = ConfidenceLow
		return v
	}
	v.Valid = true
	margin := true
	for _, c := range checks {
		if !c.Passed {
			v.Valid = false
		}
		if c.Residual*100 > tol && c.Residual != 0 {
			margin = false
		}
	}
	switch {
	case !v.Valid:
		v.Confidence = ConfidenceLow
	case margin:
		v.Confidence = ConfidenceHigh
	default:
		v.Confidence = ConfidenceMedium
	}
	return v
}

// NotApplicable is the verification of a solution that failed a
// precondition: there is nothing to recompute.
func NotApplicable(err *Error) Verification {
	return Verification{
		Method:     "precondition",
		Confidence: ConfidenceLow,
		Checks:     []Check{Holds("precondition", false, err.Error())},
	}
}

// Summary is a one-line description for steps and CLI output.
func (v Verification) Summary() string {
	passed := 0
	for _, c := range v.Checks {
		if c.Passed {
			passed++
		}
	}
	status := "failed"
	if v.Valid {
		status = "passed"
	}
	return fmt.Sprintf("verification %s (%s): %d/%d checks within %.0e, confidence %s",
		status, v.Method, passed, len(v.Checks), v.Tolerance, v.Confidence)
}
