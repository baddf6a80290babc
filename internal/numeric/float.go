package numeric

import (
	"math"
	"strconv"
)

const (
	// Epsilon is the boundary tolerance for degenerate coefficients and a
	// zero discriminant.
	Epsilon = 1e-10

	// RootTolerance bounds |f(x)| when substituting a root back.
	RootTolerance = 1e-8

	// MatrixTolerance bounds element-wise matrix differences.
	MatrixTolerance = 1e-10

	// ValueTolerance bounds decimal recomputation of radical results.
	ValueTolerance = 1e-9
)

// ApproxEqual compares a and b with an absolute tolerance, scaled up for
// large magnitudes.
func ApproxEqual(a, b, tol float64) bool {
	diff := math.Abs(a - b)
	if diff <= tol {
		return true
	}
	scale := math.Max(math.Abs(a), math.Abs(b))
	return scale > 1 && diff <= tol*scale
}

// IsZero reports |x| < Epsilon.
func IsZero(x float64) bool { return math.Abs(x) < Epsilon }

// IsInteger reports whether x is within Epsilon of an integer.
func IsInteger(x float64) bool {
	return math.Abs(x-math.Round(x)) < Epsilon
}

// QuadraticRoots returns the roots (-b - √Δ)/2a and (-b + √Δ)/2a of
// ax² + bx + c given sq = √Δ. The root whose numerator would cancel is
// computed as c/q instead, with q = -(b + sign(b)·√Δ)/2.
func QuadraticRoots(a, b, c, sq float64) (minus, plus float64) {
	if b >= 0 {
		q := -(b + sq) / 2
		if q == 0 {
			return 0, 0
		}
		return q / a, c / q
	}
	q := (sq - b) / 2
	return c / q, q / a
}

// Format renders a float without trailing zeros, rounding away binary noise
// such as 0.30000000000000004.
func Format(x float64) string {
	switch {
	case math.IsNaN(x):
		return "NaN"
	case math.IsInf(x, 1):
		return "∞"
	case math.IsInf(x, -1):
		return "-∞"
	}
	if math.Abs(x) < 1e15 {
		x = math.Round(x*1e10) / 1e10
	}
	if x == 0 {
		x = 0 // drop negative zero
	}
	return strconv.FormatFloat(x, 'f', -1, 64)
}

// FormatFixed renders x with a fixed number of decimals.
func FormatFixed(x float64, decimals int) string {
	if x == 0 {
		x = 0
	}
	s := strconv.FormatFloat(x, 'f', decimals, 64)
	if s == "-"+strconv.FormatFloat(0, 'f', decimals, 64) {
		return s[1:]
	}
	return s
}

// Signed renders a term coefficient with an explicit sign: "+ 3", "- 2".
func Signed(x float64) string {
	if x < 0 {
		return "- " + Format(-x)
	}
	return "+ " + Format(x)
}
