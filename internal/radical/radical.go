// Package radical solves radical-expression problems: simplification,
// arithmetic on square-root terms, higher-index roots, rational exponents,
// and the geometric formulas whose answers are radicals.
//
// Every answer is kept exact as a problem.Radical (coefficient, radicand,
// index, denominator) alongside its decimal value.
package radical

import (
	"strings"

	"github.com/njchilds90/goworkbook/internal/problem"
	"github.com/njchilds90/goworkbook/internal/registry"
)

// Type identifiers, in registration order.
const (
	TypeAddSubtract      problem.TypeID = "add_subtract_radicals"
	TypeMultiply         problem.TypeID = "multiply_radicals"
	TypeDivide           problem.TypeID = "divide_radicals"
	TypeRationalize      problem.TypeID = "rationalize_denominator"
	TypeHigherIndex      problem.TypeID = "higher_index_radical"
	TypeRationalExponent problem.TypeID = "rational_exponent"
	TypePythagorean      problem.TypeID = "pythagorean"
	TypeDistance         problem.TypeID = "distance_formula"
	TypeQuadraticFormula problem.TypeID = "quadratic_formula_radical"
	TypeSimplify         problem.TypeID = "simplify_radical"
)

var reg = newRegistry()

// Registry returns the frozen radical type table.
func Registry() *registry.Registry { return reg }

// newRegistry builds the table. Shape patterns that contain a bare √n term
// must come before simplify_radical, which matches any such term and is
// therefore registered last.
func newRegistry() *registry.Registry {
	r := registry.New(problem.DomainRadical, Clean)

	r.Register(registry.Entry{
		ID:          TypeAddSubtract,
		Name:        "Add/Subtract Radicals",
		Category:    "operations",
		Description: "Combines like radical terms",
		Patterns: registry.Patterns(
			`(-?\d*)\s*√(\d+)\s*([+-])\s*(\d*)\s*√(\d+)`,
			`add.*radical`,
			`subtract.*radical`,
			`combin.*radical`,
			`like\s+radicals`,
		),
		Extract: extractAddSubtract,
		Solve:   solveAddSubtract,
		Verify:  verifyAddSubtract,
		Steps:   stepsAddSubtract,
	})
	r.Register(registry.Entry{
		ID:          TypeMultiply,
		Name:        "Multiply Radicals",
		Category:    "operations",
		Description: "Multiplies radical expressions with the product property",
		Patterns: registry.Patterns(
			`(-?\d*)\s*√(\d+)\s*[*×·]\s*(-?\d*)\s*√(\d+)`,
			`multiply.*radical`,
			`product.*radical`,
		),
		Extract: extractPair,
		Solve:   solveMultiply,
		Verify:  verifyMultiply,
		Steps:   stepsMultiply,
	})
	r.Register(registry.Entry{
		ID:          TypeDivide,
		Name:        "Divide Radicals",
		Category:    "operations",
		Description: "Divides radicals and rationalizes the denominator",
		Patterns: registry.Patterns(
			`(-?\d*)\s*√(\d+)\s*[/÷]\s*(-?\d*)\s*√(\d+)`,
			`divide.*radical`,
			`quotient.*radical`,
		),
		Extract: extractPair,
		Solve:   solveDivide,
		Verify:  verifyDivide,
		Steps:   stepsDivide,
	})
	r.Register(registry.Entry{
		ID:          TypeRationalize,
		Name:        "Rationalize Denominator",
		Category:    "simplification",
		Description: "Eliminates a square root from the denominator",
		Patterns: registry.Patterns(
			`-?\d+\s*/\s*\d*\s*√\s*\d+`,
			`rationali[sz]e`,
		),
		Extract: extractRationalize,
		Solve:   solveRationalize,
		Verify:  verifyRationalize,
		Steps:   stepsRationalize,
	})
	r.Register(registry.Entry{
		ID:          TypeHigherIndex,
		Name:        "Higher Index Radicals",
		Category:    "advanced",
		Description: "Simplifies cube roots, fourth roots and higher",
		Patterns: registry.Patterns(
			`[⁰¹²³⁴⁵⁶⁷⁸⁹]+√\s*-?\d+`,
			`[∛∜]\s*-?\d+`,
			`\d+(?:st|nd|rd|th)\s+root`,
			`(?:cube|fourth|fifth)\s+root`,
		),
		Extract: extractHigherIndex,
		Solve:   solveSimplify(3),
		Verify:  verifySimplify,
		Steps:   stepsSimplify,
	})
	r.Register(registry.Entry{
		ID:          TypeRationalExponent,
		Name:        "Rational Exponents",
		Category:    "advanced",
		Description: "Rewrites b^(p/q) as a simplified q-th root",
		Patterns: registry.Patterns(
			`\(?\s*-?\d+\s*\)?\s*\^\s*\(?\s*-?\d+\s*/\s*\d+`,
			`rational\s+exponent`,
			`fractional\s+exponent`,
		),
		Extract: extractRationalExponent,
		Solve:   solveRationalExponent,
		Verify:  verifyRationalExponent,
		Steps:   stepsRationalExponent,
	})
	r.Register(registry.Entry{
		ID:          TypePythagorean,
		Name:        "Pythagorean Theorem",
		Category:    "applications",
		Description: "Finds a missing side of a right triangle",
		Patterns: registry.Patterns(
			`pythag`,
			`right\s+triangle`,
			`hypotenuse`,
			`a\s*(?:²|\^2)\s*\+\s*b\s*(?:²|\^2)`,
		),
		Extract: extractPythagorean,
		Solve:   solvePythagorean,
		Verify:  verifyPythagorean,
		Steps:   stepsPythagorean,
	})
	r.Register(registry.Entry{
		ID:          TypeDistance,
		Name:        "Distance Formula",
		Category:    "applications",
		Description: "Distance between two points as a simplified radical",
		Patterns: registry.Patterns(
			`distance`,
			`\(\s*-?[\d.]+\s*,\s*-?[\d.]+\s*\)\s*(?:and|to|,)?\s*\(\s*-?[\d.]+\s*,\s*-?[\d.]+\s*\)`,
		),
		Extract: extractDistance,
		Solve:   solveDistance,
		Verify:  verifyDistance,
		Steps:   stepsDistance,
	})
	r.Register(registry.Entry{
		ID:          TypeQuadraticFormula,
		Name:        "Quadratic Formula",
		Category:    "applications",
		Description: "Solves a quadratic with exact radical roots",
		Patterns: registry.Patterns(
			`quadratic\s+formula`,
			`discriminant`,
			`x\s*(?:²|\^2)`,
		),
		Extract: extractQuadratic,
		Solve:   solveQuadraticFormula,
		Verify:  verifyQuadraticFormula,
		Steps:   stepsQuadraticFormula,
	})
	r.Register(registry.Entry{
		ID:          TypeSimplify,
		Name:        "Simplify Radical",
		Category:    "simplification",
		Description: "Simplifies √n by extracting perfect square factors",
		Patterns: registry.Patterns(
			`-?\d*\s*√\s*-?\d+`,
			`simplif.*radical`,
			`simplif.*(?:sqrt|root)`,
		),
		Extract: extractSimplify,
		Solve:   solveSimplify(2),
		Verify:  verifySimplify,
		Steps:   stepsSimplify,
	})

	return r.WithFallback(fallback).Freeze()
}

// fallback sends anything that still mentions a root to simplify_radical.
func fallback(clean string, _ problem.Params) (problem.TypeID, bool) {
	lower := strings.ToLower(clean)
	if strings.ContainsAny(lower, "√∛∜") || strings.Contains(lower, "sqrt") ||
		strings.Contains(lower, "cbrt") || strings.Contains(lower, "root") {
		return TypeSimplify, true
	}
	return "", false
}
