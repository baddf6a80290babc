// Package quadratic solves quadratic equations, inequalities and the
// applications built on them: completing the square, factoring, vertex
// form, function analysis, the discriminant, projectile motion,
// constructing an equation from its roots and biquadratic equations.
package quadratic

import (
	"github.com/njchilds90/goworkbook/internal/problem"
	"github.com/njchilds90/goworkbook/internal/registry"
)

// Type identifiers, in registration order.
const (
	TypeCompletingSquare problem.TypeID = "completing_square"
	TypeFactoring        problem.TypeID = "factoring"
	TypeVertexForm       problem.TypeID = "vertex_form"
	TypeFunctionAnalysis problem.TypeID = "function_analysis"
	TypeDiscriminant     problem.TypeID = "discriminant"
	TypeFormula          problem.TypeID = "quadratic_formula"
	TypeProjectile       problem.TypeID = "projectile_motion"
	TypeInverse          problem.TypeID = "inverse_quadratic"
	TypeInequality       problem.TypeID = "inequality"
	TypeBiquadratic      problem.TypeID = "biquadratic"
	TypeStandard         problem.TypeID = "standard_form"
)

var reg = newRegistry()

// Registry returns the frozen quadratic type table.
func Registry() *registry.Registry { return reg }

// newRegistry builds the table. Method keywords ("factor", "complete the
// square") come first so that an equation written next to them is solved
// the requested way; the bare x² pattern of standard_form is last.
func newRegistry() *registry.Registry {
	r := registry.New(problem.DomainQuadratic, Clean)

	r.Register(registry.Entry{
		ID:          TypeCompletingSquare,
		Name:        "Completing the Square",
		Category:    "solving_method",
		Description: "Rewrites ax² + bx + c as a(x - h)² + k and solves",
		Patterns: registry.Patterns(
			`complet\w*\s+(?:the\s+)?square`,
		),
		Extract: extractEquation,
		Solve:   solveCompletingSquare,
		Verify:  verifyRoots,
		Steps:   stepsCompletingSquare,
	})
	r.Register(registry.Entry{
		ID:          TypeFactoring,
		Name:        "Factoring Quadratics",
		Category:    "solving_method",
		Description: "Factors over the integers by search and the AC method",
		Patterns: registry.Patterns(
			`factor.*quadratic`,
			`\bfactor(?:ing|ise|ize)?\b`,
		),
		Extract: extractEquation,
		Solve:   solveFactoring,
		Verify:  verifyFactoring,
		Steps:   stepsFactoring,
	})
	r.Register(registry.Entry{
		ID:          TypeVertexForm,
		Name:        "Vertex Form Analysis",
		Category:    "parabola_properties",
		Description: "Converts a(x - h)² + k to standard form and reads off its features",
		Patterns: registry.Patterns(
			`-?[\d./]*\s*\(\s*x\s*[-+]\s*[\d./]+\s*\)\s*²`,
			`vertex\s+form`,
			`vertex`,
		),
		Extract: extractVertexForm,
		Solve:   solveVertexForm,
		Verify:  verifyVertexForm,
		Steps:   stepsVertexForm,
	})
	r.Register(registry.Entry{
		ID:          TypeFunctionAnalysis,
		Name:        "Quadratic Function Analysis",
		Category:    "function_analysis",
		Description: "Domain, range, extremum, monotonic intervals and end behaviour",
		Patterns: registry.Patterns(
			`analy[sz]\w*.*(?:quadratic|function|parabola)`,
			`function\s+analysis`,
			`domain.*range|range.*domain`,
			`increasing|decreasing`,
			`end\s+behaviou?r`,
		),
		Extract: extractEquation,
		Solve:   solveFunctionAnalysis,
		Verify:  verifyFunctionAnalysis,
		Steps:   stepsFunctionAnalysis,
	})
	r.Register(registry.Entry{
		ID:          TypeDiscriminant,
		Name:        "Discriminant Analysis",
		Category:    "theory",
		Description: "Computes b² - 4ac and classifies the roots",
		Patterns: registry.Patterns(
			`discriminant`,
			`b².*-.*4ac`,
			`nature.*roots`,
		),
		Extract: extractEquation,
		Solve:   solveDiscriminant,
		Verify:  verifyDiscriminant,
		Steps:   stepsDiscriminant,
	})
	r.Register(registry.Entry{
		ID:          TypeFormula,
		Name:        "Quadratic Formula",
		Category:    "theory",
		Description: "Solves with x = (-b ± √(b² - 4ac))/2a",
		Patterns: registry.Patterns(
			`quadratic\s+formula`,
		),
		Extract: extractEquation,
		Solve:   solveStandard,
		Verify:  verifyRoots,
		Steps:   stepsFormula,
	})
	r.Register(registry.Entry{
		ID:          TypeProjectile,
		Name:        "Projectile Motion",
		Category:    "applications",
		Description: "Peak and landing time of h(t) = at² + bt + c",
		Patterns: registry.Patterns(
			`projectile`,
			`height.*time`,
			`ball.*thrown|thrown`,
			`motion.*gravity`,
			`h\s*\(\s*t\s*\)`,
			`-\d+(?:\.\d+)?\s*t²`,
		),
		Extract: extractProjectile,
		Solve:   solveProjectile,
		Verify:  verifyProjectile,
		Steps:   stepsProjectile,
	})
	r.Register(registry.Entry{
		ID:          TypeInverse,
		Name:        "Inverse Quadratic Problems",
		Category:    "construction",
		Description: "Builds the quadratic with given roots",
		Patterns: registry.Patterns(
			`find.*equation.*roots?`,
			`given.*roots?.*find`,
			`construct.*quadratic`,
			`quadratic\s+with\s+roots?`,
		),
		Extract: extractInverse,
		Solve:   solveInverse,
		Verify:  verifyInverse,
		Steps:   stepsInverse,
	})
	r.Register(registry.Entry{
		ID:          TypeInequality,
		Name:        "Quadratic Inequalities",
		Category:    "inequalities",
		Description: "Solves ax² + bx + c compared with 0 as a union of intervals",
		Patterns: registry.Patterns(
			`x².*(?:<=|>=|<|>)`,
			`quadratic.*inequality`,
		),
		Extract: extractInequality,
		Solve:   solveInequality,
		Verify:  verifyInequality,
		Steps:   stepsInequality,
	})
	r.Register(registry.Entry{
		ID:          TypeBiquadratic,
		Name:        "Biquadratic Equation",
		Category:    "advanced_forms",
		Description: "Solves ax⁴ + bx² + c = 0 through u = x²",
		Patterns: registry.Patterns(
			`x\s*(?:\^4|⁴)`,
			`biquadratic`,
		),
		Extract: extractBiquadratic,
		Solve:   solveBiquadratic,
		Verify:  verifyBiquadratic,
		Steps:   stepsBiquadratic,
	})
	r.Register(registry.Entry{
		ID:          TypeStandard,
		Name:        "Standard Quadratic Equation",
		Category:    "basic_quadratic",
		Description: "Solves ax² + bx + c = 0",
		Patterns: registry.Patterns(
			`x²`,
			`standard\s+form`,
		),
		Extract: extractEquation,
		Solve:   solveStandard,
		Verify:  verifyRoots,
		Steps:   stepsStandard,
	})

	return r.WithFallback(fallback).Freeze()
}

// fallback treats explicit coefficients as a standard-form equation.
func fallback(_ string, params problem.Params) (problem.TypeID, bool) {
	if params.Has("a") || params.Has("b") || params.Has("c") {
		return TypeStandard, true
	}
	return "", false
}
