package quadratic

import (
	"fmt"
	"math"
	"math/cmplx"
	"sort"
	"strings"

	"github.com/njchilds90/goworkbook/internal/numeric"
	"github.com/njchilds90/goworkbook/internal/poly"
	"github.com/njchilds90/goworkbook/internal/problem"
)

// Root types.
const (
	TwoRealRoots = "two distinct real roots"
	RepeatedRoot = "one repeated real root"
	ComplexRoots = "two complex conjugate roots"
)

// ============================================================
// Shared helpers
// ============================================================

// coefficients reads a, b and c with the leading coefficient defaulting to
// 1 and the others to 0. A leading coefficient within Epsilon of zero is a
// DegenerateEquation.
func coefficients(op string, p problem.Params) (a, b, c float64, err *problem.Error) {
	if d := p.Int("degree", 2); d > 2 {
		return 0, 0, 0, problem.NewError(problem.KindInvalidParameters, op,
			fmt.Sprintf("the equation has degree %d; only quadratics are handled", d), "degree", d)
	}
	for _, k := range []string{"a", "b", "c"} {
		if p.Has(k) && math.IsNaN(p.Float(k, math.NaN())) {
			return 0, 0, 0, problem.NewError(problem.KindInvalidParameters, op,
				fmt.Sprintf("coefficient %s must be a number", k), k, p[k])
		}
	}
	a, b, c = p.Float("a", 1), p.Float("b", 0), p.Float("c", 0)
	if numeric.IsZero(a) {
		return 0, 0, 0, problem.NewError(problem.KindDegenerateEquation, op,
			"a = 0, so the equation is not quadratic", "a", a, "b", b, "c", c)
	}
	return a, b, c, nil
}

// equation renders ax² + bx + c with the given right-hand side.
func equation(a, b, c float64, rhs string) string {
	return poly.Of(a, b, c).String() + " " + rhs
}

// ============================================================
// Standard form
// ============================================================

// Point is a point in the plane.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p Point) String() string {
	return "(" + numeric.Format(p.X) + ", " + numeric.Format(p.Y) + ")"
}

// Parabola describes the graph of y = ax² + bx + c.
type Parabola struct {
	OpensUpward     bool      `json:"opens_upward"`
	Axis            float64   `json:"axis_of_symmetry"`
	YIntercept      float64   `json:"y_intercept"`
	XIntercepts     []float64 `json:"x_intercepts,omitempty"`
	Range           string    `json:"range"`
	Transformations []string  `json:"transformations,omitempty"`
}

// Analysis is the full standard-form solution of ax² + bx + c = 0. Real
// roots are sorted ascending; complex roots are kept as text.
type Analysis struct {
	A            float64   `json:"a"`
	B            float64   `json:"b"`
	C            float64   `json:"c"`
	Discriminant float64   `json:"discriminant"`
	RootType     string    `json:"root_type"`
	Roots        []float64 `json:"roots,omitempty"`
	Complex      []string  `json:"complex_roots,omitempty"`
	Vertex       Point     `json:"vertex"`
	Sum          float64   `json:"sum_of_roots"`
	Product      float64   `json:"product_of_roots"`
	Parabola     Parabola  `json:"parabola"`
}

// Analyze solves ax² + bx + c = 0 for a non-zero a. A discriminant within
// Epsilon of zero is treated as exactly zero.
func Analyze(a, b, c float64) Analysis {
	an := Analysis{
		A: a, B: b, C: c,
		Discriminant: b*b - 4*a*c,
		Vertex:       Point{X: -b / (2 * a), Y: (4*a*c - b*b) / (4 * a)},
		Sum:          -b / a,
		Product:      c / a,
	}
	switch {
	case numeric.IsZero(an.Discriminant):
		an.Discriminant = 0
		an.RootType = RepeatedRoot
		an.Roots = []float64{-b / (2 * a)}
	case an.Discriminant > 0:
		sq := math.Sqrt(an.Discriminant)
		an.RootType = TwoRealRoots
		lo, hi := numeric.QuadraticRoots(a, b, c, sq)
		an.Roots = []float64{lo, hi}
		sort.Float64s(an.Roots)
	default:
		re := -b / (2 * a)
		im := math.Sqrt(-an.Discriminant) / math.Abs(2*a)
		an.RootType = ComplexRoots
		an.Complex = []string{
			poly.ComplexRootString(complex(re, -im)),
			poly.ComplexRootString(complex(re, im)),
		}
	}
	an.Parabola = Parabola{
		OpensUpward:     a > 0,
		Axis:            an.Vertex.X,
		YIntercept:      c,
		XIntercepts:     an.Roots,
		Range:           rangeOf(a, an.Vertex.Y),
		Transformations: transformations(a, an.Vertex),
	}
	return an
}

// rangeOf is the range of a parabola with vertex height k.
func rangeOf(a, k float64) string {
	if a > 0 {
		return "[" + numeric.Format(k) + ", ∞)"
	}
	return "(-∞, " + numeric.Format(k) + "]"
}

// transformations lists how y = x² is moved onto the parabola.
func transformations(a float64, v Point) []string {
	var out []string
	switch abs := math.Abs(a); {
	case abs > 1:
		out = append(out, "vertical stretch by a factor of "+numeric.Format(abs))
	case abs < 1:
		out = append(out, "vertical compression by a factor of "+numeric.Format(abs))
	}
	if a < 0 {
		out = append(out, "reflection over the x-axis")
	}
	if !numeric.IsZero(v.X) {
		dir := "right"
		if v.X < 0 {
			dir = "left"
		}
		out = append(out, fmt.Sprintf("horizontal shift %s by %s", dir, numeric.Format(math.Abs(v.X))))
	}
	if !numeric.IsZero(v.Y) {
		dir := "up"
		if v.Y < 0 {
			dir = "down"
		}
		out = append(out, fmt.Sprintf("vertical shift %s by %s", dir, numeric.Format(math.Abs(v.Y))))
	}
	return out
}

// rootAnswers labels a single root "x" and a pair "x1", "x2".
func rootAnswers(an Analysis) []problem.Answer {
	switch {
	case len(an.Roots) == 1:
		return []problem.Answer{problem.RealAnswer("x", an.Roots[0])}
	case len(an.Roots) == 2:
		return []problem.Answer{problem.RealAnswer("x1", an.Roots[0]), problem.RealAnswer("x2", an.Roots[1])}
	}
	out := make([]problem.Answer, len(an.Complex))
	for i, z := range an.Complex {
		out[i] = problem.TextAnswer(fmt.Sprintf("x%d", i+1), z)
	}
	return out
}

func rootSummary(an Analysis) string {
	switch {
	case len(an.Roots) == 1:
		return "x = " + numeric.Format(an.Roots[0]) + " (double root)"
	case len(an.Roots) == 2:
		return "x = " + numeric.Format(an.Roots[0]) + " or x = " + numeric.Format(an.Roots[1])
	}
	return "x = " + strings.Join(an.Complex, " or x = ")
}

func solveStandard(p problem.Problem) problem.Solution {
	a, b, c, err := coefficients("solve_standard", p.Params)
	if err != nil {
		return problem.Failure(p.Type, err)
	}
	an := Analyze(a, b, c)
	return problem.Solution{
		Category: p.Type,
		Kind:     an.RootType,
		Answers:  rootAnswers(an),
		Summary:  rootSummary(an),
		Detail:   an,
	}
}

// ============================================================
// Completing the square
// ============================================================

// CompletedSquare is the detail of a completing_square solution:
// ax² + bx + c = a(x - h)² + k.
type CompletedSquare struct {
	Analysis
	H float64 `json:"h"`
	K float64 `json:"k"`
	// Half is b/2a, whose square completes x² + (b/a)x.
	Half       float64 `json:"half"`
	RHS        float64 `json:"rhs"`
	VertexForm string  `json:"vertex_form"`
}

// VertexForm renders a(x - h)² + k.
func VertexForm(a, h, k float64) string {
	var sb strings.Builder
	switch {
	case numeric.ApproxEqual(a, 1, numeric.Epsilon):
	case numeric.ApproxEqual(a, -1, numeric.Epsilon):
		sb.WriteString("-")
	default:
		sb.WriteString(numeric.Format(a))
	}
	switch {
	case numeric.IsZero(h):
		sb.WriteString("x²")
	case h > 0:
		sb.WriteString("(x - " + numeric.Format(h) + ")²")
	default:
		sb.WriteString("(x + " + numeric.Format(-h) + ")²")
	}
	if !numeric.IsZero(k) {
		sb.WriteString(" " + numeric.Signed(k))
	}
	return sb.String()
}

func solveCompletingSquare(p problem.Problem) problem.Solution {
	a, b, c, err := coefficients("complete_square", p.Params)
	if err != nil {
		return problem.Failure(p.Type, err)
	}
	d := CompletedSquare{Analysis: Analyze(a, b, c)}
	d.Half = b / (2 * a)
	d.H = -d.Half
	d.K = c - b*b/(4*a)
	d.RHS = -d.K / a
	d.VertexForm = VertexForm(a, d.H, d.K)
	return problem.Solution{
		Category: p.Type,
		Kind:     d.RootType,
		Answers:  rootAnswers(d.Analysis),
		Summary:  d.VertexForm + " = 0, so " + rootSummary(d.Analysis),
		Detail:   d,
	}
}

// ============================================================
// Vertex form
// ============================================================

// VertexAnalysis is the detail of a vertex_form solution.
type VertexAnalysis struct {
	A          float64  `json:"a"`
	H          float64  `json:"h"`
	K          float64  `json:"k"`
	VertexForm string   `json:"vertex_form"`
	Standard   string   `json:"standard_form"`
	Analysis   Analysis `json:"analysis"`
}

// solveVertexForm accepts a, h and k, or a standard-form a, b and c whose
// vertex is computed first.
func solveVertexForm(p problem.Problem) problem.Solution {
	const op = "vertex_form"
	var d VertexAnalysis
	if p.Params.Has("h") || p.Params.Has("k") {
		d.A, d.H, d.K = p.Params.Float("a", 1), p.Params.Float("h", 0), p.Params.Float("k", 0)
		if numeric.IsZero(d.A) {
			return problem.Failure(p.Type, problem.NewError(problem.KindDegenerateEquation, op,
				"a = 0, so the function is not quadratic", "a", d.A))
		}
	} else {
		a, b, c, err := coefficients(op, p.Params)
		if err != nil {
			return problem.Failure(p.Type, err)
		}
		d.A, d.H, d.K = a, -b/(2*a), c-b*b/(4*a)
	}
	b, c := -2*d.A*d.H, d.A*d.H*d.H+d.K
	d.VertexForm = VertexForm(d.A, d.H, d.K)
	d.Standard = poly.Of(d.A, b, c).String()
	d.Analysis = Analyze(d.A, b, c)

	answers := []problem.Answer{
		problem.TextAnswer("vertex", Point{d.H, d.K}.String()),
		problem.RealAnswer("b", b),
		problem.RealAnswer("c", c),
	}
	for i, x := range d.Analysis.Roots {
		label := "x"
		if len(d.Analysis.Roots) == 2 {
			label = fmt.Sprintf("x%d", i+1)
		}
		answers = append(answers, problem.RealAnswer(label, x))
	}
	answers = append(answers, problem.RealAnswer("y-intercept", c))
	return problem.Solution{
		Category: p.Type,
		Kind:     "vertex form",
		Answers:  answers,
		Summary:  fmt.Sprintf("y = %s = %s, vertex %s", d.VertexForm, d.Standard, Point{d.H, d.K}),
		Detail:   d,
	}
}

// ============================================================
// Function analysis
// ============================================================

// Extremum is the vertex read as a minimum or maximum.
type Extremum struct {
	Kind string  `json:"kind"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// FunctionAnalysis is the detail of a function_analysis solution.
type FunctionAnalysis struct {
	Analysis
	Domain      string    `json:"domain"`
	Range       string    `json:"range"`
	Increasing  string    `json:"increasing"`
	Decreasing  string    `json:"decreasing"`
	Extremum    Extremum  `json:"extremum"`
	EndBehavior [2]string `json:"end_behavior"`
}

// monotonic returns the intervals where a parabola with axis h increases
// and decreases.
func monotonic(a, h float64) (inc, dec string) {
	left, right := "(-∞, "+numeric.Format(h)+")", "("+numeric.Format(h)+", ∞)"
	if a > 0 {
		return right, left
	}
	return left, right
}

func solveFunctionAnalysis(p problem.Problem) problem.Solution {
	a, b, c, err := coefficients("function_analysis", p.Params)
	if err != nil {
		return problem.Failure(p.Type, err)
	}
	d := FunctionAnalysis{Analysis: Analyze(a, b, c), Domain: "(-∞, ∞)"}
	d.Range = d.Parabola.Range
	d.Increasing, d.Decreasing = monotonic(a, d.Vertex.X)
	d.Extremum = Extremum{Kind: "minimum", X: d.Vertex.X, Y: d.Vertex.Y}
	d.EndBehavior = [2]string{"as x → -∞, y → +∞", "as x → +∞, y → +∞"}
	if a < 0 {
		d.Extremum.Kind = "maximum"
		d.EndBehavior = [2]string{"as x → -∞, y → -∞", "as x → +∞, y → -∞"}
	}
	return problem.Solution{
		Category: p.Type,
		Kind:     "function analysis",
		Answers: []problem.Answer{
			problem.TextAnswer("domain", d.Domain),
			problem.TextAnswer("range", d.Range),
			problem.RealAnswer("vertex x", d.Vertex.X),
			problem.RealAnswer("vertex y", d.Vertex.Y),
			problem.TextAnswer("increasing", d.Increasing),
			problem.TextAnswer("decreasing", d.Decreasing),
		},
		Summary: fmt.Sprintf("%s of %s at x = %s; range %s",
			d.Extremum.Kind, numeric.Format(d.Vertex.Y), numeric.Format(d.Vertex.X), d.Range),
		Detail: d,
	}
}

// ============================================================
// Discriminant
// ============================================================

// DiscriminantAnalysis is the detail of a discriminant solution.
type DiscriminantAnalysis struct {
	A            float64 `json:"a"`
	B            float64 `json:"b"`
	C            float64 `json:"c"`
	Discriminant float64 `json:"discriminant"`
	RootType     string  `json:"root_type"`
	Nature       string  `json:"root_nature"`
	Graph        string  `json:"graphical_interpretation"`
}

// RootTypeOf classifies a discriminant.
func RootTypeOf(disc float64) string {
	switch {
	case numeric.IsZero(disc):
		return RepeatedRoot
	case disc > 0:
		return TwoRealRoots
	}
	return ComplexRoots
}

func solveDiscriminant(p problem.Problem) problem.Solution {
	a, b, c, err := coefficients("discriminant", p.Params)
	if err != nil {
		return problem.Failure(p.Type, err)
	}
	d := DiscriminantAnalysis{A: a, B: b, C: c, Discriminant: b*b - 4*a*c}
	d.RootType = RootTypeOf(d.Discriminant)
	integral := poly.Of(a, b, c).IsIntegral()
	switch d.RootType {
	case TwoRealRoots:
		d.Graph = "the parabola crosses the x-axis at two points"
		d.Nature = "irrational real numbers"
		if !integral {
			d.Nature = "real numbers"
		} else if numeric.IsInteger(d.Discriminant) && numeric.IsPerfectSquare(int64(math.Round(d.Discriminant))) {
			d.Nature = "rational numbers (perfect square discriminant)"
		}
	case RepeatedRoot:
		d.Discriminant = 0
		d.Graph = "the parabola touches the x-axis at its vertex"
		d.Nature = "a single real number"
		if integral {
			d.Nature = "a single rational number"
		}
	default:
		d.Graph = "the parabola does not meet the x-axis"
		d.Nature = "complex conjugates p ± qi"
	}
	return problem.Solution{
		Category: p.Type,
		Kind:     d.RootType,
		Answers: []problem.Answer{
			problem.RealAnswer("Δ", d.Discriminant),
			problem.TextAnswer("root type", d.RootType),
		},
		Summary: fmt.Sprintf("Δ = %s: %s", numeric.Format(d.Discriminant), d.RootType),
		Detail:  d,
	}
}

// ============================================================
// Projectile motion
// ============================================================

// Projectile is the detail of a projectile_motion solution for
// h(t) = at² + bt + c.
type Projectile struct {
	A          float64   `json:"a"`
	B          float64   `json:"b"`
	C          float64   `json:"c"`
	Units      string    `json:"units"`
	PeakTime   float64   `json:"peak_time"`
	PeakHeight float64   `json:"peak_height"`
	Landing    float64   `json:"landing_time"`
	Roots      []float64 `json:"roots,omitempty"`
}

// Function renders h(t).
func (d Projectile) Function() string { return "h(t) = " + poly.Of(d.A, d.B, d.C).Format("t") }

func solveProjectile(p problem.Problem) problem.Solution {
	const op = "projectile_motion"
	for _, k := range []string{"a", "b", "c"} {
		if p.Params.Has(k) && math.IsNaN(p.Params.Float(k, math.NaN())) {
			return problem.Failure(p.Type, problem.NewError(problem.KindInvalidParameters, op,
				fmt.Sprintf("coefficient %s must be a number", k), k, p.Params[k]))
		}
	}
	d := Projectile{A: p.Params.Float("a", -16), B: p.Params.Float("b", 0), C: p.Params.Float("c", 0)}
	d.Units = p.Params.String("units", "feet")
	if d.A >= 0 || numeric.IsZero(d.A) {
		return problem.Failure(p.Type, problem.NewError(problem.KindInvalidParameters, op,
			"the t² coefficient must be negative for an object under gravity", "a", d.A))
	}

	h := poly.Of(d.A, d.B, d.C)
	d.PeakTime = math.Max(0, -d.B/(2*d.A))
	d.PeakHeight = h.Eval(d.PeakTime)

	an := Analyze(d.A, d.B, d.C)
	d.Roots = an.Roots
	d.Landing = math.NaN()
	for _, t := range an.Roots {
		if t >= -numeric.Epsilon && (math.IsNaN(d.Landing) || t > d.Landing) {
			d.Landing = math.Max(t, 0)
		}
	}
	if math.IsNaN(d.Landing) {
		d.Landing = 0
		return problem.Solution{
			Category: p.Type,
			Kind:     "no real solution",
			Summary:  "the object never reaches the ground",
			Detail:   d,
			Error: problem.NewError(problem.KindNoRealSolution, op,
				"h(t) = 0 has no solution with t ≥ 0, so the object never reaches the ground",
				"discriminant", an.Discriminant),
		}
	}
	return problem.Solution{
		Category: p.Type,
		Kind:     "projectile",
		Answers: []problem.Answer{
			problem.RealAnswer("t_peak", d.PeakTime),
			problem.RealAnswer("h_max", d.PeakHeight),
			problem.RealAnswer("t_land", d.Landing),
		},
		Summary: fmt.Sprintf("maximum height %s %s at t = %s s; lands at t = %s s",
			numeric.Format(d.PeakHeight), d.Units, numeric.Format(d.PeakTime), numeric.Format(d.Landing)),
		Detail: d,
	}
}

// ============================================================
// Inverse problems
// ============================================================

// Construction is the detail of an inverse_quadratic solution.
type Construction struct {
	Roots      []float64 `json:"roots"`
	A          float64   `json:"a"`
	B          float64   `json:"b"`
	C          float64   `json:"c"`
	Sum        float64   `json:"sum_of_roots"`
	Product    float64   `json:"product_of_roots"`
	FactorForm string    `json:"factor_form"`
	Equation   string    `json:"equation"`
}

// givenRoots reads roots from a "roots" vector or from r1 and r2.
func givenRoots(p problem.Params) []float64 {
	if v, ok := p.Vector("roots"); ok {
		return v
	}
	var out []float64
	for _, k := range []string{"r1", "r2"} {
		if p.Has(k) {
			out = append(out, p.Float(k, 0))
		}
	}
	return out
}

// factorTerm renders (x - r).
func factorTerm(r float64) string {
	switch {
	case numeric.IsZero(r):
		return "x"
	case r > 0:
		return "(x - " + numeric.Format(r) + ")"
	}
	return "(x + " + numeric.Format(-r) + ")"
}

func solveInverse(p problem.Problem) problem.Solution {
	const op = "inverse_quadratic"
	roots := givenRoots(p.Params)
	if len(roots) == 0 || len(roots) > 2 {
		return problem.Failure(p.Type, problem.NewError(problem.KindInvalidParameters, op,
			"one or two roots are required", "roots", roots))
	}
	if len(roots) == 1 {
		roots = []float64{roots[0], roots[0]}
	}
	a := p.Params.Float("a", 1)
	if numeric.IsZero(a) {
		return problem.Failure(p.Type, problem.NewError(problem.KindDegenerateEquation, op,
			"the leading coefficient must be non-zero", "a", a))
	}

	d := Construction{Roots: roots, A: a, Sum: roots[0] + roots[1], Product: roots[0] * roots[1]}
	d.B, d.C = -a*d.Sum, a*d.Product
	lead := ""
	switch {
	case numeric.ApproxEqual(a, -1, numeric.Epsilon):
		lead = "-"
	case !numeric.ApproxEqual(a, 1, numeric.Epsilon):
		lead = numeric.Format(a)
	}
	if numeric.ApproxEqual(roots[0], roots[1], numeric.Epsilon) {
		d.FactorForm = lead + factorTerm(roots[0]) + "²"
		if numeric.IsZero(roots[0]) {
			d.FactorForm = lead + "x²"
		}
	} else {
		d.FactorForm = lead + factorTerm(roots[0]) + factorTerm(roots[1])
	}
	d.Equation = equation(a, d.B, d.C, "= 0")
	return problem.Solution{
		Category: p.Type,
		Kind:     "constructed equation",
		Answers: []problem.Answer{
			problem.RealAnswer("a", d.A),
			problem.RealAnswer("b", d.B),
			problem.RealAnswer("c", d.C),
			problem.TextAnswer("equation", d.Equation),
		},
		Summary: d.FactorForm + " = 0, i.e. " + d.Equation,
		Detail:  d,
	}
}

// ============================================================
// Biquadratic
// ============================================================

// Biquadratic is the detail of a biquadratic solution: ax⁴ + bx² + c = 0
// solved through au² + bu + c = 0 with u = x².
type Biquadratic struct {
	A       float64   `json:"a"`
	B       float64   `json:"b"`
	C       float64   `json:"c"`
	U       Analysis  `json:"u"`
	Real    []float64 `json:"real_roots,omitempty"`
	Complex []string  `json:"complex_roots,omitempty"`
}

func solveBiquadratic(p problem.Problem) problem.Solution {
	const op = "biquadratic"
	if p.Params.Has("degree") {
		return problem.Failure(p.Type, problem.NewError(problem.KindInvalidParameters, op,
			"the equation is not of the form ax⁴ + bx² + c = 0", "degree", p.Params["degree"]))
	}
	a, b, c, err := coefficients(op, p.Params)
	if err != nil {
		return problem.Failure(p.Type, err)
	}
	d := Biquadratic{A: a, B: b, C: c, U: Analyze(a, b, c)}
	for _, u := range d.U.Roots {
		switch {
		case numeric.IsZero(u):
			d.Real = append(d.Real, 0)
		case u > 0:
			d.Real = append(d.Real, -math.Sqrt(u), math.Sqrt(u))
		default:
			im := math.Sqrt(-u)
			d.Complex = append(d.Complex,
				poly.ComplexRootString(complex(0, -im)), poly.ComplexRootString(complex(0, im)))
		}
	}
	if d.U.RootType == ComplexRoots {
		re := -b / (2 * a)
		im := math.Sqrt(-d.U.Discriminant) / math.Abs(2*a)
		for _, u := range []complex128{complex(re, -im), complex(re, im)} {
			z := cmplx.Sqrt(u)
			d.Complex = append(d.Complex, poly.ComplexRootString(-z), poly.ComplexRootString(z))
		}
	}
	sort.Float64s(d.Real)

	var answers []problem.Answer
	for _, x := range d.Real {
		answers = append(answers, problem.RealAnswer(fmt.Sprintf("x%d", len(answers)+1), x))
	}
	for _, z := range d.Complex {
		answers = append(answers, problem.TextAnswer(fmt.Sprintf("x%d", len(answers)+1), z))
	}
	texts := make([]string, len(answers))
	for i, ans := range answers {
		texts[i] = ans.String()
	}
	return problem.Solution{
		Category: p.Type,
		Kind:     fmt.Sprintf("%d real and %d complex roots", len(d.Real), len(d.Complex)),
		Answers:  answers,
		Summary:  "x ∈ {" + strings.Join(texts, ", ") + "}",
		Detail:   d,
	}
}
