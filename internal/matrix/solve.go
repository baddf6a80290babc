package matrix

import (
	"fmt"
	"math"
	"strings"

	"github.com/njchilds90/goworkbook/internal/numeric"
	"github.com/njchilds90/goworkbook/internal/poly"
	"github.com/njchilds90/goworkbook/internal/problem"
)

// ============================================================
// Operands and preconditions
// ============================================================

// operand reads a required matrix from the parameters.
func operand(op string, p problem.Params, key string) ([][]float64, *problem.Error) {
	g, ok := p.Matrix(key)
	if !ok {
		if p.Has(key) {
			return nil, problem.NewError(problem.KindInvalidParameters, op,
				fmt.Sprintf("matrix %s must be a non-empty rectangular grid of numbers", key), key, p[key])
		}
		return nil, problem.NewError(problem.KindInvalidParameters, op,
			fmt.Sprintf("%s needs a matrix %s, e.g. %s=[[1,2],[3,4]]", op, key, key))
	}
	for _, row := range g {
		for _, x := range row {
			if math.IsNaN(x) || math.IsInf(x, 0) {
				return nil, problem.NewError(problem.KindInvalidParameters, op,
					fmt.Sprintf("matrix %s has a non-finite entry", key), key, problem.FormatMatrix(g))
			}
		}
	}
	return g, nil
}

func dims(g [][]float64) string { return fmt.Sprintf("%d×%d", len(g), len(g[0])) }

// requireSquare reports a non-square operand as a dimension mismatch.
func requireSquare(op, key string, g [][]float64) *problem.Error {
	if len(g) == len(g[0]) {
		return nil
	}
	return problem.NewError(problem.KindDimensionMismatch, op,
		fmt.Sprintf("%s requires a square matrix; %s is %s", op, key, dims(g)), key, dims(g))
}

// squareOperand reads A and checks it is square.
func squareOperand(op string, p problem.Params) ([][]float64, *problem.Error) {
	a, err := operand(op, p, "A")
	if err != nil {
		return nil, err
	}
	return a, requireSquare(op, "A", a)
}

// ============================================================
// Arithmetic: exact
// ============================================================

// Result is the detail of an entry-wise or product operation.
type Result struct {
	Operation string  `json:"operation"`
	Label     string  `json:"label"`
	A         *Matrix `json:"a"`
	B         *Matrix `json:"b,omitempty"`
	Scalar    string  `json:"scalar,omitempty"`
	Value     *Matrix `json:"result"`
}

func (d Result) solution(p problem.Problem, kind string) problem.Solution {
	return problem.Solution{
		Category: p.Type,
		Kind:     kind,
		Answers:  []problem.Answer{problem.MatrixAnswer(d.Label, d.Value.Floats())},
		Summary:  d.Label + " = " + d.Value.String(),
		Detail:   d,
	}
}

func solveAddition(p problem.Problem) problem.Solution {
	op := p.Params.String("operation", "add")
	if op != "add" && op != "subtract" {
		return problem.Failure(p.Type, problem.NewError(problem.KindInvalidParameters, "add",
			"operation must be add or subtract", "operation", op))
	}
	a, err := operand(op, p.Params, "A")
	if err != nil {
		return problem.Failure(p.Type, err)
	}
	b, err := operand(op, p.Params, "B")
	if err != nil {
		return problem.Failure(p.Type, err)
	}
	if len(a) != len(b) || len(a[0]) != len(b[0]) {
		return problem.Failure(p.Type, problem.NewError(problem.KindDimensionMismatch, op,
			fmt.Sprintf("Cannot %s: A is %s but B is %s", op, dims(a), dims(b)),
			"A", dims(a), "B", dims(b)))
	}
	ma, mb := FromFloats(a), FromFloats(b)
	d := Result{Operation: op, A: ma, B: mb}
	if op == "subtract" {
		d.Label, d.Value = "A - B", ma.Sub(mb)
	} else {
		d.Label, d.Value = "A + B", ma.Add(mb)
	}
	return d.solution(p, "matrix")
}

func solveScalar(p problem.Problem) problem.Solution {
	const op = "scalar multiply"
	a, err := operand(op, p.Params, "A")
	if err != nil {
		return problem.Failure(p.Type, err)
	}
	k := p.Params.Float("scalar", math.NaN())
	if math.IsNaN(k) || math.IsInf(k, 0) {
		return problem.Failure(p.Type, problem.NewError(problem.KindInvalidParameters, op,
			"scalar multiplication needs a finite scalar, e.g. scalar=3", "scalar", p.Params["scalar"]))
	}
	kr := numeric.RatFromFloat(k)
	ma := FromFloats(a)
	d := Result{Operation: "scale", Label: "kA", A: ma, Scalar: kr.String(), Value: ma.Scale(kr)}
	s := d.solution(p, "matrix")
	s.Summary = fmt.Sprintf("%sA = %s", coefficient(kr), d.Value)
	return s
}

func solveMultiplication(p problem.Problem) problem.Solution {
	const op = "multiply"
	a, err := operand(op, p.Params, "A")
	if err != nil {
		return problem.Failure(p.Type, err)
	}
	b, err := operand(op, p.Params, "B")
	if err != nil {
		return problem.Failure(p.Type, err)
	}
	if len(a[0]) != len(b) {
		return problem.Failure(p.Type, problem.NewError(problem.KindDimensionMismatch, op,
			fmt.Sprintf("Cannot multiply: columns of A (%d) ≠ rows of B (%d)", len(a[0]), len(b)),
			"A", dims(a), "B", dims(b)))
	}
	ma, mb := FromFloats(a), FromFloats(b)
	d := Result{Operation: op, Label: "AB", A: ma, B: mb, Value: ma.Mul(mb)}
	return d.solution(p, "matrix")
}

func solveTranspose(p problem.Problem) problem.Solution {
	a, err := operand("transpose", p.Params, "A")
	if err != nil {
		return problem.Failure(p.Type, err)
	}
	ma := FromFloats(a)
	d := Result{Operation: "transpose", Label: "Aᵀ", A: ma, Value: ma.Transpose()}
	return d.solution(p, "matrix")
}

// ============================================================
// Determinant and inverse: exact
// ============================================================

// Term is one term of a first-row cofactor expansion.
type Term struct {
	Col      int    `json:"col"`
	Entry    string `json:"entry"`
	Cofactor string `json:"cofactor"`
	Product  string `json:"product"`
}

// Determinant is the detail of a determinant.
type Determinant struct {
	A          *Matrix     `json:"a"`
	Value      numeric.Rat `json:"-"`
	Exact      string      `json:"exact"`
	Method     string      `json:"method"`
	Expansion  []Term      `json:"expansion,omitempty"`
	Invertible bool        `json:"invertible"`
}

const (
	MethodDirect    = "direct formula"
	MethodCofactor  = "cofactor expansion"
	MethodReduction = "row reduction"
)

func determinantOf(m *Matrix) Determinant {
	d := Determinant{A: m, Value: m.Det()}
	d.Exact = d.Value.String()
	d.Invertible = !d.Value.IsZero()
	switch {
	case m.Rows() <= 2:
		d.Method = MethodDirect
	case m.Rows() <= cofactorLimit:
		d.Method = MethodCofactor
		for j := 0; j < m.Cols(); j++ {
			c := m.Cofactor(0, j)
			d.Expansion = append(d.Expansion, Term{
				Col: j + 1, Entry: m.At(0, j).String(), Cofactor: c.String(),
				Product: m.At(0, j).Mul(c).String(),
			})
		}
	default:
		d.Method = MethodReduction
	}
	return d
}

func solveDeterminant(p problem.Problem) problem.Solution {
	a, err := squareOperand("determinant", p.Params)
	if err != nil {
		return problem.Failure(p.Type, err)
	}
	d := determinantOf(FromFloats(a))
	state := "A is invertible"
	if !d.Invertible {
		state = "A is singular"
	}
	return problem.Solution{
		Category: p.Type,
		Kind:     "real",
		Answers:  []problem.Answer{problem.RealAnswer("det(A)", d.Value.Float64())},
		Summary:  fmt.Sprintf("det(A) = %s; %s", d.Exact, state),
		Detail:   d,
	}
}

// Inverse is the detail of an inverse. Adjugate is nil when the inverse
// was found by elimination.
type Inverse struct {
	A           *Matrix `json:"a"`
	Determinant string  `json:"determinant"`
	Adjugate    *Matrix `json:"adjugate,omitempty"`
	Value       *Matrix `json:"inverse"`
	Method      string  `json:"method"`
}

func solveInverse(p problem.Problem) problem.Solution {
	const op = "inverse"
	a, err := squareOperand(op, p.Params)
	if err != nil {
		return problem.Failure(p.Type, err)
	}
	m := FromFloats(a)
	inv, ok := m.Inverse()
	if !ok {
		return problem.Failure(p.Type, problem.NewError(problem.KindSingularMatrix, op,
			"A is singular (det(A) = 0) and has no inverse", "A", m.String()))
	}
	d := Inverse{A: m, Determinant: m.Det().String(), Value: inv, Method: "adjugate"}
	if m.Rows() <= cofactorLimit {
		d.Adjugate = m.Adjugate()
	} else {
		d.Method = "Gauss-Jordan elimination"
	}
	return problem.Solution{
		Category: p.Type,
		Kind:     "matrix",
		Answers:  []problem.Answer{problem.MatrixAnswer("A⁻¹", inv.Floats())},
		Summary:  "A⁻¹ = " + inv.String(),
		Detail:   d,
	}
}

// ============================================================
// Row reduction: exact
// ============================================================

func solveEchelon(p problem.Problem, reduced bool) problem.Solution {
	op, label := "row echelon", "ref(A)"
	if reduced {
		op, label = "reduced row echelon", "rref(A)"
	}
	a, err := operand(op, p.Params, "A")
	if err != nil {
		return problem.Failure(p.Type, err)
	}
	e := Reduce(FromFloats(a), reduced)
	return problem.Solution{
		Category: p.Type,
		Kind:     "matrix",
		Answers: []problem.Answer{
			problem.MatrixAnswer(label, e.Result.Floats()),
			problem.RealAnswer("rank", float64(e.Rank())),
			problem.TextAnswer("pivot columns", joinInts(e.PivotColumns())),
		},
		Summary: fmt.Sprintf("%s = %s (%d row operations, rank %d)", label, e.Result, len(e.Ops), e.Rank()),
		Detail:  e,
	}
}

func solveREF(p problem.Problem) problem.Solution  { return solveEchelon(p, false) }
func solveRREF(p problem.Problem) problem.Solution { return solveEchelon(p, true) }

func joinInts(xs []int) string {
	if len(xs) == 0 {
		return "none"
	}
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = fmt.Sprint(x)
	}
	return strings.Join(parts, ", ")
}

// ============================================================
// gonum-backed solvers
// ============================================================

// System is the detail of a linear system.
type System struct {
	A           [][]float64 `json:"a"`
	B           []float64   `json:"b"`
	X           []float64   `json:"x"`
	Determinant string      `json:"determinant"`
	Condition   float64     `json:"condition_number"`
	Method      string      `json:"method"`
}

// rightHandSide reads b as a vector, or as a single-column or single-row
// matrix B.
func rightHandSide(op string, p problem.Params) ([]float64, *problem.Error) {
	if v, ok := p.Vector("b"); ok && len(v) > 0 {
		return v, nil
	}
	if g, ok := p.Matrix("B"); ok {
		switch {
		case len(g[0]) == 1:
			out := make([]float64, len(g))
			for i, row := range g {
				out[i] = row[0]
			}
			return out, nil
		case len(g) == 1:
			return g[0], nil
		}
		return nil, problem.NewError(problem.KindDimensionMismatch, op,
			fmt.Sprintf("the right-hand side must be a vector; B is %s", dims(g)), "B", dims(g))
	}
	return nil, problem.NewError(problem.KindInvalidParameters, op,
		"a linear system needs a right-hand side b, e.g. b=[5,6]")
}

func solveSystem(p problem.Problem) problem.Solution {
	const op = "solve system"
	a, err := operand(op, p.Params, "A")
	if err != nil {
		return problem.Failure(p.Type, err)
	}
	b, err := rightHandSide(op, p.Params)
	if err != nil {
		return problem.Failure(p.Type, err)
	}
	if len(a) != len(b) {
		return problem.Failure(p.Type, problem.NewError(problem.KindDimensionMismatch, op,
			fmt.Sprintf("A has %d rows but b has %d entries", len(a), len(b)),
			"A", dims(a), "b", len(b)))
	}
	if err := requireSquare(op, "A", a); err != nil {
		return problem.Failure(p.Type, err)
	}
	det := FromFloats(a).Det()
	if det.IsZero() {
		return problem.Failure(p.Type, problem.NewError(problem.KindSingularMatrix, op,
			"det(A) = 0, so the system has no unique solution", "A", problem.FormatMatrix(a), "b", problem.FormatVector(b)))
	}
	x, cond, serr := solveLinear(a, b)
	if serr != nil {
		return problem.Failure(p.Type, problem.NewError(problem.KindSingularMatrix, op, serr.Error(),
			"A", problem.FormatMatrix(a)))
	}
	d := System{A: a, B: b, X: x, Determinant: det.String(), Condition: cond,
		Method: "LU factorization with partial pivoting"}
	answers := []problem.Answer{problem.VectorAnswer("x", x)}
	parts := make([]string, len(x))
	for i, xi := range x {
		label := fmt.Sprintf("x%d", i+1)
		answers = append(answers, problem.RealAnswer(label, xi))
		parts[i] = label + " = " + numeric.Format(xi)
	}
	return problem.Solution{
		Category: p.Type,
		Kind:     "vector",
		Answers:  answers,
		Summary:  strings.Join(parts, ", "),
		Detail:   d,
	}
}

// Eigen is the detail of an eigendecomposition. Vectors are the unit
// eigenvectors as columns, present only when every eigenvalue is real.
type Eigen struct {
	A           *Matrix     `json:"a"`
	CharPoly    string      `json:"characteristic_polynomial"`
	Symmetric   bool        `json:"symmetric"`
	Values      []string    `json:"eigenvalues"`
	Vectors     [][]float64 `json:"eigenvectors,omitempty"`
	Trace       string      `json:"trace"`
	Determinant string      `json:"determinant"`
	Pairs       []Eigenpair `json:"-"`
}

// AllReal reports a real spectrum.
func (d Eigen) AllReal() bool {
	for _, p := range d.Pairs {
		if !p.IsReal() {
			return false
		}
	}
	return true
}

func eigenLabel(k int) string { return fmt.Sprintf("λ%d", k+1) }

func solveEigenvalues(p problem.Problem) problem.Solution {
	const op = "eigenvalues"
	a, err := squareOperand(op, p.Params)
	if err != nil {
		return problem.Failure(p.Type, err)
	}
	pairs, symmetric, eerr := eigenpairs(a)
	if eerr != nil {
		return problem.Failure(p.Type, problem.NewError(problem.KindInvalidParameters, op, eerr.Error(),
			"A", problem.FormatMatrix(a)))
	}
	m := FromFloats(a)
	d := Eigen{
		A:           m,
		CharPoly:    m.CharPoly().Format("λ"),
		Symmetric:   symmetric,
		Trace:       m.Trace().String(),
		Determinant: m.Det().String(),
		Pairs:       pairs,
	}
	var answers []problem.Answer
	for k, pr := range pairs {
		if pr.IsReal() {
			answers = append(answers, problem.RealAnswer(eigenLabel(k), real(pr.Value)))
			d.Values = append(d.Values, numeric.Format(real(pr.Value)))
		} else {
			text := poly.ComplexRootString(pr.Value)
			answers = append(answers, problem.TextAnswer(eigenLabel(k), text))
			d.Values = append(d.Values, text)
		}
	}
	if d.AllReal() {
		n := len(a)
		d.Vectors = zeros(n, n)
		for k, pr := range pairs {
			for i := 0; i < n; i++ {
				d.Vectors[i][k] = real(pr.Vector[i])
			}
		}
		answers = append(answers, problem.MatrixAnswer("eigenvectors", d.Vectors))
	}
	return problem.Solution{
		Category: p.Type,
		Kind:     "eigen",
		Answers:  answers,
		Summary:  "λ = " + strings.Join(d.Values, ", "),
		Detail:   d,
	}
}

// Rank is the detail of a rank computation. PivotColumns come from an
// exact reduction and are shown in the steps.
type Rank struct {
	A              *Matrix   `json:"a"`
	SingularValues []float64 `json:"singular_values"`
	Rank           int       `json:"rank"`
	Nullity        int       `json:"nullity"`
	FullRank       bool      `json:"full_rank"`
	PivotColumns   []int     `json:"pivot_columns"`
	RankNullity    string    `json:"rank_nullity"`
}

func solveRank(p problem.Problem) problem.Solution {
	const op = "rank"
	a, err := operand(op, p.Params, "A")
	if err != nil {
		return problem.Failure(p.Type, err)
	}
	s, serr := singularValues(a)
	if serr != nil {
		return problem.Failure(p.Type, problem.NewError(problem.KindInvalidParameters, op, serr.Error(),
			"A", problem.FormatMatrix(a)))
	}
	rows, cols := len(a), len(a[0])
	m := FromFloats(a)
	d := Rank{A: m, SingularValues: s, Rank: numericalRank(s, rows, cols)}
	d.Nullity = cols - d.Rank
	d.FullRank = d.Rank == min(rows, cols)
	d.PivotColumns = Reduce(m, false).PivotColumns()
	d.RankNullity = fmt.Sprintf("rank + nullity = %d + %d = %d (number of columns)", d.Rank, d.Nullity, cols)
	summary := fmt.Sprintf("rank(A) = %d, nullity = %d", d.Rank, d.Nullity)
	if d.FullRank {
		summary += " (full rank)"
	}
	return problem.Solution{
		Category: p.Type,
		Kind:     "integer",
		Answers: []problem.Answer{
			problem.RealAnswer("rank", float64(d.Rank)),
			problem.RealAnswer("nullity", float64(d.Nullity)),
		},
		Summary: summary,
		Detail:  d,
	}
}

// Factorization is the detail of an LU or QR decomposition; the factor
// names are the keys of Factors.
type Factorization struct {
	A       [][]float64            `json:"a"`
	Kind    string                 `json:"kind"`
	Order   []string               `json:"order"`
	Factors map[string][][]float64 `json:"factors"`
}

func (d Factorization) solution(p problem.Problem) problem.Solution {
	answers := make([]problem.Answer, len(d.Order))
	parts := make([]string, len(d.Order))
	for i, name := range d.Order {
		answers[i] = problem.MatrixAnswer(name, d.Factors[name])
		parts[i] = name + " = " + problem.FormatMatrix(d.Factors[name])
	}
	return problem.Solution{
		Category: p.Type,
		Kind:     "factorization",
		Answers:  answers,
		Summary:  strings.Join(parts, "; "),
		Detail:   d,
	}
}

func solveLU(p problem.Problem) problem.Solution {
	a, err := squareOperand("LU decomposition", p.Params)
	if err != nil {
		return problem.Failure(p.Type, err)
	}
	pm, l, u := luFactor(a)
	return Factorization{A: a, Kind: "A = PLU", Order: []string{"P", "L", "U"},
		Factors: map[string][][]float64{"P": pm, "L": l, "U": u}}.solution(p)
}

func solveQR(p problem.Problem) problem.Solution {
	const op = "QR decomposition"
	a, err := operand(op, p.Params, "A")
	if err != nil {
		return problem.Failure(p.Type, err)
	}
	if len(a) < len(a[0]) {
		return problem.Failure(p.Type, problem.NewError(problem.KindDimensionMismatch, op,
			fmt.Sprintf("QR needs at least as many rows as columns; A is %s", dims(a)), "A", dims(a)))
	}
	q, r := qrFactor(a)
	return Factorization{A: a, Kind: "A = QR", Order: []string{"Q", "R"},
		Factors: map[string][][]float64{"Q": q, "R": r}}.solution(p)
}
