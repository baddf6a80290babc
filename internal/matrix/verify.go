package matrix

import (
	"fmt"
	"math"
	"math/cmplx"
	"strconv"

	"github.com/njchilds90/goworkbook/internal/numeric"
	"github.com/njchilds90/goworkbook/internal/poly"
	"github.com/njchilds90/goworkbook/internal/problem"
)

// The verifiers read operands from the problem and results from the
// answers only. Entry-wise comparisons are scaled by the largest entry
// involved, so a check is relative for large matrices.

func invalid(method string, err *problem.Error) problem.Verification {
	return problem.Verify(method, numeric.MatrixTolerance, problem.Holds("operands", false, err.Error()))
}

func matrixAnswer(s problem.Solution, label string) ([][]float64, bool) {
	a, ok := s.Answer(label)
	if !ok || a.Matrix == nil {
		return nil, false
	}
	return a.Matrix, true
}

func missing(label string) problem.Check {
	return problem.Holds(label+" present", false, "the solution has no "+label+" answer")
}

// gridCheck compares two matrices entry by entry.
func gridCheck(name string, expected, actual [][]float64, tol float64) problem.Check {
	d := maxDiff(expected, actual)
	if math.IsInf(d, 1) {
		return problem.Holds(name, false, "shape differs from the expected result")
	}
	return problem.Residual(name, d/math.Max(maxAbs(expected), maxAbs(actual)), tol)
}

func identity(n int) [][]float64 {
	out := zeros(n, n)
	for i := range out {
		out[i][i] = 1
	}
	return out
}

func isSquareGrid(g [][]float64) bool { return len(g) > 0 && len(g) == len(g[0]) }

// ============================================================
// Arithmetic
// ============================================================

func verifyAddition(p problem.Problem, s problem.Solution) problem.Verification {
	const method = "entrywise recomputation"
	a, err := operand("add", p.Params, "A")
	if err != nil {
		return invalid(method, err)
	}
	b, err := operand("add", p.Params, "B")
	if err != nil {
		return invalid(method, err)
	}
	sign, label := 1.0, "A + B"
	if p.Params.String("operation", "add") == "subtract" {
		sign, label = -1, "A - B"
	}
	got, ok := matrixAnswer(s, label)
	if !ok {
		return problem.Verify(method, numeric.MatrixTolerance, missing(label))
	}
	want := zeros(len(a), len(a[0]))
	// Column-major order, independent of the solver's row sweep.
	for j := range a[0] {
		for i := range a {
			want[i][j] = a[i][j] + sign*b[i][j]
		}
	}
	return problem.Verify(method, numeric.MatrixTolerance, gridCheck(label, want, got, numeric.MatrixTolerance))
}

func verifyScalar(p problem.Problem, s problem.Solution) problem.Verification {
	const method = "entrywise recomputation"
	a, err := operand("scalar multiply", p.Params, "A")
	if err != nil {
		return invalid(method, err)
	}
	k := p.Params.Float("scalar", math.NaN())
	got, ok := matrixAnswer(s, "kA")
	if !ok {
		return problem.Verify(method, numeric.MatrixTolerance, missing("kA"))
	}
	want := zeros(len(a), len(a[0]))
	for j := range a[0] {
		for i := range a {
			want[i][j] = k * a[i][j]
		}
	}
	return problem.Verify(method, numeric.MatrixTolerance, gridCheck("kA", want, got, numeric.MatrixTolerance))
}

func verifyMultiplication(p problem.Problem, s problem.Solution) problem.Verification {
	const method = "floating-point product"
	a, err := operand("multiply", p.Params, "A")
	if err != nil {
		return invalid(method, err)
	}
	b, err := operand("multiply", p.Params, "B")
	if err != nil {
		return invalid(method, err)
	}
	got, ok := matrixAnswer(s, "AB")
	if !ok {
		return problem.Verify(method, numeric.MatrixTolerance, missing("AB"))
	}
	return problem.Verify(method, numeric.MatrixTolerance,
		problem.Holds("shape", len(got) == len(a) && len(got[0]) == len(b[0]),
			fmt.Sprintf("expected %d×%d", len(a), len(b[0]))),
		gridCheck("AB", product(a, b), got, numeric.MatrixTolerance),
	)
}

func verifyTranspose(p problem.Problem, s problem.Solution) problem.Verification {
	const method = "index swap"
	a, err := operand("transpose", p.Params, "A")
	if err != nil {
		return invalid(method, err)
	}
	got, ok := matrixAnswer(s, "Aᵀ")
	if !ok {
		return problem.Verify(method, numeric.MatrixTolerance, missing("Aᵀ"))
	}
	checks := []problem.Check{gridCheck("(Aᵀ)ᵢⱼ = Aⱼᵢ", transposed(a), got, numeric.MatrixTolerance)}
	if len(got) > 0 && len(got[0]) > 0 {
		checks = append(checks, gridCheck("(Aᵀ)ᵀ = A", a, transposed(got), numeric.MatrixTolerance))
	}
	return problem.Verify(method, numeric.MatrixTolerance, checks...)
}

// ============================================================
// Determinant and inverse
// ============================================================

func verifyDeterminant(p problem.Problem, s problem.Solution) problem.Verification {
	const method = "LU determinant"
	a, err := squareOperand("determinant", p.Params)
	if err != nil {
		return invalid(method, err)
	}
	a1, ok := s.Answer("det(A)")
	if !ok || a1.Real == nil {
		return problem.Verify(method, numeric.ValueTolerance, missing("det(A)"))
	}
	got := *a1.Real
	// LU round-off grows with the entries, so the comparison is relative
	// to the product of row norms (Hadamard's bound).
	bound := 1.0
	for _, row := range a {
		var sq float64
		for _, x := range row {
			sq += x * x
		}
		bound *= math.Max(1, math.Sqrt(sq))
	}
	return problem.Verify(method, numeric.ValueTolerance,
		problem.Residual("det(A) matches mat.Det", (floatDet(a)-got)/bound, numeric.ValueTolerance),
		problem.Residual("det(Aᵀ) = det(A)", (floatDet(transposed(a))-got)/bound, numeric.ValueTolerance),
	)
}

func verifyInverse(p problem.Problem, s problem.Solution) problem.Verification {
	const method = "identity product"
	a, err := squareOperand("inverse", p.Params)
	if err != nil {
		return invalid(method, err)
	}
	inv, ok := matrixAnswer(s, "A⁻¹")
	if !ok {
		return problem.Verify(method, numeric.MatrixTolerance, missing("A⁻¹"))
	}
	if !isSquareGrid(inv) || len(inv) != len(a) {
		return problem.Verify(method, numeric.MatrixTolerance,
			problem.Holds("shape", false, "A⁻¹ must have the shape of A"))
	}
	n := len(a)
	scale := maxAbs(a) * maxAbs(inv) * float64(n)
	left := maxDiff(product(a, inv), identity(n)) / scale
	right := maxDiff(product(inv, a), identity(n)) / scale
	return problem.Verify(method, numeric.MatrixTolerance,
		problem.Residual("A·A⁻¹ = I", left, numeric.MatrixTolerance),
		problem.Residual("A⁻¹·A = I", right, numeric.MatrixTolerance),
	)
}

// ============================================================
// Systems, spectra and rank
// ============================================================

func verifySystem(p problem.Problem, s problem.Solution) problem.Verification {
	const method = "residual A·x - b"
	a, err := operand("solve system", p.Params, "A")
	if err != nil {
		return invalid(method, err)
	}
	b, err := rightHandSide("solve system", p.Params)
	if err != nil {
		return invalid(method, err)
	}
	ans, ok := s.Answer("x")
	if !ok || ans.Vector == nil {
		return problem.Verify(method, numeric.MatrixTolerance, missing("x"))
	}
	x := ans.Vector
	if len(x) != len(a[0]) {
		return problem.Verify(method, numeric.MatrixTolerance,
			problem.Holds("length of x", false, fmt.Sprintf("expected %d unknowns", len(a[0]))))
	}
	checks := make([]problem.Check, len(a))
	for i, row := range a {
		var lhs, scale float64
		for j, aij := range row {
			lhs += aij * x[j]
			scale += math.Abs(aij * x[j])
		}
		scale = math.Max(1, math.Max(scale, math.Abs(b[i])))
		checks[i] = problem.Residual(fmt.Sprintf("equation %d", i+1), (lhs-b[i])/scale, numeric.MatrixTolerance)
	}
	return problem.Verify(method, numeric.MatrixTolerance, checks...)
}

// eigenvalue reads λk back from its answer, real or complex.
func eigenvalue(ans problem.Answer) (complex128, error) {
	if ans.Real != nil {
		return complex(*ans.Real, 0), nil
	}
	return poly.ParseComplex(ans.Text)
}

func verifyEigenvalues(p problem.Problem, s problem.Solution) problem.Verification {
	const method = "eigen equations"
	tol := numeric.RootTolerance
	a, err := squareOperand("eigenvalues", p.Params)
	if err != nil {
		return invalid(method, err)
	}
	n := len(a)
	vectors, hasVectors := matrixAnswer(s, "eigenvectors")
	charPoly := FromFloats(a).CharPoly()
	norm := maxAbs(a) * float64(n)

	var checks []problem.Check
	var sum complex128
	for k := 0; k < n; k++ {
		label := eigenLabel(k)
		ans, ok := s.Answer(label)
		if !ok {
			checks = append(checks, missing(label))
			continue
		}
		lambda, perr := eigenvalue(ans)
		if perr != nil {
			checks = append(checks, problem.Holds(label, false, perr.Error()))
			continue
		}
		sum += lambda
		var pscale float64
		for d, c := range charPoly {
			pscale += math.Abs(c) * math.Pow(cmplx.Abs(lambda), float64(d))
		}
		checks = append(checks, problem.Residual("p("+label+") = 0",
			cmplx.Abs(charPoly.EvalComplex(lambda))/math.Max(1, pscale), tol))

		if !hasVectors || imag(lambda) != 0 || len(vectors) != n {
			continue
		}
		v := make([]float64, n)
		var vnorm float64
		for i := range v {
			v[i] = vectors[i][k]
			vnorm = math.Max(vnorm, math.Abs(v[i]))
		}
		if vnorm == 0 {
			checks = append(checks, problem.Holds("v"+strconv.Itoa(k+1)+" ≠ 0", false, "zero eigenvector"))
			continue
		}
		var res float64
		for i := range a {
			var av float64
			for j := range a[i] {
				av += a[i][j] * v[j]
			}
			res = math.Max(res, math.Abs(av-real(lambda)*v[i]))
		}
		checks = append(checks, problem.Residual(fmt.Sprintf("‖Av%d - %sv%d‖", k+1, label, k+1),
			res/(norm*vnorm), tol))
	}
	var trace float64
	for i := range a {
		trace += a[i][i]
	}
	checks = append(checks, problem.Compare("Σλ = trace(A)", trace, real(sum), tol*norm))
	return problem.Verify(method, tol, checks...)
}

func verifyRank(p problem.Problem, s problem.Solution) problem.Verification {
	const method = "exact elimination"
	a, err := operand("rank", p.Params, "A")
	if err != nil {
		return invalid(method, err)
	}
	rank, ok := s.Answer("rank")
	if !ok || rank.Real == nil {
		return problem.Verify(method, numeric.Epsilon, missing("rank"))
	}
	want := Reduce(FromFloats(a), false).Rank()
	checks := []problem.Check{problem.Compare("rank by elimination", float64(want), *rank.Real, numeric.Epsilon)}
	if nullity, ok := s.Answer("nullity"); ok && nullity.Real != nil {
		checks = append(checks, problem.Compare("rank + nullity = columns",
			float64(len(a[0])), *rank.Real+*nullity.Real, numeric.Epsilon))
	}
	return problem.Verify(method, numeric.Epsilon, checks...)
}

// ============================================================
// Factorizations
// ============================================================

func isTriangular(g [][]float64, upper bool, tol float64) bool {
	for i, row := range g {
		for j, x := range row {
			if (upper && j < i || !upper && j > i) && math.Abs(x) > tol {
				return false
			}
		}
	}
	return true
}

func isPermutation(g [][]float64) bool {
	if !isSquareGrid(g) {
		return false
	}
	colSeen := make([]bool, len(g))
	for _, row := range g {
		ones := 0
		for j, x := range row {
			switch x {
			case 0:
			case 1:
				ones++
				if colSeen[j] {
					return false
				}
				colSeen[j] = true
			default:
				return false
			}
		}
		if ones != 1 {
			return false
		}
	}
	return true
}

func verifyLU(p problem.Problem, s problem.Solution) problem.Verification {
	const method = "reconstruction P·L·U"
	tol := numeric.MatrixTolerance
	a, err := squareOperand("LU decomposition", p.Params)
	if err != nil {
		return invalid(method, err)
	}
	pm, okP := matrixAnswer(s, "P")
	l, okL := matrixAnswer(s, "L")
	u, okU := matrixAnswer(s, "U")
	if !okP || !okL || !okU {
		return problem.Verify(method, tol, missing("P, L, U"))
	}
	unit := true
	for i := range l {
		if i < len(l[i]) && !numeric.ApproxEqual(l[i][i], 1, tol) {
			unit = false
		}
	}
	recon := math.Inf(1)
	if len(pm) == len(l) && len(l) > 0 && len(l[0]) == len(u) {
		recon = maxDiff(product(pm, product(l, u)), a) / (maxAbs(a) * float64(len(a)))
	}
	return problem.Verify(method, tol,
		problem.Residual("P·L·U = A", recon, tol),
		problem.Holds("P is a permutation", isPermutation(pm), ""),
		problem.Holds("L is unit lower triangular", unit && isTriangular(l, false, tol), ""),
		problem.Holds("U is upper triangular", isTriangular(u, true, tol), ""),
	)
}

func verifyQR(p problem.Problem, s problem.Solution) problem.Verification {
	const method = "reconstruction Q·R"
	tol := numeric.MatrixTolerance
	a, err := operand("QR decomposition", p.Params, "A")
	if err != nil {
		return invalid(method, err)
	}
	q, okQ := matrixAnswer(s, "Q")
	r, okR := matrixAnswer(s, "R")
	if !okQ || !okR {
		return problem.Verify(method, tol, missing("Q, R"))
	}
	recon, orth := math.Inf(1), math.Inf(1)
	if len(q) > 0 && len(q[0]) == len(r) {
		recon = maxDiff(product(q, r), a) / (maxAbs(a) * float64(len(a)))
		orth = maxDiff(product(transposed(q), q), identity(len(q[0]))) / float64(len(q))
	}
	return problem.Verify(method, tol,
		problem.Residual("Q·R = A", recon, tol),
		problem.Residual("QᵀQ = I", orth, tol),
		problem.Holds("R is upper triangular", isTriangular(r, true, tol*maxAbs(a)), ""),
	)
}

// ============================================================
// Row reduction
// ============================================================

// verifyEchelon checks the shape of the answer and that row reduction
// kept the row space: rank(R) = rank(A) = rank of A stacked on R.
func verifyEchelon(p problem.Problem, s problem.Solution) problem.Verification {
	reduced := p.Type == TypeRREF
	method, label := "echelon structure", "ref(A)"
	if reduced {
		label = "rref(A)"
	}
	tol := numeric.MatrixTolerance
	a, err := operand("row reduction", p.Params, "A")
	if err != nil {
		return invalid(method, err)
	}
	got, ok := matrixAnswer(s, label)
	if !ok {
		return problem.Verify(method, tol, missing(label))
	}
	if len(got) != len(a) || len(got[0]) != len(a[0]) {
		return problem.Verify(method, tol, problem.Holds("shape", false, "the reduced matrix must keep the shape of A"))
	}
	rankOf := func(g [][]float64) int {
		sv, err := singularValues(g)
		if err != nil {
			return -1
		}
		return numericalRank(sv, len(g), len(g[0]))
	}
	stacked := append(append([][]float64{}, a...), got...)
	ra, rr, rs := rankOf(a), rankOf(got), rankOf(stacked)
	kind := "row echelon form with leading 1s"
	if reduced {
		kind = "reduced row echelon form"
	}
	checks := []problem.Check{
		problem.Holds(kind, IsEchelon(got, reduced, tol*maxAbs(got)), ""),
		problem.Holds("rank preserved", ra == rr, fmt.Sprintf("rank(A) = %d, rank(%s) = %d", ra, label, rr)),
		problem.Holds("same row space", rs == ra, fmt.Sprintf("rank([A; %s]) = %d", label, rs)),
	}
	if rank, ok := s.Answer("rank"); ok && rank.Real != nil {
		checks = append(checks, problem.Compare("reported rank", float64(ra), *rank.Real, numeric.Epsilon))
	}
	return problem.Verify(method, tol, checks...)
}
