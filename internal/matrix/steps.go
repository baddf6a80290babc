package matrix

import (
	"fmt"
	"strings"

	"github.com/njchilds90/goworkbook/internal/numeric"
	"github.com/njchilds90/goworkbook/internal/problem"
)

// maxShownOps caps the row operations listed one per step; the rest are
// summarised in a final reduction step.
const maxShownOps = 12

func finalAnswer(s problem.Solution) string {
	parts := make([]string, 0, len(s.Answers))
	for _, a := range s.Answers {
		parts = append(parts, a.Label+" = "+a.String())
	}
	return strings.Join(parts, ", ")
}

// ============================================================
// Arithmetic
// ============================================================

func stepsAddition(_ problem.Problem, s problem.Solution) []problem.Step {
	d, _ := s.Detail.(Result)
	verb, sym := "Add", "+"
	if d.Operation == "subtract" {
		verb, sym = "Subtract", "-"
	}
	return []problem.Step{{
		Name:        "Check dimensions",
		Description: "Both matrices must have the same shape",
		Expression:  fmt.Sprintf("A is %s, B is %s", d.A.Dims(), d.B.Dims()),
		Reasoning:   "Entries are combined position by position",
	}, {
		Name:        "Add corresponding entries",
		Description: verb + " the entries in matching positions",
		Expression:  fmt.Sprintf("%s %s %s", d.A, sym, d.B),
		After:       d.Value.String(),
		Rule:        fmt.Sprintf("(A %s B)ᵢⱼ = Aᵢⱼ %s Bᵢⱼ", sym, sym),
		FinalAnswer: finalAnswer(s),
	}}
}

func stepsScalar(_ problem.Problem, s problem.Solution) []problem.Step {
	d, _ := s.Detail.(Result)
	return []problem.Step{{
		Name:        "Multiply each entry",
		Description: "Multiply every entry of A by " + d.Scalar,
		Expression:  fmt.Sprintf("%s · %s", d.Scalar, d.A),
		Before:      d.A.String(),
		After:       d.Value.String(),
		Rule:        "(kA)ᵢⱼ = k·Aᵢⱼ",
		FinalAnswer: finalAnswer(s),
	}}
}

func stepsMultiplication(_ problem.Problem, s problem.Solution) []problem.Step {
	d, _ := s.Detail.(Result)
	var entries []string
	for i := 0; i < d.Value.Rows() && len(entries) < 4; i++ {
		for j := 0; j < d.Value.Cols() && len(entries) < 4; j++ {
			terms := make([]string, d.A.Cols())
			for k := range terms {
				terms[k] = d.A.At(i, k).String() + "·" + d.B.At(k, j).String()
			}
			entries = append(entries, fmt.Sprintf("(AB)%d%d = %s = %s",
				i+1, j+1, strings.Join(terms, " + "), d.Value.At(i, j)))
		}
	}
	return []problem.Step{{
		Name:        "Check dimension compatibility",
		Description: "The columns of A must match the rows of B",
		Expression:  fmt.Sprintf("(%s)·(%s) → %s", d.A.Dims(), d.B.Dims(), d.Value.Dims()),
		Reasoning:   fmt.Sprintf("A has %d columns and B has %d rows", d.A.Cols(), d.B.Rows()),
	}, {
		Name:        "Compute dot products",
		Description: "Each entry is row i of A dotted with column j of B",
		Expression:  strings.Join(entries, "; "),
		After:       d.Value.String(),
		Rule:        "(AB)ᵢⱼ = Σₖ Aᵢₖ·Bₖⱼ",
		FinalAnswer: finalAnswer(s),
	}}
}

func stepsTranspose(_ problem.Problem, s problem.Solution) []problem.Step {
	d, _ := s.Detail.(Result)
	return []problem.Step{{
		Name:        "Swap rows and columns",
		Description: fmt.Sprintf("Row i of A becomes column i of Aᵀ; the %s matrix becomes %s", d.A.Dims(), d.Value.Dims()),
		Before:      d.A.String(),
		After:       d.Value.String(),
		Rule:        "(Aᵀ)ᵢⱼ = Aⱼᵢ",
		FinalAnswer: finalAnswer(s),
	}}
}

// ============================================================
// Determinant and inverse
// ============================================================

func determinantSteps(d Determinant) []problem.Step {
	out := []problem.Step{{
		Name:        "Verify square matrix",
		Description: "Determinants are defined for square matrices only",
		Expression:  "A is " + d.A.Dims(),
	}}
	switch d.Method {
	case MethodDirect:
		expr := "det(A) = " + d.Exact
		if d.A.Rows() == 2 {
			a, b, c, e := d.A.At(0, 0), d.A.At(0, 1), d.A.At(1, 0), d.A.At(1, 1)
			expr = fmt.Sprintf("det(A) = (%s)(%s) - (%s)(%s) = %s", a, e, b, c, d.Exact)
		}
		out = append(out, problem.Step{
			Name:        "Apply 2×2 determinant formula",
			Description: "Multiply the diagonals and subtract",
			Expression:  expr,
			Rule:        "det[[a, b], [c, d]] = ad - bc",
		})
	case MethodCofactor:
		terms := make([]string, len(d.Expansion))
		for i, t := range d.Expansion {
			terms[i] = fmt.Sprintf("(%s)(%s)", t.Entry, t.Cofactor)
		}
		out = append(out, problem.Step{
			Name:        "Cofactor expansion",
			Description: "Expand along the first row with alternating signs",
			Expression:  "det(A) = " + strings.Join(terms, " + ") + " = " + d.Exact,
			Reasoning:   "Each cofactor is a signed determinant of the minor left after deleting row 1 and column j",
			Rule:        "det A = Σⱼ (-1)^(1+j)·a₁ⱼ·M₁ⱼ",
		})
	default:
		out = append(out, problem.Step{
			Name:        "Perform row reduction",
			Description: "Reduce to echelon form, tracking swaps and pivot scales",
			Expression:  "det(A) = (-1)^swaps · Π pivots = " + d.Exact,
		})
	}
	interp := "det(A) ≠ 0, so A is invertible and its rows are independent"
	if !d.Invertible {
		interp = "det(A) = 0, so A is singular and its rows are dependent"
	}
	return append(out, problem.Step{
		Name:        "Interpret result",
		Description: interp,
		After:       d.Exact,
	})
}

func stepsDeterminant(_ problem.Problem, s problem.Solution) []problem.Step {
	d, _ := s.Detail.(Determinant)
	out := determinantSteps(d)
	out[len(out)-1].FinalAnswer = finalAnswer(s)
	return out
}

func stepsInverse(_ problem.Problem, s problem.Solution) []problem.Step {
	d, _ := s.Detail.(Inverse)
	adj := problem.Step{
		Name:        "Compute adjugate",
		Description: "Transpose the matrix of cofactors",
		Rule:        "A⁻¹ = adj(A) / det A",
	}
	if d.Adjugate != nil {
		adj.After = d.Adjugate.String()
		adj.Expression = "adj(A) = " + d.Adjugate.String()
	} else {
		adj.Description = "Row reduce [A | I] to [I | A⁻¹]"
		adj.Expression = "Gauss-Jordan elimination on the augmented matrix"
	}
	return []problem.Step{{
		Name:        "Check invertibility",
		Description: "A square matrix is invertible exactly when its determinant is non-zero",
		Expression:  "det(A) = " + d.Determinant,
		Reasoning:   "det(A) ≠ 0, so the inverse exists",
	}, adj, {
		Name:        "Obtain inverse matrix",
		Description: "Divide the adjugate by the determinant",
		Expression:  fmt.Sprintf("A⁻¹ = (1/%s)·adj(A)", d.Determinant),
		After:       d.Value.String(),
		FinalAnswer: finalAnswer(s),
	}}
}

// ============================================================
// Row reduction
// ============================================================

func reductionSteps(e Elimination) []problem.Step {
	ops := e.Ops
	var out []problem.Step
	if len(ops) == 0 {
		return []problem.Step{{
			Name:        "Perform row reduction",
			Description: "The matrix is already in the required form",
			After:       e.Result.String(),
		}}
	}
	shown := ops
	if len(ops) > maxShownOps {
		shown = ops[:maxShownOps-1]
	}
	before := e.Input.String()
	for _, op := range shown {
		out = append(out, problem.Step{
			Name:        "Perform row reduction",
			Description: describeOp(op),
			Expression:  op.Text,
			Before:      before,
			After:       op.After.String(),
		})
		before = op.After.String()
	}
	if len(shown) < len(ops) {
		rest := make([]string, 0, len(ops)-len(shown))
		for _, op := range ops[len(shown):] {
			rest = append(rest, op.Text)
		}
		out = append(out, problem.Step{
			Name:        "Perform row reduction",
			Description: fmt.Sprintf("Apply the remaining %d operations", len(rest)),
			Expression:  strings.Join(rest, "; "),
			Before:      before,
			After:       e.Result.String(),
		})
	}
	return out
}

func describeOp(op RowOp) string {
	switch op.Kind {
	case OpSwap:
		return fmt.Sprintf("Swap rows %d and %d to bring a non-zero pivot up", op.Target+1, op.Source+1)
	case OpScale:
		return fmt.Sprintf("Scale row %d so that its pivot is 1", op.Target+1)
	}
	return fmt.Sprintf("Clear the entry in row %d using row %d", op.Target+1, op.Source+1)
}

func stepsEchelon(_ problem.Problem, s problem.Solution) []problem.Step {
	e, _ := s.Detail.(Elimination)
	out := reductionSteps(e)
	form := "row echelon form"
	if e.Reduced {
		form = "reduced row echelon form"
	}
	return append(out, problem.Step{
		Name:        "Interpret result",
		Description: fmt.Sprintf("The matrix is in %s with %d pivots", form, e.Rank()),
		Expression:  "pivot columns: " + joinInts(e.PivotColumns()),
		After:       e.Result.String(),
		Reasoning:   "The number of pivots is the rank of A",
		FinalAnswer: finalAnswer(s),
	})
}

// ============================================================
// gonum-backed types
// ============================================================

func stepsSystem(_ problem.Problem, s problem.Solution) []problem.Step {
	d, _ := s.Detail.(System)
	eqs := make([]string, len(d.A))
	for i, row := range d.A {
		var terms []string
		for j, a := range row {
			if a == 0 {
				continue
			}
			terms = append(terms, fmt.Sprintf("%s·x%d", numeric.Format(a), j+1))
		}
		if len(terms) == 0 {
			terms = []string{"0"}
		}
		eqs[i] = strings.Join(terms, " + ") + " = " + numeric.Format(d.B[i])
	}
	return []problem.Step{{
		Name:        "Write in matrix form",
		Description: "Collect the coefficients into A and the constants into b",
		Expression:  fmt.Sprintf("A = %s, b = %s", problem.FormatMatrix(d.A), problem.FormatVector(d.B)),
		Before:      strings.Join(eqs, "; "),
		Rule:        "Ax = b",
	}, {
		Name:        "Check invertibility",
		Description: "A unique solution exists when det(A) ≠ 0",
		Expression:  "det(A) = " + d.Determinant,
		Reasoning:   fmt.Sprintf("condition number ≈ %s", numeric.FormatFixed(d.Condition, 2)),
	}, {
		Name:        "Execute solution algorithm",
		Description: d.Method + ", then forward and back substitution",
		After:       problem.FormatVector(d.X),
		FinalAnswer: s.Summary,
	}}
}

func stepsEigenvalues(_ problem.Problem, s problem.Solution) []problem.Step {
	d, _ := s.Detail.(Eigen)
	out := []problem.Step{{
		Name:        "Verify square matrix",
		Description: "Eigenvalues are defined for square matrices only",
		Expression:  "A is " + d.A.Dims(),
	}, {
		Name:        "Characteristic polynomial",
		Description: "Expand det(λI - A)",
		Expression:  "p(λ) = " + d.CharPoly,
		Reasoning:   fmt.Sprintf("The λ coefficients encode trace(A) = %s and det(A) = %s", d.Trace, d.Determinant),
		Rule:        "det(λI - A) = 0",
	}, {
		Name:        "Compute eigenvalues",
		Description: "The eigenvalues are the roots of p(λ)",
		Expression:  strings.Join(prefixed("λ", d.Values), ", "),
		Rule:        "Av = λv",
	}}
	if d.Vectors != nil {
		cols := make([]string, len(d.Vectors[0]))
		for k := range cols {
			v := make([]float64, len(d.Vectors))
			for i := range v {
				v[i] = d.Vectors[i][k]
			}
			cols[k] = fmt.Sprintf("v%d = %s", k+1, problem.FormatVector(v))
		}
		out = append(out, problem.Step{
			Name:        "Compute eigenvalues",
			Description: "Solve (A - λI)v = 0 for each eigenvalue and normalise",
			Expression:  strings.Join(cols, ", "),
		})
	}
	out[len(out)-1].FinalAnswer = finalAnswer(s)
	return out
}

func prefixed(sym string, vals []string) []string {
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = fmt.Sprintf("%s%d = %s", sym, i+1, v)
	}
	return out
}

func stepsRank(_ problem.Problem, s problem.Solution) []problem.Step {
	d, _ := s.Detail.(Rank)
	full := "A does not have full rank"
	if d.FullRank {
		full = "A has full rank"
	}
	return []problem.Step{{
		Name:        "Compute singular values",
		Description: "Count the singular values that are not zero",
		Expression:  "σ = " + problem.FormatVector(d.SingularValues),
		After:       fmt.Sprint(d.Rank),
	}, {
		Name:        "Perform row reduction",
		Description: "Row reduce and count the pivots as a cross-check",
		Expression:  "pivot columns: " + joinInts(d.PivotColumns),
	}, {
		Name:        "Interpret result",
		Description: full,
		Expression:  d.RankNullity,
		FinalAnswer: finalAnswer(s),
	}}
}

func stepsLU(_ problem.Problem, s problem.Solution) []problem.Step {
	d, _ := s.Detail.(Factorization)
	return []problem.Step{{
		Name:        "Verify square matrix",
		Description: "LU factorization is taken of a square matrix",
		Expression:  "A is " + dims(d.A),
	}, {
		Name:        "Factor with partial pivoting",
		Description: "Eliminate below each pivot, choosing the largest pivot in its column and recording the row swaps in P",
		Expression:  s.Summary,
		Rule:        "A = PLU",
		FinalAnswer: s.Summary,
	}}
}

func stepsQR(_ problem.Problem, s problem.Solution) []problem.Step {
	d, _ := s.Detail.(Factorization)
	return []problem.Step{{
		Name:        "Orthogonalize columns",
		Description: fmt.Sprintf("Turn the %d columns of A into orthonormal columns of Q; R holds the coefficients", len(d.A[0])),
		Expression:  s.Summary,
		Rule:        "A = QR, QᵀQ = I",
		FinalAnswer: s.Summary,
	}}
}
