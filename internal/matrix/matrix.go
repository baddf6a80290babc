// Package matrix solves matrix problems: arithmetic, transpose,
// determinant and inverse in exact rational arithmetic, row echelon forms
// with a row-operation log, and linear systems, eigenvalues, rank, LU and
// QR through gonum.
package matrix

import (
	"github.com/njchilds90/goworkbook/internal/problem"
	"github.com/njchilds90/goworkbook/internal/registry"
)

// Type identifiers, in registration order.
const (
	TypeAddition       problem.TypeID = "matrix_addition"
	TypeScalar         problem.TypeID = "scalar_multiplication"
	TypeMultiplication problem.TypeID = "matrix_multiplication"
	TypeTranspose      problem.TypeID = "matrix_transpose"
	TypeDeterminant    problem.TypeID = "determinant"
	TypeInverse        problem.TypeID = "matrix_inverse"
	TypeSystem         problem.TypeID = "solve_system"
	TypeEigenvalues    problem.TypeID = "eigenvalues"
	TypeRank           problem.TypeID = "matrix_rank"
	TypeLU             problem.TypeID = "lu_decomposition"
	TypeQR             problem.TypeID = "qr_decomposition"
	TypeRREF           problem.TypeID = "reduced_row_echelon"
	TypeREF            problem.TypeID = "row_echelon"
)

var reg = newRegistry()

// Registry returns the frozen matrix type table.
func Registry() *registry.Registry { return reg }

// newRegistry builds the table. reduced_row_echelon is registered before
// row_echelon because "reduced row echelon" also contains "row echelon".
func newRegistry() *registry.Registry {
	r := registry.New(problem.DomainMatrix, Clean)

	r.Register(registry.Entry{
		ID:          TypeAddition,
		Name:        "Matrix Addition",
		Category:    "basic_operations",
		Description: "Adds or subtracts matrices of the same size entry by entry",
		Patterns: registry.Patterns(
			`add.*matri`,
			`matri\w*\s+(?:addition|subtraction)`,
			`(?:sum|difference)\s+of.*matri`,
			`subtract.*matri`,
			`\bA\s*[-+]\s*B\b`,
		),
		Extract: extractOperands,
		Solve:   solveAddition,
		Verify:  verifyAddition,
		Steps:   stepsAddition,
	})
	r.Register(registry.Entry{
		ID:          TypeScalar,
		Name:        "Scalar Multiplication",
		Category:    "basic_operations",
		Description: "Multiplies every entry by a scalar",
		Patterns: registry.Patterns(
			`scalar.*mult`,
			`multiply.*scalar`,
			`scale.*matrix`,
			`multiply.*\bby\s+-?[\d./]+\s*$`,
		),
		Extract: extractOperands,
		Solve:   solveScalar,
		Verify:  verifyScalar,
		Steps:   stepsScalar,
	})
	r.Register(registry.Entry{
		ID:          TypeMultiplication,
		Name:        "Matrix Multiplication",
		Category:    "basic_operations",
		Description: "Row-by-column product of two compatible matrices",
		Patterns: registry.Patterns(
			`matri\w*\s+mult`,
			`multiply.*matri`,
			`product.*matri`,
			`\bA\s*[·*×]\s*B\b`,
			`\bAB\b`,
		),
		Extract: extractOperands,
		Solve:   solveMultiplication,
		Verify:  verifyMultiplication,
		Steps:   stepsMultiplication,
	})
	r.Register(registry.Entry{
		ID:          TypeTranspose,
		Name:        "Matrix Transpose",
		Category:    "basic_operations",
		Description: "Swaps rows and columns",
		Patterns: registry.Patterns(
			`transpose`,
			`flip.*matrix`,
			`\bA\s*(?:\^T|ᵀ)`,
		),
		Extract: extractOperands,
		Solve:   solveTranspose,
		Verify:  verifyTranspose,
		Steps:   stepsTranspose,
	})
	r.Register(registry.Entry{
		ID:          TypeDeterminant,
		Name:        "Determinant",
		Category:    "matrix_properties",
		Description: "Exact determinant by the 2×2 formula or cofactor expansion",
		Patterns: registry.Patterns(
			`determinant`,
			`\bdet\s*\(`,
			`\bdet\b.*matri`,
		),
		Extract: extractOperands,
		Solve:   solveDeterminant,
		Verify:  verifyDeterminant,
		Steps:   stepsDeterminant,
	})
	r.Register(registry.Entry{
		ID:          TypeInverse,
		Name:        "Matrix Inverse",
		Category:    "matrix_properties",
		Description: "Exact inverse through the adjugate",
		Patterns: registry.Patterns(
			`inverse`,
			`invert`,
			`\bA\s*(?:\^-1|⁻¹)`,
		),
		Extract: extractOperands,
		Solve:   solveInverse,
		Verify:  verifyInverse,
		Steps:   stepsInverse,
	})
	r.Register(registry.Entry{
		ID:          TypeSystem,
		Name:        "Linear System",
		Category:    "linear_systems",
		Description: "Solves Ax = b for a square nonsingular A",
		Patterns: registry.Patterns(
			`solve.*system`,
			`linear\s+system`,
			`system\s+of.*equations`,
			`\bAx\s*=\s*b\b`,
		),
		Extract: extractOperands,
		Solve:   solveSystem,
		Verify:  verifySystem,
		Steps:   stepsSystem,
	})
	r.Register(registry.Entry{
		ID:          TypeEigenvalues,
		Name:        "Eigenvalues and Eigenvectors",
		Category:    "spectral",
		Description: "Characteristic polynomial, eigenvalues and unit eigenvectors",
		Patterns: registry.Patterns(
			`eigen`,
			`characteristic\s+(?:equation|polynomial)`,
		),
		Extract: extractOperands,
		Solve:   solveEigenvalues,
		Verify:  verifyEigenvalues,
		Steps:   stepsEigenvalues,
	})
	r.Register(registry.Entry{
		ID:          TypeRank,
		Name:        "Matrix Rank",
		Category:    "matrix_properties",
		Description: "Rank and nullity from the singular values",
		Patterns: registry.Patterns(
			`\brank\b`,
			`nullity`,
		),
		Extract: extractOperands,
		Solve:   solveRank,
		Verify:  verifyRank,
		Steps:   stepsRank,
	})
	r.Register(registry.Entry{
		ID:          TypeLU,
		Name:        "LU Decomposition",
		Category:    "decompositions",
		Description: "A = PLU with partial pivoting",
		Patterns: registry.Patterns(
			`\blu\b.*(?:decomp|factor)`,
			`factor.*\blu\b`,
		),
		Extract: extractOperands,
		Solve:   solveLU,
		Verify:  verifyLU,
		Steps:   stepsLU,
	})
	r.Register(registry.Entry{
		ID:          TypeQR,
		Name:        "QR Decomposition",
		Category:    "decompositions",
		Description: "A = QR with Q orthogonal and R upper triangular",
		Patterns: registry.Patterns(
			`\bqr\b.*(?:decomp|factor)`,
			`factor.*\bqr\b`,
		),
		Extract: extractOperands,
		Solve:   solveQR,
		Verify:  verifyQR,
		Steps:   stepsQR,
	})
	r.Register(registry.Entry{
		ID:          TypeRREF,
		Name:        "Reduced Row Echelon Form",
		Category:    "row_reduction",
		Description: "Gauss-Jordan elimination to the unique reduced form",
		Patterns: registry.Patterns(
			`\brref\b`,
			`reduced\s+row\s+echelon`,
			`gauss\w*[-\s]+jordan`,
		),
		Extract: extractOperands,
		Solve:   solveRREF,
		Verify:  verifyEchelon,
		Steps:   stepsEchelon,
	})
	r.Register(registry.Entry{
		ID:          TypeREF,
		Name:        "Row Echelon Form",
		Category:    "row_reduction",
		Description: "Gaussian elimination with leading 1s",
		Patterns: registry.Patterns(
			`row\s+echelon`,
			`echelon\s+form`,
			`\bref\b`,
			`gaussian\s+elimination`,
		),
		Extract: extractOperands,
		Solve:   solveREF,
		Verify:  verifyEchelon,
		Steps:   stepsEchelon,
	})

	return r.WithFallback(fallback).Freeze()
}

// fallback: a coefficient matrix with a right-hand side is a linear
// system.
func fallback(_ string, params problem.Params) (problem.TypeID, bool) {
	if params.Has("A") && params.Has("b") {
		return TypeSystem, true
	}
	return "", false
}
