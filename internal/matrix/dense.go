package matrix

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// ============================================================
// gonum collaborator: floating-point decompositions
// ============================================================

func dense(a [][]float64) *mat.Dense {
	r, c := len(a), len(a[0])
	data := make([]float64, 0, r*c)
	for _, row := range a {
		data = append(data, row...)
	}
	return mat.NewDense(r, c, data)
}

func grid(m mat.Matrix) [][]float64 {
	r, c := m.Dims()
	out := make([][]float64, r)
	for i := range out {
		out[i] = make([]float64, c)
		for j := range out[i] {
			out[i][j] = m.At(i, j)
		}
	}
	return out
}

// product is a·b.
func product(a, b [][]float64) [][]float64 {
	var c mat.Dense
	c.Mul(dense(a), dense(b))
	return grid(&c)
}

func transposed(a [][]float64) [][]float64 {
	return grid(dense(a).T())
}

func floatDet(a [][]float64) float64 { return mat.Det(dense(a)) }

// maxAbs is the largest entry magnitude, at least 1; tolerances on
// reconstructed matrices are scaled by it.
func maxAbs(a [][]float64) float64 {
	m := 1.0
	for _, row := range a {
		for _, x := range row {
			m = math.Max(m, math.Abs(x))
		}
	}
	return m
}

// solveLinear solves a·x = b for a square nonsingular a. An
// ill-conditioning warning from gonum is reported as the condition number
// rather than a failure.
func solveLinear(a [][]float64, b []float64) ([]float64, float64, error) {
	var x mat.VecDense
	err := x.SolveVec(dense(a), mat.NewVecDense(len(b), append([]float64(nil), b...)))
	cond := mat.Cond(dense(a), 2)
	var c mat.Condition
	if err != nil && !errors.As(err, &c) {
		return nil, cond, fmt.Errorf("matrix: solve: %w", err)
	}
	out := make([]float64, x.Len())
	for i := range out {
		out[i] = x.AtVec(i)
	}
	return out, cond, nil
}

// Eigenpair is an eigenvalue with its unit eigenvector.
type Eigenpair struct {
	Value  complex128   `json:"-"`
	Vector []complex128 `json:"-"`
}

// IsReal reports a real eigenvalue.
func (e Eigenpair) IsReal() bool { return imag(e.Value) == 0 }

// eigenTolerance snaps eigenvalue imaginary parts below it to zero.
const eigenTolerance = 1e-10

// eigenpairs decomposes a square matrix, using the symmetric solver when
// a = aᵀ so that real spectra come out real. Pairs are sorted by real
// then imaginary part.
func eigenpairs(a [][]float64) ([]Eigenpair, bool, error) {
	n := len(a)
	symmetric := isSymmetric(a)
	pairs := make([]Eigenpair, n)
	if symmetric {
		var es mat.EigenSym
		sym := mat.NewSymDense(n, dense(a).RawMatrix().Data)
		if !es.Factorize(sym, true) {
			return nil, true, errors.New("matrix: symmetric eigendecomposition did not converge")
		}
		values := es.Values(nil)
		var vecs mat.Dense
		es.VectorsTo(&vecs)
		for k := range pairs {
			pairs[k].Value = complex(values[k], 0)
			pairs[k].Vector = make([]complex128, n)
			for i := 0; i < n; i++ {
				pairs[k].Vector[i] = complex(vecs.At(i, k), 0)
			}
		}
	} else {
		var eig mat.Eigen
		if !eig.Factorize(dense(a), mat.EigenRight) {
			return nil, false, errors.New("matrix: eigendecomposition did not converge")
		}
		values := eig.Values(nil)
		var vecs mat.CDense
		eig.VectorsTo(&vecs)
		for k := range pairs {
			pairs[k].Value = values[k]
			pairs[k].Vector = make([]complex128, n)
			for i := 0; i < n; i++ {
				pairs[k].Vector[i] = vecs.At(i, k)
			}
		}
	}
	for k := range pairs {
		normalize(&pairs[k])
	}
	sort.SliceStable(pairs, func(i, j int) bool {
		ri, rj := real(pairs[i].Value), real(pairs[j].Value)
		if ri != rj {
			return ri < rj
		}
		return imag(pairs[i].Value) < imag(pairs[j].Value)
	})
	return pairs, symmetric, nil
}

func isSymmetric(a [][]float64) bool {
	for i := range a {
		for j := i + 1; j < len(a); j++ {
			if a[i][j] != a[j][i] {
				return false
			}
		}
	}
	return true
}

// normalize snaps a numerically real eigenvalue to the real axis, scales
// the vector to unit length and rotates it so that its largest component
// is real and positive.
func normalize(p *Eigenpair) {
	if math.Abs(imag(p.Value)) <= eigenTolerance*math.Max(1, cmplx.Abs(p.Value)) {
		p.Value = complex(real(p.Value), 0)
	}
	var norm float64
	big := 0
	for i, z := range p.Vector {
		norm += real(z)*real(z) + imag(z)*imag(z)
		if cmplx.Abs(z) > cmplx.Abs(p.Vector[big]) {
			big = i
		}
	}
	norm = math.Sqrt(norm)
	if norm == 0 {
		return
	}
	phase := p.Vector[big] / complex(cmplx.Abs(p.Vector[big]), 0)
	for i, z := range p.Vector {
		z = z / phase / complex(norm, 0)
		if p.IsReal() {
			z = complex(real(z), 0)
		}
		p.Vector[i] = z
	}
}

// singularValues returns the singular values in descending order.
func singularValues(a [][]float64) ([]float64, error) {
	var svd mat.SVD
	if !svd.Factorize(dense(a), mat.SVDNone) {
		return nil, errors.New("matrix: SVD did not converge")
	}
	return svd.Values(nil), nil
}

// numericalRank counts singular values above max(m,n)·σ₁·ε, with an
// absolute floor of 1e-10.
func numericalRank(s []float64, rows, cols int) int {
	if len(s) == 0 {
		return 0
	}
	tol := math.Max(1e-10, float64(max(rows, cols))*s[0]*2.220446049250313e-16)
	rank := 0
	for _, x := range s {
		if x > tol {
			rank++
		}
	}
	return rank
}

// luFactor computes P·A = L·U style factors with partial pivoting, returned
// as A = P·L·U.
func luFactor(a [][]float64) (p, l, u [][]float64) {
	n := len(a)
	var lu mat.LU
	lu.Factorize(dense(a))
	var lt, ut mat.TriDense
	lu.LTo(&lt)
	lu.UTo(&ut)
	l, u = grid(&lt), grid(&ut)

	// RowPivots maps rows in one direction; take the orientation that
	// reproduces A.
	perm := lu.RowPivots(nil)
	forward, backward := zeros(n, n), zeros(n, n)
	for i, pi := range perm {
		forward[pi][i] = 1
		backward[i][pi] = 1
	}
	lu2 := product(l, u)
	p = forward
	if maxDiff(product(backward, lu2), a) < maxDiff(product(forward, lu2), a) {
		p = backward
	}
	return p, l, u
}

// qrFactor computes A = Q·R with Q orthogonal (m×m) and R upper
// triangular (m×n). Signs are fixed so that R has a nonnegative diagonal.
func qrFactor(a [][]float64) (q, r [][]float64) {
	var qr mat.QR
	qr.Factorize(dense(a))
	var qd, rd mat.Dense
	qr.QTo(&qd)
	qr.RTo(&rd)
	q, r = grid(&qd), grid(&rd)
	for j := 0; j < min(len(r), len(r[0])); j++ {
		if r[j][j] >= 0 {
			continue
		}
		for k := range r[j] {
			r[j][k] = -r[j][k]
		}
		for i := range q {
			q[i][j] = -q[i][j]
		}
	}
	return q, r
}

func zeros(r, c int) [][]float64 {
	out := make([][]float64, r)
	for i := range out {
		out[i] = make([]float64, c)
	}
	return out
}

// maxDiff is the largest element-wise difference; mismatched shapes give +Inf.
func maxDiff(a, b [][]float64) float64 {
	if len(a) != len(b) {
		return math.Inf(1)
	}
	d := 0.0
	for i := range a {
		if len(a[i]) != len(b[i]) {
			return math.Inf(1)
		}
		for j := range a[i] {
			d = math.Max(d, math.Abs(a[i][j]-b[i][j]))
		}
	}
	return d
}
