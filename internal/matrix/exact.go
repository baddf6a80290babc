package matrix

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/njchilds90/goworkbook/internal/numeric"
	"github.com/njchilds90/goworkbook/internal/poly"
)

// ============================================================
// Matrix: exact rational matrix
// ============================================================

// Matrix is a dense matrix of exact rationals. Entries typed as short
// decimals are converted exactly, so 0.1 + 0.2 is 3/10.
type Matrix struct {
	rows, cols int
	data       [][]numeric.Rat
}

// New returns a zero matrix.
func New(rows, cols int) *Matrix {
	if rows <= 0 || cols <= 0 {
		panic(fmt.Sprintf("matrix: invalid dimensions %d×%d", rows, cols))
	}
	data := make([][]numeric.Rat, rows)
	for i := range data {
		data[i] = make([]numeric.Rat, cols)
		for j := range data[i] {
			data[i][j] = numeric.R(0)
		}
	}
	return &Matrix{rows: rows, cols: cols, data: data}
}

// FromFloats converts a rectangular grid.
func FromFloats(grid [][]float64) *Matrix {
	m := New(len(grid), len(grid[0]))
	for i, row := range grid {
		if len(row) != m.cols {
			panic("matrix: ragged rows")
		}
		for j, x := range row {
			m.data[i][j] = numeric.RatFromFloat(x)
		}
	}
	return m
}

// Identity returns Iₙ.
func Identity(n int) *Matrix {
	m := New(n, n)
	for i := 0; i < n; i++ {
		m.data[i][i] = numeric.R(1)
	}
	return m
}

func (m *Matrix) checkBounds(row, col int) {
	if row < 0 || row >= m.rows || col < 0 || col >= m.cols {
		panic(fmt.Sprintf("matrix: index out of range [%d,%d] for %s", row, col, m.Dims()))
	}
}

func (m *Matrix) At(row, col int) numeric.Rat {
	m.checkBounds(row, col)
	return m.data[row][col]
}

func (m *Matrix) Set(row, col int, v numeric.Rat) {
	m.checkBounds(row, col)
	m.data[row][col] = v
}

func (m *Matrix) Rows() int      { return m.rows }
func (m *Matrix) Cols() int      { return m.cols }
func (m *Matrix) IsSquare() bool { return m.rows == m.cols }

// Dims renders "m×n".
func (m *Matrix) Dims() string { return fmt.Sprintf("%d×%d", m.rows, m.cols) }

// Clone returns a deep copy; Rat values are immutable, so copying the
// grid is enough.
func (m *Matrix) Clone() *Matrix {
	out := New(m.rows, m.cols)
	for i := range m.data {
		copy(out.data[i], m.data[i])
	}
	return out
}

// Floats converts to float64.
func (m *Matrix) Floats() [][]float64 {
	out := make([][]float64, m.rows)
	for i, row := range m.data {
		out[i] = make([]float64, m.cols)
		for j, v := range row {
			out[i][j] = v.Float64()
		}
	}
	return out
}

func (m *Matrix) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i := 0; i < m.rows; i++ {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(m.rowString(i))
	}
	sb.WriteString("]")
	return sb.String()
}

func (m *Matrix) rowString(i int) string {
	parts := make([]string, m.cols)
	for j := range parts {
		parts[j] = m.data[i][j].String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (m *Matrix) LaTeX() string {
	var sb strings.Builder
	sb.WriteString("\\begin{pmatrix}")
	for i := 0; i < m.rows; i++ {
		if i > 0 {
			sb.WriteString(" \\\\ ")
		}
		for j := 0; j < m.cols; j++ {
			if j > 0 {
				sb.WriteString(" & ")
			}
			sb.WriteString(m.data[i][j].LaTeX())
		}
	}
	sb.WriteString("\\end{pmatrix}")
	return sb.String()
}

// MarshalJSON writes entries as exact strings such as "1/3".
func (m *Matrix) MarshalJSON() ([]byte, error) {
	grid := make([][]string, m.rows)
	for i, row := range m.data {
		grid[i] = make([]string, m.cols)
		for j, v := range row {
			grid[i][j] = v.String()
		}
	}
	return json.Marshal(grid)
}

// Equal reports exact equality.
func (m *Matrix) Equal(o *Matrix) bool {
	if m.rows != o.rows || m.cols != o.cols {
		return false
	}
	for i := range m.data {
		for j := range m.data[i] {
			if m.data[i][j].Cmp(o.data[i][j]) != 0 {
				return false
			}
		}
	}
	return true
}

// ============================================================
// Arithmetic
// ============================================================

func (m *Matrix) Add(other *Matrix) *Matrix {
	if m.rows != other.rows || m.cols != other.cols {
		panic("matrix: dimension mismatch in Add")
	}
	result := New(m.rows, m.cols)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			result.data[i][j] = m.data[i][j].Add(other.data[i][j])
		}
	}
	return result
}

func (m *Matrix) Sub(other *Matrix) *Matrix {
	if m.rows != other.rows || m.cols != other.cols {
		panic("matrix: dimension mismatch in Sub")
	}
	result := New(m.rows, m.cols)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			result.data[i][j] = m.data[i][j].Sub(other.data[i][j])
		}
	}
	return result
}

func (m *Matrix) Mul(other *Matrix) *Matrix {
	if m.cols != other.rows {
		panic("matrix: dimension mismatch in Mul")
	}
	result := New(m.rows, other.cols)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < other.cols; j++ {
			sum := numeric.R(0)
			for k := 0; k < m.cols; k++ {
				sum = sum.Add(m.data[i][k].Mul(other.data[k][j]))
			}
			result.data[i][j] = sum
		}
	}
	return result
}

func (m *Matrix) Scale(k numeric.Rat) *Matrix {
	result := New(m.rows, m.cols)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			result.data[i][j] = k.Mul(m.data[i][j])
		}
	}
	return result
}

func (m *Matrix) Transpose() *Matrix {
	result := New(m.cols, m.rows)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			result.data[j][i] = m.data[i][j]
		}
	}
	return result
}

func (m *Matrix) Trace() numeric.Rat {
	if !m.IsSquare() {
		panic("matrix: Trace requires a square matrix")
	}
	sum := numeric.R(0)
	for i := 0; i < m.rows; i++ {
		sum = sum.Add(m.data[i][i])
	}
	return sum
}

// ============================================================
// Determinant and inverse
// ============================================================

// cofactorLimit is the largest size expanded by cofactors; larger
// determinants are taken from the echelon form.
const cofactorLimit = 5

// Det is the exact determinant.
func (m *Matrix) Det() numeric.Rat {
	if !m.IsSquare() {
		panic("matrix: Det requires a square matrix")
	}
	if m.rows > cofactorLimit {
		return eliminationDet(m)
	}
	return det(m.data, m.rows)
}

func det(data [][]numeric.Rat, n int) numeric.Rat {
	if n == 1 {
		return data[0][0]
	}
	if n == 2 {
		return data[0][0].Mul(data[1][1]).Sub(data[0][1].Mul(data[1][0]))
	}
	sum := numeric.R(0)
	for j := 0; j < n; j++ {
		if data[0][j].IsZero() {
			continue
		}
		term := data[0][j].Mul(det(minor(data, n, 0, j), n-1))
		if j%2 == 1 {
			term = term.Neg()
		}
		sum = sum.Add(term)
	}
	return sum
}

func minor(data [][]numeric.Rat, n, skipRow, skipCol int) [][]numeric.Rat {
	out := make([][]numeric.Rat, n-1)
	mi := 0
	for i := 0; i < n; i++ {
		if i == skipRow {
			continue
		}
		out[mi] = make([]numeric.Rat, 0, n-1)
		for j := 0; j < n; j++ {
			if j != skipCol {
				out[mi] = append(out[mi], data[i][j])
			}
		}
		mi++
	}
	return out
}

// Cofactor is (-1)^(i+j)·det(Mᵢⱼ).
func (m *Matrix) Cofactor(i, j int) numeric.Rat {
	if !m.IsSquare() || m.rows < 2 {
		panic("matrix: Cofactor requires a square matrix of size 2 or more")
	}
	c := det(minor(m.data, m.rows, i, j), m.rows-1)
	if (i+j)%2 == 1 {
		return c.Neg()
	}
	return c
}

// Adjugate is the transposed cofactor matrix.
func (m *Matrix) Adjugate() *Matrix {
	n := m.rows
	if n == 1 {
		return Identity(1)
	}
	cof := New(n, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			cof.data[i][j] = m.Cofactor(i, j)
		}
	}
	return cof.Transpose()
}

// Inverse returns A⁻¹, or false when A is singular. Small matrices use
// the adjugate, larger ones Gauss-Jordan elimination on [A | I].
func (m *Matrix) Inverse() (*Matrix, bool) {
	if !m.IsSquare() {
		panic("matrix: Inverse requires a square matrix")
	}
	d := m.Det()
	if d.IsZero() {
		return nil, false
	}
	if m.rows <= cofactorLimit {
		return m.Adjugate().Scale(numeric.R(1).Div(d)), true
	}
	aug := New(m.rows, 2*m.rows)
	for i := 0; i < m.rows; i++ {
		copy(aug.data[i], m.data[i])
		aug.data[i][m.rows+i] = numeric.R(1)
	}
	red := Reduce(aug, true)
	inv := New(m.rows, m.rows)
	for i := 0; i < m.rows; i++ {
		copy(inv.data[i], red.Result.data[i][m.rows:])
	}
	return inv, true
}

// CharPoly returns det(λI - A) by the Faddeev-LeVerrier recurrence.
func (m *Matrix) CharPoly() poly.Poly {
	if !m.IsSquare() {
		panic("matrix: CharPoly requires a square matrix")
	}
	n := m.rows
	coeffs := make([]numeric.Rat, n+1)
	coeffs[n] = numeric.R(1)
	mk := New(n, n)
	for k := 1; k <= n; k++ {
		mk = m.Mul(mk).Add(Identity(n).Scale(coeffs[n-k+1]))
		coeffs[n-k] = m.Mul(mk).Trace().Neg().Div(numeric.R(int64(k)))
	}
	p := poly.Poly{}
	for d, c := range coeffs {
		if !c.IsZero() {
			p[d] = c.Float64()
		}
	}
	return p
}
