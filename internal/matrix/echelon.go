package matrix

import (
	"fmt"
	"math"

	"github.com/njchilds90/goworkbook/internal/numeric"
)

// RowOpKind names an elementary row operation.
type RowOpKind string

const (
	OpSwap  RowOpKind = "swap"
	OpScale RowOpKind = "scale"
	OpAdd   RowOpKind = "add"
)

// RowOp is one logged elementary row operation. For OpAdd, Target gets
// Factor·Source added; for OpScale, Target is multiplied by Factor.
type RowOp struct {
	Kind   RowOpKind   `json:"kind"`
	Target int         `json:"target"`
	Source int         `json:"source,omitempty"`
	Factor numeric.Rat `json:"-"`
	Text   string      `json:"text"`
	After  *Matrix     `json:"after"`
}

// Pivot is a pivot position, zero based.
type Pivot struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Elimination is the outcome of Gaussian (or Gauss-Jordan) elimination.
type Elimination struct {
	Input   *Matrix `json:"input"`
	Result  *Matrix `json:"result"`
	Ops     []RowOp `json:"operations"`
	Pivots  []Pivot `json:"pivots"`
	Reduced bool    `json:"reduced"`
	// Swaps counts row interchanges; det(A) = (-1)^Swaps · Π pivot scales.
	Swaps int         `json:"swaps"`
	Scale numeric.Rat `json:"-"`
}

// Rank is the number of pivots.
func (e Elimination) Rank() int { return len(e.Pivots) }

// PivotColumns lists pivot columns, one based.
func (e Elimination) PivotColumns() []int {
	cols := make([]int, len(e.Pivots))
	for i, p := range e.Pivots {
		cols[i] = p.Col + 1
	}
	return cols
}

// Reduce brings m to row echelon form with leading 1s, or to reduced row
// echelon form when reduced is set. The first nonzero entry at or below
// the current row is taken as pivot; arithmetic is exact so no magnitude
// pivoting is needed.
func Reduce(m *Matrix, reduced bool) Elimination {
	work := m.Clone()
	e := Elimination{Input: m, Reduced: reduced, Scale: numeric.R(1)}
	record := func(op RowOp) {
		op.After = work.Clone()
		e.Ops = append(e.Ops, op)
	}

	row := 0
	for col := 0; col < work.cols && row < work.rows; col++ {
		pr := -1
		for i := row; i < work.rows; i++ {
			if !work.data[i][col].IsZero() {
				pr = i
				break
			}
		}
		if pr < 0 {
			continue
		}
		if pr != row {
			work.data[row], work.data[pr] = work.data[pr], work.data[row]
			e.Swaps++
			record(RowOp{Kind: OpSwap, Target: row, Source: pr,
				Text: fmt.Sprintf("R%d ↔ R%d", row+1, pr+1)})
		}
		if lead := work.data[row][col]; !lead.IsOne() {
			f := numeric.R(1).Div(lead)
			e.Scale = e.Scale.Mul(lead)
			for j := range work.data[row] {
				work.data[row][j] = work.data[row][j].Mul(f)
			}
			record(RowOp{Kind: OpScale, Target: row, Factor: f,
				Text: fmt.Sprintf("R%d → %sR%d", row+1, coefficient(f), row+1)})
		}
		start := row + 1
		if reduced {
			start = 0
		}
		for i := start; i < work.rows; i++ {
			if i == row || work.data[i][col].IsZero() {
				continue
			}
			f := work.data[i][col].Neg()
			for j := range work.data[i] {
				work.data[i][j] = work.data[i][j].Add(f.Mul(work.data[row][j]))
			}
			record(RowOp{Kind: OpAdd, Target: i, Source: row, Factor: f,
				Text: addText(i, row, f)})
		}
		e.Pivots = append(e.Pivots, Pivot{Row: row, Col: col})
		row++
	}
	e.Result = work
	return e
}

// eliminationDet reads the determinant off the echelon reduction.
func eliminationDet(m *Matrix) numeric.Rat {
	e := Reduce(m, false)
	if e.Rank() < m.rows {
		return numeric.R(0)
	}
	d := e.Scale
	if e.Swaps%2 == 1 {
		d = d.Neg()
	}
	return d
}

func coefficient(f numeric.Rat) string {
	switch {
	case f.IsOne():
		return ""
	case f.Neg().IsOne():
		return "-"
	case f.IsInt():
		return f.String()
	}
	return "(" + f.String() + ")"
}

func addText(target, source int, f numeric.Rat) string {
	sign := "+"
	if f.Sign() < 0 {
		sign, f = "-", f.Neg()
	}
	return fmt.Sprintf("R%d → R%d %s %sR%d", target+1, target+1, sign, coefficient(f), source+1)
}

// IsEchelon checks the row echelon shape with leading 1s: zero rows at
// the bottom, each leading entry strictly right of the one above, zeros
// below each leading entry and, when reduced, above it too.
func IsEchelon(m [][]float64, reduced bool, tol float64) bool {
	lastLead := -1
	zeroSeen := false
	for i, row := range m {
		lead := -1
		for j, x := range row {
			if math.Abs(x) > tol {
				lead = j
				break
			}
		}
		if lead < 0 {
			zeroSeen = true
			continue
		}
		if zeroSeen || lead <= lastLead || !numeric.ApproxEqual(row[lead], 1, tol) {
			return false
		}
		for k := range m {
			if k == i {
				continue
			}
			if (k > i || reduced) && math.Abs(m[k][lead]) > tol {
				return false
			}
		}
		lastLead = lead
	}
	return true
}
