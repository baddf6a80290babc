package radical

import (
	"fmt"

	"github.com/njchilds90/goworkbook/internal/numeric"
	"github.com/njchilds90/goworkbook/internal/problem"
)

// Simplified is ⁿ√radicand rewritten as Outside·ⁿ√Inside.
type Simplified struct {
	Radicand int64                 `json:"radicand"`
	Index    int64                 `json:"index"`
	Factors  numeric.Factorization `json:"factors"`
	Outside  int64                 `json:"outside"`
	Inside   int64                 `json:"inside"`
}

// Radical returns the simplified form scaled by coefficient.
func (s Simplified) Radical(coefficient int64) problem.Radical {
	return problem.Radical{Coefficient: coefficient * s.Outside, Radicand: s.Inside, Index: s.Index}
}

// Changed reports whether any factor was extracted.
func (s Simplified) Changed() bool { return s.Outside != 1 && s.Outside != -1 }

// MaxOperand bounds integer operands and radicands so that factoring by
// trial division stays under a million divisions.
const MaxOperand int64 = 1_000_000_000_000

// Simplify extracts every perfect index-th power from radicand.
//
// An even root of a negative radicand has no real value and yields a
// NoRealSolution error. For odd roots the sign moves outside. A zero
// radicand simplifies to 0·ⁿ√1. Radicands beyond ±MaxOperand are rejected.
func Simplify(radicand, index int64) (Simplified, *problem.Error) {
	if index < 2 {
		return Simplified{}, problem.NewError(problem.KindInvalidParameters, "simplify",
			"root index must be at least 2", "index", index)
	}
	if radicand > MaxOperand || radicand < -MaxOperand {
		return Simplified{}, problem.NewError(problem.KindInvalidParameters, "simplify",
			fmt.Sprintf("radicand %d is outside ±10¹²", radicand), "radicand", radicand)
	}
	if radicand < 0 && index%2 == 0 {
		return Simplified{}, problem.NewError(problem.KindNoRealSolution, "simplify",
			fmt.Sprintf("%s%d is not a real number: an even root of a negative number is undefined over the reals",
				problem.RootSymbol(index), radicand),
			"radicand", radicand, "index", index)
	}

	s := Simplified{Radicand: radicand, Index: index, Factors: numeric.PrimeFactorization(radicand)}
	if radicand == 0 {
		s.Outside, s.Inside = 0, 1
		return s, nil
	}
	s.Outside, s.Inside = numeric.ExtractPerfectPowers(s.Factors, index)
	if radicand < 0 {
		s.Outside = -s.Outside
	}
	if !numeric.IsFullySimplified(s.Inside, index) {
		panic(fmt.Sprintf("radical: %d still holds a perfect %d-th power after extraction", s.Inside, index))
	}
	return s, nil
}

// perfectPowers lists the extracted factors as "p^e" strings for the
// identification step, e.g. "2^2" and "3^2" for √72.
func perfectPowers(s Simplified) []string {
	var out []string
	for _, pp := range s.Factors {
		if k := pp.Exp / s.Index; k > 0 {
			out = append(out, fmt.Sprintf("%d^%d", pp.Prime, k*s.Index))
		}
	}
	return out
}

// reduce divides num and den by their GCD and moves the sign to num.
func reduce(num, den int64) (int64, int64) {
	if g := numeric.GCD(num, den); g > 1 {
		num, den = num/g, den/g
	}
	if den < 0 {
		num, den = -num, -den
	}
	return num, den
}

func mul(op string, a, b int64) (int64, *problem.Error) {
	c, ok := numeric.CheckedMul(a, b)
	if !ok {
		return 0, overflow(op, a, b)
	}
	return c, nil
}

func overflow(op string, a, b int64) *problem.Error {
	return problem.NewError(problem.KindInvalidParameters, op,
		"operands are too large to combine exactly", "left", a, "right", b)
}
