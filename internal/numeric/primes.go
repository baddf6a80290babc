// Package numeric holds the stateless integer and floating-point primitives
// the solvers build on: prime factorization, perfect-power extraction, GCD,
// tolerance comparison and exact rationals.
package numeric

import (
	"fmt"
	"math"
	"strings"
)

// PrimePower is one prime and its multiplicity in a factorization.
type PrimePower struct {
	Prime int64 `json:"prime"`
	Exp   int64 `json:"exp"`
}

// Factorization lists prime powers in ascending prime order.
type Factorization []PrimePower

// PrimeFactorization factors |n| by trial division, so callers bound n.
// 0 and ±1 have an empty factorization.
func PrimeFactorization(n int64) Factorization {
	if n < 0 {
		n = -n
	}
	if n < 2 {
		return Factorization{}
	}
	var out Factorization
	for p := int64(2); p <= n/p; p++ {
		var e int64
		for n%p == 0 {
			n /= p
			e++
		}
		if e > 0 {
			out = append(out, PrimePower{Prime: p, Exp: e})
		}
	}
	if n > 1 {
		out = append(out, PrimePower{Prime: n, Exp: 1})
	}
	return out
}

func (f Factorization) String() string {
	if len(f) == 0 {
		return "1"
	}
	parts := make([]string, len(f))
	for i, pp := range f {
		if pp.Exp == 1 {
			parts[i] = fmt.Sprintf("%d", pp.Prime)
		} else {
			parts[i] = fmt.Sprintf("%d^%d", pp.Prime, pp.Exp)
		}
	}
	return strings.Join(parts, " × ")
}

// Expanded writes every prime out individually, e.g. "2 × 2 × 2 × 3".
func (f Factorization) Expanded() string {
	if len(f) == 0 {
		return "1"
	}
	var parts []string
	for _, pp := range f {
		for i := int64(0); i < pp.Exp; i++ {
			parts = append(parts, fmt.Sprintf("%d", pp.Prime))
		}
	}
	return strings.Join(parts, " × ")
}

// ExtractPerfectPowers splits a factorization for the given root index:
// floor(e/index) copies of each prime move outside, e mod index stay inside.
func ExtractPerfectPowers(f Factorization, index int64) (outside, inside int64) {
	outside, inside = 1, 1
	for _, pp := range f {
		outside *= IntPow(pp.Prime, pp.Exp/index)
		inside *= IntPow(pp.Prime, pp.Exp%index)
	}
	return outside, inside
}

// IsFullySimplified reports whether no prime in radicand appears index or
// more times.
func IsFullySimplified(radicand, index int64) bool {
	for _, pp := range PrimeFactorization(radicand) {
		if pp.Exp >= index {
			return false
		}
	}
	return true
}

// GCD returns the non-negative greatest common divisor; GCD(0, 0) is 0.
func GCD(a, b int64) int64 {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// IntPow computes base^exp for exp >= 0.
func IntPow(base, exp int64) int64 {
	result := int64(1)
	for exp > 0 {
		if exp&1 == 1 {
			result *= base
		}
		base *= base
		exp >>= 1
	}
	return result
}

// CheckedMul returns a*b and false if the product overflows int64.
func CheckedMul(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	c := a * b
	if c/b != a || (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, false
	}
	return c, true
}

// CheckedPow is IntPow with overflow detection.
func CheckedPow(base, exp int64) (int64, bool) {
	switch {
	case exp == 0 || base == 1:
		return 1, true
	case base == 0:
		return 0, true
	case base == -1:
		return IntPow(-1, exp%2), true
	}
	result := int64(1)
	for i := int64(0); i < exp; i++ {
		var ok bool
		if result, ok = CheckedMul(result, base); !ok {
			return 0, false
		}
	}
	return result, true
}

// IsPerfectSquare reports whether n is the square of an integer.
func IsPerfectSquare(n int64) bool {
	if n < 0 {
		return false
	}
	r := ISqrt(n)
	return r*r == n
}

// ISqrt is the integer square root (floor) of n >= 0.
func ISqrt(n int64) int64 {
	if n < 2 {
		return n
	}
	x := n
	y := x/2 + x%2
	for y < x {
		x = y
		y = (x + n/x) / 2
	}
	return x
}

// Divisors returns the positive divisors of |n| in ascending order.
func Divisors(n int64) []int64 {
	if n < 0 {
		n = -n
	}
	if n == 0 {
		return nil
	}
	var small, large []int64
	for d := int64(1); d <= n/d; d++ {
		if n%d == 0 {
			small = append(small, d)
			if d != n/d {
				large = append(large, n/d)
			}
		}
	}
	for i := len(large) - 1; i >= 0; i-- {
		small = append(small, large[i])
	}
	return small
}
