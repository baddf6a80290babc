package numeric

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrimeFactorization(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{n: 0, want: "1"},
		{n: 1, want: "1"},
		{n: 2, want: "2"},
		{n: 72, want: "2^3 × 3^2"},
		{n: -50, want: "2 × 5^2"},
		{n: 97, want: "97"},
		{n: 1024, want: "2^10"},
	}
	for _, tt := range tests {
		got := PrimeFactorization(tt.n)
		assert.Equal(t, tt.want, got.String(), "n=%d", tt.n)
	}
}

func TestPrimeFactorization_LargeInputs(t *testing.T) {
	assert.Equal(t, "999999999989", PrimeFactorization(999999999989).String())
	assert.Equal(t, "2^62", PrimeFactorization(1<<62).String())
	assert.Equal(t, "2^12 × 5^12", PrimeFactorization(1_000_000_000_000).String())
	assert.Equal(t, "1", PrimeFactorization(math.MinInt64).String())
}

func TestFactorization_Expanded(t *testing.T) {
	assert.Equal(t, "2 × 2 × 2 × 3", PrimeFactorization(24).Expanded())
}

func TestExtractPerfectPowers(t *testing.T) {
	tests := []struct {
		n, index      int64
		outside, rest int64
	}{
		{72, 2, 6, 2},
		{8, 2, 2, 2},
		{54, 3, 3, 2},
		{162, 4, 3, 2},
		{17, 2, 1, 17},
		{1, 2, 1, 1},
	}
	for _, tt := range tests {
		out, in := ExtractPerfectPowers(PrimeFactorization(tt.n), tt.index)
		assert.Equal(t, tt.outside, out, "outside of %d (index %d)", tt.n, tt.index)
		assert.Equal(t, tt.rest, in, "inside of %d (index %d)", tt.n, tt.index)
		assert.Equal(t, tt.n, IntPow(out, tt.index)*in)
		assert.True(t, IsFullySimplified(in, tt.index))
	}
}

func TestIsFullySimplified(t *testing.T) {
	assert.True(t, IsFullySimplified(30, 2))
	assert.False(t, IsFullySimplified(12, 2))
	assert.True(t, IsFullySimplified(12, 3))
	assert.False(t, IsFullySimplified(16, 4))
}

func TestGCD(t *testing.T) {
	assert.Equal(t, int64(6), GCD(12, 18))
	assert.Equal(t, int64(6), GCD(-12, 18))
	assert.Equal(t, int64(5), GCD(0, 5))
	assert.Equal(t, int64(0), GCD(0, 0))
}

func TestPerfectSquareAndISqrt(t *testing.T) {
	assert.True(t, IsPerfectSquare(0))
	assert.True(t, IsPerfectSquare(49))
	assert.False(t, IsPerfectSquare(50))
	assert.False(t, IsPerfectSquare(-4))
	assert.Equal(t, int64(7), ISqrt(50))
	assert.Equal(t, int64(1000000), ISqrt(1000000000000))
	assert.Equal(t, int64(3037000499), ISqrt(math.MaxInt64))
}

func TestCheckedArithmetic(t *testing.T) {
	got, ok := CheckedMul(-6, 7)
	assert.True(t, ok)
	assert.Equal(t, int64(-42), got)

	_, ok = CheckedMul(math.MaxInt64/2+1, 2)
	assert.False(t, ok)

	got, ok = CheckedPow(2, 62)
	assert.True(t, ok)
	assert.Equal(t, int64(1)<<62, got)

	_, ok = CheckedPow(2, 63)
	assert.False(t, ok)

	got, ok = CheckedPow(-1, 1_000_000_001)
	assert.True(t, ok)
	assert.Equal(t, int64(-1), got)
}

func TestDivisors(t *testing.T) {
	assert.Equal(t, []int64{1, 2, 3, 4, 6, 12}, Divisors(-12))
	assert.Equal(t, []int64{1, 3, 9}, Divisors(9))
	assert.Nil(t, Divisors(0))
}

func TestQuadraticRoots(t *testing.T) {
	minus, plus := QuadraticRoots(1, -5, 6, 1)
	assert.InDelta(t, 2, minus, 1e-12)
	assert.InDelta(t, 3, plus, 1e-12)

	minus, plus = QuadraticRoots(-1, 0, 2, math.Sqrt(8))
	assert.InDelta(t, math.Sqrt2, minus, 1e-12)
	assert.InDelta(t, -math.Sqrt2, plus, 1e-12)

	minus, plus = QuadraticRoots(1, 0, 0, 0)
	assert.Zero(t, minus)
	assert.Zero(t, plus)

	// 1e-10x² + x + 1: the small root is about -1 - 1e-10.
	a, b, c := 1e-10, 1.0, 1.0
	minus, plus = QuadraticRoots(a, b, c, math.Sqrt(b*b-4*a*c))
	assert.InDelta(t, -1e10, minus, 2)
	assert.InDelta(t, -1.0000000001, plus, 1e-15)
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "0.3", Format(0.1+0.2))
	assert.Equal(t, "-2", Format(-2))
	assert.Equal(t, "0", Format(-0.0))
	assert.Equal(t, "1.5", Format(1.5))
	assert.Equal(t, "∞", Format(posInf()))
	assert.Equal(t, "0.000000", FormatFixed(-0.0000001, 6))
	assert.Equal(t, "- 3", Signed(-3))
	assert.Equal(t, "+ 2.5", Signed(2.5))
}

func TestApproxEqual(t *testing.T) {
	assert.True(t, ApproxEqual(1, 1+1e-12, 1e-10))
	assert.False(t, ApproxEqual(1, 1.001, 1e-10))
	assert.True(t, ApproxEqual(1e12, 1e12+1, 1e-10))
	assert.True(t, IsInteger(2.99999999999))
	assert.False(t, IsInteger(2.5))
}

func TestRat(t *testing.T) {
	a := Frac(1, 3)
	b := Frac(5, 6)
	assert.Equal(t, "7/6", a.Add(b).String())
	assert.Equal(t, "-1/2", a.Sub(b).String())
	assert.Equal(t, "5/18", a.Mul(b).String())
	assert.Equal(t, "2/5", a.Div(b).String())
	assert.Equal(t, `-\frac{1}{3}`, a.Neg().LaTeX())
	assert.Equal(t, "4", R(4).LaTeX())
	assert.True(t, R(0).IsZero())
	assert.True(t, Frac(3, 3).IsOne())

	n, ok := Frac(12, 4).Int64()
	assert.True(t, ok)
	assert.Equal(t, int64(3), n)
	_, ok = a.Int64()
	assert.False(t, ok)

	assert.Equal(t, "1/10", RatFromFloat(0.1).String())
	assert.Panics(t, func() { a.Div(R(0)) })
}

func posInf() float64 {
	var zero float64
	return 1 / zero
}
