package numeric

import (
	"fmt"
	"math/big"
)

// Rat is an immutable exact rational number.
type Rat struct{ val *big.Rat }

func R(n int64) Rat { return Rat{val: new(big.Rat).SetInt64(n)} }

func Frac(p, q int64) Rat {
	if q == 0 {
		panic("numeric: denominator is zero")
	}
	return Rat{val: new(big.Rat).SetFrac(big.NewInt(p), big.NewInt(q))}
}

// RatFromFloat converts x exactly when it is a short decimal (as matrix
// entries and coefficients typed by a user are), otherwise via its binary
// value.
func RatFromFloat(x float64) Rat {
	r, ok := new(big.Rat).SetString(Format(x))
	if !ok {
		r = new(big.Rat).SetFloat64(x)
	}
	return Rat{val: r}
}

func (r Rat) v() *big.Rat {
	if r.val == nil {
		return new(big.Rat)
	}
	return r.val
}

func (r Rat) Add(o Rat) Rat { return Rat{val: new(big.Rat).Add(r.v(), o.v())} }
func (r Rat) Sub(o Rat) Rat { return Rat{val: new(big.Rat).Sub(r.v(), o.v())} }
func (r Rat) Mul(o Rat) Rat { return Rat{val: new(big.Rat).Mul(r.v(), o.v())} }
func (r Rat) Neg() Rat      { return Rat{val: new(big.Rat).Neg(r.v())} }
func (r Rat) Div(o Rat) Rat {
	if o.IsZero() {
		panic("numeric: division by zero")
	}
	return Rat{val: new(big.Rat).Quo(r.v(), o.v())}
}

func (r Rat) IsZero() bool     { return r.v().Sign() == 0 }
func (r Rat) IsOne() bool      { return r.v().Cmp(big.NewRat(1, 1)) == 0 }
func (r Rat) IsInt() bool      { return r.v().IsInt() }
func (r Rat) Sign() int        { return r.v().Sign() }
func (r Rat) Cmp(o Rat) int    { return r.v().Cmp(o.v()) }
func (r Rat) Float64() float64 { f, _ := r.v().Float64(); return f }

// Int64 returns the value when it is an integer that fits in int64.
func (r Rat) Int64() (int64, bool) {
	if !r.IsInt() || !r.v().Num().IsInt64() {
		return 0, false
	}
	return r.v().Num().Int64(), true
}

func (r Rat) String() string {
	if r.v().IsInt() {
		return r.v().Num().String()
	}
	return r.v().RatString()
}

// LaTeX renders integers plainly and fractions as \frac{p}{q}.
func (r Rat) LaTeX() string {
	if r.v().IsInt() {
		return r.v().Num().String()
	}
	sign := ""
	v := new(big.Rat).Set(r.v())
	if v.Sign() < 0 {
		sign = "-"
		v.Neg(v)
	}
	return fmt.Sprintf("%s\\frac{%s}{%s}", sign, v.Num().String(), v.Denom().String())
}
