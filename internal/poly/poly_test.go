package poly

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Poly
	}{
		{"x^2 - 5x + 6", Poly{2: 1, 1: -5, 0: 6}},
		{"2x² - 3x - 2", Poly{2: 2, 1: -3, 0: -2}},
		{"-x**2 + 4", Poly{2: -1, 0: 4}},
		{"3/2x + 0.5", Poly{1: 1.5, 0: 0.5}},
		{"x^4 - 5x^2 + 4", Poly{4: 1, 2: -5, 0: 4}},
		{"2*x^2 + x", Poly{2: 2, 1: 1}},
		{"x - x", Poly{}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in, "x")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_Rejects(t *testing.T) {
	for _, in := range []string{"", "(x-2)^2", "x^2 + y", "2x^", "3/0x"} {
		_, err := Parse(in, "x")
		assert.Error(t, err, in)
	}
}

func TestParseStatement(t *testing.T) {
	p, rel, err := ParseStatement("x² + 2x = 3", "x")
	require.NoError(t, err)
	assert.Equal(t, Equal, rel)
	assert.Equal(t, Poly{2: 1, 1: 2, 0: -3}, p)

	p, rel, err = ParseStatement("x^2 - 4 ≥ 0", "x")
	require.NoError(t, err)
	assert.Equal(t, GreaterEq, rel)
	assert.Equal(t, Poly{2: 1, 0: -4}, p)

	_, rel, err = ParseStatement("x^2 - 1", "x")
	require.NoError(t, err)
	assert.Equal(t, Equal, rel)

	_, _, err = ParseStatement("0 < x < 1", "x")
	assert.Error(t, err)
}

func TestFormatAndEval(t *testing.T) {
	p := Of(2, -5, 3)
	assert.Equal(t, "2x² - 5x + 3", p.String())
	assert.Equal(t, "-t² + 1", Of(-1, 0, 1).Format("t"))
	assert.Equal(t, "x^5", Poly{5: 1}.String())
	assert.Equal(t, "0", Poly{}.String())

	assert.Equal(t, 2, p.Degree())
	assert.InDelta(t, 0, p.Eval(1), 1e-12)
	assert.InDelta(t, 0, p.Eval(1.5), 1e-12)

	z := p.EvalComplex(complex(1, 0))
	assert.InDelta(t, 0, real(z), 1e-12)
}

func TestMul(t *testing.T) {
	assert.Equal(t, Poly{2: 1, 1: 7, 0: 12}, Of(1, 3).Mul(Of(1, 4)))
	assert.Equal(t, Poly{2: 4, 1: -4, 0: 1}, Of(2, -1).Mul(Of(2, -1)))
	assert.Equal(t, Poly{}, Of(1, 1).Mul(Poly{}))
}

func TestRelation(t *testing.T) {
	assert.Equal(t, Less, Greater.Flip())
	assert.Equal(t, GreaterEq, LessEq.Flip())
	assert.True(t, Less.Strict())
	assert.False(t, LessEq.Strict())
	assert.True(t, LessEq.Holds(0))
	assert.False(t, Less.Holds(0))
	assert.Equal(t, "≥", GreaterEq.Symbol())

	r, err := ParseRelation("≤")
	require.NoError(t, err)
	assert.Equal(t, LessEq, r)
	_, err = ParseRelation("!=")
	assert.Error(t, err)
}

func TestComplexRoundTrip(t *testing.T) {
	s := ComplexRootString(complex(-1, -2))
	assert.Equal(t, "-1 - 2i", s)
	z, err := ParseComplex(s)
	require.NoError(t, err)
	assert.Equal(t, complex(-1, -2), z)
}
