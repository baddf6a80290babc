package problem

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParams_Getters(t *testing.T) {
	var decoded Params
	require.NoError(t, json.Unmarshal([]byte(`{"a":2,"b":"-3.5","A":[[1,2],[3,4]],"v":[5,6],"name":"x"}`), &decoded))

	assert.Equal(t, 2.0, decoded.Float("a", 0))
	assert.Equal(t, -3.5, decoded.Float("b", 0))
	assert.Equal(t, 7.0, decoded.Float("missing", 7))
	assert.Equal(t, int64(2), decoded.Int("a", 0))
	assert.Equal(t, "x", decoded.String("name", ""))

	m, ok := decoded.Matrix("A")
	require.True(t, ok)
	assert.Equal(t, [][]float64{{1, 2}, {3, 4}}, m)

	v, ok := decoded.Vector("v")
	require.True(t, ok)
	assert.Equal(t, []float64{5, 6}, v)

	_, ok = Params{"A": []any{[]any{1.0, 2.0}, []any{3.0}}}.Matrix("A")
	assert.False(t, ok, "ragged rows are rejected")
}

func TestParams_IntegerIsExact(t *testing.T) {
	p := Params{
		"big":      int64(9007199254740993),
		"max":      int64(math.MaxInt64),
		"text":     "9223372036854775783",
		"number":   json.Number("9007199254740993"),
		"float":    float64(1 << 52),
		"huge":     float64(1 << 60),
		"fraction": 2.5,
	}
	assert.Equal(t, int64(9007199254740993), p.Int("big", 0))
	assert.Equal(t, int64(math.MaxInt64), p.Int("max", 0))
	assert.Equal(t, int64(9223372036854775783), p.Int("text", 0))
	assert.Equal(t, int64(9007199254740993), p.Int("number", 0))
	assert.Equal(t, int64(1<<52), p.Int("float", 0))

	for _, key := range []string{"huge", "fraction", "missing"} {
		_, ok := p.Integer(key)
		assert.False(t, ok, key)
		assert.Equal(t, int64(-1), p.Int(key, -1), key)
	}
}

func TestParams_MergeDoesNotAlias(t *testing.T) {
	base := Params{"a": 1.0, "b": 2.0}
	merged := base.Merge(Params{"b": 5.0})

	assert.Equal(t, 5.0, merged.Float("b", 0))
	assert.Equal(t, 2.0, base.Float("b", 0))

	p := New(DomainQuadratic, "standard_form", "x²", "x²", "", base)
	base["a"] = 9.0
	assert.Equal(t, 1.0, p.Params.Float("a", 0))
}

func TestParseDomain(t *testing.T) {
	d, err := ParseDomain(" Matrix ")
	require.NoError(t, err)
	assert.Equal(t, DomainMatrix, d)

	_, err = ParseDomain("calculus")
	assert.Error(t, err)
}

func TestRadical_String(t *testing.T) {
	tests := []struct {
		r    Radical
		want string
	}{
		{Radical{Coefficient: 6, Radicand: 2, Index: 2}, "6√2"},
		{Radical{Coefficient: 1, Radicand: 5, Index: 2}, "√5"},
		{Radical{Coefficient: -1, Radicand: 5, Index: 2}, "-√5"},
		{Radical{Coefficient: 4, Radicand: 1, Index: 2}, "4"},
		{Radical{Coefficient: 3, Radicand: 2, Index: 3}, "3∛2"},
		{Radical{Coefficient: 2, Radicand: 3, Index: 5}, "2·⁵√3"},
		{Radical{Coefficient: 2, Radicand: 3, Index: 2, Denominator: 3}, "(2√3)/3"},
		{Radical{Coefficient: 2, Radicand: 1, Index: 2, Denominator: 3}, "2/3"},
		{Radical{Coefficient: 0, Radicand: 7, Index: 2}, "0"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.r.String())
	}
	assert.InDelta(t, 8.48528137423857, Radical{Coefficient: 6, Radicand: 2, Index: 2}.Float(), 1e-12)
	assert.InDelta(t, 1.1547005383792515, Radical{Coefficient: 2, Radicand: 3, Index: 2, Denominator: 3}.Float(), 1e-12)
}

func TestSolution_Helpers(t *testing.T) {
	sol := Solution{Answers: []Answer{
		RealAnswer("x1", -4),
		TextAnswer("x2", "1 + 2i"),
		RealAnswer("x3", -3),
	}}
	assert.Equal(t, []float64{-4, -3}, sol.Reals())
	a, ok := sol.Answer("x2")
	require.True(t, ok)
	assert.Equal(t, "1 + 2i", a.String())
	assert.False(t, sol.Failed())

	terminal := Solution{Error: NewError(KindNoRealSolution, "solve", "Δ < 0")}
	assert.False(t, terminal.Failed())
	failed := Failure("inverse", NewError(KindSingularMatrix, "inverse", "det = 0"))
	assert.True(t, failed.Failed())
	assert.Equal(t, "SingularMatrix", failed.Kind)

	assert.Equal(t, "[[1, 0.5], [0, -2]]", MatrixAnswer("A", [][]float64{{1, 0.5}, {0, -2}}).String())
}

func TestError(t *testing.T) {
	err := NewError(KindDimensionMismatch, "multiply", "columns of A must equal rows of B", "a_cols", 3, "b_rows", 2)
	assert.Equal(t, "DimensionMismatch in multiply: columns of A must equal rows of B (a_cols=3, b_rows=2)", err.Error())
	assert.True(t, errors.Is(err, ErrDimensionMismatch))
	assert.False(t, errors.Is(err, ErrSingularMatrix))
	assert.False(t, err.Terminal())
	assert.True(t, NewError(KindNotFactorable, "", "").Terminal())

	var target *Error
	wrapped := errors.Join(errors.New("context"), err)
	require.True(t, errors.As(wrapped, &target))
	assert.Equal(t, KindDimensionMismatch, target.Kind)
}

func TestVerify_Confidence(t *testing.T) {
	v := Verify("substitution", 1e-8, Residual("f(x1)", 0, 1e-8), Compare("sum", 3, 3, 1e-8))
	assert.True(t, v.Valid)
	assert.Equal(t, ConfidenceHigh, v.Confidence)

	v = Verify("substitution", 1e-8, Residual("f(x1)", 5e-9, 1e-8))
	assert.True(t, v.Valid)
	assert.Equal(t, ConfidenceMedium, v.Confidence)

	v = Verify("substitution", 1e-8, Residual("f(x1)", 1e-3, 1e-8))
	assert.False(t, v.Valid)
	assert.Equal(t, ConfidenceLow, v.Confidence)

	v = Verify("empty", 1e-8)
	assert.False(t, v.Valid)

	na := NotApplicable(NewError(KindSingularMatrix, "inverse", "det = 0"))
	assert.False(t, na.Valid)
	assert.Equal(t, "precondition", na.Method)
}

func TestStep_CloneIsDeep(t *testing.T) {
	orig := Step{
		Number:     1,
		Name:       "factor",
		Prevention: &Prevention{Tips: []string{"check signs"}},
		Scaffolding: &Scaffolding{
			Hints: []Hint{{Level: 1, Text: "look for pairs"}},
		},
	}
	c := CloneSteps([]Step{orig})
	c[0].Prevention.Tips[0] = "changed"
	c[0].Scaffolding.Hints[0].Text = "changed"

	assert.Equal(t, "check signs", orig.Prevention.Tips[0])
	assert.Equal(t, "look for pairs", orig.Scaffolding.Hints[0].Text)
	assert.False(t, orig.IsBridge())
}
