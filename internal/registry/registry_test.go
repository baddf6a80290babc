package registry

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/goworkbook/internal/problem"
)

func echo(p problem.Problem) problem.Solution {
	return problem.Solution{Category: p.Type, Summary: string(p.Type)}
}

func testRegistry() *Registry {
	num := func(groups []string, clean string) problem.Params {
		if groups == nil {
			return problem.Params{"from": "scenario"}
		}
		n, _ := strconv.ParseFloat(groups[1], 64)
		return problem.Params{"n": n, "from": "input"}
	}
	return New(problem.DomainRadical, func(s string) string {
		return strings.ReplaceAll(strings.TrimSpace(s), "sqrt", "√")
	}).
		Register(Entry{ID: "compound", Patterns: Patterns(`√(\d+)\s*\+`), Extract: num, Solve: echo}).
		Register(Entry{ID: "keyword", Patterns: Patterns(`^cube\s+(\d+)$`, `\bcubed?\b`), Extract: num, Solve: echo}).
		Register(Entry{ID: "simple", Patterns: Patterns(`^√(\d+)$`), Extract: num, Solve: echo}).
		WithFallback(func(clean string, _ problem.Params) (problem.TypeID, bool) {
			return "simple", strings.Contains(clean, "√")
		}).
		Freeze()
}

func TestClassify_FirstMatchInRegistrationOrder(t *testing.T) {
	r := testRegistry()

	p, err := r.Classify("sqrt8 + sqrt2", "", "", nil)
	require.NoError(t, err)
	assert.Equal(t, problem.TypeID("compound"), p.Type)
	assert.Equal(t, 8.0, p.Params.Float("n", 0))
	assert.Equal(t, "√8 + √2", p.CleanInput)
	assert.Equal(t, "sqrt8 + sqrt2", p.OriginalInput)

	p, err = r.Classify("√50", "", "", nil)
	require.NoError(t, err)
	assert.Equal(t, problem.TypeID("simple"), p.Type)
}

func TestClassify_ScenarioMatchGetsNilGroups(t *testing.T) {
	p, err := testRegistry().Classify("27", "a number cubed", "", nil)
	require.NoError(t, err)
	assert.Equal(t, problem.TypeID("keyword"), p.Type)
	assert.Equal(t, "scenario", p.Params.String("from", ""))
}

func TestClassify_ExplicitTypeShortCircuits(t *testing.T) {
	p, err := testRegistry().Classify("√8 + √2", "", "keyword", problem.Params{"n": 3.0})
	require.NoError(t, err)
	assert.Equal(t, problem.TypeID("keyword"), p.Type)
	assert.Equal(t, problem.Params{"n": 3.0}, p.Params)

	p, err = testRegistry().Classify("√8 + √2", "", "unknown", nil)
	require.NoError(t, err)
	assert.Equal(t, problem.TypeID("compound"), p.Type, "unregistered explicit type falls through")
}

func TestClassify_CallerParamsOverride(t *testing.T) {
	p, err := testRegistry().Classify("√50", "", "", problem.Params{"n": 2.0})
	require.NoError(t, err)
	assert.Equal(t, 2.0, p.Params.Float("n", 0))
	assert.Equal(t, "input", p.Params.String("from", ""))
}

func TestClassify_FallbackAndUnrecognized(t *testing.T) {
	r := testRegistry()

	p, err := r.Classify("2√x", "", "", nil)
	require.NoError(t, err)
	assert.Equal(t, problem.TypeID("simple"), p.Type)

	_, err = r.Classify("hello", "", "", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, problem.ErrUnrecognizedProblem))
	var perr *problem.Error
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "hello", perr.Operands["input"])
}

func TestRegistry_Frozen(t *testing.T) {
	r := testRegistry()
	assert.Panics(t, func() { r.Register(Entry{ID: "late", Solve: echo}) })
	assert.Equal(t, []problem.TypeID{"compound", "keyword", "simple"}, r.IDs())

	fresh := New(problem.DomainMatrix, nil).Register(Entry{ID: "a", Solve: echo})
	assert.Panics(t, func() { fresh.Register(Entry{ID: "a", Solve: echo}) })
	assert.Panics(t, func() { fresh.Register(Entry{ID: "b"}) })
}

func TestRegistry_Dispatch(t *testing.T) {
	r := testRegistry()
	p, err := r.Classify("√50", "", "", nil)
	require.NoError(t, err)

	sol := r.Solve(p)
	assert.Equal(t, "simple", sol.Summary)

	v := r.Verify(p, sol)
	assert.False(t, v.Valid, "types without a verifier never report valid")

	_, ok := r.BaseSteps(p, sol)
	assert.False(t, ok)

	bad := r.Solve(problem.Problem{Type: "nope"})
	assert.True(t, errors.Is(bad.Error, problem.ErrUnrecognizedProblem))

	failed := problem.Failure("simple", problem.NewError(problem.KindInvalidParameters, "solve", "bad"))
	assert.Equal(t, "precondition", r.Verify(p, failed).Method)
}
