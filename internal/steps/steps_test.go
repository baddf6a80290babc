package steps

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/goworkbook/internal/config"
	"github.com/njchilds90/goworkbook/internal/lessons"
	"github.com/njchilds90/goworkbook/internal/problem"
)

func sampleInput(cfg config.Config) Input {
	p := problem.New(problem.DomainRadical, "simplify_radical", "√72", "√72", "", problem.Params{"radicand": 72.0})
	sol := problem.Solution{
		Category: "simplify_radical",
		Answers:  []problem.Answer{problem.RadicalAnswer("", problem.Radical{Coefficient: 6, Radicand: 2, Index: 2})},
		Summary:  "6√2",
	}
	v := problem.Verify("power product", 1e-9, problem.Compare("6²·2", 72, 72, 1e-9))
	return Input{
		Problem:  p,
		Solution: sol,
		Base: []problem.Step{
			{Name: "Given radical", Description: "Start with the radicand", Expression: "√72"},
			{Name: "Find prime factorization", Description: "Factor the radicand into primes", After: "2^3 × 3^2"},
			{Name: "Extract perfect powers", Description: "Extract each complete pair", Before: "2^3 × 3^2", After: "6√2", Rule: "√(a²b) = a√b"},
		},
		Verification: &v,
		Config:       cfg,
	}
}

func TestChain_AppliesLeftToRight(t *testing.T) {
	appendName := func(name string) Pass {
		return func(in []problem.Step) []problem.Step {
			return append(problem.CloneSteps(in), problem.Step{Name: name})
		}
	}
	out := Chain(appendName("a"), appendName("b"), appendName("c"))(nil)
	names := make([]string, len(out))
	for i, s := range out {
		names[i] = s.Name
	}
	assert.Equal(t, []string{"a", "b", "c"}, names)
	assert.Empty(t, Chain()(nil))
}

func TestBase_NumbersWithoutMutatingInput(t *testing.T) {
	in := sampleInput(config.Default())
	before := problem.CloneSteps(in.Base)

	out := Base(in.Base)(nil)
	require.Len(t, out, 3)
	for i, s := range out {
		assert.Equal(t, i+1, s.Number)
		assert.Equal(t, problem.KindStep, s.Kind)
	}
	assert.Empty(t, cmp.Diff(before, in.Base))
}

func TestSynthesize_DefaultConfig(t *testing.T) {
	out := Synthesize(sampleInput(config.Default()))

	// 3 steps, 2 bridges, 1 verification entry.
	require.Len(t, out, 6)
	kinds := make([]problem.StepKind, len(out))
	for i, s := range out {
		kinds[i] = s.Kind
	}
	assert.Equal(t, []problem.StepKind{
		problem.KindStep, problem.KindBridge, problem.KindStep,
		problem.KindBridge, problem.KindStep, problem.KindVerification,
	}, kinds)

	for _, s := range out {
		switch s.Kind {
		case problem.KindBridge:
			assert.Zero(t, s.Number)
			require.NotNil(t, s.Bridge)
			assert.Nil(t, s.Prevention, "bridges carry no error-prevention record")
		case problem.KindStep:
			require.NotNil(t, s.Explanations, s.Name)
			require.NotNil(t, s.Prevention, s.Name)
			require.NotNil(t, s.Validation, s.Name)
			assert.Nil(t, s.Scaffolding, "scaffolding only at the scaffolded level")
		}
	}

	extract := out[4]
	assert.Equal(t, 3, extract.Number)
	assert.Equal(t, "√(a²b) = a√b", extract.Explanations.Algebraic)
	assert.Contains(t, extract.Prevention.CommonMistakes, "Sign errors when extracting")
	assert.Contains(t, extract.Learning.Connection, "step 2")

	bridge := out[3]
	assert.Equal(t, "2^3 × 3^2 becomes the input 2^3 × 3^2", bridge.Bridge.KeyRelationships[0])
	assert.Equal(t, "Extract each complete pair", bridge.Bridge.NextGoal)

	verify := out[5]
	assert.Equal(t, 4, verify.Number)
	assert.Contains(t, verify.FinalAnswer, "Verified")
}

func TestSynthesize_BasicSkipsEnhancement(t *testing.T) {
	cfg := config.Default()
	cfg.ExplanationLevel = config.LevelBasic
	cfg.IncludeBridges = false
	cfg.IncludeErrorPrevention = false
	cfg.IncludeVerification = false

	out := Synthesize(sampleInput(cfg))
	require.Len(t, out, 3)
	for _, s := range out {
		assert.Nil(t, s.Explanations)
		assert.Nil(t, s.Prevention)
		assert.NotEqual(t, problem.KindBridge, s.Kind)
	}
}

func TestSynthesize_Scaffolded(t *testing.T) {
	cfg := config.Default()
	cfg.ExplanationLevel = config.LevelScaffolded

	out := Synthesize(sampleInput(cfg))
	for _, s := range out {
		if s.Kind != problem.KindStep {
			continue
		}
		require.NotNil(t, s.Scaffolding, s.Name)
		require.Len(t, s.Scaffolding.Hints, 4)
		for i, h := range s.Scaffolding.Hints {
			assert.Equal(t, i+1, h.Level)
			assert.NotEmpty(t, h.Text)
		}
		assert.Equal(t, "Try simplifying √72 or √50 with the same method.", s.Scaffolding.PracticeVariation)
		require.NotNil(t, s.Metacognition)
		assert.NotEmpty(t, s.Metacognition.Alternatives)
	}
	assert.Equal(t, "Try: √(a²b) = a√b", out[4].Scaffolding.Hints[3].Text)
}

func TestSynthesize_Deterministic(t *testing.T) {
	cfg := config.Default()
	cfg.ExplanationLevel = config.LevelScaffolded
	in := sampleInput(cfg)

	first := Synthesize(in)
	second := Synthesize(in)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("synthesis is not deterministic (-first +second):\n%s", diff)
	}
}

func TestPasses_DoNotMutateInput(t *testing.T) {
	dom := lessons.MustLoad().Domain(problem.DomainRadical)
	in := Base(sampleInput(config.Default()).Base)(nil)
	snapshot := problem.CloneSteps(in)

	for name, pass := range map[string]Pass{
		"enhance":    Enhance(dom, "simplify_radical", config.LevelDetailed),
		"bridges":    Bridges(),
		"prevention": ErrorPrevention(dom, "simplify_radical"),
		"scaffold":   Scaffold(dom, "simplify_radical"),
	} {
		out := pass(in)
		require.NotEmpty(t, out, name)
		if diff := cmp.Diff(snapshot, in); diff != "" {
			t.Errorf("%s mutated its input (-want +got):\n%s", name, diff)
		}
	}
}

func TestPrevention_DoesNotAliasCatalog(t *testing.T) {
	dom := lessons.MustLoad().Domain(problem.DomainRadical)
	in := Base(sampleInput(config.Default()).Base)(nil)

	out := ErrorPrevention(dom, "simplify_radical")(in)
	original := dom.Topic("Find prime factorization").Tips[0]
	out[1].Prevention.Tips[0] = "overwritten"
	assert.Equal(t, original, dom.Topic("Find prime factorization").Tips[0])
}

func TestAdapt_Levels(t *testing.T) {
	dom := lessons.MustLoad().Domain(problem.DomainRadical)
	text := "Extract the perfect square from the radicand."

	assert.Equal(t, "take out the number with a whole square root from the number under the radical.",
		adapt(dom, text, config.LevelBasic))
	assert.Equal(t, text, adapt(dom, text, config.LevelIntermediate))
	assert.Contains(t, adapt(dom, text, config.LevelDetailed), "radicand (the expression under the radical symbol)")
}

func TestGenericAndFailure(t *testing.T) {
	p := problem.New(problem.DomainMatrix, "matrix_inverse", "inverse of [[1,2],[2,4]]", "", "", nil)
	sol := problem.Failure("matrix_inverse", problem.NewError(problem.KindSingularMatrix, "inverse", "determinant is zero"))

	fs := Failure(p, sol)
	require.Len(t, fs, 2)
	assert.Contains(t, fs[1].FinalAnswer, "determinant is zero")
	assert.Contains(t, fs[1].Reasoning, "no inverse")

	ok := problem.Solution{Answers: []problem.Answer{problem.RealAnswer("det", -2)}, Summary: "det = -2"}
	gs := Generic(p, ok)
	require.Len(t, gs, 3)
	assert.Equal(t, "det = -2", gs[2].FinalAnswer)
	assert.Equal(t, "Apply the matrix inverse method", gs[1].Description)
}
