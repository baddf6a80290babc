package lessons

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/goworkbook/internal/problem"
)

func TestLoad_EveryDomain(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	for _, d := range problem.Domains {
		dom := c.Domain(d)
		assert.Equal(t, string(d), dom.Name)
		assert.NotEmpty(t, dom.Default.Conceptual, "%s default topic", d)
		assert.Len(t, dom.Default.Hints, 4, "%s default hint ladder", d)
		assert.NotEmpty(t, dom.Topics, "%s topics", d)
		assert.NotEmpty(t, dom.Types, "%s type lessons", d)
	}
}

func TestLoad_ReturnsSharedCatalog(t *testing.T) {
	a, err := Load()
	require.NoError(t, err)
	b := MustLoad()
	assert.Same(t, a, b)
}

func TestDomain_TopicFallsBackToDefault(t *testing.T) {
	dom := MustLoad().Domain(problem.DomainRadical)

	assert.True(t, dom.HasTopic("Find prime factorization"))
	assert.Contains(t, dom.Topic("Find prime factorization").Algebraic, "Fundamental Theorem of Arithmetic")

	assert.False(t, dom.HasTopic("Something else"))
	assert.Equal(t, dom.Default, dom.Topic("Something else"))
}

func TestDomain_MistakesIncludeWildcard(t *testing.T) {
	dom := MustLoad().Domain(problem.DomainRadical)

	got := dom.MistakesFor("simplify_radical", "Extract perfect powers")
	assert.Contains(t, got, "Sign errors when extracting")
	assert.Contains(t, got, "Leaving perfect powers under the radical")

	assert.Empty(t, dom.MistakesFor("pythagorean", "Given radical"))
}

func TestDomain_TypeAndGlossary(t *testing.T) {
	c := MustLoad()
	assert.Equal(t, "Factoring Quadratics", c.Domain(problem.DomainQuadratic).Type("factoring").Title)
	assert.Equal(t, "Matrix Inverses", c.Domain(problem.DomainMatrix).Type("matrix_inverse").Title)

	dom := c.Domain(problem.DomainRadical)
	assert.Equal(t, "number under the radical", dom.Term("radicand", "basic"))
	assert.Equal(t, "radicand", dom.Term("radicand", "intermediate"))

	empty := c.Domain("calculus")
	assert.Equal(t, "calculus", empty.Name)
	assert.Empty(t, empty.TopicNames())
}
