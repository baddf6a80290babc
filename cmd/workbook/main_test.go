package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	workbook "github.com/njchilds90/goworkbook"
	"github.com/njchilds90/goworkbook/internal/config"
	"github.com/njchilds90/goworkbook/internal/problem"
)

func init() { color.NoColor = true }

func testWorkbook(t *testing.T) *workbook.Workbook {
	t.Helper()
	w, err := workbook.New()
	require.NoError(t, err)
	return w
}

func TestParseParams(t *testing.T) {
	params, err := parseParams([]string{"a=2", "b=-3/4", "A=[[1,2],[3,4]]", "b2=[3, 5]", "units=meters"})
	require.NoError(t, err)

	assert.Equal(t, 2, params["a"])
	assert.InDelta(t, -0.75, params.Float("b", 0), 1e-12)
	m, ok := params.Matrix("A")
	require.True(t, ok)
	assert.Equal(t, [][]float64{{1, 2}, {3, 4}}, m)
	v, ok := params.Vector("b2")
	require.True(t, ok)
	assert.Equal(t, []float64{3, 5}, v)
	assert.Equal(t, "meters", params.String("units", ""))

	_, err = parseParams([]string{"novalue"})
	assert.ErrorContains(t, err, "want key=value")
	_, err = parseParams([]string{"A=[[1,2"})
	assert.ErrorContains(t, err, "parameter A")
}

func TestPrintBundle(t *testing.T) {
	w := testWorkbook(t)
	b, err := w.Solve(workbook.Request{Domain: problem.DomainRadical, Input: "√72"})
	require.NoError(t, err)

	var out bytes.Buffer
	printBundle(&out, b)
	text := out.String()
	assert.Contains(t, text, "=== radical / simplify_radical ===")
	assert.Contains(t, text, "Input: √72")
	assert.Contains(t, text, "6√2")
	assert.Contains(t, text, "  1. Given radical:")
	assert.Contains(t, text, "✓ verification passed")
}

func TestPrintBundle_Failure(t *testing.T) {
	w := testWorkbook(t)
	b, err := w.Solve(workbook.Request{Domain: problem.DomainQuadratic, Type: "standard_form", Params: problem.Params{"a": 0, "b": 2, "c": 1}})
	require.NoError(t, err)

	var out bytes.Buffer
	printBundle(&out, b)
	assert.Contains(t, out.String(), "✗ Error: DegenerateEquation")
	assert.NotContains(t, out.String(), "verification passed")
}

func TestPrintTypes(t *testing.T) {
	w := testWorkbook(t)
	types, err := w.Types(problem.DomainQuadratic)
	require.NoError(t, err)

	var out bytes.Buffer
	printTypes(&out, problem.DomainQuadratic, types)
	lines := bytes.Split(bytes.TrimSpace(out.Bytes()), []byte("\n"))
	require.Len(t, lines, 12)
	assert.Equal(t, "quadratic", string(lines[0]))
	assert.Contains(t, string(lines[1]), "completing_square")
}

func TestBatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "problems.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
problems:
  - domain: quadratic
    input: x^2 - 5x + 6 = 0
  - domain: matrix
    type: determinant
    parameters: {A: [[1, 2], [3, 4]]}
    level: scaffolded
  - domain: matrix
    input: tell me a joke
  - domain: radical
    input: √50 - √18
    level: loud
`), 0o644))

	entries, err := readBatch(path)
	require.NoError(t, err)
	require.Len(t, entries, 4)
	assert.Equal(t, problem.TypeID("determinant"), entries[1].Type)
	assert.Equal(t, "scaffolded", entries[1].Level)

	results, err := runBatch(context.Background(), testWorkbook(t), entries, 2)
	require.NoError(t, err)
	require.Len(t, results, 4)
	for i, r := range results {
		assert.Equal(t, i, r.Index)
	}

	require.NotNil(t, results[0].Bundle)
	assert.True(t, results[0].Bundle.Verification.Valid)

	require.NotNil(t, results[1].Bundle)
	assert.Equal(t, config.LevelScaffolded, results[1].Bundle.Config.ExplanationLevel)
	det, ok := results[1].Bundle.Solution.Answer("det(A)")
	require.True(t, ok)
	assert.Equal(t, "-2", det.String())

	assert.Contains(t, results[2].Error, "UnrecognizedProblem")
	assert.Contains(t, results[3].Error, "explanation_level")

	var out bytes.Buffer
	printBatch(&out, results)
	assert.Contains(t, out.String(), "Summary: 4 problems, 2 solved, 2 verified")
}

func TestBatch_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	entries := []batchEntry{{Request: workbook.Request{Domain: problem.DomainRadical, Input: "√8"}}}
	_, err := runBatch(ctx, testWorkbook(t), entries, 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReadBatch_Errors(t *testing.T) {
	dir := t.TempDir()
	_, err := readBatch(filepath.Join(dir, "missing.yaml"))
	assert.ErrorContains(t, err, "read batch")

	empty := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(empty, []byte("problems: []\n"), 0o644))
	_, err = readBatch(empty)
	assert.ErrorContains(t, err, "no problems listed")
}
