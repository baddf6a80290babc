package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	workbook "github.com/njchilds90/goworkbook"
)

func newTestServer(t *testing.T) (*httptest.Server, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.InfoLevel)
	wb, err := workbook.New()
	require.NoError(t, err)
	srv := httptest.NewServer(newHandler(wb, zap.New(core)))
	t.Cleanup(srv.Close)
	return srv, logs
}

func postTool(t *testing.T, srv *httptest.Server, body string) (*http.Response, map[string]interface{}) {
	t.Helper()
	resp, err := http.Post(srv.URL+"/tool", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp, out
}

func TestTool_Solve(t *testing.T) {
	srv, logs := newTestServer(t)
	resp, out := postTool(t, srv, `{"tool":"solve","params":{"domain":"radical","input":"3√8 + 2√2"}}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.Nil(t, out["error"])
	assert.Contains(t, out["string"], "8√2")

	result := out["result"].(map[string]interface{})
	assert.NotEmpty(t, result["id"])
	assert.NotEmpty(t, result["steps"])
	assert.Equal(t, true, result["verification"].(map[string]interface{})["is_valid"])

	calls := logs.FilterMessage("tool call").All()
	require.Len(t, calls, 1)
	assert.Equal(t, "solve", calls[0].ContextMap()["tool"])
	assert.Equal(t, true, calls[0].ContextMap()["ok"])
}

func TestTool_MatrixParameters(t *testing.T) {
	srv, _ := newTestServer(t)
	_, out := postTool(t, srv, `{"tool":"solve","params":{
		"domain":"matrix","type":"matrix_inverse",
		"parameters":{"A":[[4,7],[2,6]]}}}`)
	require.Nil(t, out["error"])
	assert.Equal(t, "A⁻¹ = [[3/5, -7/10], [-1/5, 2/5]]", out["string"])
}

func TestTool_Errors(t *testing.T) {
	srv, _ := newTestServer(t)
	tests := []struct {
		name   string
		body   string
		status int
		want   string
	}{
		{"bad json", `{"tool":`, http.StatusBadRequest, "unexpected EOF"},
		{"unknown field", `{"tool":"solve","extra":1}`, http.StatusBadRequest, "unknown field"},
		{"trailing data", `{"tool":"list_types"} {}`, http.StatusBadRequest, "trailing data"},
		{"unknown tool", `{"tool":"integrate","params":{}}`, http.StatusOK, "unknown tool"},
		{"unrecognized", `{"tool":"solve","params":{"domain":"matrix","input":"hello"}}`, http.StatusOK, "UnrecognizedProblem"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, out := postTool(t, srv, tt.body)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Contains(t, out["error"], tt.want)
		})
	}
}

func TestTool_MethodNotAllowed(t *testing.T) {
	srv, _ := newTestServer(t)
	resp, err := http.Get(srv.URL + "/tool")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestSchemaAndHealth(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/schema")
	require.NoError(t, err)
	var schema struct {
		Tools []map[string]interface{} `json:"tools"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&schema))
	resp.Body.Close()
	assert.Len(t, schema.Tools, 5)

	resp, err = http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	var health map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	assert.Equal(t, "ok", health["status"])
	assert.Equal(t, []interface{}{"radical", "quadratic", "matrix"}, health["domains"])
}
