package workbook

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/njchilds90/goworkbook/internal/config"
	"github.com/njchilds90/goworkbook/internal/problem"
)

// ============================================================
// Tool interface
// ============================================================

// ToolRequest is one JSON tool call.
type ToolRequest struct {
	Tool   string                 `json:"tool"`
	Params map[string]interface{} `json:"params"`
}

// ToolResponse carries either a result or an error string.
type ToolResponse struct {
	Result interface{} `json:"result,omitempty"`
	String string      `json:"string,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// HandleToolCall dispatches a tool call:
//
//	solve       full bundle for {domain, input, scenario?, type?, parameters?}
//	classify    the classified problem only
//	explain     the steps only, under the configuration in params
//	list_types  the types of one domain, or of all domains
//	tool_schema the schema returned by ToolSchema
//
// Configuration keys (explanation_level, include_verification,
// include_error_prevention, include_bridges) are read by solve and explain.
func (w *Workbook) HandleToolCall(req ToolRequest) ToolResponse {
	getString := func(key string, required bool) (string, error) {
		v, ok := req.Params[key]
		if !ok {
			if required {
				return "", fmt.Errorf("missing param: %s", key)
			}
			return "", nil
		}
		s, ok := v.(string)
		if !ok {
			return "", fmt.Errorf("param %s must be a string", key)
		}
		return s, nil
	}
	getBool := func(key string, def bool) (bool, error) {
		v, ok := req.Params[key]
		if !ok {
			return def, nil
		}
		b, ok := v.(bool)
		if !ok {
			return def, fmt.Errorf("param %s must be a boolean", key)
		}
		return b, nil
	}
	getRequest := func() (Request, error) {
		var r Request
		dom, err := getString("domain", true)
		if err != nil {
			return r, err
		}
		if r.Domain, err = problem.ParseDomain(dom); err != nil {
			return r, err
		}
		if r.Input, err = getString("input", false); err != nil {
			return r, err
		}
		if r.Scenario, err = getString("scenario", false); err != nil {
			return r, err
		}
		typ, err := getString("type", false)
		if err != nil {
			return r, err
		}
		r.Type = problem.TypeID(typ)
		if raw, ok := req.Params["parameters"]; ok {
			m, ok := raw.(map[string]interface{})
			if !ok {
				return r, fmt.Errorf("param parameters must be an object")
			}
			r.Params = problem.Params(m)
		}
		if r.Input == "" && r.Type == "" {
			return r, fmt.Errorf("missing param: input (or type with parameters)")
		}
		return r, nil
	}
	getConfig := func() (config.Config, error) {
		cfg := w.config
		lvl, err := getString("explanation_level", false)
		if err != nil {
			return cfg, err
		}
		if lvl != "" {
			if cfg.ExplanationLevel, err = config.ParseLevel(lvl); err != nil {
				return cfg, err
			}
		}
		if cfg.IncludeVerification, err = getBool("include_verification", cfg.IncludeVerification); err != nil {
			return cfg, err
		}
		if cfg.IncludeErrorPrevention, err = getBool("include_error_prevention", cfg.IncludeErrorPrevention); err != nil {
			return cfg, err
		}
		if cfg.IncludeBridges, err = getBool("include_bridges", cfg.IncludeBridges); err != nil {
			return cfg, err
		}
		return cfg, nil
	}
	solve := func() (*Bundle, error) {
		r, err := getRequest()
		if err != nil {
			return nil, err
		}
		cfg, err := getConfig()
		if err != nil {
			return nil, err
		}
		r.Config = &cfg
		return w.Solve(r)
	}

	switch req.Tool {
	case "solve":
		b, err := solve()
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		resp := ToolResponse{Result: b, String: summarize(b)}
		if b.Solution.Failed() {
			resp.Error = b.Solution.Error.Error()
		}
		return resp

	case "classify":
		r, err := getRequest()
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		p, err := w.Classify(r)
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		return ToolResponse{Result: p, String: string(p.Domain) + "/" + string(p.Type)}

	case "explain":
		b, err := solve()
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		lines := make([]string, 0, len(b.Steps))
		for _, s := range b.Steps {
			if s.IsBridge() {
				continue
			}
			lines = append(lines, fmt.Sprintf("%d. %s", s.Number, s.Name))
		}
		return ToolResponse{Result: b.Steps, String: strings.Join(lines, "\n")}

	case "list_types":
		dom, err := getString("domain", false)
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		if dom == "" {
			all := map[string][]TypeInfo{}
			var names []string
			for _, d := range w.order {
				types, _ := w.Types(d)
				all[string(d)] = types
				names = append(names, string(d))
			}
			return ToolResponse{Result: all, String: strings.Join(names, ", ")}
		}
		d, err := problem.ParseDomain(dom)
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		types, err := w.Types(d)
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		ids := make([]string, len(types))
		for i, t := range types {
			ids[i] = string(t.ID)
		}
		return ToolResponse{Result: types, String: strings.Join(ids, ", ")}

	case "tool_schema":
		var schema interface{}
		_ = json.Unmarshal([]byte(ToolSchema()), &schema)
		return ToolResponse{Result: schema}
	}

	return ToolResponse{Error: fmt.Sprintf("unknown tool: %s", req.Tool)}
}

// summarize is the one-line form of a bundle: the solution summary, or
// the joined answers, or the error message.
func summarize(b *Bundle) string {
	s := b.Solution
	switch {
	case s.Failed():
		return "No solution: " + s.Error.Message
	case s.Summary != "":
		return s.Summary
	}
	parts := make([]string, 0, len(s.Answers))
	for _, a := range s.Answers {
		if a.Label != "" {
			parts = append(parts, a.Label+" = "+a.String())
		} else {
			parts = append(parts, a.String())
		}
	}
	if len(parts) == 0 && s.Error != nil {
		return s.Error.Message
	}
	return strings.Join(parts, ", ")
}

// ToolSchema returns the JSON schema of every tool, for agent registration.
func ToolSchema() string {
	request := map[string]string{
		"domain":     "string",
		"input":      "string",
		"scenario":   "string",
		"type":       "string",
		"parameters": "object",
	}
	withConfig := map[string]string{
		"explanation_level":        "string",
		"include_verification":     "boolean",
		"include_error_prevention": "boolean",
		"include_bridges":          "boolean",
	}
	for k, v := range request {
		withConfig[k] = v
	}
	tools := []map[string]interface{}{
		ts("solve", "Classify, solve, verify and explain a radical, quadratic or matrix problem", []string{"domain"}, withConfig),
		ts("classify", "Classify a problem into its domain's problem type and extract parameters", []string{"domain"}, request),
		ts("explain", "Solve a problem and return only the explanation steps", []string{"domain"}, withConfig),
		ts("list_types", "List the problem types of a domain, or of every domain", []string{}, map[string]string{"domain": "string"}),
		ts("tool_schema", "Return this tool schema", []string{}, map[string]string{}),
	}
	spec := map[string]interface{}{"tools": tools}
	b, _ := json.MarshalIndent(spec, "", "  ")
	return string(b)
}

func ts(name, description string, required []string, props map[string]string) map[string]interface{} {
	properties := map[string]interface{}{}
	for k, typ := range props {
		properties[k] = map[string]interface{}{"type": typ}
	}
	return map[string]interface{}{
		"name":        name,
		"description": description,
		"inputSchema": map[string]interface{}{
			"type":       "object",
			"properties": properties,
			"required":   required,
		},
	}
}
