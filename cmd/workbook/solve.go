package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	workbook "github.com/njchilds90/goworkbook"
	"github.com/njchilds90/goworkbook/internal/poly"
	"github.com/njchilds90/goworkbook/internal/problem"
)

var (
	solveDomain   string
	solveType     string
	solveScenario string
	solveParams   []string
)

var solveCmd = &cobra.Command{
	Use:   "solve [problem text]",
	Short: "Solve one problem and print its explanation",
	Long: `Classifies the problem text within --domain, solves it, verifies the answer
and prints the explanation trace.

Parameters given with -p override values read from the text. Values are
YAML, so matrices and vectors are written as flow sequences:

  workbook solve -d matrix -t solve_system -p 'A=[[2,1],[1,3]]' -p 'b=[3,5]'`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dom, err := problem.ParseDomain(solveDomain)
		if err != nil {
			return err
		}
		params, err := parseParams(solveParams)
		if err != nil {
			return err
		}
		req := workbook.Request{
			Domain:   dom,
			Input:    strings.Join(args, " "),
			Scenario: solveScenario,
			Type:     problem.TypeID(solveType),
			Params:   params,
		}
		if req.Input == "" && req.Type == "" {
			return fmt.Errorf("give the problem text, or --type with --param values")
		}

		b, err := wb.Solve(req)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(os.Stdout, b)
		}
		printBundle(os.Stdout, b)
		if b.Solution.Failed() {
			return b.Err()
		}
		return nil
	},
}

func init() {
	f := solveCmd.Flags()
	f.StringVarP(&solveDomain, "domain", "d", "", "Problem domain: radical, quadratic or matrix")
	f.StringVarP(&solveType, "type", "t", "", "Problem type; skips classification (see 'workbook types')")
	f.StringVarP(&solveScenario, "scenario", "s", "", "Word-problem context used for classification")
	f.StringArrayVarP(&solveParams, "param", "p", nil, "Parameter as key=value (repeatable)")
	_ = solveCmd.MarkFlagRequired("domain")
}

// parseParams reads key=value pairs. Numbers may be fractions such as 3/4.
func parseParams(kvs []string) (problem.Params, error) {
	params := problem.Params{}
	for _, kv := range kvs {
		key, raw, ok := strings.Cut(kv, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("parameter %q: want key=value", kv)
		}
		v, err := parseValue(raw)
		if err != nil {
			return nil, fmt.Errorf("parameter %s: %w", key, err)
		}
		params[key] = v
	}
	return params, nil
}

func parseValue(raw string) (any, error) {
	var v any
	if err := yaml.Unmarshal([]byte(raw), &v); err != nil {
		return nil, err
	}
	switch x := v.(type) {
	case nil:
		return "", nil
	case string:
		if strings.ContainsAny(x, "0123456789") {
			if f, err := poly.ParseCoefficient(x); err == nil {
				return f, nil
			}
		}
		return x, nil
	}
	return v, nil
}
