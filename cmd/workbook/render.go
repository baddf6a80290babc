package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	workbook "github.com/njchilds90/goworkbook"
	"github.com/njchilds90/goworkbook/internal/problem"
)

var (
	cyan   = color.New(color.FgCyan, color.Bold).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	gray   = color.New(color.FgHiBlack).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printBundle writes the text form of a solved problem.
func printBundle(w io.Writer, b *workbook.Bundle) {
	p, s := b.Problem, b.Solution
	fmt.Fprintf(w, "\n%s\n", cyan(fmt.Sprintf("=== %s / %s ===", p.Domain, p.Type)))
	if p.OriginalInput != "" {
		fmt.Fprintf(w, "Input: %s\n", p.OriginalInput)
	}
	if p.Scenario != "" {
		fmt.Fprintf(w, "Scenario: %s\n", p.Scenario)
	}
	fmt.Fprintln(w)

	switch {
	case s.Failed():
		fmt.Fprintf(w, "%s %s\n", red("✗ Error:"), s.Error.Error())
	case s.Error != nil:
		fmt.Fprintf(w, "%s %s\n", yellow("○ Result:"), s.Error.Message)
	default:
		fmt.Fprintf(w, "%s\n", yellow("Answer:"))
		for _, a := range s.Answers {
			if a.Label != "" {
				fmt.Fprintf(w, "  %s = %s\n", a.Label, green(a.String()))
			} else {
				fmt.Fprintf(w, "  %s\n", green(a.String()))
			}
		}
	}
	if s.Summary != "" && !s.Failed() {
		fmt.Fprintf(w, "  %s\n", gray(s.Summary))
	}

	fmt.Fprintf(w, "\n%s\n", yellow("Steps:"))
	for _, st := range b.Steps {
		printStep(w, st)
	}

	if !s.Failed() {
		v := b.Verification
		mark := green("✓")
		if !v.Valid {
			mark = red("✗")
		}
		fmt.Fprintf(w, "\n%s %s\n", mark, v.Summary())
	}
	fmt.Fprintln(w)
}

func printStep(w io.Writer, st problem.Step) {
	switch st.Kind {
	case problem.KindBridge:
		if st.Bridge != nil {
			fmt.Fprintf(w, "     %s\n", gray("↳ "+st.Bridge.Connection))
		}
		return
	case problem.KindVerification:
		fmt.Fprintf(w, " %2d. %s: %s\n", st.Number, bold(st.Name), st.Description)
		return
	}

	fmt.Fprintf(w, " %2d. %s: %s\n", st.Number, bold(st.Name), st.Description)
	if st.Expression != "" {
		fmt.Fprintf(w, "     %s\n", st.Expression)
	}
	if st.Before != "" || st.After != "" {
		fmt.Fprintf(w, "     %s → %s\n", st.Before, st.After)
	}
	if st.Rule != "" {
		fmt.Fprintf(w, "     %s %s\n", gray("rule:"), st.Rule)
	}
	if st.Explanations != nil && st.Explanations.Adaptive != "" {
		fmt.Fprintf(w, "     %s\n", gray(st.Explanations.Adaptive))
	}
	if st.Prevention != nil && len(st.Prevention.CommonMistakes) > 0 {
		fmt.Fprintf(w, "     %s %s\n", yellow("watch out:"), st.Prevention.CommonMistakes[0])
	}
	if st.Scaffolding != nil {
		for _, q := range st.Scaffolding.GuidingQuestions {
			fmt.Fprintf(w, "     %s %s\n", cyan("?"), q)
		}
		for _, h := range st.Scaffolding.Hints {
			fmt.Fprintf(w, "     %s %s\n", gray(fmt.Sprintf("hint %d:", h.Level)), h.Text)
		}
	}
	if st.FinalAnswer != "" {
		fmt.Fprintf(w, "     %s %s\n", green("⇒"), st.FinalAnswer)
	}
}

// printTypes writes one line per problem type.
func printTypes(w io.Writer, dom problem.Domain, types []workbook.TypeInfo) {
	fmt.Fprintf(w, "%s\n", cyan(string(dom)))
	width := 0
	for _, t := range types {
		width = max(width, len(t.ID))
	}
	for _, t := range types {
		fmt.Fprintf(w, "  %s%s  %s\n", green(string(t.ID)), strings.Repeat(" ", width-len(t.ID)), t.Description)
	}
}
