// Package steps turns a solved problem into a layered explanation trace.
//
// The trace is built by a fixed chain of passes: base, enhancement, bridges,
// error prevention, scaffolding and verification. Each pass receives the
// previous pass's output, copies it and adds its own records; no pass edits
// content written by an earlier one.
package steps

import (
	"fmt"
	"strings"

	"github.com/njchilds90/goworkbook/internal/config"
	"github.com/njchilds90/goworkbook/internal/lessons"
	"github.com/njchilds90/goworkbook/internal/problem"
)

// Pass transforms a step list into an enriched one.
type Pass func([]problem.Step) []problem.Step

// Chain composes passes left to right.
func Chain(passes ...Pass) Pass {
	return func(in []problem.Step) []problem.Step {
		out := in
		for _, p := range passes {
			out = p(out)
		}
		return out
	}
}

// Input is everything the synthesizer reads. None of it is modified.
type Input struct {
	Problem      problem.Problem
	Solution     problem.Solution
	Base         []problem.Step
	Verification *problem.Verification
	Config       config.Config
	Lessons      *lessons.Domain
}

// Synthesize runs the configured passes over in.Base. Passes disabled by
// the configuration are skipped entirely.
func Synthesize(in Input) []problem.Step {
	dom := in.Lessons
	if dom == nil {
		dom = lessons.MustLoad().Domain(in.Problem.Domain)
	}
	cfg := in.Config

	passes := []Pass{Base(in.Base)}
	if cfg.Enhanced() {
		passes = append(passes, Enhance(dom, in.Problem.Type, cfg.ExplanationLevel))
	}
	if cfg.IncludeBridges {
		passes = append(passes, Bridges())
	}
	if cfg.IncludeErrorPrevention {
		passes = append(passes, ErrorPrevention(dom, in.Problem.Type))
	}
	if cfg.Scaffolded() {
		passes = append(passes, Scaffold(dom, in.Problem.Type))
	}
	if cfg.IncludeVerification && in.Verification != nil {
		passes = append(passes, VerificationStep(*in.Verification))
	}
	return Chain(passes...)(nil)
}

// Base ignores its input and yields a numbered copy of steps.
func Base(steps []problem.Step) Pass {
	return func([]problem.Step) []problem.Step {
		out := problem.CloneSteps(steps)
		for i := range out {
			out[i].Number = i + 1
			if out[i].Kind == "" {
				out[i].Kind = problem.KindStep
			}
		}
		return out
	}
}

// Generic describes a solution for which the domain has no dedicated steps.
func Generic(p problem.Problem, s problem.Solution) []problem.Step {
	out := []problem.Step{{
		Name:        "Given problem",
		Description: "Read the problem and identify what is asked",
		Expression:  p.OriginalInput,
	}, {
		Name:        "Describe the operation",
		Description: fmt.Sprintf("Apply the %s method", humanize(string(p.Type))),
		Reasoning:   s.Kind,
	}}
	final := problem.Step{
		Name:        "Result",
		Description: "State the result",
		FinalAnswer: Answers(s),
	}
	if s.Summary != "" {
		final.Expression = s.Summary
	}
	return append(out, final)
}

// Failure explains a solution that stopped on a violated precondition.
func Failure(p problem.Problem, s problem.Solution) []problem.Step {
	err := s.Error
	return []problem.Step{{
		Name:        "Given problem",
		Description: "Read the problem and identify what is asked",
		Expression:  p.OriginalInput,
	}, {
		Name:        "Check preconditions",
		Description: err.Message,
		Reasoning:   describeKind(err.Kind),
		After:       err.Error(),
		FinalAnswer: "No solution: " + err.Message,
	}}
}

func describeKind(k problem.ErrorKind) string {
	switch k {
	case problem.KindDegenerateEquation:
		return "The leading coefficient is zero, so this is not a quadratic equation."
	case problem.KindDimensionMismatch:
		return "The operands do not have compatible dimensions for this operation."
	case problem.KindSingularMatrix:
		return "The matrix has determinant zero and therefore no inverse."
	case problem.KindInvalidParameters:
		return "The parameters needed by this problem type are missing or out of range."
	}
	return "The problem cannot be solved as stated."
}

// Answers joins a solution's answers for a final-answer line.
func Answers(s problem.Solution) string {
	parts := make([]string, 0, len(s.Answers))
	for _, a := range s.Answers {
		if a.Label != "" {
			parts = append(parts, a.Label+" = "+a.String())
		} else {
			parts = append(parts, a.String())
		}
	}
	return strings.Join(parts, ", ")
}

func humanize(id string) string { return strings.ReplaceAll(id, "_", " ") }

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// firstNonEmpty returns the first non-empty string.
func firstNonEmpty(ss ...string) string {
	for _, s := range ss {
		if s != "" {
			return s
		}
	}
	return ""
}

// pick returns a copy of the first non-empty list, so records never alias
// the shared lesson catalog.
func pick(lists ...[]string) []string {
	for _, l := range lists {
		if len(l) > 0 {
			return append([]string(nil), l...)
		}
	}
	return nil
}
