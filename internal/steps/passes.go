package steps

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/njchilds90/goworkbook/internal/config"
	"github.com/njchilds90/goworkbook/internal/lessons"
	"github.com/njchilds90/goworkbook/internal/problem"
)

// Enhance attaches the four explanation registers, the level-adapted
// description and learning support to every numbered step.
func Enhance(dom *lessons.Domain, typ problem.TypeID, level config.Level) Pass {
	tl := dom.Type(typ)
	return func(in []problem.Step) []problem.Step {
		out := problem.CloneSteps(in)
		var prev *problem.Step
		for i := range out {
			s := &out[i]
			if s.Kind != problem.KindStep {
				continue
			}
			topic := dom.Topic(s.Name)
			s.Explanations = &problem.Explanations{
				Conceptual: firstNonEmpty(topic.Conceptual, dom.Default.Conceptual),
				Procedural: firstNonEmpty(topic.Procedural, dom.Default.Procedural),
				Visual:     firstNonEmpty(topic.Visual, dom.Default.Visual),
				Algebraic:  firstNonEmpty(s.Rule, topic.Algebraic, dom.Default.Algebraic),
				Adaptive:   adapt(dom, joinSentences(s.Description, s.Reasoning), level),
			}
			learning := &problem.Learning{
				Prerequisites: pick(topic.Prerequisites, tl.Prerequisites, dom.Default.Prerequisites),
				Vocabulary:    pick(topic.Vocabulary, tl.Vocabulary),
			}
			if prev != nil {
				learning.Connection = fmt.Sprintf("This step builds on step %d (%s): %s",
					prev.Number, prev.Name, firstNonEmpty(prev.After, prev.Expression, prev.Description))
			}
			s.Learning = learning
			prev = s
		}
		return out
	}
}

// adapt rewrites glossary terms for the level: plain words for basic,
// parenthetical definitions for detailed.
func adapt(dom *lessons.Domain, text string, level config.Level) string {
	if text == "" {
		return ""
	}
	terms := make([]string, 0, len(dom.Glossary))
	for term := range dom.Glossary {
		terms = append(terms, term)
	}
	// Longer terms first so "perfect square" is rewritten before "square".
	sort.Slice(terms, func(i, j int) bool {
		if len(terms[i]) != len(terms[j]) {
			return len(terms[i]) > len(terms[j])
		}
		return terms[i] < terms[j]
	})
	for _, term := range terms {
		alt := dom.Term(term, string(level))
		if alt == term {
			continue
		}
		re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(term) + `\b`)
		text = re.ReplaceAllLiteralString(text, alt)
	}
	return text
}

func joinSentences(parts ...string) string {
	var kept []string
	for _, p := range parts {
		p = strings.TrimSuffix(strings.TrimSpace(p), ".")
		if p != "" {
			kept = append(kept, p)
		}
	}
	if len(kept) == 0 {
		return ""
	}
	return strings.Join(kept, ". ") + "."
}

// Bridges inserts a non-numbered connective entry between each pair of
// adjacent numbered steps.
func Bridges() Pass {
	return func(in []problem.Step) []problem.Step {
		numbered := 0
		for _, s := range in {
			if s.Kind == problem.KindStep {
				numbered++
			}
		}
		out := make([]problem.Step, 0, 2*len(in))
		for i, s := range in {
			out = append(out, s.Clone())
			if s.Kind != problem.KindStep {
				continue
			}
			next, ok := nextNumbered(in, i)
			if !ok {
				continue
			}
			state := firstNonEmpty(s.After, s.Expression, s.Description)
			goal := lowerFirst(next.Description)
			b := &problem.Bridge{
				Connection:  fmt.Sprintf("After %s we have %s", lowerFirst(s.Name), state),
				Purpose:     fmt.Sprintf("The strategy for %q is to %s", next.Name, goal),
				Progression: fmt.Sprintf("Moving from step %d to step %d of %d", s.Number, next.Number, numbered),
				NextGoal:    next.Description,
			}
			if s.After != "" && next.Before != "" {
				b.KeyRelationships = []string{fmt.Sprintf("%s becomes the input %s", s.After, next.Before)}
			}
			out = append(out, problem.Step{
				Kind:        problem.KindBridge,
				Name:        "Connecting to next step",
				Description: fmt.Sprintf("We now have %s. Next, we need to %s.", state, goal),
				Reasoning:   fmt.Sprintf("After %s, we need to %s", lowerFirst(s.Name), goal),
				Bridge:      b,
			})
		}
		return out
	}
}

func nextNumbered(steps []problem.Step, i int) (problem.Step, bool) {
	for j := i + 1; j < len(steps); j++ {
		if steps[j].Kind == problem.KindStep {
			return steps[j], true
		}
	}
	return problem.Step{}, false
}

// ErrorPrevention attaches common mistakes, prevention tips, check points
// and a self-check record to every numbered step.
func ErrorPrevention(dom *lessons.Domain, typ problem.TypeID) Pass {
	return func(in []problem.Step) []problem.Step {
		out := problem.CloneSteps(in)
		for i := range out {
			s := &out[i]
			if s.Kind != problem.KindStep {
				continue
			}
			topic := dom.Topic(s.Name)
			s.Prevention = &problem.Prevention{
				CommonMistakes: dom.MistakesFor(typ, s.Name),
				Tips:           pick(topic.Tips, dom.Default.Tips),
				CheckPoints:    pick(topic.CheckPoints, dom.Default.CheckPoints),
				WarningFlags:   pick(topic.WarningFlags),
			}
			s.Validation = &problem.Validation{
				SelfCheck:       firstNonEmpty(topic.SelfCheck, dom.Default.SelfCheck),
				ExpectedResult:  expectedResult(s, topic, dom),
				Troubleshooting: pick(topic.Troubleshoot, dom.Default.Troubleshoot),
			}
		}
		return out
	}
}

func expectedResult(s *problem.Step, topic lessons.Topic, dom *lessons.Domain) string {
	if s.FinalAnswer != "" {
		return s.FinalAnswer
	}
	return firstNonEmpty(topic.ExpectedResult, dom.Default.ExpectedResult)
}

// Scaffold attaches guiding questions, sub-steps, a four-level hint ladder,
// a practice variation and metacognitive prompts to every numbered step.
func Scaffold(dom *lessons.Domain, typ problem.TypeID) Pass {
	tl := dom.Type(typ)
	return func(in []problem.Step) []problem.Step {
		out := problem.CloneSteps(in)
		for i := range out {
			s := &out[i]
			if s.Kind != problem.KindStep {
				continue
			}
			topic := dom.Topic(s.Name)
			s.Scaffolding = &problem.Scaffolding{
				GuidingQuestions:  pick(topic.Questions, dom.Default.Questions),
				SubSteps:          pick(topic.SubSteps, dom.Default.SubSteps),
				Hints:             hintLadder(s, topic, dom),
				PracticeVariation: tl.Practice,
			}
			s.Metacognition = &problem.Metacognition{
				ThinkingProcess: firstNonEmpty(tl.ThinkingProcess,
					"Observe what is given, decide the goal, choose a strategy, execute it carefully, then verify."),
				DecisionPoints: pick(topic.DecisionPoints, dom.Default.DecisionPoints),
				Alternatives:   pick(tl.Alternatives, []string{"The method shown is the most direct for this problem"}),
			}
		}
		return out
	}
}

// hintLadder returns exactly four hints, from a nudge to the rule itself.
func hintLadder(s *problem.Step, topic lessons.Topic, dom *lessons.Domain) []problem.Hint {
	texts := pick(topic.Hints, dom.Default.Hints)
	for len(texts) < 4 {
		texts = append(texts, firstNonEmpty(dom.Default.Procedural, "Apply the operation carefully"))
	}
	if s.Rule != "" {
		texts[3] = "Try: " + s.Rule
	}
	hints := make([]problem.Hint, 4)
	for i := range hints {
		hints[i] = problem.Hint{Level: i + 1, Text: texts[i]}
	}
	return hints
}

// VerificationStep appends a final entry summarising the verifier's checks.
func VerificationStep(v problem.Verification) Pass {
	return func(in []problem.Step) []problem.Step {
		out := problem.CloneSteps(in)
		last := 0
		for _, s := range out {
			if s.Number > last {
				last = s.Number
			}
		}
		checks := make([]string, len(v.Checks))
		var troubles []string
		for i, c := range v.Checks {
			status := "ok"
			if !c.Passed {
				status = "FAILED"
				troubles = append(troubles, "Recheck "+c.Name)
			}
			checks[i] = fmt.Sprintf("%s: %s (residual %.3g)", c.Name, status, c.Residual)
			if c.Note != "" {
				checks[i] += " " + c.Note
			}
		}
		verdict := "Verified"
		if !v.Valid {
			verdict = "Not verified"
		}
		return append(out, problem.Step{
			Number:      last + 1,
			Kind:        problem.KindVerification,
			Name:        "Verify the solution",
			Description: v.Summary(),
			Expression:  strings.Join(checks, "; "),
			Reasoning:   "Recompute the defining relation from the problem's parameters and the reported answers.",
			FinalAnswer: fmt.Sprintf("%s (confidence %s)", verdict, v.Confidence),
			Validation: &problem.Validation{
				SelfCheck:       "Does substituting the answers back reproduce the original problem?",
				ExpectedResult:  fmt.Sprintf("Every residual within %.0e", v.Tolerance),
				Troubleshooting: troubles,
			},
		})
	}
}
