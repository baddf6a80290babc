// Package registry holds the ordered set of problem types for one domain and
// the first-match classifier that picks among them.
//
// A registry is assembled once with Register, then frozen. Registration
// order is significant: types are tried in that order and the first pattern
// to match wins, so specific shapes must be registered before the generic
// ones that would also match them.
package registry

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/njchilds90/goworkbook/internal/problem"
)

// Extractor derives parameters from the capture groups of the matching
// pattern. groups is nil when only the scenario text matched; clean is the
// normalised input in either case.
type Extractor func(groups []string, clean string) problem.Params

// Solver computes a solution from a classified problem.
type Solver func(problem.Problem) problem.Solution

// Verifier recomputes the defining relation of a solution.
type Verifier func(problem.Problem, problem.Solution) problem.Verification

// StepBuilder produces the base explanation steps for a solution.
type StepBuilder func(problem.Problem, problem.Solution) []problem.Step

// Fallback picks a type when no pattern matched.
type Fallback func(clean string, params problem.Params) (problem.TypeID, bool)

// Entry describes one problem type.
type Entry struct {
	ID          problem.TypeID
	Name        string
	Category    string
	Description string
	Patterns    []*regexp.Regexp
	Extract     Extractor
	Solve       Solver
	Verify      Verifier
	Steps       StepBuilder
}

// Registry is a domain's ordered type table.
type Registry struct {
	domain   problem.Domain
	clean    func(string) string
	fallback Fallback
	entries  []Entry
	index    map[problem.TypeID]int
	frozen   bool
}

// New starts an empty registry for domain. clean normalises raw input
// before matching; nil means strings.TrimSpace.
func New(domain problem.Domain, clean func(string) string) *Registry {
	if clean == nil {
		clean = strings.TrimSpace
	}
	return &Registry{domain: domain, clean: clean, index: map[problem.TypeID]int{}}
}

// Register appends e. It panics on a duplicate ID, a missing solver, or a
// frozen registry: these are programming errors in the domain table.
func (r *Registry) Register(e Entry) *Registry {
	if r.frozen {
		panic(fmt.Sprintf("registry: %s is frozen, cannot register %q", r.domain, e.ID))
	}
	if _, dup := r.index[e.ID]; dup {
		panic(fmt.Sprintf("registry: duplicate %s type %q", r.domain, e.ID))
	}
	if e.Solve == nil {
		panic(fmt.Sprintf("registry: %s type %q has no solver", r.domain, e.ID))
	}
	r.index[e.ID] = len(r.entries)
	r.entries = append(r.entries, e)
	return r
}

// WithFallback sets the rule used when no pattern matches.
func (r *Registry) WithFallback(f Fallback) *Registry {
	if r.frozen {
		panic(fmt.Sprintf("registry: %s is frozen", r.domain))
	}
	r.fallback = f
	return r
}

// Freeze makes the registry read-only. A frozen registry is safe for
// concurrent use.
func (r *Registry) Freeze() *Registry {
	r.frozen = true
	return r
}

func (r *Registry) Domain() problem.Domain { return r.domain }

// Clean applies the domain's input normalisation.
func (r *Registry) Clean(input string) string { return r.clean(input) }

// Lookup finds an entry by ID.
func (r *Registry) Lookup(id problem.TypeID) (Entry, bool) {
	i, ok := r.index[id]
	if !ok {
		return Entry{}, false
	}
	return r.entries[i], true
}

// Entries returns the types in registration order.
func (r *Registry) Entries() []Entry {
	return append([]Entry(nil), r.entries...)
}

// IDs returns the type IDs in registration order.
func (r *Registry) IDs() []problem.TypeID {
	ids := make([]problem.TypeID, len(r.entries))
	for i, e := range r.entries {
		ids[i] = e.ID
	}
	return ids
}

// Classify turns free text into a Problem.
//
// An explicit registered type wins outright and the problem is built from
// params alone. Otherwise types are tried in registration order and, within
// a type, patterns in declared order; a pattern matches if it matches the
// cleaned input or the scenario. Extracted values are overridden by params.
// When nothing matches the domain fallback is consulted, and failing that
// an UnrecognizedProblem error is returned.
func (r *Registry) Classify(input, scenario string, explicit problem.TypeID, params problem.Params) (problem.Problem, error) {
	clean := r.clean(input)

	if explicit != "" {
		if _, ok := r.index[explicit]; ok {
			return problem.New(r.domain, explicit, input, clean, scenario, params), nil
		}
	}

	for _, e := range r.entries {
		for _, re := range e.Patterns {
			var groups []string
			switch {
			case clean != "" && re.MatchString(clean):
				groups = re.FindStringSubmatch(clean)
			case scenario != "" && re.MatchString(scenario):
				groups = nil
			default:
				continue
			}
			var extracted problem.Params
			if e.Extract != nil {
				extracted = e.Extract(groups, clean)
			}
			return problem.New(r.domain, e.ID, input, clean, scenario, extracted.Merge(params)), nil
		}
	}

	if r.fallback != nil {
		if id, ok := r.fallback(clean, params); ok {
			if e, ok := r.Lookup(id); ok {
				var extracted problem.Params
				if e.Extract != nil {
					extracted = e.Extract(nil, clean)
				}
				return problem.New(r.domain, id, input, clean, scenario, extracted.Merge(params)), nil
			}
		}
	}

	return problem.Problem{}, problem.NewError(problem.KindUnrecognizedProblem, "classify",
		fmt.Sprintf("no %s problem type matches the input", r.domain),
		"input", input, "scenario", scenario)
}

// Solve dispatches p to its type's solver.
func (r *Registry) Solve(p problem.Problem) problem.Solution {
	e, ok := r.Lookup(p.Type)
	if !ok {
		return problem.Failure(p.Type, problem.NewError(problem.KindUnrecognizedProblem, "solve",
			fmt.Sprintf("%s has no type %q", r.domain, p.Type)))
	}
	return e.Solve(p)
}

// Verify dispatches to the type's verifier. Solutions that failed a
// precondition are not recomputed.
func (r *Registry) Verify(p problem.Problem, s problem.Solution) problem.Verification {
	if s.Failed() {
		return problem.NotApplicable(s.Error)
	}
	e, ok := r.Lookup(p.Type)
	if !ok || e.Verify == nil {
		return problem.Verify("none", 0)
	}
	return e.Verify(p, s)
}

// BaseSteps returns the type's own steps, or false when it has none.
func (r *Registry) BaseSteps(p problem.Problem, s problem.Solution) ([]problem.Step, bool) {
	e, ok := r.Lookup(p.Type)
	if !ok || e.Steps == nil {
		return nil, false
	}
	return e.Steps(p, s), true
}

// Patterns compiles case-insensitive patterns; it panics on a bad
// expression since the tables are static.
func Patterns(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		out[i] = regexp.MustCompile("(?i)" + e)
	}
	return out
}
