// Package workbook classifies free-form algebra problems (radicals,
// quadratics and matrices), solves them with a type-specific solver,
// verifies the answer independently and builds a layered explanation
// trace.
//
// Design goals:
//   - Closed, ordered problem-type tables per domain, frozen at init
//   - Solvers and verifiers that never share a code path
//   - Explanations regenerated from a solved bundle without re-solving
//   - JSON tool-call surface for agent backends
//
// A Workbook is safe for concurrent use.
package workbook

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/njchilds90/goworkbook/internal/config"
	"github.com/njchilds90/goworkbook/internal/lessons"
	"github.com/njchilds90/goworkbook/internal/matrix"
	"github.com/njchilds90/goworkbook/internal/problem"
	"github.com/njchilds90/goworkbook/internal/quadratic"
	"github.com/njchilds90/goworkbook/internal/radical"
	"github.com/njchilds90/goworkbook/internal/registry"
	"github.com/njchilds90/goworkbook/internal/steps"
)

// ============================================================
// Domain capability
// ============================================================

// Domain is what the pipeline needs from a problem domain. The radical,
// quadratic and matrix registries all satisfy it.
type Domain interface {
	Domain() problem.Domain
	Classify(input, scenario string, explicit problem.TypeID, params problem.Params) (problem.Problem, error)
	Solve(problem.Problem) problem.Solution
	Verify(problem.Problem, problem.Solution) problem.Verification
	BaseSteps(problem.Problem, problem.Solution) ([]problem.Step, bool)
	Entries() []registry.Entry
}

// Builtin returns the three built-in domains in their stable order.
func Builtin() []Domain {
	return []Domain{radical.Registry(), quadratic.Registry(), matrix.Registry()}
}

// ============================================================
// Workbook
// ============================================================

// Workbook runs the classify, solve, verify and explain pipeline.
type Workbook struct {
	domains map[problem.Domain]Domain
	order   []problem.Domain
	config  config.Config
	lessons *lessons.Catalog
	log     *zap.Logger
}

// Option configures a Workbook.
type Option func(*Workbook)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(w *Workbook) {
		if l != nil {
			w.log = l
		}
	}
}

// WithConfig sets the configuration used when a request carries none.
func WithConfig(c config.Config) Option {
	return func(w *Workbook) { w.config = c }
}

// WithDomain adds a domain, replacing a built-in one of the same name.
func WithDomain(d Domain) Option {
	return func(w *Workbook) { w.add(d) }
}

// New builds a Workbook over the built-in domains.
func New(opts ...Option) (*Workbook, error) {
	w := &Workbook{
		domains: map[problem.Domain]Domain{},
		config:  config.Default(),
		log:     zap.NewNop(),
	}
	for _, d := range Builtin() {
		w.add(d)
	}
	for _, opt := range opts {
		opt(w)
	}
	if err := w.config.Validate(); err != nil {
		return nil, fmt.Errorf("workbook: %w", err)
	}
	cat, err := lessons.Load()
	if err != nil {
		return nil, fmt.Errorf("workbook: %w", err)
	}
	w.lessons = cat
	return w, nil
}

func (w *Workbook) add(d Domain) {
	name := d.Domain()
	if _, ok := w.domains[name]; !ok {
		w.order = append(w.order, name)
	}
	w.domains[name] = d
}

// Config returns the default configuration.
func (w *Workbook) Config() config.Config { return w.config }

// Domains lists the registered domains in registration order.
func (w *Workbook) Domains() []problem.Domain {
	return append([]problem.Domain(nil), w.order...)
}

func (w *Workbook) domain(name problem.Domain) (Domain, error) {
	d, ok := w.domains[name]
	if !ok {
		return nil, problem.NewError(problem.KindUnrecognizedProblem, "dispatch",
			fmt.Sprintf("unknown domain %q", name), "domain", name)
	}
	return d, nil
}

// ============================================================
// Requests and bundles
// ============================================================

// Request is one problem to solve. Domain is required. Type, when it names
// a registered type, skips classification and Params must then carry every
// parameter; otherwise Params override values extracted from Input.
type Request struct {
	Domain   problem.Domain `json:"domain" yaml:"domain"`
	Input    string         `json:"input" yaml:"input"`
	Scenario string         `json:"scenario,omitempty" yaml:"scenario"`
	Type     problem.TypeID `json:"type,omitempty" yaml:"type"`
	Params   problem.Params `json:"parameters,omitempty" yaml:"parameters"`

	// Config overrides the workbook configuration for this request.
	Config *config.Config `json:"config,omitempty" yaml:"-"`
}

// Bundle is the complete record of one solved problem.
type Bundle struct {
	ID           uuid.UUID            `json:"id"`
	Problem      problem.Problem      `json:"problem"`
	Solution     problem.Solution     `json:"solution"`
	Steps        []problem.Step       `json:"steps"`
	Verification problem.Verification `json:"verification"`
	Config       config.Config        `json:"config"`
}

// Err returns the solution's error, or nil. Terminal outcomes (no real
// solution, not factorable) are reported too.
func (b *Bundle) Err() error {
	if b.Solution.Error == nil {
		return nil
	}
	return b.Solution.Error
}

// ============================================================
// Pipeline
// ============================================================

// Solve classifies, solves, verifies and explains one request. Only
// classification failures and bad configuration are returned as errors;
// a problem that violates a precondition still yields a bundle whose
// Solution.Error says why.
func (w *Workbook) Solve(req Request) (*Bundle, error) {
	cfg := w.config
	if req.Config != nil {
		cfg = *req.Config
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("workbook: %w", err)
		}
	}

	d, err := w.domain(req.Domain)
	if err != nil {
		return nil, err
	}

	p, err := d.Classify(req.Input, req.Scenario, req.Type, req.Params)
	if err != nil {
		w.log.Debug("classification failed",
			zap.String("domain", string(req.Domain)),
			zap.String("input", req.Input),
			zap.Error(err))
		return nil, err
	}

	id := uuid.New()
	log := w.log.With(
		zap.String("bundle_id", id.String()),
		zap.String("domain", string(p.Domain)),
		zap.String("type", string(p.Type)))
	log.Debug("classified", zap.Int("params", len(p.Params)))

	sol := d.Solve(p)
	if sol.Error != nil {
		log.Debug("solver stopped",
			zap.String("kind", string(sol.Error.Kind)),
			zap.Bool("terminal", sol.Error.Terminal()),
			zap.String("message", sol.Error.Message))
	} else {
		log.Debug("solved", zap.Int("answers", len(sol.Answers)))
	}

	v := d.Verify(p, sol)
	log.Debug("verified",
		zap.Bool("valid", v.Valid),
		zap.String("method", v.Method),
		zap.String("confidence", string(v.Confidence)))

	b := &Bundle{
		ID:           id,
		Problem:      p,
		Solution:     sol,
		Verification: v,
		Config:       cfg,
	}
	b.Steps = w.explain(d, b, cfg)
	log.Debug("explained", zap.Int("steps", len(b.Steps)))
	return b, nil
}

// Regenerate rebuilds the explanation of a solved bundle under cfg
// without re-solving. The bundle is not modified. An invalid explanation
// level falls back to the workbook's level.
func (w *Workbook) Regenerate(b *Bundle, cfg config.Config) []problem.Step {
	d, err := w.domain(b.Problem.Domain)
	if err != nil {
		w.log.Warn("regenerate: unknown domain", zap.String("domain", string(b.Problem.Domain)))
		return nil
	}
	if err := cfg.Validate(); err != nil {
		w.log.Warn("regenerate: invalid configuration", zap.Error(err))
		cfg.ExplanationLevel = w.config.ExplanationLevel
	}
	return w.explain(d, b, cfg)
}

func (w *Workbook) explain(d Domain, b *Bundle, cfg config.Config) []problem.Step {
	in := steps.Input{
		Problem:  b.Problem,
		Solution: b.Solution,
		Base:     baseSteps(d, b.Problem, b.Solution),
		Config:   cfg,
		Lessons:  w.lessons.Domain(b.Problem.Domain),
	}
	if !b.Solution.Failed() {
		v := b.Verification
		in.Verification = &v
	}
	return steps.Synthesize(in)
}

// baseSteps picks the domain's own steps, the generic description when the
// type has none, or the diagnostic steps of a failed solution.
func baseSteps(d Domain, p problem.Problem, s problem.Solution) []problem.Step {
	if s.Failed() {
		return steps.Failure(p, s)
	}
	if base, ok := d.BaseSteps(p, s); ok && len(base) > 0 {
		return base
	}
	return steps.Generic(p, s)
}

// ============================================================
// Introspection
// ============================================================

// TypeInfo describes one registered problem type.
type TypeInfo struct {
	ID          problem.TypeID `json:"id"`
	Name        string         `json:"name"`
	Category    string         `json:"category"`
	Description string         `json:"description"`
}

// Types lists a domain's problem types in classification order.
func (w *Workbook) Types(name problem.Domain) ([]TypeInfo, error) {
	d, err := w.domain(name)
	if err != nil {
		return nil, err
	}
	entries := d.Entries()
	out := make([]TypeInfo, len(entries))
	for i, e := range entries {
		out[i] = TypeInfo{ID: e.ID, Name: e.Name, Category: e.Category, Description: e.Description}
	}
	return out, nil
}

// Classify runs only the classification stage.
func (w *Workbook) Classify(req Request) (problem.Problem, error) {
	d, err := w.domain(req.Domain)
	if err != nil {
		return problem.Problem{}, err
	}
	return d.Classify(req.Input, req.Scenario, req.Type, req.Params)
}

