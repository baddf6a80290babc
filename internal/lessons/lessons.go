// Package lessons provides the read-only teaching content attached to steps:
// explanation registers, common mistakes, hints and practice prompts. The
// content is embedded YAML, parsed once per process.
package lessons

import (
	"embed"
	"fmt"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/njchilds90/goworkbook/internal/problem"
)

//go:embed data/*.yaml
var dataFS embed.FS

// Catalog is the lesson content for every domain.
type Catalog struct {
	domains map[problem.Domain]*Domain
}

// Domain is one domain's lesson table.
type Domain struct {
	Name     string                         `yaml:"domain"`
	Default  Topic                          `yaml:"default"`
	Topics   map[string]Topic               `yaml:"topics"`
	Types    map[string]TypeLesson          `yaml:"types"`
	Mistakes map[string]map[string][]string `yaml:"mistakes"`
	Glossary map[string]map[string]string   `yaml:"glossary"`
}

// Topic is the content for one step name.
type Topic struct {
	Conceptual     string   `yaml:"conceptual"`
	Procedural     string   `yaml:"procedural"`
	Visual         string   `yaml:"visual"`
	Algebraic      string   `yaml:"algebraic"`
	ExpectedResult string   `yaml:"expected_result"`
	Prerequisites  []string `yaml:"prerequisites"`
	Vocabulary     []string `yaml:"vocabulary"`
	Tips           []string `yaml:"tips"`
	CheckPoints    []string `yaml:"check_points"`
	WarningFlags   []string `yaml:"warning_flags"`
	SelfCheck      string   `yaml:"self_check"`
	Troubleshoot   []string `yaml:"troubleshooting"`
	Questions      []string `yaml:"questions"`
	SubSteps       []string `yaml:"sub_steps"`
	Hints          []string `yaml:"hints"`
	DecisionPoints []string `yaml:"decision_points"`
}

// TypeLesson is the content shared by every step of one problem type.
type TypeLesson struct {
	Title           string   `yaml:"title"`
	Prerequisites   []string `yaml:"prerequisites"`
	Vocabulary      []string `yaml:"vocabulary"`
	ThinkingProcess string   `yaml:"thinking_process"`
	Alternatives    []string `yaml:"alternatives"`
	Practice        string   `yaml:"practice"`
}

var (
	loadOnce sync.Once
	catalog  *Catalog
	loadErr  error
)

// Load parses the embedded catalog on first use and returns the shared
// instance afterwards.
func Load() (*Catalog, error) {
	loadOnce.Do(func() {
		catalog, loadErr = parse()
	})
	return catalog, loadErr
}

// MustLoad is Load for callers that treat a broken embedded catalog as a
// build defect.
func MustLoad() *Catalog {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}

func parse() (*Catalog, error) {
	c := &Catalog{domains: map[problem.Domain]*Domain{}}
	for _, d := range problem.Domains {
		raw, err := dataFS.ReadFile("data/" + string(d) + ".yaml")
		if err != nil {
			return nil, fmt.Errorf("lessons: read %s: %w", d, err)
		}
		var dom Domain
		if err := yaml.Unmarshal(raw, &dom); err != nil {
			return nil, fmt.Errorf("lessons: parse %s: %w", d, err)
		}
		if dom.Name != string(d) {
			return nil, fmt.Errorf("lessons: %s.yaml declares domain %q", d, dom.Name)
		}
		c.domains[d] = &dom
	}
	return c, nil
}

// Domain returns the table for d. Unknown domains get an empty table.
func (c *Catalog) Domain(d problem.Domain) *Domain {
	if dom, ok := c.domains[d]; ok {
		return dom
	}
	return &Domain{Name: string(d)}
}

// Topic returns the content for a step name, falling back to the domain
// default.
func (d *Domain) Topic(step string) Topic {
	if t, ok := d.Topics[step]; ok {
		return t
	}
	return d.Default
}

// HasTopic reports whether step has dedicated content.
func (d *Domain) HasTopic(step string) bool {
	_, ok := d.Topics[step]
	return ok
}

func (d *Domain) Type(id problem.TypeID) TypeLesson {
	return d.Types[string(id)]
}

// MistakesFor returns the common mistakes recorded for a step of a type,
// then those recorded for the step under any type ("*").
func (d *Domain) MistakesFor(id problem.TypeID, step string) []string {
	var out []string
	out = append(out, d.Mistakes[string(id)][step]...)
	out = append(out, d.Mistakes["*"][step]...)
	return out
}

// Term renders a glossary term for an explanation level. Levels without an
// entry keep the term as is.
func (d *Domain) Term(term, level string) string {
	if alt, ok := d.Glossary[term][level]; ok {
		return alt
	}
	return term
}

// TopicNames lists the step names with dedicated content, sorted.
func (d *Domain) TopicNames() []string {
	names := make([]string, 0, len(d.Topics))
	for n := range d.Topics {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
