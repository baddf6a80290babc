package problem

// StepKind distinguishes numbered work from connective and check entries.
type StepKind string

const (
	KindStep         StepKind = "step"
	KindBridge       StepKind = "bridge"
	KindVerification StepKind = "verification"
)

// Step is one entry of an explanation trace. Bridges carry Number 0. The
// pointer records are owned by the pass that adds them and stay nil
// otherwise.
type Step struct {
	Number      int      `json:"step_number"`
	Kind        StepKind `json:"kind"`
	Name        string   `json:"step"`
	Description string   `json:"description"`
	Expression  string   `json:"expression,omitempty"`
	Before      string   `json:"before,omitempty"`
	After       string   `json:"after,omitempty"`
	Reasoning   string   `json:"reasoning,omitempty"`
	Rule        string   `json:"algebraic_rule,omitempty"`
	FinalAnswer string   `json:"final_answer,omitempty"`

	Explanations  *Explanations  `json:"explanations,omitempty"`
	Learning      *Learning      `json:"learning_support,omitempty"`
	Bridge        *Bridge        `json:"bridge,omitempty"`
	Prevention    *Prevention    `json:"error_prevention,omitempty"`
	Validation    *Validation    `json:"validation,omitempty"`
	Scaffolding   *Scaffolding   `json:"scaffolding,omitempty"`
	Metacognition *Metacognition `json:"metacognition,omitempty"`
}

// IsBridge reports whether the step is a non-numbered connective entry.
func (s Step) IsBridge() bool { return s.Kind == KindBridge }

// Explanations holds the four explanation registers plus the one chosen
// for the configured level.
type Explanations struct {
	Conceptual string `json:"conceptual"`
	Procedural string `json:"procedural"`
	Visual     string `json:"visual"`
	Algebraic  string `json:"algebraic"`
	Adaptive   string `json:"adaptive"`
}

type Learning struct {
	Prerequisites []string `json:"prerequisite_skills,omitempty"`
	Vocabulary    []string `json:"key_vocabulary,omitempty"`
	Connection    string   `json:"connection_to_previous,omitempty"`
}

type Bridge struct {
	Connection       string   `json:"logical_connection"`
	Purpose          string   `json:"step_purpose"`
	Progression      string   `json:"progression"`
	KeyRelationships []string `json:"key_relationships,omitempty"`
	NextGoal         string   `json:"next_goal"`
}

type Prevention struct {
	CommonMistakes []string `json:"common_mistakes,omitempty"`
	Tips           []string `json:"prevention_tips,omitempty"`
	CheckPoints    []string `json:"check_points,omitempty"`
	WarningFlags   []string `json:"warning_flags,omitempty"`
}

type Validation struct {
	SelfCheck       string   `json:"self_check"`
	ExpectedResult  string   `json:"expected_result"`
	Troubleshooting []string `json:"troubleshooting,omitempty"`
}

type Scaffolding struct {
	GuidingQuestions  []string `json:"guiding_questions,omitempty"`
	SubSteps          []string `json:"sub_steps,omitempty"`
	Hints             []Hint   `json:"hints,omitempty"`
	PracticeVariation string   `json:"practice_variation,omitempty"`
}

// Hint is one rung of a progressive hint ladder; Level runs 1 to 4.
type Hint struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

type Metacognition struct {
	ThinkingProcess string   `json:"thinking_process"`
	DecisionPoints  []string `json:"decision_points,omitempty"`
	Alternatives    []string `json:"alternative_approaches,omitempty"`
}

// CloneSteps returns a copy of steps whose records are also copied, so a
// pass can attach or edit records without touching its input.
func CloneSteps(in []Step) []Step {
	out := make([]Step, len(in))
	for i, s := range in {
		out[i] = s.Clone()
	}
	return out
}

// Clone deep-copies the step's records.
func (s Step) Clone() Step {
	c := s
	if s.Explanations != nil {
		e := *s.Explanations
		c.Explanations = &e
	}
	if s.Learning != nil {
		l := *s.Learning
		l.Prerequisites = cloneStrings(l.Prerequisites)
		l.Vocabulary = cloneStrings(l.Vocabulary)
		c.Learning = &l
	}
	if s.Bridge != nil {
		b := *s.Bridge
		b.KeyRelationships = cloneStrings(b.KeyRelationships)
		c.Bridge = &b
	}
	if s.Prevention != nil {
		p := *s.Prevention
		p.CommonMistakes = cloneStrings(p.CommonMistakes)
		p.Tips = cloneStrings(p.Tips)
		p.CheckPoints = cloneStrings(p.CheckPoints)
		p.WarningFlags = cloneStrings(p.WarningFlags)
		c.Prevention = &p
	}
	if s.Validation != nil {
		v := *s.Validation
		v.Troubleshooting = cloneStrings(v.Troubleshooting)
		c.Validation = &v
	}
	if s.Scaffolding != nil {
		sc := *s.Scaffolding
		sc.GuidingQuestions = cloneStrings(sc.GuidingQuestions)
		sc.SubSteps = cloneStrings(sc.SubSteps)
		if sc.Hints != nil {
			sc.Hints = append([]Hint(nil), sc.Hints...)
		}
		c.Scaffolding = &sc
	}
	if s.Metacognition != nil {
		m := *s.Metacognition
		m.DecisionPoints = cloneStrings(m.DecisionPoints)
		m.Alternatives = cloneStrings(m.Alternatives)
		c.Metacognition = &m
	}
	return c
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string(nil), in...)
}
