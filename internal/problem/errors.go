package problem

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrorKind tags a failure in the taxonomy surfaced to callers.
type ErrorKind string

const (
	KindUnrecognizedProblem ErrorKind = "UnrecognizedProblem"
	KindDegenerateEquation  ErrorKind = "DegenerateEquation"
	KindDimensionMismatch   ErrorKind = "DimensionMismatch"
	KindSingularMatrix      ErrorKind = "SingularMatrix"
	KindNoRealSolution      ErrorKind = "NoRealSolution"
	KindNotFactorable       ErrorKind = "NotFactorable"
	KindInvalidParameters   ErrorKind = "InvalidParameters"
)

// Sentinels for errors.Is.
var (
	ErrUnrecognizedProblem = errors.New("workbook: unrecognized problem")
	ErrDegenerateEquation  = errors.New("workbook: degenerate equation")
	ErrDimensionMismatch   = errors.New("workbook: dimension mismatch")
	ErrSingularMatrix      = errors.New("workbook: singular matrix")
	ErrNoRealSolution      = errors.New("workbook: no real solution")
	ErrNotFactorable       = errors.New("workbook: not factorable over the integers")
	ErrInvalidParameters   = errors.New("workbook: invalid parameters")
)

var sentinels = map[ErrorKind]error{
	KindUnrecognizedProblem: ErrUnrecognizedProblem,
	KindDegenerateEquation:  ErrDegenerateEquation,
	KindDimensionMismatch:   ErrDimensionMismatch,
	KindSingularMatrix:      ErrSingularMatrix,
	KindNoRealSolution:      ErrNoRealSolution,
	KindNotFactorable:       ErrNotFactorable,
	KindInvalidParameters:   ErrInvalidParameters,
}

// Error is a structured failure carrying enough context (operation and
// operands) to render a diagnostic.
type Error struct {
	Kind     ErrorKind      `json:"kind"`
	Op       string         `json:"op,omitempty"`
	Message  string         `json:"message"`
	Operands map[string]any `json:"operands,omitempty"`
}

// NewError builds an Error; operands are given as alternating key, value.
func NewError(kind ErrorKind, op, msg string, kv ...any) *Error {
	e := &Error{Kind: kind, Op: op, Message: msg}
	if len(kv) > 0 {
		e.Operands = make(map[string]any, len(kv)/2)
		for i := 0; i+1 < len(kv); i += 2 {
			e.Operands[fmt.Sprint(kv[i])] = kv[i+1]
		}
	}
	return e
}

func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString(string(e.Kind))
	if e.Op != "" {
		sb.WriteString(" in ")
		sb.WriteString(e.Op)
	}
	sb.WriteString(": ")
	sb.WriteString(e.Message)
	if len(e.Operands) > 0 {
		keys := make([]string, 0, len(e.Operands))
		for k := range e.Operands {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		sb.WriteString(" (")
		for i, k := range keys {
			if i > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "%s=%v", k, e.Operands[k])
		}
		sb.WriteString(")")
	}
	return sb.String()
}

func (e *Error) Unwrap() error { return sentinels[e.Kind] }

// Terminal reports whether the error describes a valid terminal outcome
// (no real solution, not factorable) rather than a violated precondition.
func (e *Error) Terminal() bool {
	return e.Kind == KindNoRealSolution || e.Kind == KindNotFactorable
}
