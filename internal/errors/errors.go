// Package errors provides the build engine's typed error taxonomy (spec
// §7), grounded on the teacher's sentinel + DetailError shape
// (internal/errors/errors.go in open-platform-model-cli), extended with the
// node-id / known-names / source-position fields the spec requires.
package errors

import (
	"fmt"
	"strings"

	"github.com/Semantic-Infrastructure-Lab/tiacad/internal/model"
)

// Kind enumerates the error taxonomy from spec §7 (plus the finer-grained
// expression/selector kinds from §4.1/§4.3.2 — specializations surfaced
// with the same Kind values so callers can match on one type).
type Kind string

const (
	ParseError            Kind = "ParseError"
	UnknownName           Kind = "UnknownName"
	InvalidExpression     Kind = "InvalidExpression"
	DivisionByZero        Kind = "DivisionByZero"
	EvalError             Kind = "EvalError"
	CircularDependency    Kind = "CircularDependency"
	MissingReference      Kind = "MissingReference"
	InvalidSpec           Kind = "InvalidSpec"
	SelectorError         Kind = "SelectorError"
	NoMatchingFeature     Kind = "NoMatchingFeature"
	PatternExpansionEmpty Kind = "PatternExpansionEmpty"
	BackendError          Kind = "BackendError"
	DuplicateName         Kind = "DuplicateName"
	PartNotFound          Kind = "PartNotFound"
	InvalidLocation       Kind = "InvalidLocation"
	BadExpression         Kind = "BadExpression"
)

// Abort reports whether a Kind aborts the whole build, vs. only the current
// operation (spec §7 table: "Abort build" vs "Abort current operation").
func (k Kind) Abort() bool {
	switch k {
	case SelectorError, NoMatchingFeature, PatternExpansionEmpty, BackendError:
		return false
	default:
		return true
	}
}

// BuildError is the single structured error type the core raises. All
// errors carry: the failing node id (when applicable), the offending
// subexpression or field path, and — where relevant — the list of known
// names to aid fuzzy guessing (spec §7).
type BuildError struct {
	Kind       Kind
	NodeID     string
	Expr       string // offending expression or field path
	KnownNames []string
	Pos        model.SourcePos
	Cause      error
}

func (e *BuildError) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Kind))
	if e.NodeID != "" {
		fmt.Fprintf(&b, " at %s", e.NodeID)
	}
	if e.Expr != "" {
		fmt.Fprintf(&b, ": %q", e.Expr)
	}
	if e.Cause != nil {
		fmt.Fprintf(&b, ": %v", e.Cause)
	}
	if len(e.KnownNames) > 0 {
		fmt.Fprintf(&b, " (known: %s)", strings.Join(e.KnownNames, ", "))
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *BuildError) Unwrap() error {
	return e.Cause
}

// New constructs a BuildError of the given kind.
func New(kind Kind, expr string) *BuildError {
	return &BuildError{Kind: kind, Expr: expr}
}

// WithNode returns a copy of e annotated with the failing node id.
func (e *BuildError) WithNode(nodeID string) *BuildError {
	out := *e
	out.NodeID = nodeID
	return &out
}

// WithKnownNames returns a copy of e carrying the list of known names.
func (e *BuildError) WithKnownNames(names []string) *BuildError {
	out := *e
	out.KnownNames = append([]string(nil), names...)
	return &out
}

// WithPos returns a copy of e carrying a source position.
func (e *BuildError) WithPos(pos model.SourcePos) *BuildError {
	out := *e
	out.Pos = pos
	return &out
}

// WithCause returns a copy of e wrapping cause.
func (e *BuildError) WithCause(cause error) *BuildError {
	out := *e
	out.Cause = cause
	return &out
}

// Wrap wraps err as a BuildError of kind, attaching node context — used by
// builders to wrap backend exceptions with their node context before
// re-raising (spec §7: "Builders wrap backend exceptions with their node
// context before re-raising").
func Wrap(kind Kind, nodeID string, err error) *BuildError {
	return &BuildError{Kind: kind, NodeID: nodeID, Cause: err}
}

// Render renders err with ±2 lines of source context and a caret at the
// column when a model.SourcePos is attached, else falls back to the plain
// one-line message (spec §7), grounded on the teacher's DetailError
// multi-section rendering (internal/errors/errors.go in the teacher).
func Render(err *BuildError, src []string) string {
	if err.Pos.IsZero() || len(src) == 0 {
		return err.Error()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n  --> %s:%d:%d\n", err.Error(), err.Pos.File, err.Pos.Line, err.Pos.Column)

	first := err.Pos.Line - 2
	if first < 1 {
		first = 1
	}
	last := err.Pos.Line + 2
	if last > len(src) {
		last = len(src)
	}
	for ln := first; ln <= last; ln++ {
		fmt.Fprintf(&b, "%5d | %s\n", ln, src[ln-1])
		if ln == err.Pos.Line {
			col := err.Pos.Column
			if col < 1 {
				col = 1
			}
			b.WriteString("      | ")
			b.WriteString(strings.Repeat(" ", col-1))
			b.WriteString("^\n")
		}
	}
	return b.String()
}
