package model

// RawValue is an unresolved value taken directly from the parsed document:
// a scalar, an expression string, a list, or a nested mapping (spec §3
// "Parameter" lifecycle). The expression evaluator (internal/expr) is the
// only component that interprets RawValue's ${...} syntax.
type RawValue = any

// Spec is one section entry's raw mapping — a sketch, part, operation, or
// reference declaration before validation (spec §3 "Operation declaration").
type Spec = map[string]any

// Document is the pre-parsed nested mapping the core consumes. Loading the
// on-disk YAML/JSON representation into this shape is explicitly out of
// scope for the core (spec §1, §6) — internal/document is the external
// collaborator that does it.
type Document struct {
	Parameters map[string]RawValue
	Sketches   map[string]Spec
	Parts      map[string]Spec
	Operations map[string]Spec
	References map[string]Spec
	Export     ExportConfig

	// Positions maps "kind:name" (e.g. "part:base") to a SourcePos when the loader tracked
	// source lines (spec §7). Absent entries render without source context.
	Positions map[string]SourcePos
}

// NewDocument returns a Document with all sections initialized to empty,
// non-nil maps so an empty input document yields an empty, safely-rangeable
// Document (spec §6: "an empty document yields an empty registry").
func NewDocument() *Document {
	return &Document{
		Parameters: map[string]RawValue{},
		Sketches:   map[string]Spec{},
		Parts:      map[string]Spec{},
		Operations: map[string]Spec{},
		References: map[string]Spec{},
		Positions:  map[string]SourcePos{},
	}
}

// ExportConfig is the export: section (spec §6).
type ExportConfig struct {
	DefaultPart  string
	Formats      []string
	ColorMode    string
	DefaultColor string
}
