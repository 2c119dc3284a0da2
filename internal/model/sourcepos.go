package model

// SourcePos locates a spec value in the document source, when the loader
// collaborator supplied a line tracker (spec §7: "When a YAML source line
// tracker is supplied by the collaborator, errors also carry (file, line,
// column)"). The core never requires this — builders and the DAG accept a
// zero SourcePos and simply omit the source-context rendering.
type SourcePos struct {
	File   string
	Line   int
	Column int
}

// IsZero reports whether p carries no position information.
func (p SourcePos) IsZero() bool {
	return p == SourcePos{}
}
