package model

// Handle is an opaque backend geometry handle. The core never inspects its
// contents; ownership rules (spec §4.2, §5) are enforced at the Part level.
type Handle interface {
	// HandleID returns a backend-assigned identifier, used only for log
	// messages and test assertions — never for equality of geometry.
	HandleID() string
}

// TransformRecord captures one atomic transform applied to a Part, including
// the tracked position before and after, per spec §4.5.5: "Transform history
// is recorded; each entry records position_before and position_after."
type TransformRecord struct {
	Kind           string // "translate" or "rotate"
	PositionBefore Vec3
	PositionAfter  Vec3
	Detail         map[string]any
}

// Part is a named, registry-owned geometric artifact (spec §3). A Part
// exclusively owns its Handle; Clone duplicates both the Go struct and the
// backend handle (via the backend's own clone capability, invoked by the
// caller before constructing the clone) so that two Parts never alias the
// same underlying geometry.
type Part struct {
	Name     string
	Handle   Handle
	Metadata Metadata
	History  []TransformRecord
	Position Vec3
}

// NewPart constructs a Part with the position invariant from spec §3: the
// tracked position starts out equal to the backend center of the
// constructed geometry.
func NewPart(name string, handle Handle, meta Metadata, center Vec3) *Part {
	if meta == nil {
		meta = Metadata{}
	}
	return &Part{
		Name:     name,
		Handle:   handle,
		Metadata: meta,
		Position: center,
	}
}

// Clone returns a new Part with the given name, a caller-supplied cloned
// handle, copied metadata, and copied transform history. The caller is
// responsible for producing handle via the backend's clone capability —
// Part itself never duplicates opaque geometry.
func (p *Part) Clone(name string, handle Handle) *Part {
	history := make([]TransformRecord, len(p.History))
	copy(history, p.History)
	return &Part{
		Name:     name,
		Handle:   handle,
		Metadata: p.Metadata.Clone(),
		History:  history,
		Position: p.Position,
	}
}

// RecordTransform appends a TransformRecord and updates the tracked
// position, matching the invariant in spec §8 for translate/rotate.
func (p *Part) RecordTransform(kind string, after Vec3, detail map[string]any) {
	p.History = append(p.History, TransformRecord{
		Kind:           kind,
		PositionBefore: p.Position,
		PositionAfter:  after,
		Detail:         detail,
	})
	p.Position = after
}
