// Package backend defines the geometry kernel capability interface (C2,
// spec.md §4.2): the core depends on this contract, never on a concrete
// kernel, grounded on the teacher's capability-interface idiom
// (internal/output.ResourceInfo decouples output from core the same way).
package backend

import "github.com/Semantic-Infrastructure-Lab/tiacad/internal/model"

// Handle is an opaque, ownership-tracked reference to backend-resident
// geometry (spec.md §4.2: "Backend handles are opaque").
type Handle = model.Handle

// FeatureKind is the kind of feature a selector resolves to.
type FeatureKind string

const (
	FeatureFace   FeatureKind = "face"
	FeatureEdge   FeatureKind = "edge"
	FeatureVertex FeatureKind = "vertex"
)

// Feature is an opaque handle to a face, edge, or vertex of a solid,
// returned by the backend's selector methods and passed back in for
// fillet/chamfer/tessellation (spec.md §4.3.1).
type Feature struct {
	id   string
	kind FeatureKind
}

func (f Feature) HandleID() string  { return f.id }
func (f Feature) Kind() FeatureKind { return f.kind }

// BoundingBox is an axis-aligned bounding box.
type BoundingBox struct {
	Min model.Vec3
	Max model.Vec3
}

func (b BoundingBox) Center() model.Vec3 {
	return model.Vec3{
		X: (b.Min.X + b.Max.X) / 2,
		Y: (b.Min.Y + b.Max.Y) / 2,
		Z: (b.Min.Z + b.Max.Z) / 2,
	}
}

// PrimitiveParams carries the variant-specific dimensions for
// CreatePrimitive, matching spec.md §4.5.1's primitive field set.
type PrimitiveParams struct {
	Kind   string // box, cylinder, sphere, cone, torus, text
	Box    struct{ X, Y, Z float64 }
	Radius float64
	Height float64
	// Cone-specific: two radii.
	Radius2 float64
	// Torus-specific.
	MinorRadius float64
	// Text-specific.
	Text       string
	Size       float64
	Font       string
	FontPath   string
	Style      model.TextStyle
	HAlign     model.HAlign
	VAlign     model.VAlign
	Spacing    float64
}

// CombineOp names a boolean operation (spec.md §4.2/§4.5.4).
type CombineOp string

const (
	OpUnion        CombineOp = "union"
	OpDifference   CombineOp = "difference"
	OpIntersection CombineOp = "intersection"
)

// Backend is the capability set spec.md §4.2 mandates: "createPrimitive,
// combine(union/difference/intersection), transform(translate/rotate),
// fillet(edges,radius), chamfer(edges,length,length2), extrude, revolve,
// loft, sweep, selectFaces, selectEdges, selectVertices, boundingBox,
// center, tessellateVertices, exportSTL, exportSTEP". The core never
// type-switches on which backend is present (spec.md §4.2).
type Backend interface {
	CreatePrimitive(params PrimitiveParams) (Handle, error)
	Combine(op CombineOp, base, tool Handle) (Handle, error)
	Translate(h Handle, offset model.Vec3) (Handle, error)
	Rotate(h Handle, axisStart, axisEnd model.Vec3, angleDegrees float64) (Handle, error)
	Fillet(h Handle, edges []Feature, radius float64) (Handle, error)
	Chamfer(h Handle, edges []Feature, length, length2 float64) (Handle, error)
	Extrude(sketch Handle, distance float64, direction model.Vec3, taper float64) (Handle, error)
	Revolve(sketch Handle, axis model.Vec3, angleDegrees float64, origin model.Vec3) (Handle, error)
	Loft(profiles []Handle, zOffsets []float64, ruled bool) (Handle, error)
	Sweep(profile Handle, path []model.Vec3) (Handle, error)
	Hull(inputs []Handle) (Handle, error)

	SelectFaces(h Handle, simple string) ([]Feature, error)
	SelectEdges(h Handle, simple string) ([]Feature, error)
	SelectVertices(h Handle, simple string) ([]Feature, error)

	BoundingBox(h Handle) (BoundingBox, error)
	Center(h Handle) (model.Vec3, error)
	TessellateVertices(h Handle) ([]model.Vec3, error)

	// Clone duplicates h via the backend so Parts never alias handles
	// (spec.md §4.2: "clones duplicate via the backend").
	Clone(h Handle) (Handle, error)

	ExportSTL(h Handle, path string) error
	ExportSTEP(h Handle, path string) error
}
