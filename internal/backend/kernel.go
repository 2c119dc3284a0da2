package backend

import (
	"fmt"

	builderrors "github.com/Semantic-Infrastructure-Lab/tiacad/internal/errors"
	"github.com/Semantic-Infrastructure-Lab/tiacad/internal/model"
)

// Unavailable is a Backend that fails every call with BackendError. Select
// returns it whenever no Kernel implementation is supplied (cmd/tiacad
// supplies none, so its "kernel" backend is always this stub): spec.md treats the CAD geometry kernel as an external
// collaborator (§1), and OpenCASCADE/CadQuery-style bindings are out of
// scope for this pack (no such library is present in the retrieval pack to
// wire), so the repo ships only the adapter's contract plus this stub —
// SPEC_FULL.md §4.2.
type Unavailable struct {
	Reason string
}

var _ Backend = Unavailable{}

func (u Unavailable) err(op string) error {
	reason := u.Reason
	if reason == "" {
		reason = "no CAD kernel binary detected on PATH"
	}
	return builderrors.New(builderrors.BackendError, op).WithCause(fmt.Errorf("%s", reason))
}

func (u Unavailable) CreatePrimitive(PrimitiveParams) (Handle, error) { return nil, u.err("createPrimitive") }
func (u Unavailable) Combine(CombineOp, Handle, Handle) (Handle, error) { return nil, u.err("combine") }
func (u Unavailable) Translate(Handle, model.Vec3) (Handle, error)    { return nil, u.err("translate") }
func (u Unavailable) Rotate(Handle, model.Vec3, model.Vec3, float64) (Handle, error) {
	return nil, u.err("rotate")
}
func (u Unavailable) Fillet(Handle, []Feature, float64) (Handle, error) { return nil, u.err("fillet") }
func (u Unavailable) Chamfer(Handle, []Feature, float64, float64) (Handle, error) {
	return nil, u.err("chamfer")
}
func (u Unavailable) Extrude(Handle, float64, model.Vec3, float64) (Handle, error) {
	return nil, u.err("extrude")
}
func (u Unavailable) Revolve(Handle, model.Vec3, float64, model.Vec3) (Handle, error) {
	return nil, u.err("revolve")
}
func (u Unavailable) Loft([]Handle, []float64, bool) (Handle, error) { return nil, u.err("loft") }
func (u Unavailable) Sweep(Handle, []model.Vec3) (Handle, error)     { return nil, u.err("sweep") }
func (u Unavailable) Hull([]Handle) (Handle, error)                  { return nil, u.err("hull") }

func (u Unavailable) SelectFaces(Handle, string) ([]Feature, error)    { return nil, u.err("selectFaces") }
func (u Unavailable) SelectEdges(Handle, string) ([]Feature, error)    { return nil, u.err("selectEdges") }
func (u Unavailable) SelectVertices(Handle, string) ([]Feature, error) { return nil, u.err("selectVertices") }

func (u Unavailable) BoundingBox(Handle) (BoundingBox, error) { return BoundingBox{}, u.err("boundingBox") }
func (u Unavailable) Center(Handle) (model.Vec3, error)       { return model.Vec3{}, u.err("center") }
func (u Unavailable) TessellateVertices(Handle) ([]model.Vec3, error) {
	return nil, u.err("tessellateVertices")
}
func (u Unavailable) Clone(Handle) (Handle, error) { return nil, u.err("clone") }

func (u Unavailable) ExportSTL(Handle, string) error  { return u.err("exportSTL") }
func (u Unavailable) ExportSTEP(Handle, string) error { return u.err("exportSTEP") }

// Kernel is satisfied by a real CAD kernel adapter injected by a
// collaborator binary (e.g. an OpenCASCADE or CadQuery bridge process).
// No concrete implementation ships in this repo; Select returns Unavailable
// when none is configured.
type Kernel interface {
	Backend
}

// Select returns kernel if non-nil, otherwise Unavailable with reason.
func Select(kernel Kernel, reason string) Backend {
	if kernel != nil {
		return kernel
	}
	return Unavailable{Reason: reason}
}
