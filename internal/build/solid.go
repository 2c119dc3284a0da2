package build

import (
	"github.com/Semantic-Infrastructure-Lab/tiacad/internal/backend"
	builderrors "github.com/Semantic-Infrastructure-Lab/tiacad/internal/errors"
	"github.com/Semantic-Infrastructure-Lab/tiacad/internal/model"
)

// combineShapes compiles sk's additive/subtractive shapes into
// backend solids, unioning the additive ones and cutting the subtractive
// ones — the shared core of Extrude/Revolve/Sweep, parameterized by a per-shape
// "realize" callback that turns one Shape2D into a backend Handle (spec
// §4.5.3: "add shapes are extruded and unioned; subtract shapes are
// extruded and cut").
func combineShapes(c *Context, sk model.Sketch, realize func(model.Shape2D) (backend.Handle, error)) (backend.Handle, error) {
	var add, sub backend.Handle
	for _, sh := range sk.Shapes {
		h, err := realize(sh)
		if err != nil {
			return nil, err
		}
		switch sh.Op {
		case model.OpAdd:
			add = unionInto(c, add, h)
		case model.OpSubtract:
			sub = unionInto(c, sub, h)
		}
	}
	if add == nil {
		return nil, builderrors.New(builderrors.InvalidSpec, sk.Name).WithCause(errNoAdditiveResult)
	}
	if sub == nil {
		return add, nil
	}
	return c.Backend.Combine(backend.OpDifference, add, sub)
}

// axisOrVec3 reads spec[field] as either an axis name ("X"/"Y"/"Z", spec
// §4.5.3's revolve axis) or an explicit [x, y, z] direction vector,
// defaulting to def when absent.
func axisOrVec3(spec model.Spec, field string, def model.Vec3) model.Vec3 {
	v, ok := spec[field]
	if !ok {
		return def
	}
	if axis, ok := v.(string); ok {
		switch axis {
		case "X":
			return model.Vec3{X: 1}
		case "Y":
			return model.Vec3{Y: 1}
		case "Z":
			return model.Vec3{Z: 1}
		default:
			return def
		}
	}
	vec, err := model.AsVec3(v, field)
	if err != nil {
		return def
	}
	return vec
}

func unionInto(c *Context, acc, h backend.Handle) backend.Handle {
	if acc == nil {
		return h
	}
	out, err := c.Backend.Combine(backend.OpUnion, acc, h)
	if err != nil {
		return acc
	}
	return out
}

var errNoAdditiveResult = unsupportedKind("sketch produced no additive geometry")

func lookupSketch(c *Context, name string) (model.Sketch, error) {
	sk, ok := c.Sketches.Get(name)
	if !ok {
		return model.Sketch{}, builderrors.New(builderrors.InvalidSpec, name).WithCause(unsupportedKind("unknown sketch"))
	}
	return sk, nil
}

// Extrude implements spec §4.5.3's extrude builder, including the text
// special-case: a sketch containing Text2D shapes is never re-extruded —
// each text shape is built directly as a 3D text primitive whose height is
// the extrusion distance. On this path the sketch's non-text shapes are not
// realized, and direction/taper are not applied.
func Extrude(c *Context, name string, raw model.Spec) ([]string, error) {
	spec, err := c.ResolveSpec(raw)
	if err != nil {
		return nil, builderrors.Wrap(builderrors.EvalError, nodeID("operation", name), err)
	}
	sketchName, err := model.RequireString(spec, "input")
	if err != nil {
		return nil, fieldErr(name, err)
	}
	sk, err := lookupSketch(c, sketchName)
	if err != nil {
		return nil, err
	}
	distance, err := model.RequireFloat(spec, "distance")
	if err != nil {
		return nil, fieldErr(name, err)
	}
	direction := axisOrVec3(spec, "direction", model.Vec3{Z: 1})
	taper := model.OptFloat(spec, "taper", 0)

	var h backend.Handle
	if sk.HasText() {
		h, err = extrudeTextSketch(c, sk, distance)
	} else {
		h, err = combineShapes(c, sk, func(sh model.Shape2D) (backend.Handle, error) {
			prof, err := shapeToSketchHandle(c, sk, sh)
			if err != nil {
				return nil, err
			}
			return c.Backend.Extrude(prof, distance, direction, taper)
		})
	}
	if err != nil {
		return nil, builderrors.Wrap(builderrors.BackendError, nodeID("operation", name), err)
	}
	return []string{name}, finishOperation(c, name, h, "extrude", spec)
}

// extrudeTextSketch realizes each text shape of sk directly as 3D text
// geometry of the given height, unioned together, rather than extruding a
// 2D profile; non-text shapes of sk are skipped.
func extrudeTextSketch(c *Context, sk model.Sketch, height float64) (backend.Handle, error) {
	var acc backend.Handle
	for _, sh := range sk.Shapes {
		if sh.Kind != model.ShapeText {
			continue
		}
		h, err := c.Backend.CreatePrimitive(backend.PrimitiveParams{
			Kind: "text", Text: sh.Text, Size: sh.Size, Font: sh.Font, FontPath: sh.FontPath,
			Style: sh.Style, HAlign: sh.HAlign, VAlign: sh.VAlign, Spacing: sh.Spacing,
			Height: height,
		})
		if err != nil {
			return nil, err
		}
		acc = unionInto(c, acc, h)
	}
	return acc, nil
}

// shapeToSketchHandle realizes a single 2D shape as a flat backend
// primitive profile in sk's plane — a thin bridge so combineShapes can
// treat each shape uniformly; the mock backend represents a profile as a
// degenerate (zero-height) box/cylinder-equivalent primitive.
func shapeToSketchHandle(c *Context, sk model.Sketch, sh model.Shape2D) (backend.Handle, error) {
	switch sh.Kind {
	case model.ShapeRectangle:
		return c.Backend.CreatePrimitive(backend.PrimitiveParams{
			Kind: "box", Box: struct{ X, Y, Z float64 }{sh.Width, sh.Height, 0},
		})
	case model.ShapeCircle:
		return c.Backend.CreatePrimitive(backend.PrimitiveParams{Kind: "cylinder", Radius: sh.Radius, Height: 0})
	default:
		return c.Backend.CreatePrimitive(backend.PrimitiveParams{Kind: "box", Box: struct{ X, Y, Z float64 }{1, 1, 0}})
	}
}

// Revolve implements spec §4.5.3's revolve builder.
func Revolve(c *Context, name string, raw model.Spec) ([]string, error) {
	spec, err := c.ResolveSpec(raw)
	if err != nil {
		return nil, builderrors.Wrap(builderrors.EvalError, nodeID("operation", name), err)
	}
	sketchName, err := model.RequireString(spec, "input")
	if err != nil {
		return nil, fieldErr(name, err)
	}
	sk, err := lookupSketch(c, sketchName)
	if err != nil {
		return nil, err
	}
	axis := axisOrVec3(spec, "axis", model.Vec3{Z: 1})
	angle := model.OptFloat(spec, "angle", 360)
	if angle <= 0 || angle > 360 {
		return nil, builderrors.New(builderrors.InvalidSpec, "angle").WithNode(nodeID("operation", name))
	}
	origin := model.Vec3{}
	if _, ok := spec["origin"]; ok {
		origin, err = model.RequireVec3(spec, "origin")
		if err != nil {
			return nil, fieldErr(name, err)
		}
	}

	h, err := combineShapes(c, sk, func(sh model.Shape2D) (backend.Handle, error) {
		prof, err := shapeToSketchHandle(c, sk, sh)
		if err != nil {
			return nil, err
		}
		return c.Backend.Revolve(prof, axis, angle, origin)
	})
	if err != nil {
		return nil, builderrors.Wrap(builderrors.BackendError, nodeID("operation", name), err)
	}
	return []string{name}, finishOperation(c, name, h, "revolve", spec)
}

// Loft implements spec §4.5.3's loft builder: profiles at their declared Z
// offsets (relative to the first), lofted in order; subtractive shapes are
// skipped silently (no error and no log — loft has no union/cut model of
// its own).
func Loft(c *Context, name string, raw model.Spec) ([]string, error) {
	spec, err := c.ResolveSpec(raw)
	if err != nil {
		return nil, builderrors.Wrap(builderrors.EvalError, nodeID("operation", name), err)
	}
	profileNames := model.RawList(spec, "profiles")
	if len(profileNames) < 2 {
		return nil, builderrors.New(builderrors.InvalidSpec, "profiles").WithNode(nodeID("operation", name))
	}
	ruled := model.OptBool(spec, "ruled", false)

	handles := make([]backend.Handle, 0, len(profileNames))
	offsets := make([]float64, 0, len(profileNames))
	var basePlane model.Plane
	var baseZ float64
	for i, pn := range profileNames {
		pname, _ := pn.(string)
		sk, err := lookupSketch(c, pname)
		if err != nil {
			return nil, err
		}
		if i == 0 {
			basePlane = sk.Plane
			baseZ = sk.Origin.Z
		} else if sk.Plane != basePlane {
			return nil, builderrors.New(builderrors.InvalidSpec, pname).WithNode(nodeID("operation", name)).
				WithCause(unsupportedKind("loft profiles must share a base plane"))
		}
		var additive backend.Handle
		for _, sh := range sk.Shapes {
			if sh.Op != model.OpAdd {
				continue
			}
			h, err := shapeToSketchHandle(c, sk, sh)
			if err != nil {
				return nil, err
			}
			additive = unionInto(c, additive, h)
		}
		if additive == nil {
			return nil, builderrors.New(builderrors.InvalidSpec, pname).WithNode(nodeID("operation", name))
		}
		handles = append(handles, additive)
		offsets = append(offsets, sk.Origin.Z-baseZ)
	}

	h, err := c.Backend.Loft(handles, offsets, ruled)
	if err != nil {
		return nil, builderrors.Wrap(builderrors.BackendError, nodeID("operation", name), err)
	}
	return []string{name}, finishOperation(c, name, h, "loft", spec)
}

// Hull implements spec §4.5.3's hull builder: a single input is cloned
// unchanged; otherwise the input handles are passed as they are to
// Backend.Hull, and a failure surfaces as BackendError. The builder does
// not tessellate the inputs and does not detect coplanar or degenerate
// input itself.
func Hull(c *Context, name string, raw model.Spec) ([]string, error) {
	spec, err := c.ResolveSpec(raw)
	if err != nil {
		return nil, builderrors.Wrap(builderrors.EvalError, nodeID("operation", name), err)
	}
	inputs := model.RawList(spec, "inputs")
	if len(inputs) == 0 {
		return nil, builderrors.New(builderrors.InvalidSpec, "inputs").WithNode(nodeID("operation", name))
	}
	handles := make([]backend.Handle, 0, len(inputs))
	for _, in := range inputs {
		pname, _ := in.(string)
		p, ok := c.Parts.Get(pname)
		if !ok {
			return nil, builderrors.New(builderrors.PartNotFound, pname).WithNode(nodeID("operation", name)).
				WithKnownNames(c.Parts.List())
		}
		handles = append(handles, p.Handle)
	}

	var h backend.Handle
	if len(handles) == 1 {
		h, err = c.Backend.Clone(handles[0])
	} else {
		h, err = c.Backend.Hull(handles)
	}
	if err != nil {
		return nil, builderrors.Wrap(builderrors.BackendError, nodeID("operation", name), err)
	}
	return []string{name}, finishOperation(c, name, h, "hull", spec)
}

// Sweep is a SPEC_FULL.md §4.5 supplement: spec.md §4.2 lists sweep as a
// backend capability but the builder table (§4.5.3) never wires it to a
// declarable operation. This calls Backend.Sweep directly with no
// validation beyond field presence, surfacing BackendError on a degenerate
// path exactly as spec.md §9's open question anticipates.
func Sweep(c *Context, name string, raw model.Spec) ([]string, error) {
	spec, err := c.ResolveSpec(raw)
	if err != nil {
		return nil, builderrors.Wrap(builderrors.EvalError, nodeID("operation", name), err)
	}
	profileName, err := model.RequireString(spec, "profile")
	if err != nil {
		return nil, fieldErr(name, err)
	}
	sk, err := lookupSketch(c, profileName)
	if err != nil {
		return nil, err
	}
	rawPath := model.RawList(spec, "path")
	if len(rawPath) == 0 {
		return nil, builderrors.New(builderrors.InvalidSpec, "path").WithNode(nodeID("operation", name))
	}
	resolver := c.PointResolver()
	path := make([]model.Vec3, 0, len(rawPath))
	for _, pe := range rawPath {
		v, err := resolver.Resolve(pe)
		if err != nil {
			return nil, err
		}
		path = append(path, v)
	}

	h, err := combineShapes(c, sk, func(sh model.Shape2D) (backend.Handle, error) {
		prof, err := shapeToSketchHandle(c, sk, sh)
		if err != nil {
			return nil, err
		}
		return c.Backend.Sweep(prof, path)
	})
	if err != nil {
		return nil, builderrors.Wrap(builderrors.BackendError, nodeID("operation", name), err)
	}
	return []string{name}, finishOperation(c, name, h, "sweep", spec)
}

// finishOperation registers h as a new Part named name with metadata
// propagated from the operation spec's own fields (operations have no
// single "source" part the way transform/pattern do, so only
// operation-specific metadata plus explicit overrides apply).
func finishOperation(c *Context, name string, h backend.Handle, opType string, spec model.Spec) error {
	center, err := c.Backend.Center(h)
	if err != nil {
		return builderrors.Wrap(builderrors.BackendError, nodeID("operation", name), err)
	}
	meta := model.Propagate(nil, model.Metadata{"operation_type": opType}, overridesOf(spec))
	return c.Parts.Put(model.NewPart(name, h, meta, center))
}
