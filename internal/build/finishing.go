package build

import (
	"github.com/Semantic-Infrastructure-Lab/tiacad/internal/backend"
	builderrors "github.com/Semantic-Infrastructure-Lab/tiacad/internal/errors"
	"github.com/Semantic-Infrastructure-Lab/tiacad/internal/model"
	"github.com/Semantic-Infrastructure-Lab/tiacad/internal/selector"
)

// Finishing implements spec §4.5.6's finishing builder (fillet/chamfer):
// mutates the input part in place, no new registry name is created.
func Finishing(c *Context, name string, raw model.Spec) ([]string, error) {
	spec, err := c.ResolveSpec(raw)
	if err != nil {
		return nil, builderrors.Wrap(builderrors.EvalError, nodeID("operation", name), err)
	}
	kind, err := model.RequireStringAny(spec, "op", "finish")
	if err != nil {
		return nil, fieldErr(name, err)
	}
	inputName, err := model.RequireString(spec, "input")
	if err != nil {
		return nil, fieldErr(name, err)
	}
	p, ok := c.Parts.Get(inputName)
	if !ok {
		return nil, builderrors.New(builderrors.PartNotFound, inputName).WithNode(nodeID("operation", name)).
			WithKnownNames(c.Parts.List())
	}

	edges, err := resolveEdgeSelection(c, p.Handle, spec["edges"])
	if err != nil {
		return nil, err
	}

	var h backend.Handle
	record := map[string]any{"type": kind}
	switch kind {
	case "fillet":
		radius, err := model.RequireFloat(spec, "radius")
		if err != nil {
			return nil, fieldErr(name, err)
		}
		if radius <= 0 {
			return nil, builderrors.New(builderrors.InvalidSpec, "radius").WithNode(nodeID("operation", name))
		}
		h, err = c.Backend.Fillet(p.Handle, edges, radius)
		if err != nil {
			return nil, builderrors.Wrap(builderrors.BackendError, nodeID("operation", name), err)
		}
		record["radius"] = radius
	case "chamfer":
		length, err := model.RequireFloat(spec, "length")
		if err != nil {
			return nil, fieldErr(name, err)
		}
		if length <= 0 {
			return nil, builderrors.New(builderrors.InvalidSpec, "length").WithNode(nodeID("operation", name))
		}
		length2 := model.OptFloat(spec, "length2", length)
		h, err = c.Backend.Chamfer(p.Handle, edges, length, length2)
		if err != nil {
			return nil, builderrors.Wrap(builderrors.BackendError, nodeID("operation", name), err)
		}
		record["length"], record["length2"] = length, length2
	default:
		return nil, builderrors.New(builderrors.InvalidSpec, kind).WithNode(nodeID("operation", name))
	}

	p.Handle = h
	p.Metadata.AppendFinishingOp(record)
	c.Parts.Replace(p)
	return []string{inputName}, nil
}

// resolveEdgeSelection implements spec §4.5.6's edges field: the literal
// "all", or a mapping selecting one of {direction, parallel_to,
// perpendicular_to, selector}. direction/parallel_to map to the "|" (axis-
// parallel) simple-selector op; perpendicular_to maps to "#"; a unit-vector
// triple is reduced to its dominant axis — the backend's selector grammar
// (spec §4.3.1) only expresses axis-aligned tokens, so an off-axis vector
// degrades to its nearest axis.
func resolveEdgeSelection(c *Context, h backend.Handle, raw any) ([]backend.Feature, error) {
	if raw == "all" {
		return allEdges(c, h)
	}
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, builderrors.New(builderrors.InvalidSpec, "edges").WithCause(errBadEdgeSelection)
	}
	if sel, ok := m["selector"].(string); ok {
		return selector.Resolve(c.Backend, h, backend.FeatureEdge, sel)
	}
	for field, op := range map[string]string{"parallel_to": "|", "direction": "|", "perpendicular_to": "#"} {
		if v, ok := m[field]; ok {
			axis, err := axisToken(v)
			if err != nil {
				return nil, err
			}
			return selector.Resolve(c.Backend, h, backend.FeatureEdge, op+axis)
		}
	}
	return nil, builderrors.New(builderrors.InvalidSpec, "edges").WithCause(errBadEdgeSelection)
}

var errBadEdgeSelection = unsupportedKind("edges must be \"all\" or {direction|parallel_to|perpendicular_to|selector}")

func axisToken(v any) (string, error) {
	if s, ok := v.(string); ok && (s == "X" || s == "Y" || s == "Z") {
		return s, nil
	}
	vec, err := model.AsVec3(v, "edges")
	if err != nil {
		return "", builderrors.New(builderrors.InvalidSpec, "edges").WithCause(err)
	}
	if l := vec.Length(); l < 0.999 || l > 1.001 {
		return "", builderrors.New(builderrors.InvalidSpec, "edges").WithCause(unsupportedKind("direction/parallel_to/perpendicular_to vectors must be unit length"))
	}
	ax, ay, az := abs(vec.X), abs(vec.Y), abs(vec.Z)
	switch {
	case ax >= ay && ax >= az:
		return "X", nil
	case ay >= ax && ay >= az:
		return "Y", nil
	default:
		return "Z", nil
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func allEdges(c *Context, h backend.Handle) ([]backend.Feature, error) {
	seen := map[string]backend.Feature{}
	for _, axis := range []string{"X", "Y", "Z"} {
		for _, op := range []string{">", "<", "|", "#"} {
			fs, err := c.Backend.SelectEdges(h, op+axis)
			if err != nil {
				continue
			}
			for _, f := range fs {
				seen[f.HandleID()] = f
			}
		}
	}
	out := make([]backend.Feature, 0, len(seen))
	for _, f := range seen {
		out = append(out, f)
	}
	return out, nil
}
