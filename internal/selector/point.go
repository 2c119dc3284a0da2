package selector

import (
	"fmt"
	"regexp"

	"github.com/Semantic-Infrastructure-Lab/tiacad/internal/backend"
	builderrors "github.com/Semantic-Infrastructure-Lab/tiacad/internal/errors"
	"github.com/Semantic-Infrastructure-Lab/tiacad/internal/model"
)

// PartSource resolves a part name to its backend handle, used by the point
// resolver for the symbolic and geometric-mapping point expression forms
// (spec §4.3.2).
type PartSource interface {
	PartHandle(name string) (backend.Handle, bool)
	PartNames() []string
}

// dottedExpr matches the symbolic dotted form:
// <part>.<face|edge|vertex>('<selector>').<center|min|max|start|end>
var dottedExpr = regexp.MustCompile(`^(\w+)\.(face|edge|vertex)\('([^']*)'\)\.(center|min|max|start|end)$`)

// PointResolver resolves point expressions (spec §4.3.2) against a part
// registry and a backend, plus a table of externally-bound named points.
type PointResolver struct {
	Backend     backend.Backend
	Parts       PartSource
	NamedPoints map[string]model.Vec3
}

// Resolve resolves value — one of the four point-expression shapes spec
// §4.3.2 describes — to a concrete Vec3.
func (r *PointResolver) Resolve(value any) (model.Vec3, error) {
	switch v := value.(type) {
	case []any:
		return r.resolveAbsolute(v)
	case map[string]any:
		return r.resolveMapping(v)
	case string:
		return r.resolveSymbolic(v)
	default:
		return model.Vec3{}, builderrors.New(builderrors.BadExpression, fmt.Sprintf("%v", value)).
			WithCause(fmt.Errorf("unrecognized point expression shape"))
	}
}

func (r *PointResolver) resolveAbsolute(v []any) (model.Vec3, error) {
	if len(v) != 3 {
		return model.Vec3{}, builderrors.New(builderrors.BadExpression, "point").
			WithCause(fmt.Errorf("absolute point requires exactly 3 elements, got %d", len(v)))
	}
	var out [3]float64
	for i, e := range v {
		f, ok := toFloat(e)
		if !ok {
			return model.Vec3{}, builderrors.New(builderrors.BadExpression, "point").
				WithCause(fmt.Errorf("absolute point element %d is not numeric", i))
		}
		out[i] = f
	}
	return model.Vec3{X: out[0], Y: out[1], Z: out[2]}, nil
}

func (r *PointResolver) resolveMapping(v map[string]any) (model.Vec3, error) {
	// Offset form: { from: <point-expr>, offset: [dx,dy,dz] }
	if from, ok := v["from"]; ok {
		base, err := r.Resolve(from)
		if err != nil {
			return model.Vec3{}, err
		}
		offsetRaw, ok := v["offset"]
		if !ok {
			return model.Vec3{}, builderrors.New(builderrors.BadExpression, "offset").
				WithCause(fmt.Errorf("offset point expression requires an 'offset' field"))
		}
		offsetList, ok := offsetRaw.([]any)
		if !ok {
			return model.Vec3{}, builderrors.New(builderrors.BadExpression, "offset").
				WithCause(fmt.Errorf("'offset' must be a 3-element sequence"))
		}
		offset, err := r.resolveAbsolute(offsetList)
		if err != nil {
			return model.Vec3{}, err
		}
		return base.Add(offset), nil
	}

	// Geometric mapping form: { part: <name>, face|edge|vertex: <selector>, at: <location> }
	partName, ok := v["part"].(string)
	if !ok {
		return model.Vec3{}, builderrors.New(builderrors.BadExpression, "point").
			WithCause(fmt.Errorf("mapping point expression requires a 'part' field"))
	}
	at := "center"
	if raw, ok := v["at"].(string); ok {
		at = raw
	}

	for _, kind := range []backend.FeatureKind{backend.FeatureFace, backend.FeatureEdge, backend.FeatureVertex} {
		if sel, ok := v[string(kind)].(string); ok {
			return r.resolveFeatureLocation(partName, kind, sel, at)
		}
	}
	return model.Vec3{}, builderrors.New(builderrors.BadExpression, "point").
		WithCause(fmt.Errorf("mapping point expression requires one of face/edge/vertex"))
}

func (r *PointResolver) resolveSymbolic(s string) (model.Vec3, error) {
	if m := dottedExpr.FindStringSubmatch(s); m != nil {
		part, kindStr, sel, at := m[1], m[2], m[3], m[4]
		return r.resolveFeatureLocation(part, backend.FeatureKind(kindStr), sel, at)
	}
	if v, ok := r.NamedPoints[s]; ok {
		return v, nil
	}
	return model.Vec3{}, builderrors.New(builderrors.BadExpression, s).
		WithCause(fmt.Errorf("unrecognized symbolic point expression"))
}

func (r *PointResolver) resolveFeatureLocation(partName string, kind backend.FeatureKind, sel, at string) (model.Vec3, error) {
	if at != "center" && at != "min" && at != "max" && at != "start" && at != "end" {
		return model.Vec3{}, builderrors.New(builderrors.InvalidLocation, at).
			WithCause(fmt.Errorf("location must be one of center, min, max, start, end"))
	}
	if (at == "start" || at == "end") && kind != backend.FeatureEdge {
		return model.Vec3{}, builderrors.New(builderrors.InvalidLocation, at).
			WithCause(fmt.Errorf("start/end locations are only valid for edges"))
	}

	h, ok := r.Parts.PartHandle(partName)
	if !ok {
		return model.Vec3{}, builderrors.New(builderrors.PartNotFound, partName).
			WithKnownNames(r.Parts.PartNames())
	}

	features, err := Resolve(r.Backend, h, kind, sel)
	if err != nil {
		return model.Vec3{}, err
	}
	feature := features[0]

	switch at {
	case "center":
		if c, err := r.Backend.Center(feature); err == nil {
			return c, nil
		}
		box, err := r.Backend.BoundingBox(feature)
		if err != nil {
			return model.Vec3{}, err
		}
		return box.Center(), nil
	case "min", "start":
		box, err := r.Backend.BoundingBox(feature)
		if err != nil {
			return model.Vec3{}, err
		}
		return box.Min, nil
	case "max", "end":
		box, err := r.Backend.BoundingBox(feature)
		if err != nil {
			return model.Vec3{}, err
		}
		return box.Max, nil
	default:
		return model.Vec3{}, builderrors.New(builderrors.InvalidLocation, at)
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
