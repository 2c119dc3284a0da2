package build

import (
	"github.com/Semantic-Infrastructure-Lab/tiacad/internal/backend"
	builderrors "github.com/Semantic-Infrastructure-Lab/tiacad/internal/errors"
	"github.com/Semantic-Infrastructure-Lab/tiacad/internal/model"
)

// Primitive builds one of {box, cylinder, sphere, cone, torus, text} (spec
// §4.5.1).
func Primitive(c *Context, name string, raw model.Spec) ([]string, error) {
	spec, err := c.ResolveSpec(raw)
	if err != nil {
		return nil, builderrors.Wrap(builderrors.EvalError, nodeID("part", name), err)
	}

	kind, err := model.RequireString(spec, "kind")
	if err != nil {
		return nil, fieldErr(name, err)
	}

	params := backend.PrimitiveParams{Kind: kind}
	switch kind {
	case "box":
		box, err := model.RequireVec3(spec, "size")
		if err != nil {
			return nil, fieldErr(name, err)
		}
		if err := requirePositive(name, "size.x", box.X); err != nil {
			return nil, err
		}
		if err := requirePositive(name, "size.y", box.Y); err != nil {
			return nil, err
		}
		if err := requirePositive(name, "size.z", box.Z); err != nil {
			return nil, err
		}
		params.Box = struct{ X, Y, Z float64 }{box.X, box.Y, box.Z}
	case "cylinder":
		if params.Radius, err = model.RequireFloat(spec, "radius"); err != nil {
			return nil, fieldErr(name, err)
		}
		if params.Height, err = model.RequireFloat(spec, "height"); err != nil {
			return nil, fieldErr(name, err)
		}
		if err := requirePositive(name, "radius", params.Radius); err != nil {
			return nil, err
		}
		if err := requirePositive(name, "height", params.Height); err != nil {
			return nil, err
		}
	case "sphere":
		if params.Radius, err = model.RequireFloat(spec, "radius"); err != nil {
			return nil, fieldErr(name, err)
		}
		if err := requirePositive(name, "radius", params.Radius); err != nil {
			return nil, err
		}
	case "cone":
		if params.Radius, err = model.RequireFloat(spec, "radius"); err != nil {
			return nil, fieldErr(name, err)
		}
		if params.Radius2, err = model.RequireFloat(spec, "radius2"); err != nil {
			return nil, fieldErr(name, err)
		}
		if params.Height, err = model.RequireFloat(spec, "height"); err != nil {
			return nil, fieldErr(name, err)
		}
		if err := requirePositive(name, "height", params.Height); err != nil {
			return nil, err
		}
	case "torus":
		if params.Radius, err = model.RequireFloat(spec, "radius"); err != nil {
			return nil, fieldErr(name, err)
		}
		if params.MinorRadius, err = model.RequireFloat(spec, "minor_radius"); err != nil {
			return nil, fieldErr(name, err)
		}
		if err := requirePositive(name, "radius", params.Radius); err != nil {
			return nil, err
		}
		if err := requirePositive(name, "minor_radius", params.MinorRadius); err != nil {
			return nil, err
		}
	case "text":
		if params.Text, err = model.RequireString(spec, "text"); err != nil {
			return nil, fieldErr(name, err)
		}
		if params.Size, err = model.RequireFloat(spec, "size"); err != nil {
			return nil, fieldErr(name, err)
		}
		if params.Height, err = model.RequireFloat(spec, "height"); err != nil {
			return nil, fieldErr(name, err)
		}
		if err := requirePositive(name, "size", params.Size); err != nil {
			return nil, err
		}
		if err := requirePositive(name, "height", params.Height); err != nil {
			return nil, err
		}
		params.Font = model.OptString(spec, "font", "")
		params.FontPath = model.OptString(spec, "font_path", "")
		params.Style = model.TextStyle(model.OptString(spec, "style", string(model.StyleRegular)))
		params.HAlign = model.HAlign(model.OptString(spec, "halign", string(model.HAlignLeft)))
		params.VAlign = model.VAlign(model.OptString(spec, "valign", string(model.VAlignBottom)))
		params.Spacing = model.OptFloat(spec, "spacing", 1)
		if params.Spacing <= 0 {
			return nil, builderrors.New(builderrors.InvalidSpec, "spacing").WithNode(nodeID("part", name))
		}
	default:
		return nil, builderrors.New(builderrors.InvalidSpec, kind).WithNode(nodeID("part", name)).
			WithCause(unsupportedKindErr(kind))
	}

	h, err := c.Backend.CreatePrimitive(params)
	if err != nil {
		return nil, builderrors.Wrap(builderrors.BackendError, nodeID("part", name), err)
	}
	center, err := c.Backend.Center(h)
	if err != nil {
		return nil, builderrors.Wrap(builderrors.BackendError, nodeID("part", name), err)
	}

	meta := model.Propagate(nil, model.Metadata{"primitive_type": kind}, overridesOf(spec))
	p := model.NewPart(name, h, meta, center)
	if err := c.Parts.Put(p); err != nil {
		return nil, err
	}
	return []string{name}, nil
}

func requirePositive(partName, field string, v float64) error {
	if v <= 0 {
		return builderrors.New(builderrors.InvalidSpec, field).WithNode(nodeID("part", partName))
	}
	return nil
}

func overridesOf(spec model.Spec) model.Metadata {
	meta, _ := spec["metadata"].(map[string]any)
	return model.Metadata(meta)
}

func fieldErr(name string, err error) error {
	return builderrors.New(builderrors.InvalidSpec, err.Error()).WithCause(err)
}

func nodeID(kind, name string) string {
	return kind + ":" + name
}

type unsupportedKind string

func (u unsupportedKind) Error() string { return string(u) }

func unsupportedKindErr(kind string) error { return unsupportedKind("unsupported primitive kind: " + kind) }
