package build

import (
	"math"

	builderrors "github.com/Semantic-Infrastructure-Lab/tiacad/internal/errors"
	"github.com/Semantic-Infrastructure-Lab/tiacad/internal/model"
)

// Transform implements spec §4.5.5's transform builder: an ordered sequence
// of translate/rotate steps applied in place to an existing part, each
// recorded in its transform history.
func Transform(c *Context, name string, raw model.Spec) ([]string, error) {
	spec, err := c.ResolveSpec(raw)
	if err != nil {
		return nil, builderrors.Wrap(builderrors.EvalError, nodeID("operation", name), err)
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

	steps := model.RawList(spec, "steps")
	for _, s := range steps {
		step, ok := s.(map[string]any)
		if !ok {
			return nil, builderrors.New(builderrors.InvalidSpec, "steps").WithNode(nodeID("operation", name))
		}
		if err := applyTransformStep(c, name, p, model.Spec(step)); err != nil {
			return nil, err
		}
	}
	return []string{inputName}, nil
}

func applyTransformStep(c *Context, opName string, p *model.Part, step model.Spec) error {
	kind, err := model.RequireString(step, "type")
	if err != nil {
		return fieldErr(opName, err)
	}
	switch kind {
	case "translate":
		return applyTranslate(c, opName, p, step)
	case "rotate":
		return applyRotate(c, opName, p, step)
	default:
		return builderrors.New(builderrors.InvalidSpec, kind).WithNode(nodeID("operation", opName))
	}
}

func applyTranslate(c *Context, opName string, p *model.Part, step model.Spec) error {
	offset, err := model.RequireVec3(step, "offset")
	if err != nil {
		return fieldErr(opName, err)
	}
	h, err := c.Backend.Translate(p.Handle, offset)
	if err != nil {
		return builderrors.Wrap(builderrors.BackendError, nodeID("operation", opName), err)
	}
	after := p.Position.Add(offset)
	p.Handle = h
	p.RecordTransform("translate", after, map[string]any{"offset": []any{offset.X, offset.Y, offset.Z}})
	return nil
}

// applyRotate implements the REQUIRED-explicit-origin rule from spec
// §4.5.5: origin must be "current", "initial", or an absolute triple —
// implicit origins are rejected.
func applyRotate(c *Context, opName string, p *model.Part, step model.Spec) error {
	angleDeg, err := model.RequireFloat(step, "angle")
	if err != nil {
		return fieldErr(opName, err)
	}
	axis := axisOrVec3(step, "axis", model.Vec3{})
	if axis == (model.Vec3{}) {
		return builderrors.New(builderrors.InvalidSpec, "axis").WithNode(nodeID("operation", opName))
	}

	rawOrigin, ok := step["origin"]
	if !ok {
		return builderrors.New(builderrors.InvalidSpec, "origin").WithNode(nodeID("operation", opName)).
			WithCause(errImplicitOrigin)
	}
	var origin model.Vec3
	switch o := rawOrigin.(type) {
	case string:
		switch o {
		case "current":
			origin = p.Position
		case "initial":
			if len(p.History) > 0 {
				origin = p.History[0].PositionBefore
			} else {
				origin = p.Position
			}
		default:
			return builderrors.New(builderrors.InvalidSpec, "origin").WithNode(nodeID("operation", opName))
		}
	default:
		origin, err = model.AsVec3(rawOrigin, "origin")
		if err != nil {
			return fieldErr(opName, err)
		}
	}

	axisUnit := axis.Normalize()
	axisEnd := origin.Add(axisUnit)
	h, err := c.Backend.Rotate(p.Handle, origin, axisEnd, angleDeg)
	if err != nil {
		return builderrors.Wrap(builderrors.BackendError, nodeID("operation", opName), err)
	}
	after := model.RotateRodrigues(p.Position, origin, axisUnit, angleDeg*math.Pi/180)
	p.Handle = h
	p.RecordTransform("rotate", after, map[string]any{"angle": angleDeg})
	return nil
}

var errImplicitOrigin = unsupportedKind("rotate requires an explicit origin (current, initial, or an absolute triple)")
