package build

import (
	"github.com/Semantic-Infrastructure-Lab/tiacad/internal/backend"
	builderrors "github.com/Semantic-Infrastructure-Lab/tiacad/internal/errors"
	"github.com/Semantic-Infrastructure-Lab/tiacad/internal/model"
)

// Reference implements spec §4.5.8: computes a SpatialRef from
// { part, face|edge|vertex, at } and stores it in c.References for later
// lookup by point expressions.
func Reference(c *Context, name string, raw model.Spec) error {
	spec, err := c.ResolveSpec(raw)
	if err != nil {
		return builderrors.Wrap(builderrors.EvalError, nodeID("reference", name), err)
	}
	partName, err := model.RequireString(spec, "part")
	if err != nil {
		return fieldErr(name, err)
	}
	if !c.Parts.Exists(partName) {
		return builderrors.New(builderrors.PartNotFound, partName).WithNode(nodeID("reference", name)).
			WithKnownNames(c.Parts.List())
	}

	kind, sel, err := featureFieldOf(spec)
	if err != nil {
		return fieldErr(name, err)
	}
	at := model.OptString(spec, "at", "center")

	ref, err := c.PointResolver().ResolveSpatialRef(partName, kind, sel, at)
	if err != nil {
		return err
	}
	c.References[name] = ref
	return nil
}

func featureFieldOf(spec model.Spec) (backend.FeatureKind, string, error) {
	if v, ok := spec["face"].(string); ok {
		return backend.FeatureFace, v, nil
	}
	if v, ok := spec["edge"].(string); ok {
		return backend.FeatureEdge, v, nil
	}
	if v, ok := spec["vertex"].(string); ok {
		return backend.FeatureVertex, v, nil
	}
	return "", "", &model.FieldError{Field: "face|edge|vertex", Reason: "required field missing"}
}
