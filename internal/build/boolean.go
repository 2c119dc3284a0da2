package build

import (
	"strings"

	"github.com/Semantic-Infrastructure-Lab/tiacad/internal/backend"
	builderrors "github.com/Semantic-Infrastructure-Lab/tiacad/internal/errors"
	"github.com/Semantic-Infrastructure-Lab/tiacad/internal/model"
)

// Union implements spec §4.5.4's union variant: ≥ 2 expanded inputs,
// folded left-to-right.
func Union(c *Context, name string, raw model.Spec) ([]string, error) {
	spec, names, err := resolveBooleanInputs(c, name, raw, "inputs", 2)
	if err != nil {
		return nil, err
	}
	h, first, err := foldCombine(c, name, backend.OpUnion, names)
	if err != nil {
		return nil, err
	}
	return []string{name}, writeBooleanResult(c, name, h, "union", spec, first)
}

// Intersection implements spec §4.5.4's intersection variant.
func Intersection(c *Context, name string, raw model.Spec) ([]string, error) {
	spec, names, err := resolveBooleanInputs(c, name, raw, "inputs", 2)
	if err != nil {
		return nil, err
	}
	h, first, err := foldCombine(c, name, backend.OpIntersection, names)
	if err != nil {
		return nil, err
	}
	return []string{name}, writeBooleanResult(c, name, h, "intersection", spec, first)
}

// Difference implements spec §4.5.4's difference variant: base minus each
// of subtract, sequentially.
func Difference(c *Context, name string, raw model.Spec) ([]string, error) {
	spec, err := c.ResolveSpec(raw)
	if err != nil {
		return nil, builderrors.Wrap(builderrors.EvalError, nodeID("operation", name), err)
	}
	baseName, err := model.RequireString(spec, "base")
	if err != nil {
		return nil, fieldErr(name, err)
	}
	base, ok := c.Parts.Get(baseName)
	if !ok {
		return nil, builderrors.New(builderrors.PartNotFound, baseName).WithNode(nodeID("operation", name)).
			WithKnownNames(c.Parts.List())
	}
	rawSubtract := model.RawList(spec, "subtract")
	subtractNames, err := ExpandPartRefs(c.Parts, rawSubtract)
	if err != nil {
		return nil, builderrors.Wrap(builderrors.PatternExpansionEmpty, nodeID("operation", name), err)
	}
	if len(subtractNames) == 0 {
		return nil, builderrors.New(builderrors.InvalidSpec, "subtract").WithNode(nodeID("operation", name))
	}

	h := base.Handle
	for _, sn := range subtractNames {
		tool, ok := c.Parts.Get(sn)
		if !ok {
			return nil, builderrors.New(builderrors.PartNotFound, sn).WithNode(nodeID("operation", name)).
				WithKnownNames(c.Parts.List())
		}
		h, err = c.Backend.Combine(backend.OpDifference, h, tool.Handle)
		if err != nil {
			return nil, builderrors.Wrap(builderrors.BackendError, nodeID("operation", name), err)
		}
	}
	return []string{name}, writeBooleanResult(c, name, h, "difference", spec, base)
}

func resolveBooleanInputs(c *Context, name string, raw model.Spec, field string, min int) (model.Spec, []string, error) {
	spec, err := c.ResolveSpec(raw)
	if err != nil {
		return nil, nil, builderrors.Wrap(builderrors.EvalError, nodeID("operation", name), err)
	}
	rawInputs := model.RawList(spec, field)
	names, err := ExpandPartRefs(c.Parts, rawInputs)
	if err != nil {
		return nil, nil, builderrors.Wrap(builderrors.PatternExpansionEmpty, nodeID("operation", name), err)
	}
	if len(names) < min {
		return nil, nil, builderrors.New(builderrors.InvalidSpec, field).WithNode(nodeID("operation", name))
	}
	return spec, names, nil
}

func foldCombine(c *Context, name string, op backend.CombineOp, names []string) (backend.Handle, *model.Part, error) {
	first, ok := c.Parts.Get(names[0])
	if !ok {
		return nil, nil, builderrors.New(builderrors.PartNotFound, names[0]).WithNode(nodeID("operation", name)).
			WithKnownNames(c.Parts.List())
	}
	h := first.Handle
	for _, n := range names[1:] {
		p, ok := c.Parts.Get(n)
		if !ok {
			return nil, nil, builderrors.New(builderrors.PartNotFound, n).WithNode(nodeID("operation", name)).
				WithKnownNames(c.Parts.List())
		}
		next, err := c.Backend.Combine(op, h, p.Handle)
		if err != nil {
			return nil, nil, builderrors.Wrap(builderrors.BackendError, nodeID("operation", name), err)
		}
		h = next
	}
	return h, first, nil
}

// writeBooleanResult registers h as a new Part, propagating appearance
// metadata from source (spec §4.7) unless the boolean's first/base
// reference was itself a wildcard, in which case appearance defaults
// (spec §4.5.4).
func writeBooleanResult(c *Context, name string, h backend.Handle, opType string, spec model.Spec, source *model.Part) error {
	center, err := c.Backend.Center(h)
	if err != nil {
		return builderrors.Wrap(builderrors.BackendError, nodeID("operation", name), err)
	}
	var propagated model.Metadata
	if source != nil {
		propagated = source.Metadata
	}
	if inputs := model.RawList(spec, "inputs"); len(inputs) > 0 {
		switch first := inputs[0].(type) {
		case string:
			if strings.HasPrefix(first, "*") || strings.HasSuffix(first, "*") {
				propagated = nil
			}
		case map[string]any:
			rng, _ := first["range"].(string)
			if _, ok := first["pattern"]; ok || strings.HasSuffix(rng, "[*]") {
				propagated = nil
			}
		}
	}
	meta := model.Propagate(propagated, model.Metadata{"operation_type": opType, "boolean_op": opType}, overridesOf(spec))
	return c.Parts.Put(model.NewPart(name, h, meta, center))
}
