package build

import (
	"github.com/Semantic-Infrastructure-Lab/tiacad/internal/backend"
	builderrors "github.com/Semantic-Infrastructure-Lab/tiacad/internal/errors"
	"github.com/Semantic-Infrastructure-Lab/tiacad/internal/model"
)

// TextOp implements spec §4.5.7's text operation builder: carves (engrave,
// depth < 0) or raises (emboss, depth > 0) text on a chosen face of an
// existing part, unioning or cutting the rendered text from the input. The
// input's appearance metadata propagates.
func TextOp(c *Context, name string, raw model.Spec) ([]string, error) {
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
	text, err := model.RequireString(spec, "text")
	if err != nil {
		return nil, fieldErr(name, err)
	}
	face, err := model.RequireString(spec, "face")
	if err != nil {
		return nil, fieldErr(name, err)
	}
	position := model.OptVec2(spec, "position", [2]float64{})
	size, err := model.RequireFloat(spec, "size")
	if err != nil {
		return nil, fieldErr(name, err)
	}
	if size <= 0 {
		return nil, builderrors.New(builderrors.InvalidSpec, "size").WithNode(nodeID("operation", name))
	}
	depth, err := model.RequireFloat(spec, "depth")
	if err != nil {
		return nil, fieldErr(name, err)
	}
	if depth == 0 {
		return nil, builderrors.New(builderrors.InvalidSpec, "depth").WithNode(nodeID("operation", name))
	}

	features, err := resolveFace(c, p.Handle, face)
	if err != nil {
		return nil, err
	}
	_ = features // face location informs text placement in a real kernel binding

	textHandle, err := c.Backend.CreatePrimitive(backend.PrimitiveParams{
		Kind: "text", Text: text, Size: size, Height: abs(depth),
		Font:     model.OptString(spec, "font", ""),
		FontPath: model.OptString(spec, "font_path", ""),
		Style:    model.TextStyle(model.OptString(spec, "style", string(model.StyleRegular))),
		HAlign:   model.HAlign(model.OptString(spec, "halign", string(model.HAlignLeft))),
		VAlign:   model.VAlign(model.OptString(spec, "valign", string(model.VAlignBottom))),
	})
	if err != nil {
		return nil, builderrors.Wrap(builderrors.BackendError, nodeID("operation", name), err)
	}
	textHandle, err = c.Backend.Translate(textHandle, model.Vec3{X: position[0], Y: position[1]})
	if err != nil {
		return nil, builderrors.Wrap(builderrors.BackendError, nodeID("operation", name), err)
	}

	op := backend.OpUnion
	if depth < 0 {
		op = backend.OpDifference
	}
	h, err := c.Backend.Combine(op, p.Handle, textHandle)
	if err != nil {
		return nil, builderrors.Wrap(builderrors.BackendError, nodeID("operation", name), err)
	}
	p.Handle = h
	c.Parts.Replace(p)
	return []string{inputName}, nil
}

func resolveFace(c *Context, h backend.Handle, simple string) ([]backend.Feature, error) {
	return c.Backend.SelectFaces(h, simple)
}
