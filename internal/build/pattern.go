package build

import (
	builderrors "github.com/Semantic-Infrastructure-Lab/tiacad/internal/errors"
	"github.com/Semantic-Infrastructure-Lab/tiacad/internal/model"
)

// Pattern implements spec §4.5.5's pattern builder (linear/circular/grid):
// each variant emits N named parts "name_0, name_1, …", clones of the input
// with appearance metadata preserved. The caller (orchestrator) must flag
// the producing node is_pattern = true.
func Pattern(c *Context, name string, raw model.Spec) ([]string, error) {
	spec, err := c.ResolveSpec(raw)
	if err != nil {
		return nil, builderrors.Wrap(builderrors.EvalError, nodeID("operation", name), err)
	}
	inputName, err := model.RequireString(spec, "input")
	if err != nil {
		return nil, fieldErr(name, err)
	}
	source, ok := c.Parts.Get(inputName)
	if !ok {
		return nil, builderrors.New(builderrors.PartNotFound, inputName).WithNode(nodeID("operation", name)).
			WithKnownNames(c.Parts.List())
	}
	kind, err := model.RequireString(spec, "pattern")
	if err != nil {
		return nil, fieldErr(name, err)
	}

	switch kind {
	case "linear":
		return patternLinear(c, name, spec, source)
	case "circular":
		return patternCircular(c, name, spec, source)
	case "grid":
		return patternGrid(c, name, spec, source)
	default:
		return nil, builderrors.New(builderrors.InvalidSpec, kind).WithNode(nodeID("operation", name))
	}
}

func cloneAt(c *Context, opName string, index int, offset model.Vec3, source *model.Part, extra model.Metadata) (string, error) {
	h, err := c.Backend.Clone(source.Handle)
	if err != nil {
		return "", builderrors.Wrap(builderrors.BackendError, nodeID("operation", opName), err)
	}
	h, err = c.Backend.Translate(h, offset)
	if err != nil {
		return "", builderrors.Wrap(builderrors.BackendError, nodeID("operation", opName), err)
	}
	childName := indexedName(opName, index)
	meta := model.Propagate(source.Metadata, extra, nil)
	clone := source.Clone(childName, h)
	clone.Metadata = meta
	clone.Position = source.Position.Add(offset)
	if err := c.Parts.Put(clone); err != nil {
		return "", err
	}
	return childName, nil
}

func indexedName(opName string, i int) string {
	return opName + "_" + itoa(i)
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	neg := i < 0
	if neg {
		i = -i
	}
	var digits []byte
	for i > 0 {
		digits = append([]byte{byte('0' + i%10)}, digits...)
		i /= 10
	}
	if neg {
		return "-" + string(digits)
	}
	return string(digits)
}

func patternLinear(c *Context, name string, spec model.Spec, source *model.Part) ([]string, error) {
	axis := axisOrVec3(spec, "axis", model.Vec3{X: 1})
	spacing, err := model.RequireFloat(spec, "spacing")
	if err != nil {
		return nil, fieldErr(name, err)
	}
	count, err := model.RequireFloat(spec, "count")
	if err != nil {
		return nil, fieldErr(name, err)
	}
	n := int(count)
	if n < 1 {
		return nil, builderrors.New(builderrors.InvalidSpec, "count").WithNode(nodeID("operation", name))
	}

	names := make([]string, 0, n)
	for i := 0; i < n; i++ {
		offset := axis.Normalize().Scale(float64(i) * spacing)
		cn, err := cloneAt(c, name, i, offset, source, model.Metadata{"pattern_type": "linear", "pattern_index": i})
		if err != nil {
			return nil, err
		}
		names = append(names, cn)
	}
	return names, nil
}

func patternCircular(c *Context, name string, spec model.Spec, source *model.Part) ([]string, error) {
	axis := axisOrVec3(spec, "axis", model.Vec3{Z: 1})
	center := model.Vec3{}
	if _, ok := spec["center"]; ok {
		var err error
		center, err = model.RequireVec3(spec, "center")
		if err != nil {
			return nil, fieldErr(name, err)
		}
	}
	count, err := model.RequireFloat(spec, "count")
	if err != nil {
		return nil, fieldErr(name, err)
	}
	angle, err := model.RequireFloat(spec, "angle")
	if err != nil {
		return nil, fieldErr(name, err)
	}
	n := int(count)
	if n < 1 {
		return nil, builderrors.New(builderrors.InvalidSpec, "count").WithNode(nodeID("operation", name))
	}

	names := make([]string, 0, n)
	for i := 0; i < n; i++ {
		stepAngle := angle * float64(i) / float64(n)
		rotated := model.RotateRodrigues(source.Position, center, axis.Normalize(), degToRad(stepAngle))
		offset := rotated.Sub(source.Position)
		cn, err := cloneAt(c, name, i, offset, source, model.Metadata{"pattern_type": "circular", "pattern_index": i, "angle": stepAngle})
		if err != nil {
			return nil, err
		}
		names = append(names, cn)
	}
	return names, nil
}

func patternGrid(c *Context, name string, spec model.Spec, source *model.Part) ([]string, error) {
	dir1 := axisOrVec3(spec, "direction1", model.Vec3{X: 1})
	dir2 := axisOrVec3(spec, "direction2", model.Vec3{Y: 1})
	spacing1 := model.OptFloat(spec, "spacing1", 1)
	spacing2 := model.OptFloat(spec, "spacing2", 1)
	count1f, err := model.RequireFloat(spec, "count1")
	if err != nil {
		return nil, fieldErr(name, err)
	}
	count2f, err := model.RequireFloat(spec, "count2")
	if err != nil {
		return nil, fieldErr(name, err)
	}
	c1, c2 := int(count1f), int(count2f)
	if c1 < 1 || c2 < 1 {
		return nil, builderrors.New(builderrors.InvalidSpec, "count1/count2").WithNode(nodeID("operation", name))
	}

	var names []string
	idx := 0
	for row := 0; row < c1; row++ {
		for col := 0; col < c2; col++ {
			offset := dir1.Normalize().Scale(float64(row) * spacing1).Add(dir2.Normalize().Scale(float64(col) * spacing2))
			cn, err := cloneAt(c, name, idx, offset, source, model.Metadata{
				"pattern_type": "grid", "pattern_index": idx, "grid_position": [2]int{row, col},
			})
			if err != nil {
				return nil, err
			}
			names = append(names, cn)
			idx++
		}
	}
	return names, nil
}

func degToRad(deg float64) float64 { return deg * 3.141592653589793 / 180 }
