package build

import (
	builderrors "github.com/Semantic-Infrastructure-Lab/tiacad/internal/errors"
	"github.com/Semantic-Infrastructure-Lab/tiacad/internal/model"
)

// BuildSketch compiles a sketch declaration into a model.Sketch and stores
// it in c.Sketches (spec §4.5.2). Sketches have no backend handle of their
// own, so — unlike the other builders — this does not touch the part
// registry.
func BuildSketch(c *Context, name string, raw model.Spec) error {
	spec, err := c.ResolveSpec(raw)
	if err != nil {
		return builderrors.Wrap(builderrors.EvalError, nodeID("sketch", name), err)
	}

	planeStr, err := model.RequireString(spec, "plane")
	if err != nil {
		return fieldErr(name, err)
	}
	plane := model.Plane(planeStr)
	if !plane.Valid() {
		return builderrors.New(builderrors.InvalidSpec, "plane").WithNode(nodeID("sketch", name))
	}

	origin := model.Vec3{}
	if _, ok := spec["origin"]; ok {
		origin, err = model.RequireVec3(spec, "origin")
		if err != nil {
			return fieldErr(name, err)
		}
	}

	rawShapes := model.RawList(spec, "shapes")
	shapes := make([]model.Shape2D, 0, len(rawShapes))
	for i, rs := range rawShapes {
		sm, ok := rs.(map[string]any)
		if !ok {
			return builderrors.New(builderrors.InvalidSpec, "shapes").WithNode(nodeID("sketch", name))
		}
		shape, err := compileShape(model.Spec(sm))
		if err != nil {
			return builderrors.New(builderrors.InvalidSpec, "shapes").WithNode(nodeID("sketch", name)).
				WithCause(err).WithKnownNames([]string{indexName(i)})
		}
		shapes = append(shapes, shape)
	}

	sk := model.Sketch{Name: name, Plane: plane, Origin: origin, Shapes: shapes}
	if err := sk.Validate(); err != nil {
		return builderrors.New(builderrors.InvalidSpec, name).WithNode(nodeID("sketch", name)).WithCause(err)
	}
	c.Sketches.Put(sk)
	return nil
}

func compileShape(spec model.Spec) (model.Shape2D, error) {
	op := model.ShapeOp(model.OptString(spec, "op", string(model.OpAdd)))
	kindStr, err := model.RequireString(spec, "type")
	if err != nil {
		return model.Shape2D{}, err
	}
	shape := model.Shape2D{Kind: model.ShapeKind(kindStr), Op: op}

	switch shape.Kind {
	case model.ShapeRectangle:
		shape.Width, err = model.RequireFloat(spec, "width")
		if err != nil {
			return model.Shape2D{}, err
		}
		shape.Height, err = model.RequireFloat(spec, "height")
		if err != nil {
			return model.Shape2D{}, err
		}
		shape.Center = model.OptVec2(spec, "center", [2]float64{})
	case model.ShapeCircle:
		shape.Radius, err = model.RequireFloat(spec, "radius")
		if err != nil {
			return model.Shape2D{}, err
		}
		shape.Center = model.OptVec2(spec, "center", [2]float64{})
	case model.ShapePolygon:
		pts := model.RawList(spec, "points")
		shape.Points = make([][2]float64, 0, len(pts))
		for _, p := range pts {
			shape.Points = append(shape.Points, vec2From(p))
		}
		shape.Closed = model.OptFloat(spec, "closed", 1) != 0
	case model.ShapeText:
		shape.Text, err = model.RequireString(spec, "string")
		if err != nil {
			return model.Shape2D{}, err
		}
		shape.Size, err = model.RequireFloat(spec, "size")
		if err != nil {
			return model.Shape2D{}, err
		}
		shape.Font = model.OptString(spec, "font", "")
		shape.FontPath = model.OptString(spec, "font_path", "")
		shape.Style = model.TextStyle(model.OptString(spec, "style", string(model.StyleRegular)))
		shape.HAlign = model.HAlign(model.OptString(spec, "halign", string(model.HAlignLeft)))
		shape.VAlign = model.VAlign(model.OptString(spec, "valign", string(model.VAlignBottom)))
		shape.Spacing = model.OptFloat(spec, "spacing", 1)
		shape.Position = model.OptVec2(spec, "position", [2]float64{})
	}
	if err := shape.Validate(); err != nil {
		return model.Shape2D{}, err
	}
	return shape, nil
}

func vec2From(v any) [2]float64 {
	list, ok := v.([]any)
	if !ok || len(list) != 2 {
		return [2]float64{}
	}
	x, _ := model.AsFloat(list[0], "x")
	y, _ := model.AsFloat(list[1], "y")
	return [2]float64{x, y}
}

func indexName(i int) string {
	const digits = "0123456789"
	if i < 10 {
		return string(digits[i])
	}
	return "shape"
}
