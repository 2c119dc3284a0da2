package selector

import (
	"strings"

	"github.com/Semantic-Infrastructure-Lab/tiacad/internal/backend"
	"github.com/Semantic-Infrastructure-Lab/tiacad/internal/model"
)

// ResolveSpatialRef computes a SpatialRef for the reference builder (spec
// §4.5.8: "Computes a SpatialRef from { part, face|edge|vertex, at }").
// The orientation is derived from the dominant simple-selector axis
// appearing in sel — the backend capability set (spec §4.2) has no
// "normal of feature" query, so axis-derived orientation is the closest
// available signal; a compound selector's orientation is taken from its
// first simple token.
func (r *PointResolver) ResolveSpatialRef(partName string, kind backend.FeatureKind, sel, at string) (model.SpatialRef, error) {
	pos, err := r.resolveFeatureLocation(partName, kind, sel, at)
	if err != nil {
		return model.SpatialRef{}, err
	}

	refKind := model.RefPoint
	switch kind {
	case backend.FeatureFace:
		refKind = model.RefFace
	case backend.FeatureEdge:
		refKind = model.RefEdge
	}

	orientation, ok := axisOrientation(sel)
	if !ok {
		return model.NewSpatialRef(refKind, pos, nil, nil), nil
	}
	return model.NewSpatialRef(refKind, pos, &orientation, nil), nil
}

func axisOrientation(sel string) (model.Vec3, bool) {
	token := strings.TrimSpace(sel)
	token = strings.TrimPrefix(token, "not ")
	if idx := strings.IndexAny(token, " "); idx >= 0 {
		token = token[:idx]
	}
	if len(token) != 2 {
		return model.Vec3{}, false
	}
	sign := 1.0
	if token[0] == '<' {
		sign = -1.0
	}
	switch token[1] {
	case 'X':
		return model.Vec3{X: sign}, true
	case 'Y':
		return model.Vec3{Y: sign}, true
	case 'Z':
		return model.Vec3{Z: sign}, true
	default:
		return model.Vec3{}, false
	}
}
