package model

import "math"

// RefKind tags what kind of feature a SpatialRef was derived from (spec
// §4.3.3).
type RefKind string

const (
	RefPoint RefKind = "point"
	RefFace  RefKind = "face"
	RefEdge  RefKind = "edge"
	RefAxis  RefKind = "axis"
)

// SpatialRef is a 3D position plus an optional orientation and tangent
// (spec §4.3.3). Orientation and tangent are auto-normalized on
// construction via NewSpatialRef.
type SpatialRef struct {
	Position    Vec3
	Orientation Vec3
	HasOrient   bool
	Tangent     Vec3
	HasTangent  bool
	Kind        RefKind
}

// NewSpatialRef builds a SpatialRef, normalizing orientation/tangent if
// present.
func NewSpatialRef(kind RefKind, pos Vec3, orientation *Vec3, tangent *Vec3) SpatialRef {
	ref := SpatialRef{Position: pos, Kind: kind}
	if orientation != nil {
		ref.Orientation = orientation.Normalize()
		ref.HasOrient = true
	}
	if tangent != nil {
		ref.Tangent = tangent.Normalize()
		ref.HasTangent = true
	}
	return ref
}

// Frame returns the world-aligned frame if no orientation is present,
// otherwise a frame derived from the orientation (+ tangent) via
// FromNormal/FromNormalTangent (spec §4.3.3).
func (r SpatialRef) Frame() Frame {
	if !r.HasOrient {
		return Frame{
			Origin: r.Position,
			X:      Vec3{X: 1},
			Y:      Vec3{Y: 1},
			Z:      Vec3{Z: 1},
		}
	}
	if r.HasTangent {
		return FromNormalTangent(r.Position, r.Orientation, r.Tangent)
	}
	return FromNormal(r.Position, r.Orientation)
}

// Frame is an origin plus three orthonormal axes forming a right-handed
// system (spec §4.3.3).
type Frame struct {
	Origin  Vec3
	X, Y, Z Vec3
}

// FromNormal builds a Frame whose Z axis is n (normalized), picking an
// arbitrary perpendicular for X (spec §4.3.3: "fromNormal(origin, n) picks
// an arbitrary perpendicular").
func FromNormal(origin, n Vec3) Frame {
	z := n.Normalize()
	arbitrary := Vec3{X: 1}
	if math.Abs(z.Dot(arbitrary)) > 0.9 {
		arbitrary = Vec3{Y: 1}
	}
	x := arbitrary.Cross(z).Normalize()
	y := z.Cross(x).Normalize()
	return Frame{Origin: origin, X: x, Y: y, Z: z}
}

// FromNormalTangent builds a Frame whose Z axis is n and whose X axis is t
// orthogonalized against n via Gram-Schmidt (spec §4.3.3:
// "fromNormalTangent(origin, n, t) orthogonalizes t against n").
func FromNormalTangent(origin, n, t Vec3) Frame {
	z := n.Normalize()
	tangent := t.Sub(z.Scale(z.Dot(t)))
	x := tangent.Normalize()
	y := z.Cross(x).Normalize()
	return Frame{Origin: origin, X: x, Y: y, Z: z}
}

// ToWorld transforms a point expressed in this frame's local coordinates
// into world coordinates.
func (f Frame) ToWorld(local Vec3) Vec3 {
	return f.Origin.
		Add(f.X.Scale(local.X)).
		Add(f.Y.Scale(local.Y)).
		Add(f.Z.Scale(local.Z))
}

// ToLocal transforms a world-space point into this frame's local
// coordinates (the inverse of ToWorld; valid since X,Y,Z are orthonormal).
func (f Frame) ToLocal(world Vec3) Vec3 {
	rel := world.Sub(f.Origin)
	return Vec3{X: rel.Dot(f.X), Y: rel.Dot(f.Y), Z: rel.Dot(f.Z)}
}

// Matrix returns the 4x4 homogeneous transform matrix for this frame,
// row-major, mapping local coordinates to world coordinates (spec §4.3.3).
func (f Frame) Matrix() [4][4]float64 {
	return [4][4]float64{
		{f.X.X, f.Y.X, f.Z.X, f.Origin.X},
		{f.X.Y, f.Y.Y, f.Z.Y, f.Origin.Y},
		{f.X.Z, f.Y.Z, f.Z.Z, f.Origin.Z},
		{0, 0, 0, 1},
	}
}
