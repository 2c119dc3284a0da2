// Package model holds the tagged-variant data types shared by every
// component of the build engine: parameters, sketches, parts, operation
// specs, and geometric references (spec §3).
package model

import "math"

// Vec3 is a position or direction in 3D space. All three components must be
// finite (spec §3 invariants); callers that construct a Vec3 from untrusted
// input should call Finite.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v scaled by s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Dot returns the dot product of v and o.
func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Cross returns the cross product v x o.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

// Length returns the Euclidean norm of v.
func (v Vec3) Length() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalize returns v scaled to unit length. Returns the zero vector if v is
// (near) zero length rather than dividing by zero.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l < 1e-12 {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

// Finite reports whether all three components are finite, per the position
// invariant in spec §3 ("positions are tuples of three finite doubles").
func (v Vec3) Finite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) &&
		!math.IsNaN(v.Y) && !math.IsInf(v.Y, 0) &&
		!math.IsNaN(v.Z) && !math.IsInf(v.Z, 0)
}

// Equal reports whether v and o match within eps per component.
func (v Vec3) Equal(o Vec3, eps float64) bool {
	return math.Abs(v.X-o.X) <= eps && math.Abs(v.Y-o.Y) <= eps && math.Abs(v.Z-o.Z) <= eps
}

// RotateRodrigues rotates point p by angle (radians) about the axis through
// origin with unit direction axis, using Rodrigues' rotation formula
// (spec §4.5.5, §8 testable property for rotate transforms).
func RotateRodrigues(p, origin, axis Vec3, angle float64) Vec3 {
	k := axis.Normalize()
	v := p.Sub(origin)
	cosT, sinT := math.Cos(angle), math.Sin(angle)
	rotated := v.Scale(cosT).
		Add(k.Cross(v).Scale(sinT)).
		Add(k.Scale(k.Dot(v) * (1 - cosT)))
	return origin.Add(rotated)
}
