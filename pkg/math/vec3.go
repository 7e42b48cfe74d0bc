// Package math holds the float32 vector and matrix types uploaded to the GPU.
// Geometry is computed in float64 (see pkg/geom); values cross over here.
package math

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Vec3 is a single precision 3D vector.
type Vec3 struct {
	X, Y, Z float32
}

// FromR3 narrows a double precision point to a Vec3.
func FromR3(v r3.Vec) Vec3 {
	return Vec3{float32(v.X), float32(v.Y), float32(v.Z)}
}

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

func (v Vec3) Scale(s float32) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

func (v Vec3) Dot(o Vec3) float32 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

// Cross returns v × o.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

func (v Vec3) Length() float32 {
	return float32(math.Sqrt(float64(v.Dot(v))))
}

// Normalize returns v scaled to unit length. The zero vector stays zero.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return Vec3{}
	}
	return v.Scale(1 / l)
}
