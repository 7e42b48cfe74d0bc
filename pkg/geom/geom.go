// Package geom provides the point and curve types shared by the sweep pipeline.
package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Point3 is a 3D coordinate.
type Point3 = r3.Vec

// Curve is an ordered sequence of points. Order defines the curve direction.
type Curve []Point3

// Clone returns a copy of the curve that shares no storage with c.
func (c Curve) Clone() Curve {
	if c == nil {
		return nil
	}
	out := make(Curve, len(c))
	copy(out, c)
	return out
}

// Translate returns a copy of c with every point moved by d.
func (c Curve) Translate(d Point3) Curve {
	out := make(Curve, len(c))
	for i, p := range c {
		out[i] = r3.Add(p, d)
	}
	return out
}

// Bounds returns the axis-aligned bounding box of points.
// An empty slice yields a zero box.
func Bounds(points []Point3) r3.Box {
	if len(points) == 0 {
		return r3.Box{}
	}
	b := r3.Box{
		Min: Point3{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)},
		Max: Point3{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)},
	}
	for _, p := range points {
		b.Min.X = math.Min(b.Min.X, p.X)
		b.Min.Y = math.Min(b.Min.Y, p.Y)
		b.Min.Z = math.Min(b.Min.Z, p.Z)
		b.Max.X = math.Max(b.Max.X, p.X)
		b.Max.Y = math.Max(b.Max.Y, p.Y)
		b.Max.Z = math.Max(b.Max.Z, p.Z)
	}
	return b
}

// Distance returns the euclidean distance between a and b.
func Distance(a, b Point3) float64 {
	return r3.Norm(r3.Sub(a, b))
}

// ApproxEqual reports whether a and b are within tol of each other on every axis.
func ApproxEqual(a, b Point3, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol &&
		math.Abs(a.Y-b.Y) <= tol &&
		math.Abs(a.Z-b.Z) <= tol
}
