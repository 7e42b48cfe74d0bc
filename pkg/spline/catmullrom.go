// Package spline fits piecewise cubic curves through ordered control points.
package spline

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Faultbox/sweepcad/pkg/geom"
)

// MinControlPoints is the smallest curve CatmullRom accepts.
const MinControlPoints = 4

// Default sampling parameters.
const (
	DefaultSteps   = 10
	DefaultTension = 0.5
)

// ErrInsufficientControlPoints is returned when fewer than MinControlPoints are supplied.
var ErrInsufficientControlPoints = errors.New("insufficient control points")

// Options controls curve sampling.
type Options struct {
	// Steps is the number of samples per segment. Values <= 0 use DefaultSteps.
	Steps int
	// Tension is the basis parameter s. Zero uses DefaultTension, so s = 0
	// (flat tangents) cannot be selected; pass a small positive value to get
	// close to it.
	Tension float64
}

func (o Options) withDefaults() Options {
	if o.Steps <= 0 {
		o.Steps = DefaultSteps
	}
	if o.Tension == 0 {
		o.Tension = DefaultTension
	}
	return o
}

// Basis returns the 4x4 Catmull-Rom basis matrix for tension s.
func Basis(s float64) *mat.Dense {
	return mat.NewDense(4, 4, []float64{
		-s, 2 - s, s - 2, s,
		2 * s, s - 3, 3 - 2*s, -s,
		-s, 0, s, 0,
		0, 1, 0, 0,
	})
}

// CatmullRom samples a Catmull-Rom spline through points with default options.
func CatmullRom(points []geom.Point3) (geom.Curve, error) {
	return Interpolate(points, Options{})
}

// Interpolate samples a Catmull-Rom spline through points.
//
// Every segment between control points i and i+1 is sampled at
// t = 0, 1/steps, ..., (steps-1)/steps, so the result holds
// (len(points)-1)*steps samples and starts exactly at points[0].
// Phantom points are extrapolated before the first and after the last
// control point so the end segments are interpolated too.
// The input slice is never modified.
func Interpolate(points []geom.Point3, opts Options) (geom.Curve, error) {
	if len(points) < MinControlPoints {
		return nil, fmt.Errorf("%w: got %d, need at least %d",
			ErrInsufficientControlPoints, len(points), MinControlPoints)
	}
	opts = opts.withDefaults()

	n := len(points)
	padded := make([]geom.Point3, 0, n+2)
	padded = append(padded, r3.Sub(r3.Scale(2, points[0]), points[1]))
	padded = append(padded, points...)
	padded = append(padded, r3.Sub(r3.Scale(2, points[n-1]), points[n-2]))

	basis := Basis(opts.Tension)
	powers := make([]*mat.Dense, opts.Steps)
	for j := range powers {
		t := float64(j) / float64(opts.Steps)
		powers[j] = mat.NewDense(1, 4, []float64{t * t * t, t * t, t, 1})
	}

	out := make(geom.Curve, 0, (n-1)*opts.Steps)
	for i := 1; i < n; i++ {
		coeff := segmentCoefficients(basis, padded[i-1], padded[i], padded[i+1], padded[i+2])
		for _, tp := range powers {
			out = append(out, evaluate(tp, coeff))
		}
	}
	return out, nil
}

// segmentCoefficients returns M * [p0 p1 p2 p3]^T as a 4x3 matrix.
func segmentCoefficients(basis *mat.Dense, p0, p1, p2, p3 geom.Point3) *mat.Dense {
	g := mat.NewDense(4, 3, []float64{
		p0.X, p0.Y, p0.Z,
		p1.X, p1.Y, p1.Z,
		p2.X, p2.Y, p2.Z,
		p3.X, p3.Y, p3.Z,
	})
	var c mat.Dense
	c.Mul(basis, g)
	return &c
}

func evaluate(tp, coeff *mat.Dense) geom.Point3 {
	var r mat.Dense
	r.Mul(tp, coeff)
	return geom.Point3{X: r.At(0, 0), Y: r.At(0, 1), Z: r.At(0, 2)}
}
