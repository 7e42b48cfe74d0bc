package sweep

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Faultbox/sweepcad/pkg/geom"
	"github.com/Faultbox/sweepcad/pkg/mesh"
	"github.com/Faultbox/sweepcad/pkg/topology"
)

// Axis is the rotational sweep axis.
var Axis = r3.Vec{Z: 1}

// Rings returns the swept vertices: RingCount() consecutive rings of
// len(Profile) points, ring 0 being the profile itself.
func Rings(s Spec) ([]geom.Point3, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return appendRings(nil, s), nil
}

// Generate builds the full mesh (rings and triangle indices) for s.
func Generate(s Spec) (*mesh.Geometry, error) {
	g := &mesh.Geometry{}
	if err := Into(g, s); err != nil {
		return nil, err
	}
	return g, nil
}

// Into rebuilds dst from s, reusing its storage. Prior contents are
// discarded, never appended to. On error dst is left untouched.
func Into(dst *mesh.Geometry, s Spec) error {
	if err := s.Validate(); err != nil {
		return err
	}
	rings := s.RingCount()
	indices, err := topology.Append(dst.Indices[:0], rings, len(s.Profile), s.Closed())
	if err != nil {
		return err
	}

	dst.Reset()
	dst.Vertices = appendRings(dst.Vertices, s)
	dst.Indices = indices
	dst.RingSize = len(s.Profile)
	dst.Closed = s.Closed()
	return nil
}

func appendRings(dst []geom.Point3, s Spec) []geom.Point3 {
	n := len(s.Profile)
	total := s.RingCount() * n
	if cap(dst)-len(dst) < total {
		grown := make([]geom.Point3, len(dst), len(dst)+total)
		copy(grown, dst)
		dst = grown
	}
	dst = append(dst, s.Profile...)

	switch s.Kind {
	case Translational:
		// One new ring per trajectory segment: T points give T-1 segments.
		for i := 0; i+1 < len(s.Trajectory); i++ {
			delta := r3.Sub(s.Trajectory[i+1], s.Trajectory[i])
			prev := dst[len(dst)-n:]
			for j := 0; j < n; j++ {
				dst = append(dst, r3.Add(prev[j], delta))
			}
		}
	case Rotational:
		// Each ring is rotated from ring 0 by the accumulated angle so the
		// increments do not drift.
		step := 2 * math.Pi / float64(s.Spans)
		for r := 1; r < s.Spans; r++ {
			rot := r3.NewRotation(float64(r)*step, Axis)
			for j := 0; j < n; j++ {
				dst = append(dst, rot.Rotate(s.Profile[j]))
			}
		}
	}
	return dst
}
