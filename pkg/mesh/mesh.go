// Package mesh holds swept surface geometry in a form ready for rendering
// and persistence collaborators.
package mesh

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Faultbox/sweepcad/pkg/geom"
)

// Geometry validation errors.
var (
	ErrRaggedRings  = errors.New("vertex count is not a multiple of ring size")
	ErrIndexRange   = errors.New("index out of range")
	ErrPartialTriad = errors.New("index count is not a multiple of 3")
)

// Geometry is a swept surface: vertices laid out as consecutive rings of
// RingSize points, plus a flat triangle index list into Vertices.
type Geometry struct {
	Vertices []geom.Point3
	Indices  []uint32
	RingSize int  // points per ring, equal to the profile point count
	Closed   bool // last ring is stitched back to ring 0
}

// Reset drops all vertices and indices while keeping allocated storage.
func (g *Geometry) Reset() {
	g.Vertices = g.Vertices[:0]
	g.Indices = g.Indices[:0]
	g.RingSize = 0
	g.Closed = false
}

// VertexCount returns the number of vertices.
func (g *Geometry) VertexCount() int {
	return len(g.Vertices)
}

// TriangleCount returns the number of triangles.
func (g *Geometry) TriangleCount() int {
	return len(g.Indices) / 3
}

// IndexCount returns the length of the index list.
func (g *Geometry) IndexCount() int {
	return len(g.Indices)
}

// RingCount returns the number of rings.
func (g *Geometry) RingCount() int {
	if g.RingSize == 0 {
		return 0
	}
	return len(g.Vertices) / g.RingSize
}

// IsEmpty returns true if the geometry has no vertices.
func (g *Geometry) IsEmpty() bool {
	return len(g.Vertices) == 0
}

// Ring returns the points of ring i. The slice aliases Vertices.
func (g *Geometry) Ring(i int) []geom.Point3 {
	if i < 0 || i >= g.RingCount() {
		return nil
	}
	return g.Vertices[i*g.RingSize : (i+1)*g.RingSize]
}

// Bounds returns the axis-aligned bounding box of all vertices.
func (g *Geometry) Bounds() r3.Box {
	return geom.Bounds(g.Vertices)
}

// Flatten returns vertex positions as packed float32 xyz triples,
// the layout expected by a vertex buffer.
func (g *Geometry) Flatten() []float32 {
	out := make([]float32, 0, len(g.Vertices)*3)
	for _, v := range g.Vertices {
		out = append(out, float32(v.X), float32(v.Y), float32(v.Z))
	}
	return out
}

// Triangles resolves the index list into corner positions.
func (g *Geometry) Triangles() [][3]geom.Point3 {
	out := make([][3]geom.Point3, 0, g.TriangleCount())
	for i := 0; i+2 < len(g.Indices); i += 3 {
		out = append(out, [3]geom.Point3{
			g.Vertices[g.Indices[i]],
			g.Vertices[g.Indices[i+1]],
			g.Vertices[g.Indices[i+2]],
		})
	}
	return out
}

// Validate checks the ring layout and that every index refers to an
// existing vertex.
func (g *Geometry) Validate() error {
	if g.RingSize > 0 && len(g.Vertices)%g.RingSize != 0 {
		return fmt.Errorf("%w: %d vertices, ring size %d", ErrRaggedRings, len(g.Vertices), g.RingSize)
	}
	if len(g.Indices)%3 != 0 {
		return fmt.Errorf("%w: %d indices", ErrPartialTriad, len(g.Indices))
	}
	for i, idx := range g.Indices {
		if int(idx) >= len(g.Vertices) {
			return fmt.Errorf("%w: indices[%d] = %d, %d vertices", ErrIndexRange, i, idx, len(g.Vertices))
		}
	}
	return nil
}
