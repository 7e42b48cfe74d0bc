// Package debug provides overlays and capture helpers for the viewer.
package debug

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// BoxVertexCount is the number of vertices in a box wireframe (12 edges x 2).
const BoxVertexCount = 24

// DefaultBoxPadding keeps the bounds outline off the mesh surface.
const DefaultBoxPadding = 0.02

// BoxLines returns the 12 edges of b, grown by padding on every side, as
// xyz float32 pairs ready for a line-list draw.
func BoxLines(b r3.Box, padding float64) []float32 {
	minX, minY, minZ := b.Min.X, b.Min.Y, b.Min.Z
	maxX, maxY, maxZ := b.Max.X, b.Max.Y, b.Max.Z
	if minX > maxX {
		minX, maxX = maxX, minX
	}
	if minY > maxY {
		minY, maxY = maxY, minY
	}
	if minZ > maxZ {
		minZ, maxZ = maxZ, minZ
	}
	return boxLines(
		float32(minX-padding), float32(minY-padding), float32(minZ-padding),
		float32(maxX+padding), float32(maxY+padding), float32(maxZ+padding),
	)
}

func boxLines(minX, minY, minZ, maxX, maxY, maxZ float32) []float32 {
	return []float32{
		// z = min face
		minX, minY, minZ, maxX, minY, minZ,
		maxX, minY, minZ, maxX, maxY, minZ,
		maxX, maxY, minZ, minX, maxY, minZ,
		minX, maxY, minZ, minX, minY, minZ,
		// z = max face
		minX, minY, maxZ, maxX, minY, maxZ,
		maxX, minY, maxZ, maxX, maxY, maxZ,
		maxX, maxY, maxZ, minX, maxY, maxZ,
		minX, maxY, maxZ, minX, minY, maxZ,
		// connecting edges
		minX, minY, minZ, minX, minY, maxZ,
		maxX, minY, minZ, maxX, minY, maxZ,
		maxX, maxY, minZ, maxX, maxY, maxZ,
		minX, maxY, minZ, minX, maxY, maxZ,
	}
}
