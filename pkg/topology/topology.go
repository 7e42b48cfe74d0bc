// Package topology builds triangle index lists over grids of swept rings.
package topology

import (
	"errors"
	"fmt"
	"math"
)

// Topology errors.
var (
	ErrDegenerateGrid = errors.New("degenerate ring grid")
	ErrIndexOverflow  = errors.New("grid too large for 32-bit indices")
)

// TriangleCount returns how many triangles Build emits for the grid.
func TriangleCount(rings, ringSize int, closed bool) int {
	if rings < 1 || ringSize < 2 {
		return 0
	}
	pairs := rings - 1
	if closed {
		pairs = rings
	}
	return pairs * (ringSize - 1) * 2
}

// Build returns the triangle index list for rings of ringSize points each.
// See Append.
func Build(rings, ringSize int, closed bool) ([]uint32, error) {
	return Append(nil, rings, ringSize, closed)
}

// Append appends the triangle indices for the grid to dst and returns the
// extended slice.
//
// Ring s is stitched to ring s+1 for s = 0..rings-2. When closed is set the
// last ring is also stitched back to ring 0. Each quad between point p and
// p+1 of two adjacent rings becomes the triangles (a, a+1, b) and
// (a+1, b, b+1), where a and b index point p in the current and next ring.
func Append(dst []uint32, rings, ringSize int, closed bool) ([]uint32, error) {
	if rings < 1 || ringSize < 2 {
		return dst, fmt.Errorf("%w: %d rings of %d points", ErrDegenerateGrid, rings, ringSize)
	}
	if uint64(rings)*uint64(ringSize) > math.MaxUint32 {
		return dst, fmt.Errorf("%w: %d rings of %d points", ErrIndexOverflow, rings, ringSize)
	}

	pairs := rings - 1
	if closed {
		pairs = rings
	}
	if need := len(dst) + TriangleCount(rings, ringSize, closed)*3; cap(dst) < need {
		grown := make([]uint32, len(dst), need)
		copy(grown, dst)
		dst = grown
	}

	size := uint32(ringSize)
	for s := 0; s < pairs; s++ {
		cur := uint32(s) * size
		next := uint32((s+1)%rings) * size
		for p := uint32(0); p < size-1; p++ {
			a := cur + p
			b := next + p
			dst = append(dst,
				a, a+1, b,
				a+1, b, b+1,
			)
		}
	}
	return dst, nil
}
