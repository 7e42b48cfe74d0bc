// Package export writes swept meshes to files other tools can open.
package export

import (
	"errors"
	"fmt"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"go.uber.org/zap"

	"github.com/Faultbox/sweepcad/internal/logger"
	"github.com/Faultbox/sweepcad/pkg/geom"
	"github.com/Faultbox/sweepcad/pkg/mesh"
)

// ErrEmptyMesh is returned when there is nothing to export.
var ErrEmptyMesh = errors.New("mesh has no triangles")

// Triangles resolves the indexed mesh into sdfx triangles.
func Triangles(g *mesh.Geometry) []*sdf.Triangle3 {
	corners := g.Triangles()
	out := make([]*sdf.Triangle3, len(corners))
	for i, c := range corners {
		out[i] = &sdf.Triangle3{toV3(c[0]), toV3(c[1]), toV3(c[2])}
	}
	return out
}

func toV3(p geom.Point3) v3.Vec {
	return v3.Vec{X: p.X, Y: p.Y, Z: p.Z}
}

// STL writes g as a binary STL file at path.
func STL(path string, g *mesh.Geometry) error {
	if err := g.Validate(); err != nil {
		return fmt.Errorf("exporting %s: %w", path, err)
	}
	if g.TriangleCount() == 0 {
		return fmt.Errorf("exporting %s: %w", path, ErrEmptyMesh)
	}

	tris := Triangles(g)
	if err := render.SaveSTL(path, tris); err != nil {
		return fmt.Errorf("exporting %s: %w", path, err)
	}
	logger.Named("export").Info("stl written", zap.String("path", path), zap.Int("triangles", len(tris)))
	return nil
}
