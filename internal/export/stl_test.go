package export

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/deadsy/sdfx/sdf"

	"github.com/Faultbox/sweepcad/pkg/geom"
	"github.com/Faultbox/sweepcad/pkg/mesh"
	"github.com/Faultbox/sweepcad/pkg/sweep"
)

func cylinder(t *testing.T) *mesh.Geometry {
	t.Helper()
	g, err := sweep.Generate(sweep.NewRotational(geom.Curve{{X: 1}, {X: 1, Z: 1}, {X: 1, Z: 2}}, 8))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return g
}

func TestTriangles(t *testing.T) {
	g := cylinder(t)
	tris := Triangles(g)

	if len(tris) != g.TriangleCount() {
		t.Fatalf("expected %d triangles, got %d", g.TriangleCount(), len(tris))
	}
	for i, tri := range tris {
		for j := 0; j < 3; j++ {
			want := g.Vertices[g.Indices[i*3+j]]
			got := tri[j]
			if got.X != want.X || got.Y != want.Y || got.Z != want.Z {
				t.Fatalf("triangle %d corner %d: got %v, want %v", i, j, got, want)
			}
		}
	}
}

func TestTriangleNormals(t *testing.T) {
	var tris []*sdf.Triangle3 = Triangles(cylinder(t))
	for i, tri := range tris {
		n := tri.Normal()
		// Side walls of a cylinder around Z face sideways.
		if n.Z > 1e-9 || n.Z < -1e-9 {
			t.Fatalf("triangle %d: normal %v is not horizontal", i, n)
		}
	}
}

func TestSTL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cylinder.stl")
	if err := STL(path, cylinder(t)); err != nil {
		t.Fatalf("STL: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	// 80 byte header plus a 4 byte count precede the facets.
	if info.Size() <= 84 {
		t.Errorf("expected facet data, file is %d bytes", info.Size())
	}
}

func TestSTLEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.stl")
	err := STL(path, &mesh.Geometry{})
	if !errors.Is(err, ErrEmptyMesh) {
		t.Errorf("expected ErrEmptyMesh, got %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("no file should be written for an empty mesh")
	}
}
