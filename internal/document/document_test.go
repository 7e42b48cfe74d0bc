package document

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/sweepcad/pkg/formats"
	"github.com/Faultbox/sweepcad/pkg/geom"
	"github.com/Faultbox/sweepcad/pkg/spline"
	"github.com/Faultbox/sweepcad/pkg/sweep"
)

var (
	square = geom.Curve{{X: 0, Z: 0}, {X: 1, Z: 0}, {X: 1, Z: 1}, {X: 0, Z: 1}}
	line   = geom.Curve{{}, {Y: 1}, {Y: 2}}
	tri    = geom.Curve{{X: 1}, {X: 2}, {X: 1.5, Z: 1}}
)

func rawOptions() Options {
	return Options{Steps: 10, Interpolate: false}
}

func addAll(t *testing.T, d *Document, points geom.Curve) {
	t.Helper()
	for _, p := range points {
		if err := d.AddControlPoint(p); err != nil {
			t.Fatalf("AddControlPoint(%v): %v", p, err)
		}
	}
}

func translationalDoc(t *testing.T, opts Options) *Document {
	t.Helper()
	d := New(sweep.Translational, 12, opts)
	addAll(t, d, square)
	if err := d.AdvanceStage(); err != nil {
		t.Fatalf("AdvanceStage to trajectory: %v", err)
	}
	addAll(t, d, line)
	if err := d.AdvanceStage(); err != nil {
		t.Fatalf("AdvanceStage to mesh: %v", err)
	}
	return d
}

func TestTranslationalWorkflow(t *testing.T) {
	d := translationalDoc(t, rawOptions())

	if d.Stage() != StageMesh {
		t.Fatalf("expected mesh stage, got %s", d.Stage())
	}
	g, err := d.Geometry()
	if err != nil {
		t.Fatalf("Geometry: %v", err)
	}
	if g.VertexCount() != 12 {
		t.Errorf("expected 12 vertices, got %d", g.VertexCount())
	}
	if g.TriangleCount() != 12 {
		t.Errorf("expected 12 triangles, got %d", g.TriangleCount())
	}
	if err := g.Validate(); err != nil {
		t.Errorf("invalid geometry: %v", err)
	}
}

func TestTranslationalWorkflowInterpolated(t *testing.T) {
	d := translationalDoc(t, DefaultOptions())

	g, err := d.Geometry()
	if err != nil {
		t.Fatal(err)
	}
	// Profile is smoothed to 3 segments x 10 samples; a 3 point
	// trajectory is too short to smooth and stays a polyline.
	if len(d.ProfileCurve()) != 30 {
		t.Errorf("expected 30 profile samples, got %d", len(d.ProfileCurve()))
	}
	if len(d.TrajectoryCurve()) != 3 {
		t.Errorf("expected raw trajectory, got %d points", len(d.TrajectoryCurve()))
	}
	if g.VertexCount() != 90 {
		t.Errorf("expected 90 vertices, got %d", g.VertexCount())
	}
	// Control points are kept apart from the samples.
	if len(d.Profile()) != 4 {
		t.Errorf("control points changed: %d", len(d.Profile()))
	}
}

func TestTrajectorySmoothing(t *testing.T) {
	longPath := geom.Curve{{}, {Y: 1}, {Y: 2, X: 0.5}, {Y: 3}, {Y: 4}}
	tests := []struct {
		name       string
		opts       Options
		trajectory geom.Curve
		wantCurve  int
	}{
		{"default options keep a short trajectory raw", DefaultOptions(), line, 3},
		{"default options smooth a long trajectory", DefaultOptions(), longPath, 40},
		{"smoothing off keeps a long trajectory raw", Options{Steps: 10, Interpolate: true}, longPath, 5},
		{"interpolation off keeps everything raw", rawOptions(), longPath, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := New(sweep.Translational, 1, tt.opts)
			addAll(t, d, square)
			if err := d.AdvanceStage(); err != nil {
				t.Fatalf("AdvanceStage to trajectory: %v", err)
			}
			addAll(t, d, tt.trajectory)
			if err := d.AdvanceStage(); err != nil {
				t.Fatalf("AdvanceStage to mesh: %v", err)
			}
			if got := len(d.TrajectoryCurve()); got != tt.wantCurve {
				t.Errorf("trajectory curve has %d points, want %d", got, tt.wantCurve)
			}
			g, _ := d.Geometry()
			if g.RingCount() != tt.wantCurve {
				t.Errorf("expected %d rings, got %d", tt.wantCurve, g.RingCount())
			}
		})
	}
}

func TestProfileStillNeedsFourPoints(t *testing.T) {
	d := New(sweep.Translational, 1, DefaultOptions())
	addAll(t, d, tri)
	if err := d.AdvanceStage(); err != nil {
		t.Fatalf("AdvanceStage to trajectory: %v", err)
	}
	addAll(t, d, line)
	if err := d.AdvanceStage(); !errors.Is(err, spline.ErrInsufficientControlPoints) {
		t.Errorf("expected ErrInsufficientControlPoints, got %v", err)
	}
}

func TestRotationalWorkflow(t *testing.T) {
	d := New(sweep.Rotational, 4, rawOptions())
	addAll(t, d, tri)

	if err := d.AdvanceStage(); err != nil {
		t.Fatalf("AdvanceStage: %v", err)
	}
	if d.Stage() != StageMesh {
		t.Fatalf("rotational documents skip the trajectory stage, got %s", d.Stage())
	}
	g, _ := d.Geometry()
	if g.VertexCount() != 12 || g.TriangleCount() != 16 {
		t.Errorf("expected 12 vertices and 16 triangles, got %d and %d", g.VertexCount(), g.TriangleCount())
	}
	if !g.Closed {
		t.Error("rotational geometry should be closed")
	}
}

func TestAddControlPointStages(t *testing.T) {
	d := New(sweep.Translational, 1, rawOptions())
	addAll(t, d, square)
	if len(d.Profile()) != 4 || len(d.Trajectory()) != 0 {
		t.Fatalf("profile stage should fill the profile")
	}

	d.AdvanceStage()
	addAll(t, d, line)
	if len(d.Profile()) != 4 || len(d.Trajectory()) != 3 {
		t.Fatalf("trajectory stage should fill the trajectory")
	}

	d.AdvanceStage()
	err := d.AddControlPoint(geom.Point3{X: 9})
	if !errors.Is(err, ErrWrongStage) {
		t.Errorf("expected ErrWrongStage in mesh stage, got %v", err)
	}
	if err := d.AdvanceStage(); !errors.Is(err, ErrWrongStage) {
		t.Errorf("expected ErrWrongStage advancing past mesh, got %v", err)
	}
}

func TestPreviewCurve(t *testing.T) {
	d := New(sweep.Rotational, 8, DefaultOptions())

	addAll(t, d, square[:3])
	if len(d.ProfileCurve()) != 3 {
		t.Errorf("below the spline minimum the preview is the control points, got %d", len(d.ProfileCurve()))
	}
	addAll(t, d, square[3:])
	if len(d.ProfileCurve()) != 30 {
		t.Errorf("expected 30 preview samples, got %d", len(d.ProfileCurve()))
	}
	if d.Generated() {
		t.Error("previewing must not generate a mesh")
	}
}

func TestAdvanceStageFailureKeepsStage(t *testing.T) {
	d := New(sweep.Rotational, 4, DefaultOptions())
	addAll(t, d, tri)

	err := d.AdvanceStage()
	if !errors.Is(err, spline.ErrInsufficientControlPoints) {
		t.Fatalf("expected ErrInsufficientControlPoints, got %v", err)
	}
	if d.Stage() != StageProfile {
		t.Errorf("stage should not change on failure, got %s", d.Stage())
	}
	if _, err := d.Geometry(); !errors.Is(err, ErrNotGenerated) {
		t.Errorf("expected ErrNotGenerated, got %v", err)
	}
}

func TestTrajectoryTooShort(t *testing.T) {
	d := New(sweep.Translational, 1, rawOptions())
	addAll(t, d, square)
	d.AdvanceStage()
	d.AddControlPoint(geom.Point3{})

	if err := d.AdvanceStage(); !errors.Is(err, sweep.ErrDegenerateCurve) {
		t.Errorf("expected ErrDegenerateCurve, got %v", err)
	}
	if d.Stage() != StageTrajectory {
		t.Errorf("expected to stay in trajectory stage, got %s", d.Stage())
	}
}

func TestRegenerateFailureKeepsDerivedState(t *testing.T) {
	d := translationalDoc(t, rawOptions())
	g, _ := d.Geometry()
	before := append([]geom.Point3(nil), g.Vertices...)
	gen := d.Generation()

	d.trajectory = d.trajectory[:1]
	if err := d.Regenerate(); !errors.Is(err, sweep.ErrDegenerateCurve) {
		t.Fatalf("expected ErrDegenerateCurve, got %v", err)
	}
	if d.Generation() != gen {
		t.Error("failed regeneration must not bump the generation")
	}
	g, err := d.Geometry()
	if err != nil {
		t.Fatal(err)
	}
	if len(g.Vertices) != len(before) || g.Vertices[len(before)-1] != before[len(before)-1] {
		t.Error("derived geometry changed after a failed regeneration")
	}
	if len(d.TrajectoryCurve()) != 3 {
		t.Errorf("drawable trajectory changed: %d", len(d.TrajectoryCurve()))
	}
}

func TestRegenerateReplacesDerivedState(t *testing.T) {
	d := translationalDoc(t, rawOptions())
	for i := 0; i < 3; i++ {
		if err := d.Regenerate(); err != nil {
			t.Fatal(err)
		}
	}
	g, _ := d.Geometry()
	if g.VertexCount() != 12 || g.TriangleCount() != 12 {
		t.Errorf("regeneration accumulated state: %d vertices, %d triangles", g.VertexCount(), g.TriangleCount())
	}
}

func TestGenerationCounter(t *testing.T) {
	d := New(sweep.Rotational, 4, rawOptions())
	last := d.Generation()

	step := func(name string, fn func()) {
		t.Helper()
		fn()
		if d.Generation() <= last {
			t.Errorf("%s: generation did not advance", name)
		}
		last = d.Generation()
	}

	step("add", func() { d.AddControlPoint(tri[0]) })
	step("add", func() { d.AddControlPoint(tri[1]) })
	step("advance", func() { d.AdvanceStage() })
	step("respec", func() { d.SetSweepSpec(sweep.Rotational, 6) })
	step("clear", func() { d.ClearAll() })

	d.SetRenderMode(RenderPoints)
	if d.Generation() != last {
		t.Error("render mode must not bump the generation")
	}
}

func TestClearAll(t *testing.T) {
	d := translationalDoc(t, rawOptions())
	d.ClearAll()

	if d.Stage() != StageProfile {
		t.Errorf("expected profile stage, got %s", d.Stage())
	}
	if len(d.Profile()) != 0 || len(d.Trajectory()) != 0 || len(d.ProfileCurve()) != 0 {
		t.Error("control points survived ClearAll")
	}
	if d.Generated() {
		t.Error("mesh survived ClearAll")
	}
	if d.Kind() != sweep.Translational {
		t.Errorf("ClearAll should keep the sweep kind, got %s", d.Kind())
	}
}

func TestSetSweepSpec(t *testing.T) {
	t.Run("invalid spans", func(t *testing.T) {
		d := New(sweep.Rotational, 4, rawOptions())
		if err := d.SetSweepSpec(sweep.Rotational, 0); !errors.Is(err, sweep.ErrInvalidSpanCount) {
			t.Errorf("expected ErrInvalidSpanCount, got %v", err)
		}
		if d.Spans() != 4 {
			t.Errorf("spans changed to %d", d.Spans())
		}
	})

	t.Run("unknown kind", func(t *testing.T) {
		d := New(sweep.Rotational, 4, rawOptions())
		if err := d.SetSweepSpec(sweep.Kind(7), 4); !errors.Is(err, sweep.ErrUnknownKind) {
			t.Errorf("expected ErrUnknownKind, got %v", err)
		}
	})

	t.Run("regenerates in mesh stage", func(t *testing.T) {
		d := New(sweep.Rotational, 4, rawOptions())
		addAll(t, d, tri)
		d.AdvanceStage()

		if err := d.SetSweepSpec(sweep.Rotational, 10); err != nil {
			t.Fatal(err)
		}
		g, _ := d.Geometry()
		if g.VertexCount() != 30 {
			t.Errorf("expected 30 vertices after respec, got %d", g.VertexCount())
		}
	})

	t.Run("failed regeneration restores settings", func(t *testing.T) {
		d := New(sweep.Rotational, 4, rawOptions())
		addAll(t, d, tri)
		d.AdvanceStage()

		// No trajectory was ever entered.
		err := d.SetSweepSpec(sweep.Translational, 4)
		if !errors.Is(err, sweep.ErrDegenerateCurve) {
			t.Fatalf("expected ErrDegenerateCurve, got %v", err)
		}
		if d.Kind() != sweep.Rotational {
			t.Errorf("kind should be restored, got %s", d.Kind())
		}
	})

	t.Run("rotational leaves trajectory stage", func(t *testing.T) {
		d := New(sweep.Translational, 4, rawOptions())
		addAll(t, d, square)
		d.AdvanceStage()

		if err := d.SetSweepSpec(sweep.Rotational, 4); err != nil {
			t.Fatal(err)
		}
		if d.Stage() != StageProfile {
			t.Errorf("expected profile stage, got %s", d.Stage())
		}
	})
}

func TestSaveRequiresMesh(t *testing.T) {
	d := New(sweep.Rotational, 4, rawOptions())
	addAll(t, d, tri)

	path := filepath.Join(t.TempDir(), "rotational_data.txt")
	if err := d.Save(path); !errors.Is(err, ErrWrongStage) {
		t.Errorf("expected ErrWrongStage, got %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("nothing should be written before the mesh exists")
	}
}

func TestSaveTranslationalIgnoresSpans(t *testing.T) {
	d := New(sweep.Translational, math.MaxUint16+1, rawOptions())
	addAll(t, d, square)
	d.AdvanceStage()
	addAll(t, d, line)
	if err := d.AdvanceStage(); err != nil {
		t.Fatal(err)
	}
	if err := d.Save(filepath.Join(t.TempDir(), "translational_data.txt")); err != nil {
		t.Errorf("Save: %v", err)
	}

	r := New(sweep.Rotational, math.MaxUint16+1, rawOptions())
	addAll(t, r, tri)
	if err := r.AdvanceStage(); err != nil {
		t.Fatal(err)
	}
	if err := r.Save(filepath.Join(t.TempDir(), "rotational_data.txt")); !errors.Is(err, formats.ErrCountOverflow) {
		t.Errorf("expected ErrCountOverflow, got %v", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()

	t.Run("translational", func(t *testing.T) {
		src := translationalDoc(t, DefaultOptions())
		path := FilePath(dir, src.Kind(), "data.txt")
		if err := src.Save(path); err != nil {
			t.Fatalf("Save: %v", err)
		}

		dst := New(sweep.Rotational, 3, DefaultOptions())
		if err := dst.Load(path); err != nil {
			t.Fatalf("Load: %v", err)
		}
		if dst.Kind() != sweep.Translational || dst.Stage() != StageMesh {
			t.Errorf("unexpected state: kind %s, stage %s", dst.Kind(), dst.Stage())
		}
		if !equalCurves(dst.Profile(), square) || !equalCurves(dst.Trajectory(), line) {
			t.Errorf("control points differ after round trip")
		}
		a, _ := src.Geometry()
		b, _ := dst.Geometry()
		if a.VertexCount() != b.VertexCount() || a.TriangleCount() != b.TriangleCount() {
			t.Errorf("regenerated mesh differs: %d/%d vs %d/%d",
				a.VertexCount(), a.TriangleCount(), b.VertexCount(), b.TriangleCount())
		}
	})

	t.Run("rotational", func(t *testing.T) {
		src := New(sweep.Rotational, 7, rawOptions())
		addAll(t, src, tri)
		src.AdvanceStage()
		path := FilePath(dir, src.Kind(), "data.txt")
		if err := src.Save(path); err != nil {
			t.Fatalf("Save: %v", err)
		}

		dst := New(sweep.Translational, 1, rawOptions())
		if err := dst.Load(path); err != nil {
			t.Fatalf("Load: %v", err)
		}
		if dst.Kind() != sweep.Rotational || dst.Spans() != 7 {
			t.Errorf("expected rotational with 7 spans, got %s with %d", dst.Kind(), dst.Spans())
		}
		if !equalCurves(dst.Profile(), tri) {
			t.Error("profile differs after round trip")
		}
	})
}

func TestLoadFailureResets(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "translational_bad.txt")
	if err := os.WriteFile(bad, []byte("0\n4\n0 0 0\n1 1"), 0644); err != nil {
		t.Fatal(err)
	}
	empty := filepath.Join(dir, "rotational_empty.txt")
	if err := os.WriteFile(empty, []byte("1\n0\n2\n0 0 0\n1 0 0\n"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
		want error
	}{
		{"missing", filepath.Join(dir, "nope.txt"), os.ErrNotExist},
		{"truncated", bad, formats.ErrTruncatedSweepData},
		{"zero spans", empty, sweep.ErrInvalidSpanCount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := translationalDoc(t, rawOptions())
			err := d.Load(tt.path)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if d.Stage() != StageProfile || d.Generated() || len(d.Profile()) != 0 {
				t.Error("document should be empty after a failed load")
			}
			if d.Kind() != sweep.Translational {
				t.Errorf("failed load should keep the previous kind, got %s", d.Kind())
			}
		})
	}
}

func TestFileName(t *testing.T) {
	if got := FileName(sweep.Rotational, "data.txt"); got != "rotational_data.txt" {
		t.Errorf("got %q", got)
	}
	if got := FilePath("shapes", sweep.Translational, "cup.txt"); got != filepath.Join("shapes", "translational_cup.txt") {
		t.Errorf("got %q", got)
	}
}

func TestParseRenderMode(t *testing.T) {
	for _, m := range []RenderMode{RenderPoints, RenderLines, RenderTriangles} {
		got, err := ParseRenderMode(m.String())
		if err != nil || got != m {
			t.Errorf("ParseRenderMode(%q) = %v, %v", m.String(), got, err)
		}
	}
	if _, err := ParseRenderMode("wireframe"); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func equalCurves(a, b geom.Curve) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
