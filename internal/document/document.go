// Package document owns the state of one editing session: raw control
// points, the interpolated curves drawn from them, and the swept mesh.
//
// Derived state (drawable curves, mesh) is always rebuilt from the control
// points in one step. A failed rebuild leaves the previous derived state in
// place. Readers that mirror the mesh elsewhere, such as a GPU buffer,
// compare Generation to decide when to copy it again.
package document

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Faultbox/sweepcad/internal/logger"
	"github.com/Faultbox/sweepcad/pkg/formats"
	"github.com/Faultbox/sweepcad/pkg/geom"
	"github.com/Faultbox/sweepcad/pkg/mesh"
	"github.com/Faultbox/sweepcad/pkg/spline"
	"github.com/Faultbox/sweepcad/pkg/sweep"
)

var (
	ErrWrongStage   = errors.New("operation not allowed in this stage")
	ErrNotGenerated = errors.New("mesh not generated")
)

// Options control how control points become drawable curves.
type Options struct {
	Steps            int  // spline samples per segment
	SmoothTrajectory bool // interpolate the trajectory as well as the profile
	Interpolate      bool // false sweeps the control points as polylines
}

// DefaultOptions returns ten samples per segment with both curves smoothed.
func DefaultOptions() Options {
	return Options{Steps: spline.DefaultSteps, SmoothTrajectory: true, Interpolate: true}
}

// Document is a single sweep session. It is not safe for concurrent use.
type Document struct {
	kind  sweep.Kind
	spans int
	opts  Options
	stage Stage
	mode  RenderMode

	profile    geom.Curve
	trajectory geom.Curve

	profileCurve    geom.Curve
	trajectoryCurve geom.Curve
	geometry        mesh.Geometry
	generated       bool

	generation uint64
	log        *zap.Logger
}

// New returns an empty document in StageProfile.
func New(kind sweep.Kind, spans int, opts Options) *Document {
	if opts.Steps <= 0 {
		opts.Steps = spline.DefaultSteps
	}
	return &Document{
		kind:  kind,
		spans: spans,
		opts:  opts,
		mode:  RenderTriangles,
		log:   logger.Named("document"),
	}
}

func (d *Document) Kind() sweep.Kind       { return d.kind }
func (d *Document) Spans() int             { return d.spans }
func (d *Document) Stage() Stage           { return d.stage }
func (d *Document) Options() Options       { return d.opts }
func (d *Document) RenderMode() RenderMode { return d.mode }

// SetRenderMode changes how consumers draw. It does not touch geometry.
func (d *Document) SetRenderMode(m RenderMode) {
	d.mode = m
}

// Generation increases every time control points or derived state change.
func (d *Document) Generation() uint64 { return d.generation }

// Profile returns the profile control points. Callers must not modify it.
func (d *Document) Profile() geom.Curve { return d.profile }

// Trajectory returns the trajectory control points. Callers must not modify it.
func (d *Document) Trajectory() geom.Curve { return d.trajectory }

// ProfileCurve returns the drawable profile: spline samples when there are
// enough control points, otherwise the control points themselves.
func (d *Document) ProfileCurve() geom.Curve { return d.profileCurve }

// TrajectoryCurve is the drawable trajectory.
func (d *Document) TrajectoryCurve() geom.Curve { return d.trajectoryCurve }

// Generated reports whether Geometry holds a mesh.
func (d *Document) Generated() bool { return d.generated }

// Geometry returns the swept mesh, or ErrNotGenerated.
func (d *Document) Geometry() (*mesh.Geometry, error) {
	if !d.generated {
		return nil, ErrNotGenerated
	}
	return &d.geometry, nil
}

// SweepSpec returns the spec the current mesh was generated from.
func (d *Document) SweepSpec() (sweep.Spec, error) {
	if !d.generated {
		return sweep.Spec{}, ErrNotGenerated
	}
	return d.spec(d.profileCurve, d.trajectoryCurve), nil
}

func (d *Document) spec(profile, trajectory geom.Curve) sweep.Spec {
	if d.kind == sweep.Rotational {
		return sweep.NewRotational(profile, d.spans)
	}
	return sweep.NewTranslational(profile, trajectory)
}

func (d *Document) touch() { d.generation++ }

// AddControlPoint appends p to the curve being edited in the current stage.
func (d *Document) AddControlPoint(p geom.Point3) error {
	switch d.stage {
	case StageProfile:
		d.profile = append(d.profile, p)
		d.profileCurve = d.preview(d.profile, true)
	case StageTrajectory:
		d.trajectory = append(d.trajectory, p)
		d.trajectoryCurve = d.preview(d.trajectory, d.opts.SmoothTrajectory)
	default:
		return fmt.Errorf("%w: cannot add points in %s stage", ErrWrongStage, d.stage)
	}
	d.touch()
	return nil
}

// preview fits what it can for display while points are still coming in.
func (d *Document) preview(points geom.Curve, smooth bool) geom.Curve {
	if smooth && d.opts.Interpolate && len(points) >= spline.MinControlPoints {
		if c, err := spline.Interpolate(points, spline.Options{Steps: d.opts.Steps}); err == nil {
			return c
		}
	}
	return points.Clone()
}

// ClearAll drops every point and the mesh and returns to StageProfile.
func (d *Document) ClearAll() {
	d.profile = nil
	d.trajectory = nil
	d.profileCurve = nil
	d.trajectoryCurve = nil
	d.geometry.Reset()
	d.generated = false
	d.stage = StageProfile
	d.touch()
}

// SetSweepSpec changes the sweep kind and span count. In StageMesh the mesh
// is regenerated; if that fails the previous settings are restored.
// Switching to rotational while entering a trajectory returns to
// StageProfile.
func (d *Document) SetSweepSpec(kind sweep.Kind, spans int) error {
	if kind != sweep.Translational && kind != sweep.Rotational {
		return fmt.Errorf("%w: %d", sweep.ErrUnknownKind, uint8(kind))
	}
	if spans <= 0 {
		return fmt.Errorf("%w: %d", sweep.ErrInvalidSpanCount, spans)
	}

	oldKind, oldSpans := d.kind, d.spans
	d.kind, d.spans = kind, spans

	if d.stage == StageMesh {
		if err := d.Regenerate(); err != nil {
			d.kind, d.spans = oldKind, oldSpans
			return err
		}
		return nil
	}
	if d.stage == StageTrajectory && kind == sweep.Rotational {
		d.stage = StageProfile
	}
	d.touch()
	return nil
}

// AdvanceStage moves to the next stage. Reaching StageMesh generates the
// mesh; if generation fails the stage does not change.
func (d *Document) AdvanceStage() error {
	switch d.stage {
	case StageProfile:
		if d.kind == sweep.Translational {
			d.stage = StageTrajectory
			d.touch()
			return nil
		}
	case StageTrajectory:
	default:
		return fmt.Errorf("%w: already in %s stage", ErrWrongStage, d.stage)
	}

	if err := d.Regenerate(); err != nil {
		return err
	}
	d.stage = StageMesh
	d.log.Debug("mesh generated",
		zap.Stringer("kind", d.kind),
		zap.Int("vertices", d.geometry.VertexCount()),
		zap.Int("triangles", d.geometry.TriangleCount()))
	return nil
}

// Regenerate rebuilds drawable curves and the mesh from the control points.
func (d *Document) Regenerate() error {
	profile, err := d.fit(d.profile, true, true)
	if err != nil {
		return fmt.Errorf("profile: %w", err)
	}
	var trajectory geom.Curve
	if d.kind == sweep.Translational {
		trajectory, err = d.fit(d.trajectory, d.opts.SmoothTrajectory, false)
		if err != nil {
			return fmt.Errorf("trajectory: %w", err)
		}
	}

	if err := sweep.Into(&d.geometry, d.spec(profile, trajectory)); err != nil {
		return err
	}
	d.profileCurve = profile
	d.trajectoryCurve = trajectory
	d.generated = true
	d.touch()
	return nil
}

// fit returns the curve to sweep. Points are smoothed only when
// interpolation is on and smooth is set. A required curve must then meet
// the spline precondition; any other curve too short to smooth is swept
// as a polyline.
func (d *Document) fit(points geom.Curve, smooth, required bool) (geom.Curve, error) {
	if !d.opts.Interpolate || !smooth {
		return points.Clone(), nil
	}
	if !required && len(points) < spline.MinControlPoints {
		return points.Clone(), nil
	}
	return spline.Interpolate(points, spline.Options{Steps: d.opts.Steps})
}

// FileName returns the data file name for kind, e.g. "rotational_data.txt".
func FileName(kind sweep.Kind, suffix string) string {
	return kind.String() + "_" + suffix
}

// FilePath joins dir with FileName.
func FilePath(dir string, kind sweep.Kind, suffix string) string {
	return filepath.Join(dir, FileName(kind, suffix))
}

// Save writes the control points and sweep parameters to path, replacing
// any previous content. Only a generated document can be saved.
func (d *Document) Save(path string) error {
	if d.stage != StageMesh {
		return fmt.Errorf("%w: save requires a generated mesh, stage is %s", ErrWrongStage, d.stage)
	}

	f := &formats.SweepFile{Kind: d.kind, Profile: d.profile}
	if d.kind == sweep.Rotational {
		if d.spans > math.MaxUint16 {
			return fmt.Errorf("%w: spans %d", formats.ErrCountOverflow, d.spans)
		}
		f.Spans = uint16(d.spans)
	} else {
		f.Trajectory = d.trajectory
	}
	if err := f.WriteFile(path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	d.log.Info("document saved", zap.String("path", path), zap.Stringer("kind", d.kind))
	return nil
}

// Load replaces the document with the contents of path and generates the
// mesh. On any failure the document is left empty in StageProfile and the
// error is returned so the caller can report it.
func (d *Document) Load(path string) error {
	kind, spans := d.kind, d.spans
	f, err := formats.ParseSweepFile(path)
	if err == nil {
		err = d.apply(f)
	}
	if err != nil {
		d.log.Warn("starting with an empty document", zap.String("path", path), zap.Error(err))
		d.kind, d.spans = kind, spans
		d.ClearAll()
		return err
	}
	d.log.Info("document loaded",
		zap.String("path", path),
		zap.Stringer("kind", d.kind),
		zap.Int("profile_points", len(d.profile)),
		zap.Int("trajectory_points", len(d.trajectory)))
	return nil
}

func (d *Document) apply(f *formats.SweepFile) error {
	d.kind = f.Kind
	if f.Kind == sweep.Rotational {
		d.spans = int(f.Spans)
	}
	d.profile = f.Profile
	d.trajectory = f.Trajectory
	d.geometry.Reset()
	d.generated = false

	if err := d.Regenerate(); err != nil {
		return err
	}
	d.stage = StageMesh
	return nil
}
