package viewer

import (
	"fmt"
	gomath "math"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/sweepcad/internal/document"
	"github.com/Faultbox/sweepcad/internal/engine/camera"
	"github.com/Faultbox/sweepcad/internal/engine/input"
	"github.com/Faultbox/sweepcad/internal/logger"
	"github.com/Faultbox/sweepcad/pkg/geom"
	"github.com/Faultbox/sweepcad/pkg/math"
)

// Field of view and clip planes of the projection.
const (
	fovY = gomath.Pi / 4
	near = 0.01
	far  = 100
)

// Session maps input events onto one document, its camera and model
// rotation. It makes no GL calls.
type Session struct {
	Doc      *document.Document
	Camera   *camera.FlyCamera
	Rotation ModelRotation
	DataPath string

	// ShowBounds draws the mesh bounding box.
	ShowBounds bool

	width, height int
	quit          bool
	screenshot    bool
	log           *zap.Logger
}

// NewSession binds doc to a fresh camera for a width x height viewport.
func NewSession(doc *document.Document, dataPath string, width, height int) *Session {
	return &Session{
		Doc:      doc,
		Camera:   camera.NewFlyCamera(),
		Rotation: ModelRotation{Step: DefaultRotateStep},
		DataPath: dataPath,
		width:    width,
		height:   height,
		log:      logger.Named("viewer"),
	}
}

// Quit reports whether the user asked to leave.
func (s *Session) Quit() bool { return s.quit }

// TakeScreenshot reports whether a capture was requested since the last
// call and clears the request.
func (s *Session) TakeScreenshot() bool {
	req := s.screenshot
	s.screenshot = false
	return req
}

// Size returns the viewport size the session was last told about.
func (s *Session) Size() (int, int) { return s.width, s.height }

// Normalize maps a window pixel to normalized device coordinates on the
// z = 0 plane. The window's top-left pixel maps to (-1, 1).
func Normalize(mx, my, width, height int) geom.Point3 {
	if width <= 0 || height <= 0 {
		return geom.Point3{}
	}
	return geom.Point3{
		X: 2*float64(mx)/float64(width) - 1,
		Y: 1 - 2*float64(my)/float64(height),
	}
}

// Flatten converts a curve to xyz float32 triples.
func Flatten(points geom.Curve) []float32 {
	out := make([]float32, 0, len(points)*3)
	for _, p := range points {
		out = append(out, float32(p.X), float32(p.Y), float32(p.Z))
	}
	return out
}

// Handle applies one input event.
func (s *Session) Handle(e input.Event) {
	switch e.Type {
	case input.EventQuit:
		s.quit = true
	case input.EventWindowResize:
		s.width, s.height = e.Width, e.Height
	case input.EventMouseDown:
		if e.Button == sdl.BUTTON_LEFT {
			s.addPoint(e.MouseX, e.MouseY)
		}
	case input.EventKeyDown:
		s.handleKey(e)
	}
}

// ProfilePoint lays a screen-plane point into the X-Z plane, so the screen's
// vertical axis becomes the rotational sweep axis.
func ProfilePoint(p geom.Point3) geom.Point3 {
	return geom.Point3{X: p.X, Y: p.Z, Z: p.Y}
}

// EntryMatrix returns the transform used to draw control points while they
// are entered. Profile points are shown with z up the screen.
func (s *Session) EntryMatrix() math.Mat4 {
	if s.Doc.Stage() == document.StageProfile {
		return math.SwapYZ()
	}
	return math.Identity()
}

func (s *Session) addPoint(mx, my int) {
	p := Normalize(mx, my, s.width, s.height)
	if s.Doc.Stage() == document.StageProfile {
		p = ProfilePoint(p)
	}
	if err := s.Doc.AddControlPoint(p); err != nil {
		s.log.Debug("point ignored", zap.Error(err))
		return
	}
	s.log.Debug("point added",
		zap.Stringer("stage", s.Doc.Stage()),
		zap.Float64("x", p.X),
		zap.Float64("y", p.Y),
		zap.Float64("z", p.Z))
}

func (s *Session) handleKey(e input.Event) {
	switch e.Key {
	case sdl.SCANCODE_ESCAPE:
		s.quit = true

	case sdl.SCANCODE_RETURN, sdl.SCANCODE_KP_ENTER:
		if e.Repeat {
			return
		}
		if err := s.Doc.AdvanceStage(); err != nil {
			s.log.Warn("cannot advance stage", zap.Stringer("stage", s.Doc.Stage()), zap.Error(err))
			return
		}
		s.log.Info("stage changed", zap.Stringer("stage", s.Doc.Stage()))

	case sdl.SCANCODE_BACKSPACE:
		s.Doc.ClearAll()
		s.log.Info("document cleared")

	case sdl.SCANCODE_P:
		s.Doc.SetRenderMode(document.RenderPoints)
	case sdl.SCANCODE_L:
		s.Doc.SetRenderMode(document.RenderLines)
	case sdl.SCANCODE_T:
		s.Doc.SetRenderMode(document.RenderTriangles)

	case sdl.SCANCODE_B:
		if !e.Repeat {
			s.ShowBounds = !s.ShowBounds
		}
	case sdl.SCANCODE_F12:
		if !e.Repeat {
			s.screenshot = true
		}

	case sdl.SCANCODE_LEFT:
		s.Rotation.Rotate(0, 1)
	case sdl.SCANCODE_RIGHT:
		s.Rotation.Rotate(0, -1)
	case sdl.SCANCODE_UP:
		s.Rotation.Rotate(1, 0)
	case sdl.SCANCODE_DOWN:
		s.Rotation.Rotate(-1, 0)

	case sdl.SCANCODE_W:
		s.Camera.MoveForward()
	case sdl.SCANCODE_A:
		s.Camera.MoveLeft()
	case sdl.SCANCODE_D:
		s.Camera.MoveRight()
	case sdl.SCANCODE_S:
		if e.Ctrl() {
			if !e.Repeat {
				s.save()
			}
			return
		}
		s.Camera.MoveBackward()
	}
}

func (s *Session) save() {
	if err := s.Doc.Save(s.DataPath); err != nil {
		s.log.Warn("save failed", zap.String("path", s.DataPath), zap.Error(err))
	}
}

// Projection returns the perspective transform for the viewport.
func (s *Session) Projection() math.Mat4 {
	aspect := float32(1)
	if s.height > 0 {
		aspect = float32(s.width) / float32(s.height)
	}
	return math.Perspective(fovY, aspect, near, far)
}

// MVP returns projection * view * model.
func (s *Session) MVP() math.Mat4 {
	return s.Projection().Mul(s.Camera.ViewMatrix()).Mul(s.Rotation.Matrix())
}

// Title describes the session for the window title bar.
func (s *Session) Title() string {
	d := s.Doc
	switch d.Stage() {
	case document.StageProfile:
		return fmt.Sprintf("SweepCAD - %s - profile (%d points)", d.Kind(), len(d.Profile()))
	case document.StageTrajectory:
		return fmt.Sprintf("SweepCAD - %s - trajectory (%d points)", d.Kind(), len(d.Trajectory()))
	}
	if g, err := d.Geometry(); err == nil {
		return fmt.Sprintf("SweepCAD - %s - %d vertices, %d triangles (%s)",
			d.Kind(), g.VertexCount(), g.TriangleCount(), d.RenderMode())
	}
	return "SweepCAD - " + d.Kind().String()
}
