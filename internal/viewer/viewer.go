// Package viewer runs the interactive sweep editor: points are entered with
// the mouse, stages are advanced from the keyboard, and the document's mesh
// is drawn with OpenGL.
package viewer

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/sweepcad/internal/config"
	"github.com/Faultbox/sweepcad/internal/document"
	"github.com/Faultbox/sweepcad/internal/engine/debug"
	"github.com/Faultbox/sweepcad/internal/engine/input"
	"github.com/Faultbox/sweepcad/internal/engine/renderer"
	"github.com/Faultbox/sweepcad/internal/engine/window"
	"github.com/Faultbox/sweepcad/internal/logger"
	"github.com/Faultbox/sweepcad/pkg/math"
)

var (
	colorControl = math.Vec3{X: 0.85, Y: 0.1, Z: 0.1}
	colorCurve   = math.Vec3{X: 0.1, Y: 0.1, Z: 0.1}
	colorMesh    = math.Vec3{X: 0.2, Y: 0.4, Z: 0.8}
	colorBounds  = math.Vec3{X: 0.9, Y: 0.6, Z: 0.1}
)

// Viewer owns the window and GPU buffers for one session.
type Viewer struct {
	session  *Session
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input

	// GPU copies of document state, refreshed when the generation changes.
	controls *renderer.Buffer
	curves   *renderer.Buffer
	mesh     *renderer.Buffer
	bounds   *renderer.Buffer

	screenshot *debug.Screenshot
	log        *zap.Logger
}

// New opens a window for doc. dataPath is where Ctrl+S saves.
func New(cfg config.ViewerConfig, doc *document.Document, dataPath string) (*Viewer, error) {
	mode, err := document.ParseRenderMode(cfg.RenderMode)
	if err != nil {
		return nil, err
	}
	doc.SetRenderMode(mode)

	v := &Viewer{log: logger.Named("viewer")}
	v.window, err = window.New(window.Config{
		Title:      "SweepCAD",
		Width:      cfg.Width,
		Height:     cfg.Height,
		Fullscreen: cfg.Fullscreen,
		VSync:      cfg.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// The renderer needs the GL context the window just made.
	width, height := v.window.Size()
	v.renderer, err = renderer.New(renderer.Config{
		Width:     width,
		Height:    height,
		PointSize: cfg.PointSize,
	})
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	v.input = input.New()
	v.controls = renderer.NewBuffer()
	v.curves = renderer.NewBuffer()
	v.mesh = renderer.NewBuffer()
	v.bounds = renderer.NewBuffer()
	v.screenshot = debug.NewScreenshot(cfg.ScreenshotDir, "sweepcad")

	v.session = NewSession(doc, dataPath, width, height)
	v.session.Rotation.Step = cfg.RotateStep
	v.session.Camera.Speed = cfg.CameraSpeed
	v.session.ShowBounds = cfg.ShowBounds
	return v, nil
}

// Session returns the session driven by this viewer.
func (v *Viewer) Session() *Session { return v.session }

// Run processes input and draws until the user quits.
func (v *Viewer) Run() error {
	v.log.Info("starting viewer loop", zap.String("data", v.session.DataPath))

	frames := 0
	fpsTimer := time.Now()
	title := ""

	for !v.session.Quit() {
		if v.input.Update() {
			break
		}
		for _, e := range v.input.Events() {
			v.session.Handle(e)
			if e.Type == input.EventWindowResize {
				v.renderer.Resize(e.Width, e.Height)
			}
		}

		v.sync()
		v.draw()
		if v.session.TakeScreenshot() {
			v.capture()
		}
		v.window.SwapBuffers()

		if t := v.session.Title(); t != title {
			title = t
			v.window.SetTitle(t)
		}

		frames++
		if time.Since(fpsTimer) >= time.Second {
			v.log.Debug("fps", zap.Int("count", frames))
			frames = 0
			fpsTimer = time.Now()
		}
	}
	v.log.Info("viewer loop finished")
	return nil
}

// sync copies document state into the GPU buffers when it changed.
func (v *Viewer) sync() {
	doc := v.session.Doc
	gen := doc.Generation()

	switch doc.Stage() {
	case document.StageProfile:
		v.controls.Sync(gen, Flatten(doc.Profile()), nil)
		v.curves.Sync(gen, Flatten(doc.ProfileCurve()), nil)
	case document.StageTrajectory:
		v.controls.Sync(gen, Flatten(doc.Trajectory()), nil)
		v.curves.Sync(gen, Flatten(doc.TrajectoryCurve()), nil)
	case document.StageMesh:
		g, err := doc.Geometry()
		if err != nil {
			return
		}
		if v.mesh.Sync(gen, g.Flatten(), g.Indices) {
			v.log.Debug("mesh uploaded", zap.Uint64("generation", gen), zap.Int("vertices", g.VertexCount()))
		}
		v.bounds.Sync(gen, debug.BoxLines(g.Bounds(), debug.DefaultBoxPadding), nil)
	}
}

func (v *Viewer) draw() {
	v.renderer.Begin()
	doc := v.session.Doc

	if doc.Stage() != document.StageMesh {
		// Control points are drawn flat, without camera or model transform.
		entry := v.session.EntryMatrix()
		v.renderer.Draw(v.curves, renderer.LineStrip, entry, colorCurve)
		v.renderer.Draw(v.controls, renderer.Points, entry, colorControl)
		return
	}

	prim := renderer.Triangles
	switch doc.RenderMode() {
	case document.RenderPoints:
		prim = renderer.Points
	case document.RenderLines:
		prim = renderer.Lines
	}
	mvp := v.session.MVP()
	v.renderer.Draw(v.mesh, prim, mvp, colorMesh)
	if v.session.ShowBounds {
		v.renderer.Draw(v.bounds, renderer.Segments, mvp, colorBounds)
	}
}

func (v *Viewer) capture() {
	pixels, w, h := v.renderer.ReadPixels()
	path, err := v.screenshot.Capture(pixels, w, h)
	if err != nil {
		v.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	v.log.Info("screenshot saved", zap.String("path", path))
}

// Close releases GPU resources and the window.
func (v *Viewer) Close() {
	for _, b := range []*renderer.Buffer{v.controls, v.curves, v.mesh, v.bounds} {
		if b != nil {
			b.Delete()
		}
	}
	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}
