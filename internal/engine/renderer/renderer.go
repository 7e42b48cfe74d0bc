// Package renderer draws vertex buffers with a single flat-color program.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/sweepcad/internal/engine/shader"
	"github.com/Faultbox/sweepcad/internal/logger"
	"github.com/Faultbox/sweepcad/pkg/math"
)

// Primitive selects how a buffer is drawn.
type Primitive int

const (
	Points Primitive = iota
	Lines            // triangle edges
	Triangles
	LineStrip // vertices in order, no indices
	Segments  // vertex pairs, no indices
)

// Config holds renderer configuration.
type Config struct {
	Width     int
	Height    int
	PointSize float32
}

// Renderer owns the GL program and frame state.
type Renderer struct {
	config  Config
	program *shader.Program
	log     *zap.Logger
}

const vertexShader = `
#version 410 core

layout (location = 0) in vec3 aPos;

uniform mat4 uMVP;
uniform float uPointSize;

void main() {
	gl_Position = uMVP * vec4(aPos, 1.0);
	gl_PointSize = uPointSize;
}
`

const fragmentShader = `
#version 410 core

uniform vec3 uColor;
out vec4 FragColor;

void main() {
	FragColor = vec4(uColor, 1.0);
}
`

// New loads GL entry points and compiles the program. It must run after
// the GL context exists.
func New(cfg Config) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r := &Renderer{config: cfg, log: logger.Named("renderer")}
	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))))

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.ClearColor(1, 1, 1, 1)

	var err error
	r.program, err = shader.Compile(vertexShader, fragmentShader)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}
	r.Resize(cfg.Width, cfg.Height)
	return r, nil
}

// Close releases the program.
func (r *Renderer) Close() {
	r.program.Delete()
}

// Resize updates the viewport.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized", zap.Int("width", width), zap.Int("height", height))
}

// Aspect returns width / height of the viewport.
func (r *Renderer) Aspect() float32 {
	if r.config.Height == 0 {
		return 1
	}
	return float32(r.config.Width) / float32(r.config.Height)
}

// Begin clears the frame and binds the program.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	r.program.Use()
	r.program.SetFloat("uPointSize", r.config.PointSize)
}

// Draw renders b with the given transform and color.
func (r *Renderer) Draw(b *Buffer, prim Primitive, mvp math.Mat4, color math.Vec3) {
	if b.vertexCount == 0 {
		return
	}
	r.program.SetMat4("uMVP", mvp)
	r.program.SetVec3("uColor", color)

	gl.BindVertexArray(b.vao)
	defer gl.BindVertexArray(0)

	switch prim {
	case Points:
		gl.DrawArrays(gl.POINTS, 0, b.vertexCount)
	case LineStrip:
		gl.DrawArrays(gl.LINE_STRIP, 0, b.vertexCount)
	case Segments:
		gl.DrawArrays(gl.LINES, 0, b.vertexCount)
	case Lines, Triangles:
		if b.indexCount == 0 {
			return
		}
		mode := uint32(gl.FILL)
		if prim == Lines {
			mode = gl.LINE
		}
		gl.PolygonMode(gl.FRONT_AND_BACK, mode)
		gl.DrawElements(gl.TRIANGLES, b.indexCount, gl.UNSIGNED_INT, nil)
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}
}

// ReadPixels returns the current framebuffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	if len(pixels) == 0 {
		return pixels, w, h
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, w, h
}
