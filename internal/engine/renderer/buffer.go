package renderer

import (
	"github.com/go-gl/gl/v4.1-core/gl"
)

// Tracker remembers which generation of a source was last copied.
type Tracker struct {
	generation uint64
	valid      bool
}

// Stale reports whether generation differs from the last synced one.
func (t *Tracker) Stale(generation uint64) bool {
	return !t.valid || t.generation != generation
}

// Mark records generation as synced.
func (t *Tracker) Mark(generation uint64) {
	t.generation = generation
	t.valid = true
}

// Invalidate forces the next Stale call to report true.
func (t *Tracker) Invalidate() {
	t.valid = false
}

// Buffer is a VAO with one xyz position stream and an optional index list.
type Buffer struct {
	vao, vbo, ebo uint32

	vertexCount int32
	indexCount  int32
	tracker     Tracker
}

// NewBuffer allocates the GL objects.
func NewBuffer() *Buffer {
	b := &Buffer{}
	gl.GenVertexArrays(1, &b.vao)
	gl.GenBuffers(1, &b.vbo)
	gl.GenBuffers(1, &b.ebo)

	gl.BindVertexArray(b.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 3*4, nil)
	gl.EnableVertexAttribArray(0)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.ebo)
	gl.BindVertexArray(0)
	return b
}

// Sync uploads positions and indices when generation changed since the
// last upload. It returns true if an upload happened.
func (b *Buffer) Sync(generation uint64, positions []float32, indices []uint32) bool {
	if !b.tracker.Stale(generation) {
		return false
	}

	gl.BindVertexArray(b.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	if len(positions) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(positions)*4, gl.Ptr(positions), gl.DYNAMIC_DRAW)
	} else {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, gl.DYNAMIC_DRAW)
	}
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.ebo)
	if len(indices) > 0 {
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.DYNAMIC_DRAW)
	} else {
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, 0, nil, gl.DYNAMIC_DRAW)
	}
	gl.BindVertexArray(0)

	b.vertexCount = int32(len(positions) / 3)
	b.indexCount = int32(len(indices))
	b.tracker.Mark(generation)
	return true
}

// Delete releases the GL objects.
func (b *Buffer) Delete() {
	gl.DeleteBuffers(1, &b.ebo)
	gl.DeleteBuffers(1, &b.vbo)
	gl.DeleteVertexArrays(1, &b.vao)
	b.tracker.Invalidate()
}
