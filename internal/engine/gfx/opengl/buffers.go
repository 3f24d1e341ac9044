package opengl

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/normalmap/internal/engine/gfx"
)

type vertexBuffer struct {
	vao    uint32
	vbo    uint32
	count  int
	layout gfx.VertexLayout
	data   []float32
}

func (b *vertexBuffer) Lock() []float32 {
	return b.data
}

// Unlock uploads the data and (re)describes the attributes in layout order.
func (b *vertexBuffer) Unlock() {
	gl.BindVertexArray(b.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(b.data)*4, unsafe.Pointer(&b.data[0]), gl.STATIC_DRAW)

	stride := int32(b.layout.Stride())
	offset := uintptr(0)
	for i, attr := range b.layout {
		gl.VertexAttribPointerWithOffset(uint32(i), int32(attr.Type), gl.FLOAT, false, stride, offset)
		gl.EnableVertexAttribArray(uint32(i))
		offset += uintptr(attr.Type) * 4
	}

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

func (b *vertexBuffer) Count() int               { return b.count }
func (b *vertexBuffer) Layout() gfx.VertexLayout { return b.layout }

func (b *vertexBuffer) Close() {
	if b.vao != 0 {
		gl.DeleteVertexArrays(1, &b.vao)
		b.vao = 0
	}
	if b.vbo != 0 {
		gl.DeleteBuffers(1, &b.vbo)
		b.vbo = 0
	}
}

type indexBuffer struct {
	ebo   uint32
	count int
	data  []uint32
}

func (b *indexBuffer) Lock() []uint32 {
	return b.data
}

// Unlock uploads through the ARRAY_BUFFER target; element bindings belong to a
// vertex array and one is only attached at draw time.
func (b *indexBuffer) Unlock() {
	gl.BindBuffer(gl.ARRAY_BUFFER, b.ebo)
	gl.BufferData(gl.ARRAY_BUFFER, len(b.data)*4, unsafe.Pointer(&b.data[0]), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

func (b *indexBuffer) Count() int { return b.count }

func (b *indexBuffer) Close() {
	if b.ebo != 0 {
		gl.DeleteBuffers(1, &b.ebo)
		b.ebo = 0
	}
}

type texture struct {
	id            uint32
	width, height int
}

func (t *texture) ID() uint32       { return t.id }
func (t *texture) Size() (int, int) { return t.width, t.height }

func (t *texture) Close() {
	if t.id != 0 {
		gl.DeleteTextures(1, &t.id)
		t.id = 0
	}
}
