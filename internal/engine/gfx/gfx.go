// Package gfx is the graphics abstraction the renderer draws through.
//
// It exposes exactly what the scene code needs from a GPU backend: program
// compilation with named uniform and texture-unit lookup, buffers filled with
// a lock/write/unlock cycle, 2D textures and an indexed draw. The OpenGL
// backend lives in gfx/opengl; gfx/gfxtest records calls for tests.
package gfx

import (
	"errors"
	"image"

	"github.com/Faultbox/normalmap/pkg/math"
)

// ErrNotFound is returned by Program lookups for names the linked program does not expose.
var ErrNotFound = errors.New("not found in program")

// Location is a resolved uniform location.
type Location int32

// TextureUnit is a resolved sampler bind point.
type TextureUnit int32

// Wrap is a texture addressing mode.
type Wrap int

const (
	WrapClamp Wrap = iota
	WrapRepeat
	WrapMirror
)

// AttribType describes a vertex attribute's component count.
type AttribType int

const (
	Float2 AttribType = 2
	Float3 AttribType = 3
)

// Attrib is one named vertex attribute.
type Attrib struct {
	Name string
	Type AttribType
}

// VertexLayout lists attributes in buffer order. Attributes are tightly packed float32s.
type VertexLayout []Attrib

// Floats returns the number of float32s per vertex.
func (l VertexLayout) Floats() int {
	n := 0
	for _, a := range l {
		n += int(a.Type)
	}
	return n
}

// Stride returns the vertex stride in bytes.
func (l VertexLayout) Stride() int {
	return l.Floats() * 4
}

// Texture is an uploaded 2D texture. A nil Texture means "no texture".
type Texture interface {
	ID() uint32
	Size() (int, int)
	Close()
}

// VertexBuffer holds interleaved float32 vertex data.
type VertexBuffer interface {
	// Lock returns the writable backing store, Count()*Layout().Floats() long.
	Lock() []float32
	// Unlock uploads whatever was written since Lock.
	Unlock()
	Count() int
	Layout() VertexLayout
	Close()
}

// IndexBuffer holds triangle indices.
type IndexBuffer interface {
	Lock() []uint32
	Unlock()
	Count() int
	Close()
}

// Program is a linked vertex+fragment pipeline.
type Program interface {
	// Use makes the program current.
	Use()
	// Uniform resolves a uniform by name. Missing names wrap ErrNotFound.
	Uniform(name string) (Location, error)
	// TextureUnit resolves a sampler by name and assigns it a unit. Missing names wrap ErrNotFound.
	TextureUnit(name string) (TextureUnit, error)
	Close()
}

// Device creates GPU resources and issues state changes and draws.
type Device interface {
	CompileProgram(vertexSrc, fragmentSrc string, layout VertexLayout) (Program, error)
	NewVertexBuffer(count int, layout VertexLayout) (VertexBuffer, error)
	NewIndexBuffer(count int) (IndexBuffer, error)
	NewTexture(img *image.RGBA) (Texture, error)

	SetMatrix(loc Location, m math.Mat4)
	SetFloat3(loc Location, v math.Vec3)
	SetFloat(loc Location, f float32)
	// SetTexture binds tex to unit; a nil tex unbinds it.
	SetTexture(unit TextureUnit, tex Texture)
	SetTextureAddressing(unit TextureUnit, u, v Wrap)

	// Clear clears color (packed 0xAARRGGBB) and depth.
	Clear(argb uint32, depth float32)
	DrawIndexed(vb VertexBuffer, ib IndexBuffer)

	// ReadPixels returns the RGBA contents of the back buffer, bottom row first.
	ReadPixels(width, height int) []byte
}
