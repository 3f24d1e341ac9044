// Package gfxtest provides a recording gfx.Device for tests.
//
// Programs compiled on the fake expose exactly the uniforms declared in their
// GLSL sources, so a test that compiles the real shader files checks the
// name contract between a program variant and its shaders.
package gfxtest

import (
	"fmt"
	"image"
	"regexp"

	"github.com/Faultbox/normalmap/internal/engine/gfx"
	"github.com/Faultbox/normalmap/pkg/math"
)

// Op names a recorded device call.
type Op string

const (
	OpUse        Op = "use"
	OpMatrix     Op = "matrix"
	OpFloat3     Op = "float3"
	OpFloat      Op = "float"
	OpTexture    Op = "texture"
	OpAddressing Op = "addressing"
	OpClear      Op = "clear"
	OpDraw       Op = "draw"
)

// Call is one recorded state change or draw.
type Call struct {
	Op      Op
	Name    string // uniform or sampler name, or program name for OpUse
	Matrix  math.Mat4
	Vec     math.Vec3
	Float   float32
	Color   uint32
	Texture gfx.Texture
	WrapU   gfx.Wrap
	WrapV   gfx.Wrap
	VB      gfx.VertexBuffer
	IB      gfx.IndexBuffer
}

var uniformDecl = regexp.MustCompile(`uniform\s+\w+\s+(\w+)\s*;`)

// Device records every call. It is not safe for concurrent use.
type Device struct {
	Calls    []Call
	Programs []*Program

	VertexBuffers []*VertexBuffer
	IndexBuffers  []*IndexBuffer
	Textures      []*Texture

	// CompileErr, when set, is returned by CompileProgram.
	CompileErr error

	// Pixels is what ReadPixels returns.
	Pixels []byte

	names   map[gfx.Location]string
	units   map[gfx.TextureUnit]string
	nextLoc gfx.Location
}

// NewDevice returns an empty recording device.
func NewDevice() *Device {
	return &Device{
		names: make(map[gfx.Location]string),
		units: make(map[gfx.TextureUnit]string),
	}
}

// Reset drops recorded calls but keeps resources.
func (d *Device) Reset() {
	d.Calls = d.Calls[:0]
}

// CallsOf returns recorded calls with the given op, in order.
func (d *Device) CallsOf(op Op) []Call {
	var out []Call
	for _, c := range d.Calls {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

// Find returns the last call with the given op and name.
func (d *Device) Find(op Op, name string) (Call, bool) {
	for i := len(d.Calls) - 1; i >= 0; i-- {
		if d.Calls[i].Op == op && d.Calls[i].Name == name {
			return d.Calls[i], true
		}
	}
	return Call{}, false
}

func (d *Device) CompileProgram(vertexSrc, fragmentSrc string, layout gfx.VertexLayout) (gfx.Program, error) {
	if d.CompileErr != nil {
		return nil, d.CompileErr
	}
	p := &Program{
		dev:      d,
		Name:     fmt.Sprintf("program%d", len(d.Programs)+1),
		Layout:   layout,
		declared: make(map[string]bool),
		units:    make(map[string]gfx.TextureUnit),
	}
	for _, src := range []string{vertexSrc, fragmentSrc} {
		for _, m := range uniformDecl.FindAllStringSubmatch(src, -1) {
			p.declared[m[1]] = true
		}
	}
	d.Programs = append(d.Programs, p)
	return p, nil
}

func (d *Device) NewVertexBuffer(count int, layout gfx.VertexLayout) (gfx.VertexBuffer, error) {
	if count <= 0 {
		return nil, fmt.Errorf("vertex buffer: invalid count %d", count)
	}
	b := &VertexBuffer{count: count, layout: layout, Data: make([]float32, count*layout.Floats())}
	d.VertexBuffers = append(d.VertexBuffers, b)
	return b, nil
}

func (d *Device) NewIndexBuffer(count int) (gfx.IndexBuffer, error) {
	if count <= 0 {
		return nil, fmt.Errorf("index buffer: invalid count %d", count)
	}
	b := &IndexBuffer{count: count, Data: make([]uint32, count)}
	d.IndexBuffers = append(d.IndexBuffers, b)
	return b, nil
}

func (d *Device) NewTexture(img *image.RGBA) (gfx.Texture, error) {
	b := img.Bounds()
	t := &Texture{W: b.Dx(), H: b.Dy()}
	d.Textures = append(d.Textures, t)
	return t, nil
}

func (d *Device) SetMatrix(loc gfx.Location, m math.Mat4) {
	d.Calls = append(d.Calls, Call{Op: OpMatrix, Name: d.names[loc], Matrix: m})
}

func (d *Device) SetFloat3(loc gfx.Location, v math.Vec3) {
	d.Calls = append(d.Calls, Call{Op: OpFloat3, Name: d.names[loc], Vec: v})
}

func (d *Device) SetFloat(loc gfx.Location, f float32) {
	d.Calls = append(d.Calls, Call{Op: OpFloat, Name: d.names[loc], Float: f})
}

func (d *Device) SetTexture(unit gfx.TextureUnit, tex gfx.Texture) {
	d.Calls = append(d.Calls, Call{Op: OpTexture, Name: d.units[unit], Texture: tex})
}

func (d *Device) SetTextureAddressing(unit gfx.TextureUnit, u, v gfx.Wrap) {
	d.Calls = append(d.Calls, Call{Op: OpAddressing, Name: d.units[unit], WrapU: u, WrapV: v})
}

func (d *Device) Clear(argb uint32, depth float32) {
	d.Calls = append(d.Calls, Call{Op: OpClear, Color: argb, Float: depth})
}

func (d *Device) DrawIndexed(vb gfx.VertexBuffer, ib gfx.IndexBuffer) {
	d.Calls = append(d.Calls, Call{Op: OpDraw, VB: vb, IB: ib})
}

// ReadPixels returns Pixels when it has the requested size, zeros otherwise.
func (d *Device) ReadPixels(width, height int) []byte {
	if len(d.Pixels) == width*height*4 {
		return d.Pixels
	}
	return make([]byte, width*height*4)
}

// Program is a fake linked program.
type Program struct {
	Name   string
	Layout gfx.VertexLayout
	Closed bool

	dev      *Device
	declared map[string]bool
	units    map[string]gfx.TextureUnit
	nextUnit gfx.TextureUnit
}

func (p *Program) Use() {
	p.dev.Calls = append(p.dev.Calls, Call{Op: OpUse, Name: p.Name})
}

func (p *Program) Uniform(name string) (gfx.Location, error) {
	if !p.declared[name] {
		return -1, fmt.Errorf("uniform %q: %w", name, gfx.ErrNotFound)
	}
	loc := p.dev.nextLoc
	p.dev.nextLoc++
	p.dev.names[loc] = name
	return loc, nil
}

func (p *Program) TextureUnit(name string) (gfx.TextureUnit, error) {
	if unit, ok := p.units[name]; ok {
		return unit, nil
	}
	if !p.declared[name] {
		return -1, fmt.Errorf("texture unit %q: %w", name, gfx.ErrNotFound)
	}
	unit := p.nextUnit
	p.nextUnit++
	p.units[name] = unit
	p.dev.units[unit] = name
	return unit, nil
}

func (p *Program) Close() { p.Closed = true }

// VertexBuffer is a CPU-side vertex buffer. Data holds what was written.
type VertexBuffer struct {
	Data     []float32
	Unlocked int
	Closed   bool

	count  int
	layout gfx.VertexLayout
}

func (b *VertexBuffer) Lock() []float32          { return b.Data }
func (b *VertexBuffer) Unlock()                  { b.Unlocked++ }
func (b *VertexBuffer) Count() int               { return b.count }
func (b *VertexBuffer) Layout() gfx.VertexLayout { return b.layout }
func (b *VertexBuffer) Close()                   { b.Closed = true }

// IndexBuffer is a CPU-side index buffer.
type IndexBuffer struct {
	Data     []uint32
	Unlocked int
	Closed   bool

	count int
}

func (b *IndexBuffer) Lock() []uint32 { return b.Data }
func (b *IndexBuffer) Unlock()        { b.Unlocked++ }
func (b *IndexBuffer) Count() int     { return b.count }
func (b *IndexBuffer) Close()         { b.Closed = true }

// Texture is a fake uploaded texture.
type Texture struct {
	W, H   int
	Closed bool
}

func (t *Texture) ID() uint32       { return 0 }
func (t *Texture) Size() (int, int) { return t.W, t.H }
func (t *Texture) Close()           { t.Closed = true }

var (
	_ gfx.Device       = (*Device)(nil)
	_ gfx.Program      = (*Program)(nil)
	_ gfx.VertexBuffer = (*VertexBuffer)(nil)
	_ gfx.IndexBuffer  = (*IndexBuffer)(nil)
	_ gfx.Texture      = (*Texture)(nil)
)
