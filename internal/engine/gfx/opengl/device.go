// Package opengl implements gfx on an OpenGL 4.1 core context.
package opengl

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/normalmap/internal/engine/gfx"
	"github.com/Faultbox/normalmap/internal/logger"
	"github.com/Faultbox/normalmap/pkg/math"
)

// Device is the OpenGL gfx.Device.
// IMPORTANT: Must be created AFTER the OpenGL context exists!
type Device struct {
	samplers map[gfx.TextureUnit]uint32
	log      *zap.Logger
}

// New initializes OpenGL and sets the fixed render state:
// depth test (less), depth write and back-face culling.
func New() (*Device, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	log := logger.Named("gl")
	log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.DepthMask(true)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)

	return &Device{samplers: make(map[gfx.TextureUnit]uint32), log: log}, nil
}

// Close releases sampler objects.
func (d *Device) Close() {
	for unit, s := range d.samplers {
		gl.DeleteSamplers(1, &s)
		delete(d.samplers, unit)
	}
}

// Viewport resizes the GL viewport.
func (d *Device) Viewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

// CompileProgram compiles and links a program, binding layout attributes
// to locations in layout order.
func (d *Device) CompileProgram(vertexSrc, fragmentSrc string, layout gfx.VertexLayout) (gfx.Program, error) {
	id, err := compileProgram(vertexSrc, fragmentSrc, layout)
	if err != nil {
		return nil, err
	}
	d.log.Debug("program linked", zap.Uint32("program", id), zap.Int("attribs", len(layout)))
	return &program{id: id, units: make(map[string]gfx.TextureUnit)}, nil
}

// NewVertexBuffer allocates a vertex buffer and its vertex array object.
func (d *Device) NewVertexBuffer(count int, layout gfx.VertexLayout) (gfx.VertexBuffer, error) {
	if count <= 0 {
		return nil, fmt.Errorf("vertex buffer: invalid count %d", count)
	}
	vb := &vertexBuffer{
		count:  count,
		layout: layout,
		data:   make([]float32, count*layout.Floats()),
	}
	gl.GenVertexArrays(1, &vb.vao)
	gl.GenBuffers(1, &vb.vbo)
	return vb, nil
}

// NewIndexBuffer allocates an index buffer.
func (d *Device) NewIndexBuffer(count int) (gfx.IndexBuffer, error) {
	if count <= 0 {
		return nil, fmt.Errorf("index buffer: invalid count %d", count)
	}
	ib := &indexBuffer{count: count, data: make([]uint32, count)}
	gl.GenBuffers(1, &ib.ebo)
	return ib, nil
}

// NewTexture uploads an RGBA image with a full mipmap chain.
func (d *Device) NewTexture(img *image.RGBA) (gfx.Texture, error) {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("texture: empty image")
	}

	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(w), int32(h), 0, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pix[0]))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	return &texture{id: id, width: w, height: h}, nil
}

// SetMatrix uploads a 4x4 matrix uniform.
func (d *Device) SetMatrix(loc gfx.Location, m math.Mat4) {
	gl.UniformMatrix4fv(int32(loc), 1, false, m.Ptr())
}

// SetFloat3 uploads a vec3 uniform.
func (d *Device) SetFloat3(loc gfx.Location, v math.Vec3) {
	gl.Uniform3f(int32(loc), v.X, v.Y, v.Z)
}

// SetFloat uploads a float uniform.
func (d *Device) SetFloat(loc gfx.Location, f float32) {
	gl.Uniform1f(int32(loc), f)
}

// SetTexture binds tex to the given unit, or unbinds the unit when tex is nil.
func (d *Device) SetTexture(unit gfx.TextureUnit, tex gfx.Texture) {
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	if tex == nil {
		gl.BindTexture(gl.TEXTURE_2D, 0)
		return
	}
	gl.BindTexture(gl.TEXTURE_2D, tex.ID())
}

// SetTextureAddressing sets the wrap mode of a texture unit through a sampler object,
// so it applies to whatever texture is later bound there.
func (d *Device) SetTextureAddressing(unit gfx.TextureUnit, u, v gfx.Wrap) {
	s, ok := d.samplers[unit]
	if !ok {
		gl.GenSamplers(1, &s)
		gl.SamplerParameteri(s, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
		gl.SamplerParameteri(s, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
		d.samplers[unit] = s
	}
	gl.SamplerParameteri(s, gl.TEXTURE_WRAP_S, wrapMode(u))
	gl.SamplerParameteri(s, gl.TEXTURE_WRAP_T, wrapMode(v))
	gl.BindSampler(uint32(unit), s)
}

// Clear clears color and depth. argb is packed as 0xAARRGGBB.
func (d *Device) Clear(argb uint32, depth float32) {
	a := float32(argb>>24&0xff) / 255
	r := float32(argb>>16&0xff) / 255
	g := float32(argb>>8&0xff) / 255
	b := float32(argb&0xff) / 255
	gl.ClearColor(r, g, b, a)
	gl.ClearDepth(float64(depth))
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// DrawIndexed draws every index of ib as triangles over vb.
func (d *Device) DrawIndexed(vb gfx.VertexBuffer, ib gfx.IndexBuffer) {
	v := vb.(*vertexBuffer)
	i := ib.(*indexBuffer)
	gl.BindVertexArray(v.vao)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, i.ebo)
	gl.DrawElements(gl.TRIANGLES, int32(i.count), gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}

// ReadPixels reads the back buffer as tightly packed RGBA.
func (d *Device) ReadPixels(width, height int) []byte {
	pixels := make([]byte, width*height*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadBuffer(gl.BACK)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))
	return pixels
}

func wrapMode(w gfx.Wrap) int32 {
	switch w {
	case gfx.WrapRepeat:
		return gl.REPEAT
	case gfx.WrapMirror:
		return gl.MIRRORED_REPEAT
	default:
		return gl.CLAMP_TO_EDGE
	}
}
