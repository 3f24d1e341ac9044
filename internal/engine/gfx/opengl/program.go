package opengl

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/normalmap/internal/engine/gfx"
)

type program struct {
	id       uint32
	units    map[string]gfx.TextureUnit
	nextUnit int32
}

func (p *program) Use() {
	gl.UseProgram(p.id)
}

// Uniform returns the uniform location for the given name.
// Inactive uniforms (optimized out by the GLSL compiler) count as missing.
func (p *program) Uniform(name string) (gfx.Location, error) {
	loc := gl.GetUniformLocation(p.id, gl.Str(name+"\x00"))
	if loc < 0 {
		return -1, fmt.Errorf("uniform %q: %w", name, gfx.ErrNotFound)
	}
	return gfx.Location(loc), nil
}

// TextureUnit assigns the next free unit to the named sampler uniform.
// Asking twice for the same name returns the same unit.
func (p *program) TextureUnit(name string) (gfx.TextureUnit, error) {
	if unit, ok := p.units[name]; ok {
		return unit, nil
	}
	loc := gl.GetUniformLocation(p.id, gl.Str(name+"\x00"))
	if loc < 0 {
		return -1, fmt.Errorf("texture unit %q: %w", name, gfx.ErrNotFound)
	}

	unit := gfx.TextureUnit(p.nextUnit)
	p.nextUnit++
	gl.UseProgram(p.id)
	gl.Uniform1i(loc, int32(unit))
	p.units[name] = unit
	return unit, nil
}

func (p *program) Close() {
	if p.id != 0 {
		gl.DeleteProgram(p.id)
		p.id = 0
	}
}

// compileProgram compiles vertex and fragment shaders and links them into a program.
func compileProgram(vertexSrc, fragmentSrc string, layout gfx.VertexLayout) (uint32, error) {
	vertShader, err := compileShader(vertexSrc, gl.VERTEX_SHADER, "vertex")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vertShader)

	fragShader, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER, "fragment")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fragShader)

	prog := gl.CreateProgram()
	gl.AttachShader(prog, vertShader)
	gl.AttachShader(prog, fragShader)
	for i, attr := range layout {
		gl.BindAttribLocation(prog, uint32(i), gl.Str(attr.Name+"\x00"))
	}
	gl.LinkProgram(prog)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen+1)
		gl.GetProgramInfoLog(prog, logLen, nil, &log[0])
		gl.DeleteProgram(prog)
		return 0, fmt.Errorf("link: %s", string(log))
	}

	return prog, nil
}

// compileShader compiles a single shader of the given type.
func compileShader(source string, shaderType uint32, name string) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen+1)
		gl.GetShaderInfoLog(shader, logLen, nil, &log[0])
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%s shader: %s", name, string(log))
	}

	return shader, nil
}
