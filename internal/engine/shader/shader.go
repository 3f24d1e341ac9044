// Package shader provides the program variants objects draw with.
//
// Every variant resolves all of its uniform and sampler names when it is
// built and reports the first missing one as a *LinkError. After that,
// Bind only uploads state and cannot fail.
package shader

import (
	"errors"
	"fmt"

	"github.com/Faultbox/normalmap/internal/engine/gfx"
	"github.com/Faultbox/normalmap/internal/engine/scene"
	"github.com/Faultbox/normalmap/pkg/math"
)

// Kind of a name a program failed to resolve.
const (
	KindUniform = "uniform"
	KindSampler = "sampler"
)

// LinkError reports a name the linked program does not expose. This is a
// setup failure; the program is unusable.
type LinkError struct {
	Program string
	Name    string
	Kind    string
	Err     error
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("program %q: %s %q not found", e.Program, e.Kind, e.Name)
}

func (e *LinkError) Unwrap() error {
	return e.Err
}

// resolver collects locations for one program and stops at the first miss.
type resolver struct {
	name string
	prog gfx.Program
	err  error
}

func (r *resolver) uniform(name string) gfx.Location {
	if r.err != nil {
		return -1
	}
	loc, err := r.prog.Uniform(name)
	if err != nil {
		r.err = &LinkError{Program: r.name, Name: name, Kind: KindUniform, Err: err}
		return -1
	}
	return loc
}

func (r *resolver) sampler(name string) gfx.TextureUnit {
	if r.err != nil {
		return -1
	}
	unit, err := r.prog.TextureUnit(name)
	if err != nil {
		r.err = &LinkError{Program: r.name, Name: name, Kind: KindSampler, Err: err}
		return -1
	}
	return unit
}

// base is the part every variant shares: the pipeline and the three
// transform matrices.
type base struct {
	name   string
	device gfx.Device
	prog   gfx.Program

	model      gfx.Location
	view       gfx.Location
	projection gfx.Location
}

func newBase(r *resolver, device gfx.Device) base {
	return base{
		name:       r.name,
		device:     device,
		prog:       r.prog,
		model:      r.uniform("M"),
		view:       r.uniform("V"),
		projection: r.uniform("P"),
	}
}

// bind activates the pipeline and uploads M, V and P, in that order.
func (b *base) bind(params *scene.Params, model math.Mat4) {
	b.prog.Use()
	b.device.SetMatrix(b.model, model)
	b.device.SetMatrix(b.view, params.View)
	b.device.SetMatrix(b.projection, params.Projection)
}

func (b *base) Name() string { return b.name }

func (b *base) Close() { b.prog.Close() }

// Plain draws with the transform matrices only. It is the fallback for
// shaders that need nothing else.
type Plain struct {
	base
}

// NewPlain wraps a linked program.
func NewPlain(device gfx.Device, name string, prog gfx.Program) (*Plain, error) {
	r := &resolver{name: name, prog: prog}
	p := &Plain{base: newBase(r, device)}
	if r.err != nil {
		return nil, r.err
	}
	return p, nil
}

// Bind uploads M, V and P. Textures are ignored.
func (p *Plain) Bind(params *scene.Params, model math.Mat4, _, _ gfx.Texture) {
	p.bind(params, model)
}

// NormalMapped samples a diffuse texture and a tangent-space normal map and
// lights the surface from a point light.
type NormalMapped struct {
	base

	diffuseUnit   gfx.TextureUnit
	normalMapUnit gfx.TextureUnit
	light         gfx.Location
	eye           gfx.Location
}

// NewNormalMapped wraps a linked program exposing tex, normalMap, light and
// eye besides M, V and P. The diffuse unit is set to repeat in both
// directions.
func NewNormalMapped(device gfx.Device, name string, prog gfx.Program) (*NormalMapped, error) {
	r := &resolver{name: name, prog: prog}
	p := &NormalMapped{
		base:          newBase(r, device),
		diffuseUnit:   r.sampler("tex"),
		normalMapUnit: r.sampler("normalMap"),
		light:         r.uniform("light"),
		eye:           r.uniform("eye"),
	}
	if r.err != nil {
		return nil, r.err
	}
	device.SetTextureAddressing(p.diffuseUnit, gfx.WrapRepeat, gfx.WrapRepeat)
	return p, nil
}

// Bind uploads M, V, P, binds both textures and uploads the light and eye
// positions. A nil texture leaves its unit unbound.
func (p *NormalMapped) Bind(params *scene.Params, model math.Mat4, diffuse, normalMap gfx.Texture) {
	p.bind(params, model)
	p.device.SetTexture(p.diffuseUnit, diffuse)
	p.device.SetTexture(p.normalMapUnit, normalMap)
	p.device.SetFloat3(p.light, params.Light)
	p.device.SetFloat3(p.eye, params.Eye)
}

// Cutout draws an animated shape driven by time; it samples no textures.
type Cutout struct {
	base

	time       gfx.Location
	duration   gfx.Location
	openAngle  gfx.Location
	closeAngle gfx.Location
}

// NewCutout wraps a linked program exposing time, duration, openAngle and
// closeAngle besides M, V and P.
func NewCutout(device gfx.Device, name string, prog gfx.Program) (*Cutout, error) {
	r := &resolver{name: name, prog: prog}
	p := &Cutout{
		base:       newBase(r, device),
		time:       r.uniform("time"),
		duration:   r.uniform("duration"),
		openAngle:  r.uniform("openAngle"),
		closeAngle: r.uniform("closeAngle"),
	}
	if r.err != nil {
		return nil, r.err
	}
	return p, nil
}

// Bind uploads M, V, P and the four effect scalars. Textures are ignored.
func (p *Cutout) Bind(params *scene.Params, model math.Mat4, _, _ gfx.Texture) {
	p.bind(params, model)
	p.device.SetFloat(p.time, params.Time)
	p.device.SetFloat(p.duration, params.Duration)
	p.device.SetFloat(p.openAngle, params.OpenAngle)
	p.device.SetFloat(p.closeAngle, params.CloseAngle)
}

// IsLinkError reports whether err is or wraps a *LinkError.
func IsLinkError(err error) bool {
	var le *LinkError
	return errors.As(err, &le)
}

var (
	_ scene.Program = (*Plain)(nil)
	_ scene.Program = (*NormalMapped)(nil)
	_ scene.Program = (*Cutout)(nil)
)
