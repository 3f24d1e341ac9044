package scene

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/normalmap/internal/engine/gfx"
	"github.com/Faultbox/normalmap/internal/engine/mesh"
	"github.com/Faultbox/normalmap/internal/engine/texture"
	"github.com/Faultbox/normalmap/internal/logger"
	"github.com/Faultbox/normalmap/pkg/math"
)

// ObjectSpec describes one render object to build.
type ObjectSpec struct {
	Name      string
	Mesh      string // mesh reference, see mesh.Load
	Diffuse   string // image reference, see texture.Load; empty for none
	NormalMap string // image reference; empty for none
	Scale     float32
	Program   Program
	Policy    mesh.DegeneratePolicy

	// Dir resolves relative mesh and image paths.
	Dir string

	// TrackLight marks the object as the light marker: the frame loop
	// moves it to the light position every tick.
	TrackLight bool
}

// Object is one drawable mesh with its buffers, textures and program.
type Object struct {
	Name       string
	Model      math.Mat4
	TrackLight bool

	// Stats is the tangent build summary, kept for diagnostics.
	Stats mesh.TangentStats

	device    gfx.Device
	program   Program
	vb        gfx.VertexBuffer
	ib        gfx.IndexBuffer
	diffuse   gfx.Texture
	normalMap gfx.Texture
}

// NewObject loads the mesh, builds its tangent basis, uploads vertex and
// index buffers and loads the optional textures. Model starts as identity.
// Any failure is an asset error and nothing is left allocated.
func NewObject(device gfx.Device, spec ObjectSpec) (obj *Object, err error) {
	if spec.Program == nil {
		return nil, fmt.Errorf("object %q: no program", spec.Name)
	}
	if spec.Scale <= 0 {
		return nil, fmt.Errorf("object %q: scale must be positive, got %g", spec.Name, spec.Scale)
	}

	raw, err := mesh.Load(spec.Mesh, spec.Dir)
	if err != nil {
		return nil, fmt.Errorf("object %q: %w", spec.Name, err)
	}
	log := logger.Named("scene").With(zap.String("object", spec.Name))
	if n := raw.Unreferenced(); n > 0 {
		log.Warn("mesh has vertices outside any triangle; their tangents stay zero", zap.Int("count", n))
	}

	vertices := mesh.Expand(raw, spec.Scale)
	stats := mesh.BuildTangents(vertices, raw.Indices, spec.Policy)
	if stats.Skipped > 0 {
		log.Warn("skipped triangles with degenerate texcoords", zap.Int("count", stats.Skipped))
	}
	if stats.ZeroLength > 0 {
		log.Warn("zero-length tangents written", zap.Int("count", stats.ZeroLength))
	}
	if stats.NonFinite > 0 {
		log.Warn("non-finite tangents written", zap.Int("count", stats.NonFinite))
	}

	obj = &Object{
		Name:       spec.Name,
		Model:      math.Identity(),
		TrackLight: spec.TrackLight,
		Stats:      stats,
		device:     device,
		program:    spec.Program,
	}
	defer func() {
		if err != nil {
			obj.Close()
			obj = nil
		}
	}()

	if obj.vb, err = device.NewVertexBuffer(len(vertices), mesh.Layout); err != nil {
		return obj, fmt.Errorf("object %q: %w", spec.Name, err)
	}
	data := obj.vb.Lock()
	for i := range vertices {
		vertices[i].Put(data[i*mesh.VertexFloats:])
	}
	obj.vb.Unlock()

	if obj.ib, err = device.NewIndexBuffer(len(raw.Indices)); err != nil {
		return obj, fmt.Errorf("object %q: %w", spec.Name, err)
	}
	copy(obj.ib.Lock(), raw.Indices)
	obj.ib.Unlock()

	if obj.diffuse, err = loadTexture(device, spec.Diffuse, spec.Dir); err != nil {
		return obj, fmt.Errorf("object %q: diffuse: %w", spec.Name, err)
	}
	if obj.normalMap, err = loadTexture(device, spec.NormalMap, spec.Dir); err != nil {
		return obj, fmt.Errorf("object %q: normal map: %w", spec.Name, err)
	}

	log.Info("object ready",
		zap.String("mesh", spec.Mesh),
		zap.String("program", spec.Program.Name()),
		zap.Int("vertices", len(vertices)),
		zap.Int("triangles", stats.Triangles))
	return obj, nil
}

// loadTexture returns nil, nil for an empty reference.
func loadTexture(device gfx.Device, ref, dir string) (gfx.Texture, error) {
	if ref == "" {
		return nil, nil
	}
	img, err := texture.Load(ref, dir)
	if err != nil {
		return nil, err
	}
	return device.NewTexture(img)
}

// Render binds the object's program and issues one indexed draw.
func (o *Object) Render(params *Params) {
	o.program.Bind(params, o.Model, o.diffuse, o.normalMap)
	o.device.DrawIndexed(o.vb, o.ib)
}

// Program returns the program the object draws with.
func (o *Object) Program() Program {
	return o.program
}

// Close releases the object's buffers and textures.
func (o *Object) Close() {
	for _, c := range []interface{ Close() }{o.vb, o.ib, o.diffuse, o.normalMap} {
		if c != nil {
			c.Close()
		}
	}
	o.vb, o.ib, o.diffuse, o.normalMap = nil, nil, nil, nil
}
