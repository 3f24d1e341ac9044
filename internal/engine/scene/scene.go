// Package scene holds the render objects and the per-frame parameters they
// are drawn with.
package scene

import (
	"github.com/Faultbox/normalmap/internal/engine/gfx"
	"github.com/Faultbox/normalmap/pkg/math"
)

// Program binds a shader pipeline and its per-draw inputs. Implementations
// resolve every uniform and sampler name when they are built, so Bind never
// fails.
type Program interface {
	// Bind makes the program current and uploads the model, view and
	// projection matrices plus whatever else the variant consumes.
	// Variants that sample no textures ignore diffuse and normalMap.
	Bind(params *Params, model math.Mat4, diffuse, normalMap gfx.Texture)
	Name() string
	Close()
}

// Scene is an ordered list of objects. Objects draw in the order they were added.
type Scene struct {
	objects []*Object
}

// New returns an empty scene.
func New() *Scene {
	return &Scene{}
}

// Add appends obj to the draw order.
func (s *Scene) Add(obj *Object) {
	s.objects = append(s.objects, obj)
}

// Objects returns the objects in draw order.
func (s *Scene) Objects() []*Object {
	return s.objects
}

// Find returns the object with the given name, or nil.
func (s *Scene) Find(name string) *Object {
	for _, o := range s.objects {
		if o.Name == name {
			return o
		}
	}
	return nil
}

// Render draws every object with params.
func (s *Scene) Render(params *Params) {
	for _, o := range s.objects {
		o.Render(params)
	}
}

// Close releases every object's GPU resources. Programs are not closed;
// they may be shared between objects and belong to whoever built them.
func (s *Scene) Close() {
	for _, o := range s.objects {
		o.Close()
	}
	s.objects = nil
}
