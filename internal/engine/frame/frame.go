// Package frame advances the scene state once per tick and produces the
// parameters every object is drawn with.
package frame

import (
	"time"

	"github.com/Faultbox/normalmap/internal/engine/camera"
	"github.com/Faultbox/normalmap/internal/engine/lighting"
	"github.com/Faultbox/normalmap/internal/engine/scene"
	"github.com/Faultbox/normalmap/pkg/math"
)

// Effect holds the cutout animation constants copied into every Params.
type Effect struct {
	OpenAngle  float32 // radians
	CloseAngle float32 // radians
	Duration   float32 // seconds
}

// Loop owns the camera and light and writes them into Params each tick.
type Loop struct {
	Camera *camera.Fly
	Light  lighting.Orbit
	Lens   camera.Lens
	Effect Effect

	scene  *scene.Scene
	params scene.Params
}

// New creates a loop over sc.
func New(cam *camera.Fly, light lighting.Orbit, lens camera.Lens, effect Effect, sc *scene.Scene) *Loop {
	return &Loop{
		Camera: cam,
		Light:  light,
		Lens:   lens,
		Effect: effect,
		scene:  sc,
	}
}

// Tick advances to time t since start with the movement flags held this
// tick. The light position depends on t only; the camera moves one step per
// flagged axis per call. Objects marked TrackLight are moved to the light.
//
// The returned Params is owned by the loop and overwritten by the next Tick.
func (l *Loop) Tick(t time.Duration, m camera.Movement) *scene.Params {
	seconds := float32(t.Seconds())
	light := l.Light.Position(seconds)
	l.Camera.Update(m)

	l.params = scene.Params{
		View:       l.Camera.ViewMatrix(),
		Projection: l.Lens.ProjectionMatrix(),
		Eye:        l.Camera.Eye,
		Light:      light,
		Time:       seconds,
		OpenAngle:  l.Effect.OpenAngle,
		CloseAngle: l.Effect.CloseAngle,
		Duration:   l.Effect.Duration,
		Frame:      l.params.Frame + 1,
	}

	if l.scene != nil {
		marker := math.TranslateVec3(light)
		for _, o := range l.scene.Objects() {
			if o.TrackLight {
				o.Model = marker
			}
		}
	}

	return &l.params
}

// Params returns the parameters of the last Tick.
func (l *Loop) Params() *scene.Params {
	return &l.params
}
