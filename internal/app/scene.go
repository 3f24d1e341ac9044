package app

import (
	"fmt"
	"time"

	"github.com/Faultbox/normalmap/internal/config"
	"github.com/Faultbox/normalmap/internal/engine/camera"
	"github.com/Faultbox/normalmap/internal/engine/debug"
	"github.com/Faultbox/normalmap/internal/engine/frame"
	"github.com/Faultbox/normalmap/internal/engine/gfx"
	"github.com/Faultbox/normalmap/internal/engine/lighting"
	"github.com/Faultbox/normalmap/internal/engine/mesh"
	"github.com/Faultbox/normalmap/internal/engine/scene"
	"github.com/Faultbox/normalmap/internal/engine/shader"
	"github.com/Faultbox/normalmap/pkg/math"
)

// Programs holds one program per kind, shared by every object of that kind.
type Programs map[string]scene.Program

// Close releases every program.
func (p Programs) Close() {
	for _, prog := range p {
		prog.Close()
	}
}

// BuildScene compiles the programs the configured objects need and builds
// the objects in config order. On error everything built so far is released.
func BuildScene(device gfx.Device, cfg *config.Config) (sc *scene.Scene, programs Programs, err error) {
	policy, ok := mesh.ParsePolicy(cfg.Mesh.DegenerateUV)
	if !ok {
		return nil, nil, fmt.Errorf("unknown degenerate UV policy %q", cfg.Mesh.DegenerateUV)
	}

	sc = scene.New()
	programs = make(Programs)
	defer func() {
		if err != nil {
			sc.Close()
			programs.Close()
			sc, programs = nil, nil
		}
	}()

	for _, oc := range cfg.Objects {
		prog, ok := programs[oc.Program]
		if !ok {
			if prog, err = shader.New(device, oc.Program, cfg.Assets.ShaderDir); err != nil {
				return sc, programs, fmt.Errorf("object %q: %w", oc.Name, err)
			}
			programs[oc.Program] = prog
		}

		obj, err := scene.NewObject(device, scene.ObjectSpec{
			Name:       oc.Name,
			Mesh:       oc.Mesh,
			Diffuse:    oc.Diffuse,
			NormalMap:  oc.NormalMap,
			Scale:      oc.Scale,
			Program:    prog,
			Policy:     policy,
			Dir:        cfg.Assets.Dir,
			TrackLight: oc.TrackLight,
		})
		if err != nil {
			return sc, programs, err
		}
		if oc.Position != ([3]float32{}) {
			obj.Model = math.TranslateVec3(math.V3(oc.Position))
		}
		sc.Add(obj)
	}

	return sc, programs, nil
}

// NewLoop builds the frame loop from the camera, light and effect settings.
func NewLoop(cfg *config.Config, sc *scene.Scene) *frame.Loop {
	cam := camera.NewFly(math.V3(cfg.Camera.Eye), math.V3(cfg.Camera.Target), cfg.Camera.Step)
	light := lighting.Orbit{
		Start:  math.V3(cfg.Light.Start),
		Anchor: math.V3(cfg.Light.Anchor),
		Rate:   cfg.Light.RotationRate,
	}
	lens := camera.Lens{
		FOV:    cfg.Camera.FOV,
		Aspect: float32(cfg.Graphics.Width) / float32(cfg.Graphics.Height),
		Near:   cfg.Camera.Near,
		Far:    cfg.Camera.Far,
	}
	effect := frame.Effect{
		OpenAngle:  cfg.Effect.OpenAngle,
		CloseAngle: cfg.Effect.CloseAngle,
		Duration:   cfg.Effect.Duration,
	}
	return frame.New(cam, light, lens, effect, sc)
}

// Step runs one tick: advance the loop, clear, draw every object.
func Step(device gfx.Device, loop *frame.Loop, sc *scene.Scene, clearColor uint32, t time.Duration, m camera.Movement) *scene.Params {
	params := loop.Tick(t, m)
	device.Clear(clearColor, 1)
	sc.Render(params)
	return params
}

// Capture reads back the frame just rendered and saves it as a PNG.
func Capture(device gfx.Device, shots *debug.Screenshots, width, height int) (string, error) {
	if width <= 0 || height <= 0 {
		return "", fmt.Errorf("capture: invalid size %dx%d", width, height)
	}
	return shots.SaveGL(device.ReadPixels(width, height), width, height)
}
