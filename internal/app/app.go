// Package app wires the window, device, scene and audio together and runs
// the main loop.
package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/normalmap/internal/config"
	"github.com/Faultbox/normalmap/internal/engine/audio"
	"github.com/Faultbox/normalmap/internal/engine/debug"
	"github.com/Faultbox/normalmap/internal/engine/frame"
	"github.com/Faultbox/normalmap/internal/engine/gfx/opengl"
	"github.com/Faultbox/normalmap/internal/engine/input"
	"github.com/Faultbox/normalmap/internal/engine/scene"
	"github.com/Faultbox/normalmap/internal/engine/window"
	"github.com/Faultbox/normalmap/internal/logger"
)

// App is the running renderer.
type App struct {
	cfg *config.Config
	log *zap.Logger

	window   *window.Window
	device   *opengl.Device
	input    *input.Input
	audio    *audio.Manager
	scene    *scene.Scene
	programs Programs
	loop     *frame.Loop
	shots    *debug.Screenshots
}

// New opens the window, creates the device and builds the scene. Any
// failure here is fatal to the caller.
func New(cfg *config.Config) (*App, error) {
	a := &App{
		cfg:   cfg,
		log:   logger.Named("app"),
		input: input.New(),
		shots: debug.NewScreenshots(cfg.Assets.Screenshots, "normalmap"),
	}

	var err error
	a.window, err = window.New(window.Config{
		Title:  cfg.Graphics.Title,
		Width:  cfg.Graphics.Width,
		Height: cfg.Graphics.Height,
		VSync:  cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("create window: %w", err)
	}

	// The device needs the GL context the window just made current.
	a.device, err = opengl.New()
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("create device: %w", err)
	}
	a.device.Viewport(a.window.Size())

	a.scene, a.programs, err = BuildScene(a.device, cfg)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("build scene: %w", err)
	}
	a.loop = NewLoop(cfg, a.scene)

	if cfg.Audio.Enabled {
		a.startAudio()
	}

	a.log.Info("renderer ready",
		zap.Int("objects", len(a.scene.Objects())),
		zap.Int("programs", len(a.programs)))
	return a, nil
}

// startAudio opens the speaker and starts the ambient track. Audio is
// optional, so failures are logged and playback stays off.
func (a *App) startAudio() {
	a.audio = audio.New(a.cfg.Audio.Volume)
	if err := a.audio.Init(); err != nil {
		a.log.Warn("audio disabled", zap.Error(err))
		a.audio = nil
		return
	}
	if a.cfg.Audio.Ambient == "" {
		return
	}

	path := a.cfg.Audio.Ambient
	if !filepath.IsAbs(path) {
		path = filepath.Join(a.cfg.Assets.Dir, path)
	}
	data, err := os.ReadFile(path)
	if err == nil {
		err = a.audio.PlayAmbient(data, a.cfg.Audio.Ambient)
	}
	if err != nil {
		a.log.Warn("ambient track not playing", zap.String("track", path), zap.Error(err))
		return
	}
	a.log.Info("ambient track playing", zap.String("track", path))
}

// Run drives the loop until the window closes or Escape is pressed.
// M toggles audio mute and F12 saves the rendered frame.
func (a *App) Run() error {
	start := time.Now()
	last := start
	frames := 0
	fpsTimer := start

	a.log.Info("starting main loop")

	for {
		now := time.Now()
		dt := now.Sub(last)
		last = now

		if a.input.Update() {
			break
		}
		if a.audio != nil {
			if a.input.IsKeyPressed(sdl.SCANCODE_M) {
				a.log.Info("audio mute toggled", zap.Bool("muted", a.audio.ToggleMute()))
			}
			a.audio.Update(dt)
		}

		Step(a.device, a.loop, a.scene, a.cfg.Graphics.ClearColor, now.Sub(start), a.input.Movement())
		if a.input.IsKeyPressed(sdl.SCANCODE_F12) {
			w, h := a.window.Size()
			if name, err := Capture(a.device, a.shots, w, h); err != nil {
				a.log.Warn("screenshot failed", zap.Error(err))
			} else {
				a.log.Info("screenshot saved", zap.String("file", name))
			}
		}
		a.window.SwapBuffers()

		frames++
		if since := now.Sub(fpsTimer); since >= time.Second {
			a.log.Debug("fps",
				zap.Int("frames", frames),
				zap.Float64("fps", float64(frames)/since.Seconds()),
				zap.Uint64("frame", a.loop.Params().Frame))
			frames = 0
			fpsTimer = now
		}
	}

	a.log.Info("main loop stopped")
	return nil
}

// Close releases everything in reverse order of creation.
func (a *App) Close() {
	if a.audio != nil {
		a.audio.Close()
	}
	if a.scene != nil {
		a.scene.Close()
	}
	if a.programs != nil {
		a.programs.Close()
	}
	if a.device != nil {
		a.device.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}
