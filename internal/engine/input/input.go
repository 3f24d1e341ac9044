// Package input turns SDL2 events into movement flags and key presses.
package input

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/normalmap/internal/engine/camera"
)

// Input tracks held movement keys across frames and the key presses of the
// last Update.
type Input struct {
	movement camera.Movement
	pressed  []sdl.Scancode
	quit     bool
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		pressed: make([]sdl.Scancode, 0, 8),
	}
}

// Update drains pending SDL events. It returns true once the window was
// closed or Escape was pressed.
func (i *Input) Update() bool {
	i.pressed = i.pressed[:0]

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.quit = true
		case *sdl.KeyboardEvent:
			i.Key(e.Keysym.Scancode, e.Type == sdl.KEYDOWN, e.Repeat != 0)
		}
	}

	return i.quit
}

// Key applies one key transition. Presses set a movement flag and releases
// clear it; other keys only count as pressed. Auto-repeat is ignored.
func (i *Input) Key(code sdl.Scancode, down, repeat bool) {
	if repeat {
		return
	}
	if flag := i.flag(code); flag != nil {
		*flag = down
		return
	}
	if !down {
		return
	}
	if code == sdl.SCANCODE_ESCAPE {
		i.quit = true
		return
	}
	i.pressed = append(i.pressed, code)
}

// flag maps a scancode to its movement flag: arrows move in the XZ plane,
// W and S move up and down.
func (i *Input) flag(code sdl.Scancode) *bool {
	switch code {
	case sdl.SCANCODE_LEFT:
		return &i.movement.Left
	case sdl.SCANCODE_RIGHT:
		return &i.movement.Right
	case sdl.SCANCODE_UP:
		return &i.movement.Forward
	case sdl.SCANCODE_DOWN:
		return &i.movement.Backward
	case sdl.SCANCODE_W:
		return &i.movement.Up
	case sdl.SCANCODE_S:
		return &i.movement.Down
	}
	return nil
}

// Movement returns the currently held movement flags.
func (i *Input) Movement() camera.Movement {
	return i.movement
}

// IsKeyPressed checks if a key went down during the last Update.
func (i *Input) IsKeyPressed(code sdl.Scancode) bool {
	for _, c := range i.pressed {
		if c == code {
			return true
		}
	}
	return false
}

// Quit reports whether a quit was requested.
func (i *Input) Quit() bool {
	return i.quit
}
