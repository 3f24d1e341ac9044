// Package camera provides the free-fly camera driven by the movement keys.
package camera

import (
	"github.com/Faultbox/normalmap/pkg/math"
)

// Movement holds the six held-key flags sampled once per tick.
type Movement struct {
	Left, Right       bool // -X / +X
	Up, Down          bool // +Y / -Y
	Forward, Backward bool // +Z / -Z
}

// Any reports whether any flag is set.
func (m Movement) Any() bool {
	return m.Left || m.Right || m.Up || m.Down || m.Forward || m.Backward
}

// Fly is a camera that translates its eye along the world axes while
// always looking at a fixed target.
type Fly struct {
	Eye    math.Vec3
	Target math.Vec3
	Up     math.Vec3

	// Step is the distance moved per flagged axis per tick.
	Step float32
}

// NewFly creates a camera at eye looking at target with +Y up.
func NewFly(eye, target math.Vec3, step float32) *Fly {
	return &Fly{
		Eye:    eye,
		Target: target,
		Up:     math.Vec3{Y: 1},
		Step:   step,
	}
}

// Update moves the eye one step along every flagged axis. Opposing flags
// cancel out.
func (c *Fly) Update(m Movement) {
	if m.Left {
		c.Eye.X -= c.Step
	}
	if m.Right {
		c.Eye.X += c.Step
	}
	if m.Forward {
		c.Eye.Z += c.Step
	}
	if m.Backward {
		c.Eye.Z -= c.Step
	}
	if m.Up {
		c.Eye.Y += c.Step
	}
	if m.Down {
		c.Eye.Y -= c.Step
	}
}

// ViewMatrix returns the view matrix for this camera.
func (c *Fly) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Eye, c.Target, c.Up)
}

// Lens is a perspective projection.
type Lens struct {
	FOV    float32 // vertical, degrees
	Aspect float32 // width / height
	Near   float32
	Far    float32
}

// ProjectionMatrix returns the perspective projection for l.
func (l Lens) ProjectionMatrix() math.Mat4 {
	return math.Perspective(math.Radians(l.FOV), l.Aspect, l.Near, l.Far)
}
