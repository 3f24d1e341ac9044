package scene

import "github.com/Faultbox/normalmap/pkg/math"

// Params is the per-frame state every program reads while binding. The
// frame loop builds one per tick; binds treat it as read-only.
type Params struct {
	View       math.Mat4
	Projection math.Mat4

	Eye   math.Vec3 // camera position, world space
	Light math.Vec3 // point light position, world space

	Time       float32 // seconds since the loop started
	OpenAngle  float32 // cutout wedge angle when fully open, radians
	CloseAngle float32 // cutout wedge angle when closed, radians
	Duration   float32 // seconds for one open-to-close sweep

	Frame uint64
}
