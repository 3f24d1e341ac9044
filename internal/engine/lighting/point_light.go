// Package lighting provides the animated point light.
package lighting

import (
	"github.com/Faultbox/normalmap/pkg/math"
)

// Orbit is a point light circling a vertical axis through Anchor. At t=0
// it sits at Anchor+Start.
type Orbit struct {
	Start  math.Vec3 // offset from Anchor at t=0
	Anchor math.Vec3
	Rate   float32 // radians per second
}

// Position returns the light position t seconds in. It depends on t only,
// so the result does not drift with the frame rate.
func (o Orbit) Position(t float32) math.Vec3 {
	return o.Anchor.Add(math.Mat3RotationY(t * o.Rate).MulVec3(o.Start))
}
