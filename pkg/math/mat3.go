package math

import "math"

// Mat3 is a 3x3 matrix in column-major order.
type Mat3 [9]float32

// Mat3RotationY returns a rotation around the Y axis. angle is in radians.
func Mat3RotationY(angle float32) Mat3 {
	c := float32(math.Cos(float64(angle)))
	s := float32(math.Sin(float64(angle)))

	return Mat3{
		c, 0, -s,
		0, 1, 0,
		s, 0, c,
	}
}

// MulVec3 returns m * v.
func (m Mat3) MulVec3(v Vec3) Vec3 {
	return Vec3{
		m[0]*v.X + m[3]*v.Y + m[6]*v.Z,
		m[1]*v.X + m[4]*v.Y + m[7]*v.Z,
		m[2]*v.X + m[5]*v.Y + m[8]*v.Z,
	}
}
