package math

import "math"

// Mat4 is a column-major 4x4 matrix, laid out the way glUniformMatrix4fv
// expects it without transposition. Element (row r, column c) is m[c*4+r].
type Mat4 [16]float32

// Identity returns the identity matrix.
func Identity() Mat4 {
	var m Mat4
	m[0], m[5], m[10], m[15] = 1, 1, 1, 1
	return m
}

// Radians converts degrees to radians.
func Radians(deg float32) float32 {
	return deg * math.Pi / 180
}

// Perspective builds a right-handed projection mapping view-space depth
// [-near, -far] to clip-space [-1, 1]. fovY is in radians.
func Perspective(fovY, aspect, near, far float32) Mat4 {
	f := float32(1 / math.Tan(float64(fovY)/2))
	depth := near - far

	var m Mat4
	m[0] = f / aspect
	m[5] = f
	m[10] = (far + near) / depth
	m[11] = -1
	m[14] = 2 * far * near / depth
	return m
}

// LookAt builds a view matrix for an eye looking at target. The camera
// looks down its own -Z axis.
func LookAt(eye, target, up Vec3) Mat4 {
	forward := target.Sub(eye).Normalize()
	right := forward.Cross(up).Normalize()
	camUp := right.Cross(forward)

	m := Identity()
	for i, axis := range [3]Vec3{right, camUp, forward.Negate()} {
		m[0*4+i] = axis.X
		m[1*4+i] = axis.Y
		m[2*4+i] = axis.Z
		m[3*4+i] = -axis.Dot(eye)
	}
	return m
}

// Translate returns a matrix moving the origin to (x, y, z).
func Translate(x, y, z float32) Mat4 {
	m := Identity()
	m[12], m[13], m[14] = x, y, z
	return m
}

// TranslateVec3 returns a matrix moving the origin to p.
func TranslateVec3(p Vec3) Mat4 {
	return Translate(p.X, p.Y, p.Z)
}

// TransformVec3 applies m to the point v (w = 1) and divides by the
// resulting w when it is not 0 or 1.
func (m Mat4) TransformVec3(v Vec3) Vec3 {
	var out [4]float32
	for r := 0; r < 4; r++ {
		out[r] = m[r]*v.X + m[4+r]*v.Y + m[8+r]*v.Z + m[12+r]
	}
	if w := out[3]; w != 0 && w != 1 {
		return Vec3{out[0] / w, out[1] / w, out[2] / w}
	}
	return Vec3{out[0], out[1], out[2]}
}

// Ptr points at the first element, for uniform uploads.
func (m *Mat4) Ptr() *float32 {
	return &m[0]
}
