// Package math provides the small vector and matrix toolkit used by the renderer.
package math

// Vec2 is a texture-space vector.
type Vec2 struct {
	X, Y float32
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// Cross returns the determinant of the 2x2 matrix with columns v and o,
// which is the signed area of the parallelogram they span.
func (v Vec2) Cross(o Vec2) float32 {
	return v.X*o.Y - v.Y*o.X
}
