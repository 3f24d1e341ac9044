package math

import "testing"

func TestIdentityTransform(t *testing.T) {
	p := Vec3{1, -2, 3}
	if got := Identity().TransformVec3(p); got != p {
		t.Errorf("Identity moved %v to %v", p, got)
	}
}

func TestTranslateVec3(t *testing.T) {
	m := TranslateVec3(Vec3{5, 10, 15})

	// Column 3 holds the offset.
	if m[12] != 5 || m[13] != 10 || m[14] != 15 {
		t.Errorf("offset column = (%f, %f, %f), want (5, 10, 15)", m[12], m[13], m[14])
	}
	if got := m.TransformVec3(Vec3{1, 2, 3}); got != (Vec3{6, 12, 18}) {
		t.Errorf("TransformVec3: got %v", got)
	}
}

func TestPerspective(t *testing.T) {
	m := Perspective(Radians(90), 2, 0.1, 100)

	if abs(m[0]-0.5) > 1e-6 || abs(m[5]-1) > 1e-6 {
		t.Errorf("focal terms = (%f, %f), want (0.5, 1)", m[0], m[5])
	}
	if m[11] != -1 || m[15] != 0 {
		t.Errorf("w row = (%f, %f), want (-1, 0)", m[11], m[15])
	}

	tests := []struct {
		name  string
		depth float32
		want  float32
	}{
		{"near plane", -0.1, -1},
		{"far plane", -100, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.TransformVec3(Vec3{0, 0, tt.depth})
			if abs(got.Z-tt.want) > 1e-4 {
				t.Errorf("ndc z = %f, want %f", got.Z, tt.want)
			}
		})
	}
}

func TestLookAtMovesEyeToOrigin(t *testing.T) {
	eye := Vec3{0, 0, -3}
	m := LookAt(eye, Vec3{}, Vec3{0, 1, 0})

	if got := m.TransformVec3(eye); got.Length() > 1e-5 {
		t.Errorf("eye in view space = %v, want origin", got)
	}

	// Target sits straight ahead on -Z in view space.
	target := m.TransformVec3(Vec3{})
	if abs(target.X) > 1e-5 || abs(target.Y) > 1e-5 || abs(target.Z+3) > 1e-5 {
		t.Errorf("target in view space = %v, want (0, 0, -3)", target)
	}

	// Looking down +Z, world +X ends up on the viewer's left.
	if side := m.TransformVec3(Vec3{1, 0, 0}); side.X >= 0 {
		t.Errorf("world +X in view space = %v, want negative x", side)
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
