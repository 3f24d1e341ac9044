package mesh

import (
	gomath "math"

	"github.com/Faultbox/normalmap/pkg/math"
)

// Builtin mesh references usable anywhere a mesh path is accepted.
const (
	BuiltinCube   = "builtin:cube"
	BuiltinSphere = "builtin:sphere"
	BuiltinQuad   = "builtin:quad"
)

// Cube returns a unit cube centered at the origin with four vertices per
// face, so every face gets its own normal and full 0..1 texcoords.
func Cube() *Raw {
	type face struct{ n, u, v math.Vec3 }
	faces := []face{
		{n: math.Vec3{X: 1}, u: math.Vec3{Z: -1}, v: math.Vec3{Y: 1}},
		{n: math.Vec3{X: -1}, u: math.Vec3{Z: 1}, v: math.Vec3{Y: 1}},
		{n: math.Vec3{Y: 1}, u: math.Vec3{X: 1}, v: math.Vec3{Z: -1}},
		{n: math.Vec3{Y: -1}, u: math.Vec3{X: 1}, v: math.Vec3{Z: 1}},
		{n: math.Vec3{Z: 1}, u: math.Vec3{X: 1}, v: math.Vec3{Y: 1}},
		{n: math.Vec3{Z: -1}, u: math.Vec3{X: -1}, v: math.Vec3{Y: 1}},
	}

	m := &Raw{}
	for _, f := range faces {
		base := uint32(len(m.Vertices))
		for _, c := range [4][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}} {
			p := f.n.Scale(0.5).Add(f.u.Scale(c[0] - 0.5)).Add(f.v.Scale(c[1] - 0.5))
			m.Vertices = append(m.Vertices, RawVertex{
				Position: p.Array(),
				TexCoord: c,
				Normal:   f.n.Array(),
			})
		}
		m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return m
}

// Quad returns a unit square in the XY plane facing -Z, toward the default camera.
func Quad() *Raw {
	n := [3]float32{0, 0, -1}
	return &Raw{
		Vertices: []RawVertex{
			{Position: [3]float32{0.5, -0.5, 0}, TexCoord: [2]float32{0, 0}, Normal: n},
			{Position: [3]float32{-0.5, -0.5, 0}, TexCoord: [2]float32{1, 0}, Normal: n},
			{Position: [3]float32{-0.5, 0.5, 0}, TexCoord: [2]float32{1, 1}, Normal: n},
			{Position: [3]float32{0.5, 0.5, 0}, TexCoord: [2]float32{0, 1}, Normal: n},
		},
		Indices: []uint32{0, 1, 2, 0, 2, 3},
	}
}

// Sphere returns a unit-radius UV sphere. The seam column is duplicated so
// texcoords never wrap inside a triangle. Each pole holds one vertex per
// segment, at the middle of that segment's u range, so every vertex belongs
// to exactly the one cap triangle or quad strip that uses it.
func Sphere(rings, segments int) *Raw {
	if rings < 2 {
		rings = 2
	}
	if segments < 3 {
		segments = 3
	}

	m := &Raw{}
	add := func(r int, u float64) {
		theta := gomath.Pi * float64(r) / float64(rings)
		phi := 2 * gomath.Pi * u
		p := [3]float32{
			float32(gomath.Sin(theta) * gomath.Cos(phi)),
			float32(gomath.Cos(theta)),
			float32(gomath.Sin(theta) * gomath.Sin(phi)),
		}
		m.Vertices = append(m.Vertices, RawVertex{
			Position: p,
			TexCoord: [2]float32{float32(u), 1 - float32(r)/float32(rings)},
			Normal:   p,
		})
	}

	for s := 0; s < segments; s++ {
		add(0, (float64(s)+0.5)/float64(segments))
	}
	for r := 1; r < rings; r++ {
		for s := 0; s <= segments; s++ {
			add(r, float64(s)/float64(segments))
		}
	}
	for s := 0; s < segments; s++ {
		add(rings, (float64(s)+0.5)/float64(segments))
	}

	row := uint32(segments + 1)
	ring := func(r, s int) uint32 { return uint32(segments) + uint32(r-1)*row + uint32(s) }
	south := ring(rings, 0)

	for s := 0; s < segments; s++ {
		m.Indices = append(m.Indices, uint32(s), ring(1, s+1), ring(1, s))
	}
	for r := 1; r < rings-1; r++ {
		for s := 0; s < segments; s++ {
			a, b, c, d := ring(r, s), ring(r+1, s), ring(r+1, s+1), ring(r, s+1)
			m.Indices = append(m.Indices, a, c, b, a, d, c)
		}
	}
	for s := 0; s < segments; s++ {
		m.Indices = append(m.Indices, ring(rings-1, s), ring(rings-1, s+1), south+uint32(s))
	}
	return m
}

func builtin(ref string) (*Raw, bool) {
	switch ref {
	case BuiltinCube:
		return Cube(), true
	case BuiltinSphere:
		return Sphere(16, 32), true
	case BuiltinQuad:
		return Quad(), true
	}
	return nil, false
}
