package mesh

import (
	gomath "math"

	"github.com/Faultbox/normalmap/pkg/math"
)

// DegeneratePolicy selects what BuildTangents does with a triangle whose
// texcoords span no area (collinear or repeated UVs).
type DegeneratePolicy int

const (
	// DegenerateSkip leaves the triangle's vertices untouched and counts it.
	DegenerateSkip DegeneratePolicy = iota
	// DegeneratePropagate divides anyway and writes the resulting Inf/NaN basis.
	DegeneratePropagate
)

// minUVArea is the smallest |det| of the texcoord edge matrix treated as non-degenerate.
const minUVArea = 1e-12

// ParsePolicy maps a config value ("skip", "propagate") to a policy.
func ParsePolicy(s string) (DegeneratePolicy, bool) {
	switch s {
	case "skip":
		return DegenerateSkip, true
	case "propagate":
		return DegeneratePropagate, true
	}
	return DegenerateSkip, false
}

func (p DegeneratePolicy) String() string {
	if p == DegeneratePropagate {
		return "propagate"
	}
	return "skip"
}

// TangentStats summarizes one BuildTangents run.
type TangentStats struct {
	Triangles  int
	Skipped    int // degenerate UV triangles left unwritten (DegenerateSkip only)
	NonFinite  int // triangles that wrote Inf/NaN, from degenerate UVs or non-finite inputs
	// ZeroLength counts finite triangles that wrote a zero tangent or
	// bitangent, such as coincident positions or a tangent parallel to the
	// normal. Those vertices are written like any other.
	ZeroLength int
}

// BuildTangents computes a tangent/bitangent per triangle and writes it to
// all three of the triangle's vertices, in index order.
//
// Per triangle, the tangent is taken from the position and texcoord edges,
// normalized, Gram-Schmidt orthogonalized against the normal of the
// triangle's first vertex and flipped if (N x T) . B < 0. The bitangent is
// only normalized. A vertex shared by several triangles ends up with the
// basis of the last one in index order; nothing is averaged.
//
// Vertices referenced by no triangle keep whatever they held.
func BuildTangents(vertices []Vertex, indices []uint32, policy DegeneratePolicy) TangentStats {
	stats := TangentStats{Triangles: len(indices) / 3}

	for k := 0; k < stats.Triangles; k++ {
		i0, i1, i2 := indices[3*k], indices[3*k+1], indices[3*k+2]
		v0, v1, v2 := &vertices[i0], &vertices[i1], &vertices[i2]

		tangent, bitangent, ok := triangleBasis(v0, v1, v2, policy)
		if !ok {
			stats.Skipped++
			continue
		}
		switch {
		case !tangent.IsFinite() || !bitangent.IsFinite():
			stats.NonFinite++
		case tangent.Length() == 0 || bitangent.Length() == 0:
			stats.ZeroLength++
		}

		t, b := tangent.Array(), bitangent.Array()
		v0.Tangent, v1.Tangent, v2.Tangent = t, t, t
		v0.Bitangent, v1.Bitangent, v2.Bitangent = b, b, b
	}

	return stats
}

// triangleBasis returns the corrected tangent and the bitangent of one
// triangle. ok is false only when the policy skips a degenerate UV triangle.
func triangleBasis(v0, v1, v2 *Vertex, policy DegeneratePolicy) (tangent, bitangent math.Vec3, ok bool) {
	p0, p1, p2 := math.V3(v0.Position), math.V3(v1.Position), math.V3(v2.Position)
	uv0 := math.Vec2{X: v0.TexCoord[0], Y: v0.TexCoord[1]}
	uv1 := math.Vec2{X: v1.TexCoord[0], Y: v1.TexCoord[1]}
	uv2 := math.Vec2{X: v2.TexCoord[0], Y: v2.TexCoord[1]}

	dP1 := p1.Sub(p0)
	dP2 := p2.Sub(p0)
	dUV1 := uv1.Sub(uv0)
	dUV2 := uv2.Sub(uv0)

	det := dUV1.Cross(dUV2)
	if policy == DegenerateSkip && !(gomath.Abs(float64(det)) >= minUVArea) {
		return math.Vec3{}, math.Vec3{}, false
	}
	r := 1 / det

	tangent = dP1.Scale(dUV2.Y).Sub(dP2.Scale(dUV1.Y)).Scale(r).Normalize()
	bitangent = dP2.Scale(dUV1.X).Sub(dP1.Scale(dUV2.X)).Scale(r).Normalize()

	n := math.V3(v0.Normal)
	tangent = tangent.Sub(n.Scale(n.Dot(tangent))).Normalize()

	if n.Cross(tangent).Dot(bitangent) < 0 {
		tangent = tangent.Negate()
	}

	return tangent, bitangent, true
}
