// Package mesh imports triangle meshes and expands them into the vertex
// format used for normal mapping, including the tangent-space basis.
package mesh

import (
	"fmt"

	"github.com/Faultbox/normalmap/internal/engine/gfx"
)

// RawVertex is a vertex as imported: position, texcoord, normal.
// Texcoords follow the file convention (v grows upward).
type RawVertex struct {
	Position [3]float32
	TexCoord [2]float32
	Normal   [3]float32
}

// Raw is an imported mesh. Every three indices form one triangle.
type Raw struct {
	Vertices []RawVertex
	Indices  []uint32
}

// VertexFloats is the number of float32s in an expanded Vertex.
const VertexFloats = 3 + 2 + 3 + 3 + 3

// VertexStride is the byte stride of an expanded Vertex.
const VertexStride = VertexFloats * 4

// Vertex is the expanded, GPU-bound vertex. Field order is the buffer order.
type Vertex struct {
	Position  [3]float32
	TexCoord  [2]float32
	Normal    [3]float32
	Tangent   [3]float32
	Bitangent [3]float32
}

// Layout describes Vertex to the graphics device. Attribute names are the
// shader input names.
var Layout = gfx.VertexLayout{
	{Name: "pos", Type: gfx.Float3},
	{Name: "tex", Type: gfx.Float2},
	{Name: "nor", Type: gfx.Float3},
	{Name: "tangent", Type: gfx.Float3},
	{Name: "bitangent", Type: gfx.Float3},
}

// Put writes v into dst in buffer order. dst must hold VertexFloats values.
func (v *Vertex) Put(dst []float32) {
	_ = dst[VertexFloats-1]
	copy(dst[0:3], v.Position[:])
	copy(dst[3:5], v.TexCoord[:])
	copy(dst[5:8], v.Normal[:])
	copy(dst[8:11], v.Tangent[:])
	copy(dst[11:14], v.Bitangent[:])
}

// ValidationError reports a mesh that breaks the index invariants.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid mesh: " + e.Reason
}

// Validate checks that the mesh has whole triangles and in-range indices.
func (m *Raw) Validate() error {
	if len(m.Vertices) == 0 {
		return &ValidationError{Reason: "no vertices"}
	}
	if len(m.Indices) == 0 {
		return &ValidationError{Reason: "no indices"}
	}
	if len(m.Indices)%3 != 0 {
		return &ValidationError{Reason: fmt.Sprintf("index count %d is not a multiple of 3", len(m.Indices))}
	}
	for i, idx := range m.Indices {
		if int(idx) >= len(m.Vertices) {
			return &ValidationError{Reason: fmt.Sprintf("index %d at position %d out of range (%d vertices)", idx, i, len(m.Vertices))}
		}
	}
	return nil
}

// Unreferenced counts vertices no triangle uses. Their tangents are never written.
func (m *Raw) Unreferenced() int {
	used := make([]bool, len(m.Vertices))
	for _, idx := range m.Indices {
		if int(idx) < len(used) {
			used[idx] = true
		}
	}
	n := 0
	for _, u := range used {
		if !u {
			n++
		}
	}
	return n
}

// TriangleCount returns the number of triangles.
func (m *Raw) TriangleCount() int {
	return len(m.Indices) / 3
}
