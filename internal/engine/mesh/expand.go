package mesh

// Expand copies raw vertices positionally into the expanded format.
// Positions are multiplied by scale and the texcoord v is flipped (1 - v)
// into image space. The flip is applied exactly once: expanding already
// expanded texcoords would undo it. Tangent and Bitangent are left zero for
// BuildTangents to fill.
func Expand(raw *Raw, scale float32) []Vertex {
	out := make([]Vertex, len(raw.Vertices))
	for i, rv := range raw.Vertices {
		v := &out[i]
		v.Position = [3]float32{rv.Position[0] * scale, rv.Position[1] * scale, rv.Position[2] * scale}
		v.TexCoord = [2]float32{rv.TexCoord[0], 1 - rv.TexCoord[1]}
		v.Normal = rv.Normal
	}
	return out
}
