package mesh

import (
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// LoadGLTF reads a .gltf or .glb file and merges every triangle primitive of
// every mesh into one Raw. glTF texcoords have v growing downward; they are
// flipped here so Raw always carries the file (v up) convention.
func LoadGLTF(path string) (*Raw, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gltf open %q: %w", path, err)
	}

	m := &Raw{}
	var missingNormal []bool
	for mi, gm := range doc.Meshes {
		for pi, prim := range gm.Primitives {
			if prim.Mode != gltf.PrimitiveTriangles {
				continue
			}
			hasNormals, err := appendPrimitive(m, doc, prim)
			if err != nil {
				return nil, fmt.Errorf("gltf %q: mesh %d primitive %d: %w", path, mi, pi, err)
			}
			for len(missingNormal) < len(m.Vertices) {
				missingNormal = append(missingNormal, !hasNormals)
			}
		}
	}
	if len(m.Vertices) == 0 {
		return nil, fmt.Errorf("gltf %q: no triangle primitives", path)
	}

	fillNormals(m, missingNormal)
	return m, nil
}

func appendPrimitive(m *Raw, doc *gltf.Document, prim *gltf.Primitive) (bool, error) {
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return false, fmt.Errorf("no POSITION attribute")
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return false, fmt.Errorf("positions: %w", err)
	}

	var normals [][3]float32
	if idx, ok := prim.Attributes[gltf.NORMAL]; ok {
		if normals, err = modeler.ReadNormal(doc, doc.Accessors[idx], nil); err != nil {
			return false, fmt.Errorf("normals: %w", err)
		}
	}
	var uvs [][2]float32
	if idx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		if uvs, err = modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil); err != nil {
			return false, fmt.Errorf("texcoords: %w", err)
		}
	}

	base := uint32(len(m.Vertices))
	for i, p := range positions {
		v := RawVertex{Position: p}
		if i < len(normals) {
			v.Normal = normals[i]
		}
		if i < len(uvs) {
			v.TexCoord = [2]float32{uvs[i][0], 1 - uvs[i][1]}
		}
		m.Vertices = append(m.Vertices, v)
	}

	if prim.Indices == nil {
		for i := range positions {
			m.Indices = append(m.Indices, base+uint32(i))
		}
	} else {
		indices, err := modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return false, fmt.Errorf("indices: %w", err)
		}
		for _, idx := range indices {
			m.Indices = append(m.Indices, base+idx)
		}
	}

	return len(normals) == len(positions), nil
}
