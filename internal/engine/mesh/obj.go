package mesh

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Faultbox/normalmap/pkg/math"
)

// ParseOBJ reads a Wavefront OBJ stream. Polygons are fan-triangulated and
// each distinct v/vt/vn combination becomes one vertex. Vertices without a
// normal get the average of their faces' normals.
func ParseOBJ(r io.Reader) (*Raw, error) {
	var positions [][3]float32
	var uvs [][2]float32
	var normals [][3]float32

	m := &Raw{}
	vertexMap := make(map[objRef]uint32)
	var missingNormal []bool

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.Fields(line)

		switch parts[0] {
		case "v":
			p, err := parseFloats(parts[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("obj line %d: %w", lineNo, err)
			}
			positions = append(positions, [3]float32{p[0], p[1], p[2]})
		case "vt":
			t, err := parseFloats(parts[1:], 2)
			if err != nil {
				return nil, fmt.Errorf("obj line %d: %w", lineNo, err)
			}
			uvs = append(uvs, [2]float32{t[0], t[1]})
		case "vn":
			n, err := parseFloats(parts[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("obj line %d: %w", lineNo, err)
			}
			normals = append(normals, [3]float32{n[0], n[1], n[2]})
		case "f":
			if len(parts) < 4 {
				return nil, fmt.Errorf("obj line %d: face needs at least 3 vertices", lineNo)
			}
			face := make([]uint32, 0, len(parts)-1)
			for _, key := range parts[1:] {
				ref, err := parseFaceVertex(key, len(positions), len(uvs), len(normals))
				if err != nil {
					return nil, fmt.Errorf("obj line %d: %w", lineNo, err)
				}
				idx, ok := vertexMap[ref]
				if !ok {
					idx = uint32(len(m.Vertices))
					m.Vertices = append(m.Vertices, ref.vertex(positions, uvs, normals))
					missingNormal = append(missingNormal, ref.normal < 0)
					vertexMap[ref] = idx
				}
				face = append(face, idx)
			}
			for i := 2; i < len(face); i++ {
				m.Indices = append(m.Indices, face[0], face[i-1], face[i])
			}
		}
		// Groups, materials and smoothing directives are ignored.
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("obj: %w", err)
	}

	fillNormals(m, missingNormal)
	return m, nil
}

// objRef is a face vertex with its indices resolved to absolute,
// zero-based positions; -1 marks an absent texcoord or normal.
type objRef struct {
	position, texCoord, normal int
}

func (r objRef) vertex(positions [][3]float32, uvs [][2]float32, normals [][3]float32) RawVertex {
	v := RawVertex{Position: positions[r.position]}
	if r.texCoord >= 0 {
		v.TexCoord = uvs[r.texCoord]
	}
	if r.normal >= 0 {
		v.Normal = normals[r.normal]
	}
	return v
}

// parseFaceVertex resolves one "v", "v/vt", "v//vn" or "v/vt/vn" reference
// against the element counts seen so far. Negative indices count back from
// the latest element, so the same text can name different vertices in
// different faces.
func parseFaceVertex(key string, np, nt, nn int) (objRef, error) {
	ref := objRef{texCoord: -1, normal: -1}
	fields := strings.Split(key, "/")

	var err error
	if ref.position, err = objIndex(fields[0], np); err != nil {
		return ref, fmt.Errorf("vertex %q: position: %w", key, err)
	}
	if len(fields) > 1 && fields[1] != "" {
		if ref.texCoord, err = objIndex(fields[1], nt); err != nil {
			return ref, fmt.Errorf("vertex %q: texcoord: %w", key, err)
		}
	}
	if len(fields) > 2 && fields[2] != "" {
		if ref.normal, err = objIndex(fields[2], nn); err != nil {
			return ref, fmt.Errorf("vertex %q: normal: %w", key, err)
		}
	}
	return ref, nil
}

func objIndex(s string, n int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if i < 0 {
		i = n + i
	} else {
		i--
	}
	if i < 0 || i >= n {
		return 0, fmt.Errorf("index %s out of range (%d defined)", s, n)
	}
	return i, nil
}

func parseFloats(fields []string, n int) ([]float32, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("expected %d values, got %d", n, len(fields))
	}
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return nil, err
		}
		out[i] = float32(f)
	}
	return out, nil
}

// fillNormals gives every vertex flagged in missing the normalized sum of
// the geometric normals of the triangles using it.
func fillNormals(m *Raw, missing []bool) {
	need := false
	for _, mn := range missing {
		need = need || mn
	}
	if !need {
		return
	}

	sums := make([]math.Vec3, len(m.Vertices))
	for k := 0; k+2 < len(m.Indices); k += 3 {
		i0, i1, i2 := m.Indices[k], m.Indices[k+1], m.Indices[k+2]
		p0 := math.V3(m.Vertices[i0].Position)
		n := math.V3(m.Vertices[i1].Position).Sub(p0).Cross(math.V3(m.Vertices[i2].Position).Sub(p0))
		sums[i0] = sums[i0].Add(n)
		sums[i1] = sums[i1].Add(n)
		sums[i2] = sums[i2].Add(n)
	}
	for i, mn := range missing {
		if mn {
			m.Vertices[i].Normal = sums[i].Normalize().Array()
		}
	}
}
