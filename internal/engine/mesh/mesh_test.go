package mesh

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/Faultbox/normalmap/pkg/math"
)

func TestExpandFlipsAndScales(t *testing.T) {
	raw := &Raw{
		Vertices: []RawVertex{
			{Position: [3]float32{1, 2, 3}, TexCoord: [2]float32{0.25, 0.2}, Normal: [3]float32{0, 1, 0}},
		},
		Indices: []uint32{0, 0, 0},
	}

	v := Expand(raw, 2)[0]

	if v.Position != [3]float32{2, 4, 6} {
		t.Errorf("Position = %v, want (2,4,6)", v.Position)
	}
	if v.TexCoord[0] != 0.25 || v.TexCoord[1] != 1-0.2 {
		t.Errorf("TexCoord = %v, want (0.25, 0.8)", v.TexCoord)
	}
	if v.Normal != [3]float32{0, 1, 0} {
		t.Errorf("Normal = %v, want unchanged", v.Normal)
	}
	if v.Tangent != ([3]float32{}) || v.Bitangent != ([3]float32{}) {
		t.Errorf("basis should start zero, got T=%v B=%v", v.Tangent, v.Bitangent)
	}
	if raw.Vertices[0].TexCoord[1] != 0.2 {
		t.Error("Expand modified the raw mesh")
	}
}

func TestQuadEndToEnd(t *testing.T) {
	raw := Quad()
	vertices := Expand(raw, 1)
	stats := BuildTangents(vertices, raw.Indices, DegenerateSkip)
	if stats.Skipped != 0 || stats.NonFinite != 0 {
		t.Fatalf("unexpected stats %+v", stats)
	}

	// v is flipped, so the basis is mirrored and the handedness fix flips T back.
	wantT := math.Vec3{X: 1}
	wantB := math.Vec3{Y: -1}
	for i, v := range vertices {
		if !near(math.V3(v.Tangent), wantT) {
			t.Errorf("vertex %d tangent = %v, want %v", i, v.Tangent, wantT)
		}
		if !near(math.V3(v.Bitangent), wantB) {
			t.Errorf("vertex %d bitangent = %v, want %v", i, v.Bitangent, wantB)
		}
	}
}

func TestVertexPut(t *testing.T) {
	v := Vertex{
		Position:  [3]float32{1, 2, 3},
		TexCoord:  [2]float32{4, 5},
		Normal:    [3]float32{6, 7, 8},
		Tangent:   [3]float32{9, 10, 11},
		Bitangent: [3]float32{12, 13, 14},
	}
	dst := make([]float32, VertexFloats)
	v.Put(dst)
	for i, f := range dst {
		if f != float32(i+1) {
			t.Fatalf("dst[%d] = %v, want %d", i, f, i+1)
		}
	}
	if Layout.Floats() != VertexFloats {
		t.Errorf("Layout.Floats() = %d, want %d", Layout.Floats(), VertexFloats)
	}
	if Layout.Stride() != VertexStride {
		t.Errorf("Layout.Stride() = %d, want %d", Layout.Stride(), VertexStride)
	}
}

func TestValidate(t *testing.T) {
	three := []RawVertex{{}, {}, {}}
	tests := []struct {
		name    string
		raw     Raw
		wantErr bool
	}{
		{"ok", Raw{Vertices: three, Indices: []uint32{0, 1, 2}}, false},
		{"no vertices", Raw{Indices: []uint32{0, 1, 2}}, true},
		{"no indices", Raw{Vertices: three}, true},
		{"partial triangle", Raw{Vertices: three, Indices: []uint32{0, 1, 2, 0}}, true},
		{"out of range", Raw{Vertices: three, Indices: []uint32{0, 1, 3}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.raw.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			var verr *ValidationError
			if err != nil && !errors.As(err, &verr) {
				t.Errorf("error %T is not a *ValidationError", err)
			}
		})
	}
}

func TestUnreferenced(t *testing.T) {
	raw := Raw{Vertices: make([]RawVertex, 5), Indices: []uint32{0, 1, 2, 2, 1, 0}}
	if got := raw.Unreferenced(); got != 2 {
		t.Errorf("Unreferenced() = %d, want 2", got)
	}
	if got := raw.TriangleCount(); got != 2 {
		t.Errorf("TriangleCount() = %d, want 2", got)
	}
}

func TestBuiltins(t *testing.T) {
	tests := []struct {
		ref       string
		triangles int
	}{
		{BuiltinCube, 12},
		{BuiltinQuad, 2},
		{BuiltinSphere, 2*16*32 - 2*32},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			raw, err := Load(tt.ref, "")
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if got := raw.TriangleCount(); got != tt.triangles {
				t.Errorf("TriangleCount() = %d, want %d", got, tt.triangles)
			}
			if n := raw.Unreferenced(); n != 0 {
				t.Errorf("%d unreferenced vertices", n)
			}

			vertices := Expand(raw, 1)
			stats := BuildTangents(vertices, raw.Indices, DegenerateSkip)
			if stats.Skipped != 0 || stats.NonFinite != 0 {
				t.Errorf("unexpected stats %+v", stats)
			}
			for i, v := range vertices {
				if !math.V3(v.Tangent).IsFinite() || math.V3(v.Tangent).Length() < 0.99 {
					t.Errorf("vertex %d has tangent %v", i, v.Tangent)
					break
				}
			}
		})
	}
}

func TestCubeFacesPointOutward(t *testing.T) {
	raw := Cube()
	for k := 0; k < raw.TriangleCount(); k++ {
		v0 := raw.Vertices[raw.Indices[3*k]]
		p0 := math.V3(v0.Position)
		p1 := math.V3(raw.Vertices[raw.Indices[3*k+1]].Position)
		p2 := math.V3(raw.Vertices[raw.Indices[3*k+2]].Position)
		geo := p1.Sub(p0).Cross(p2.Sub(p0))
		if geo.Dot(math.V3(v0.Normal)) <= 0 {
			t.Errorf("triangle %d winds against its normal %v", k, v0.Normal)
		}
	}
}

const quadOBJ = `# quad
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vt 0 0
vt 1 0
vt 1 1
vt 0 1
vn 0 0 1
g quad
f 1/1/1 2/2/1 3/3/1 4/4/1
`

func TestSphereReferencesEveryVertex(t *testing.T) {
	tests := []struct {
		rings, segments int
	}{
		{2, 3},
		{4, 8},
		{16, 32},
	}
	for _, tt := range tests {
		raw := Sphere(tt.rings, tt.segments)
		wantVerts := 2*tt.segments + (tt.rings-1)*(tt.segments+1)
		if len(raw.Vertices) != wantVerts {
			t.Errorf("Sphere(%d, %d): %d vertices, want %d", tt.rings, tt.segments, len(raw.Vertices), wantVerts)
		}
		if n := raw.Unreferenced(); n != 0 {
			t.Errorf("Sphere(%d, %d): %d unreferenced vertices", tt.rings, tt.segments, n)
		}
		if err := raw.Validate(); err != nil {
			t.Errorf("Sphere(%d, %d): %v", tt.rings, tt.segments, err)
		}

		// Triangles wind counter-clockwise seen from outside.
		for k := 0; k < len(raw.Indices); k += 3 {
			a := math.V3(raw.Vertices[raw.Indices[k]].Position)
			b := math.V3(raw.Vertices[raw.Indices[k+1]].Position)
			c := math.V3(raw.Vertices[raw.Indices[k+2]].Position)
			centroid := a.Add(b).Add(c)
			if b.Sub(a).Cross(c.Sub(a)).Dot(centroid) <= 0 {
				t.Errorf("Sphere(%d, %d): triangle %d winds inward", tt.rings, tt.segments, k/3)
				break
			}
		}
	}
}

func TestParseOBJ(t *testing.T) {
	raw, err := ParseOBJ(strings.NewReader(quadOBJ))
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}
	if len(raw.Vertices) != 4 {
		t.Fatalf("got %d vertices, want 4", len(raw.Vertices))
	}
	want := []uint32{0, 1, 2, 0, 2, 3}
	for i, idx := range want {
		if raw.Indices[i] != idx {
			t.Fatalf("Indices = %v, want %v", raw.Indices, want)
		}
	}
	if raw.Vertices[2].TexCoord != [2]float32{1, 1} {
		t.Errorf("vertex 2 texcoord = %v", raw.Vertices[2].TexCoord)
	}
	if raw.Vertices[3].Normal != [3]float32{0, 0, 1} {
		t.Errorf("vertex 3 normal = %v", raw.Vertices[3].Normal)
	}
}

func TestParseOBJNegativeIndicesAndMissingNormals(t *testing.T) {
	src := `v 0 0 0
v 1 0 0
v 0 1 0
vt 0 0
vt 1 0
vt 0 1
f -3/-3 -2/-2 -1/-1
f 1/1 2/2 3/3
`
	raw, err := ParseOBJ(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}
	// "-3/-3" and "1/1" name the same position and texcoord.
	if len(raw.Vertices) != 3 {
		t.Errorf("got %d vertices, want 3", len(raw.Vertices))
	}
	if want := []uint32{0, 1, 2, 0, 1, 2}; !reflect.DeepEqual(raw.Indices, want) {
		t.Errorf("indices = %v, want %v", raw.Indices, want)
	}
	for i, v := range raw.Vertices {
		if !near(math.V3(v.Normal), math.Vec3{Z: 1}) {
			t.Errorf("vertex %d normal = %v, want (0,0,1)", i, v.Normal)
		}
	}
}

func TestParseOBJRelativeIndicesFollowLatestElements(t *testing.T) {
	src := `v 0 0 0
v 1 0 0
v 0 1 0
f -3 -2 -1
v 5 5 5
v 6 5 5
v 5 6 5
f -3 -2 -1
`
	raw, err := ParseOBJ(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}
	if len(raw.Vertices) != 6 {
		t.Fatalf("got %d vertices, want 6", len(raw.Vertices))
	}
	if want := []uint32{0, 1, 2, 3, 4, 5}; !reflect.DeepEqual(raw.Indices, want) {
		t.Errorf("indices = %v, want %v", raw.Indices, want)
	}
	want := [][3]float32{{5, 5, 5}, {6, 5, 5}, {5, 6, 5}}
	for i, p := range want {
		if got := raw.Vertices[raw.Indices[3+i]].Position; got != p {
			t.Errorf("second face corner %d = %v, want %v", i, got, p)
		}
	}
}

func TestParseOBJErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"bad float", "v 0 x 0\n"},
		{"short vertex", "v 0 0\n"},
		{"short face", "v 0 0 0\nf 1 1\n"},
		{"index out of range", "v 0 0 0\nf 1 2 3\n"},
		{"bad index", "v 0 0 0\nf a 1 1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseOBJ(strings.NewReader(tt.src)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadFromDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "quad.obj"), []byte(quadOBJ), 0644); err != nil {
		t.Fatal(err)
	}

	raw, err := Load("quad.obj", dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if raw.TriangleCount() != 2 {
		t.Errorf("TriangleCount() = %d, want 2", raw.TriangleCount())
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "empty.obj"), []byte("# nothing\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load("model.fbx", dir); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("fbx: error = %v, want ErrUnsupportedFormat", err)
	}
	if _, err := Load("builtin:teapot", dir); err == nil {
		t.Error("unknown builtin: expected error")
	}
	if _, err := Load("missing.obj", dir); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file: error = %v, want ErrNotExist", err)
	}
	var verr *ValidationError
	if _, err := Load("empty.obj", dir); !errors.As(err, &verr) {
		t.Errorf("empty mesh: error = %v, want *ValidationError", err)
	}
}

func TestLoadGLTF(t *testing.T) {
	doc := gltf.NewDocument()
	pos := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}})
	uv := modeler.WriteTextureCoord(doc, [][2]float32{{0, 1}, {1, 1}, {1, 0}})
	idx := modeler.WriteIndices(doc, []uint16{0, 1, 2})
	doc.Meshes = []*gltf.Mesh{{
		Name: "tri",
		Primitives: []*gltf.Primitive{{
			Indices:    gltf.Index(idx),
			Attributes: map[string]int{gltf.POSITION: pos, gltf.TEXCOORD_0: uv},
		}},
	}}

	path := filepath.Join(t.TempDir(), "tri.glb")
	if err := gltf.SaveBinary(doc, path); err != nil {
		t.Fatalf("SaveBinary: %v", err)
	}

	raw, err := Load(path, "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(raw.Vertices) != 3 || raw.TriangleCount() != 1 {
		t.Fatalf("got %d vertices, %d triangles", len(raw.Vertices), raw.TriangleCount())
	}
	// glTF v runs downward; Raw stores it upward.
	if raw.Vertices[0].TexCoord != [2]float32{0, 0} || raw.Vertices[2].TexCoord != [2]float32{1, 1} {
		t.Errorf("texcoords not flipped: %v %v", raw.Vertices[0].TexCoord, raw.Vertices[2].TexCoord)
	}
	if !near(math.V3(raw.Vertices[1].Normal), math.Vec3{Z: 1}) {
		t.Errorf("generated normal = %v, want (0,0,1)", raw.Vertices[1].Normal)
	}
}
