package mesh

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat is returned for mesh references with an unknown extension.
var ErrUnsupportedFormat = errors.New("unsupported mesh format")

// Load resolves a mesh reference: a builtin name (see BuiltinCube) or a
// .obj/.gltf/.glb path, relative paths being taken from dir. The result is
// validated.
func Load(ref, dir string) (*Raw, error) {
	m, err := load(ref, dir)
	if err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("mesh %q: %w", ref, err)
	}
	return m, nil
}

func load(ref, dir string) (*Raw, error) {
	if strings.HasPrefix(ref, "builtin:") {
		m, ok := builtin(ref)
		if !ok {
			return nil, fmt.Errorf("mesh %q: unknown builtin", ref)
		}
		return m, nil
	}

	path := ref
	if !filepath.IsAbs(path) && dir != "" {
		path = filepath.Join(dir, ref)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("mesh %q: %w", ref, err)
		}
		defer f.Close()
		m, err := ParseOBJ(f)
		if err != nil {
			return nil, fmt.Errorf("mesh %q: %w", ref, err)
		}
		return m, nil
	case ".gltf", ".glb":
		return LoadGLTF(path)
	}
	return nil, fmt.Errorf("mesh %q: %w", ref, ErrUnsupportedFormat)
}
