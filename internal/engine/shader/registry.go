package shader

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"

	"github.com/Faultbox/normalmap/internal/engine/gfx"
	"github.com/Faultbox/normalmap/internal/engine/mesh"
	"github.com/Faultbox/normalmap/internal/engine/scene"
	"github.com/Faultbox/normalmap/internal/engine/shader/shaders"
	"github.com/Faultbox/normalmap/internal/logger"
)

// Builtin program kinds.
const (
	KindPlain        = "plain"
	KindNormalMapped = "normalmap"
	KindCutout       = "cutout"
)

// Constructor wraps a linked program into a variant, resolving its names.
type Constructor func(device gfx.Device, name string, prog gfx.Program) (scene.Program, error)

var registry = map[string]Constructor{
	KindPlain: func(d gfx.Device, name string, p gfx.Program) (scene.Program, error) {
		v, err := NewPlain(d, name, p)
		if err != nil {
			return nil, err
		}
		return v, nil
	},
	KindNormalMapped: func(d gfx.Device, name string, p gfx.Program) (scene.Program, error) {
		v, err := NewNormalMapped(d, name, p)
		if err != nil {
			return nil, err
		}
		return v, nil
	},
	KindCutout: func(d gfx.Device, name string, p gfx.Program) (scene.Program, error) {
		v, err := NewCutout(d, name, p)
		if err != nil {
			return nil, err
		}
		return v, nil
	},
}

// Register adds or replaces a program kind. Call it during setup only; the
// registry is not synchronized.
func Register(kind string, c Constructor) {
	registry[kind] = c
}

// Kinds returns the registered kinds, sorted.
func Kinds() []string {
	kinds := make([]string, 0, len(registry))
	for k := range registry {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// Known reports whether kind is registered.
func Known(kind string) bool {
	_, ok := registry[kind]
	return ok
}

// Sources returns the vertex and fragment source for kind. A non-empty dir
// holding <kind>.vert or <kind>.frag overrides the embedded file of the
// same name.
func Sources(kind, dir string) (vertex, fragment string, err error) {
	if vertex, err = source(kind+".vert", dir); err != nil {
		return "", "", err
	}
	if fragment, err = source(kind+".frag", dir); err != nil {
		return "", "", err
	}
	return vertex, fragment, nil
}

func source(file, dir string) (string, error) {
	if dir != "" {
		data, err := os.ReadFile(filepath.Join(dir, file))
		if err == nil {
			return string(data), nil
		}
		if !os.IsNotExist(err) {
			return "", fmt.Errorf("shader %s: %w", file, err)
		}
	}
	data, err := shaders.FS.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("shader %s: %w", file, err)
	}
	return string(data), nil
}

// New compiles the sources for kind against the mesh vertex layout and
// wraps the result. The compiled program is released if the variant
// cannot resolve its names.
func New(device gfx.Device, kind, dir string) (scene.Program, error) {
	construct, ok := registry[kind]
	if !ok {
		return nil, fmt.Errorf("unknown program kind %q", kind)
	}

	vs, fs, err := Sources(kind, dir)
	if err != nil {
		return nil, err
	}
	prog, err := device.CompileProgram(vs, fs, mesh.Layout)
	if err != nil {
		return nil, fmt.Errorf("program %q: %w", kind, err)
	}

	p, err := construct(device, kind, prog)
	if err != nil {
		prog.Close()
		return nil, err
	}
	logger.Named("shader").Debug("program ready", zap.String("kind", kind))
	return p, nil
}
