package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	cfg := Default()

	// Explicit path takes priority over the search locations
	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values the renderer cannot run without.
func (c *Config) Validate() error {
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		return fmt.Errorf("graphics: invalid size %dx%d", c.Graphics.Width, c.Graphics.Height)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		return fmt.Errorf("camera: invalid clip planes near=%g far=%g", c.Camera.Near, c.Camera.Far)
	}
	if c.Camera.FOV <= 0 || c.Camera.FOV >= 180 {
		return fmt.Errorf("camera: invalid fov %g", c.Camera.FOV)
	}
	if !(c.Effect.Duration > 0) {
		return fmt.Errorf("effect: duration must be positive, got %g", c.Effect.Duration)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging: unknown level %q", c.Logging.Level)
	}
	switch c.Mesh.DegenerateUV {
	case "skip", "propagate":
	default:
		return fmt.Errorf("mesh: unknown degenerate_uv policy %q", c.Mesh.DegenerateUV)
	}
	seen := make(map[string]bool, len(c.Objects))
	for i, obj := range c.Objects {
		if obj.Name == "" {
			return fmt.Errorf("objects[%d]: missing name", i)
		}
		if seen[obj.Name] {
			return fmt.Errorf("objects[%d]: duplicate name %q", i, obj.Name)
		}
		seen[obj.Name] = true
		if obj.Mesh == "" {
			return fmt.Errorf("object %q: missing mesh", obj.Name)
		}
		if obj.Program == "" {
			return fmt.Errorf("object %q: missing program", obj.Name)
		}
		if obj.Scale <= 0 {
			return fmt.Errorf("object %q: scale must be positive, got %g", obj.Name, obj.Scale)
		}
	}
	return nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./config.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "NormalMap")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "NormalMap")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "normalmap")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "normalmap")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
// A file that lists objects replaces the default object list entirely.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}
