package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Graphics.Width != 512 || cfg.Graphics.Height != 512 {
		t.Errorf("expected 512x512 window, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
	}
	if cfg.Graphics.Title != "Solution 6" {
		t.Errorf("expected title 'Solution 6', got %q", cfg.Graphics.Title)
	}
	if cfg.Camera.Eye != [3]float32{0, 0, -3} {
		t.Errorf("expected eye (0,0,-3), got %v", cfg.Camera.Eye)
	}
	if cfg.Camera.FOV != 90 || cfg.Camera.Near != 0.1 || cfg.Camera.Far != 100 {
		t.Errorf("unexpected projection defaults: %+v", cfg.Camera)
	}
	if cfg.Camera.Step != 0.05 {
		t.Errorf("expected camera step 0.05, got %f", cfg.Camera.Step)
	}
	if cfg.Light.Start != [3]float32{0, 1.95, 3} {
		t.Errorf("expected light start (0,1.95,3), got %v", cfg.Light.Start)
	}
	if cfg.Mesh.DegenerateUV != "skip" {
		t.Errorf("expected degenerate_uv 'skip', got %q", cfg.Mesh.DegenerateUV)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}

	tracking := 0
	for _, obj := range cfg.Objects {
		if obj.TrackLight {
			tracking++
		}
	}
	if tracking != 1 {
		t.Errorf("expected exactly one light-tracking object, got %d", tracking)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config does not validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	yamlContent := `
camera:
  eye: [1, 2, 3]
  step: 0.1

light:
  rotation_rate: 2.5

mesh:
  degenerate_uv: propagate

objects:
  - name: barrel
    mesh: barrel.obj
    diffuse: barrel.png
    normal_map: barrel_norm.png
    program: normalmap
    scale: 2

logging:
  level: "debug"
  log_file: "render.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Camera.Eye != [3]float32{1, 2, 3} {
		t.Errorf("expected eye (1,2,3), got %v", cfg.Camera.Eye)
	}
	if cfg.Camera.Step != 0.1 {
		t.Errorf("expected step 0.1, got %f", cfg.Camera.Step)
	}
	// Untouched fields keep their defaults
	if cfg.Camera.FOV != 90 {
		t.Errorf("expected default fov 90, got %f", cfg.Camera.FOV)
	}
	if cfg.Light.RotationRate != 2.5 {
		t.Errorf("expected rotation rate 2.5, got %f", cfg.Light.RotationRate)
	}
	if cfg.Mesh.DegenerateUV != "propagate" {
		t.Errorf("expected propagate, got %q", cfg.Mesh.DegenerateUV)
	}
	if len(cfg.Objects) != 1 || cfg.Objects[0].Name != "barrel" {
		t.Fatalf("expected object list replaced by [barrel], got %+v", cfg.Objects)
	}
	if cfg.Objects[0].NormalMap != "barrel_norm.png" || cfg.Objects[0].Scale != 2 {
		t.Errorf("unexpected object: %+v", cfg.Objects[0])
	}
	if cfg.Logging.LogFile != "render.log" {
		t.Errorf("expected log file 'render.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "invalid.yaml")

	invalidYAML := `
graphics:
  width: not a number
  invalid syntax here
`
	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Graphics.Width = 0 }},
		{"far before near", func(c *Config) { c.Camera.Far = 0.01 }},
		{"fov too wide", func(c *Config) { c.Camera.FOV = 180 }},
		{"zero effect duration", func(c *Config) { c.Effect.Duration = 0 }},
		{"negative effect duration", func(c *Config) { c.Effect.Duration = -0.5 }},
		{"unknown policy", func(c *Config) { c.Mesh.DegenerateUV = "clamp" }},
		{"unknown log level", func(c *Config) { c.Logging.Level = "verbose" }},
		{"duplicate object", func(c *Config) { c.Objects = append(c.Objects, c.Objects[0]) }},
		{"object without mesh", func(c *Config) { c.Objects[0].Mesh = "" }},
		{"object without program", func(c *Config) { c.Objects[0].Program = "" }},
		{"zero scale", func(c *Config) { c.Objects[1].Scale = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	tmpDir := t.TempDir()
	os.Chdir(tmpDir)

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("camera:\n  step: 0.2\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "shader dir flag",
			setup: func() { *flagShaderDir = "/tmp/shaders" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Assets.ShaderDir != "/tmp/shaders" {
					t.Errorf("expected shader dir /tmp/shaders, got %s", cfg.Assets.ShaderDir)
				}
			},
			teardown: func() { *flagShaderDir = "" },
		},
		{
			name:  "degenerate uv flag",
			setup: func() { *flagDegenerateUV = "propagate" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Mesh.DegenerateUV != "propagate" {
					t.Errorf("expected propagate, got %s", cfg.Mesh.DegenerateUV)
				}
			},
			teardown: func() { *flagDegenerateUV = "" },
		},
		{
			name:  "mute flag",
			setup: func() { *flagMute = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Audio.Enabled {
					t.Error("expected audio disabled with mute flag")
				}
			},
			teardown: func() { *flagMute = false },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	yamlContent := `
mesh:
  degenerate_uv: propagate
assets:
  dir: /data/from-file
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagDegenerateUV = "skip"
	defer func() {
		*flagConfig = ""
		*flagDegenerateUV = ""
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Flag beats file
	if cfg.Mesh.DegenerateUV != "skip" {
		t.Errorf("expected skip from flag, got %s", cfg.Mesh.DegenerateUV)
	}
	// File beats default
	if cfg.Assets.Dir != "/data/from-file" {
		t.Errorf("expected assets dir from file, got %s", cfg.Assets.Dir)
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Light.RotationRate = 3
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded := Default()
	loaded.Light.RotationRate = 0
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("loadFromFile: %v", err)
	}
	if loaded.Light.RotationRate != 3 {
		t.Errorf("expected rotation rate 3 after round trip, got %f", loaded.Light.RotationRate)
	}
	if len(loaded.Objects) != len(cfg.Objects) {
		t.Errorf("expected %d objects, got %d", len(cfg.Objects), len(loaded.Objects))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "#") {
		t.Errorf("dump should start with a comment header, got %q", data[:20])
	}
	if !strings.Contains(string(data), "    mesh: builtin:cube") {
		t.Errorf("expected two-space indented object list in dump:\n%s", data)
	}
}
