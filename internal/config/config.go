// Package config handles renderer configuration loading and management.
package config

// Config holds all renderer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Camera   CameraConfig   `yaml:"camera"`
	Light    LightConfig    `yaml:"light"`
	Effect   EffectConfig   `yaml:"effect"`
	Mesh     MeshConfig     `yaml:"mesh"`
	Objects  []ObjectConfig `yaml:"objects"`
	Assets   AssetsConfig   `yaml:"assets"`
	Audio    AudioConfig    `yaml:"audio"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display settings.
type GraphicsConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	VSync      bool   `yaml:"vsync"`
	ClearColor uint32 `yaml:"clear_color"` // 0xAARRGGBB
}

// CameraConfig holds the free-fly camera setup.
type CameraConfig struct {
	Eye    [3]float32 `yaml:"eye"`
	Target [3]float32 `yaml:"target"`
	FOV    float32    `yaml:"fov"` // vertical, degrees
	Near   float32    `yaml:"near"`
	Far    float32    `yaml:"far"`
	Step   float32    `yaml:"step"` // world units per tick per held key
}

// LightConfig holds the orbiting point light setup.
type LightConfig struct {
	Start        [3]float32 `yaml:"start"`
	Anchor       [3]float32 `yaml:"anchor"`
	RotationRate float32    `yaml:"rotation_rate"` // radians per second around +Y
}

// EffectConfig holds the procedural cutout scalars.
type EffectConfig struct {
	OpenAngle  float32 `yaml:"open_angle"`  // radians
	CloseAngle float32 `yaml:"close_angle"` // radians
	Duration   float32 `yaml:"duration"`    // seconds per open or close transition
}

// MeshConfig holds mesh processing options.
type MeshConfig struct {
	// DegenerateUV is "skip" or "propagate".
	DegenerateUV string `yaml:"degenerate_uv"`
}

// ObjectConfig describes one render object. Objects draw in list order.
type ObjectConfig struct {
	Name       string     `yaml:"name"`
	Mesh       string     `yaml:"mesh"`
	Diffuse    string     `yaml:"diffuse,omitempty"`
	NormalMap  string     `yaml:"normal_map,omitempty"`
	Program    string     `yaml:"program"`
	Scale      float32    `yaml:"scale"`
	Position   [3]float32 `yaml:"position"`
	TrackLight bool       `yaml:"track_light,omitempty"`
}

// AssetsConfig holds asset search paths.
type AssetsConfig struct {
	Dir       string `yaml:"dir"`
	ShaderDir string `yaml:"shader_dir,omitempty"` // empty means embedded shaders

	// Screenshots is where F12 captures are written.
	Screenshots string `yaml:"screenshots"`
}

// AudioConfig holds audio settings.
type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Ambient string  `yaml:"ambient,omitempty"` // looping WAV, optional
	Volume  float64 `yaml:"volume"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	LogFile    string `yaml:"log_file"`
	MaxSizeMB  int    `yaml:"max_size_mb,omitempty"` // rotation threshold, 0 keeps the logger default
	MaxBackups int    `yaml:"max_backups,omitempty"`
}

// Default returns a Config reproducing the reference scene: a normal-mapped
// box at the origin, a small light marker orbiting it and a cutout quad.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Title:      "Solution 6",
			Width:      512,
			Height:     512,
			VSync:      true,
			ClearColor: 0xff000000,
		},
		Camera: CameraConfig{
			Eye:    [3]float32{0, 0, -3},
			Target: [3]float32{0, 0, 0},
			FOV:    90,
			Near:   0.1,
			Far:    100,
			Step:   0.05,
		},
		Light: LightConfig{
			Start:        [3]float32{0, 1.95, 3},
			Anchor:       [3]float32{0, 0, 0},
			RotationRate: 1,
		},
		Effect: EffectConfig{
			OpenAngle:  0.9,
			CloseAngle: 0.05,
			Duration:   0.5,
		},
		Mesh: MeshConfig{
			DegenerateUV: "skip",
		},
		Objects: []ObjectConfig{
			{
				Name:      "box",
				Mesh:      "builtin:cube",
				Diffuse:   "builtin:checker",
				NormalMap: "builtin:bumps",
				Program:   "normalmap",
				Scale:     1,
			},
			{
				Name:       "light",
				Mesh:       "builtin:sphere",
				Diffuse:    "builtin:white",
				NormalMap:  "builtin:flat",
				Program:    "normalmap",
				Scale:      0.3,
				TrackLight: true,
			},
			{
				Name:     "mouth",
				Mesh:     "builtin:quad",
				Program:  "cutout",
				Scale:    0.5,
				Position: [3]float32{-1.5, 0, 0},
			},
		},
		Assets: AssetsConfig{
			Dir:         "assets",
			Screenshots: "screenshots",
		},
		Audio: AudioConfig{
			Enabled: true,
			Volume:  0.7,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
