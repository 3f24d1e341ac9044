package config

import "flag"

var (
	flagConfig       = flag.String("config", "", "Path to config file")
	flagDebug        = flag.Bool("debug", false, "Enable debug logging")
	flagAssets       = flag.String("assets", "", "Asset directory")
	flagShaderDir    = flag.String("shader-dir", "", "Load shader sources from this directory instead of the embedded ones")
	flagDegenerateUV = flag.String("degenerate-uv", "", "Degenerate UV policy: skip or propagate")
	flagMute         = flag.Bool("mute", false, "Disable audio")
	flagDumpConfig   = flag.String("dump-config", "", "Write the effective config to this path and exit")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// DumpPath returns the --dump-config target, empty when not requested.
func DumpPath() string {
	return *flagDumpConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagAssets != "" {
		cfg.Assets.Dir = *flagAssets
	}
	if *flagShaderDir != "" {
		cfg.Assets.ShaderDir = *flagShaderDir
	}
	if *flagDegenerateUV != "" {
		cfg.Mesh.DegenerateUV = *flagDegenerateUV
	}
	if *flagMute {
		cfg.Audio.Enabled = false
	}
}
