package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const dumpHeader = "# normalmap renderer configuration\n# Objects draw in list order; a listed object set replaces the defaults.\n"

// SaveTo writes the config as YAML to path, creating parent directories.
// The output loads back through the -config flag unchanged.
func (c *Config) SaveTo(path string) error {
	var buf bytes.Buffer
	buf.WriteString(dumpHeader)

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}
