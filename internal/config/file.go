package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrConfigExists is returned by CreateDefaultConfigFile when the file is already there
var ErrConfigExists = errors.New("config file already exists")

// FileConfig represents the configuration file structure.
// The DEFAULT section is a pointer so a file without it can be detected.
type FileConfig struct {
	Default *Config `toml:"DEFAULT,omitempty" yaml:"DEFAULT,omitempty"`
}

// fileFormat is the codec used for a config path
type fileFormat int

const (
	formatTOML fileFormat = iota
	formatYAML
)

// formatFor picks YAML for .yaml/.yml paths and TOML otherwise
func formatFor(path string) fileFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return formatYAML
	default:
		return formatTOML
	}
}

// loadConfigFromPath loads config from a specific path
func loadConfigFromPath(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var fc FileConfig
	switch formatFor(path) {
	case formatYAML:
		err = yaml.Unmarshal(data, &fc)
	default:
		err = toml.Unmarshal(data, &fc)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return &fc, nil
}

// encode renders the file for path's format
func encode(path string, fc *FileConfig) ([]byte, error) {
	var (
		body []byte
		err  error
	)
	switch formatFor(path) {
	case formatYAML:
		body, err = yaml.Marshal(fc)
	default:
		body, err = toml.Marshal(fc)
	}
	if err != nil {
		return nil, err
	}

	header := "# vconsole configuration\n"
	return append([]byte(header), body...), nil
}

// Load reads the config at path. When the file does not exist, or exists
// without a DEFAULT section, it is (re)written with defaults and created is
// true. Keys missing from an existing section are filled in memory only.
func Load(path string) (cfg *Config, created bool, err error) {
	if _, statErr := os.Stat(path); errors.Is(statErr, os.ErrNotExist) {
		cfg = NewConfig()
		if err := Save(path, cfg); err != nil {
			return nil, false, err
		}
		return cfg, true, nil
	}

	fc, err := loadConfigFromPath(path)
	if err != nil {
		return nil, false, err
	}

	if fc.Default == nil {
		cfg = NewConfig()
		if err := Save(path, cfg); err != nil {
			return nil, false, err
		}
		return cfg, true, nil
	}

	cfg = fc.Default
	cfg.ApplyDefaults()
	return cfg, false, nil
}

// Save writes cfg as the DEFAULT section of the file at path,
// creating parent directories as needed.
func Save(path string, cfg *Config) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	data, err := encode(path, &FileConfig{Default: cfg})
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// CreateDefaultConfigFile writes a default config at path, refusing to
// overwrite an existing one
func CreateDefaultConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%w at %s", ErrConfigExists, path)
	}
	return Save(path, NewConfig())
}

// ResolvePath returns the config path to use: the explicit flag value,
// then the environment, then the default file name
func ResolvePath(flagValue string, env *Env) string {
	if flagValue != "" {
		return flagValue
	}
	if env != nil && env.ConfigPath != "" {
		return env.ConfigPath
	}
	return DefaultConfigFile
}
