package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/quocvuong92/vconsole/internal/constants"
)

// Defaults - re-exported from constants for convenience
const (
	DefaultConfigFile   = constants.DefaultConfigFile
	DefaultSection      = constants.DefaultSection
	DefaultComputerName = constants.DefaultComputerName
	DefaultVFSPath      = constants.DefaultVFSPath
	DefaultLogFile      = constants.DefaultLogFile
)

// Errors
var (
	ErrEmptyComputerName = errors.New("computer_name must not be empty")
	ErrEmptyLogFile      = errors.New("log_file must not be empty")
)

// Config is the configuration record stored in the DEFAULT section
type Config struct {
	ComputerName string `toml:"computer_name" yaml:"computer_name"`
	VFSPath      string `toml:"vfs_path" yaml:"vfs_path"`
	LogFile      string `toml:"log_file" yaml:"log_file"`
}

// NewConfig creates a new Config with defaults
func NewConfig() *Config {
	return &Config{
		ComputerName: DefaultComputerName,
		VFSPath:      DefaultVFSPath,
		LogFile:      DefaultLogFile,
	}
}

// ApplyDefaults fills keys missing from the file. vfs_path defaults to
// empty, so it is left alone.
func (c *Config) ApplyDefaults() {
	if strings.TrimSpace(c.ComputerName) == "" {
		c.ComputerName = DefaultComputerName
	}
	if strings.TrimSpace(c.LogFile) == "" {
		c.LogFile = DefaultLogFile
	}
}

// Validate checks the record is usable
func (c *Config) Validate() error {
	if strings.TrimSpace(c.ComputerName) == "" {
		return ErrEmptyComputerName
	}
	if strings.TrimSpace(c.LogFile) == "" {
		return ErrEmptyLogFile
	}
	return nil
}

// HasVFS reports whether an archive has been loaded before
func (c *Config) HasVFS() bool {
	return c.VFSPath != ""
}

// Env holds settings read from the environment
type Env struct {
	ConfigPath string `envconfig:"VCONSOLE_CONFIG" default:"config.toml"`
	LogLevel   string `envconfig:"VCONSOLE_LOG_LEVEL" default:"info"`
	LogFormat  string `envconfig:"VCONSOLE_LOG_FORMAT" default:"text"`
}

// LoadEnv loads .env files (when present) and then the process environment.
// Variables already set in the environment win over .env values.
func LoadEnv(dotenvFiles ...string) (*Env, error) {
	if len(dotenvFiles) == 0 {
		dotenvFiles = []string{".env"}
	}
	for _, f := range dotenvFiles {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	var env Env
	if err := envconfig.Process("", &env); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}
	return &env, nil
}

// DefaultEnv returns the environment settings used when none are set
func DefaultEnv() *Env {
	return &Env{
		ConfigPath: DefaultConfigFile,
		LogLevel:   constants.DefaultLogLevel,
		LogFormat:  constants.DefaultLogFormat,
	}
}
