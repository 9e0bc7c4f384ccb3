package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeConfigFile writes content to name inside a fresh temp dir
func writeConfigFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// =============================================================================
// loadConfigFromPath Tests
// =============================================================================

func TestLoadConfigFromPath_TOML(t *testing.T) {
	path := writeConfigFile(t, "config.toml", `
[DEFAULT]
computer_name = "devbox"
vfs_path = "/tmp/disk.zip"
log_file = "commands.log"
`)

	fc, err := loadConfigFromPath(path)
	require.NoError(t, err)
	require.NotNil(t, fc.Default)

	assert.Equal(t, "devbox", fc.Default.ComputerName)
	assert.Equal(t, "/tmp/disk.zip", fc.Default.VFSPath)
	assert.Equal(t, "commands.log", fc.Default.LogFile)
}

func TestLoadConfigFromPath_YAML(t *testing.T) {
	path := writeConfigFile(t, "config.yaml", `
DEFAULT:
  computer_name: yamlbox
  vfs_path: ""
  log_file: yaml.log
`)

	fc, err := loadConfigFromPath(path)
	require.NoError(t, err)
	require.NotNil(t, fc.Default)

	assert.Equal(t, "yamlbox", fc.Default.ComputerName)
	assert.Empty(t, fc.Default.VFSPath)
	assert.Equal(t, "yaml.log", fc.Default.LogFile)
}

func TestLoadConfigFromPath_Invalid(t *testing.T) {
	path := writeConfigFile(t, "config.toml", "[DEFAULT\ncomputer_name = ")

	_, err := loadConfigFromPath(path)
	assert.Error(t, err)
}

func TestLoadConfigFromPath_NotFound(t *testing.T) {
	_, err := loadConfigFromPath("/nonexistent/path/config.toml")
	assert.Error(t, err)
}

func TestLoadConfigFromPath_NoSection(t *testing.T) {
	path := writeConfigFile(t, "config.toml", "# nothing here\n")

	fc, err := loadConfigFromPath(path)
	require.NoError(t, err)
	assert.Nil(t, fc.Default)
}

// =============================================================================
// Load / Save Tests
// =============================================================================

func TestLoad_CreatesDefaultFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg, created, err := Load(path)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, NewConfig(), cfg)

	// The file now exists and loads back to the same record
	_, err = os.Stat(path)
	require.NoError(t, err)

	again, created, err := Load(path)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, cfg, again)
}

func TestLoad_RewritesFileWithoutSection(t *testing.T) {
	path := writeConfigFile(t, "config.toml", "# empty\n")

	cfg, created, err := Load(path)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, DefaultComputerName, cfg.ComputerName)

	fc, err := loadConfigFromPath(path)
	require.NoError(t, err)
	assert.NotNil(t, fc.Default)
}

func TestLoad_FillsMissingKeys(t *testing.T) {
	path := writeConfigFile(t, "config.toml", "[DEFAULT]\nvfs_path = \"a.zip\"\n")

	cfg, created, err := Load(path)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "a.zip", cfg.VFSPath)
	assert.Equal(t, DefaultComputerName, cfg.ComputerName)
	assert.Equal(t, DefaultLogFile, cfg.LogFile)
}

func TestLoad_InvalidFile(t *testing.T) {
	path := writeConfigFile(t, "config.yaml", "DEFAULT: [broken\n")

	_, _, err := Load(path)
	assert.Error(t, err)
}

func TestSave_RoundTrip(t *testing.T) {
	for _, name := range []string{"config.toml", "config.yaml", "config.yml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "sub", name)
			cfg := &Config{ComputerName: "box", VFSPath: "/data/vfs.zip", LogFile: "cmd.log"}

			require.NoError(t, Save(path, cfg))

			got, created, err := Load(path)
			require.NoError(t, err)
			assert.False(t, created)
			assert.Equal(t, cfg, got)
		})
	}
}

func TestCreateDefaultConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	require.NoError(t, CreateDefaultConfigFile(path))

	err := CreateDefaultConfigFile(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConfigExists))
}

func TestFormatFor(t *testing.T) {
	assert.Equal(t, formatYAML, formatFor("a/config.YAML"))
	assert.Equal(t, formatYAML, formatFor("config.yml"))
	assert.Equal(t, formatTOML, formatFor("config.toml"))
	assert.Equal(t, formatTOML, formatFor("config.ini"))
	assert.Equal(t, formatTOML, formatFor("config"))
}
