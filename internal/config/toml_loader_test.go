package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadFromRtdbuildToml(t *testing.T) {
	tempDir := t.TempDir()
	writeFile(t, filepath.Join(tempDir, ConfigFileName), `[build]
builder = "htmldir"
validate_syntax = false

[site]
api_host = "https://docs.example.com"

[logging]
json = true
`)

	cfg, path, err := NewTomlConfigLoader().LoadConfig(tempDir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(tempDir, ConfigFileName), path)
	assert.Equal(t, "htmldir", cfg.Build.Builder)
	assert.False(t, cfg.Build.ValidateSyntax)
	assert.Equal(t, "https://docs.example.com", cfg.Site.APIHost)
	assert.True(t, cfg.Logging.JSON)

	// unspecified settings keep defaults
	defaults := DefaultConfig()
	assert.Equal(t, defaults.Build.SphinxBuildDir, cfg.Build.SphinxBuildDir)
	assert.Equal(t, defaults.Site.MediaURL, cfg.Site.MediaURL)
}

func TestLoadWalksUpToParent(t *testing.T) {
	tempDir := t.TempDir()
	writeFile(t, filepath.Join(tempDir, ConfigFileName), "[build]\nbuilder = \"epub\"\n")
	nested := filepath.Join(tempDir, "docs", "source")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	cfg, _, err := NewTomlConfigLoader().LoadConfig(nested)
	require.NoError(t, err)
	assert.Equal(t, "epub", cfg.Build.Builder)
}

func TestLoadFromPyproject(t *testing.T) {
	tempDir := t.TempDir()
	writeFile(t, filepath.Join(tempDir, "pyproject.toml"), `[project]
name = "pip"

[tool.rtdbuild.build]
builder = "singlehtml"

[tool.rtdbuild.projects]
registry = "projects.yaml"
`)

	cfg, path, err := NewTomlConfigLoader().LoadConfig(tempDir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tempDir, "pyproject.toml"), path)
	assert.Equal(t, "singlehtml", cfg.Build.Builder)
	assert.Equal(t, "projects.yaml", cfg.Projects.Registry)
}

func TestPyprojectWithoutToolSectionUsesDefaults(t *testing.T) {
	tempDir := t.TempDir()
	writeFile(t, filepath.Join(tempDir, "pyproject.toml"), "[project]\nname = \"pip\"\n")

	cfg, path, err := NewTomlConfigLoader().LoadConfig(tempDir)
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestDedicatedFileWinsOverPyproject(t *testing.T) {
	tempDir := t.TempDir()
	writeFile(t, filepath.Join(tempDir, "pyproject.toml"), "[tool.rtdbuild.build]\nbuilder = \"pdf\"\n")
	writeFile(t, filepath.Join(tempDir, ConfigFileName), "[build]\nbuilder = \"epub\"\n")

	cfg, _, err := NewTomlConfigLoader().LoadConfig(tempDir)
	require.NoError(t, err)
	assert.Equal(t, "epub", cfg.Build.Builder)
}

func TestInvalidTomlIsAnError(t *testing.T) {
	tempDir := t.TempDir()
	writeFile(t, filepath.Join(tempDir, ConfigFileName), "[build\nbuilder = ")

	_, _, err := NewTomlConfigLoader().LoadConfig(tempDir)
	assert.Error(t, err)
}
