package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// ConfigFileName is the dedicated configuration file
const ConfigFileName = ".rtdbuild.toml"

// RtdbuildTomlConfig represents the structure of .rtdbuild.toml and of the
// [tool.rtdbuild] table in pyproject.toml. Pointer booleans detect unset values.
type RtdbuildTomlConfig struct {
	Build    TomlBuildConfig `toml:"build"`
	Site     SiteConfig      `toml:"site"`
	Projects ProjectsConfig  `toml:"projects"`
	Logging  TomlLogging     `toml:"logging"`
}

// TomlBuildConfig is the [build] section
type TomlBuildConfig struct {
	Builder             string `toml:"builder"`
	SphinxBuildDir      string `toml:"sphinx_build_dir"`
	TemplateDir         string `toml:"template_dir"`
	TemplateOverrideDir string `toml:"template_override_dir"`
	DocRoot             string `toml:"doc_root"`
	SourceExtension     string `toml:"source_extension"`
	ValidateSyntax      *bool  `toml:"validate_syntax"` // pointer to detect unset
}

// TomlLogging is the [logging] section
type TomlLogging struct {
	Level string `toml:"level"`
	JSON  *bool  `toml:"json"` // pointer to detect unset
}

// pyprojectToml represents the parts of pyproject.toml we read
type pyprojectToml struct {
	Tool struct {
		Rtdbuild RtdbuildTomlConfig `toml:"rtdbuild"`
	} `toml:"tool"`
}

// TomlConfigLoader handles TOML configuration discovery
type TomlConfigLoader struct{}

// NewTomlConfigLoader creates a new TOML configuration loader
func NewTomlConfigLoader() *TomlConfigLoader {
	return &TomlConfigLoader{}
}

// LoadConfig loads configuration with ruff-like priority:
// 1. .rtdbuild.toml (dedicated config file)
// 2. pyproject.toml (with [tool.rtdbuild] section)
// 3. defaults
// The returned path is empty when defaults were used.
func (l *TomlConfigLoader) LoadConfig(startDir string) (*Config, string, error) {
	if path, err := findUpwards(startDir, ConfigFileName); err == nil {
		cfg, err := l.loadDedicated(path)
		return cfg, path, err
	}

	if path, err := findUpwards(startDir, "pyproject.toml"); err == nil {
		cfg, found, err := l.loadPyproject(path)
		if err != nil {
			return nil, "", err
		}
		if found {
			return cfg, path, nil
		}
	}

	return DefaultConfig(), "", nil
}

func (l *TomlConfigLoader) loadDedicated(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var tomlCfg RtdbuildTomlConfig
	if err := toml.Unmarshal(data, &tomlCfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	cfg := DefaultConfig()
	mergeTomlConfig(cfg, &tomlCfg)
	return cfg, nil
}

// loadPyproject reports found=false when pyproject.toml has no [tool.rtdbuild] table
func (l *TomlConfigLoader) loadPyproject(path string) (*Config, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false, err
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, false, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	tool, _ := raw["tool"].(map[string]any)
	if _, ok := tool["rtdbuild"]; !ok {
		return nil, false, nil
	}

	var pyproject pyprojectToml
	if err := toml.Unmarshal(data, &pyproject); err != nil {
		return nil, false, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	cfg := DefaultConfig()
	mergeTomlConfig(cfg, &pyproject.Tool.Rtdbuild)
	return cfg, true, nil
}

// mergeTomlConfig overrides defaults with the values set in the file
func mergeTomlConfig(defaults *Config, t *RtdbuildTomlConfig) {
	b := &defaults.Build
	if t.Build.Builder != "" {
		b.Builder = t.Build.Builder
	}
	if t.Build.SphinxBuildDir != "" {
		b.SphinxBuildDir = t.Build.SphinxBuildDir
	}
	if t.Build.TemplateDir != "" {
		b.TemplateDir = t.Build.TemplateDir
	}
	if t.Build.TemplateOverrideDir != "" {
		b.TemplateOverrideDir = t.Build.TemplateOverrideDir
	}
	if t.Build.DocRoot != "" {
		b.DocRoot = t.Build.DocRoot
	}
	if t.Build.SourceExtension != "" {
		b.SourceExtension = t.Build.SourceExtension
	}
	if t.Build.ValidateSyntax != nil {
		b.ValidateSyntax = *t.Build.ValidateSyntax
	}

	s := &defaults.Site
	if t.Site.ProductionDomain != "" {
		s.ProductionDomain = t.Site.ProductionDomain
	}
	if t.Site.APIHost != "" {
		s.APIHost = t.Site.APIHost
	}
	if t.Site.MediaURL != "" {
		s.MediaURL = t.Site.MediaURL
	}
	if t.Site.StaticURL != "" {
		s.StaticURL = t.Site.StaticURL
	}
	if t.Site.GlobalAnalyticsCode != "" {
		s.GlobalAnalyticsCode = t.Site.GlobalAnalyticsCode
	}

	if t.Projects.Registry != "" {
		defaults.Projects.Registry = t.Projects.Registry
	}

	if t.Logging.Level != "" {
		defaults.Logging.Level = t.Logging.Level
	}
	if t.Logging.JSON != nil {
		defaults.Logging.JSON = *t.Logging.JSON
	}
}

// findUpwards walks up the directory tree looking for name
func findUpwards(startDir, name string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}
	for {
		candidate := filepath.Join(dir, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root directory
			break
		}
		dir = parent
	}

	return "", os.ErrNotExist
}
