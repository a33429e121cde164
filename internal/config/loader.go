package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. RTDBUILD_BUILD_BUILDER
const EnvPrefix = "RTDBUILD"

// LoadConfig reads an explicit configuration file in any format viper
// understands (TOML, YAML, JSON). Unset keys keep their defaults and
// RTDBUILD_* environment variables override both.
func LoadConfig(configPath string) (*Config, error) {
	v := newViper(DefaultConfig())
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	resolveRelativePaths(cfg, filepath.Dir(configPath))

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// LoadConfigWithTarget loads configuration for a command run against targetDir.
// An explicit configPath wins; otherwise .rtdbuild.toml or pyproject.toml is
// discovered walking up from targetDir. Environment overrides apply in both cases.
func LoadConfigWithTarget(configPath, targetDir string) (*Config, error) {
	if configPath != "" {
		return LoadConfig(configPath)
	}
	if targetDir == "" {
		targetDir = "."
	}

	cfg, foundPath, err := NewTomlConfigLoader().LoadConfig(targetDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if foundPath != "" {
		resolveRelativePaths(cfg, filepath.Dir(foundPath))
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// applyEnv overlays RTDBUILD_* variables onto cfg
func applyEnv(cfg *Config) error {
	v := newViper(cfg)
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("failed to apply environment overrides: %w", err)
	}
	return nil
}

// newViper returns an isolated viper instance seeded with base values.
// Every key must have a default for AutomaticEnv to pick it up.
func newViper(base *Config) *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("build.builder", base.Build.Builder)
	v.SetDefault("build.sphinx_build_dir", base.Build.SphinxBuildDir)
	v.SetDefault("build.template_dir", base.Build.TemplateDir)
	v.SetDefault("build.template_override_dir", base.Build.TemplateOverrideDir)
	v.SetDefault("build.doc_root", base.Build.DocRoot)
	v.SetDefault("build.source_extension", base.Build.SourceExtension)
	v.SetDefault("build.validate_syntax", base.Build.ValidateSyntax)

	v.SetDefault("site.production_domain", base.Site.ProductionDomain)
	v.SetDefault("site.api_host", base.Site.APIHost)
	v.SetDefault("site.media_url", base.Site.MediaURL)
	v.SetDefault("site.static_url", base.Site.StaticURL)
	v.SetDefault("site.global_analytics_code", base.Site.GlobalAnalyticsCode)

	v.SetDefault("projects.registry", base.Projects.Registry)

	v.SetDefault("logging.level", base.Logging.Level)
	v.SetDefault("logging.json", base.Logging.JSON)
	return v
}

// resolveRelativePaths anchors file paths from a config file at its directory
func resolveRelativePaths(cfg *Config, baseDir string) {
	anchor := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(baseDir, p)
	}
	cfg.Projects.Registry = anchor(cfg.Projects.Registry)
	cfg.Build.TemplateOverrideDir = anchor(cfg.Build.TemplateOverrideDir)
	cfg.Build.DocRoot = anchor(cfg.Build.DocRoot)
}
