package config

import (
	"fmt"
	"strings"

	"github.com/ludo-technologies/rtdbuild/domain"
)

// Config represents the main configuration structure
type Config struct {
	// Build holds conf.py rendering and builder settings
	Build BuildConfig `mapstructure:"build" yaml:"build" toml:"build"`

	// Site holds platform URLs injected into every conf.py
	Site SiteConfig `mapstructure:"site" yaml:"site" toml:"site"`

	// Projects locates the project registry
	Projects ProjectsConfig `mapstructure:"projects" yaml:"projects" toml:"projects"`

	// Logging controls the structured logger
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging" toml:"logging"`
}

// BuildConfig holds configuration for documentation builds
type BuildConfig struct {
	// Builder is the documentation builder type: html, htmldir, singlehtml, pdf, epub
	Builder string `mapstructure:"builder" yaml:"builder" toml:"builder"`

	// SphinxBuildDir is the output root, relative to the docs directory
	SphinxBuildDir string `mapstructure:"sphinx_build_dir" yaml:"sphinx_build_dir" toml:"sphinx_build_dir"`

	// TemplateDir is rendered into templates_path of generated conf.py files
	TemplateDir string `mapstructure:"template_dir" yaml:"template_dir" toml:"template_dir"`

	// TemplateOverrideDir replaces the embedded conf.py templates when set
	TemplateOverrideDir string `mapstructure:"template_override_dir" yaml:"template_override_dir" toml:"template_override_dir"`

	// DocRoot holds checkouts as <doc_root>/<project>/checkouts/<version>
	DocRoot string `mapstructure:"doc_root" yaml:"doc_root" toml:"doc_root"`

	// SourceExtension is used when an index document has to be created
	SourceExtension string `mapstructure:"source_extension" yaml:"source_extension" toml:"source_extension"`

	// ValidateSyntax parses generated conf.py before writing it
	ValidateSyntax bool `mapstructure:"validate_syntax" yaml:"validate_syntax" toml:"validate_syntax"`
}

// SiteConfig holds platform settings exposed to Sphinx themes
type SiteConfig struct {
	ProductionDomain    string `mapstructure:"production_domain" yaml:"production_domain" toml:"production_domain"`
	APIHost             string `mapstructure:"api_host" yaml:"api_host" toml:"api_host"`
	MediaURL            string `mapstructure:"media_url" yaml:"media_url" toml:"media_url"`
	StaticURL           string `mapstructure:"static_url" yaml:"static_url" toml:"static_url"`
	GlobalAnalyticsCode string `mapstructure:"global_analytics_code" yaml:"global_analytics_code" toml:"global_analytics_code"`
}

// ProjectsConfig holds the project registry location
type ProjectsConfig struct {
	// Registry is a YAML file listing projects and their versions
	Registry string `mapstructure:"registry" yaml:"registry" toml:"registry"`
}

// LoggingConfig holds logger settings
type LoggingConfig struct {
	Level string `mapstructure:"level" yaml:"level" toml:"level"`
	JSON  bool   `mapstructure:"json" yaml:"json" toml:"json"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Build: BuildConfig{
			Builder:         domain.DefaultBuilderType,
			SphinxBuildDir:  domain.DefaultSphinxBuildDir,
			TemplateDir:     domain.DefaultSphinxTemplateDir,
			DocRoot:         domain.DefaultDocRoot,
			SourceExtension: domain.DefaultSourceExtension,
			ValidateSyntax:  true,
		},
		Site: SiteConfig{
			ProductionDomain: domain.DefaultProductionDomain,
			APIHost:          domain.DefaultAPIHost,
			MediaURL:         domain.DefaultMediaURL,
			StaticURL:        domain.DefaultStaticURL,
		},
		Logging: LoggingConfig{
			Level: domain.DefaultLogLevel,
		},
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if _, ok := domain.SphinxBuilders[c.Build.Builder]; !ok {
		return fmt.Errorf("unknown builder %q (expected one of %s)", c.Build.Builder, strings.Join(BuilderTypes(), ", "))
	}
	if strings.TrimSpace(c.Build.SphinxBuildDir) == "" {
		return fmt.Errorf("build.sphinx_build_dir must not be empty")
	}
	if strings.TrimSpace(c.Build.DocRoot) == "" {
		return fmt.Errorf("build.doc_root must not be empty")
	}
	switch c.Build.SourceExtension {
	case "rst", "md", "txt":
	default:
		return fmt.Errorf("unsupported source_extension %q (expected rst, md or txt)", c.Build.SourceExtension)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid logging.level %q", c.Logging.Level)
	}
	return nil
}

// BuilderTypes returns the supported builder types in stable order
func BuilderTypes() []string {
	return []string{"html", "htmldir", "singlehtml", "pdf", "epub"}
}
