package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/ludo-technologies/rtdbuild/domain"
	"github.com/pelletier/go-toml/v2"
)

// defaultConfigTmpl contains the embedded default configuration template
//
//go:embed default_config.toml.tmpl
var defaultConfigTmpl string

// DefaultConfigValues holds all values used to render the default config template.
// All values are sourced from the domain package to ensure a single source of truth.
type DefaultConfigValues struct {
	Builder         string
	BuilderTypes    string
	SphinxBuildDir  string
	TemplateDir     string
	DocRoot         string
	SourceExtension string

	ProductionDomain string
	APIHost          string
	MediaURL         string
	StaticURL        string

	LogLevel string
}

func newDefaultConfigValues() DefaultConfigValues {
	return DefaultConfigValues{
		Builder:          domain.DefaultBuilderType,
		BuilderTypes:     strings.Join(BuilderTypes(), ", "),
		SphinxBuildDir:   domain.DefaultSphinxBuildDir,
		TemplateDir:      domain.DefaultSphinxTemplateDir,
		DocRoot:          domain.DefaultDocRoot,
		SourceExtension:  domain.DefaultSourceExtension,
		ProductionDomain: domain.DefaultProductionDomain,
		APIHost:          domain.DefaultAPIHost,
		MediaURL:         domain.DefaultMediaURL,
		StaticURL:        domain.DefaultStaticURL,
		LogLevel:         domain.DefaultLogLevel,
	}
}

// GenerateDefaultConfigTOML renders the default config template with domain values
// and returns the resulting TOML string.
func GenerateDefaultConfigTOML() (string, error) {
	tmpl, err := template.New("default_config").Parse(defaultConfigTmpl)
	if err != nil {
		return "", fmt.Errorf("failed to parse default config template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, newDefaultConfigValues()); err != nil {
		return "", fmt.Errorf("failed to render default config template: %w", err)
	}

	return buf.String(), nil
}

// LoadDefaultConfigFromTOML parses the generated default config back into a Config
func LoadDefaultConfigFromTOML() (*Config, error) {
	configTOML, err := GenerateDefaultConfigTOML()
	if err != nil {
		return nil, err
	}

	var tomlCfg RtdbuildTomlConfig
	if err := toml.Unmarshal([]byte(configTOML), &tomlCfg); err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	mergeTomlConfig(cfg, &tomlCfg)
	return cfg, nil
}
