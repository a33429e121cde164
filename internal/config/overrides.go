package config

// Overrides carries command-line values that take precedence over the
// configuration file when the corresponding flag was explicitly set.
type Overrides struct {
	Builder        string
	SphinxBuildDir string
	TemplateDir    string
	DocRoot        string
	Registry       string
	LogLevel       string
	LogJSON        bool
}

// WasExplicitlySet checks if a flag was explicitly set by the user
func WasExplicitlySet(flags map[string]bool, flagName string) bool {
	if flags == nil {
		return false
	}
	return flags[flagName]
}

// MergeString merges a string value, using override only if explicitly set
func MergeString(base, override, flagName string, flags map[string]bool) string {
	if WasExplicitlySet(flags, flagName) {
		return override
	}
	return base
}

// MergeBool merges a bool value, using override only if explicitly set
func MergeBool(base, override bool, flagName string, flags map[string]bool) bool {
	if WasExplicitlySet(flags, flagName) {
		return override
	}
	return base
}

// Apply copies explicitly set flag values onto cfg and revalidates it
func (o Overrides) Apply(cfg *Config, flags map[string]bool) error {
	cfg.Build.Builder = MergeString(cfg.Build.Builder, o.Builder, "builder", flags)
	cfg.Build.SphinxBuildDir = MergeString(cfg.Build.SphinxBuildDir, o.SphinxBuildDir, "build-dir", flags)
	cfg.Build.TemplateDir = MergeString(cfg.Build.TemplateDir, o.TemplateDir, "template-dir", flags)
	cfg.Build.DocRoot = MergeString(cfg.Build.DocRoot, o.DocRoot, "doc-root", flags)
	cfg.Projects.Registry = MergeString(cfg.Projects.Registry, o.Registry, "registry", flags)
	cfg.Logging.Level = MergeString(cfg.Logging.Level, o.LogLevel, "log-level", flags)
	cfg.Logging.JSON = MergeBool(cfg.Logging.JSON, o.LogJSON, "log-json", flags)
	return cfg.Validate()
}
