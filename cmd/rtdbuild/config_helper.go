package main

import (
	"github.com/ludo-technologies/rtdbuild/internal/config"
	"github.com/ludo-technologies/rtdbuild/internal/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// GetExplicitFlags extracts which flags were explicitly set from a cobra command
func GetExplicitFlags(cmd *cobra.Command) map[string]bool {
	explicitFlags := make(map[string]bool)
	if cmd != nil {
		cmd.Flags().Visit(func(f *pflag.Flag) {
			explicitFlags[f.Name] = true
		})
	}
	return explicitFlags
}

// addOverrideFlags registers the flags that override configuration values
func addOverrideFlags(cmd *cobra.Command, o *config.Overrides) {
	cmd.Flags().StringVar(&o.Builder, "builder", "", "Builder type: html, htmldir, singlehtml, pdf, epub")
	cmd.Flags().StringVar(&o.SphinxBuildDir, "build-dir", "", "Sphinx output directory")
	cmd.Flags().StringVar(&o.TemplateDir, "template-dir", "", "Directory added to templates_path of generated conf.py files")
	cmd.Flags().StringVar(&o.DocRoot, "doc-root", "", "Root holding <project>/checkouts/<version>")
	cmd.Flags().StringVar(&o.Registry, "registry", "", "Project registry YAML file")
	cmd.Flags().StringVar(&o.LogLevel, "log-level", "", "Log level: debug, info, warn, error")
	cmd.Flags().BoolVar(&o.LogJSON, "log-json", false, "Log as JSON")
}

// loadConfig resolves configuration for a run against targetDir and applies
// explicitly set flags on top
func loadConfig(cmd *cobra.Command, configFile, targetDir string, o config.Overrides) (*config.Config, error) {
	cfg, err := config.LoadConfigWithTarget(configFile, targetDir)
	if err != nil {
		return nil, err
	}
	if err := o.Apply(cfg, GetExplicitFlags(cmd)); err != nil {
		return nil, err
	}
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		cfg.Logging.Level = "debug"
	}
	return cfg, nil
}

// newLogger creates the command logger on the command's stderr
func newLogger(cmd *cobra.Command, cfg *config.Config) logger.Logger {
	return logger.New(&logger.Config{
		Level:  cfg.Logging.Level,
		Output: cmd.ErrOrStderr(),
		JSON:   cfg.Logging.JSON,
	})
}
