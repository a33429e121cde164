package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ludo-technologies/rtdbuild/domain"
	"github.com/ludo-technologies/rtdbuild/internal/config"
	"github.com/ludo-technologies/rtdbuild/service"
	"github.com/spf13/cobra"
)

// LocateCommand reports where conf.py and the docs directory are
type LocateCommand struct {
	configFile string
	confPyFile string
	overrides  config.Overrides
}

// NewLocateCommand creates a new locate command
func NewLocateCommand() *LocateCommand {
	return &LocateCommand{}
}

// CreateCobraCommand creates the cobra command for conf.py discovery
func (l *LocateCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "locate [checkout]",
		Short: "Show the conf.py and docs directory of a checkout",
		Long: `Show which conf.py a build of the checkout would use, the documentation
directory, and the sphinx-build arguments for the configured builder.

Nothing is written.

Examples:
  # Inspect the current directory
  rtdbuild locate

  # Inspect a checkout with a custom conf.py location
  rtdbuild locate ./repo --conf-py-file docs/source/conf.py`,
		Args: cobra.MaximumNArgs(1),
		RunE: l.runLocate,
	}

	cmd.Flags().StringVarP(&l.configFile, "config", "c", "", "Configuration file path")
	cmd.Flags().StringVar(&l.confPyFile, "conf-py-file", "", "Custom conf.py path relative to the checkout")
	addOverrideFlags(cmd, &l.overrides)

	return cmd
}

func (l *LocateCommand) runLocate(cmd *cobra.Command, args []string) error {
	checkout := "."
	if len(args) == 1 {
		checkout = args[0]
	}
	checkout, err := filepath.Abs(checkout)
	if err != nil {
		return fmt.Errorf("failed to resolve checkout path: %w", err)
	}

	cfg, err := loadConfig(cmd, l.configFile, checkout, l.overrides)
	if err != nil {
		return err
	}
	log := newLogger(cmd, cfg)

	project, err := service.NewAdHocProject("", filepath.Base(checkout))
	if err != nil {
		return reportError(cmd, err)
	}
	project.ConfPyFile = l.confPyFile
	env := &domain.BuildEnvironment{
		Project:      project,
		Version:      project.FirstVersion(),
		CheckoutPath: checkout,
	}

	loc, err := service.Locate(cfg, env, log)
	if err != nil {
		return reportError(cmd, err)
	}

	out := cmd.OutOrStdout()
	if loc.Generated {
		fmt.Fprintf(out, "conf.py:      none, %s would be generated\n", loc.ConfPyPath)
	} else {
		fmt.Fprintf(out, "conf.py:      %s\n", loc.ConfPyPath)
	}
	fmt.Fprintf(out, "docs dir:     %s\n", loc.DocsDir)
	fmt.Fprintf(out, "sphinx-build: sphinx-build %s\n", strings.Join(loc.BuildArgs, " "))
	return nil
}

// NewLocateCmd creates and returns the locate cobra command
func NewLocateCmd() *cobra.Command {
	return NewLocateCommand().CreateCobraCommand()
}
