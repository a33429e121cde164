package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ludo-technologies/rtdbuild/app"
	"github.com/ludo-technologies/rtdbuild/domain"
	"github.com/ludo-technologies/rtdbuild/internal/config"
	"github.com/ludo-technologies/rtdbuild/service"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// ConfCommand renders conf.py for project versions
type ConfCommand struct {
	configFile string

	project     string
	name        string
	version     string
	allVersions bool
	checkout    string
	commit      string

	dryRun bool
	check  bool
	format string

	overrides config.Overrides
}

// NewConfCommand creates a new conf command
func NewConfCommand() *ConfCommand {
	return &ConfCommand{}
}

// CreateCobraCommand creates the cobra command for conf.py rendering
func (c *ConfCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "conf",
		Short: "Write conf.py for a project version",
		Long: `Write the conf.py Sphinx needs for a project version.

The project's own conf.py is used when the checkout has one. Otherwise a
default conf.py is generated next to the documentation sources, together
with an index page when there is neither index nor README. The platform
settings block is then appended, replacing the block of an earlier run.

Exit codes:
• 0: conf.py written, or up to date in --check mode
• 1: rendering failed, or --check found a difference

Examples:
  # Render the default version of a registered project
  rtdbuild conf --project pip

  # Render every active version
  rtdbuild conf --project pip --all-versions

  # Render a checkout that is not in the registry
  rtdbuild conf --name "My Docs" --checkout ./repo

  # Show what would be written
  rtdbuild conf --project pip --version 0.8 --dry-run

  # Fail when conf.py is out of date (CI)
  rtdbuild conf --project pip --check

  # Print a machine-readable report
  rtdbuild conf --project pip --all-versions --check --format json`,
		Args: cobra.NoArgs,
		RunE: c.runConf,
	}

	cmd.Flags().StringVarP(&c.configFile, "config", "c", "", "Configuration file path")
	cmd.Flags().StringVarP(&c.project, "project", "p", "", "Project slug")
	cmd.Flags().StringVar(&c.name, "name", "", "Project name for projects outside the registry")
	cmd.Flags().StringVar(&c.version, "version", "", "Version slug (default: the project's default version)")
	cmd.Flags().BoolVar(&c.allVersions, "all-versions", false, "Render every active version")
	cmd.Flags().StringVar(&c.checkout, "checkout", "", "Checkout path, overriding <doc-root>/<project>/checkouts/<version>")
	cmd.Flags().StringVar(&c.commit, "commit", "", "Commit being built")
	cmd.Flags().BoolVar(&c.dryRun, "dry-run", false, "Print conf.py instead of writing it")
	cmd.Flags().BoolVar(&c.check, "check", false, "Report differences with the conf.py on disk")
	cmd.Flags().StringVar(&c.format, "format", "", "Print a report: text, json or yaml")
	addOverrideFlags(cmd, &c.overrides)

	return cmd
}

func (c *ConfCommand) mode() (domain.ConfPyMode, error) {
	switch {
	case c.dryRun && c.check:
		return "", fmt.Errorf("--dry-run and --check cannot be combined")
	case c.dryRun:
		return domain.ConfPyModeDryRun, nil
	case c.check:
		return domain.ConfPyModeCheck, nil
	default:
		return domain.ConfPyModeWrite, nil
	}
}

// runConf executes the conf command
func (c *ConfCommand) runConf(cmd *cobra.Command, args []string) error {
	mode, err := c.mode()
	if err != nil {
		return err
	}
	var format domain.OutputFormat
	if c.format != "" {
		if mode == domain.ConfPyModeDryRun {
			return fmt.Errorf("--format cannot be combined with --dry-run")
		}
		if format, err = service.ParseOutputFormat(c.format); err != nil {
			return err
		}
	}

	targetDir := c.checkout
	if targetDir == "" {
		targetDir = "."
	}
	cfg, err := loadConfig(cmd, c.configFile, targetDir, c.overrides)
	if err != nil {
		return err
	}
	log := newLogger(cmd, cfg)

	progress := service.NewProgressManager()
	progress.SetWriter(cmd.ErrOrStderr())

	useCase, err := app.NewConfPyUseCaseBuilder().
		WithConfig(cfg).
		WithWriter(service.NewConfFileWriterWithStatus(cmd.ErrOrStderr())).
		WithProgress(progress).
		WithLogger(log).
		Build()
	if err != nil {
		return reportError(cmd, err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	output := cmd.OutOrStdout()
	if format != "" {
		// the report carries the diff
		output = io.Discard
	}

	resp, err := useCase.Execute(ctx, domain.ConfPyRequest{
		ProjectSlug:  c.project,
		ProjectName:  c.name,
		VersionSlug:  c.version,
		AllVersions:  c.allVersions,
		CheckoutPath: c.checkout,
		Commit:       c.commit,
		Mode:         mode,
		OutputWriter: output,
	})
	if err != nil {
		return reportError(cmd, err)
	}

	if format != "" {
		formatter := service.NewReportFormatter(format == domain.OutputFormatText && isTerminal(cmd.OutOrStdout()))
		if err := formatter.Write(resp, format, cmd.OutOrStdout()); err != nil {
			return reportError(cmd, err)
		}
	}

	if mode == domain.ConfPyModeCheck {
		if resp.Drifted() {
			return fmt.Errorf("conf.py is out of date for version(s): %s", strings.Join(driftedVersions(resp), ", "))
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "conf.py is up to date for %d version(s)\n", len(resp.Results))
	}
	return nil
}

func driftedVersions(resp *domain.ConfPyResponse) []string {
	var slugs []string
	for _, r := range resp.Results {
		if r.Changed {
			slugs = append(slugs, r.VersionSlug)
		}
	}
	return slugs
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// reportError prints the error category and recovery suggestions
func reportError(cmd *cobra.Command, err error) error {
	categorizer := service.NewErrorCategorizer()
	categorized := categorizer.Categorize(err)
	if categorized == nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", categorized.Category, categorized.Message)
	for _, s := range categorizer.GetRecoverySuggestions(categorized.Category) {
		fmt.Fprintf(cmd.ErrOrStderr(), "  • %s\n", s)
	}
	return err
}

// NewConfCmd creates and returns the conf cobra command
func NewConfCmd() *cobra.Command {
	return NewConfCommand().CreateCobraCommand()
}
