package main

import (
	"os"

	"github.com/ludo-technologies/rtdbuild/internal/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "rtdbuild",
	Short: "Prepare Sphinx documentation checkouts for building",
	Long: `rtdbuild prepares documentation checkouts for a Sphinx build.

It finds the conf.py a project ships with, or generates a default one when
there is none, and appends the platform settings every build needs: theme
context, version menu, download links and source links.

Features:
  • conf.py discovery with custom paths per project and version
  • Default conf.py and index page for projects without one
  • Idempotent settings block, replaced on every run
  • Dry-run and check modes for CI`,
	Version:       version.Short(),
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")

	rootCmd.AddCommand(NewConfCmd())
	rootCmd.AddCommand(NewLocateCmd())
	rootCmd.AddCommand(NewInitCmd())
	rootCmd.AddCommand(NewVersionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
