// Package cli wires the proj2gpt commands. The root command with no
// subcommand runs a build, matching the habit of invoking the tool from
// the project directory with no arguments.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/frontcamp/proj2gpt/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	rootDir string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "proj2gpt",
	Short: "Pack project files into LLM-ready context containers",
	Long: `proj2gpt walks a project tree, filters it down to the text files worth
sharing, and packs them into framed, fingerprinted container files under a
timestamped build directory. Each build carries a manifest and a diff
against the previous build.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.RunE = runBuild
	rootCmd.PersistentFlags().StringVar(&rootDir, "root", ".", "project root directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
